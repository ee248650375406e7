package logging

import (
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/randomsuffer/youhodler-connector/pkg/domain"
	"github.com/sirupsen/logrus"
)

// Logger logrusによるロガー
type Logger struct {
	logger *logrus.Logger
}

var _ domain.Logger = (*Logger)(nil)

// NewLogger 生成
//
// w が nil の場合は標準出力に出力する。
func NewLogger(level string, w io.Writer) (*Logger, error) {
	lv, err := logrus.ParseLevel(level)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid log level: %s", level)
	}
	if w == nil {
		w = os.Stdout
	}

	l := logrus.New()
	l.SetLevel(lv)
	l.SetOutput(w)
	l.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})
	return &Logger{logger: l}, nil
}

// Debug デバッグログ
func (l *Logger) Debug(format string, v ...interface{}) {
	l.logger.Debugf(format, v...)
}

// Info 情報ログ
func (l *Logger) Info(format string, v ...interface{}) {
	l.logger.Infof(format, v...)
}

// Error エラーログ
func (l *Logger) Error(format string, v ...interface{}) {
	l.logger.Errorf(format, v...)
}
