package logging

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/randomsuffer/youhodler-connector/pkg/domain/model"
	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

const auditTimeFormat = "2006-01-02 15:04:05"

// auditFormatter "[YYYY-MM-DD HH:MM:SS] message" 形式（UTC）
type auditFormatter struct{}

func (auditFormatter) Format(e *logrus.Entry) ([]byte, error) {
	return []byte(fmt.Sprintf("[%s] %s\n", e.Time.UTC().Format(auditTimeFormat), e.Message)), nil
}

// AuditLog リクエスト・レスポンスの監査ログ
type AuditLog struct {
	logger *logrus.Logger
	file   *lumberjack.Logger
}

// OpenAuditLog 監査ログを開く（既存の内容は消去する）
func OpenAuditLog(conf *model.AuditLog) (*AuditLog, error) {
	l := logrus.New()
	l.SetLevel(logrus.InfoLevel)
	l.SetFormatter(auditFormatter{})

	if conf.Disabled || conf.Path == "" {
		l.SetOutput(io.Discard)
		return &AuditLog{logger: l}, nil
	}

	if err := os.MkdirAll(filepath.Dir(conf.Path), 0755); err != nil {
		return nil, errors.Wrapf(err, "failed to create audit log dir, path: %s", conf.Path)
	}
	if err := truncate(conf.Path); err != nil {
		return nil, err
	}

	file := &lumberjack.Logger{
		Filename:   conf.Path,
		MaxSize:    conf.MaxSizeMB,
		MaxBackups: conf.MaxBackups,
	}
	l.SetOutput(file)
	return &AuditLog{logger: l, file: file}, nil
}

func truncate(path string) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0644)
	if err != nil {
		return errors.Wrapf(err, "failed to truncate audit log, path: %s", path)
	}
	return f.Close()
}

// RecordRequest 送信したリクエストを記録
func (a *AuditLog) RecordRequest(method, url string, headers, params map[string]string, payload []byte) {
	a.logger.Infof("%s request sent to %s, headers: %s, params: %s, data: %s",
		method, url, toJSON(headers), toJSON(params), compact(payload))
}

// RecordResponse 受信したレスポンスを記録
func (a *AuditLog) RecordResponse(body []byte) {
	a.logger.Infof("Got response: %s", compact(body))
}

// Close ファイルを閉じる
func (a *AuditLog) Close() error {
	if a.file == nil {
		return nil
	}
	return a.file.Close()
}

func toJSON(m map[string]string) string {
	if m == nil {
		return "null"
	}
	b, err := json.Marshal(m)
	if err != nil {
		return "null"
	}
	return string(b)
}

// compact 1行に収める（JSONでなければそのまま）
func compact(b []byte) string {
	if len(bytes.TrimSpace(b)) == 0 {
		return "null"
	}
	var buf bytes.Buffer
	if err := json.Compact(&buf, b); err != nil {
		return string(b)
	}
	return buf.String()
}
