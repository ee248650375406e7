package usecase

import (
	"encoding/csv"
	"os"
	"strconv"

	"github.com/pkg/errors"
	"github.com/randomsuffer/youhodler-connector/pkg/domain/model"
)

var candleHeader = []string{"date", "open", "high", "low", "close", "forced"}

// CandleLogger ローソク足をCSVに保存
type CandleLogger struct {
	logFilePath string
}

// NewCandleLogger 生成
func NewCandleLogger(logFilePath string) *CandleLogger {
	return &CandleLogger{logFilePath: logFilePath}
}

// Append ローソク足を追記（ファイルが空の場合はヘッダも書く）
func (l *CandleLogger) Append(ohlc *model.Ohlc) error {
	file, err := os.OpenFile(l.logFilePath, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0666)
	if err != nil {
		return errors.Wrapf(err, "failed to open csv, path: %s", l.logFilePath)
	}
	defer file.Close()

	stat, err := file.Stat()
	if err != nil {
		return err
	}

	w := csv.NewWriter(file)
	if stat.Size() == 0 {
		if err := w.Write(candleHeader); err != nil {
			return err
		}
	}
	for _, c := range ohlc.Candlesticks {
		record := []string{
			model.FormatTimestamp(c.Date),
			formatFloat(c.Open),
			formatFloat(c.High),
			formatFloat(c.Low),
			formatFloat(c.Close),
			strconv.FormatBool(c.Forced),
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
