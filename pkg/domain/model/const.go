package model

import (
	"strings"
	"time"

	"github.com/pkg/errors"
)

// Direction ポジションの方向
type Direction string

const (
	// Long ロング
	Long Direction = "long"
	// Short ショート
	Short Direction = "short"
)

// NewDirection isShortフラグから方向を生成
func NewDirection(isShort bool) Direction {
	if isShort {
		return Short
	}
	return Long
}

// OrderStatus 注文ステータス
type OrderStatus string

const (
	// Open 約定済み（保有中）
	Open OrderStatus = "OPEN"
	// Pending 指値待ち
	Pending OrderStatus = "PENDING"
	// Closed 決済済み
	Closed OrderStatus = "CLOSED"
	// Canceled キャンセル済み
	Canceled OrderStatus = "CANCELED"
)

// PriceMode チャートの価格種別
type PriceMode string

const (
	Bid PriceMode = "bid"
	Ask PriceMode = "ask"
	Mid PriceMode = "mid"
)

// IsValid bid・ask・midのいずれか
func (m PriceMode) IsValid() bool {
	switch m {
	case Bid, Ask, Mid:
		return true
	}
	return false
}

// USDT テザー
const USDT = "usdt"

var (
	// ErrTimestampFormat 日時フォーマット不一致
	ErrTimestampFormat = errors.New("timestamp does not match format YYYY-MM-DDTHH:MM:SS.sssZ")
	// ErrMissingField 必須項目なし
	ErrMissingField = errors.New("required field is missing")
	// ErrInvalidPair 通貨ペア不正
	ErrInvalidPair = errors.New("invalid currency pair")
	// ErrInvalidPriceMode 価格種別不正
	ErrInvalidPriceMode = errors.New("price mode must be bid, ask or mid")
)

// TimestampLayout APIで使う日時フォーマット（ミリ秒、UTC）
const TimestampLayout = "2006-01-02T15:04:05.000Z"

// FormatTimestamp APIのフォーマットで日時を文字列化
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}

// ParseTimestamp APIのフォーマットの日時を解析
func ParseTimestamp(s string) (time.Time, error) {
	t, err := time.Parse(TimestampLayout, s)
	if err != nil {
		return time.Time{}, errors.Wrapf(ErrTimestampFormat, "value: %q", s)
	}
	return t, nil
}

// CurrencyPair 通貨ペア
type CurrencyPair struct {
	Base  string
	Quote string
}

// NewCurrencyPair 生成
func NewCurrencyPair(base, quote string) CurrencyPair {
	return CurrencyPair{Base: base, Quote: quote}
}

func (p CurrencyPair) String() string {
	return p.Base + "/" + p.Quote
}

// ParseToCurrencyPair "btc/usdt" または "btc_usdt" 形式を解析
func ParseToCurrencyPair(s string) (*CurrencyPair, error) {
	splited := strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return r == '/' || r == '_'
	})
	if len(splited) != 2 {
		return nil, errors.Wrapf(ErrInvalidPair, "value: %q", s)
	}
	return &CurrencyPair{Base: splited[0], Quote: splited[1]}, nil
}
