package model

import (
	"sort"
	"time"
)

// Candlestick ローソク足
type Candlestick struct {
	Date   time.Time
	Open   float64
	High   float64
	Low    float64
	Close  float64
	Forced bool
}

// Ohlc ローソク足の系列（日時の昇順）
type Ohlc struct {
	Candlesticks []Candlestick
}

// NewOhlc 日時の昇順に並べ替えて生成
func NewOhlc(cc []Candlestick) *Ohlc {
	sorted := make([]Candlestick, len(cc))
	copy(sorted, cc)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date.Before(sorted[j].Date)
	})
	return &Ohlc{Candlesticks: sorted}
}

// Closes 終値の系列
func (o *Ohlc) Closes() []float64 {
	vv := make([]float64, 0, len(o.Candlesticks))
	for _, c := range o.Candlesticks {
		vv = append(vv, c.Close)
	}
	return vv
}

// Last 最新のローソク足
func (o *Ohlc) Last() *Candlestick {
	if len(o.Candlesticks) == 0 {
		return nil
	}
	return &o.Candlesticks[len(o.Candlesticks)-1]
}

// Range 期間中の最高値と最安値
func (o *Ohlc) Range() (high, low float64) {
	if len(o.Candlesticks) == 0 {
		return 0, 0
	}
	high = o.Candlesticks[0].High
	low = o.Candlesticks[0].Low
	for _, c := range o.Candlesticks[1:] {
		if c.High > high {
			high = c.High
		}
		if c.Low < low {
			low = c.Low
		}
	}
	return high, low
}
