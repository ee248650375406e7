package usecase

import (
	"github.com/markcheno/go-talib"
	"github.com/pkg/errors"
	"github.com/randomsuffer/youhodler-connector/pkg/domain/model"
)

// ErrShortSeries 指標の計算に必要な本数が足りない
var ErrShortSeries = errors.New("not enough candlesticks")

// Indicators 終値から計算したテクニカル指標（最新値）
type Indicators struct {
	Close        float64
	High         float64
	Low          float64
	SMA          float64
	EMA          float64
	RSI          float64
	BBandsUpper  float64
	BBandsMiddle float64
	BBandsLower  float64
}

// BBandsWidth ボリンジャーバンドの幅
func (i *Indicators) BBandsWidth() float64 {
	return i.BBandsUpper - i.BBandsLower
}

// CalcIndicators テクニカル指標を計算
func CalcIndicators(ohlc *model.Ohlc, conf *model.Indicator) (*Indicators, error) {
	closes := ohlc.Closes()

	required := conf.SMAPeriod
	for _, p := range []int{conf.EMAPeriod, conf.RSIPeriod + 1, conf.BBandsPeriod} {
		if p > required {
			required = p
		}
	}
	if len(closes) < required || len(closes) == 0 {
		return nil, errors.Wrapf(ErrShortSeries, "count: %d, required: %d", len(closes), required)
	}

	last := func(vv []float64) float64 {
		return vv[len(vv)-1]
	}

	uppers, middles, lowers := talib.BBands(
		closes,
		conf.BBandsPeriod,
		conf.BBandsNBDev,
		conf.BBandsNBDev,
		talib.SMA)

	high, low := ohlc.Range()

	return &Indicators{
		Close:        ohlc.Last().Close,
		High:         high,
		Low:          low,
		SMA:          last(talib.Sma(closes, conf.SMAPeriod)),
		EMA:          last(talib.Ema(closes, conf.EMAPeriod)),
		RSI:          last(talib.Rsi(closes, conf.RSIPeriod)),
		BBandsUpper:  last(uppers),
		BBandsMiddle: last(middles),
		BBandsLower:  last(lowers),
	}, nil
}
