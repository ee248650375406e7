package model

// Tariff 取引条件テンプレート
type Tariff struct {
	ID                      ID
	Pair                    CurrencyPair
	MinMultiplier           int
	MaxMultiplier           int
	MinVolume               float64
	MaxVolume               float64
	AllowedInputTickers     []string
	IsEnabled               bool
	Direction               Direction
	TriggerPriceDistanceMax float64
	PendingOrderDisabled    bool
	DayOff                  bool
	DaysOff                 []string
	TradingMode             string
}

// TariffList 取引条件一覧
type TariffList struct {
	Tariffs []Tariff
}

// SearchTariff 通貨ペアと方向で検索（最初に一致したもの）
func (l *TariffList) SearchTariff(base, quote string, d Direction) *Tariff {
	if l == nil {
		return nil
	}
	for i := range l.Tariffs {
		t := &l.Tariffs[i]
		if t.Pair.Base == base && t.Pair.Quote == quote && t.Direction == d {
			return t
		}
	}
	return nil
}
