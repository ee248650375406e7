package model

// Rate レート
type Rate struct {
	Pair    CurrencyPair
	Mid     *float64
	Ask     *float64
	Bid     *float64
	Diff24h *float64
}

// Ticker "btc/usdt" 形式
func (r *Rate) Ticker() string {
	return r.Pair.String()
}

// ExchangeRates 全通貨ペアのレート
type ExchangeRates struct {
	Rates []Rate
}

// SearchRate 通貨ペアでレートを検索（base/quoteの順序は区別する）
func (e *ExchangeRates) SearchRate(base, quote string) *Rate {
	if e == nil {
		return nil
	}
	for i := range e.Rates {
		if e.Rates[i].Pair.Base == base && e.Rates[i].Pair.Quote == quote {
			return &e.Rates[i]
		}
	}
	return nil
}

// MidPrice 仲値を取得、見つからない場合はnil
func (e *ExchangeRates) MidPrice(pair CurrencyPair) *float64 {
	r := e.SearchRate(pair.Base, pair.Quote)
	if r == nil {
		return nil
	}
	return r.Mid
}
