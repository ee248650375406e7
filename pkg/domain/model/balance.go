package model

// Wallet ウォレット
type Wallet struct {
	Amount                float64
	Ticker                string
	Address               *string
	CreateEnabled         bool
	DepositEnabled        bool
	WithdrawEnabled       bool
	LoanEnabled           bool
	TurboEnabled          bool
	HodlEnabled           bool
	MarketEnabled         bool
	ChartEnabled          bool
	Visible               bool
	Products              []string
	Tags                  []string
	HodlsInputAmount      float64
	DualsInputAmount      float64
	LoansCollateralAmount float64
	AmountForSavings      float64
	Capital               map[string]float64
}

// Balance 残高
type Balance struct {
	TotalCapitalUSD float64
	Wallets         []Wallet
}

// NonEmptyWallets 残高のあるウォレットのみ取得
func (b *Balance) NonEmptyWallets() []Wallet {
	ww := []Wallet{}
	for _, w := range b.Wallets {
		if w.Amount > 0 {
			ww = append(ww, w)
		}
	}
	return ww
}
