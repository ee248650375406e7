package mysql

import (
	"time"

	"github.com/randomsuffer/youhodler-connector/pkg/domain/model"
)

// Candle ローソク足
type Candle struct {
	Pair   string    `gorm:"primaryKey;size:32"`
	Tick   string    `gorm:"primaryKey;size:8"`
	Mode   string    `gorm:"primaryKey;size:8"`
	Date   time.Time `gorm:"primaryKey;precision:3"`
	Open   float64
	High   float64
	Low    float64
	Close  float64
	Forced bool
}

// NewCandles 生成
func NewCandles(pair model.CurrencyPair, tick string, mode model.PriceMode, ohlc *model.Ohlc) []Candle {
	records := make([]Candle, 0, len(ohlc.Candlesticks))
	for _, c := range ohlc.Candlesticks {
		records = append(records, Candle{
			Pair:   pair.String(),
			Tick:   tick,
			Mode:   string(mode),
			Date:   c.Date.UTC(),
			Open:   c.Open,
			High:   c.High,
			Low:    c.Low,
			Close:  c.Close,
			Forced: c.Forced,
		})
	}
	return records
}

// ToDomainModel ドメインモデルに変換
func (c *Candle) ToDomainModel() model.Candlestick {
	return model.Candlestick{
		Date:   c.Date.UTC(),
		Open:   c.Open,
		High:   c.High,
		Low:    c.Low,
		Close:  c.Close,
		Forced: c.Forced,
	}
}

// Order 注文情報
type Order struct {
	ID            string `gorm:"primaryKey;size:64"`
	IDNumeric     bool
	AccountID     string `gorm:"size:64"`
	Direction     string `gorm:"size:8"`
	Multiplier    int
	InputTicker   string `gorm:"size:16"`
	Pair          string `gorm:"size:32"`
	InputAmount   float64
	OutputAmount  *float64
	InitialPrice  float64
	MCPrice       float64
	SLPrice       *float64
	FTPPrice      float64
	TPPrice       float64
	ClosedPrice   *float64
	TriggerPrice  float64
	Status        string `gorm:"size:16;index"`
	Reason        string
	OrderType     string `gorm:"size:32"`
	StartedAt     *time.Time
	FinishedAt    *time.Time
	Profit        *float64
	ProfitPercent *float64
}

// NewOrder 生成
func NewOrder(org *model.Order) *Order {
	return &Order{
		ID:            org.ID.String(),
		IDNumeric:     org.ID.IsNumeric(),
		AccountID:     org.AccountID,
		Direction:     string(org.Direction),
		Multiplier:    org.Multiplier,
		InputTicker:   org.InputTicker,
		Pair:          org.Pair.String(),
		InputAmount:   org.InputAmount,
		OutputAmount:  org.OutputAmount,
		InitialPrice:  org.InitialPrice,
		MCPrice:       org.MCPrice,
		SLPrice:       org.SLPrice,
		FTPPrice:      org.FTPPrice,
		TPPrice:       org.TPPrice,
		ClosedPrice:   org.ClosedPrice,
		TriggerPrice:  org.TriggerPrice,
		Status:        string(org.Status),
		Reason:        org.Reason,
		OrderType:     org.OrderType,
		StartedAt:     org.StartedAt,
		FinishedAt:    org.FinishedAt,
		Profit:        org.Profit,
		ProfitPercent: org.ProfitPercent,
	}
}

// ToDomainModel ドメインモデルに変換
func (o *Order) ToDomainModel() (*model.Order, error) {
	pair, err := model.ParseToCurrencyPair(o.Pair)
	if err != nil {
		return nil, err
	}

	id := model.NewID(o.ID)
	if o.IDNumeric {
		id = model.NewNumericID(o.ID)
	}

	return &model.Order{
		ID:            id,
		AccountID:     o.AccountID,
		Direction:     model.Direction(o.Direction),
		Multiplier:    o.Multiplier,
		InputTicker:   o.InputTicker,
		Pair:          *pair,
		InputAmount:   o.InputAmount,
		OutputAmount:  o.OutputAmount,
		InitialPrice:  o.InitialPrice,
		MCPrice:       o.MCPrice,
		SLPrice:       o.SLPrice,
		FTPPrice:      o.FTPPrice,
		TPPrice:       o.TPPrice,
		ClosedPrice:   o.ClosedPrice,
		TriggerPrice:  o.TriggerPrice,
		Status:        model.OrderStatus(o.Status),
		Reason:        o.Reason,
		OrderType:     o.OrderType,
		StartedAt:     toUTC(o.StartedAt),
		FinishedAt:    toUTC(o.FinishedAt),
		Profit:        o.Profit,
		ProfitPercent: o.ProfitPercent,
	}, nil
}

func toUTC(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}
