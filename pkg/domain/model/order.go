package model

import "time"

// Order 注文
type Order struct {
	ID           ID
	AccountID    string
	Direction    Direction
	Multiplier   int
	InputTicker  string
	Pair         CurrencyPair
	InputAmount  float64
	OutputAmount *float64
	InitialPrice float64
	MCPrice      float64
	SLPrice      *float64
	FTPPrice     float64
	TPPrice      float64
	ClosedPrice  *float64
	TriggerPrice float64
	Status       OrderStatus
	Reason       string
	OrderType    string
	StartedAt    *time.Time
	FinishedAt   *time.Time
	// Profit, ProfitPercent はOPENとCLOSEDの場合のみ設定される
	Profit        *float64
	ProfitPercent *float64
}

// IsActive 保有中または指値待ち
func (o *Order) IsActive() bool {
	return o.Status == Open || o.Status == Pending
}

// OrderList 注文一覧
type OrderList struct {
	Orders []Order
}

// Merge 他の一覧の注文を末尾に追加（重複排除はしない）
func (l *OrderList) Merge(other *OrderList) {
	if other == nil {
		return
	}
	l.Orders = append(l.Orders, other.Orders...)
}

// ActiveOrders OPEN・PENDINGの注文
func (l *OrderList) ActiveOrders() []Order {
	oo := []Order{}
	for _, o := range l.Orders {
		if o.IsActive() {
			oo = append(oo, o)
		}
	}
	return oo
}

// ClosedOrders CLOSED・CANCELEDの注文
func (l *OrderList) ClosedOrders() []Order {
	oo := []Order{}
	for _, o := range l.Orders {
		if o.Status == Closed || o.Status == Canceled {
			oo = append(oo, o)
		}
	}
	return oo
}

// OrderAck 注文受付結果
type OrderAck struct {
	ID                 ID
	Direction          Direction
	Pair               CurrencyPair
	InputAmount        float64
	InputTicker        string
	Status             OrderStatus
	Multiplier         int
	ClientInitialPrice float64
	ClientCreatedAt    *time.Time
	TP                 float64
	SL                 *float64
}

// CancelMarketAck 決済受付結果
type CancelMarketAck struct {
	Success bool
}

// MarketOrderRequest 成行注文の依頼内容
type MarketOrderRequest struct {
	Pair        CurrencyPair
	Direction   Direction
	Multiplier  int
	InputAmount float64
	InputTicker string
	TP          *float64
	SL          *float64
}

// NewMarketOrder 成行注文（送信内容）
type NewMarketOrder struct {
	Date        time.Time
	Initial     *float64
	InputAmount float64
	InputTicker string
	Multiplier  int
	TariffID    *ID
	RequestID   string
	TP          *float64
	SL          *float64
}

// CloseMarketOrder 成行決済（送信内容）
type CloseMarketOrder struct {
	Date      time.Time
	ID        ID
	Price     *float64
	RequestID string
}
