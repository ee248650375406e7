package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/pkg/errors"
	"github.com/randomsuffer/youhodler-connector/pkg/domain/exchange"
	"github.com/randomsuffer/youhodler-connector/pkg/domain/model"
)

const (
	OpGetBalance       = "GetBalance"
	OpGetRates         = "GetRates"
	OpGetOhlc          = "GetOhlc"
	OpGetTariffs       = "GetTariffs"
	OpPostMarketOrder  = "PostMarketOrder"
	OpCloseMarketOrder = "CloseMarketOrder"
)

// OpGetOrders ステータス別の注文取得
func OpGetOrders(status model.OrderStatus) string {
	return "GetOrders:" + string(status)
}

var (
	// ErrTariffNotFound 注文のtariffIdに該当する取引条件がない
	ErrTariffNotFound = errors.New("tariff not found")
	// ErrOrderNotFound 決済対象の注文がない
	ErrOrderNotFound = errors.New("order not found")
)

// Exchange 取引所モック
//
// 注文すると OPEN の注文が追加され、決済すると CLOSED に移る。
type Exchange struct {
	mu       sync.Mutex
	balance  *model.Balance
	rates    *model.ExchangeRates
	ohlc     *model.Ohlc
	tariffs  *model.TariffList
	orders   map[model.OrderStatus][]model.Order
	failures map[string]error
	calls    []string
	posted   []model.NewMarketOrder
	closed   []model.CloseMarketOrder
}

var _ exchange.Client = (*Exchange)(nil)

// NewExchange 生成
func NewExchange() *Exchange {
	return &Exchange{
		balance:  &model.Balance{Wallets: []model.Wallet{}},
		rates:    &model.ExchangeRates{Rates: []model.Rate{}},
		ohlc:     model.NewOhlc(nil),
		tariffs:  &model.TariffList{Tariffs: []model.Tariff{}},
		orders:   map[model.OrderStatus][]model.Order{},
		failures: map[string]error{},
	}
}

// SetBalance 残高を設定
func (e *Exchange) SetBalance(b *model.Balance) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.balance = b
}

// SetRates レートを設定
func (e *Exchange) SetRates(r *model.ExchangeRates) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.rates = r
}

// SetOhlc ローソク足を設定
func (e *Exchange) SetOhlc(o *model.Ohlc) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.ohlc = o
}

// SetTariffs 取引条件を設定
func (e *Exchange) SetTariffs(t *model.TariffList) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.tariffs = t
}

// AddOrders 注文を追加
func (e *Exchange) AddOrders(oo ...model.Order) {
	e.mu.Lock()
	defer e.mu.Unlock()
	for _, o := range oo {
		e.orders[o.Status] = append(e.orders[o.Status], o)
	}
}

// FailOn 指定した操作をエラーにする（nil で解除）
func (e *Exchange) FailOn(op string, err error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err == nil {
		delete(e.failures, op)
		return
	}
	e.failures[op] = err
}

// Calls 呼び出された操作の履歴
func (e *Exchange) Calls() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]string{}, e.calls...)
}

// PostedOrders 送信された注文
func (e *Exchange) PostedOrders() []model.NewMarketOrder {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]model.NewMarketOrder{}, e.posted...)
}

// ClosedRequests 送信された決済
func (e *Exchange) ClosedRequests() []model.CloseMarketOrder {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]model.CloseMarketOrder{}, e.closed...)
}

// call 呼び出しを記録し、失敗が設定されていればエラーを返す
func (e *Exchange) call(ctx context.Context, op string) error {
	e.calls = append(e.calls, op)
	if err := ctx.Err(); err != nil {
		return err
	}
	return e.failures[op]
}

// GetBalance 残高取得
func (e *Exchange) GetBalance(ctx context.Context) (*model.Balance, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.call(ctx, OpGetBalance); err != nil {
		return nil, err
	}
	b := *e.balance
	b.Wallets = append([]model.Wallet{}, e.balance.Wallets...)
	return &b, nil
}

// GetRates レート取得
func (e *Exchange) GetRates(ctx context.Context) (*model.ExchangeRates, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.call(ctx, OpGetRates); err != nil {
		return nil, err
	}
	return &model.ExchangeRates{Rates: append([]model.Rate{}, e.rates.Rates...)}, nil
}

// GetOhlc ローソク足取得（ペア・足種は区別しない）
func (e *Exchange) GetOhlc(ctx context.Context, pair model.CurrencyPair, tick string, mode model.PriceMode) (*model.Ohlc, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.call(ctx, OpGetOhlc); err != nil {
		return nil, err
	}
	return model.NewOhlc(e.ohlc.Candlesticks), nil
}

// GetTariffs 取引条件取得
func (e *Exchange) GetTariffs(ctx context.Context) (*model.TariffList, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.call(ctx, OpGetTariffs); err != nil {
		return nil, err
	}
	return &model.TariffList{Tariffs: append([]model.Tariff{}, e.tariffs.Tariffs...)}, nil
}

// GetOrders ステータス別の注文取得
func (e *Exchange) GetOrders(ctx context.Context, status model.OrderStatus) (*model.OrderList, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.call(ctx, OpGetOrders(status)); err != nil {
		return nil, err
	}
	return &model.OrderList{Orders: append([]model.Order{}, e.orders[status]...)}, nil
}

// PostMarketOrder 成行注文
func (e *Exchange) PostMarketOrder(ctx context.Context, o *model.NewMarketOrder) (*model.OrderAck, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.call(ctx, OpPostMarketOrder); err != nil {
		return nil, err
	}
	e.posted = append(e.posted, *o)

	var tariff *model.Tariff
	for i := range e.tariffs.Tariffs {
		if o.TariffID != nil && e.tariffs.Tariffs[i].ID == *o.TariffID {
			tariff = &e.tariffs.Tariffs[i]
			break
		}
	}
	if tariff == nil {
		return nil, ErrTariffNotFound
	}

	id := model.NewID(fmt.Sprintf("order-%d", len(e.posted)))
	price := e.rates.MidPrice(tariff.Pair)
	initial := 0.0
	if price != nil {
		initial = *price
	} else if o.Initial != nil {
		initial = *o.Initial
	}
	tp := 0.0
	if o.TP != nil {
		tp = *o.TP
	}
	createdAt := o.Date.UTC()

	e.orders[model.Open] = append(e.orders[model.Open], model.Order{
		ID:           id,
		Direction:    tariff.Direction,
		Multiplier:   o.Multiplier,
		InputTicker:  o.InputTicker,
		Pair:         tariff.Pair,
		InputAmount:  o.InputAmount,
		InitialPrice: initial,
		SLPrice:      o.SL,
		TPPrice:      tp,
		Status:       model.Open,
		StartedAt:    &createdAt,
	})

	return &model.OrderAck{
		ID:                 id,
		Direction:          tariff.Direction,
		Pair:               tariff.Pair,
		InputAmount:        o.InputAmount,
		InputTicker:        o.InputTicker,
		Status:             model.Open,
		Multiplier:         o.Multiplier,
		ClientInitialPrice: initial,
		ClientCreatedAt:    &createdAt,
		TP:                 tp,
		SL:                 o.SL,
	}, nil
}

// CloseMarketOrder 成行決済
func (e *Exchange) CloseMarketOrder(ctx context.Context, o *model.CloseMarketOrder) (*model.CancelMarketAck, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.call(ctx, OpCloseMarketOrder); err != nil {
		return nil, err
	}
	e.closed = append(e.closed, *o)

	open := e.orders[model.Open]
	for i := range open {
		if open[i].ID != o.ID {
			continue
		}
		order := open[i]
		finishedAt := o.Date.UTC()
		order.Status = model.Closed
		order.ClosedPrice = o.Price
		order.FinishedAt = &finishedAt
		e.orders[model.Open] = append(open[:i:i], open[i+1:]...)
		e.orders[model.Closed] = append(e.orders[model.Closed], order)
		return &model.CancelMarketAck{Success: true}, nil
	}
	return nil, errors.Wrapf(ErrOrderNotFound, "id: %s", o.ID)
}
