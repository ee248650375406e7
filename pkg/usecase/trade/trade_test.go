package trade_test

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/randomsuffer/youhodler-connector/pkg/domain/model"
	"github.com/randomsuffer/youhodler-connector/pkg/infrastructure/logging"
	"github.com/randomsuffer/youhodler-connector/pkg/infrastructure/memory"
	"github.com/randomsuffer/youhodler-connector/pkg/usecase/trade"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errBoom = errors.New("boom")

func newFacade(t *testing.T) (*trade.Facade, *memory.Exchange) {
	t.Helper()
	logger, err := logging.NewLogger("debug", io.Discard)
	require.NoError(t, err)

	mid := 30000.0
	reverse := 0.00003
	ex := memory.NewExchange()
	ex.SetTariffs(&model.TariffList{Tariffs: []model.Tariff{
		{ID: model.NewID("t-short"), Pair: model.NewCurrencyPair("btc", "usdt"), Direction: model.Short},
		{ID: model.NewID("t-long"), Pair: model.NewCurrencyPair("btc", "usdt"), Direction: model.Long},
		{ID: model.NewID("t-long-2"), Pair: model.NewCurrencyPair("btc", "usdt"), Direction: model.Long},
	}})
	ex.SetRates(&model.ExchangeRates{Rates: []model.Rate{
		{Pair: model.NewCurrencyPair("usdt", "btc"), Mid: &reverse},
		{Pair: model.NewCurrencyPair("btc", "usdt"), Mid: &mid},
	}})
	return trade.NewFacade(ex, logger), ex
}

func orderIDs(l *model.OrderList) []string {
	ids := []string{}
	for _, o := range l.Orders {
		ids = append(ids, o.ID.String())
	}
	return ids
}

func TestFacade_GetOrders(t *testing.T) {
	allCalls := []string{
		memory.OpGetOrders(model.Closed),
		memory.OpGetOrders(model.Open),
		memory.OpGetOrders(model.Pending),
		memory.OpGetOrders(model.Canceled),
	}

	tests := map[string]struct {
		fail    []model.OrderStatus
		wantIDs []string
		wantErr bool
	}{
		"all succeed": {
			wantIDs: []string{"c1", "c2", "o1", "p1", "x1"},
		},
		"open fails": {
			fail:    []model.OrderStatus{model.Open},
			wantIDs: []string{"c1", "c2", "p1", "x1"},
		},
		"pending and canceled fail": {
			fail:    []model.OrderStatus{model.Pending, model.Canceled},
			wantIDs: []string{"c1", "c2", "o1"},
		},
		"closed fails": {
			fail:    []model.OrderStatus{model.Closed},
			wantErr: true,
		},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			f, ex := newFacade(t)
			ex.AddOrders(
				model.Order{ID: model.NewID("c1"), Status: model.Closed},
				model.Order{ID: model.NewID("o1"), Status: model.Open},
				model.Order{ID: model.NewID("c2"), Status: model.Closed},
				model.Order{ID: model.NewID("p1"), Status: model.Pending},
				model.Order{ID: model.NewID("x1"), Status: model.Canceled},
			)
			for _, s := range tt.fail {
				ex.FailOn(memory.OpGetOrders(s), errBoom)
			}

			got, err := f.GetOrders(context.Background())
			assert.Equal(t, allCalls, ex.Calls())
			if tt.wantErr {
				assert.Nil(t, got)
				assert.True(t, errors.Is(err, errBoom))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantIDs, orderIDs(got))
		})
	}
}

func TestFacade_CreateMarketOrder(t *testing.T) {
	tp := 40000.0
	sl := 25000.0

	tests := map[string]struct {
		req          *model.MarketOrderRequest
		fail         []string
		wantTariffID *model.ID
		wantInitial  *float64
		wantErr      bool
	}{
		"long order": {
			req:          &model.MarketOrderRequest{Pair: model.NewCurrencyPair("btc", "usdt"), Direction: model.Long, Multiplier: 4, InputAmount: 20, InputTicker: "usdt"},
			wantTariffID: idPtr("t-long"),
			wantInitial:  floatPtr(30000),
		},
		"short order with tp and sl": {
			req:          &model.MarketOrderRequest{Pair: model.NewCurrencyPair("btc", "usdt"), Direction: model.Short, Multiplier: 10, InputAmount: 50, InputTicker: "usdt", TP: &tp, SL: &sl},
			wantTariffID: idPtr("t-short"),
			wantInitial:  floatPtr(30000),
		},
		"rates unavailable": {
			req:          &model.MarketOrderRequest{Pair: model.NewCurrencyPair("btc", "usdt"), Direction: model.Long, Multiplier: 4, InputAmount: 20, InputTicker: "usdt"},
			fail:         []string{memory.OpGetRates},
			wantTariffID: idPtr("t-long"),
		},
		"tariffs unavailable": {
			req:         &model.MarketOrderRequest{Pair: model.NewCurrencyPair("btc", "usdt"), Direction: model.Long, Multiplier: 4, InputAmount: 20, InputTicker: "usdt"},
			fail:        []string{memory.OpGetTariffs},
			wantInitial: floatPtr(30000),
			wantErr:     true,
		},
		"unknown pair": {
			req:     &model.MarketOrderRequest{Pair: model.NewCurrencyPair("eth", "usdt"), Direction: model.Long, Multiplier: 4, InputAmount: 20, InputTicker: "usdt"},
			wantErr: true,
		},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			f, ex := newFacade(t)
			for _, op := range tt.fail {
				ex.FailOn(op, errBoom)
			}

			before := time.Now().UTC().Add(-time.Second)
			ack, err := f.CreateMarketOrder(context.Background(), tt.req)
			after := time.Now().UTC().Add(time.Second)

			assert.Equal(t, []string{memory.OpGetTariffs, memory.OpGetRates, memory.OpPostMarketOrder}, ex.Calls())

			posted := ex.PostedOrders()
			require.Len(t, posted, 1)
			o := posted[0]
			assert.Equal(t, tt.wantTariffID, o.TariffID)
			assert.Equal(t, tt.wantInitial, o.Initial)
			assert.Equal(t, tt.req.InputAmount, o.InputAmount)
			assert.Equal(t, tt.req.InputTicker, o.InputTicker)
			assert.Equal(t, tt.req.Multiplier, o.Multiplier)
			assert.Equal(t, tt.req.TP, o.TP)
			assert.Equal(t, tt.req.SL, o.SL)
			assert.Equal(t, time.UTC, o.Date.Location())
			assert.True(t, o.Date.After(before) && o.Date.Before(after))
			id, perr := uuid.Parse(o.RequestID)
			require.NoError(t, perr)
			assert.Equal(t, uuid.Version(4), id.Version())

			if tt.wantErr {
				assert.Nil(t, ack)
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.req.Pair, ack.Pair)
			assert.Equal(t, tt.req.Direction, ack.Direction)
		})
	}
}

func TestFacade_CreateMarketOrder_FreshRequestID(t *testing.T) {
	f, ex := newFacade(t)
	req := &model.MarketOrderRequest{Pair: model.NewCurrencyPair("btc", "usdt"), Direction: model.Long, Multiplier: 4, InputAmount: 20, InputTicker: "usdt"}

	_, err := f.CreateMarketOrder(context.Background(), req)
	require.NoError(t, err)
	_, err = f.CreateMarketOrder(context.Background(), req)
	require.NoError(t, err)

	posted := ex.PostedOrders()
	require.Len(t, posted, 2)
	assert.NotEqual(t, posted[0].RequestID, posted[1].RequestID)
}

func TestFacade_CancelMarketOrder(t *testing.T) {
	tests := map[string]struct {
		ack         func(t *testing.T, f *trade.Facade) *model.OrderAck
		fail        []string
		wantPrice   *float64
		wantSuccess bool
		wantErr     error
	}{
		"cancel created order": {
			ack: func(t *testing.T, f *trade.Facade) *model.OrderAck {
				ack, err := f.CreateMarketOrder(context.Background(), &model.MarketOrderRequest{
					Pair: model.NewCurrencyPair("btc", "usdt"), Direction: model.Long, Multiplier: 4, InputAmount: 20, InputTicker: "usdt",
				})
				require.NoError(t, err)
				return ack
			},
			wantPrice:   floatPtr(30000),
			wantSuccess: true,
		},
		"rates unavailable sends null price": {
			ack: func(t *testing.T, f *trade.Facade) *model.OrderAck {
				return &model.OrderAck{ID: model.NewID("missing"), Pair: model.NewCurrencyPair("btc", "usdt")}
			},
			fail:    []string{memory.OpGetRates},
			wantErr: memory.ErrOrderNotFound,
		},
		"nil ack": {
			ack:     func(t *testing.T, f *trade.Facade) *model.OrderAck { return nil },
			wantErr: trade.ErrNoOrderAck,
		},
		"ack without id": {
			ack: func(t *testing.T, f *trade.Facade) *model.OrderAck {
				return &model.OrderAck{Pair: model.NewCurrencyPair("btc", "usdt")}
			},
			wantErr: trade.ErrNoOrderID,
		},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			f, ex := newFacade(t)
			orderAck := tt.ack(t, f)
			for _, op := range tt.fail {
				ex.FailOn(op, errBoom)
			}

			got, err := f.CancelMarketOrder(context.Background(), orderAck)
			if tt.wantErr != nil {
				assert.Nil(t, got)
				assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.wantSuccess, got.Success)
			}
			if orderAck == nil || orderAck.ID.IsZero() {
				assert.Empty(t, ex.ClosedRequests())
				return
			}

			closed := ex.ClosedRequests()
			require.Len(t, closed, 1)
			assert.Equal(t, orderAck.ID, closed[0].ID)
			assert.Equal(t, tt.wantPrice, closed[0].Price)
			_, perr := uuid.Parse(closed[0].RequestID)
			assert.NoError(t, perr)
		})
	}
}

func idPtr(s string) *model.ID {
	id := model.NewID(s)
	return &id
}

func floatPtr(v float64) *float64 {
	return &v
}
