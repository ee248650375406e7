package memory_test

import (
	"context"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/randomsuffer/youhodler-connector/pkg/domain/model"
	"github.com/randomsuffer/youhodler-connector/pkg/infrastructure/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newExchange() *memory.Exchange {
	mid := 30000.0
	e := memory.NewExchange()
	e.SetTariffs(&model.TariffList{Tariffs: []model.Tariff{
		{ID: model.NewID("t-long"), Pair: model.NewCurrencyPair("btc", "usdt"), Direction: model.Long},
	}})
	e.SetRates(&model.ExchangeRates{Rates: []model.Rate{
		{Pair: model.NewCurrencyPair("btc", "usdt"), Mid: &mid},
	}})
	return e
}

func TestExchange_OrderLifecycle(t *testing.T) {
	ctx := context.Background()
	e := newExchange()

	tariffID := model.NewID("t-long")
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	ack, err := e.PostMarketOrder(ctx, &model.NewMarketOrder{
		Date:        now,
		InputAmount: 20,
		InputTicker: "usdt",
		Multiplier:  4,
		TariffID:    &tariffID,
		RequestID:   "r1",
	})
	require.NoError(t, err)
	assert.Equal(t, model.NewID("order-1"), ack.ID)
	assert.Equal(t, model.NewCurrencyPair("btc", "usdt"), ack.Pair)
	assert.Equal(t, 30000.0, ack.ClientInitialPrice)

	open, err := e.GetOrders(ctx, model.Open)
	require.NoError(t, err)
	require.Len(t, open.Orders, 1)
	assert.Equal(t, model.NewID("order-1"), open.Orders[0].ID)

	price := 31000.0
	cancel, err := e.CloseMarketOrder(ctx, &model.CloseMarketOrder{Date: now.Add(time.Minute), ID: ack.ID, Price: &price, RequestID: "r2"})
	require.NoError(t, err)
	assert.True(t, cancel.Success)

	open, err = e.GetOrders(ctx, model.Open)
	require.NoError(t, err)
	assert.Empty(t, open.Orders)

	closed, err := e.GetOrders(ctx, model.Closed)
	require.NoError(t, err)
	require.Len(t, closed.Orders, 1)
	assert.Equal(t, model.Closed, closed.Orders[0].Status)
	assert.Equal(t, &price, closed.Orders[0].ClosedPrice)

	assert.Len(t, e.PostedOrders(), 1)
	assert.Len(t, e.ClosedRequests(), 1)
}

func TestExchange_Errors(t *testing.T) {
	ctx := context.Background()
	boom := errors.New("boom")

	tests := map[string]struct {
		setup   func(e *memory.Exchange)
		call    func(e *memory.Exchange) error
		wantErr error
	}{
		"injected failure": {
			setup: func(e *memory.Exchange) { e.FailOn(memory.OpGetBalance, boom) },
			call: func(e *memory.Exchange) error {
				b, err := e.GetBalance(ctx)
				if b != nil {
					return errors.New("balance must be nil")
				}
				return err
			},
			wantErr: boom,
		},
		"failure per status": {
			setup: func(e *memory.Exchange) { e.FailOn(memory.OpGetOrders(model.Closed), boom) },
			call: func(e *memory.Exchange) error {
				if _, err := e.GetOrders(ctx, model.Open); err != nil {
					return err
				}
				_, err := e.GetOrders(ctx, model.Closed)
				return err
			},
			wantErr: boom,
		},
		"unknown tariff": {
			call: func(e *memory.Exchange) error {
				_, err := e.PostMarketOrder(ctx, &model.NewMarketOrder{})
				return err
			},
			wantErr: memory.ErrTariffNotFound,
		},
		"unknown order": {
			call: func(e *memory.Exchange) error {
				_, err := e.CloseMarketOrder(ctx, &model.CloseMarketOrder{ID: model.NewID("x")})
				return err
			},
			wantErr: memory.ErrOrderNotFound,
		},
		"cleared failure": {
			setup: func(e *memory.Exchange) {
				e.FailOn(memory.OpGetRates, boom)
				e.FailOn(memory.OpGetRates, nil)
			},
			call: func(e *memory.Exchange) error {
				_, err := e.GetRates(ctx)
				return err
			},
		},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			e := newExchange()
			if tt.setup != nil {
				tt.setup(e)
			}
			err := tt.call(e)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
		})
	}
}

func TestExchange_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	e := newExchange()
	e.AddOrders(model.Order{ID: model.NewID("a"), Status: model.Closed}, model.Order{ID: model.NewID("b"), Status: model.Open})

	closed, err := e.GetOrders(ctx, model.Closed)
	require.NoError(t, err)
	open, err := e.GetOrders(ctx, model.Open)
	require.NoError(t, err)
	closed.Merge(open)
	require.Len(t, closed.Orders, 2)

	again, err := e.GetOrders(ctx, model.Closed)
	require.NoError(t, err)
	assert.Len(t, again.Orders, 1)

	assert.Equal(t, []string{
		memory.OpGetOrders(model.Closed),
		memory.OpGetOrders(model.Open),
		memory.OpGetOrders(model.Closed),
	}, e.Calls())
}
