package mysql_test

import (
	"testing"
	"time"

	"github.com/randomsuffer/youhodler-connector/pkg/domain/model"
	"github.com/randomsuffer/youhodler-connector/pkg/infrastructure/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func f(v float64) *float64 { return &v }

func TestMakeDSN(t *testing.T) {
	conf := &model.DB{Host: "db", Port: 3306, Name: "youhodler", UserName: "user", Password: "pass"}
	assert.Equal(t, "user:pass@tcp(db:3306)/youhodler?charset=utf8mb4&parseTime=True&loc=UTC", mysql.MakeDSN(conf))
}

func TestNewCandles(t *testing.T) {
	jst := time.FixedZone("JST", 9*60*60)
	pair := model.NewCurrencyPair("btc", "usdt")
	ohlc := &model.Ohlc{Candlesticks: []model.Candlestick{
		{Date: time.Date(2024, 1, 1, 9, 0, 0, 0, jst), Open: 1, High: 2, Low: 0.5, Close: 1.5},
		{Date: time.Date(2024, 1, 1, 0, 5, 0, 0, time.UTC), Open: 1.5, High: 3, Low: 1, Close: 2, Forced: true},
	}}

	records := mysql.NewCandles(pair, "5m", model.Bid, ohlc)
	require.Len(t, records, 2)
	assert.Equal(t, "btc/usdt", records[0].Pair)
	assert.Equal(t, "5m", records[0].Tick)
	assert.Equal(t, "bid", records[0].Mode)
	assert.Equal(t, time.UTC, records[0].Date.Location())
	assert.True(t, records[0].Date.Equal(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)))

	got := records[1].ToDomainModel()
	assert.Equal(t, ohlc.Candlesticks[1], got)
}

func TestOrder_ToDomainModel(t *testing.T) {
	started := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	tests := map[string]struct {
		order   model.Order
		pair    string
		wantErr bool
	}{
		"closed order": {
			order: model.Order{
				ID:            model.NewID("o1"),
				AccountID:     "acc",
				Direction:     model.Long,
				Multiplier:    20,
				InputTicker:   "usdt",
				Pair:          model.NewCurrencyPair("btc", "usdt"),
				InputAmount:   4,
				OutputAmount:  f(4.4),
				InitialPrice:  40000,
				MCPrice:       38000,
				FTPPrice:      80000,
				TPPrice:       42000,
				ClosedPrice:   f(42000),
				TriggerPrice:  40000,
				Status:        model.Closed,
				Reason:        "TP",
				OrderType:     "MARKET",
				StartedAt:     &started,
				Profit:        f(10.5),
				ProfitPercent: f(5),
			},
		},
		"pending order without optional fields": {
			order: model.Order{
				ID:        model.NewID("p1"),
				Direction: model.Short,
				Pair:      model.NewCurrencyPair("eth", "usdt"),
				Status:    model.Pending,
			},
		},
		"numeric id": {
			order: model.Order{
				ID:        model.NewNumericID("12345"),
				Direction: model.Long,
				Pair:      model.NewCurrencyPair("btc", "usdt"),
				Status:    model.Open,
			},
		},
		"broken pair": {
			order:   model.Order{ID: model.NewID("x")},
			pair:    "broken",
			wantErr: true,
		},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			record := mysql.NewOrder(&tt.order)
			if tt.pair != "" {
				record.Pair = tt.pair
			}

			got, err := record.ToDomainModel()
			if tt.wantErr {
				assert.Nil(t, got)
				assert.ErrorIs(t, err, model.ErrInvalidPair)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.order, *got)
		})
	}
}
