package main

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/randomsuffer/youhodler-connector/pkg/domain/model"
	"github.com/randomsuffer/youhodler-connector/pkg/infrastructure/logging"
	"github.com/randomsuffer/youhodler-connector/pkg/infrastructure/memory"
	"github.com/randomsuffer/youhodler-connector/pkg/usecase/report"
	"github.com/randomsuffer/youhodler-connector/pkg/usecase/trade"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingNotifier struct {
	messages []string
}

func (n *recordingNotifier) Notify(format string, v ...interface{}) error {
	n.messages = append(n.messages, fmt.Sprintf(format, v...))
	return nil
}

func f(v float64) *float64 { return &v }

func newExchange() *memory.Exchange {
	pair := model.NewCurrencyPair("btc", "usdt")
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	cc := []model.Candlestick{}
	for i := 0; i < 30; i++ {
		v := float64(i + 1)
		cc = append(cc, model.Candlestick{Date: base.Add(time.Duration(i) * 5 * time.Minute), Open: v, High: v, Low: v, Close: v})
	}

	ex := memory.NewExchange()
	ex.SetBalance(&model.Balance{TotalCapitalUSD: 100, Wallets: []model.Wallet{{Ticker: "usdt", Amount: 100}}})
	ex.SetRates(&model.ExchangeRates{Rates: []model.Rate{{Pair: pair, Mid: f(40000), Ask: f(40010), Bid: f(39990)}}})
	ex.SetOhlc(model.NewOhlc(cc))
	ex.SetTariffs(&model.TariffList{Tariffs: []model.Tariff{{
		ID: model.NewID("t1"), Pair: pair, Direction: model.Long, MinMultiplier: 2, MaxMultiplier: 50, MinVolume: 10, MaxVolume: 1000,
	}}})
	ex.AddOrders(model.Order{ID: model.NewID("c1"), Status: model.Closed, Pair: pair, Direction: model.Long, InputTicker: "usdt", Profit: f(1), ProfitPercent: f(2)})
	return ex
}

func newApp(t *testing.T, ex *memory.Exchange, out io.Writer, order bool) (*app, *recordingNotifier) {
	t.Helper()

	logger, err := logging.NewLogger("error", io.Discard)
	require.NoError(t, err)

	notifier := &recordingNotifier{}
	conf := model.NewDefaultConfig()
	return &app{
		pair:      model.NewCurrencyPair("btc", "usdt"),
		tick:      "5m",
		mode:      model.Bid,
		indicator: &conf.Indicator,
		order: orderOptions{
			enabled:     order,
			direction:   model.Long,
			amount:      20,
			multiplier:  4,
			inputTicker: "usdt",
		},
		exCli:    ex,
		facade:   trade.NewFacade(ex, logger),
		printer:  report.NewPrinter(out),
		notifier: notifier,
		logger:   logger,
	}, notifier
}

func indexOf(ss []string, s string) int {
	for i, v := range ss {
		if v == s {
			return i
		}
	}
	return -1
}

func TestRegisterOrderFlags(t *testing.T) {
	tests := map[string]struct {
		args []string
		want orderOptions
	}{
		"defaults": {
			want: orderOptions{direction: model.Long, amount: 20, multiplier: 4, inputTicker: model.USDT},
		},
		"overridden": {
			args: []string{"-order", "-direction", "short", "-amount", "50", "-multiplier", "10", "-input-ticker", "btc"},
			want: orderOptions{enabled: true, direction: model.Short, amount: 50, multiplier: 10, inputTicker: "btc"},
		},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			fs := flag.NewFlagSet("connector", flag.ContinueOnError)
			opts := registerOrderFlags(fs)
			require.NoError(t, fs.Parse(tt.args))
			assert.Equal(t, tt.want, opts())
		})
	}
}

func TestApp_Run(t *testing.T) {
	ex := newExchange()
	buf := &bytes.Buffer{}
	a, notifier := newApp(t, ex, buf, false)

	a.run(context.Background())

	out := buf.String()
	for _, want := range []string{
		"Total Capital (USD): 100",
		"BTC/USDT, Ask: 40010, Bid: 39990, Mid: 40000",
		"Candlesticks:",
		"Indicators:",
		"BTC/USDT long: x2–50, volume 10 – 1000",
		"Order c1 CLOSED:",
	} {
		assert.Contains(t, out, want)
	}
	assert.Empty(t, ex.PostedOrders())
	assert.Empty(t, notifier.messages)
}

func TestApp_RoundTrip(t *testing.T) {
	ex := newExchange()
	buf := &bytes.Buffer{}
	a, notifier := newApp(t, ex, buf, true)

	a.run(context.Background())

	posted := ex.PostedOrders()
	require.Len(t, posted, 1)
	require.NotNil(t, posted[0].TariffID)
	assert.Equal(t, model.NewID("t1"), *posted[0].TariffID)
	assert.Equal(t, 20.0, posted[0].InputAmount)
	assert.Equal(t, 4, posted[0].Multiplier)
	assert.Equal(t, 40000.0, *posted[0].Initial)

	closed := ex.ClosedRequests()
	require.Len(t, closed, 1)
	assert.Equal(t, model.NewID("order-1"), closed[0].ID)

	calls := ex.Calls()
	post := indexOf(calls, memory.OpPostMarketOrder)
	require.GreaterOrEqual(t, post, 0)
	assert.Equal(t, []string{
		memory.OpPostMarketOrder,
		memory.OpGetOrders(model.Open),
		memory.OpGetRates,
		memory.OpCloseMarketOrder,
	}, calls[post:], "active orders are listed with a single OPEN request")

	out := buf.String()
	assert.Contains(t, out, "Order acknowledgement order-1 OPEN:")
	assert.Contains(t, out, "Order order-1 OPEN:")
	assert.Contains(t, out, "Cancel success: true")
	assert.Equal(t, []string{
		"market order created, id: order-1, pair: btc/usdt, long x4",
		"market order closed, id: order-1, success: true",
	}, notifier.messages)
}

func TestApp_RoundTrip_PostFails(t *testing.T) {
	ex := newExchange()
	ex.FailOn(memory.OpPostMarketOrder, errors.New("rejected"))
	buf := &bytes.Buffer{}
	a, notifier := newApp(t, ex, buf, true)

	a.run(context.Background())

	assert.Empty(t, ex.ClosedRequests())
	assert.NotContains(t, ex.Calls(), memory.OpCloseMarketOrder)
	assert.NotContains(t, buf.String(), "Cancel success")
	assert.Empty(t, notifier.messages)
}

func TestApp_ExportCSV(t *testing.T) {
	ex := newExchange()
	a, _ := newApp(t, ex, io.Discard, false)
	a.csvPath = filepath.Join(t.TempDir(), "candles.csv")

	a.run(context.Background())

	b, err := os.ReadFile(a.csvPath)
	require.NoError(t, err)
	rows := strings.Split(strings.TrimSpace(string(b)), "\n")
	assert.Len(t, rows, 31)
	assert.Equal(t, "date,open,high,low,close,forced", rows[0])
}
