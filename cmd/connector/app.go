package main

import (
	"context"

	"github.com/randomsuffer/youhodler-connector/pkg/domain"
	"github.com/randomsuffer/youhodler-connector/pkg/domain/exchange"
	"github.com/randomsuffer/youhodler-connector/pkg/domain/model"
	"github.com/randomsuffer/youhodler-connector/pkg/usecase"
	"github.com/randomsuffer/youhodler-connector/pkg/usecase/report"
	"github.com/randomsuffer/youhodler-connector/pkg/usecase/trade"
)

type orderOptions struct {
	enabled     bool
	direction   model.Direction
	amount      float64
	multiplier  int
	inputTicker string
}

type app struct {
	pair      model.CurrencyPair
	tick      string
	mode      model.PriceMode
	indicator *model.Indicator
	csvPath   string
	order     orderOptions

	exCli    exchange.Client
	facade   *trade.Facade
	printer  *report.Printer
	notifier domain.Notifier
	logger   domain.Logger
}

// run 残高・レート・ローソク足・取引条件・注文を順に表示し、指定があれば注文して決済する
func (a *app) run(ctx context.Context) {
	if balance, err := a.exCli.GetBalance(ctx); err != nil {
		a.logger.Error("failed to get balance, error: %v", err)
	} else {
		a.printer.Balance(balance)
	}

	if rates, err := a.exCli.GetRates(ctx); err != nil {
		a.logger.Error("failed to get rates, error: %v", err)
	} else {
		a.printer.Rates(rates)
	}

	if ohlc, err := a.exCli.GetOhlc(ctx, a.pair, a.tick, a.mode); err != nil {
		a.logger.Error("failed to get ohlc, error: %v", err)
	} else {
		a.printer.Ohlc(ohlc)
		a.analyze(ohlc)
	}

	if tariffs, err := a.exCli.GetTariffs(ctx); err != nil {
		a.logger.Error("failed to get tariffs, error: %v", err)
	} else {
		a.printer.Tariffs(tariffs)
	}

	if orders, err := a.facade.GetOrders(ctx); err != nil {
		a.logger.Error("failed to get orders, error: %v", err)
	} else {
		a.printer.Orders(orders)
	}

	if a.order.enabled {
		a.roundTrip(ctx)
	}
}

func (a *app) analyze(ohlc *model.Ohlc) {
	if ind, err := usecase.CalcIndicators(ohlc, a.indicator); err != nil {
		a.logger.Error("failed to calc indicators, error: %v", err)
	} else {
		a.printer.Indicators(ind)
	}

	if a.csvPath == "" {
		return
	}
	if err := usecase.NewCandleLogger(a.csvPath).Append(ohlc); err != nil {
		a.logger.Error("failed to export candles, error: %v", err)
	}
}

// roundTrip 成行注文、保有中(OPEN)の注文の表示、成行決済の順に実行
func (a *app) roundTrip(ctx context.Context) {
	ack, err := a.facade.CreateMarketOrder(ctx, &model.MarketOrderRequest{
		Pair:        a.pair,
		Direction:   a.order.direction,
		Multiplier:  a.order.multiplier,
		InputAmount: a.order.amount,
		InputTicker: a.order.inputTicker,
	})
	if err != nil {
		a.logger.Error("failed to create market order, error: %v", err)
	} else {
		a.printer.OrderAck(ack)
		a.notify("market order created, id: %s, pair: %s, %s x%d", ack.ID, ack.Pair, ack.Direction, ack.Multiplier)
	}

	if orders, err := a.exCli.GetOrders(ctx, model.Open); err != nil {
		a.logger.Error("failed to get active orders, error: %v", err)
	} else {
		a.printer.Orders(orders)
	}

	cancelAck, err := a.facade.CancelMarketOrder(ctx, ack)
	if err != nil {
		a.logger.Error("failed to cancel market order, error: %v", err)
		return
	}
	a.printer.CancelAck(cancelAck)
	a.notify("market order closed, id: %s, success: %t", ack.ID, cancelAck.Success)
}

func (a *app) notify(format string, v ...interface{}) {
	if a.notifier == nil {
		return
	}
	if err := a.notifier.Notify(format, v...); err != nil {
		a.logger.Error("failed to notify, error: %v", err)
	}
}
