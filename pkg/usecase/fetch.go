package usecase

import (
	"context"

	"github.com/pkg/errors"
	"github.com/randomsuffer/youhodler-connector/pkg/domain"
	"github.com/randomsuffer/youhodler-connector/pkg/domain/exchange"
	"github.com/randomsuffer/youhodler-connector/pkg/domain/model"
	"github.com/randomsuffer/youhodler-connector/pkg/domain/repository"
	"github.com/randomsuffer/youhodler-connector/pkg/usecase/trade"
)

// Fetcher 情報取得
type Fetcher struct {
	pair       model.CurrencyPair
	tick       string
	mode       model.PriceMode
	exCli      exchange.Client
	facade     *trade.Facade
	candleRepo repository.CandleRepository
	orderRepo  repository.OrderRepository
	logger     domain.Logger
}

// NewFetcher 生成
func NewFetcher(
	conf *model.Fetcher,
	exCli exchange.Client,
	candleRepo repository.CandleRepository,
	orderRepo repository.OrderRepository,
	logger domain.Logger,
) (*Fetcher, error) {
	pair, err := model.ParseToCurrencyPair(conf.Pair)
	if err != nil {
		return nil, err
	}
	return &Fetcher{
		pair:       *pair,
		tick:       conf.Tick,
		mode:       model.PriceMode(conf.Mode),
		exCli:      exCli,
		facade:     trade.NewFacade(exCli, logger),
		candleRepo: candleRepo,
		orderRepo:  orderRepo,
		logger:     logger,
	}, nil
}

// Fetch ローソク足と注文を取得して保存
//
// 注文の取得に失敗しても保存済みのローソク足はそのまま残る。
func (f *Fetcher) Fetch(ctx context.Context) error {
	ohlc, err := f.exCli.GetOhlc(ctx, f.pair, f.tick, f.mode)
	if err != nil {
		return errors.Wrapf(err, "failed to get ohlc, pair: %s", f.pair)
	}
	if err := f.candleRepo.UpsertCandles(f.pair, f.tick, f.mode, ohlc); err != nil {
		return errors.Wrap(err, "failed to save candles")
	}
	f.logger.Debug("saved %d candles, pair: %s, tick: %s", len(ohlc.Candlesticks), f.pair, f.tick)

	orders, err := f.facade.GetOrders(ctx)
	if err != nil {
		return err
	}
	if err := f.orderRepo.UpsertOrders(orders.Orders); err != nil {
		return errors.Wrap(err, "failed to save orders")
	}
	f.logger.Debug("saved %d orders", len(orders.Orders))

	return nil
}
