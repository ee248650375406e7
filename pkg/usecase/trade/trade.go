package trade

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/randomsuffer/youhodler-connector/pkg/domain"
	"github.com/randomsuffer/youhodler-connector/pkg/domain/exchange"
	"github.com/randomsuffer/youhodler-connector/pkg/domain/model"
)

var (
	// ErrNoOrderAck 決済対象の注文受付結果がない
	ErrNoOrderAck = errors.New("order ack is nil")
	// ErrNoOrderID 注文受付結果に注文IDがない
	ErrNoOrderID = errors.New("order ack has no id")
)

// Facade トレード操作をまとめたもの
type Facade struct {
	exClient exchange.Client
	logger   domain.Logger
}

// NewFacade 生成
func NewFacade(exCli exchange.Client, logger domain.Logger) *Facade {
	return &Facade{
		exClient: exCli,
		logger:   logger,
	}
}

// GetOrders 全ステータスの注文を取得
//
// CLOSED の一覧に OPEN・PENDING・CANCELED の一覧を順に追加する。
// CLOSED の取得に失敗した場合は nil を返す。それ以外の失敗は読み飛ばす。
func (f *Facade) GetOrders(ctx context.Context) (*model.OrderList, error) {
	orders, closedErr := f.exClient.GetOrders(ctx, model.Closed)

	for _, status := range []model.OrderStatus{model.Open, model.Pending, model.Canceled} {
		l, err := f.exClient.GetOrders(ctx, status)
		if err != nil {
			f.logger.Error("failed to get %s orders, error: %v", status, err)
			continue
		}
		if orders != nil {
			orders.Merge(l)
		}
	}

	if closedErr != nil {
		return nil, errors.Wrap(closedErr, "failed to get closed orders")
	}
	return orders, nil
}

// CreateMarketOrder 成行注文
//
// 取引条件・レートが見つからない場合は tariffId・initial を null にして送信する。
func (f *Facade) CreateMarketOrder(ctx context.Context, req *model.MarketOrderRequest) (*model.OrderAck, error) {
	now := time.Now().UTC()

	var tariffID *model.ID
	if tariffs, err := f.exClient.GetTariffs(ctx); err != nil {
		f.logger.Error("failed to get tariffs, error: %v", err)
	} else if t := tariffs.SearchTariff(req.Pair.Base, req.Pair.Quote, req.Direction); t != nil {
		id := t.ID
		tariffID = &id
	} else {
		f.logger.Error("tariff not found, pair: %s, direction: %s", req.Pair, req.Direction)
	}

	initial := f.midPrice(ctx, req.Pair)

	o := &model.NewMarketOrder{
		Date:        now,
		Initial:     initial,
		InputAmount: req.InputAmount,
		InputTicker: req.InputTicker,
		Multiplier:  req.Multiplier,
		TariffID:    tariffID,
		RequestID:   uuid.NewString(),
		TP:          req.TP,
		SL:          req.SL,
	}
	f.logger.Debug("post market order: %+v", o)

	ack, err := f.exClient.PostMarketOrder(ctx, o)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to post market order, pair: %s", req.Pair)
	}
	return ack, nil
}

// CancelMarketOrder 注文を成行で決済
func (f *Facade) CancelMarketOrder(ctx context.Context, ack *model.OrderAck) (*model.CancelMarketAck, error) {
	if ack == nil {
		return nil, ErrNoOrderAck
	}
	if ack.ID.IsZero() {
		return nil, errors.Wrapf(ErrNoOrderID, "pair: %s", ack.Pair)
	}
	now := time.Now().UTC()

	o := &model.CloseMarketOrder{
		Date:      now,
		ID:        ack.ID,
		Price:     f.midPrice(ctx, ack.Pair),
		RequestID: uuid.NewString(),
	}
	f.logger.Debug("close market order: %+v", o)

	res, err := f.exClient.CloseMarketOrder(ctx, o)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to close market order, id: %s", ack.ID)
	}
	return res, nil
}

// midPrice 現在の仲値（取得できない場合は nil）
func (f *Facade) midPrice(ctx context.Context, pair model.CurrencyPair) *float64 {
	rates, err := f.exClient.GetRates(ctx)
	if err != nil {
		f.logger.Error("failed to get rates, error: %v", err)
		return nil
	}
	mid := rates.MidPrice(pair)
	if mid == nil {
		f.logger.Error("rate not found, pair: %s", pair)
	}
	return mid
}
