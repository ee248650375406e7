package exchange

import (
	"context"

	"github.com/randomsuffer/youhodler-connector/pkg/domain/model"
)

// Client 取引所クライアント
//
// 失敗したリクエストは nil とエラーを返す。
// 戻り値の nil は「失敗」を意味し「空の結果」とは区別しない。
type Client interface {
	GetBalance(ctx context.Context) (*model.Balance, error)
	GetRates(ctx context.Context) (*model.ExchangeRates, error)
	GetOhlc(ctx context.Context, pair model.CurrencyPair, tick string, mode model.PriceMode) (*model.Ohlc, error)
	GetTariffs(ctx context.Context) (*model.TariffList, error)
	GetOrders(ctx context.Context, status model.OrderStatus) (*model.OrderList, error)
	PostMarketOrder(ctx context.Context, o *model.NewMarketOrder) (*model.OrderAck, error)
	CloseMarketOrder(ctx context.Context, o *model.CloseMarketOrder) (*model.CancelMarketAck, error)
}
