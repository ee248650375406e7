package repository

import (
	"time"

	"github.com/randomsuffer/youhodler-connector/pkg/domain/model"
)

// CandleRepository ローソク足用リポジトリ
type CandleRepository interface {
	UpsertCandles(pair model.CurrencyPair, tick string, mode model.PriceMode, ohlc *model.Ohlc) error
	GetCandles(pair model.CurrencyPair, tick string, mode model.PriceMode, since time.Time) (*model.Ohlc, error)
}

// OrderRepository 注文用リポジトリ
type OrderRepository interface {
	UpsertOrders(orders []model.Order) error
	GetOrders(status *model.OrderStatus) ([]model.Order, error)
}
