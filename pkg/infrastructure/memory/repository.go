package memory

import (
	"sort"
	"sync"
	"time"

	"github.com/randomsuffer/youhodler-connector/pkg/domain/model"
	"github.com/randomsuffer/youhodler-connector/pkg/domain/repository"
)

type seriesKey struct {
	pair model.CurrencyPair
	tick string
	mode model.PriceMode
}

// CandleRepository ローソク足保存（系列ごとに最大 maxSize 本）
type CandleRepository struct {
	mu      sync.Mutex
	maxSize int
	series  map[seriesKey]map[time.Time]model.Candlestick
}

var _ repository.CandleRepository = (*CandleRepository)(nil)

// NewCandleRepository 生成
func NewCandleRepository(maxSize int) *CandleRepository {
	return &CandleRepository{
		maxSize: maxSize,
		series:  map[seriesKey]map[time.Time]model.Candlestick{},
	}
}

// UpsertCandles ローソク足の新規登録・更新
func (r *CandleRepository) UpsertCandles(pair model.CurrencyPair, tick string, mode model.PriceMode, ohlc *model.Ohlc) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := seriesKey{pair: pair, tick: tick, mode: mode}
	s, ok := r.series[key]
	if !ok {
		s = map[time.Time]model.Candlestick{}
		r.series[key] = s
	}
	for _, c := range ohlc.Candlesticks {
		s[c.Date.UTC()] = c
	}

	// 古いものから削除
	if r.maxSize > 0 && len(s) > r.maxSize {
		dates := make([]time.Time, 0, len(s))
		for d := range s {
			dates = append(dates, d)
		}
		sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })
		for _, d := range dates[:len(dates)-r.maxSize] {
			delete(s, d)
		}
	}
	return nil
}

// GetCandles since 以降のローソク足を取得
func (r *CandleRepository) GetCandles(pair model.CurrencyPair, tick string, mode model.PriceMode, since time.Time) (*model.Ohlc, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	cc := []model.Candlestick{}
	for d, c := range r.series[seriesKey{pair: pair, tick: tick, mode: mode}] {
		if d.Before(since) {
			continue
		}
		cc = append(cc, c)
	}
	return model.NewOhlc(cc), nil
}

// OrderRepository 注文保存
type OrderRepository struct {
	mu     sync.Mutex
	orders map[model.ID]model.Order
}

var _ repository.OrderRepository = (*OrderRepository)(nil)

// NewOrderRepository 生成
func NewOrderRepository() *OrderRepository {
	return &OrderRepository{orders: map[model.ID]model.Order{}}
}

// UpsertOrders 注文の新規登録・更新
func (r *OrderRepository) UpsertOrders(orders []model.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, o := range orders {
		r.orders[o.ID] = o
	}
	return nil
}

// GetOrders 注文を取得（status が nil の場合は全件、ID順）
func (r *OrderRepository) GetOrders(status *model.OrderStatus) ([]model.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	oo := []model.Order{}
	for _, o := range r.orders {
		if status != nil && o.Status != *status {
			continue
		}
		oo = append(oo, o)
	}
	sort.Slice(oo, func(i, j int) bool { return oo[i].ID.String() < oo[j].ID.String() })
	return oo, nil
}
