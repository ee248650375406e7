package mysql

import (
	"fmt"
	"time"

	"github.com/pkg/errors"
	"github.com/randomsuffer/youhodler-connector/pkg/domain/model"
	"github.com/randomsuffer/youhodler-connector/pkg/domain/repository"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

// Client MySQL用クライアント
type Client struct {
	db *gorm.DB
}

var (
	_ repository.CandleRepository = (*Client)(nil)
	_ repository.OrderRepository  = (*Client)(nil)
)

// MakeDSN 接続文字列を生成
func MakeDSN(conf *model.DB) string {
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=UTC",
		conf.UserName, conf.Password, conf.Host, conf.Port, conf.Name)
}

// NewClient MySQL用クライアントの生成
func NewClient(conf *model.DB) (*Client, error) {
	db, err := gorm.Open(mysql.Open(MakeDSN(conf)), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to connect database, host: %s:%d", conf.Host, conf.Port)
	}
	return &Client{db: db}, nil
}

// Migrate テーブルの作成・更新
func (c *Client) Migrate() error {
	return c.db.AutoMigrate(&Candle{}, &Order{})
}

// UpsertCandles ローソク足の新規登録・更新
func (c *Client) UpsertCandles(pair model.CurrencyPair, tick string, mode model.PriceMode, ohlc *model.Ohlc) error {
	records := NewCandles(pair, tick, mode, ohlc)
	if len(records) == 0 {
		return nil
	}
	return c.db.Clauses(clause.OnConflict{UpdateAll: true}).Create(&records).Error
}

// GetCandles since 以降のローソク足を取得
func (c *Client) GetCandles(pair model.CurrencyPair, tick string, mode model.PriceMode, since time.Time) (*model.Ohlc, error) {
	records := []Candle{}
	err := c.db.
		Where("pair = ? AND tick = ? AND mode = ? AND date >= ?", pair.String(), tick, string(mode), since.UTC()).
		Order("date").
		Find(&records).Error
	if err != nil {
		return nil, err
	}

	cc := make([]model.Candlestick, 0, len(records))
	for _, r := range records {
		cc = append(cc, r.ToDomainModel())
	}
	return model.NewOhlc(cc), nil
}

// UpsertOrders 注文情報の新規登録・更新
func (c *Client) UpsertOrders(orders []model.Order) error {
	if len(orders) == 0 {
		return nil
	}

	records := []Order{}
	for _, order := range orders {
		records = append(records, *NewOrder(&order))
	}

	return c.db.Clauses(clause.OnConflict{UpdateAll: true}).Create(&records).Error
}

// GetOrders 注文情報を取得（status が nil の場合は全件）
func (c *Client) GetOrders(status *model.OrderStatus) ([]model.Order, error) {
	tx := c.db.Order("id")
	if status != nil {
		tx = tx.Where("status = ?", string(*status))
	}

	records := []Order{}
	if err := tx.Find(&records).Error; err != nil {
		return nil, err
	}

	orders := make([]model.Order, 0, len(records))
	for _, r := range records {
		o, err := r.ToDomainModel()
		if err != nil {
			return nil, err
		}
		orders = append(orders, *o)
	}
	return orders, nil
}
