package youhodler

import (
	"context"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/randomsuffer/youhodler-connector/pkg/domain"
	"github.com/randomsuffer/youhodler-connector/pkg/domain/exchange"
	"github.com/randomsuffer/youhodler-connector/pkg/domain/model"
)

const (
	ohlcPoints   = "100"
	historyLimit = "100"
)

// Client YouHodler用クライアント
type Client struct {
	endpoint string
	headers  map[string]string
	http     *resty.Client
	logger   domain.Logger
	recorder Recorder
}

var _ exchange.Client = (*Client)(nil)

// NewClient 生成
//
// recorder が nil の場合は記録しない。
func NewClient(conf *model.Config, logger domain.Logger, recorder Recorder) *Client {
	if recorder == nil {
		recorder = nopRecorder{}
	}
	return &Client{
		endpoint: conf.APIEndpoint,
		headers: map[string]string{
			"Authorization":     "bearer " + conf.BearerToken,
			"Content-Type":      "application/json",
			"x-device-type":     "api",
			"x-device-uuid":     conf.DeviceUUID,
			"x-use-i18n-errors": "true",
		},
		http:     resty.New(),
		logger:   logger,
		recorder: recorder,
	}
}

// GetBalance 残高取得
func (c *Client) GetBalance(ctx context.Context) (*model.Balance, error) {
	return Call(ctx, c, MethodGet, "v3/balance", nil, nil, ParseBalance)
}

// GetRates 全通貨ペアのレート取得
func (c *Client) GetRates(ctx context.Context) (*model.ExchangeRates, error) {
	return Call(ctx, c, MethodGet, "v1/exchange/rates-ext", nil, nil, ParseExchangeRates)
}

// GetOhlc 直近100本のローソク足取得
func (c *Client) GetOhlc(ctx context.Context, pair model.CurrencyPair, tick string, mode model.PriceMode) (*model.Ohlc, error) {
	params := map[string]string{
		"type":       "candle",
		"fromTicker": pair.Base,
		"toTicker":   pair.Quote,
		"tick":       tick,
		"points":     ohlcPoints,
		"toDate":     model.FormatTimestamp(time.Now()),
		"mode":       string(mode),
	}
	return Call(ctx, c, MethodGet, "v2/rates/chart", params, nil, ParseOhlc)
}

// GetTariffs 取引条件取得
func (c *Client) GetTariffs(ctx context.Context) (*model.TariffList, error) {
	return Call(ctx, c, MethodGet, "v3/hodl/tariffs", nil, nil, ParseTariffList)
}

// GetOrders ステータスを指定して注文取得
func (c *Client) GetOrders(ctx context.Context, status model.OrderStatus) (*model.OrderList, error) {
	params := map[string]string{"status": string(status)}
	if status == model.Closed || status == model.Canceled {
		params["limit"] = historyLimit
		params["offset"] = "0"
	}
	return Call(ctx, c, MethodGet, "v3/hodl", params, nil, ParseOrderList)
}

// PostMarketOrder 成行注文
func (c *Client) PostMarketOrder(ctx context.Context, o *model.NewMarketOrder) (*model.OrderAck, error) {
	payload := &NewOrder{
		Date:        model.FormatTimestamp(o.Date),
		Initial:     o.Initial,
		InputAmount: o.InputAmount,
		InputTicker: o.InputTicker,
		Multiplier:  o.Multiplier,
		TariffID:    o.TariffID,
		RequestID:   o.RequestID,
		TP:          o.TP,
		SL:          o.SL,
	}
	return Call(ctx, c, MethodPost, "v3/hodl", nil, payload, ParseOrderAck)
}

// CloseMarketOrder 成行決済
func (c *Client) CloseMarketOrder(ctx context.Context, o *model.CloseMarketOrder) (*model.CancelMarketAck, error) {
	payload := &CloseOrder{
		Date:      model.FormatTimestamp(o.Date),
		ID:        o.ID,
		Price:     o.Price,
		RequestID: o.RequestID,
	}
	return Call(ctx, c, MethodPost, "v3/hodl/closeNow", nil, payload, ParseCancelMarketAck)
}
