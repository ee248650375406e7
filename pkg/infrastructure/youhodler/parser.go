package youhodler

import (
	"bytes"
	"encoding/json"
	"time"

	"github.com/pkg/errors"
	"github.com/randomsuffer/youhodler-connector/pkg/domain/model"
)

// Parser レスポンスをドメインモデルに変換する関数
type Parser[T any] func(data json.RawMessage) (T, error)

func isNull(data json.RawMessage) bool {
	trimmed := bytes.TrimSpace(data)
	return len(trimmed) == 0 || string(trimmed) == "null"
}

func decode(data json.RawMessage, v interface{}) error {
	if isNull(data) {
		return ErrEmptyBody
	}
	return json.Unmarshal(data, v)
}

// orderedObject キーの出現順を保持する JSON オブジェクト（重複キーは最初の位置と最後の値）
type orderedObject struct {
	keys   []string
	values map[string]json.RawMessage
}

func (o *orderedObject) UnmarshalJSON(data []byte) error {
	o.keys = nil
	o.values = map[string]json.RawMessage{}
	if isNull(data) {
		return nil
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return errors.Errorf("json object expected, got %v", tok)
	}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := tok.(string)
		if !ok {
			return errors.Errorf("json object key expected, got %v", tok)
		}
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return err
		}
		if _, found := o.values[key]; !found {
			o.keys = append(o.keys, key)
		}
		o.values[key] = raw
	}
	_, err = dec.Token()
	return err
}

func parseOptionalTimestamp(s *string) (*time.Time, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	t, err := model.ParseTimestamp(*s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// ParseBalance 残高
func ParseBalance(data json.RawMessage) (*model.Balance, error) {
	var res balanceResponse
	if err := decode(data, &res); err != nil {
		return nil, errors.Wrap(err, "failed to parse balance")
	}
	if res.TotalCapital == nil {
		return nil, errors.Wrap(model.ErrMissingField, "totalCapital")
	}
	usd, err := res.TotalCapital.USD.required("totalCapital.usd")
	if err != nil {
		return nil, err
	}
	if res.Wallets == nil {
		return nil, errors.Wrap(model.ErrMissingField, "wallets")
	}

	b := &model.Balance{
		TotalCapitalUSD: usd,
		Wallets:         make([]model.Wallet, 0, len(res.Wallets)),
	}
	for _, w := range res.Wallets {
		b.Wallets = append(b.Wallets, toWallet(&w))
	}
	return b, nil
}

func toWallet(w *walletResponse) model.Wallet {
	capital := map[string]float64{}
	for k, v := range w.Capital {
		var n number
		if err := n.UnmarshalJSON(v); err != nil || !n.value.Valid {
			continue
		}
		capital[k] = n.orDefault(0)
	}

	return model.Wallet{
		Amount:                w.Amount.orDefault(0),
		Ticker:                w.Ticker,
		Address:               w.Address,
		CreateEnabled:         w.CreateEnabled,
		DepositEnabled:        w.DepositEnabled,
		WithdrawEnabled:       w.WithdrawEnabled,
		LoanEnabled:           w.LoanEnabled,
		TurboEnabled:          w.TurboEnabled,
		HodlEnabled:           w.HodlEnabled,
		MarketEnabled:         w.MarketEnabled,
		ChartEnabled:          w.ChartEnabled,
		Visible:               w.Visible,
		Products:              toStrings(w.Products),
		Tags:                  toStrings(w.Tags),
		HodlsInputAmount:      w.HodlsInputAmount.orDefault(0),
		DualsInputAmount:      w.DualsInputAmount.orDefault(0),
		LoansCollateralAmount: w.LoansCollateralAmount.orDefault(0),
		AmountForSavings:      w.AmountForSavings.orDefault(0),
		Capital:               capital,
	}
}

// ParseExchangeRates base -> quote -> レート の入れ子をフラットな一覧に変換（並びはレスポンスのまま）
func ParseExchangeRates(data json.RawMessage) (*model.ExchangeRates, error) {
	var res orderedObject
	if err := decode(data, &res); err != nil {
		return nil, errors.Wrap(err, "failed to parse exchange rates")
	}

	rates := &model.ExchangeRates{Rates: []model.Rate{}}
	for _, base := range res.keys {
		var quotes orderedObject
		if err := json.Unmarshal(res.values[base], &quotes); err != nil {
			return nil, errors.Wrapf(err, "failed to parse exchange rates, base: %s", base)
		}

		for _, quote := range quotes.keys {
			var r rateResponse
			if err := json.Unmarshal(quotes.values[quote], &r); err != nil {
				return nil, errors.Wrapf(err, "failed to parse exchange rates, pair: %s/%s", base, quote)
			}
			rates.Rates = append(rates.Rates, model.Rate{
				Pair:    model.NewCurrencyPair(base, quote),
				Mid:     r.Rate.nullable(),
				Ask:     r.Ask.nullable(),
				Bid:     r.Bid.nullable(),
				Diff24h: r.Diff24h.nullable(),
			})
		}
	}
	return rates, nil
}

// ParseOhlc ローソク足（日時の昇順に並べ替える）
func ParseOhlc(data json.RawMessage) (*model.Ohlc, error) {
	var res []candleResponse
	if err := decode(data, &res); err != nil {
		return nil, errors.Wrap(err, "failed to parse ohlc")
	}

	cc := make([]model.Candlestick, 0, len(res))
	for i, r := range res {
		c, err := toCandlestick(&r)
		if err != nil {
			return nil, errors.Wrapf(err, "candlestick[%d]", i)
		}
		cc = append(cc, *c)
	}
	return model.NewOhlc(cc), nil
}

func toCandlestick(r *candleResponse) (*model.Candlestick, error) {
	if r.Date == nil {
		return nil, errors.Wrap(model.ErrMissingField, "date")
	}
	date, err := model.ParseTimestamp(*r.Date)
	if err != nil {
		return nil, err
	}

	c := &model.Candlestick{Date: date, Forced: r.Forced}
	if c.Open, err = r.Open.required("open"); err != nil {
		return nil, err
	}
	if c.High, err = r.High.required("high"); err != nil {
		return nil, err
	}
	if c.Low, err = r.Low.required("low"); err != nil {
		return nil, err
	}
	if c.Close, err = r.Close.required("close"); err != nil {
		return nil, err
	}
	return c, nil
}

// ParseTariffList 取引条件一覧
func ParseTariffList(data json.RawMessage) (*model.TariffList, error) {
	var res []tariffResponse
	if err := decode(data, &res); err != nil {
		return nil, errors.Wrap(err, "failed to parse tariffs")
	}

	l := &model.TariffList{Tariffs: make([]model.Tariff, 0, len(res))}
	for i, r := range res {
		t, err := toTariff(&r)
		if err != nil {
			return nil, errors.Wrapf(err, "tariff[%d]", i)
		}
		l.Tariffs = append(l.Tariffs, *t)
	}
	return l, nil
}

func toTariff(r *tariffResponse) (*model.Tariff, error) {
	t := &model.Tariff{
		ID:                   r.ID,
		Pair:                 model.NewCurrencyPair(r.BaseTicker, r.QuoteTicker),
		AllowedInputTickers:  toStrings(r.AllowedInputTickers),
		IsEnabled:            r.IsEnabled,
		Direction:            model.NewDirection(r.IsShort),
		PendingOrderDisabled: r.PendingOrderDisabled,
		DayOff:               r.DayOff,
		DaysOff:              toStrings(r.DaysOff),
		TradingMode:          string(r.TradingMode),
	}

	var err error
	if t.MinMultiplier, err = r.MinMultiplier.requiredInt("minMultiplier"); err != nil {
		return nil, err
	}
	if t.MaxMultiplier, err = r.MaxMultiplier.requiredInt("maxMultiplier"); err != nil {
		return nil, err
	}
	if t.MinVolume, err = r.MinVolume.required("minVolume"); err != nil {
		return nil, err
	}
	if t.MaxVolume, err = r.MaxVolume.required("maxVolume"); err != nil {
		return nil, err
	}
	if t.TriggerPriceDistanceMax, err = r.TriggerPriceDistanceMax.required("triggerPriceDistanceMax"); err != nil {
		return nil, err
	}
	return t, nil
}

// ParseOrderList 注文一覧
func ParseOrderList(data json.RawMessage) (*model.OrderList, error) {
	var res orderListResponse
	if err := decode(data, &res); err != nil {
		return nil, errors.Wrap(err, "failed to parse orders")
	}

	l := &model.OrderList{Orders: make([]model.Order, 0, len(res.Rows))}
	for i, r := range res.Rows {
		o, err := toOrder(&r)
		if err != nil {
			return nil, errors.Wrapf(err, "order[%d]", i)
		}
		l.Orders = append(l.Orders, *o)
	}
	return l, nil
}

func toOrder(r *orderResponse) (*model.Order, error) {
	o := &model.Order{
		ID:           r.ID,
		AccountID:    string(r.AccountID),
		Direction:    model.NewDirection(r.IsShort),
		InputTicker:  r.InputTicker,
		Pair:         model.NewCurrencyPair(r.BaseTicker, r.QuoteTicker),
		OutputAmount: r.OutputAmount.nonZero(),
		SLPrice:      r.SLPrice.nonZero(),
		ClosedPrice:  r.ClosedPrice.nonZero(),
		Status:       model.OrderStatus(r.Status),
		Reason:       string(r.Reason),
		OrderType:    string(r.OrderType),
	}

	var err error
	if o.Multiplier, err = r.Multiplier.requiredInt("multiplier"); err != nil {
		return nil, err
	}
	if o.InputAmount, err = r.InputAmount.required("inputAmount"); err != nil {
		return nil, err
	}
	if o.InitialPrice, err = r.InitialPrice.required("initialPrice"); err != nil {
		return nil, err
	}
	if o.MCPrice, err = r.MCPrice.required("mcPrice"); err != nil {
		return nil, err
	}
	if o.FTPPrice, err = r.FTPPrice.required("ftpPrice"); err != nil {
		return nil, err
	}
	if o.TPPrice, err = r.TPPrice.required("tpPrice"); err != nil {
		return nil, err
	}
	if o.TriggerPrice, err = r.TriggerPrice.required("triggerPrice"); err != nil {
		return nil, err
	}
	if o.StartedAt, err = parseOptionalTimestamp(r.StartedAt); err != nil {
		return nil, errors.Wrap(err, "startedAt")
	}
	if o.FinishedAt, err = parseOptionalTimestamp(r.FinishedAt); err != nil {
		return nil, errors.Wrap(err, "finishedAt")
	}

	// 損益はCLOSEDとOPENのみ
	var p *profitResponse
	var field string
	switch o.Status {
	case model.Closed:
		p, field = r.Closed, "closed"
	case model.Open:
		p, field = r.CloseCalculate, "closeCalculate"
	default:
		return o, nil
	}
	if p == nil {
		return nil, errors.Wrap(model.ErrMissingField, field)
	}
	profit, err := p.Profit.required(field + ".profit")
	if err != nil {
		return nil, err
	}
	percent, err := p.Percent.percent(field + ".percent")
	if err != nil {
		return nil, err
	}
	o.Profit = &profit
	o.ProfitPercent = &percent
	return o, nil
}

// ParseOrderAck 注文受付結果
func ParseOrderAck(data json.RawMessage) (*model.OrderAck, error) {
	var res orderAckResponse
	if err := decode(data, &res); err != nil {
		return nil, errors.Wrap(err, "failed to parse order ack")
	}

	createdAt, err := parseOptionalTimestamp(res.ClientCreatedAt)
	if err != nil {
		return nil, errors.Wrap(err, "clientCreatedAt")
	}

	return &model.OrderAck{
		ID:                 res.ID,
		Direction:          model.NewDirection(res.IsShort),
		Pair:               model.NewCurrencyPair(res.BaseTicker, res.QuoteTicker),
		InputAmount:        res.InputAmount.orDefault(0),
		InputTicker:        res.InputTicker,
		Status:             model.OrderStatus(res.Status),
		Multiplier:         int(res.Multiplier.orDefault(0)),
		ClientInitialPrice: res.ClientInitialPrice.orDefault(0),
		ClientCreatedAt:    createdAt,
		TP:                 res.TPPrice.orDefault(0),
		SL:                 res.SLPrice.nonZero(),
	}, nil
}

// ParseCancelMarketAck 空のレスポンス（204）のみ成功とみなす
func ParseCancelMarketAck(data json.RawMessage) (*model.CancelMarketAck, error) {
	return &model.CancelMarketAck{Success: isNull(data)}, nil
}

// ParseRaw 変換せずにそのまま返す
func ParseRaw(data json.RawMessage) (json.RawMessage, error) {
	return data, nil
}
