package youhodler

import (
	"bytes"
	"encoding/json"
	"strconv"

	"github.com/pkg/errors"
	"github.com/randomsuffer/youhodler-connector/pkg/domain/model"
	"github.com/shopspring/decimal"
)

// number 数値または数値文字列（null・空文字は未設定）
type number struct {
	value decimal.NullDecimal
}

func (n *number) UnmarshalJSON(b []byte) error {
	s := string(bytes.TrimSpace(b))
	if s == "null" || s == `""` {
		n.value.Valid = false
		return nil
	}
	return n.value.UnmarshalJSON(b)
}

func (n number) orDefault(def float64) float64 {
	if !n.value.Valid {
		return def
	}
	return n.value.Decimal.InexactFloat64()
}

func (n number) nullable() *float64 {
	if !n.value.Valid {
		return nil
	}
	v := n.value.Decimal.InexactFloat64()
	return &v
}

// nonZero 未設定または0の場合nil
func (n number) nonZero() *float64 {
	if !n.value.Valid || n.value.Decimal.IsZero() {
		return nil
	}
	return n.nullable()
}

func (n number) required(field string) (float64, error) {
	if !n.value.Valid {
		return 0, errors.Wrap(model.ErrMissingField, field)
	}
	return n.value.Decimal.InexactFloat64(), nil
}

func (n number) requiredInt(field string) (int, error) {
	if !n.value.Valid {
		return 0, errors.Wrap(model.ErrMissingField, field)
	}
	return int(n.value.Decimal.IntPart()), nil
}

// percent 1.0基準の比率をパーセントに変換（1.05 -> 5）
func (n number) percent(field string) (float64, error) {
	if !n.value.Valid {
		return 0, errors.Wrap(model.ErrMissingField, field)
	}
	hundred := decimal.NewFromInt(100)
	return n.value.Decimal.Mul(hundred).Sub(hundred).InexactFloat64(), nil
}

// text 文字列・数値どちらでも受け付ける識別子等
type text string

func (t *text) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if string(b) == "null" {
		*t = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		s, err := strconv.Unquote(string(b))
		if err != nil {
			return err
		}
		*t = text(s)
		return nil
	}
	*t = text(b)
	return nil
}

func toStrings(vv []json.RawMessage) []string {
	ss := make([]string, 0, len(vv))
	for _, v := range vv {
		var t text
		if err := t.UnmarshalJSON(v); err != nil {
			continue
		}
		ss = append(ss, string(t))
	}
	return ss
}

type balanceResponse struct {
	TotalCapital *struct {
		USD number `json:"usd"`
	} `json:"totalCapital"`
	Wallets []walletResponse `json:"wallets"`
}

type walletResponse struct {
	Amount                number                     `json:"amount"`
	Ticker                string                     `json:"ticker"`
	Address               *string                    `json:"address"`
	CreateEnabled         bool                       `json:"createEnabled"`
	DepositEnabled        bool                       `json:"depositEnabled"`
	WithdrawEnabled       bool                       `json:"withdrawEnabled"`
	LoanEnabled           bool                       `json:"loanEnabled"`
	TurboEnabled          bool                       `json:"turboEnabled"`
	HodlEnabled           bool                       `json:"hodlEnabled"`
	MarketEnabled         bool                       `json:"marketEnabled"`
	ChartEnabled          bool                       `json:"chartEnabled"`
	Visible               bool                       `json:"visible"`
	Products              []json.RawMessage          `json:"products"`
	Tags                  []json.RawMessage          `json:"tags"`
	HodlsInputAmount      number                     `json:"hodlsInputAmount"`
	DualsInputAmount      number                     `json:"dualsInputAmount"`
	LoansCollateralAmount number                     `json:"loansCollateralAmount"`
	AmountForSavings      number                     `json:"amountForSavings"`
	Capital               map[string]json.RawMessage `json:"capital"`
}

type rateResponse struct {
	Rate    number `json:"rate"`
	Ask     number `json:"ask"`
	Bid     number `json:"bid"`
	Diff24h number `json:"diff24h"`
}

type candleResponse struct {
	Date   *string `json:"date"`
	Open   number  `json:"open"`
	High   number  `json:"high"`
	Low    number  `json:"low"`
	Close  number  `json:"close"`
	Forced bool    `json:"forced"`
}

type tariffResponse struct {
	ID                      model.ID          `json:"id"`
	BaseTicker              string            `json:"baseTicker"`
	QuoteTicker             string            `json:"quoteTicker"`
	MinMultiplier           number            `json:"minMultiplier"`
	MaxMultiplier           number            `json:"maxMultiplier"`
	MinVolume               number            `json:"minVolume"`
	MaxVolume               number            `json:"maxVolume"`
	AllowedInputTickers     []json.RawMessage `json:"allowedInputTickers"`
	IsEnabled               bool              `json:"isEnabled"`
	IsShort                 bool              `json:"isShort"`
	TriggerPriceDistanceMax number            `json:"triggerPriceDistanceMax"`
	PendingOrderDisabled    bool              `json:"pendingOrderDisabled"`
	DayOff                  bool              `json:"dayOff"`
	DaysOff                 []json.RawMessage `json:"daysOff"`
	TradingMode             text              `json:"tradingMode"`
}

type profitResponse struct {
	Profit  number `json:"profit"`
	Percent number `json:"percent"`
}

type orderResponse struct {
	ID             model.ID        `json:"id"`
	AccountID      text            `json:"accountId"`
	IsShort        bool            `json:"isShort"`
	Multiplier     number          `json:"multiplier"`
	InputTicker    string          `json:"inputTicker"`
	BaseTicker     string          `json:"baseTicker"`
	QuoteTicker    string          `json:"quoteTicker"`
	InputAmount    number          `json:"inputAmount"`
	OutputAmount   number          `json:"outputAmount"`
	InitialPrice   number          `json:"initialPrice"`
	MCPrice        number          `json:"mcPrice"`
	SLPrice        number          `json:"slPrice"`
	FTPPrice       number          `json:"ftpPrice"`
	TPPrice        number          `json:"tpPrice"`
	ClosedPrice    number          `json:"closedPrice"`
	TriggerPrice   number          `json:"triggerPrice"`
	Closed         *profitResponse `json:"closed"`
	CloseCalculate *profitResponse `json:"closeCalculate"`
	Status         string          `json:"status"`
	Reason         text            `json:"reason"`
	StartedAt      *string         `json:"startedAt"`
	FinishedAt     *string         `json:"finishedAt"`
	OrderType      text            `json:"orderType"`
}

type orderListResponse struct {
	Rows []orderResponse `json:"rows"`
}

type orderAckResponse struct {
	ID                 model.ID `json:"id"`
	IsShort            bool     `json:"isShort"`
	BaseTicker         string   `json:"baseTicker"`
	QuoteTicker        string   `json:"quoteTicker"`
	InputAmount        number   `json:"inputAmount"`
	InputTicker        string   `json:"inputTicker"`
	Status             string   `json:"status"`
	Multiplier         number   `json:"multiplier"`
	ClientInitialPrice number   `json:"clientInitialPrice"`
	ClientCreatedAt    *string  `json:"clientCreatedAt"`
	TPPrice            number   `json:"tpPrice"`
	SLPrice            number   `json:"slPrice"`
}

// NewOrder 成行注文（送信用）
type NewOrder struct {
	Date        string    `json:"date"`
	Initial     *float64  `json:"initial"`
	InputAmount float64   `json:"inputAmount"`
	InputTicker string    `json:"inputTicker"`
	Multiplier  int       `json:"multiplier"`
	TariffID    *model.ID `json:"tariffId"`
	RequestID   string    `json:"requestId"`
	TP          *float64  `json:"tp,omitempty"`
	SL          *float64  `json:"sl,omitempty"`
}

// CloseOrder 成行決済（送信用）
type CloseOrder struct {
	Date      string   `json:"date"`
	ID        model.ID `json:"id"`
	Price     *float64 `json:"price"`
	RequestID string   `json:"requestId"`
}
