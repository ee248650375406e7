package main

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"
	"github.com/randomsuffer/youhodler-connector/pkg/domain"
	"github.com/randomsuffer/youhodler-connector/pkg/domain/exchange"
	"github.com/randomsuffer/youhodler-connector/pkg/domain/model"
	"github.com/randomsuffer/youhodler-connector/pkg/domain/repository"
)

const (
	defaultTick = "5m"
	defaultMode = model.Bid
)

var (
	errInvalidStatus = errors.New("invalid order status")
	errInvalidMinute = errors.New("minute must be a non-negative integer")
)

type server struct {
	candleRepo repository.CandleRepository
	orderRepo  repository.OrderRepository
	exCli      exchange.Client
	logger     domain.Logger
	now        func() time.Time
}

func newRouter(s *server) *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/api/candles/{pair}", s.candlesHandler).Methods(http.MethodGet)
	r.HandleFunc("/api/orders", s.ordersHandler).Methods(http.MethodGet)
	r.HandleFunc("/api/balance", s.balanceHandler).Methods(http.MethodGet)
	return r
}

// Candle ローソク足
type Candle struct {
	Datetime string  `json:"datetime"`
	Open     float64 `json:"open"`
	High     float64 `json:"high"`
	Low      float64 `json:"low"`
	Close    float64 `json:"close"`
	Forced   bool    `json:"forced"`
}

// CandlesResponse ローソク足一覧
type CandlesResponse struct {
	Pair    string   `json:"pair"`
	Tick    string   `json:"tick"`
	Mode    string   `json:"mode"`
	Candles []Candle `json:"candles"`
}

// Order 注文
type Order struct {
	ID            string   `json:"id"`
	Status        string   `json:"status"`
	Pair          string   `json:"pair"`
	Direction     string   `json:"direction"`
	Multiplier    int      `json:"multiplier"`
	InputAmount   float64  `json:"input_amount"`
	InputTicker   string   `json:"input_ticker"`
	InitialPrice  float64  `json:"initial_price"`
	Profit        *float64 `json:"profit"`
	ProfitPercent *float64 `json:"profit_percent"`
	StartedAt     *string  `json:"started_at"`
}

// OrdersResponse 注文一覧
type OrdersResponse struct {
	Orders []Order `json:"orders"`
}

// Wallet ウォレット
type Wallet struct {
	Ticker string  `json:"ticker"`
	Amount float64 `json:"amount"`
}

// BalanceResponse 残高
type BalanceResponse struct {
	TotalCapitalUSD float64  `json:"total_capital_usd"`
	Wallets         []Wallet `json:"wallets"`
}

func (s *server) candlesHandler(w http.ResponseWriter, r *http.Request) {
	pair, err := model.ParseToCurrencyPair(mux.Vars(r)["pair"])
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}

	q := r.URL.Query()
	minute, err := strconv.Atoi(q.Get("minute"))
	if err != nil || minute < 0 {
		s.writeError(w, http.StatusBadRequest, errors.Wrapf(errInvalidMinute, "value: %q", q.Get("minute")))
		return
	}
	tick := q.Get("tick")
	if tick == "" {
		tick = defaultTick
	}
	mode := model.PriceMode(q.Get("mode"))
	if mode == "" {
		mode = defaultMode
	}
	if !mode.IsValid() {
		s.writeError(w, http.StatusBadRequest, errors.Wrapf(model.ErrInvalidPriceMode, "value: %q", mode))
		return
	}

	since := s.now().Add(-time.Duration(minute) * time.Minute)
	ohlc, err := s.candleRepo.GetCandles(*pair, tick, mode, since)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}

	res := CandlesResponse{Pair: pair.String(), Tick: tick, Mode: string(mode), Candles: []Candle{}}
	for _, c := range ohlc.Candlesticks {
		res.Candles = append(res.Candles, Candle{
			Datetime: model.FormatTimestamp(c.Date),
			Open:     c.Open,
			High:     c.High,
			Low:      c.Low,
			Close:    c.Close,
			Forced:   c.Forced,
		})
	}
	s.writeJSON(w, res)
}

func (s *server) ordersHandler(w http.ResponseWriter, r *http.Request) {
	var status *model.OrderStatus
	if v := r.URL.Query().Get("status"); v != "" {
		st := model.OrderStatus(v)
		switch st {
		case model.Open, model.Pending, model.Closed, model.Canceled:
			status = &st
		default:
			s.writeError(w, http.StatusBadRequest, errors.Wrapf(errInvalidStatus, "value: %q", v))
			return
		}
	}

	orders, err := s.orderRepo.GetOrders(status)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}

	res := OrdersResponse{Orders: []Order{}}
	for _, o := range orders {
		var startedAt *string
		if o.StartedAt != nil {
			v := model.FormatTimestamp(*o.StartedAt)
			startedAt = &v
		}
		res.Orders = append(res.Orders, Order{
			ID:            o.ID.String(),
			Status:        string(o.Status),
			Pair:          o.Pair.String(),
			Direction:     string(o.Direction),
			Multiplier:    o.Multiplier,
			InputAmount:   o.InputAmount,
			InputTicker:   o.InputTicker,
			InitialPrice:  o.InitialPrice,
			Profit:        o.Profit,
			ProfitPercent: o.ProfitPercent,
			StartedAt:     startedAt,
		})
	}
	s.writeJSON(w, res)
}

func (s *server) balanceHandler(w http.ResponseWriter, r *http.Request) {
	balance, err := s.exCli.GetBalance(r.Context())
	if err != nil {
		s.writeError(w, http.StatusBadGateway, err)
		return
	}

	res := BalanceResponse{TotalCapitalUSD: balance.TotalCapitalUSD, Wallets: []Wallet{}}
	for _, wallet := range balance.NonEmptyWallets() {
		res.Wallets = append(res.Wallets, Wallet{Ticker: wallet.Ticker, Amount: wallet.Amount})
	}
	s.writeJSON(w, res)
}

func (s *server) writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("failed to write response, error: %v", err)
	}
}

func (s *server) writeError(w http.ResponseWriter, code int, err error) {
	s.logger.Error("request failed, status: %d, error: %v", code, err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(struct {
		Error string `json:"error"`
	}{
		Error: err.Error(),
	})
}
