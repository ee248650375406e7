package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/randomsuffer/youhodler-connector/pkg/domain/model"
	"github.com/randomsuffer/youhodler-connector/pkg/usecase"
	"github.com/shopspring/decimal"
)

const notAvailable = "n/a"

// Printer コンソール出力
type Printer struct {
	w       io.Writer
	palette palette
}

// NewPrinter 生成（色は出力先が端末の場合のみ付く）
func NewPrinter(w io.Writer) *Printer {
	return &Printer{
		w:       w,
		palette: newPalette(lipgloss.NewRenderer(w)),
	}
}

func (p *Printer) println(s string) {
	fmt.Fprintln(p.w, s)
}

func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func optNum(v *float64) string {
	if v == nil {
		return notAvailable
	}
	return num(*v)
}

func upperPair(pair model.CurrencyPair) string {
	return strings.ToUpper(pair.String())
}

// Balance 残高
func (p *Printer) Balance(b *model.Balance) {
	p.println("")
	p.println(p.Title("Total Capital (USD): %s", num(b.TotalCapitalUSD)))
	p.println("Wallets:")
	for _, w := range b.NonEmptyWallets() {
		p.println(fmt.Sprintf("%s: %s", strings.ToUpper(w.Ticker), num(w.Amount)))
	}
}

// Rates レート一覧
func (p *Printer) Rates(r *model.ExchangeRates) {
	p.println("")
	p.println(p.Title("Rates:"))
	for i := range r.Rates {
		rate := &r.Rates[i]
		p.println(fmt.Sprintf("%s, Ask: %s, Bid: %s, Mid: %s",
			strings.ToUpper(rate.Ticker()), optNum(rate.Ask), optNum(rate.Bid), optNum(rate.Mid)))
	}
}

// Ohlc ローソク足
func (p *Printer) Ohlc(o *model.Ohlc) {
	p.println("")
	p.println(p.Title("Candlesticks:"))
	for _, c := range o.Candlesticks {
		line := fmt.Sprintf("%s, O: %s, H: %s, L: %s, C: %s",
			c.Date.UTC().Format("2006-01-02 15:04:05.000"), num(c.Open), num(c.High), num(c.Low), num(c.Close))
		if c.Forced {
			line += " " + p.Yellow("(forced)")
		}
		p.println(line)
	}
}

// Tariffs 取引条件一覧
func (p *Printer) Tariffs(l *model.TariffList) {
	p.println("")
	p.println(p.Title("Tariffs:"))
	for _, t := range l.Tariffs {
		p.println(fmt.Sprintf("%s %s: x%d–%d, volume %s – %s",
			upperPair(t.Pair), t.Direction, t.MinMultiplier, t.MaxMultiplier, num(t.MinVolume), num(t.MaxVolume)))
	}
}

// Orders 注文一覧
func (p *Printer) Orders(l *model.OrderList) {
	p.println("")
	p.println(p.Title("Orders:"))
	for i := range l.Orders {
		p.Order(&l.Orders[i])
	}
	p.println("")
	p.println(fmt.Sprintf("active: %d, closed: %d", len(l.ActiveOrders()), len(l.ClosedOrders())))
}

// Order 注文
func (p *Printer) Order(o *model.Order) {
	input := strings.ToUpper(o.InputTicker)

	profit := notAvailable
	if o.Profit != nil && o.ProfitPercent != nil {
		percent := decimal.NewFromFloat(*o.ProfitPercent).Round(2).String()
		profit = fmt.Sprintf("%s %s (%s%%)", num(*o.Profit), input, percent)
		if *o.Profit < 0 {
			profit = p.Red("%s", profit)
		} else {
			profit = p.Green("%s", profit)
		}
	}

	p.println("")
	p.println(fmt.Sprintf("Order %s %s:", o.ID, p.Cyan("%s", o.Status)))
	p.println(fmt.Sprintf("%s %s x%d @ %s, input: %s %s, profit: %s",
		upperPair(o.Pair), o.Direction, o.Multiplier, num(o.InitialPrice), num(o.InputAmount), input, profit))
}

// OrderAck 注文受付結果
func (p *Printer) OrderAck(a *model.OrderAck) {
	sent := notAvailable
	if a.ClientCreatedAt != nil {
		sent = model.FormatTimestamp(*a.ClientCreatedAt)
	}

	p.println("")
	p.println(fmt.Sprintf("Order acknowledgement %s %s:", a.ID, p.Cyan("%s", a.Status)))
	p.println(fmt.Sprintf("%s %s x%d, sent %s, input: %s %s",
		upperPair(a.Pair), a.Direction, a.Multiplier, sent, num(a.InputAmount), strings.ToUpper(a.InputTicker)))
}

// CancelAck 決済受付結果
func (p *Printer) CancelAck(a *model.CancelMarketAck) {
	if a.Success {
		p.println(fmt.Sprintf("Cancel success: %s", p.Green("true")))
		return
	}
	p.println(fmt.Sprintf("Cancel success: %s", p.Red("false")))
}

// Indicators テクニカル指標
func (p *Printer) Indicators(i *usecase.Indicators) {
	p.println("")
	p.println(p.Title("Indicators:"))
	p.println(fmt.Sprintf("Close: %.2f, SMA: %.2f, EMA: %.2f, RSI: %.2f", i.Close, i.SMA, i.EMA, i.RSI))
	p.println(fmt.Sprintf("Range: %.2f - %.2f", i.Low, i.High))
	p.println(fmt.Sprintf("BBands: %.2f / %.2f / %.2f (width: %.2f)", i.BBandsLower, i.BBandsMiddle, i.BBandsUpper, i.BBandsWidth()))
}
