package main

import (
	"context"
	"flag"
	"os"

	"github.com/randomsuffer/youhodler-connector/pkg/domain/model"
	"github.com/randomsuffer/youhodler-connector/pkg/infrastructure/config"
	"github.com/randomsuffer/youhodler-connector/pkg/infrastructure/logging"
	"github.com/randomsuffer/youhodler-connector/pkg/infrastructure/slack"
	"github.com/randomsuffer/youhodler-connector/pkg/infrastructure/youhodler"
	"github.com/randomsuffer/youhodler-connector/pkg/usecase/report"
	"github.com/randomsuffer/youhodler-connector/pkg/usecase/trade"
)

// registerOrderFlags 注文関連のフラグを登録し、解析後の値を返す関数を返す
func registerOrderFlags(fs *flag.FlagSet) func() orderOptions {
	enabled := fs.Bool("order", false, "create a market order, list active orders and close it")
	direction := fs.String("direction", string(model.Long), "order direction (long / short)")
	amount := fs.Float64("amount", 20, "order input amount")
	multiplier := fs.Int("multiplier", 4, "order multiplier")
	inputTicker := fs.String("input-ticker", model.USDT, "order input ticker")

	return func() orderOptions {
		return orderOptions{
			enabled:     *enabled,
			direction:   model.Direction(*direction),
			amount:      *amount,
			multiplier:  *multiplier,
			inputTicker: *inputTicker,
		}
	}
}

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file (.yaml / .toml)")
	csvPath := flag.String("csv", "", "append fetched candlesticks to this csv file")
	orderOpts := registerOrderFlags(flag.CommandLine)
	flag.Parse()

	conf, err := config.Load(*configPath)
	if err != nil {
		bootLogger, _ := logging.NewLogger("info", os.Stderr)
		bootLogger.Error("failed to load config, error: %v", err)
		os.Exit(1)
	}

	logger, err := logging.NewLogger(conf.LogLevel, os.Stdout)
	if err != nil {
		logger, _ = logging.NewLogger("info", os.Stdout)
		logger.Error("%v", err)
	}

	pair, err := model.ParseToCurrencyPair(conf.Fetcher.Pair)
	if err != nil {
		logger.Error("%v", err)
		os.Exit(1)
	}

	audit, err := logging.OpenAuditLog(&conf.AuditLog)
	if err != nil {
		logger.Error("failed to open audit log, error: %v", err)
		os.Exit(1)
	}
	defer audit.Close()

	exCli := youhodler.NewClient(conf, logger, audit)
	a := &app{
		pair:      *pair,
		tick:      conf.Fetcher.Tick,
		mode:      model.PriceMode(conf.Fetcher.Mode),
		indicator: &conf.Indicator,
		csvPath:   *csvPath,
		order:     orderOpts(),
		exCli:     exCli,
		facade:    trade.NewFacade(exCli, logger),
		printer:   report.NewPrinter(os.Stdout),
		logger:    logger,
	}
	if conf.Slack.WebhookURL != "" {
		a.notifier = slack.NewClient(conf.Slack.WebhookURL)
	}

	a.run(context.Background())
}
