package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/randomsuffer/youhodler-connector/pkg/domain"
	"github.com/randomsuffer/youhodler-connector/pkg/infrastructure/config"
	"github.com/randomsuffer/youhodler-connector/pkg/infrastructure/logging"
	"github.com/randomsuffer/youhodler-connector/pkg/infrastructure/mysql"
	"github.com/randomsuffer/youhodler-connector/pkg/infrastructure/youhodler"
	"github.com/randomsuffer/youhodler-connector/pkg/usecase"
	"golang.org/x/sync/errgroup"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file (.yaml / .toml)")
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

	logger.Info("===== START PROGRAM ====================")
	defer logger.Info("===== END PROGRAM ======================")

	logger.Info("pair: %s, tick: %s, mode: %s", conf.Fetcher.Pair, conf.Fetcher.Tick, conf.Fetcher.Mode)
	logger.Info("interval: %d sec", conf.Fetcher.IntervalSeconds)
	logger.Info("======================================")

	audit, err := logging.OpenAuditLog(&conf.AuditLog)
	if err != nil {
		logger.Error("failed to open audit log, error: %v", err)
		return
	}
	defer audit.Close()

	mysqlCli, err := mysql.NewClient(&conf.DB)
	if err != nil {
		logger.Error("%v", err)
		return
	}
	if err := mysqlCli.Migrate(); err != nil {
		logger.Error("failed to migrate, error: %v", err)
		return
	}

	exCli := youhodler.NewClient(conf, logger, audit)
	fetcher, err := usecase.NewFetcher(&conf.Fetcher, exCli, mysqlCli, mysqlCli, logger)
	if err != nil {
		logger.Error("%v", err)
		return
	}

	rootCtx, cancel := context.WithCancel(context.Background())
	defer cancel()
	errGroup, ctx := errgroup.WithContext(rootCtx)

	interval := time.Duration(conf.Fetcher.IntervalSeconds) * time.Second
	errGroup.Go(fetchLoop(ctx, fetcher, interval, logger))
	errGroup.Go(func() error {
		defer cancel()
		return watchSignal(ctx, logger)
	})

	if err := errGroup.Wait(); err != nil {
		logger.Error("error occured, %v", err)
	}
}

func fetchLoop(ctx context.Context, fetcher *usecase.Fetcher, interval time.Duration, logger domain.Logger) func() error {
	return func() error {
		// 起動直後に1回取得し、以降は定期取得
		if err := fetcher.Fetch(ctx); err != nil {
			logger.Error("failed to fetch, error: %v", err)
		}

		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if err := fetcher.Fetch(ctx); err != nil {
					logger.Error("failed to fetch, error: %v", err)
				}
			case <-ctx.Done():
				return nil
			}
		}
	}
}

func watchSignal(ctx context.Context, logger domain.Logger) error {
	// OSのシグナル監視
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(quit)
	select {
	case <-quit:
		logger.Info("terminating ...")
	case <-ctx.Done():
	}
	return nil
}
