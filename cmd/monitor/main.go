package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/randomsuffer/youhodler-connector/pkg/infrastructure/config"
	"github.com/randomsuffer/youhodler-connector/pkg/infrastructure/logging"
	"github.com/randomsuffer/youhodler-connector/pkg/infrastructure/mysql"
	"github.com/randomsuffer/youhodler-connector/pkg/infrastructure/youhodler"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file (.yaml / .toml)")
	addr := flag.String("addr", ":8080", "listen address")
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

	s := &server{
		candleRepo: mysqlCli,
		orderRepo:  mysqlCli,
		exCli:      youhodler.NewClient(conf, logger, audit),
		logger:     logger,
		now:        time.Now,
	}
	srv := &http.Server{
		Addr:              *addr,
		Handler:           newRouter(s),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	go func() {
		<-ctx.Done()
		logger.Info("terminating ...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("failed to shutdown, error: %v", err)
		}
	}()

	logger.Info("listening on %s", *addr)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("error occured: %v", err)
	}
}
