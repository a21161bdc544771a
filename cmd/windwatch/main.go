// Command windwatch monitors wind speed at a WeatherLink-instrumented
// harbor and sends email/Telegram alerts when the configured threshold is
// met or exceeded.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/couchcryptid/windwatch/internal/adapter/browser"
	"github.com/couchcryptid/windwatch/internal/adapter/feed"
	httpadapter "github.com/couchcryptid/windwatch/internal/adapter/http"
	"github.com/couchcryptid/windwatch/internal/config"
	"github.com/couchcryptid/windwatch/internal/extract"
	"github.com/couchcryptid/windwatch/internal/notify"
	"github.com/couchcryptid/windwatch/internal/observability"
	"github.com/couchcryptid/windwatch/internal/pipeline"
	"github.com/couchcryptid/windwatch/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	snapshots, err := store.New(cfg.LastCheckPath, cfg.DebugDir, logger)
	if err != nil {
		logger.Error("failed to initialize store", "error", err)
		os.Exit(1)
	}

	fetcher := browser.NewFetcher(cfg.FetchTimeout, cfg.SettleDelay, logger)
	engine := extract.NewEngine(logger, metrics)

	email := notify.NewEmailNotifier(cfg, logger)
	telegram := notify.NewTelegramNotifier(cfg, logger)
	dispatcher := notify.NewDispatcher(cfg.NotificationMethod, email, telegram, logger, metrics)
	logger.Info("notification method configured", "method", cfg.NotificationMethod)

	// Check-record feed (feature-flagged via KAFKA_ENABLED).
	var publisher pipeline.FeedPublisher
	var feedWriter *feed.Writer
	if cfg.KafkaEnabled {
		feedWriter = feed.NewWriter(cfg, logger)
		publisher = feedWriter
		logger.Info("check-record feed enabled", "topic", cfg.KafkaTopic)
	}

	checker := pipeline.New(fetcher, engine, dispatcher, snapshots, publisher, cfg, logger, metrics)

	srv := httpadapter.NewServer(cfg.HTTPAddr, checker, snapshots, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	go func() {
		if err := checker.Run(ctx); err != nil {
			logger.Error("wind monitor error", "error", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}
	if feedWriter != nil {
		if err := feedWriter.Close(); err != nil {
			logger.Error("feed writer close error", "error", err)
		}
	}

	logger.Info("shutdown complete")
}
