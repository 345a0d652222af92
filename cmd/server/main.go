package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/jonboulle/clockwork"

	"github.com/couchcryptid/water-health-monitor/internal/adapter/httpapi"
	kafkaadapter "github.com/couchcryptid/water-health-monitor/internal/adapter/kafka"
	"github.com/couchcryptid/water-health-monitor/internal/adapter/model"
	"github.com/couchcryptid/water-health-monitor/internal/config"
	"github.com/couchcryptid/water-health-monitor/internal/domain"
	"github.com/couchcryptid/water-health-monitor/internal/observability"
	"github.com/couchcryptid/water-health-monitor/internal/risk"
	"github.com/couchcryptid/water-health-monitor/internal/service"
	"github.com/couchcryptid/water-health-monitor/internal/store/sqlite"
)

func main() {
	// Local development convenience; absent files are not an error.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg.LogLevel, cfg.LogFormat)
	metrics := observability.NewMetrics()

	st, err := sqlite.New(cfg.DBPath, clockwork.NewRealClock())
	if err != nil {
		logger.Error("failed to open store", "error", err, "path", cfg.DBPath)
		os.Exit(1)
	}

	// Inference sidecar is feature-flagged via MODEL_URL / MODEL_ENABLED.
	var classifier domain.Classifier
	if cfg.ModelEnabled {
		classifier = model.NewClient(cfg.ModelURL, cfg.ModelTimeout, logger)
		logger.Info("model inference enabled", "url", cfg.ModelURL, "timeout", cfg.ModelTimeout)
	} else {
		logger.Info("model inference disabled, scoring by rules only")
	}

	engine := risk.NewEngine(risk.NewScorer(classifier, logger, metrics), st, logger, metrics)

	var publisher service.NotificationPublisher
	var kafkaPub *kafkaadapter.Publisher
	if cfg.KafkaEnabled {
		kafkaPub = kafkaadapter.NewPublisher(cfg.KafkaBrokers, cfg.KafkaNotifyTopic, logger)
		publisher = kafkaPub
		logger.Info("notification stream enabled", "topic", cfg.KafkaNotifyTopic)
	} else {
		logger.Info("notification stream disabled")
	}

	svc := service.New(st, engine, publisher, logger, metrics, cfg.NotificationLimit)
	srv := httpapi.NewServer(cfg.HTTPAddr, svc, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}
	if kafkaPub != nil {
		if err := kafkaPub.Close(); err != nil {
			logger.Error("kafka publisher close error", "error", err)
		}
	}
	if err := st.Close(); err != nil {
		logger.Error("store close error", "error", err)
	}

	logger.Info("shutdown complete")
}
