package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/couchcryptid/wind-station-map/internal/adapter/httpadapter"
	kafkaadapter "github.com/couchcryptid/wind-station-map/internal/adapter/kafka"
	"github.com/couchcryptid/wind-station-map/internal/adapter/mapview"
	"github.com/couchcryptid/wind-station-map/internal/adapter/stationapi"
	"github.com/couchcryptid/wind-station-map/internal/config"
	"github.com/couchcryptid/wind-station-map/internal/observability"
	"github.com/couchcryptid/wind-station-map/internal/pipeline"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		slog.Warn("failed to read .env file", "error", err)
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	stationsURL, err := cfg.StationsURL()
	if err != nil {
		logger.Error("invalid station API URL", "error", err)
		os.Exit(1)
	}
	client := stationapi.NewClient(stationsURL, cfg.StationsTimeout, metrics, logger)
	source := stationapi.NewRateLimitedClient(client, cfg.UpstreamRPS, cfg.UpstreamBurst, metrics)
	logger.Info("station API configured", "url", stationsURL, "rate_limit", cfg.UpstreamRPS, "burst", cfg.UpstreamBurst)

	// Marker publishing is feature-flagged via KAFKA_ENABLED.
	var sink pipeline.MarkerSink
	var writer *kafkaadapter.Writer
	if cfg.KafkaEnabled {
		writer = kafkaadapter.NewWriter(cfg, logger)
		sink = writer
		logger.Info("marker publishing enabled", "brokers", cfg.KafkaBrokers, "topic", cfg.KafkaMarkerTopic)
	} else {
		logger.Info("marker publishing disabled")
	}

	renderer := pipeline.NewRenderer(source, sink, logger, metrics)
	srv := httpadapter.NewServer(cfg.HTTPAddr, renderer, mapview.DefaultOptions(), logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
			stop()
		}
	}()

	// Readiness needs one successful pass; don't wait for traffic to run it.
	go func() {
		if err := renderer.WarmUp(ctx, cfg.WarmUpInterval); err == nil {
			logger.Info("warm-up pass complete")
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}
	if writer != nil {
		if err := writer.Close(); err != nil {
			logger.Error("kafka writer close error", "error", err)
		}
	}

	logger.Info("shutdown complete")
}
