package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"hotspot/internal/api"
	"hotspot/internal/config"
	"hotspot/internal/dashboard"
	"hotspot/internal/engine"
	"hotspot/internal/observability"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(os.Stdout, cfg.LogLevel, cfg.LogFormat)
	metrics := observability.NewMetrics()

	// The API is live immediately and answers 503 until the dataset is in.
	h := api.NewHandler(nil)
	e := api.NewServer(h, api.ServerOptions{Logger: logger, RateLimit: cfg.RateLimit})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info("loading dataset", "path", cfg.DataPath)
		t0 := time.Now()

		ds, err := engine.Load(cfg.DataPath, logger)
		if err != nil {
			logger.Error("dataset load failed", "error", err)
			stop()
			return
		}
		metrics.DatasetRecords.Set(float64(ds.Len()))
		metrics.DatasetLoaded.Set(1)

		h.SetController(dashboard.New(ds,
			dashboard.WithLogger(logger),
			dashboard.WithMetrics(metrics),
			dashboard.WithDefaultYear(cfg.DefaultYear),
		))
		logger.Info("dataset ready", "records", ds.Len(), "years", ds.Years(), "duration", time.Since(t0))
	}()

	go func() {
		logger.Info("http server starting", "addr", cfg.HTTPAddr)
		if err := e.Start(cfg.HTTPAddr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}
	logger.Info("shutdown complete")
}
