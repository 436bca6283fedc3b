// ABOUTME: Main entry point for the habits HTTP API server
// ABOUTME: Loads config, opens storage, and serves the JSON API until signalled
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/harper/habits/internal/config"
	"github.com/harper/habits/internal/httpapi"
	"github.com/harper/habits/internal/logging"
	"github.com/harper/habits/internal/storage"
	"github.com/harper/habits/internal/tracker"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logging.Must("error", false).Fatal("invalid configuration", zap.Error(err))
	}

	logger := logging.Must(cfg.LogLevel, cfg.LogDevelopment)
	defer func() { _ = logger.Sync() }()

	gw := storage.NewGateway(cfg.DBPath, logger)
	if err := gw.Init(); err != nil {
		logger.Fatal("failed to initialize storage", zap.Error(err))
	}
	defer func() {
		if err := gw.Close(); err != nil {
			logger.Warn("error closing storage", zap.Error(err))
		}
	}()

	svc := tracker.New(gw, logger)
	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           httpapi.NewServer(svc, logger).Router(cfg.CORSOrigins),
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("server starting", zap.String("addr", cfg.HTTPAddr), zap.String("db", gw.Path()))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-quit:
		logger.Info("shutdown initiated")
	case err := <-serverErr:
		logger.Error("server error", zap.Error(err))
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Warn("shutdown incomplete", zap.Error(err))
	}
	logger.Info("server stopped")
}
