package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/daltonlim/articulate/internal/app"
	"github.com/daltonlim/articulate/internal/config"
	"github.com/daltonlim/articulate/internal/metrics"
	httpTransport "github.com/daltonlim/articulate/internal/transport/http"
)

func main() {
	// Load configuration
	cfg, err := config.Load("")
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	// Set up logger
	logger, err := buildLogger(cfg)
	if err != nil {
		panic("failed to build logger: " + err.Error())
	}
	defer logger.Sync()

	logger.Info("starting articulate game server",
		zap.String("env", cfg.Server.Env),
		zap.String("port", cfg.Server.Port),
	)

	// Load the word bank
	wordBank := app.DefaultWordBank()
	if cfg.Game.WordBankPath != "" {
		wordBank, err = app.LoadWordBank(cfg.Game.WordBankPath)
		if err != nil {
			logger.Fatal("failed to load word bank",
				zap.String("path", cfg.Game.WordBankPath),
				zap.Error(err),
			)
		}
		logger.Info("word bank loaded", zap.String("path", cfg.Game.WordBankPath))
	}

	// Metrics and game hub
	m := metrics.New(prometheus.DefaultRegisterer)
	hub := app.NewGameHub(wordBank, logger, m)
	hub.SetRoomCodeLength(cfg.Game.RoomCodeLength)
	defer hub.Close()

	// Create HTTP server
	server := httpTransport.NewServer(cfg, hub, logger)

	// Start server in goroutine
	go func() {
		if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server error", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Error("server forced to shutdown", zap.Error(err))
	}

	logger.Info("server stopped")
}

// buildLogger constructs the zap logger from the logging config.
func buildLogger(cfg *config.Config) (*zap.Logger, error) {
	var zapCfg zap.Config
	if cfg.IsProduction() {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
	}

	if cfg.Logging.Format == "json" {
		zapCfg.Encoding = "json"
	} else {
		zapCfg.Encoding = "console"
	}

	level, err := zapcore.ParseLevel(cfg.Logging.Level)
	if err != nil {
		level = zapcore.InfoLevel
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)

	return zapCfg.Build()
}
