// Package main is the entry point for the FinCanon portfolio analytics
// service. It exposes a single analytics engine over a small HTTP API: a CSV
// of daily asset returns goes in, a full risk/return/optimization report
// comes out. The engine itself performs no I/O and holds no state between
// calls.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fincanon/fincanon/internal/config"
	"github.com/fincanon/fincanon/internal/modules/analytics"
	"github.com/fincanon/fincanon/internal/server"
	"github.com/fincanon/fincanon/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fallbackLog := logger.New(logger.Config{Level: "info", Pretty: true})
		fallbackLog.Fatal().Err(err).Msg("Failed to load configuration")
	}

	log := logger.New(logger.Config{
		Level:  cfg.LogLevel,
		Pretty: cfg.DevMode,
	})

	log.Info().
		Float64("risk_free_rate", cfg.RiskFreeRate).
		Int("frontier_points", cfg.FrontierPoints).
		Msg("Starting FinCanon analytics service")

	engine := analytics.NewEngine(analytics.EngineConfig{
		RiskFreeRate:   cfg.RiskFreeRate,
		FrontierPoints: cfg.FrontierPoints,
	}, log)

	srv := server.New(cfg, engine, log)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil {
			log.Fatal().Err(err).Msg("Server error")
		}
	case sig := <-quit:
		log.Info().Str("signal", sig.String()).Msg("Shutdown signal received")
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			log.Error().Err(err).Msg("Graceful shutdown failed")
		}
	}

	log.Info().Msg("Stopped")
}
