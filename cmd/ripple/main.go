// Package main is the entry point for the Ripple height field demo.
package main

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/Faultbox/ripple/internal/app"
	"github.com/Faultbox/ripple/internal/config"
	"github.com/Faultbox/ripple/internal/logger"
	"github.com/Faultbox/ripple/internal/sim"
)

func main() {
	os.Exit(run())
}

func run() int {
	// Parse CLI flags first
	config.ParseFlags()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		return 1
	}

	// Initialize logger. Console output goes to stderr, so headless dumps
	// on stdout stay clean.
	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		return 1
	}
	defer logger.Sync()

	logger.Info("=== Ripple ===")
	logger.Log.Debug("config loaded", zap.Any("config", cfg))

	if path := config.WriteConfigPath(); path != "" {
		if err := cfg.SaveTo(path); err != nil {
			logger.Error("failed to write config", zap.String("path", path), zap.Error(err))
			return 1
		}
		logger.Info("config written", zap.String("path", path))
		return 0
	}

	if cfg.Simulation.Headless {
		return runHeadless(cfg)
	}

	a, err := app.New(cfg)
	if err != nil {
		logger.Error("failed to create demo", zap.Error(err))
		return 1
	}
	defer a.Close()

	if err := a.Run(); err != nil {
		logger.Error("demo error", zap.Error(err))
		return 1
	}

	logger.Info("demo closed normally")
	return 0
}

func runHeadless(cfg *config.Config) int {
	s, err := sim.New(cfg)
	if err != nil {
		logger.Error("failed to create simulation", zap.Error(err))
		return 1
	}
	defer s.Close()

	if err := s.RunHeadless(os.Stdout); err != nil {
		logger.Error("headless run failed", zap.Error(err))
		return 1
	}
	return 0
}
