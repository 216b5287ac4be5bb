package logger_test

import (
	"errors"

	"github.com/dividendlab/divcast/pkg/config"
	"github.com/dividendlab/divcast/pkg/logger"
)

// Example_basic demonstrates basic logger usage
func Example_basic() {
	cfg := &config.Config{
		Env:       "development",
		LogLevel:  "info",
		LogFormat: "console",
	}

	log := logger.New(cfg)

	// Basic logging
	log.Debug("This won't appear (level is info)")
	log.Info("Pipeline started")
	log.Warn("Slow response from listing page")
	log.Error("Failed to fetch page")

	// Formatted logging
	log.Infof("Fetched %d securities", 120)
	log.Warnf("Retry attempt %d of %d", 3, 5)
}

// Example_withFields demonstrates structured logging with fields
func Example_withFields() {
	cfg := &config.Config{
		Env:       "production",
		LogLevel:  "info",
		LogFormat: "json",
	}

	log := logger.New(cfg)

	// Add single field
	tickerLog := log.WithField("ticker", "sber")
	tickerLog.Info("Payment history fetched")

	// Add multiple fields
	runLog := log.WithFields(map[string]interface{}{
		"securities": 120,
		"records":    1840,
		"strategy":   "quarterly-data",
	})
	runLog.Info("Forecast pass complete")
}

// Example_withError demonstrates error logging
func Example_withError() {
	cfg := &config.Config{
		Env:       "production",
		LogLevel:  "error",
		LogFormat: "json",
	}

	log := logger.New(cfg)

	err := errors.New("listing page timeout")
	log.WithError(err).Error("Failed to fetch listing")

	// Combine error with fields
	log.WithError(err).
		WithFields(map[string]interface{}{
			"retry_count": 3,
			"timeout_ms":  5000,
		}).
		Error("Fetch failed after retries")
}

// Example_environments demonstrates different log formats
func Example_environments() {
	// Development: Pretty console logs
	devCfg := &config.Config{
		Env:       "development",
		LogLevel:  "debug",
		LogFormat: "console",
	}
	devLog := logger.New(devCfg)
	devLog.Debug("Inspecting detail table layout")
	devLog.Info("Listing page parsed")

	// Production: JSON logs
	prodCfg := &config.Config{
		Env:       "production",
		LogLevel:  "info",
		LogFormat: "json",
	}
	prodLog := logger.New(prodCfg)
	prodLog.Info("Export written")
	prodLog.Warn("Empty payment table for security")
}
