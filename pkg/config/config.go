package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application.
type Config struct {
	Env string // development, staging, production

	// Pipeline stages
	Scrape   ScrapeConfig
	HTTP     HTTPConfig
	Forecast ForecastConfig
	Output   OutputConfig

	// Logging
	LogLevel  string
	LogFormat string
}

// ScrapeConfig holds settings for the dividend page scraper.
type ScrapeConfig struct {
	BaseURL       string
	ListingPath   string
	UserAgent     string
	RequestDelay  time.Duration // pacing between page fetches
	MaxSecurities int           // 0 means no cap
}

// ListingURL returns the absolute URL of the dividend listing page.
func (s ScrapeConfig) ListingURL() string {
	return strings.TrimRight(s.BaseURL, "/") + s.ListingPath
}

// HTTPConfig holds transport-level settings.
type HTTPConfig struct {
	Timeout    time.Duration
	MaxRetries int
	RetryDelay time.Duration
}

// ForecastConfig holds the forward-projection window defaults.
type ForecastConfig struct {
	HorizonYears int // future years to generate
	WindowYears  int // recent-activity lookback
}

// OutputConfig holds export file locations.
type OutputConfig struct {
	Dir       string
	ExcelFile string
	JSONFile  string
}

// ExcelPath returns the full path of the Excel output file.
func (o OutputConfig) ExcelPath() string {
	return filepath.Join(o.Dir, o.ExcelFile)
}

// JSONPath returns the full path of the JSON output file.
func (o OutputConfig) JSONPath() string {
	return filepath.Join(o.Dir, o.JSONFile)
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	// Try multiple paths for .env file
	loadEnvFile()

	cfg := &Config{
		Env: getEnv("DIVCAST_ENV", "development"),

		Scrape: ScrapeConfig{
			BaseURL:       getEnv("DIVCAST_BASE_URL", "https://www.dohod.ru"),
			ListingPath:   getEnv("DIVCAST_LISTING_PATH", "/ik/analytics/dividend"),
			UserAgent:     getEnv("DIVCAST_USER_AGENT", defaultUserAgent),
			RequestDelay:  getEnvAsDuration("DIVCAST_REQUEST_DELAY", "1s"),
			MaxSecurities: getEnvAsInt("DIVCAST_MAX_SECURITIES", 0),
		},

		HTTP: HTTPConfig{
			Timeout:    getEnvAsDuration("DIVCAST_HTTP_TIMEOUT", "30s"),
			MaxRetries: getEnvAsInt("DIVCAST_HTTP_RETRIES", 3),
			RetryDelay: getEnvAsDuration("DIVCAST_HTTP_RETRY_DELAY", "1s"),
		},

		Forecast: ForecastConfig{
			HorizonYears: getEnvAsInt("DIVCAST_HORIZON_YEARS", 10),
			WindowYears:  getEnvAsInt("DIVCAST_ACTIVITY_WINDOW_YEARS", 3),
		},

		Output: OutputConfig{
			Dir:       getEnv("DIVCAST_OUTPUT_DIR", "."),
			ExcelFile: getEnv("DIVCAST_EXCEL_FILE", "dividends.xlsx"),
			JSONFile:  getEnv("DIVCAST_JSON_FILE", "dividends.json"),
		},

		LogLevel:  getEnv("DIVCAST_LOG_LEVEL", "info"),
		LogFormat: getEnv("DIVCAST_LOG_FORMAT", "console"),
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

const defaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// validate checks if required configuration values are sane.
func (c *Config) validate() error {
	if c.Env != "development" && c.Env != "staging" && c.Env != "production" {
		return fmt.Errorf("DIVCAST_ENV must be one of: development, staging, production")
	}

	if c.Scrape.BaseURL == "" {
		return fmt.Errorf("DIVCAST_BASE_URL is required")
	}
	if c.Scrape.MaxSecurities < 0 {
		return fmt.Errorf("DIVCAST_MAX_SECURITIES must be >= 0")
	}
	if c.Scrape.RequestDelay < 0 {
		return fmt.Errorf("DIVCAST_REQUEST_DELAY must be >= 0")
	}

	if c.Forecast.HorizonYears < 1 {
		return fmt.Errorf("DIVCAST_HORIZON_YEARS must be >= 1")
	}
	if c.Forecast.WindowYears < 0 {
		return fmt.Errorf("DIVCAST_ACTIVITY_WINDOW_YEARS must be >= 0")
	}

	if c.HTTP.Timeout <= 0 {
		return fmt.Errorf("DIVCAST_HTTP_TIMEOUT must be positive")
	}
	if c.HTTP.MaxRetries < 0 {
		return fmt.Errorf("DIVCAST_HTTP_RETRIES must be >= 0")
	}

	return nil
}

// Helper functions (private, only used within this file)

// loadEnvFile tries to load .env from multiple locations
func loadEnvFile() {
	paths := []string{
		".env", // Current directory
	}

	// Also try relative to executable
	if exe, err := os.Executable(); err == nil {
		exeDir := filepath.Dir(exe)
		paths = append(paths,
			filepath.Join(exeDir, ".env"),
			filepath.Join(exeDir, "..", ".env"),
		)
	}

	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			_ = godotenv.Load(path)
			return
		}
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}

	return value
}

func getEnvAsDuration(key string, defaultValue string) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		valueStr = defaultValue
	}

	duration, err := time.ParseDuration(valueStr)
	if err != nil {
		// Fallback to default
		duration, _ = time.ParseDuration(defaultValue)
	}

	return duration
}
