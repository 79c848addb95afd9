// Package config provides configuration management functionality.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	DataDir     string // Base directory for the snapshot database and company file
	CompanyFile string // CSV file with the company universe
	NewsAPIKey  string // newsapi.org key; empty disables news aggregation
	LogLevel    string
	Port        int
	DevMode     bool

	// Session state bounds. Source variants disagree on both values
	// (cap 10 vs 20, window 5 vs 10), so they are configuration.
	RecentSearchCap    int
	RecentSearchWindow int

	// Result caps per request
	SearchResultLimit   int
	NewsPerSymbolLimit  int
	NewsResultLimit     int
	RecommendationLimit int

	// DefaultCategory is used when /api/recommendations gets no category
	// parameter.
	DefaultCategory string

	// AlertChangeThreshold is the minimum |changePercent| that triggers an
	// alert.
	AlertChangeThreshold float64

	// Upstream fan-out knobs
	QuoteMaxInFlight int
	ProviderTimeout  time.Duration

	// RefreshSchedule is the cron expression for periodic directory reloads.
	RefreshSchedule string
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	dataDir := getEnv("WATCH_DATA_DIR", "./data")
	absDataDir, err := filepath.Abs(dataDir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve data directory: %w", err)
	}
	if err := os.MkdirAll(absDataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	companyFile := getEnv("WATCH_COMPANY_FILE", "")
	if companyFile == "" {
		companyFile = filepath.Join(absDataDir, "companies.csv")
	}

	cfg := &Config{
		DataDir:              absDataDir,
		CompanyFile:          companyFile,
		NewsAPIKey:           getEnv("NEWSAPI_KEY", ""),
		LogLevel:             getEnv("LOG_LEVEL", "info"),
		Port:                 getEnvInt("PORT", 8080),
		DevMode:              getEnvBool("DEV_MODE", false),
		RecentSearchCap:      getEnvInt("RECENT_SEARCH_CAP", 20),
		RecentSearchWindow:   getEnvInt("RECENT_SEARCH_WINDOW", 5),
		SearchResultLimit:    getEnvInt("SEARCH_RESULT_LIMIT", 50),
		NewsPerSymbolLimit:   getEnvInt("NEWS_PER_SYMBOL_LIMIT", 10),
		NewsResultLimit:      getEnvInt("NEWS_RESULT_LIMIT", 50),
		RecommendationLimit:  getEnvInt("RECOMMENDATION_LIMIT", 5),
		DefaultCategory:      getEnv("RECOMMENDATION_CATEGORY", "Technology"),
		AlertChangeThreshold: getEnvFloat("ALERT_CHANGE_THRESHOLD", 3.0),
		QuoteMaxInFlight:     getEnvInt("QUOTE_MAX_IN_FLIGHT", 8),
		ProviderTimeout:      getEnvDuration("PROVIDER_TIMEOUT", 5*time.Second),
		RefreshSchedule:      getEnv("DIRECTORY_REFRESH_SCHEDULE", "0 */6 * * *"),
	}

	if cfg.RecentSearchCap <= 0 {
		return nil, fmt.Errorf("RECENT_SEARCH_CAP must be positive, got %d", cfg.RecentSearchCap)
	}
	if cfg.RecentSearchWindow <= 0 {
		return nil, fmt.Errorf("RECENT_SEARCH_WINDOW must be positive, got %d", cfg.RecentSearchWindow)
	}
	if cfg.QuoteMaxInFlight <= 0 {
		return nil, fmt.Errorf("QUOTE_MAX_IN_FLIGHT must be positive, got %d", cfg.QuoteMaxInFlight)
	}

	return cfg, nil
}

// SnapshotDBPath returns the path of the directory snapshot database.
func (c *Config) SnapshotDBPath() string {
	return filepath.Join(c.DataDir, "directory.db")
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseFloat(value, 64); err == nil {
			return parsed
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if parsed, err := time.ParseDuration(value); err == nil {
			return parsed
		}
	}
	return fallback
}
