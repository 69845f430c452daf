// internal/infrastructure/config/config.go
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/damon-houk/superrich-rate-tracker/internal/domain/entity"
	"github.com/joho/godotenv"
)

// Config holds all runtime settings. Values come from environment
// variables, optionally seeded from a .env file.
type Config struct {
	// Upstream endpoints
	ScriptURL string
	APIURL    string

	// Storage
	DataFile  string
	BadgerDir string

	// Telegram delivery
	TelegramToken   string
	TelegramBaseURL string

	// HTTP surface
	HTTPAddr string

	// Cron specs for the scrape run and the daily delivery
	ScrapeSpec string
	NotifySpec string

	// Currencies delivered when a subscriber has no preference
	DefaultCurrencies []string

	// Outbound HTTP timeout
	HTTPTimeout time.Duration

	LogLevel string
}

// Load reads configuration from the environment. A missing .env file is
// fine; explicit environment variables always win.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		ScriptURL:         getEnv("SCRIPT_URL", "https://www.superrichthailand.com/app.min.js"),
		APIURL:            getEnv("API_URL", "https://www.superrichthailand.com/api/v1/rates"),
		DataFile:          getEnv("DATA_FILE", "exchange_rates.json"),
		BadgerDir:         getEnv("BADGER_DIR", "data"),
		TelegramToken:     os.Getenv("TELEGRAM_BOT_TOKEN"),
		TelegramBaseURL:   getEnv("TELEGRAM_BASE_URL", ""),
		HTTPAddr:          getEnv("HTTP_ADDR", ":8080"),
		ScrapeSpec:        getEnv("SCRAPE_CRON", "0 9 * * *"),
		NotifySpec:        getEnv("NOTIFY_CRON", "0 10 * * *"),
		DefaultCurrencies: entity.ParseCurrencyList(getEnv("DEFAULT_CURRENCIES", "USD,EUR,RUB")),
		LogLevel:          getEnv("LOG_LEVEL", "INFO"),
	}

	timeout, err := time.ParseDuration(getEnv("HTTP_TIMEOUT", "10s"))
	if err != nil {
		return nil, fmt.Errorf("invalid HTTP_TIMEOUT: %w", err)
	}
	cfg.HTTPTimeout = timeout

	if cfg.TelegramToken == "" {
		return nil, fmt.Errorf("TELEGRAM_BOT_TOKEN must be set")
	}

	return cfg, nil
}

// getEnv returns the variable's value or the fallback when unset or empty
func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
