// Package configs provides application configuration loaded from environment variables.
// All configuration is externalized via environment variables for 12-factor app compliance.
package configs

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// AppConfig holds all application configuration.
// Load it once at startup using AppLoad().
type AppConfig struct {
	// DatabaseURL is the Postgres connection string for the price store.
	// Required by every binary.
	DatabaseURL string

	// LogLevel is the logrus level name (debug, info, warn, error).
	LogLevel string

	// Telegram contains the bot credentials for price alerts.
	Telegram TelegramConfig

	// Sheets identifies the catalog spreadsheet products are synced from.
	Sheets SheetsConfig

	// Monitor contains settings for the price monitoring cycle.
	Monitor MonitorConfig

	// API contains settings for the read API server.
	API APIConfig
}

// TelegramConfig holds the Telegram bot API credentials.
type TelegramConfig struct {
	// BotToken is the bot API token alerts are sent with.
	BotToken string

	// ChatID is the chat all alerts are delivered to.
	ChatID string
}

// SheetsConfig identifies the Google Sheets catalog document.
type SheetsConfig struct {
	// ID is the spreadsheet identifier from its URL.
	ID string

	// Tab is the worksheet name holding the item/url columns.
	Tab string
}

// MonitorConfig holds settings for the scrape-and-compare cycle.
type MonitorConfig struct {
	// MinPctChange is the minimum percentage move that triggers an alert.
	MinPctChange float64

	// HeadingSelector locates the product title on a page.
	HeadingSelector string

	// PriceSelector locates price containers on a page.
	PriceSelector string

	// ScrapeDelaySeconds is the pause between successive page fetches.
	ScrapeDelaySeconds int
}

// APIConfig holds settings for the read API server.
type APIConfig struct {
	// Port is the TCP port the server listens on.
	Port string

	// StoreName labels every summary and history response.
	StoreName string

	// CORSOrigins is the list of origins allowed by the CORS middleware.
	CORSOrigins []string
}

// defaultCORSOrigins covers the local-dev frontends.
const defaultCORSOrigins = "http://127.0.0.1:5500,http://localhost:5500,http://127.0.0.1:3000,http://localhost:3000"

// AppLoad loads all application configuration from environment variables.
// It attempts to load a .env file first (for local development).
// Call this once at application startup.
func AppLoad() *AppConfig {
	_ = godotenv.Load() // Ignore error - .env is optional

	return &AppConfig{
		DatabaseURL: getEnv("DATABASE_URL", ""),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		Telegram: TelegramConfig{
			BotToken: getEnv("TELEGRAM_BOT_TOKEN", ""),
			ChatID:   getEnv("TELEGRAM_CHAT_ID", ""),
		},
		Sheets: SheetsConfig{
			ID:  getEnv("SHEETS_ID", ""),
			Tab: getEnv("SHEETS_TAB", "Sheet1"),
		},
		Monitor: MonitorConfig{
			MinPctChange:       getEnvFloat("MIN_PCT_CHANGE", 0.01),
			HeadingSelector:    getEnv("HEADING_SELECTOR", "h1"),
			PriceSelector:      getEnv("PRICE_SELECTOR", "[class*=price]"),
			ScrapeDelaySeconds: getEnvInt("SCRAPE_DELAY_SECONDS", 1),
		},
		API: APIConfig{
			Port:        getEnv("SERVER_PORT", "8080"),
			StoreName:   getEnv("STORE_NAME", "JayaGrocer"),
			CORSOrigins: splitList(getEnv("CORS_ORIGINS", defaultCORSOrigins)),
		},
	}
}

// ValidateSentinel checks the variables the monitoring binary cannot run
// without. The returned error names every missing variable.
func (c *AppConfig) ValidateSentinel() error {
	var missing []string
	if c.DatabaseURL == "" {
		missing = append(missing, "DATABASE_URL")
	}
	if c.Telegram.BotToken == "" {
		missing = append(missing, "TELEGRAM_BOT_TOKEN")
	}
	if c.Telegram.ChatID == "" {
		missing = append(missing, "TELEGRAM_CHAT_ID")
	}
	if c.Sheets.ID == "" {
		missing = append(missing, "SHEETS_ID")
	}
	return missingError(missing)
}

// ValidateStore checks the store credentials the read API and migration
// binaries cannot run without.
func (c *AppConfig) ValidateStore() error {
	var missing []string
	if c.DatabaseURL == "" {
		missing = append(missing, "DATABASE_URL")
	}
	return missingError(missing)
}

func missingError(missing []string) error {
	if len(missing) == 0 {
		return nil
	}
	return fmt.Errorf("missing required environment variables: %s", strings.Join(missing, ", "))
}

// splitList parses a comma-separated value, trimming entries and dropping
// empty ones.
func splitList(value string) []string {
	var items []string
	for _, item := range strings.Split(value, ",") {
		if trimmed := strings.TrimSpace(item); trimmed != "" {
			items = append(items, trimmed)
		}
	}
	return items
}

// getEnv returns the environment variable value or a default.
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvInt returns the environment variable as int or a default.
func getEnvInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

// getEnvFloat returns the environment variable as float64 or a default.
func getEnvFloat(key string, defaultValue float64) float64 {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		return defaultValue
	}
	return value
}
