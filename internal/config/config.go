// Package config loads the application configuration from the environment
// (optionally seeded from a .env file).
package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

// Config holds all application configuration.
type Config struct {
	TwelveAPIKey string
	Symbol       string
	Interval     string
	CandleCount  int

	AccountSize      float64
	RiskPercent      float64
	EarningsDays     int // -1 means unknown
	FetchFundamental bool

	// Market context
	VIXSymbol   string
	IndexSymbol string

	// PostgreSQL (persistence is optional; empty host disables it)
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// Telegram notifications (optional; empty token disables them)
	TelegramToken  string
	TelegramChatID int64

	// After-hours scanner
	ScanSymbols       []string
	ScanSchedule      string
	ScanMinChange     float64
	ScanMinVolume     float64
	ScanMinVolumeRate float64

	LogLevel       string
	RequestTimeout int // seconds
}

// Load initializes configuration from environment variables.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Warn().Msg(".env file not found, relying on actual environment variables")
	}

	var cfg Config

	cfg.TwelveAPIKey = os.Getenv("TWELVE_API_KEY")
	cfg.Symbol = getEnvWithDefault("SYMBOL", "AAPL")
	cfg.Interval = getEnvWithDefault("INTERVAL", "1day")
	cfg.CandleCount = getEnvIntWithDefault("CANDLE_COUNT", 250)

	cfg.AccountSize = getEnvFloatWithDefault("ACCOUNT_SIZE", 10000)
	cfg.RiskPercent = getEnvFloatWithDefault("RISK_PERCENT", 1.0)
	cfg.EarningsDays = getEnvIntWithDefault("EARNINGS_DAYS", -1)
	cfg.FetchFundamental = getEnvBoolWithDefault("FETCH_FUNDAMENTALS", true)

	cfg.VIXSymbol = getEnvWithDefault("VIX_SYMBOL", "VIX")
	cfg.IndexSymbol = getEnvWithDefault("INDEX_SYMBOL", "SPX")

	cfg.DBHost = os.Getenv("DB_HOST")
	cfg.DBPort = getEnvWithDefault("DB_PORT", "5432")
	cfg.DBUser = os.Getenv("DB_USER")
	cfg.DBPassword = os.Getenv("DB_PASSWORD")
	cfg.DBName = os.Getenv("DB_NAME")
	cfg.DBSSLMode = getEnvWithDefault("DB_SSLMODE", "disable")

	cfg.TelegramToken = os.Getenv("TELEGRAM_BOT_TOKEN")
	cfg.TelegramChatID = getEnvInt64WithDefault("TELEGRAM_CHAT_ID", 0)

	cfg.ScanSymbols = getEnvListWithDefault("SCAN_SYMBOLS", nil)
	cfg.ScanSchedule = getEnvWithDefault("SCAN_SCHEDULE", "0 */15 16-20 * * 1-5")
	cfg.ScanMinChange = getEnvFloatWithDefault("SCAN_MIN_CHANGE", 3.0)
	cfg.ScanMinVolume = getEnvFloatWithDefault("SCAN_MIN_VOLUME", 50000)
	cfg.ScanMinVolumeRate = getEnvFloatWithDefault("SCAN_MIN_VOLUME_RATIO", 0.20)

	cfg.LogLevel = getEnvWithDefault("LOG_LEVEL", "info")
	cfg.RequestTimeout = getEnvIntWithDefault("REQUEST_TIMEOUT", 30)

	return &cfg, nil
}

// PersistenceEnabled reports whether a PostgreSQL target is configured.
func (c *Config) PersistenceEnabled() bool {
	return c.DBHost != ""
}

// NotificationsEnabled reports whether Telegram delivery is configured.
func (c *Config) NotificationsEnabled() bool {
	return c.TelegramToken != "" && c.TelegramChatID != 0
}

// Helper functions for environment variable handling
func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntWithDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvInt64WithDefault(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvFloatWithDefault(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

func getEnvBoolWithDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		return value == "true" || value == "1" || value == "yes"
	}
	return defaultValue
}

func getEnvListWithDefault(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	var out []string
	for _, part := range strings.Split(value, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}
