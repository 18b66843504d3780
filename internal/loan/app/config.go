package app

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Issuer     string // Required: issuer claim for session tokens
	SetupToken string // Optional: token required to create the first admin

	DatabaseFile string // Optional: path to SQLite database file (default: ./loandesk.db)
	RedisAddr    string // Optional: redis host:port for the pending-payment store (default: localhost:6379)
	RedisDB      int    // Optional: redis database index (default: 0)

	MonCashBaseURL      string // Optional: MonCash API root (default: sandbox)
	MonCashClientID     string // Required in production: provider credentials
	MonCashClientSecret string
	AnalysisFeeHTG      int64         // Optional: analysis fee amount (default: 1000)
	CheckoutTTL         time.Duration // Optional: how long a parked form survives (default: 30m)

	SessionTTL time.Duration // Optional: admin session lifetime (default: 8h)

	Env                 string        // Environment (dev, staging, prod) (default: dev)
	LogLevel            string        // Log level (debug, info, warn, error) (default: info)
	LogFormat           string        // Log format (json, text) (default: json)
	Port                int           // HTTP server port (default: 8080)
	ShutdownGracePeriod time.Duration // Graceful shutdown timeout (default: 10s)
}

func LoadConfig() Config {
	// A local .env is a convenience for development; absence is fine.
	_ = godotenv.Load()

	cfg := Config{
		Issuer:     getEnvOrDefault("LOANDESK_ISSUER", "loandesk"),
		SetupToken: os.Getenv("SETUP_TOKEN"), // Optional: if unset, setup is disabled

		DatabaseFile: getEnvOrDefault("LOANDESK_DATABASE_FILE", "loandesk.db"),
		RedisAddr:    getEnvOrDefault("REDIS_ADDR", "localhost:6379"),
		RedisDB:      getEnvIntOrDefault("REDIS_DB", 0),

		MonCashBaseURL:      os.Getenv("MONCASH_BASE_URL"), // Empty selects the sandbox
		MonCashClientID:     os.Getenv("MONCASH_CLIENT_ID"),
		MonCashClientSecret: os.Getenv("MONCASH_CLIENT_SECRET"),
		AnalysisFeeHTG:      int64(getEnvIntOrDefault("ANALYSIS_FEE_HTG", 1000)),
		CheckoutTTL:         getEnvDurationOrDefault("CHECKOUT_TTL", 30*time.Minute),

		SessionTTL: getEnvDurationOrDefault("SESSION_TTL", 8*time.Hour),

		Env:                 getEnvOrDefault("ENV", "dev"),
		LogLevel:            getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:           getEnvOrDefault("LOG_FORMAT", "json"),
		Port:                getEnvIntOrDefault("PORT", 8080),
		ShutdownGracePeriod: getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
	}

	return cfg
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if intValue, err := strconv.Atoi(value); err == nil {
		return intValue
	}

	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	return defaultValue
}
