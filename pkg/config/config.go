package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	AppEnv   string
	LogLevel string

	GRPCPort int
	HTTPPort int

	// CatalogPath overrides the embedded catalog when set.
	CatalogPath string

	Currency         string
	ShippingFee      int64
	TaxRate          float64
	CheckoutDelay    time.Duration
	QuoteConcurrency int

	GeminiAPIKey string
	GeminiModel  string

	SessionTTL time.Duration
	// SweepSchedule is a cron spec for dropping idle sessions.
	SweepSchedule   string
	ShutdownTimeout time.Duration
}

func Load() Config {
	return Config{
		AppEnv:   getEnv("APP_ENV", "dev"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
		HTTPPort: getEnvInt("HTTP_PORT", 8080),
		GRPCPort: getEnvInt("GRPC_PORT", 8081),

		CatalogPath: getEnv("CATALOG_PATH", ""),

		Currency:         getEnv("CURRENCY", "PKR"),
		ShippingFee:      int64(getEnvInt("SHIPPING_FEE", 250)),
		TaxRate:          getEnvFloat("TAX_RATE", 0.05),
		CheckoutDelay:    getEnvDuration("CHECKOUT_DELAY", 2*time.Second),
		QuoteConcurrency: getEnvInt("QUOTE_CONCURRENCY", 10),

		GeminiAPIKey: getEnv("GEMINI_API_KEY", ""),
		GeminiModel:  getEnv("GEMINI_MODEL", "gemini-2.5-flash"),

		SessionTTL:      getEnvDuration("SESSION_TTL", 24*time.Hour),
		SweepSchedule:   getEnv("SWEEP_SCHEDULE", "@every 15m"),
		ShutdownTimeout: getEnvDuration("SHUTDOWN_TIMEOUT", 10*time.Second),
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	v := os.Getenv(key)

	if v == "" {
		return def
	}

	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return def
	}

	return n
}

func getEnvFloat(key string, def float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || f < 0 {
		return def
	}
	return f
}

func getEnvDuration(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil || d < 0 {
		return def
	}
	return d
}
