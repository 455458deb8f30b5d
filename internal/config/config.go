package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Addr    string
	DataDir string

	MetricsEnabled bool
	MetricsToken   string

	AdminRateLimit int
	CheckoutDelay  time.Duration
}

// Load reads configuration from the environment, with a best-effort .env
// file on top.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		Addr:           ":" + getEnv("PORT", "8080"),
		DataDir:        getEnv("DATA_DIR", "data"),
		MetricsEnabled: getEnv("METRICS_ENABLED", "") == "true",
		MetricsToken:   getEnv("METRICS_TOKEN", ""),
		AdminRateLimit: getEnvInt("ADMIN_RATE_LIMIT", 30),
		CheckoutDelay:  getEnvDuration("CHECKOUT_DELAY", 2*time.Second),
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getEnvDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}
