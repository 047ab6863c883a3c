package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	DatabaseURL string
	FeedSource  string
	FeedTimeout time.Duration
	HTTPAddr    string
	MetricsPort string
	LogLevel    string
	ProductHost string
}

func Load() *Config {
	// Project root .env when running from cmd/<tool>, then the working directory.
	_ = godotenv.Load("../../.env")
	_ = godotenv.Load()
	return &Config{
		DatabaseURL: getEnv("DATABASE_URL", "sortiment.db"),
		FeedSource:  getEnv("FEED_SOURCE", "Sortimentsfilen.xml"),
		FeedTimeout: getDuration("FEED_TIMEOUT", 60*time.Second),
		HTTPAddr:    getEnv("HTTP_ADDR", ":8080"),
		MetricsPort: os.Getenv("METRICS_PORT"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		ProductHost: getEnv("PRODUCT_HOST", "www.systembolaget.se"),
	}
}

func getEnv(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func getDuration(k string, d time.Duration) time.Duration {
	v := os.Getenv(k)
	if v == "" {
		return d
	}
	parsed, err := time.ParseDuration(v)
	if err != nil || parsed <= 0 {
		return d
	}
	return parsed
}
