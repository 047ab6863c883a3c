package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	for _, k := range []string{"DATABASE_URL", "FEED_SOURCE", "FEED_TIMEOUT", "HTTP_ADDR", "METRICS_PORT", "LOG_LEVEL", "PRODUCT_HOST"} {
		t.Setenv(k, "")
	}

	cfg := Load()
	assert.Equal(t, "sortiment.db", cfg.DatabaseURL)
	assert.Equal(t, "Sortimentsfilen.xml", cfg.FeedSource)
	assert.Equal(t, 60*time.Second, cfg.FeedTimeout)
	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Empty(t, cfg.MetricsPort)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "www.systembolaget.se", cfg.ProductHost)
}

func TestLoad_Environment(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/sortiment")
	t.Setenv("FEED_SOURCE", "https://example.test/feed.xml")
	t.Setenv("FEED_TIMEOUT", "5s")
	t.Setenv("HTTP_ADDR", ":9000")
	t.Setenv("METRICS_PORT", "9100")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("PRODUCT_HOST", "example.test")

	cfg := Load()
	assert.Equal(t, "postgres://localhost/sortiment", cfg.DatabaseURL)
	assert.Equal(t, "https://example.test/feed.xml", cfg.FeedSource)
	assert.Equal(t, 5*time.Second, cfg.FeedTimeout)
	assert.Equal(t, ":9000", cfg.HTTPAddr)
	assert.Equal(t, "9100", cfg.MetricsPort)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "example.test", cfg.ProductHost)
}

func TestGetDuration(t *testing.T) {
	tests := map[string]time.Duration{
		"":      time.Minute,
		"90s":   90 * time.Second,
		"soon":  time.Minute,
		"-5s":   time.Minute,
		"0s":    time.Minute,
		"250ms": 250 * time.Millisecond,
	}
	for value, want := range tests {
		t.Setenv("SORTIMENT_TEST_DURATION", value)
		assert.Equal(t, want, getDuration("SORTIMENT_TEST_DURATION", time.Minute), value)
	}
}
