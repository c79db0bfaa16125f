package config

import (
	"os"
	"testing"
	"time"

	"github.com/go-playground/assert/v2"
)

func unsetEnv(t *testing.T, keys ...string) {
	t.Helper()
	for _, k := range keys {
		t.Setenv(k, "") // restores the previous value on cleanup
		os.Unsetenv(k)
	}
}

func TestFromEnvDefaults(t *testing.T) {
	unsetEnv(t, "PORT", "NEWS_MODE", "NEWS_SOURCE", "NEWS_CACHE_TTL", "PERPLEXITY_BASE_URL",
		"PERPLEXITY_MODEL", "R2_ENDPOINT", "LOG_LEVEL", "ALPHA_VANTAGE_RPM")

	cfg := FromEnv()
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, NewsModeLive, cfg.NewsMode)
	assert.Equal(t, NewsSourcePerplexity, cfg.NewsSource)
	assert.Equal(t, "sonar-pro", cfg.PerplexityModel)
	assert.Equal(t, 24*time.Hour, cfg.NewsCacheTTL)
	assert.Equal(t, 5, cfg.AlphaVantageRPM)
	assert.Equal(t, false, cfg.ArchiveEnabled())
	assert.Equal(t, nil, cfg.Validate())
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("NEWS_MODE", "CACHE")
	t.Setenv("NEWS_SOURCE", "rss")
	t.Setenv("REFRESH_INTERVAL", "15m")
	t.Setenv("ALPHA_VANTAGE_RPM", "not-a-number")

	cfg := FromEnv()
	assert.Equal(t, NewsModeCache, cfg.NewsMode)
	assert.Equal(t, NewsSourceRSS, cfg.NewsSource)
	assert.Equal(t, 15*time.Minute, cfg.RefreshInterval)
	assert.Equal(t, 5, cfg.AlphaVantageRPM)
}

func TestValidateRejectsUnknownMode(t *testing.T) {
	cfg := FromEnv()
	cfg.NewsMode = "stale"
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected validation error for unknown news mode")
	}
}

func TestValidateR2NeedsCredentials(t *testing.T) {
	cfg := FromEnv()
	cfg.R2Endpoint = "https://account.r2.cloudflarestorage.com"
	cfg.R2AccessKey = ""
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected validation error for R2 endpoint without credentials")
	}

	cfg.R2AccessKey = "ak"
	cfg.R2SecretKey = "sk"
	assert.Equal(t, nil, cfg.Validate())
	assert.Equal(t, true, cfg.ArchiveEnabled())
}
