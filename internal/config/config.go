package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

// News serving modes. They pick how /api/news reacts to upstream state.
const (
	NewsModeLive  = "live"
	NewsModeCache = "cache"
	NewsModeDB    = "db"
)

// News source kinds.
const (
	NewsSourcePerplexity = "perplexity"
	NewsSourceRSS        = "rss"
)

// Config holds all configuration for the application
type Config struct {
	// Server configuration
	Port            string        `json:"port" validate:"required,numeric"`
	Env             string        `json:"env"`
	ShutdownTimeout time.Duration `json:"shutdown_timeout" validate:"gt=0"`
	HTTPTimeout     time.Duration `json:"http_timeout" validate:"gt=0"`
	UpstreamTimeout time.Duration `json:"upstream_timeout" validate:"gt=0"`
	CORSOrigins     string        `json:"cors_origins"`

	// Perplexity (search + summarization)
	PerplexityAPIKey  string `json:"-"`
	PerplexityBaseURL string `json:"perplexity_base_url" validate:"required,url"`
	PerplexityModel   string `json:"perplexity_model" validate:"required"`

	// Market data
	AlphaVantageAPIKey string `json:"-"`
	AlphaVantageRPM    int    `json:"alpha_vantage_rpm" validate:"gte=0"`
	ExchangeRateAPIKey string `json:"-"`

	// Persistence
	DatabaseURL  string        `json:"-"`
	RedisURL     string        `json:"-"`
	NewsCacheTTL time.Duration `json:"news_cache_ttl" validate:"gte=0"`

	// News serving
	NewsMode   string `json:"news_mode" validate:"oneof=live cache db"`
	NewsSource string `json:"news_source" validate:"oneof=perplexity rss"`

	// Scheduled refresh
	CronSecret      string        `json:"-"`
	RefreshInterval time.Duration `json:"refresh_interval" validate:"gte=0"`

	// CloudFlare R2 archive
	R2Endpoint  string `json:"r2_endpoint" validate:"omitempty,url"`
	R2AccessKey string `json:"-"`
	R2SecretKey string `json:"-"`
	R2Bucket    string `json:"r2_bucket"`

	// Logging
	LogLevel string `json:"log_level" validate:"oneof=trace debug info warn error fatal panic disabled"`
	LogFile  string `json:"log_file"`
}

// Load loads configuration from environment variables and validates it
func Load() *Config {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("Warning: Error loading .env file: %v", err)
	}

	cfg := FromEnv()

	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	return cfg
}

// FromEnv builds a Config from the process environment without validating it.
func FromEnv() *Config {
	return &Config{
		Port:            getEnv("PORT", "8080"),
		Env:             getEnv("APP_ENV", "development"),
		ShutdownTimeout: getEnvAsDuration("SHUTDOWN_TIMEOUT", 10*time.Second),
		HTTPTimeout:     getEnvAsDuration("HTTP_TIMEOUT", 30*time.Second),
		UpstreamTimeout: getEnvAsDuration("UPSTREAM_TIMEOUT", 30*time.Second),
		CORSOrigins:     getEnv("CORS_ORIGINS", "http://localhost:5173"),

		PerplexityAPIKey:  getEnv("PERPLEXITY_API_KEY", ""),
		PerplexityBaseURL: getEnv("PERPLEXITY_BASE_URL", "https://api.perplexity.ai"),
		PerplexityModel:   getEnv("PERPLEXITY_MODEL", "sonar-pro"),

		AlphaVantageAPIKey: getEnv("ALPHA_VANTAGE_API_KEY", ""),
		AlphaVantageRPM:    getEnvAsInt("ALPHA_VANTAGE_RPM", 5), // free tier
		ExchangeRateAPIKey: getEnv("EXCHANGE_RATE_API_KEY", ""),

		DatabaseURL:  getEnv("DATABASE_URL", ""),
		RedisURL:     getEnv("REDIS_URL", ""),
		NewsCacheTTL: getEnvAsDuration("NEWS_CACHE_TTL", 24*time.Hour),

		NewsMode:   strings.ToLower(getEnv("NEWS_MODE", NewsModeLive)),
		NewsSource: strings.ToLower(getEnv("NEWS_SOURCE", NewsSourcePerplexity)),

		CronSecret:      getEnv("CRON_SECRET", ""),
		RefreshInterval: getEnvAsDuration("REFRESH_INTERVAL", 0),

		R2Endpoint:  getEnv("R2_ENDPOINT", ""),
		R2AccessKey: getEnv("R2_ACCESS_KEY", ""),
		R2SecretKey: getEnv("R2_SECRET_ACCESS_KEY", ""),
		R2Bucket:    getEnv("R2_BUCKET", "energy-news"),

		LogLevel: strings.ToLower(getEnv("LOG_LEVEL", "info")),
		LogFile:  getEnv("LOG_FILE", ""),
	}
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if c.R2Endpoint != "" && (c.R2AccessKey == "" || c.R2SecretKey == "") {
		return fmt.Errorf("config: R2_ENDPOINT requires R2_ACCESS_KEY and R2_SECRET_ACCESS_KEY")
	}
	return nil
}

// IsProduction reports whether the service runs with production logging.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// ArchiveEnabled reports whether refresh runs are written to R2.
func (c *Config) ArchiveEnabled() bool {
	return c.R2Endpoint != ""
}

// Helper functions for environment variable handling
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsInt(name string, defaultVal int) int {
	valueStr := getEnv(name, "")
	if valueStr == "" {
		return defaultVal
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("Invalid %s value: %v, using default: %d", name, err, defaultVal)
		return defaultVal
	}
	return value
}

func getEnvAsDuration(name string, defaultVal time.Duration) time.Duration {
	valueStr := getEnv(name, "")
	if valueStr == "" {
		return defaultVal
	}
	value, err := time.ParseDuration(valueStr)
	if err != nil {
		log.Printf("Invalid %s value: %v, using default: %v", name, err, defaultVal)
		return defaultVal
	}
	return value
}
