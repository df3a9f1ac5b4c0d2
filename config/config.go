package config

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

// Config holds all application configuration.
type Config struct {
	// Upstream credentials. A missing key disables that upstream.
	SerpAPIKey      string
	RapidAPIKey     string
	FreeCurrencyKey string
	GroqAPIKey      string
	GeminiAPIKey    string

	// Search
	Providers         []string      `validate:"dive,oneof=serpapi amazon product-search walmart ebay"`
	Strategy          string        `validate:"oneof=fallback all"`
	ProviderTimeout   time.Duration `validate:"gt=0"`
	MaxOffers         int           `validate:"gte=0"`
	Validator         string        `validate:"oneof=auto groq gemini heuristic none"`
	ValidationTimeout time.Duration `validate:"gt=0"`
	GroqModel         string
	GeminiModel       string

	// Exchange rates
	RateTTL time.Duration `validate:"gt=0"`

	// Rate limiting
	RatePerSecond float64 `validate:"gt=0"`
	RateBurst     int     `validate:"gte=1"`
	MaxConcurrent int     `validate:"gte=1"`

	// Comparison
	HomeCountry string `validate:"len=2"`

	// Logging
	LogLevel  string `validate:"oneof=debug info warn error"`
	LogFormat string `validate:"oneof=text json"`

	// HTTP server
	HTTPPort string `validate:"required,numeric"`
	APIKey   string
}

// DefaultProviders is the provider priority order used when none is configured.
var DefaultProviders = []string{"serpapi", "amazon", "product-search", "walmart", "ebay"}

// DefaultConfig returns configuration with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Providers:         append([]string(nil), DefaultProviders...),
		Strategy:          "fallback",
		ProviderTimeout:   10 * time.Second,
		MaxOffers:         10,
		Validator:         "auto",
		ValidationTimeout: 15 * time.Second,
		RateTTL:           24 * time.Hour,
		RatePerSecond:     5.0,
		RateBurst:         5,
		MaxConcurrent:     4,
		HomeCountry:       "in",
		LogLevel:          "info",
		LogFormat:         "text",
		HTTPPort:          "8080",
	}
}

// LoadFromEnv loads .env file (if present) then overrides config from environment variables.
// Unparsable numbers and durations are ignored and keep the current value.
func (c *Config) LoadFromEnv() {
	// Auto-load .env file; silently ignored if missing
	_ = godotenv.Load()

	if v := os.Getenv("SERP_API_KEY"); v != "" {
		c.SerpAPIKey = v
	}
	if v := os.Getenv("RAPIDAPI_KEY"); v != "" {
		c.RapidAPIKey = v
	}
	if v := os.Getenv("FREECURRENCY_API_KEY"); v != "" {
		c.FreeCurrencyKey = v
	}
	if v := os.Getenv("GROQ_API_KEY"); v != "" {
		c.GroqAPIKey = v
	}
	if v := os.Getenv("GEMINI_API_KEY"); v != "" {
		c.GeminiAPIKey = v
	}
	if v := os.Getenv("GROQ_MODEL"); v != "" {
		c.GroqModel = v
	}
	if v := os.Getenv("GEMINI_MODEL"); v != "" {
		c.GeminiModel = v
	}
	if v := os.Getenv("PRICECMP_PROVIDERS"); v != "" {
		c.Providers = SplitList(v)
	}
	if v := os.Getenv("PRICECMP_STRATEGY"); v != "" {
		c.Strategy = strings.ToLower(v)
	}
	if v := os.Getenv("PRICECMP_PROVIDER_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			c.ProviderTimeout = d
		}
	}
	if v := os.Getenv("PRICECMP_MAX_OFFERS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.MaxOffers = n
		}
	}
	if v := os.Getenv("PRICECMP_VALIDATOR"); v != "" {
		c.Validator = strings.ToLower(v)
	}
	if v := os.Getenv("PRICECMP_VALIDATION_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			c.ValidationTimeout = d
		}
	}
	if v := os.Getenv("PRICECMP_RATE_TTL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			c.RateTTL = d
		}
	}
	if v := os.Getenv("PRICECMP_RATE_PER_SECOND"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			c.RatePerSecond = f
		}
	}
	if v := os.Getenv("PRICECMP_RATE_BURST"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.RateBurst = n
		}
	}
	if v := os.Getenv("PRICECMP_MAX_CONCURRENT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.MaxConcurrent = n
		}
	}
	if v := os.Getenv("PRICECMP_HOME_COUNTRY"); v != "" {
		c.HomeCountry = strings.ToLower(v)
	}
	if v := os.Getenv("PRICECMP_LOG_LEVEL"); v != "" {
		c.LogLevel = strings.ToLower(v)
	}
	if v := os.Getenv("PRICECMP_LOG_FORMAT"); v != "" {
		c.LogFormat = strings.ToLower(v)
	}
	if v := os.Getenv("PORT"); v != "" {
		c.HTTPPort = v
	}
	if v := os.Getenv("PRICECMP_API_KEY"); v != "" {
		c.APIKey = v
	}
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks value ranges and enumerations.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// NewLogger builds a slog logger writing to w in the configured format and level.
func (c *Config) NewLogger(w io.Writer) *slog.Logger {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}
	if c.LogFormat == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// SplitList splits a comma-separated list, trimming blanks and lower-casing.
func SplitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.ToLower(strings.TrimSpace(part)); p != "" {
			out = append(out, p)
		}
	}
	return out
}
