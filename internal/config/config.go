package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/gommon/bytes"

	"github.com/octobees/llm-maps/api/internal/apperr"
)

// RateLimitConfig indicates how many requests are allowed within a given interval.
type RateLimitConfig struct {
	Requests int
	Interval time.Duration
}

// Config aggregates application-wide configuration values.
type Config struct {
	Port              string
	AppEnv            string
	GoogleMapsAPIKey  string
	GoogleMapsBaseURL string
	FrontendAPIKey    string
	PhoneRegion       string
	BodyLimit         string
	TrustProxy        bool
	CacheTTL          time.Duration
	SearchTimeout     time.Duration
	DetailsTimeout    time.Duration
	RateLimitAPI      RateLimitConfig
}

// Load reads configuration from environment variables and applies sane defaults.
// A missing GOOGLE_MAPS_API_KEY is a configuration error.
func Load() (*Config, error) {
	cfg := &Config{
		Port:              getEnv("PORT", "3000"),
		AppEnv:            getEnv("APP_ENV", getEnv("NODE_ENV", "production")),
		GoogleMapsAPIKey:  strings.TrimSpace(os.Getenv("GOOGLE_MAPS_API_KEY")),
		GoogleMapsBaseURL: getEnv("GOOGLE_MAPS_BASE_URL", "https://maps.googleapis.com/maps/api"),
		FrontendAPIKey:    os.Getenv("FRONTEND_API_KEY"),
		PhoneRegion:       getEnv("DEFAULT_PHONE_REGION", "US"),
		BodyLimit:         getEnv("BODY_LIMIT", "10M"),
		CacheTTL:          parseDuration(getEnv("CACHE_TTL", "1h"), time.Hour),
		SearchTimeout:     parseDuration(getEnv("SEARCH_TIMEOUT", "15s"), 15*time.Second),
		DetailsTimeout:    parseDuration(getEnv("DETAILS_TIMEOUT", "10s"), 10*time.Second),
		TrustProxy:        parseBool(os.Getenv("TRUST_PROXY")),
	}

	if _, err := bytes.Parse(cfg.BodyLimit); err != nil {
		return nil, fmt.Errorf("invalid BODY_LIMIT value %q: %w", cfg.BodyLimit, err)
	}

	rl, err := parseRateLimit(getEnv("RATE_LIMIT_API", "1000/15m"))
	if err != nil {
		return nil, fmt.Errorf("invalid RATE_LIMIT_API value: %w", err)
	}
	cfg.RateLimitAPI = rl

	if cfg.GoogleMapsAPIKey == "" {
		return cfg, apperr.Configuration("GOOGLE_MAPS_API_KEY is not set")
	}
	return cfg, nil
}

// IsDevelopment reports whether the relaxed development mode is active.
func (c *Config) IsDevelopment() bool {
	return strings.EqualFold(c.AppEnv, "development")
}

// parseRateLimit accepts "<requests>/<unit>" with unit sec/min/hour, or any
// time.ParseDuration value such as "1000/15m".
func parseRateLimit(value string) (RateLimitConfig, error) {
	parts := strings.Split(value, "/")
	if len(parts) != 2 {
		return RateLimitConfig{}, fmt.Errorf("expected format <requests>/<interval>, got %q", value)
	}

	requests, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil || requests <= 0 {
		return RateLimitConfig{}, fmt.Errorf("invalid request count: %v", parts[0])
	}

	unit := strings.ToLower(strings.TrimSpace(parts[1]))
	var interval time.Duration
	switch unit {
	case "s", "sec", "second", "seconds":
		interval = time.Second
	case "m", "min", "minute", "minutes":
		interval = time.Minute
	case "h", "hr", "hour", "hours":
		interval = time.Hour
	default:
		d, err := time.ParseDuration(unit)
		if err != nil || d <= 0 {
			return RateLimitConfig{}, fmt.Errorf("unsupported interval unit: %s", unit)
		}
		interval = d
	}

	return RateLimitConfig{Requests: requests, Interval: interval}, nil
}

func getEnv(key, fallback string) string {
	if val, ok := os.LookupEnv(key); ok && val != "" {
		return val
	}
	return fallback
}

func parseDuration(input string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(input)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}

func parseBool(input string) bool {
	v, err := strconv.ParseBool(strings.TrimSpace(input))
	return err == nil && v
}
