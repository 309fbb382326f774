// Package config provides centralized configuration loaded from environment
// variables. Shared by both cmd/api and cmd/fplctl.
package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// --------------------------------------------------------------------------
// Upstream endpoints — single source of truth
// --------------------------------------------------------------------------

const (
	// DefaultBaseURL is the public FPL API root.
	DefaultBaseURL = "https://fantasy.premierleague.com/api"

	// DefaultImageBaseURL hosts the official player photos.
	DefaultImageBaseURL = "https://resources.premierleague.com/premierleague/photos/players/110x140"
)

// --------------------------------------------------------------------------
// Config struct — populated from environment variables
// --------------------------------------------------------------------------

type Config struct {
	// API server
	APIHost     string
	APIPort     int
	Environment string // development, staging, production
	Debug       bool

	// Upstream FPL API
	FPLBaseURL      string
	ImageBaseURL    string
	UpstreamTimeout time.Duration
	UpstreamRPS     int // token-bucket refill, requests per second

	// Analysis
	LeagueID       int // classic league used for the point-difference figure
	FetchBatchSize int // concurrent element-summary fetches per gameweek

	// Bootstrap cache
	BootstrapTTL time.Duration

	// CORS
	CORSAllowOrigins []string

	// Inbound rate limiting
	RateLimitEnabled  bool
	RateLimitRequests int
	RateLimitWindow   time.Duration
}

// Load reads configuration from environment variables with sensible defaults.
func Load() (*Config, error) {
	return &Config{
		APIHost:     envOr("API_HOST", "0.0.0.0"),
		APIPort:     envInt("PORT", 3000),
		Environment: envOr("ENVIRONMENT", "development"),
		Debug:       envBool("DEBUG", false),

		FPLBaseURL:      envOr("FPL_BASE_URL", DefaultBaseURL),
		ImageBaseURL:    envOr("FPL_IMAGE_BASE_URL", DefaultImageBaseURL),
		UpstreamTimeout: time.Duration(envInt("UPSTREAM_TIMEOUT_SECONDS", 8)) * time.Second,
		UpstreamRPS:     envInt("UPSTREAM_RPS", 10),

		LeagueID:       envInt("LEAGUE_ID", 314),
		FetchBatchSize: envInt("FETCH_BATCH_SIZE", 5),

		BootstrapTTL: time.Duration(envInt("BOOTSTRAP_TTL_MINUTES", 60)) * time.Minute,

		CORSAllowOrigins: envList("CORS_ALLOW_ORIGINS", []string{"*"}),

		RateLimitEnabled:  envBool("RATE_LIMIT_ENABLED", true),
		RateLimitRequests: envInt("RATE_LIMIT_REQUESTS", 100),
		RateLimitWindow:   time.Duration(envInt("RATE_LIMIT_WINDOW", 60)) * time.Second,
	}, nil
}

// IsProduction returns true if running in production environment.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// --------------------------------------------------------------------------
// Env helpers
// --------------------------------------------------------------------------

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return fallback
}

func envList(key string, fallback []string) []string {
	if v := os.Getenv(key); v != "" {
		parts := strings.Split(v, ",")
		result := make([]string, 0, len(parts))
		for _, p := range parts {
			if trimmed := strings.TrimSpace(p); trimmed != "" {
				result = append(result, trimmed)
			}
		}
		if len(result) > 0 {
			return result
		}
	}
	return fallback
}
