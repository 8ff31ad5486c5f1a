package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	HTTPAddr    string
	PostgresDSN string
	AuthMode    string
	LogLevel    string

	RedisAddr         string
	RedisPassword     string
	RedisDB           int
	PortfolioCacheTTL time.Duration

	PolicyBundlePath string

	// Governance enforcement cutoff for legacy grandfathering,
	// RFC3339. Records created before it never auto-deactivate.
	EnforcementDate time.Time
}

func FromEnv() Config {
	cfg := Config{
		HTTPAddr:          envDefault("HTTP_ADDR", ":8080"),
		PostgresDSN:       os.Getenv("POSTGRES_DSN"),
		AuthMode:          os.Getenv("AUTH_MODE"),
		LogLevel:          envDefault("LOG_LEVEL", "info"),
		RedisAddr:         os.Getenv("REDIS_ADDR"),
		RedisPassword:     os.Getenv("REDIS_PASSWORD"),
		PolicyBundlePath:  os.Getenv("POLICY_BUNDLE_PATH"),
		PortfolioCacheTTL: 5 * time.Minute,
	}
	if raw := os.Getenv("REDIS_DB"); raw != "" {
		if db, err := strconv.Atoi(raw); err == nil {
			cfg.RedisDB = db
		}
	}
	if raw := os.Getenv("PORTFOLIO_CACHE_TTL"); raw != "" {
		if ttl, err := time.ParseDuration(raw); err == nil && ttl > 0 {
			cfg.PortfolioCacheTTL = ttl
		}
	}
	if raw := os.Getenv("GOVERNANCE_ENFORCEMENT_DATE"); raw != "" {
		if parsed, err := time.Parse(time.RFC3339, raw); err == nil {
			cfg.EnforcementDate = parsed.UTC()
		}
	}
	return cfg
}

func envDefault(key, def string) string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	return v
}
