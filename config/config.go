// Package config defines the environment driven configuration of the careers API.
package config

import (
	"log/slog"
	"os"
	"strings"
)

// AppConfig is the main application configuration struct that composes
// domain-specific configuration from separate files.
//
// Configuration is loaded from environment variables using the
// github.com/caarlos0/env library. See individual domain config
// files for details on available environment variables:
//   - database.go: PostgreSQL and Redis connections
//   - http.go: HTTP server, CORS and body limits
//   - mail.go: SMTP relay and notification recipients
//   - uploads.go: resume storage and submission rate limits
//   - observability.go: metrics and Slack alerts
type AppConfig struct {
	// IsDev switches to text logs and relaxed defaults.
	// Set DEV=true or NODE_ENV=development for development mode.
	IsDev bool `env:"DEV" envDefault:"false"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	// DatabaseURL, when set, overrides the DB_* connection fields.
	DatabaseURL string `env:"DATABASE_URL"`

	Postgres DBConfig    `envPrefix:"DB_"`
	Redis    RedisConfig `envPrefix:"REDIS_"`

	HTTP HTTPConfig

	Mail MailConfig

	Uploads   UploadConfig    `envPrefix:"UPLOADS_"`
	RateLimit RateLimitConfig `envPrefix:"RATE_LIMIT_"`

	Observability ObservabilityConfig
}

// Sanitize applies guardrails to configuration values loaded from env.
// This should be called after loading configuration from environment variables.
func (c *AppConfig) Sanitize() {
	c.detectDevMode()

	if url := strings.TrimSpace(c.DatabaseURL); url != "" {
		c.Postgres.URL = url
	}
	c.Postgres.Sanitize()
	c.HTTP.Sanitize()
	c.Mail.Sanitize()
	c.Uploads.Sanitize()
	c.RateLimit.Sanitize()
	c.Observability.Sanitize()

	c.LogLevel = strings.ToLower(strings.TrimSpace(c.LogLevel))
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
}

// detectDevMode checks both DEV and NODE_ENV environment variables.
// NODE_ENV is checked as a fallback for existing deployments.
func (c *AppConfig) detectDevMode() {
	if !c.IsDev {
		nodeEnv := strings.ToLower(os.Getenv("NODE_ENV"))
		c.IsDev = nodeEnv == "development" || nodeEnv == "dev"
	}
}

// SlogLevel maps LogLevel onto a slog level. Unknown values yield info.
func (c *AppConfig) SlogLevel() slog.Level {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
