package config

import (
	"strings"
	"time"
)

// UploadConfig controls resume storage.
type UploadConfig struct {
	Dir      string `env:"DIR"       envDefault:"uploads"`
	MaxBytes int64  `env:"MAX_BYTES" envDefault:"5242880"`
	// AllowedTypes lists accepted MIME types. Empty keeps the built-in resume formats.
	AllowedTypes []string `env:"ALLOWED_TYPES"`
}

// Sanitize trims values and restores defaults.
func (c *UploadConfig) Sanitize() {
	if c.Dir = strings.TrimSpace(c.Dir); c.Dir == "" {
		c.Dir = "uploads"
	}
	if c.MaxBytes <= 0 {
		c.MaxBytes = 5 << 20
	}
	types := c.AllowedTypes[:0]
	for _, t := range c.AllowedTypes {
		if t = strings.ToLower(strings.TrimSpace(t)); t != "" {
			types = append(types, t)
		}
	}
	c.AllowedTypes = types
}

// RateLimitBackend selects where submission quotas are counted.
type RateLimitBackend string

const (
	RateLimitBackendMemory RateLimitBackend = "memory"
	RateLimitBackendRedis  RateLimitBackend = "redis"
)

// RateLimitConfig limits submissions per client address.
type RateLimitConfig struct {
	Enabled bool             `env:"ENABLED" envDefault:"true"`
	Backend RateLimitBackend `env:"BACKEND" envDefault:"memory"`
	Window  time.Duration    `env:"WINDOW"  envDefault:"15m"`
	Max     int              `env:"MAX"     envDefault:"5"`
}

// Sanitize falls back to the memory backend and safe quota values.
func (c *RateLimitConfig) Sanitize() {
	c.Backend = RateLimitBackend(strings.ToLower(strings.TrimSpace(string(c.Backend))))
	if c.Backend != RateLimitBackendRedis {
		c.Backend = RateLimitBackendMemory
	}
	if c.Window <= 0 {
		c.Window = 15 * time.Minute
	}
	if c.Max <= 0 {
		c.Max = 5
	}
}
