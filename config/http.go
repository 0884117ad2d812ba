package config

import (
	"strconv"
	"strings"
	"time"
)

// HTTPConfig contains HTTP server configuration.
type HTTPConfig struct {
	// Addr is the address to bind the HTTP server to. Empty means ":" + Port.
	Addr string `env:"HTTP_ADDR" envDefault:""`
	Port int    `env:"PORT"      envDefault:"5000"`

	// BaseURL is the public URL of the API, used for links in staff alerts.
	BaseURL string `env:"APP_BASE_URL" envDefault:"http://localhost:5000"`

	// CompressionEnabled enables gzip compression for JSON and text responses.
	CompressionEnabled bool `env:"HTTP_COMPRESSION_ENABLED" envDefault:"false"`

	// CompressionLevel is the gzip compression level (1-9).
	// Default is 6 (standard gzip default).
	CompressionLevel int `env:"HTTP_COMPRESSION_LEVEL" envDefault:"6"`

	// MaxConnections caps concurrently accepted connections. 0 disables the cap.
	MaxConnections int `env:"HTTP_MAX_CONNECTIONS" envDefault:"512"`

	// MaxJSONBytes caps JSON request bodies.
	MaxJSONBytes int64 `env:"HTTP_MAX_JSON_BYTES" envDefault:"102400"`

	// TrustProxy takes client addresses from X-Forwarded-For, for rate limiting behind a load balancer.
	TrustProxy bool `env:"HTTP_TRUST_PROXY" envDefault:"false"`

	ShutdownTimeout time.Duration `env:"HTTP_SHUTDOWN_TIMEOUT" envDefault:"10s"`

	// CORSAllowedOrigins lists browser origins allowed to call the API. "*" allows any.
	CORSAllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envDefault:"*"`
}

// Sanitize applies guardrails to HTTP configuration values.
func (h *HTTPConfig) Sanitize() {
	// Clamp compression level to valid gzip range (1-9)
	if h.CompressionLevel < 1 {
		h.CompressionLevel = 1
	}
	if h.CompressionLevel > 9 {
		h.CompressionLevel = 9
	}
	if h.Port <= 0 || h.Port > 65535 {
		h.Port = 5000
	}
	h.Addr = strings.TrimSpace(h.Addr)
	if h.Addr == "" {
		h.Addr = ":" + strconv.Itoa(h.Port)
	}
	if h.MaxConnections < 0 {
		h.MaxConnections = 0
	}
	if h.MaxJSONBytes <= 0 {
		h.MaxJSONBytes = 100 << 10
	}
	if h.ShutdownTimeout <= 0 {
		h.ShutdownTimeout = 10 * time.Second
	}
	h.BaseURL = strings.TrimRight(strings.TrimSpace(h.BaseURL), "/")
}
