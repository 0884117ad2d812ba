package bootstrap

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/technova/careers-api/config"
)

// InitLogger installs a JSON logger at info level. Used until the configuration is loaded.
func InitLogger() *slog.Logger {
	logger := newLogger(os.Stdout, slog.LevelInfo, false)
	slog.SetDefault(logger)
	return logger
}

// ConfigureLogger replaces the default logger with one honoring LOG_LEVEL and DEV.
func ConfigureLogger(cfg *config.AppConfig) *slog.Logger {
	if cfg == nil {
		return InitLogger()
	}
	logger := newLogger(os.Stdout, cfg.SlogLevel(), cfg.IsDev)
	slog.SetDefault(logger)
	return logger
}

func newLogger(w io.Writer, level slog.Level, text bool) *slog.Logger {
	opts := &slog.HandlerOptions{Level: level}
	if text {
		return slog.New(slog.NewTextHandler(w, opts))
	}
	return slog.New(slog.NewJSONHandler(w, opts))
}

// LoadConfig loads configuration from environment variables.
func LoadConfig() (config.AppConfig, error) {
	// Load .env file if it exists (development)
	if err := godotenv.Load(); err != nil {
		var pathErr *os.PathError
		if !errors.As(err, &pathErr) {
			return config.AppConfig{}, fmt.Errorf("load .env file: %w", err)
		}
	}

	var cfg config.AppConfig
	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}

	cfg.Sanitize()
	return cfg, nil
}
