package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/technova/careers-api/config"
	"github.com/technova/careers-api/internal/adapters/filestore"
	"github.com/technova/careers-api/internal/adapters/mailer"
	"github.com/technova/careers-api/internal/adapters/ratelimit"
	"github.com/technova/careers-api/internal/core"
	"github.com/technova/careers-api/internal/observability/notify/slack"
	"github.com/technova/careers-api/internal/service/chatnotifier"
)

// newFileStore opens the resume directory.
func newFileStore(cfg config.UploadConfig, logger *slog.Logger) (*filestore.LocalStore, error) {
	store, err := filestore.NewLocalStore(filestore.Options{
		Dir:          cfg.Dir,
		MaxBytes:     cfg.MaxBytes,
		AllowedTypes: cfg.AllowedTypes,
		Logger:       logger,
	})
	if err != nil {
		return nil, fmt.Errorf("open upload directory: %w", err)
	}
	return store, nil
}

// newMailer returns an SMTP mailer, or a log mailer when no relay is configured.
//
//nolint:ireturn // the transport is chosen from configuration.
func newMailer(cfg config.MailConfig, logger *slog.Logger) (core.Mailer, error) {
	if !cfg.SMTPEnabled() {
		logger.Warn("SMTP_HOST not set, emails will be logged instead of sent")
		return mailer.NewLogMailer(logger), nil
	}
	m, err := mailer.NewSMTPMailer(mailer.SMTPConfig{
		Host:     cfg.Host,
		Port:     cfg.Port,
		Username: cfg.Username,
		Password: cfg.Password,
		UseSSL:   cfg.Secure,
		From:     cfg.From,
		FromName: cfg.FromName,
		Timeout:  cfg.Timeout,
	}, logger)
	if err != nil {
		return nil, fmt.Errorf("configure smtp mailer: %w", err)
	}
	return m, nil
}

// rateLimiter pairs a limiter with its optional maintenance loop.
type rateLimiter struct {
	limiter core.RateLimiter
	// run is nil when the backend needs no maintenance.
	run func(ctx context.Context) error
}

// newRateLimiter selects the submission limiter backend. A disabled limiter yields a zero value.
func newRateLimiter(cfg config.RateLimitConfig, client redis.UniversalClient, logger *slog.Logger) (rateLimiter, error) {
	if !cfg.Enabled {
		logger.Info("submission rate limiting disabled")
		return rateLimiter{}, nil
	}
	quota := ratelimit.Config{Limit: cfg.Max, Window: cfg.Window, Prefix: "submit"}

	if cfg.Backend == config.RateLimitBackendRedis {
		if client == nil {
			return rateLimiter{}, errors.New("redis rate limit backend requires a redis client")
		}
		l, err := ratelimit.NewRedisLimiter(client, quota)
		if err != nil {
			return rateLimiter{}, fmt.Errorf("configure redis rate limiter: %w", err)
		}
		return rateLimiter{limiter: l}, nil
	}

	l, err := ratelimit.NewMemoryLimiter(quota, logger)
	if err != nil {
		return rateLimiter{}, fmt.Errorf("configure memory rate limiter: %w", err)
	}
	return rateLimiter{limiter: l, run: l.Run}, nil
}

// newChatNotifier wires the Slack webhook when enabled. It returns nil when no sink is configured.
func newChatNotifier(cfg config.ObservabilityConfig, baseURL string, logger *slog.Logger) *chatnotifier.Service {
	if !cfg.Slack.Enabled {
		return nil
	}
	client, err := slack.NewClient(slack.Config{
		WebhookURL:      cfg.Slack.WebhookURL,
		Channel:         cfg.Slack.Channel,
		Username:        cfg.Slack.Username,
		Timeout:         cfg.Slack.Timeout,
		RetryLimit:      cfg.Slack.RetryLimit,
		RecordURLPrefix: baseURL,
	})
	if err != nil {
		logger.Error("failed to initialise slack notifier", "error", err)
		return nil
	}

	svc := chatnotifier.NewService(chatnotifier.Options{
		Logger: logger,
		Sinks:  []chatnotifier.SinkRegistration{{Name: "slack", Sink: client}},
	})
	if !svc.Enabled() {
		return nil
	}
	logger.Info("slack submission alerts enabled", "channel", cfg.Slack.Channel)
	return svc
}
