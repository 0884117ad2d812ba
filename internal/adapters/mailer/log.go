package mailer

import (
	"context"
	"log/slog"

	"github.com/technova/careers-api/internal/core"
)

// LogMailer records messages in the log instead of sending them. Used when no relay is configured.
type LogMailer struct {
	logger *slog.Logger
}

// NewLogMailer returns a LogMailer writing to logger.
func NewLogMailer(logger *slog.Logger) *LogMailer {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogMailer{logger: logger.With("component", "mailer", "transport", "log")}
}

// Send logs the envelope and body size.
func (m *LogMailer) Send(ctx context.Context, email core.Email) error {
	names := make([]string, 0, len(email.Attachments))
	for _, a := range email.Attachments {
		names = append(names, a.Filename)
	}
	m.logger.InfoContext(ctx, "email not sent (no smtp relay configured)",
		"to", email.To,
		"subject", email.Subject,
		"body_bytes", len(email.HTMLBody),
		"attachments", names,
	)
	return nil
}
