// Package mailer delivers outbound email through an SMTP relay or, in development, the log.
package mailer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/wneessen/go-mail"

	"github.com/technova/careers-api/internal/core"
	apperrors "github.com/technova/careers-api/internal/errors"
)

// DefaultFromName is the display name used when none is configured.
const DefaultFromName = "TechNova"

// SMTPConfig captures relay connection and sender settings.
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	// UseSSL selects implicit TLS (typically port 465) instead of opportunistic STARTTLS.
	UseSSL   bool
	From     string
	FromName string
	Timeout  time.Duration
}

// SMTPMailer sends each message over a fresh SMTP session.
type SMTPMailer struct {
	cfg    SMTPConfig
	logger *slog.Logger
}

// NewSMTPMailer validates cfg and returns a mailer.
func NewSMTPMailer(cfg SMTPConfig, logger *slog.Logger) (*SMTPMailer, error) {
	cfg.Host = strings.TrimSpace(cfg.Host)
	cfg.From = strings.TrimSpace(cfg.From)
	if cfg.Host == "" {
		return nil, errors.New("smtp host is required")
	}
	if cfg.From == "" {
		return nil, errors.New("sender address is required")
	}
	if cfg.Port <= 0 {
		cfg.Port = 587
	}
	if cfg.FromName == "" {
		cfg.FromName = DefaultFromName
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 15 * time.Second
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &SMTPMailer{cfg: cfg, logger: logger.With("component", "mailer")}, nil
}

// Send delivers one message. Transport failures are reported as Delivery errors.
func (m *SMTPMailer) Send(ctx context.Context, email core.Email) error {
	msg, err := m.buildMessage(email)
	if err != nil {
		return err
	}

	client, err := mail.NewClient(m.cfg.Host, m.clientOptions()...)
	if err != nil {
		return apperrors.Delivery(err, "configure smtp client")
	}

	start := time.Now()
	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		m.logger.ErrorContext(ctx, "email delivery failed",
			"to", email.To,
			"subject", email.Subject,
			"error", err,
		)
		return apperrors.Delivery(err, "send email")
	}

	m.logger.InfoContext(ctx, "email sent",
		"to", email.To,
		"subject", email.Subject,
		"attachments", len(email.Attachments),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return nil
}

func (m *SMTPMailer) clientOptions() []mail.Option {
	opts := []mail.Option{
		mail.WithPort(m.cfg.Port),
		mail.WithTimeout(m.cfg.Timeout),
	}
	if m.cfg.UseSSL {
		opts = append(opts, mail.WithSSL())
	} else {
		opts = append(opts, mail.WithTLSPolicy(mail.TLSOpportunistic))
	}
	if m.cfg.Username != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(m.cfg.Username),
			mail.WithPassword(m.cfg.Password),
		)
	}
	return opts
}

func (m *SMTPMailer) buildMessage(email core.Email) (*mail.Msg, error) {
	if strings.TrimSpace(email.To) == "" {
		return nil, apperrors.Validation("email recipient is required")
	}

	msg := mail.NewMsg()
	if err := msg.FromFormat(m.cfg.FromName, m.cfg.From); err != nil {
		return nil, fmt.Errorf("set sender: %w", err)
	}
	if err := msg.To(email.To); err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeValidation, "invalid email recipient")
	}
	msg.Subject(email.Subject)
	msg.SetBodyString(mail.TypeTextHTML, email.HTMLBody)

	for _, att := range email.Attachments {
		// go-mail skips files it cannot stat, so check up front to surface the problem.
		if _, err := os.Stat(att.Path); err != nil {
			return nil, fmt.Errorf("attachment %q: %w", att.Filename, err)
		}
		msg.AttachFile(att.Path, mail.WithFileName(att.Filename))
	}
	return msg, nil
}
