package config

import (
	"strings"
	"time"
)

// MailConfig configures the SMTP relay and notification recipients.
// Without a Host, mail is written to the log instead of being sent.
type MailConfig struct {
	Host string `env:"SMTP_HOST"`
	Port int    `env:"SMTP_PORT"   envDefault:"587"`
	// Secure selects implicit TLS instead of STARTTLS.
	Secure   bool   `env:"SMTP_SECURE" envDefault:"false"`
	Username string `env:"EMAIL_USER"`
	Password string `env:"EMAIL_PASS"`

	From     string `env:"MAIL_FROM"`
	FromName string `env:"MAIL_FROM_NAME" envDefault:"TechNova"`
	// StaffTo receives staff notifications. Empty disables them.
	StaffTo string `env:"MAIL_TO"`

	// Legacy variable names, folded into From and StaffTo by Sanitize.
	LegacyFrom string `env:"FROM_EMAIL"`
	LegacyTo   string `env:"TO_EMAIL"`

	// Timeout bounds the store and notification steps of one submission.
	Timeout time.Duration `env:"MAIL_TIMEOUT" envDefault:"30s"`
}

// Sanitize resolves legacy names and defaults the sender to the relay account.
func (c *MailConfig) Sanitize() {
	c.Host = strings.TrimSpace(c.Host)
	c.From = firstNonEmpty(c.From, c.LegacyFrom, c.Username)
	c.StaffTo = firstNonEmpty(c.StaffTo, c.LegacyTo)
	c.FromName = firstNonEmpty(c.FromName, "TechNova")
	if c.Port <= 0 {
		c.Port = 587
	}
	if c.Timeout <= 0 {
		c.Timeout = 30 * time.Second
	}
}

// SMTPEnabled reports whether a relay is configured.
func (c *MailConfig) SMTPEnabled() bool {
	return c.Host != ""
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}
