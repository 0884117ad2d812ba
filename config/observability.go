package config

import (
	"strings"
	"time"
)

const defaultSlackUsername = "TechNova Careers"

// ObservabilityConfig groups metrics exposition and staff chat alerts.
type ObservabilityConfig struct {
	// MetricsEnabled mounts the Prometheus handler at /metrics.
	MetricsEnabled bool `env:"METRICS_ENABLED" envDefault:"false"`

	Slack SlackConfig `envPrefix:"SLACK_"`
}

// Sanitize applies guardrails to observability sub-configs.
func (c *ObservabilityConfig) Sanitize() {
	c.Slack.Sanitize()
}

// SlackConfig controls the submission alert posted to a Slack incoming webhook.
type SlackConfig struct {
	Enabled    bool          `env:"ENABLED"     envDefault:"false"`
	WebhookURL string        `env:"WEBHOOK_URL"`
	Channel    string        `env:"CHANNEL"`
	Username   string        `env:"USERNAME"    envDefault:"TechNova Careers"`
	Timeout    time.Duration `env:"TIMEOUT"     envDefault:"5s"`
	RetryLimit int           `env:"RETRY_LIMIT" envDefault:"3"`
}

// Sanitize trims values and disables Slack when no webhook is set.
func (c *SlackConfig) Sanitize() {
	c.WebhookURL = strings.TrimSpace(c.WebhookURL)
	c.Channel = strings.TrimSpace(c.Channel)
	if c.Username = strings.TrimSpace(c.Username); c.Username == "" {
		c.Username = defaultSlackUsername
	}
	if c.Timeout <= 0 {
		c.Timeout = 5 * time.Second
	}
	if c.RetryLimit < 0 {
		c.RetryLimit = 0
	}
	if c.WebhookURL == "" {
		c.Enabled = false
	}
}
