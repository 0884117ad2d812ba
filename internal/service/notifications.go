package service

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"
	"log/slog"
	"time"

	"github.com/technova/careers-api/internal/core"
	obserrors "github.com/technova/careers-api/internal/observability/errors"
	"github.com/technova/careers-api/internal/observability/notify"
)

// DefaultNotifyTimeout bounds detached pipeline steps when no timeout is configured.
const DefaultNotifyTimeout = 30 * time.Second

//go:embed emails/*.html
var emailFS embed.FS

var emailTemplates = template.Must(template.ParseFS(emailFS, "emails/*.html"))

func renderEmail(name string, data any) (string, error) {
	var buf bytes.Buffer
	if err := emailTemplates.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("render %s email: %w", name, err)
	}
	return buf.String(), nil
}

// chatAlerter posts staff chat alerts. Implemented by chatnotifier.Service.
type chatAlerter interface {
	NotifySubmission(ctx context.Context, payload notify.SubmissionPayload) error
}

// NotifierDeps groups the outbound channels used after a record is stored.
type NotifierDeps struct {
	Mailer   core.Mailer             // Required
	Chat     chatAlerter             // Optional: staff chat alerts
	Recorder core.SubmissionRecorder // Optional: pipeline metrics
}

// PipelineConfig holds the settings shared by the submission pipelines.
type PipelineConfig struct {
	// StaffEmail receives staff notifications. Empty disables them.
	StaffEmail string
	// NotifyTimeout bounds the store and notify steps, which ignore client cancellation.
	NotifyTimeout time.Duration
	Logger        *slog.Logger
}

// notifier performs the best-effort steps that follow a committed record.
type notifier struct {
	kind       string
	mailer     core.Mailer
	chat       chatAlerter
	recorder   core.SubmissionRecorder
	staffEmail string
	timeout    time.Duration
	logger     *slog.Logger
}

func newNotifier(kind string, deps NotifierDeps, cfg PipelineConfig) notifier {
	if deps.Mailer == nil {
		panic("Mailer is required")
	}
	n := notifier{
		kind:       kind,
		mailer:     deps.Mailer,
		chat:       deps.Chat,
		recorder:   deps.Recorder,
		staffEmail: cfg.StaffEmail,
		timeout:    cfg.NotifyTimeout,
		logger:     cfg.Logger,
	}
	if n.recorder == nil {
		n.recorder = core.NopRecorder{}
	}
	if n.timeout <= 0 {
		n.timeout = DefaultNotifyTimeout
	}
	if n.logger == nil {
		n.logger = slog.Default()
	}
	n.logger = n.logger.With("component", kind+"_pipeline")
	return n
}

// detach returns a context that survives client disconnects but still honors the step timeout.
func (n notifier) detach(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.WithoutCancel(ctx), n.timeout)
}

// send delivers one email and records the outcome. Failures are logged, never returned.
func (n notifier) send(ctx context.Context, audience, recordID string, email core.Email) {
	ctx, cancel := n.detach(ctx)
	defer cancel()

	if err := n.mailer.Send(ctx, email); err != nil {
		n.logger.ErrorContext(ctx, "email notification failed",
			"audience", audience,
			"record_id", recordID,
			"subject", email.Subject,
			"error_class", obserrors.Classify(err),
			"error", err,
		)
		n.recorder.RecordNotification(n.kind, audience, core.OutcomeError)
		return
	}
	n.recorder.RecordNotification(n.kind, audience, core.OutcomeSuccess)
}

// sendRendered renders template name with data and sends it.
func (n notifier) sendRendered(ctx context.Context, audience, recordID, tmpl string, data any, email core.Email) {
	body, err := renderEmail(tmpl, data)
	if err != nil {
		n.logger.ErrorContext(ctx, "email render failed", "audience", audience, "record_id", recordID, "error", err)
		n.recorder.RecordNotification(n.kind, audience, core.OutcomeError)
		return
	}
	email.HTMLBody = body
	n.send(ctx, audience, recordID, email)
}

// alert posts the chat summary when a chat notifier is configured.
func (n notifier) alert(ctx context.Context, payload notify.SubmissionPayload) {
	if n.chat == nil {
		return
	}
	ctx, cancel := n.detach(ctx)
	defer cancel()

	payload.Kind = n.kind
	if err := n.chat.NotifySubmission(ctx, payload); err != nil {
		n.recorder.RecordNotification(n.kind, core.AudienceChat, core.OutcomeError)
		return
	}
	n.recorder.RecordNotification(n.kind, core.AudienceChat, core.OutcomeSuccess)
}
