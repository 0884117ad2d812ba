// Package notify defines the staff chat alert emitted after a form submission is stored.
package notify

import (
	"context"
	"time"
)

// Submission kinds carried in SubmissionPayload.Kind.
const (
	KindApplication = "application"
	KindContact     = "contact"
)

// SubmissionPayload summarizes one stored submission for staff channels.
type SubmissionPayload struct {
	Kind     string
	RecordID string
	Name     string
	Email    string
	// Topic is the position applied for, or the contact subject.
	Topic      string
	Attachment string
	OccurredAt time.Time
	Metadata   map[string]string
}

// Sink describes a destination capable of consuming submission alerts.
type Sink interface {
	SendSubmission(ctx context.Context, payload SubmissionPayload) error
}

// SinkFunc adapts a function to the Sink interface (useful for tests).
type SinkFunc func(ctx context.Context, payload SubmissionPayload) error

// SendSubmission implements the Sink interface.
func (f SinkFunc) SendSubmission(ctx context.Context, payload SubmissionPayload) error {
	if f == nil {
		return nil
	}
	return f(ctx, payload)
}
