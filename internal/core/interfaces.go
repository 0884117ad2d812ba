// Package core declares the ports between the submission pipeline and its storage, mail and limiter adapters.
package core

import (
	"context"
	"time"

	"github.com/technova/careers-api/internal/domain/model"
)

// This file contains repository and adapter interface definitions (ports in hexagonal architecture).
// Services depend on these interfaces, never on concrete implementations.

// ApplicationRepository defines the interface for career application data operations.
type ApplicationRepository interface {
	Create(ctx context.Context, req *model.CreateApplicationRequest) (*model.Application, error)
	// List returns every application, newest first.
	List(ctx context.Context) ([]*model.Application, error)
	GetByID(ctx context.Context, id string) (*model.Application, error)
	UpdateStatus(ctx context.Context, id string, status model.ApplicationStatus) (*model.Application, error)
	// Delete removes the application and returns the deleted row.
	Delete(ctx context.Context, id string) (*model.Application, error)
}

// ContactMessageRepository defines the interface for contact message data operations.
type ContactMessageRepository interface {
	Create(ctx context.Context, req *model.CreateContactMessageRequest) (*model.ContactMessage, error)
	// List returns every contact message, newest first.
	List(ctx context.Context) ([]*model.ContactMessage, error)
	GetByID(ctx context.Context, id string) (*model.ContactMessage, error)
	UpdateStatus(ctx context.Context, id string, status model.ContactStatus) (*model.ContactMessage, error)
	// Delete removes the message and returns the deleted row.
	Delete(ctx context.Context, id string) (*model.ContactMessage, error)
}

// JobListingRepository defines read access to the job catalog.
type JobListingRepository interface {
	List(ctx context.Context) ([]model.JobListing, error)
	GetByID(ctx context.Context, id int) (*model.JobListing, error)
}

// FileStore persists uploaded files.
type FileStore interface {
	// Store writes the upload and returns where it landed.
	Store(ctx context.Context, upload *model.Upload) (*model.StoredFile, error)
	// Remove deletes a previously stored file. Failures are logged by the implementation.
	Remove(ctx context.Context, path string)
}

// Attachment references a file on disk to include in an email.
type Attachment struct {
	Filename string
	Path     string
}

// Email is one outbound HTML message.
type Email struct {
	To          string
	Subject     string
	HTMLBody    string
	Attachments []Attachment
}

// Mailer delivers email.
type Mailer interface {
	Send(ctx context.Context, email Email) error
}

// RateDecision is the outcome of one rate limiter check.
type RateDecision struct {
	Allowed   bool
	Limit     int
	Remaining int
	// ResetAfter is the time until the current window ends.
	ResetAfter time.Duration
}

// RateLimiter counts requests per key in fixed windows.
type RateLimiter interface {
	Allow(ctx context.Context, key string) (RateDecision, error)
}

// Outcome labels reported to a SubmissionRecorder.
const (
	OutcomeSuccess = "success"
	OutcomeInvalid = "invalid"
	OutcomeError   = "error"
)

// Notification audiences reported to a SubmissionRecorder.
const (
	AudienceSubmitter = "submitter"
	AudienceStaff     = "staff"
	AudienceChat      = "chat"
)

// SubmissionRecorder records pipeline outcomes for monitoring.
type SubmissionRecorder interface {
	RecordSubmission(kind, outcome string)
	RecordNotification(kind, audience, outcome string)
}

// NopRecorder discards all observations.
type NopRecorder struct{}

// RecordSubmission implements SubmissionRecorder.
func (NopRecorder) RecordSubmission(string, string) {}

// RecordNotification implements SubmissionRecorder.
func (NopRecorder) RecordNotification(string, string, string) {}
