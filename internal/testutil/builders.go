// Package testutil provides database, Redis and fixture helpers for the careers API tests.
package testutil

import (
	"github.com/technova/careers-api/internal/domain/model"
)

// ApplicationRequestBuilder provides a fluent interface for building CreateApplicationRequest objects for testing.
type ApplicationRequestBuilder struct {
	req *model.CreateApplicationRequest
}

// NewApplicationRequest creates a builder with a complete, valid application.
func NewApplicationRequest() *ApplicationRequestBuilder {
	return &ApplicationRequestBuilder{
		req: &model.CreateApplicationRequest{
			FirstName:      "Ada",
			LastName:       "Lovelace",
			Email:          "ada@example.com",
			Mobile:         "555-0100",
			AreaOfInterest: model.AreaEngineering,
			Message:        "Looking forward to hearing from you.",
			Consent:        BoolPtr(true),
			ResumePath:     "uploads/resume.pdf",
			ResumeName:     "resume.pdf",
		},
	}
}

// WithName sets the applicant's first and last name.
func (b *ApplicationRequestBuilder) WithName(first, last string) *ApplicationRequestBuilder {
	b.req.FirstName = first
	b.req.LastName = last
	return b
}

// WithEmail sets the applicant email.
func (b *ApplicationRequestBuilder) WithEmail(email string) *ApplicationRequestBuilder {
	b.req.Email = email
	return b
}

// WithJob sets the job reference.
func (b *ApplicationRequestBuilder) WithJob(id, title string) *ApplicationRequestBuilder {
	b.req.JobID = id
	b.req.JobTitle = title
	return b
}

// WithResume sets the stored resume reference.
func (b *ApplicationRequestBuilder) WithResume(path, name string) *ApplicationRequestBuilder {
	b.req.ResumePath = path
	b.req.ResumeName = name
	return b
}

// Build returns the built request.
func (b *ApplicationRequestBuilder) Build() *model.CreateApplicationRequest {
	return b.req
}

// NewContactRequest returns a complete, valid contact message request.
func NewContactRequest() *model.CreateContactMessageRequest {
	return &model.CreateContactMessageRequest{
		Name:    "Ada",
		Email:   "ada@x.com",
		Mobile:  "555",
		Subject: "Hi",
		Message: "Hello",
		Consent: BoolPtr(true),
	}
}

// BoolPtr returns a pointer to b.
func BoolPtr(b bool) *bool {
	return &b
}
