package model

import (
	"strings"
	"time"

	apperrors "github.com/technova/careers-api/internal/errors"
)

// ContactStatus is the handling state of a contact message.
type ContactStatus string

const (
	ContactStatusNew      ContactStatus = "New"
	ContactStatusWorking  ContactStatus = "Working"
	ContactStatusComplete ContactStatus = "Complete"
)

//nolint:gochecknoglobals // read-only enum table
var contactStatuses = []ContactStatus{ContactStatusNew, ContactStatusWorking, ContactStatusComplete}

// Valid reports whether s is one of the known contact statuses.
func (s ContactStatus) Valid() bool {
	for _, known := range contactStatuses {
		if s == known {
			return true
		}
	}
	return false
}

// ContactStatusChoices describes the accepted values.
func ContactStatusChoices() string {
	names := make([]string, len(contactStatuses))
	for i, s := range contactStatuses {
		names[i] = string(s)
	}
	return statusChoices(names)
}

// ParseContactStatus converts raw input into a ContactStatus.
func ParseContactStatus(raw string) (ContactStatus, error) {
	s := ContactStatus(strings.TrimSpace(raw))
	if !s.Valid() {
		return "", apperrors.ValidationField("status", "Invalid status value")
	}
	return s, nil
}

func statusChoices(names []string) string {
	return "Status must be one of: " + strings.Join(names, ", ")
}

// ContactMessage is a persisted contact form submission.
type ContactMessage struct {
	ID        string        `json:"id"        db:"id"`
	Name      string        `json:"name"      db:"name"`
	Email     string        `json:"email"     db:"email"`
	Mobile    string        `json:"mobile"    db:"mobile"`
	Subject   string        `json:"subject"   db:"subject"`
	Message   string        `json:"message"   db:"message"`
	Consent   bool          `json:"consent"   db:"consent"`
	Status    ContactStatus `json:"status"    db:"status"`
	CreatedAt time.Time     `json:"createdAt" db:"created_at"`
}

// Summary returns the short form reported after deletion.
func (m *ContactMessage) Summary() DeletedContact {
	return DeletedContact{ID: m.ID, Name: m.Name, Email: m.Email}
}

// DeletedContact is the snapshot returned when a contact message is removed.
type DeletedContact struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// CreateContactMessageRequest carries the contact form fields.
type CreateContactMessageRequest struct {
	Name    string `json:"name"    validate:"required,max=200"`
	Email   string `json:"email"   validate:"required,email,max=254"`
	Mobile  string `json:"mobile"  validate:"required,max=32"`
	Subject string `json:"subject" validate:"required,max=200"`
	Message string `json:"message" validate:"required,max=5000"`
	Consent *bool  `json:"consent" validate:"required"`
}

// Normalize trims every text field and lowercases the email.
func (r *CreateContactMessageRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	r.Mobile = strings.TrimSpace(r.Mobile)
	r.Subject = strings.TrimSpace(r.Subject)
	r.Message = strings.TrimSpace(r.Message)
}

// Validate checks required fields and formats.
func (r *CreateContactMessageRequest) Validate() error {
	return validateStruct(r)
}
