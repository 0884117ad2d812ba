// Package model defines the records, requests and catalog types shared by the store, pipeline and HTTP layers.
package model

import (
	"strings"
	"time"

	apperrors "github.com/technova/careers-api/internal/errors"
)

// ApplicationStatus is the review state of a career application.
type ApplicationStatus string

const (
	ApplicationStatusNew       ApplicationStatus = "New"
	ApplicationStatusPending   ApplicationStatus = "Pending"
	ApplicationStatusInterview ApplicationStatus = "Interview"
	ApplicationStatusHired     ApplicationStatus = "Hired"
)

//nolint:gochecknoglobals // read-only enum table
var applicationStatuses = []ApplicationStatus{
	ApplicationStatusNew,
	ApplicationStatusPending,
	ApplicationStatusInterview,
	ApplicationStatusHired,
}

// Valid reports whether s is one of the known application statuses.
func (s ApplicationStatus) Valid() bool {
	for _, known := range applicationStatuses {
		if s == known {
			return true
		}
	}
	return false
}

// ApplicationStatusChoices describes the accepted values, e.g. "Status must be one of: New, Pending, Interview, Hired".
func ApplicationStatusChoices() string {
	names := make([]string, len(applicationStatuses))
	for i, s := range applicationStatuses {
		names[i] = string(s)
	}
	return statusChoices(names)
}

// ParseApplicationStatus converts raw input into an ApplicationStatus.
// Matching is exact; "new" is rejected.
func ParseApplicationStatus(raw string) (ApplicationStatus, error) {
	s := ApplicationStatus(strings.TrimSpace(raw))
	if !s.Valid() {
		return "", apperrors.ValidationField("status", "Invalid status value")
	}
	return s, nil
}

// AreaOfInterest is the team an applicant wants to join.
type AreaOfInterest string

const (
	AreaEngineering AreaOfInterest = "engineering"
	AreaDesign      AreaOfInterest = "design"
	AreaProduct     AreaOfInterest = "product"
	AreaMarketing   AreaOfInterest = "marketing"
	AreaHR          AreaOfInterest = "hr"
)

// DefaultPosition is shown when an application does not target a specific listing.
const DefaultPosition = "General Application"

// Application is a persisted career form submission.
type Application struct {
	ID             string            `json:"id"                 db:"id"`
	FirstName      string            `json:"firstName"          db:"first_name"`
	LastName       string            `json:"lastName"           db:"last_name"`
	Email          string            `json:"email"              db:"email"`
	Mobile         string            `json:"mobile"             db:"mobile"`
	AreaOfInterest AreaOfInterest    `json:"areaOfInterest"     db:"area_of_interest"`
	Message        string            `json:"message,omitempty"  db:"message"`
	ResumePath     string            `json:"resumePath"         db:"resume_path"`
	ResumeName     string            `json:"resumeName"         db:"resume_name"`
	JobID          string            `json:"jobId,omitempty"    db:"job_id"`
	JobTitle       string            `json:"jobTitle,omitempty" db:"job_title"`
	Consent        bool              `json:"consent"            db:"consent"`
	Status         ApplicationStatus `json:"status"             db:"status"`
	CreatedAt      time.Time         `json:"createdAt"          db:"created_at"`
}

// FullName joins the applicant's first and last name.
func (a *Application) FullName() string {
	return strings.TrimSpace(a.FirstName + " " + a.LastName)
}

// Position returns the job title or DefaultPosition when none was given.
func (a *Application) Position() string {
	if a.JobTitle == "" {
		return DefaultPosition
	}
	return a.JobTitle
}

// Summary returns the short form reported after deletion.
func (a *Application) Summary() DeletedApplication {
	return DeletedApplication{ID: a.ID, Name: a.FullName(), Position: a.Position()}
}

// DeletedApplication is the snapshot returned when an application is removed.
type DeletedApplication struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Position string `json:"position"`
}

// CreateApplicationRequest carries the career form fields.
// ResumePath and ResumeName are filled by the pipeline after the upload is stored.
type CreateApplicationRequest struct {
	FirstName      string         `json:"firstName"      validate:"required,max=100"`
	LastName       string         `json:"lastName"       validate:"required,max=100"`
	Email          string         `json:"email"          validate:"required,email,max=254"`
	Mobile         string         `json:"mobile"         validate:"required,max=32"`
	AreaOfInterest AreaOfInterest `json:"areaOfInterest" validate:"required,oneof=engineering design product marketing hr"`
	Message        string         `json:"message"        validate:"max=5000"`
	JobID          string         `json:"jobId"          validate:"max=64"`
	JobTitle       string         `json:"jobTitle"       validate:"max=200"`
	Consent        *bool          `json:"consent"        validate:"required"`

	ResumePath string `json:"-"`
	ResumeName string `json:"-"`
}

// Normalize trims every text field and lowercases email and area of interest.
func (r *CreateApplicationRequest) Normalize() {
	r.FirstName = strings.TrimSpace(r.FirstName)
	r.LastName = strings.TrimSpace(r.LastName)
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	r.Mobile = strings.TrimSpace(r.Mobile)
	r.AreaOfInterest = AreaOfInterest(strings.ToLower(strings.TrimSpace(string(r.AreaOfInterest))))
	r.Message = strings.TrimSpace(r.Message)
	r.JobID = strings.TrimSpace(r.JobID)
	r.JobTitle = strings.TrimSpace(r.JobTitle)
}

// Validate checks the form fields. It does not require the resume, which is checked separately.
func (r *CreateApplicationRequest) Validate() error {
	return validateStruct(r)
}

// ValidateStored checks the form fields and that a stored resume is attached.
func (r *CreateApplicationRequest) ValidateStored() error {
	if err := r.Validate(); err != nil {
		return err
	}
	if strings.TrimSpace(r.ResumePath) == "" {
		return apperrors.ValidationField("resumePath", "resumePath is required")
	}
	return nil
}

// UpdateStatusRequest is the body of a status change.
type UpdateStatusRequest struct {
	Status string `json:"status"`
}
