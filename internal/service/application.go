package service

import (
	"context"
	"fmt"
	"strconv"

	"github.com/technova/careers-api/internal/core"
	"github.com/technova/careers-api/internal/domain/model"
	apperrors "github.com/technova/careers-api/internal/errors"
	"github.com/technova/careers-api/internal/observability/notify"
)

// Staff and applicant email subjects.
const (
	applicationAckSubject = "Application Received - TechNova"
	applicationStaffFmt   = "New Application: %s - %s"
)

// ApplicationStores groups the storage dependencies of ApplicationService.
type ApplicationStores struct {
	Applications core.ApplicationRepository // Required
	Files        core.FileStore             // Required: resume storage
	Jobs         core.JobListingRepository  // Optional: fills jobTitle from jobId
}

// ApplicationServiceOptions groups dependencies for ApplicationService.
type ApplicationServiceOptions struct {
	Stores ApplicationStores
	Notify NotifierDeps
	Config PipelineConfig
}

// ApplicationService runs the career submission pipeline and the admin operations on applications.
type ApplicationService struct {
	repo  core.ApplicationRepository
	files core.FileStore
	jobs  core.JobListingRepository
	notifier
}

// NewApplicationService constructs a new ApplicationService.
func NewApplicationService(opts ApplicationServiceOptions) *ApplicationService {
	if opts.Stores.Applications == nil {
		panic("ApplicationRepository is required")
	}
	if opts.Stores.Files == nil {
		panic("FileStore is required")
	}
	return &ApplicationService{
		repo:     opts.Stores.Applications,
		files:    opts.Stores.Files,
		jobs:     opts.Stores.Jobs,
		notifier: newNotifier(notify.KindApplication, opts.Notify, opts.Config),
	}
}

// Submit validates the form, stores the resume, persists the application and notifies.
// Once the record is committed Submit succeeds even if notifications fail.
func (s *ApplicationService) Submit(
	ctx context.Context,
	req *model.CreateApplicationRequest,
	upload *model.Upload,
) (*model.Application, error) {
	if req == nil {
		s.recorder.RecordSubmission(s.kind, core.OutcomeInvalid)
		return nil, apperrors.Validation("application is required")
	}
	req.Normalize()
	if err := req.Validate(); err != nil {
		s.recorder.RecordSubmission(s.kind, core.OutcomeInvalid)
		return nil, err
	}
	if upload == nil || upload.Content == nil {
		s.recorder.RecordSubmission(s.kind, core.OutcomeInvalid)
		return nil, apperrors.MissingFile("Resume file is required")
	}

	s.fillJobTitle(ctx, req)

	storeCtx, cancel := s.detach(ctx)
	defer cancel()

	stored, err := s.files.Store(storeCtx, upload)
	if err != nil {
		s.recordFailure(err)
		return nil, fmt.Errorf("store resume: %w", err)
	}
	req.ResumePath = stored.Path
	req.ResumeName = stored.OriginalName

	app, err := s.repo.Create(storeCtx, req)
	if err != nil {
		s.files.Remove(storeCtx, stored.Path)
		s.recordFailure(err)
		return nil, fmt.Errorf("create application: %w", err)
	}
	s.recorder.RecordSubmission(s.kind, core.OutcomeSuccess)
	s.logger.InfoContext(ctx, "application stored", "application_id", app.ID, "position", app.Position())

	s.notifyApplication(ctx, app)
	return app, nil
}

func (s *ApplicationService) recordFailure(err error) {
	if apperrors.IsValidation(err) || apperrors.IsMissingFile(err) {
		s.recorder.RecordSubmission(s.kind, core.OutcomeInvalid)
		return
	}
	s.recorder.RecordSubmission(s.kind, core.OutcomeError)
}

// fillJobTitle copies the catalog title when the form names a listing but no title.
func (s *ApplicationService) fillJobTitle(ctx context.Context, req *model.CreateApplicationRequest) {
	if s.jobs == nil || req.JobID == "" || req.JobTitle != "" {
		return
	}
	id, err := strconv.Atoi(req.JobID)
	if err != nil {
		return
	}
	listing, err := s.jobs.GetByID(ctx, id)
	if err != nil {
		s.logger.DebugContext(ctx, "job listing lookup failed", "job_id", req.JobID, "error", err)
		return
	}
	req.JobTitle = listing.Title
}

func (s *ApplicationService) notifyApplication(ctx context.Context, app *model.Application) {
	s.sendRendered(ctx, core.AudienceSubmitter, app.ID, "application_ack", app, core.Email{
		To:      app.Email,
		Subject: applicationAckSubject,
	})

	if s.staffEmail != "" {
		s.sendRendered(ctx, core.AudienceStaff, app.ID, "application_staff", app, core.Email{
			To:          s.staffEmail,
			Subject:     fmt.Sprintf(applicationStaffFmt, app.FullName(), app.Position()),
			Attachments: []core.Attachment{{Filename: app.ResumeName, Path: app.ResumePath}},
		})
	}

	s.alert(ctx, notify.SubmissionPayload{
		RecordID:   app.ID,
		Name:       app.FullName(),
		Email:      app.Email,
		Topic:      app.Position(),
		Attachment: app.ResumeName,
		OccurredAt: app.CreatedAt,
		Metadata:   map[string]string{"area": string(app.AreaOfInterest)},
	})
}

// List returns all applications, newest first.
func (s *ApplicationService) List(ctx context.Context) ([]*model.Application, error) {
	apps, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list applications: %w", err)
	}
	return apps, nil
}

// GetByID retrieves an application by ID.
func (s *ApplicationService) GetByID(ctx context.Context, id string) (*model.Application, error) {
	return s.repo.GetByID(ctx, id)
}

// UpdateStatus moves an application to a new review status.
func (s *ApplicationService) UpdateStatus(
	ctx context.Context,
	id string,
	status model.ApplicationStatus,
) (*model.Application, error) {
	app, err := s.repo.UpdateStatus(ctx, id, status)
	if err != nil {
		return nil, fmt.Errorf("update application status: %w", err)
	}
	s.logger.InfoContext(ctx, "application status updated", "application_id", app.ID, "status", app.Status)
	return app, nil
}

// Delete removes an application and then its resume file.
func (s *ApplicationService) Delete(ctx context.Context, id string) (*model.Application, error) {
	app, err := s.repo.Delete(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("delete application: %w", err)
	}
	if app.ResumePath != "" {
		s.files.Remove(ctx, app.ResumePath)
	}
	s.logger.InfoContext(ctx, "application deleted", "application_id", app.ID)
	return app, nil
}
