package service

import (
	"context"
	"fmt"

	"github.com/technova/careers-api/internal/core"
	"github.com/technova/careers-api/internal/domain/model"
	apperrors "github.com/technova/careers-api/internal/errors"
	"github.com/technova/careers-api/internal/observability/notify"
)

const (
	contactAckSubject = "Thank you for contacting TechNova"
	contactStaffFmt   = "New Contact Message: %s"
)

// ContactServiceOptions groups dependencies for ContactService.
type ContactServiceOptions struct {
	Repo   core.ContactMessageRepository // Required
	Notify NotifierDeps
	Config PipelineConfig
}

// ContactService runs the contact form pipeline and the admin operations on messages.
type ContactService struct {
	repo core.ContactMessageRepository
	notifier
}

// NewContactService constructs a new ContactService.
func NewContactService(opts ContactServiceOptions) *ContactService {
	if opts.Repo == nil {
		panic("ContactMessageRepository is required")
	}
	return &ContactService{
		repo:     opts.Repo,
		notifier: newNotifier(notify.KindContact, opts.Notify, opts.Config),
	}
}

// Submit validates and persists a contact message, then notifies the sender and staff.
func (s *ContactService) Submit(
	ctx context.Context,
	req *model.CreateContactMessageRequest,
) (*model.ContactMessage, error) {
	if req == nil {
		s.recorder.RecordSubmission(s.kind, core.OutcomeInvalid)
		return nil, apperrors.Validation("message is required")
	}
	req.Normalize()
	if err := req.Validate(); err != nil {
		s.recorder.RecordSubmission(s.kind, core.OutcomeInvalid)
		return nil, err
	}

	storeCtx, cancel := s.detach(ctx)
	defer cancel()

	msg, err := s.repo.Create(storeCtx, req)
	if err != nil {
		outcome := core.OutcomeError
		if apperrors.IsValidation(err) {
			outcome = core.OutcomeInvalid
		}
		s.recorder.RecordSubmission(s.kind, outcome)
		return nil, fmt.Errorf("create contact message: %w", err)
	}
	s.recorder.RecordSubmission(s.kind, core.OutcomeSuccess)
	s.logger.InfoContext(ctx, "contact message stored", "contact_id", msg.ID)

	s.sendRendered(ctx, core.AudienceSubmitter, msg.ID, "contact_ack", msg, core.Email{
		To:      msg.Email,
		Subject: contactAckSubject,
	})
	if s.staffEmail != "" {
		s.sendRendered(ctx, core.AudienceStaff, msg.ID, "contact_staff", msg, core.Email{
			To:      s.staffEmail,
			Subject: fmt.Sprintf(contactStaffFmt, msg.Subject),
		})
	}
	s.alert(ctx, notify.SubmissionPayload{
		RecordID:   msg.ID,
		Name:       msg.Name,
		Email:      msg.Email,
		Topic:      msg.Subject,
		OccurredAt: msg.CreatedAt,
	})
	return msg, nil
}

// List returns all contact messages, newest first.
func (s *ContactService) List(ctx context.Context) ([]*model.ContactMessage, error) {
	msgs, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list contact messages: %w", err)
	}
	return msgs, nil
}

// GetByID retrieves a contact message by ID.
func (s *ContactService) GetByID(ctx context.Context, id string) (*model.ContactMessage, error) {
	return s.repo.GetByID(ctx, id)
}

// UpdateStatus moves a contact message to a new handling status.
func (s *ContactService) UpdateStatus(
	ctx context.Context,
	id string,
	status model.ContactStatus,
) (*model.ContactMessage, error) {
	msg, err := s.repo.UpdateStatus(ctx, id, status)
	if err != nil {
		return nil, fmt.Errorf("update contact status: %w", err)
	}
	return msg, nil
}

// Delete removes a contact message.
func (s *ContactService) Delete(ctx context.Context, id string) (*model.ContactMessage, error) {
	msg, err := s.repo.Delete(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("delete contact message: %w", err)
	}
	s.logger.InfoContext(ctx, "contact message deleted", "contact_id", msg.ID)
	return msg, nil
}
