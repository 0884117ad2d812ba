package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/technova/careers-api/internal/core"
	"github.com/technova/careers-api/internal/domain/model"
	apperrors "github.com/technova/careers-api/internal/errors"
	"github.com/technova/careers-api/internal/mocks"
	"github.com/technova/careers-api/internal/observability/notify"
	"github.com/technova/careers-api/internal/testutil"
)

func newContactService(t *testing.T) (*ContactService, *mocks.MockContactMessageRepository, *mocks.MockMailer) {
	t.Helper()
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockContactMessageRepository(ctrl)
	mailer := mocks.NewMockMailer(ctrl)
	svc := NewContactService(ContactServiceOptions{
		Repo:   repo,
		Notify: NotifierDeps{Mailer: mailer},
		Config: PipelineConfig{StaffEmail: staffEmail, NotifyTimeout: time.Second},
	})
	return svc, repo, mailer
}

func storedContact(req *model.CreateContactMessageRequest) *model.ContactMessage {
	return &model.ContactMessage{
		ID:        "0b1f7d7e-5a43-4d4f-9f39-2f4c0e1f6a11",
		Name:      req.Name,
		Email:     req.Email,
		Mobile:    req.Mobile,
		Subject:   req.Subject,
		Message:   req.Message,
		Consent:   true,
		Status:    model.ContactStatusNew,
		CreatedAt: testutil.TestTime(),
	}
}

func TestNewContactService_RequiresRepo(t *testing.T) {
	ctrl := gomock.NewController(t)
	assert.Panics(t, func() {
		NewContactService(ContactServiceOptions{Notify: NotifierDeps{Mailer: mocks.NewMockMailer(ctrl)}})
	})
}

func TestContactService_Submit_Success(t *testing.T) {
	svc, repo, mailer := newContactService(t)
	req := testutil.NewContactRequest()
	req.Message = "Hello <b>team</b>"

	repo.EXPECT().Create(gomock.Any(), req).DoAndReturn(
		func(_ context.Context, got *model.CreateContactMessageRequest) (*model.ContactMessage, error) {
			return storedContact(got), nil
		})

	var sent []core.Email
	mailer.EXPECT().Send(gomock.Any(), gomock.Any()).Times(2).DoAndReturn(
		func(_ context.Context, e core.Email) error {
			sent = append(sent, e)
			return nil
		})

	msg, err := svc.Submit(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, model.ContactStatusNew, msg.Status)

	require.Len(t, sent, 2)
	assert.Equal(t, "ada@x.com", sent[0].To)
	assert.Equal(t, "Thank you for contacting TechNova", sent[0].Subject)
	assert.Contains(t, sent[0].HTMLBody, "Thank you for reaching out, Ada!")
	assert.Contains(t, sent[0].HTMLBody, "<blockquote>Hello &lt;b&gt;team&lt;/b&gt;</blockquote>", "user input is escaped")

	assert.Equal(t, staffEmail, sent[1].To)
	assert.Equal(t, "New Contact Message: Hi", sent[1].Subject)
	assert.Empty(t, sent[1].Attachments)
}

func TestContactService_Submit_Validation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*model.CreateContactMessageRequest)
		field  string
	}{
		{"missing name", func(r *model.CreateContactMessageRequest) { r.Name = "  " }, "name"},
		{"bad email", func(r *model.CreateContactMessageRequest) { r.Email = "ada" }, "email"},
		{"missing subject", func(r *model.CreateContactMessageRequest) { r.Subject = "" }, "subject"},
		{"missing consent", func(r *model.CreateContactMessageRequest) { r.Consent = nil }, "consent"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _, _ := newContactService(t)
			req := testutil.NewContactRequest()
			tt.mutate(req)

			_, err := svc.Submit(context.Background(), req)
			require.Error(t, err)
			assert.True(t, apperrors.IsValidation(err))
			assert.Equal(t, tt.field, apperrors.GetField(err))
		})
	}

	svc, _, _ := newContactService(t)
	_, err := svc.Submit(context.Background(), nil)
	assert.True(t, apperrors.IsValidation(err))
}

func TestContactService_Submit_StoreFailure(t *testing.T) {
	svc, repo, _ := newContactService(t)
	dbErr := apperrors.Wrap(errors.New("dial tcp"), apperrors.ErrCodeInternal, "database unavailable")
	repo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil, dbErr)

	_, err := svc.Submit(context.Background(), testutil.NewContactRequest())
	require.Error(t, err)
	assert.ErrorIs(t, err, dbErr)
}

func TestContactService_Submit_RecordsMetricsAndAlerts(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockContactMessageRepository(ctrl)
	mailer := mocks.NewMockMailer(ctrl)
	recorder := mocks.NewMockSubmissionRecorder(ctrl)

	chatErr := errors.New("webhook 500")
	svc := NewContactService(ContactServiceOptions{
		Repo: repo,
		Notify: NotifierDeps{
			Mailer: mailer,
			Chat: sinkAlerter{notify.SinkFunc(func(context.Context, notify.SubmissionPayload) error {
				return chatErr
			})},
			Recorder: recorder,
		},
	})

	repo.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, got *model.CreateContactMessageRequest) (*model.ContactMessage, error) {
			return storedContact(got), nil
		})
	mailer.EXPECT().Send(gomock.Any(), gomock.Any()).Return(nil)
	recorder.EXPECT().RecordSubmission(notify.KindContact, core.OutcomeSuccess)
	recorder.EXPECT().RecordNotification(notify.KindContact, core.AudienceSubmitter, core.OutcomeSuccess)
	recorder.EXPECT().RecordNotification(notify.KindContact, core.AudienceChat, core.OutcomeError)

	_, err := svc.Submit(context.Background(), testutil.NewContactRequest())
	require.NoError(t, err, "chat failures never fail the submission")
}

func TestContactService_AdminPassThrough(t *testing.T) {
	svc, repo, _ := newContactService(t)
	ctx := context.Background()
	msg := storedContact(testutil.NewContactRequest())

	repo.EXPECT().List(ctx).Return([]*model.ContactMessage{msg}, nil)
	repo.EXPECT().GetByID(ctx, msg.ID).Return(msg, nil)
	repo.EXPECT().UpdateStatus(ctx, msg.ID, model.ContactStatusWorking).
		Return(&model.ContactMessage{ID: msg.ID, Status: model.ContactStatusWorking}, nil)
	repo.EXPECT().Delete(ctx, msg.ID).Return(msg, nil)
	repo.EXPECT().Delete(ctx, msg.ID).Return(nil, apperrors.NotFound("Contact not found"))

	list, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []*model.ContactMessage{msg}, list)

	got, err := svc.GetByID(ctx, msg.ID)
	require.NoError(t, err)
	assert.Equal(t, msg, got)

	updated, err := svc.UpdateStatus(ctx, msg.ID, model.ContactStatusWorking)
	require.NoError(t, err)
	assert.Equal(t, model.ContactStatusWorking, updated.Status)

	deleted, err := svc.Delete(ctx, msg.ID)
	require.NoError(t, err)
	assert.Equal(t, model.DeletedContact{ID: msg.ID, Name: "Ada", Email: "ada@x.com"}, deleted.Summary())

	_, err = svc.Delete(ctx, msg.ID)
	assert.True(t, apperrors.IsNotFound(err))
}
