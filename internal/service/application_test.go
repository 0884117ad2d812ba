package service

import (
	"context"
	"errors"
	"strings"
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

const staffEmail = "hr@technova.example"

type applicationFixture struct {
	repo     *mocks.MockApplicationRepository
	files    *mocks.MockFileStore
	jobs     *mocks.MockJobListingRepository
	mailer   *mocks.MockMailer
	recorder *mocks.MockSubmissionRecorder
	alerts   []notify.SubmissionPayload
	svc      *ApplicationService
}

func newApplicationFixture(t *testing.T) *applicationFixture {
	t.Helper()
	ctrl := gomock.NewController(t)
	f := &applicationFixture{
		repo:     mocks.NewMockApplicationRepository(ctrl),
		files:    mocks.NewMockFileStore(ctrl),
		jobs:     mocks.NewMockJobListingRepository(ctrl),
		mailer:   mocks.NewMockMailer(ctrl),
		recorder: mocks.NewMockSubmissionRecorder(ctrl),
	}
	chat := notify.SinkFunc(func(_ context.Context, p notify.SubmissionPayload) error {
		f.alerts = append(f.alerts, p)
		return nil
	})
	f.svc = NewApplicationService(ApplicationServiceOptions{
		Stores: ApplicationStores{Applications: f.repo, Files: f.files, Jobs: f.jobs},
		Notify: NotifierDeps{Mailer: f.mailer, Chat: sinkAlerter{chat}, Recorder: f.recorder},
		Config: PipelineConfig{StaffEmail: staffEmail, NotifyTimeout: time.Second},
	})
	return f
}

// sinkAlerter adapts a single notify.Sink to chatAlerter.
type sinkAlerter struct{ sink notify.Sink }

func (a sinkAlerter) NotifySubmission(ctx context.Context, p notify.SubmissionPayload) error {
	return a.sink.SendSubmission(ctx, p)
}

func resumeUpload() *model.Upload {
	return &model.Upload{Filename: "ada.pdf", Size: 8, Content: strings.NewReader("%PDF-1.4")}
}

func newFormRequest() *model.CreateApplicationRequest {
	return testutil.NewApplicationRequest().WithResume("", "").Build()
}

func storedApplication(req *model.CreateApplicationRequest) *model.Application {
	return &model.Application{
		ID:             "7f4c1c55-3c4a-4f0e-8d7e-0a4b9b1f2c3d",
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		Email:          req.Email,
		Mobile:         req.Mobile,
		AreaOfInterest: req.AreaOfInterest,
		Message:        req.Message,
		ResumePath:     req.ResumePath,
		ResumeName:     req.ResumeName,
		JobID:          req.JobID,
		JobTitle:       req.JobTitle,
		Consent:        true,
		Status:         model.ApplicationStatusNew,
		CreatedAt:      testutil.TestTime(),
	}
}

func TestNewApplicationService_RequiredDependencies(t *testing.T) {
	ctrl := gomock.NewController(t)
	mailer := mocks.NewMockMailer(ctrl)

	assert.Panics(t, func() {
		NewApplicationService(ApplicationServiceOptions{Notify: NotifierDeps{Mailer: mailer}})
	})
	assert.Panics(t, func() {
		NewApplicationService(ApplicationServiceOptions{
			Stores: ApplicationStores{Applications: mocks.NewMockApplicationRepository(ctrl)},
			Notify: NotifierDeps{Mailer: mailer},
		})
	})
	assert.Panics(t, func() {
		NewApplicationService(ApplicationServiceOptions{
			Stores: ApplicationStores{
				Applications: mocks.NewMockApplicationRepository(ctrl),
				Files:        mocks.NewMockFileStore(ctrl),
			},
		})
	}, "mailer is required")
}

func TestApplicationService_Submit_Success(t *testing.T) {
	f := newApplicationFixture(t)
	ctx := context.Background()
	req := newFormRequest()
	req.Email = "  Ada@Example.COM "
	req.JobID = "1"

	listing := &model.JobListing{ID: 1, Title: "Senior Software Engineer"}
	stored := &model.StoredFile{Path: "uploads/abc.pdf", OriginalName: "ada.pdf", ContentType: "application/pdf", Size: 8}

	var created *model.Application
	gomock.InOrder(
		f.jobs.EXPECT().GetByID(gomock.Any(), 1).Return(listing, nil),
		f.files.EXPECT().Store(gomock.Any(), gomock.Any()).Return(stored, nil),
		f.repo.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, got *model.CreateApplicationRequest) (*model.Application, error) {
				assert.Equal(t, "ada@example.com", got.Email)
				assert.Equal(t, "Senior Software Engineer", got.JobTitle)
				assert.Equal(t, "uploads/abc.pdf", got.ResumePath)
				assert.Equal(t, "ada.pdf", got.ResumeName)
				created = storedApplication(got)
				return created, nil
			}),
	)
	f.recorder.EXPECT().RecordSubmission(notify.KindApplication, core.OutcomeSuccess)

	var sent []core.Email
	f.mailer.EXPECT().Send(gomock.Any(), gomock.Any()).Times(2).DoAndReturn(
		func(_ context.Context, e core.Email) error {
			sent = append(sent, e)
			return nil
		})
	f.recorder.EXPECT().RecordNotification(notify.KindApplication, core.AudienceSubmitter, core.OutcomeSuccess)
	f.recorder.EXPECT().RecordNotification(notify.KindApplication, core.AudienceStaff, core.OutcomeSuccess)
	f.recorder.EXPECT().RecordNotification(notify.KindApplication, core.AudienceChat, core.OutcomeSuccess)

	app, err := f.svc.Submit(ctx, req, resumeUpload())
	require.NoError(t, err)
	assert.Equal(t, created, app)

	require.Len(t, sent, 2)
	assert.Equal(t, "ada@example.com", sent[0].To)
	assert.Equal(t, "Application Received - TechNova", sent[0].Subject)
	assert.Contains(t, sent[0].HTMLBody, "Thank you for your application, Ada!")
	assert.Contains(t, sent[0].HTMLBody, "Senior Software Engineer")

	assert.Equal(t, staffEmail, sent[1].To)
	assert.Equal(t, "New Application: Ada Lovelace - Senior Software Engineer", sent[1].Subject)
	assert.Equal(t, []core.Attachment{{Filename: "ada.pdf", Path: "uploads/abc.pdf"}}, sent[1].Attachments)

	require.Len(t, f.alerts, 1)
	assert.Equal(t, notify.KindApplication, f.alerts[0].Kind)
	assert.Equal(t, app.ID, f.alerts[0].RecordID)
}

func TestApplicationService_Submit_ValidationStopsEarly(t *testing.T) {
	f := newApplicationFixture(t)
	req := newFormRequest()
	req.Email = "not-an-email"

	f.recorder.EXPECT().RecordSubmission(notify.KindApplication, core.OutcomeInvalid)

	_, err := f.svc.Submit(context.Background(), req, resumeUpload())
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
	assert.Equal(t, "email", apperrors.GetField(err))
	assert.Empty(t, f.alerts)
}

func TestApplicationService_Submit_MissingResume(t *testing.T) {
	f := newApplicationFixture(t)
	f.recorder.EXPECT().RecordSubmission(notify.KindApplication, core.OutcomeInvalid)

	_, err := f.svc.Submit(context.Background(), newFormRequest(), nil)
	require.Error(t, err)
	assert.True(t, apperrors.IsMissingFile(err))
	assert.Equal(t, "Resume file is required", apperrors.GetMessage(err))
}

func TestApplicationService_Submit_RejectedUpload(t *testing.T) {
	f := newApplicationFixture(t)
	f.files.EXPECT().Store(gomock.Any(), gomock.Any()).
		Return(nil, apperrors.ValidationField("resume", "Resume must be a PDF, Word, RTF or text document"))
	f.recorder.EXPECT().RecordSubmission(notify.KindApplication, core.OutcomeInvalid)

	_, err := f.svc.Submit(context.Background(), newFormRequest(), resumeUpload())
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
}

func TestApplicationService_Submit_CreateFailureRemovesFile(t *testing.T) {
	f := newApplicationFixture(t)
	dbErr := errors.New("connection reset")

	f.files.EXPECT().Store(gomock.Any(), gomock.Any()).
		Return(&model.StoredFile{Path: "uploads/abc.pdf", OriginalName: "ada.pdf"}, nil)
	f.repo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil, dbErr)
	f.files.EXPECT().Remove(gomock.Any(), "uploads/abc.pdf")
	f.recorder.EXPECT().RecordSubmission(notify.KindApplication, core.OutcomeError)

	_, err := f.svc.Submit(context.Background(), newFormRequest(), resumeUpload())
	require.Error(t, err)
	assert.ErrorIs(t, err, dbErr)
	assert.Empty(t, f.alerts, "no notifications without a record")
}

func TestApplicationService_Submit_EmailFailureIsBestEffort(t *testing.T) {
	f := newApplicationFixture(t)
	req := newFormRequest()

	f.files.EXPECT().Store(gomock.Any(), gomock.Any()).
		Return(&model.StoredFile{Path: "uploads/abc.pdf", OriginalName: "ada.pdf"}, nil)
	f.repo.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, got *model.CreateApplicationRequest) (*model.Application, error) {
			return storedApplication(got), nil
		})
	f.recorder.EXPECT().RecordSubmission(notify.KindApplication, core.OutcomeSuccess)
	f.mailer.EXPECT().Send(gomock.Any(), gomock.Any()).Times(2).
		Return(apperrors.Delivery(errors.New("dial tcp: refused"), "smtp unavailable"))
	f.recorder.EXPECT().RecordNotification(notify.KindApplication, core.AudienceSubmitter, core.OutcomeError)
	f.recorder.EXPECT().RecordNotification(notify.KindApplication, core.AudienceStaff, core.OutcomeError)
	f.recorder.EXPECT().RecordNotification(notify.KindApplication, core.AudienceChat, core.OutcomeSuccess)

	app, err := f.svc.Submit(context.Background(), req, resumeUpload())
	require.NoError(t, err)
	assert.Equal(t, model.DefaultPosition, app.Position())
}

func TestApplicationService_Submit_SurvivesClientCancel(t *testing.T) {
	f := newApplicationFixture(t)
	ctx, cancel := context.WithCancel(context.Background())

	f.files.EXPECT().Store(gomock.Any(), gomock.Any()).DoAndReturn(
		func(storeCtx context.Context, _ *model.Upload) (*model.StoredFile, error) {
			cancel()
			assert.NoError(t, storeCtx.Err(), "store context must not follow the client")
			return &model.StoredFile{Path: "uploads/abc.pdf", OriginalName: "ada.pdf"}, nil
		})
	f.repo.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
		func(createCtx context.Context, got *model.CreateApplicationRequest) (*model.Application, error) {
			assert.NoError(t, createCtx.Err())
			return storedApplication(got), nil
		})
	f.recorder.EXPECT().RecordSubmission(gomock.Any(), gomock.Any())
	f.mailer.EXPECT().Send(gomock.Any(), gomock.Any()).Times(2).DoAndReturn(
		func(sendCtx context.Context, _ core.Email) error {
			_, hasDeadline := sendCtx.Deadline()
			assert.True(t, hasDeadline)
			return sendCtx.Err()
		})
	f.recorder.EXPECT().RecordNotification(gomock.Any(), gomock.Any(), core.OutcomeSuccess).Times(3)

	_, err := f.svc.Submit(ctx, newFormRequest(), resumeUpload())
	require.NoError(t, err)
}

func TestApplicationService_Submit_NoStaffEmail(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockApplicationRepository(ctrl)
	files := mocks.NewMockFileStore(ctrl)
	mailer := mocks.NewMockMailer(ctrl)
	svc := NewApplicationService(ApplicationServiceOptions{
		Stores: ApplicationStores{Applications: repo, Files: files},
		Notify: NotifierDeps{Mailer: mailer},
	})

	files.EXPECT().Store(gomock.Any(), gomock.Any()).Return(&model.StoredFile{Path: "uploads/a.pdf"}, nil)
	repo.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, got *model.CreateApplicationRequest) (*model.Application, error) {
			return storedApplication(got), nil
		})
	mailer.EXPECT().Send(gomock.Any(), gomock.Any()).Return(nil).Times(1)

	_, err := svc.Submit(context.Background(), newFormRequest(), resumeUpload())
	require.NoError(t, err)
}

func TestApplicationService_FillJobTitle(t *testing.T) {
	tests := []struct {
		name      string
		jobID     string
		jobTitle  string
		lookup    bool
		lookupErr error
		want      string
	}{
		{name: "fills from catalog", jobID: "2", lookup: true, want: "UX/UI Designer"},
		{name: "keeps explicit title", jobID: "2", jobTitle: "Designer", want: "Designer"},
		{name: "non numeric id", jobID: "abc", want: ""},
		{name: "unknown id", jobID: "99", lookup: true, lookupErr: apperrors.NotFound("Job listing not found"), want: ""},
		{name: "no job", want: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newApplicationFixture(t)
			if tt.lookup {
				call := f.jobs.EXPECT().GetByID(gomock.Any(), gomock.Any())
				if tt.lookupErr != nil {
					call.Return(nil, tt.lookupErr)
				} else {
					call.Return(&model.JobListing{ID: 2, Title: "UX/UI Designer"}, nil)
				}
			}
			req := newFormRequest()
			req.JobID = tt.jobID
			req.JobTitle = tt.jobTitle

			f.svc.fillJobTitle(context.Background(), req)
			assert.Equal(t, tt.want, req.JobTitle)
		})
	}
}

func TestApplicationService_Delete_RemovesResume(t *testing.T) {
	f := newApplicationFixture(t)
	ctx := context.Background()
	app := storedApplication(testutil.NewApplicationRequest().Build())

	f.repo.EXPECT().Delete(ctx, app.ID).Return(app, nil)
	f.files.EXPECT().Remove(ctx, "uploads/resume.pdf")

	got, err := f.svc.Delete(ctx, app.ID)
	require.NoError(t, err)
	assert.Equal(t, model.DeletedApplication{ID: app.ID, Name: "Ada Lovelace", Position: model.DefaultPosition}, got.Summary())
}

func TestApplicationService_Delete_NotFound(t *testing.T) {
	f := newApplicationFixture(t)
	ctx := context.Background()
	f.repo.EXPECT().Delete(ctx, "missing").Return(nil, apperrors.NotFound("Application not found"))

	_, err := f.svc.Delete(ctx, "missing")
	require.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestApplicationService_AdminPassThrough(t *testing.T) {
	f := newApplicationFixture(t)
	ctx := context.Background()
	app := storedApplication(testutil.NewApplicationRequest().Build())

	f.repo.EXPECT().List(ctx).Return([]*model.Application{app}, nil)
	f.repo.EXPECT().GetByID(ctx, app.ID).Return(app, nil)
	updated := *app
	updated.Status = model.ApplicationStatusInterview
	f.repo.EXPECT().UpdateStatus(ctx, app.ID, model.ApplicationStatusInterview).Return(&updated, nil)

	list, err := f.svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	got, err := f.svc.GetByID(ctx, app.ID)
	require.NoError(t, err)
	assert.Equal(t, app, got)

	changed, err := f.svc.UpdateStatus(ctx, app.ID, model.ApplicationStatusInterview)
	require.NoError(t, err)
	assert.Equal(t, model.ApplicationStatusInterview, changed.Status)
}
