package httpx

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"go.uber.org/mock/gomock"

	"github.com/technova/careers-api/internal/core"
	"github.com/technova/careers-api/internal/data"
	"github.com/technova/careers-api/internal/domain/model"
	apperrors "github.com/technova/careers-api/internal/errors"
	"github.com/technova/careers-api/internal/mocks"
	"github.com/technova/careers-api/internal/service"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// memContacts is an in-memory ContactMessageRepository with the same id rules as the SQL repo.
type memContacts struct {
	mu    sync.Mutex
	clock time.Time
	rows  map[string]*model.ContactMessage
}

func newMemContacts() *memContacts {
	return &memContacts{clock: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC), rows: map[string]*model.ContactMessage{}}
}

func (m *memContacts) lookup(id string) (*model.ContactMessage, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, apperrors.InvalidID("Invalid contact ID")
	}
	row, ok := m.rows[id]
	if !ok {
		return nil, apperrors.NotFound("Contact not found")
	}
	return row, nil
}

func (m *memContacts) Create(_ context.Context, req *model.CreateContactMessageRequest) (*model.ContactMessage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.clock = m.clock.Add(time.Second)
	row := &model.ContactMessage{
		ID: uuid.NewString(), Name: req.Name, Email: req.Email, Mobile: req.Mobile,
		Subject: req.Subject, Message: req.Message, Consent: *req.Consent,
		Status: model.ContactStatusNew, CreatedAt: m.clock,
	}
	m.rows[row.ID] = row
	return row, nil
}

func (m *memContacts) List(context.Context) ([]*model.ContactMessage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*model.ContactMessage, 0, len(m.rows))
	for _, row := range m.rows {
		out = append(out, row)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (m *memContacts) GetByID(_ context.Context, id string) (*model.ContactMessage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lookup(id)
}

func (m *memContacts) UpdateStatus(_ context.Context, id string, status model.ContactStatus) (*model.ContactMessage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	row, err := m.lookup(id)
	if err != nil {
		return nil, err
	}
	row.Status = status
	return row, nil
}

func (m *memContacts) Delete(_ context.Context, id string) (*model.ContactMessage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	row, err := m.lookup(id)
	if err != nil {
		return nil, err
	}
	delete(m.rows, id)
	return row, nil
}

var _ core.ContactMessageRepository = (*memContacts)(nil)

// testAPI wires real services over mocks and in-memory stores.
type testAPI struct {
	handler  http.Handler
	apps     *mocks.MockApplicationRepository
	files    *mocks.MockFileStore
	mailer   *mocks.MockMailer
	limiter  *mocks.MockRateLimiter
	contacts *memContacts
}

type apiOptions struct {
	withLimiter bool
	uploadsDir  string
}

func newTestAPI(t *testing.T, opts apiOptions) *testAPI {
	t.Helper()
	ctrl := gomock.NewController(t)
	api := &testAPI{
		apps:     mocks.NewMockApplicationRepository(ctrl),
		files:    mocks.NewMockFileStore(ctrl),
		mailer:   mocks.NewMockMailer(ctrl),
		contacts: newMemContacts(),
	}
	api.mailer.EXPECT().Send(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	logger := discardLogger()
	notifyDeps := service.NotifierDeps{Mailer: api.mailer}
	pipeline := service.PipelineConfig{StaffEmail: "hr@technova.example", NotifyTimeout: time.Second, Logger: logger}

	services := RouterServices{
		Applications: service.NewApplicationService(service.ApplicationServiceOptions{
			Stores: service.ApplicationStores{Applications: api.apps, Files: api.files, Jobs: data.NewJobListingRepo()},
			Notify: notifyDeps,
			Config: pipeline,
		}),
		Contacts: service.NewContactService(service.ContactServiceOptions{
			Repo: api.contacts, Notify: notifyDeps, Config: pipeline,
		}),
		Jobs:       service.NewJobListingService(data.NewJobListingRepo()),
		Limits:     BodyLimits{JSONBytes: 1 << 10, UploadBytes: 1 << 20},
		UploadsDir: opts.uploadsDir,
		Logger:     logger,
	}
	if opts.withLimiter {
		api.limiter = mocks.NewMockRateLimiter(ctrl)
		services.SubmitLimit = RateLimitConfig{Limiter: api.limiter, Logger: logger}
	}
	api.handler = NewRouter(services)
	return api
}

func (a *testAPI) do(req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	a.handler.ServeHTTP(rec, req)
	return rec
}
