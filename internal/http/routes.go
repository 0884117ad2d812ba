// Package httpx provides the HTTP handlers, middleware and routing for the careers API.
package httpx

import (
	"log/slog"
	"net/http"

	"github.com/technova/careers-api/internal/service"
)

// RouterServices holds all the services needed by the HTTP router.
type RouterServices struct {
	Applications *service.ApplicationService
	Contacts     *service.ContactService
	Jobs         *service.JobListingService
	// SubmitLimit guards the two submission endpoints. A nil Limiter disables it.
	SubmitLimit RateLimitConfig
	Limits      BodyLimits
	UploadsDir  string
	// Metrics, when set, is mounted at /metrics.
	Metrics http.Handler
	Logger  *slog.Logger
}

// BodyLimits caps request bodies per kind.
type BodyLimits struct {
	JSONBytes int64
	// UploadBytes bounds the whole multipart application body, resume included.
	UploadBytes int64
}

// multipartOverhead is the allowance for form fields and part headers on top of the resume size.
const multipartOverhead = 1 << 20

// NewRouter creates and configures the HTTP router.
func NewRouter(services RouterServices) http.Handler {
	mux := http.NewServeMux()
	logger := services.Logger
	if logger == nil {
		logger = slog.Default()
	}

	jsonLimit := services.Limits.JSONBytes
	if jsonLimit <= 0 {
		jsonLimit = DefaultMaxJSONBytes
	}
	uploadLimit := services.Limits.UploadBytes
	if uploadLimit > 0 {
		uploadLimit += multipartOverhead
	}

	submitLimit := RateLimit(services.SubmitLimit)
	jsonBody := LimitBody(jsonLimit)

	career := &CareerHandlers{Applications: services.Applications, Jobs: services.Jobs, Logger: logger}
	contact := &ContactHandlers{Svc: services.Contacts, Logger: logger}

	registerCareerRoutes(mux, career, routeMiddleware{
		submit: func(h http.Handler) http.Handler { return submitLimit(LimitBody(uploadLimit)(h)) },
		json:   jsonBody,
	})
	registerContactRoutes(mux, contact, routeMiddleware{
		submit: func(h http.Handler) http.Handler { return submitLimit(jsonBody(h)) },
		json:   jsonBody,
	})

	mux.Handle("GET /health", http.HandlerFunc(healthHandler))
	mux.Handle("HEAD /health", http.HandlerFunc(healthHandler))
	mux.Handle("GET /healthz", http.HandlerFunc(healthHandler))
	mux.Handle("HEAD /healthz", http.HandlerFunc(healthHandler))

	if services.UploadsDir != "" {
		mux.Handle("GET /uploads/{file}", UploadsHandler{Dir: services.UploadsDir})
	}
	if services.Metrics != nil {
		mux.Handle("GET /metrics", services.Metrics)
	}

	return &notFoundHandler{mux: mux}
}

type routeMiddleware struct {
	submit func(http.Handler) http.Handler
	json   func(http.Handler) http.Handler
}

func registerCareerRoutes(mux *http.ServeMux, h *CareerHandlers, mw routeMiddleware) {
	mux.HandleFunc("GET /api/career/jobs", h.ListJobs)
	mux.HandleFunc("GET /api/career/jobs/{id}", h.GetJob)
	mux.Handle("POST /api/career/apply", mw.submit(http.HandlerFunc(h.Apply)))
	mux.HandleFunc("GET /api/career/applications", h.ListApplications)
	mux.HandleFunc("GET /api/career/applications/{id}", h.GetApplication)
	mux.Handle("PATCH /api/career/applications/{id}", mw.json(http.HandlerFunc(h.UpdateApplicationStatus)))
	mux.HandleFunc("DELETE /api/career/applications/{id}", h.DeleteApplication)
}

func registerContactRoutes(mux *http.ServeMux, h *ContactHandlers, mw routeMiddleware) {
	mux.HandleFunc("GET /api/contact", h.List)
	mux.HandleFunc("GET /api/contact/{$}", h.List)
	mux.HandleFunc("GET /api/contact/list", h.List)
	mux.Handle("POST /api/contact/submit", mw.submit(http.HandlerFunc(h.Submit)))
	mux.HandleFunc("GET /api/contact/{id}", h.Get)
	mux.Handle("PATCH /api/contact/{id}", mw.json(http.HandlerFunc(h.UpdateStatus)))
	mux.HandleFunc("DELETE /api/contact/{id}", h.Delete)
}

// notFoundHandler answers unmatched routes with the JSON error body instead of the mux's text reply.
type notFoundHandler struct {
	mux *http.ServeMux
}

func (h *notFoundHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if _, pattern := h.mux.Handler(r); pattern == "" {
		WriteError(w, ErrorParams{Code: http.StatusNotFound, ErrCode: "not_found", Message: "Route not found"})
		return
	}
	h.mux.ServeHTTP(w, r)
}
