package httpx

import (
	"log/slog"
	"net/http"

	"github.com/technova/careers-api/internal/domain/model"
	"github.com/technova/careers-api/internal/service"
)

// CareerHandlers serves the job catalog, the application form and the application admin endpoints.
type CareerHandlers struct {
	Applications *service.ApplicationService
	Jobs         *service.JobListingService
	Logger       *slog.Logger
}

// ListJobs returns the job catalog.
func (h *CareerHandlers) ListJobs(w http.ResponseWriter, r *http.Request) {
	jobs, err := h.Jobs.List(r.Context())
	if err != nil {
		writeServiceError(w, r, h.Logger, failure{Op: "fetch job listings", Message: "Failed to fetch job listings"}, err)
		return
	}
	WriteJSON(w, http.StatusOK, jobs)
}

// GetJob returns one job listing.
func (h *CareerHandlers) GetJob(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	job, err := h.Jobs.GetByID(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, h.Logger, failure{Op: "fetch job listing", Message: "Failed to fetch job listing", ID: id}, err)
		return
	}
	WriteJSON(w, http.StatusOK, job)
}

// Apply accepts a multipart career application with a resume file.
func (h *CareerHandlers) Apply(w http.ResponseWriter, r *http.Request) {
	req, upload, err := parseApplicationForm(r)
	defer closeUpload(r, upload)
	if err != nil {
		writeServiceError(w, r, h.Logger, failure{Op: "submit application", Message: "Failed to submit application"}, err)
		return
	}

	app, err := h.Applications.Submit(r.Context(), req, upload)
	if err != nil {
		writeServiceError(w, r, h.Logger, failure{Op: "submit application", Message: "Failed to submit application"}, err)
		return
	}

	WriteJSON(w, http.StatusCreated, map[string]any{
		"message":     "Application submitted successfully",
		"application": app,
	})
}

// ListApplications returns every application, newest first.
func (h *CareerHandlers) ListApplications(w http.ResponseWriter, r *http.Request) {
	apps, err := h.Applications.List(r.Context())
	if err != nil {
		writeServiceError(w, r, h.Logger, failure{Op: "fetch applications", Message: "Failed to fetch applications"}, err)
		return
	}
	WriteJSON(w, http.StatusOK, apps)
}

// GetApplication returns one application.
func (h *CareerHandlers) GetApplication(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	app, err := h.Applications.GetByID(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, h.Logger, failure{Op: "fetch application", Message: "Failed to fetch application", ID: id}, err)
		return
	}
	WriteJSON(w, http.StatusOK, app)
}

// UpdateApplicationStatus changes an application's review status.
func (h *CareerHandlers) UpdateApplicationStatus(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	var body model.UpdateStatusRequest
	if !DecodeJSON(w, r, &body) {
		return
	}
	status, err := model.ParseApplicationStatus(body.Status)
	if err != nil {
		writeInvalidStatus(w, model.ApplicationStatusChoices())
		return
	}

	app, err := h.Applications.UpdateStatus(r.Context(), id, status)
	if err != nil {
		writeServiceError(w, r, h.Logger, failure{Op: "update application", Message: "Failed to update application", ID: id}, err)
		return
	}
	WriteJSON(w, http.StatusOK, app)
}

// DeleteApplication removes an application and its resume.
func (h *CareerHandlers) DeleteApplication(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	app, err := h.Applications.Delete(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, h.Logger, failure{Op: "delete application", Message: "Failed to delete application", ID: id}, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]any{
		"message":            "Application deleted successfully",
		"deletedApplication": app.Summary(),
	})
}
