package httpx

import (
	"log/slog"
	"net/http"

	"github.com/technova/careers-api/internal/domain/model"
	"github.com/technova/careers-api/internal/service"
)

// ContactHandlers serves the contact form and the contact admin endpoints.
type ContactHandlers struct {
	Svc    *service.ContactService
	Logger *slog.Logger
}

// Submit accepts a contact form as JSON or urlencoded body.
func (h *ContactHandlers) Submit(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeContactRequest(w, r)
	if !ok {
		return
	}

	msg, err := h.Svc.Submit(r.Context(), req)
	if err != nil {
		writeServiceError(w, r, h.Logger, failure{Op: "send message", Message: "Failed to send message"}, err)
		return
	}
	WriteJSON(w, http.StatusCreated, map[string]any{
		"message":   "Message sent successfully!",
		"messageId": msg.ID,
	})
}

// List returns every contact message, newest first.
func (h *ContactHandlers) List(w http.ResponseWriter, r *http.Request) {
	msgs, err := h.Svc.List(r.Context())
	if err != nil {
		writeServiceError(w, r, h.Logger, failure{Op: "fetch contacts", Message: "Failed to fetch contacts"}, err)
		return
	}
	WriteJSON(w, http.StatusOK, msgs)
}

// Get returns one contact message.
func (h *ContactHandlers) Get(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	msg, err := h.Svc.GetByID(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, h.Logger, failure{Op: "fetch contact", Message: "Failed to fetch contact", ID: id}, err)
		return
	}
	WriteJSON(w, http.StatusOK, msg)
}

// UpdateStatus changes a contact message's handling status.
func (h *ContactHandlers) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	var body model.UpdateStatusRequest
	if !DecodeJSON(w, r, &body) {
		return
	}
	status, err := model.ParseContactStatus(body.Status)
	if err != nil {
		writeInvalidStatus(w, model.ContactStatusChoices())
		return
	}

	msg, err := h.Svc.UpdateStatus(r.Context(), id, status)
	if err != nil {
		writeServiceError(w, r, h.Logger, failure{Op: "update contact", Message: "Failed to update contact", ID: id}, err)
		return
	}
	WriteJSON(w, http.StatusOK, msg)
}

// Delete removes a contact message.
func (h *ContactHandlers) Delete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	msg, err := h.Svc.Delete(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, h.Logger, failure{Op: "delete contact", Message: "Failed to delete contact", ID: id}, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]any{
		"message":        "Contact deleted successfully",
		"deletedContact": msg.Summary(),
	})
}
