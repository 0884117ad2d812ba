package httpx

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	apperrors "github.com/technova/careers-api/internal/errors"
)

// failure describes the operation a handler was performing when err occurred.
type failure struct {
	// Op names the failed operation, e.g. "fetch application". Used in logs and the 500 code.
	Op string
	// Message is the 500 body, e.g. "Failed to fetch application".
	Message string
	// ID is the record being acted on, if any.
	ID string
}

// writeServiceError logs err and maps it onto the JSON error contract.
func writeServiceError(w http.ResponseWriter, r *http.Request, logger *slog.Logger, f failure, err error) {
	code := apperrors.GetCode(err)
	level := slog.LevelWarn
	if status := statusForCode(code); status >= http.StatusInternalServerError {
		level = slog.LevelError
	}
	if logger != nil {
		logger.Log(r.Context(), level, "request failed",
			"op", f.Op,
			"id", f.ID,
			"code", string(code),
			"error", err,
		)
	}

	switch code {
	case apperrors.ErrCodeValidation:
		WriteError(w, ErrorParams{
			Code:    http.StatusBadRequest,
			ErrCode: "validation_failed",
			Message: apperrors.GetMessage(err),
			Field:   apperrors.GetField(err),
		})
	case apperrors.ErrCodeMissingFile:
		WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "missing_file", Message: apperrors.GetMessage(err)})
	case apperrors.ErrCodeInvalidID:
		WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_id", Message: apperrors.GetMessage(err)})
	case apperrors.ErrCodeNotFound:
		WriteError(w, ErrorParams{Code: http.StatusNotFound, ErrCode: "not_found", Message: apperrors.GetMessage(err)})
	case apperrors.ErrCodeConflict:
		WriteError(w, ErrorParams{Code: http.StatusConflict, ErrCode: "conflict", Message: apperrors.GetMessage(err)})
	default:
		if errors.Is(err, context.Canceled) && r.Context().Err() != nil {
			// Client went away; nobody is listening for the body.
			return
		}
		WriteError(w, ErrorParams{
			Code:    http.StatusInternalServerError,
			ErrCode: opCode(f.Op),
			Message: f.Message,
			Details: err.Error(),
		})
	}
}

func statusForCode(code apperrors.ErrorCode) int {
	switch code {
	case apperrors.ErrCodeValidation, apperrors.ErrCodeMissingFile, apperrors.ErrCodeInvalidID:
		return http.StatusBadRequest
	case apperrors.ErrCodeNotFound:
		return http.StatusNotFound
	case apperrors.ErrCodeConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

var opReplacer = strings.NewReplacer(" ", "_", "-", "_")

// opCode turns "fetch application" into "fetch_application_failed".
func opCode(op string) string {
	return opReplacer.Replace(op) + "_failed"
}

// writeInvalidStatus answers an out-of-enum status update.
func writeInvalidStatus(w http.ResponseWriter, choices string) {
	WriteError(w, ErrorParams{
		Code:    http.StatusBadRequest,
		ErrCode: "validation_failed",
		Message: "Invalid status value",
		Details: choices,
		Field:   "status",
	})
}
