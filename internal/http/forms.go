package httpx

import (
	"errors"
	"mime"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/technova/careers-api/internal/domain/model"
	apperrors "github.com/technova/careers-api/internal/errors"
)

// resumeField is the multipart field carrying the resume file.
const resumeField = "resume"

// multipartMemory is how much of a multipart body is kept in memory before spilling to temp files.
const multipartMemory = 1 << 20

// parseFormBool reads checkbox style values. An absent value yields nil.
func parseFormBool(raw string) *bool {
	v := true
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "":
		return nil
	case "true", "on", "1", "yes":
	default:
		v = false
	}
	return &v
}

// parseApplicationForm reads the career form fields and the optional resume part.
// The caller releases the upload with closeUpload.
func parseApplicationForm(r *http.Request) (*model.CreateApplicationRequest, *model.Upload, error) {
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return nil, nil, apperrors.ValidationField(resumeField, "Resume file is too large")
		}
		if errors.Is(err, http.ErrNotMultipart) {
			return nil, nil, apperrors.Validation("Request must be multipart/form-data")
		}
		return nil, nil, apperrors.Validationf("Invalid form data: %v", err)
	}

	req := &model.CreateApplicationRequest{
		FirstName:      r.PostFormValue("firstName"),
		LastName:       r.PostFormValue("lastName"),
		Email:          r.PostFormValue("email"),
		Mobile:         r.PostFormValue("mobile"),
		AreaOfInterest: model.AreaOfInterest(r.PostFormValue("areaOfInterest")),
		Message:        r.PostFormValue("message"),
		JobID:          r.PostFormValue("jobId"),
		JobTitle:       r.PostFormValue("jobTitle"),
		Consent:        parseFormBool(r.PostFormValue("consent")),
	}

	file, header, err := r.FormFile(resumeField)
	if errors.Is(err, http.ErrMissingFile) {
		return req, nil, nil
	}
	if err != nil {
		return nil, nil, apperrors.ValidationField(resumeField, "Resume file could not be read")
	}
	return req, &model.Upload{Filename: header.Filename, Size: header.Size, Content: file}, nil
}

func closeUpload(r *http.Request, upload *model.Upload) {
	if upload != nil {
		if f, ok := upload.Content.(multipart.File); ok {
			_ = f.Close()
		}
	}
	if r.MultipartForm != nil {
		_ = r.MultipartForm.RemoveAll()
	}
}

// decodeContactRequest accepts the contact form as JSON or as a urlencoded/multipart form.
// It returns false after writing an error response.
func decodeContactRequest(w http.ResponseWriter, r *http.Request) (*model.CreateContactMessageRequest, bool) {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	switch mediaType {
	case "application/x-www-form-urlencoded", "multipart/form-data":
		if err := r.ParseMultipartForm(multipartMemory); err != nil && !errors.Is(err, http.ErrNotMultipart) {
			WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_form", Message: "Invalid form data", Details: err.Error()})
			return nil, false
		}
		return &model.CreateContactMessageRequest{
			Name:    r.PostFormValue("name"),
			Email:   r.PostFormValue("email"),
			Mobile:  r.PostFormValue("mobile"),
			Subject: r.PostFormValue("subject"),
			Message: r.PostFormValue("message"),
			Consent: parseFormBool(r.PostFormValue("consent")),
		}, true
	default:
		var req model.CreateContactMessageRequest
		if !DecodeJSON(w, r, &req) {
			return nil, false
		}
		return &req, true
	}
}
