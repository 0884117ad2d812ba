package data

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/technova/careers-api/internal/data/pgxutil"
	"github.com/technova/careers-api/internal/domain/model"
	apperrors "github.com/technova/careers-api/internal/errors"
)

// applicationColumns defines the column list for Application queries to ensure consistent field mapping.
const applicationColumns = `id, first_name, last_name, email, mobile, area_of_interest, message,
	resume_path, resume_name, job_id, job_title, consent, status, created_at`

// ApplicationRepo provides database operations for career applications.
type ApplicationRepo struct {
	DB           *sql.DB
	timeProvider TimeProvider
}

// NewApplicationRepo creates a new ApplicationRepo instance with the given database connection.
func NewApplicationRepo(db *sql.DB) *ApplicationRepo {
	return &ApplicationRepo{
		DB:           db,
		timeProvider: &RealTimeProvider{},
	}
}

// NewApplicationRepoWithTimeProvider creates an ApplicationRepo with a custom TimeProvider (useful for testing).
func NewApplicationRepoWithTimeProvider(db *sql.DB, tp TimeProvider) *ApplicationRepo {
	return &ApplicationRepo{
		DB:           db,
		timeProvider: tp,
	}
}

// Create inserts a new application with status New.
func (r *ApplicationRepo) Create(
	ctx context.Context,
	req *model.CreateApplicationRequest,
) (*model.Application, error) {
	if req == nil {
		return nil, errors.New("create application request is required")
	}

	req.Normalize()
	if err := req.ValidateStored(); err != nil {
		return nil, err
	}

	query := `
		INSERT INTO applications (id, first_name, last_name, email, mobile, area_of_interest, message,
			resume_path, resume_name, job_id, job_title, consent, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		RETURNING ` + applicationColumns

	app, err := pgxutil.QueryOne[model.Application](ctx, r.DB, query,
		uuid.NewString(),
		req.FirstName, req.LastName, req.Email, req.Mobile, string(req.AreaOfInterest), req.Message,
		req.ResumePath, req.ResumeName, req.JobID, req.JobTitle, *req.Consent,
		string(model.ApplicationStatusNew), r.timeProvider.Now(),
	)
	if err != nil {
		return nil, fmt.Errorf("create application: %w", apperrors.MapDBError(err))
	}

	return app, nil
}

// List returns all applications ordered by creation time, newest first.
func (r *ApplicationRepo) List(ctx context.Context) ([]*model.Application, error) {
	query := `SELECT ` + applicationColumns + ` FROM applications ORDER BY created_at DESC, id`

	apps, err := pgxutil.QueryAll[model.Application](ctx, r.DB, query)
	if err != nil {
		return nil, fmt.Errorf("list applications: %w", apperrors.MapDBError(err))
	}
	return apps, nil
}

// GetByID retrieves an application by its ID.
func (r *ApplicationRepo) GetByID(ctx context.Context, id string) (*model.Application, error) {
	appID, err := parseApplicationID(id)
	if err != nil {
		return nil, err
	}

	query := `SELECT ` + applicationColumns + ` FROM applications WHERE id = $1`
	app, err := pgxutil.QueryOne[model.Application](ctx, r.DB, query, appID)
	if err != nil {
		return nil, mapApplicationErr("get application", err)
	}
	return app, nil
}

// UpdateStatus sets the status of an application and returns the updated row.
func (r *ApplicationRepo) UpdateStatus(
	ctx context.Context,
	id string,
	status model.ApplicationStatus,
) (*model.Application, error) {
	if !status.Valid() {
		return nil, apperrors.ValidationField("status", "Invalid status value")
	}
	appID, err := parseApplicationID(id)
	if err != nil {
		return nil, err
	}

	query := `UPDATE applications SET status = $1 WHERE id = $2 RETURNING ` + applicationColumns
	app, err := pgxutil.QueryOne[model.Application](ctx, r.DB, query, string(status), appID)
	if err != nil {
		return nil, mapApplicationErr("update application status", err)
	}
	return app, nil
}

// Delete removes an application and returns the row as it was before deletion.
func (r *ApplicationRepo) Delete(ctx context.Context, id string) (*model.Application, error) {
	appID, err := parseApplicationID(id)
	if err != nil {
		return nil, err
	}

	query := `DELETE FROM applications WHERE id = $1 RETURNING ` + applicationColumns
	app, err := pgxutil.QueryOne[model.Application](ctx, r.DB, query, appID)
	if err != nil {
		return nil, mapApplicationErr("delete application", err)
	}
	return app, nil
}

func parseApplicationID(id string) (string, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return "", apperrors.InvalidID("Invalid application ID")
	}
	return parsed.String(), nil
}

func mapApplicationErr(op string, err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return apperrors.Wrap(err, apperrors.ErrCodeNotFound, "Application not found")
	}
	return fmt.Errorf("%s: %w", op, apperrors.MapDBError(err))
}
