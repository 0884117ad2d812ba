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

const contactMessageColumns = `id, name, email, mobile, subject, message, consent, status, created_at`

// ContactMessageRepo provides database operations for contact form messages.
type ContactMessageRepo struct {
	DB           *sql.DB
	timeProvider TimeProvider
}

// NewContactMessageRepo creates a new ContactMessageRepo instance with the given database connection.
func NewContactMessageRepo(db *sql.DB) *ContactMessageRepo {
	return &ContactMessageRepo{
		DB:           db,
		timeProvider: &RealTimeProvider{},
	}
}

// NewContactMessageRepoWithTimeProvider creates a ContactMessageRepo with a custom TimeProvider.
func NewContactMessageRepoWithTimeProvider(db *sql.DB, tp TimeProvider) *ContactMessageRepo {
	return &ContactMessageRepo{
		DB:           db,
		timeProvider: tp,
	}
}

// Create inserts a new contact message with status New.
func (r *ContactMessageRepo) Create(
	ctx context.Context,
	req *model.CreateContactMessageRequest,
) (*model.ContactMessage, error) {
	if req == nil {
		return nil, errors.New("create contact message request is required")
	}

	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}

	query := `
		INSERT INTO contact_messages (id, name, email, mobile, subject, message, consent, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING ` + contactMessageColumns

	msg, err := pgxutil.QueryOne[model.ContactMessage](ctx, r.DB, query,
		uuid.NewString(),
		req.Name, req.Email, req.Mobile, req.Subject, req.Message, *req.Consent,
		string(model.ContactStatusNew), r.timeProvider.Now(),
	)
	if err != nil {
		return nil, fmt.Errorf("create contact message: %w", apperrors.MapDBError(err))
	}
	return msg, nil
}

// List returns all contact messages, newest first.
func (r *ContactMessageRepo) List(ctx context.Context) ([]*model.ContactMessage, error) {
	query := `SELECT ` + contactMessageColumns + ` FROM contact_messages ORDER BY created_at DESC, id`

	msgs, err := pgxutil.QueryAll[model.ContactMessage](ctx, r.DB, query)
	if err != nil {
		return nil, fmt.Errorf("list contact messages: %w", apperrors.MapDBError(err))
	}
	return msgs, nil
}

// GetByID retrieves a contact message by its ID.
func (r *ContactMessageRepo) GetByID(ctx context.Context, id string) (*model.ContactMessage, error) {
	msgID, err := parseContactID(id)
	if err != nil {
		return nil, err
	}

	query := `SELECT ` + contactMessageColumns + ` FROM contact_messages WHERE id = $1`
	msg, err := pgxutil.QueryOne[model.ContactMessage](ctx, r.DB, query, msgID)
	if err != nil {
		return nil, mapContactErr("get contact message", err)
	}
	return msg, nil
}

// UpdateStatus sets the status of a contact message and returns the updated row.
func (r *ContactMessageRepo) UpdateStatus(
	ctx context.Context,
	id string,
	status model.ContactStatus,
) (*model.ContactMessage, error) {
	if !status.Valid() {
		return nil, apperrors.ValidationField("status", "Invalid status value")
	}
	msgID, err := parseContactID(id)
	if err != nil {
		return nil, err
	}

	query := `UPDATE contact_messages SET status = $1 WHERE id = $2 RETURNING ` + contactMessageColumns
	msg, err := pgxutil.QueryOne[model.ContactMessage](ctx, r.DB, query, string(status), msgID)
	if err != nil {
		return nil, mapContactErr("update contact message status", err)
	}
	return msg, nil
}

// Delete removes a contact message and returns the deleted row.
func (r *ContactMessageRepo) Delete(ctx context.Context, id string) (*model.ContactMessage, error) {
	msgID, err := parseContactID(id)
	if err != nil {
		return nil, err
	}

	query := `DELETE FROM contact_messages WHERE id = $1 RETURNING ` + contactMessageColumns
	msg, err := pgxutil.QueryOne[model.ContactMessage](ctx, r.DB, query, msgID)
	if err != nil {
		return nil, mapContactErr("delete contact message", err)
	}
	return msg, nil
}

func parseContactID(id string) (string, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return "", apperrors.InvalidID("Invalid contact ID")
	}
	return parsed.String(), nil
}

func mapContactErr(op string, err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return apperrors.Wrap(err, apperrors.ErrCodeNotFound, "Contact not found")
	}
	return fmt.Errorf("%s: %w", op, apperrors.MapDBError(err))
}
