package errors

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"strings"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// reKeyField extracts the column from a unique violation detail: "Key (field)=(value) already exists.".
var reKeyField = regexp.MustCompile(`Key \(([^)]+)\)=`)

// constraintSuffixes are the Postgres default constraint name suffixes.
var constraintSuffixes = []string{"_check", "_key", "_not_null", "_pkey"} //nolint:gochecknoglobals // read-only

// MapDBError maps database errors to AppError instances:
//   - sql.ErrNoRows / pgx.ErrNoRows → NotFound
//   - unique violations → Conflict
//   - check and NOT NULL violations → Validation
//   - context deadline / cancellation → Timeout / Canceled
//
// Unrecognized errors are returned unchanged.
func MapDBError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return &AppError{
			Code:    ErrCodeTimeout,
			Message: "Request timed out. Please try again.",
			Cause:   err,
		}
	}
	if errors.Is(err, context.Canceled) {
		return &AppError{
			Code:    ErrCodeCanceled,
			Message: "Request was canceled.",
			Cause:   err,
		}
	}

	if errors.Is(err, sql.ErrNoRows) || errors.Is(err, pgx.ErrNoRows) {
		return &AppError{
			Code:    ErrCodeNotFound,
			Message: "Resource not found",
			Cause:   err,
		}
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return mapPgError(pgErr)
	}

	return err
}

func mapPgError(pgErr *pgconn.PgError) error {
	switch pgErr.Code {
	case pgerrcode.UniqueViolation:
		return &AppError{
			Code:    ErrCodeConflict,
			Message: "This value already exists.",
			Field:   uniqueViolationField(pgErr),
			Cause:   pgErr,
		}
	case pgerrcode.CheckViolation:
		field := columnOrConstraintField(pgErr)
		msg := "Invalid data. Please check your input."
		if field != "" {
			msg = field + " has an invalid value"
		}
		return &AppError{Code: ErrCodeValidation, Message: msg, Field: field, Cause: pgErr}
	case pgerrcode.NotNullViolation:
		field := columnOrConstraintField(pgErr)
		msg := "Required field is missing. Please check your input."
		if field != "" {
			msg = field + " is required"
		}
		return &AppError{Code: ErrCodeValidation, Message: msg, Field: field, Cause: pgErr}
	default:
		return &AppError{
			Code:    ErrCodeInternal,
			Message: "A database error occurred. Please try again.",
			Cause:   pgErr,
		}
	}
}

func uniqueViolationField(pgErr *pgconn.PgError) string {
	if pgErr.ColumnName != "" {
		return pgErr.ColumnName
	}
	if m := reKeyField.FindStringSubmatch(pgErr.Detail); len(m) == 2 {
		return m[1]
	}
	return inferFieldFromConstraint(pgErr.TableName, pgErr.ConstraintName)
}

func columnOrConstraintField(pgErr *pgconn.PgError) string {
	if pgErr.ColumnName != "" {
		return pgErr.ColumnName
	}
	return inferFieldFromConstraint(pgErr.TableName, pgErr.ConstraintName)
}

// inferFieldFromConstraint recovers the column from a default constraint name,
// e.g. ("contact_messages", "contact_messages_status_check") → "status".
// Returns "" when the name does not follow the <table>_<column>_<suffix> convention.
func inferFieldFromConstraint(table, constraint string) string {
	name := strings.ToLower(strings.TrimSpace(constraint))
	if name == "" {
		return ""
	}

	suffixFound := false
	for _, suffix := range constraintSuffixes {
		if strings.HasSuffix(name, suffix) {
			name = strings.TrimSuffix(name, suffix)
			suffixFound = true
			break
		}
	}
	if !suffixFound {
		return ""
	}

	table = strings.ToLower(strings.TrimSpace(table))
	if table != "" {
		if !strings.HasPrefix(name, table+"_") {
			return ""
		}
		return strings.TrimPrefix(name, table+"_")
	}

	// Without a table name only the unambiguous <table>_<column> form can be split.
	parts := strings.Split(name, "_")
	if len(parts) != 2 {
		return ""
	}
	return parts[1]
}
