package data

import (
	"context"
	"database/sql"

	"github.com/technova/careers-api/internal/migrate"
)

// EnsureSchema creates the applications and contact_messages tables if they are missing
// by delegating to the migrate package.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	return migrate.Run(ctx, db)
}
