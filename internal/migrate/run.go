// Package migrate applies the embedded database schema.
package migrate

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"log/slog"
	"strings"
)

//go:embed schema.sql
var schemaSQL string

// Statements returns the schema split into individual statements, comments removed.
func Statements() []string {
	var out []string
	for _, chunk := range strings.Split(schemaSQL, ";") {
		var lines []string
		for _, line := range strings.Split(chunk, "\n") {
			if strings.HasPrefix(strings.TrimSpace(line), "--") {
				continue
			}
			lines = append(lines, line)
		}
		stmt := strings.TrimSpace(strings.Join(lines, "\n"))
		if stmt != "" {
			out = append(out, stmt)
		}
	}
	return out
}

// Run creates any missing tables and indexes in a single transaction.
// Every statement is idempotent, so it is safe to call on every start.
func Run(ctx context.Context, db *sql.DB) error {
	logger := slog.Default().With("component", "migrate")

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		if rollbackErr := tx.Rollback(); rollbackErr != nil && !errors.Is(rollbackErr, sql.ErrTxDone) {
			logger.ErrorContext(ctx, "failed to rollback schema transaction", "err", rollbackErr)
		}
	}()

	stmts := Statements()
	for i, stmt := range stmts {
		if _, execErr := tx.ExecContext(ctx, stmt); execErr != nil {
			return fmt.Errorf("exec schema statement %d: %w", i+1, execErr)
		}
	}

	if commitErr := tx.Commit(); commitErr != nil {
		return fmt.Errorf("commit schema: %w", commitErr)
	}

	logger.InfoContext(ctx, "schema ensured", "statements", len(stmts))
	return nil
}
