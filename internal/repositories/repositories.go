// package repositories provides persistence layer implementations for the storage capability.
package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/noblex1/moviex/internal/shared"
)

// validateKey rejects empty keys before they reach the database.
func validateKey(key string) error {
	if strings.TrimSpace(key) == "" {
		return fmt.Errorf("%w: empty key", shared.ErrInvalidInput)
	}
	return nil
}

// withTx runs fn inside a transaction, committing on success.
func withTx(ctx context.Context, db *sql.DB, fn func(*sql.Tx) error) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := fn(tx); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}
