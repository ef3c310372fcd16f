package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"lg/wellness-go-api/internal/tracker"
)

// mapError converts pgx/pgconn errors to tracker errors. Context errors pass
// through wrapped but unmapped.
func mapError(err error, entity string, id any) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return fmt.Errorf("%s %v: %w", entity, id, err)
	}

	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("%s %v: %w", entity, id, tracker.ErrNotFound)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505": // unique_violation
			return fmt.Errorf("%s %v: %w", entity, id, tracker.ErrConflict)
		case "23503": // foreign_key_violation
			return fmt.Errorf("%s %v: %w", entity, id, tracker.ErrNotFound)
		case "23514": // check_violation
			return fmt.Errorf("%s %v: %w", entity, id, tracker.ErrValidation)
		}
	}

	return fmt.Errorf("%s %v: %w", entity, id, err)
}
