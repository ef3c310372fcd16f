package postgres

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"lg/wellness-go-api/internal/tracker"
)

// psql is the squirrel builder configured for PostgreSQL placeholders.
var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// queryOne runs a query and scans the first row into T using RowToStructByName.
// Column sets must match T's db tags exactly.
func queryOne[T any](ctx context.Context, q Querier, sql string, args ...any) (T, error) {
	rows, err := q.Query(ctx, sql, args...)
	if err != nil {
		var zero T
		return zero, err
	}
	return pgx.CollectOneRow(rows, pgx.RowToStructByName[T])
}

// queryMany runs a query and scans all rows into []T. The result is never
// nil so handlers encode an empty list as [].
func queryMany[T any](ctx context.Context, q Querier, sql string, args ...any) ([]T, error) {
	rows, err := q.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	results, err := pgx.CollectRows(rows, pgx.RowToStructByName[T])
	if err != nil {
		return nil, err
	}
	if results == nil {
		results = []T{}
	}
	return results, nil
}

// selectOne builds b and runs it through queryOne.
func selectOne[T any](ctx context.Context, q Querier, b sq.Sqlizer) (T, error) {
	sql, args, err := b.ToSql()
	if err != nil {
		var zero T
		return zero, fmt.Errorf("build query: %w", err)
	}
	return queryOne[T](ctx, q, sql, args...)
}

// selectMany builds b and runs it through queryMany.
func selectMany[T any](ctx context.Context, q Querier, b sq.Sqlizer) ([]T, error) {
	sql, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}
	return queryMany[T](ctx, q, sql, args...)
}

// execOne builds and executes b, returning ErrNoRows when nothing was touched.
func execOne(ctx context.Context, q Querier, b sq.Sqlizer) error {
	sql, args, err := b.ToSql()
	if err != nil {
		return fmt.Errorf("build query: %w", err)
	}
	tag, err := q.Exec(ctx, sql, args...)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// day formats t as a date literal. Dates travel as strings so the same
// queries work under the simple protocol.
func day(t time.Time) string {
	return t.Format(tracker.DateLayout)
}
