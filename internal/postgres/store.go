// Package postgres is the PostgreSQL persistence layer for the tracker. Store
// implements every repository interface the tracker service consumes; calls
// made with a context carrying a TxManager transaction run inside it.
package postgres

import "context"

// Store reads and writes users, goals, daily entries and the raw logs.
type Store struct {
	db Querier
}

// NewStore creates a Store over db, usually a *pgxpool.Pool.
func NewStore(db Querier) *Store {
	return &Store{db: db}
}

func (s *Store) querier(ctx context.Context) Querier {
	return QuerierFromCtx(ctx, s.db)
}
