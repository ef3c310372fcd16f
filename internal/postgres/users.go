package postgres

import (
	"context"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"lg/wellness-go-api/internal/tracker"
)

/* ─── Users ───────────────────────────────────────────────────────────── */

// GetUser loads a user by id.
func (s *Store) GetUser(ctx context.Context, userID int) (tracker.User, error) {
	u, err := queryOne[tracker.User](ctx, s.querier(ctx),
		"SELECT * FROM users WHERE id = @id",
		pgx.NamedArgs{"id": userID})
	if err != nil {
		return tracker.User{}, mapError(err, "user", userID)
	}
	return u, nil
}

// GetUserByUsername loads a user for login. Usernames compare case-insensitively.
func (s *Store) GetUserByUsername(ctx context.Context, username string) (tracker.User, error) {
	u, err := queryOne[tracker.User](ctx, s.querier(ctx),
		"SELECT * FROM users WHERE lower(username) = lower(@username)",
		pgx.NamedArgs{"username": username})
	if err != nil {
		return tracker.User{}, mapError(err, "user", username)
	}
	return u, nil
}

// GetUserIDByToken resolves a bearer token to its user id.
func (s *Store) GetUserIDByToken(ctx context.Context, token string) (int, error) {
	var userID int
	err := s.querier(ctx).QueryRow(ctx, "SELECT id FROM users WHERE auth_token = $1", token).Scan(&userID)
	if err != nil {
		return 0, mapError(err, "token", "")
	}
	return userID, nil
}

// CreateUser inserts u and returns the stored row. A taken username or
// email maps to tracker.ErrConflict.
func (s *Store) CreateUser(ctx context.Context, u tracker.User) (tracker.User, error) {
	created, err := queryOne[tracker.User](ctx, s.querier(ctx), `
		INSERT INTO users (username, email, name, auth_token, password, steps_goal)
		VALUES (@username, @email, @name, @auth_token, @password, @steps_goal)
		RETURNING *`,
		pgx.NamedArgs{
			"username":   strings.TrimSpace(u.Username),
			"email":      strings.TrimSpace(u.Email),
			"name":       u.Name,
			"auth_token": u.AuthToken,
			"password":   u.Password,
			"steps_goal": u.StepsGoal,
		})
	if err != nil {
		return tracker.User{}, mapError(err, "user", u.Username)
	}
	return created, nil
}

// UpdateAuthToken replaces the user's bearer token.
func (s *Store) UpdateAuthToken(ctx context.Context, userID int, token string) error {
	err := execOne(ctx, s.querier(ctx), psql.Update("users").
		Set("auth_token", token).
		Where(sq.Eq{"id": userID}))
	return mapError(err, "user", userID)
}

// UpdateProfile applies the non-nil fields of p and returns the updated user.
// An empty patch returns the current row.
func (s *Store) UpdateProfile(ctx context.Context, userID int, p tracker.ProfilePatch) (tracker.User, error) {
	if p.Empty() {
		return s.GetUser(ctx, userID)
	}

	b := psql.Update("users").Where(sq.Eq{"id": userID}).Suffix("RETURNING *")
	if p.Name != nil {
		b = b.Set("name", *p.Name)
	}
	if p.HeightCM != nil {
		b = b.Set("height_cm", *p.HeightCM)
	}
	if p.Age != nil {
		b = b.Set("age", *p.Age)
	}
	if p.Gender != nil {
		b = b.Set("gender", *p.Gender)
	}
	if p.StepsGoal != nil {
		b = b.Set("steps_goal", *p.StepsGoal)
	}

	u, err := selectOne[tracker.User](ctx, s.querier(ctx), b)
	if err != nil {
		return tracker.User{}, mapError(err, "user", userID)
	}
	return u, nil
}

// ListUserIDsWithActiveGoal returns every user that currently has an active goal.
func (s *Store) ListUserIDsWithActiveGoal(ctx context.Context) ([]int, error) {
	rows, err := s.querier(ctx).Query(ctx, "SELECT user_id FROM goals WHERE is_active ORDER BY user_id")
	if err != nil {
		return nil, fmt.Errorf("list active goal users: %w", err)
	}
	ids, err := pgx.CollectRows(rows, pgx.RowTo[int])
	if err != nil {
		return nil, fmt.Errorf("list active goal users: %w", err)
	}
	return ids, nil
}
