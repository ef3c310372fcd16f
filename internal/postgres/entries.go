package postgres

import (
	"context"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"lg/wellness-go-api/internal/tracker"
)

/* ─── Daily entries ───────────────────────────────────────────────────── */

// EnsureDailyEntry returns the entry for (userID, date), inserting an empty
// one first if none exists. The insert is a no-op on conflict so concurrent
// callers converge on the same row.
func (s *Store) EnsureDailyEntry(ctx context.Context, userID int, date time.Time) (tracker.DailyEntry, error) {
	q := s.querier(ctx)
	args := pgx.NamedArgs{"user_id": userID, "date": day(date)}

	_, err := q.Exec(ctx, `
		INSERT INTO daily_entries (user_id, date)
		VALUES (@user_id, @date)
		ON CONFLICT (user_id, date) DO NOTHING`, args)
	if err != nil {
		return tracker.DailyEntry{}, mapError(err, "daily entry", day(date))
	}

	e, err := queryOne[tracker.DailyEntry](ctx, q,
		"SELECT * FROM daily_entries WHERE user_id = @user_id AND date = @date", args)
	if err != nil {
		return tracker.DailyEntry{}, mapError(err, "daily entry", day(date))
	}
	return e, nil
}

// GetDailyEntry returns the entry for (userID, date) or tracker.ErrNotFound.
func (s *Store) GetDailyEntry(ctx context.Context, userID int, date time.Time) (tracker.DailyEntry, error) {
	e, err := queryOne[tracker.DailyEntry](ctx, s.querier(ctx),
		"SELECT * FROM daily_entries WHERE user_id = @user_id AND date = @date",
		pgx.NamedArgs{"user_id": userID, "date": day(date)})
	if err != nil {
		return tracker.DailyEntry{}, mapError(err, "daily entry", day(date))
	}
	return e, nil
}

// SaveDailyTotals writes the aggregate and balance fields of e.
func (s *Store) SaveDailyTotals(ctx context.Context, e tracker.DailyEntry) error {
	err := execOne(ctx, s.querier(ctx), psql.Update("daily_entries").
		Set("total_calories_in", e.TotalCaloriesIn).
		Set("total_calories_out", e.TotalCaloriesOut).
		Set("net_intake", e.NetIntake).
		Set("apparent_deficit", e.ApparentDeficit).
		Set("updated_at", sq.Expr("now()")).
		Where(sq.Eq{"id": e.ID}))
	return mapError(err, "daily entry", e.ID)
}

// SaveDailyWeight writes weight, BMR and the balance fields of e.
func (s *Store) SaveDailyWeight(ctx context.Context, e tracker.DailyEntry) error {
	err := execOne(ctx, s.querier(ctx), psql.Update("daily_entries").
		Set("weight_kg", e.WeightKg).
		Set("bmr", e.BMR).
		Set("net_intake", e.NetIntake).
		Set("apparent_deficit", e.ApparentDeficit).
		Set("updated_at", sq.Expr("now()")).
		Where(sq.Eq{"id": e.ID}))
	return mapError(err, "daily entry", e.ID)
}

// SetWaterGlasses sets the glass count on an entry without touching totals.
func (s *Store) SetWaterGlasses(ctx context.Context, entryID, glasses int) error {
	err := execOne(ctx, s.querier(ctx), psql.Update("daily_entries").
		Set("water_glasses", glasses).
		Set("updated_at", sq.Expr("now()")).
		Where(sq.Eq{"id": entryID}))
	return mapError(err, "daily entry", entryID)
}

// ListBalancedEntriesSince returns entries on or after since that carry an
// apparent balance, newest first.
func (s *Store) ListBalancedEntriesSince(ctx context.Context, userID int, since time.Time) ([]tracker.DailyEntry, error) {
	entries, err := selectMany[tracker.DailyEntry](ctx, s.querier(ctx), psql.Select("*").
		From("daily_entries").
		Where(sq.Eq{"user_id": userID}).
		Where(sq.GtOrEq{"date": day(since)}).
		Where(sq.NotEq{"apparent_deficit": nil}).
		OrderBy("date DESC"))
	if err != nil {
		return nil, mapError(err, "daily entries for user", userID)
	}
	return entries, nil
}

// ListDailyEntries returns entries in [start, end], oldest first.
func (s *Store) ListDailyEntries(ctx context.Context, userID int, start, end time.Time) ([]tracker.DailyEntry, error) {
	return s.listEntries(ctx, userID, start, end, nil)
}

// ListWeightEntries returns entries in [start, end] that have a weight.
func (s *Store) ListWeightEntries(ctx context.Context, userID int, start, end time.Time) ([]tracker.DailyEntry, error) {
	return s.listEntries(ctx, userID, start, end, sq.NotEq{"weight_kg": nil})
}

func (s *Store) listEntries(ctx context.Context, userID int, start, end time.Time, extra sq.Sqlizer) ([]tracker.DailyEntry, error) {
	b := psql.Select("*").
		From("daily_entries").
		Where(sq.Eq{"user_id": userID}).
		Where(sq.GtOrEq{"date": day(start)}).
		Where(sq.LtOrEq{"date": day(end)}).
		OrderBy("date")
	if extra != nil {
		b = b.Where(extra)
	}
	entries, err := selectMany[tracker.DailyEntry](ctx, s.querier(ctx), b)
	if err != nil {
		return nil, mapError(err, "daily entries for user", userID)
	}
	return entries, nil
}
