package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"

	"lg/wellness-go-api/internal/tracker"
)

/* ─── Steps ───────────────────────────────────────────────────────────── */

// ListStepsLogs returns steps logs in [start, end], oldest first.
func (s *Store) ListStepsLogs(ctx context.Context, userID int, start, end time.Time) ([]tracker.StepsLog, error) {
	logs, err := queryMany[tracker.StepsLog](ctx, s.querier(ctx), `
		SELECT * FROM steps_logs
		WHERE user_id = @user_id AND date BETWEEN @start AND @end
		ORDER BY date`,
		pgx.NamedArgs{"user_id": userID, "start": day(start), "end": day(end)})
	if err != nil {
		return nil, mapError(err, "steps logs for user", userID)
	}
	return logs, nil
}

// UpsertSteps records steps for a date. When add is true the count is added
// to any existing value, otherwise it replaces it.
func (s *Store) UpsertSteps(ctx context.Context, userID int, date time.Time, steps int, add bool) (tracker.StepsLog, error) {
	conflict := "steps = EXCLUDED.steps"
	if add {
		conflict = "steps = steps_logs.steps + EXCLUDED.steps"
	}
	l, err := queryOne[tracker.StepsLog](ctx, s.querier(ctx), `
		INSERT INTO steps_logs (user_id, date, steps)
		VALUES (@user_id, @date, @steps)
		ON CONFLICT (user_id, date) DO UPDATE SET `+conflict+`
		RETURNING *`,
		pgx.NamedArgs{"user_id": userID, "date": day(date), "steps": steps})
	if err != nil {
		return tracker.StepsLog{}, mapError(err, "steps log", day(date))
	}
	return l, nil
}

/* ─── Skincare ────────────────────────────────────────────────────────── */

// ListSkincareLogs returns the user's skincare rows for one date.
func (s *Store) ListSkincareLogs(ctx context.Context, userID int, date time.Time) ([]tracker.SkincareLog, error) {
	logs, err := queryMany[tracker.SkincareLog](ctx, s.querier(ctx), `
		SELECT * FROM skincare_logs
		WHERE user_id = @user_id AND date = @date
		ORDER BY time_of_day`,
		pgx.NamedArgs{"user_id": userID, "date": day(date)})
	if err != nil {
		return nil, mapError(err, "skincare logs for user", userID)
	}
	return logs, nil
}

// UpsertSkincareLog stores the routine toggles for (user, date, time of day).
func (s *Store) UpsertSkincareLog(ctx context.Context, l tracker.SkincareLog) (tracker.SkincareLog, error) {
	saved, err := queryOne[tracker.SkincareLog](ctx, s.querier(ctx), `
		INSERT INTO skincare_logs (user_id, date, time_of_day, cleansing_done, serum_done, moisturizer_done, gua_sha_done)
		VALUES (@user_id, @date, @time_of_day, @cleansing_done, @serum_done, @moisturizer_done, @gua_sha_done)
		ON CONFLICT (user_id, date, time_of_day) DO UPDATE SET
			cleansing_done   = EXCLUDED.cleansing_done,
			serum_done       = EXCLUDED.serum_done,
			moisturizer_done = EXCLUDED.moisturizer_done,
			gua_sha_done     = EXCLUDED.gua_sha_done
		RETURNING *`,
		pgx.NamedArgs{
			"user_id":          l.UserID,
			"date":             day(l.Date.Time),
			"time_of_day":      l.TimeOfDay,
			"cleansing_done":   l.CleansingDone,
			"serum_done":       l.SerumDone,
			"moisturizer_done": l.MoisturizerDone,
			"gua_sha_done":     l.GuaShaDone,
		})
	if err != nil {
		return tracker.SkincareLog{}, mapError(err, "skincare log", l.TimeOfDay)
	}
	return saved, nil
}
