package postgres

import (
	"context"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"lg/wellness-go-api/internal/tracker"
)

/* ─── Goals ───────────────────────────────────────────────────────────── */

// GetActiveGoal returns the user's active goal or tracker.ErrNotFound.
func (s *Store) GetActiveGoal(ctx context.Context, userID int) (tracker.Goal, error) {
	g, err := queryOne[tracker.Goal](ctx, s.querier(ctx),
		"SELECT * FROM goals WHERE user_id = @user_id AND is_active",
		pgx.NamedArgs{"user_id": userID})
	if err != nil {
		return tracker.Goal{}, mapError(err, "active goal for user", userID)
	}
	return g, nil
}

// ListGoals returns all of a user's goals, newest first.
func (s *Store) ListGoals(ctx context.Context, userID int) ([]tracker.Goal, error) {
	goals, err := queryMany[tracker.Goal](ctx, s.querier(ctx),
		"SELECT * FROM goals WHERE user_id = @user_id ORDER BY start_date DESC, id DESC",
		pgx.NamedArgs{"user_id": userID})
	if err != nil {
		return nil, mapError(err, "goals for user", userID)
	}
	return goals, nil
}

// DeactivateGoals clears is_active on every goal the user owns.
func (s *Store) DeactivateGoals(ctx context.Context, userID int) error {
	sql, args, err := psql.Update("goals").
		Set("is_active", false).
		Where(sq.Eq{"user_id": userID, "is_active": true}).
		ToSql()
	if err != nil {
		return err
	}
	if _, err := s.querier(ctx).Exec(ctx, sql, args...); err != nil {
		return mapError(err, "goals for user", userID)
	}
	return nil
}

// CreateGoal inserts g and returns the stored row. A second active goal for
// the same user violates goals_one_active_per_user and maps to
// tracker.ErrConflict.
func (s *Store) CreateGoal(ctx context.Context, g tracker.Goal) (tracker.Goal, error) {
	created, err := queryOne[tracker.Goal](ctx, s.querier(ctx), `
		INSERT INTO goals (user_id, goal_type, start_date, start_weight_kg, goal_weight_kg,
			current_weight_kg, daily_target_kcal, total_energy_kcal_needed, is_active)
		VALUES (@user_id, @goal_type, @start_date, @start_weight_kg, @goal_weight_kg,
			@current_weight_kg, @daily_target_kcal, @total_energy_kcal_needed, @is_active)
		RETURNING *`,
		pgx.NamedArgs{
			"user_id":                  g.UserID,
			"goal_type":                string(g.GoalType),
			"start_date":               day(g.StartDate.Time),
			"start_weight_kg":          g.StartWeightKg,
			"goal_weight_kg":           g.GoalWeightKg,
			"current_weight_kg":        g.CurrentWeightKg,
			"daily_target_kcal":        g.DailyTargetKcal,
			"total_energy_kcal_needed": g.TotalEnergyKcalNeeded,
			"is_active":                g.IsActive,
		})
	if err != nil {
		return tracker.Goal{}, mapError(err, "goal for user", g.UserID)
	}
	return created, nil
}

// UpdateGoalCumulatives stores the recalculated figures on a goal.
func (s *Store) UpdateGoalCumulatives(ctx context.Context, goalID int, apparent, actual int, currentWeightKg float64) error {
	err := execOne(ctx, s.querier(ctx), psql.Update("goals").
		Set("cumulative_apparent_deficit", apparent).
		Set("cumulative_actual_deficit", actual).
		Set("current_weight_kg", currentWeightKg).
		Where(sq.Eq{"id": goalID}))
	return mapError(err, "goal", goalID)
}
