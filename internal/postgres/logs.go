package postgres

import (
	"context"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"lg/wellness-go-api/internal/tracker"
)

/* ─── Food logs ───────────────────────────────────────────────────────── */

// ListFoodLogs returns food logs dated within [start, end], in logging order.
func (s *Store) ListFoodLogs(ctx context.Context, userID int, start, end time.Time) ([]tracker.FoodLog, error) {
	logs, err := queryMany[tracker.FoodLog](ctx, s.querier(ctx), `
		SELECT * FROM food_logs
		WHERE user_id = @user_id AND date BETWEEN @start AND @end
		ORDER BY date, created_at, id`,
		pgx.NamedArgs{"user_id": userID, "start": day(start), "end": day(end)})
	if err != nil {
		return nil, mapError(err, "food logs for user", userID)
	}
	return logs, nil
}

// GetFoodLog returns one of the user's food logs.
func (s *Store) GetFoodLog(ctx context.Context, userID, id int) (tracker.FoodLog, error) {
	f, err := queryOne[tracker.FoodLog](ctx, s.querier(ctx),
		"SELECT * FROM food_logs WHERE id = @id AND user_id = @user_id",
		pgx.NamedArgs{"id": id, "user_id": userID})
	if err != nil {
		return tracker.FoodLog{}, mapError(err, "food log", id)
	}
	return f, nil
}

// CreateFoodLog inserts f for f.UserID.
func (s *Store) CreateFoodLog(ctx context.Context, f tracker.FoodLog) (tracker.FoodLog, error) {
	created, err := queryOne[tracker.FoodLog](ctx, s.querier(ctx), `
		INSERT INTO food_logs (user_id, date, meal_name, meal_type, calories, protein_g, carbs_g, fats_g, is_healthy)
		VALUES (@user_id, @date, @meal_name, @meal_type, @calories, @protein_g, @carbs_g, @fats_g, @is_healthy)
		RETURNING *`,
		foodArgs(f))
	if err != nil {
		return tracker.FoodLog{}, mapError(err, "food log for user", f.UserID)
	}
	return created, nil
}

// UpdateFoodLog overwrites the editable fields of the user's food log f.ID.
func (s *Store) UpdateFoodLog(ctx context.Context, f tracker.FoodLog) (tracker.FoodLog, error) {
	args := foodArgs(f)
	args["id"] = f.ID
	updated, err := queryOne[tracker.FoodLog](ctx, s.querier(ctx), `
		UPDATE food_logs SET
			date = @date, meal_name = @meal_name, meal_type = @meal_type, calories = @calories,
			protein_g = @protein_g, carbs_g = @carbs_g, fats_g = @fats_g, is_healthy = @is_healthy
		WHERE id = @id AND user_id = @user_id
		RETURNING *`,
		args)
	if err != nil {
		return tracker.FoodLog{}, mapError(err, "food log", f.ID)
	}
	return updated, nil
}

// DeleteFoodLog removes the user's food log and returns the deleted row.
func (s *Store) DeleteFoodLog(ctx context.Context, userID, id int) (tracker.FoodLog, error) {
	deleted, err := selectOne[tracker.FoodLog](ctx, s.querier(ctx), psql.Delete("food_logs").
		Where(sq.Eq{"id": id, "user_id": userID}).
		Suffix("RETURNING *"))
	if err != nil {
		return tracker.FoodLog{}, mapError(err, "food log", id)
	}
	return deleted, nil
}

func foodArgs(f tracker.FoodLog) pgx.NamedArgs {
	return pgx.NamedArgs{
		"user_id":    f.UserID,
		"date":       day(f.Date.Time),
		"meal_name":  f.MealName,
		"meal_type":  f.MealType,
		"calories":   f.Calories,
		"protein_g":  f.ProteinG,
		"carbs_g":    f.CarbsG,
		"fats_g":     f.FatsG,
		"is_healthy": f.IsHealthy,
	}
}

/* ─── Gym logs ────────────────────────────────────────────────────────── */

// ListGymLogs returns gym logs dated within [start, end], in logging order.
func (s *Store) ListGymLogs(ctx context.Context, userID int, start, end time.Time) ([]tracker.GymLog, error) {
	logs, err := queryMany[tracker.GymLog](ctx, s.querier(ctx), `
		SELECT * FROM gym_logs
		WHERE user_id = @user_id AND date BETWEEN @start AND @end
		ORDER BY date, created_at, id`,
		pgx.NamedArgs{"user_id": userID, "start": day(start), "end": day(end)})
	if err != nil {
		return nil, mapError(err, "gym logs for user", userID)
	}
	return logs, nil
}

// GetGymLog returns one of the user's gym logs.
func (s *Store) GetGymLog(ctx context.Context, userID, id int) (tracker.GymLog, error) {
	g, err := queryOne[tracker.GymLog](ctx, s.querier(ctx),
		"SELECT * FROM gym_logs WHERE id = @id AND user_id = @user_id",
		pgx.NamedArgs{"id": id, "user_id": userID})
	if err != nil {
		return tracker.GymLog{}, mapError(err, "gym log", id)
	}
	return g, nil
}

// CreateGymLog inserts g for g.UserID.
func (s *Store) CreateGymLog(ctx context.Context, g tracker.GymLog) (tracker.GymLog, error) {
	created, err := queryOne[tracker.GymLog](ctx, s.querier(ctx), `
		INSERT INTO gym_logs (user_id, date, exercise_name, sets, reps, weight_kg, calories_burned,
			warmup_done, cooldown_done, meditation_done, notes)
		VALUES (@user_id, @date, @exercise_name, @sets, @reps, @weight_kg, @calories_burned,
			@warmup_done, @cooldown_done, @meditation_done, @notes)
		RETURNING *`,
		gymArgs(g))
	if err != nil {
		return tracker.GymLog{}, mapError(err, "gym log for user", g.UserID)
	}
	return created, nil
}

// UpdateGymLog overwrites the editable fields of the user's gym log g.ID.
func (s *Store) UpdateGymLog(ctx context.Context, g tracker.GymLog) (tracker.GymLog, error) {
	args := gymArgs(g)
	args["id"] = g.ID
	updated, err := queryOne[tracker.GymLog](ctx, s.querier(ctx), `
		UPDATE gym_logs SET
			date = @date, exercise_name = @exercise_name, sets = @sets, reps = @reps,
			weight_kg = @weight_kg, calories_burned = @calories_burned, warmup_done = @warmup_done,
			cooldown_done = @cooldown_done, meditation_done = @meditation_done, notes = @notes
		WHERE id = @id AND user_id = @user_id
		RETURNING *`,
		args)
	if err != nil {
		return tracker.GymLog{}, mapError(err, "gym log", g.ID)
	}
	return updated, nil
}

// DeleteGymLog removes the user's gym log and returns the deleted row.
func (s *Store) DeleteGymLog(ctx context.Context, userID, id int) (tracker.GymLog, error) {
	deleted, err := selectOne[tracker.GymLog](ctx, s.querier(ctx), psql.Delete("gym_logs").
		Where(sq.Eq{"id": id, "user_id": userID}).
		Suffix("RETURNING *"))
	if err != nil {
		return tracker.GymLog{}, mapError(err, "gym log", id)
	}
	return deleted, nil
}

func gymArgs(g tracker.GymLog) pgx.NamedArgs {
	return pgx.NamedArgs{
		"user_id":         g.UserID,
		"date":            day(g.Date.Time),
		"exercise_name":   g.ExerciseName,
		"sets":            g.Sets,
		"reps":            g.Reps,
		"weight_kg":       g.WeightKg,
		"calories_burned": g.CaloriesBurned,
		"warmup_done":     g.WarmupDone,
		"cooldown_done":   g.CooldownDone,
		"meditation_done": g.MeditationDone,
		"notes":           g.Notes,
	}
}
