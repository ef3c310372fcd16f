package tracker

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"lg/wellness-go-api/internal/energy"
)

// UpdateDailyTotals rewrites the aggregate fields of the (userID, date) entry
// from the complete current set of that day's food and gym logs, creating
// the entry if needed. Weight, BMR and water on the entry are left alone.
// Balances are only computed when the entry already carries a BMR.
//
// After the entry is saved the active goal is recalculated. A failed
// recalculation is logged and does not fail the update.
func (s *Service) UpdateDailyTotals(ctx context.Context, userID int, date time.Time, foods []FoodLog, gyms []GymLog) (DailyEntry, error) {
	entry, err := s.writeDailyTotals(ctx, userID, Day(date), foods, gyms)
	if err != nil {
		s.metrics.TotalsUpdated("error")
		return DailyEntry{}, err
	}
	s.metrics.TotalsUpdated("ok")

	s.RefreshGoal(ctx, userID)
	return entry, nil
}

// SyncDailyTotals loads the day's food and gym logs and rewrites the entry
// totals from them. It is what CRUD handlers call after any food or gym log
// mutation. The logs are read under the user's lock so a slower sync can
// never overwrite a fresher one with a stale sum.
func (s *Service) SyncDailyTotals(ctx context.Context, userID int, date time.Time) (DailyEntry, error) {
	entry, err := s.syncLocked(ctx, userID, Day(date))
	if err != nil {
		s.metrics.TotalsUpdated("error")
		return DailyEntry{}, err
	}
	s.metrics.TotalsUpdated("ok")

	s.RefreshGoal(ctx, userID)
	return entry, nil
}

func (s *Service) syncLocked(ctx context.Context, userID int, day time.Time) (DailyEntry, error) {
	unlock := s.locks.lock(userID)
	defer unlock()

	foods, err := s.logs.ListFoodLogs(ctx, userID, day, day)
	if err != nil {
		return DailyEntry{}, fmt.Errorf("tracker.SyncDailyTotals: food logs: %w", err)
	}
	gyms, err := s.logs.ListGymLogs(ctx, userID, day, day)
	if err != nil {
		return DailyEntry{}, fmt.Errorf("tracker.SyncDailyTotals: gym logs: %w", err)
	}
	return s.saveTotals(ctx, userID, day, foods, gyms)
}

func (s *Service) writeDailyTotals(ctx context.Context, userID int, day time.Time, foods []FoodLog, gyms []GymLog) (DailyEntry, error) {
	unlock := s.locks.lock(userID)
	defer unlock()
	return s.saveTotals(ctx, userID, day, foods, gyms)
}

// saveTotals requires the caller to hold userID's lock.
func (s *Service) saveTotals(ctx context.Context, userID int, day time.Time, foods []FoodLog, gyms []GymLog) (DailyEntry, error) {
	entry, err := s.entries.EnsureDailyEntry(ctx, userID, day)
	if err != nil {
		return DailyEntry{}, fmt.Errorf("tracker.UpdateDailyTotals: load entry: %w", err)
	}

	entry.TotalCaloriesIn, entry.TotalCaloriesOut = sumCalories(foods, gyms)
	applyBalance(&entry)

	if err := s.entries.SaveDailyTotals(ctx, entry); err != nil {
		return DailyEntry{}, fmt.Errorf("tracker.UpdateDailyTotals: save entry: %w", err)
	}

	s.log.DebugContext(ctx, "daily totals updated",
		slog.Int("user_id", userID),
		slog.String("date", day.Format(DateLayout)),
		slog.Int("calories_in", entry.TotalCaloriesIn),
		slog.Int("calories_out", entry.TotalCaloriesOut))

	return entry, nil
}

// sumCalories totals calories eaten and burned.
func sumCalories(foods []FoodLog, gyms []GymLog) (in, out int) {
	for _, f := range foods {
		in += f.Calories
	}
	for _, g := range gyms {
		out += g.CaloriesBurned
	}
	return in, out
}

// applyBalance recomputes NetIntake and ApparentDeficit from the entry's
// totals and stored BMR, or clears both when there is no BMR to measure against.
func applyBalance(e *DailyEntry) {
	if e.BMR == nil {
		e.NetIntake = nil
		e.ApparentDeficit = nil
		return
	}
	net := energy.NetIntake(e.TotalCaloriesIn, e.TotalCaloriesOut)
	balance := energy.ApparentBalance(*e.BMR, net)
	e.NetIntake = &net
	e.ApparentDeficit = &balance
}
