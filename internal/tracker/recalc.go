package tracker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"lg/wellness-go-api/internal/energy"
)

// RecalculateGoalCumulatives rebuilds the active goal's cumulative apparent
// and actual balances and its current weight from every balanced daily entry
// on or after the goal's start date. It returns (nil, nil) when the user has
// no active goal.
//
// The result depends only on stored rows, so repeated calls without an
// intervening write leave the goal unchanged. Calls are serialized per user.
func (s *Service) RecalculateGoalCumulatives(ctx context.Context, userID int) (*Goal, error) {
	start := time.Now()

	goal, err := s.recalculate(ctx, userID)
	switch {
	case err != nil:
		s.metrics.RecalculationDone("error", time.Since(start))
		return nil, err
	case goal == nil:
		s.metrics.RecalculationDone("no_goal", time.Since(start))
		return nil, nil
	}

	s.metrics.RecalculationDone("ok", time.Since(start))
	s.notify.GoalRecalculated(userID, *goal)
	return goal, nil
}

func (s *Service) recalculate(ctx context.Context, userID int) (*Goal, error) {
	unlock := s.locks.lock(userID)
	defer unlock()

	goal, err := s.goals.GetActiveGoal(ctx, userID)
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("tracker.RecalculateGoalCumulatives: active goal: %w", err)
	}

	entries, err := s.entries.ListBalancedEntriesSince(ctx, userID, goal.StartDate.Time)
	if err != nil {
		return nil, fmt.Errorf("tracker.RecalculateGoalCumulatives: entries: %w", err)
	}

	apparent, latestWeight := cumulativeFigures(goal, entries)
	actual := energy.EnergyChangeFromWeight(goal.StartWeightKg, latestWeight)

	if err := s.goals.UpdateGoalCumulatives(ctx, goal.ID, apparent, actual, latestWeight); err != nil {
		return nil, fmt.Errorf("tracker.RecalculateGoalCumulatives: save goal: %w", err)
	}

	goal.CumulativeApparentDeficit = apparent
	goal.CumulativeActualDeficit = actual
	goal.CurrentWeightKg = &latestWeight

	s.log.DebugContext(ctx, "goal recalculated",
		slog.Int("user_id", userID),
		slog.Int("goal_id", goal.ID),
		slog.Int("entries", len(entries)),
		slog.Int("cumulative_apparent", apparent),
		slog.Int("cumulative_actual", actual))

	return &goal, nil
}

// cumulativeFigures sums apparent balances on or after the goal start and
// finds the weight on the latest-dated entry that has one, falling back to
// the goal's start weight. Input order does not matter.
func cumulativeFigures(goal Goal, entries []DailyEntry) (apparent int, latestWeight float64) {
	latestWeight = goal.StartWeightKg
	var latestDate time.Time
	found := false

	for _, e := range entries {
		if e.ApparentDeficit == nil || e.Date.Before(goal.StartDate.Time) {
			continue
		}
		apparent += *e.ApparentDeficit
		if e.WeightKg != nil && (!found || e.Date.After(latestDate)) {
			latestWeight = *e.WeightKg
			latestDate = e.Date.Time
			found = true
		}
	}
	return apparent, latestWeight
}

// RefreshGoal runs RecalculateGoalCumulatives for its side effect, the way
// every mutation path wants it: failures are logged and swallowed so the
// write that triggered the refresh still succeeds, and the refresh is not
// cut short if the caller's request context is cancelled. It returns the
// recalculated goal, or nil when there is none or the refresh failed.
func (s *Service) RefreshGoal(ctx context.Context, userID int) *Goal {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.recalcTimeout)
	defer cancel()

	goal, err := s.RecalculateGoalCumulatives(ctx, userID)
	if err != nil {
		s.log.WarnContext(ctx, "goal recalculation failed, cumulative figures are stale",
			slog.Int("user_id", userID),
			slog.String("error", err.Error()))
		return nil
	}
	return goal
}
