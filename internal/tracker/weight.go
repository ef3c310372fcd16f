package tracker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"lg/wellness-go-api/internal/energy"
)

// MaxWeightKg bounds accepted weight entries.
const MaxWeightKg = 700

// RecordWeight stores the day's weight, freezes that day's BMR from it and
// the user's profile, and recomputes the day's balances from the stored
// totals. The active goal is recalculated afterwards.
func (s *Service) RecordWeight(ctx context.Context, userID int, date time.Time, weightKg float64) (DailyEntry, error) {
	if weightKg <= 0 || weightKg > MaxWeightKg {
		return DailyEntry{}, NewValidationError("weight_kg", fmt.Sprintf("must be between 0 and %d", MaxWeightKg))
	}

	u, err := s.users.GetUser(ctx, userID)
	if err != nil {
		return DailyEntry{}, fmt.Errorf("tracker.RecordWeight: user: %w", err)
	}
	if !u.HasProfile() {
		return DailyEntry{}, NewValidationError("profile", "height, age and gender are required before recording weight")
	}

	day := Day(date)
	entry, err := s.saveWeight(ctx, userID, day, func(e *DailyEntry) {
		bmr := energy.BMR(weightKg, *u.HeightCM, *u.Age, *u.Gender)
		e.WeightKg = &weightKg
		e.BMR = &bmr
		applyBalance(e)
	}, true)
	if err != nil {
		return DailyEntry{}, err
	}

	s.log.InfoContext(ctx, "weight recorded",
		slog.Int("user_id", userID),
		slog.String("date", day.Format(DateLayout)),
		slog.Float64("weight_kg", weightKg))

	s.RefreshGoal(ctx, userID)
	return entry, nil
}

// ClearWeight removes weight, BMR and balances from an existing entry. The
// day's totals and water stay. Returns ErrNotFound when there is no entry.
func (s *Service) ClearWeight(ctx context.Context, userID int, date time.Time) (DailyEntry, error) {
	entry, err := s.saveWeight(ctx, userID, Day(date), func(e *DailyEntry) {
		e.WeightKg = nil
		e.BMR = nil
		applyBalance(e)
	}, false)
	if err != nil {
		return DailyEntry{}, err
	}

	s.RefreshGoal(ctx, userID)
	return entry, nil
}

func (s *Service) saveWeight(ctx context.Context, userID int, day time.Time, mutate func(*DailyEntry), create bool) (DailyEntry, error) {
	unlock := s.locks.lock(userID)
	defer unlock()

	var (
		entry DailyEntry
		err   error
	)
	if create {
		entry, err = s.entries.EnsureDailyEntry(ctx, userID, day)
	} else {
		entry, err = s.entries.GetDailyEntry(ctx, userID, day)
	}
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return DailyEntry{}, err
		}
		return DailyEntry{}, fmt.Errorf("tracker.saveWeight: load entry: %w", err)
	}

	mutate(&entry)

	if err := s.entries.SaveDailyWeight(ctx, entry); err != nil {
		return DailyEntry{}, fmt.Errorf("tracker.saveWeight: save entry: %w", err)
	}
	return entry, nil
}
