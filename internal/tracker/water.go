package tracker

import (
	"context"
	"fmt"
	"time"
)

// MaxWaterGlasses caps a single day's water count.
const MaxWaterGlasses = 50

// SetWater stores the number of glasses drunk on date. Only water_glasses is
// written, so the day's totals and balances are untouched and no goal
// recalculation is needed.
func (s *Service) SetWater(ctx context.Context, userID int, date time.Time, glasses int) (DailyEntry, error) {
	if glasses < 0 || glasses > MaxWaterGlasses {
		return DailyEntry{}, NewValidationError("water_glasses", fmt.Sprintf("must be between 0 and %d", MaxWaterGlasses))
	}
	return s.updateWater(ctx, userID, Day(date), func(int) int { return glasses })
}

// IncrementWater adds delta glasses (which may be negative) to date, never
// going below zero. |delta| may not exceed MaxWaterGlasses.
func (s *Service) IncrementWater(ctx context.Context, userID int, date time.Time, delta int) (DailyEntry, error) {
	if delta < -MaxWaterGlasses || delta > MaxWaterGlasses {
		return DailyEntry{}, NewValidationError("delta", fmt.Sprintf("must be between %d and %d", -MaxWaterGlasses, MaxWaterGlasses))
	}
	return s.updateWater(ctx, userID, Day(date), func(cur int) int {
		return min(max(cur+delta, 0), MaxWaterGlasses)
	})
}

func (s *Service) updateWater(ctx context.Context, userID int, day time.Time, next func(int) int) (DailyEntry, error) {
	unlock := s.locks.lock(userID)
	defer unlock()

	entry, err := s.entries.EnsureDailyEntry(ctx, userID, day)
	if err != nil {
		return DailyEntry{}, fmt.Errorf("tracker.updateWater: load entry: %w", err)
	}

	entry.WaterGlasses = next(entry.WaterGlasses)
	if err := s.entries.SetWaterGlasses(ctx, entry.ID, entry.WaterGlasses); err != nil {
		return DailyEntry{}, fmt.Errorf("tracker.updateWater: save: %w", err)
	}
	return entry, nil
}
