package tracker

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"golang.org/x/sync/errgroup"

	"lg/wellness-go-api/internal/energy"
)

// SummaryDays is the length of the weekly summary window.
const SummaryDays = 7

// streakLookback bounds how far back a streak is counted.
const streakLookback = 365

// DaySummary is one calendar day in the weekly window. Days without an
// entry are reported with zero totals.
type DaySummary struct {
	Date            DateOnly `json:"date"`
	CaloriesIn      int      `json:"calories_in"`
	CaloriesOut     int      `json:"calories_out"`
	ApparentDeficit *int     `json:"apparent_deficit"`
	WaterGlasses    int      `json:"water_glasses"`
	HasActivity     bool     `json:"has_activity"`
}

// WeekSummary aggregates the seven days ending on End.
type WeekSummary struct {
	Start              DateOnly         `json:"start"`
	End                DateOnly         `json:"end"`
	GoalType           *energy.GoalType `json:"goal_type"`
	Days               []DaySummary     `json:"days"`
	DaysLogged         int              `json:"days_logged"`
	ActiveDays         int              `json:"active_days"`
	WaterGoalDays      int              `json:"water_goal_days"`
	GoalDays           int              `json:"goal_days"`
	GoalLabel          string           `json:"goal_label"`
	AvgBalance         int              `json:"avg_balance"`
	BalanceText        string           `json:"balance_text"`
	Streak             int              `json:"streak"`
	ConsistencyScore   int              `json:"consistency_score"`
	MealsLogged        int              `json:"meals_logged"`
	HealthyMealPercent int              `json:"healthy_meal_percent"`
	WorkoutsCompleted  int              `json:"workouts_completed"`
	Highlights         []string         `json:"highlights"`
}

// WeeklySummary loads a year of daily entries (for the streak), the active
// goal and the week's food and gym logs concurrently, then builds the
// summary for the week ending on end.
func (s *Service) WeeklySummary(ctx context.Context, userID int, end time.Time) (*WeekSummary, error) {
	end = Day(end)
	weekStart := end.AddDate(0, 0, -(SummaryDays - 1))

	var (
		entries []DailyEntry
		goal    *Goal
		foods   []FoodLog
		gyms    []GymLog
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		entries, err = s.entries.ListDailyEntries(gctx, userID, end.AddDate(0, 0, -streakLookback), end)
		if err != nil {
			return fmt.Errorf("entries: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		active, err := s.goals.GetActiveGoal(gctx, userID)
		switch {
		case errors.Is(err, ErrNotFound):
			return nil
		case err != nil:
			return fmt.Errorf("active goal: %w", err)
		}
		goal = &active
		return nil
	})
	g.Go(func() error {
		var err error
		foods, err = s.logs.ListFoodLogs(gctx, userID, weekStart, end)
		if err != nil {
			return fmt.Errorf("food logs: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		gyms, err = s.logs.ListGymLogs(gctx, userID, weekStart, end)
		if err != nil {
			return fmt.Errorf("gym logs: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("tracker.WeeklySummary: %w", err)
	}

	var goalType *energy.GoalType
	if goal != nil {
		goalType = &goal.GoalType
	}
	sum := BuildWeekSummary(end, goalType, entries, foods, gyms, s.thresholds)
	return &sum, nil
}

// BuildWeekSummary computes the weekly summary for the seven days ending on
// end. entries may span further back than the week and are used for the
// streak; foods and gyms are expected to cover only the week.
func BuildWeekSummary(end time.Time, goalType *energy.GoalType, entries []DailyEntry, foods []FoodLog, gyms []GymLog, t Thresholds) WeekSummary {
	end = Day(end)
	start := end.AddDate(0, 0, -(SummaryDays - 1))

	byDate := make(map[time.Time]DailyEntry, len(entries))
	for _, e := range entries {
		byDate[Day(e.Date.Time)] = e
	}

	sum := WeekSummary{
		Start:      NewDate(start),
		End:        NewDate(end),
		GoalType:   goalType,
		Days:       make([]DaySummary, 0, SummaryDays),
		Highlights: []string{},
	}

	totalBalance := 0
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		e, ok := byDate[d]
		day := DaySummary{Date: NewDate(d)}
		if ok {
			day.CaloriesIn = e.TotalCaloriesIn
			day.CaloriesOut = e.TotalCaloriesOut
			day.ApparentDeficit = e.ApparentDeficit
			day.WaterGlasses = e.WaterGlasses
			day.HasActivity = e.HasActivity()
		}
		sum.Days = append(sum.Days, day)

		if day.HasActivity {
			sum.DaysLogged++
		}
		if day.CaloriesOut > 0 {
			sum.ActiveDays++
		}
		if day.WaterGlasses >= t.WaterGoalGlasses {
			sum.WaterGoalDays++
		}
		if day.ApparentDeficit != nil {
			totalBalance += *day.ApparentDeficit
			if hitsGoal(*day.ApparentDeficit, goalType, t) {
				sum.GoalDays++
			}
		}
	}

	sum.GoalLabel = goalDaysLabel(goalType)
	sum.AvgBalance = int(math.Round(float64(totalBalance) / float64(max(sum.DaysLogged, 1))))
	sum.BalanceText = balanceText(sum.AvgBalance, goalType)
	sum.Streak = Streak(end, entries)
	sum.ConsistencyScore = int(math.Round(float64(sum.DaysLogged) / SummaryDays * 100))

	healthy := 0
	for _, f := range foods {
		if f.Date.Before(start) || f.Date.After(end) {
			continue
		}
		sum.MealsLogged++
		if f.IsHealthy {
			healthy++
		}
	}
	if sum.MealsLogged > 0 {
		sum.HealthyMealPercent = int(math.Round(float64(healthy) / float64(sum.MealsLogged) * 100))
	}
	for _, g := range gyms {
		if g.Date.Before(start) || g.Date.After(end) {
			continue
		}
		sum.WorkoutsCompleted++
	}

	sum.Highlights = highlights(sum)
	return sum
}

// hitsGoal reports whether one day's apparent balance is on track. Without a
// goal every calculated day counts.
func hitsGoal(balance int, goalType *energy.GoalType, t Thresholds) bool {
	if goalType == nil {
		return true
	}
	switch *goalType {
	case energy.GoalLoss:
		return balance >= t.GoalBalanceKcal
	case energy.GoalGain:
		return balance <= -t.GoalBalanceKcal
	default:
		return abs(balance) <= t.MaintenanceBand
	}
}

func goalDaysLabel(goalType *energy.GoalType) string {
	if goalType == nil {
		return "Days Calculated"
	}
	switch *goalType {
	case energy.GoalLoss:
		return "Hit Deficit Goal"
	case energy.GoalGain:
		return "Hit Surplus Goal"
	default:
		return "Stayed Balanced"
	}
}

func balanceText(avg int, goalType *energy.GoalType) string {
	if goalType == nil {
		return fmt.Sprintf("Avg Balance: %d cal", avg)
	}
	switch *goalType {
	case energy.GoalLoss:
		return fmt.Sprintf("Avg Deficit: %d cal", avg)
	case energy.GoalGain:
		return fmt.Sprintf("Avg Surplus: %d cal", abs(avg))
	default:
		return fmt.Sprintf("Avg Balance: %d cal", abs(avg))
	}
}

func highlights(s WeekSummary) []string {
	out := []string{}
	if s.DaysLogged == SummaryDays {
		out = append(out, "perfect_week")
	}
	if s.GoalDays >= 5 {
		out = append(out, "goal_days")
	}
	if s.Streak >= 7 {
		out = append(out, "streak")
	}
	if s.WorkoutsCompleted >= 5 {
		out = append(out, "workouts")
	}
	if s.WaterGoalDays >= 5 {
		out = append(out, "hydration")
	}
	if s.HealthyMealPercent >= 80 && s.MealsLogged >= 10 {
		out = append(out, "nutrition")
	}
	return out
}

// Streak counts consecutive days with activity ending on today. When today
// has no activity yet the count starts from yesterday instead.
func Streak(today time.Time, entries []DailyEntry) int {
	active := make(map[time.Time]bool, len(entries))
	for _, e := range entries {
		if e.HasActivity() {
			active[Day(e.Date.Time)] = true
		}
	}

	d := Day(today)
	if !active[d] {
		d = d.AddDate(0, 0, -1)
	}
	n := 0
	for active[d] {
		n++
		d = d.AddDate(0, 0, -1)
	}
	return n
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
