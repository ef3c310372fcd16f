package tracker

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lg/wellness-go-api/internal/energy"
)

func activeDay(userID int, day string, in, out, water int, balance *int) DailyEntry {
	return DailyEntry{
		UserID:           userID,
		Date:             NewDate(date(day)),
		TotalCaloriesIn:  in,
		TotalCaloriesOut: out,
		WaterGlasses:     water,
		ApparentDeficit:  balance,
	}
}

func TestBuildWeekSummary_LossGoal(t *testing.T) {
	t.Parallel()

	entries := []DailyEntry{
		activeDay(1, "2025-03-01", 2000, 0, 0, ptr(100)), // outside the week
		activeDay(1, "2025-03-04", 1800, 300, 8, ptr(500)),
		activeDay(1, "2025-03-05", 2200, 0, 2, ptr(-100)),
		activeDay(1, "2025-03-07", 1500, 400, 9, ptr(700)),
		activeDay(1, "2025-03-08", 1600, 0, 0, nil),
		activeDay(1, "2025-03-09", 0, 0, 0, nil),
		activeDay(1, "2025-03-10", 1700, 250, 8, ptr(300)),
	}
	foodsWeek := []FoodLog{
		{Date: NewDate(date("2025-03-04")), Calories: 500, IsHealthy: true},
		{Date: NewDate(date("2025-03-05")), Calories: 700},
		{Date: NewDate(date("2025-03-07")), Calories: 400, IsHealthy: true},
	}
	gymsWeek := []GymLog{
		{Date: NewDate(date("2025-03-04")), CaloriesBurned: 300},
		{Date: NewDate(date("2025-03-07")), CaloriesBurned: 400},
	}
	goalType := energy.GoalLoss

	s := BuildWeekSummary(date("2025-03-10"), &goalType, entries, foodsWeek, gymsWeek, DefaultThresholds())

	require.Len(t, s.Days, SummaryDays)
	assert.Equal(t, "2025-03-04", s.Start.String())
	assert.Equal(t, "2025-03-06", s.Days[2].Date.String())
	assert.False(t, s.Days[2].HasActivity)

	assert.Equal(t, 5, s.DaysLogged)
	assert.Equal(t, 3, s.ActiveDays)
	assert.Equal(t, 3, s.WaterGoalDays)
	assert.Equal(t, 3, s.GoalDays)
	assert.Equal(t, "Hit Deficit Goal", s.GoalLabel)
	assert.Equal(t, 280, s.AvgBalance)
	assert.Equal(t, "Avg Deficit: 280 cal", s.BalanceText)
	assert.Equal(t, 71, s.ConsistencyScore)
	assert.Equal(t, 3, s.MealsLogged)
	assert.Equal(t, 67, s.HealthyMealPercent)
	assert.Equal(t, 2, s.WorkoutsCompleted)
	assert.Equal(t, 1, s.Streak)
	assert.Empty(t, s.Highlights)
}

func TestBuildWeekSummary_GoalThresholds(t *testing.T) {
	t.Parallel()

	entries := []DailyEntry{
		activeDay(1, "2025-03-08", 1, 0, 0, ptr(-350)),
		activeDay(1, "2025-03-09", 1, 0, 0, ptr(150)),
		activeDay(1, "2025-03-10", 1, 0, 0, ptr(-250)),
	}
	gain, maint := energy.GoalGain, energy.GoalMaintenance

	tests := []struct {
		name     string
		goalType *energy.GoalType
		days     int
		label    string
	}{
		{"gain", &gain, 1, "Hit Surplus Goal"},
		{"maintenance", &maint, 1, "Stayed Balanced"},
		{"no goal", nil, 3, "Days Calculated"},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			s := BuildWeekSummary(date("2025-03-10"), tt.goalType, entries, nil, nil, DefaultThresholds())
			assert.Equal(t, tt.days, s.GoalDays)
			assert.Equal(t, tt.label, s.GoalLabel)
		})
	}
}

func TestBuildWeekSummary_EmptyWeek(t *testing.T) {
	t.Parallel()

	s := BuildWeekSummary(date("2025-03-10"), nil, nil, nil, nil, DefaultThresholds())
	assert.Len(t, s.Days, SummaryDays)
	assert.Zero(t, s.DaysLogged)
	assert.Zero(t, s.AvgBalance)
	assert.Zero(t, s.ConsistencyScore)
	assert.Zero(t, s.HealthyMealPercent)
	assert.Zero(t, s.Streak)
	assert.NotNil(t, s.Highlights)
}

func TestBuildWeekSummary_PerfectWeekHighlights(t *testing.T) {
	t.Parallel()

	var entries []DailyEntry
	var gymsWeek []GymLog
	for d := date("2025-03-01"); !d.After(date("2025-03-10")); d = d.AddDate(0, 0, 1) {
		entries = append(entries, activeDay(1, d.Format(DateLayout), 1500, 300, 8, ptr(400)))
		gymsWeek = append(gymsWeek, GymLog{Date: NewDate(d), CaloriesBurned: 300})
	}
	goalType := energy.GoalLoss

	s := BuildWeekSummary(date("2025-03-10"), &goalType, entries, nil, gymsWeek, DefaultThresholds())
	assert.Equal(t, 100, s.ConsistencyScore)
	assert.Equal(t, 10, s.Streak)
	assert.Equal(t, SummaryDays, s.WorkoutsCompleted)
	assert.Equal(t, []string{"perfect_week", "goal_days", "streak", "workouts", "hydration"}, s.Highlights)
}

func TestStreak(t *testing.T) {
	t.Parallel()

	entries := []DailyEntry{
		activeDay(1, "2025-03-06", 100, 0, 0, nil),
		activeDay(1, "2025-03-08", 100, 0, 0, nil),
		activeDay(1, "2025-03-09", 0, 0, 3, nil),
	}

	assert.Equal(t, 2, Streak(date("2025-03-10"), entries), "today empty starts from yesterday")
	assert.Equal(t, 2, Streak(date("2025-03-09"), entries))
	assert.Equal(t, 0, Streak(date("2025-03-12"), entries))

	entries = append(entries, activeDay(1, "2025-03-10", 0, 50, 0, nil))
	assert.Equal(t, 3, Streak(date("2025-03-10"), entries))
}

func TestWeeklySummary_LoadsConcurrently(t *testing.T) {
	t.Parallel()

	store := newMemStore()
	u := store.addUser(testProfile)
	store.addGoal(lossGoal(u.ID))
	store.putEntry(activeDay(u.ID, "2025-03-10", 1500, 0, 8, ptr(400)))
	store.addFood(FoodLog{UserID: u.ID, Date: NewDate(date("2025-03-10")), Calories: 1500, IsHealthy: true})
	store.addFood(FoodLog{UserID: u.ID, Date: NewDate(date("2025-02-10")), Calories: 900})
	svc := newTestService(t, store)

	s, err := svc.WeeklySummary(context.Background(), u.ID, date("2025-03-10"))
	require.NoError(t, err)
	require.NotNil(t, s.GoalType)
	assert.Equal(t, energy.GoalLoss, *s.GoalType)
	assert.Equal(t, 1, s.DaysLogged)
	assert.Equal(t, 1, s.GoalDays)
	assert.Equal(t, 1, s.MealsLogged)
	assert.Equal(t, 100, s.HealthyMealPercent)
}

func TestWeeklySummary_PropagatesStoreError(t *testing.T) {
	t.Parallel()

	store := newMemStore()
	store.FailActiveGoal = errors.New("db down")
	svc := newTestService(t, store)

	_, err := svc.WeeklySummary(context.Background(), 1, date("2025-03-10"))
	assert.ErrorIs(t, err, store.FailActiveGoal)
}
