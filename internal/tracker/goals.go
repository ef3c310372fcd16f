package tracker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"lg/wellness-go-api/internal/energy"
)

// SaveGoalInput is the user-editable part of a goal.
type SaveGoalInput struct {
	GoalType      energy.GoalType `json:"goal_type"`
	StartDate     *DateOnly       `json:"start_date"`
	StartWeightKg float64         `json:"start_weight_kg"`
	GoalWeightKg  float64         `json:"goal_weight_kg"`
}

// Validate checks the goal type and weights.
func (in SaveGoalInput) Validate() error {
	var errs []FieldError
	if !in.GoalType.Valid() {
		errs = append(errs, FieldError{Field: "goal_type", Message: "must be one of: loss, gain, maintenance"})
	}
	if in.StartWeightKg <= 0 || in.StartWeightKg > MaxWeightKg {
		errs = append(errs, FieldError{Field: "start_weight_kg", Message: fmt.Sprintf("must be between 0 and %d", MaxWeightKg)})
	}
	if in.GoalWeightKg <= 0 || in.GoalWeightKg > MaxWeightKg {
		errs = append(errs, FieldError{Field: "goal_weight_kg", Message: fmt.Sprintf("must be between 0 and %d", MaxWeightKg)})
	}
	if len(errs) == 0 {
		switch {
		case in.GoalType == energy.GoalLoss && in.GoalWeightKg >= in.StartWeightKg:
			errs = append(errs, FieldError{Field: "goal_weight_kg", Message: "must be below start_weight_kg for a loss goal"})
		case in.GoalType == energy.GoalGain && in.GoalWeightKg <= in.StartWeightKg:
			errs = append(errs, FieldError{Field: "goal_weight_kg", Message: "must be above start_weight_kg for a gain goal"})
		}
	}
	return collectErrors(errs)
}

// SaveGoal replaces the user's active goal. Deactivating the previous goal
// and inserting the new one happen in one transaction so a user never ends
// up with two active goals. Cumulative figures are then rebuilt from
// existing entries since the start date.
func (s *Service) SaveGoal(ctx context.Context, userID int, in SaveGoalInput) (*Goal, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	start := NewDate(s.now())
	if in.StartDate != nil && !in.StartDate.IsZero() {
		start = NewDate(in.StartDate.Time)
	}

	current := in.StartWeightKg
	g := Goal{
		UserID:                userID,
		GoalType:              in.GoalType,
		StartDate:             start,
		StartWeightKg:         in.StartWeightKg,
		GoalWeightKg:          in.GoalWeightKg,
		CurrentWeightKg:       &current,
		DailyTargetKcal:       energy.DailyTargetKcal(in.GoalType),
		TotalEnergyKcalNeeded: energy.GoalEnergyNeeded(in.StartWeightKg, in.GoalWeightKg, in.GoalType),
		IsActive:              true,
	}

	var created Goal
	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		if err := s.goals.DeactivateGoals(ctx, userID); err != nil {
			return fmt.Errorf("deactivate goals: %w", err)
		}
		var err error
		created, err = s.goals.CreateGoal(ctx, g)
		if err != nil {
			return fmt.Errorf("create goal: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("tracker.SaveGoal: %w", err)
	}

	s.log.InfoContext(ctx, "goal saved",
		slog.Int("user_id", userID),
		slog.Int("goal_id", created.ID),
		slog.String("goal_type", string(created.GoalType)))

	if refreshed := s.RefreshGoal(ctx, userID); refreshed != nil {
		return refreshed, nil
	}
	return &created, nil
}

// ActiveGoal returns the user's active goal or ErrNotFound.
func (s *Service) ActiveGoal(ctx context.Context, userID int) (Goal, error) {
	g, err := s.goals.GetActiveGoal(ctx, userID)
	if err != nil {
		return Goal{}, fmt.Errorf("tracker.ActiveGoal: %w", err)
	}
	return g, nil
}

// BalanceView presents one balance figure for the goal's direction.
type BalanceView struct {
	Kcal   int           `json:"kcal"`
	Rating energy.Rating `json:"rating"`
	Label  string        `json:"label"`
	Color  string        `json:"color"`
	Text   string        `json:"text"`
}

// NewBalanceView rates and formats kcal for goalType.
func NewBalanceView(kcal int, goalType energy.GoalType) BalanceView {
	return BalanceView{
		Kcal:   kcal,
		Rating: energy.RateBalance(kcal, goalType),
		Label:  energy.BalanceLabel(kcal, goalType),
		Color:  energy.BalanceColor(kcal, goalType),
		Text:   energy.FormatBalance(kcal, goalType),
	}
}

// GoalProgress is the derived, never-persisted view of the active goal.
type GoalProgress struct {
	Goal             Goal        `json:"goal"`
	GoalEnergyNeeded *int        `json:"goal_energy_needed"`
	EnergyTowardGoal int         `json:"energy_toward_goal"`
	RemainingKcal    *int        `json:"remaining_kcal"`
	Progress         float64     `json:"progress"`
	ProgressColor    string      `json:"progress_color"`
	Adherence        *float64    `json:"adherence,omitempty"`
	DaysTracked      int         `json:"days_tracked"`
	Apparent         BalanceView `json:"apparent"`
	Actual           BalanceView `json:"actual"`
}

// GoalProgress loads the active goal and its balanced entries and derives
// progress. Returns ErrNotFound when there is no active goal.
func (s *Service) GoalProgress(ctx context.Context, userID int) (*GoalProgress, error) {
	goal, err := s.goals.GetActiveGoal(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("tracker.GoalProgress: %w", err)
	}

	entries, err := s.entries.ListBalancedEntriesSince(ctx, userID, goal.StartDate.Time)
	if err != nil {
		return nil, fmt.Errorf("tracker.GoalProgress: entries: %w", err)
	}

	p := BuildGoalProgress(goal, entries, s.thresholds.MaintenanceBand)
	return &p, nil
}

// BuildGoalProgress derives the progress view from a goal and its balanced
// entries. Maintenance goals report adherence instead of progress.
func BuildGoalProgress(goal Goal, entries []DailyEntry, maintenanceBand int) GoalProgress {
	needed := goal.TotalEnergyKcalNeeded
	if needed == nil && goal.GoalType != energy.GoalMaintenance {
		needed = energy.GoalEnergyNeeded(goal.StartWeightKg, goal.GoalWeightKg, goal.GoalType)
	}

	toward := energy.TowardGoal(goal.GoalType, goal.CumulativeActualDeficit)
	p := GoalProgress{
		Goal:             goal,
		GoalEnergyNeeded: needed,
		EnergyTowardGoal: toward,
		Apparent:         NewBalanceView(goal.CumulativeApparentDeficit, goal.GoalType),
		Actual:           NewBalanceView(goal.CumulativeActualDeficit, goal.GoalType),
	}

	if needed != nil {
		p.Progress = energy.Progress(goal.CumulativeActualDeficit, *needed, goal.GoalType)
		remaining := max(*needed-max(toward, 0), 0)
		p.RemainingKcal = &remaining
	}
	p.ProgressColor = energy.ProgressColor(p.Progress)

	balances := make([]int, 0, len(entries))
	for _, e := range entries {
		if e.ApparentDeficit == nil || e.Date.Before(goal.StartDate.Time) {
			continue
		}
		balances = append(balances, *e.ApparentDeficit)
	}
	p.DaysTracked = len(balances)

	if goal.GoalType == energy.GoalMaintenance {
		a := energy.Adherence(balances, maintenanceBand)
		p.Adherence = &a
	}
	return p
}

// DailyBalance is a daily entry with its balance rated against the active goal.
type DailyBalance struct {
	Entry    DailyEntry       `json:"entry"`
	GoalType *energy.GoalType `json:"goal_type"`
	Balance  *BalanceView     `json:"balance"`
}

// DailyBalance returns the entry for a date (zero totals if none exists yet)
// rated against the active goal's direction, or as a loss goal when the
// user has none.
func (s *Service) DailyBalance(ctx context.Context, userID int, date time.Time) (*DailyBalance, error) {
	day := Day(date)
	entry, err := s.entries.GetDailyEntry(ctx, userID, day)
	if errors.Is(err, ErrNotFound) {
		entry = DailyEntry{UserID: userID, Date: NewDate(day)}
	} else if err != nil {
		return nil, fmt.Errorf("tracker.DailyBalance: %w", err)
	}

	out := &DailyBalance{Entry: entry}
	goalType := energy.GoalLoss
	goal, err := s.goals.GetActiveGoal(ctx, userID)
	switch {
	case err == nil:
		goalType = goal.GoalType
		out.GoalType = &goalType
	case !errors.Is(err, ErrNotFound):
		return nil, fmt.Errorf("tracker.DailyBalance: goal: %w", err)
	}

	if entry.ApparentDeficit != nil {
		v := NewBalanceView(*entry.ApparentDeficit, goalType)
		out.Balance = &v
	}
	return out, nil
}
