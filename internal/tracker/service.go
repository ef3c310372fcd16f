// Package tracker keeps the derived figures of a user's wellness log
// consistent: per-day calorie totals and balances on daily entries, and the
// cumulative figures on the active goal. It also owns the operations that
// feed those figures (recording weight, saving a goal) and the summaries
// read back from them.
package tracker

import (
	"context"
	"io"
	"log/slog"
	"time"
)

// userRepo defines the user lookups the service needs.
type userRepo interface {
	GetUser(ctx context.Context, userID int) (User, error)
}

// goalRepo defines goal persistence. GetActiveGoal returns ErrNotFound when
// the user has no active goal.
type goalRepo interface {
	GetActiveGoal(ctx context.Context, userID int) (Goal, error)
	DeactivateGoals(ctx context.Context, userID int) error
	CreateGoal(ctx context.Context, g Goal) (Goal, error)
	UpdateGoalCumulatives(ctx context.Context, goalID int, apparent, actual int, currentWeightKg float64) error
}

// entryRepo defines daily entry persistence. EnsureDailyEntry returns the row
// for (userID, date), inserting an empty one first if none exists.
type entryRepo interface {
	EnsureDailyEntry(ctx context.Context, userID int, date time.Time) (DailyEntry, error)
	GetDailyEntry(ctx context.Context, userID int, date time.Time) (DailyEntry, error)
	SaveDailyTotals(ctx context.Context, e DailyEntry) error
	SaveDailyWeight(ctx context.Context, e DailyEntry) error
	SetWaterGlasses(ctx context.Context, entryID, glasses int) error
	ListBalancedEntriesSince(ctx context.Context, userID int, since time.Time) ([]DailyEntry, error)
	ListDailyEntries(ctx context.Context, userID int, start, end time.Time) ([]DailyEntry, error)
}

// logRepo defines the food and gym log reads used to rebuild totals.
type logRepo interface {
	ListFoodLogs(ctx context.Context, userID int, start, end time.Time) ([]FoodLog, error)
	ListGymLogs(ctx context.Context, userID int, start, end time.Time) ([]GymLog, error)
}

// txManager runs fn inside a single database transaction.
type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Recorder receives operational measurements from the service.
type Recorder interface {
	RecalculationDone(status string, elapsed time.Duration)
	TotalsUpdated(status string)
}

// Notifier is told about every successfully recalculated goal.
type Notifier interface {
	GoalRecalculated(userID int, goal Goal)
}

type nopRecorder struct{}

func (nopRecorder) RecalculationDone(string, time.Duration) {}
func (nopRecorder) TotalsUpdated(string)                    {}

type nopNotifier struct{}

func (nopNotifier) GoalRecalculated(int, Goal) {}

// Thresholds are the tunable cut-offs used by summaries and adherence.
type Thresholds struct {
	WaterGoalGlasses int
	GoalBalanceKcal  int
	MaintenanceBand  int
}

// DefaultThresholds mirrors the config defaults.
func DefaultThresholds() Thresholds {
	return Thresholds{
		WaterGoalGlasses: 8,
		GoalBalanceKcal:  300,
		MaintenanceBand:  200,
	}
}

// Option customizes a Service.
type Option func(*Service)

// WithRecorder sets the metrics sink.
func WithRecorder(r Recorder) Option {
	return func(s *Service) { s.metrics = r }
}

// WithNotifier sets the recalculation listener.
func WithNotifier(n Notifier) Option {
	return func(s *Service) { s.notify = n }
}

// WithThresholds overrides DefaultThresholds.
func WithThresholds(t Thresholds) Option {
	return func(s *Service) { s.thresholds = t }
}

// WithRecalcTimeout bounds a background goal refresh.
func WithRecalcTimeout(d time.Duration) Option {
	return func(s *Service) { s.recalcTimeout = d }
}

// Service implements the daily totals updater, goal recalculation and the
// operations built on them.
type Service struct {
	log     *slog.Logger
	users   userRepo
	goals   goalRepo
	entries entryRepo
	logs    logRepo
	tx      txManager
	locks   *userLocks

	metrics       Recorder
	notify        Notifier
	thresholds    Thresholds
	recalcTimeout time.Duration
	now           func() time.Time
}

// NewService creates a new tracker service instance.
func NewService(
	logger *slog.Logger,
	users userRepo,
	goals goalRepo,
	entries entryRepo,
	logs logRepo,
	tx txManager,
	opts ...Option,
) *Service {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	s := &Service{
		log:           logger.With("service", "tracker"),
		users:         users,
		goals:         goals,
		entries:       entries,
		logs:          logs,
		tx:            tx,
		locks:         newUserLocks(),
		metrics:       nopRecorder{},
		notify:        nopNotifier{},
		thresholds:    DefaultThresholds(),
		recalcTimeout: 10 * time.Second,
		now:           time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}
