package tracker

import (
	"context"
	"log/slog"
	"slices"
	"sync"
	"testing"
	"time"
)

// memStore is an in-memory implementation of every repository the service
// consumes. Fail* fields inject errors into the matching call.
type memStore struct {
	mu      sync.Mutex
	nextID  int
	users   map[int]User
	goals   []Goal
	entries map[entryKey]DailyEntry
	foods   []FoodLog
	gyms    []GymLog

	FailActiveGoal    error
	FailEntriesSince  error
	FailCreateGoal    error
	FailSaveTotals    error
	FailListFoodLogs  error
	updateCumulatives int

	// beforeListGyms runs at the start of ListGymLogs, outside mu.
	beforeListGyms func()
}

type entryKey struct {
	userID int
	date   time.Time
}

func newMemStore() *memStore {
	return &memStore{
		users:   make(map[int]User),
		entries: make(map[entryKey]DailyEntry),
	}
}

func (m *memStore) id() int {
	m.nextID++
	return m.nextID
}

// ---------------------------------------------------------------------------
// seeding helpers
// ---------------------------------------------------------------------------

func (m *memStore) addUser(u User) User {
	m.mu.Lock()
	defer m.mu.Unlock()
	if u.ID == 0 {
		u.ID = m.id()
	}
	m.users[u.ID] = u
	return u
}

func (m *memStore) addGoal(g Goal) Goal {
	m.mu.Lock()
	defer m.mu.Unlock()
	g.ID = m.id()
	g.IsActive = true
	m.goals = append(m.goals, g)
	return g
}

func (m *memStore) putEntry(e DailyEntry) DailyEntry {
	m.mu.Lock()
	defer m.mu.Unlock()
	if e.ID == 0 {
		e.ID = m.id()
	}
	m.entries[entryKey{e.UserID, Day(e.Date.Time)}] = e
	return e
}

func (m *memStore) addFood(f FoodLog) FoodLog {
	m.mu.Lock()
	defer m.mu.Unlock()
	f.ID = m.id()
	m.foods = append(m.foods, f)
	return f
}

func (m *memStore) addGym(g GymLog) GymLog {
	m.mu.Lock()
	defer m.mu.Unlock()
	g.ID = m.id()
	m.gyms = append(m.gyms, g)
	return g
}

func (m *memStore) setFoodCalories(id, calories int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.foods {
		if m.foods[i].ID == id {
			m.foods[i].Calories = calories
		}
	}
}

func (m *memStore) deleteLogs(userID int, date time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	day := Day(date)
	m.foods = slices.DeleteFunc(m.foods, func(f FoodLog) bool { return f.UserID == userID && f.Date.Equal(day) })
	m.gyms = slices.DeleteFunc(m.gyms, func(g GymLog) bool { return g.UserID == userID && g.Date.Equal(day) })
}

func (m *memStore) entry(userID int, date time.Time) (DailyEntry, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.entries[entryKey{userID, Day(date)}]
	return e, ok
}

func (m *memStore) activeGoals(userID int) []Goal {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []Goal
	for _, g := range m.goals {
		if g.UserID == userID && g.IsActive {
			out = append(out, g)
		}
	}
	return out
}

// ---------------------------------------------------------------------------
// userRepo
// ---------------------------------------------------------------------------

func (m *memStore) GetUser(_ context.Context, userID int) (User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[userID]
	if !ok {
		return User{}, ErrNotFound
	}
	return u, nil
}

// ---------------------------------------------------------------------------
// goalRepo
// ---------------------------------------------------------------------------

func (m *memStore) GetActiveGoal(_ context.Context, userID int) (Goal, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailActiveGoal != nil {
		return Goal{}, m.FailActiveGoal
	}
	for _, g := range m.goals {
		if g.UserID == userID && g.IsActive {
			return g, nil
		}
	}
	return Goal{}, ErrNotFound
}

func (m *memStore) DeactivateGoals(_ context.Context, userID int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.goals {
		if m.goals[i].UserID == userID {
			m.goals[i].IsActive = false
		}
	}
	return nil
}

func (m *memStore) CreateGoal(_ context.Context, g Goal) (Goal, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailCreateGoal != nil {
		return Goal{}, m.FailCreateGoal
	}
	g.ID = m.id()
	m.goals = append(m.goals, g)
	return g, nil
}

func (m *memStore) UpdateGoalCumulatives(_ context.Context, goalID int, apparent, actual int, currentWeightKg float64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.updateCumulatives++
	for i := range m.goals {
		if m.goals[i].ID == goalID {
			m.goals[i].CumulativeApparentDeficit = apparent
			m.goals[i].CumulativeActualDeficit = actual
			w := currentWeightKg
			m.goals[i].CurrentWeightKg = &w
			return nil
		}
	}
	return ErrNotFound
}

// ---------------------------------------------------------------------------
// entryRepo
// ---------------------------------------------------------------------------

func (m *memStore) EnsureDailyEntry(_ context.Context, userID int, date time.Time) (DailyEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	k := entryKey{userID, Day(date)}
	if e, ok := m.entries[k]; ok {
		return e, nil
	}
	e := DailyEntry{ID: m.id(), UserID: userID, Date: NewDate(date)}
	m.entries[k] = e
	return e, nil
}

func (m *memStore) GetDailyEntry(_ context.Context, userID int, date time.Time) (DailyEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.entries[entryKey{userID, Day(date)}]
	if !ok {
		return DailyEntry{}, ErrNotFound
	}
	return e, nil
}

func (m *memStore) SaveDailyTotals(_ context.Context, e DailyEntry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailSaveTotals != nil {
		return m.FailSaveTotals
	}
	k := entryKey{e.UserID, Day(e.Date.Time)}
	cur := m.entries[k]
	cur.TotalCaloriesIn = e.TotalCaloriesIn
	cur.TotalCaloriesOut = e.TotalCaloriesOut
	cur.NetIntake = e.NetIntake
	cur.ApparentDeficit = e.ApparentDeficit
	m.entries[k] = cur
	return nil
}

func (m *memStore) SaveDailyWeight(_ context.Context, e DailyEntry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	k := entryKey{e.UserID, Day(e.Date.Time)}
	cur := m.entries[k]
	cur.WeightKg = e.WeightKg
	cur.BMR = e.BMR
	cur.NetIntake = e.NetIntake
	cur.ApparentDeficit = e.ApparentDeficit
	m.entries[k] = cur
	return nil
}

func (m *memStore) SetWaterGlasses(_ context.Context, entryID, glasses int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for k, e := range m.entries {
		if e.ID == entryID {
			e.WaterGlasses = glasses
			m.entries[k] = e
			return nil
		}
	}
	return ErrNotFound
}

// ListBalancedEntriesSince returns matching rows newest first, the order the
// SQL store uses.
func (m *memStore) ListBalancedEntriesSince(_ context.Context, userID int, since time.Time) ([]DailyEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailEntriesSince != nil {
		return nil, m.FailEntriesSince
	}
	var out []DailyEntry
	for _, e := range m.entries {
		if e.UserID == userID && e.ApparentDeficit != nil && !e.Date.Before(Day(since)) {
			out = append(out, e)
		}
	}
	slices.SortFunc(out, func(a, b DailyEntry) int { return b.Date.Compare(a.Date.Time) })
	return out, nil
}

func (m *memStore) ListDailyEntries(_ context.Context, userID int, start, end time.Time) ([]DailyEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []DailyEntry
	for _, e := range m.entries {
		if e.UserID == userID && inRange(e.Date, start, end) {
			out = append(out, e)
		}
	}
	slices.SortFunc(out, func(a, b DailyEntry) int { return a.Date.Compare(b.Date.Time) })
	return out, nil
}

// ---------------------------------------------------------------------------
// logRepo
// ---------------------------------------------------------------------------

func (m *memStore) ListFoodLogs(_ context.Context, userID int, start, end time.Time) ([]FoodLog, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailListFoodLogs != nil {
		return nil, m.FailListFoodLogs
	}
	var out []FoodLog
	for _, f := range m.foods {
		if f.UserID == userID && inRange(f.Date, start, end) {
			out = append(out, f)
		}
	}
	return out, nil
}

func (m *memStore) ListGymLogs(_ context.Context, userID int, start, end time.Time) ([]GymLog, error) {
	if m.beforeListGyms != nil {
		m.beforeListGyms()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []GymLog
	for _, g := range m.gyms {
		if g.UserID == userID && inRange(g.Date, start, end) {
			out = append(out, g)
		}
	}
	return out, nil
}

// ---------------------------------------------------------------------------
// txManager
// ---------------------------------------------------------------------------

// RunInTx restores the goals table if fn fails.
func (m *memStore) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	m.mu.Lock()
	snapshot := slices.Clone(m.goals)
	m.mu.Unlock()

	if err := fn(ctx); err != nil {
		m.mu.Lock()
		m.goals = snapshot
		m.mu.Unlock()
		return err
	}
	return nil
}

func inRange(d DateOnly, start, end time.Time) bool {
	return !d.Before(Day(start)) && !d.After(Day(end))
}

// ---------------------------------------------------------------------------
// service fixtures
// ---------------------------------------------------------------------------

type recorderSpy struct {
	mu     sync.Mutex
	recalc []string
	totals []string
}

func (r *recorderSpy) RecalculationDone(status string, _ time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.recalc = append(r.recalc, status)
}

func (r *recorderSpy) TotalsUpdated(status string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.totals = append(r.totals, status)
}

type notifierSpy struct {
	mu    sync.Mutex
	goals []Goal
}

func (n *notifierSpy) GoalRecalculated(_ int, g Goal) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.goals = append(n.goals, g)
}

func newTestService(t *testing.T, store *memStore, opts ...Option) *Service {
	t.Helper()
	return NewService(slog.Default(), store, store, store, store, store, opts...)
}

func date(s string) time.Time {
	d, err := ParseDay(s)
	if err != nil {
		panic(err)
	}
	return d
}

func ptr[T any](v T) *T { return &v }

var testProfile = User{
	Username: "lyle",
	Email:    "lyle@example.com",
	HeightCM: ptr(180.0),
	Age:      ptr(30),
	Gender:   ptr("male"),
}
