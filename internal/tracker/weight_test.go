package tracker

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordWeight_FreezesBMRAndBalancesStoredTotals(t *testing.T) {
	t.Parallel()

	store := newMemStore()
	u := store.addUser(testProfile)
	store.putEntry(DailyEntry{UserID: u.ID, Date: NewDate(date("2025-03-10")), TotalCaloriesIn: 1500, TotalCaloriesOut: 200, WaterGlasses: 3})
	svc := newTestService(t, store)

	got, err := svc.RecordWeight(context.Background(), u.ID, date("2025-03-10"), 80)
	require.NoError(t, err)

	require.NotNil(t, got.BMR)
	assert.Equal(t, 1780, *got.BMR)
	assert.Equal(t, 1300, *got.NetIntake)
	assert.Equal(t, 480, *got.ApparentDeficit)

	stored, _ := store.entry(u.ID, date("2025-03-10"))
	assert.Equal(t, 80.0, *stored.WeightKg)
	assert.Equal(t, 1500, stored.TotalCaloriesIn)
	assert.Equal(t, 3, stored.WaterGlasses)
}

func TestRecordWeight_RequiresProfile(t *testing.T) {
	t.Parallel()

	store := newMemStore()
	u := store.addUser(User{Username: "new"})
	svc := newTestService(t, store)

	_, err := svc.RecordWeight(context.Background(), u.ID, date("2025-03-10"), 80)
	assert.ErrorIs(t, err, ErrValidation)
	_, ok := store.entry(u.ID, date("2025-03-10"))
	assert.False(t, ok)
}

func TestRecordWeight_RejectsOutOfRange(t *testing.T) {
	t.Parallel()

	store := newMemStore()
	u := store.addUser(testProfile)
	svc := newTestService(t, store)

	for _, w := range []float64{0, -5, MaxWeightKg + 1} {
		_, err := svc.RecordWeight(context.Background(), u.ID, date("2025-03-10"), w)
		assert.ErrorIs(t, err, ErrValidation, "weight %v", w)
	}
}

func TestRecordWeight_UnknownUser(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, newMemStore())

	_, err := svc.RecordWeight(context.Background(), 99, date("2025-03-10"), 80)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestClearWeight_KeepsTotalsAndDropsBalance(t *testing.T) {
	t.Parallel()

	store := newMemStore()
	u := store.addUser(testProfile)
	store.addGoal(lossGoal(u.ID))
	svc := newTestService(t, store)
	ctx := context.Background()

	_, err := svc.RecordWeight(ctx, u.ID, date("2025-03-10"), 78)
	require.NoError(t, err)
	require.Equal(t, 15400, store.activeGoals(u.ID)[0].CumulativeActualDeficit)

	got, err := svc.ClearWeight(ctx, u.ID, date("2025-03-10"))
	require.NoError(t, err)
	assert.Nil(t, got.WeightKg)
	assert.Nil(t, got.BMR)
	assert.Nil(t, got.ApparentDeficit)

	g := store.activeGoals(u.ID)[0]
	assert.Zero(t, g.CumulativeActualDeficit)
	assert.Zero(t, g.CumulativeApparentDeficit)
}

func TestClearWeight_MissingEntry(t *testing.T) {
	t.Parallel()

	store := newMemStore()
	u := store.addUser(testProfile)
	svc := newTestService(t, store)

	_, err := svc.ClearWeight(context.Background(), u.ID, date("2025-03-10"))
	assert.ErrorIs(t, err, ErrNotFound)
}
