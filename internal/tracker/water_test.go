package tracker

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetWater(t *testing.T) {
	t.Parallel()

	store := newMemStore()
	u := store.addUser(testProfile)
	store.putEntry(DailyEntry{UserID: u.ID, Date: NewDate(date("2025-03-10")), TotalCaloriesIn: 900, BMR: ptr(1700), ApparentDeficit: ptr(800)})
	svc := newTestService(t, store)

	got, err := svc.SetWater(context.Background(), u.ID, date("2025-03-10"), 5)
	require.NoError(t, err)
	assert.Equal(t, 5, got.WaterGlasses)

	stored, _ := store.entry(u.ID, date("2025-03-10"))
	assert.Equal(t, 5, stored.WaterGlasses)
	assert.Equal(t, 900, stored.TotalCaloriesIn)
	assert.Equal(t, 800, *stored.ApparentDeficit)

	_, err = svc.SetWater(context.Background(), u.ID, date("2025-03-10"), -1)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestIncrementWater_CreatesEntryAndClampsAtZero(t *testing.T) {
	t.Parallel()

	store := newMemStore()
	u := store.addUser(testProfile)
	svc := newTestService(t, store)
	ctx := context.Background()

	got, err := svc.IncrementWater(ctx, u.ID, date("2025-03-11"), 1)
	require.NoError(t, err)
	assert.Equal(t, 1, got.WaterGlasses)

	got, err = svc.IncrementWater(ctx, u.ID, date("2025-03-11"), 2)
	require.NoError(t, err)
	assert.Equal(t, 3, got.WaterGlasses)

	got, err = svc.IncrementWater(ctx, u.ID, date("2025-03-11"), -10)
	require.NoError(t, err)
	assert.Equal(t, 0, got.WaterGlasses)
}

func TestIncrementWater_RejectsOutOfRangeDelta(t *testing.T) {
	t.Parallel()

	store := newMemStore()
	u := store.addUser(testProfile)
	store.putEntry(DailyEntry{UserID: u.ID, Date: NewDate(date("2025-03-11")), WaterGlasses: 4})
	svc := newTestService(t, store)
	ctx := context.Background()

	for _, delta := range []int{math.MaxInt, math.MinInt, MaxWaterGlasses + 1, -MaxWaterGlasses - 1} {
		_, err := svc.IncrementWater(ctx, u.ID, date("2025-03-11"), delta)
		assert.ErrorIs(t, err, ErrValidation, "delta %d", delta)
	}
	stored, _ := store.entry(u.ID, date("2025-03-11"))
	assert.Equal(t, 4, stored.WaterGlasses)

	got, err := svc.IncrementWater(ctx, u.ID, date("2025-03-11"), MaxWaterGlasses)
	require.NoError(t, err)
	assert.Equal(t, MaxWaterGlasses, got.WaterGlasses)
}
