package main

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lg/wellness-go-api/internal/tracker"
)

type recalcFunc func(ctx context.Context, userID int) (*tracker.Goal, error)

func (f recalcFunc) RecalculateGoalCumulatives(ctx context.Context, userID int) (*tracker.Goal, error) {
	return f(ctx, userID)
}

func TestRecalcUsers_BoundsEachCallByTimeout(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	var seen []int
	svc := recalcFunc(func(ctx context.Context, userID int) (*tracker.Goal, error) {
		deadline, ok := ctx.Deadline()
		require.True(t, ok, "user %d should have a deadline", userID)
		assert.WithinDuration(t, time.Now().Add(time.Minute), deadline, 5*time.Second)
		seen = append(seen, userID)

		switch userID {
		case 2:
			return nil, nil
		case 3:
			return nil, errors.New("boom")
		}
		return &tracker.Goal{ID: 10 + userID}, nil
	})

	failed := recalcUsers(context.Background(), logger, svc, []int{1, 2, 3}, time.Minute)
	assert.Equal(t, 1, failed)
	assert.Equal(t, []int{1, 2, 3}, seen)
}

func TestRecalcUsers_SlowUserTimesOutAndOthersContinue(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	svc := recalcFunc(func(ctx context.Context, userID int) (*tracker.Goal, error) {
		if userID == 1 {
			<-ctx.Done()
			return nil, ctx.Err()
		}
		require.NoError(t, ctx.Err())
		return &tracker.Goal{ID: userID}, nil
	})

	failed := recalcUsers(context.Background(), logger, svc, []int{1, 2}, 10*time.Millisecond)
	assert.Equal(t, 1, failed)
}
