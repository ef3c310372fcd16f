// Command recalc rebuilds goal cumulative figures from stored daily entries.
// Useful after bulk imports or manual database fixes.
//
// Usage: go run ./cmd/recalc --user 42
//
//	go run ./cmd/recalc --all
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"lg/wellness-go-api/internal/config"
	"lg/wellness-go-api/internal/observability"
	"lg/wellness-go-api/internal/postgres"
	"lg/wellness-go-api/internal/tracker"
)

type options struct {
	userID int
	all    bool
}

func main() {
	var opts options

	rootCmd := &cobra.Command{
		Use:          "recalc",
		Short:        "Recalculate active goal cumulatives",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.all == (opts.userID > 0) {
				return errors.New("pass exactly one of --user or --all")
			}
			return run(cmd.Context(), opts)
		},
	}
	rootCmd.Flags().IntVar(&opts.userID, "user", 0, "Recalculate a single user's active goal")
	rootCmd.Flags().BoolVar(&opts.all, "all", false, "Recalculate every user with an active goal")

	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

func run(ctx context.Context, opts options) error {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	logger := observability.NewLogger(cfg.Log)

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return err
	}
	defer pool.Close()

	store := postgres.NewStore(pool)
	svc := tracker.NewService(logger, store, store, store, store, postgres.NewTxManager(pool))

	userIDs := []int{opts.userID}
	if opts.all {
		if userIDs, err = store.ListUserIDsWithActiveGoal(ctx); err != nil {
			return err
		}
	}

	if failed := recalcUsers(ctx, logger, svc, userIDs, cfg.Tracker.RecalcTimeout); failed > 0 {
		return fmt.Errorf("%d of %d recalculations failed", failed, len(userIDs))
	}
	return nil
}

type recalculator interface {
	RecalculateGoalCumulatives(ctx context.Context, userID int) (*tracker.Goal, error)
}

// recalcUsers recalculates each user in turn, bounding every call by timeout.
// It returns the number of failures.
func recalcUsers(ctx context.Context, logger *slog.Logger, svc recalculator, userIDs []int, timeout time.Duration) int {
	var failed int
	for _, id := range userIDs {
		userCtx, cancel := context.WithTimeout(ctx, timeout)
		goal, err := svc.RecalculateGoalCumulatives(userCtx, id)
		cancel()

		switch {
		case err != nil:
			failed++
			logger.Error("recalculation failed", slog.Int("user_id", id), slog.String("error", err.Error()))
		case goal == nil:
			logger.Warn("no active goal", slog.Int("user_id", id))
		default:
			logger.Info("goal recalculated",
				slog.Int("user_id", id),
				slog.Int("goal_id", goal.ID),
				slog.Int("cumulative_apparent_deficit", goal.CumulativeApparentDeficit),
				slog.Int("cumulative_actual_deficit", goal.CumulativeActualDeficit))
		}
	}
	return failed
}
