package energy

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRateBalance(t *testing.T) {
	t.Parallel()

	cases := []struct {
		balance int
		goal    GoalType
		want    Rating
	}{
		{600, GoalLoss, RatingExcellent},
		{300, GoalLoss, RatingGreat},
		{150, GoalLoss, RatingGood},
		{0, GoalLoss, RatingLow},
		{-1, GoalLoss, RatingInverted},
		{-600, GoalGain, RatingExcellent},
		{-300, GoalGain, RatingGreat},
		{-100, GoalGain, RatingGood},
		{0, GoalGain, RatingLow},
		{1, GoalGain, RatingInverted},
		{-80, GoalMaintenance, RatingExcellent},
		{180, GoalMaintenance, RatingGreat},
		{-300, GoalMaintenance, RatingGood},
		{301, GoalMaintenance, RatingLow},
		{600, "", RatingExcellent},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, RateBalance(tc.balance, tc.goal), "balance %d goal %q", tc.balance, tc.goal)
	}
}

// TestBalanceColor_GainMirrorsLoss checks the gain table is the loss table
// with the sign flipped.
func TestBalanceColor_GainMirrorsLoss(t *testing.T) {
	t.Parallel()

	for _, b := range []int{-900, -500, -301, -300, -150, -100, -1, 0, 1, 99, 100, 300, 499, 500, 800} {
		assert.Equal(t, BalanceColor(b, GoalLoss), BalanceColor(-b, GoalGain), "balance %d", b)
	}
}

func TestBalanceColor_Bands(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "#C6EFCE", BalanceColor(500, GoalLoss))
	assert.Equal(t, "#E2F0D9", BalanceColor(300, GoalLoss))
	assert.Equal(t, "#FFF2CC", BalanceColor(100, GoalLoss))
	assert.Equal(t, "#FCE4D6", BalanceColor(0, GoalLoss))
	assert.Equal(t, "#FDE9D9", BalanceColor(-100, GoalLoss))
	assert.Equal(t, "#FADBD8", BalanceColor(-300, GoalLoss))
	assert.Equal(t, "#F4CCCC", BalanceColor(-301, GoalLoss))

	assert.Equal(t, "#C6EFCE", BalanceColor(-100, GoalMaintenance))
	assert.Equal(t, "#E2F0D9", BalanceColor(200, GoalMaintenance))
	assert.Equal(t, "#FFF2CC", BalanceColor(-250, GoalMaintenance))
	assert.Equal(t, "#FCE4D6", BalanceColor(900, GoalMaintenance))
}

func TestBalanceLabel(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Excellent Deficit", BalanceLabel(700, GoalLoss))
	assert.Equal(t, "Low Deficit", BalanceLabel(20, GoalLoss))
	assert.Equal(t, "In Surplus", BalanceLabel(-20, GoalLoss))
	assert.Equal(t, "Great Surplus", BalanceLabel(-350, GoalGain))
	assert.Equal(t, "In Deficit", BalanceLabel(10, GoalGain))
	assert.Equal(t, "Perfect Balance", BalanceLabel(-90, GoalMaintenance))
	assert.Equal(t, "Off Balance", BalanceLabel(450, GoalMaintenance))
}

func TestFormatBalance(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "450 cal deficit", FormatBalance(450, GoalLoss))
	assert.Equal(t, "0 cal deficit", FormatBalance(0, GoalLoss))
	assert.Equal(t, "120 cal surplus", FormatBalance(-120, GoalLoss))
	assert.Equal(t, "0 cal surplus", FormatBalance(0, GoalGain))
	assert.Equal(t, "80 cal deficit", FormatBalance(80, GoalGain))
	assert.Equal(t, "Balanced", FormatBalance(-50, GoalMaintenance))
	assert.Equal(t, "75 cal surplus", FormatBalance(-75, GoalMaintenance))
}

func TestProgressColor(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "#A8E6A3", ProgressColor(1))
	assert.Equal(t, "#A8E6A3", ProgressColor(1.3))
	assert.Equal(t, "#B5E9B0", ProgressColor(0.95))
	assert.Equal(t, "#FFF9E3", ProgressColor(0.5))
	assert.Equal(t, "#FFF3D3", ProgressColor(0.4))
	assert.Equal(t, "#FFD292", ProgressColor(0.05))
	assert.Equal(t, "#FFCB87", ProgressColor(0.049))
	assert.Equal(t, "#FFCB87", ProgressColor(0))
	assert.Equal(t, "#FFCB87", ProgressColor(-0.2))
}
