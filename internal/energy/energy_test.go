package energy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

/* ─── BMR ────────────────────────────────────────────────────────────── */

// TestBMR_KnownValues checks Mifflin-St Jeor against hand-computed inputs.
// 80kg, 180cm, 30y: base = 800 + 1125 - 150 = 1775.
func TestBMR_KnownValues(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 1780, BMR(80, 180, 30, "male"))
	assert.Equal(t, 1614, BMR(80, 180, 30, "female"))
}

// TestBMR_MaleFemaleOffset verifies the +5 / -161 offsets always differ by 166.
func TestBMR_MaleFemaleOffset(t *testing.T) {
	t.Parallel()

	cases := []struct {
		weight, height float64
		age            int
	}{
		{80, 180, 30},
		{62.3, 165.5, 41},
		{101.7, 191.2, 19},
		{45, 150, 80},
	}
	for _, tc := range cases {
		male := BMR(tc.weight, tc.height, tc.age, "male")
		female := BMR(tc.weight, tc.height, tc.age, "female")
		assert.Equal(t, 166, male-female, "inputs %+v", tc)
	}
}

// TestBMR_UnknownGenderUsesFemaleOffset documents the two-gender simplification.
func TestBMR_UnknownGenderUsesFemaleOffset(t *testing.T) {
	t.Parallel()

	assert.Equal(t, BMR(70, 170, 25, "female"), BMR(70, 170, 25, "other"))
}

/* ─── Balances ───────────────────────────────────────────────────────── */

func TestNetIntakeAndApparentBalance(t *testing.T) {
	t.Parallel()

	net := NetIntake(950, 150)
	assert.Equal(t, 800, net)
	assert.Equal(t, 600, ApparentBalance(1400, net))

	// Heavy exercise can push net intake below zero.
	assert.Equal(t, -200, NetIntake(300, 500))
	assert.Equal(t, 1600, ApparentBalance(1400, -200))
}

/* ─── Weight-derived energy ──────────────────────────────────────────── */

func TestEnergyChangeFromWeight(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 38500, EnergyChangeFromWeight(80, 75))
	assert.Equal(t, 15400, EnergyChangeFromWeight(80, 78))
	assert.Equal(t, -7700, EnergyChangeFromWeight(60, 61))

	for _, w := range []float64{0, 45.5, 80, 123.4} {
		assert.Equal(t, 0, EnergyChangeFromWeight(w, w), "weight %v", w)
	}
}

func TestGoalEnergyNeeded(t *testing.T) {
	t.Parallel()

	loss := GoalEnergyNeeded(80, 75, GoalLoss)
	require.NotNil(t, loss)
	assert.Equal(t, 38500, *loss)

	gain := GoalEnergyNeeded(60, 65, GoalGain)
	require.NotNil(t, gain)
	assert.Equal(t, 38500, *gain)

	assert.Nil(t, GoalEnergyNeeded(80, 75, GoalMaintenance))
	assert.Nil(t, GoalEnergyNeeded(80, 80, GoalMaintenance))
}

func TestDailyTargetKcal(t *testing.T) {
	t.Parallel()

	assert.Equal(t, -300, DailyTargetKcal(GoalLoss))
	assert.Equal(t, 300, DailyTargetKcal(GoalGain))
	assert.Equal(t, 0, DailyTargetKcal(GoalMaintenance))
}

/* ─── Progress ───────────────────────────────────────────────────────── */

func TestProgress(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name   string
		change int
		needed int
		goal   GoalType
		want   float64
	}{
		{"loss partway", 15400, 38500, GoalLoss, 0.4},
		{"loss complete", 38500, 38500, GoalLoss, 1},
		{"loss overshoot clamps", 50000, 38500, GoalLoss, 1},
		{"loss moving away", -7700, 38500, GoalLoss, 0},
		{"gain partway", -15400, 38500, GoalGain, 0.4},
		{"gain moving away", 7700, 38500, GoalGain, 0},
		{"gain overshoot clamps", -90000, 38500, GoalGain, 1},
		{"maintenance always zero", 7700, 38500, GoalMaintenance, 0},
		{"zero target", 7700, 0, GoalLoss, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.InDelta(t, tc.want, Progress(tc.change, tc.needed, tc.goal), 1e-9)
		})
	}
}

// TestProgress_Monotonic walks the toward-goal signal upward and checks the
// fraction never decreases and never leaves [0, 1].
func TestProgress_Monotonic(t *testing.T) {
	t.Parallel()

	for _, goal := range []GoalType{GoalLoss, GoalGain} {
		prev := -1.0
		for step := -20000; step <= 60000; step += 770 {
			change := step
			if goal == GoalGain {
				change = -step
			}
			p := Progress(change, 38500, goal)
			assert.GreaterOrEqual(t, p, prev, "goal %s step %d", goal, step)
			assert.GreaterOrEqual(t, p, 0.0)
			assert.LessOrEqual(t, p, 1.0)
			prev = p
		}
	}
}

func TestAdherence(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 0.0, Adherence(nil, MaintenanceBand))
	assert.Equal(t, 1.0, Adherence([]int{0, 200, -200}, MaintenanceBand))
	assert.InDelta(t, 0.5, Adherence([]int{50, -450, 199, 201}, MaintenanceBand), 1e-9)
}

func TestGoalType_Valid(t *testing.T) {
	t.Parallel()

	assert.True(t, GoalLoss.Valid())
	assert.True(t, GoalGain.Valid())
	assert.True(t, GoalMaintenance.Valid())
	assert.False(t, GoalType("bulk").Valid())
	assert.False(t, GoalType("").Valid())
}
