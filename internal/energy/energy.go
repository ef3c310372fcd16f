// Package energy holds the calorie and body-weight arithmetic behind daily
// balances and goal progress. Every function is total over its numeric
// inputs: nothing here returns an error or panics, and callers are expected
// to have validated weights and heights before asking for a number.
package energy

import "math"

// KcalPerKg is the energy equivalent of one kilogram of body weight.
const KcalPerKg = 7700

// DailyTargetDelta is the suggested per-day intake change for loss and gain goals.
const DailyTargetDelta = 300

// MaintenanceBand is the +/- kcal window a maintenance day must land in to
// count as balanced.
const MaintenanceBand = 200

// GoalType is the direction of a weight goal.
type GoalType string

const (
	GoalLoss        GoalType = "loss"
	GoalGain        GoalType = "gain"
	GoalMaintenance GoalType = "maintenance"
)

// Valid reports whether g is one of the known goal types.
func (g GoalType) Valid() bool {
	switch g {
	case GoalLoss, GoalGain, GoalMaintenance:
		return true
	}
	return false
}

// BMR estimates basal metabolic rate with the Mifflin-St Jeor equation.
// Only "male" gets the male offset; every other value uses the female one.
func BMR(weightKg, heightCm float64, age int, gender string) int {
	base := 10*weightKg + 6.25*heightCm - 5*float64(age)
	if gender == "male" {
		return int(math.Round(base + 5))
	}
	return int(math.Round(base - 161))
}

// NetIntake is calories eaten minus calories burned through exercise.
func NetIntake(caloriesIn, caloriesOut int) int {
	return caloriesIn - caloriesOut
}

// ApparentBalance is what the logged food and exercise imply relative to BMR.
// Positive is a deficit, negative a surplus, regardless of goal type.
func ApparentBalance(bmr, netIntake int) int {
	return bmr - netIntake
}

// EnergyChangeFromWeight converts a weight change into kcal. Positive means
// weight was lost (a net deficit), negative means weight was gained.
func EnergyChangeFromWeight(startWeightKg, currentWeightKg float64) int {
	return int(math.Round((startWeightKg - currentWeightKg) * KcalPerKg))
}

// GoalEnergyNeeded returns the kcal distance between start and goal weight,
// or nil for maintenance goals which have no energy target.
func GoalEnergyNeeded(startWeightKg, goalWeightKg float64, goalType GoalType) *int {
	if goalType == GoalMaintenance {
		return nil
	}
	needed := int(math.Round(math.Abs(startWeightKg-goalWeightKg) * KcalPerKg))
	return &needed
}

// DailyTargetKcal is the suggested signed change to daily intake: eat 300
// less to lose, 300 more to gain, nothing different to maintain.
func DailyTargetKcal(goalType GoalType) int {
	switch goalType {
	case GoalLoss:
		return -DailyTargetDelta
	case GoalGain:
		return DailyTargetDelta
	}
	return 0
}

// TowardGoal orients an energy change so that movement toward the goal is
// positive for both loss and gain. Maintenance has no direction and yields 0.
func TowardGoal(goalType GoalType, energyChange int) int {
	switch goalType {
	case GoalLoss:
		return energyChange
	case GoalGain:
		return -energyChange
	}
	return 0
}

// Progress is the fraction of the goal's energy already achieved, in [0, 1].
// energyChange uses the EnergyChangeFromWeight sign. Movement away from the
// goal, a zero energy target and maintenance goals all report 0.
func Progress(energyChange, goalEnergyNeeded int, goalType GoalType) float64 {
	if goalType == GoalMaintenance || goalEnergyNeeded <= 0 {
		return 0
	}
	return clamp01(float64(TowardGoal(goalType, energyChange)) / float64(goalEnergyNeeded))
}

// Adherence is the share of days whose apparent balance stays within band
// kcal of zero. It is the maintenance counterpart of Progress; an empty
// history has no adherence to speak of and reports 0.
func Adherence(balances []int, band int) float64 {
	if len(balances) == 0 {
		return 0
	}
	balanced := 0
	for _, b := range balances {
		if abs(b) <= band {
			balanced++
		}
	}
	return float64(balanced) / float64(len(balances))
}

func clamp01(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
