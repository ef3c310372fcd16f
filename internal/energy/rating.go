package energy

import "fmt"

// Rating buckets a daily or cumulative balance by how well it serves the goal.
type Rating string

const (
	RatingExcellent Rating = "excellent"
	RatingGreat     Rating = "great"
	RatingGood      Rating = "good"
	RatingLow       Rating = "low"
	RatingInverted  Rating = "inverted"
)

// balanceBand is one row of a descending threshold table.
type balanceBand struct {
	min   int
	color string
}

// Seven bands from a large deficit down to a large surplus. Gain goals walk
// the same table with the balance negated.
var directionalColors = []balanceBand{
	{500, "#C6EFCE"},
	{300, "#E2F0D9"},
	{100, "#FFF2CC"},
	{0, "#FCE4D6"},
	{-100, "#FDE9D9"},
	{-300, "#FADBD8"},
}

const directionalFloorColor = "#F4CCCC"

var maintenanceColors = []struct {
	max   int
	color string
}{
	{100, "#C6EFCE"},
	{200, "#E2F0D9"},
	{300, "#FFF2CC"},
}

const maintenanceOffColor = "#FCE4D6"

// oriented flips a balance for gain goals so the rest of the logic can treat
// "bigger is better" uniformly. An empty goal type is treated as loss.
func oriented(balance int, goalType GoalType) int {
	if goalType == GoalGain {
		return -balance
	}
	return balance
}

// RateBalance maps an apparent balance to a rating for the given goal type.
func RateBalance(balance int, goalType GoalType) Rating {
	if goalType == GoalMaintenance {
		switch d := abs(balance); {
		case d <= 100:
			return RatingExcellent
		case d <= 200:
			return RatingGreat
		case d <= 300:
			return RatingGood
		default:
			return RatingLow
		}
	}

	switch b := oriented(balance, goalType); {
	case b >= 500:
		return RatingExcellent
	case b >= 300:
		return RatingGreat
	case b >= 100:
		return RatingGood
	case b >= 0:
		return RatingLow
	default:
		return RatingInverted
	}
}

// BalanceColor returns the background color for an apparent balance.
func BalanceColor(balance int, goalType GoalType) string {
	if goalType == GoalMaintenance {
		d := abs(balance)
		for _, band := range maintenanceColors {
			if d <= band.max {
				return band.color
			}
		}
		return maintenanceOffColor
	}

	b := oriented(balance, goalType)
	for _, band := range directionalColors {
		if b >= band.min {
			return band.color
		}
	}
	return directionalFloorColor
}

// BalanceLabel is the short human label for RateBalance.
func BalanceLabel(balance int, goalType GoalType) string {
	r := RateBalance(balance, goalType)
	switch goalType {
	case GoalMaintenance:
		switch r {
		case RatingExcellent:
			return "Perfect Balance"
		case RatingGreat:
			return "Great Balance"
		case RatingGood:
			return "Good Balance"
		}
		return "Off Balance"
	case GoalGain:
		if r == RatingInverted {
			return "In Deficit"
		}
		return ratingWord(r) + " Surplus"
	}
	if r == RatingInverted {
		return "In Surplus"
	}
	return ratingWord(r) + " Deficit"
}

func ratingWord(r Rating) string {
	switch r {
	case RatingExcellent:
		return "Excellent"
	case RatingGreat:
		return "Great"
	case RatingGood:
		return "Good"
	}
	return "Low"
}

// FormatBalance renders a balance as "N cal deficit" / "N cal surplus".
// Maintenance goals call anything within 50 kcal "Balanced".
func FormatBalance(balance int, goalType GoalType) string {
	if goalType == GoalMaintenance && abs(balance) <= 50 {
		return "Balanced"
	}
	deficit := balance > 0
	if goalType == GoalLoss || goalType == "" {
		deficit = balance >= 0
	}
	if deficit {
		return fmt.Sprintf("%d cal deficit", balance)
	}
	return fmt.Sprintf("%d cal surplus", abs(balance))
}

// progressColors runs from complete (index 0, progress >= 1) down in 5%
// steps to the color used below 5%.
var progressColors = [...]string{
	"#A8E6A3", "#B5E9B0", "#C2ECBD", "#CFEFC9", "#DCF2D6",
	"#E9F5E3", "#F0F8E8", "#F7FBEE", "#FFFEF3", "#FFFCEB",
	"#FFF9E3", "#FFF6DB", "#FFF3D3", "#FFF0CB", "#FFEDC3",
	"#FFEABB", "#FFE7B3", "#FFE0A8", "#FFD99D", "#FFD292",
	"#FFCB87",
}

// ProgressColor returns the progress-bar color for a fraction in [0, 1].
func ProgressColor(progress float64) string {
	// Work in whole percent to keep 0.95 and friends off float edges.
	pct := int(progress*100 + 1e-9)
	if pct >= 100 {
		return progressColors[0]
	}
	if pct < 0 {
		pct = 0
	}
	steps := pct / 5
	return progressColors[len(progressColors)-1-steps]
}
