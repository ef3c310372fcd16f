package main

import (
	"errors"
	"strings"

	"lg/wellness-go-api/internal/tracker"
)

/* ─── Request bodies ─────────────────────────────────────────────────── */

// signupRequest is the request body for POST /api/signup.
type signupRequest struct {
	Username string  `json:"username"`
	Email    string  `json:"email"`
	Password string  `json:"password"`
	Name     *string `json:"name"`
}

// foodLogRequest is the request body for creating or replacing a food log.
type foodLogRequest struct {
	Date      string  `json:"date"`
	MealName  string  `json:"meal_name"`
	MealType  *string `json:"meal_type"`
	Calories  int     `json:"calories"`
	ProteinG  float64 `json:"protein_g"`
	CarbsG    float64 `json:"carbs_g"`
	FatsG     float64 `json:"fats_g"`
	IsHealthy bool    `json:"is_healthy"`
}

// validate checks the body and converts it to a FoodLog for userID.
func (r foodLogRequest) validate(userID int) (tracker.FoodLog, error) {
	d, err := tracker.ParseDay(r.Date)
	if err != nil {
		return tracker.FoodLog{}, errors.New("invalid date, expected YYYY-MM-DD")
	}
	name := strings.TrimSpace(r.MealName)
	if name == "" {
		return tracker.FoodLog{}, errors.New("meal_name is required")
	}
	if r.MealType != nil && !tracker.ValidMealTypes[*r.MealType] {
		return tracker.FoodLog{}, errors.New("meal_type must be one of: breakfast, lunch, dinner, snack")
	}
	if r.Calories < 0 || r.Calories > 20000 {
		return tracker.FoodLog{}, errors.New("calories must be between 0 and 20000")
	}
	if r.ProteinG < 0 || r.CarbsG < 0 || r.FatsG < 0 {
		return tracker.FoodLog{}, errors.New("macros must not be negative")
	}
	return tracker.FoodLog{
		UserID:    userID,
		Date:      tracker.NewDate(d),
		MealName:  name,
		MealType:  r.MealType,
		Calories:  r.Calories,
		ProteinG:  r.ProteinG,
		CarbsG:    r.CarbsG,
		FatsG:     r.FatsG,
		IsHealthy: r.IsHealthy,
	}, nil
}

// gymLogRequest is the request body for creating or replacing a gym log.
type gymLogRequest struct {
	Date           string   `json:"date"`
	ExerciseName   string   `json:"exercise_name"`
	Sets           *int     `json:"sets"`
	Reps           *int     `json:"reps"`
	WeightKg       *float64 `json:"weight_kg"`
	CaloriesBurned int      `json:"calories_burned"`
	WarmupDone     bool     `json:"warmup_done"`
	CooldownDone   bool     `json:"cooldown_done"`
	MeditationDone bool     `json:"meditation_done"`
	Notes          *string  `json:"notes"`
}

// validate checks the body and converts it to a GymLog for userID.
func (r gymLogRequest) validate(userID int) (tracker.GymLog, error) {
	d, err := tracker.ParseDay(r.Date)
	if err != nil {
		return tracker.GymLog{}, errors.New("invalid date, expected YYYY-MM-DD")
	}
	name := strings.TrimSpace(r.ExerciseName)
	if name == "" {
		return tracker.GymLog{}, errors.New("exercise_name is required")
	}
	if r.CaloriesBurned < 0 || r.CaloriesBurned > 10000 {
		return tracker.GymLog{}, errors.New("calories_burned must be between 0 and 10000")
	}
	if (r.Sets != nil && *r.Sets < 0) || (r.Reps != nil && *r.Reps < 0) || (r.WeightKg != nil && *r.WeightKg < 0) {
		return tracker.GymLog{}, errors.New("sets, reps and weight_kg must not be negative")
	}
	return tracker.GymLog{
		UserID:         userID,
		Date:           tracker.NewDate(d),
		ExerciseName:   name,
		Sets:           r.Sets,
		Reps:           r.Reps,
		WeightKg:       r.WeightKg,
		CaloriesBurned: r.CaloriesBurned,
		WarmupDone:     r.WarmupDone,
		CooldownDone:   r.CooldownDone,
		MeditationDone: r.MeditationDone,
		Notes:          r.Notes,
	}, nil
}

// weightRequest is the request body for POST /api/weight-log.
type weightRequest struct {
	Date     string  `json:"date"`
	WeightKg float64 `json:"weight_kg"`
}

// waterRequest is the request body for PUT /api/water/:date.
type waterRequest struct {
	Glasses *int `json:"glasses"`
}

// waterIncrementRequest is the request body for POST /api/water/:date/increment.
// Delta defaults to 1 when omitted.
type waterIncrementRequest struct {
	Delta *int `json:"delta"`
}

// stepsRequest is the request body for POST /api/steps. Mode "add" adds to
// the day's count; "set" (the default) replaces it.
type stepsRequest struct {
	Date  string `json:"date"`
	Steps int    `json:"steps"`
	Mode  string `json:"mode"`
}

// skincareRequest is the request body for PUT /api/skincare.
type skincareRequest struct {
	Date            string `json:"date"`
	TimeOfDay       string `json:"time_of_day"`
	CleansingDone   bool   `json:"cleansing_done"`
	SerumDone       bool   `json:"serum_done"`
	MoisturizerDone bool   `json:"moisturizer_done"`
	GuaShaDone      bool   `json:"gua_sha_done"`
}
