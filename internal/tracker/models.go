package tracker

import (
	"time"

	"lg/wellness-go-api/internal/energy"
)

// User maps to the users table. AuthToken and Password are hidden from JSON
// responses. The physical fields are nullable until onboarding fills them in.
type User struct {
	ID        int        `json:"id"         db:"id"`
	Username  string     `json:"username"   db:"username"`
	Email     string     `json:"email"      db:"email"`
	Name      *string    `json:"name"       db:"name"`
	AuthToken string     `json:"-"          db:"auth_token"`
	Password  string     `json:"-"          db:"password"`
	HeightCM  *float64   `json:"height_cm"  db:"height_cm"`
	Age       *int       `json:"age"        db:"age"`
	Gender    *string    `json:"gender"     db:"gender"`
	StepsGoal int        `json:"steps_goal" db:"steps_goal"`
	CreatedAt *time.Time `json:"created_at" db:"created_at"`
}

// HasProfile reports whether every BMR input is present.
func (u User) HasProfile() bool {
	return u.HeightCM != nil && u.Age != nil && u.Gender != nil
}

// Goal maps to goals. At most one row per user has IsActive set. The
// cumulative fields and CurrentWeightKg are owned by
// Service.RecalculateGoalCumulatives.
type Goal struct {
	ID                        int             `json:"id"                          db:"id"`
	UserID                    int             `json:"user_id"                     db:"user_id"`
	GoalType                  energy.GoalType `json:"goal_type"                   db:"goal_type"`
	StartDate                 DateOnly        `json:"start_date"                  db:"start_date"`
	StartWeightKg             float64         `json:"start_weight_kg"             db:"start_weight_kg"`
	GoalWeightKg              float64         `json:"goal_weight_kg"              db:"goal_weight_kg"`
	CurrentWeightKg           *float64        `json:"current_weight_kg"           db:"current_weight_kg"`
	DailyTargetKcal           int             `json:"daily_target_kcal"           db:"daily_target_kcal"`
	TotalEnergyKcalNeeded     *int            `json:"total_energy_kcal_needed"    db:"total_energy_kcal_needed"`
	CumulativeApparentDeficit int             `json:"cumulative_apparent_deficit" db:"cumulative_apparent_deficit"`
	CumulativeActualDeficit   int             `json:"cumulative_actual_deficit"   db:"cumulative_actual_deficit"`
	IsActive                  bool            `json:"is_active"                   db:"is_active"`
	CreatedAt                 *time.Time      `json:"created_at"                  db:"created_at"`
}

// DailyEntry maps to daily_entries, one row per (user, date). The totals,
// NetIntake and ApparentDeficit are a cache of the day's food and gym logs
// written only by Service.UpdateDailyTotals and Service.RecordWeight.
type DailyEntry struct {
	ID               int        `json:"id"                 db:"id"`
	UserID           int        `json:"user_id"            db:"user_id"`
	Date             DateOnly   `json:"date"               db:"date"`
	WeightKg         *float64   `json:"weight_kg"          db:"weight_kg"`
	BMR              *int       `json:"bmr"                db:"bmr"`
	TotalCaloriesIn  int        `json:"total_calories_in"  db:"total_calories_in"`
	TotalCaloriesOut int        `json:"total_calories_out" db:"total_calories_out"`
	NetIntake        *int       `json:"net_intake"         db:"net_intake"`
	ApparentDeficit  *int       `json:"apparent_deficit"   db:"apparent_deficit"`
	WaterGlasses     int        `json:"water_glasses"      db:"water_glasses"`
	CreatedAt        *time.Time `json:"created_at"         db:"created_at"`
	UpdatedAt        *time.Time `json:"updated_at"         db:"updated_at"`
}

// HasActivity reports whether anything was logged for the day.
func (e DailyEntry) HasActivity() bool {
	return e.TotalCaloriesIn > 0 || e.TotalCaloriesOut > 0 || e.WaterGlasses > 0
}

// FoodLog maps to food_logs.
type FoodLog struct {
	ID        int        `json:"id"         db:"id"`
	UserID    int        `json:"user_id"    db:"user_id"`
	Date      DateOnly   `json:"date"       db:"date"`
	MealName  string     `json:"meal_name"  db:"meal_name"`
	MealType  *string    `json:"meal_type"  db:"meal_type"`
	Calories  int        `json:"calories"   db:"calories"`
	ProteinG  float64    `json:"protein_g"  db:"protein_g"`
	CarbsG    float64    `json:"carbs_g"    db:"carbs_g"`
	FatsG     float64    `json:"fats_g"     db:"fats_g"`
	IsHealthy bool       `json:"is_healthy" db:"is_healthy"`
	CreatedAt *time.Time `json:"created_at" db:"created_at"`
}

// GymLog maps to gym_logs.
type GymLog struct {
	ID             int        `json:"id"              db:"id"`
	UserID         int        `json:"user_id"         db:"user_id"`
	Date           DateOnly   `json:"date"            db:"date"`
	ExerciseName   string     `json:"exercise_name"   db:"exercise_name"`
	Sets           *int       `json:"sets"            db:"sets"`
	Reps           *int       `json:"reps"            db:"reps"`
	WeightKg       *float64   `json:"weight_kg"       db:"weight_kg"`
	CaloriesBurned int        `json:"calories_burned" db:"calories_burned"`
	WarmupDone     bool       `json:"warmup_done"     db:"warmup_done"`
	CooldownDone   bool       `json:"cooldown_done"   db:"cooldown_done"`
	MeditationDone bool       `json:"meditation_done" db:"meditation_done"`
	Notes          *string    `json:"notes"           db:"notes"`
	CreatedAt      *time.Time `json:"created_at"      db:"created_at"`
}

// StepsLog maps to steps_logs, one row per (user, date).
type StepsLog struct {
	ID     int      `json:"id"      db:"id"`
	UserID int      `json:"user_id" db:"user_id"`
	Date   DateOnly `json:"date"    db:"date"`
	Steps  int      `json:"steps"   db:"steps"`
}

// SkincareLog maps to skincare_logs, one row per (user, date, time of day).
type SkincareLog struct {
	ID              int      `json:"id"               db:"id"`
	UserID          int      `json:"user_id"          db:"user_id"`
	Date            DateOnly `json:"date"             db:"date"`
	TimeOfDay       string   `json:"time_of_day"      db:"time_of_day"`
	CleansingDone   bool     `json:"cleansing_done"   db:"cleansing_done"`
	SerumDone       bool     `json:"serum_done"       db:"serum_done"`
	MoisturizerDone bool     `json:"moisturizer_done" db:"moisturizer_done"`
	GuaShaDone      bool     `json:"gua_sha_done"     db:"gua_sha_done"`
}

// ValidSkincareTimes is the set of allowed SkincareLog.TimeOfDay values.
var ValidSkincareTimes = map[string]bool{
	"pre_gym":     true,
	"post_shower": true,
	"bedtime":     true,
}

// ValidMealTypes is the set of allowed FoodLog.MealType values.
var ValidMealTypes = map[string]bool{
	"breakfast": true,
	"lunch":     true,
	"dinner":    true,
	"snack":     true,
}
