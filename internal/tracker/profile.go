package tracker

import "strings"

// ValidGenders are the genders the BMR formula distinguishes.
var ValidGenders = map[string]bool{
	"male":   true,
	"female": true,
}

// ProfilePatch carries the profile fields a client sent. Nil fields are left
// unchanged.
type ProfilePatch struct {
	Name      *string  `json:"name"`
	HeightCM  *float64 `json:"height_cm"`
	Age       *int     `json:"age"`
	Gender    *string  `json:"gender"`
	StepsGoal *int     `json:"steps_goal"`
}

// Empty reports whether no field was provided.
func (p ProfilePatch) Empty() bool {
	return p.Name == nil && p.HeightCM == nil && p.Age == nil && p.Gender == nil && p.StepsGoal == nil
}

// Validate normalizes gender and checks ranges.
func (p *ProfilePatch) Validate() error {
	var errs []FieldError
	if p.HeightCM != nil && (*p.HeightCM <= 0 || *p.HeightCM > 300) {
		errs = append(errs, FieldError{Field: "height_cm", Message: "must be between 0 and 300"})
	}
	if p.Age != nil && (*p.Age <= 0 || *p.Age > 130) {
		errs = append(errs, FieldError{Field: "age", Message: "must be between 1 and 130"})
	}
	if p.Gender != nil {
		g := strings.ToLower(strings.TrimSpace(*p.Gender))
		p.Gender = &g
		if !ValidGenders[g] {
			errs = append(errs, FieldError{Field: "gender", Message: "must be one of: male, female"})
		}
	}
	if p.StepsGoal != nil && (*p.StepsGoal <= 0 || *p.StepsGoal > 200000) {
		errs = append(errs, FieldError{Field: "steps_goal", Message: "must be between 1 and 200000"})
	}
	if p.Name != nil && len(*p.Name) > 100 {
		errs = append(errs, FieldError{Field: "name", Message: "must be at most 100 characters"})
	}
	return collectErrors(errs)
}
