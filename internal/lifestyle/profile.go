// Vitalis - Lifestyle Recommendation and Scoring Engine
// Copyright 2026 Vitalis Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/vitalis-app/vitalis

package lifestyle

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Sentinel errors returned by the scoring pipeline.
var (
	// ErrInvalidProfile indicates an unmapped activity level, weight goal,
	// or gender label, or an unusable biometric value.
	ErrInvalidProfile = errors.New("invalid profile")

	// ErrInsufficientData indicates an empty fitness-sample series.
	ErrInsufficientData = errors.New("insufficient data")
)

// Unit conversion factors for profiles stored in imperial units.
const (
	KilogramsPerPound  = 0.45359237
	CentimetersPerInch = 2.54
)

// PoundsToKilograms converts a weight in pounds to kilograms.
func PoundsToKilograms(lb float64) float64 { return lb * KilogramsPerPound }

// InchesToCentimeters converts a height in inches to centimeters.
func InchesToCentimeters(in float64) float64 { return in * CentimetersPerInch }

// Gender selects the BMR formula variant.
type Gender int

const (
	// GenderFemale uses the female-coded BMR constants.
	GenderFemale Gender = iota
	// GenderMale uses the male-coded BMR constants.
	GenderMale
)

// String returns the single-letter wire label.
func (g Gender) String() string {
	if g == GenderMale {
		return "M"
	}
	return "F"
}

// ParseGender parses an 'M'/'F' label, case-insensitively.
func ParseGender(s string) (Gender, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "M":
		return GenderMale, nil
	case "F":
		return GenderFemale, nil
	default:
		return GenderFemale, fmt.Errorf("%w: unknown gender %q", ErrInvalidProfile, s)
	}
}

// ActivityLevel is the fixed five-value activity scale.
type ActivityLevel int

const (
	// Sedentary is little or no exercise.
	Sedentary ActivityLevel = iota
	// LightlyActive is exercise 1-3 days/week.
	LightlyActive
	// ModeratelyActive is exercise 3-5 days/week.
	ModeratelyActive
	// VeryActive is exercise 6-7 days/week.
	VeryActive
	// ExtraActive is hard daily exercise or a physical job.
	ExtraActive
)

// activityCoefficients is the total mapping from activity level to the
// multiplier scaling BMR to daily energy expenditure. The same table serves
// current and goal computations.
var activityCoefficients = map[ActivityLevel]float64{
	Sedentary:        1.2,
	LightlyActive:    1.375,
	ModeratelyActive: 1.55,
	VeryActive:       1.725,
	ExtraActive:      1.9,
}

// String returns the wire label for the activity level.
func (a ActivityLevel) String() string {
	switch a {
	case Sedentary:
		return "sedentary"
	case LightlyActive:
		return "lightly active"
	case ModeratelyActive:
		return "moderately active"
	case VeryActive:
		return "very active"
	case ExtraActive:
		return "extra active"
	default:
		return "unknown"
	}
}

// Coefficient returns the activity multiplier, or ErrInvalidProfile for a
// value outside the scale.
func (a ActivityLevel) Coefficient() (float64, error) {
	c, ok := activityCoefficients[a]
	if !ok {
		return 0, fmt.Errorf("%w: unmapped activity level %d", ErrInvalidProfile, a)
	}
	return c, nil
}

// ParseActivityLevel parses an activity label. "active" is accepted as an
// alias for "very active" and "very active" alone maps to the top of the
// 1.725 band; the historical account API used both spellings.
func ParseActivityLevel(s string) (ActivityLevel, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "sedentary":
		return Sedentary, nil
	case "lightly active":
		return LightlyActive, nil
	case "moderately active":
		return ModeratelyActive, nil
	case "active", "very active":
		return VeryActive, nil
	case "extra active":
		return ExtraActive, nil
	default:
		return Sedentary, fmt.Errorf("%w: unknown activity level %q", ErrInvalidProfile, s)
	}
}

// WeightGoal is the user's weight objective.
type WeightGoal int

const (
	// Maintain keeps current weight.
	Maintain WeightGoal = iota
	// Lose reduces weight.
	Lose
	// Gain increases weight.
	Gain
)

// String returns the wire label for the weight goal.
func (w WeightGoal) String() string {
	switch w {
	case Lose:
		return "lose"
	case Gain:
		return "gain"
	case Maintain:
		return "maintain"
	default:
		return "unknown"
	}
}

// ParseWeightGoal parses a weight goal label.
func ParseWeightGoal(s string) (WeightGoal, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "lose":
		return Lose, nil
	case "gain":
		return Gain, nil
	case "maintain":
		return Maintain, nil
	default:
		return Maintain, fmt.Errorf("%w: unknown weight goal %q", ErrInvalidProfile, s)
	}
}

// UserProfile is the demographic and goal record supplied by the account
// system. Read-only to this package; weight in kilograms, height in
// centimeters (convert imperial input before constructing).
type UserProfile struct {
	Age      int     `json:"age"`
	HeightCM float64 `json:"height_cm"`
	WeightKG float64 `json:"weight_kg"`
	Gender   Gender  `json:"gender"`

	CurrentActivity ActivityLevel `json:"current_level_of_activity"`
	GoalActivity    ActivityLevel `json:"goal_level_of_activity"`
	WeightGoal      WeightGoal    `json:"weight_goal"`

	CurrentDailyCalories float64 `json:"current_daily_calories"`
	GoalDailyCalories    float64 `json:"goal_daily_calories"`
}

// Validate checks the biometric fields needed by the scoring formulas.
func (p UserProfile) Validate() error {
	if p.Age <= 0 {
		return fmt.Errorf("%w: age must be positive, got %d", ErrInvalidProfile, p.Age)
	}
	if p.HeightCM <= 0 {
		return fmt.Errorf("%w: height must be positive, got %g", ErrInvalidProfile, p.HeightCM)
	}
	if p.WeightKG <= 0 {
		return fmt.Errorf("%w: weight must be positive, got %g", ErrInvalidProfile, p.WeightKG)
	}
	return nil
}

// FitnessSample is one dated tracker record.
type FitnessSample struct {
	Date             time.Time `json:"date"`
	Steps            float64   `json:"steps"`
	SleepHours       float64   `json:"sleep_hours"`
	CaloriesBurned   float64   `json:"calories_burned"`
	RestingHeartRate float64   `json:"resting_heart_rate,omitempty"`
}
