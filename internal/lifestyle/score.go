// Vitalis - Lifestyle Recommendation and Scoring Engine
// Copyright 2026 Vitalis Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/vitalis-app/vitalis

package lifestyle

import (
	"fmt"
	"math"
)

// DietScore is the placeholder diet component until meal logging lands.
const DietScore = 5.0

// Scores is the computed lifestyle breakdown returned to clients.
type Scores struct {
	Wellness  float64 `json:"wellness_score"`
	Fitness   float64 `json:"fitness_score"`
	Diet      float64 `json:"diet_score"`
	Lifestyle float64 `json:"lifestyle_score"`
}

// BMR computes the Harris-Benedict basal metabolic rate in kcal/day.
// Weight in kilograms, height in centimeters.
func BMR(gender Gender, weightKG, heightCM float64, age int) float64 {
	if gender == GenderMale {
		return 66.473 + 13.7516*weightKG + 5.0033*heightCM - 6.755*float64(age)
	}
	return 655.0955 + 9.5634*weightKG + 1.8496*heightCM - 4.6756*float64(age)
}

// CurrentEnergy is the profile's daily energy expenditure at the current
// activity level.
func CurrentEnergy(p UserProfile) (float64, error) {
	if err := p.Validate(); err != nil {
		return 0, err
	}
	c, err := p.CurrentActivity.Coefficient()
	if err != nil {
		return 0, err
	}
	return BMR(p.Gender, p.WeightKG, p.HeightCM, p.Age) * c, nil
}

// GoalEnergy is the daily energy expenditure the profile is aiming for:
// the same biometrics scaled by the goal activity coefficient. Weight-goal
// calorie shifts are handled by the diet planner, not here, so a profile
// whose goal activity equals its current activity scores a full wellness 5.
func GoalEnergy(p UserProfile) (float64, error) {
	if err := p.Validate(); err != nil {
		return 0, err
	}
	c, err := p.GoalActivity.Coefficient()
	if err != nil {
		return 0, err
	}
	return BMR(p.Gender, p.WeightKG, p.HeightCM, p.Age) * c, nil
}

// Wellness scores how close the current energy expenditure is to the goal:
// 5 − 5·|goal − current|/goal, rounded to two decimals. Not clamped; a
// current expenditure more than double the goal goes negative, which the
// API surfaces as-is.
func Wellness(p UserProfile) (float64, error) {
	current, err := CurrentEnergy(p)
	if err != nil {
		return 0, err
	}
	goal, err := GoalEnergy(p)
	if err != nil {
		return 0, err
	}
	return round2(5 - math.Abs(goal-current)/goal*5), nil
}

// Fitness scores tracker data against the goal energy expenditure. Each
// component is scaled to a 0-5 band: sleep against an 8-hour night, burned
// calories against the goal, steps against 5000/day capped at 5.
func Fitness(samples []FitnessSample, goalEnergy float64) (float64, error) {
	if len(samples) == 0 {
		return 0, fmt.Errorf("%w: no fitness samples", ErrInsufficientData)
	}
	if goalEnergy <= 0 {
		return 0, fmt.Errorf("%w: goal energy must be positive, got %g", ErrInvalidProfile, goalEnergy)
	}

	var sleep, calories, steps float64
	for _, s := range samples {
		sleep += s.SleepHours
		calories += s.CaloriesBurned
		steps += s.Steps
	}
	n := float64(len(samples))
	sleep /= n
	calories /= n
	steps /= n

	sleepScore := sleep * 5 / 8
	calorieScore := 5 - calories/goalEnergy*5
	stepScore := math.Min(5, steps/1000)

	return round2((sleepScore + calorieScore + stepScore) / 3), nil
}

// Composite computes the full lifestyle breakdown for a profile and its
// tracker samples. Returns ErrInsufficientData when no samples exist.
func Composite(p UserProfile, samples []FitnessSample) (Scores, error) {
	wellness, err := Wellness(p)
	if err != nil {
		return Scores{}, err
	}
	goal, err := GoalEnergy(p)
	if err != nil {
		return Scores{}, err
	}
	fitness, err := Fitness(samples, goal)
	if err != nil {
		return Scores{}, err
	}
	return Scores{
		Wellness:  wellness,
		Fitness:   fitness,
		Diet:      DietScore,
		Lifestyle: round2((wellness + fitness + DietScore) / 3),
	}, nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
