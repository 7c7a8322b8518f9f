// Vitalis - Lifestyle Recommendation and Scoring Engine
// Copyright 2026 Vitalis Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/vitalis-app/vitalis

package lifestyle

import (
	"fmt"
	"math"
)

// Diet plan tuning constants. A 350 kcal daily shift is roughly 0.7 lb of
// body weight per week at 500 kcal/lb; intake never drops below 1500 kcal.
const (
	calorieShift    = 350.0
	calorieFloor    = 1500.0
	caloriesPerLbWk = 500.0
)

// PlanOption is one actionable diet recommendation.
type PlanOption struct {
	Comment           string        `json:"comment"`
	GoalDailyCalories float64       `json:"goal_daily_calories"`
	GoalActivity      ActivityLevel `json:"goal_level_of_activity"`
	// WeeklyWeightLbs is the estimated weekly weight change in pounds;
	// positive toward the stated goal.
	WeeklyWeightLbs float64 `json:"weekly_weight_lbs"`
}

// DietPlan builds weight-goal-driven recommendation options for a profile:
// an activity-ladder option (move one level up or down) where the ladder
// allows it, and a calorie-shift option of 350 kcal floored at 1500.
func DietPlan(p UserProfile) ([]PlanOption, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	coeff, err := p.CurrentActivity.Coefficient()
	if err != nil {
		return nil, err
	}

	bmr := BMR(p.Gender, p.WeightKG, p.HeightCM, p.Age)
	current := bmr * coeff

	switch p.WeightGoal {
	case Lose:
		return losePlan(p, bmr, current), nil
	case Gain:
		return gainPlan(p, bmr, current), nil
	case Maintain:
		return []PlanOption{{
			Comment: fmt.Sprintf("Eat %.0f calories, and maintain a %s lifestyle to maintain weight.",
				p.CurrentDailyCalories, p.CurrentActivity),
			GoalDailyCalories: p.CurrentDailyCalories,
			GoalActivity:      p.CurrentActivity,
		}}, nil
	default:
		return nil, fmt.Errorf("%w: unmapped weight goal %d", ErrInvalidProfile, p.WeightGoal)
	}
}

func losePlan(p UserProfile, bmr, current float64) []PlanOption {
	var options []PlanOption

	if p.CurrentActivity < ExtraActive {
		next := p.CurrentActivity + 1
		c, _ := next.Coefficient()
		delta := weeklyLbs(bmr*c - current)
		options = append(options, PlanOption{
			Comment: fmt.Sprintf("Increase level of activity to %s to lose %.1f lbs per week.",
				next, delta),
			GoalDailyCalories: p.CurrentDailyCalories,
			GoalActivity:      next,
			WeeklyWeightLbs:   delta,
		})
	}

	target := math.Max(current-calorieShift, calorieFloor)
	delta := weeklyLbs(current - target)
	options = append(options, PlanOption{
		Comment: fmt.Sprintf("Reduce calories to %.0f to lose %.1f lbs per week.",
			target, delta),
		GoalDailyCalories: target,
		GoalActivity:      p.CurrentActivity,
		WeeklyWeightLbs:   delta,
	})
	return options
}

func gainPlan(p UserProfile, bmr, current float64) []PlanOption {
	var options []PlanOption

	if p.CurrentActivity > Sedentary {
		prev := p.CurrentActivity - 1
		c, _ := prev.Coefficient()
		delta := weeklyLbs(current - bmr*c)
		options = append(options, PlanOption{
			Comment: fmt.Sprintf("Decrease level of activity to %s to gain %.1f lbs per week.",
				prev, delta),
			GoalDailyCalories: p.CurrentDailyCalories,
			GoalActivity:      prev,
			WeeklyWeightLbs:   delta,
		})
	}

	target := math.Max(current+calorieShift, calorieFloor)
	delta := weeklyLbs(target - current)
	options = append(options, PlanOption{
		Comment: fmt.Sprintf("Increase calories to %.0f to gain %.1f lbs per week.",
			target, delta),
		GoalDailyCalories: target,
		GoalActivity:      p.CurrentActivity,
		WeeklyWeightLbs:   delta,
	})
	return options
}

func weeklyLbs(energyDelta float64) float64 {
	return math.Round(math.Abs(energyDelta)/caloriesPerLbWk*10) / 10
}
