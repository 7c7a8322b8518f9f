// Vitalis - Lifestyle Recommendation and Scoring Engine
// Copyright 2026 Vitalis Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/vitalis-app/vitalis

package models

// UserRequest is the body for creating or updating an account. Height is
// in inches and weight in pounds, matching the mobile client; the server
// converts to metric before storing.
type UserRequest struct {
	Username             string  `json:"username" validate:"required,min=1,max=64"`
	Age                  int     `json:"age" validate:"required,gt=0,lt=130"`
	HeightInches         float64 `json:"height" validate:"required,gt=0"`
	WeightPounds         float64 `json:"weight" validate:"required,gt=0"`
	Gender               string  `json:"gender" validate:"required,oneof=M F m f"`
	CurrentActivity      string  `json:"current_level_of_activity" validate:"required"`
	GoalActivity         string  `json:"goal_level_of_activity" validate:"required"`
	WeightGoal           string  `json:"weight_goal" validate:"required,oneof=lose gain maintain"`
	CurrentDailyCalories float64 `json:"current_daily_calories" validate:"omitempty,gt=0"`
	GoalDailyCalories    float64 `json:"goal_daily_calories" validate:"omitempty,gt=0"`
}

// RatingRequest is the body for recording an item rating.
type RatingRequest struct {
	ItemID int `json:"item_id" validate:"required,gt=0"`
	Score  int `json:"rating" validate:"gte=0,lte=5"`
}

// RecipeQuery carries the recipe recommendation constraints. Nutrient
// levels are "low", "med", or "high"; absent means unconstrained.
type RecipeQuery struct {
	Username string   `json:"username" validate:"required"`
	Calories *float64 `json:"calories" validate:"omitempty,gt=0"`
	Fat      string   `json:"fat" validate:"omitempty,oneof=low med high"`
	SatFat   string   `json:"sat_fat" validate:"omitempty,oneof=low med high"`
	Sugar    string   `json:"sugar" validate:"omitempty,oneof=low med high"`
	Sodium   string   `json:"sodium" validate:"omitempty,oneof=low med high"`
	Protein  string   `json:"protein" validate:"omitempty,oneof=low med high"`
	Carbs    string   `json:"carbs" validate:"omitempty,oneof=low med high"`
	Tags     []string `json:"tags" validate:"omitempty,dive,min=1"`
	K        int      `json:"k" validate:"omitempty,gt=0"`
}

// ExerciseQuery carries the exercise recommendation constraints. All
// attribute filters are exact matches; absent means unconstrained.
type ExerciseQuery struct {
	Username  string `json:"username" validate:"required"`
	Type      string `json:"type" validate:"omitempty"`
	BodyPart  string `json:"body_part" validate:"omitempty"`
	Equipment string `json:"equipment" validate:"omitempty"`
	Level     string `json:"level" validate:"omitempty"`
	K         int    `json:"k" validate:"omitempty,gt=0"`
}
