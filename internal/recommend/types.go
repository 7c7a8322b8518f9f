// Vitalis - Lifestyle Recommendation and Scoring Engine
// Copyright 2026 Vitalis Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/vitalis-app/vitalis

package recommend

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"
)

// ItemKind distinguishes the two catalog types.
type ItemKind int

const (
	// KindRecipe is a recipe catalog item.
	KindRecipe ItemKind = iota
	// KindExercise is an exercise catalog item.
	KindExercise
)

// String returns a human-readable name for the item kind.
func (k ItemKind) String() string {
	switch k {
	case KindRecipe:
		return "recipe"
	case KindExercise:
		return "exercise"
	default:
		return "unknown"
	}
}

// Nutrient identifies a numeric item attribute subject to range filtering.
type Nutrient int

const (
	// NutrientCalories is the absolute calorie count of an item.
	NutrientCalories Nutrient = iota
	// NutrientFat is total fat as percent daily value.
	NutrientFat
	// NutrientSatFat is saturated fat as percent daily value.
	NutrientSatFat
	// NutrientSugar is sugar as percent daily value.
	NutrientSugar
	// NutrientSodium is sodium as percent daily value.
	NutrientSodium
	// NutrientProtein is protein as percent daily value.
	NutrientProtein
	// NutrientCarbs is carbohydrates as percent daily value.
	NutrientCarbs
)

// String returns the catalog column name for the nutrient.
func (n Nutrient) String() string {
	switch n {
	case NutrientCalories:
		return "calories"
	case NutrientFat:
		return "fat"
	case NutrientSatFat:
		return "sat_fat"
	case NutrientSugar:
		return "sugar"
	case NutrientSodium:
		return "sodium"
	case NutrientProtein:
		return "protein"
	case NutrientCarbs:
		return "carbs"
	default:
		return "unknown"
	}
}

// PDVNutrients lists the nutrients expressed as percent daily value,
// i.e. everything subject to the qualitative high/med/low bands.
var PDVNutrients = []Nutrient{
	NutrientFat, NutrientSatFat, NutrientSugar,
	NutrientSodium, NutrientProtein, NutrientCarbs,
}

// Level is a closed qualitative constraint label for a PDV nutrient.
type Level int

const (
	// LevelUnset means the nutrient is unconstrained.
	LevelUnset Level = iota
	// LevelLow selects items in the band [0, 25m].
	LevelLow
	// LevelMed selects items in the band [10m, 40m].
	LevelMed
	// LevelHigh selects items in the band [40m, +inf).
	LevelHigh
)

// String returns the wire label for the level.
func (l Level) String() string {
	switch l {
	case LevelUnset:
		return ""
	case LevelLow:
		return "low"
	case LevelMed:
		return "med"
	case LevelHigh:
		return "high"
	default:
		return "unknown"
	}
}

// ParseLevel parses a qualitative nutrient label. The empty string parses to
// LevelUnset. Any other unrecognized label is an InvalidConstraint error,
// never a silent default.
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return LevelUnset, nil
	case "low":
		return LevelLow, nil
	case "med":
		return LevelMed, nil
	case "high":
		return LevelHigh, nil
	default:
		return LevelUnset, fmt.Errorf("%w: unknown nutrient label %q", ErrInvalidConstraint, s)
	}
}

// Item is a single catalog entry, recipe or exercise.
//
// IDs are unique and stable within a catalog snapshot. Nutrients may be
// missing, in which case the item is unconstrained on that attribute.
type Item struct {
	// ID is the stable catalog identifier.
	ID int `json:"id"`

	// Name is the display name of the item.
	Name string `json:"name"`

	// Kind is the catalog type (recipe or exercise).
	Kind ItemKind `json:"kind"`

	// Nutrients holds the numeric attributes subject to range filtering.
	// Calories are absolute; the rest are percent daily value.
	Nutrients map[Nutrient]float64 `json:"nutrients,omitempty"`

	// Tags is the free-text tag set as stored in the catalog.
	Tags string `json:"tags,omitempty"`

	// Exercise attributes, exact-match filtered when constrained.
	ExerciseType string `json:"exercise_type,omitempty"`
	BodyPart     string `json:"body_part,omitempty"`
	Equipment    string `json:"equipment,omitempty"`
	Difficulty   string `json:"difficulty,omitempty"`

	// Prior is the item's popularity score independent of any user
	// (bayesian average for recipes, mean rating for exercises).
	Prior float64 `json:"prior"`
}

// Rating is a single explicit user-item rating in [0, 5].
//
// At most one rating exists per (user, item) pair; a new rating for an
// existing pair replaces the previous one. The storage layer owns that
// invariant, this package assumes it when interpreting rating counts.
type Rating struct {
	UserID int `json:"user_id"`
	ItemID int `json:"item_id"`
	Score  int `json:"rating"`
}

// ScoredItem is an item with its final ranking score.
type ScoredItem struct {
	// Item is the catalog entry.
	Item Item `json:"item"`

	// Score is the ranking score: the blended prediction when the
	// collaborative model contributed, otherwise the item's prior.
	Score float64 `json:"score"`

	// Collaborative reports whether the model contributed to Score.
	Collaborative bool `json:"collaborative,omitempty"`
}

// Constraints is the per-request content filter. The zero value is fully
// unconstrained. Constraints are built per request and never persisted.
type Constraints struct {
	// CalorieTarget, when non-nil, constrains calories to the band
	// [min(T-100, 0.9T), max(T+100, 1.1T)].
	CalorieTarget *float64 `json:"calorie_target,omitempty"`

	// DailyCalories is the daily intake used to derive the PDV band
	// multiplier m = 2000 / DailyCalories. Must be positive whenever a
	// nutrient level is set; callers default it to 2000.
	DailyCalories float64 `json:"daily_calories,omitempty"`

	// Nutrients maps PDV nutrients to qualitative band labels.
	Nutrients map[Nutrient]Level `json:"nutrients,omitempty"`

	// Tags must each appear as a case-insensitive substring of the item's
	// tag text. Empty means unconstrained.
	Tags []string `json:"tags,omitempty"`

	// Exercise attribute equality constraints; empty means unconstrained.
	ExerciseType string `json:"exercise_type,omitempty"`
	BodyPart     string `json:"body_part,omitempty"`
	Equipment    string `json:"equipment,omitempty"`
	Difficulty   string `json:"difficulty,omitempty"`
}

// hasNutrientConstraint reports whether any PDV nutrient level is set.
func (c Constraints) hasNutrientConstraint() bool {
	for _, l := range c.Nutrients {
		if l != LevelUnset {
			return true
		}
	}
	return false
}

// WithTag returns a copy of the constraints with an extra required tag.
func (c Constraints) WithTag(tag string) Constraints {
	tags := make([]string, 0, len(c.Tags)+1)
	tags = append(tags, c.Tags...)
	tags = append(tags, tag)
	c.Tags = tags
	return c
}

// Validate checks the constraints for errors.
func (c Constraints) Validate() error {
	if c.hasNutrientConstraint() && c.DailyCalories <= 0 {
		return fmt.Errorf("%w: daily calories must be positive, got %g",
			ErrInvalidProfile, c.DailyCalories)
	}
	for n, l := range c.Nutrients {
		if n == NutrientCalories {
			return fmt.Errorf("%w: calories take a numeric target, not a qualitative label",
				ErrInvalidConstraint)
		}
		if l < LevelUnset || l > LevelHigh {
			return fmt.Errorf("%w: unknown level %d for %s", ErrInvalidConstraint, l, n)
		}
	}
	return nil
}

// Band is an inclusive numeric range [Low, High].
type Band struct {
	Low  float64
	High float64
}

// Unbounded is the fully unconstrained band [0, +inf).
func Unbounded() Band {
	return Band{Low: 0, High: math.Inf(1)}
}

// Contains reports whether v lies within the band, inclusive.
func (b Band) Contains(v float64) bool {
	return b.Low <= v && v <= b.High
}

// CollaborativeModel is a trained estimator over the rating set.
//
// Implementations must be safe for concurrent prediction. The engine never
// mutates a model after installation; retraining builds a replacement.
type CollaborativeModel interface {
	// Predict returns the estimated rating of itemID by userID, typically
	// in the rating scale but not hard-clamped.
	Predict(userID, itemID int) (float64, error)

	// KnowsUser reports whether the user appeared in the training corpus.
	KnowsUser(userID int) bool
}

// TrainableModel is a collaborative model that can be fit from ratings.
type TrainableModel interface {
	CollaborativeModel

	// Train fits the model on the full rating set.
	Train(ctx context.Context, ratings []Rating) error

	// Version returns the model version, incremented on each train.
	Version() int

	// LastTrainedAt returns when the model was last trained.
	LastTrainedAt() time.Time
}

// DataProvider supplies training data to the engine. Implemented by the
// storage layer.
type DataProvider interface {
	// GetRatings returns the full interaction set, one row per
	// (user, item) pair.
	GetRatings(ctx context.Context) ([]Rating, error)
}

// RerunFunc re-executes the filter+rank pipeline with one extra required
// tag. Used by AugmentWithContext.
type RerunFunc func(tag string) []ScoredItem
