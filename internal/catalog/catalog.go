// Vitalis - Lifestyle Recommendation and Scoring Engine
// Copyright 2026 Vitalis Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/vitalis-app/vitalis

// Package catalog loads the recipe and exercise item catalogs from CSV
// exports. Recipes carry nutrient columns in percent-of-daily-value units
// and are joined against a separate bayesian-average ratings file that
// seeds each item's prior score.
package catalog

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/vitalis-app/vitalis/internal/recommend"
)

// ErrMissingColumn indicates a CSV file without a required header column.
var ErrMissingColumn = errors.New("missing column")

// Recipe CSV column names, matching the dataset export.
const (
	colID       = "id"
	colName     = "name"
	colCalories = "calories"
	colFat      = "total fat (PDV)"
	colSatFat   = "saturated fat (PDV)"
	colSugar    = "sugar (PDV)"
	colSodium   = "sodium (PDV)"
	colProtein  = "protein (PDV)"
	colCarbs    = "carbohydrates (PDV)"
	colTags     = "tags"

	colBayesianAvg = "bayesian_avg"

	colExTitle     = "Title"
	colExType      = "Type"
	colExBodyPart  = "BodyPart"
	colExEquipment = "Equipment"
	colExLevel     = "Level"
	colExRating    = "Rating"
)

// Catalog holds the loaded item sets served to the recommendation engine.
type Catalog struct {
	Recipes   []recommend.Item
	Exercises []recommend.Item
}

// Loader reads catalog CSV files.
type Loader struct {
	logger zerolog.Logger
}

// NewLoader creates a catalog loader.
func NewLoader(logger zerolog.Logger) *Loader {
	return &Loader{logger: logger.With().Str("component", "catalog").Logger()}
}

// Load reads the recipe, recipe-ratings, and exercise files into a catalog.
// The ratings path may be empty, in which case recipe priors stay zero.
func (l *Loader) Load(recipesPath, ratingsPath, exercisesPath string) (*Catalog, error) {
	recipes, err := l.LoadRecipes(recipesPath, ratingsPath)
	if err != nil {
		return nil, fmt.Errorf("loading recipes: %w", err)
	}
	exercises, err := l.LoadExercises(exercisesPath)
	if err != nil {
		return nil, fmt.Errorf("loading exercises: %w", err)
	}
	return &Catalog{Recipes: recipes, Exercises: exercises}, nil
}

// LoadRecipes reads the recipe CSV and left-joins bayesian priors.
func (l *Loader) LoadRecipes(path, ratingsPath string) ([]recommend.Item, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	priors := map[int]float64{}
	if ratingsPath != "" {
		rf, err := os.Open(ratingsPath)
		if err != nil {
			return nil, fmt.Errorf("opening %s: %w", ratingsPath, err)
		}
		defer rf.Close()
		priors, err = ParsePriors(rf)
		if err != nil {
			return nil, fmt.Errorf("parsing %s: %w", ratingsPath, err)
		}
	}

	items, err := ParseRecipes(f, priors)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	l.logger.Info().
		Int("recipes", len(items)).
		Int("priors", len(priors)).
		Msg("Recipe catalog loaded")
	return items, nil
}

// LoadExercises reads the exercise CSV.
func (l *Loader) LoadExercises(path string) ([]recommend.Item, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	items, err := ParseExercises(f)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	l.logger.Info().Int("exercises", len(items)).Msg("Exercise catalog loaded")
	return items, nil
}

// ParseRecipes decodes recipe rows, attaching priors by item ID. Items
// without a prior keep a zero prior and still rank via the collaborative
// path once a model knows the user.
func ParseRecipes(r io.Reader, priors map[int]float64) ([]recommend.Item, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("reading header: %w", err)
	}
	idx, err := columnIndex(header,
		colID, colName, colCalories, colFat, colSatFat,
		colSugar, colSodium, colProtein, colCarbs, colTags)
	if err != nil {
		return nil, err
	}

	nutrientCols := map[recommend.Nutrient]string{
		recommend.NutrientCalories: colCalories,
		recommend.NutrientFat:      colFat,
		recommend.NutrientSatFat:   colSatFat,
		recommend.NutrientSugar:    colSugar,
		recommend.NutrientSodium:   colSodium,
		recommend.NutrientProtein:  colProtein,
		recommend.NutrientCarbs:    colCarbs,
	}

	var items []recommend.Item
	for line := 2; ; line++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}

		id, err := strconv.Atoi(strings.TrimSpace(record[idx[colID]]))
		if err != nil {
			return nil, fmt.Errorf("line %d: invalid id %q: %w", line, record[idx[colID]], err)
		}

		item := recommend.Item{
			ID:        id,
			Name:      record[idx[colName]],
			Kind:      recommend.KindRecipe,
			Tags:      record[idx[colTags]],
			Nutrients: make(map[recommend.Nutrient]float64, len(nutrientCols)),
			Prior:     priors[id],
		}
		for nutrient, col := range nutrientCols {
			v, err := strconv.ParseFloat(strings.TrimSpace(record[idx[col]]), 64)
			if err != nil {
				return nil, fmt.Errorf("line %d: invalid %s %q: %w", line, col, record[idx[col]], err)
			}
			item.Nutrients[nutrient] = v
		}
		items = append(items, item)
	}
	return items, nil
}

// ParsePriors decodes the bayesian-average ratings file into an ID-keyed map.
func ParsePriors(r io.Reader) (map[int]float64, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("reading header: %w", err)
	}
	idx, err := columnIndex(header, colID, colBayesianAvg)
	if err != nil {
		return nil, err
	}

	priors := make(map[int]float64)
	for line := 2; ; line++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		id, err := strconv.Atoi(strings.TrimSpace(record[idx[colID]]))
		if err != nil {
			return nil, fmt.Errorf("line %d: invalid id %q: %w", line, record[idx[colID]], err)
		}
		avg, err := strconv.ParseFloat(strings.TrimSpace(record[idx[colBayesianAvg]]), 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: invalid bayesian_avg %q: %w", line, record[idx[colBayesianAvg]], err)
		}
		priors[id] = avg
	}
	return priors, nil
}

// ParseExercises decodes exercise rows. The Rating column becomes the prior.
func ParseExercises(r io.Reader) ([]recommend.Item, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("reading header: %w", err)
	}
	idx, err := columnIndex(header,
		colID, colExTitle, colExType, colExBodyPart, colExEquipment, colExLevel, colExRating)
	if err != nil {
		return nil, err
	}

	var items []recommend.Item
	for line := 2; ; line++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}

		id, err := strconv.Atoi(strings.TrimSpace(record[idx[colID]]))
		if err != nil {
			return nil, fmt.Errorf("line %d: invalid id %q: %w", line, record[idx[colID]], err)
		}
		rating := 0.0
		if raw := strings.TrimSpace(record[idx[colExRating]]); raw != "" {
			rating, err = strconv.ParseFloat(raw, 64)
			if err != nil {
				return nil, fmt.Errorf("line %d: invalid Rating %q: %w", line, raw, err)
			}
		}

		items = append(items, recommend.Item{
			ID:           id,
			Name:         record[idx[colExTitle]],
			Kind:         recommend.KindExercise,
			ExerciseType: record[idx[colExType]],
			BodyPart:     record[idx[colExBodyPart]],
			Equipment:    record[idx[colExEquipment]],
			Difficulty:   record[idx[colExLevel]],
			Prior:        rating,
		})
	}
	return items, nil
}

func columnIndex(header []string, required ...string) (map[string]int, error) {
	idx := make(map[string]int, len(header))
	for i, col := range header {
		idx[strings.TrimSpace(col)] = i
	}
	for _, col := range required {
		if _, ok := idx[col]; !ok {
			return nil, fmt.Errorf("%w: %q", ErrMissingColumn, col)
		}
	}
	return idx, nil
}
