// Vitalis - Lifestyle Recommendation and Scoring Engine
// Copyright 2026 Vitalis Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/vitalis-app/vitalis

package recommend

import (
	"fmt"
	"strings"
)

// PDV band boundaries, in percent of the 2000 kcal reference intake.
const (
	pdvHigh = 40.0
	pdvMed  = 25.0
	pdvLow  = 10.0
)

// CalorieBand derives the calorie band for a target value T:
// [min(T-100, 0.9T), max(T+100, 1.1T)]. A nil target is unconstrained.
func CalorieBand(target *float64) Band {
	if target == nil {
		return Unbounded()
	}
	t := *target
	low := t - 100
	if 0.9*t < low {
		low = 0.9 * t
	}
	high := t + 100
	if 1.1*t > high {
		high = 1.1 * t
	}
	return Band{Low: low, High: high}
}

// BandForLevel derives the PDV band for a qualitative label under the daily
// calorie multiplier m = 2000 / daily.
func BandForLevel(l Level, m float64) Band {
	switch l {
	case LevelHigh:
		return Band{Low: pdvHigh * m, High: Unbounded().High}
	case LevelMed:
		return Band{Low: pdvLow * m, High: pdvHigh * m}
	case LevelLow:
		return Band{Low: 0, High: pdvMed * m}
	default:
		return Unbounded()
	}
}

// Filter evaluates the constraints over the catalog and returns the
// candidate set in catalog order. Only constraints actually supplied are
// applied; with no constraints the full catalog is returned.
func Filter(catalog []Item, c Constraints) ([]Item, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	bands, err := nutrientBands(c)
	if err != nil {
		return nil, err
	}

	out := make([]Item, 0, len(catalog))
	for i := range catalog {
		if matches(&catalog[i], c, bands) {
			out = append(out, catalog[i])
		}
	}
	return out, nil
}

// nutrientBands precomputes the numeric band for every constrained
// attribute, calories included.
func nutrientBands(c Constraints) (map[Nutrient]Band, error) {
	bands := make(map[Nutrient]Band, len(c.Nutrients)+1)
	bands[NutrientCalories] = CalorieBand(c.CalorieTarget)

	if !c.hasNutrientConstraint() {
		return bands, nil
	}

	m := 2000.0 / c.DailyCalories
	for n, l := range c.Nutrients {
		if l == LevelUnset {
			continue
		}
		if l < LevelLow || l > LevelHigh {
			return nil, fmt.Errorf("%w: unknown level %d for %s", ErrInvalidConstraint, l, n)
		}
		bands[n] = BandForLevel(l, m)
	}
	return bands, nil
}

// matches applies the conjunction of all supplied predicates to one item.
func matches(item *Item, c Constraints, bands map[Nutrient]Band) bool {
	for n, band := range bands {
		v, ok := item.Nutrients[n]
		if !ok {
			// Missing attribute: unconstrained.
			continue
		}
		if !band.Contains(v) {
			return false
		}
	}

	for _, tag := range c.Tags {
		if !strings.Contains(strings.ToLower(item.Tags), strings.ToLower(tag)) {
			return false
		}
	}

	if c.ExerciseType != "" && item.ExerciseType != c.ExerciseType {
		return false
	}
	if c.BodyPart != "" && item.BodyPart != c.BodyPart {
		return false
	}
	if c.Equipment != "" && item.Equipment != c.Equipment {
		return false
	}
	if c.Difficulty != "" && item.Difficulty != c.Difficulty {
		return false
	}

	return true
}
