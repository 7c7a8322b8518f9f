// Vitalis - Lifestyle Recommendation and Scoring Engine
// Copyright 2026 Vitalis Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/vitalis-app/vitalis

package recommend

import (
	"errors"
	"math"
	"testing"
)

func floatPtr(v float64) *float64 { return &v }

func recipe(id int, calories float64, nutrients map[Nutrient]float64, tags string) Item {
	all := map[Nutrient]float64{NutrientCalories: calories}
	for n, v := range nutrients {
		all[n] = v
	}
	return Item{ID: id, Kind: KindRecipe, Nutrients: all, Tags: tags}
}

func itemIDs(items []Item) []int {
	ids := make([]int, len(items))
	for i, it := range items {
		ids[i] = it.ID
	}
	return ids
}

func TestCalorieBand(t *testing.T) {
	tests := []struct {
		name      string
		target    *float64
		low, high float64
	}{
		{"nil target unbounded", nil, 0, math.Inf(1)},
		{"target 500 absolute margin wins low", floatPtr(500), 400, 600},
		{"target 2000 relative margin wins", floatPtr(2000), 1800, 2200},
		{"target exactly 1000", floatPtr(1000), 900, 1100},
		{"small target widens below", floatPtr(50), -50, 150},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			band := CalorieBand(tt.target)
			if band.Low != tt.low || band.High != tt.high {
				t.Errorf("CalorieBand = [%g, %g], want [%g, %g]",
					band.Low, band.High, tt.low, tt.high)
			}
		})
	}
}

func TestBandForLevel(t *testing.T) {
	// Multiplier 1.0 is the 2000 kcal reference intake.
	tests := []struct {
		name      string
		level     Level
		m         float64
		low, high float64
	}{
		{"high at reference", LevelHigh, 1.0, 40, math.Inf(1)},
		{"med at reference", LevelMed, 1.0, 10, 40},
		{"low at reference", LevelLow, 1.0, 0, 25},
		{"high scaled for 1000 kcal diet", LevelHigh, 2.0, 80, math.Inf(1)},
		{"low scaled for 4000 kcal diet", LevelLow, 0.5, 0, 12.5},
		{"unset unbounded", LevelUnset, 1.0, 0, math.Inf(1)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			band := BandForLevel(tt.level, tt.m)
			if band.Low != tt.low || band.High != tt.high {
				t.Errorf("BandForLevel(%v, %g) = [%g, %g], want [%g, %g]",
					tt.level, tt.m, band.Low, band.High, tt.low, tt.high)
			}
		})
	}
}

func TestFilterCalorieTarget(t *testing.T) {
	catalog := []Item{
		recipe(1, 300, nil, ""),
		recipe(2, 500, nil, ""),
		recipe(3, 900, nil, ""),
	}

	got, err := Filter(catalog, Constraints{CalorieTarget: floatPtr(500)})
	if err != nil {
		t.Fatalf("Filter: %v", err)
	}
	if len(got) != 1 || got[0].ID != 2 {
		t.Errorf("Filter returned %v, want only item 2", itemIDs(got))
	}
}

func TestFilterNutrientLevels(t *testing.T) {
	catalog := []Item{
		recipe(1, 400, map[Nutrient]float64{NutrientFat: 35}, ""),
		recipe(2, 400, map[Nutrient]float64{NutrientFat: 41}, ""),
		recipe(3, 400, map[Nutrient]float64{NutrientFat: 8}, ""),
	}

	tests := []struct {
		name  string
		level Level
		want  []int
	}{
		{"high fat needs >= 40", LevelHigh, []int{2}},
		{"med fat is 10 to 40", LevelMed, []int{1}},
		{"low fat is at most 25", LevelLow, []int{3}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Constraints{
				DailyCalories: 2000,
				Nutrients:     map[Nutrient]Level{NutrientFat: tt.level},
			}
			got, err := Filter(catalog, c)
			if err != nil {
				t.Fatalf("Filter: %v", err)
			}
			ids := itemIDs(got)
			if len(ids) != len(tt.want) {
				t.Fatalf("Filter returned %v, want %v", ids, tt.want)
			}
			for i := range ids {
				if ids[i] != tt.want[i] {
					t.Errorf("Filter returned %v, want %v", ids, tt.want)
				}
			}
		})
	}
}

func TestFilterDailyCaloriesScalesBands(t *testing.T) {
	// 36 PDV fails the high band at 2000 kcal (needs 40) but passes at
	// 2500 kcal where the multiplier shrinks the threshold to 32.
	catalog := []Item{recipe(1, 400, map[Nutrient]float64{NutrientSugar: 36}, "")}
	c := Constraints{
		DailyCalories: 2500,
		Nutrients:     map[Nutrient]Level{NutrientSugar: LevelHigh},
	}

	got, err := Filter(catalog, c)
	if err != nil {
		t.Fatalf("Filter: %v", err)
	}
	if len(got) != 1 {
		t.Errorf("item excluded, want included under scaled threshold")
	}

	c.DailyCalories = 2000
	got, err = Filter(catalog, c)
	if err != nil {
		t.Fatalf("Filter: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("item included at reference intake, want excluded")
	}
}

func TestFilterTags(t *testing.T) {
	catalog := []Item{
		recipe(1, 400, nil, "Vegan Gluten-Free Dinner"),
		recipe(2, 400, nil, "vegan dessert"),
		recipe(3, 400, nil, "meaty dinner"),
	}

	tests := []struct {
		name string
		tags []string
		want []int
	}{
		{"single tag case-insensitive", []string{"VEGAN"}, []int{1, 2}},
		{"conjunction", []string{"vegan", "dinner"}, []int{1}},
		{"substring match", []string{"gluten"}, []int{1}},
		{"no match", []string{"vegan", "meaty"}, nil},
		{"no tags unconstrained", nil, []int{1, 2, 3}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Filter(catalog, Constraints{Tags: tt.tags})
			if err != nil {
				t.Fatalf("Filter: %v", err)
			}
			ids := itemIDs(got)
			if len(ids) != len(tt.want) {
				t.Fatalf("Filter returned %v, want %v", ids, tt.want)
			}
			for i := range ids {
				if ids[i] != tt.want[i] {
					t.Errorf("Filter returned %v, want %v", ids, tt.want)
				}
			}
		})
	}
}

func TestFilterExerciseAttributes(t *testing.T) {
	catalog := []Item{
		{ID: 1, Kind: KindExercise, ExerciseType: "Strength", BodyPart: "Chest", Equipment: "Barbell", Difficulty: "Beginner"},
		{ID: 2, Kind: KindExercise, ExerciseType: "Strength", BodyPart: "Back", Equipment: "Barbell", Difficulty: "Intermediate"},
		{ID: 3, Kind: KindExercise, ExerciseType: "Cardio", BodyPart: "Chest", Equipment: "Body Only", Difficulty: "Beginner"},
	}

	got, err := Filter(catalog, Constraints{ExerciseType: "Strength", BodyPart: "Chest"})
	if err != nil {
		t.Fatalf("Filter: %v", err)
	}
	if len(got) != 1 || got[0].ID != 1 {
		t.Errorf("Filter returned %v, want only item 1", itemIDs(got))
	}

	// Exact match: no case folding on exercise attributes.
	got, err = Filter(catalog, Constraints{ExerciseType: "strength"})
	if err != nil {
		t.Fatalf("Filter: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("lowercase type matched %v, want exact-match miss", itemIDs(got))
	}
}

func TestFilterMissingAttributeUnconstrained(t *testing.T) {
	// An item without the constrained nutrient passes the band.
	catalog := []Item{recipe(1, 400, nil, "")}
	c := Constraints{
		DailyCalories: 2000,
		Nutrients:     map[Nutrient]Level{NutrientProtein: LevelHigh},
	}
	got, err := Filter(catalog, c)
	if err != nil {
		t.Fatalf("Filter: %v", err)
	}
	if len(got) != 1 {
		t.Errorf("item with missing nutrient excluded, want included")
	}
}

func TestFilterValidation(t *testing.T) {
	catalog := []Item{recipe(1, 400, nil, "")}

	t.Run("nutrient level without daily calories", func(t *testing.T) {
		c := Constraints{Nutrients: map[Nutrient]Level{NutrientFat: LevelLow}}
		_, err := Filter(catalog, c)
		if !errors.Is(err, ErrInvalidProfile) {
			t.Errorf("err = %v, want ErrInvalidProfile", err)
		}
	})

	t.Run("qualitative label on calories", func(t *testing.T) {
		c := Constraints{
			DailyCalories: 2000,
			Nutrients:     map[Nutrient]Level{NutrientCalories: LevelLow},
		}
		_, err := Filter(catalog, c)
		if !errors.Is(err, ErrInvalidConstraint) {
			t.Errorf("err = %v, want ErrInvalidConstraint", err)
		}
	})

	t.Run("zero constraints pass everything", func(t *testing.T) {
		got, err := Filter(catalog, Constraints{})
		if err != nil {
			t.Fatalf("Filter: %v", err)
		}
		if len(got) != 1 {
			t.Errorf("unconstrained filter dropped items")
		}
	})
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    Level
		wantErr bool
	}{
		{"low", LevelLow, false},
		{"med", LevelMed, false},
		{"high", LevelHigh, false},
		{"LOW", LevelLow, false},
		{"extreme", LevelUnset, true},
		{"", LevelUnset, false},
	}
	for _, tt := range tests {
		got, err := ParseLevel(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseLevel(%q) err = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
