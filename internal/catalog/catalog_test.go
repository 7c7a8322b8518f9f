// Vitalis - Lifestyle Recommendation and Scoring Engine
// Copyright 2026 Vitalis Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/vitalis-app/vitalis

package catalog

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/vitalis-app/vitalis/internal/recommend"
)

const recipesCSV = `id,name,calories,total fat (PDV),saturated fat (PDV),sugar (PDV),sodium (PDV),protein (PDV),carbohydrates (PDV),tags
1,grilled salmon,450,30,12,2,18,55,5,"dinner,seafood,low-carb"
2,pancake stack,620,25,15,60,20,12,45,"breakfast,sweet"
3,kale salad,180,8,1,5,6,10,12,"lunch,vegetarian,healthy"
`

const priorsCSV = `id,bayesian_avg
1,4.35
3,3.9
`

const exercisesCSV = `id,Title,Type,BodyPart,Equipment,Level,Rating
10,Barbell Squat,Strength,Quadriceps,Barbell,Intermediate,4.8
11,Plank,Strength,Abdominals,Body Only,Beginner,4.5
12,Treadmill Run,Cardio,Quadriceps,Machine,Beginner,
`

func TestParseRecipes(t *testing.T) {
	priors, err := ParsePriors(strings.NewReader(priorsCSV))
	if err != nil {
		t.Fatalf("ParsePriors() error = %v", err)
	}

	items, err := ParseRecipes(strings.NewReader(recipesCSV), priors)
	if err != nil {
		t.Fatalf("ParseRecipes() error = %v", err)
	}
	if len(items) != 3 {
		t.Fatalf("ParseRecipes() returned %d items, want 3", len(items))
	}

	salmon := items[0]
	if salmon.ID != 1 || salmon.Name != "grilled salmon" {
		t.Errorf("first item = %+v", salmon)
	}
	if salmon.Kind != recommend.KindRecipe {
		t.Errorf("Kind = %v, want KindRecipe", salmon.Kind)
	}
	if got := salmon.Nutrients[recommend.NutrientCalories]; got != 450 {
		t.Errorf("Calories = %v, want 450", got)
	}
	if got := salmon.Nutrients[recommend.NutrientProtein]; got != 55 {
		t.Errorf("Protein = %v, want 55", got)
	}
	if salmon.Prior != 4.35 {
		t.Errorf("Prior = %v, want 4.35", salmon.Prior)
	}

	// No prior recorded for pancakes.
	if items[1].Prior != 0 {
		t.Errorf("unrated item Prior = %v, want 0", items[1].Prior)
	}
	if !strings.Contains(items[2].Tags, "vegetarian") {
		t.Errorf("Tags = %q, want vegetarian present", items[2].Tags)
	}
}

func TestParseRecipesMissingColumn(t *testing.T) {
	csv := "id,name,calories\n1,x,100\n"
	if _, err := ParseRecipes(strings.NewReader(csv), nil); !errors.Is(err, ErrMissingColumn) {
		t.Errorf("ParseRecipes() error = %v, want ErrMissingColumn", err)
	}
}

func TestParseRecipesBadNumber(t *testing.T) {
	bad := strings.Replace(recipesCSV, "450", "not-a-number", 1)
	if _, err := ParseRecipes(strings.NewReader(bad), nil); err == nil {
		t.Error("ParseRecipes() expected error for non-numeric calories")
	}
}

func TestParseExercises(t *testing.T) {
	items, err := ParseExercises(strings.NewReader(exercisesCSV))
	if err != nil {
		t.Fatalf("ParseExercises() error = %v", err)
	}
	if len(items) != 3 {
		t.Fatalf("ParseExercises() returned %d items, want 3", len(items))
	}

	squat := items[0]
	if squat.Kind != recommend.KindExercise {
		t.Errorf("Kind = %v, want KindExercise", squat.Kind)
	}
	if squat.ExerciseType != "Strength" || squat.BodyPart != "Quadriceps" ||
		squat.Equipment != "Barbell" || squat.Difficulty != "Intermediate" {
		t.Errorf("attributes = %+v", squat)
	}
	if squat.Prior != 4.8 {
		t.Errorf("Prior = %v, want 4.8", squat.Prior)
	}

	// Blank rating defaults to zero.
	if items[2].Prior != 0 {
		t.Errorf("blank-rating Prior = %v, want 0", items[2].Prior)
	}
}

func TestLoaderLoad(t *testing.T) {
	dir := t.TempDir()
	write := func(name, content string) string {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
			t.Fatalf("writing %s: %v", name, err)
		}
		return path
	}

	loader := NewLoader(zerolog.Nop())
	cat, err := loader.Load(
		write("recipes.csv", recipesCSV),
		write("priors.csv", priorsCSV),
		write("exercises.csv", exercisesCSV),
	)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(cat.Recipes) != 3 || len(cat.Exercises) != 3 {
		t.Errorf("catalog sizes = %d recipes, %d exercises", len(cat.Recipes), len(cat.Exercises))
	}
}

func TestLoaderLoadMissingFile(t *testing.T) {
	loader := NewLoader(zerolog.Nop())
	if _, err := loader.Load("/nonexistent/recipes.csv", "", "/nonexistent/exercises.csv"); err == nil {
		t.Error("Load() expected error for missing file")
	}
}

func TestLoadRecipesWithoutPriors(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "recipes.csv")
	if err := os.WriteFile(path, []byte(recipesCSV), 0o600); err != nil {
		t.Fatalf("writing recipes: %v", err)
	}

	loader := NewLoader(zerolog.Nop())
	items, err := loader.LoadRecipes(path, "")
	if err != nil {
		t.Fatalf("LoadRecipes() error = %v", err)
	}
	for _, item := range items {
		if item.Prior != 0 {
			t.Errorf("item %d Prior = %v, want 0 without a ratings file", item.ID, item.Prior)
		}
	}
}
