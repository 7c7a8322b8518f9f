// Vitalis - Lifestyle Recommendation and Scoring Engine
// Copyright 2026 Vitalis Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/vitalis-app/vitalis

package api

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/vitalis-app/vitalis/internal/metrics"
	"github.com/vitalis-app/vitalis/internal/models"
	"github.com/vitalis-app/vitalis/internal/recommend"
	"github.com/vitalis-app/vitalis/internal/storage"
)

// defaultDailyCalories is the reference intake used to scale nutrient
// bands when the user never set a goal.
const defaultDailyCalories = 2000

// RecommendRecipes handles POST /api/v1/recommendations/recipes.
func (h *Handler) RecommendRecipes(w http.ResponseWriter, r *http.Request) {
	var req models.RecipeQuery
	if !h.decodeAndValidate(w, r, &req) {
		return
	}
	user, ok := h.lookupUser(w, r, req.Username)
	if !ok {
		return
	}

	daily := user.Profile.GoalDailyCalories
	if daily <= 0 {
		daily = defaultDailyCalories
	}
	constraints := recommend.Constraints{
		CalorieTarget: req.Calories,
		DailyCalories: daily,
		Tags:          req.Tags,
	}
	levels := map[recommend.Nutrient]string{
		recommend.NutrientFat:     req.Fat,
		recommend.NutrientSatFat:  req.SatFat,
		recommend.NutrientSugar:   req.Sugar,
		recommend.NutrientSodium:  req.Sodium,
		recommend.NutrientProtein: req.Protein,
		recommend.NutrientCarbs:   req.Carbs,
	}
	for nutrient, label := range levels {
		if label == "" {
			continue
		}
		level, err := recommend.ParseLevel(label)
		if err != nil {
			respondError(w, r, http.StatusBadRequest, models.CodeValidationError, err.Error())
			return
		}
		if constraints.Nutrients == nil {
			constraints.Nutrients = make(map[recommend.Nutrient]recommend.Level)
		}
		constraints.Nutrients[nutrient] = level
	}

	h.serveRecommendation(w, r, h.catalog.Recipes, constraints, user.ID, req.K, "recipe")
}

// RecommendExercises handles POST /api/v1/recommendations/exercises.
func (h *Handler) RecommendExercises(w http.ResponseWriter, r *http.Request) {
	var req models.ExerciseQuery
	if !h.decodeAndValidate(w, r, &req) {
		return
	}
	user, ok := h.lookupUser(w, r, req.Username)
	if !ok {
		return
	}

	constraints := recommend.Constraints{
		ExerciseType: req.Type,
		BodyPart:     req.BodyPart,
		Equipment:    req.Equipment,
		Difficulty:   req.Level,
	}
	h.serveRecommendation(w, r, h.catalog.Exercises, constraints, user.ID, req.K, "exercise")
}

func (h *Handler) serveRecommendation(w http.ResponseWriter, r *http.Request, items []recommend.Item, constraints recommend.Constraints, userID, k int, kind string) {
	count, err := h.store.RatingCount(r.Context(), userID)
	if err != nil {
		h.logger.Error().Err(err).Int("user_id", userID).Msg("Rating count lookup failed")
		respondError(w, r, http.StatusInternalServerError, models.CodeInternalError, "rating lookup failed")
		return
	}

	results, err := h.engine.Recommend(r.Context(), items, constraints, userID, count, k)
	if err != nil {
		if errors.Is(err, recommend.ErrInvalidConstraint) || errors.Is(err, recommend.ErrInvalidProfile) {
			respondError(w, r, http.StatusBadRequest, models.CodeValidationError, err.Error())
			return
		}
		h.logger.Error().Err(err).Int("user_id", userID).Msg("Recommendation failed")
		respondError(w, r, http.StatusInternalServerError, models.CodeInternalError, "recommendation failed")
		return
	}

	metrics.RecommendationsServed.WithLabelValues(kind).Inc()
	metrics.RecommendationCandidates.Observe(float64(len(results)))
	respondJSON(w, r, http.StatusOK, results)
}

// RateItem handles PUT /api/v1/users/{username}/ratings.
func (h *Handler) RateItem(w http.ResponseWriter, r *http.Request) {
	user, ok := h.lookupUser(w, r, chi.URLParam(r, "username"))
	if !ok {
		return
	}

	var req models.RatingRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	rating := recommend.Rating{UserID: user.ID, ItemID: req.ItemID, Score: req.Score}
	if err := h.store.UpsertRating(r.Context(), rating); err != nil {
		if errors.Is(err, storage.ErrInvalidRating) {
			respondError(w, r, http.StatusBadRequest, models.CodeValidationError, err.Error())
			return
		}
		h.logger.Error().Err(err).Int("user_id", user.ID).Msg("Rating upsert failed")
		respondError(w, r, http.StatusInternalServerError, models.CodeInternalError, "rating save failed")
		return
	}
	respondJSON(w, r, http.StatusOK, rating)
}
