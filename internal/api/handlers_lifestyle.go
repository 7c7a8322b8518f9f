// Vitalis - Lifestyle Recommendation and Scoring Engine
// Copyright 2026 Vitalis Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/vitalis-app/vitalis

package api

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/vitalis-app/vitalis/internal/lifestyle"
	"github.com/vitalis-app/vitalis/internal/metrics"
	"github.com/vitalis-app/vitalis/internal/models"
)

// LifestyleScore handles GET /api/v1/users/{username}/lifestyle-score.
// It pulls the last week of tracker samples and computes the composite
// wellness, fitness, and diet breakdown.
func (h *Handler) LifestyleScore(w http.ResponseWriter, r *http.Request) {
	user, ok := h.lookupUser(w, r, chi.URLParam(r, "username"))
	if !ok {
		return
	}

	if h.tracker == nil {
		respondError(w, r, http.StatusServiceUnavailable, models.CodeUpstreamError,
			"no fitness tracker configured")
		return
	}

	samples, err := h.tracker.FetchWeek(r.Context())
	metrics.RecordTrackerFetch(err)
	if err != nil {
		h.logger.Error().Err(err).Str("username", user.Username).Msg("Tracker fetch failed")
		respondError(w, r, http.StatusBadGateway, models.CodeUpstreamError,
			"fitness tracker unavailable")
		return
	}

	scores, err := lifestyle.Composite(user.Profile, samples)
	if err != nil {
		switch {
		case errors.Is(err, lifestyle.ErrInsufficientData):
			respondError(w, r, http.StatusConflict, models.CodeInsufficientData,
				"no fitness samples recorded for the past week")
		case errors.Is(err, lifestyle.ErrInvalidProfile):
			respondError(w, r, http.StatusBadRequest, models.CodeValidationError, err.Error())
		default:
			h.logger.Error().Err(err).Str("username", user.Username).Msg("Lifestyle scoring failed")
			respondError(w, r, http.StatusInternalServerError, models.CodeInternalError,
				"lifestyle scoring failed")
		}
		return
	}
	respondJSON(w, r, http.StatusOK, scores)
}

// DietPlan handles GET /api/v1/users/{username}/diet-plan.
func (h *Handler) DietPlan(w http.ResponseWriter, r *http.Request) {
	user, ok := h.lookupUser(w, r, chi.URLParam(r, "username"))
	if !ok {
		return
	}

	options, err := lifestyle.DietPlan(user.Profile)
	if err != nil {
		if errors.Is(err, lifestyle.ErrInvalidProfile) {
			respondError(w, r, http.StatusBadRequest, models.CodeValidationError, err.Error())
			return
		}
		h.logger.Error().Err(err).Str("username", user.Username).Msg("Diet plan failed")
		respondError(w, r, http.StatusInternalServerError, models.CodeInternalError, "diet plan failed")
		return
	}
	respondJSON(w, r, http.StatusOK, options)
}
