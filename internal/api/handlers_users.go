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
	"github.com/vitalis-app/vitalis/internal/models"
	"github.com/vitalis-app/vitalis/internal/storage"
)

// CreateUser handles POST /api/v1/users.
func (h *Handler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req models.UserRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	profile, err := profileFromRequest(&req)
	if err != nil {
		respondError(w, r, http.StatusBadRequest, models.CodeValidationError, err.Error())
		return
	}

	user, err := h.store.CreateUser(r.Context(), req.Username, profile)
	if err != nil {
		if errors.Is(err, storage.ErrDuplicateUsername) {
			respondError(w, r, http.StatusConflict, models.CodeConflict, "username already exists")
			return
		}
		h.logger.Error().Err(err).Str("username", req.Username).Msg("User creation failed")
		respondError(w, r, http.StatusInternalServerError, models.CodeInternalError, "user creation failed")
		return
	}
	respondJSON(w, r, http.StatusCreated, user)
}

// GetUser handles GET /api/v1/users/{username}.
func (h *Handler) GetUser(w http.ResponseWriter, r *http.Request) {
	user, ok := h.lookupUser(w, r, chi.URLParam(r, "username"))
	if !ok {
		return
	}
	respondJSON(w, r, http.StatusOK, user)
}

// ListUsers handles GET /api/v1/users.
func (h *Handler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.store.ListUsers(r.Context())
	if err != nil {
		h.logger.Error().Err(err).Msg("User listing failed")
		respondError(w, r, http.StatusInternalServerError, models.CodeInternalError, "user listing failed")
		return
	}
	respondJSON(w, r, http.StatusOK, users)
}

// UpdateUser handles PUT /api/v1/users/{username}.
func (h *Handler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	user, ok := h.lookupUser(w, r, chi.URLParam(r, "username"))
	if !ok {
		return
	}

	var req models.UserRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}
	profile, err := profileFromRequest(&req)
	if err != nil {
		respondError(w, r, http.StatusBadRequest, models.CodeValidationError, err.Error())
		return
	}

	updated, err := h.store.UpdateUser(r.Context(), user.ID, profile)
	if err != nil {
		h.logger.Error().Err(err).Int("user_id", user.ID).Msg("User update failed")
		respondError(w, r, http.StatusInternalServerError, models.CodeInternalError, "user update failed")
		return
	}
	respondJSON(w, r, http.StatusOK, updated)
}

// DeleteUser handles DELETE /api/v1/users/{username}.
func (h *Handler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	user, ok := h.lookupUser(w, r, chi.URLParam(r, "username"))
	if !ok {
		return
	}
	if err := h.store.DeleteUser(r.Context(), user.ID); err != nil {
		h.logger.Error().Err(err).Int("user_id", user.ID).Msg("User deletion failed")
		respondError(w, r, http.StatusInternalServerError, models.CodeInternalError, "user deletion failed")
		return
	}
	respondJSON(w, r, http.StatusOK, map[string]string{"deleted": user.Username})
}

// profileFromRequest converts a validated request body into a metric
// profile. Client units are imperial (inches, pounds).
func profileFromRequest(req *models.UserRequest) (lifestyle.UserProfile, error) {
	gender, err := lifestyle.ParseGender(req.Gender)
	if err != nil {
		return lifestyle.UserProfile{}, err
	}
	current, err := lifestyle.ParseActivityLevel(req.CurrentActivity)
	if err != nil {
		return lifestyle.UserProfile{}, err
	}
	goal, err := lifestyle.ParseActivityLevel(req.GoalActivity)
	if err != nil {
		return lifestyle.UserProfile{}, err
	}
	weightGoal, err := lifestyle.ParseWeightGoal(req.WeightGoal)
	if err != nil {
		return lifestyle.UserProfile{}, err
	}

	return lifestyle.UserProfile{
		Age:                  req.Age,
		HeightCM:             lifestyle.InchesToCentimeters(req.HeightInches),
		WeightKG:             lifestyle.PoundsToKilograms(req.WeightPounds),
		Gender:               gender,
		CurrentActivity:      current,
		GoalActivity:         goal,
		WeightGoal:           weightGoal,
		CurrentDailyCalories: req.CurrentDailyCalories,
		GoalDailyCalories:    req.GoalDailyCalories,
	}, nil
}
