// Vitalis - Lifestyle Recommendation and Scoring Engine
// Copyright 2026 Vitalis Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/vitalis-app/vitalis

package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-json"

	"github.com/vitalis-app/vitalis/internal/logging"
	"github.com/vitalis-app/vitalis/internal/models"
	"github.com/vitalis-app/vitalis/internal/storage"
)

// respondJSON writes the standard success envelope.
func respondJSON(w http.ResponseWriter, r *http.Request, status int, data interface{}) {
	writeEnvelope(w, r, status, &models.APIResponse{
		Status: "success",
		Data:   data,
		Metadata: models.Metadata{
			Timestamp: time.Now().UTC(),
			RequestID: logging.RequestIDFromContext(r.Context()),
		},
	})
}

// respondError writes the standard error envelope.
func respondError(w http.ResponseWriter, r *http.Request, status int, code, message string) {
	writeEnvelope(w, r, status, &models.APIResponse{
		Status: "error",
		Error:  &models.APIError{Code: code, Message: message},
		Metadata: models.Metadata{
			Timestamp: time.Now().UTC(),
			RequestID: logging.RequestIDFromContext(r.Context()),
		},
	})
}

func writeEnvelope(w http.ResponseWriter, r *http.Request, status int, resp *models.APIResponse) {
	w.Header().Set("Content-Type", "application/json")
	data, err := json.Marshal(resp)
	if err != nil {
		logging.Ctx(r.Context()).Error().Err(err).Msg("Failed to marshal JSON response")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.WriteHeader(status)
	if _, err := w.Write(data); err != nil {
		logging.Ctx(r.Context()).Error().Err(err).Msg("Failed to write JSON response")
	}
}

// decodeAndValidate decodes a JSON body into dst and runs struct
// validation. On failure it writes the error response and returns false.
func (h *Handler) decodeAndValidate(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	defer r.Body.Close() //nolint:errcheck

	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		respondError(w, r, http.StatusBadRequest, models.CodeValidationError,
			"invalid JSON body: "+err.Error())
		return false
	}
	if err := h.validate.Struct(dst); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			respondError(w, r, http.StatusBadRequest, models.CodeValidationError,
				"invalid field "+verrs[0].Field()+": failed "+verrs[0].Tag()+" check")
			return false
		}
		respondError(w, r, http.StatusBadRequest, models.CodeValidationError, err.Error())
		return false
	}
	return true
}

// lookupUser resolves a username to a stored account, writing the 404 on miss.
func (h *Handler) lookupUser(w http.ResponseWriter, r *http.Request, username string) (*storage.User, bool) {
	if username == "" {
		respondError(w, r, http.StatusBadRequest, models.CodeValidationError, "username is required")
		return nil, false
	}
	user, err := h.store.GetUserByUsername(r.Context(), username)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			respondError(w, r, http.StatusNotFound, models.CodeNotFound, "user not found")
			return nil, false
		}
		h.logger.Error().Err(err).Str("username", username).Msg("User lookup failed")
		respondError(w, r, http.StatusInternalServerError, models.CodeInternalError, "user lookup failed")
		return nil, false
	}
	return user, true
}
