// Vitalis - Lifestyle Recommendation and Scoring Engine
// Copyright 2026 Vitalis Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/vitalis-app/vitalis

package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/vitalis-app/vitalis/internal/metrics"
	"github.com/vitalis-app/vitalis/internal/models"
	"github.com/vitalis-app/vitalis/internal/recommend"
)

// TrainModel handles POST /api/v1/model/train. Training runs are
// serialized; a second request while one is running returns 409.
func (h *Handler) TrainModel(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	err := h.engine.Train(r.Context())
	if err != nil {
		if errors.Is(err, recommend.ErrInsufficientData) {
			metrics.RecordTraining("insufficient_data", 0)
			respondError(w, r, http.StatusConflict, models.CodeInsufficientData, err.Error())
			return
		}
		metrics.RecordTraining("error", 0)
		h.logger.Error().Err(err).Msg("Model training failed")
		respondError(w, r, http.StatusConflict, models.CodeConflict, err.Error())
		return
	}

	metrics.RecordTraining("success", time.Since(start))
	respondJSON(w, r, http.StatusOK, h.engine.GetStatus())
}

// ModelStatus handles GET /api/v1/model/status.
func (h *Handler) ModelStatus(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, r, http.StatusOK, h.engine.GetStatus())
}

// Health handles GET /api/v1/health.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, r, http.StatusOK, map[string]interface{}{
		"status":         "ok",
		"uptime_seconds": int64(time.Since(h.startTime).Seconds()),
		"recipes":        len(h.catalog.Recipes),
		"exercises":      len(h.catalog.Exercises),
		"model":          h.engine.GetStatus(),
	})
}
