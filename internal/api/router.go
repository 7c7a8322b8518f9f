// Vitalis - Lifestyle Recommendation and Scoring Engine
// Copyright 2026 Vitalis Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/vitalis-app/vitalis

package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/vitalis-app/vitalis/internal/middleware"
)

// RouterConfig tunes the shared middleware stack.
type RouterConfig struct {
	// RateLimitReqs is the per-IP request budget per window; 0 disables
	// rate limiting (used in tests).
	RateLimitReqs   int
	RateLimitWindow time.Duration
}

// NewRouter builds the chi route table around the handler.
func NewRouter(h *Handler, cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.PrometheusMetrics)
	if cfg.RateLimitReqs > 0 {
		window := cfg.RateLimitWindow
		if window <= 0 {
			window = time.Minute
		}
		r.Use(httprate.LimitByIP(cfg.RateLimitReqs, window))
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", h.Health)

		r.Route("/users", func(r chi.Router) {
			r.Get("/", h.ListUsers)
			r.Post("/", h.CreateUser)
			r.Get("/{username}", h.GetUser)
			r.Put("/{username}", h.UpdateUser)
			r.Delete("/{username}", h.DeleteUser)

			r.Put("/{username}/ratings", h.RateItem)
			r.Get("/{username}/lifestyle-score", h.LifestyleScore)
			r.Get("/{username}/diet-plan", h.DietPlan)
		})

		r.Route("/recommendations", func(r chi.Router) {
			r.Post("/recipes", h.RecommendRecipes)
			r.Post("/exercises", h.RecommendExercises)
		})

		r.Route("/model", func(r chi.Router) {
			r.Post("/train", h.TrainModel)
			r.Get("/status", h.ModelStatus)
		})
	})

	r.Handle("/metrics", promhttp.Handler())

	return r
}
