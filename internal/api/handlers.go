// Vitalis - Lifestyle Recommendation and Scoring Engine
// Copyright 2026 Vitalis Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/vitalis-app/vitalis

// Package api provides the HTTP surface of the Vitalis server: account
// management, recipe and exercise recommendations, rating capture,
// lifestyle scoring, diet plans, and model administration.
//
// Handler methods are split across files:
//   - handlers.go: Handler struct and constructor (this file)
//   - handlers_users.go: account CRUD
//   - handlers_recommend.go: recommendation and rating endpoints
//   - handlers_lifestyle.go: lifestyle score and diet plan endpoints
//   - handlers_model.go: training and status endpoints
//   - helpers.go: shared request/response plumbing
//   - router.go: chi route table
package api

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/vitalis-app/vitalis/internal/catalog"
	"github.com/vitalis-app/vitalis/internal/lifestyle"
	"github.com/vitalis-app/vitalis/internal/recommend"
	"github.com/vitalis-app/vitalis/internal/storage"
)

// FitnessFetcher supplies the rolling week of tracker samples. Satisfied
// by *tracker.Client; nil disables the fitness component dependency.
type FitnessFetcher interface {
	FetchWeek(ctx context.Context) ([]lifestyle.FitnessSample, error)
}

// Handler carries the dependencies for all API endpoints.
type Handler struct {
	store     *storage.Store
	catalog   *catalog.Catalog
	engine    *recommend.Engine
	tracker   FitnessFetcher
	validate  *validator.Validate
	logger    zerolog.Logger
	startTime time.Time
}

// NewHandler creates the API handler. The tracker fetcher may be nil when
// no wearable integration is configured; lifestyle scoring then requires
// samples to be supplied some other way and reports insufficient data.
func NewHandler(store *storage.Store, cat *catalog.Catalog, engine *recommend.Engine, fetcher FitnessFetcher, logger zerolog.Logger) *Handler {
	return &Handler{
		store:     store,
		catalog:   cat,
		engine:    engine,
		tracker:   fetcher,
		validate:  validator.New(),
		logger:    logger.With().Str("component", "api").Logger(),
		startTime: time.Now(),
	}
}
