// Vitalis - Lifestyle Recommendation and Scoring Engine
// Copyright 2026 Vitalis Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/vitalis-app/vitalis

// Package main is the entry point for the Vitalis server.
//
// Vitalis serves personalized recipe and exercise recommendations backed by
// a collaborative-filtering model, plus composite lifestyle scoring fed by
// a wearable fitness tracker.
//
// # Application Architecture
//
// The server initializes components in the following order:
//
//  1. Configuration: layered defaults, YAML file, and environment (Koanf v2)
//  2. Logging: structured zerolog output
//  3. Storage: SQLite database for accounts and ratings
//  4. Catalog: recipe and exercise CSV datasets loaded into memory
//  5. Engine: filtering, ranking, and blending pipeline with an SVD model
//  6. Tracker: optional fitness tracker client (disabled when unconfigured)
//  7. Services: supervised HTTP server and periodic model trainer
//
// # Configuration
//
// Configuration is loaded via Koanf v2 with layered sources (highest
// priority wins):
//   - VITALIS_-prefixed environment variables
//   - Config file (config.yaml, or VITALIS_CONFIG_PATH)
//   - Built-in defaults
//
// # Signal Handling
//
// The server handles graceful shutdown on SIGINT and SIGTERM: it stops
// accepting connections, waits for in-flight requests up to the configured
// shutdown timeout, and stops the training service.
//
// # Example Usage
//
//	export VITALIS_DATABASE_PATH=/data/vitalis.db
//	export VITALIS_CATALOG_RECIPES_PATH=/data/recipes.csv
//	export VITALIS_CATALOG_EXERCISES_PATH=/data/exercises.csv
//	./vitalis
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/vitalis-app/vitalis/internal/api"
	"github.com/vitalis-app/vitalis/internal/catalog"
	"github.com/vitalis-app/vitalis/internal/config"
	"github.com/vitalis-app/vitalis/internal/logging"
	"github.com/vitalis-app/vitalis/internal/recommend"
	"github.com/vitalis-app/vitalis/internal/recommend/algorithms"
	"github.com/vitalis-app/vitalis/internal/services"
	"github.com/vitalis-app/vitalis/internal/storage"
	"github.com/vitalis-app/vitalis/internal/tracker"
)

func main() {
	if err := run(); err != nil {
		logging.Fatal().Err(err).Msg("Server exited with error")
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("validate config: %w", err)
	}

	logging.Init(cfg.Logging)
	logger := logging.Logger()
	logger.Info().
		Str("addr", fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)).
		Msg("Starting Vitalis server")

	store, err := storage.New(cfg.Database.Path, logger)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer store.Close()

	loader := catalog.NewLoader(logger)
	cat, err := loader.Load(cfg.Catalog.RecipesPath, cfg.Catalog.RecipeRatingsPath, cfg.Catalog.ExercisesPath)
	if err != nil {
		return fmt.Errorf("load catalog: %w", err)
	}
	logger.Info().
		Int("recipes", len(cat.Recipes)).
		Int("exercises", len(cat.Exercises)).
		Msg("Catalog loaded")

	engine, err := recommend.NewEngine(&cfg.Engine, logger)
	if err != nil {
		return fmt.Errorf("create engine: %w", err)
	}
	engine.SetDataProvider(store)
	engine.SetModelFactory(func() recommend.TrainableModel {
		return algorithms.NewSVD(algorithms.DefaultSVDConfig())
	})

	var fetcher api.FitnessFetcher
	if cfg.Tracker.BaseURL != "" {
		fetcher = tracker.NewClient(cfg.Tracker, logger)
	} else {
		logger.Warn().Msg("No fitness tracker configured, lifestyle scoring disabled")
	}

	handler := api.NewHandler(store, cat, engine, fetcher, logger)
	router := api.NewRouter(handler, api.RouterConfig{
		RateLimitReqs:   cfg.Server.RateLimitReqs,
		RateLimitWindow: cfg.Server.RateLimitWindow,
	})

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	sup := services.NewSupervisor(logger, services.DefaultSupervisorConfig())
	sup.Add(services.NewHTTPService(server, cfg.Server.ShutdownTimeout))
	sup.Add(services.NewTrainer(engine, services.TrainerConfig{
		TrainOnStartup: cfg.Training.TrainOnStartup,
		TrainInterval:  cfg.Training.TrainInterval,
	}, logger))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err = sup.Serve(ctx)
	if err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("supervisor: %w", err)
	}

	logger.Info().Msg("Server stopped")
	return nil
}
