// Vitalis - Lifestyle Recommendation and Scoring Engine
// Copyright 2026 Vitalis Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/vitalis-app/vitalis

package services

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/vitalis-app/vitalis/internal/metrics"
	"github.com/vitalis-app/vitalis/internal/recommend"
)

// Trainable is the slice of the recommendation engine the trainer drives.
type Trainable interface {
	Train(ctx context.Context) error
}

// TrainerConfig controls the retraining schedule.
type TrainerConfig struct {
	// TrainOnStartup triggers a training run as soon as the service starts.
	TrainOnStartup bool `koanf:"train_on_startup"`

	// TrainInterval is the period between scheduled retraining runs.
	TrainInterval time.Duration `koanf:"train_interval"`
}

// Trainer retrains the collaborative model on a schedule. Failed runs are
// logged and retried on the next tick rather than crashing the service;
// too few ratings is a normal cold-start condition, not an error.
type Trainer struct {
	engine Trainable
	config TrainerConfig
	logger zerolog.Logger
}

// NewTrainer creates the periodic training service.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewTrainer(engine Trainable, cfg TrainerConfig, logger zerolog.Logger) *Trainer {
	if cfg.TrainInterval <= 0 {
		cfg.TrainInterval = 24 * time.Hour
	}
	return &Trainer{
		engine: engine,
		config: cfg,
		logger: logger.With().Str("service", "trainer").Logger(),
	}
}

// Serve implements suture.Service.
func (t *Trainer) Serve(ctx context.Context) error {
	t.logger.Info().
		Bool("train_on_startup", t.config.TrainOnStartup).
		Dur("train_interval", t.config.TrainInterval).
		Msg("trainer starting")

	if t.config.TrainOnStartup {
		t.runOnce(ctx)
	}

	ticker := time.NewTicker(t.config.TrainInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			t.logger.Info().Msg("trainer shutting down")
			return ctx.Err()
		case <-ticker.C:
			t.runOnce(ctx)
		}
	}
}

// runOnce performs a single training cycle, recording the outcome.
func (t *Trainer) runOnce(ctx context.Context) {
	start := time.Now()
	err := t.engine.Train(ctx)
	switch {
	case err == nil:
		metrics.RecordTraining("success", time.Since(start))
		t.logger.Info().Dur("duration", time.Since(start)).Msg("training complete")
	case errors.Is(err, recommend.ErrInsufficientData):
		metrics.RecordTraining("insufficient_data", 0)
		t.logger.Info().Err(err).Msg("skipping training, not enough ratings yet")
	default:
		metrics.RecordTraining("error", 0)
		t.logger.Warn().Err(err).Msg("training failed, will retry on schedule")
	}
}

// String identifies the service in supervisor logs.
func (t *Trainer) String() string {
	return "model-trainer"
}
