// Vitalis - Lifestyle Recommendation and Scoring Engine
// Copyright 2026 Vitalis Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/vitalis-app/vitalis

// Package services wires long-running components into a suture supervisor
// tree: the HTTP server and the periodic model trainer.
package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"github.com/thejerf/suture/v4"
)

// SupervisorConfig holds supervisor restart parameters.
type SupervisorConfig struct {
	// FailureThreshold is the number of failures before entering backoff.
	FailureThreshold float64

	// FailureDecay is the rate at which failures decay, in seconds.
	FailureDecay float64

	// FailureBackoff is how long to wait once the threshold is exceeded.
	FailureBackoff time.Duration

	// ShutdownTimeout bounds graceful shutdown of supervised services.
	ShutdownTimeout time.Duration
}

// DefaultSupervisorConfig returns suture's documented defaults.
func DefaultSupervisorConfig() SupervisorConfig {
	return SupervisorConfig{
		FailureThreshold: 5.0,
		FailureDecay:     30.0,
		FailureBackoff:   15 * time.Second,
		ShutdownTimeout:  10 * time.Second,
	}
}

// Supervisor runs the application's services under restart supervision.
type Supervisor struct {
	root   *suture.Supervisor
	logger zerolog.Logger
}

// NewSupervisor creates the root supervisor with restart events routed to
// the structured logger.
func NewSupervisor(logger zerolog.Logger, cfg SupervisorConfig) *Supervisor {
	if cfg.FailureThreshold == 0 {
		cfg.FailureThreshold = 5.0
	}
	if cfg.FailureDecay == 0 {
		cfg.FailureDecay = 30.0
	}
	if cfg.FailureBackoff == 0 {
		cfg.FailureBackoff = 15 * time.Second
	}
	if cfg.ShutdownTimeout == 0 {
		cfg.ShutdownTimeout = 10 * time.Second
	}

	log := logger.With().Str("component", "supervisor").Logger()

	root := suture.New("vitalis", suture.Spec{
		EventHook:        eventHook(log),
		FailureThreshold: cfg.FailureThreshold,
		FailureDecay:     cfg.FailureDecay,
		FailureBackoff:   cfg.FailureBackoff,
		Timeout:          cfg.ShutdownTimeout,
	})

	return &Supervisor{root: root, logger: log}
}

// Add registers a service with the root supervisor.
func (s *Supervisor) Add(svc suture.Service) suture.ServiceToken {
	return s.root.Add(svc)
}

// Serve runs the tree and blocks until the context is canceled.
func (s *Supervisor) Serve(ctx context.Context) error {
	return s.root.Serve(ctx)
}

// eventHook translates suture lifecycle events into zerolog records.
func eventHook(log zerolog.Logger) suture.EventHook {
	return func(ev suture.Event) {
		switch e := ev.(type) {
		case suture.EventServiceTerminate:
			log.Warn().
				Str("service", e.ServiceName).
				Bool("restarting", e.Restarting).
				Interface("error", e.Err).
				Msg("service terminated")
		case suture.EventServicePanic:
			log.Error().
				Str("service", e.ServiceName).
				Bool("restarting", e.Restarting).
				Str("panic", e.PanicMsg).
				Msg("service panicked")
		case suture.EventBackoff:
			log.Warn().Str("supervisor", e.SupervisorName).Msg("supervisor entering backoff")
		case suture.EventResume:
			log.Info().Str("supervisor", e.SupervisorName).Msg("supervisor resuming")
		default:
			log.Debug().Str("event", ev.String()).Msg("supervisor event")
		}
	}
}
