// Vitalis - Lifestyle Recommendation and Scoring Engine
// Copyright 2026 Vitalis Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/vitalis-app/vitalis

package recommend

import (
	"fmt"
	"time"
)

// Config contains all configuration for the recommendation engine.
type Config struct {
	// Blend contains the confidence curve parameters.
	Blend BlendConfig `json:"blend" koanf:"blend"`

	// Context contains the contextual augmentation parameters.
	Context ContextConfig `json:"context" koanf:"context"`

	// Limits contains result-size limits.
	Limits LimitsConfig `json:"limits" koanf:"limits"`

	// Training contains training thresholds.
	Training TrainingConfig `json:"training" koanf:"training"`
}

// BlendConfig parameterizes the logistic confidence curve used to weight
// the collaborative prediction against the popularity prior.
type BlendConfig struct {
	// MinWeight is the asymptotic lower bound of the collaborative weight.
	// Default: 0.2.
	MinWeight float64 `json:"min_weight" koanf:"min_weight"`

	// MaxWeight is the asymptotic upper bound of the collaborative weight.
	// Default: 0.95.
	MaxWeight float64 `json:"max_weight" koanf:"max_weight"`

	// Steepness is the logistic slope parameter k.
	// Default: 0.1.
	Steepness float64 `json:"steepness" koanf:"steepness"`

	// Midpoint is the rating count at which the curve crosses its middle,
	// half of the assumed maximum useful count of 100.
	// Default: 50.
	Midpoint float64 `json:"midpoint" koanf:"midpoint"`
}

// ContextConfig parameterizes contextual tag augmentation.
type ContextConfig struct {
	// TopPerTag is how many hits to keep from each contextual rerun.
	// Default: 5.
	TopPerTag int `json:"top_per_tag" koanf:"top_per_tag"`

	// MaxLead is how many combined contextual hits are spliced ahead of
	// the primary ranking.
	// Default: 2.
	MaxLead int `json:"max_lead" koanf:"max_lead"`
}

// LimitsConfig contains result-size limits.
type LimitsConfig struct {
	// DefaultK is the default number of items to return.
	// Default: 5.
	DefaultK int `json:"default_k" koanf:"default_k"`

	// MaxK is the maximum allowed K value.
	// Default: 50.
	MaxK int `json:"max_k" koanf:"max_k"`
}

// TrainingConfig contains training thresholds.
type TrainingConfig struct {
	// MinRatings is the minimum number of ratings required to train.
	// Default: 20.
	MinRatings int `json:"min_ratings" koanf:"min_ratings"`

	// Timeout is the maximum time allowed for a training run.
	// Default: 5m.
	Timeout time.Duration `json:"timeout" koanf:"timeout"`
}

// DefaultConfig returns a Config with the production defaults.
func DefaultConfig() *Config {
	return &Config{
		Blend: BlendConfig{
			MinWeight: 0.2,
			MaxWeight: 0.95,
			Steepness: 0.1,
			Midpoint:  50,
		},
		Context: ContextConfig{
			TopPerTag: 5,
			MaxLead:   2,
		},
		Limits: LimitsConfig{
			DefaultK: 5,
			MaxK:     50,
		},
		Training: TrainingConfig{
			MinRatings: 20,
			Timeout:    5 * time.Minute,
		},
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.Blend.MinWeight <= 0 || c.Blend.MinWeight >= 1 {
		return fmt.Errorf("blend.min_weight must be in (0, 1), got %f", c.Blend.MinWeight)
	}
	if c.Blend.MaxWeight <= c.Blend.MinWeight || c.Blend.MaxWeight >= 1 {
		return fmt.Errorf("blend.max_weight must be in (min_weight, 1), got %f", c.Blend.MaxWeight)
	}
	if c.Blend.Steepness <= 0 {
		return fmt.Errorf("blend.steepness must be positive, got %f", c.Blend.Steepness)
	}
	if c.Blend.Midpoint < 0 {
		return fmt.Errorf("blend.midpoint must be non-negative, got %f", c.Blend.Midpoint)
	}

	if c.Context.TopPerTag < 1 {
		return fmt.Errorf("context.top_per_tag must be positive, got %d", c.Context.TopPerTag)
	}
	if c.Context.MaxLead < 0 {
		return fmt.Errorf("context.max_lead must be non-negative, got %d", c.Context.MaxLead)
	}

	if c.Limits.DefaultK < 1 {
		return fmt.Errorf("limits.default_k must be positive, got %d", c.Limits.DefaultK)
	}
	if c.Limits.MaxK < c.Limits.DefaultK {
		return fmt.Errorf("limits.max_k must be >= limits.default_k, got %d < %d",
			c.Limits.MaxK, c.Limits.DefaultK)
	}

	if c.Training.MinRatings < 1 {
		return fmt.Errorf("training.min_ratings must be positive, got %d", c.Training.MinRatings)
	}
	if c.Training.Timeout <= 0 {
		return fmt.Errorf("training.timeout must be positive, got %v", c.Training.Timeout)
	}

	return nil
}

// Clone returns a copy of the configuration.
func (c *Config) Clone() *Config {
	cp := *c
	return &cp
}
