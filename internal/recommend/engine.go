// Vitalis - Lifestyle Recommendation and Scoring Engine
// Copyright 2026 Vitalis Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/vitalis-app/vitalis

package recommend

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/vitalis-app/vitalis/internal/metrics"
)

// Engine coordinates content filtering, collaborative ranking, and
// contextual augmentation. It is safe for concurrent use.
//
// The trained model lives behind an atomic pointer: Train builds a fresh
// model and swaps the handle wholesale, so readers never observe a
// partially-built model.
type Engine struct {
	config    *Config
	logger    zerolog.Logger
	blender   *Blender
	ranker    *Ranker
	augmenter *Augmenter

	// Current model handle, swapped atomically on retrain.
	model atomic.Pointer[modelEntry]

	// Training state
	trainMu     sync.Mutex
	ratingCount int

	dataProvider DataProvider
	modelFactory func() TrainableModel
}

// modelEntry pairs an installed model with its provenance.
type modelEntry struct {
	model     CollaborativeModel
	version   int
	trainedAt time.Time
}

// Status describes the currently installed model.
type Status struct {
	// Trained reports whether a model is installed.
	Trained bool `json:"trained"`

	// Version is the installed model's version.
	Version int `json:"version"`

	// TrainedAt is when the installed model was trained.
	TrainedAt time.Time `json:"trained_at"`

	// RatingCount is the size of the last training set.
	RatingCount int `json:"rating_count"`
}

// NewEngine creates a recommendation engine.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewEngine(cfg *Config, logger zerolog.Logger) (*Engine, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	logger = logger.With().Str("component", "recommend").Logger()
	blender := NewBlender(cfg.Blend)

	return &Engine{
		config:    cfg,
		logger:    logger,
		blender:   blender,
		ranker:    NewRanker(blender, logger),
		augmenter: NewAugmenter(cfg.Context),
	}, nil
}

// SetDataProvider sets the training data source.
func (e *Engine) SetDataProvider(dp DataProvider) {
	e.dataProvider = dp
}

// SetModelFactory sets the constructor used to build a fresh model on each
// training run.
func (e *Engine) SetModelFactory(f func() TrainableModel) {
	e.modelFactory = f
}

// FilterAndRank filters the catalog by the supplied constraints and orders
// the candidates for the user. This is the primary pipeline without
// contextual augmentation.
func (e *Engine) FilterAndRank(ctx context.Context, catalog []Item, c Constraints, userID, ratingCount int) ([]ScoredItem, error) {
	candidates, err := Filter(catalog, c)
	if err != nil {
		return nil, err
	}
	return e.ranker.Rank(candidates, userID, ratingCount, e.Model()), nil
}

// AugmentWithContext splices contextual-tag hits into the head of a primary
// ranking. See Augmenter.Augment for the merge rules.
func (e *Engine) AugmentWithContext(primary []ScoredItem, rerun RerunFunc, requestedTags []string) []ScoredItem {
	return e.augmenter.Augment(primary, rerun, requestedTags)
}

// Recommend runs the full pipeline: filter, rank, contextual augmentation,
// and truncation to k items. Contextual reruns that fail to filter are
// skipped rather than failing the request; the primary constraint set has
// already validated by then.
func (e *Engine) Recommend(ctx context.Context, catalog []Item, c Constraints, userID, ratingCount, k int) ([]ScoredItem, error) {
	k = e.clampK(k)

	primary, err := e.FilterAndRank(ctx, catalog, c, userID, ratingCount)
	if err != nil {
		return nil, err
	}

	rerun := func(tag string) []ScoredItem {
		hits, rerr := e.FilterAndRank(ctx, catalog, c.WithTag(tag), userID, ratingCount)
		if rerr != nil {
			e.logger.Warn().Str("tag", tag).Err(rerr).Msg("contextual rerun failed")
			return nil
		}
		return hits
	}

	merged := e.AugmentWithContext(primary, rerun, c.Tags)
	if len(merged) > k {
		merged = merged[:k]
	}
	return merged, nil
}

// Blend exposes the confidence blend for tuning and testing independent of
// ranking.
func (e *Engine) Blend(prior, prediction float64, ratingCount int) float64 {
	return e.blender.Blend(prior, prediction, ratingCount)
}

// Model returns the currently installed collaborative model, or nil when
// none has been trained or set.
func (e *Engine) Model() CollaborativeModel {
	if entry := e.model.Load(); entry != nil {
		return entry.model
	}
	return nil
}

// SetModel installs a model, replacing any previous one atomically. A nil
// model clears the handle, reverting ranking to prior-only ordering.
func (e *Engine) SetModel(m CollaborativeModel) {
	if m == nil {
		e.model.Store(nil)
		return
	}
	prev := e.model.Load()
	version := 1
	if prev != nil {
		version = prev.version + 1
	}
	e.model.Store(&modelEntry{model: m, version: version, trainedAt: time.Now()})
}

// GetStatus returns the installed model's provenance.
func (e *Engine) GetStatus() Status {
	entry := e.model.Load()
	if entry == nil {
		return Status{}
	}
	e.trainMu.Lock()
	ratings := e.ratingCount
	e.trainMu.Unlock()

	return Status{
		Trained:     true,
		Version:     entry.version,
		TrainedAt:   entry.trainedAt,
		RatingCount: ratings,
	}
}

// Train builds a fresh model from the full rating set and installs it.
// In-flight ranking calls keep reading the previous model until the swap.
func (e *Engine) Train(ctx context.Context) error {
	if e.dataProvider == nil {
		return fmt.Errorf("data provider not set")
	}
	if e.modelFactory == nil {
		return fmt.Errorf("model factory not set")
	}

	if !e.trainMu.TryLock() {
		return fmt.Errorf("training already in progress")
	}
	defer e.trainMu.Unlock()

	trainCtx, cancel := context.WithTimeout(ctx, e.config.Training.Timeout)
	defer cancel()

	start := time.Now()
	ratings, err := e.dataProvider.GetRatings(trainCtx)
	if err != nil {
		return fmt.Errorf("get ratings: %w", err)
	}
	if len(ratings) < e.config.Training.MinRatings {
		return fmt.Errorf("%w: %d ratings < %d required",
			ErrInsufficientData, len(ratings), e.config.Training.MinRatings)
	}

	model := e.modelFactory()
	if err := model.Train(trainCtx, ratings); err != nil {
		return fmt.Errorf("train model: %w", err)
	}

	e.ratingCount = len(ratings)
	e.installTrained(model)

	e.logger.Info().
		Int("ratings", len(ratings)).
		Int("version", model.Version()).
		Dur("duration", time.Since(start)).
		Msg("model training complete")

	return nil
}

// installTrained swaps in a freshly trained model and reflects the new
// version and corpus size in the exported gauges, so scheduled retrains
// show up the same as ones triggered over HTTP.
func (e *Engine) installTrained(m TrainableModel) {
	prev := e.model.Load()
	version := 1
	if prev != nil {
		version = prev.version + 1
	}
	e.model.Store(&modelEntry{model: m, version: version, trainedAt: m.LastTrainedAt()})
	metrics.ModelVersion.Set(float64(version))
	metrics.TrainingRatings.Set(float64(e.ratingCount))
}

// GetConfig returns a copy of the engine configuration.
func (e *Engine) GetConfig() *Config {
	return e.config.Clone()
}

// clampK applies the default and maximum result limits.
func (e *Engine) clampK(k int) int {
	if k <= 0 {
		k = e.config.Limits.DefaultK
	}
	if k > e.config.Limits.MaxK {
		k = e.config.Limits.MaxK
	}
	return k
}
