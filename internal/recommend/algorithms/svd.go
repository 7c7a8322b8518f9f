// Vitalis - Lifestyle Recommendation and Scoring Engine
// Copyright 2026 Vitalis Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/vitalis-app/vitalis

// Package algorithms implements collaborative filtering models for the
// recommendation engine.
//
// Each model implements the recommend.TrainableModel interface. Training
// acquires an exclusive lock while prediction uses a shared lock, so a
// single instance is safe for concurrent use; the engine nevertheless
// trains into a fresh instance and swaps atomically.
package algorithms

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/vitalis-app/vitalis/internal/recommend"
)

// SVDConfig contains configuration for the SVD model.
type SVDConfig struct {
	// NumFactors is the dimension of the latent factor vectors.
	// Default: 20.
	NumFactors int `json:"num_factors"`

	// NumEpochs is the number of SGD passes over the rating set.
	// Default: 20.
	NumEpochs int `json:"num_epochs"`

	// LearningRate is the SGD step size.
	// Default: 0.005.
	LearningRate float64 `json:"learning_rate"`

	// Regularization is the L2 regularization parameter.
	// Default: 0.02.
	Regularization float64 `json:"regularization"`

	// Seed is the random seed for factor initialization.
	// If zero, a fixed default is used for determinism.
	Seed int64 `json:"seed"`
}

// DefaultSVDConfig returns the default SVD configuration.
func DefaultSVDConfig() SVDConfig {
	return SVDConfig{
		NumFactors:     20,
		NumEpochs:      20,
		LearningRate:   0.005,
		Regularization: 0.02,
		Seed:           42,
	}
}

// SVD implements biased matrix factorization over explicit ratings,
// trained by stochastic gradient descent (the "Funk SVD" family).
//
// The predicted rating is
//
//	r_ui = mu + b_u + b_i + p_u . q_i
//
// where mu is the global mean, b_u and b_i are user and item biases, and
// p_u, q_i are the latent factor vectors. Predictions are in the rating
// scale but not hard-clamped.
type SVD struct {
	config SVDConfig

	mu sync.RWMutex

	// Learned parameters
	globalMean  float64
	userBias    []float64
	itemBias    []float64
	userFactors [][]float64
	itemFactors [][]float64

	// ID to matrix row mappings
	userIndex map[int]int
	itemIndex map[int]int

	trained       bool
	version       int
	lastTrainedAt time.Time
}

// NewSVD creates an SVD model with the given configuration.
func NewSVD(cfg SVDConfig) *SVD {
	if cfg.NumFactors <= 0 {
		cfg.NumFactors = 20
	}
	if cfg.NumEpochs <= 0 {
		cfg.NumEpochs = 20
	}
	if cfg.LearningRate <= 0 {
		cfg.LearningRate = 0.005
	}
	if cfg.Regularization < 0 {
		cfg.Regularization = 0.02
	}
	if cfg.Seed == 0 {
		cfg.Seed = 42
	}

	return &SVD{
		config:    cfg,
		userIndex: make(map[int]int),
		itemIndex: make(map[int]int),
	}
}

// Train fits the model on the full rating set.
func (s *SVD) Train(ctx context.Context, ratings []recommend.Rating) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(ratings) == 0 {
		return fmt.Errorf("%w: no ratings", recommend.ErrInsufficientData)
	}

	s.buildIndices(ratings)
	s.initFactors()

	var sum float64
	for _, r := range ratings {
		sum += float64(r.Score)
	}
	s.globalMean = sum / float64(len(ratings))

	lr := s.config.LearningRate
	reg := s.config.Regularization

	for epoch := 0; epoch < s.config.NumEpochs; epoch++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		for _, r := range ratings {
			u := s.userIndex[r.UserID]
			i := s.itemIndex[r.ItemID]

			pred := s.globalMean + s.userBias[u] + s.itemBias[i] + dot(s.userFactors[u], s.itemFactors[i])
			e := float64(r.Score) - pred

			s.userBias[u] += lr * (e - reg*s.userBias[u])
			s.itemBias[i] += lr * (e - reg*s.itemBias[i])

			pu := s.userFactors[u]
			qi := s.itemFactors[i]
			for f := range pu {
				puf, qif := pu[f], qi[f]
				pu[f] += lr * (e*qif - reg*puf)
				qi[f] += lr * (e*puf - reg*qif)
			}
		}
	}

	s.trained = true
	s.version++
	s.lastTrainedAt = time.Now()
	return nil
}

// buildIndices assigns matrix rows to users and items in rating order.
func (s *SVD) buildIndices(ratings []recommend.Rating) {
	s.userIndex = make(map[int]int)
	s.itemIndex = make(map[int]int)

	for _, r := range ratings {
		if _, ok := s.userIndex[r.UserID]; !ok {
			s.userIndex[r.UserID] = len(s.userIndex)
		}
		if _, ok := s.itemIndex[r.ItemID]; !ok {
			s.itemIndex[r.ItemID] = len(s.itemIndex)
		}
	}
}

// initFactors allocates and seeds the parameter matrices.
func (s *SVD) initFactors() {
	numUsers := len(s.userIndex)
	numItems := len(s.itemIndex)
	numFactors := s.config.NumFactors

	rng := rand.New(rand.NewSource(s.config.Seed)) //nolint:gosec // not cryptographic

	s.userBias = make([]float64, numUsers)
	s.itemBias = make([]float64, numItems)

	s.userFactors = make([][]float64, numUsers)
	for u := range s.userFactors {
		s.userFactors[u] = randomVector(rng, numFactors)
	}
	s.itemFactors = make([][]float64, numItems)
	for i := range s.itemFactors {
		s.itemFactors[i] = randomVector(rng, numFactors)
	}
}

// randomVector returns a small random initialization vector.
func randomVector(rng *rand.Rand, n int) []float64 {
	v := make([]float64, n)
	for f := range v {
		v[f] = 0.1 * (rng.Float64() - 0.5)
	}
	return v
}

// Predict returns the estimated rating of itemID by userID.
//
// An unknown user or item is an error; the ranker treats it as "no
// collaborative signal" and falls back to the item's prior.
func (s *SVD) Predict(userID, itemID int) (float64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.trained {
		return 0, fmt.Errorf("model not trained")
	}

	u, ok := s.userIndex[userID]
	if !ok {
		return 0, fmt.Errorf("unknown user %d", userID)
	}
	i, ok := s.itemIndex[itemID]
	if !ok {
		return 0, fmt.Errorf("unknown item %d", itemID)
	}

	return s.globalMean + s.userBias[u] + s.itemBias[i] + dot(s.userFactors[u], s.itemFactors[i]), nil
}

// KnowsUser reports whether the user appeared in the training corpus.
func (s *SVD) KnowsUser(userID int) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.userIndex[userID]
	return ok
}

// Version returns the model version, incremented on each train.
func (s *SVD) Version() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.version
}

// LastTrainedAt returns when the model was last trained.
func (s *SVD) LastTrainedAt() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastTrainedAt
}

// dot returns the inner product of two equal-length vectors.
func dot(a, b []float64) float64 {
	var sum float64
	for f := range a {
		sum += a[f] * b[f]
	}
	return sum
}

// Ensure interface compliance.
var _ recommend.TrainableModel = (*SVD)(nil)
