// Vitalis - Lifestyle Recommendation and Scoring Engine
// Copyright 2026 Vitalis Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/vitalis-app/vitalis

package recommend

import (
	"sort"

	"github.com/rs/zerolog"
)

// Ranker orders filtered candidates by blended score.
type Ranker struct {
	blender *Blender
	logger  zerolog.Logger
}

// NewRanker creates a ranker using the given blender.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewRanker(blender *Blender, logger zerolog.Logger) *Ranker {
	return &Ranker{
		blender: blender,
		logger:  logger.With().Str("component", "ranker").Logger(),
	}
}

// Rank scores and sorts candidates for a user.
//
// With no model, or a model that does not know the user, candidates are
// ordered by descending prior. Otherwise each candidate's prior is blended
// with the model's prediction under the user's confidence weight. A failed
// prediction degrades that single item to its prior; it never aborts the
// ranking of the rest.
//
// Sorting is stable, so ties keep catalog order and the result is
// deterministic for identical inputs.
func (r *Ranker) Rank(candidates []Item, userID, ratingCount int, model CollaborativeModel) []ScoredItem {
	scored := make([]ScoredItem, len(candidates))

	personalized := model != nil && model.KnowsUser(userID)
	for i := range candidates {
		scored[i] = r.score(&candidates[i], userID, ratingCount, model, personalized)
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	return scored
}

// score computes one candidate's ranking score.
func (r *Ranker) score(item *Item, userID, ratingCount int, model CollaborativeModel, personalized bool) ScoredItem {
	if !personalized {
		return ScoredItem{Item: *item, Score: item.Prior}
	}

	prediction, err := model.Predict(userID, item.ID)
	if err != nil {
		r.logger.Debug().
			Int("user_id", userID).
			Int("item_id", item.ID).
			Err(err).
			Msg("prediction failed, using prior")
		return ScoredItem{Item: *item, Score: item.Prior}
	}

	return ScoredItem{
		Item:          *item,
		Score:         r.blender.Blend(item.Prior, prediction, ratingCount),
		Collaborative: true,
	}
}
