// Vitalis - Lifestyle Recommendation and Scoring Engine
// Copyright 2026 Vitalis Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/vitalis-app/vitalis

package recommend

import (
	"errors"
	"testing"

	"github.com/rs/zerolog"
)

// fakeModel is a canned-answer collaborative model for ranker tests.
type fakeModel struct {
	knownUsers  map[int]bool
	predictions map[int]float64
	failItems   map[int]bool
}

func (m *fakeModel) Predict(_, itemID int) (float64, error) {
	if m.failItems[itemID] {
		return 0, errors.New("no signal")
	}
	return m.predictions[itemID], nil
}

func (m *fakeModel) KnowsUser(userID int) bool {
	return m.knownUsers[userID]
}

func newTestRanker() *Ranker {
	return NewRanker(defaultBlender(), zerolog.Nop())
}

func scoredIDs(items []ScoredItem) []int {
	ids := make([]int, len(items))
	for i, it := range items {
		ids[i] = it.Item.ID
	}
	return ids
}

func TestRankNilModelUsesPriors(t *testing.T) {
	candidates := []Item{
		{ID: 1, Prior: 3.5},
		{ID: 2, Prior: 4.8},
		{ID: 3, Prior: 4.1},
	}

	got := newTestRanker().Rank(candidates, 7, 0, nil)

	want := []int{2, 3, 1}
	ids := scoredIDs(got)
	for i := range want {
		if ids[i] != want[i] {
			t.Fatalf("order = %v, want %v", ids, want)
		}
	}
	for _, s := range got {
		if s.Collaborative {
			t.Errorf("item %d marked collaborative without a model", s.Item.ID)
		}
		if s.Score != s.Item.Prior {
			t.Errorf("item %d score = %g, want prior %g", s.Item.ID, s.Score, s.Item.Prior)
		}
	}
}

func TestRankUnknownUserUsesPriors(t *testing.T) {
	candidates := []Item{{ID: 1, Prior: 2.0}, {ID: 2, Prior: 4.0}}
	model := &fakeModel{knownUsers: map[int]bool{}, predictions: map[int]float64{1: 5.0}}

	got := newTestRanker().Rank(candidates, 99, 10, model)

	if got[0].Item.ID != 2 {
		t.Errorf("unknown user got personalized order %v", scoredIDs(got))
	}
	for _, s := range got {
		if s.Collaborative {
			t.Errorf("item %d marked collaborative for unknown user", s.Item.ID)
		}
	}
}

func TestRankBlendsKnownUser(t *testing.T) {
	candidates := []Item{{ID: 1, Prior: 4.5}, {ID: 2, Prior: 3.0}}
	model := &fakeModel{
		knownUsers:  map[int]bool{7: true},
		predictions: map[int]float64{1: 1.0, 2: 5.0},
	}

	// A heavy rater's predictions dominate the priors, flipping the order.
	got := newTestRanker().Rank(candidates, 7, 1000, model)

	if got[0].Item.ID != 2 {
		t.Fatalf("order = %v, want predicted favorite first", scoredIDs(got))
	}
	for _, s := range got {
		if !s.Collaborative {
			t.Errorf("item %d not marked collaborative", s.Item.ID)
		}
	}
}

func TestRankPredictionFailureDegradesToPrior(t *testing.T) {
	candidates := []Item{{ID: 1, Prior: 4.5}, {ID: 2, Prior: 3.0}}
	model := &fakeModel{
		knownUsers:  map[int]bool{7: true},
		predictions: map[int]float64{2: 5.0},
		failItems:   map[int]bool{1: true},
	}

	got := newTestRanker().Rank(candidates, 7, 1000, model)

	for _, s := range got {
		switch s.Item.ID {
		case 1:
			if s.Collaborative || s.Score != 4.5 {
				t.Errorf("failed item = %+v, want prior 4.5 non-collaborative", s)
			}
		case 2:
			if !s.Collaborative {
				t.Errorf("healthy item lost its collaborative score")
			}
		}
	}
}

func TestRankStableTies(t *testing.T) {
	candidates := []Item{
		{ID: 10, Prior: 4.0},
		{ID: 11, Prior: 4.0},
		{ID: 12, Prior: 4.0},
	}

	got := newTestRanker().Rank(candidates, 1, 0, nil)

	want := []int{10, 11, 12}
	ids := scoredIDs(got)
	for i := range want {
		if ids[i] != want[i] {
			t.Fatalf("tie order = %v, want catalog order %v", ids, want)
		}
	}
}

func TestRankEmptyCandidates(t *testing.T) {
	got := newTestRanker().Rank(nil, 1, 0, nil)
	if len(got) != 0 {
		t.Errorf("Rank(nil) = %v, want empty", got)
	}
}
