// Vitalis - Lifestyle Recommendation and Scoring Engine
// Copyright 2026 Vitalis Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/vitalis-app/vitalis

package recommend

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"

	"github.com/vitalis-app/vitalis/internal/metrics"
)

type memProvider struct {
	ratings []Rating
	err     error
}

func (p *memProvider) GetRatings(_ context.Context) ([]Rating, error) {
	return p.ratings, p.err
}

// stubTrainable counts training runs and reports a fixed version.
type stubTrainable struct {
	fakeModel
	trained   int
	trainedAt time.Time
}

func (s *stubTrainable) Train(_ context.Context, _ []Rating) error {
	s.trained++
	s.trainedAt = time.Now()
	return nil
}

func (s *stubTrainable) Version() int             { return s.trained }
func (s *stubTrainable) LastTrainedAt() time.Time { return s.trainedAt }

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	e, err := NewEngine(DefaultConfig(), zerolog.Nop())
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	return e
}

func ratingsOfSize(n int) []Rating {
	out := make([]Rating, n)
	for i := range out {
		out[i] = Rating{UserID: i%5 + 1, ItemID: i%7 + 1, Score: i % 6}
	}
	return out
}

func TestNewEngineRejectsInvalidConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Blend.MinWeight = 1.5
	if _, err := NewEngine(cfg, zerolog.Nop()); err == nil {
		t.Error("NewEngine accepted invalid config")
	}
}

func TestNewEngineNilConfigUsesDefaults(t *testing.T) {
	e, err := NewEngine(nil, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewEngine(nil): %v", err)
	}
	if e.GetConfig().Limits.DefaultK != 5 {
		t.Errorf("default K = %d, want 5", e.GetConfig().Limits.DefaultK)
	}
}

func TestTrainPreconditions(t *testing.T) {
	ctx := context.Background()

	t.Run("no data provider", func(t *testing.T) {
		e := newTestEngine(t)
		e.SetModelFactory(func() TrainableModel { return &stubTrainable{} })
		if err := e.Train(ctx); err == nil {
			t.Error("Train succeeded without a data provider")
		}
	})

	t.Run("no model factory", func(t *testing.T) {
		e := newTestEngine(t)
		e.SetDataProvider(&memProvider{ratings: ratingsOfSize(50)})
		if err := e.Train(ctx); err == nil {
			t.Error("Train succeeded without a model factory")
		}
	})

	t.Run("insufficient ratings", func(t *testing.T) {
		e := newTestEngine(t)
		e.SetDataProvider(&memProvider{ratings: ratingsOfSize(5)})
		e.SetModelFactory(func() TrainableModel { return &stubTrainable{} })
		if err := e.Train(ctx); !errors.Is(err, ErrInsufficientData) {
			t.Errorf("Train err = %v, want ErrInsufficientData", err)
		}
	})

	t.Run("provider failure", func(t *testing.T) {
		e := newTestEngine(t)
		e.SetDataProvider(&memProvider{err: errors.New("db closed")})
		e.SetModelFactory(func() TrainableModel { return &stubTrainable{} })
		if err := e.Train(ctx); err == nil {
			t.Error("Train succeeded despite provider failure")
		}
	})
}

func TestTrainInstallsAndVersions(t *testing.T) {
	e := newTestEngine(t)
	e.SetDataProvider(&memProvider{ratings: ratingsOfSize(30)})
	e.SetModelFactory(func() TrainableModel { return &stubTrainable{} })

	if status := e.GetStatus(); status.Trained {
		t.Fatal("fresh engine reports a trained model")
	}

	if err := e.Train(context.Background()); err != nil {
		t.Fatalf("Train: %v", err)
	}
	status := e.GetStatus()
	if !status.Trained || status.Version != 1 {
		t.Errorf("status after first train = %+v, want trained v1", status)
	}
	if status.RatingCount != 30 {
		t.Errorf("rating count = %d, want 30", status.RatingCount)
	}

	if err := e.Train(context.Background()); err != nil {
		t.Fatalf("retrain: %v", err)
	}
	if status := e.GetStatus(); status.Version != 2 {
		t.Errorf("version after retrain = %d, want 2", status.Version)
	}
}

func TestTrainUpdatesGauges(t *testing.T) {
	e := newTestEngine(t)
	e.SetDataProvider(&memProvider{ratings: ratingsOfSize(30)})
	e.SetModelFactory(func() TrainableModel { return &stubTrainable{} })

	// Any train path updates the gauges, not just the HTTP endpoint.
	if err := e.Train(context.Background()); err != nil {
		t.Fatalf("Train: %v", err)
	}
	status := e.GetStatus()
	if got := testutil.ToFloat64(metrics.ModelVersion); got != float64(status.Version) {
		t.Errorf("model version gauge = %v, want %d", got, status.Version)
	}
	if got := testutil.ToFloat64(metrics.TrainingRatings); got != 30 {
		t.Errorf("training ratings gauge = %v, want 30", got)
	}
}

func TestSetModelClears(t *testing.T) {
	e := newTestEngine(t)
	e.SetModel(&fakeModel{})
	if !e.GetStatus().Trained {
		t.Fatal("SetModel did not install")
	}
	e.SetModel(nil)
	if e.GetStatus().Trained {
		t.Error("SetModel(nil) did not clear the handle")
	}
}

func TestRecommendTruncatesToK(t *testing.T) {
	e := newTestEngine(t)
	catalog := make([]Item, 20)
	for i := range catalog {
		catalog[i] = Item{ID: i + 1, Prior: float64(20 - i)}
	}

	tests := []struct {
		name string
		k    int
		want int
	}{
		{"explicit k", 3, 3},
		{"zero k defaults", 0, 5},
		{"k above max clamps", 100, 20},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := e.Recommend(context.Background(), catalog, Constraints{}, 1, 0, tt.k)
			if err != nil {
				t.Fatalf("Recommend: %v", err)
			}
			if len(got) != tt.want {
				t.Errorf("len = %d, want %d", len(got), tt.want)
			}
		})
	}
}

func TestRecommendPropagatesConstraintErrors(t *testing.T) {
	e := newTestEngine(t)
	c := Constraints{Nutrients: map[Nutrient]Level{NutrientFat: LevelLow}}

	_, err := e.Recommend(context.Background(), []Item{{ID: 1}}, c, 1, 0, 5)
	if !errors.Is(err, ErrInvalidProfile) {
		t.Errorf("err = %v, want ErrInvalidProfile", err)
	}
}

func TestBlendDelegates(t *testing.T) {
	e := newTestEngine(t)
	b := defaultBlender()
	if got, want := e.Blend(3, 5, 10), b.Blend(3, 5, 10); got != want {
		t.Errorf("Engine.Blend = %g, want %g", got, want)
	}
}
