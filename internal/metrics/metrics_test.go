// Vitalis - Lifestyle Recommendation and Scoring Engine
// Copyright 2026 Vitalis Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/vitalis-app/vitalis

package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRecordAPIRequest(t *testing.T) {
	before := testutil.CollectAndCount(APIRequestsTotal)
	RecordAPIRequest("GET", "/api/v1/recommendations/recipes", 200, 25*time.Millisecond)
	after := testutil.CollectAndCount(APIRequestsTotal)
	if after <= before-1 {
		t.Errorf("APIRequestsTotal series count did not grow: before=%d after=%d", before, after)
	}
}

func TestRecordTraining(t *testing.T) {
	RecordTraining("success", 2*time.Second)
	RecordTraining("insufficient_data", 0)
	RecordTraining("error", 0)

	got := testutil.ToFloat64(TrainingRuns.WithLabelValues("success"))
	if got < 1 {
		t.Errorf("TrainingRuns success = %v, want >= 1", got)
	}
}

func TestRecordTrackerFetch(t *testing.T) {
	RecordTrackerFetch(nil)
	RecordTrackerFetch(errors.New("boom"))

	if got := testutil.ToFloat64(TrackerFetches.WithLabelValues("error")); got < 1 {
		t.Errorf("TrackerFetches error = %v, want >= 1", got)
	}
	if got := testutil.ToFloat64(TrackerFetches.WithLabelValues("success")); got < 1 {
		t.Errorf("TrackerFetches success = %v, want >= 1", got)
	}
}

func TestModelVersionGauge(t *testing.T) {
	ModelVersion.Set(3)
	if got := testutil.ToFloat64(ModelVersion); got != 3 {
		t.Errorf("ModelVersion = %v, want 3", got)
	}
}
