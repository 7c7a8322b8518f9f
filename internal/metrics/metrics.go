// Vitalis - Lifestyle Recommendation and Scoring Engine
// Copyright 2026 Vitalis Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/vitalis-app/vitalis

// Package metrics exposes Prometheus instrumentation for the API surface,
// the recommendation engine, model training, and the tracker upstream.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// API endpoint metrics.
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "vitalis_api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "vitalis_api_request_duration_seconds",
			Help:    "Duration of API requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	// Recommendation pipeline metrics.
	RecommendationsServed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "vitalis_recommendations_served_total",
			Help: "Total recommendation responses by item kind",
		},
		[]string{"kind"},
	)

	RecommendationCandidates = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "vitalis_recommendation_candidates",
			Help:    "Candidate set size after constraint filtering",
			Buckets: []float64{0, 1, 5, 10, 25, 50, 100, 250, 500, 1000},
		},
	)

	// Training metrics.
	TrainingRuns = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "vitalis_training_runs_total",
			Help: "Total model training attempts by outcome",
		},
		[]string{"outcome"}, // "success", "insufficient_data", "error"
	)

	TrainingDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "vitalis_training_duration_seconds",
			Help:    "Duration of model training runs in seconds",
			Buckets: []float64{0.1, 0.5, 1, 5, 15, 30, 60, 120, 300},
		},
	)

	ModelVersion = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "vitalis_model_version",
			Help: "Version counter of the installed collaborative model",
		},
	)

	TrainingRatings = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "vitalis_training_ratings",
			Help: "Number of ratings used in the last successful training run",
		},
	)

	// Tracker upstream metrics.
	TrackerFetches = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "vitalis_tracker_fetches_total",
			Help: "Total tracker fetch attempts by outcome",
		},
		[]string{"outcome"}, // "success", "error"
	)
)

// RecordAPIRequest records one handled HTTP request.
func RecordAPIRequest(method, endpoint string, status int, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, strconv.Itoa(status)).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// RecordTraining records the outcome of a model training run.
func RecordTraining(outcome string, duration time.Duration) {
	TrainingRuns.WithLabelValues(outcome).Inc()
	if outcome == "success" {
		TrainingDuration.Observe(duration.Seconds())
	}
}

// RecordTrackerFetch records a tracker upstream call.
func RecordTrackerFetch(err error) {
	if err != nil {
		TrackerFetches.WithLabelValues("error").Inc()
		return
	}
	TrackerFetches.WithLabelValues("success").Inc()
}
