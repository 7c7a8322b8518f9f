// Vitalis - Lifestyle Recommendation and Scoring Engine
// Copyright 2026 Vitalis Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/vitalis-app/vitalis

// Package recommend implements the hybrid recommendation engine.
//
// The engine combines three signals into a single ranked result:
//
//   - Content filtering: attribute-range and tag predicates over the item
//     catalog (calorie bands, percent-daily-value nutrient bands, tag
//     substring matching, exercise attribute equality).
//   - Collaborative filtering: a trained matrix-factorization model that
//     predicts a per-user rating for each candidate item.
//   - Popularity prior: the item's bayesian average rating, used on its own
//     when no collaborative signal is available.
//
// The collaborative prediction and the prior are blended with a confidence
// weight that grows with the requesting user's rating history, so new users
// lean on population-level popularity and heavy raters lean on the
// personalized model.
//
// Results can additionally be augmented with contextual tags derived from
// wall-clock time (season, meal slot); see AugmentWithContext.
//
// # Model Lifecycle
//
// The engine holds the trained model behind an atomic pointer. Train builds
// a fresh model from the full rating set and swaps it in wholesale, so
// concurrent ranking calls never observe a partially-built model. A nil
// model is not an error: ranking falls back to prior-score ordering.
//
// # Thread Safety
//
// All engine operations are safe for concurrent use. Filtering, blending,
// and ranking are pure functions of their inputs.
package recommend
