// Vitalis - Lifestyle Recommendation and Scoring Engine
// Copyright 2026 Vitalis Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/vitalis-app/vitalis

// Package lifestyle computes the composite lifestyle score from a user
// profile and a fitness-tracker sample series.
//
// The pipeline is independent of the recommendation engine: basal metabolic
// rate from biometric formulas, an activity-adjusted energy target, a
// wellness score from the divergence between current and goal energy needs,
// a fitness score from aggregated tracker samples, and a placeholder diet
// score, averaged into a single composite.
//
// All operations are pure functions of their inputs.
package lifestyle
