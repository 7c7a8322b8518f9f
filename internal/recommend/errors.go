// Vitalis - Lifestyle Recommendation and Scoring Engine
// Copyright 2026 Vitalis Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/vitalis-app/vitalis

package recommend

import "errors"

// Sentinel errors returned by the engine. Callers match with errors.Is to
// distinguish bad input from missing data. An absent collaborative model is
// not an error; ranking falls back to prior ordering.
var (
	// ErrInvalidConstraint indicates an unrecognized qualitative nutrient
	// label or an otherwise malformed constraint set.
	ErrInvalidConstraint = errors.New("invalid constraint")

	// ErrInvalidProfile indicates an unusable user profile value, such as
	// a non-positive daily calorie figure.
	ErrInvalidProfile = errors.New("invalid profile")

	// ErrInsufficientData indicates the training set is too small to build
	// a model.
	ErrInsufficientData = errors.New("insufficient data")
)
