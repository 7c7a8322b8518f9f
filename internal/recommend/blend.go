// Vitalis - Lifestyle Recommendation and Scoring Engine
// Copyright 2026 Vitalis Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/vitalis-app/vitalis

package recommend

import "math"

// Blend combines an item's popularity prior with a collaborative prediction.
//
// The collaborative component gets a confidence weight that grows
// logistically with the requesting user's rating count:
//
//	w = minW + (maxW - minW) * sigmoid(count; k, x0)
//
// The weight is strictly inside (minW, maxW) for every finite non-negative
// count, so the model never fully replaces the prior and is never ignored.
type Blender struct {
	cfg BlendConfig
}

// NewBlender creates a blender from the given configuration.
func NewBlender(cfg BlendConfig) *Blender {
	return &Blender{cfg: cfg}
}

// Weight returns the confidence weight on the collaborative component for a
// user with the given rating count.
func (b *Blender) Weight(ratingCount int) float64 {
	s := sigmoid(float64(ratingCount), b.cfg.Steepness, b.cfg.Midpoint)
	w := b.cfg.MinWeight + (b.cfg.MaxWeight-b.cfg.MinWeight)*s
	// The sigmoid saturates to exactly 1.0 in float64 well before the count
	// overflows, which would pin w to MaxWeight. Keep the bound open.
	if w >= b.cfg.MaxWeight {
		return math.Nextafter(b.cfg.MaxWeight, b.cfg.MinWeight)
	}
	return w
}

// Blend returns w*prediction + (1-w)*prior for the confidence weight w
// derived from ratingCount.
func (b *Blender) Blend(prior, prediction float64, ratingCount int) float64 {
	w := b.Weight(ratingCount)
	return w*prediction + (1-w)*prior
}

// sigmoid is the logistic function 1 / (1 + e^(-k*(x-x0))).
func sigmoid(x, k, x0 float64) float64 {
	return 1.0 / (1.0 + math.Exp(-k*(x-x0)))
}
