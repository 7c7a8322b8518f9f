// Vitalis - Lifestyle Recommendation and Scoring Engine
// Copyright 2026 Vitalis Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/vitalis-app/vitalis

package recommend

import (
	"strings"
	"time"
)

// Meal slot hour windows, inclusive.
//
// The breakfast window follows the historical behavior. The lunch window as
// originally written (11 <= h <= 4) was an empty range; it is fixed here to
// a midday 11:00-14:00 window.
const (
	breakfastStartHour = 5
	breakfastEndHour   = 12
	lunchStartHour     = 11
	lunchEndHour       = 14
)

// ContextTags derives the situational tags for the given wall-clock time:
// exactly one season plus any matching meal slots.
func ContextTags(now time.Time) []string {
	tags := []string{seasonTag(now.Month())}

	h := now.Hour()
	if breakfastStartHour <= h && h <= breakfastEndHour {
		tags = append(tags, "breakfast")
	}
	if lunchStartHour <= h && h <= lunchEndHour {
		tags = append(tags, "lunch")
	}
	return tags
}

// seasonTag maps a month to its quarter season (Mar-May spring, Jun-Aug
// summer, Sep-Nov fall, Dec-Feb winter).
func seasonTag(m time.Month) string {
	switch {
	case m >= time.March && m <= time.May:
		return "spring"
	case m >= time.June && m <= time.August:
		return "summer"
	case m >= time.September && m <= time.November:
		return "fall"
	default:
		return "winter"
	}
}

// Augmenter splices context-specific hits into a primary ranking.
type Augmenter struct {
	cfg ContextConfig

	// now is injectable for deterministic tests.
	now func() time.Time
}

// NewAugmenter creates an augmenter with the given configuration.
func NewAugmenter(cfg ContextConfig) *Augmenter {
	return &Augmenter{cfg: cfg, now: time.Now}
}

// Augment re-runs the pipeline once per derived contextual tag and merges
// the results into the head of the primary ranking.
//
// Tags already present in the caller's request are skipped. Each contextual
// rerun contributes at most TopPerTag hits; at most MaxLead combined hits
// are placed ahead of the primary sequence. The merged sequence is
// deduplicated by item ID keeping first occurrence. With no contextual
// hits the primary sequence is returned unchanged.
//
// The loop is bounded by the fixed derived tag set, so there is no
// recursion and termination is trivial.
func (a *Augmenter) Augment(primary []ScoredItem, rerun RerunFunc, requestedTags []string) []ScoredItem {
	var contextual []ScoredItem

	for _, tag := range ContextTags(a.now()) {
		if containsTag(requestedTags, tag) {
			continue
		}
		hits := rerun(tag)
		if len(hits) > a.cfg.TopPerTag {
			hits = hits[:a.cfg.TopPerTag]
		}
		contextual = append(contextual, hits...)
	}

	if len(contextual) == 0 {
		return primary
	}

	if len(contextual) > a.cfg.MaxLead {
		contextual = contextual[:a.cfg.MaxLead]
	}

	merged := make([]ScoredItem, 0, len(contextual)+len(primary))
	merged = append(merged, contextual...)
	merged = append(merged, primary...)
	return dedupeByID(merged)
}

// containsTag reports whether the tag list already contains tag,
// case-insensitively.
func containsTag(tags []string, tag string) bool {
	for _, t := range tags {
		if strings.EqualFold(t, tag) {
			return true
		}
	}
	return false
}

// dedupeByID removes duplicate items keeping the first occurrence.
func dedupeByID(items []ScoredItem) []ScoredItem {
	seen := make(map[int]struct{}, len(items))
	out := items[:0]
	for _, it := range items {
		if _, ok := seen[it.Item.ID]; ok {
			continue
		}
		seen[it.Item.ID] = struct{}{}
		out = append(out, it)
	}
	return out
}
