// Vitalis - Lifestyle Recommendation and Scoring Engine
// Copyright 2026 Vitalis Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/vitalis-app/vitalis

package recommend

import "testing"

func TestDefaultConfigValid(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Errorf("DefaultConfig().Validate() = %v", err)
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"min weight zero", func(c *Config) { c.Blend.MinWeight = 0 }},
		{"min weight one", func(c *Config) { c.Blend.MinWeight = 1 }},
		{"max below min", func(c *Config) { c.Blend.MaxWeight = 0.1 }},
		{"max weight one", func(c *Config) { c.Blend.MaxWeight = 1 }},
		{"steepness zero", func(c *Config) { c.Blend.Steepness = 0 }},
		{"negative midpoint", func(c *Config) { c.Blend.Midpoint = -1 }},
		{"top per tag zero", func(c *Config) { c.Context.TopPerTag = 0 }},
		{"negative max lead", func(c *Config) { c.Context.MaxLead = -1 }},
		{"default k zero", func(c *Config) { c.Limits.DefaultK = 0 }},
		{"max k below default", func(c *Config) { c.Limits.MaxK = 1 }},
		{"min ratings zero", func(c *Config) { c.Training.MinRatings = 0 }},
		{"timeout zero", func(c *Config) { c.Training.Timeout = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("Validate() = nil, want error")
			}
		})
	}
}

func TestConfigClone(t *testing.T) {
	cfg := DefaultConfig()
	cp := cfg.Clone()

	cp.Limits.DefaultK = 99
	if cfg.Limits.DefaultK == 99 {
		t.Error("Clone shares state with the original")
	}
}
