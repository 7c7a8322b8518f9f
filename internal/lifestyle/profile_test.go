// Vitalis - Lifestyle Recommendation and Scoring Engine
// Copyright 2026 Vitalis Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/vitalis-app/vitalis

package lifestyle

import (
	"errors"
	"testing"
)

func TestParseActivityLevel(t *testing.T) {
	tests := []struct {
		input   string
		want    ActivityLevel
		wantErr bool
	}{
		{input: "sedentary", want: Sedentary},
		{input: "lightly active", want: LightlyActive},
		{input: "moderately active", want: ModeratelyActive},
		{input: "very active", want: VeryActive},
		{input: "active", want: VeryActive},
		{input: "extra active", want: ExtraActive},
		{input: "  Extra Active  ", want: ExtraActive},
		{input: "couch potato", wantErr: true},
		{input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseActivityLevel(tt.input)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidProfile) {
					t.Errorf("ParseActivityLevel(%q) error = %v, want ErrInvalidProfile", tt.input, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseActivityLevel(%q) error = %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseActivityLevel(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestActivityCoefficients(t *testing.T) {
	tests := []struct {
		level ActivityLevel
		want  float64
	}{
		{Sedentary, 1.2},
		{LightlyActive, 1.375},
		{ModeratelyActive, 1.55},
		{VeryActive, 1.725},
		{ExtraActive, 1.9},
	}

	for _, tt := range tests {
		t.Run(tt.level.String(), func(t *testing.T) {
			got, err := tt.level.Coefficient()
			if err != nil {
				t.Fatalf("Coefficient() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("Coefficient() = %v, want %v", got, tt.want)
			}
		})
	}

	if _, err := ActivityLevel(42).Coefficient(); !errors.Is(err, ErrInvalidProfile) {
		t.Errorf("Coefficient() on unmapped level: error = %v, want ErrInvalidProfile", err)
	}
}

func TestParseGender(t *testing.T) {
	tests := []struct {
		input   string
		want    Gender
		wantErr bool
	}{
		{input: "M", want: GenderMale},
		{input: "m", want: GenderMale},
		{input: "F", want: GenderFemale},
		{input: "f", want: GenderFemale},
		{input: "x", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseGender(tt.input)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidProfile) {
					t.Errorf("ParseGender(%q) error = %v, want ErrInvalidProfile", tt.input, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseGender(%q) error = %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseGender(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseWeightGoal(t *testing.T) {
	tests := []struct {
		input   string
		want    WeightGoal
		wantErr bool
	}{
		{input: "lose", want: Lose},
		{input: "gain", want: Gain},
		{input: "maintain", want: Maintain},
		{input: "LOSE", want: Lose},
		{input: "bulk", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseWeightGoal(tt.input)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidProfile) {
					t.Errorf("ParseWeightGoal(%q) error = %v, want ErrInvalidProfile", tt.input, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseWeightGoal(%q) error = %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseWeightGoal(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestUnitConversions(t *testing.T) {
	if got := PoundsToKilograms(1); !almostEqual(got, 0.45359237) {
		t.Errorf("PoundsToKilograms(1) = %v", got)
	}
	if got := InchesToCentimeters(1); !almostEqual(got, 2.54) {
		t.Errorf("InchesToCentimeters(1) = %v", got)
	}
	if got := PoundsToKilograms(176); !almostEqual(got, 176*0.45359237) {
		t.Errorf("PoundsToKilograms(176) = %v", got)
	}
}
