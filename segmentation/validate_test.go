package segmentation

import (
	"errors"
	"math"
	"math/rand"
	"testing"

	"github.com/sartorproj/godemand/timeseries"
)

func TestSegmentRejectsNonFinite(t *testing.T) {
	engine := NewEngine()

	tests := []struct {
		name  string
		value float64
	}{
		{"NaN", math.NaN()},
		{"+Inf", math.Inf(1)},
		{"-Inf", math.Inf(-1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			values := []float64{5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, tt.value}
			if _, err := engine.Segment(values, 12, nil); !errors.Is(err, timeseries.ErrNonFinite) {
				t.Errorf("Expected ErrNonFinite, got %v", err)
			}
		})
	}

	if _, err := engine.Segment(nil, 12, nil); err != nil {
		t.Errorf("Empty input should not be an error, got %v", err)
	}
}

func TestVolumeShareIsExactlyFull(t *testing.T) {
	engine := NewEngine()
	rng := rand.New(rand.NewSource(7))
	overrides := map[string]float64{KeyVolumeA: 100}

	for draw := 0; draw < 2000; draw++ {
		values := make([]float64, 12)
		for i := range values {
			values[i] = math.Round(rng.Float64()*1000) / 10
		}

		r, err := engine.Segment(values, 12, overrides)
		if err != nil {
			t.Fatalf("Segment failed: %v", err)
		}
		if r.VolumePercentage != 100 {
			t.Fatalf("values %v: expected share 100, got %v", values, r.VolumePercentage)
		}
		if r.VolumeClass != VolumeA {
			t.Fatalf("values %v: expected class A, got %s", values, r.VolumeClass)
		}
	}
}

func TestResultValidate(t *testing.T) {
	valid, err := NewEngine().Segment(repeat(seasonalPattern, 3), 12, nil)
	if err != nil {
		t.Fatalf("Segment failed: %v", err)
	}
	if err := valid.Validate(); err != nil {
		t.Fatalf("Engine output should validate, got %v", err)
	}

	tests := []struct {
		name   string
		mutate func(*Result)
	}{
		{"unknown trend", func(r *Result) { r.Trend = "sideways" }},
		{"empty trend", func(r *Result) { r.Trend = "" }},
		{"unknown volume class", func(r *Result) { r.VolumeClass = "Z" }},
		{"unknown cov class", func(r *Result) { r.CovClass = "W" }},
		{"unknown plc status", func(r *Result) { r.PLCStatus = "Retired" }},
		{"rule zero", func(r *Result) { r.RuleNumber = 0 }},
		{"rule out of range", func(r *Result) { r.RuleNumber = 42 }},
		{"density above one", func(r *Result) { r.Density = 1.5 }},
		{"density NaN", func(r *Result) { r.Density = math.NaN() }},
		{"negative length", func(r *Result) { r.SeriesLength = -1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := valid
			tt.mutate(&r)
			if err := r.Validate(); !errors.Is(err, ErrInvalidResult) {
				t.Errorf("Expected ErrInvalidResult, got %v", err)
			}
		})
	}
}
