package segmentation

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"
)

// ErrInvalidThreshold is returned for unknown or non-finite threshold overrides.
var ErrInvalidThreshold = errors.New("invalid threshold")

// Threshold override keys.
const (
	KeyVolumeA      = "volume_a"
	KeyVolumeB      = "volume_b"
	KeyCov          = "cov"
	KeyIntermittent = "intermittent"
	KeyTrend        = "trend"
	KeySeasonality  = "seasonality"
)

// Thresholds holds the cut-offs used by the segmentation measurements.
// It is a value type; copies are independent.
type Thresholds struct {
	VolumeA      float64 `json:"volume_a" yaml:"volume_a"`         // cumulative share (%) at or below which volume is A
	VolumeB      float64 `json:"volume_b" yaml:"volume_b"`         // cumulative share (%) at or below which volume is B
	Cov          float64 `json:"cov" yaml:"cov"`                   // coefficient of variation below which a series is X
	Intermittent float64 `json:"intermittent" yaml:"intermittent"` // zero share above which a series is intermittent
	Trend        float64 `json:"trend" yaml:"trend"`               // |normalized slope| below which there is no trend
	Seasonality  float64 `json:"seasonality" yaml:"seasonality"`   // lag-12 autocorrelation above which a series is seasonal
}

// DefaultThresholds returns the default thresholds.
func DefaultThresholds() Thresholds {
	return Thresholds{
		VolumeA:      85.0,
		VolumeB:      95.0,
		Cov:          0.5,
		Intermittent: 0.5,
		Trend:        0.05,
		Seasonality:  0.1,
	}
}

func (t *Thresholds) field(key string) *float64 {
	switch strings.TrimSuffix(strings.ToLower(strings.TrimSpace(key)), "_threshold") {
	case KeyVolumeA:
		return &t.VolumeA
	case KeyVolumeB:
		return &t.VolumeB
	case KeyCov:
		return &t.Cov
	case KeyIntermittent:
		return &t.Intermittent
	case KeyTrend:
		return &t.Trend
	case KeySeasonality:
		return &t.Seasonality
	}
	return nil
}

// Merge returns a copy of t with overrides applied. Keys may be given with
// or without a "_threshold" suffix. t itself is never modified.
func (t Thresholds) Merge(overrides map[string]float64) (Thresholds, error) {
	if len(overrides) == 0 {
		return t, nil
	}

	keys := make([]string, 0, len(overrides))
	for k := range overrides {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		v := overrides[k]
		f := t.field(k)
		if f == nil {
			return Thresholds{}, fmt.Errorf("%w: unknown key %q", ErrInvalidThreshold, k)
		}
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return Thresholds{}, fmt.Errorf("%w: %s must be finite", ErrInvalidThreshold, k)
		}
		*f = v
	}
	return t, nil
}

// Validate checks that every threshold is finite.
func (t Thresholds) Validate() error {
	for _, v := range []float64{t.VolumeA, t.VolumeB, t.Cov, t.Intermittent, t.Trend, t.Seasonality} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: thresholds must be finite", ErrInvalidThreshold)
		}
	}
	return nil
}
