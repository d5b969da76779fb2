package timeseries

import (
	"errors"
	"fmt"
	"math"
	"time"
)

var (
	// ErrEmptySeries is returned when a series has no observations.
	ErrEmptySeries = errors.New("series is empty")
	// ErrLengthMismatch is returned when timestamps and values differ in length.
	ErrLengthMismatch = errors.New("timestamps and values must have the same length")
	// ErrNonFinite is returned when a series contains NaN or Inf.
	ErrNonFinite = errors.New("series contains a non-finite value")
)

// Series represents a demand time series with optional timestamps.
type Series struct {
	Timestamps []time.Time
	Values     []float64
	Name       string
}

// New creates a new time series from values. The slice is copied.
func New(values []float64) *Series {
	v := make([]float64, len(values))
	copy(v, values)
	return &Series{Values: v}
}

// NewWithTimestamps creates a time series with explicit timestamps.
func NewWithTimestamps(timestamps []time.Time, values []float64) (*Series, error) {
	if len(timestamps) != len(values) {
		return nil, fmt.Errorf("%w: %d timestamps, %d values", ErrLengthMismatch, len(timestamps), len(values))
	}
	s := New(values)
	s.Timestamps = make([]time.Time, len(timestamps))
	copy(s.Timestamps, timestamps)
	return s, nil
}

// Len returns the length of the series.
func (s *Series) Len() int {
	return len(s.Values)
}

// HasTimestamps reports whether the series carries one timestamp per value.
func (s *Series) HasTimestamps() bool {
	return len(s.Timestamps) > 0 && len(s.Timestamps) == len(s.Values)
}

// Validate rejects series the statistics cannot be computed on.
func (s *Series) Validate() error {
	if len(s.Values) == 0 {
		return ErrEmptySeries
	}
	if len(s.Timestamps) != 0 && len(s.Timestamps) != len(s.Values) {
		return fmt.Errorf("%w: %d timestamps, %d values", ErrLengthMismatch, len(s.Timestamps), len(s.Values))
	}
	for i, v := range s.Values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w at index %d", ErrNonFinite, i)
		}
	}
	return nil
}

// Tail returns the trailing n observations. The whole series is returned
// when it is not longer than n.
func (s *Series) Tail(n int) *Series {
	if n <= 0 || n >= len(s.Values) {
		return s.Copy()
	}
	return s.Slice(len(s.Values)-n, len(s.Values))
}

// Slice returns a slice of the series from start to end (exclusive).
func (s *Series) Slice(start, end int) *Series {
	if start < 0 {
		start = 0
	}
	if end > len(s.Values) {
		end = len(s.Values)
	}
	if start >= end {
		return &Series{Values: []float64{}, Name: s.Name}
	}

	values := make([]float64, end-start)
	copy(values, s.Values[start:end])

	var timestamps []time.Time
	if s.HasTimestamps() {
		timestamps = make([]time.Time, end-start)
		copy(timestamps, s.Timestamps[start:end])
	}

	return &Series{
		Timestamps: timestamps,
		Values:     values,
		Name:       s.Name,
	}
}

// Copy creates a deep copy of the series.
func (s *Series) Copy() *Series {
	values := make([]float64, len(s.Values))
	copy(values, s.Values)

	var timestamps []time.Time
	if s.Timestamps != nil {
		timestamps = make([]time.Time, len(s.Timestamps))
		copy(timestamps, s.Timestamps)
	}

	return &Series{
		Timestamps: timestamps,
		Values:     values,
		Name:       s.Name,
	}
}

// WithValues returns a copy of the series carrying replacement values and
// the same timestamps and name.
func (s *Series) WithValues(values []float64) *Series {
	out := s.Copy()
	out.Values = make([]float64, len(values))
	copy(out.Values, values)
	return out
}
