package outlier

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func band(n int, lower, upper float64) ([]float64, []float64) {
	lo := make([]float64, n)
	hi := make([]float64, n)
	for i := range lo {
		lo[i] = lower
		hi[i] = upper
	}
	return lo, hi
}

func TestLimitCorrection(t *testing.T) {
	values := []float64{-50, 5, 50}
	lo, hi := band(3, 0, 10)
	d := Detection{Indices: []int{0, 2}, Lower: lo, Upper: hi}

	out, err := Correct(CorrectionLimit, values, d)
	assert.NoError(t, err)
	assert.Equal(t, []float64{0, 5, 10}, out)
	assert.Equal(t, []float64{-50, 5, 50}, values)
}

func TestInterpolationCorrection(t *testing.T) {
	lo, hi := band(6, 0, 10)

	tests := []struct {
		name     string
		values   []float64
		indices  []int
		expected []float64
	}{
		{"consecutive", []float64{1, 2, 100, 200, 5, 6}, []int{2, 3}, []float64{1, 2, 3.5, 3.5, 5, 6}},
		{"leading", []float64{100, 2, 3, 4, 5, 6}, []int{0}, []float64{2, 2, 3, 4, 5, 6}},
		{"trailing run", []float64{1, 2, 3, 4, 100, 200}, []int{4, 5}, []float64{1, 2, 3, 4, 4, 4}},
		{"all flagged", []float64{-5, 20, 7, 30, -1, 50}, []int{0, 1, 2, 3, 4, 5}, []float64{0, 10, 7, 10, 0, 10}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := Detection{Indices: tt.indices, Lower: lo, Upper: hi}
			out, err := Correct(CorrectionInterpolation, tt.values, d)
			assert.NoError(t, err)
			assert.Equal(t, tt.expected, out)
		})
	}
}

func TestParseCorrectionType(t *testing.T) {
	c, err := ParseCorrectionType(" Interpolation ")
	assert.NoError(t, err)
	assert.Equal(t, CorrectionInterpolation, c)

	_, err = ParseCorrectionType("smooth")
	assert.ErrorIs(t, err, ErrInvalidParams)
}

func TestParamsMerge(t *testing.T) {
	p, err := DefaultParams().Merge(map[string]any{
		"rolling_window":   "4",
		"iqr_multiplier":   1.5,
		"sigma_multiplier": 2,
	})
	assert.NoError(t, err)
	assert.Equal(t, 4, p.RollingWindow)
	assert.Equal(t, 1.5, p.IQRMultiplier)
	assert.Equal(t, 2.0, p.SigmaMultiplier)

	_, err = DefaultParams().Merge(map[string]any{"rolling_window": 2.5})
	assert.ErrorIs(t, err, ErrInvalidParams)

	_, err = DefaultParams().Merge(map[string]any{"sigma_multiplier": -1.0})
	assert.ErrorIs(t, err, ErrInvalidParams)

	_, err = DefaultParams().Merge(map[string]any{"window": 3})
	assert.ErrorIs(t, err, ErrInvalidParams)

	_, err = DefaultParams().Merge(map[string]any{"correction_type": 1})
	assert.ErrorIs(t, err, ErrInvalidParams)
}
