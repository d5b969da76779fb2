package stats

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// LagCorrelation returns the Pearson correlation between values[:n-lag] and
// values[lag:]. ok is false when the series is too short for the lag or when
// either side has zero variance and the correlation is undefined.
func LagCorrelation(values []float64, lag int) (r float64, ok bool) {
	n := len(values)
	if lag <= 0 || n-lag < 2 {
		return 0, false
	}

	r = stat.Correlation(values[:n-lag], values[lag:], nil)
	if math.IsNaN(r) || math.IsInf(r, 0) {
		return 0, false
	}
	return r, true
}
