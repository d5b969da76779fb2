package stats

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Slope returns the ordinary least-squares slope of values regressed on the
// index 0..n-1. It is 0 for fewer than two points.
func Slope(values []float64) float64 {
	n := len(values)
	if n < 2 {
		return 0
	}

	x := make([]float64, n)
	floats.Span(x, 0, float64(n-1))

	_, beta := stat.LinearRegression(x, values, nil, false)
	return beta
}
