package stats

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Mean returns the arithmetic mean, or 0 for an empty slice.
func Mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	return stat.Mean(values, nil)
}

// PopStd returns the population standard deviation (divisor n), or 0 for an
// empty slice.
func PopStd(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	_, std := stat.PopMeanStdDev(values, nil)
	return std
}

// SampleStd returns the sample standard deviation (divisor n-1). It is NaN
// for fewer than two points.
func SampleStd(values []float64) float64 {
	if len(values) < 2 {
		return math.NaN()
	}
	return stat.StdDev(values, nil)
}

// MeanAbs returns the mean of absolute values, or 0 for an empty slice.
func MeanAbs(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	return AbsSum(values) / float64(len(values))
}

// AbsSum returns the sum of absolute values.
func AbsSum(values []float64) float64 {
	return floats.Norm(values, 1)
}

// CountZeros returns the number of observations exactly equal to zero.
func CountZeros(values []float64) int {
	return floats.Count(func(v float64) bool { return v == 0 }, values)
}

// ZeroFraction returns the share of exact zeros, or 0 for an empty slice.
func ZeroFraction(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	return float64(CountZeros(values)) / float64(len(values))
}
