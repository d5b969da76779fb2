package stats

import "math"

// CenteredRolling computes the moving mean and sample standard deviation over
// a window centered on each position. For an even window the extra point is
// taken from the past: position i covers [i-window/2, i+(window-1)/2].
// Positions whose window would run off either end are NaN.
func CenteredRolling(values []float64, window int) (mean, std []float64) {
	n := len(values)
	mean = make([]float64, n)
	std = make([]float64, n)
	for i := range mean {
		mean[i] = math.NaN()
		std[i] = math.NaN()
	}
	if window < 1 {
		return mean, std
	}

	before := window / 2
	after := (window - 1) / 2
	for i := before; i+after < n; i++ {
		w := values[i-before : i+after+1]
		mean[i] = Mean(w)
		std[i] = SampleStd(w)
	}
	return mean, std
}

// FillEdges replaces NaN entries in place by propagating the next defined
// value backward, then the previous defined value forward. A slice with no
// defined value is left unchanged.
func FillEdges(values []float64) {
	next := math.NaN()
	for i := len(values) - 1; i >= 0; i-- {
		if math.IsNaN(values[i]) {
			values[i] = next
		} else {
			next = values[i]
		}
	}

	prev := math.NaN()
	for i := range values {
		if math.IsNaN(values[i]) {
			values[i] = prev
		} else {
			prev = values[i]
		}
	}
}
