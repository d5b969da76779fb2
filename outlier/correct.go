package outlier

// Corrector rewrites flagged points. Correct returns a new slice and leaves
// values untouched.
type Corrector interface {
	Type() CorrectionType
	Correct(values []float64, d Detection) []float64
}

// Correct applies correction c to the points flagged in d.
func Correct(c CorrectionType, values []float64, d Detection) ([]float64, error) {
	corrector, err := correctorFor(c)
	if err != nil {
		return nil, err
	}
	return corrector.Correct(values, d), nil
}

// limit clamps each flagged point to the bound it crossed.
type limit struct{}

func (limit) Type() CorrectionType { return CorrectionLimit }

func (limit) Correct(values []float64, d Detection) []float64 {
	out := make([]float64, len(values))
	copy(out, values)
	for _, i := range d.Indices {
		out[i] = clamp(values[i], d.Lower[i], d.Upper[i])
	}
	return out
}

func clamp(v, lower, upper float64) float64 {
	switch {
	case v > upper:
		return upper
	case v < lower:
		return lower
	}
	return v
}

// interpolation replaces each flagged point with the midpoint of its nearest
// unflagged neighbors, or copies the only neighbor found. A series with every
// point flagged falls back to clamping.
type interpolation struct{}

func (interpolation) Type() CorrectionType { return CorrectionInterpolation }

func (interpolation) Correct(values []float64, d Detection) []float64 {
	out := make([]float64, len(values))
	copy(out, values)

	flagged := make(map[int]bool, len(d.Indices))
	for _, i := range d.Indices {
		flagged[i] = true
	}

	for _, i := range d.Indices {
		prev := i - 1
		for prev >= 0 && flagged[prev] {
			prev--
		}
		next := i + 1
		for next < len(values) && flagged[next] {
			next++
		}

		hasPrev, hasNext := prev >= 0, next < len(values)
		switch {
		case hasPrev && hasNext:
			out[i] = (values[prev] + values[next]) / 2
		case hasPrev:
			out[i] = values[prev]
		case hasNext:
			out[i] = values[next]
		default:
			out[i] = clamp(values[i], d.Lower[i], d.Upper[i])
		}
	}
	return out
}
