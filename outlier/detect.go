package outlier

import "github.com/sartorproj/godemand/stats"

// Detection holds flagged indices and the per-point band they were tested
// against. Lower and Upper have one entry per input value.
type Detection struct {
	Indices []int
	Lower   []float64
	Upper   []float64
}

// Outside reports whether v lies strictly outside the band at index i. A NaN
// bound never flags.
func (d Detection) Outside(i int, v float64) bool {
	return v > d.Upper[i] || v < d.Lower[i]
}

// Detector computes bounds and flags points outside them.
type Detector interface {
	Method() Method
	Detect(values []float64, p Params) Detection
}

// Detect runs the detector for method m on values.
func Detect(m Method, values []float64, p Params) (Detection, error) {
	d, err := detectorFor(m)
	if err != nil {
		return Detection{}, err
	}
	return d.Detect(values, p), nil
}

func flag(values []float64, lower, upper []float64) Detection {
	d := Detection{Lower: lower, Upper: upper, Indices: []int{}}
	for i, v := range values {
		if d.Outside(i, v) {
			d.Indices = append(d.Indices, i)
		}
	}
	return d
}

// fixedSigma bounds every point by mean ± k·std of the whole series.
type fixedSigma struct{}

func (fixedSigma) Method() Method { return FixedSigma }

func (fixedSigma) Detect(values []float64, p Params) Detection {
	mean := stats.Mean(values)
	std := stats.PopStd(values)
	upper := mean + p.SigmaMultiplier*std
	lower := mean - p.SigmaMultiplier*std

	lo := make([]float64, len(values))
	hi := make([]float64, len(values))
	for i := range values {
		lo[i] = lower
		hi[i] = upper
	}
	return flag(values, lo, hi)
}

// rollingSigma bounds each point by a centered moving mean ± k·std. Edge
// positions without a full window take the nearest defined band.
type rollingSigma struct{}

func (rollingSigma) Method() Method { return RollingSigma }

func (rollingSigma) Detect(values []float64, p Params) Detection {
	mean, std := stats.CenteredRolling(values, p.RollingWindow)
	stats.FillEdges(mean)
	stats.FillEdges(std)

	lo := make([]float64, len(values))
	hi := make([]float64, len(values))
	for i := range values {
		lo[i] = mean[i] - p.SigmaMultiplier*std[i]
		hi[i] = mean[i] + p.SigmaMultiplier*std[i]
	}
	return flag(values, lo, hi)
}

// seasonalIQR bounds each point by the interquartile fence of its phase in a
// 12-period cycle.
type seasonalIQR struct{}

// SeasonLength is the cycle length assumed by Seasonal IQR.
const SeasonLength = 12

func (seasonalIQR) Method() Method { return SeasonalIQR }

func (seasonalIQR) Detect(values []float64, p Params) Detection {
	n := len(values)
	lo := make([]float64, n)
	hi := make([]float64, n)

	for phase := 0; phase < SeasonLength; phase++ {
		var bucket []float64
		for i := phase; i < n; i += SeasonLength {
			bucket = append(bucket, values[i])
		}
		if len(bucket) == 0 {
			continue
		}

		q1, q3 := stats.Quartiles(bucket)
		iqr := q3 - q1
		lower := q1 - p.IQRMultiplier*iqr
		upper := q3 + p.IQRMultiplier*iqr
		for i := phase; i < n; i += SeasonLength {
			lo[i] = lower
			hi[i] = upper
		}
	}
	return flag(values, lo, hi)
}
