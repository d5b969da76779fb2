package segmentation

import (
	"math"
	"sort"
	"sync/atomic"

	"github.com/sartorproj/godemand/stats"
	"github.com/sartorproj/godemand/timeseries"
)

const (
	// DefaultHistoryWindow is the number of trailing periods classified.
	DefaultHistoryWindow = 12

	// SeasonLength is the seasonal cycle tested for autocorrelation.
	SeasonLength = 12

	minSeasonalLength  = 2 * SeasonLength
	plcRecentPeriods   = 6
	plcDiscontinuedMin = 4
	plcMatureLength    = 12
)

// Engine segments demand series. The zero value is not usable; create
// engines with NewEngine.
//
// Thread Safety: Safe for concurrent use. Segment never writes engine state.
type Engine struct {
	defaults atomic.Pointer[Thresholds]
}

// NewEngine creates an engine with DefaultThresholds.
func NewEngine() *Engine {
	return NewEngineWithDefaults(DefaultThresholds())
}

// NewEngineWithDefaults creates an engine with the given default thresholds.
func NewEngineWithDefaults(t Thresholds) *Engine {
	e := &Engine{}
	e.defaults.Store(&t)
	return e
}

// Defaults returns a copy of the current default thresholds.
func (e *Engine) Defaults() Thresholds {
	return *e.defaults.Load()
}

// SetDefaults publishes new default thresholds. Calls already in progress
// keep the thresholds they started with.
func (e *Engine) SetDefaults(t Thresholds) error {
	if err := t.Validate(); err != nil {
		return err
	}
	e.defaults.Store(&t)
	return nil
}

// Segment classifies values. historyWindow selects the trailing periods used
// for volume, variability, intermittency and trend; values <= 0 fall back to
// DefaultHistoryWindow. overrides are merged over the engine defaults for
// this call only.
//
// Empty and all-zero input is not an error and resolves to the degenerate
// classification. NaN or Inf values and invalid overrides are errors.
func (e *Engine) Segment(values []float64, historyWindow int, overrides map[string]float64) (Result, error) {
	if len(values) > 0 {
		if err := timeseries.New(values).Validate(); err != nil {
			return Result{}, err
		}
	}
	th, err := e.Defaults().Merge(overrides)
	if err != nil {
		return Result{}, err
	}
	return Classify(values, historyWindow, th), nil
}

// Classify runs the segmentation with fully resolved thresholds.
func Classify(values []float64, historyWindow int, th Thresholds) Result {
	if historyWindow <= 0 {
		historyWindow = DefaultHistoryWindow
	}
	window := timeseries.New(values).Tail(historyWindow).Values

	var r Result
	r.VolumeClass, r.VolumePercentage = volumeClass(window, th)
	r.CovClass, r.CoefficientVariation = covClass(window, th)
	r.Intermittent, r.Density = intermittency(window, th)
	r.SeriesLength = len(values)
	r.PLCStatus = plcStatus(values)
	r.Trend = trend(window, th)
	r.Seasonal = seasonal(values, th)
	r.RuleNumber = AssignRule(r)
	return r
}

// volumeClass compares the window's own cumulative share of absolute volume
// against the A and B cut-offs. This is not a cross-item Pareto ranking: for
// any non-zero window the share is exactly 100%. The total is accumulated in
// the same order as the cumulative share so the two agree bit for bit.
func volumeClass(window []float64, th Thresholds) (VolumeClass, float64) {
	sorted := make([]float64, len(window))
	for i, v := range window {
		sorted[i] = math.Abs(v)
	}
	sort.Sort(sort.Reverse(sort.Float64Slice(sorted)))

	var total float64
	for _, v := range sorted {
		total += v
	}
	if total == 0 {
		return VolumeC, 0
	}

	cumulative := 0.0
	for _, v := range sorted {
		cumulative += v
	}
	pct := cumulative / total * 100

	switch {
	case pct <= th.VolumeA:
		return VolumeA, pct
	case pct <= th.VolumeB:
		return VolumeB, pct
	default:
		return VolumeC, pct
	}
}

func covClass(window []float64, th Thresholds) (CovClass, float64) {
	mean := stats.Mean(window)
	cov := math.Inf(1)
	if mean != 0 {
		cov = stats.PopStd(window) / math.Abs(mean)
	}
	if cov < th.Cov {
		return CovX, cov
	}
	return CovY, cov
}

func intermittency(window []float64, th Thresholds) (bool, float64) {
	zeros := stats.ZeroFraction(window)
	return zeros > th.Intermittent, 1 - zeros
}

func plcStatus(values []float64) PLCStatus {
	n := len(values)
	if n < plcRecentPeriods {
		return NewLaunch
	}
	if stats.CountZeros(values[n-plcRecentPeriods:]) >= plcDiscontinuedMin {
		return Discontinuous
	}
	if n < plcMatureLength {
		return NewLaunch
	}
	return Mature
}

func trend(window []float64, th Thresholds) Trend {
	if len(window) < 2 {
		return TrendNone
	}

	normalized := 0.0
	if scale := stats.MeanAbs(window); scale > 0 {
		normalized = stats.Slope(window) / scale
	}

	switch {
	case math.Abs(normalized) < th.Trend:
		return TrendNone
	case normalized > 0:
		return TrendUpward
	default:
		return TrendDownward
	}
}

func seasonal(values []float64, th Thresholds) bool {
	if len(values) < minSeasonalLength {
		return false
	}
	r, ok := stats.LagCorrelation(values, SeasonLength)
	return ok && r > th.Seasonality
}
