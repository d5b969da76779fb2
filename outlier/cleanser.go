package outlier

import (
	"sync/atomic"

	"github.com/sartorproj/godemand/segmentation"
	"github.com/sartorproj/godemand/timeseries"
)

// Result is the outcome of one Cleanse call.
type Result struct {
	CorrectedSeries []float64      `json:"corrected_series"`
	OutlierIndices  []int          `json:"outlier_indices"`
	MethodUsed      Method         `json:"method_used"`
	CorrectionType  CorrectionType `json:"correction_type"`

	// Lower and Upper are the bands the original values were tested against.
	Lower []float64 `json:"-"`
	Upper []float64 `json:"-"`
}

// Cleanser detects and corrects outliers.
//
// Thread Safety: Safe for concurrent use. Cleanse never writes cleanser state.
type Cleanser struct {
	defaults atomic.Pointer[Params]
}

// NewCleanser creates a cleanser with DefaultParams.
func NewCleanser() *Cleanser {
	c := &Cleanser{}
	p := DefaultParams()
	c.defaults.Store(&p)
	return c
}

// Defaults returns a copy of the current default parameters.
func (c *Cleanser) Defaults() Params {
	return *c.defaults.Load()
}

// SetDefaults publishes new default parameters.
func (c *Cleanser) SetDefaults(p Params) error {
	if err := p.Validate(); err != nil {
		return err
	}
	c.defaults.Store(&p)
	return nil
}

// CleanseWithOverrides merges overrides over the cleanser defaults for this
// call only and runs Cleanse.
func (c *Cleanser) CleanseWithOverrides(values []float64, seg segmentation.Result, overrides map[string]any) (Result, error) {
	p, err := c.Defaults().Merge(overrides)
	if err != nil {
		return Result{}, err
	}
	return c.Cleanse(values, seg, p)
}

// Cleanse selects a detection method from seg, flags outliers in values and
// corrects them on a copy.
func (c *Cleanser) Cleanse(values []float64, seg segmentation.Result, p Params) (Result, error) {
	if err := timeseries.New(values).Validate(); err != nil {
		return Result{}, err
	}
	if err := p.Validate(); err != nil {
		return Result{}, err
	}
	if err := seg.Validate(); err != nil {
		return Result{}, err
	}

	method := SelectMethod(seg)
	detection, err := Detect(method, values, p)
	if err != nil {
		return Result{}, err
	}
	corrected, err := Correct(p.Correction, values, detection)
	if err != nil {
		return Result{}, err
	}

	return Result{
		CorrectedSeries: corrected,
		OutlierIndices:  detection.Indices,
		MethodUsed:      method,
		CorrectionType:  p.Correction,
		Lower:           detection.Lower,
		Upper:           detection.Upper,
	}, nil
}
