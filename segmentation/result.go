package segmentation

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
)

// ErrInvalidResult is returned when a Result supplied from outside the engine
// holds a value no classification can produce.
var ErrInvalidResult = errors.New("invalid segmentation result")

// VolumeClass is the ABC volume category.
type VolumeClass string

const (
	VolumeA VolumeClass = "A"
	VolumeB VolumeClass = "B"
	VolumeC VolumeClass = "C"
)

// CovClass is the variability category: X is stable, Y is erratic.
type CovClass string

const (
	CovX CovClass = "X"
	CovY CovClass = "Y"
)

// PLCStatus is the product life cycle stage.
type PLCStatus string

const (
	NewLaunch     PLCStatus = "New Launch"
	Discontinuous PLCStatus = "Discontinuous"
	Mature        PLCStatus = "Mature"
)

// Trend is the direction of the normalized least-squares slope.
type Trend string

const (
	TrendNone     Trend = "none"
	TrendUpward   Trend = "upward"
	TrendDownward Trend = "downward"
)

// Result is the classification of one series. It is built once per
// Segment call and never modified afterwards.
type Result struct {
	VolumeClass          VolumeClass `json:"volume_class"`
	VolumePercentage     float64     `json:"volume_percentage"`
	CovClass             CovClass    `json:"cov_class"`
	CoefficientVariation float64     `json:"coefficient_variation"` // +Inf when the window mean is zero
	Intermittent         bool        `json:"intermittent"`
	Density              float64     `json:"density"`
	SeriesLength         int         `json:"series_length"`
	PLCStatus            PLCStatus   `json:"plc_status"`
	Trend                Trend       `json:"trend"`
	Seasonal             bool        `json:"seasonal"`
	RuleNumber           int         `json:"rule_number"`
}

// CovUnbounded reports whether the coefficient of variation is infinite.
func (r Result) CovUnbounded() bool {
	return math.IsInf(r.CoefficientVariation, 1)
}

// Validate checks that every categorical field holds a known value, the rule
// number is within the cascade and density is a share.
func (r Result) Validate() error {
	switch r.VolumeClass {
	case VolumeA, VolumeB, VolumeC:
	default:
		return fmt.Errorf("%w: volume_class %q", ErrInvalidResult, r.VolumeClass)
	}
	switch r.CovClass {
	case CovX, CovY:
	default:
		return fmt.Errorf("%w: cov_class %q", ErrInvalidResult, r.CovClass)
	}
	switch r.PLCStatus {
	case NewLaunch, Discontinuous, Mature:
	default:
		return fmt.Errorf("%w: plc_status %q", ErrInvalidResult, r.PLCStatus)
	}
	switch r.Trend {
	case TrendNone, TrendUpward, TrendDownward:
	default:
		return fmt.Errorf("%w: trend %q", ErrInvalidResult, r.Trend)
	}
	if r.RuleNumber < 1 || r.RuleNumber > FallbackRule {
		return fmt.Errorf("%w: rule_number %d outside 1..%d", ErrInvalidResult, r.RuleNumber, FallbackRule)
	}
	if !(r.Density >= 0 && r.Density <= 1) {
		return fmt.Errorf("%w: density %v outside [0, 1]", ErrInvalidResult, r.Density)
	}
	if r.SeriesLength < 0 {
		return fmt.Errorf("%w: negative series_length", ErrInvalidResult)
	}
	return nil
}

type resultJSON struct {
	VolumeClass          VolumeClass `json:"volume_class"`
	VolumePercentage     float64     `json:"volume_percentage"`
	CovClass             CovClass    `json:"cov_class"`
	CoefficientVariation *float64    `json:"coefficient_variation"`
	CovUnbounded         bool        `json:"coefficient_variation_unbounded,omitempty"`
	Intermittent         bool        `json:"intermittent"`
	Density              float64     `json:"density"`
	SeriesLength         int         `json:"series_length"`
	PLCStatus            PLCStatus   `json:"plc_status"`
	Trend                Trend       `json:"trend"`
	Seasonal             bool        `json:"seasonal"`
	RuleNumber           int         `json:"rule_number"`
}

// MarshalJSON encodes an unbounded coefficient of variation as null with
// coefficient_variation_unbounded set, since JSON has no infinity.
func (r Result) MarshalJSON() ([]byte, error) {
	out := resultJSON{
		VolumeClass:      r.VolumeClass,
		VolumePercentage: r.VolumePercentage,
		CovClass:         r.CovClass,
		Intermittent:     r.Intermittent,
		Density:          r.Density,
		SeriesLength:     r.SeriesLength,
		PLCStatus:        r.PLCStatus,
		Trend:            r.Trend,
		Seasonal:         r.Seasonal,
		RuleNumber:       r.RuleNumber,
	}
	if r.CovUnbounded() {
		out.CovUnbounded = true
	} else {
		cov := r.CoefficientVariation
		out.CoefficientVariation = &cov
	}
	return json.Marshal(out)
}

// UnmarshalJSON is the inverse of MarshalJSON.
func (r *Result) UnmarshalJSON(data []byte) error {
	var in resultJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	*r = Result{
		VolumeClass:      in.VolumeClass,
		VolumePercentage: in.VolumePercentage,
		CovClass:         in.CovClass,
		Intermittent:     in.Intermittent,
		Density:          in.Density,
		SeriesLength:     in.SeriesLength,
		PLCStatus:        in.PLCStatus,
		Trend:            in.Trend,
		Seasonal:         in.Seasonal,
		RuleNumber:       in.RuleNumber,
	}
	switch {
	case in.CovUnbounded || in.CoefficientVariation == nil:
		r.CoefficientVariation = math.Inf(1)
	default:
		r.CoefficientVariation = *in.CoefficientVariation
	}
	return nil
}
