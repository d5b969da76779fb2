// Package segmentation classifies a demand series and reduces the
// classification to a single rule number.
//
// Six independent measurements are taken, most of them over the trailing
// history window:
//
//   - volume class (A/B/C) from the cumulative share of absolute volume
//   - variability class (X/Y) from the coefficient of variation
//   - intermittency and density from the share of zero periods
//   - product life cycle status from the full series
//   - trend direction from the normalized least-squares slope
//   - seasonality from the lag-12 autocorrelation of the full series
//
// The rule number is assigned by an ordered cascade; the first matching
// entry wins:
//
//	1 intermittent
//	2 Discontinuous
//	3 New Launch
//	4 stable variability (X)
//	5 volume class C
//	6 any trend
//	7 seasonal
//	8 everything else
//
// # Usage
//
//	engine := segmentation.NewEngine()
//	result, err := engine.Segment(values, 12, map[string]float64{"cov": 0.4})
//
// Overrides apply to that call only. Engine defaults change only through
// SetDefaults, which publishes a new immutable Thresholds value, so an
// Engine can be shared by concurrent callers without locking.
package segmentation
