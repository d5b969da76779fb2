// Package outlier detects and corrects outliers in a demand series.
//
// The detection method is chosen from the series' segmentation, not by the
// caller:
//
//	seasonal and trending  -> Seasonal IQR
//	trending               -> Rolling Sigma
//	otherwise              -> Fixed Sigma
//
// Callers tune the numeric parameters and pick the correction:
//
//	cleanser := outlier.NewCleanser()
//	params := outlier.DefaultParams()
//	params.Correction = outlier.CorrectionInterpolation
//	result, err := cleanser.Cleanse(values, seg, params)
//
// Bounds are always computed on the original values; corrections are applied
// to a copy, so the input slice is never modified.
//
// # Seasonal IQR and short series
//
// Seasonal IQR groups points by position in a 12-period cycle. A phase with a
// single observation has Q1 == Q3 and a zero-width band that its only point
// sits on, so short series produce no seasonal flags. Phases with no
// observations are skipped entirely.
package outlier
