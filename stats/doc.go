// Package stats provides the numeric kernels used to segment demand series
// and to bound their outliers.
//
// Functions take plain []float64 and never modify their input. Degenerate
// input (empty slices, zero variance) produces a documented fallback instead
// of an error so callers can resolve every case deterministically.
//
// # Descriptive Statistics
//
//	mean := stats.Mean(values)         // 0 for empty input
//	std := stats.PopStd(values)        // population (divide by n)
//	sstd := stats.SampleStd(values)    // sample (divide by n-1), NaN below 2 points
//	zeros := stats.ZeroFraction(values)
//
// # Trend and Seasonality
//
//	slope := stats.Slope(values)                  // OLS slope against 0..n-1
//	r, ok := stats.LagCorrelation(values, 12)     // Pearson of x[:-12] vs x[12:]
//
// # Quantiles
//
//	q1, q3 := stats.Quartiles(values)  // linear interpolation between ranks
//	p90 := stats.Percentile(values, 90)
//
// # Rolling Windows
//
//	mean, std := stats.CenteredRolling(values, 6)  // NaN where the window is incomplete
//	stats.FillEdges(mean)                          // back-fill then forward-fill
package stats
