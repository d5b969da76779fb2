// Package godemand segments demand time series and cleanses their outliers
// ahead of forecasting.
//
// A series first goes through segmentation, which measures volume share,
// variability, intermittency, life cycle, trend and seasonality and maps
// them to one of eight rules. The segmentation then picks the outlier
// detection method (fixed sigma, rolling sigma or seasonal IQR), and flagged
// points are corrected by clamping to the detection band or by interpolating
// from their neighbors.
//
// # Quick Start
//
// Segment a series:
//
//	engine := segmentation.NewEngine()
//	seg, _ := engine.Segment(values, 12, nil)
//	fmt.Println(seg.RuleNumber, seg.VolumeClass, seg.CovClass)
//
// Cleanse it with the method the segmentation selects:
//
//	cleanser := outlier.NewCleanser()
//	res, _ := cleanser.Cleanse(values, seg, outlier.DefaultParams())
//	fmt.Println(res.MethodUsed, res.OutlierIndices)
//
// Or run both stages with a success/failure envelope:
//
//	runner := pipeline.NewRunner(engine, cleanser)
//	resp := runner.Run(ctx, pipeline.Request{Values: values})
//
// # Packages
//
//   - timeseries: Series value, validation and CSV input/output
//   - stats: Descriptive statistics, regression, percentiles and rolling windows
//   - segmentation: Segmentation engine and rule cascade
//   - outlier: Outlier detection and correction
//   - pipeline: Validation, segmentation and cleansing as one run
//
// The godemand command (cmd/godemand) exposes the pipeline on the command
// line and over HTTP.
package godemand
