// Package pipeline chains segmentation and outlier cleansing for one demand
// series.
//
// A run validates the request, segments the series and then cleanses it
// with the method the segmentation selects. The first failing stage ends the
// run: a Response never carries an outlier result without the segmentation
// it was computed from, and a cleansing failure drops the segmentation too.
// Errors and panics raised inside a stage are reported in the Response
// envelope rather than returned.
//
// Usage:
//
//	runner := pipeline.NewRunner(segmentation.NewEngine(), outlier.NewCleanser())
//	resp := runner.Run(ctx, pipeline.Request{Values: values})
//	if !resp.Success {
//	    return errors.New(resp.Message)
//	}
//	forecastInput := resp.Outliers.CorrectedSeries
//
// Every run is logged through internal/log and counted in the
// godemand_pipeline_* Prometheus metrics.
package pipeline
