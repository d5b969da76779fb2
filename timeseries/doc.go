// Package timeseries provides the demand series value shared by the
// segmentation and outlier stages.
//
// A Series holds one observation per period. Timestamps are optional and are
// carried along for echoing only; no computation reads them.
//
// # Creating a Series
//
//	values := []float64{120, 98, 0, 143, 110, 95}
//	series := timeseries.New(values)
//	if err := series.Validate(); err != nil {
//	    // empty, mismatched timestamps, or NaN/Inf values
//	}
//
// # Windows
//
// Classification works on the trailing history window:
//
//	window := series.Tail(12) // whole series when shorter than 12
//
// # Loading from CSV
//
//	series, err := timeseries.LoadCSV("demand.csv", nil)
//
//	opts := timeseries.DefaultCSVOptions()
//	opts.ValueColumn = "qty"
//	opts.IDColumn = "sku"
//	opts.IDFilter = "SKU-0042"
//	series, err = timeseries.LoadCSVFromReader(r, opts)
package timeseries
