package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/sartorproj/godemand/internal/config"
	"github.com/sartorproj/godemand/internal/log"
	"github.com/sartorproj/godemand/pipeline"
	"github.com/sartorproj/godemand/timeseries"
)

type analyzeOptions struct {
	file       string
	column     string
	dateColumn string
	id         string
	window     int
	correction string
	thresholds map[string]string
	params     map[string]string
	out        string
}

func newAnalyzeCmd(root *rootOptions) *cobra.Command {
	opts := &analyzeOptions{}

	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Segment and cleanse a series loaded from CSV",
		Long: `Loads one series from a CSV file, runs segmentation and outlier
cleansing, and prints the result as JSON.

Examples:
  godemand analyze --file sales.csv
  godemand analyze --file sales.csv --column qty --window 24
  godemand analyze --file sales.csv --id SKU-1 --param sigma_multiplier=2 --out cleansed.csv`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if root.debug {
				if err := log.Init(true); err != nil {
					return err
				}
				defer log.Sync()
			}
			return runAnalyze(cmd, root, opts)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&opts.file, "file", "f", "", "CSV file holding the series")
	f.StringVar(&opts.column, "column", "", "value column (default: auto-detect)")
	f.StringVar(&opts.dateColumn, "date-column", "", "period column (default: auto-detect)")
	f.StringVar(&opts.id, "id", "", "keep only rows with this item identifier")
	f.IntVarP(&opts.window, "window", "w", 0, "history window in periods (default from config)")
	f.StringVar(&opts.correction, "correction", "", "correction type: limit or interpolation")
	f.StringToStringVar(&opts.thresholds, "threshold", nil, "segmentation threshold override, key=value")
	f.StringToStringVar(&opts.params, "param", nil, "outlier parameter override, key=value")
	f.StringVarP(&opts.out, "out", "o", "", "write the corrected series to this CSV file")
	_ = cmd.MarkFlagRequired("file")

	return cmd
}

func runAnalyze(cmd *cobra.Command, root *rootOptions, opts *analyzeOptions) error {
	cfg, err := config.Load(root.configPath)
	if err != nil {
		return err
	}
	runner, err := buildRunner(cfg)
	if err != nil {
		return err
	}

	csvOpts := timeseries.DefaultCSVOptions()
	csvOpts.ValueColumn = opts.column
	csvOpts.DateColumn = opts.dateColumn
	csvOpts.IDFilter = opts.id
	series, err := timeseries.LoadCSV(opts.file, csvOpts)
	if err != nil {
		return err
	}

	req, err := opts.request(series)
	if err != nil {
		return err
	}
	resp := runner.Run(cmd.Context(), req)

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	if err := enc.Encode(resp); err != nil {
		return err
	}
	if !resp.Success {
		return fmt.Errorf("analysis failed: %s", resp.Message)
	}

	if opts.out != "" {
		return writeCorrected(opts.out, series, resp)
	}
	return nil
}

func (o *analyzeOptions) request(series *timeseries.Series) (pipeline.Request, error) {
	req := pipeline.Request{
		Values:        series.Values,
		Timestamps:    series.Timestamps,
		HistoryWindow: o.window,
	}

	if len(o.thresholds) > 0 {
		req.Thresholds = make(map[string]float64, len(o.thresholds))
		for k, v := range o.thresholds {
			f, err := strconv.ParseFloat(v, 64)
			if err != nil {
				return pipeline.Request{}, fmt.Errorf("threshold %s: %w", k, err)
			}
			req.Thresholds[k] = f
		}
	}

	if len(o.params) > 0 || o.correction != "" {
		req.OutlierParams = make(map[string]any, len(o.params)+1)
		for k, v := range o.params {
			req.OutlierParams[k] = v
		}
		if o.correction != "" {
			req.OutlierParams["correction_type"] = o.correction
		}
	}
	return req, nil
}

func writeCorrected(path string, series *timeseries.Series, resp pipeline.Response) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()

	corrected := series.WithValues(resp.Outliers.CorrectedSeries)
	if err := timeseries.WriteCSV(f, corrected, resp.Outliers.OutlierIndices); err != nil {
		return err
	}
	return f.Close()
}
