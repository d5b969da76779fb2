package pipeline

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	outcomeSuccess = "success"
	outcomeFailure = "failure"
)

var (
	runsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "godemand_pipeline_runs_total",
		Help: "Pipeline runs by operation and outcome",
	}, []string{"operation", "outcome"})

	rulesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "godemand_segmentation_rules_total",
		Help: "Segmentation results by rule number",
	}, []string{"rule"})

	methodsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "godemand_outlier_methods_total",
		Help: "Outlier cleansing runs by detection method",
	}, []string{"method"})

	outliersPerRun = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "godemand_outliers_per_run",
		Help:    "Number of points flagged per cleansing run",
		Buckets: []float64{0, 1, 2, 3, 5, 10, 20, 50},
	})

	stageDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "godemand_stage_duration_seconds",
		Help:    "Duration of pipeline stages",
		Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1},
	}, []string{"stage"})
)
