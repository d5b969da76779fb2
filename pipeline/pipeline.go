package pipeline

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/sartorproj/godemand/internal/log"
	"github.com/sartorproj/godemand/outlier"
	"github.com/sartorproj/godemand/segmentation"
	"github.com/sartorproj/godemand/timeseries"
)

// ErrStagePanic wraps a panic recovered from a stage.
var ErrStagePanic = errors.New("stage panicked")

// Stage names used in messages, logs and metrics.
const (
	StageValidate = "validation"
	StageSegment  = "segmentation"
	StageCleanse  = "outlier cleansing"
)

// Segmenter classifies a series.
type Segmenter interface {
	Segment(values []float64, historyWindow int, overrides map[string]float64) (segmentation.Result, error)
}

// Cleanser detects and corrects outliers given a segmentation.
type Cleanser interface {
	CleanseWithOverrides(values []float64, seg segmentation.Result, overrides map[string]any) (outlier.Result, error)
}

// Request is the input of one run.
type Request struct {
	Values        []float64          `json:"values"`
	Timestamps    []time.Time        `json:"timestamps,omitempty"`
	HistoryWindow int                `json:"history_window,omitempty"`
	Thresholds    map[string]float64 `json:"thresholds,omitempty"`
	OutlierParams map[string]any     `json:"outlier_params,omitempty"`

	// Segmentation is required by Cleanse and ignored by Run and Segment.
	Segmentation *segmentation.Result `json:"segmentation,omitempty"`
}

// Response is the success/failure envelope of one run.
type Response struct {
	Success      bool                 `json:"success"`
	Message      string               `json:"message"`
	AnalysisID   string               `json:"analysis_id"`
	Segmentation *segmentation.Result `json:"segmentation,omitempty"`
	Outliers     *outlier.Result      `json:"outliers,omitempty"`
	Timestamps   []time.Time          `json:"timestamps,omitempty"`
}

// Runner executes pipeline runs. It holds no per-run state and is safe for
// concurrent use when its Segmenter and Cleanser are.
type Runner struct {
	segmenter     Segmenter
	cleanser      Cleanser
	historyWindow int
}

// Option configures a Runner.
type Option func(*Runner)

// WithHistoryWindow sets the window used when a request leaves it unset.
func WithHistoryWindow(n int) Option {
	return func(r *Runner) {
		if n > 0 {
			r.historyWindow = n
		}
	}
}

// NewRunner creates a Runner.
func NewRunner(s Segmenter, c Cleanser, opts ...Option) *Runner {
	r := &Runner{
		segmenter:     s,
		cleanser:      c,
		historyWindow: segmentation.DefaultHistoryWindow,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run validates, segments and cleanses the request series.
func (r *Runner) Run(ctx context.Context, req Request) Response {
	const op = "analyze"
	resp := r.start(req)

	seg, err := r.segment(ctx, req)
	if err != nil {
		return r.fail(op, resp, err)
	}
	res, err := r.cleanse(ctx, req, seg)
	if err != nil {
		return r.fail(op, resp, err)
	}

	resp.Segmentation = &seg
	resp.Outliers = &res
	return r.succeed(op, resp, "Analysis completed successfully")
}

// Segment runs validation and segmentation only.
func (r *Runner) Segment(ctx context.Context, req Request) Response {
	const op = "segment"
	resp := r.start(req)

	seg, err := r.segment(ctx, req)
	if err != nil {
		return r.fail(op, resp, err)
	}
	resp.Segmentation = &seg
	return r.succeed(op, resp, "Segmentation completed successfully")
}

// Cleanse runs validation and outlier cleansing against the segmentation
// supplied in the request.
func (r *Runner) Cleanse(ctx context.Context, req Request) Response {
	const op = "cleanse"
	resp := r.start(req)

	if req.Segmentation == nil {
		return r.fail(op, resp, &StageError{Stage: StageValidate, Err: errors.New("segmentation is required")})
	}
	if err := req.Segmentation.Validate(); err != nil {
		return r.fail(op, resp, &StageError{Stage: StageValidate, Err: err})
	}
	if err := r.validate(ctx, req); err != nil {
		return r.fail(op, resp, err)
	}
	res, err := r.cleanse(ctx, req, *req.Segmentation)
	if err != nil {
		return r.fail(op, resp, err)
	}

	seg := *req.Segmentation
	resp.Segmentation = &seg
	resp.Outliers = &res
	return r.succeed(op, resp, "Outlier cleansing completed successfully")
}

func (r *Runner) start(req Request) Response {
	return Response{
		AnalysisID: uuid.NewString(),
		Timestamps: req.Timestamps,
	}
}

func (r *Runner) segment(ctx context.Context, req Request) (segmentation.Result, error) {
	if err := r.validate(ctx, req); err != nil {
		return segmentation.Result{}, err
	}

	window := req.HistoryWindow
	if window <= 0 {
		window = r.historyWindow
	}

	var seg segmentation.Result
	err := runStage(ctx, StageSegment, func() error {
		var err error
		seg, err = r.segmenter.Segment(req.Values, window, req.Thresholds)
		return err
	})
	if err != nil {
		return segmentation.Result{}, err
	}
	rulesTotal.WithLabelValues(strconv.Itoa(seg.RuleNumber)).Inc()
	return seg, nil
}

func (r *Runner) cleanse(ctx context.Context, req Request, seg segmentation.Result) (outlier.Result, error) {
	var res outlier.Result
	err := runStage(ctx, StageCleanse, func() error {
		var err error
		res, err = r.cleanser.CleanseWithOverrides(req.Values, seg, req.OutlierParams)
		return err
	})
	if err != nil {
		return outlier.Result{}, err
	}
	methodsTotal.WithLabelValues(string(res.MethodUsed)).Inc()
	outliersPerRun.Observe(float64(len(res.OutlierIndices)))
	return res, nil
}

func (r *Runner) validate(ctx context.Context, req Request) error {
	return runStage(ctx, StageValidate, func() error {
		s := &timeseries.Series{Values: req.Values, Timestamps: req.Timestamps}
		return s.Validate()
	})
}

func (r *Runner) succeed(op string, resp Response, msg string) Response {
	resp.Success = true
	resp.Message = msg
	runsTotal.WithLabelValues(op, outcomeSuccess).Inc()

	fields := []interface{}{"operation", op, "analysis_id", resp.AnalysisID}
	if resp.Segmentation != nil {
		fields = append(fields, "rule", resp.Segmentation.RuleNumber)
	}
	if resp.Outliers != nil {
		fields = append(fields, "method", resp.Outliers.MethodUsed, "outliers", len(resp.Outliers.OutlierIndices))
	}
	log.Infow("pipeline run completed", fields...)
	return resp
}

func (r *Runner) fail(op string, resp Response, err error) Response {
	resp.Success = false
	resp.Message = err.Error()
	resp.Segmentation = nil
	resp.Outliers = nil
	runsTotal.WithLabelValues(op, outcomeFailure).Inc()
	log.Warnw("pipeline run failed", "operation", op, "analysis_id", resp.AnalysisID, "error", err)
	return resp
}

// runStage times fn and converts a panic into a StageError.
func runStage(ctx context.Context, stage string, fn func() error) (err error) {
	if err := ctx.Err(); err != nil {
		return &StageError{Stage: stage, Err: err}
	}

	start := time.Now()
	defer func() {
		stageDuration.WithLabelValues(stage).Observe(time.Since(start).Seconds())
		if p := recover(); p != nil {
			log.Errorw("stage panicked", "stage", stage, "panic", p)
			err = &StageError{Stage: stage, Err: fmt.Errorf("%w: %v", ErrStagePanic, p)}
		}
	}()

	if err := fn(); err != nil {
		return &StageError{Stage: stage, Err: err}
	}
	return nil
}
