package segmentation

import (
	"encoding/json"
	"errors"
	"math"
	"sync"
	"testing"
)

var seasonalPattern = []float64{10, 200, 30, 150, 5, 180, 20, 170, 15, 190, 25, 160}

func repeat(pattern []float64, times int) []float64 {
	out := make([]float64, 0, len(pattern)*times)
	for i := 0; i < times; i++ {
		out = append(out, pattern...)
	}
	return out
}

func ramp(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = float64(i + 1)
	}
	return out
}

func mustSegment(t *testing.T, e *Engine, values []float64, window int, overrides map[string]float64) Result {
	t.Helper()
	r, err := e.Segment(values, window, overrides)
	if err != nil {
		t.Fatalf("Segment failed: %v", err)
	}
	return r
}

func TestConstantSeriesIsStable(t *testing.T) {
	values := []float64{5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5}
	r := mustSegment(t, NewEngine(), values, 12, nil)

	if r.CovClass != CovX {
		t.Errorf("Expected cov class X, got %s", r.CovClass)
	}
	if r.CoefficientVariation != 0 {
		t.Errorf("Expected coefficient of variation 0, got %f", r.CoefficientVariation)
	}
	if r.PLCStatus != Mature {
		t.Errorf("Expected Mature, got %s", r.PLCStatus)
	}
	if r.RuleNumber != 4 {
		t.Errorf("Expected rule 4, got %d", r.RuleNumber)
	}
}

func TestIntermittentSeries(t *testing.T) {
	values := []float64{100, 0, 0, 0, 0, 0, 0, 50, 0, 0, 0, 0}
	r := mustSegment(t, NewEngine(), values, 12, nil)

	if !r.Intermittent {
		t.Error("Expected series to be intermittent")
	}
	if math.Abs(r.Density-2.0/12.0) > 1e-10 {
		t.Errorf("Expected density %f, got %f", 2.0/12.0, r.Density)
	}
	if r.RuleNumber != 1 {
		t.Errorf("Expected rule 1, got %d", r.RuleNumber)
	}
}

func TestTrendDetection(t *testing.T) {
	engine := NewEngine()
	values := ramp(36)

	// Over the whole ramp the normalized slope is 1/18.5, above the 0.05 cut-off.
	full := mustSegment(t, engine, values, 36, nil)
	if full.Trend != TrendUpward {
		t.Errorf("Expected upward trend over the full ramp, got %s", full.Trend)
	}

	// The default 12-period window (25..36) normalizes to 1/30.5, below the cut-off.
	recent := mustSegment(t, engine, values, DefaultHistoryWindow, nil)
	if recent.Trend != TrendNone {
		t.Errorf("Expected no trend over the last 12 periods, got %s", recent.Trend)
	}

	loose := mustSegment(t, engine, values, DefaultHistoryWindow, map[string]float64{"trend": 0.01})
	if loose.Trend != TrendUpward {
		t.Errorf("Expected upward trend with a 0.01 cut-off, got %s", loose.Trend)
	}

	reversed := make([]float64, len(values))
	for i, v := range values {
		reversed[len(values)-1-i] = v
	}
	down := mustSegment(t, engine, reversed, 36, nil)
	if down.Trend != TrendDownward {
		t.Errorf("Expected downward trend, got %s", down.Trend)
	}
}

func TestIntermittentDominatesTrend(t *testing.T) {
	values := []float64{0, 0, 0, 0, 0, 0, 0, 10, 20, 30, 40, 50}
	r := mustSegment(t, NewEngine(), values, 12, nil)

	if !r.Intermittent || r.Trend != TrendUpward {
		t.Fatalf("Expected an intermittent upward series, got %+v", r)
	}
	if r.RuleNumber != 1 {
		t.Errorf("Expected rule 1, got %d", r.RuleNumber)
	}
}

func TestVolumeClass(t *testing.T) {
	engine := NewEngine()

	r := mustSegment(t, engine, []float64{100, 200, 50, 30, 10, 5, 2, 1, 0, 0, 0, 0}, 12, nil)
	if r.VolumeClass != VolumeC || r.VolumePercentage != 100 {
		t.Errorf("Expected C at 100%%, got %s at %f", r.VolumeClass, r.VolumePercentage)
	}

	r = mustSegment(t, engine, []float64{0, 0, 0, 0}, 12, nil)
	if r.VolumeClass != VolumeC || r.VolumePercentage != 0 {
		t.Errorf("Expected C at 0%% for zero volume, got %s at %f", r.VolumeClass, r.VolumePercentage)
	}

	r = mustSegment(t, engine, []float64{-4, 4}, 12, map[string]float64{"volume_a": 100})
	if r.VolumeClass != VolumeA {
		t.Errorf("Expected A with volume_a=100, got %s", r.VolumeClass)
	}

	r = mustSegment(t, engine, []float64{1, 2}, 12, map[string]float64{"volume_b_threshold": 100})
	if r.VolumeClass != VolumeB {
		t.Errorf("Expected B with volume_b=100, got %s", r.VolumeClass)
	}
}

func TestSeasonality(t *testing.T) {
	engine := NewEngine()

	r := mustSegment(t, engine, repeat(seasonalPattern, 3), 12, nil)
	if !r.Seasonal {
		t.Error("Expected repeating yearly pattern to be seasonal")
	}

	// 23 points is one short of the two cycles required.
	r = mustSegment(t, engine, repeat(seasonalPattern, 2)[:23], 12, nil)
	if r.Seasonal {
		t.Error("Expected series shorter than 24 points to be non-seasonal")
	}

	r = mustSegment(t, engine, repeat([]float64{7}, 30), 12, nil)
	if r.Seasonal {
		t.Error("Expected constant series to be non-seasonal")
	}
}

func TestPLCStatus(t *testing.T) {
	tests := []struct {
		name     string
		values   []float64
		expected PLCStatus
	}{
		{"short", []float64{1, 2, 3, 4, 5}, NewLaunch},
		{"discontinued", []float64{50, 60, 70, 80, 90, 100, 0, 0, 0, 0, 5, 0}, Discontinuous},
		{"discontinued short", []float64{5, 0, 0, 0, 0, 3}, Discontinuous},
		{"young", []float64{1, 2, 3, 4, 5, 6, 7, 8}, NewLaunch},
		{"mature", ramp(12), Mature},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := plcStatus(tt.values); got != tt.expected {
				t.Errorf("Expected %s, got %s", tt.expected, got)
			}
		})
	}
}

func TestSeriesLengthCountsFullHistory(t *testing.T) {
	r := mustSegment(t, NewEngine(), ramp(30), 12, nil)
	if r.SeriesLength != 30 {
		t.Errorf("Expected series length 30, got %d", r.SeriesLength)
	}
}

func TestRuleNumbers(t *testing.T) {
	engine := NewEngine()
	volumeA := map[string]float64{"volume_a": 100}

	tests := []struct {
		name      string
		values    []float64
		window    int
		overrides map[string]float64
		expected  int
	}{
		{"intermittent", []float64{100, 0, 0, 0, 0, 0, 0, 50, 0, 0, 0, 0}, 12, nil, 1},
		{"discontinuous", []float64{50, 60, 70, 80, 90, 100, 0, 0, 0, 0, 5, 0}, 12, nil, 2},
		{"new launch", []float64{10, 20, 30}, 12, nil, 3},
		{"stable", repeat([]float64{5}, 12), 12, nil, 4},
		{"low volume", ramp(36), 36, nil, 5},
		{"trending", ramp(36), 36, volumeA, 6},
		{"seasonal", repeat(seasonalPattern, 3), 12, volumeA, 7},
		{"fallback", seasonalPattern, 12, volumeA, 8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := mustSegment(t, engine, tt.values, tt.window, tt.overrides)
			if r.RuleNumber != tt.expected {
				t.Errorf("Expected rule %d, got %d (%+v)", tt.expected, r.RuleNumber, r)
			}
		})
	}
}

func TestDegenerateInput(t *testing.T) {
	engine := NewEngine()

	r := mustSegment(t, engine, nil, 12, nil)
	if r.CovClass != CovY || !r.CovUnbounded() {
		t.Errorf("Expected unbounded Y for empty input, got %+v", r)
	}
	if r.Intermittent || r.Density != 1 || r.Trend != TrendNone || r.RuleNumber != 3 {
		t.Errorf("Unexpected empty-input result %+v", r)
	}

	r = mustSegment(t, engine, make([]float64, 12), 12, nil)
	if !r.CovUnbounded() || r.CovClass != CovY {
		t.Errorf("Expected unbounded Y for all-zero input, got %+v", r)
	}
	if !r.Intermittent || r.Density != 0 {
		t.Errorf("Expected all-zero series to be intermittent with density 0, got %+v", r)
	}
}

func TestNonPositiveWindowUsesDefault(t *testing.T) {
	engine := NewEngine()
	values := ramp(36)

	a := mustSegment(t, engine, values, 0, nil)
	b := mustSegment(t, engine, values, DefaultHistoryWindow, nil)
	if a != b {
		t.Errorf("Expected window 0 to match the default window: %+v vs %+v", a, b)
	}
}

func TestInvalidOverride(t *testing.T) {
	engine := NewEngine()

	if _, err := engine.Segment(ramp(12), 12, map[string]float64{"bogus": 1}); !errors.Is(err, ErrInvalidThreshold) {
		t.Errorf("Expected ErrInvalidThreshold for unknown key, got %v", err)
	}
	if _, err := engine.Segment(ramp(12), 12, map[string]float64{"cov": math.NaN()}); !errors.Is(err, ErrInvalidThreshold) {
		t.Errorf("Expected ErrInvalidThreshold for NaN, got %v", err)
	}
}

func TestOverridesDoNotLeak(t *testing.T) {
	engine := NewEngine()
	values := seasonalPattern // cov ~0.83, Y by default

	first := mustSegment(t, engine, values, 12, map[string]float64{"cov": 10})
	if first.CovClass != CovX {
		t.Fatalf("Expected override to produce X, got %s", first.CovClass)
	}

	second := mustSegment(t, engine, values, 12, nil)
	if second.CovClass != CovY {
		t.Errorf("Override leaked into the next call: got %s", second.CovClass)
	}
	if engine.Defaults() != DefaultThresholds() {
		t.Errorf("Engine defaults changed: %+v", engine.Defaults())
	}
}

func TestConcurrentOverridesAreIsolated(t *testing.T) {
	engine := NewEngine()
	values := seasonalPattern

	var wg sync.WaitGroup
	errs := make(chan string, 200)
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			var overrides map[string]float64
			want := CovY
			if i%2 == 0 {
				overrides = map[string]float64{"cov": 10}
				want = CovX
			}
			r, err := engine.Segment(values, 12, overrides)
			if err != nil {
				errs <- err.Error()
				return
			}
			if r.CovClass != want {
				errs <- string(r.CovClass)
			}
		}(i)
	}
	wg.Wait()
	close(errs)

	for e := range errs {
		t.Errorf("Unexpected result under concurrency: %s", e)
	}
}

func TestSetDefaults(t *testing.T) {
	engine := NewEngine()
	custom := DefaultThresholds()
	custom.Cov = 10

	if err := engine.SetDefaults(custom); err != nil {
		t.Fatalf("SetDefaults failed: %v", err)
	}
	if r := mustSegment(t, engine, seasonalPattern, 12, nil); r.CovClass != CovX {
		t.Errorf("Expected new defaults to apply, got %s", r.CovClass)
	}

	custom.Cov = math.Inf(1)
	if err := engine.SetDefaults(custom); err == nil {
		t.Error("Expected error for non-finite default")
	}
}

func TestResultJSON(t *testing.T) {
	r := mustSegment(t, NewEngine(), make([]float64, 12), 12, nil)

	data, err := json.Marshal(r)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}

	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if raw["coefficient_variation"] != nil || raw["coefficient_variation_unbounded"] != true {
		t.Errorf("Expected null unbounded coefficient of variation, got %s", data)
	}

	var back Result
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("Unmarshal into Result failed: %v", err)
	}
	if !back.CovUnbounded() || back.RuleNumber != r.RuleNumber {
		t.Errorf("Expected decoded result to match, got %+v", back)
	}
}
