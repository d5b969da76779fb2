package outlier

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
)

// ErrInvalidParams is returned for out-of-range or unknown parameters.
var ErrInvalidParams = errors.New("invalid outlier parameters")

// Parameter keys accepted by Params.Merge.
const (
	KeySigmaMultiplier = "sigma_multiplier"
	KeyRollingWindow   = "rolling_window"
	KeyIQRMultiplier   = "iqr_multiplier"
	KeyCorrectionType  = "correction_type"
)

// Params tunes detection and selects the correction.
type Params struct {
	SigmaMultiplier float64        `json:"sigma_multiplier" yaml:"sigma_multiplier"`
	RollingWindow   int            `json:"rolling_window" yaml:"rolling_window"`
	IQRMultiplier   float64        `json:"iqr_multiplier" yaml:"iqr_multiplier"`
	Correction      CorrectionType `json:"correction_type" yaml:"correction_type"`
}

// DefaultParams returns the default parameters.
func DefaultParams() Params {
	return Params{
		SigmaMultiplier: 3.0,
		RollingWindow:   6,
		IQRMultiplier:   2.0,
		Correction:      CorrectionLimit,
	}
}

// Validate checks parameter ranges.
func (p Params) Validate() error {
	if !finiteNonNegative(p.SigmaMultiplier) {
		return fmt.Errorf("%w: %s must be a finite non-negative number", ErrInvalidParams, KeySigmaMultiplier)
	}
	if !finiteNonNegative(p.IQRMultiplier) {
		return fmt.Errorf("%w: %s must be a finite non-negative number", ErrInvalidParams, KeyIQRMultiplier)
	}
	if p.RollingWindow < 1 {
		return fmt.Errorf("%w: %s must be at least 1", ErrInvalidParams, KeyRollingWindow)
	}
	if _, err := correctorFor(p.Correction); err != nil {
		return err
	}
	return nil
}

// Merge returns a copy of p with string-keyed overrides applied. Values may
// be numbers or strings, as they arrive from JSON or the command line.
func (p Params) Merge(overrides map[string]any) (Params, error) {
	keys := make([]string, 0, len(overrides))
	for k := range overrides {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		v := overrides[k]
		switch strings.ToLower(strings.TrimSpace(k)) {
		case KeySigmaMultiplier:
			f, err := toFloat(k, v)
			if err != nil {
				return Params{}, err
			}
			p.SigmaMultiplier = f
		case KeyIQRMultiplier:
			f, err := toFloat(k, v)
			if err != nil {
				return Params{}, err
			}
			p.IQRMultiplier = f
		case KeyRollingWindow:
			f, err := toFloat(k, v)
			if err != nil {
				return Params{}, err
			}
			if f != math.Trunc(f) {
				return Params{}, fmt.Errorf("%w: %s must be an integer", ErrInvalidParams, k)
			}
			p.RollingWindow = int(f)
		case KeyCorrectionType:
			s, ok := v.(string)
			if !ok {
				return Params{}, fmt.Errorf("%w: %s must be a string", ErrInvalidParams, k)
			}
			c, err := ParseCorrectionType(s)
			if err != nil {
				return Params{}, err
			}
			p.Correction = c
		default:
			return Params{}, fmt.Errorf("%w: unknown key %q", ErrInvalidParams, k)
		}
	}
	return p, p.Validate()
}

func toFloat(key string, v any) (float64, error) {
	switch x := v.(type) {
	case float64:
		return x, nil
	case float32:
		return float64(x), nil
	case int:
		return float64(x), nil
	case int64:
		return float64(x), nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(x), 64)
		if err != nil {
			return 0, fmt.Errorf("%w: %s: %v", ErrInvalidParams, key, err)
		}
		return f, nil
	}
	return 0, fmt.Errorf("%w: %s has unsupported type %T", ErrInvalidParams, key, v)
}

func finiteNonNegative(f float64) bool {
	return f >= 0 && !math.IsInf(f, 1)
}
