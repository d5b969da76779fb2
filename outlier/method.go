package outlier

import (
	"fmt"
	"strings"

	"github.com/sartorproj/godemand/segmentation"
)

// Method is an outlier detection method.
type Method string

const (
	FixedSigma   Method = "Fixed Sigma"
	RollingSigma Method = "Rolling Sigma"
	SeasonalIQR  Method = "Seasonal IQR"
)

// SelectMethod picks the detection method for a segmented series.
func SelectMethod(seg segmentation.Result) Method {
	trending := seg.Trend == segmentation.TrendUpward || seg.Trend == segmentation.TrendDownward
	switch {
	case seg.Seasonal && trending:
		return SeasonalIQR
	case trending:
		return RollingSigma
	default:
		return FixedSigma
	}
}

// CorrectionType selects how flagged points are rewritten.
type CorrectionType string

const (
	CorrectionLimit         CorrectionType = "limit"
	CorrectionInterpolation CorrectionType = "interpolation"
)

// ParseCorrectionType parses "limit" or "interpolation".
func ParseCorrectionType(s string) (CorrectionType, error) {
	c := CorrectionType(strings.ToLower(strings.TrimSpace(s)))
	if _, err := correctorFor(c); err != nil {
		return "", err
	}
	return c, nil
}

func detectorFor(m Method) (Detector, error) {
	switch m {
	case FixedSigma:
		return fixedSigma{}, nil
	case RollingSigma:
		return rollingSigma{}, nil
	case SeasonalIQR:
		return seasonalIQR{}, nil
	}
	return nil, fmt.Errorf("%w: unknown detection method %q", ErrInvalidParams, m)
}

func correctorFor(c CorrectionType) (Corrector, error) {
	switch c {
	case CorrectionLimit:
		return limit{}, nil
	case CorrectionInterpolation:
		return interpolation{}, nil
	}
	return nil, fmt.Errorf("%w: unknown correction type %q", ErrInvalidParams, c)
}
