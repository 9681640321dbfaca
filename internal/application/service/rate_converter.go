// Package service internal/application/service/rate_converter.go
package service

import (
	"fmt"
	"math"

	"github.com/damon-houk/treasury-yield-service/internal/domain/entity"
)

// ContinuousRate converts a bond-equivalent yield, expressed as a percentage
// (4.28 means 4.28%), into a continuously-compounded annual rate per the
// Cboe VIX methodology:
//
//	BEY = bey_percent / 100
//	APY = (1 + BEY/2)^2 - 1
//	r   = ln(1 + APY)
//
// Observed treasury yields are non-negative in practice, so the logarithm
// argument (1+BEY/2)^2 is expected to stay positive. A pathological input
// that would make it zero, negative, or non-finite fails with
// entity.ErrInvalidRateDomain rather than producing NaN or -Inf.
func ContinuousRate(beyPercent float64) (float64, error) {
	bey := beyPercent / 100.0
	half := 1.0 + bey/2.0
	apy := half*half - 1.0

	lnArg := 1.0 + apy
	if !(lnArg > 0) || math.IsInf(lnArg, 0) {
		return 0, fmt.Errorf("bey %.6f%%: %w", beyPercent, entity.ErrInvalidRateDomain)
	}

	return math.Log(lnArg), nil
}

// RatePoint is one maturity on a fully converted curve
type RatePoint struct {
	MaturityDays int     `json:"maturity_days"`
	Rate         float64 `json:"rate"`
	IsObserved   bool    `json:"is_observed"`
}

// convertCurve applies ContinuousRate to every point of an interpolated curve
func convertCurve(points []entity.CurvePoint) ([]RatePoint, error) {
	out := make([]RatePoint, 0, len(points))
	for _, p := range points {
		r, err := ContinuousRate(p.YieldPct)
		if err != nil {
			return nil, fmt.Errorf("convert %d days: %w", p.MaturityDays, err)
		}
		out = append(out, RatePoint{MaturityDays: p.MaturityDays, Rate: r, IsObserved: p.IsObserved})
	}
	return out, nil
}
