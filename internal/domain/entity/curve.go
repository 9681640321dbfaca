package entity

import "time"

// CurvePoint represents a single yield observation on a curve
type CurvePoint struct {
	// MaturityDays is the constant-maturity term in days
	MaturityDays int `json:"maturity_days"`
	// YieldPct is the bond-equivalent yield as a percentage (4.28 means 4.28%)
	YieldPct float64 `json:"yield_pct"`
	// IsObserved is true for directly parsed values, false for interpolated ones
	IsObserved bool `json:"is_observed"`
}

// ReferenceGrid is the fixed set of maturities (in days) that treasury
// curves are conventionally reported and interpolated against. It is never
// mutated; use a copy if a caller needs to modify the slice.
var ReferenceGrid = []int{30, 60, 91, 182, 365, 730, 1095, 1825, 2555, 3650, 7300, 10950}

// TermRateResult holds the near-term and next-term continuously-compounded
// rates used by VIX-style option pricing
type TermRateResult struct {
	NearTermRate float64   `json:"near_term_rate"`
	NextTermRate float64   `json:"next_term_rate"`
	NearTermDays int       `json:"near_term_days"`
	NextTermDays int       `json:"next_term_days"`
	AsOfDate     time.Time `json:"as_of_date"`
}
