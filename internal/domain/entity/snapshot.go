package entity

import (
	"fmt"
	"sort"
	"time"
)

// Snapshot is one day's parsed yield curve: an ordered set of observed
// points, strictly increasing in maturity. It is created once by the record
// parser and never modified afterwards.
type Snapshot struct {
	Date   time.Time    `json:"date"`
	Points []CurvePoint `json:"points"`
}

// NewSnapshot builds a snapshot from observed points. The points are sorted
// by maturity; duplicate or non-positive maturities and an empty point set
// are rejected since the parser guarantees neither can occur.
func NewSnapshot(date time.Time, points []CurvePoint) (*Snapshot, error) {
	if len(points) == 0 {
		return nil, fmt.Errorf("snapshot for %s: %w", date.Format("2006-01-02"), ErrEmptyObservation)
	}

	sorted := make([]CurvePoint, len(points))
	copy(sorted, points)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].MaturityDays < sorted[j].MaturityDays
	})

	for i, p := range sorted {
		if p.MaturityDays <= 0 {
			return nil, fmt.Errorf("snapshot for %s: maturity %d days is not positive",
				date.Format("2006-01-02"), p.MaturityDays)
		}
		if i > 0 && p.MaturityDays == sorted[i-1].MaturityDays {
			return nil, fmt.Errorf("snapshot for %s: duplicate maturity %d days",
				date.Format("2006-01-02"), p.MaturityDays)
		}
	}

	return &Snapshot{Date: date, Points: sorted}, nil
}

// YieldAt resolves the bond-equivalent yield (percent) for an arbitrary
// maturity using the three-way rule:
//   - an exact observed maturity returns that yield unchanged,
//   - a maturity inside the observed range is linearly interpolated between
//     its two bracketing points,
//   - a maturity outside the observed range is clamped to the nearest
//     boundary yield (no extrapolation).
//
// The same procedure serves both reference-grid filling and ad-hoc
// near/next term lookups.
func (s *Snapshot) YieldAt(maturityDays int) (float64, error) {
	if len(s.Points) == 0 {
		return 0, fmt.Errorf("yield at %d days: %w", maturityDays, ErrInsufficientData)
	}

	// Clamp below and above the observed range
	if maturityDays <= s.Points[0].MaturityDays {
		return s.Points[0].YieldPct, nil
	}
	last := s.Points[len(s.Points)-1]
	if maturityDays >= last.MaturityDays {
		return last.YieldPct, nil
	}

	// Points are sorted, so binary search finds the first point at or past
	// the target; the exact-match and bracket cases both fall out of it.
	idx := sort.Search(len(s.Points), func(i int) bool {
		return s.Points[i].MaturityDays >= maturityDays
	})
	upper := s.Points[idx]
	if upper.MaturityDays == maturityDays {
		return upper.YieldPct, nil
	}
	lower := s.Points[idx-1]

	weight := float64(maturityDays-lower.MaturityDays) / float64(upper.MaturityDays-lower.MaturityDays)
	return lower.YieldPct + weight*(upper.YieldPct-lower.YieldPct), nil
}

// InterpolateGrid returns one point per reference-grid maturity. Maturities
// that were directly observed keep IsObserved=true and their exact yield;
// the rest are filled via YieldAt with IsObserved=false.
func (s *Snapshot) InterpolateGrid(grid []int) ([]CurvePoint, error) {
	if len(s.Points) == 0 {
		return nil, fmt.Errorf("interpolate grid: %w", ErrInsufficientData)
	}

	observed := make(map[int]float64, len(s.Points))
	for _, p := range s.Points {
		observed[p.MaturityDays] = p.YieldPct
	}

	out := make([]CurvePoint, 0, len(grid))
	for _, m := range grid {
		if y, ok := observed[m]; ok {
			out = append(out, CurvePoint{MaturityDays: m, YieldPct: y, IsObserved: true})
			continue
		}
		y, err := s.YieldAt(m)
		if err != nil {
			return nil, err
		}
		out = append(out, CurvePoint{MaturityDays: m, YieldPct: y, IsObserved: false})
	}

	return out, nil
}
