// internal/domain/entity/snapshot_test.go
package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func testDate() time.Time {
	return time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
}

func TestNewSnapshot(t *testing.T) {
	t.Run("Sorts points by maturity", func(t *testing.T) {
		snap, err := NewSnapshot(testDate(), []CurvePoint{
			{MaturityDays: 365, YieldPct: 4.5, IsObserved: true},
			{MaturityDays: 30, YieldPct: 4.2, IsObserved: true},
			{MaturityDays: 91, YieldPct: 4.3, IsObserved: true},
		})

		assert.NoError(t, err)
		assert.Equal(t, []int{30, 91, 365}, maturities(snap.Points))
	})

	t.Run("Empty point set", func(t *testing.T) {
		snap, err := NewSnapshot(testDate(), nil)
		assert.Nil(t, snap)
		assert.ErrorIs(t, err, ErrEmptyObservation)
	})

	t.Run("Duplicate maturity", func(t *testing.T) {
		_, err := NewSnapshot(testDate(), []CurvePoint{
			{MaturityDays: 30, YieldPct: 4.2},
			{MaturityDays: 30, YieldPct: 4.3},
		})
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "duplicate maturity")
	})

	t.Run("Non-positive maturity", func(t *testing.T) {
		_, err := NewSnapshot(testDate(), []CurvePoint{
			{MaturityDays: 0, YieldPct: 4.2},
		})
		assert.Error(t, err)
	})
}

func TestYieldAt(t *testing.T) {
	snap, err := NewSnapshot(testDate(), []CurvePoint{
		{MaturityDays: 30, YieldPct: 4.24, IsObserved: true},
		{MaturityDays: 91, YieldPct: 4.40, IsObserved: true},
		{MaturityDays: 365, YieldPct: 4.80, IsObserved: true},
	})
	assert.NoError(t, err)

	t.Run("Exact match returns the observed yield unchanged", func(t *testing.T) {
		y, err := snap.YieldAt(91)
		assert.NoError(t, err)
		assert.Equal(t, 4.40, y) // bit-for-bit, no arithmetic applied
	})

	t.Run("Interpolates between brackets", func(t *testing.T) {
		y, err := snap.YieldAt(60)
		assert.NoError(t, err)
		expected := 4.24 + (4.40-4.24)*float64(60-30)/float64(91-30)
		assert.InDelta(t, expected, y, 1e-12)
	})

	t.Run("Interpolated yield stays inside its bracket", func(t *testing.T) {
		for _, m := range []int{31, 45, 60, 90, 92, 180, 364} {
			y, err := snap.YieldAt(m)
			assert.NoError(t, err)
			assert.GreaterOrEqual(t, y, 4.24)
			assert.LessOrEqual(t, y, 4.80)
		}
	})

	t.Run("Clamps below the minimum observed maturity", func(t *testing.T) {
		// No bracketing pair below 30 days: clamp, not an error
		y, err := snap.YieldAt(10)
		assert.NoError(t, err)
		assert.Equal(t, 4.24, y)
	})

	t.Run("Clamps above the maximum observed maturity", func(t *testing.T) {
		y, err := snap.YieldAt(10950)
		assert.NoError(t, err)
		assert.Equal(t, 4.80, y)
	})

	t.Run("No observed points", func(t *testing.T) {
		empty := &Snapshot{Date: testDate()}
		_, err := empty.YieldAt(30)
		assert.ErrorIs(t, err, ErrInsufficientData)
	})
}

func TestInterpolateGrid(t *testing.T) {
	snap, err := NewSnapshot(testDate(), []CurvePoint{
		{MaturityDays: 30, YieldPct: 4.24, IsObserved: true},
		{MaturityDays: 120, YieldPct: 4.35, IsObserved: true},
		{MaturityDays: 365, YieldPct: 4.80, IsObserved: true},
	})
	assert.NoError(t, err)

	points, err := snap.InterpolateGrid(ReferenceGrid)
	assert.NoError(t, err)
	assert.Len(t, points, len(ReferenceGrid))
	assert.Equal(t, ReferenceGrid, maturities(points))

	byMaturity := make(map[int]CurvePoint, len(points))
	for _, p := range points {
		byMaturity[p.MaturityDays] = p
	}

	// Observed grid maturities keep their exact yield and flag
	assert.True(t, byMaturity[30].IsObserved)
	assert.Equal(t, 4.24, byMaturity[30].YieldPct)
	assert.True(t, byMaturity[365].IsObserved)

	// The 120-day observation is off the grid but still shapes the fill:
	// 60 and 91 days interpolate between the 30 and 120 day points
	assert.False(t, byMaturity[60].IsObserved)
	assert.InDelta(t, 4.24+(4.35-4.24)*float64(60-30)/float64(120-30), byMaturity[60].YieldPct, 1e-12)

	// Everything past the longest observation is clamped
	for _, m := range []int{730, 1095, 1825, 2555, 3650, 7300, 10950} {
		assert.False(t, byMaturity[m].IsObserved)
		assert.Equal(t, 4.80, byMaturity[m].YieldPct)
	}

	t.Run("No observed points", func(t *testing.T) {
		empty := &Snapshot{Date: testDate()}
		_, err := empty.InterpolateGrid(ReferenceGrid)
		assert.ErrorIs(t, err, ErrInsufficientData)
	})
}

func maturities(points []CurvePoint) []int {
	out := make([]int, 0, len(points))
	for _, p := range points {
		out = append(out, p.MaturityDays)
	}
	return out
}
