// internal/application/service/rates_service_test.go
package service

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/damon-houk/treasury-yield-service/internal/domain/entity"
	"github.com/damon-houk/treasury-yield-service/internal/infrastructure/logger"
	"github.com/damon-houk/treasury-yield-service/internal/mocks"
	"github.com/stretchr/testify/assert"
)

func testSnapshot(t *testing.T) *entity.Snapshot {
	t.Helper()
	snap, err := entity.NewSnapshot(
		time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC),
		[]entity.CurvePoint{
			{MaturityDays: 30, YieldPct: 4.24, IsObserved: true},
			{MaturityDays: 60, YieldPct: 4.30, IsObserved: true},
		},
	)
	assert.NoError(t, err)
	return snap
}

func TestTermRates(t *testing.T) {
	store := new(mocks.MockSnapshotStore)
	log := logger.New(nil, logger.ErrorLevel)
	svc := NewRatesService(store, log)
	ctx := context.Background()

	t.Run("Exact observed maturity", func(t *testing.T) {
		snap := testSnapshot(t)
		store.On("Latest", ctx).Return(snap, nil).Once()

		result, err := svc.TermRates(ctx, 30, 60)
		assert.NoError(t, err)

		// near = 30 days is observed at 4.24%: r = ln((1+0.0424/2)^2)
		assert.InDelta(t, 2*math.Log(1+0.0424/2), result.NearTermRate, 1e-12)
		assert.InDelta(t, 2*math.Log(1+0.0430/2), result.NextTermRate, 1e-12)
		assert.Equal(t, 30, result.NearTermDays)
		assert.Equal(t, 60, result.NextTermDays)
		assert.Equal(t, snap.Date, result.AsOfDate)

		store.AssertExpectations(t)
	})

	t.Run("Interpolated maturity off the grid", func(t *testing.T) {
		snap := testSnapshot(t)
		store.On("Latest", ctx).Return(snap, nil).Once()

		result, err := svc.TermRates(ctx, 45, 60)
		assert.NoError(t, err)

		// 45 days sits midway between the 30 and 60 day observations
		midYield := (4.24 + 4.30) / 2
		assert.InDelta(t, 2*math.Log(1+midYield/200), result.NearTermRate, 1e-12)

		store.AssertExpectations(t)
	})

	t.Run("Reversed near and next are tolerated", func(t *testing.T) {
		// VIX convention is near < next, but ordering is the caller's
		// business; the service reports whatever was requested
		snap := testSnapshot(t)
		store.On("Latest", ctx).Return(snap, nil).Once()

		result, err := svc.TermRates(ctx, 60, 30)
		assert.NoError(t, err)
		assert.Equal(t, 60, result.NearTermDays)
		assert.Equal(t, 30, result.NextTermDays)
		assert.Greater(t, result.NearTermRate, result.NextTermRate)

		store.AssertExpectations(t)
	})

	t.Run("Non-positive day counts are rejected", func(t *testing.T) {
		snap := testSnapshot(t)
		store.On("Latest", ctx).Return(snap, nil).Once()

		_, err := svc.TermRates(ctx, 0, 60)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "must be positive")
	})

	t.Run("Empty store propagates NoData", func(t *testing.T) {
		store.On("Latest", ctx).Return(nil, entity.ErrNoData).Once()

		_, err := svc.TermRates(ctx, 30, 60)
		assert.ErrorIs(t, err, entity.ErrNoData)

		store.AssertExpectations(t)
	})

	t.Run("Specific date", func(t *testing.T) {
		snap := testSnapshot(t)
		store.On("ForDate", ctx, snap.Date).Return(snap, nil).Once()

		result, err := svc.TermRatesForDate(ctx, snap.Date, 30, 60)
		assert.NoError(t, err)
		assert.Equal(t, snap.Date, result.AsOfDate)

		store.AssertExpectations(t)
	})

	t.Run("Unknown date propagates DateNotFound", func(t *testing.T) {
		d := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
		store.On("ForDate", ctx, d).Return(nil, entity.ErrDateNotFound).Once()

		_, err := svc.TermRatesForDate(ctx, d, 30, 60)
		assert.ErrorIs(t, err, entity.ErrDateNotFound)

		store.AssertExpectations(t)
	})

	t.Run("Identical inputs give identical results", func(t *testing.T) {
		snap := testSnapshot(t)
		store.On("Latest", ctx).Return(snap, nil).Twice()

		first, err := svc.TermRates(ctx, 23, 37)
		assert.NoError(t, err)
		second, err := svc.TermRates(ctx, 23, 37)
		assert.NoError(t, err)
		assert.Equal(t, first, second)

		store.AssertExpectations(t)
	})
}

func TestGridRates(t *testing.T) {
	store := new(mocks.MockSnapshotStore)
	log := logger.New(nil, logger.ErrorLevel)
	svc := NewRatesService(store, log)
	ctx := context.Background()

	snap := testSnapshot(t)
	store.On("Latest", ctx).Return(snap, nil).Once()

	curve, err := svc.GridRates(ctx)
	assert.NoError(t, err)
	assert.Equal(t, snap.Date, curve.Date)
	assert.Len(t, curve.Points, len(entity.ReferenceGrid))

	// 30 and 60 days were observed; everything else was filled
	assert.True(t, curve.Points[0].IsObserved)
	assert.True(t, curve.Points[1].IsObserved)
	for _, p := range curve.Points[2:] {
		assert.False(t, p.IsObserved)
	}

	// Clamped tail converts the 60-day yield everywhere past it
	last := curve.Points[len(curve.Points)-1]
	assert.Equal(t, 10950, last.MaturityDays)
	assert.InDelta(t, 2*math.Log(1+0.0430/2), last.Rate, 1e-12)

	store.AssertExpectations(t)
}
