// Package service internal/application/service/rates_service.go
package service

import (
	"context"
	"fmt"
	"time"

	"github.com/damon-houk/treasury-yield-service/internal/domain/entity"
	"github.com/damon-houk/treasury-yield-service/internal/domain/repository"
	"github.com/damon-houk/treasury-yield-service/internal/infrastructure/logger"
)

// CurveRates is a fully interpolated reference-grid curve converted to
// continuously-compounded rates
type CurveRates struct {
	Date   time.Time   `json:"date"`
	Points []RatePoint `json:"points"`
}

// RatesService resolves term rates and full curves from stored snapshots.
//
// VIX convention expects near < next, but no ordering is enforced here; the
// service resolves and reports whatever day counts the caller asked for.
type RatesService struct {
	store  repository.SnapshotStore
	logger logger.Logger
}

// NewRatesService creates a new rates service
func NewRatesService(store repository.SnapshotStore, log logger.Logger) *RatesService {
	if log == nil {
		log = logger.GetDefaultLogger()
	}

	return &RatesService{
		store:  store,
		logger: log,
	}
}

// TermRates resolves near-term and next-term continuously-compounded rates
// against the latest stored snapshot
func (s *RatesService) TermRates(ctx context.Context, nearDays, nextDays int) (*entity.TermRateResult, error) {
	snapshot, err := s.store.Latest(ctx)
	if err != nil {
		return nil, fmt.Errorf("latest snapshot: %w", err)
	}
	return s.termRates(snapshot, nearDays, nextDays)
}

// TermRatesForDate is TermRates against the snapshot for a specific date
func (s *RatesService) TermRatesForDate(ctx context.Context, d time.Time, nearDays, nextDays int) (*entity.TermRateResult, error) {
	snapshot, err := s.store.ForDate(ctx, d)
	if err != nil {
		return nil, fmt.Errorf("snapshot for %s: %w", d.Format("2006-01-02"), err)
	}
	return s.termRates(snapshot, nearDays, nextDays)
}

func (s *RatesService) termRates(snapshot *entity.Snapshot, nearDays, nextDays int) (*entity.TermRateResult, error) {
	if nearDays <= 0 || nextDays <= 0 {
		return nil, fmt.Errorf("term day counts must be positive, got near=%d next=%d", nearDays, nextDays)
	}

	// Term lookups resolve against the observed points directly; the
	// requested day counts need not lie on the reference grid.
	nearYield, err := snapshot.YieldAt(nearDays)
	if err != nil {
		return nil, err
	}
	nextYield, err := snapshot.YieldAt(nextDays)
	if err != nil {
		return nil, err
	}

	nearRate, err := ContinuousRate(nearYield)
	if err != nil {
		return nil, fmt.Errorf("near term %d days: %w", nearDays, err)
	}
	nextRate, err := ContinuousRate(nextYield)
	if err != nil {
		return nil, fmt.Errorf("next term %d days: %w", nextDays, err)
	}

	s.logger.Debug("Resolved term rates", map[string]interface{}{
		"as_of":     snapshot.Date.Format("2006-01-02"),
		"near_days": nearDays,
		"next_days": nextDays,
		"near_rate": nearRate,
		"next_rate": nextRate,
	})

	return &entity.TermRateResult{
		NearTermRate: nearRate,
		NextTermRate: nextRate,
		NearTermDays: nearDays,
		NextTermDays: nextDays,
		AsOfDate:     snapshot.Date,
	}, nil
}

// GridRates returns the latest snapshot interpolated across the reference
// grid and converted to continuous rates
func (s *RatesService) GridRates(ctx context.Context) (*CurveRates, error) {
	snapshot, err := s.store.Latest(ctx)
	if err != nil {
		return nil, fmt.Errorf("latest snapshot: %w", err)
	}
	return s.gridRates(snapshot)
}

// GridRatesForDate is GridRates against the snapshot for a specific date
func (s *RatesService) GridRatesForDate(ctx context.Context, d time.Time) (*CurveRates, error) {
	snapshot, err := s.store.ForDate(ctx, d)
	if err != nil {
		return nil, fmt.Errorf("snapshot for %s: %w", d.Format("2006-01-02"), err)
	}
	return s.gridRates(snapshot)
}

func (s *RatesService) gridRates(snapshot *entity.Snapshot) (*CurveRates, error) {
	points, err := snapshot.InterpolateGrid(entity.ReferenceGrid)
	if err != nil {
		return nil, err
	}

	converted, err := convertCurve(points)
	if err != nil {
		return nil, err
	}

	return &CurveRates{Date: snapshot.Date, Points: converted}, nil
}
