// Package service internal/application/service/curve_ingest_service.go
package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/damon-houk/treasury-yield-service/internal/domain/entity"
	"github.com/damon-houk/treasury-yield-service/internal/domain/repository"
	domainservice "github.com/damon-houk/treasury-yield-service/internal/domain/service"
	"github.com/damon-houk/treasury-yield-service/internal/infrastructure/logger"
)

// CurveIngestService pulls a year's worth of raw feed entries, parses each
// one into a snapshot, and accumulates the snapshots in the store
type CurveIngestService struct {
	feed   domainservice.YieldCurveFeed
	parser *CurveParser
	store  repository.SnapshotStore
	logger logger.Logger
}

// NewCurveIngestService creates a new curve ingest service
func NewCurveIngestService(feed domainservice.YieldCurveFeed, store repository.SnapshotStore, log logger.Logger) *CurveIngestService {
	if log == nil {
		log = logger.GetDefaultLogger()
	}

	return &CurveIngestService{
		feed:   feed,
		parser: NewCurveParser(),
		store:  store,
		logger: log,
	}
}

// LoadYear fetches and ingests the feed for one year. Entries that fail with
// ErrMalformedEntry or ErrEmptyObservation are reported and skipped; any
// other failure aborts the load. Returns the number of snapshots stored and
// the number of entries skipped.
func (s *CurveIngestService) LoadYear(ctx context.Context, year int) (int, int, error) {
	s.logger.Info("Loading yield curve feed", map[string]interface{}{
		"year": year,
	})

	entries, err := s.feed.FetchYear(ctx, year)
	if err != nil {
		return 0, 0, fmt.Errorf("fetch year %d: %w", year, err)
	}

	loaded := 0
	skipped := 0
	for _, entry := range entries {
		snapshot, err := s.parser.ParseEntry(entry)
		if err != nil {
			if errors.Is(err, entity.ErrMalformedEntry) || errors.Is(err, entity.ErrEmptyObservation) {
				s.logger.Warn("Skipping feed entry", map[string]interface{}{
					"year":  year,
					"error": err.Error(),
				})
				skipped++
				continue
			}
			return loaded, skipped, fmt.Errorf("parse entry: %w", err)
		}

		if err := s.store.Add(ctx, snapshot); err != nil {
			return loaded, skipped, fmt.Errorf("store snapshot %s: %w",
				snapshot.Date.Format("2006-01-02"), err)
		}
		loaded++
	}

	s.logger.Info("Yield curve feed loaded", map[string]interface{}{
		"year":    year,
		"loaded":  loaded,
		"skipped": skipped,
	})

	return loaded, skipped, nil
}
