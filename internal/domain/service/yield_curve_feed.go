package service

import (
	"context"

	"github.com/damon-houk/treasury-yield-service/internal/domain/entity"
)

// YieldCurveFeed defines the interface for retrieving raw yield curve
// observations from an external source
type YieldCurveFeed interface {
	// FetchYear retrieves all raw daily entries published for the given year
	FetchYear(ctx context.Context, year int) ([]entity.RawEntry, error)
}
