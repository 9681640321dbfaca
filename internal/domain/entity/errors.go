// Package entity internal/domain/entity/errors.go
package entity

import "errors"

// Sentinel errors for the yield curve processing pipeline. Callers
// distinguish failure causes with errors.Is rather than string matching.
var (
	// ErrMalformedEntry means a raw feed entry has no parseable date.
	// The entry is skipped and reported; the batch continues.
	ErrMalformedEntry = errors.New("malformed entry")

	// ErrEmptyObservation means a raw feed entry produced zero usable
	// maturity/yield pairs. Same treatment as ErrMalformedEntry.
	ErrEmptyObservation = errors.New("empty observation")

	// ErrNoData means the snapshot store holds no snapshots at all.
	ErrNoData = errors.New("no data")

	// ErrDateNotFound means no snapshot exists for the requested date.
	ErrDateNotFound = errors.New("date not found")

	// ErrInsufficientData means interpolation was attempted against a
	// snapshot with zero observed points. Upstream invariants should make
	// this unreachable, but it is checked rather than allowed to divide
	// by zero or propagate NaN.
	ErrInsufficientData = errors.New("insufficient data for interpolation")

	// ErrInvalidRateDomain means the rate conversion would take the
	// logarithm of a non-positive number. The input is rejected instead
	// of returning a non-finite rate.
	ErrInvalidRateDomain = errors.New("invalid rate domain")
)
