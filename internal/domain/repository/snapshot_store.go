// Package repository internal/domain/repository/snapshot_store.go
package repository

import (
	"context"
	"time"

	"github.com/damon-houk/treasury-yield-service/internal/domain/entity"
)

// SnapshotStore accumulates one curve snapshot per observation date.
//
// Duplicate dates follow last-write-wins: upstream feeds are expected to be
// chronologically ordered and non-duplicating, so the later Add simply
// replaces the earlier snapshot. Implementations carry whatever
// synchronization their backend needs; reads may run while a refresh is
// writing.
type SnapshotStore interface {
	// Add stores a snapshot under its date, replacing any existing one.
	Add(ctx context.Context, snapshot *entity.Snapshot) error

	// Latest returns the snapshot with the maximum date, or
	// entity.ErrNoData when the store is empty.
	Latest(ctx context.Context) (*entity.Snapshot, error)

	// ForDate returns the snapshot whose date matches d exactly, or
	// entity.ErrDateNotFound.
	ForDate(ctx context.Context, d time.Time) (*entity.Snapshot, error)
}
