// internal/infrastructure/db/badger_snapshot_store_test.go
package db

import (
	"context"
	"testing"
	"time"

	"github.com/damon-houk/treasury-yield-service/internal/domain/entity"
	"github.com/dgraph-io/badger/v3"
	"github.com/stretchr/testify/assert"
)

func openTestBadger(t *testing.T) *badger.DB {
	t.Helper()

	opts := badger.DefaultOptions(t.TempDir())
	opts.Logger = nil

	db, err := badger.Open(opts)
	assert.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, db.Close())
	})

	return db
}

func TestBadgerSnapshotStore(t *testing.T) {
	ctx := context.Background()
	d1 := time.Date(2024, 3, 14, 0, 0, 0, 0, time.UTC)
	d2 := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
	d3 := time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC)

	t.Run("Latest on empty store fails with NoData", func(t *testing.T) {
		store := NewBadgerSnapshotStore(openTestBadger(t))
		_, err := store.Latest(ctx)
		assert.ErrorIs(t, err, entity.ErrNoData)
	})

	t.Run("Round trip preserves the snapshot", func(t *testing.T) {
		store := NewBadgerSnapshotStore(openTestBadger(t))

		original, err := entity.NewSnapshot(d1, []entity.CurvePoint{
			{MaturityDays: 30, YieldPct: 5.50, IsObserved: true},
			{MaturityDays: 365, YieldPct: 5.06, IsObserved: true},
		})
		assert.NoError(t, err)
		assert.NoError(t, store.Add(ctx, original))

		loaded, err := store.ForDate(ctx, d1)
		assert.NoError(t, err)
		assert.Equal(t, original.Points, loaded.Points)
		assert.True(t, original.Date.Equal(loaded.Date))
	})

	t.Run("Latest returns the maximum date", func(t *testing.T) {
		store := NewBadgerSnapshotStore(openTestBadger(t))
		assert.NoError(t, store.Add(ctx, mustSnapshot(t, d3, 5.40)))
		assert.NoError(t, store.Add(ctx, mustSnapshot(t, d1, 5.50)))
		assert.NoError(t, store.Add(ctx, mustSnapshot(t, d2, 5.48)))

		latest, err := store.Latest(ctx)
		assert.NoError(t, err)
		assert.True(t, d3.Equal(latest.Date))
	})

	t.Run("ForDate on missing date fails with DateNotFound", func(t *testing.T) {
		store := NewBadgerSnapshotStore(openTestBadger(t))
		assert.NoError(t, store.Add(ctx, mustSnapshot(t, d1, 5.50)))

		_, err := store.ForDate(ctx, d2)
		assert.ErrorIs(t, err, entity.ErrDateNotFound)
	})

	t.Run("Duplicate date takes the later write", func(t *testing.T) {
		store := NewBadgerSnapshotStore(openTestBadger(t))
		assert.NoError(t, store.Add(ctx, mustSnapshot(t, d1, 5.50)))
		assert.NoError(t, store.Add(ctx, mustSnapshot(t, d1, 5.55)))

		snap, err := store.ForDate(ctx, d1)
		assert.NoError(t, err)
		assert.Equal(t, 5.55, snap.Points[0].YieldPct)
	})
}
