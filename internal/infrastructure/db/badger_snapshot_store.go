package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/damon-houk/treasury-yield-service/internal/domain/entity"
	"github.com/dgraph-io/badger/v3"
)

// snapshotKeyPrefix namespaces snapshot keys; the date suffix sorts
// lexicographically, so key order is date order
const snapshotKeyPrefix = "snapshot:"

// BadgerSnapshotStore implements the snapshot store on BadgerDB so a parsed
// year of feed data survives process restarts. Duplicate dates follow the
// same last-write-wins policy as the in-memory store.
type BadgerSnapshotStore struct {
	db *badger.DB
}

// NewBadgerSnapshotStore creates a new BadgerDB snapshot store
func NewBadgerSnapshotStore(db *badger.DB) *BadgerSnapshotStore {
	return &BadgerSnapshotStore{db: db}
}

func snapshotKey(d time.Time) []byte {
	return []byte(snapshotKeyPrefix + d.Format(dateKeyLayout))
}

// Add stores a snapshot under its date, replacing any existing one
func (s *BadgerSnapshotStore) Add(ctx context.Context, snapshot *entity.Snapshot) error {
	if snapshot == nil || len(snapshot.Points) == 0 {
		return fmt.Errorf("add snapshot: %w", entity.ErrEmptyObservation)
	}

	data, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}

	err = s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(snapshotKey(snapshot.Date), data)
	})
	if err != nil {
		return fmt.Errorf("failed to store snapshot: %w", err)
	}

	return nil
}

// Latest returns the snapshot with the maximum date
func (s *BadgerSnapshotStore) Latest(ctx context.Context) (*entity.Snapshot, error) {
	var snapshot entity.Snapshot
	found := false

	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Reverse = true
		opts.Prefix = []byte(snapshotKeyPrefix)

		it := txn.NewIterator(opts)
		defer it.Close()

		// Reverse iteration starts just past the prefix range; the first
		// valid key is the maximum date
		seek := append([]byte(snapshotKeyPrefix), 0xFF)
		it.Seek(seek)
		if !it.ValidForPrefix([]byte(snapshotKeyPrefix)) {
			return nil
		}

		found = true
		return it.Item().Value(func(val []byte) error {
			return json.Unmarshal(val, &snapshot)
		})
	})
	if err != nil {
		return nil, fmt.Errorf("failed to read latest snapshot: %w", err)
	}
	if !found {
		return nil, entity.ErrNoData
	}

	return &snapshot, nil
}

// ForDate returns the snapshot whose date matches d exactly
func (s *BadgerSnapshotStore) ForDate(ctx context.Context, d time.Time) (*entity.Snapshot, error) {
	var snapshot entity.Snapshot

	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(snapshotKey(d))
		if err != nil {
			return err
		}

		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &snapshot)
		})
	})

	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, fmt.Errorf("snapshot for %s: %w", d.Format(dateKeyLayout), entity.ErrDateNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve snapshot: %w", err)
	}

	return &snapshot, nil
}
