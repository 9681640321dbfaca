package db

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/damon-houk/treasury-yield-service/internal/domain/entity"
)

const dateKeyLayout = "2006-01-02"

// MemorySnapshotStore implements the snapshot store in process memory. It
// is rebuilt fresh on every run and discarded at exit; the badger store
// exists for callers that want the feed cached across restarts.
type MemorySnapshotStore struct {
	snapshots map[string]*entity.Snapshot
	mutex     sync.RWMutex
}

// NewMemorySnapshotStore creates a new in-memory snapshot store
func NewMemorySnapshotStore() *MemorySnapshotStore {
	return &MemorySnapshotStore{
		snapshots: make(map[string]*entity.Snapshot),
	}
}

// Add stores a snapshot under its date. A snapshot already stored for the
// same date is replaced (last-write-wins).
func (s *MemorySnapshotStore) Add(ctx context.Context, snapshot *entity.Snapshot) error {
	if snapshot == nil || len(snapshot.Points) == 0 {
		return fmt.Errorf("add snapshot: %w", entity.ErrEmptyObservation)
	}

	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.snapshots[snapshot.Date.Format(dateKeyLayout)] = snapshot
	return nil
}

// Latest returns the snapshot with the maximum date
func (s *MemorySnapshotStore) Latest(ctx context.Context) (*entity.Snapshot, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	if len(s.snapshots) == 0 {
		return nil, entity.ErrNoData
	}

	// Date keys are lexicographically ordered, so the maximum key is the
	// latest date
	var latestKey string
	for key := range s.snapshots {
		if key > latestKey {
			latestKey = key
		}
	}

	return s.snapshots[latestKey], nil
}

// ForDate returns the snapshot whose date matches d exactly
func (s *MemorySnapshotStore) ForDate(ctx context.Context, d time.Time) (*entity.Snapshot, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	snapshot, ok := s.snapshots[d.Format(dateKeyLayout)]
	if !ok {
		return nil, fmt.Errorf("snapshot for %s: %w", d.Format(dateKeyLayout), entity.ErrDateNotFound)
	}

	return snapshot, nil
}

// Size returns the number of stored snapshots
func (s *MemorySnapshotStore) Size() int {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	return len(s.snapshots)
}
