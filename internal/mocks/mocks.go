// internal/mocks/mocks.go
package mocks

import (
	"context"
	"time"

	"github.com/damon-houk/treasury-yield-service/internal/domain/entity"
	"github.com/stretchr/testify/mock"
)

// MockSnapshotStore mocks the SnapshotStore interface
type MockSnapshotStore struct {
	mock.Mock
}

func (m *MockSnapshotStore) Add(ctx context.Context, snapshot *entity.Snapshot) error {
	args := m.Called(ctx, snapshot)
	return args.Error(0)
}

func (m *MockSnapshotStore) Latest(ctx context.Context) (*entity.Snapshot, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Snapshot), args.Error(1)
}

func (m *MockSnapshotStore) ForDate(ctx context.Context, d time.Time) (*entity.Snapshot, error) {
	args := m.Called(ctx, d)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Snapshot), args.Error(1)
}

// MockYieldCurveFeed mocks the YieldCurveFeed interface
type MockYieldCurveFeed struct {
	mock.Mock
}

func (m *MockYieldCurveFeed) FetchYear(ctx context.Context, year int) ([]entity.RawEntry, error) {
	args := m.Called(ctx, year)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.RawEntry), args.Error(1)
}
