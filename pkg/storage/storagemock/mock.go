package storagemock

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/raterudder/solarcheck/pkg/storage"
	"github.com/raterudder/solarcheck/pkg/types"
)

type MockDatabase struct {
	mock.Mock
}

var _ storage.Database = (*MockDatabase)(nil)

func (m *MockDatabase) InsertSimulation(ctx context.Context, sim types.Simulation) error {
	args := m.Called(ctx, sim)
	return args.Error(0)
}

func (m *MockDatabase) GetSimulation(ctx context.Context, id string) (types.Simulation, error) {
	args := m.Called(ctx, id)
	if len(args) > 0 {
		return args.Get(0).(types.Simulation), args.Error(1)
	}
	return types.Simulation{}, nil
}

func (m *MockDatabase) ListSimulations(ctx context.Context, start, end time.Time) ([]types.Simulation, error) {
	args := m.Called(ctx, start, end)
	if len(args) > 0 {
		return args.Get(0).([]types.Simulation), args.Error(1)
	}
	return nil, nil
}

func (m *MockDatabase) Close() error {
	args := m.Called()
	return args.Error(0)
}
