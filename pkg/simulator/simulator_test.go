package simulator

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/raterudder/solarcheck/pkg/economics"
	"github.com/raterudder/solarcheck/pkg/storage"
	"github.com/raterudder/solarcheck/pkg/storage/storagemock"
	"github.com/raterudder/solarcheck/pkg/types"
	"github.com/raterudder/solarcheck/pkg/yield"
)

func ptr[T any](v T) *T {
	return &v
}

// flakyProvider fails the first failures calls.
type flakyProvider struct {
	failures int32
	calls    atomic.Int32
	next     yield.Provider
}

func (f *flakyProvider) GetYield(ctx context.Context, lat, lon float64) (types.SolarYieldProfile, error) {
	if f.calls.Add(1) <= f.failures {
		return types.SolarYieldProfile{}, errors.New("pvgis unavailable")
	}
	return f.next.GetYield(ctx, lat, lon)
}

func testOptions() Options {
	opts := DefaultOptions()
	opts.YieldRetryDelay = time.Millisecond
	return opts
}

func officeRequest() types.SimulationRequest {
	return types.SimulationRequest{
		Label:                  "milan office",
		Latitude:               45.4642,
		Longitude:              9.19,
		BuildingCategory:       types.BuildingCategoryOffice,
		ClimateZone:            types.ClimateZoneNorth,
		MeasuredConsumptionKWH: ptr(1200.0),
		ReferenceMonth:         7,
	}
}

func TestRun(t *testing.T) {
	ctx := context.Background()
	defaults := economics.NewDefaults(economics.DefaultParameters())
	static := yield.NewStatic(yield.DefaultMonthly)

	t.Run("net metering", func(t *testing.T) {
		db := &storagemock.MockDatabase{}
		db.On("InsertSimulation", mock.Anything, mock.AnythingOfType("types.Simulation")).Return(nil).Once()

		s := New(static, db, defaults, testOptions())
		sim, err := s.Run(ctx, officeRequest())
		require.NoError(t, err)
		db.AssertExpectations(t)

		_, err = uuid.Parse(sim.ID)
		require.NoError(t, err)
		assert.False(t, sim.CreatedAt.IsZero())
		assert.Equal(t, types.TariffSegmentBT, sim.Segment)
		require.NotNil(t, sim.NetMetering)
		assert.Nil(t, sim.Autoconsumption)
		assert.Equal(t, 1200.0, sim.Consumption.Months[6].RawConsumptionKWH)
		assert.Equal(t, "static", sim.Yield.Source)
		assert.Equal(t, 45.4642, sim.Yield.Latitude)

		nm := sim.NetMetering
		assert.InDelta(t, sim.Consumption.AnnualConsumptionKWH/yield.DefaultMonthly.Sum(), nm.TheoreticalPowerKWP, 1e-9)
		assert.InDelta(t, 100, nm.CoverageRatePercent, 1e-6)

		assert.Len(t, sim.Economics.Annual, 25)
		assert.InDelta(t, nm.InstalledPowerKWP*2300, sim.Economics.Summary.CAPEX, 1e-6)
		for m, row := range sim.Economics.Monthly {
			assert.Equal(t, nm.Records[m].BilledConsumptionKWH, row.BilledConsumptionKWH)
			assert.Equal(t, nm.Records[m].RawConsumptionKWH, row.RawConsumptionKWH)
		}

		stored := db.Calls[0].Arguments.Get(1).(types.Simulation)
		assert.Equal(t, sim.ID, stored.ID)
	})

	t.Run("autoconsumption", func(t *testing.T) {
		req := officeRequest()
		req.OperatingHours = types.OperatingHoursDay
		req.MeasuredConsumptionKWH = ptr(20000.0)

		s := New(static, nil, defaults, testOptions())
		sim, err := s.Run(ctx, req)
		require.NoError(t, err)
		assert.Equal(t, types.TariffSegmentMT, sim.Segment)
		assert.Nil(t, sim.NetMetering)
		require.NotNil(t, sim.Autoconsumption)
		assert.Equal(t, 0.50, sim.Autoconsumption.TargetCoverageRate)
		assert.True(t, sim.Autoconsumption.SurplusWithinLimit)
		assert.Equal(t, 0.175, sim.Economics.Monthly[0].RateWithoutPV)
		for _, r := range sim.Records() {
			assert.Equal(t, 0.0, r.CreditKWH)
		}
	})

	t.Run("no viable sizing", func(t *testing.T) {
		req := officeRequest()
		req.OperatingHours = types.OperatingHoursDay
		opts := testOptions()
		opts.SurplusCeiling = 0.01

		s := New(static, nil, defaults, opts)
		_, err := s.Run(ctx, req)
		assert.ErrorIs(t, err, types.ErrNoViableSizing)
	})

	t.Run("zero ceiling is not replaced by the default", func(t *testing.T) {
		req := officeRequest()
		req.OperatingHours = types.OperatingHoursDay
		opts := testOptions()
		opts.SurplusCeiling = 0

		s := New(static, nil, defaults, opts)
		_, err := s.Run(ctx, req)
		assert.ErrorIs(t, err, types.ErrNoViableSizing)
	})

	t.Run("bill amount", func(t *testing.T) {
		req := officeRequest()
		req.MeasuredConsumptionKWH = nil
		req.MeasuredBillAmount = ptr(29.25)

		s := New(static, nil, defaults, testOptions())
		sim, err := s.Run(ctx, req)
		require.NoError(t, err)
		assert.InDelta(t, 150, sim.Consumption.MeasuredConsumptionKWH, 1e-9)
	})

	t.Run("request yield skips the provider", func(t *testing.T) {
		req := officeRequest()
		req.Yield = &types.YieldInput{
			MonthlyKWHPerKWP: yield.DefaultMonthly.Slice(),
			AnnualKWHPerKWP:  1400,
		}
		provider := &flakyProvider{failures: 100, next: static}

		s := New(provider, nil, defaults, testOptions())
		sim, err := s.Run(ctx, req)
		require.NoError(t, err)
		assert.Equal(t, int32(0), provider.calls.Load())
		assert.Equal(t, "request", sim.Yield.Source)
		assert.Equal(t, 1400.0, sim.Yield.AnnualKWHPerKWP)
	})

	t.Run("economic overrides", func(t *testing.T) {
		req := officeRequest()
		req.InstalledPowerOverrideKWP = ptr(5.0)
		req.Economics = &types.EconomicOverrides{
			LifetimeYears: ptr(20),
			CAPEXOverride: ptr(7000.0),
		}

		s := New(static, nil, defaults, testOptions())
		sim, err := s.Run(ctx, req)
		require.NoError(t, err)
		assert.Equal(t, 5.0, sim.NetMetering.InstalledPowerKWP)
		assert.Len(t, sim.Economics.Annual, 20)
		assert.Equal(t, 7000.0, sim.Economics.Summary.CAPEX)
		assert.Equal(t, 20, sim.Economics.Parameters.LifetimeYears)
	})

	t.Run("zero installed power", func(t *testing.T) {
		req := officeRequest()
		req.InstalledPowerOverrideKWP = ptr(0.0)

		s := New(static, nil, defaults, testOptions())
		_, err := s.Run(ctx, req)
		assert.ErrorIs(t, err, types.ErrValidation)
	})

	t.Run("invalid request", func(t *testing.T) {
		req := officeRequest()
		req.ReferenceMonth = 13

		db := &storagemock.MockDatabase{}
		s := New(static, db, defaults, testOptions())
		_, err := s.Run(ctx, req)
		assert.ErrorIs(t, err, types.ErrValidation)
		db.AssertNotCalled(t, "InsertSimulation", mock.Anything, mock.Anything)
	})

	t.Run("power override on autoconsumption", func(t *testing.T) {
		req := officeRequest()
		req.OperatingHours = types.OperatingHoursDay
		req.InstalledPowerOverrideKWP = ptr(500.0)

		db := &storagemock.MockDatabase{}
		s := New(static, db, defaults, testOptions())
		_, err := s.Run(ctx, req)
		assert.ErrorIs(t, err, types.ErrValidation)
		assert.ErrorContains(t, err, "installedPowerOverrideKWP")
		db.AssertNotCalled(t, "InsertSimulation", mock.Anything, mock.Anything)
	})

	t.Run("unknown category", func(t *testing.T) {
		req := officeRequest()
		req.BuildingCategory = "CASTLE"

		s := New(static, nil, defaults, testOptions())
		_, err := s.Run(ctx, req)
		assert.ErrorIs(t, err, types.ErrConfiguration)
	})

	t.Run("storage failure", func(t *testing.T) {
		db := &storagemock.MockDatabase{}
		db.On("InsertSimulation", mock.Anything, mock.Anything).Return(errors.New("unavailable"))

		s := New(static, db, defaults, testOptions())
		_, err := s.Run(ctx, officeRequest())
		assert.ErrorContains(t, err, "failed to store simulation")
	})
}

func TestYieldRetries(t *testing.T) {
	ctx := context.Background()
	defaults := economics.NewDefaults(economics.DefaultParameters())
	static := yield.NewStatic(yield.DefaultMonthly)

	t.Run("recovers", func(t *testing.T) {
		provider := &flakyProvider{failures: 2, next: static}
		s := New(provider, nil, defaults, testOptions())
		_, err := s.Run(ctx, officeRequest())
		require.NoError(t, err)
		assert.Equal(t, int32(3), provider.calls.Load())
	})

	t.Run("gives up", func(t *testing.T) {
		provider := &flakyProvider{failures: 5, next: static}
		s := New(provider, nil, defaults, testOptions())
		_, err := s.Run(ctx, officeRequest())
		assert.ErrorContains(t, err, "after 3 attempts")
		assert.ErrorContains(t, err, "pvgis unavailable")
		assert.Equal(t, int32(3), provider.calls.Load())
	})

	t.Run("canceled while waiting", func(t *testing.T) {
		provider := &flakyProvider{failures: 5, next: static}
		opts := testOptions()
		opts.YieldRetryDelay = time.Hour
		s := New(provider, nil, defaults, opts)

		ctx, cancel := context.WithCancel(ctx)
		go func() {
			for provider.calls.Load() == 0 {
				time.Sleep(time.Millisecond)
			}
			cancel()
		}()
		_, err := s.Run(ctx, officeRequest())
		assert.ErrorIs(t, err, context.Canceled)
		assert.Equal(t, int32(1), provider.calls.Load())
	})

	t.Run("no provider", func(t *testing.T) {
		s := New(nil, nil, defaults, testOptions())
		_, err := s.Run(ctx, officeRequest())
		assert.ErrorIs(t, err, types.ErrConfiguration)
	})
}

func TestConcurrentRuns(t *testing.T) {
	ctx := context.Background()
	db := storage.NewMemory()
	s := New(yield.NewStatic(yield.DefaultMonthly), db, economics.NewDefaults(economics.DefaultParameters()), testOptions())

	var wg sync.WaitGroup
	ids := make([]string, 8)
	for i := range ids {
		wg.Add(1)
		go func() {
			defer wg.Done()
			sim, err := s.Run(ctx, officeRequest())
			assert.NoError(t, err)
			ids[i] = sim.ID
		}()
	}
	wg.Wait()

	for _, id := range ids {
		sim, err := db.GetSimulation(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, id, sim.ID)
	}
	sims, err := db.ListSimulations(ctx, time.Now().Add(-time.Hour), time.Now().Add(time.Hour))
	require.NoError(t, err)
	assert.Len(t, sims, len(ids))
}
