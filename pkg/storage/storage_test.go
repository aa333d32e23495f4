package storage

import (
	"context"
	"testing"
	"time"

	"github.com/raterudder/solarcheck/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSimulation(id string, createdAt time.Time) types.Simulation {
	kwh := 1200.0
	return types.Simulation{
		ID:        id,
		CreatedAt: createdAt,
		Request: types.SimulationRequest{
			Label:                  "office " + id,
			Latitude:               45.46,
			Longitude:              9.19,
			BuildingCategory:       types.BuildingCategoryOffice,
			ClimateZone:            types.ClimateZoneNorth,
			MeasuredConsumptionKWH: &kwh,
			ReferenceMonth:         7,
		},
		Segment: types.TariffSegmentBT,
		NetMetering: &types.NetMeteringResult{
			PVSystemSizing: types.PVSystemSizing{
				TheoreticalPowerKWP: 13.33,
				InstalledPowerKWP:   13.33,
			},
			CoverageRatePercent: 100,
		},
		Economics: types.EconomicAnalysis{
			Annual: []types.AnnualProjectionRow{{Year: 1, NetGain: 100}},
		},
	}
}

// testDatabase runs the behavior every Database must share.
func testDatabase(t *testing.T, db Database) {
	ctx := context.Background()
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	t.Run("InsertAndGet", func(t *testing.T) {
		sim := testSimulation("sim-1", base)
		require.NoError(t, db.InsertSimulation(ctx, sim))

		got, err := db.GetSimulation(ctx, "sim-1")
		require.NoError(t, err)
		assert.Equal(t, sim.ID, got.ID)
		assert.True(t, sim.CreatedAt.Equal(got.CreatedAt))
		assert.Equal(t, sim.Request.Label, got.Request.Label)
		require.NotNil(t, got.Request.MeasuredConsumptionKWH)
		assert.Equal(t, 1200.0, *got.Request.MeasuredConsumptionKWH)
		require.NotNil(t, got.NetMetering)
		assert.Equal(t, 13.33, got.NetMetering.InstalledPowerKWP)
		assert.Nil(t, got.Autoconsumption)
		assert.Len(t, got.Economics.Annual, 1)
	})

	t.Run("InsertDuplicate", func(t *testing.T) {
		err := db.InsertSimulation(ctx, testSimulation("sim-1", base))
		assert.ErrorIs(t, err, types.ErrSimulationExists)
	})

	t.Run("InsertEmptyID", func(t *testing.T) {
		err := db.InsertSimulation(ctx, testSimulation("", base))
		assert.ErrorContains(t, err, "id cannot be empty")
	})

	t.Run("GetMissing", func(t *testing.T) {
		_, err := db.GetSimulation(ctx, "missing")
		assert.ErrorIs(t, err, types.ErrSimulationNotFound)
	})

	t.Run("List", func(t *testing.T) {
		require.NoError(t, db.InsertSimulation(ctx, testSimulation("sim-3", base.Add(2*time.Hour))))
		require.NoError(t, db.InsertSimulation(ctx, testSimulation("sim-2", base.Add(time.Hour))))
		require.NoError(t, db.InsertSimulation(ctx, testSimulation("sim-4", base.Add(48*time.Hour))))

		sims, err := db.ListSimulations(ctx, base, base.Add(24*time.Hour))
		require.NoError(t, err)
		require.Len(t, sims, 3)
		assert.Equal(t, "sim-1", sims[0].ID)
		assert.Equal(t, "sim-2", sims[1].ID)
		assert.Equal(t, "sim-3", sims[2].ID)

		// end is exclusive
		sims, err = db.ListSimulations(ctx, base, base.Add(time.Hour))
		require.NoError(t, err)
		require.Len(t, sims, 1)
		assert.Equal(t, "sim-1", sims[0].ID)

		sims, err = db.ListSimulations(ctx, base.Add(-48*time.Hour), base.Add(-24*time.Hour))
		require.NoError(t, err)
		assert.Empty(t, sims)
	})
}

func TestMemory(t *testing.T) {
	db := NewMemory()
	defer db.Close()
	testDatabase(t, db)

	t.Run("ReturnsCopies", func(t *testing.T) {
		ctx := context.Background()
		sim := testSimulation("copy", time.Now())
		require.NoError(t, db.InsertSimulation(ctx, sim))
		*sim.Request.MeasuredConsumptionKWH = 1

		got, err := db.GetSimulation(ctx, "copy")
		require.NoError(t, err)
		assert.Equal(t, 1200.0, *got.Request.MeasuredConsumptionKWH)
		got.NetMetering.InstalledPowerKWP = 0

		again, err := db.GetSimulation(ctx, "copy")
		require.NoError(t, err)
		assert.Equal(t, 13.33, again.NetMetering.InstalledPowerKWP)
	})
}
