package sizing

import (
	"context"
	"testing"

	"github.com/raterudder/solarcheck/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	testYield = types.Monthly{60, 80, 125, 160, 190, 205, 220, 200, 155, 110, 70, 55}
	testRaw   = types.Monthly{2200, 2100, 2000, 1900, 1800, 1900, 2300, 2200, 1800, 1800, 1900, 2100}
)

func ptr[T any](v T) *T {
	return &v
}

func TestSizeNetMetering(t *testing.T) {
	ctx := context.Background()

	t.Run("sized to annual consumption", func(t *testing.T) {
		res, err := SizeNetMetering(ctx, NetMeteringInput{
			AnnualConsumptionKWH:     24000,
			AnnualYieldKWHPerKWP:     1800,
			MonthlyYieldKWHPerKWP:    testYield,
			MonthlyRawConsumptionKWH: testRaw,
		})
		require.NoError(t, err)
		assert.InDelta(t, 13.33, res.TheoreticalPowerKWP, 0.005)
		assert.Equal(t, res.TheoreticalPowerKWP, res.InstalledPowerKWP)
		assert.InDelta(t, res.InstalledPowerKWP*testYield.Sum(), res.AnnualProducibleKWH, 1e-6)
		assert.InDelta(t, res.AnnualProducibleKWH/24000*100, res.CoverageRatePercent, 1e-9)
		assert.Equal(t, res.Records[11].CreditKWH, res.FinalCreditKWH)
		assert.Equal(t, testRaw, res.Records.Raw())
	})

	t.Run("override", func(t *testing.T) {
		override := 10.0
		res, err := SizeNetMetering(ctx, NetMeteringInput{
			AnnualConsumptionKWH:      24000,
			AnnualYieldKWHPerKWP:      1800,
			MonthlyYieldKWHPerKWP:     testYield,
			MonthlyRawConsumptionKWH:  testRaw,
			InstalledPowerOverrideKWP: &override,
		})
		require.NoError(t, err)
		assert.InDelta(t, 13.33, res.TheoreticalPowerKWP, 0.005)
		assert.Equal(t, 10.0, res.InstalledPowerKWP)
		assert.InDelta(t, 600.0, res.Records[0].PVProductionKWH, 1e-9)
	})

	t.Run("zero yield", func(t *testing.T) {
		res, err := SizeNetMetering(ctx, NetMeteringInput{
			AnnualConsumptionKWH:     24000,
			MonthlyRawConsumptionKWH: testRaw,
		})
		require.NoError(t, err)
		assert.Equal(t, 0.0, res.TheoreticalPowerKWP)
		assert.Equal(t, 0.0, res.CoverageRatePercent)
		assert.Equal(t, testRaw, res.Records.Billed())
	})

	t.Run("zero consumption", func(t *testing.T) {
		res, err := SizeNetMetering(ctx, NetMeteringInput{
			AnnualYieldKWHPerKWP:  1800,
			MonthlyYieldKWHPerKWP: testYield,
		})
		require.NoError(t, err)
		assert.Equal(t, 0.0, res.TheoreticalPowerKWP)
		assert.Equal(t, 0.0, res.CoverageRatePercent)
	})

	t.Run("invalid", func(t *testing.T) {
		negative := -1.0
		cases := map[string]NetMeteringInput{
			"consumption": {AnnualConsumptionKWH: -5},
			"yield":       {AnnualConsumptionKWH: 5, AnnualYieldKWHPerKWP: -1},
			"monthly":     {MonthlyYieldKWHPerKWP: types.Monthly{0, -1}},
			"override":    {InstalledPowerOverrideKWP: &negative},
		}
		for name, in := range cases {
			t.Run(name, func(t *testing.T) {
				_, err := SizeNetMetering(ctx, in)
				assert.ErrorIs(t, err, types.ErrValidation)
			})
		}
	})
}
