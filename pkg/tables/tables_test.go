package tables

import (
	"testing"

	"github.com/raterudder/solarcheck/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookupsAreTotal(t *testing.T) {
	t.Run("climate", func(t *testing.T) {
		for _, z := range Zones() {
			c, err := ClimateCoefficients(z)
			require.NoError(t, err, "zone %s", z)
			for m, v := range c {
				assert.Greater(t, v, 0.0, "zone %s month %d", z, m+1)
			}
		}
		_, err := ClimateCoefficients(types.ClimateZone("ARCTIC"))
		assert.ErrorIs(t, err, types.ErrConfiguration)
	})

	t.Run("building", func(t *testing.T) {
		for _, c := range Categories() {
			coeffs, err := BuildingCoefficients(c)
			require.NoError(t, err, "category %s", c)
			assert.InDelta(t, 12.0, coeffs.Sum(), 1.0, "category %s should average near 1", c)
		}
		_, err := BuildingCoefficients(types.BuildingCategory("SPACEPORT"))
		assert.ErrorIs(t, err, types.ErrConfiguration)
	})

	t.Run("operating hours", func(t *testing.T) {
		for _, h := range OperatingHoursProfiles() {
			_, err := OperatingHoursCoefficients(h)
			require.NoError(t, err, "profile %s", h)
		}
		none, err := OperatingHoursCoefficients(types.OperatingHoursNone)
		require.NoError(t, err)
		assert.Equal(t, 12.0, none.Sum())

		_, err = OperatingHoursCoefficients(types.OperatingHours("WEEKENDS"))
		assert.ErrorIs(t, err, types.ErrConfiguration)
	})

	t.Run("autoconsumption", func(t *testing.T) {
		for _, h := range OperatingHoursProfiles() {
			for _, c := range Categories() {
				pairs, err := AutoconsumptionPairs(h, c)
				require.NoError(t, err, "profile %s category %s", h, c)
				assert.NotEmpty(t, pairs)
				assert.LessOrEqual(t, len(pairs), 5)
				for i := 1; i < len(pairs); i++ {
					assert.Greater(t, pairs[i].CoverageRate, pairs[i-1].CoverageRate, "coverage should increase in table order")
				}
			}
		}
		_, err := AutoconsumptionPairs(types.OperatingHoursNone, types.BuildingCategoryOffice)
		assert.ErrorIs(t, err, types.ErrConfiguration)
		_, err = AutoconsumptionPairs(types.OperatingHoursDay, types.BuildingCategory("SPACEPORT"))
		assert.ErrorIs(t, err, types.ErrConfiguration)
	})

	t.Run("tariff", func(t *testing.T) {
		for _, s := range Segments() {
			tariff, err := Tariff(s)
			require.NoError(t, err)
			assert.Equal(t, s, tariff.Segment)
			assert.NotEmpty(t, tariff.Brackets)
		}
		_, err := Tariff(types.TariffSegment("AT"))
		assert.ErrorIs(t, err, types.ErrConfiguration)
	})
}

func TestLookupsReturnCopies(t *testing.T) {
	pairs, err := AutoconsumptionPairs(types.OperatingHoursDay, types.BuildingCategoryOffice)
	require.NoError(t, err)
	pairs[0].CoverageRate = 99

	again, err := AutoconsumptionPairs(types.OperatingHoursDay, types.BuildingCategoryOffice)
	require.NoError(t, err)
	assert.Equal(t, 0.20, again[0].CoverageRate)

	tariff, err := Tariff(types.TariffSegmentBT)
	require.NoError(t, err)
	tariff.Brackets[0].Rate = 10

	again2, err := Tariff(types.TariffSegmentBT)
	require.NoError(t, err)
	assert.Equal(t, 0.195, again2.Brackets[0].Rate)
}

func TestBTTariff(t *testing.T) {
	tariff, err := Tariff(types.TariffSegmentBT)
	require.NoError(t, err)

	assert.Equal(t, 0.195, tariff.Rate(150))
	assert.Equal(t, 0.195, tariff.Rate(200))
	assert.Equal(t, 0.215, tariff.Rate(200.5))
	assert.Equal(t, 0.235, tariff.Rate(500))
	assert.Equal(t, 0.255, tariff.Rate(12000))

	assert.InDelta(t, 29.25, tariff.MonthlyCost(150), 1e-9)
	assert.InDelta(t, 351.0, tariff.FlatAnnualCost(150), 1e-9)
}
