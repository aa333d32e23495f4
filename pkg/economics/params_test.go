package economics

import (
	"testing"

	"github.com/raterudder/solarcheck/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultParameters(t *testing.T) {
	p := DefaultParameters()
	require.NoError(t, p.Validate())
	assert.Equal(t, 25, p.LifetimeYears)
	assert.Equal(t, 0.07, p.TariffInflationRate)
	assert.Nil(t, p.CAPEXOverride)
}

func TestDefaultsMerge(t *testing.T) {
	d := NewDefaults(DefaultParameters())

	t.Run("nil overrides", func(t *testing.T) {
		p, err := d.Merge(nil)
		require.NoError(t, err)
		assert.Equal(t, DefaultParameters(), p)
	})

	t.Run("field by field", func(t *testing.T) {
		p, err := d.Merge(&types.EconomicOverrides{
			DiscountRate:  ptr(0.05),
			LifetimeYears: ptr(20),
			CAPEXOverride: ptr(9000.0),
		})
		require.NoError(t, err)
		assert.Equal(t, 0.05, p.DiscountRate)
		assert.Equal(t, 20, p.LifetimeYears)
		require.NotNil(t, p.CAPEXOverride)
		assert.Equal(t, 9000.0, *p.CAPEXOverride)
		assert.Equal(t, 0.07, p.TariffInflationRate)
		// the defaults are untouched
		assert.Nil(t, d.Parameters().CAPEXOverride)
		assert.Equal(t, 25, d.Parameters().LifetimeYears)
	})

	t.Run("invalid result", func(t *testing.T) {
		_, err := d.Merge(&types.EconomicOverrides{DegradationRate: ptr(1.0)})
		assert.ErrorIs(t, err, types.ErrValidation)
	})
}
