package economics

import (
	"testing"

	"github.com/raterudder/solarcheck/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIRR(t *testing.T) {
	t.Run("single period", func(t *testing.T) {
		irr, err := IRR([]float64{-100, 110})
		require.NoError(t, err)
		assert.InDelta(t, 0.10, irr, 1e-8)
	})

	t.Run("annuity", func(t *testing.T) {
		flows := []float64{-100, 50, 50, 50}
		irr, err := IRR(flows)
		require.NoError(t, err)
		assert.InDelta(t, 0.2338, irr, 1e-4)
		assert.InDelta(t, 0, npvAt(flows, irr), 1e-6)
	})

	t.Run("negative rate", func(t *testing.T) {
		irr, err := IRR([]float64{-100, 40, 40})
		require.NoError(t, err)
		assert.Less(t, irr, 0.0)
		assert.InDelta(t, 0, npvAt([]float64{-100, 40, 40}, irr), 1e-6)
	})

	t.Run("no sign change", func(t *testing.T) {
		_, err := IRR([]float64{100, 10, 10})
		assert.ErrorIs(t, err, types.ErrNoConvergence)

		_, err = IRR([]float64{-100, -10, -10})
		assert.ErrorIs(t, err, types.ErrNoConvergence)
	})
}

func TestPayback(t *testing.T) {
	assert.InDelta(t, 2.5, payback(-100, []float64{40, 40, 40, 40}), 1e-9)
	assert.InDelta(t, 1.0, payback(-100, []float64{100, 40}), 1e-9)
	assert.Equal(t, 0.0, payback(0, []float64{10}))
	assert.Equal(t, types.PaybackNeverRecovered, payback(-100, []float64{10, 10}))
	assert.Equal(t, types.PaybackNeverRecovered, payback(-100, []float64{-10, 5}))
}
