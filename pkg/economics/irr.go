package economics

import (
	"fmt"
	"math"

	"github.com/raterudder/solarcheck/pkg/types"
)

const (
	irrLow           = -0.99
	irrHigh          = 1.0
	irrTolerance     = 1e-9
	irrMaxIterations = 200
)

// npvAt discounts the yearly cash flows at rate. flows[0] is year 0.
func npvAt(flows []float64, rate float64) float64 {
	var npv float64
	for n, f := range flows {
		npv += f / math.Pow(1+rate, float64(n))
	}
	return npv
}

// IRR finds the rate at which the NPV of flows is zero by bisection over
// [-0.99, 1.0]. It returns ErrNoConvergence when the NPV does not change
// sign over the interval.
func IRR(flows []float64) (float64, error) {
	lo, hi := irrLow, irrHigh
	fLo, fHi := npvAt(flows, lo), npvAt(flows, hi)
	if fLo == 0 {
		return lo, nil
	}
	if fHi == 0 {
		return hi, nil
	}
	if math.IsNaN(fLo) || math.IsNaN(fHi) || (fLo > 0) == (fHi > 0) {
		return 0, fmt.Errorf("%w: npv does not change sign over [%v, %v]", types.ErrNoConvergence, lo, hi)
	}
	for range irrMaxIterations {
		mid := (lo + hi) / 2
		fMid := npvAt(flows, mid)
		if fMid == 0 || (hi-lo)/2 < irrTolerance {
			return mid, nil
		}
		if (fMid > 0) == (fLo > 0) {
			lo, fLo = mid, fMid
		} else {
			hi = mid
		}
	}
	return 0, fmt.Errorf("%w: bisection did not settle after %d iterations", types.ErrNoConvergence, irrMaxIterations)
}
