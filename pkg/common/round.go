package common

import (
	"math"

	"github.com/shopspring/decimal"
)

// Round rounds v half away from zero to the given number of decimal places.
// Rounding goes through a decimal so values like 1.005 round the way they
// read instead of the way they are stored. NaN and infinities are returned
// unchanged.
func Round(v float64, places int32) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return v
	}
	return decimal.NewFromFloat(v).Round(places).InexactFloat64()
}

// Round2 rounds to 2 decimal places, the precision of kWh and money amounts
// in reports.
func Round2(v float64) float64 {
	return Round(v, 2)
}
