package economics

import "github.com/raterudder/solarcheck/pkg/types"

// payback returns the first point where the cumulative series reaches zero,
// interpolated linearly within the year. start is the value before year 1
// and gains[i] is the amount added in year i+1.
func payback(start float64, gains []float64) float64 {
	if start >= 0 {
		return 0
	}
	cum := start
	for i, g := range gains {
		next := cum + g
		if next >= 0 {
			return float64(i) + (-cum)/g
		}
		cum = next
	}
	return types.PaybackNeverRecovered
}
