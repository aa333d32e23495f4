package types

import "math"

// Monthly holds one value per calendar month, index 0 is January.
type Monthly [12]float64

// MonthlyFromSlice converts caller-supplied values into a Monthly. It is meant
// for input boundaries and returns a validation error unless there are exactly
// 12 entries.
func MonthlyFromSlice(name string, vals []float64) (Monthly, error) {
	var m Monthly
	if len(vals) != len(m) {
		return m, Validationf("%s must have 12 monthly values, got %d", name, len(vals))
	}
	copy(m[:], vals)
	return m, nil
}

// Sum returns the total over the 12 months.
func (m Monthly) Sum() float64 {
	var total float64
	for _, v := range m {
		total += v
	}
	return total
}

// Slice returns the months as a new slice.
func (m Monthly) Slice() []float64 {
	out := make([]float64, len(m))
	copy(out, m[:])
	return out
}

// ValidateNonNegative checks every month is finite and >= 0.
func (m Monthly) ValidateNonNegative(name string) error {
	for i, v := range m {
		if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
			return Validationf("%s for month %d must be a finite non-negative number, got %v", name, i+1, v)
		}
	}
	return nil
}

// ValidMonth reports whether month is within 1..12.
func ValidMonth(month int) bool {
	return month >= 1 && month <= 12
}

// CheckNonNegative returns a validation error unless v is finite and >= 0.
func CheckNonNegative(name string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return Validationf("%s must be a finite non-negative number, got %v", name, v)
	}
	return nil
}
