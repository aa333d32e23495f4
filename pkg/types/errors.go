package types

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation is returned for malformed or out-of-range caller input.
	ErrValidation = errors.New("validation error")
	// ErrConfiguration is returned when a lookup table has no entry for a
	// variant. Tables are never silently defaulted.
	ErrConfiguration = errors.New("configuration error")
	// ErrNoViableSizing is returned when no autoconsumption pair satisfies the
	// surplus ceiling.
	ErrNoViableSizing = errors.New("no viable sizing")
	// ErrNoConvergence is returned when the IRR solver cannot bracket a root.
	ErrNoConvergence = errors.New("no convergence")

	ErrSimulationNotFound = errors.New("simulation not found")
	ErrSimulationExists   = errors.New("simulation already exists")
)

// Validationf returns an error wrapping ErrValidation.
func Validationf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

// Configurationf returns an error wrapping ErrConfiguration.
func Configurationf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrConfiguration, fmt.Sprintf(format, args...))
}
