// Package storage persists finished simulations.
package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/levenlabs/go-lflag"

	"github.com/raterudder/solarcheck/pkg/types"
)

// Database persists simulations. Simulations are immutable once inserted.
type Database interface {
	// InsertSimulation stores a new simulation and fails with
	// types.ErrSimulationExists if the ID is taken.
	InsertSimulation(ctx context.Context, sim types.Simulation) error
	// GetSimulation returns types.ErrSimulationNotFound when id is unknown.
	GetSimulation(ctx context.Context, id string) (types.Simulation, error)
	// ListSimulations returns the simulations created in [start, end),
	// oldest first.
	ListSimulations(ctx context.Context, start, end time.Time) ([]types.Simulation, error)

	// Lifecycle
	Close() error
}

// Configured sets up the Storage provider based on flags.
func Configured() Database {
	return ConfiguredWithDefault("firestore")
}

// ConfiguredWithDefault is Configured with a different default provider.
func ConfiguredWithDefault(defaultProvider string) Database {
	provider := lflag.String("storage-provider", defaultProvider, "Storage provider to use (available: firestore, memory)")

	var p struct{ Database }

	fs := configuredFirestore()

	lflag.Do(func() {
		switch *provider {
		case "firestore":
			if err := fs.Validate(); err != nil {
				panic(fmt.Sprintf("firestore validation failed: %v", err))
			}
			p.Database = fs
			if err := fs.Init(context.Background()); err != nil {
				panic(fmt.Sprintf("firestore init failed: %v", err))
			}
		case "memory":
			p.Database = NewMemory()
		default:
			panic(fmt.Sprintf("unknown storage provider: %s", *provider))
		}
	})

	return &p
}
