package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/raterudder/solarcheck/pkg/types"
)

// Memory is an in-process Database for local runs and tests. Simulations are
// kept as JSON so callers never share state with the store.
type Memory struct {
	mu   sync.RWMutex
	sims map[string]memoryEntry
}

type memoryEntry struct {
	createdAt time.Time
	json      []byte
}

// NewMemory returns an empty Memory store.
func NewMemory() *Memory {
	return &Memory{sims: make(map[string]memoryEntry)}
}

// InsertSimulation implements Database.
func (m *Memory) InsertSimulation(ctx context.Context, sim types.Simulation) error {
	if sim.ID == "" {
		return fmt.Errorf("simulation id cannot be empty")
	}
	b, err := json.Marshal(sim)
	if err != nil {
		return fmt.Errorf("failed to marshal simulation: %w", err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.sims[sim.ID]; ok {
		return fmt.Errorf("%w: %s", types.ErrSimulationExists, sim.ID)
	}
	m.sims[sim.ID] = memoryEntry{createdAt: sim.CreatedAt, json: b}
	return nil
}

// GetSimulation implements Database.
func (m *Memory) GetSimulation(ctx context.Context, id string) (types.Simulation, error) {
	m.mu.RLock()
	e, ok := m.sims[id]
	m.mu.RUnlock()
	if !ok {
		return types.Simulation{}, fmt.Errorf("%w: %s", types.ErrSimulationNotFound, id)
	}
	var sim types.Simulation
	if err := json.Unmarshal(e.json, &sim); err != nil {
		return types.Simulation{}, fmt.Errorf("failed to unmarshal simulation json: %w", err)
	}
	return sim, nil
}

// ListSimulations implements Database.
func (m *Memory) ListSimulations(ctx context.Context, start, end time.Time) ([]types.Simulation, error) {
	m.mu.RLock()
	entries := make([]memoryEntry, 0, len(m.sims))
	for _, e := range m.sims {
		if !e.createdAt.Before(start) && e.createdAt.Before(end) {
			entries = append(entries, e)
		}
	}
	m.mu.RUnlock()

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].createdAt.Before(entries[j].createdAt)
	})
	sims := make([]types.Simulation, 0, len(entries))
	for _, e := range entries {
		var sim types.Simulation
		if err := json.Unmarshal(e.json, &sim); err != nil {
			return nil, fmt.Errorf("failed to unmarshal simulation json: %w", err)
		}
		sims = append(sims, sim)
	}
	return sims, nil
}

// Close implements Database.
func (m *Memory) Close() error {
	return nil
}
