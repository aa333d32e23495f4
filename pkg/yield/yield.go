// Package yield resolves the specific photovoltaic yield of a location.
package yield

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/raterudder/solarcheck/pkg/types"
)

// Provider returns the expected production of 1 kWp installed at a location.
type Provider interface {
	GetYield(ctx context.Context, lat, lon float64) (types.SolarYieldProfile, error)
}

// Configured sets up the yield providers and returns a Map.
func Configured() *Map {
	m := NewMap()
	m.SetProvider("pvgis", configuredPVGIS())
	m.SetProvider("static", NewStatic(DefaultMonthly))
	return m
}

// Map manages named yield providers.
type Map struct {
	mu        sync.Mutex
	providers map[string]Provider
}

// NewMap creates an empty Map.
func NewMap() *Map {
	return &Map{
		providers: make(map[string]Provider),
	}
}

// Provider returns the provider registered under name.
func (m *Map) Provider(name string) (Provider, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	p, ok := m.providers[name]
	if !ok {
		return nil, types.Configurationf("unknown yield provider: %s", name)
	}
	return p, nil
}

// SetProvider registers provider under name, replacing any existing one.
func (m *Map) SetProvider(name string, provider Provider) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.providers[name] = provider
}

// Names lists the registered providers.
func (m *Map) Names() []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	names := make([]string, 0, len(m.providers))
	for n := range m.providers {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// DefaultMonthly is a typical monthly yield, in kWh per kWp, of a south
// facing fixed system at 35 degrees tilt in central Italy.
var DefaultMonthly = types.Monthly{62, 80, 116, 137, 158, 165, 178, 163, 128, 100, 66, 56}

// Static always returns the same profile, relocated to the requested
// coordinates.
type Static struct {
	Profile types.SolarYieldProfile
}

// NewStatic builds a Static provider from monthly yields. The annual yield is
// the sum of the months.
func NewStatic(monthly types.Monthly) *Static {
	return &Static{
		Profile: types.SolarYieldProfile{
			Source:           "static",
			MonthlyKWHPerKWP: monthly,
			AnnualKWHPerKWP:  monthly.Sum(),
		},
	}
}

// GetYield implements Provider.
func (s *Static) GetYield(ctx context.Context, lat, lon float64) (types.SolarYieldProfile, error) {
	if err := ctx.Err(); err != nil {
		return types.SolarYieldProfile{}, fmt.Errorf("static yield: %w", err)
	}
	p := s.Profile
	p.Latitude = lat
	p.Longitude = lon
	return p, nil
}
