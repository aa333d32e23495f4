// Package simulator runs a complete feasibility simulation: consumption
// extrapolation, PV sizing for the tariff segment and the economic analysis.
package simulator

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/levenlabs/go-lflag"

	"github.com/raterudder/solarcheck/pkg/consumption"
	"github.com/raterudder/solarcheck/pkg/economics"
	"github.com/raterudder/solarcheck/pkg/log"
	"github.com/raterudder/solarcheck/pkg/sizing"
	"github.com/raterudder/solarcheck/pkg/storage"
	"github.com/raterudder/solarcheck/pkg/tables"
	"github.com/raterudder/solarcheck/pkg/types"
	"github.com/raterudder/solarcheck/pkg/yield"
)

// Options tune the simulator.
type Options struct {
	// YieldAttempts is how many times the yield provider is tried.
	YieldAttempts int `json:"yieldAttempts"`
	// YieldRetryDelay is the wait between yield attempts.
	YieldRetryDelay time.Duration `json:"-"`
	// SurplusCeiling bounds the grid surplus on the autoconsumption path. Zero
	// allows no surplus.
	SurplusCeiling float64 `json:"surplusCeiling"`
}

// DefaultOptions returns the options used when nothing is configured.
func DefaultOptions() Options {
	return Options{
		YieldAttempts:   3,
		YieldRetryDelay: 2 * time.Second,
		SurplusCeiling:  sizing.DefaultSurplusCeiling,
	}
}

// Simulator runs simulations. It holds no per-request state and is safe for
// concurrent use.
type Simulator struct {
	yield    yield.Provider
	db       storage.Database
	defaults *economics.Defaults
	opts     Options
	now      func() time.Time
}

// New returns a Simulator. A nil db disables persistence.
func New(provider yield.Provider, db storage.Database, defaults *economics.Defaults, opts Options) *Simulator {
	if opts.YieldAttempts < 1 {
		opts.YieldAttempts = 1
	}
	return &Simulator{
		yield:    provider,
		db:       db,
		defaults: defaults,
		opts:     opts,
		now:      time.Now,
	}
}

// Configured registers the simulator flags and returns a Simulator wired to
// the selected yield provider once flags are parsed.
func Configured(yields *yield.Map, db storage.Database, defaults *economics.Defaults) *Simulator {
	opts := DefaultOptions()
	lflag.JSON(&opts, "simulator-options", opts, "JSON object with yieldAttempts and surplusCeiling")
	retryDelay := lflag.Duration("yield-retry-delay", opts.YieldRetryDelay, "Delay between attempts to fetch the solar yield")
	providerName := lflag.String("yield-provider", "pvgis", "Solar yield provider to use (available: pvgis, static)")

	s := New(nil, db, defaults, opts)
	lflag.Do(func() {
		provider, err := yields.Provider(*providerName)
		if err != nil {
			log.Ctx(context.Background()).Error("failed to get yield provider", slog.Any("error", err))
			os.Exit(1)
		}
		opts.YieldRetryDelay = *retryDelay
		if opts.YieldAttempts < 1 {
			opts.YieldAttempts = 1
		}
		s.yield = provider
		s.opts = opts
	})
	return s
}

// Run executes a simulation and persists it when storage is configured.
func (s *Simulator) Run(ctx context.Context, req types.SimulationRequest) (types.Simulation, error) {
	if err := req.Validate(); err != nil {
		return types.Simulation{}, err
	}

	id := uuid.NewString()
	ctx = log.With(ctx, log.Ctx(ctx).With(slog.String("simulationID", id)))

	segment := types.SegmentFor(req.OperatingHours)
	tariff, err := tables.Tariff(segment)
	if err != nil {
		return types.Simulation{}, err
	}

	measured, err := s.measuredConsumption(ctx, req, tariff)
	if err != nil {
		return types.Simulation{}, err
	}
	profile, err := consumption.Extrapolate(ctx, consumption.Input{
		MeasuredConsumptionKWH: measured,
		ReferenceMonth:         req.ReferenceMonth,
		BuildingCategory:       req.BuildingCategory,
		ClimateZone:            req.ClimateZone,
		OperatingHours:         req.OperatingHours,
	})
	if err != nil {
		return types.Simulation{}, err
	}

	solar, err := s.solarYield(ctx, req)
	if err != nil {
		return types.Simulation{}, err
	}

	sim := types.Simulation{
		ID:          id,
		CreatedAt:   s.now().UTC(),
		Request:     req,
		Segment:     segment,
		Consumption: profile,
		Yield:       solar,
	}

	var installed, production float64
	switch segment {
	case types.TariffSegmentBT:
		nm, err := sizing.SizeNetMetering(ctx, sizing.NetMeteringInput{
			AnnualConsumptionKWH:      profile.AnnualConsumptionKWH,
			AnnualYieldKWHPerKWP:      solar.AnnualKWHPerKWP,
			MonthlyYieldKWHPerKWP:     solar.MonthlyKWHPerKWP,
			MonthlyRawConsumptionKWH:  profile.RawConsumption(),
			InstalledPowerOverrideKWP: req.InstalledPowerOverrideKWP,
		})
		if err != nil {
			return types.Simulation{}, err
		}
		sim.NetMetering = &nm
		installed = nm.InstalledPowerKWP
		production = nm.AnnualProducibleKWH
	case types.TariffSegmentMT:
		ac, err := sizing.SizeAutoconsumption(ctx, sizing.AutoconsumptionInput{
			OperatingHours:           req.OperatingHours,
			BuildingCategory:         req.BuildingCategory,
			AnnualConsumptionKWH:     profile.AnnualConsumptionKWH,
			AnnualYieldKWHPerKWP:     solar.AnnualKWHPerKWP,
			MonthlyYieldKWHPerKWP:    solar.MonthlyKWHPerKWP,
			MonthlyRawConsumptionKWH: profile.RawConsumption(),
			SurplusCeiling:           &s.opts.SurplusCeiling,
		})
		if err != nil {
			return types.Simulation{}, err
		}
		sim.Autoconsumption = &ac
		installed = ac.TheoreticalPowerKWP
		production = ac.AnnualProductionKWH
	default:
		panic(fmt.Sprintf("unhandled tariff segment %q", segment))
	}
	if installed <= 0 {
		return types.Simulation{}, types.Validationf("sized installed power is zero, check the consumption and the solar yield")
	}

	params, err := s.defaults.Merge(req.Economics)
	if err != nil {
		return types.Simulation{}, err
	}
	records := sim.Records()
	sim.Economics, err = economics.Analyze(ctx, economics.Input{
		MonthlyBilledKWH:      records.Billed(),
		MonthlyRawKWH:         records.Raw(),
		InstalledPowerKWP:     installed,
		AnnualPVProductionKWH: production,
		Tariff:                tariff,
		Params:                params,
	})
	if err != nil {
		return types.Simulation{}, err
	}

	if s.db != nil {
		if err := s.db.InsertSimulation(ctx, sim); err != nil {
			return types.Simulation{}, fmt.Errorf("failed to store simulation: %w", err)
		}
	}

	log.Ctx(ctx).InfoContext(
		ctx,
		"simulation complete",
		slog.String("segment", string(segment)),
		slog.Float64("installedPowerKWP", installed),
		slog.Float64("npv", sim.Economics.Summary.NPV),
		slog.Float64("simplePaybackYears", sim.Economics.Summary.SimplePaybackYears),
	)
	return sim, nil
}

func (s *Simulator) measuredConsumption(ctx context.Context, req types.SimulationRequest, tariff types.Tariff) (float64, error) {
	if req.MeasuredConsumptionKWH != nil {
		return *req.MeasuredConsumptionKWH, nil
	}
	kwh, err := consumption.ConsumptionFromBill(*req.MeasuredBillAmount, tariff)
	if err != nil {
		return 0, err
	}
	log.Ctx(ctx).DebugContext(
		ctx,
		"derived consumption from bill",
		slog.Float64("billAmount", *req.MeasuredBillAmount),
		slog.Float64("consumptionKWH", kwh),
	)
	return kwh, nil
}

// solarYield uses the yield carried by the request or fetches it, retrying
// up to YieldAttempts times.
func (s *Simulator) solarYield(ctx context.Context, req types.SimulationRequest) (types.SolarYieldProfile, error) {
	if req.Yield != nil {
		return req.Yield.Profile(req.Latitude, req.Longitude)
	}
	if s.yield == nil {
		return types.SolarYieldProfile{}, types.Configurationf("no yield provider configured")
	}

	var lastErr error
	for attempt := 1; attempt <= s.opts.YieldAttempts; attempt++ {
		profile, err := s.yield.GetYield(ctx, req.Latitude, req.Longitude)
		if err == nil {
			return profile, nil
		}
		lastErr = err
		log.Ctx(ctx).WarnContext(
			ctx,
			"failed to fetch solar yield",
			slog.Int("attempt", attempt),
			slog.Any("error", err),
		)
		if attempt == s.opts.YieldAttempts {
			break
		}
		select {
		case <-ctx.Done():
			return types.SolarYieldProfile{}, fmt.Errorf("failed to fetch solar yield: %w", ctx.Err())
		case <-time.After(s.opts.YieldRetryDelay):
		}
	}
	return types.SolarYieldProfile{}, fmt.Errorf("failed to fetch solar yield after %d attempts: %w", s.opts.YieldAttempts, lastErr)
}
