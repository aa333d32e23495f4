package sizing

import (
	"context"
	"log/slog"
	"math"

	"github.com/raterudder/solarcheck/pkg/log"
	"github.com/raterudder/solarcheck/pkg/tables"
	"github.com/raterudder/solarcheck/pkg/types"
)

// DefaultSurplusCeiling is the largest share of production allowed to be
// exported to the grid.
const DefaultSurplusCeiling = 0.30

// surplusTolerance absorbs float noise in 1 - selfConsumptionRatio.
const surplusTolerance = 1e-9

// AutoconsumptionInput sizes a medium-voltage system from the empirical
// coverage and self-consumption matrices.
type AutoconsumptionInput struct {
	OperatingHours           types.OperatingHours
	BuildingCategory         types.BuildingCategory
	AnnualConsumptionKWH     float64
	AnnualYieldKWHPerKWP     float64
	MonthlyYieldKWHPerKWP    types.Monthly
	MonthlyRawConsumptionKWH types.Monthly
	// SurplusCeiling defaults to DefaultSurplusCeiling when nil. Zero allows
	// no grid surplus at all.
	SurplusCeiling *float64
}

func (in AutoconsumptionInput) ceiling() float64 {
	if in.SurplusCeiling == nil {
		return DefaultSurplusCeiling
	}
	return *in.SurplusCeiling
}

func (in AutoconsumptionInput) validate() error {
	if err := types.CheckNonNegative("annualConsumptionKWH", in.AnnualConsumptionKWH); err != nil {
		return err
	}
	if err := types.CheckNonNegative("annualYieldKWHPerKWP", in.AnnualYieldKWHPerKWP); err != nil {
		return err
	}
	if err := in.MonthlyYieldKWHPerKWP.ValidateNonNegative("monthlyYieldKWHPerKWP"); err != nil {
		return err
	}
	if err := in.MonthlyRawConsumptionKWH.ValidateNonNegative("monthlyRawConsumptionKWH"); err != nil {
		return err
	}
	if err := types.CheckNonNegative("surplusCeiling", in.ceiling()); err != nil {
		return err
	}
	if in.ceiling() > 1 {
		return types.Validationf("surplusCeiling must be at most 1, got %v", in.ceiling())
	}
	return nil
}

// SelectPair scans pairs in table order and returns the one with the highest
// coverage rate whose surplus fraction stays within ceiling. Ties keep the
// earlier pair.
func SelectPair(pairs []tables.CoveragePair, ceiling float64) (tables.CoveragePair, error) {
	var best tables.CoveragePair
	var found bool
	for _, p := range pairs {
		if p.SurplusFraction() > ceiling+surplusTolerance {
			continue
		}
		if !found || p.CoverageRate > best.CoverageRate {
			best = p
			found = true
		}
	}
	if !found {
		return tables.CoveragePair{}, types.ErrNoViableSizing
	}
	return best, nil
}

// SizeAutoconsumption picks the largest coverage whose grid surplus stays
// within the ceiling and derives the system and its monthly billed
// consumption. There is no net metering on this segment so credit is always
// zero.
func SizeAutoconsumption(ctx context.Context, in AutoconsumptionInput) (types.AutoconsumptionResult, error) {
	if err := in.validate(); err != nil {
		return types.AutoconsumptionResult{}, err
	}
	ceiling := in.ceiling()

	pairs, err := tables.AutoconsumptionPairs(in.OperatingHours, in.BuildingCategory)
	if err != nil {
		return types.AutoconsumptionResult{}, err
	}
	pair, err := SelectPair(pairs, ceiling)
	if err != nil {
		log.Ctx(ctx).WarnContext(
			ctx,
			"no autoconsumption pair within surplus ceiling",
			slog.String("operatingHours", string(in.OperatingHours)),
			slog.String("category", string(in.BuildingCategory)),
			slog.Float64("surplusCeiling", ceiling),
		)
		return types.AutoconsumptionResult{}, err
	}

	var theoretical float64
	if in.AnnualYieldKWHPerKWP > 0 {
		theoretical = in.AnnualConsumptionKWH * pair.CoverageRate / in.AnnualYieldKWHPerKWP
	} else {
		log.Ctx(ctx).WarnContext(
			ctx,
			"annual specific yield is zero, treating it as missing",
			slog.Float64("annualConsumptionKWH", in.AnnualConsumptionKWH),
		)
	}
	annualProduction := theoretical * in.AnnualYieldKWHPerKWP
	selfConsumed := annualProduction * pair.SelfConsumptionRatio
	surplus := annualProduction - selfConsumed

	res := types.AutoconsumptionResult{
		OperatingHours:       in.OperatingHours,
		TargetCoverageRate:   pair.CoverageRate,
		SelfConsumptionRatio: pair.SelfConsumptionRatio,
		TheoreticalPowerKWP:  theoretical,
		AnnualProductionKWH:  annualProduction,
		SelfConsumedKWH:      selfConsumed,
		GridSurplusKWH:       surplus,
		SurplusCeiling:       ceiling,
	}
	if in.AnnualConsumptionKWH > 0 {
		res.ActualCoverageRate = annualProduction / in.AnnualConsumptionKWH
	}
	if annualProduction > 0 {
		res.SurplusFraction = surplus / annualProduction
	}
	res.SurplusWithinLimit = res.SurplusFraction <= ceiling+surplusTolerance

	for m := range res.Records {
		raw := in.MonthlyRawConsumptionKWH[m]
		production := theoretical * in.MonthlyYieldKWHPerKWP[m]
		used := math.Min(raw, production*pair.SelfConsumptionRatio)
		res.Records[m] = types.MonthlyPVRecord{
			Month:                m + 1,
			RawConsumptionKWH:    raw,
			PVProductionKWH:      production,
			BilledConsumptionKWH: raw - used,
		}
	}

	log.Ctx(ctx).DebugContext(
		ctx,
		"sized autoconsumption system",
		slog.Float64("coverageRate", pair.CoverageRate),
		slog.Float64("selfConsumptionRatio", pair.SelfConsumptionRatio),
		slog.Float64("theoreticalPowerKWP", theoretical),
		slog.Float64("surplusFraction", res.SurplusFraction),
	)
	return res, nil
}
