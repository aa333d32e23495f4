// Package sizing sizes the PV system for either tariff segment and simulates
// the resulting monthly billed consumption.
package sizing

import (
	"context"
	"log/slog"

	"github.com/raterudder/solarcheck/pkg/log"
	"github.com/raterudder/solarcheck/pkg/types"
)

// NetMeteringInput sizes a low-voltage system whose surplus is banked as
// credit against later months.
type NetMeteringInput struct {
	AnnualConsumptionKWH     float64
	AnnualYieldKWHPerKWP     float64
	MonthlyYieldKWHPerKWP    types.Monthly
	MonthlyRawConsumptionKWH types.Monthly
	// InstalledPowerOverrideKWP replaces the theoretical power when set.
	InstalledPowerOverrideKWP *float64
}

func (in NetMeteringInput) validate() error {
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
	if in.InstalledPowerOverrideKWP != nil {
		if err := types.CheckNonNegative("installedPowerOverrideKWP", *in.InstalledPowerOverrideKWP); err != nil {
			return err
		}
	}
	return nil
}

// SizeNetMetering sizes the system to produce the annual consumption, unless
// the installed power is overridden, and runs the credit rollover.
func SizeNetMetering(ctx context.Context, in NetMeteringInput) (types.NetMeteringResult, error) {
	if err := in.validate(); err != nil {
		return types.NetMeteringResult{}, err
	}

	var theoretical float64
	if in.AnnualYieldKWHPerKWP > 0 {
		theoretical = in.AnnualConsumptionKWH / in.AnnualYieldKWHPerKWP
	} else {
		log.Ctx(ctx).WarnContext(
			ctx,
			"annual specific yield is zero, treating it as missing",
			slog.Float64("annualConsumptionKWH", in.AnnualConsumptionKWH),
		)
	}

	installed := theoretical
	if in.InstalledPowerOverrideKWP != nil {
		installed = *in.InstalledPowerOverrideKWP
	}

	var production types.Monthly
	for m := range production {
		production[m] = installed * in.MonthlyYieldKWHPerKWP[m]
	}
	annualProduction := production.Sum()

	records := Rollover(in.MonthlyRawConsumptionKWH, production)

	var coverage float64
	if in.AnnualConsumptionKWH > 0 {
		coverage = annualProduction / in.AnnualConsumptionKWH * 100
	}

	log.Ctx(ctx).DebugContext(
		ctx,
		"sized net-metering system",
		slog.Float64("theoreticalPowerKWP", theoretical),
		slog.Float64("installedPowerKWP", installed),
		slog.Float64("annualProductionKWH", annualProduction),
		slog.Float64("coverageRatePercent", coverage),
	)

	return types.NetMeteringResult{
		PVSystemSizing: types.PVSystemSizing{
			TheoreticalPowerKWP: theoretical,
			InstalledPowerKWP:   installed,
			AnnualProducibleKWH: annualProduction,
		},
		Records:             records,
		CoverageRatePercent: coverage,
		FinalCreditKWH:      records[len(records)-1].CreditKWH,
	}, nil
}
