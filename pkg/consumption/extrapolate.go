// Package consumption reconstructs an annual consumption curve from a single
// measured month.
package consumption

import (
	"context"
	"log/slog"
	"math"

	"github.com/raterudder/solarcheck/pkg/common"
	"github.com/raterudder/solarcheck/pkg/log"
	"github.com/raterudder/solarcheck/pkg/tables"
	"github.com/raterudder/solarcheck/pkg/types"
)

// Input is one measured month and the identifiers selecting its coefficients.
type Input struct {
	MeasuredConsumptionKWH float64
	// ReferenceMonth is the month of the measurement, 1 is January.
	ReferenceMonth   int
	BuildingCategory types.BuildingCategory
	ClimateZone      types.ClimateZone
	// OperatingHours adds the medium-voltage operating hours multipliers
	// when set.
	OperatingHours types.OperatingHours
}

// Extrapolate scales the measured month by the ratio of each month's
// effective coefficient to the reference month's. It has no side effects
// other than logging, so identical inputs give identical profiles.
func Extrapolate(ctx context.Context, in Input) (types.ConsumptionProfile, error) {
	if !types.ValidMonth(in.ReferenceMonth) {
		return types.ConsumptionProfile{}, types.Validationf("referenceMonth must be within [1, 12], got %d", in.ReferenceMonth)
	}
	if err := types.CheckNonNegative("measuredConsumptionKWH", in.MeasuredConsumptionKWH); err != nil {
		return types.ConsumptionProfile{}, err
	}

	buildingCoeffs, err := tables.BuildingCoefficients(in.BuildingCategory)
	if err != nil {
		return types.ConsumptionProfile{}, err
	}
	climateCoeffs, err := tables.ClimateCoefficients(in.ClimateZone)
	if err != nil {
		return types.ConsumptionProfile{}, err
	}
	hoursCoeffs, err := tables.OperatingHoursCoefficients(in.OperatingHours)
	if err != nil {
		return types.ConsumptionProfile{}, err
	}

	return extrapolate(ctx, in, buildingCoeffs, climateCoeffs, hoursCoeffs)
}

func extrapolate(ctx context.Context, in Input, buildingCoeffs, climateCoeffs, hoursCoeffs types.Monthly) (types.ConsumptionProfile, error) {
	var effective types.Monthly
	for m := range effective {
		effective[m] = buildingCoeffs[m] * climateCoeffs[m] * hoursCoeffs[m]
	}

	energyBase := in.MeasuredConsumptionKWH
	if refCoeff := effective[in.ReferenceMonth-1]; refCoeff != 0 {
		energyBase = in.MeasuredConsumptionKWH / refCoeff
	} else {
		log.Ctx(ctx).WarnContext(
			ctx,
			"reference month has a zero effective coefficient, using measured consumption as base",
			slog.Int("referenceMonth", in.ReferenceMonth),
			slog.String("category", string(in.BuildingCategory)),
			slog.String("zone", string(in.ClimateZone)),
		)
	}

	profile := types.ConsumptionProfile{
		MeasuredConsumptionKWH: in.MeasuredConsumptionKWH,
		ReferenceMonth:         in.ReferenceMonth,
		BuildingCategory:       in.BuildingCategory,
		ClimateZone:            in.ClimateZone,
		OperatingHours:         in.OperatingHours,
		EnergyBaseKWH:          energyBase,
	}
	for m := range profile.Months {
		scaled := energyBase * effective[m]
		if math.IsInf(scaled, 0) || math.IsNaN(scaled) {
			return types.ConsumptionProfile{}, types.Validationf("measuredConsumptionKWH %v overflows the estimate for month %d", in.MeasuredConsumptionKWH, m+1)
		}
		estimated := common.Round2(scaled)
		profile.Months[m] = types.MonthlyConsumption{
			Month:                     m + 1,
			RawConsumptionKWH:         estimated,
			ClimaticCoefficient:       climateCoeffs[m],
			BuildingCoefficient:       buildingCoeffs[m],
			OperatingHoursCoefficient: hoursCoeffs[m],
			EffectiveCoefficient:      effective[m],
		}
		profile.AnnualConsumptionKWH += estimated
	}
	// summing rounded values can leave float noise in the last digits
	if math.IsInf(profile.AnnualConsumptionKWH, 0) {
		return types.ConsumptionProfile{}, types.Validationf("measuredConsumptionKWH %v overflows the annual consumption", in.MeasuredConsumptionKWH)
	}
	profile.AnnualConsumptionKWH = common.Round2(profile.AnnualConsumptionKWH)

	log.Ctx(ctx).DebugContext(
		ctx,
		"extrapolated consumption profile",
		slog.Float64("energyBaseKWH", energyBase),
		slog.Float64("annualKWH", profile.AnnualConsumptionKWH),
	)
	return profile, nil
}

// ConsumptionFromBill recovers the monthly consumption from a bill amount by
// inverting whole-amount bracket billing. The first bracket whose implied
// consumption fits under its upper bound wins. Amounts falling between two
// brackets' cost ranges are clamped to the floor of the bracket that fits.
func ConsumptionFromBill(amount float64, tariff types.Tariff) (float64, error) {
	if err := types.CheckNonNegative("measuredBillAmount", amount); err != nil {
		return 0, err
	}
	if len(tariff.Brackets) == 0 {
		return 0, types.Configurationf("tariff for segment %q has no brackets", tariff.Segment)
	}
	var floor float64
	for _, b := range tariff.Brackets {
		if b.Rate <= 0 || math.IsNaN(b.Rate) {
			return 0, types.Configurationf("tariff for segment %q has a non-positive rate", tariff.Segment)
		}
		kwh := amount / b.Rate
		if b.UpToKWH == 0 || kwh <= b.UpToKWH {
			return math.Max(kwh, floor), nil
		}
		floor = b.UpToKWH
	}
	// brackets without an open-ended last entry: bill beyond the last bound
	last := tariff.Brackets[len(tariff.Brackets)-1]
	return amount / last.Rate, nil
}
