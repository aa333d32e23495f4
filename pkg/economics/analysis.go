// Package economics projects the savings of a PV system over its lifetime
// and derives the investment metrics.
package economics

import (
	"context"
	"log/slog"
	"math"

	"github.com/raterudder/solarcheck/pkg/common"
	"github.com/raterudder/solarcheck/pkg/log"
	"github.com/raterudder/solarcheck/pkg/types"
)

// Input is everything Analyze needs from the sizing step.
type Input struct {
	MonthlyBilledKWH      types.Monthly
	MonthlyRawKWH         types.Monthly
	InstalledPowerKWP     float64
	AnnualPVProductionKWH float64
	Tariff                types.Tariff
	Params                types.EconomicParameters
}

func (in Input) validate() error {
	if err := in.MonthlyBilledKWH.ValidateNonNegative("monthlyBilledKWH"); err != nil {
		return err
	}
	if err := in.MonthlyRawKWH.ValidateNonNegative("monthlyRawKWH"); err != nil {
		return err
	}
	if err := types.CheckNonNegative("installedPowerKWP", in.InstalledPowerKWP); err != nil {
		return err
	}
	if err := types.CheckNonNegative("annualPVProductionKWH", in.AnnualPVProductionKWH); err != nil {
		return err
	}
	if len(in.Tariff.Brackets) == 0 {
		return types.Configurationf("tariff for segment %q has no brackets", in.Tariff.Segment)
	}
	return in.Params.Validate()
}

// capex is the override when set, otherwise the installed power priced per
// kWp.
func (in Input) capex() float64 {
	if in.Params.CAPEXOverride != nil {
		return *in.Params.CAPEXOverride
	}
	return in.InstalledPowerKWP * in.Params.CAPEXPerKWP
}

// baseYear holds the undegraded, uninflated year-1 values the projection
// scales.
type baseYear struct {
	savings       float64
	opex          float64
	rawKWH        float64
	billedKWH     float64
	productionKWH float64
	billWithoutPV float64
}

// Analyze compares the bills with and without the PV system and projects the
// cash flows over the lifetime.
func Analyze(ctx context.Context, in Input) (types.EconomicAnalysis, error) {
	if err := in.validate(); err != nil {
		return types.EconomicAnalysis{}, err
	}
	capex := in.capex()
	if capex <= 0 || math.IsInf(capex, 0) {
		return types.EconomicAnalysis{}, types.Validationf("capex must be positive, got %v", capex)
	}

	res := types.EconomicAnalysis{Parameters: in.Params}
	base := baseYear{
		opex:          capex * in.Params.OPEXRate,
		rawKWH:        in.MonthlyRawKWH.Sum(),
		billedKWH:     in.MonthlyBilledKWH.Sum(),
		productionKWH: in.AnnualPVProductionKWH,
	}
	for m := range res.Monthly {
		res.Monthly[m] = monthlyRow(in.Tariff, m+1, in.MonthlyRawKWH[m], in.MonthlyBilledKWH[m])
		base.savings += res.Monthly[m].Savings
		base.billWithoutPV += res.Monthly[m].BillWithoutPV
	}
	if in.Params.Year1SavingsOverride != nil {
		base.savings = *in.Params.Year1SavingsOverride
	}

	res.Annual = make([]types.AnnualProjectionRow, in.Params.LifetimeYears)
	prev := types.AnnualProjectionRow{
		CumulativeCashFlow:           -capex,
		CumulativeCashFlowDiscounted: -capex,
	}
	for i := range res.Annual {
		res.Annual[i] = nextYear(prev, i+1, base, in.Params)
		if !rowFinite(res.Annual[i]) {
			return types.EconomicAnalysis{}, types.Validationf("projection overflows in year %d, check the consumption and capex magnitudes", i+1)
		}
		prev = res.Annual[i]
	}

	res.Summary = summarize(ctx, capex, base, res.Annual, in.Params)
	if !finite(res.Summary.TotalSavingsOverLifetime) || !finite(res.Summary.TotalCO2AvoidedKg) || !finite(res.Summary.ROI) {
		return types.EconomicAnalysis{}, types.Validationf("lifetime totals overflow, check the consumption and capex magnitudes")
	}
	return res, nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func rowFinite(row types.AnnualProjectionRow) bool {
	for _, v := range []float64{
		row.AnnualBilledConsumption,
		row.AnnualProduction,
		row.BillWithoutPV,
		row.BillWithPV,
		row.AnnualSavings,
		row.OPEX,
		row.CumulativeCashFlow,
		row.CumulativeCashFlowDiscounted,
	} {
		if !finite(v) {
			return false
		}
	}
	return true
}

func monthlyRow(tariff types.Tariff, month int, raw, billed float64) types.MonthlyEconomicRow {
	row := types.MonthlyEconomicRow{
		Month:                month,
		RawConsumptionKWH:    raw,
		BilledConsumptionKWH: billed,
		RateWithoutPV:        tariff.Rate(raw),
		RateWithPV:           tariff.Rate(billed),
	}
	row.BillWithoutPV = common.Round2(raw * row.RateWithoutPV)
	row.BillWithPV = common.Round2(billed * row.RateWithPV)
	row.Savings = common.Round2(row.BillWithoutPV - row.BillWithPV)
	return row
}

// nextYear derives year n from the previous row's cumulative values.
func nextYear(prev types.AnnualProjectionRow, n int, base baseYear, p types.EconomicParameters) types.AnnualProjectionRow {
	exp := float64(n - 1)
	degradation := math.Pow(1-p.DegradationRate, exp)
	tariffInflation := math.Pow(1+p.TariffInflationRate, exp)
	opexInflation := math.Pow(1+p.OPEXInflationRate, exp)
	discount := 1 / math.Pow(1+p.DiscountRate, float64(n))

	row := types.AnnualProjectionRow{
		Year:                    n,
		AnnualRawConsumption:    base.rawKWH,
		AnnualBilledConsumption: base.rawKWH - (base.rawKWH-base.billedKWH)*degradation,
		AnnualProduction:        base.productionKWH * degradation,
		BillWithoutPV:           base.billWithoutPV * tariffInflation,
		AnnualSavings:           base.savings * degradation * tariffInflation,
		OPEX:                    base.opex * opexInflation,
	}
	row.BillWithPV = row.BillWithoutPV - row.AnnualSavings
	row.NetGain = row.AnnualSavings - row.OPEX
	row.CumulativeCashFlow = prev.CumulativeCashFlow + row.NetGain
	row.CumulativeCashFlowDiscounted = prev.CumulativeCashFlowDiscounted + row.NetGain*discount
	row.CumulativeNetGain = prev.CumulativeNetGain + row.NetGain
	row.CumulativeNetGainDiscounted = prev.CumulativeNetGainDiscounted + row.NetGain*discount
	return row
}

func summarize(ctx context.Context, capex float64, base baseYear, annual []types.AnnualProjectionRow, p types.EconomicParameters) types.FinancialSummary {
	last := annual[len(annual)-1]
	s := types.FinancialSummary{
		CAPEX:     capex,
		Year1OPEX: base.opex,
		NPV:       last.CumulativeCashFlowDiscounted,
		ROI:       (last.CumulativeNetGain - capex) / capex,
	}

	flows := make([]float64, 0, len(annual)+1)
	flows = append(flows, -capex)
	gains := make([]float64, 0, len(annual))
	discounted := make([]float64, 0, len(annual))
	var production float64
	for _, row := range annual {
		flows = append(flows, row.NetGain)
		gains = append(gains, row.NetGain)
		discounted = append(discounted, row.NetGain/math.Pow(1+p.DiscountRate, float64(row.Year)))
		s.TotalSavingsOverLifetime += row.AnnualSavings
		production += row.AnnualProduction
	}
	s.TotalCO2AvoidedKg = production * p.GridEmissionFactorKgPerKWH
	s.SimplePaybackYears = payback(-capex, gains)
	s.DiscountedPaybackYears = payback(-capex, discounted)

	irr, err := IRR(flows)
	if err != nil {
		log.Ctx(ctx).WarnContext(
			ctx,
			"irr did not converge",
			slog.Float64("capex", capex),
			slog.Float64("npv", s.NPV),
			slog.Any("error", err),
		)
	} else {
		s.IRR = &irr
	}
	return s
}
