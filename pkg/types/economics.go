package types

import "math"

// PaybackNeverRecovered is reported as a payback period when the investment
// is not recovered within the lifetime.
const PaybackNeverRecovered = -1.0

// EconomicParameters drive the multi-year projection. Rates are fractions
// (0.07 is 7%).
type EconomicParameters struct {
	TariffInflationRate        float64 `json:"tariffInflationRate" yaml:"tariffInflationRate"`
	OPEXInflationRate          float64 `json:"opexInflationRate" yaml:"opexInflationRate"`
	DiscountRate               float64 `json:"discountRate" yaml:"discountRate"`
	DegradationRate            float64 `json:"degradationRate" yaml:"degradationRate"`
	CAPEXPerKWP                float64 `json:"capexPerKWP" yaml:"capexPerKWP"`
	OPEXRate                   float64 `json:"opexRate" yaml:"opexRate"`
	LifetimeYears              int     `json:"lifetimeYears" yaml:"lifetimeYears"`
	GridEmissionFactorKgPerKWH float64 `json:"gridEmissionFactorKgPerKWH" yaml:"gridEmissionFactorKgPerKWH"`

	// CAPEXOverride replaces InstalledPowerKWP * CAPEXPerKWP when set.
	CAPEXOverride *float64 `json:"capexOverride,omitempty" yaml:"capexOverride,omitempty"`
	// Year1SavingsOverride replaces the savings computed from the monthly
	// bills as the base of the projection.
	Year1SavingsOverride *float64 `json:"year1SavingsOverride,omitempty" yaml:"year1SavingsOverride,omitempty"`
}

// Validate checks that every parameter is finite and within range.
func (p EconomicParameters) Validate() error {
	for _, f := range []struct {
		name string
		v    float64
	}{
		{"tariffInflationRate", p.TariffInflationRate},
		{"opexInflationRate", p.OPEXInflationRate},
		{"discountRate", p.DiscountRate},
		{"degradationRate", p.DegradationRate},
		{"capexPerKWP", p.CAPEXPerKWP},
		{"opexRate", p.OPEXRate},
		{"gridEmissionFactorKgPerKWH", p.GridEmissionFactorKgPerKWH},
	} {
		if err := CheckNonNegative(f.name, f.v); err != nil {
			return err
		}
	}
	if p.DegradationRate >= 1 {
		return Validationf("degradationRate must be below 1, got %v", p.DegradationRate)
	}
	if p.LifetimeYears < 1 {
		return Validationf("lifetimeYears must be at least 1, got %d", p.LifetimeYears)
	}
	if p.CAPEXOverride != nil {
		if err := CheckNonNegative("capexOverride", *p.CAPEXOverride); err != nil {
			return err
		}
	}
	if p.Year1SavingsOverride != nil {
		if v := *p.Year1SavingsOverride; math.IsNaN(v) || math.IsInf(v, 0) {
			return Validationf("year1SavingsOverride must be finite, got %v", v)
		}
	}
	return nil
}

// MonthlyEconomicRow is one month of the bill comparison.
type MonthlyEconomicRow struct {
	Month                int     `json:"month"`
	RawConsumptionKWH    float64 `json:"rawConsumptionKWH"`
	BilledConsumptionKWH float64 `json:"billedConsumptionKWH"`
	RateWithoutPV        float64 `json:"rateWithoutPV"`
	RateWithPV           float64 `json:"rateWithPV"`
	BillWithoutPV        float64 `json:"billWithoutPV"`
	BillWithPV           float64 `json:"billWithPV"`
	Savings              float64 `json:"savings"`
}

// AnnualProjectionRow is one year of the projection. The cumulative fields
// are the previous row's values plus this year's contribution.
type AnnualProjectionRow struct {
	Year                         int     `json:"year"`
	AnnualRawConsumption         float64 `json:"annualRawConsumption"`
	AnnualBilledConsumption      float64 `json:"annualBilledConsumption"`
	AnnualProduction             float64 `json:"annualProduction"`
	BillWithoutPV                float64 `json:"billWithoutPV"`
	BillWithPV                   float64 `json:"billWithPV"`
	AnnualSavings                float64 `json:"annualSavings"`
	OPEX                         float64 `json:"opex"`
	NetGain                      float64 `json:"netGain"`
	CumulativeCashFlow           float64 `json:"cumulativeCashFlow"`
	CumulativeCashFlowDiscounted float64 `json:"cumulativeCashFlowDiscounted"`
	CumulativeNetGain            float64 `json:"cumulativeNetGain"`
	CumulativeNetGainDiscounted  float64 `json:"cumulativeNetGainDiscounted"`
}

// FinancialSummary holds the investment metrics over the lifetime.
type FinancialSummary struct {
	CAPEX     float64 `json:"capex"`
	Year1OPEX float64 `json:"year1OPEX"`
	NPV       float64 `json:"npv"`
	// IRR is nil when no rate zeroing the NPV could be bracketed.
	IRR                      *float64 `json:"irr"`
	SimplePaybackYears       float64  `json:"simplePaybackYears"`
	DiscountedPaybackYears   float64  `json:"discountedPaybackYears"`
	ROI                      float64  `json:"roi"`
	TotalSavingsOverLifetime float64  `json:"totalSavingsOverLifetime"`
	TotalCO2AvoidedKg        float64  `json:"totalCO2AvoidedKg"`
}

// EconomicAnalysis is the full economic output.
type EconomicAnalysis struct {
	Parameters EconomicParameters     `json:"parameters"`
	Monthly    [12]MonthlyEconomicRow `json:"monthly"`
	Annual     []AnnualProjectionRow  `json:"annual"`
	Summary    FinancialSummary       `json:"summary"`
}
