package types

import (
	"math"
	"time"
)

// YieldInput lets a caller provide an already-resolved specific yield instead
// of having it fetched for the coordinates.
type YieldInput struct {
	Source           string    `json:"source,omitempty" yaml:"source,omitempty"`
	MonthlyKWHPerKWP []float64 `json:"monthlyKWHPerKWP" yaml:"monthlyKWHPerKWP"`
	AnnualKWHPerKWP  float64   `json:"annualKWHPerKWP" yaml:"annualKWHPerKWP"`
}

// Profile converts the input into a SolarYieldProfile for the given location.
func (y YieldInput) Profile(lat, lon float64) (SolarYieldProfile, error) {
	monthly, err := MonthlyFromSlice("monthlyKWHPerKWP", y.MonthlyKWHPerKWP)
	if err != nil {
		return SolarYieldProfile{}, err
	}
	if err := monthly.ValidateNonNegative("monthlyKWHPerKWP"); err != nil {
		return SolarYieldProfile{}, err
	}
	if err := CheckNonNegative("annualKWHPerKWP", y.AnnualKWHPerKWP); err != nil {
		return SolarYieldProfile{}, err
	}
	source := y.Source
	if source == "" {
		source = "request"
	}
	return SolarYieldProfile{
		Latitude:         lat,
		Longitude:        lon,
		Source:           source,
		MonthlyKWHPerKWP: monthly,
		AnnualKWHPerKWP:  y.AnnualKWHPerKWP,
	}, nil
}

// EconomicOverrides replaces individual default economic parameters. Nil
// fields keep the default.
type EconomicOverrides struct {
	TariffInflationRate        *float64 `json:"tariffInflationRate,omitempty" yaml:"tariffInflationRate,omitempty"`
	OPEXInflationRate          *float64 `json:"opexInflationRate,omitempty" yaml:"opexInflationRate,omitempty"`
	DiscountRate               *float64 `json:"discountRate,omitempty" yaml:"discountRate,omitempty"`
	DegradationRate            *float64 `json:"degradationRate,omitempty" yaml:"degradationRate,omitempty"`
	CAPEXPerKWP                *float64 `json:"capexPerKWP,omitempty" yaml:"capexPerKWP,omitempty"`
	OPEXRate                   *float64 `json:"opexRate,omitempty" yaml:"opexRate,omitempty"`
	LifetimeYears              *int     `json:"lifetimeYears,omitempty" yaml:"lifetimeYears,omitempty"`
	GridEmissionFactorKgPerKWH *float64 `json:"gridEmissionFactorKgPerKWH,omitempty" yaml:"gridEmissionFactorKgPerKWH,omitempty"`
	CAPEXOverride              *float64 `json:"capexOverride,omitempty" yaml:"capexOverride,omitempty"`
	Year1SavingsOverride       *float64 `json:"year1SavingsOverride,omitempty" yaml:"year1SavingsOverride,omitempty"`
}

// SimulationRequest is everything needed to run one feasibility simulation.
// Exactly one of MeasuredConsumptionKWH and MeasuredBillAmount must be set.
type SimulationRequest struct {
	Label     string  `json:"label,omitempty" yaml:"label,omitempty"`
	Latitude  float64 `json:"latitude" yaml:"latitude"`
	Longitude float64 `json:"longitude" yaml:"longitude"`

	BuildingCategory BuildingCategory `json:"buildingCategory" yaml:"buildingCategory"`
	ClimateZone      ClimateZone      `json:"climateZone" yaml:"climateZone"`
	// OperatingHours selects the medium-voltage autoconsumption path when set.
	OperatingHours OperatingHours `json:"operatingHours,omitempty" yaml:"operatingHours,omitempty"`

	MeasuredConsumptionKWH *float64 `json:"measuredConsumptionKWH,omitempty" yaml:"measuredConsumptionKWH,omitempty"`
	MeasuredBillAmount     *float64 `json:"measuredBillAmount,omitempty" yaml:"measuredBillAmount,omitempty"`
	ReferenceMonth         int      `json:"referenceMonth" yaml:"referenceMonth"`

	InstalledPowerOverrideKWP *float64           `json:"installedPowerOverrideKWP,omitempty" yaml:"installedPowerOverrideKWP,omitempty"`
	Economics                 *EconomicOverrides `json:"economics,omitempty" yaml:"economics,omitempty"`
	Yield                     *YieldInput        `json:"yield,omitempty" yaml:"yield,omitempty"`
}

// Validate checks the request fields that do not need any lookup table.
func (r SimulationRequest) Validate() error {
	if math.IsNaN(r.Latitude) || r.Latitude < -90 || r.Latitude > 90 {
		return Validationf("latitude must be within [-90, 90], got %v", r.Latitude)
	}
	if math.IsNaN(r.Longitude) || r.Longitude < -180 || r.Longitude > 180 {
		return Validationf("longitude must be within [-180, 180], got %v", r.Longitude)
	}
	switch {
	case r.MeasuredConsumptionKWH == nil && r.MeasuredBillAmount == nil:
		return Validationf("one of measuredConsumptionKWH or measuredBillAmount is required")
	case r.MeasuredConsumptionKWH != nil && r.MeasuredBillAmount != nil:
		return Validationf("only one of measuredConsumptionKWH or measuredBillAmount may be set")
	case r.MeasuredConsumptionKWH != nil:
		if err := CheckNonNegative("measuredConsumptionKWH", *r.MeasuredConsumptionKWH); err != nil {
			return err
		}
	default:
		if err := CheckNonNegative("measuredBillAmount", *r.MeasuredBillAmount); err != nil {
			return err
		}
	}
	if !ValidMonth(r.ReferenceMonth) {
		return Validationf("referenceMonth must be within [1, 12], got %d", r.ReferenceMonth)
	}
	if r.InstalledPowerOverrideKWP != nil {
		if r.OperatingHours != OperatingHoursNone {
			return Validationf("installedPowerOverrideKWP is only supported on the %s segment, autoconsumption sizing picks its own power", TariffSegmentBT)
		}
		if err := CheckNonNegative("installedPowerOverrideKWP", *r.InstalledPowerOverrideKWP); err != nil {
			return err
		}
	}
	return nil
}

// Simulation is the frozen result of one request. It is persisted as is and
// never updated.
type Simulation struct {
	ID          string             `json:"id"`
	CreatedAt   time.Time          `json:"createdAt"`
	Request     SimulationRequest  `json:"request"`
	Segment     TariffSegment      `json:"segment"`
	Consumption ConsumptionProfile `json:"consumption"`
	Yield       SolarYieldProfile  `json:"yield"`

	// Exactly one of NetMetering and Autoconsumption is set, depending on
	// Segment.
	NetMetering     *NetMeteringResult     `json:"netMetering,omitempty"`
	Autoconsumption *AutoconsumptionResult `json:"autoconsumption,omitempty"`

	Economics EconomicAnalysis `json:"economics"`
}

// Records returns the monthly PV records of whichever sizing path ran.
func (s Simulation) Records() PVRecords {
	if s.NetMetering != nil {
		return s.NetMetering.Records
	}
	if s.Autoconsumption != nil {
		return s.Autoconsumption.Records
	}
	return PVRecords{}
}
