package types

// MonthlyConsumption is one month of a reconstructed consumption profile.
type MonthlyConsumption struct {
	Month                     int     `json:"month"`
	RawConsumptionKWH         float64 `json:"rawConsumptionKWH"`
	ClimaticCoefficient       float64 `json:"climaticCoefficient"`
	BuildingCoefficient       float64 `json:"buildingCoefficient"`
	OperatingHoursCoefficient float64 `json:"operatingHoursCoefficient"`
	EffectiveCoefficient      float64 `json:"effectiveCoefficient"`
}

// ConsumptionProfile is the 12 month consumption curve estimated from a
// single measured month. AnnualConsumptionKWH is always the sum of Months.
type ConsumptionProfile struct {
	MeasuredConsumptionKWH float64                `json:"measuredConsumptionKWH"`
	ReferenceMonth         int                    `json:"referenceMonth"`
	BuildingCategory       BuildingCategory       `json:"buildingCategory"`
	ClimateZone            ClimateZone            `json:"climateZone"`
	OperatingHours         OperatingHours         `json:"operatingHours,omitempty"`
	EnergyBaseKWH          float64                `json:"energyBaseKWH"`
	Months                 [12]MonthlyConsumption `json:"months"`
	AnnualConsumptionKWH   float64                `json:"annualConsumptionKWH"`
}

// RawConsumption returns the estimated consumption of each month.
func (p ConsumptionProfile) RawConsumption() Monthly {
	var m Monthly
	for i, mc := range p.Months {
		m[i] = mc.RawConsumptionKWH
	}
	return m
}

// SolarYieldProfile is the specific yield of a location, in kWh per installed
// kWp. It comes from an external source and is not modified afterwards.
type SolarYieldProfile struct {
	Latitude         float64 `json:"latitude"`
	Longitude        float64 `json:"longitude"`
	Source           string  `json:"source"`
	MonthlyKWHPerKWP Monthly `json:"monthlyKWHPerKWP"`
	AnnualKWHPerKWP  float64 `json:"annualKWHPerKWP"`
}
