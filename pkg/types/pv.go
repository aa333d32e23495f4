package types

// PVSystemSizing is the nameplate sizing of the system.
type PVSystemSizing struct {
	TheoreticalPowerKWP float64 `json:"theoreticalPowerKWP"`
	InstalledPowerKWP   float64 `json:"installedPowerKWP"`
	AnnualProducibleKWH float64 `json:"annualProducibleKWH"`
}

// MonthlyPVRecord is one month of the net-metering simulation. At most one of
// BilledConsumptionKWH (>= 0) and CreditKWH (<= 0) is nonzero.
type MonthlyPVRecord struct {
	Month                int     `json:"month"`
	RawConsumptionKWH    float64 `json:"rawConsumptionKWH"`
	PVProductionKWH      float64 `json:"pvProductionKWH"`
	BilledConsumptionKWH float64 `json:"billedConsumptionKWH"`
	CreditKWH            float64 `json:"creditKWH"`
}

// PVRecords is a full year of monthly records.
type PVRecords [12]MonthlyPVRecord

// Billed returns the billed consumption of each month.
func (r PVRecords) Billed() Monthly {
	var m Monthly
	for i, rec := range r {
		m[i] = rec.BilledConsumptionKWH
	}
	return m
}

// Raw returns the raw consumption of each month.
func (r PVRecords) Raw() Monthly {
	var m Monthly
	for i, rec := range r {
		m[i] = rec.RawConsumptionKWH
	}
	return m
}

// NetMeteringResult is the output of the low-voltage sizing path.
type NetMeteringResult struct {
	PVSystemSizing
	Records             PVRecords `json:"records"`
	CoverageRatePercent float64   `json:"coverageRatePercent"`
	// FinalCreditKWH is December's banked credit. It is reported but not
	// carried into the following year.
	FinalCreditKWH float64 `json:"finalCreditKWH"`
}

// AutoconsumptionResult is the output of the medium-voltage sizing path.
type AutoconsumptionResult struct {
	OperatingHours       OperatingHours `json:"operatingHours"`
	TargetCoverageRate   float64        `json:"targetCoverageRate"`
	SelfConsumptionRatio float64        `json:"selfConsumptionRatio"`
	TheoreticalPowerKWP  float64        `json:"theoreticalPowerKWP"`
	AnnualProductionKWH  float64        `json:"annualProductionKWH"`
	SelfConsumedKWH      float64        `json:"selfConsumedKWH"`
	GridSurplusKWH       float64        `json:"gridSurplusKWH"`
	ActualCoverageRate   float64        `json:"actualCoverageRate"`
	SurplusFraction      float64        `json:"surplusFraction"`
	SurplusWithinLimit   bool           `json:"surplusWithinLimit"`
	SurplusCeiling       float64        `json:"surplusCeiling"`
	Records              PVRecords      `json:"records"`
}
