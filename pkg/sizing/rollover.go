package sizing

import "github.com/raterudder/solarcheck/pkg/types"

// Rollover runs the net-metering credit fold over one year. Months are
// processed strictly in order and each record depends only on the previous
// record's credit, starting from zero credit in January.
func Rollover(raw, production types.Monthly) types.PVRecords {
	var records types.PVRecords
	var prev types.MonthlyPVRecord
	for m := range records {
		records[m] = nextRecord(prev, m+1, raw[m], production[m])
		prev = records[m]
	}
	return records
}

// nextRecord computes a month from the previous month's banked credit. A
// negative balance is banked as credit, a positive one is billed.
func nextRecord(prev types.MonthlyPVRecord, month int, raw, production float64) types.MonthlyPVRecord {
	rec := types.MonthlyPVRecord{
		Month:             month,
		RawConsumptionKWH: raw,
		PVProductionKWH:   production,
	}
	balance := (raw - production) + prev.CreditKWH
	switch {
	case balance < 0:
		rec.CreditKWH = balance
	case balance > 0:
		rec.BilledConsumptionKWH = balance
	}
	return rec
}
