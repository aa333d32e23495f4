package types

// TariffBracket applies Rate to a month whose consumption is at most UpToKWH.
// An UpToKWH of 0 marks the open-ended last bracket.
type TariffBracket struct {
	UpToKWH float64 `json:"upToKWH"`
	Rate    float64 `json:"rate"`
}

// Tariff is the energy price schedule of a segment. Brackets are ordered by
// UpToKWH.
type Tariff struct {
	Segment  TariffSegment   `json:"segment"`
	Brackets []TariffBracket `json:"brackets"`
}

// Rate returns the rate applied to a whole month of consumption. The bracket
// rate applies to the entire amount; it is not marginal billing.
func (t Tariff) Rate(kwh float64) float64 {
	for _, b := range t.Brackets {
		if b.UpToKWH == 0 || kwh <= b.UpToKWH {
			return b.Rate
		}
	}
	if len(t.Brackets) == 0 {
		panic("tariff has no brackets")
	}
	return t.Brackets[len(t.Brackets)-1].Rate
}

// MonthlyCost returns the cost of one month of consumption.
func (t Tariff) MonthlyCost(kwh float64) float64 {
	return kwh * t.Rate(kwh)
}

// FlatAnnualCost returns the cost of a year in which every month consumes kwh.
func (t Tariff) FlatAnnualCost(kwh float64) float64 {
	return t.MonthlyCost(kwh) * 12
}
