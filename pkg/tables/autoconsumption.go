package tables

import "github.com/raterudder/solarcheck/pkg/types"

// CoveragePair is an empirical sizing point: producing CoverageRate of the
// annual consumption results in SelfConsumptionRatio of the production being
// used on site.
type CoveragePair struct {
	CoverageRate         float64 `json:"coverageRate"`
	SelfConsumptionRatio float64 `json:"selfConsumptionRatio"`
}

// SurplusFraction is the share of production exported to the grid.
func (p CoveragePair) SurplusFraction() float64 {
	return 1 - p.SelfConsumptionRatio
}

// AutoconsumptionPairs returns the ordered sizing points for a profile and
// building category.
func AutoconsumptionPairs(hours types.OperatingHours, category types.BuildingCategory) ([]CoveragePair, error) {
	byCategory, ok := autoconsumption[hours]
	if !ok {
		return nil, types.Configurationf("no autoconsumption matrix for operating hours %q", hours)
	}
	pairs, ok := byCategory[category]
	if !ok {
		return nil, types.Configurationf("no autoconsumption pairs for operating hours %q and category %q", hours, category)
	}
	return append([]CoveragePair(nil), pairs...), nil
}

var autoconsumption = map[types.OperatingHours]map[types.BuildingCategory][]CoveragePair{
	types.OperatingHoursDay: {
		types.BuildingCategoryOffice:     {{0.20, 0.96}, {0.30, 0.90}, {0.40, 0.82}, {0.50, 0.73}, {0.60, 0.64}},
		types.BuildingCategoryRetail:     {{0.20, 0.97}, {0.30, 0.92}, {0.40, 0.85}, {0.50, 0.76}, {0.60, 0.67}},
		types.BuildingCategoryHotel:      {{0.15, 0.90}, {0.25, 0.82}, {0.35, 0.72}, {0.45, 0.62}, {0.55, 0.53}},
		types.BuildingCategoryRestaurant: {{0.15, 0.93}, {0.25, 0.86}, {0.35, 0.77}, {0.45, 0.68}, {0.55, 0.59}},
		types.BuildingCategoryWarehouse:  {{0.20, 0.95}, {0.30, 0.89}, {0.40, 0.80}, {0.50, 0.71}, {0.60, 0.62}},
		types.BuildingCategoryIndustrial: {{0.20, 0.98}, {0.30, 0.94}, {0.40, 0.88}, {0.50, 0.80}, {0.60, 0.71}},
	},
	types.OperatingHoursDayEvening: {
		types.BuildingCategoryOffice:     {{0.15, 0.95}, {0.25, 0.88}, {0.35, 0.79}, {0.45, 0.69}, {0.55, 0.60}},
		types.BuildingCategoryRetail:     {{0.15, 0.96}, {0.25, 0.90}, {0.35, 0.82}, {0.45, 0.72}, {0.55, 0.63}},
		types.BuildingCategoryHotel:      {{0.15, 0.88}, {0.25, 0.79}, {0.35, 0.69}, {0.45, 0.59}},
		types.BuildingCategoryRestaurant: {{0.15, 0.92}, {0.25, 0.84}, {0.35, 0.74}, {0.45, 0.64}, {0.55, 0.55}},
		types.BuildingCategoryWarehouse:  {{0.15, 0.94}, {0.25, 0.87}, {0.35, 0.77}, {0.45, 0.67}, {0.55, 0.58}},
		types.BuildingCategoryIndustrial: {{0.15, 0.97}, {0.25, 0.92}, {0.35, 0.84}, {0.45, 0.75}, {0.55, 0.66}},
	},
	types.OperatingHoursContinuous: {
		types.BuildingCategoryOffice:     {{0.10, 0.97}, {0.20, 0.90}, {0.30, 0.80}, {0.40, 0.68}, {0.50, 0.57}},
		types.BuildingCategoryRetail:     {{0.10, 0.97}, {0.20, 0.91}, {0.30, 0.81}, {0.40, 0.70}, {0.50, 0.59}},
		types.BuildingCategoryHotel:      {{0.10, 0.95}, {0.20, 0.87}, {0.30, 0.76}, {0.40, 0.64}},
		types.BuildingCategoryRestaurant: {{0.10, 0.96}, {0.20, 0.88}, {0.30, 0.78}, {0.40, 0.66}, {0.50, 0.55}},
		types.BuildingCategoryWarehouse:  {{0.10, 0.96}, {0.20, 0.89}, {0.30, 0.79}, {0.40, 0.67}, {0.50, 0.56}},
		types.BuildingCategoryIndustrial: {{0.10, 0.99}, {0.20, 0.95}, {0.30, 0.88}, {0.40, 0.79}, {0.50, 0.69}},
	},
}
