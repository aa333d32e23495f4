package tables

import "github.com/raterudder/solarcheck/pkg/types"

// Monthly multipliers, January first. Each row averages close to 1 so the
// annual total stays near 12 times an average month.

var climate = map[types.ClimateZone]types.Monthly{
	types.ClimateZoneNorth:   {1.10, 1.05, 0.97, 0.90, 0.92, 1.00, 1.00, 0.94, 0.93, 0.96, 1.05, 1.12},
	types.ClimateZoneCenter:  {1.05, 1.00, 0.94, 0.90, 0.95, 1.05, 1.12, 1.10, 0.98, 0.93, 0.97, 1.05},
	types.ClimateZoneSouth:   {0.98, 0.95, 0.90, 0.88, 0.96, 1.10, 1.20, 1.20, 1.05, 0.92, 0.90, 0.96},
	types.ClimateZoneIslands: {0.95, 0.93, 0.90, 0.90, 0.98, 1.10, 1.22, 1.22, 1.06, 0.93, 0.89, 0.92},
}

var building = map[types.BuildingCategory]types.Monthly{
	// August dip for the summer closure
	types.BuildingCategoryOffice:     {1.05, 1.00, 0.95, 0.90, 0.95, 1.08, 1.15, 0.80, 1.00, 0.97, 1.00, 1.02},
	types.BuildingCategoryRetail:     {1.02, 0.95, 0.95, 0.93, 0.98, 1.05, 1.12, 1.08, 0.97, 0.95, 1.00, 1.15},
	types.BuildingCategoryHotel:      {0.85, 0.85, 0.90, 0.95, 1.02, 1.12, 1.25, 1.28, 1.08, 0.95, 0.85, 0.90},
	types.BuildingCategoryRestaurant: {0.95, 0.92, 0.97, 1.00, 1.02, 1.08, 1.12, 1.10, 1.00, 0.97, 0.95, 1.05},
	types.BuildingCategoryWarehouse:  {1.00, 0.98, 1.00, 1.00, 1.00, 1.02, 1.03, 0.90, 1.00, 1.02, 1.02, 1.03},
	types.BuildingCategoryIndustrial: {1.02, 1.02, 1.03, 1.00, 1.03, 1.03, 1.00, 0.70, 1.03, 1.04, 1.04, 0.96},
}

// Only used by the medium-voltage segment.
var operatingHours = map[types.OperatingHours]types.Monthly{
	types.OperatingHoursDay:        {0.97, 0.97, 0.99, 1.00, 1.02, 1.04, 1.05, 1.03, 1.01, 0.99, 0.97, 0.96},
	types.OperatingHoursDayEvening: {1.03, 1.02, 1.00, 0.98, 0.98, 1.00, 1.01, 1.00, 0.99, 1.00, 1.02, 1.04},
	types.OperatingHoursContinuous: {1.01, 1.00, 1.00, 0.99, 0.99, 1.00, 1.01, 1.01, 1.00, 0.99, 1.00, 1.01},
}

var tariffs = map[types.TariffSegment][]types.TariffBracket{
	types.TariffSegmentBT: {
		{UpToKWH: 200, Rate: 0.195},
		{UpToKWH: 300, Rate: 0.215},
		{UpToKWH: 500, Rate: 0.235},
		{Rate: 0.255},
	},
	types.TariffSegmentMT: {
		{Rate: 0.175},
	},
}
