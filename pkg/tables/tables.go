// Package tables holds the fixed coefficient, tariff and autoconsumption
// tables. Every lookup is total over the declared variants and fails with
// types.ErrConfiguration for anything else.
package tables

import (
	"github.com/raterudder/solarcheck/pkg/types"
)

// ClimateCoefficients returns the monthly climate multipliers of a zone.
func ClimateCoefficients(zone types.ClimateZone) (types.Monthly, error) {
	c, ok := climate[zone]
	if !ok {
		return types.Monthly{}, types.Configurationf("no climate coefficients for zone %q", zone)
	}
	return c, nil
}

// BuildingCoefficients returns the monthly load multipliers of a category.
func BuildingCoefficients(category types.BuildingCategory) (types.Monthly, error) {
	c, ok := building[category]
	if !ok {
		return types.Monthly{}, types.Configurationf("no building coefficients for category %q", category)
	}
	return c, nil
}

// OperatingHoursCoefficients returns the monthly multipliers of an operating
// hours profile. The empty profile has all coefficients equal to 1.
func OperatingHoursCoefficients(hours types.OperatingHours) (types.Monthly, error) {
	if hours == types.OperatingHoursNone {
		return unitMonthly, nil
	}
	c, ok := operatingHours[hours]
	if !ok {
		return types.Monthly{}, types.Configurationf("no coefficients for operating hours %q", hours)
	}
	return c, nil
}

// Tariff returns the price schedule of a segment.
func Tariff(segment types.TariffSegment) (types.Tariff, error) {
	brackets, ok := tariffs[segment]
	if !ok {
		return types.Tariff{}, types.Configurationf("no tariff for segment %q", segment)
	}
	return types.Tariff{
		Segment:  segment,
		Brackets: append([]types.TariffBracket(nil), brackets...),
	}, nil
}

// Categories lists the building categories with coefficients.
func Categories() []types.BuildingCategory {
	return append([]types.BuildingCategory(nil), categories...)
}

// Zones lists the climate zones with coefficients.
func Zones() []types.ClimateZone {
	return append([]types.ClimateZone(nil), zones...)
}

// OperatingHoursProfiles lists the operating hours profiles, not including
// the empty one.
func OperatingHoursProfiles() []types.OperatingHours {
	return append([]types.OperatingHours(nil), profiles...)
}

// Segments lists the tariff segments.
func Segments() []types.TariffSegment {
	return []types.TariffSegment{types.TariffSegmentBT, types.TariffSegmentMT}
}

var (
	categories = []types.BuildingCategory{
		types.BuildingCategoryOffice,
		types.BuildingCategoryRetail,
		types.BuildingCategoryHotel,
		types.BuildingCategoryRestaurant,
		types.BuildingCategoryWarehouse,
		types.BuildingCategoryIndustrial,
	}
	zones = []types.ClimateZone{
		types.ClimateZoneNorth,
		types.ClimateZoneCenter,
		types.ClimateZoneSouth,
		types.ClimateZoneIslands,
	}
	profiles = []types.OperatingHours{
		types.OperatingHoursDay,
		types.OperatingHoursDayEvening,
		types.OperatingHoursContinuous,
	}

	unitMonthly = types.Monthly{1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1}
)
