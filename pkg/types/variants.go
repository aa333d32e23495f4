package types

// BuildingCategory is the use class of the building being assessed.
type BuildingCategory string

const (
	BuildingCategoryOffice     BuildingCategory = "OFFICE"
	BuildingCategoryRetail     BuildingCategory = "RETAIL"
	BuildingCategoryHotel      BuildingCategory = "HOTEL"
	BuildingCategoryRestaurant BuildingCategory = "RESTAURANT"
	BuildingCategoryWarehouse  BuildingCategory = "WAREHOUSE"
	BuildingCategoryIndustrial BuildingCategory = "INDUSTRIAL"
)

// ClimateZone is the macro climate region of the site.
type ClimateZone string

const (
	ClimateZoneNorth   ClimateZone = "NORTH"
	ClimateZoneCenter  ClimateZone = "CENTER"
	ClimateZoneSouth   ClimateZone = "SOUTH"
	ClimateZoneIslands ClimateZone = "ISLANDS"
)

// OperatingHours describes when the building draws most of its load. It is
// only relevant for the medium-voltage segment; the empty value means no
// profile was supplied.
type OperatingHours string

const (
	OperatingHoursNone       OperatingHours = ""
	OperatingHoursDay        OperatingHours = "DAY"
	OperatingHoursDayEvening OperatingHours = "DAY_EVENING"
	OperatingHoursContinuous OperatingHours = "CONTINUOUS"
)

// TariffSegment is the supply voltage class which decides the billing rules.
type TariffSegment string

const (
	// TariffSegmentBT is low voltage, billed with progressive brackets and
	// net metering.
	TariffSegmentBT TariffSegment = "BT"
	// TariffSegmentMT is medium voltage, sized for self consumption.
	TariffSegmentMT TariffSegment = "MT"
)

// SegmentFor returns the tariff segment implied by an operating-hours profile.
func SegmentFor(hours OperatingHours) TariffSegment {
	if hours == OperatingHoursNone {
		return TariffSegmentBT
	}
	return TariffSegmentMT
}
