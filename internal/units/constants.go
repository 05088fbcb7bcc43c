package units

// Mass Conversion Constants for normalizing plain masses to kilograms.
const (
	// GramsToKg converts grams to kilograms.
	GramsToKg = 0.001

	// KgToKg is the identity conversion for kilograms.
	KgToKg = 1.0

	// PoundsToKg converts avoirdupois pounds to kilograms.
	PoundsToKg = 0.453592

	// ShortTonToKg converts US short tons (2000 lb) to kilograms.
	// Feedstock inventories in the bundled county tables use short tons.
	ShortTonToKg = 907.185

	// MetricTonToKg converts metric tonnes to kilograms.
	MetricTonToKg = 1000.0

	// KgToPounds converts kilograms to avoirdupois pounds.
	// Used for emissions figures reported in lb CO2e.
	KgToPounds = 2.20462
)

// Feed Rate Conversion Constants for normalizing throughput to kg/hr.
//
// Annual tonnage figures are spread over a full operating year rather than
// nameplate uptime, matching how the county feedstock inventories report them.
const (
	// HoursPerYear is the number of hours in a non-leap operating year.
	HoursPerYear = 8760.0

	// ShortTonsPerYearToKgPerHour converts short tons/yr to kg/hr.
	ShortTonsPerYearToKgPerHour = ShortTonToKg / HoursPerYear

	// TonnesPerYearToKgPerHour converts metric tonnes/yr to kg/hr.
	TonnesPerYearToKgPerHour = MetricTonToKg / HoursPerYear

	// LitersPerUSGallon converts US liquid gallons to liters.
	LitersPerUSGallon = 3.785411784

	// SludgeDensityKgPerLiter is the assumed density of liquid wastewater
	// sludge. Treated as water-like; dry solids content is accounted for in
	// the process model, not here.
	SludgeDensityKgPerLiter = 1.0

	// MGDToKgPerHour converts million US gallons/day of liquid sludge to kg/hr.
	MGDToKgPerHour = 1e6 * LitersPerUSGallon * SludgeDensityKgPerLiter / 24.0

	// M3DToKgPerHour converts cubic meters/day of liquid sludge to kg/hr.
	M3DToKgPerHour = 1000.0 * SludgeDensityKgPerLiter / 24.0
)

// Canonical unit tokens. All recognized input units normalize to one of these.
const (
	// CanonicalMassUnit is the canonical unit for plain masses.
	CanonicalMassUnit = "kg"

	// CanonicalRateUnit is the canonical unit for feed rates.
	CanonicalRateUnit = "kghr"
)
