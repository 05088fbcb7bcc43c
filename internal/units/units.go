// Package units normalizes feedstock quantities to the canonical units used
// by the conversion formulas: kilograms for plain masses and kg/hr for feed
// rates. Unit matching is case-insensitive and ignores surrounding whitespace.
package units

import (
	"math"
	"strings"
)

// MassUnitFactor returns the conversion factor to kilograms for the provided
// unit and a boolean indicating whether the unit is recognized.
// Recognized inputs and their mappings are:
// "g" -> GramsToKg; "kg" -> KgToKg; "lb" -> PoundsToKg;
// "ton" -> ShortTonToKg; "tonne" -> MetricTonToKg.
// For unrecognized units it returns 0 and false.
func MassUnitFactor(unit string) (float64, bool) {
	switch strings.ToLower(strings.TrimSpace(unit)) {
	case "g":
		return GramsToKg, true
	case "kg", "":
		return KgToKg, true
	case "lb", "lbs":
		return PoundsToKg, true
	case "ton", "tons":
		return ShortTonToKg, true
	case "tonne", "tonnes":
		return MetricTonToKg, true
	default:
		return 0, false
	}
}

// RateUnitFactor returns the conversion factor to kg/hr for the provided unit
// and a boolean indicating whether the unit is recognized.
// Recognized inputs and their mappings are:
// "kghr" -> 1; "tons" (short tons/yr) -> ShortTonsPerYearToKgPerHour;
// "tonnes" (tonnes/yr) -> TonnesPerYearToKgPerHour;
// "mgd" (million US gal/day) -> MGDToKgPerHour; "m3d" (m3/day) -> M3DToKgPerHour.
// For unrecognized units it returns 0 and false.
func RateUnitFactor(unit string) (float64, bool) {
	switch strings.ToLower(strings.TrimSpace(unit)) {
	case "kghr", "":
		return 1.0, true
	case "tons":
		return ShortTonsPerYearToKgPerHour, true
	case "tonnes":
		return TonnesPerYearToKgPerHour, true
	case "mgd":
		return MGDToKgPerHour, true
	case "m3d":
		return M3DToKgPerHour, true
	default:
		return 0, false
	}
}

// MassToKilograms converts a plain mass from the provided unit to kilograms.
//
// Recognized units: g, kg, lb, ton (short), tonne (metric).
// An empty unit means kilograms. Unit matching is case-insensitive.
//
// Returns ErrNegativeQuantity if value is negative, ErrUnknownUnit if the
// unit is not recognized, and ErrNonFiniteQuantity if the input is Inf or
// NaN or the conversion overflows.
func MassToKilograms(value float64, unit string) (float64, error) {
	return normalize(value, unit, MassUnitFactor)
}

// RateToKgPerHour converts a feed rate from the provided unit to kg/hr.
//
// Recognized units: kghr, tons (short tons/yr), tonnes (tonnes/yr),
// mgd (million US gal/day of liquid sludge), m3d (m3/day of liquid sludge).
// An empty unit means kg/hr. Unit matching is case-insensitive.
//
// Returns ErrNegativeQuantity if value is negative, ErrUnknownUnit if the
// unit is not recognized, and ErrNonFiniteQuantity if the input is Inf or
// NaN or the conversion overflows.
func RateToKgPerHour(value float64, unit string) (float64, error) {
	return normalize(value, unit, RateUnitFactor)
}

// normalize applies a unit factor lookup to a validated quantity.
func normalize(value float64, unit string, factorFor func(string) (float64, bool)) (float64, error) {
	if math.IsInf(value, 0) || math.IsNaN(value) {
		return 0, ErrNonFiniteQuantity
	}

	if value < 0 {
		return 0, ErrNegativeQuantity
	}

	factor, ok := factorFor(unit)
	if !ok {
		return 0, ErrUnknownUnit
	}

	result := value * factor

	// Check for overflow after multiplication
	if math.IsInf(result, 0) {
		return 0, ErrNonFiniteQuantity
	}

	return result, nil
}

// IsRecognizedMassUnit reports whether the unit string is valid for plain masses.
func IsRecognizedMassUnit(unit string) bool {
	_, ok := MassUnitFactor(unit)
	return ok
}

// IsRecognizedRateUnit reports whether the unit string is valid for feed rates.
func IsRecognizedRateUnit(unit string) bool {
	_, ok := RateUnitFactor(unit)
	return ok
}
