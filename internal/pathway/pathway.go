package pathway

import "math"

// Method identifies one waste-to-energy conversion method.
type Method string

// Supported conversion methods.
const (
	Fermentation Method = "fermentation"
	HTL          Method = "htl"
	Combustion   Method = "combustion"
	Digestion    Method = "digestion"
)

// Input is a single conversion request: a quantity, an optional unit tag
// (empty means the method's canonical unit) and, for combustion only, an
// optional waste type. Other methods ignore WasteType.
type Input struct {
	Quantity  float64
	Unit      string
	WasteType string
}

// Figure is one named quantity in a conversion result.
type Figure struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
	Unit  string  `json:"unit"`
}

// Result is the outcome of one conversion: the canonical feed figure and the
// derived product figures, in a fixed order. Scale carries the plant scale
// class the piecewise price tiers selected; it is empty for methods whose
// input is a plain mass rather than a feed rate. WasteType reports the waste
// type a combustion conversion applied, including the default when the input
// left it blank.
type Result struct {
	Method    Method   `json:"method"`
	Scale     string   `json:"scale,omitempty"`
	WasteType string   `json:"waste_type,omitempty"`
	Feed      Figure   `json:"feed"`
	Derived   []Figure `json:"derived"`
}

// Converter turns a validated input into derived product figures.
// Implementations are stateless and pure: identical input yields identical
// output, with no I/O and no retained state between calls.
type Converter interface {
	// Method returns the conversion method identifier.
	Method() Method

	// Units returns the accepted unit tokens, canonical unit first.
	Units() []string

	// Convert produces the derived figures for one input.
	// Invalid quantities and units fail with errors matching the units
	// package sentinels; combustion additionally fails with
	// ErrUnknownWasteType for an unrecognized waste type.
	Convert(in Input) (Result, error)
}

// constError is an immutable error type for sentinel errors.
type constError string

func (e constError) Error() string { return string(e) }

// ErrUnknownWasteType indicates a combustion waste type outside the
// enumerated set. Invalid-input class, same as the unit sentinels.
var ErrUnknownWasteType = constError("unknown waste type")

// Scale class names reported in results.
const (
	ScalePilot         = "pilot"
	ScaleDemonstration = "demonstration"
	ScaleCommercial    = "commercial"
)

// scaleClass bands a canonical feed rate into a plant scale class.
func scaleClass(kgPerHour float64) string {
	switch {
	case kgPerHour < PilotMaxKgPerHour:
		return ScalePilot
	case kgPerHour < DemonstrationMaxKgPerHour:
		return ScaleDemonstration
	default:
		return ScaleCommercial
	}
}

// tierPrice selects the piecewise-constant price for a feed rate.
func tierPrice(kgPerHour, pilot, demonstration, commercial float64) float64 {
	switch scaleClass(kgPerHour) {
	case ScalePilot:
		return pilot
	case ScaleDemonstration:
		return demonstration
	default:
		return commercial
	}
}

// round4 rounds a derived output half-to-even at 4 decimal places.
// All figures pass through this before leaving a converter.
func round4(v float64) float64 {
	return math.RoundToEven(v*1e4) / 1e4
}
