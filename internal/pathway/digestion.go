package pathway

import (
	"fmt"
	"slices"
	"strings"

	"github.com/wasteworks/wte-api/internal/units"
)

// digestionUnits are the accepted feed rate tokens, canonical first.
var digestionUnits = []string{"kghr", "tons", "tonnes"}

// DigestionConverter derives biogas figures from a digestible organic
// waste feed rate.
type DigestionConverter struct{}

// NewDigestionConverter creates a new anaerobic digestion converter.
func NewDigestionConverter() *DigestionConverter {
	return &DigestionConverter{}
}

// Method returns the conversion method identifier.
func (c *DigestionConverter) Method() Method { return Digestion }

// Units returns the accepted unit tokens, canonical unit first.
func (c *DigestionConverter) Units() []string {
	return slices.Clone(digestionUnits)
}

// Convert derives methane output, gas price and emission figures.
//
// The calculation:
//  1. Feed rate normalized to kg/hr.
//  2. Methane (MM m³/yr) = kg/hr × 8760 × BiogasYield × MethaneFraction / 1e6
//  3. Price ($/MMBtu) = scale-class tier of the gas production cost
//  4. GWP (lb CO2e/MMBtu) = DigestionGWPLbPerMMBtu (negative, a net credit)
func (c *DigestionConverter) Convert(in Input) (Result, error) {
	token := strings.ToLower(strings.TrimSpace(in.Unit))
	if token != "" && !slices.Contains(digestionUnits, token) {
		return Result{}, fmt.Errorf("unit %q not accepted for digestion: %w", in.Unit, units.ErrUnknownUnit)
	}

	kgPerHour, err := units.RateToKgPerHour(in.Quantity, in.Unit)
	if err != nil {
		return Result{}, fmt.Errorf("digestion feed rate: %w", err)
	}

	methaneMMCubicMetersPerYear := kgPerHour * units.HoursPerYear *
		BiogasYieldM3PerKg * MethaneFraction / 1e6
	price := tierPrice(kgPerHour,
		DigestionPricePilotPerMMBtu,
		DigestionPriceDemonstrationPerMMBtu,
		DigestionPriceCommercialPerMMBtu)

	return Result{
		Method: Digestion,
		Scale:  scaleClass(kgPerHour),
		Feed:   Figure{Name: "mass", Value: round4(kgPerHour), Unit: "kg/hr"},
		Derived: []Figure{
			{Name: "methane", Value: round4(methaneMMCubicMetersPerYear), Unit: "MM m3/yr"},
			{Name: "price", Value: round4(price), Unit: "$/MMBtu"},
			{Name: "gwp", Value: round4(DigestionGWPLbPerMMBtu), Unit: "lb CO2e/MMBtu"},
		},
	}, nil
}
