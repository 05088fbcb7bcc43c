package pathway

import (
	"fmt"
	"slices"

	"github.com/wasteworks/wte-api/internal/refdata"
	"github.com/wasteworks/wte-api/internal/units"
)

// htlUnits are the accepted sludge feed rate tokens, canonical first. The
// volumetric units assume liquid sludge at 1.0 kg/L.
var htlUnits = []string{"kghr", "tons", "tonnes", "mgd", "m3d"}

// ErrInvalidBlend indicates a sludge composition table whose blended
// biocrude yield cannot support the fuel conversion. Configuration class,
// surfaced at construction rather than per request.
var ErrInvalidBlend = constError("invalid sludge blend")

// HTLConverter derives renewable diesel figures from a wastewater sludge
// feed rate via hydrothermal liquefaction.
//
// The fuel factor is fixed at construction from the sludge composition
// table: gallons of finished diesel per kilogram of sludge feed.
type HTLConverter struct {
	blend        refdata.SludgeBlend
	fuelGalPerKg float64
}

// NewHTLConverter creates an HTL converter for a sludge composition table.
// It fails when the table's blended biocrude yield leaves no recoverable
// fuel, since the price and emission figures divide by the fuel factor.
func NewHTLConverter(blend refdata.SludgeBlend) (*HTLConverter, error) {
	fuelGalPerKg := blend.BlendedYield() * BiocrudeToDieselFraction * DieselGalPerKg
	if fuelGalPerKg <= 0 {
		return nil, fmt.Errorf("blended biocrude yield %.4f yields no fuel: %w",
			blend.BlendedYield(), ErrInvalidBlend)
	}
	return &HTLConverter{blend: blend, fuelGalPerKg: fuelGalPerKg}, nil
}

// Method returns the conversion method identifier.
func (c *HTLConverter) Method() Method { return HTL }

// Units returns the accepted unit tokens, canonical unit first.
func (c *HTLConverter) Units() []string {
	return slices.Clone(htlUnits)
}

// FuelGalPerKg reports the fixed fuel factor in gallons of diesel per
// kilogram of sludge feed.
func (c *HTLConverter) FuelGalPerKg() float64 { return c.fuelGalPerKg }

// Convert derives fuel selling price and emission figures.
//
// The calculation:
//  1. Sludge feed rate normalized to kg/hr.
//  2. Price ($/gal) = scale-class feed cost ($/kg) / fuel factor (gal/kg)
//  3. GWP (lb CO2e/gal) = process CO2 (kg/kg feed) / fuel factor × 2.20462
func (c *HTLConverter) Convert(in Input) (Result, error) {
	kgPerHour, err := units.RateToKgPerHour(in.Quantity, in.Unit)
	if err != nil {
		return Result{}, fmt.Errorf("htl feed rate: %w", err)
	}

	feedCost := tierPrice(kgPerHour,
		HTLFeedCostPilotPerKg,
		HTLFeedCostDemonstrationPerKg,
		HTLFeedCostCommercialPerKg)
	price := feedCost / c.fuelGalPerKg
	gwp := HTLProcessCO2KgPerKgFeed / c.fuelGalPerKg * units.KgToPounds

	return Result{
		Method: HTL,
		Scale:  scaleClass(kgPerHour),
		Feed:   Figure{Name: "sludge", Value: round4(kgPerHour), Unit: "kg/hr"},
		Derived: []Figure{
			{Name: "price", Value: round4(price), Unit: "$/gal"},
			{Name: "gwp", Value: round4(gwp), Unit: "lb CO2e/gal"},
		},
	}, nil
}
