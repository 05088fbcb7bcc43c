package pathway

import (
	"fmt"
	"slices"
	"strings"

	"github.com/wasteworks/wte-api/internal/units"
)

// fermentationUnits are the accepted feed rate tokens, canonical first.
// The volumetric sludge units are deliberately absent: lignocellulosic
// feedstock is delivered dry.
var fermentationUnits = []string{"kghr", "tons", "tonnes"}

// FermentationConverter derives cellulosic ethanol figures from a
// lignocellulose feed rate.
type FermentationConverter struct{}

// NewFermentationConverter creates a new fermentation converter.
func NewFermentationConverter() *FermentationConverter {
	return &FermentationConverter{}
}

// Method returns the conversion method identifier.
func (c *FermentationConverter) Method() Method { return Fermentation }

// Units returns the accepted unit tokens, canonical unit first.
func (c *FermentationConverter) Units() []string {
	return slices.Clone(fermentationUnits)
}

// Convert derives ethanol output, selling price and emission figures.
//
// The calculation:
//  1. Feed rate normalized to kg/hr.
//  2. Ethanol (MM gal/yr) = kg/hr × 8760 × EthanolYieldGalPerKg / 1e6
//  3. Price ($/gal) = scale-class tier of the minimum ethanol selling price
//  4. GWP (lb CO2e/gal) = FermentationGWPLbPerGal
func (c *FermentationConverter) Convert(in Input) (Result, error) {
	token := strings.ToLower(strings.TrimSpace(in.Unit))
	if token != "" && !slices.Contains(fermentationUnits, token) {
		return Result{}, fmt.Errorf("unit %q not accepted for fermentation: %w", in.Unit, units.ErrUnknownUnit)
	}

	kgPerHour, err := units.RateToKgPerHour(in.Quantity, in.Unit)
	if err != nil {
		return Result{}, fmt.Errorf("fermentation feed rate: %w", err)
	}

	ethanolMMGalPerYear := kgPerHour * units.HoursPerYear * EthanolYieldGalPerKg / 1e6
	price := tierPrice(kgPerHour,
		FermentationPricePilotPerGal,
		FermentationPriceDemonstrationPerGal,
		FermentationPriceCommercialPerGal)

	return Result{
		Method: Fermentation,
		Scale:  scaleClass(kgPerHour),
		Feed:   Figure{Name: "mass", Value: round4(kgPerHour), Unit: "kg/hr"},
		Derived: []Figure{
			{Name: "ethanol", Value: round4(ethanolMMGalPerYear), Unit: "MM gal/yr"},
			{Name: "price", Value: round4(price), Unit: "$/gal"},
			{Name: "gwp", Value: round4(FermentationGWPLbPerGal), Unit: "lb CO2e/gal"},
		},
	}, nil
}
