package pathway

import (
	"fmt"
	"slices"
	"strings"

	"github.com/wasteworks/wte-api/internal/units"
)

// combustionUnits are the accepted mass tokens, canonical first. Combustion
// prices a plain mass, not a feed rate, so no scale class applies.
var combustionUnits = []string{"kg", "g", "lb", "ton", "tonne"}

// CombustionConverter derives electricity, revenue and emission figures
// from a combustible waste mass.
type CombustionConverter struct{}

// NewCombustionConverter creates a new combustion converter.
func NewCombustionConverter() *CombustionConverter {
	return &CombustionConverter{}
}

// Method returns the conversion method identifier.
func (c *CombustionConverter) Method() Method { return Combustion }

// Units returns the accepted unit tokens, canonical unit first.
func (c *CombustionConverter) Units() []string {
	return slices.Clone(combustionUnits)
}

// Convert derives electricity output, sale revenue and emission figures.
//
// The calculation:
//  1. Mass normalized to kg; waste type defaulted when blank.
//  2. Electricity (kWh) = kg × LHV(type) × PlantEfficiency / 3.6
//  3. Revenue ($) = kWh × PowerPricePerKWh
//  4. GWP (lb CO2e) = kg × StackCO2(type) × 2.20462
func (c *CombustionConverter) Convert(in Input) (Result, error) {
	wasteType := strings.ToLower(strings.TrimSpace(in.WasteType))
	if wasteType == "" {
		wasteType = DefaultWasteType
	}
	lhv, stackCO2, ok := wasteFactors(wasteType)
	if !ok {
		return Result{}, fmt.Errorf("waste type %q: %w", in.WasteType, ErrUnknownWasteType)
	}

	kg, err := units.MassToKilograms(in.Quantity, in.Unit)
	if err != nil {
		return Result{}, fmt.Errorf("combustion mass: %w", err)
	}

	kWh := kg * lhv * CombustionPlantEfficiency / MJPerKWh
	revenue := kWh * PowerPricePerKWh
	gwp := kg * stackCO2 * units.KgToPounds

	return Result{
		Method:    Combustion,
		WasteType: wasteType,
		Feed:      Figure{Name: "mass", Value: round4(kg), Unit: "kg"},
		Derived: []Figure{
			{Name: "electricity", Value: round4(kWh), Unit: "kWh"},
			{Name: "revenue", Value: round4(revenue), Unit: "$"},
			{Name: "gwp", Value: round4(gwp), Unit: "lb CO2e"},
		},
	}, nil
}
