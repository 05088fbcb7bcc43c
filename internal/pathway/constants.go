// Package pathway implements the pure conversion formulas for the four
// supported waste-to-energy methods. Each converter maps a feedstock
// quantity to product yield, price and greenhouse-gas figures using the
// documented constants below.
package pathway

// Plant scale tier bounds on the canonical feed rate.
// Piecewise-constant price tiers reflect economies of scale between pilot,
// demonstration and commercial plants.
const (
	// PilotMaxKgPerHour is the upper feed rate bound of the pilot class.
	PilotMaxKgPerHour = 10_000.0

	// DemonstrationMaxKgPerHour is the upper feed rate bound of the
	// demonstration class. Rates at or above it are commercial scale.
	DemonstrationMaxKgPerHour = 50_000.0
)

// Fermentation constants (cellulosic ethanol).
const (
	// EthanolYieldGalPerKg is the ethanol yield per dry kilogram of
	// lignocellulosic feedstock.
	// Source: NREL 2011 cornstover design report, 79 gal per dry short ton.
	EthanolYieldGalPerKg = 0.0871

	// FermentationGWPLbPerGal is the life-cycle emission intensity of
	// cellulosic ethanol in lb CO2e per gallon.
	// Source: GREET pathway for dilute-acid cornstover ethanol.
	FermentationGWPLbPerGal = 2.08

	// Minimum ethanol selling price by plant scale class, $/gal.
	// Source: NREL nth-plant TEA, scaled for pilot and demonstration plants.
	FermentationPricePilotPerGal         = 3.16
	FermentationPriceDemonstrationPerGal = 2.62
	FermentationPriceCommercialPerGal    = 2.15
)

// HTL constants (wastewater sludge to renewable diesel).
// The biocrude yield itself is not fixed here: it is the blended constant
// derived from the sludge composition table at startup.
const (
	// BiocrudeToDieselFraction is the mass fraction of biocrude surviving
	// hydrotreating into finished diesel.
	// Source: PNNL sludge HTL design case.
	BiocrudeToDieselFraction = 0.80

	// DieselKgPerGal is the density of finished renewable diesel.
	DieselKgPerGal = 3.22

	// DieselGalPerKg converts a diesel mass to gallons.
	DieselGalPerKg = 1.0 / DieselKgPerGal

	// HTL feed processing cost by plant scale class, $/kg of feed.
	// Source: PNNL sludge HTL design case, scaled.
	HTLFeedCostPilotPerKg         = 0.51
	HTLFeedCostDemonstrationPerKg = 0.385
	HTLFeedCostCommercialPerKg    = 0.31

	// HTLProcessCO2KgPerKgFeed is the process emission intensity per
	// kilogram of sludge feed, kg CO2e.
	HTLProcessCO2KgPerKgFeed = 0.060
)

// Combustion constants (mass burn with energy recovery).
const (
	// CombustionPlantEfficiency is the gross electric efficiency of a
	// moving-grate waste-to-energy plant.
	CombustionPlantEfficiency = 0.25

	// MJPerKWh converts megajoules to kilowatt-hours.
	MJPerKWh = 3.6

	// PowerPricePerKWh is the electricity sale price in $/kWh.
	PowerPricePerKWh = 0.07
)

// Digestion constants (anaerobic digestion to biogas).
const (
	// BiogasYieldM3PerKg is the biogas yield per wet kilogram of mixed
	// digestible organics.
	BiogasYieldM3PerKg = 0.12

	// MethaneFraction is the methane share of raw biogas by volume.
	MethaneFraction = 0.60

	// Renewable natural gas production cost by plant scale class, $/MMBtu.
	DigestionPricePilotPerMMBtu         = 28.0
	DigestionPriceDemonstrationPerMMBtu = 18.0
	DigestionPriceCommercialPerMMBtu    = 12.0

	// DigestionGWPLbPerMMBtu is the net emission intensity of the produced
	// gas in lb CO2e per MMBtu. Negative: avoided landfill methane
	// outweighs process emissions.
	DigestionGWPLbPerMMBtu = -6.3
)
