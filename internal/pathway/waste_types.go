package pathway

import "slices"

// Waste type tokens accepted by the combustion converter.
const (
	WasteSludge = "sludge"
	WasteFood   = "food"
	WasteFOG    = "fog"
	WasteGreen  = "green"
	WasteManure = "manure"
)

// DefaultWasteType is applied when a combustion input leaves the waste
// type blank. Food waste dominates the mixed municipal streams the county
// inventories describe.
const DefaultWasteType = WasteFood

// wasteTypes lists the accepted tokens in presentation order.
var wasteTypes = []string{WasteSludge, WasteFood, WasteFOG, WasteGreen, WasteManure}

// WasteLHVMJPerKg maps waste type tokens to lower heating values in MJ per
// kilogram as received.
//
// Source: EPA waste-to-energy characterization and Phyllis2 database
// averages for dewatered sludge, food scraps, fats/oils/grease, green
// waste and dry manure.
var WasteLHVMJPerKg = map[string]float64{
	WasteSludge: 4.5,  // dewatered at ~25% solids
	WasteFood:   4.7,  // as-received food scraps
	WasteFOG:    16.0, // fats, oils and grease
	WasteGreen:  6.5,  // yard trimmings
	WasteManure: 5.0,  // partially dried
}

// WasteStackCO2KgPerKg maps waste type tokens to stack emission intensity
// in kg CO2e per kilogram burned. Biogenic share is counted; the figures
// follow the source system's accounting rather than a net-of-biogenic view.
var WasteStackCO2KgPerKg = map[string]float64{
	WasteSludge: 0.80,
	WasteFood:   0.95,
	WasteFOG:    2.90,
	WasteGreen:  1.10,
	WasteManure: 0.90,
}

// WasteTypes returns the accepted waste type tokens in presentation order.
func WasteTypes() []string {
	return slices.Clone(wasteTypes)
}

// wasteFactors returns the heating value and stack emission intensity for
// a normalized waste type token.
func wasteFactors(wasteType string) (lhvMJPerKg, stackCO2KgPerKg float64, ok bool) {
	lhv, ok := WasteLHVMJPerKg[wasteType]
	if !ok {
		return 0, 0, false
	}
	return lhv, WasteStackCO2KgPerKg[wasteType], true
}
