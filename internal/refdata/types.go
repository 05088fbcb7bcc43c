package refdata

// ReferenceStore provides county reference data lookups
type ReferenceStore interface {
	// FermentationCounty returns the lignocellulose feedstock record for a county.
	// Lookup is case-insensitive. Returns (record, true) if found, (zero, false) if not found
	FermentationCounty(name string) (FermentationRecord, bool)

	// HTLCounty returns the wastewater sludge feedstock record for a county.
	// Returns (record, true) if found, (zero, false) if not found
	HTLCounty(name string) (HTLRecord, bool)

	// CombustionCounty returns the combustible solid waste record for a county.
	// Returns (record, true) if found, (zero, false) if not found
	CombustionCounty(name string) (CombustionRecord, bool)

	// DigestionCounty returns the digestible organics record for a county.
	// Returns (record, true) if found, (zero, false) if not found
	DigestionCounty(name string) (DigestionRecord, bool)

	// SludgeBlend returns the sludge composition table consulted by the HTL
	// process model. Always present after a successful load.
	SludgeBlend() SludgeBlend

	// Datasets returns one summary per loaded table, in load order.
	Datasets() []DatasetInfo

	// CountyNames returns the canonical county names held by one county
	// table, sorted alphabetically.
	CountyNames(dataset string) []string
}

// FermentationRecord holds a county's lignocellulosic feedstock availability.
// Distilled from the bundled biomass inventory for fast lookups.
type FermentationRecord struct {
	County                string  `json:"county"`
	LignocelluloseDryTons float64 `json:"lignocellulose_dry_tons"`
	KgPerHour             float64 `json:"kg_per_hour"`
}

// HTLRecord holds a county's wastewater sludge availability.
// Distilled from the bundled biomass inventory for fast lookups.
type HTLRecord struct {
	County        string  `json:"county"`
	SludgeDryTons float64 `json:"sludge_dry_tons"`
	KgPerHour     float64 `json:"kg_per_hour"`
}

// CombustionRecord holds a county's combustible solid waste availability.
// DominantType is the waste stream making up the largest share of the
// county's tonnage; the county conversion uses it as the burn profile.
type CombustionRecord struct {
	County       string  `json:"county"`
	WasteTons    float64 `json:"waste_tons"`
	KgPerHour    float64 `json:"kg_per_hour"`
	DominantType string  `json:"dominant_type"`
}

// DigestionRecord holds a county's digestible organic waste availability.
type DigestionRecord struct {
	County           string  `json:"county"`
	OrganicWasteTons float64 `json:"organic_waste_tons"`
	KgPerHour        float64 `json:"kg_per_hour"`
}

// SludgeComponent is one row of the sludge composition table: a biochemical
// component's share of typical municipal sludge and its biocrude yield under
// hydrothermal liquefaction.
type SludgeComponent struct {
	Component     string  `json:"component"`
	MassFraction  float64 `json:"mass_fraction"`
	BiocrudeYield float64 `json:"biocrude_yield"`
}

// SludgeBlend is the full sludge composition table. Mass fractions sum to 1.
type SludgeBlend struct {
	Components []SludgeComponent `json:"components"`
}

// BlendedYield returns the composition-weighted biocrude yield fraction,
// the single constant the HTL formula consults.
func (b SludgeBlend) BlendedYield() float64 {
	var yield float64
	for _, c := range b.Components {
		yield += c.MassFraction * c.BiocrudeYield
	}
	return yield
}

// DatasetInfo holds table metadata for diagnostics and the capability listing.
// Captured from the dataset file headers during initialization.
type DatasetInfo struct {
	// Dataset is the table identifier (e.g., "fermentation").
	Dataset string `json:"dataset"`
	// Source describes where the figures come from.
	Source string `json:"source"`
	// Updated is the dataset revision marker (e.g., "2025-11").
	Updated string `json:"updated"`
	// Counties is the number of records loaded, zero for non-county tables.
	Counties int `json:"counties"`
	// Override reports whether the table came from WTE_DATA_DIR instead of
	// the embedded copy.
	Override bool `json:"override,omitempty"`
}

// countyDataset is the on-disk structure shared by the four county tables.
// YAML override files are converted to JSON before decoding, so only json
// tags appear here. Per-method tonnage fields are pointers so a missing
// field is distinguishable from an explicit zero.
type countyDataset struct {
	Dataset  string       `json:"dataset"`
	Source   string       `json:"source"`
	Updated  string       `json:"updated"`
	Counties []countyItem `json:"counties"`
}

// countyItem is one county row as stored on disk.
type countyItem struct {
	County                string   `json:"county"`
	LignocelluloseDryTons *float64 `json:"lignocellulose_dry_tons,omitempty"`
	SludgeDryTons         *float64 `json:"sludge_dry_tons,omitempty"`
	WasteTons             *float64 `json:"waste_tons,omitempty"`
	OrganicWasteTons      *float64 `json:"organic_waste_tons,omitempty"`
	DominantType          string   `json:"dominant_type,omitempty"`
}

// sludgeDataset is the on-disk structure of the sludge composition table.
type sludgeDataset struct {
	Dataset    string       `json:"dataset"`
	Source     string       `json:"source"`
	Updated    string       `json:"updated"`
	Components []sludgeItem `json:"components"`
}

// sludgeItem is one composition row as stored on disk.
type sludgeItem struct {
	Component     string   `json:"component"`
	MassFraction  *float64 `json:"mass_fraction"`
	BiocrudeYield *float64 `json:"biocrude_yield"`
}
