// Package refdata loads the bundled county feedstock tables and the HTL
// sludge composition table, and serves case-insensitive county lookups.
// All tables are read-only after load and safe for concurrent access.
package refdata

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
	"github.com/santhosh-tekuri/jsonschema/v6"
	"gopkg.in/yaml.v3"

	"github.com/wasteworks/wte-api/internal/units"
)

// constError is an immutable error type for sentinel errors.
type constError string

func (e constError) Error() string { return string(e) }

// ErrInvalidDataset indicates a reference table that is missing, malformed,
// or inconsistent. Any load error wraps it; the process must not start.
var ErrInvalidDataset = constError("invalid reference dataset")

// slowLookupThreshold is the elapsed time above which a lookup logs a warning.
const slowLookupThreshold = 50 * time.Millisecond

// blendSumTolerance bounds how far sludge mass fractions may drift from 1.
const blendSumTolerance = 1e-6

// Store implements ReferenceStore with embedded JSON data
type Store struct {
	logger  zerolog.Logger
	dataDir string // optional override directory, empty for embedded only

	// Thread-safe initialization
	once sync.Once
	err  error

	// In-memory county indexes keyed by lowercased county name
	fermentationIndex map[string]FermentationRecord
	htlIndex          map[string]HTLRecord
	combustionIndex   map[string]CombustionRecord
	digestionIndex    map[string]DigestionRecord

	sludgeBlend SludgeBlend
	datasets    []DatasetInfo
}

// NewStore creates a Store backed by the embedded reference tables.
// The provided logger is attached to the store and used for slow-lookup
// warnings and load diagnostics. It returns an initialized *Store or a
// non-nil error wrapping ErrInvalidDataset if any table fails to load.
func NewStore(logger zerolog.Logger) (*Store, error) {
	return NewStoreWithOverrides("", logger)
}

// NewStoreWithOverrides creates a Store that prefers per-table override
// files from dataDir (<table>.json, <table>.yaml or <table>.yml) over the
// embedded copies. An empty dataDir behaves like NewStore. Override files
// are validated against the same schemas as the embedded data.
func NewStoreWithOverrides(dataDir string, logger zerolog.Logger) (*Store, error) {
	s := &Store{
		logger:  logger,
		dataDir: dataDir,
	}
	if err := s.init(); err != nil {
		return nil, err
	}
	return s, nil
}

// init parses and indexes all reference tables exactly once
func (s *Store) init() error {
	s.once.Do(func() {
		countySchema, err := compileSchema("county_dataset.schema.json", rawCountySchemaJSON)
		if err != nil {
			s.err = err
			return
		}
		sludgeSchema, err := compileSchema("sludge_blend.schema.json", rawSludgeSchemaJSON)
		if err != nil {
			s.err = err
			return
		}

		// --- Fermentation: lignocellulosic residues ---
		ferm, fermOverride, err := s.loadCountyTable("fermentation", "fermentation_counties", rawFermentationJSON, countySchema)
		if err != nil {
			s.err = err
			return
		}
		s.fermentationIndex = make(map[string]FermentationRecord, len(ferm.Counties))
		for _, item := range ferm.Counties {
			if item.LignocelluloseDryTons == nil {
				s.err = fmt.Errorf("%w: fermentation: county %q missing lignocellulose_dry_tons", ErrInvalidDataset, item.County)
				return
			}
			key := countyKey(item.County)
			if _, exists := s.fermentationIndex[key]; exists {
				s.err = fmt.Errorf("%w: fermentation: duplicate county %q", ErrInvalidDataset, item.County)
				return
			}
			kgHr, err := units.RateToKgPerHour(*item.LignocelluloseDryTons, "tons")
			if err != nil {
				s.err = fmt.Errorf("%w: fermentation: county %q: %v", ErrInvalidDataset, item.County, err)
				return
			}
			s.fermentationIndex[key] = FermentationRecord{
				County:                item.County,
				LignocelluloseDryTons: *item.LignocelluloseDryTons,
				KgPerHour:             kgHr,
			}
		}
		s.datasets = append(s.datasets, datasetInfo(ferm, len(ferm.Counties), fermOverride))

		// --- HTL: wastewater sludge ---
		htl, htlOverride, err := s.loadCountyTable("htl", "htl_counties", rawHTLJSON, countySchema)
		if err != nil {
			s.err = err
			return
		}
		s.htlIndex = make(map[string]HTLRecord, len(htl.Counties))
		for _, item := range htl.Counties {
			if item.SludgeDryTons == nil {
				s.err = fmt.Errorf("%w: htl: county %q missing sludge_dry_tons", ErrInvalidDataset, item.County)
				return
			}
			key := countyKey(item.County)
			if _, exists := s.htlIndex[key]; exists {
				s.err = fmt.Errorf("%w: htl: duplicate county %q", ErrInvalidDataset, item.County)
				return
			}
			kgHr, err := units.RateToKgPerHour(*item.SludgeDryTons, "tons")
			if err != nil {
				s.err = fmt.Errorf("%w: htl: county %q: %v", ErrInvalidDataset, item.County, err)
				return
			}
			s.htlIndex[key] = HTLRecord{
				County:        item.County,
				SludgeDryTons: *item.SludgeDryTons,
				KgPerHour:     kgHr,
			}
		}
		s.datasets = append(s.datasets, datasetInfo(htl, len(htl.Counties), htlOverride))

		// --- Combustion: combustible solid waste ---
		comb, combOverride, err := s.loadCountyTable("combustion", "combustion_counties", rawCombustionJSON, countySchema)
		if err != nil {
			s.err = err
			return
		}
		s.combustionIndex = make(map[string]CombustionRecord, len(comb.Counties))
		for _, item := range comb.Counties {
			if item.WasteTons == nil {
				s.err = fmt.Errorf("%w: combustion: county %q missing waste_tons", ErrInvalidDataset, item.County)
				return
			}
			if item.DominantType == "" {
				s.err = fmt.Errorf("%w: combustion: county %q missing dominant_type", ErrInvalidDataset, item.County)
				return
			}
			key := countyKey(item.County)
			if _, exists := s.combustionIndex[key]; exists {
				s.err = fmt.Errorf("%w: combustion: duplicate county %q", ErrInvalidDataset, item.County)
				return
			}
			kgHr, err := units.RateToKgPerHour(*item.WasteTons, "tons")
			if err != nil {
				s.err = fmt.Errorf("%w: combustion: county %q: %v", ErrInvalidDataset, item.County, err)
				return
			}
			s.combustionIndex[key] = CombustionRecord{
				County:       item.County,
				WasteTons:    *item.WasteTons,
				KgPerHour:    kgHr,
				DominantType: item.DominantType,
			}
		}
		s.datasets = append(s.datasets, datasetInfo(comb, len(comb.Counties), combOverride))

		// --- Digestion: food waste and manure ---
		dig, digOverride, err := s.loadCountyTable("digestion", "digestion_counties", rawDigestionJSON, countySchema)
		if err != nil {
			s.err = err
			return
		}
		s.digestionIndex = make(map[string]DigestionRecord, len(dig.Counties))
		for _, item := range dig.Counties {
			if item.OrganicWasteTons == nil {
				s.err = fmt.Errorf("%w: digestion: county %q missing organic_waste_tons", ErrInvalidDataset, item.County)
				return
			}
			key := countyKey(item.County)
			if _, exists := s.digestionIndex[key]; exists {
				s.err = fmt.Errorf("%w: digestion: duplicate county %q", ErrInvalidDataset, item.County)
				return
			}
			kgHr, err := units.RateToKgPerHour(*item.OrganicWasteTons, "tons")
			if err != nil {
				s.err = fmt.Errorf("%w: digestion: county %q: %v", ErrInvalidDataset, item.County, err)
				return
			}
			s.digestionIndex[key] = DigestionRecord{
				County:           item.County,
				OrganicWasteTons: *item.OrganicWasteTons,
				KgPerHour:        kgHr,
			}
		}
		s.datasets = append(s.datasets, datasetInfo(dig, len(dig.Counties), digOverride))

		// --- Sludge composition table ---
		blendRaw, blendOverride, err := s.readTable("sludge_blend", rawSludgeBlendJSON)
		if err != nil {
			s.err = err
			return
		}
		if err := validateTable(sludgeSchema, blendRaw); err != nil {
			s.err = fmt.Errorf("%w: sludge_blend: %v", ErrInvalidDataset, err)
			return
		}
		var blend sludgeDataset
		if err := json.Unmarshal(blendRaw, &blend); err != nil {
			s.err = fmt.Errorf("failed to parse sludge_blend data: %w", err)
			return
		}
		if blend.Dataset != "sludge_blend" {
			s.err = fmt.Errorf("%w: sludge_blend: file declares dataset %q", ErrInvalidDataset, blend.Dataset)
			return
		}
		var fractionSum float64
		for _, item := range blend.Components {
			if item.MassFraction == nil || item.BiocrudeYield == nil {
				s.err = fmt.Errorf("%w: sludge_blend: component %q missing fields", ErrInvalidDataset, item.Component)
				return
			}
			fractionSum += *item.MassFraction
			s.sludgeBlend.Components = append(s.sludgeBlend.Components, SludgeComponent{
				Component:     item.Component,
				MassFraction:  *item.MassFraction,
				BiocrudeYield: *item.BiocrudeYield,
			})
		}
		if math.Abs(fractionSum-1.0) > blendSumTolerance {
			s.err = fmt.Errorf("%w: sludge_blend: mass fractions sum to %g, want 1", ErrInvalidDataset, fractionSum)
			return
		}
		s.datasets = append(s.datasets, DatasetInfo{
			Dataset:  blend.Dataset,
			Source:   blend.Source,
			Updated:  blend.Updated,
			Override: blendOverride,
		})

		s.logger.Info().
			Int("fermentation_counties", len(s.fermentationIndex)).
			Int("htl_counties", len(s.htlIndex)).
			Int("combustion_counties", len(s.combustionIndex)).
			Int("digestion_counties", len(s.digestionIndex)).
			Float64("blended_biocrude_yield", s.sludgeBlend.BlendedYield()).
			Msg("reference data loaded")
	})
	return s.err
}

// loadCountyTable reads, validates and decodes one county table.
// table is the logical dataset name the file header must declare; file is
// the override file stem looked up in the data directory.
func (s *Store) loadCountyTable(table, file string, embedded []byte, schema *jsonschema.Schema) (countyDataset, bool, error) {
	raw, override, err := s.readTable(file, embedded)
	if err != nil {
		return countyDataset{}, false, err
	}
	if err := validateTable(schema, raw); err != nil {
		return countyDataset{}, false, fmt.Errorf("%w: %s: %v", ErrInvalidDataset, table, err)
	}

	var ds countyDataset
	if err := json.Unmarshal(raw, &ds); err != nil {
		return countyDataset{}, false, fmt.Errorf("failed to parse %s data: %w", table, err)
	}
	if ds.Dataset != table {
		return countyDataset{}, false, fmt.Errorf("%w: %s: file declares dataset %q", ErrInvalidDataset, table, ds.Dataset)
	}
	return ds, override, nil
}

// readTable returns the raw JSON for a table, preferring an override file in
// the data directory. YAML overrides are converted to JSON so one decode and
// validation path serves both formats.
func (s *Store) readTable(file string, embedded []byte) ([]byte, bool, error) {
	if s.dataDir == "" {
		return embedded, false, nil
	}

	for _, ext := range []string{".json", ".yaml", ".yml"} {
		path := filepath.Join(s.dataDir, file+ext)
		raw, err := os.ReadFile(path)
		if os.IsNotExist(err) {
			continue
		}
		if err != nil {
			return nil, false, fmt.Errorf("%w: %s: %v", ErrInvalidDataset, path, err)
		}
		if ext != ".json" {
			raw, err = yamlToJSON(raw)
			if err != nil {
				return nil, false, fmt.Errorf("%w: %s: %v", ErrInvalidDataset, path, err)
			}
		}
		s.logger.Info().Str("path", path).Msg("using override reference table")
		return raw, true, nil
	}

	return embedded, false, nil
}

// yamlToJSON re-encodes a YAML document as JSON.
func yamlToJSON(raw []byte) ([]byte, error) {
	var doc any
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, err
	}
	return json.Marshal(doc)
}

// countyKey normalizes a county name for index lookups.
func countyKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// datasetInfo builds the summary entry for one loaded county table.
func datasetInfo(ds countyDataset, counties int, override bool) DatasetInfo {
	return DatasetInfo{
		Dataset:  ds.Dataset,
		Source:   ds.Source,
		Updated:  ds.Updated,
		Counties: counties,
		Override: override,
	}
}

// FermentationCounty returns the lignocellulose feedstock record for a county
func (s *Store) FermentationCounty(name string) (FermentationRecord, bool) {
	start := time.Now()
	defer func() {
		elapsed := time.Since(start)
		if elapsed > slowLookupThreshold {
			s.logger.Warn().
				Str("dataset", "fermentation").
				Str("county", name).
				Dur("elapsed", elapsed).
				Msg("reference lookup took too long")
		}
	}()

	if err := s.init(); err != nil {
		return FermentationRecord{}, false
	}

	rec, found := s.fermentationIndex[countyKey(name)]
	return rec, found
}

// HTLCounty returns the wastewater sludge feedstock record for a county
func (s *Store) HTLCounty(name string) (HTLRecord, bool) {
	start := time.Now()
	defer func() {
		elapsed := time.Since(start)
		if elapsed > slowLookupThreshold {
			s.logger.Warn().
				Str("dataset", "htl").
				Str("county", name).
				Dur("elapsed", elapsed).
				Msg("reference lookup took too long")
		}
	}()

	if err := s.init(); err != nil {
		return HTLRecord{}, false
	}

	rec, found := s.htlIndex[countyKey(name)]
	return rec, found
}

// CombustionCounty returns the combustible solid waste record for a county
func (s *Store) CombustionCounty(name string) (CombustionRecord, bool) {
	start := time.Now()
	defer func() {
		elapsed := time.Since(start)
		if elapsed > slowLookupThreshold {
			s.logger.Warn().
				Str("dataset", "combustion").
				Str("county", name).
				Dur("elapsed", elapsed).
				Msg("reference lookup took too long")
		}
	}()

	if err := s.init(); err != nil {
		return CombustionRecord{}, false
	}

	rec, found := s.combustionIndex[countyKey(name)]
	return rec, found
}

// DigestionCounty returns the digestible organics record for a county
func (s *Store) DigestionCounty(name string) (DigestionRecord, bool) {
	start := time.Now()
	defer func() {
		elapsed := time.Since(start)
		if elapsed > slowLookupThreshold {
			s.logger.Warn().
				Str("dataset", "digestion").
				Str("county", name).
				Dur("elapsed", elapsed).
				Msg("reference lookup took too long")
		}
	}()

	if err := s.init(); err != nil {
		return DigestionRecord{}, false
	}

	rec, found := s.digestionIndex[countyKey(name)]
	return rec, found
}

// SludgeBlend returns the sludge composition table. The returned value
// shares the loaded slice; callers must treat it as read-only.
func (s *Store) SludgeBlend() SludgeBlend {
	_ = s.init() // Ensure initialization
	return s.sludgeBlend
}

// Datasets returns one summary per loaded table, in load order.
func (s *Store) Datasets() []DatasetInfo {
	_ = s.init() // Ensure initialization
	out := make([]DatasetInfo, len(s.datasets))
	copy(out, s.datasets)
	return out
}

// CountyNames returns the canonical county names held by one county table,
// sorted alphabetically. Unknown dataset names yield an empty list.
func (s *Store) CountyNames(dataset string) []string {
	if err := s.init(); err != nil {
		return nil
	}

	var names []string
	switch dataset {
	case "fermentation":
		for _, rec := range s.fermentationIndex {
			names = append(names, rec.County)
		}
	case "htl":
		for _, rec := range s.htlIndex {
			names = append(names, rec.County)
		}
	case "combustion":
		for _, rec := range s.combustionIndex {
			names = append(names, rec.County)
		}
	case "digestion":
		for _, rec := range s.digestionIndex {
			names = append(names, rec.County)
		}
	}
	slices.Sort(names)
	return names
}
