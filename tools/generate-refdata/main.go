// Package main regenerates the bundled county reference datasets from the
// biomass survey CSVs kept alongside this tool.
//
// The survey rows pass through verbatim: numeric tokens are validated but
// written to the JSON files unchanged, so regeneration never introduces
// floating-point formatting drift.
//
// Usage:
//
//	go run ./tools/generate-refdata [--counties FILE] [--blend FILE] [--out-dir DIR]
//
// Flags:
//
//	--counties  County biomass survey CSV (default: ./tools/generate-refdata/county_biomass.csv)
//	--blend     Sludge composition CSV (default: ./tools/generate-refdata/sludge_blend.csv)
//	--out-dir   Output directory (default: ./internal/refdata/data)
//	--updated   Dataset revision stamp (default: current year-month)
//	--validate  Re-parse each generated file before writing (default: true)
package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"github.com/wasteworks/wte-api/internal/pathway"
	"github.com/wasteworks/wte-api/internal/refdata"
)

// expectedCounties is the number of rows the survey must carry. New Jersey
// has 21 counties; fewer means the export is truncated.
const expectedCounties = 21

// Dataset provenance lines, surfaced verbatim by the /readyz endpoint.
const (
	sourceFermentation = "Rutgers EcoComplex biomass energy potential inventory, lignocellulosic residues"
	sourceHTL          = "Rutgers EcoComplex biomass energy potential inventory, wastewater treatment sludge"
	sourceCombustion   = "NJDEP solid waste characterization, combustible fraction by county"
	sourceDigestion    = "Rutgers EcoComplex biomass energy potential inventory, food waste and manure"
	sourceSludgeBlend  = "PNNL hydrothermal liquefaction sludge characterization, blended primary/secondary"
)

// countyColumns is the required header of the county survey CSV, in order.
var countyColumns = []string{
	"county",
	"lignocellulose_dry_tons",
	"sludge_dry_tons",
	"waste_tons",
	"dominant_type",
	"organic_waste_tons",
}

// countyRow holds one survey row. Numeric fields keep the raw CSV token so
// output formatting matches the source exactly.
type countyRow struct {
	County           string
	Lignocellulose   string
	SludgeDryTons    string
	WasteTons        string
	DominantType     string
	OrganicWasteTons string
}

// blendRow holds one sludge component with verbatim numeric tokens.
type blendRow struct {
	Component     string
	MassFraction  string
	BiocrudeYield string
}

func main() {
	countiesPath := flag.String("counties", "./tools/generate-refdata/county_biomass.csv", "County biomass survey CSV")
	blendPath := flag.String("blend", "./tools/generate-refdata/sludge_blend.csv", "Sludge composition CSV")
	outDir := flag.String("out-dir", "./internal/refdata/data", "Output directory for the dataset files")
	updated := flag.String("updated", "", "Dataset revision stamp (YYYY-MM); defaults to the current month")
	validate := flag.Bool("validate", true, "Re-parse each generated file before writing")
	flag.Parse()

	if *updated == "" {
		*updated = time.Now().Format("2006-01")
	}

	rows, err := readCountyRows(*countiesPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading county survey: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Read %d county rows from %s\n", len(rows), *countiesPath)

	blend, err := readBlendRows(*blendPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading sludge composition: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Read %d sludge components from %s\n", len(blend), *blendPath)

	if err := os.MkdirAll(*outDir, 0755); err != nil {
		fmt.Fprintf(os.Stderr, "Error creating output directory: %v\n", err)
		os.Exit(1)
	}

	datasets := []struct {
		file   string
		name   string
		source string
		line   func(r countyRow) string
	}{
		{
			file:   "fermentation_counties.json",
			name:   "fermentation",
			source: sourceFermentation,
			line: func(r countyRow) string {
				return fmt.Sprintf(`{"county": %s, "lignocellulose_dry_tons": %s}`, jsonString(r.County), r.Lignocellulose)
			},
		},
		{
			file:   "htl_counties.json",
			name:   "htl",
			source: sourceHTL,
			line: func(r countyRow) string {
				return fmt.Sprintf(`{"county": %s, "sludge_dry_tons": %s}`, jsonString(r.County), r.SludgeDryTons)
			},
		},
		{
			file:   "combustion_counties.json",
			name:   "combustion",
			source: sourceCombustion,
			line: func(r countyRow) string {
				return fmt.Sprintf(`{"county": %s, "waste_tons": %s, "dominant_type": %s}`,
					jsonString(r.County), r.WasteTons, jsonString(r.DominantType))
			},
		},
		{
			file:   "digestion_counties.json",
			name:   "digestion",
			source: sourceDigestion,
			line: func(r countyRow) string {
				return fmt.Sprintf(`{"county": %s, "organic_waste_tons": %s}`, jsonString(r.County), r.OrganicWasteTons)
			},
		},
	}

	for _, ds := range datasets {
		lines := make([]string, 0, len(rows))
		for _, r := range rows {
			lines = append(lines, ds.line(r))
		}
		content := buildDatasetFile(ds.name, ds.source, *updated, "counties", lines)

		if *validate {
			if err := validateDataset(content, "counties", len(rows)); err != nil {
				fmt.Fprintf(os.Stderr, "Validation error for %s: %v\n", ds.file, err)
				os.Exit(1)
			}
		}

		outPath := filepath.Join(*outDir, ds.file)
		if err := os.WriteFile(outPath, content, 0644); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing %s: %v\n", outPath, err)
			os.Exit(1)
		}
		fmt.Printf("Wrote %s (%d counties)\n", outPath, len(rows))
	}

	blendLines := make([]string, 0, len(blend))
	for _, b := range blend {
		blendLines = append(blendLines, fmt.Sprintf(`{"component": %s, "mass_fraction": %s, "biocrude_yield": %s}`,
			jsonString(b.Component), b.MassFraction, b.BiocrudeYield))
	}
	content := buildDatasetFile("sludge_blend", sourceSludgeBlend, *updated, "components", blendLines)

	if *validate {
		if err := validateDataset(content, "components", len(blend)); err != nil {
			fmt.Fprintf(os.Stderr, "Validation error for sludge_blend.json: %v\n", err)
			os.Exit(1)
		}
	}

	outPath := filepath.Join(*outDir, "sludge_blend.json")
	if err := os.WriteFile(outPath, content, 0644); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing %s: %v\n", outPath, err)
		os.Exit(1)
	}
	fmt.Printf("Wrote %s (%d components)\n", outPath, len(blend))

	fmt.Println("Reference datasets generated successfully")
}

// readCountyRows parses and validates the county survey CSV. Rows come back
// sorted by county name so regeneration is deterministic regardless of the
// survey's row order.
func readCountyRows(path string) ([]countyRow, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	reader := csv.NewReader(f)
	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}
	if err := checkHeader(header, countyColumns); err != nil {
		return nil, err
	}

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV rows: %w", err)
	}

	seen := make(map[string]bool, len(records))
	rows := make([]countyRow, 0, len(records))
	for i, record := range records {
		line := i + 2 // 1-based, after the header

		county := strings.TrimSpace(record[0])
		if county == "" {
			return nil, fmt.Errorf("line %d: empty county name", line)
		}
		// Lookups are case-insensitive, so names that differ only by case
		// would collide in the store.
		key := strings.ToLower(county)
		if seen[key] {
			return nil, fmt.Errorf("line %d: duplicate county %q", line, county)
		}
		seen[key] = true

		row := countyRow{County: county}
		for _, col := range []struct {
			idx  int
			name string
			dst  *string
		}{
			{1, "lignocellulose_dry_tons", &row.Lignocellulose},
			{2, "sludge_dry_tons", &row.SludgeDryTons},
			{3, "waste_tons", &row.WasteTons},
			{5, "organic_waste_tons", &row.OrganicWasteTons},
		} {
			token := strings.TrimSpace(record[col.idx])
			if err := checkTonnage(token); err != nil {
				return nil, fmt.Errorf("line %d: %s: %w", line, col.name, err)
			}
			*col.dst = token
		}

		wasteType := strings.ToLower(strings.TrimSpace(record[4]))
		if !slices.Contains(pathway.WasteTypes(), wasteType) {
			return nil, fmt.Errorf("line %d: unknown dominant_type %q (known: %s)",
				line, record[4], strings.Join(pathway.WasteTypes(), ", "))
		}
		row.DominantType = wasteType

		rows = append(rows, row)
	}

	if len(rows) < expectedCounties {
		return nil, fmt.Errorf("only %d counties found, expected %d", len(rows), expectedCounties)
	}

	slices.SortFunc(rows, func(a, b countyRow) int {
		return strings.Compare(a.County, b.County)
	})

	return rows, nil
}

// readBlendRows parses and validates the sludge composition CSV. The blend
// must be usable by the liquefaction converter: mass fractions summing to
// one and a positive blended biocrude yield.
func readBlendRows(path string) ([]blendRow, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	reader := csv.NewReader(f)
	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}
	if err := checkHeader(header, []string{"component", "mass_fraction", "biocrude_yield"}); err != nil {
		return nil, err
	}

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV rows: %w", err)
	}

	var (
		rows        []blendRow
		fractionSum float64
		components  []refdata.SludgeComponent
		seen        = make(map[string]bool, len(records))
	)
	for i, record := range records {
		line := i + 2

		component := strings.ToLower(strings.TrimSpace(record[0]))
		if component == "" {
			return nil, fmt.Errorf("line %d: empty component name", line)
		}
		if seen[component] {
			return nil, fmt.Errorf("line %d: duplicate component %q", line, component)
		}
		seen[component] = true

		fraction, err := parseUnitInterval(record[1])
		if err != nil {
			return nil, fmt.Errorf("line %d: mass_fraction: %w", line, err)
		}
		yield, err := parseUnitInterval(record[2])
		if err != nil {
			return nil, fmt.Errorf("line %d: biocrude_yield: %w", line, err)
		}

		fractionSum += fraction
		components = append(components, refdata.SludgeComponent{
			Component:     component,
			MassFraction:  fraction,
			BiocrudeYield: yield,
		})
		rows = append(rows, blendRow{
			Component:     component,
			MassFraction:  strings.TrimSpace(record[1]),
			BiocrudeYield: strings.TrimSpace(record[2]),
		})
	}

	if len(rows) == 0 {
		return nil, fmt.Errorf("no components found")
	}
	if math.Abs(fractionSum-1.0) > 1e-9 {
		return nil, fmt.Errorf("mass fractions sum to %v, expected 1.0", fractionSum)
	}

	blend := refdata.SludgeBlend{Components: components}
	if blend.BlendedYield() <= 0 {
		return nil, fmt.Errorf("blend has no recoverable biocrude yield; the server would refuse to start")
	}

	return rows, nil
}

// checkHeader requires the CSV header to match the expected columns exactly.
func checkHeader(header, expected []string) error {
	if len(header) != len(expected) {
		return fmt.Errorf("CSV has %d columns, expected %d (%s)", len(header), len(expected), strings.Join(expected, ","))
	}
	for i, col := range expected {
		if strings.ToLower(strings.TrimSpace(header[i])) != col {
			return fmt.Errorf("column %d is %q, expected %q", i+1, header[i], col)
		}
	}
	return nil
}

// checkTonnage verifies a tonnage token parses as a finite non-negative number.
func checkTonnage(token string) error {
	v, err := strconv.ParseFloat(token, 64)
	if err != nil {
		return fmt.Errorf("invalid number %q", token)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return fmt.Errorf("tonnage %q out of range", token)
	}
	return nil
}

// parseUnitInterval parses a token that must land in [0, 1].
func parseUnitInterval(token string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(token), 64)
	if err != nil {
		return 0, fmt.Errorf("invalid number %q", token)
	}
	if math.IsNaN(v) || v < 0 || v > 1 {
		return 0, fmt.Errorf("value %q outside [0, 1]", token)
	}
	return v, nil
}

// buildDatasetFile assembles a dataset file in the bundled layout: one
// entry object per line under the given collection key.
func buildDatasetFile(dataset, source, updated, key string, lines []string) []byte {
	var b strings.Builder
	b.WriteString("{\n")
	fmt.Fprintf(&b, "  \"dataset\": %s,\n", jsonString(dataset))
	fmt.Fprintf(&b, "  \"source\": %s,\n", jsonString(source))
	fmt.Fprintf(&b, "  \"updated\": %s,\n", jsonString(updated))
	fmt.Fprintf(&b, "  %s: [\n", jsonString(key))
	for i, line := range lines {
		b.WriteString("    ")
		b.WriteString(line)
		if i < len(lines)-1 {
			b.WriteString(",")
		}
		b.WriteString("\n")
	}
	b.WriteString("  ]\n}\n")
	return []byte(b.String())
}

// validateDataset re-parses generated content and checks the entry count.
func validateDataset(content []byte, key string, want int) error {
	var parsed map[string]json.RawMessage
	if err := json.Unmarshal(content, &parsed); err != nil {
		return fmt.Errorf("generated file is not valid JSON: %w", err)
	}
	var entries []json.RawMessage
	if err := json.Unmarshal(parsed[key], &entries); err != nil {
		return fmt.Errorf("generated %q array is malformed: %w", key, err)
	}
	if len(entries) != want {
		return fmt.Errorf("generated file has %d entries, expected %d", len(entries), want)
	}
	return nil
}

// jsonString renders s as a JSON string literal.
func jsonString(s string) string {
	encoded, err := json.Marshal(s)
	if err != nil {
		// Strings cannot fail to marshal; keep the tool honest anyway.
		panic(err)
	}
	return string(encoded)
}
