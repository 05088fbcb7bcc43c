package refdata

import _ "embed"

// Bundled reference tables for New Jersey's 21 counties.
// Regenerate with tools/generate-refdata when the upstream inventory changes.

//go:embed data/fermentation_counties.json
var rawFermentationJSON []byte

//go:embed data/htl_counties.json
var rawHTLJSON []byte

//go:embed data/combustion_counties.json
var rawCombustionJSON []byte

//go:embed data/digestion_counties.json
var rawDigestionJSON []byte

//go:embed data/sludge_blend.json
var rawSludgeBlendJSON []byte
