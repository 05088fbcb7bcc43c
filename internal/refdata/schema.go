package refdata

import (
	"bytes"
	_ "embed"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// JSON Schemas for the bundled tables. Override files supplied through
// WTE_DATA_DIR are validated against the same schemas before decoding.

//go:embed schema/county_dataset.schema.json
var rawCountySchemaJSON []byte

//go:embed schema/sludge_blend.schema.json
var rawSludgeSchemaJSON []byte

// compileSchema compiles an embedded schema document under the given URL.
func compileSchema(url string, raw []byte) (*jsonschema.Schema, error) {
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("failed to parse schema %s: %w", url, err)
	}

	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(url, doc); err != nil {
		return nil, fmt.Errorf("failed to register schema %s: %w", url, err)
	}

	schema, err := compiler.Compile(url)
	if err != nil {
		return nil, fmt.Errorf("failed to compile schema %s: %w", url, err)
	}
	return schema, nil
}

// validateTable checks raw table JSON against a compiled schema.
func validateTable(schema *jsonschema.Schema, data []byte) error {
	instance, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		return err
	}
	return schema.Validate(instance)
}
