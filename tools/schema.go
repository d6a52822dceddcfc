package tools

import (
	"encoding/json"
	"fmt"

	"github.com/invopop/jsonschema"
)

// schemaFor derives a JSON Schema parameter object from a Go argument
// struct. Field names and enum constraints come from struct tags, so the
// wire contract with the reasoning engine lives next to the handler that
// decodes it.
func schemaFor[T any]() map[string]any {
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties: false,
		DoNotReference:            true,
	}

	var v T
	schema := reflector.Reflect(&v)
	schema.Version = ""

	data, err := json.Marshal(schema)
	if err != nil {
		panic(fmt.Sprintf("tools: reflect parameter schema: %v", err))
	}

	var params map[string]any
	if err := json.Unmarshal(data, &params); err != nil {
		panic(fmt.Sprintf("tools: decode parameter schema: %v", err))
	}
	delete(params, "$schema")
	delete(params, "$id")
	return params
}
