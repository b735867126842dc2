// Package schemas embeds the JSON Schema documents used for spec validation.
package schemas

import _ "embed"

// EvalSchemaJSON is the JSON Schema for eval.yaml files.
//
//go:embed eval.schema.json
var EvalSchemaJSON string
