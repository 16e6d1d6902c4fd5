// Package schema validates LLM output at the parse boundary.
//
// Every model response that feeds the pipeline is checked against a strict
// JSON schema before decoding. On validation failure the caller treats the
// response as a model error; there is no best-effort field recovery.
package schema

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// ClaimsSchema describes the claim extraction response:
// {"claims": [{"claim_text": "...", "claim_type": "statistic"}, ...]}
var ClaimsSchema = map[string]any{
	"type":                 "object",
	"required":             []any{"claims"},
	"additionalProperties": false,
	"properties": map[string]any{
		"claims": map[string]any{
			"type": "array",
			"items": map[string]any{
				"type":                 "object",
				"required":             []any{"claim_text"},
				"additionalProperties": false,
				"properties": map[string]any{
					"claim_text": map[string]any{"type": "string", "minLength": 1},
					"claim_type": map[string]any{"type": "string"},
				},
			},
		},
	},
}

// VerdictSchema describes the verdict synthesis response:
// {"verdict": "Verified", "justification": "..."}
// The verdict enum is enforced here so an out-of-set label fails validation
// instead of reaching the result table.
var VerdictSchema = map[string]any{
	"type":                 "object",
	"required":             []any{"verdict", "justification"},
	"additionalProperties": false,
	"properties": map[string]any{
		"verdict": map[string]any{
			"type": "string",
			"enum": []any{"Verified", "Inaccurate", "False", "Outdated", "Unverifiable"},
		},
		"justification": map[string]any{"type": "string", "minLength": 1},
	},
}

// Validate validates data against schemaMap.
func Validate(schemaMap map[string]any, data []byte) error {
	b, err := json.Marshal(schemaMap)
	if err != nil {
		return fmt.Errorf("marshal schema: %w", err)
	}
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("schema.json", bytes.NewReader(b)); err != nil {
		return fmt.Errorf("add schema: %w", err)
	}
	compiled, err := compiler.Compile("schema.json")
	if err != nil {
		return fmt.Errorf("compile schema: %w", err)
	}
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("unmarshal data: %w", err)
	}
	if err := compiled.Validate(v); err != nil {
		return fmt.Errorf("json does not match schema: %w", err)
	}
	return nil
}
