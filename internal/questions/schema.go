package questions

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

const bankSchemaURL = "schema://question-bank.json"

// bankSchemaDef describes a question bank file. Either correct_answer or
// correct_index must identify the right option.
var bankSchemaDef = map[string]any{
	"type":     "object",
	"required": []any{"questions"},
	"properties": map[string]any{
		"questions": map[string]any{
			"type": "array",
			"items": map[string]any{
				"type":     "object",
				"required": []any{"question", "options"},
				"properties": map[string]any{
					"id":       map[string]any{"type": "string"},
					"question": map[string]any{"type": "string", "minLength": 1},
					"options": map[string]any{
						"type":     "array",
						"minItems": MinOptions,
						"maxItems": MaxOptions,
						"items":    map[string]any{"type": "string", "minLength": 1},
					},
					"correct_answer": map[string]any{"type": "string"},
					"correct_index":  map[string]any{"type": "integer", "minimum": 0},
					"difficulty": map[string]any{
						"type": "string",
						"enum": []any{"easy", "medium", "hard"},
					},
					"explanation": map[string]any{"type": "string"},
				},
				"anyOf": []any{
					map[string]any{"required": []any{"correct_answer"}},
					map[string]any{"required": []any{"correct_index"}},
				},
			},
		},
	},
}

var (
	bankSchemaOnce     sync.Once
	bankSchemaCompiled *jsonschema.Schema
	bankSchemaErr      error
)

func compiledBankSchema() (*jsonschema.Schema, error) {
	bankSchemaOnce.Do(func() {
		// Round-trip through JSON so the compiler sees plain decoded values.
		b, err := json.Marshal(bankSchemaDef)
		if err != nil {
			bankSchemaErr = fmt.Errorf("marshal bank schema: %w", err)
			return
		}
		var doc any
		if err := json.Unmarshal(b, &doc); err != nil {
			bankSchemaErr = fmt.Errorf("parse bank schema: %w", err)
			return
		}

		c := jsonschema.NewCompiler()
		if err := c.AddResource(bankSchemaURL, doc); err != nil {
			bankSchemaErr = fmt.Errorf("add bank schema: %w", err)
			return
		}
		bankSchemaCompiled, bankSchemaErr = c.Compile(bankSchemaURL)
	})
	return bankSchemaCompiled, bankSchemaErr
}

// validateBankJSON checks raw bank file content against the bank schema.
func validateBankJSON(raw []byte) error {
	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}
	sch, err := compiledBankSchema()
	if err != nil {
		return err
	}
	if err := sch.Validate(doc); err != nil {
		return fmt.Errorf("schema validation failed: %w", err)
	}
	return nil
}
