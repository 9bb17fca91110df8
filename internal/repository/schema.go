package repository

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// historySchema constrains the persisted history array. Content that fails
// validation is treated as a corrupt resource and replaced by an empty
// history on load.
func historySchema() map[string]any {
	// "results" is not required: legacy entries may lack it entirely, and the
	// assignee query is what filters those out.
	entry := map[string]any{
		"type":     "object",
		"required": []string{"timestamp", "filename", "assigned_to"},
		"properties": map[string]any{
			"timestamp":   map[string]any{"type": "string"},
			"filename":    map[string]any{"type": "string"},
			"assigned_to": map[string]any{"type": "string"},
			"report_date": map[string]any{"type": "string"},
			"results": map[string]any{
				"type":                 "object",
				"additionalProperties": map[string]any{"type": "number"},
			},
		},
	}
	return map[string]any{"type": "array", "items": entry}
}

func remindersSchema() map[string]any {
	item := map[string]any{
		"type":     "object",
		"required": []string{"title", "type", "date"},
		"properties": map[string]any{
			"title": map[string]any{"type": "string"},
			"type":  map[string]any{"type": "string"},
			"date":  map[string]any{"type": "string", "pattern": `^\d{4}-\d{2}-\d{2}$`},
		},
	}
	return map[string]any{"type": "array", "items": item}
}

// ValidateJSONAgainstSchema validates "data" against "schemaMap".
func ValidateJSONAgainstSchema(schemaMap map[string]any, data []byte) error {
	b, err := json.Marshal(schemaMap)
	if err != nil {
		return fmt.Errorf("marshal schema: %w", err)
	}
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("schema.json", bytes.NewReader(b)); err != nil {
		return fmt.Errorf("add schema: %w", err)
	}
	schema, err := compiler.Compile("schema.json")
	if err != nil {
		return fmt.Errorf("compile schema: %w", err)
	}
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("unmarshal data: %w", err)
	}
	if err := schema.Validate(v); err != nil {
		return fmt.Errorf("json does not match schema: %w", err)
	}
	return nil
}
