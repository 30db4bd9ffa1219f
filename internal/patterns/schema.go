package patterns

import (
	"github.com/joseph-ayodele/payslips-extractor/constants"
)

// BuildTableJSONSchema returns the JSON schema a pattern table document must satisfy.
func BuildTableJSONSchema() map[string]any {
	formats := constants.AsStringSlice()

	markers := map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties": map[string]any{
			"text_markers": stringList(),
			"path_markers": stringList(),
		},
	}

	field := map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"required":             []string{"name", "selection", "patterns"},
		"properties": map[string]any{
			"name": map[string]any{"type": "string", "minLength": 1},
			"kind": map[string]any{
				"type": "string",
				"enum": []string{string(KindText), string(KindAmount), string(KindDate), string(KindName)},
			},
			"selection": map[string]any{
				"type": "string",
				"enum": []string{string(FirstMatch), string(LastMatch), string(MaxNumeric)},
			},
			"patterns": map[string]any{
				"type":                 "object",
				"propertyNames":        map[string]any{"enum": formats},
				"additionalProperties": stringList(),
			},
			"fallback":     stringList(),
			"use_filename": map[string]any{"type": "boolean"},
			"month_end_of": map[string]any{"type": "string", "minLength": 1},
		},
	}

	return map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"required":             []string{"version", "fields"},
		"properties": map[string]any{
			"version": map[string]any{"type": "integer", "minimum": 1},
			"formats": map[string]any{
				"type":                 "object",
				"propertyNames":        map[string]any{"enum": formats},
				"additionalProperties": markers,
			},
			"fields": map[string]any{
				"type":     "array",
				"minItems": 1,
				"items":    field,
			},
		},
	}
}

func stringList() map[string]any {
	return map[string]any{
		"type":  "array",
		"items": map[string]any{"type": "string", "minLength": 1},
	}
}
