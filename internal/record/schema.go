package record

import (
	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/joseph-ayodele/payslips-extractor/internal/common"
	"github.com/joseph-ayodele/payslips-extractor/internal/patterns"
)

// BuildRecordJSONSchema returns the schema every written record must satisfy:
// all table fields present, each a string or null, nothing else.
func BuildRecordJSONSchema(table *patterns.Table) map[string]any {
	props := make(map[string]any, len(table.Fields))
	for _, e := range table.Fields {
		switch e.Kind {
		case patterns.KindAmount:
			props[e.Name] = decimalProp()
		default:
			props[e.Name] = map[string]any{"type": []string{"string", "null"}, "minLength": 1}
		}
	}
	return map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties":           props,
		"required":             table.FieldNames(),
	}
}

func decimalProp() map[string]any {
	return map[string]any{
		"type":    []string{"string", "null"},
		"pattern": `^-?\d+(\.\d+)?$`,
	}
}

// SchemaValidator checks records against the compiled record schema.
type SchemaValidator struct {
	schema *jsonschema.Schema
}

func NewSchemaValidator(table *patterns.Table) (*SchemaValidator, error) {
	s, err := common.CompileSchema("record.json", BuildRecordJSONSchema(table))
	if err != nil {
		return nil, common.NewConfigError("record schema", err)
	}
	return &SchemaValidator{schema: s}, nil
}

// Validate returns an error wrapping common.ErrValidation when r does not conform.
func (v *SchemaValidator) Validate(r *Record) error {
	data, err := r.MarshalJSON()
	if err != nil {
		return err
	}
	return common.ValidateJSON(v.schema, data)
}
