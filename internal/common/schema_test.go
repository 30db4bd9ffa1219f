package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateJSONAgainstSchema(t *testing.T) {
	schema := map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"required":             []string{"total"},
		"properties": map[string]any{
			"total": map[string]any{"type": []string{"string", "null"}, "pattern": `^\d+$`},
		},
	}

	require.NoError(t, ValidateJSONAgainstSchema(schema, []byte(`{"total":"12"}`)))
	require.NoError(t, ValidateJSONAgainstSchema(schema, []byte(`{"total":null}`)))

	err := ValidateJSONAgainstSchema(schema, []byte(`{"total":"x"}`))
	require.Error(t, err)
	assert.True(t, IsValidationError(err))

	assert.Error(t, ValidateJSONAgainstSchema(schema, []byte(`{}`)))
	assert.Error(t, ValidateJSONAgainstSchema(schema, []byte(`{"total":"1","extra":1}`)))
	assert.Error(t, ValidateJSONAgainstSchema(schema, []byte(`not json`)))
}

func TestCompileSchemaRejectsInvalidSchema(t *testing.T) {
	_, err := CompileSchema("bad.json", map[string]any{"type": 12})
	assert.Error(t, err)
}
