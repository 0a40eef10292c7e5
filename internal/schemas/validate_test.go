package schemas

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSchema = `{
	"$schema": "http://json-schema.org/draft-07/schema#",
	"type": "object",
	"required": ["name", "weight"],
	"properties": {
		"name": {"type": "string", "minLength": 1},
		"weight": {"type": "number", "minimum": 0}
	}
}`

func writeTestFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestValidateJSON_Valid(t *testing.T) {
	schemaPath := writeTestFile(t, "schema.json", testSchema)
	jsonPath := writeTestFile(t, "doc.json", `{"name": "district", "weight": 0.8}`)

	assert.NoError(t, ValidateJSON(schemaPath, jsonPath))
}

func TestValidateJSON_MissingField(t *testing.T) {
	schemaPath := writeTestFile(t, "schema.json", testSchema)
	jsonPath := writeTestFile(t, "doc.json", `{"name": "district"}`)

	err := ValidateJSON(schemaPath, jsonPath)
	require.Error(t, err)

	validationErr, ok := err.(*ValidationError)
	require.True(t, ok, "error should be ValidationError type")
	assert.Greater(t, len(validationErr.Errors), 0)
}

func TestValidateJSON_WrongType(t *testing.T) {
	schemaPath := writeTestFile(t, "schema.json", testSchema)
	jsonPath := writeTestFile(t, "doc.json", `{"name": "district", "weight": "heavy"}`)

	err := ValidateJSON(schemaPath, jsonPath)
	require.Error(t, err)

	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "weight", validationErr.Errors[0].Field)
}

func TestValidateJSON_NonExistentSchema(t *testing.T) {
	jsonPath := writeTestFile(t, "doc.json", `{}`)

	err := ValidateJSON(filepath.Join(t.TempDir(), "missing.json"), jsonPath)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestValidateJSON_NonExistentDocument(t *testing.T) {
	schemaPath := writeTestFile(t, "schema.json", testSchema)

	err := ValidateJSON(schemaPath, filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestValidateJSONString_Valid(t *testing.T) {
	err := ValidateJSONString(testSchema, `{"name": "district", "weight": 0.8}`)
	assert.NoError(t, err)
}

func TestValidateJSONString_Invalid(t *testing.T) {
	err := ValidateJSONString(testSchema, `{"weight": -1}`)
	require.Error(t, err)

	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Len(t, validationErr.Errors, 2)
}

func TestValidateJSONString_MalformedSchema(t *testing.T) {
	err := ValidateJSONString(`{not a schema`, `{}`)
	require.Error(t, err)

	var loadErr *SchemaLoadError
	assert.ErrorAs(t, err, &loadErr)
}

func TestResolveSchemaPath_Found(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "x.schema.json")
	require.NoError(t, os.WriteFile(path, []byte(`{}`), 0644))

	resolved := ResolveSchemaPath(path)
	assert.Equal(t, path, resolved)
}

func TestResolveSchemaPath_NotFound(t *testing.T) {
	assert.Empty(t, ResolveSchemaPath(filepath.Join(t.TempDir(), "nope.json")))
}
