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
	"required": ["year", "symbol"],
	"properties": {
		"year": {"type": "integer"},
		"symbol": {"type": "string"}
	}
}`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func validDocument() string {
	return `{
		"source": "http://www.un.org/en/sc/documents/resolutions/",
		"backend": "htmltree",
		"scraped_at": "2026-10-16T08:30:00Z",
		"count": 2,
		"resolutions": [
			{"year": 2020, "symbol": "S/RES/2510 (2020)", "title": "The situation in Libya", "url": "http://www.un.org/en/ga/search/view_doc.asp?symbol=S/RES/2510(2020)"},
			{"year": 2020, "symbol": "S/RES/2512 (2020)", "title": "Cyprus", "url": "http://www.un.org/en/sc/documents/resolutions/view_doc.asp?symbol=S/RES/2512(2020)"}
		]
	}`
}

func TestValidateJSON_ValidJSON(t *testing.T) {
	schemaPath := writeFile(t, "schema.json", testSchema)
	jsonPath := writeFile(t, "doc.json", `{"year": 1959, "symbol": "S/RES/132 (1959)"}`)

	assert.NoError(t, ValidateJSON(schemaPath, jsonPath))
}

func TestValidateJSON_InvalidJSON_MissingField(t *testing.T) {
	schemaPath := writeFile(t, "schema.json", testSchema)
	jsonPath := writeFile(t, "doc.json", `{"year": 1959}`)

	err := ValidateJSON(schemaPath, jsonPath)
	require.Error(t, err)

	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	require.Len(t, validationErr.Errors, 1)
	assert.Contains(t, validationErr.Errors[0].Message, "symbol")
}

func TestValidateJSON_InvalidJSON_WrongType(t *testing.T) {
	schemaPath := writeFile(t, "schema.json", testSchema)
	jsonPath := writeFile(t, "doc.json", `{"year": "1959", "symbol": "S/RES/132 (1959)"}`)

	err := ValidateJSON(schemaPath, jsonPath)

	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "year", validationErr.Errors[0].Field)
}

func TestValidateJSON_NonExistentSchema(t *testing.T) {
	jsonPath := writeFile(t, "doc.json", `{}`)

	err := ValidateJSON(filepath.Join(t.TempDir(), "nonexistent_schema.json"), jsonPath)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestValidateJSON_NonExistentJSON(t *testing.T) {
	schemaPath := writeFile(t, "schema.json", testSchema)

	err := ValidateJSON(schemaPath, filepath.Join(t.TempDir(), "nonexistent_json.json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestValidateJSON_MalformedJSON(t *testing.T) {
	schemaPath := writeFile(t, "schema.json", testSchema)
	jsonPath := writeFile(t, "malformed.json", "{ invalid json }")

	err := ValidateJSON(schemaPath, jsonPath)

	var loadErr *SchemaLoadError
	require.ErrorAs(t, err, &loadErr)
}

func TestValidateJSONString_Valid(t *testing.T) {
	assert.NoError(t, ValidateJSONString(testSchema, `{"year": 2020, "symbol": "x"}`))
}

func TestValidateJSONString_Invalid(t *testing.T) {
	err := ValidateJSONString(testSchema, `{"symbol": 5}`)

	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Len(t, validationErr.Errors, 2)
}

func TestValidationError_Error(t *testing.T) {
	err := &ValidationError{Errors: []FieldError{
		{Field: "(root)", Message: "year is required"},
		{Field: "resolutions.0.url", Message: "Does not match format 'uri'"},
	}}

	assert.Equal(t, "validation failed:\n  1. (root): year is required\n  2. resolutions.0.url: Does not match format 'uri'\n", err.Error())
}

func TestValidateResolutionSet_Valid(t *testing.T) {
	assert.NoError(t, ValidateResolutionSet([]byte(validDocument())))
}

func TestValidateResolutionSet_NonPositiveYearRejected(t *testing.T) {
	doc := `{
		"source": "http://www.un.org/en/sc/documents/resolutions/",
		"backend": "goquery",
		"scraped_at": "2026-10-16T08:30:00Z",
		"count": 1,
		"resolutions": [{"year": 0, "symbol": "S/RES/1", "title": "t", "url": "http://x/"}]
	}`

	err := ValidateResolutionSet([]byte(doc))

	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Contains(t, err.Error(), "resolutions.0.year")
}

func TestValidateResolutionSetFile(t *testing.T) {
	path := writeFile(t, "out.json", validDocument())
	assert.NoError(t, ValidateResolutionSetFile(path))

	err := ValidateResolutionSetFile(filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read")
}
