package jsonschema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequiredProperties(t *testing.T) {
	s, err := CompileString(`{"required":["a","b"]}`)
	require.NoError(t, err)
	assert.True(t, s.IsValid(map[string]any{"a": 1, "b": 2, "c": 3}))
	assert.False(t, s.IsValid(map[string]any{"a": 1}))
}

func TestEmptyRequiredNeverFails(t *testing.T) {
	s, err := CompileString(`{"required":[]}`)
	require.NoError(t, err)
	assert.True(t, s.IsValid(map[string]any{}))
}

func TestPropertiesOnlyValidatesPresentKeys(t *testing.T) {
	s, err := CompileString(`{"properties":{"a":{"type":"string"}}}`)
	require.NoError(t, err)
	assert.True(t, s.IsValid(map[string]any{}))
	assert.True(t, s.IsValid(map[string]any{"a": "x"}))
	assert.False(t, s.IsValid(map[string]any{"a": 1}))
}

func TestPatternPropertiesMatchesEveryKey(t *testing.T) {
	s, err := CompileString(`{"patternProperties":{"^S_":{"type":"string"}}}`)
	require.NoError(t, err)
	assert.True(t, s.IsValid(map[string]any{"S_name": "x"}))
	assert.False(t, s.IsValid(map[string]any{"S_name": 1}))
	assert.True(t, s.IsValid(map[string]any{"other": 1}))
}

func TestAdditionalPropertiesExcludesPropertiesAndPatternProperties(t *testing.T) {
	s, err := CompileString(`{
		"properties": {"a": {}},
		"patternProperties": {"^b": {}},
		"additionalProperties": false
	}`)
	require.NoError(t, err)
	assert.True(t, s.IsValid(map[string]any{"a": 1, "bee": 2}))
	assert.False(t, s.IsValid(map[string]any{"z": 1}))
}

func TestPropertyNamesKeyword(t *testing.T) {
	s, err := CompileString(`{"propertyNames":{"maxLength":3}}`)
	require.NoError(t, err)
	assert.True(t, s.IsValid(map[string]any{"abc": 1}))
	assert.False(t, s.IsValid(map[string]any{"abcd": 1}))
}

func TestDependenciesArrayForm(t *testing.T) {
	s, err := CompileString(`{"dependencies":{"credit_card":["billing_address"]}}`)
	require.NoError(t, err)
	assert.True(t, s.IsValid(map[string]any{}))
	assert.True(t, s.IsValid(map[string]any{"credit_card": 1, "billing_address": "x"}))
	assert.False(t, s.IsValid(map[string]any{"credit_card": 1}))
}

func TestDependenciesSchemaForm(t *testing.T) {
	s, err := CompileString(`{
		"dependencies": {
			"credit_card": {"required": ["billing_address"]}
		}
	}`)
	require.NoError(t, err)
	assert.True(t, s.IsValid(map[string]any{"credit_card": 1, "billing_address": "x"}))
	assert.False(t, s.IsValid(map[string]any{"credit_card": 1}))
}

func TestMinMaxProperties(t *testing.T) {
	s, err := CompileString(`{"minProperties":1,"maxProperties":2}`)
	require.NoError(t, err)
	assert.False(t, s.IsValid(map[string]any{}))
	assert.True(t, s.IsValid(map[string]any{"a": 1}))
	assert.False(t, s.IsValid(map[string]any{"a": 1, "b": 2, "c": 3}))
}
