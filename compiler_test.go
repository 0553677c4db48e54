package jsonschema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompileEmptySchemaAcceptsEverything(t *testing.T) {
	s, err := CompileString(`{}`)
	require.NoError(t, err)
	assert.True(t, s.IsValid(1))
	assert.True(t, s.IsValid("x"))
	assert.True(t, s.IsValid(nil))
}

func TestCompileBooleanSchemas(t *testing.T) {
	trueSchema, err := CompileString(`true`)
	require.NoError(t, err)
	assert.True(t, trueSchema.IsValid(map[string]any{}))

	falseSchema, err := CompileString(`false`)
	require.NoError(t, err)
	assert.False(t, falseSchema.IsValid(1))
	assert.False(t, falseSchema.IsValid(nil))
}

func TestCompileSelfReferentialRef(t *testing.T) {
	// Scenario 6: {"properties":{"a":{"$ref":"#"}}} applied to {"a":{"a":{}}}.
	s, err := CompileString(`{"properties":{"a":{"$ref":"#"}}}`)
	require.NoError(t, err)

	instance := map[string]any{
		"a": map[string]any{
			"a": map[string]any{},
		},
	}
	assert.Nil(t, s.Validate(instance))
}

func TestCompileMutualRefCycle(t *testing.T) {
	s, err := CompileString(`{
		"definitions": {
			"even": {"anyOf": [{"const": 0}, {"$ref": "#/definitions/odd"}]},
			"odd": {"not": {"$ref": "#/definitions/even"}}
		},
		"$ref": "#/definitions/even"
	}`)
	require.NoError(t, err)
	assert.Nil(t, s.Validate(float64(0)))
}

func TestCompileAssertsKnownFormatByDefault(t *testing.T) {
	s, err := CompileString(`{"type":"string","format":"email"}`)
	require.NoError(t, err)

	assert.True(t, s.IsValid("a@b.com"))
	assert.False(t, s.IsValid("not-an-email"))
}

func TestCompileWithAssertFormatFalseDowngradesToAnnotation(t *testing.T) {
	c := NewCompiler(WithAssertFormat(false))
	s, err := c.Compile([]byte(`{"type":"string","format":"email"}`))
	require.NoError(t, err)

	assert.True(t, s.IsValid("a@b.com"))
	assert.True(t, s.IsValid("not-an-email"))
}

func TestCompileUnknownFormatIsANoOpByDefault(t *testing.T) {
	s, err := CompileString(`{"format":"something-nobody-registered"}`)
	require.NoError(t, err)
	assert.True(t, s.IsValid("anything"))
}
