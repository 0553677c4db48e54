package jsonschema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotComplement(t *testing.T) {
	s, err := CompileString(`{"not":{"type":"string"}}`)
	require.NoError(t, err)
	assert.True(t, s.IsValid(1))
	assert.False(t, s.IsValid("x"))
}

func TestAllOfIsConjunction(t *testing.T) {
	s, err := CompileString(`{"allOf":[{"minimum":0},{"maximum":10}]}`)
	require.NoError(t, err)
	assert.True(t, s.IsValid(float64(5)))
	assert.False(t, s.IsValid(float64(-1)))
	assert.False(t, s.IsValid(float64(11)))
}

func TestAnyOfRequiresAtLeastOne(t *testing.T) {
	s, err := CompileString(`{"anyOf":[{"type":"string"},{"type":"number"}]}`)
	require.NoError(t, err)
	assert.True(t, s.IsValid("x"))
	assert.True(t, s.IsValid(float64(1)))
	assert.False(t, s.IsValid(true))
}

func TestOneOfRequiresExactlyOne(t *testing.T) {
	s, err := CompileString(`{"oneOf":[{"required":["s"]},{"required":["e"]}]}`)
	require.NoError(t, err)
	assert.True(t, s.IsValid(map[string]any{"s": 1}))
	assert.False(t, s.IsValid(map[string]any{"s": 1, "e": 1}))
	assert.False(t, s.IsValid(map[string]any{}))
}

func TestIfThenElse(t *testing.T) {
	s, err := CompileString(`{
		"if": {"properties": {"kind": {"const": "a"}}},
		"then": {"required": ["x"]},
		"else": {"required": ["y"]}
	}`)
	require.NoError(t, err)
	assert.True(t, s.IsValid(map[string]any{"kind": "a", "x": 1}))
	assert.False(t, s.IsValid(map[string]any{"kind": "a"}))
	assert.True(t, s.IsValid(map[string]any{"kind": "b", "y": 1}))
	assert.False(t, s.IsValid(map[string]any{"kind": "b"}))
}

func TestIfWithoutThenOrElseIsANoOp(t *testing.T) {
	s, err := CompileString(`{"if": {"type": "string"}}`)
	require.NoError(t, err)
	assert.True(t, s.IsValid(1))
	assert.True(t, s.IsValid("x"))
}
