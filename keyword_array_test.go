package jsonschema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMinItemsMaxItems(t *testing.T) {
	s, err := CompileString(`{"minItems":1,"maxItems":2}`)
	require.NoError(t, err)
	assert.False(t, s.IsValid([]any{}))
	assert.True(t, s.IsValid([]any{1}))
	assert.False(t, s.IsValid([]any{1, 2, 3}))
}

func TestUniqueItemsStrictEquality(t *testing.T) {
	s, err := CompileString(`{"uniqueItems":true}`)
	require.NoError(t, err)
	assert.True(t, s.IsValid([]any{float64(1), true, "1"}))
	assert.False(t, s.IsValid([]any{float64(1), float64(1)}))
}

func TestUniqueItemsNestedCollections(t *testing.T) {
	s, err := CompileString(`{"uniqueItems":true}`)
	require.NoError(t, err)
	assert.True(t, s.IsValid([]any{
		[]any{float64(1), "a"},
		[]any{float64(1), "b"},
	}))
	assert.False(t, s.IsValid([]any{
		map[string]any{"a": float64(1)},
		map[string]any{"a": float64(1)},
	}))
}

func TestItemsSingleSchemaAppliesToEveryElement(t *testing.T) {
	s, err := CompileString(`{"items":{"type":"number"}}`)
	require.NoError(t, err)
	assert.True(t, s.IsValid([]any{float64(1), float64(2)}))
	assert.False(t, s.IsValid([]any{float64(1), "x"}))
}

func TestItemsTupleFormWithAdditionalItems(t *testing.T) {
	s, err := CompileString(`{
		"items": [{"type":"string"}, {"type":"number"}],
		"additionalItems": false
	}`)
	require.NoError(t, err)
	assert.True(t, s.IsValid([]any{"a", float64(1)}))
	assert.False(t, s.IsValid([]any{"a", float64(1), "extra"}))
	// fewer elements than the tuple is fine; positions beyond the tuple
	// are what additionalItems governs.
	assert.True(t, s.IsValid([]any{"a"}))
}

func TestContainsRequiresAtLeastOneMatch(t *testing.T) {
	s, err := CompileString(`{"contains":{"type":"number"}}`)
	require.NoError(t, err)
	assert.True(t, s.IsValid([]any{"x", float64(1), "y"}))
	assert.False(t, s.IsValid([]any{"x", "y"}))
}
