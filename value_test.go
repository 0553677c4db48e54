package jsonschema

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStrictifyDistinguishesBoolFromNumber(t *testing.T) {
	assert.False(t, strictify(true).Equal(strictify(float64(1))))
	assert.False(t, strictify(false).Equal(strictify(float64(0))))
	assert.True(t, strictify(true).Equal(strictify(true)))
	assert.True(t, strictify(float64(1)).Equal(strictify(float64(1))))
}

func TestStrictifyNestedCollections(t *testing.T) {
	a := []any{true, float64(1), "x"}
	b := []any{true, float64(1), "x"}
	c := []any{float64(1), float64(1), "x"}
	assert.True(t, strictify(a).Equal(strictify(b)))
	assert.False(t, strictify(a).Equal(strictify(c)))

	m1 := map[string]any{"k": true}
	m2 := map[string]any{"k": float64(1)}
	assert.False(t, strictify(m1).Equal(strictify(m2)))
}

func TestHashKeyUnhashableForCollections(t *testing.T) {
	_, ok := strictify([]any{1}).hashKey()
	assert.False(t, ok)
	_, ok = strictify(map[string]any{}).hashKey()
	assert.False(t, ok)
	_, ok = strictify("x").hashKey()
	assert.True(t, ok)
}
