package jsonschema

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewRat(t *testing.T) {
	assert.NotNil(t, NewRat(float64(3)))
	assert.NotNil(t, NewRat("0.1"))
	assert.Nil(t, NewRat(true))
	assert.Nil(t, NewRat([]any{1}))
}

func TestRatExactComparison(t *testing.T) {
	// 0.1 + 0.2 drifts under float64 arithmetic; big.Rat must not.
	a := NewRat(0.1)
	b := NewRat(0.2)
	sum := new(big.Rat).Add(a.Rat, b.Rat)
	assert.Equal(t, 0, sum.Cmp(NewRat("0.3").Rat))
}

func TestFormatRat(t *testing.T) {
	assert.Equal(t, "3", FormatRat(NewRat(float64(3))))
	assert.Equal(t, "null", FormatRat(nil))
	assert.Equal(t, "0.1", FormatRat(NewRat("0.1")))
}
