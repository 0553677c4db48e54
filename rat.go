package jsonschema

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/goccy/go-json"
)

// Rat wraps a big.Rat so that numeric keywords (multipleOf, minimum,
// maximum, exclusiveMinimum, exclusiveMaximum) compare instance values
// exactly, avoiding the drift float64 arithmetic introduces for values like
// 0.1 or 0.3.
type Rat struct {
	*big.Rat
}

// NewRat converts a decoded JSON number (float64, json.Number, or a plain
// int/string) into a Rat. It returns nil if the value cannot be represented
// as a rational number.
func NewRat(value any) *Rat {
	r, err := toBigRat(value)
	if err != nil {
		return nil
	}
	return &Rat{r}
}

func toBigRat(value any) (*big.Rat, error) {
	var str string
	switch v := value.(type) {
	case float64, float32, int, int64, int32, int16, int8, uint, uint64, uint32, uint16, uint8:
		str = fmt.Sprint(v)
	case json.Number:
		str = string(v)
	case string:
		str = v
	default:
		return nil, ErrUnsupportedRatType
	}

	r := new(big.Rat)
	if _, ok := r.SetString(str); !ok {
		return nil, ErrRatConversion
	}
	return r, nil
}

// FormatRat renders a Rat the way an error message should show it: plain
// integers without a decimal point, fractions trimmed of trailing zeros.
func FormatRat(r *Rat) string {
	if r == nil {
		return "null"
	}
	if r.IsInt() {
		return r.Num().String()
	}

	dec := r.FloatString(10)
	for len(dec) > 0 && dec[len(dec)-1] == '0' {
		dec = dec[:len(dec)-1]
	}
	dec = trimSuffixByte(dec, '.')
	if dec == "" || dec == "-" {
		return "0"
	}
	return dec
}

func trimSuffixByte(s string, b byte) string {
	if len(s) > 0 && s[len(s)-1] == b {
		return s[:len(s)-1]
	}
	return s
}

// ErrUnsupportedRatType and ErrRatConversion are declared here (rather than
// errors.go) because they are only ever raised by toBigRat.
var (
	ErrUnsupportedRatType = errors.New("unsupported rat type")
	ErrRatConversion      = errors.New("rat conversion failed")
)
