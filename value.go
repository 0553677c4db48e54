package jsonschema

// StrictValue wraps a decoded JSON value so that equality comparisons never
// identify a boolean with a numeric, the way Go's own `==` or
// reflect.DeepEqual would if both operands happened to be `any(1.0)` and
// `any(true)` is avoided entirely since bool and float64 are distinct Go
// types already. The wrapper exists for the values that DO collide once
// normalized to JSON semantics: two numbers that differ only in their
// decoded Go representation (float64 vs json.Number), and recursively
// through arrays/objects.
//
// Compilation strictifies enum/const values once; instances are strictified
// lazily, only when an enum or const check actually runs.
type StrictValue struct {
	kind strictKind
	b    bool
	num  *Rat
	str  string
	arr  []StrictValue
	obj  map[string]StrictValue
}

type strictKind int

const (
	strictNull strictKind = iota
	strictBool
	strictNumber
	strictString
	strictArray
	strictObject
	strictInvalid
)

// strictify projects a decoded JSON value (nil, bool, float64, json.Number,
// string, []any, map[string]any) into its StrictValue form.
func strictify(v any) StrictValue {
	switch x := v.(type) {
	case nil:
		return StrictValue{kind: strictNull}
	case bool:
		return StrictValue{kind: strictBool, b: x}
	case string:
		return StrictValue{kind: strictString, str: x}
	case []any:
		out := make([]StrictValue, len(x))
		for i, e := range x {
			out[i] = strictify(e)
		}
		return StrictValue{kind: strictArray, arr: out}
	case map[string]any:
		out := make(map[string]StrictValue, len(x))
		for k, e := range x {
			out[k] = strictify(e)
		}
		return StrictValue{kind: strictObject, obj: out}
	default:
		// Numeric types (float64, json.Number, ints) and anything else that
		// NewRat can parse.
		if r := NewRat(v); r != nil {
			return StrictValue{kind: strictNumber, num: r}
		}
		return StrictValue{kind: strictInvalid}
	}
}

// Equal reports whether two StrictValues represent the same JSON value,
// refusing to identify booleans with numerics at any depth.
func (a StrictValue) Equal(b StrictValue) bool {
	if a.kind != b.kind {
		return false
	}
	switch a.kind {
	case strictNull:
		return true
	case strictBool:
		return a.b == b.b
	case strictNumber:
		return a.num.Cmp(b.num.Rat) == 0
	case strictString:
		return a.str == b.str
	case strictArray:
		if len(a.arr) != len(b.arr) {
			return false
		}
		for i := range a.arr {
			if !a.arr[i].Equal(b.arr[i]) {
				return false
			}
		}
		return true
	case strictObject:
		if len(a.obj) != len(b.obj) {
			return false
		}
		for k, av := range a.obj {
			bv, ok := b.obj[k]
			if !ok || !av.Equal(bv) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// hashKey returns a comparable Go value usable as a map key for the fast
// path of enum/uniqueItems membership tests, and false if the value (or any
// value nested within it) is not hashable (contains an array or object).
func (a StrictValue) hashKey() (any, bool) {
	switch a.kind {
	case strictNull:
		return nil, true
	case strictBool:
		return a.b, true
	case strictNumber:
		// big.Rat is not comparable; key on its canonical string form so
		// equal rationals (e.g. 1/2 and 2/4, which NewRat never actually
		// produces since SetString normalizes) hash identically.
		return "n:" + a.num.RatString(), true
	case strictString:
		return "s:" + a.str, true
	default:
		return nil, false
	}
}
