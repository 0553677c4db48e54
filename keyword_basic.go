package jsonschema

import (
	"math"
	"math/big"
	"regexp"
	"strconv"
	"unicode/utf8"

	"github.com/goccy/go-json"
)

func init() {
	register("type", buildType)
	register("enum", buildEnum)
	register("const", buildConst)
	register("minLength", buildMinLength)
	register("maxLength", buildMaxLength)
	register("pattern", buildPattern)
	register("format", buildFormat)
	register("minimum", buildMinimum)
	register("maximum", buildMaximum)
	register("exclusiveMinimum", buildExclusiveMinimum)
	register("exclusiveMaximum", buildExclusiveMaximum)
	register("multipleOf", buildMultipleOf)
}

var typeCheckers = map[string]func(any) bool{
	"object":  func(v any) bool { _, ok := v.(map[string]any); return ok },
	"array":   func(v any) bool { _, ok := v.([]any); return ok },
	"string":  func(v any) bool { _, ok := v.(string); return ok },
	"boolean": func(v any) bool { _, ok := v.(bool); return ok },
	"null":    func(v any) bool { return v == nil },
	"number":  isNumber,
	"integer": isInteger,
}

func isNumber(v any) bool {
	switch v.(type) {
	case float64, float32, json.Number, int, int64, int32:
		return true
	default:
		return false
	}
}

func isInteger(v any) bool {
	switch x := v.(type) {
	case float64:
		return x == math.Trunc(x)
	case float32:
		f := float64(x)
		return f == math.Trunc(f)
	case json.Number:
		if _, err := strconv.ParseInt(string(x), 10, 64); err == nil {
			return true
		}
		f, err := x.Float64()
		return err == nil && f == math.Trunc(f)
	case int, int64, int32:
		return true
	default:
		return false
	}
}

func buildType(schema map[string]any, _ *buildContext) (Validator, error) {
	switch t := schema["type"].(type) {
	case string:
		checker, ok := typeCheckers[t]
		if !ok {
			return nil, ErrInvalidSchemaType
		}
		return func(value any, path *Path) *ValidationError {
			if checker(value) {
				return nil
			}
			return NewValidationError(path.Tokens(), "type",
				"value must be of type {expected}", map[string]any{"expected": t})
		}, nil
	case []any:
		names := make([]string, 0, len(t))
		checkers := make([]func(any) bool, 0, len(t))
		for _, raw := range t {
			name, ok := raw.(string)
			if !ok {
				return nil, ErrInvalidSchemaType
			}
			checker, ok := typeCheckers[name]
			if !ok {
				return nil, ErrInvalidSchemaType
			}
			names = append(names, name)
			checkers = append(checkers, checker)
		}
		return func(value any, path *Path) *ValidationError {
			for _, checker := range checkers {
				if checker(value) {
					return nil
				}
			}
			return NewValidationError(path.Tokens(), "type",
				"value must be of type {expected}", map[string]any{"expected": names})
		}, nil
	default:
		return nil, ErrInvalidSchemaType
	}
}

// typeGuard wraps validator so it only runs on an instance whose Go
// representation the keyword actually applies to, skipping it entirely for
// any other value. Draft-07 keywords are no-ops on instances of the wrong
// type rather than failures, so a "minLength" on a schema with no "type"
// constraint must ignore a number or object instance instead of rejecting
// it. When the schema's own "type" keyword already rules out every
// instance the family doesn't apply to, no runtime check is needed at all;
// when "type" rules out every instance the family DOES apply to, the
// keyword contributes nothing and is dropped.
func typeGuard(schema map[string]any, applies func(any) bool, familyNames ...string) func(Validator) Validator {
	raw, hasType := schema["type"]
	if !hasType {
		return func(v Validator) Validator {
			return func(value any, path *Path) *ValidationError {
				if !applies(value) {
					return nil
				}
				return v(value, path)
			}
		}
	}

	declared := schemaTypeNames(raw)
	overlaps := false
	subset := len(declared) > 0
	for _, name := range declared {
		if stringsContain(familyNames, name) {
			overlaps = true
		} else {
			subset = false
		}
	}

	if !overlaps {
		return func(Validator) Validator { return nil }
	}
	if subset {
		return func(v Validator) Validator { return v }
	}
	return func(v Validator) Validator {
		return func(value any, path *Path) *ValidationError {
			if !applies(value) {
				return nil
			}
			return v(value, path)
		}
	}
}

func schemaTypeNames(raw any) []string {
	switch t := raw.(type) {
	case string:
		return []string{t}
	case []any:
		out := make([]string, 0, len(t))
		for _, v := range t {
			if s, ok := v.(string); ok {
				out = append(out, s)
			}
		}
		return out
	default:
		return nil
	}
}

func stringsContain(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

var stringGuard = func(schema map[string]any) func(Validator) Validator {
	return typeGuard(schema, func(v any) bool { _, ok := v.(string); return ok }, "string")
}

var numberGuard = func(schema map[string]any) func(Validator) Validator {
	return typeGuard(schema, isNumber, "number", "integer")
}

func buildEnum(schema map[string]any, _ *buildContext) (Validator, error) {
	list, ok := schema["enum"].([]any)
	if !ok {
		return nil, ErrSchemaMalformed
	}
	members := make([]StrictValue, len(list))
	set := make(map[any]bool, len(list))
	hashable := true
	for i, v := range list {
		sv := strictify(v)
		members[i] = sv
		if key, ok := sv.hashKey(); ok {
			set[key] = true
		} else {
			hashable = false
		}
	}

	return func(value any, path *Path) *ValidationError {
		sv := strictify(value)
		if hashable {
			if key, ok := sv.hashKey(); ok {
				if set[key] {
					return nil
				}
				return NewValidationError(path.Tokens(), "enum",
					"value must be one of the enumerated values", map[string]any{"value": value})
			}
		}
		for _, m := range members {
			if sv.Equal(m) {
				return nil
			}
		}
		return NewValidationError(path.Tokens(), "enum",
			"value must be one of the enumerated values", map[string]any{"value": value})
	}, nil
}

func buildConst(schema map[string]any, _ *buildContext) (Validator, error) {
	want := strictify(schema["const"])
	return func(value any, path *Path) *ValidationError {
		if strictify(value).Equal(want) {
			return nil
		}
		return NewValidationError(path.Tokens(), "const",
			"value must equal the constant value", map[string]any{"value": value})
	}, nil
}

func buildMinLength(schema map[string]any, _ *buildContext) (Validator, error) {
	n, err := asInt(schema["minLength"])
	if err != nil {
		return nil, err
	}
	guard := stringGuard(schema)
	validator := func(value any, path *Path) *ValidationError {
		s := value.(string)
		if utf8.RuneCountInString(s) >= n {
			return nil
		}
		return NewValidationError(path.Tokens(), "minLength",
			"string is shorter than the minimum length of {min}", map[string]any{"min": n})
	}
	return guard(validator), nil
}

func buildMaxLength(schema map[string]any, _ *buildContext) (Validator, error) {
	n, err := asInt(schema["maxLength"])
	if err != nil {
		return nil, err
	}
	guard := stringGuard(schema)
	validator := func(value any, path *Path) *ValidationError {
		s := value.(string)
		if utf8.RuneCountInString(s) <= n {
			return nil
		}
		return NewValidationError(path.Tokens(), "maxLength",
			"string is longer than the maximum length of {max}", map[string]any{"max": n})
	}
	return guard(validator), nil
}

func buildPattern(schema map[string]any, _ *buildContext) (Validator, error) {
	pat, ok := schema["pattern"].(string)
	if !ok {
		return nil, ErrSchemaMalformed
	}
	rex, err := regexp.Compile(pat)
	if err != nil {
		return nil, err
	}
	guard := stringGuard(schema)
	validator := func(value any, path *Path) *ValidationError {
		s := value.(string)
		if rex.MatchString(s) {
			return nil
		}
		return NewValidationError(path.Tokens(), "pattern",
			"string does not match the pattern {pattern}", map[string]any{"pattern": pat})
	}
	return guard(validator), nil
}

// buildFormat asserts a known format name against string instances by
// default; Compiler.assertFormat (off via WithAssertFormat(false)) downgrades
// this to a non-binding annotation, and a name with no registered checker
// never asserts regardless, since there is no predicate to run.
func buildFormat(schema map[string]any, ctx *buildContext) (Validator, error) {
	name, ok := schema["format"].(string)
	if !ok {
		return nil, ErrSchemaMalformed
	}

	ctx.compiler.mu.RLock()
	checker, known := ctx.compiler.formats[name]
	assert := ctx.compiler.assertFormat
	ctx.compiler.mu.RUnlock()

	if !known {
		ctx.compiler.warnUnknownFormat(name)
		return nil, nil
	}
	if !assert {
		return nil, nil
	}

	guard := stringGuard(schema)
	validator := func(value any, path *Path) *ValidationError {
		if checker(value) {
			return nil
		}
		return NewValidationError(path.Tokens(), "format",
			"value does not match the {format} format", map[string]any{"format": name})
	}
	return guard(validator), nil
}

func buildMinimum(schema map[string]any, _ *buildContext) (Validator, error) {
	limit := NewRat(schema["minimum"])
	if limit == nil {
		return nil, ErrSchemaMalformed
	}
	guard := numberGuard(schema)
	validator := func(value any, path *Path) *ValidationError {
		r := NewRat(value)
		if r == nil || r.Cmp(limit.Rat) >= 0 {
			return nil
		}
		return NewValidationError(path.Tokens(), "minimum",
			"value must be >= {min}", map[string]any{"min": limit})
	}
	return guard(validator), nil
}

func buildMaximum(schema map[string]any, _ *buildContext) (Validator, error) {
	limit := NewRat(schema["maximum"])
	if limit == nil {
		return nil, ErrSchemaMalformed
	}
	guard := numberGuard(schema)
	validator := func(value any, path *Path) *ValidationError {
		r := NewRat(value)
		if r == nil || r.Cmp(limit.Rat) <= 0 {
			return nil
		}
		return NewValidationError(path.Tokens(), "maximum",
			"value must be <= {max}", map[string]any{"max": limit})
	}
	return guard(validator), nil
}

func buildExclusiveMinimum(schema map[string]any, _ *buildContext) (Validator, error) {
	limit := NewRat(schema["exclusiveMinimum"])
	if limit == nil {
		return nil, ErrSchemaMalformed
	}
	guard := numberGuard(schema)
	validator := func(value any, path *Path) *ValidationError {
		r := NewRat(value)
		if r == nil || r.Cmp(limit.Rat) > 0 {
			return nil
		}
		return NewValidationError(path.Tokens(), "exclusiveMinimum",
			"value must be > {min}", map[string]any{"min": limit})
	}
	return guard(validator), nil
}

func buildExclusiveMaximum(schema map[string]any, _ *buildContext) (Validator, error) {
	limit := NewRat(schema["exclusiveMaximum"])
	if limit == nil {
		return nil, ErrSchemaMalformed
	}
	guard := numberGuard(schema)
	validator := func(value any, path *Path) *ValidationError {
		r := NewRat(value)
		if r == nil || r.Cmp(limit.Rat) < 0 {
			return nil
		}
		return NewValidationError(path.Tokens(), "exclusiveMaximum",
			"value must be < {max}", map[string]any{"max": limit})
	}
	return guard(validator), nil
}

func buildMultipleOf(schema map[string]any, _ *buildContext) (Validator, error) {
	divisor := NewRat(schema["multipleOf"])
	if divisor == nil || divisor.Sign() == 0 {
		return nil, ErrSchemaMalformed
	}
	guard := numberGuard(schema)
	validator := func(value any, path *Path) *ValidationError {
		r := NewRat(value)
		if r == nil {
			return nil
		}
		quotient := new(big.Rat).Quo(r.Rat, divisor.Rat)
		if quotient.IsInt() {
			return nil
		}
		return NewValidationError(path.Tokens(), "multipleOf",
			"value must be a multiple of {divisor}", map[string]any{"divisor": divisor})
	}
	return guard(validator), nil
}

func asInt(v any) (int, error) {
	switch x := v.(type) {
	case float64:
		return int(x), nil
	case float32:
		return int(x), nil
	case int:
		return x, nil
	case json.Number:
		n, err := strconv.Atoi(string(x))
		if err != nil {
			return 0, ErrSchemaMalformed
		}
		return n, nil
	default:
		return 0, ErrSchemaMalformed
	}
}
