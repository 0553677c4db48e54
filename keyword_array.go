package jsonschema

import (
	"strconv"
)

func init() {
	register("minItems", buildMinItems)
	register("maxItems", buildMaxItems)
	register("uniqueItems", buildUniqueItems)
	register("items", buildItems)
	register("additionalItems", buildAdditionalItems)
	register("contains", buildContains)
}

func isArray(v any) bool {
	_, ok := v.([]any)
	return ok
}

var arrayGuard = func(schema map[string]any) func(Validator) Validator {
	return typeGuard(schema, isArray, "array")
}

func buildMinItems(schema map[string]any, _ *buildContext) (Validator, error) {
	n, err := asInt(schema["minItems"])
	if err != nil {
		return nil, err
	}
	guard := arrayGuard(schema)
	validator := func(value any, path *Path) *ValidationError {
		arr := value.([]any)
		if len(arr) >= n {
			return nil
		}
		return NewValidationError(path.Tokens(), "minItems",
			"array has fewer than the minimum {min} items", map[string]any{"min": n})
	}
	return guard(validator), nil
}

func buildMaxItems(schema map[string]any, _ *buildContext) (Validator, error) {
	n, err := asInt(schema["maxItems"])
	if err != nil {
		return nil, err
	}
	guard := arrayGuard(schema)
	validator := func(value any, path *Path) *ValidationError {
		arr := value.([]any)
		if len(arr) <= n {
			return nil
		}
		return NewValidationError(path.Tokens(), "maxItems",
			"array has more than the maximum {max} items", map[string]any{"max": n})
	}
	return guard(validator), nil
}

// buildUniqueItems deduplicates with a hashable fast path (StrictValue keys
// that don't contain arrays or objects) and falls back to an O(n^2) pairwise
// comparison only for the items that aren't hashable, rather than
// abandoning the fast path for the whole array the moment one element is a
// nested array or object.
func buildUniqueItems(schema map[string]any, _ *buildContext) (Validator, error) {
	want, _ := schema["uniqueItems"].(bool)
	if !want {
		return nil, nil
	}
	guard := arrayGuard(schema)
	validator := func(value any, path *Path) *ValidationError {
		arr := value.([]any)
		seen := make(map[any]int, len(arr))
		var unhashable []StrictValue
		var unhashableIdx []int

		for i, item := range arr {
			sv := strictify(item)
			key, ok := sv.hashKey()
			if ok {
				if dupIdx, exists := seen[key]; exists {
					return duplicateError(path, dupIdx, i)
				}
				seen[key] = i
				continue
			}
			for j, other := range unhashable {
				if sv.Equal(other) {
					return duplicateError(path, unhashableIdx[j], i)
				}
			}
			unhashable = append(unhashable, sv)
			unhashableIdx = append(unhashableIdx, i)
		}
		return nil
	}
	return guard(validator), nil
}

func duplicateError(path *Path, first, second int) *ValidationError {
	return NewValidationError(path.Tokens(), "uniqueItems",
		"array items must be unique, duplicate at index {index}",
		map[string]any{"index": strconv.Itoa(second), "first": strconv.Itoa(first)})
}

// buildItems compiles the "items" keyword. Draft-07 gives it two forms: a
// single schema applied to every element, or an array of schemas applied
// positionally (tuple validation), with "additionalItems" governing any
// elements beyond the tuple's length.
func buildItems(schema map[string]any, ctx *buildContext) (Validator, error) {
	guard := arrayGuard(schema)

	switch items := schema["items"].(type) {
	case bool, map[string]any:
		v, err := ctx.child("/items", items)
		if err != nil {
			return nil, err
		}
		validator := func(value any, path *Path) *ValidationError {
			arr := value.([]any)
			for i, item := range arr {
				pop := path.PushIndex(i)
				err := v(item, path)
				pop()
				if err != nil {
					return err
				}
			}
			return nil
		}
		return guard(validator), nil

	case []any:
		tuple := make([]Validator, len(items))
		for i, sub := range items {
			v, err := ctx.child("/items/"+strconv.Itoa(i), sub)
			if err != nil {
				return nil, err
			}
			tuple[i] = v
		}

		var additional Validator
		if raw, ok := schema["additionalItems"]; ok {
			v, err := ctx.child("/additionalItems", raw)
			if err != nil {
				return nil, err
			}
			additional = v
		}

		validator := func(value any, path *Path) *ValidationError {
			arr := value.([]any)
			for i, item := range arr {
				var v Validator
				switch {
				case i < len(tuple):
					v = tuple[i]
				case additional != nil:
					v = additional
				default:
					continue
				}
				pop := path.PushIndex(i)
				err := v(item, path)
				pop()
				if err != nil {
					return err
				}
			}
			return nil
		}
		return guard(validator), nil

	default:
		return nil, ErrSchemaMalformed
	}
}

// buildAdditionalItems is a no-op builder: "additionalItems" only has
// meaning alongside tuple-form "items" and is consumed there. When "items"
// is absent or is a single schema, "additionalItems" is meaningless per
// Draft-07 and contributes nothing.
func buildAdditionalItems(schema map[string]any, _ *buildContext) (Validator, error) {
	if _, ok := schema["items"].([]any); ok {
		return nil, nil
	}
	return nil, nil
}

func buildContains(schema map[string]any, ctx *buildContext) (Validator, error) {
	v, err := ctx.child("/contains", schema["contains"])
	if err != nil {
		return nil, err
	}
	guard := arrayGuard(schema)
	validator := func(value any, path *Path) *ValidationError {
		arr := value.([]any)
		for i, item := range arr {
			pop := path.PushIndex(i)
			err := v(item, path)
			pop()
			if err == nil {
				return nil
			}
		}
		return NewValidationError(path.Tokens(), "contains",
			"array does not contain a matching item", nil)
	}
	return guard(validator), nil
}
