package jsonschema

import (
	"regexp"
)

func init() {
	register("minProperties", buildMinProperties)
	register("maxProperties", buildMaxProperties)
	register("required", buildRequired)
	register("properties", buildProperties)
	register("patternProperties", buildPatternProperties)
	register("additionalProperties", buildAdditionalProperties)
	register("propertyNames", buildPropertyNames)
	register("dependencies", buildDependencies)
}

func isObject(v any) bool {
	_, ok := v.(map[string]any)
	return ok
}

var objectGuard = func(schema map[string]any) func(Validator) Validator {
	return typeGuard(schema, isObject, "object")
}

func buildMinProperties(schema map[string]any, _ *buildContext) (Validator, error) {
	n, err := asInt(schema["minProperties"])
	if err != nil {
		return nil, err
	}
	guard := objectGuard(schema)
	validator := func(value any, path *Path) *ValidationError {
		obj := value.(map[string]any)
		if len(obj) >= n {
			return nil
		}
		return NewValidationError(path.Tokens(), "minProperties",
			"object has fewer than the minimum {min} properties", map[string]any{"min": n})
	}
	return guard(validator), nil
}

func buildMaxProperties(schema map[string]any, _ *buildContext) (Validator, error) {
	n, err := asInt(schema["maxProperties"])
	if err != nil {
		return nil, err
	}
	guard := objectGuard(schema)
	validator := func(value any, path *Path) *ValidationError {
		obj := value.(map[string]any)
		if len(obj) <= n {
			return nil
		}
		return NewValidationError(path.Tokens(), "maxProperties",
			"object has more than the maximum {max} properties", map[string]any{"max": n})
	}
	return guard(validator), nil
}

// buildRequired contributes no runtime check at all when the list is
// empty, the same shortcut the Python original takes, since an empty
// "required" array can never fail.
func buildRequired(schema map[string]any, _ *buildContext) (Validator, error) {
	list, ok := schema["required"].([]any)
	if !ok {
		return nil, ErrSchemaMalformed
	}
	names := make([]string, 0, len(list))
	for _, raw := range list {
		name, ok := raw.(string)
		if !ok {
			return nil, ErrSchemaMalformed
		}
		names = append(names, name)
	}
	if len(names) == 0 {
		return nil, nil
	}

	guard := objectGuard(schema)
	validator := func(value any, path *Path) *ValidationError {
		obj := value.(map[string]any)
		for _, name := range names {
			if _, ok := obj[name]; !ok {
				return NewValidationError(path.Tokens(), "required",
					"object is missing required property {property}", map[string]any{"property": name})
			}
		}
		return nil
	}
	return guard(validator), nil
}

func buildProperties(schema map[string]any, ctx *buildContext) (Validator, error) {
	props, ok := schema["properties"].(map[string]any)
	if !ok {
		return nil, ErrSchemaMalformed
	}
	validators := make(map[string]Validator, len(props))
	for name, sub := range props {
		v, err := ctx.child("/properties/"+name, sub)
		if err != nil {
			return nil, err
		}
		validators[name] = v
	}

	guard := objectGuard(schema)
	validator := func(value any, path *Path) *ValidationError {
		obj := value.(map[string]any)
		for name, v := range validators {
			propValue, present := obj[name]
			if !present {
				continue
			}
			pop := path.Push(name)
			err := v(propValue, path)
			pop()
			if err != nil {
				return err
			}
		}
		return nil
	}
	return guard(validator), nil
}

func buildPatternProperties(schema map[string]any, ctx *buildContext) (Validator, error) {
	patterns, ok := schema["patternProperties"].(map[string]any)
	if !ok {
		return nil, ErrSchemaMalformed
	}
	type entry struct {
		rex *regexp.Regexp
		v   Validator
	}
	entries := make([]entry, 0, len(patterns))
	for pattern, sub := range patterns {
		rex, err := regexp.Compile(pattern)
		if err != nil {
			return nil, err
		}
		v, err := ctx.child("/patternProperties/"+pattern, sub)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry{rex, v})
	}

	guard := objectGuard(schema)
	validator := func(value any, path *Path) *ValidationError {
		obj := value.(map[string]any)
		for name, propValue := range obj {
			for _, e := range entries {
				if !e.rex.MatchString(name) {
					continue
				}
				pop := path.Push(name)
				err := e.v(propValue, path)
				pop()
				if err != nil {
					return err
				}
			}
		}
		return nil
	}
	return guard(validator), nil
}

// buildAdditionalProperties validates every property not claimed by
// "properties" or matched by any "patternProperties" regex, the exact
// exclusion set the Python original computes in object_.py.
func buildAdditionalProperties(schema map[string]any, ctx *buildContext) (Validator, error) {
	v, err := ctx.child("/additionalProperties", schema["additionalProperties"])
	if err != nil {
		return nil, err
	}

	var names map[string]bool
	if props, ok := schema["properties"].(map[string]any); ok {
		names = make(map[string]bool, len(props))
		for name := range props {
			names[name] = true
		}
	}
	var patterns []*regexp.Regexp
	if pp, ok := schema["patternProperties"].(map[string]any); ok {
		patterns = make([]*regexp.Regexp, 0, len(pp))
		for pattern := range pp {
			rex, err := regexp.Compile(pattern)
			if err != nil {
				return nil, err
			}
			patterns = append(patterns, rex)
		}
	}

	guard := objectGuard(schema)
	validator := func(value any, path *Path) *ValidationError {
		obj := value.(map[string]any)
		for name, propValue := range obj {
			if names[name] {
				continue
			}
			matched := false
			for _, rex := range patterns {
				if rex.MatchString(name) {
					matched = true
					break
				}
			}
			if matched {
				continue
			}
			pop := path.Push(name)
			err := v(propValue, path)
			pop()
			if err != nil {
				return NewValidationError(path.Tokens(), "additionalProperties",
					"object has additional property {property} not allowed by the schema",
					map[string]any{"property": name, "cause": err.Message})
			}
		}
		return nil
	}
	return guard(validator), nil
}

func buildPropertyNames(schema map[string]any, ctx *buildContext) (Validator, error) {
	v, err := ctx.child("/propertyNames", schema["propertyNames"])
	if err != nil {
		return nil, err
	}
	guard := objectGuard(schema)
	validator := func(value any, path *Path) *ValidationError {
		obj := value.(map[string]any)
		for name := range obj {
			if err := v(name, path); err != nil {
				return NewValidationError(path.Tokens(), "propertyNames",
					"object property name {property} failed schema validation",
					map[string]any{"property": name})
			}
		}
		return nil
	}
	return guard(validator), nil
}

// buildDependencies compiles Draft-07's single "dependencies" keyword,
// which accepts either an array of property names (property dependency) or
// a subschema (schema dependency) per dependent key, mirroring how the
// Python original's dependencies() builds a synthetic {"required": [...]}
// schema for the array form rather than duplicating required's logic.
func buildDependencies(schema map[string]any, ctx *buildContext) (Validator, error) {
	deps, ok := schema["dependencies"].(map[string]any)
	if !ok {
		return nil, ErrSchemaMalformed
	}

	type dependency struct {
		name string
		v    Validator
	}
	entries := make([]dependency, 0, len(deps))

	for name, raw := range deps {
		switch d := raw.(type) {
		case []any:
			fake := map[string]any{"required": d}
			v, err := buildRequired(fake, ctx)
			if err != nil {
				return nil, err
			}
			if v == nil {
				v = alwaysValid
			}
			entries = append(entries, dependency{name, v})
		case map[string]any, bool:
			v, err := ctx.child("/dependencies/"+name, d)
			if err != nil {
				return nil, err
			}
			entries = append(entries, dependency{name, v})
		default:
			return nil, ErrSchemaMalformed
		}
	}

	guard := objectGuard(schema)
	validator := func(value any, path *Path) *ValidationError {
		obj := value.(map[string]any)
		for _, dep := range entries {
			if _, present := obj[dep.name]; !present {
				continue
			}
			if err := dep.v(value, path); err != nil {
				return NewValidationError(path.Tokens(), "dependencies",
					"dependency for {property} not satisfied: {cause}",
					map[string]any{"property": dep.name, "cause": err.Message})
			}
		}
		return nil
	}
	return guard(validator), nil
}
