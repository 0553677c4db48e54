package jsonschema

import "strconv"

func init() {
	register("not", buildNot)
	register("allOf", buildAllOf)
	register("anyOf", buildAnyOf)
	register("oneOf", buildOneOf)
	register("if", buildIf)
}

func buildNot(schema map[string]any, ctx *buildContext) (Validator, error) {
	v, err := ctx.child("/not", schema["not"])
	if err != nil {
		return nil, err
	}
	return func(value any, path *Path) *ValidationError {
		if v(value, path) == nil {
			return NewValidationError(path.Tokens(), "not",
				"value must not validate against the schema", nil)
		}
		return nil
	}, nil
}

func buildAllOf(schema map[string]any, ctx *buildContext) (Validator, error) {
	list, ok := schema["allOf"].([]any)
	if !ok {
		return nil, ErrSchemaMalformed
	}
	validators := make([]Validator, len(list))
	for i, sub := range list {
		v, err := ctx.child("/allOf/"+strconv.Itoa(i), sub)
		if err != nil {
			return nil, err
		}
		validators[i] = v
	}
	return func(value any, path *Path) *ValidationError {
		for _, v := range validators {
			if err := v(value, path); err != nil {
				return err
			}
		}
		return nil
	}, nil
}

func buildAnyOf(schema map[string]any, ctx *buildContext) (Validator, error) {
	list, ok := schema["anyOf"].([]any)
	if !ok {
		return nil, ErrSchemaMalformed
	}
	validators := make([]Validator, len(list))
	for i, sub := range list {
		v, err := ctx.child("/anyOf/"+strconv.Itoa(i), sub)
		if err != nil {
			return nil, err
		}
		validators[i] = v
	}
	return func(value any, path *Path) *ValidationError {
		causes := ""
		for i, v := range validators {
			err := v(value, path)
			if err == nil {
				return nil
			}
			if i > 0 {
				causes += "; "
			}
			causes += err.Message
		}
		return NewValidationError(path.Tokens(), "anyOf",
			"value must validate against at least one subschema: {causes}",
			map[string]any{"causes": causes})
	}, nil
}

func buildOneOf(schema map[string]any, ctx *buildContext) (Validator, error) {
	list, ok := schema["oneOf"].([]any)
	if !ok {
		return nil, ErrSchemaMalformed
	}
	validators := make([]Validator, len(list))
	for i, sub := range list {
		v, err := ctx.child("/oneOf/"+strconv.Itoa(i), sub)
		if err != nil {
			return nil, err
		}
		validators[i] = v
	}
	return func(value any, path *Path) *ValidationError {
		matched := 0
		for _, v := range validators {
			if v(value, path) == nil {
				matched++
			}
		}
		if matched == 1 {
			return nil
		}
		return NewValidationError(path.Tokens(), "oneOf",
			"value must validate against exactly one subschema, matched {count}",
			map[string]any{"count": matched})
	}, nil
}

// buildIf compiles "if"/"then"/"else" together, the way the Python original
// treats them as one keyword group: "if" on its own, with neither "then"
// nor "else" present, contributes nothing, since its own result is never
// asserted directly.
func buildIf(schema map[string]any, ctx *buildContext) (Validator, error) {
	_, hasThen := schema["then"]
	_, hasElse := schema["else"]
	if !hasThen && !hasElse {
		return nil, nil
	}

	ifV, err := ctx.child("/if", schema["if"])
	if err != nil {
		return nil, err
	}

	var thenV, elseV Validator
	if hasThen {
		thenV, err = ctx.child("/then", schema["then"])
		if err != nil {
			return nil, err
		}
	}
	if hasElse {
		elseV, err = ctx.child("/else", schema["else"])
		if err != nil {
			return nil, err
		}
	}

	return func(value any, path *Path) *ValidationError {
		if ifV(value, path) == nil {
			if thenV != nil {
				return thenV(value, path)
			}
			return nil
		}
		if elseV != nil {
			return elseV(value, path)
		}
		return nil
	}, nil
}
