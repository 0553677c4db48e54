package jsonschema

// buildContext carries everything a keyword Builder needs besides the raw
// schema object: the current base URI (for resolving nested $ref values),
// the resolver shared by the whole compilation, and the set of registered
// format checkers.
type buildContext struct {
	baseURI  string
	resolver *Resolver
	compiler *Compiler

	// compiled is the same URI-keyed validator map the surrounding compile
	// pass writes into, shared by reference so child() can stash a nested
	// subschema's validator under its synthesized URI and indirect() can
	// look up a $ref target compiled (or still pending) anywhere in the
	// same compilation.
	compiled map[string]Validator
}

// Builder compiles one keyword's value, found in schema under its own key,
// into a Validator closure. It returns (nil, nil) when the keyword
// contributes no runtime check at all — e.g. an empty "required" list, or a
// "format" name with no checker registered or with format assertion turned
// off — so compileNode can skip it entirely rather than paying for a no-op
// call on every instance.
type Builder func(schema map[string]any, ctx *buildContext) (Validator, error)

// registry maps a Draft-07 keyword name to the Builder that compiles it.
// Builders register themselves from init() in their own keyword_*.go file,
// one registry entry per keyword, the way the rest of this package's
// source is split by keyword family (basic, array, object, logical).
var registry = make(map[string]Builder)

func register(keyword string, b Builder) {
	registry[keyword] = b
}

// conjunction composes several validators into one that runs each in turn
// against the same value and path, short-circuiting on the first failure.
// This is how sibling keywords on one schema object compose; buildAllOf
// applies the same first-failure rule to its subschemas in its own loop.
func conjunction(validators []Validator) Validator {
	switch len(validators) {
	case 0:
		return alwaysValid
	case 1:
		return validators[0]
	}
	return func(value any, path *Path) *ValidationError {
		for _, v := range validators {
			if err := v(value, path); err != nil {
				return err
			}
		}
		return nil
	}
}
