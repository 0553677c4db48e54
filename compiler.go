package jsonschema

import (
	"context"
	"io"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/goccy/go-json"
	"github.com/goccy/go-yaml"
)

// Validator checks one instance value at one location against the rules a
// Builder compiled from a single schema object. A nil return means the
// value passed; a validator that descends into a child value pushes its own
// token with Path.Push and pops it before returning, so path is left as it
// was found.
type Validator func(value any, path *Path) *ValidationError

// Schema is the artifact Compile produces: every subschema reachable from
// the root, already compiled to a Validator and keyed by absolute URI, plus
// the entry point to run instances against.
type Schema struct {
	entry      string
	validators map[string]Validator
}

// IsValid reports whether instance satisfies the schema, discarding the
// error detail. Prefer Validate when the caller wants to report why.
func (s *Schema) IsValid(instance any) bool {
	return s.Validate(instance) == nil
}

// Validate runs instance through the compiled schema, returning the first
// ValidationError encountered along the evaluation path, or nil.
func (s *Schema) Validate(instance any) *ValidationError {
	v := s.validators[s.entry]
	if v == nil {
		return nil
	}
	return v(instance, &Path{})
}

// FormatFunc reports whether value satisfies a named "format" assertion.
// Implementations receive the decoded instance value as-is; most only
// handle strings and return true for any other type, matching Draft-07's
// rule that format only applies to the type it was defined for.
type FormatFunc func(value any) bool

// Compiler holds the mutable configuration (registered handlers, formats,
// JSON codec) that Compile consults; the zero value is not usable, use
// NewCompiler.
type Compiler struct {
	mu sync.RWMutex

	handlers       map[string]Handler
	formats        map[string]FormatFunc
	assertFormat   bool
	defaultBaseURI string

	jsonDecoder func(data []byte, v any) error

	warnedFormats map[string]bool
}

// Option configures a Compiler at construction time.
type Option func(*Compiler)

// WithAssertFormat controls whether a known "format" name rejects instances
// that fail its predicate. A Compiler asserts known formats by default;
// WithAssertFormat(false) downgrades "format" to a non-binding annotation,
// for callers embedding schemas whose format values are known to be loose.
// A format name with no registered checker is never asserted either way —
// see RegisterFormat.
func WithAssertFormat(assert bool) Option {
	return func(c *Compiler) { c.assertFormat = assert }
}

// WithDefaultBaseURI sets the base URI used to resolve a schema document
// that declares no "$id" of its own.
func WithDefaultBaseURI(uri string) Option {
	return func(c *Compiler) { c.defaultBaseURI = uri }
}

// WithFormat registers or overrides a single named format checker.
func WithFormat(name string, fn FormatFunc) Option {
	return func(c *Compiler) { c.formats[name] = fn }
}

// WithHandler registers a Handler for a URI scheme, letting $ref fetch
// schema documents the compiler does not already have registered.
func WithHandler(scheme string, h Handler) Option {
	return func(c *Compiler) { c.handlers[scheme] = h }
}

// WithJSONDecoder overrides the JSON decoder used to parse schema bytes and
// "application/json" media-type remote documents.
func WithJSONDecoder(decoder func(data []byte, v any) error) Option {
	return func(c *Compiler) { c.jsonDecoder = decoder }
}

// NewCompiler creates a Compiler seeded with the built-in format checkers
// and http/https $ref handlers, then applies opts.
func NewCompiler(opts ...Option) *Compiler {
	c := &Compiler{
		handlers:      make(map[string]Handler),
		formats:       make(map[string]FormatFunc),
		warnedFormats: make(map[string]bool),
		assertFormat:  true,
		jsonDecoder:   func(data []byte, v any) error { return json.Unmarshal(data, v) },
	}
	for name, fn := range defaultFormats {
		c.formats[name] = fn
	}
	c.setupHandlers()

	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Compiler) setupHandlers() {
	client := &http.Client{Timeout: 10 * time.Second}

	fetch := func(uri string) (any, error) {
		req, err := http.NewRequestWithContext(context.Background(), http.MethodGet, uri, nil)
		if err != nil {
			return nil, err
		}
		resp, err := client.Do(req)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close() //nolint:errcheck

		if resp.StatusCode != http.StatusOK {
			return nil, ErrInvalidStatusCode
		}
		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, err
		}

		contentType := resp.Header.Get("Content-Type")
		if isYAMLContentType(contentType) {
			var doc any
			if err := yaml.Unmarshal(body, &doc); err != nil {
				return nil, ErrYAMLUnmarshal
			}
			return doc, nil
		}

		var doc any
		if err := c.jsonDecoder(body, &doc); err != nil {
			return nil, ErrJSONUnmarshal
		}
		return doc, nil
	}

	c.handlers["http"] = fetch
	c.handlers["https"] = fetch
}

func isYAMLContentType(contentType string) bool {
	return contentType == "application/yaml" || contentType == "text/yaml"
}

// RegisterFormat registers a custom format checker on an existing Compiler.
func (c *Compiler) RegisterFormat(name string, fn FormatFunc) *Compiler {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.formats[name] = fn
	return c
}

// RegisterHandler registers a $ref scheme handler on an existing Compiler.
func (c *Compiler) RegisterHandler(scheme string, h Handler) *Compiler {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.handlers[scheme] = h
	return c
}

// Compile parses schemaJSON and compiles it into a Schema ready to
// validate instances.
func (c *Compiler) Compile(schemaJSON []byte) (*Schema, error) {
	var root any
	if err := c.jsonDecoder(schemaJSON, &root); err != nil {
		return nil, &SchemaCompilationError{Err: ErrJSONUnmarshal}
	}
	return c.CompileValue(root)
}

// CompileValue compiles an already-decoded schema document (a bool or a
// map[string]any). Compile calls it after decoding; it is exposed for
// callers that build schema documents programmatically. Remote $ref targets
// are fetched by the Resolver and compiled in the same pass.
func (c *Compiler) CompileValue(root any) (*Schema, error) {
	baseURI := c.defaultBaseURI
	if obj, ok := root.(map[string]any); ok {
		if id, ok := obj["$id"].(string); ok && id != "" {
			baseURI = id
		}
	}
	if baseURI == "" {
		baseURI = "mem:///root"
	}

	c.mu.RLock()
	handlers := make(map[string]Handler, len(c.handlers))
	for k, v := range c.handlers {
		handlers[k] = v
	}
	c.mu.RUnlock()

	resolver := NewResolver(handlers)
	resolver.Register(baseURI, root)
	resolver.Enqueue(baseURI)

	compiled := make(map[string]Validator)
	if err := c.driveToFixedPoint(resolver, compiled); err != nil {
		return nil, err
	}

	return &Schema{entry: baseURI, validators: compiled}, nil
}

func (c *Compiler) driveToFixedPoint(resolver *Resolver, compiled map[string]Validator) error {
	for {
		uri, ok := resolver.Pop()
		if !ok {
			return nil
		}
		if _, done := compiled[uri]; done {
			continue
		}
		_, node, err := resolver.Resolve("", uri)
		if err != nil {
			return &SchemaCompilationError{URI: uri, Err: err}
		}
		v, err := c.compileNode(uri, node, resolver, compiled)
		if err != nil {
			return err
		}
		compiled[uri] = v
	}
}

// keywordOrder fixes the iteration order over a schema object's keywords so
// that, when more than one keyword on the same object fails against a given
// instance, which failure gets reported is deterministic.
var keywordOrder = []string{
	"type", "enum", "const",
	"multipleOf", "minimum", "exclusiveMinimum", "maximum", "exclusiveMaximum",
	"minLength", "maxLength", "pattern", "format",
	"items", "additionalItems", "minItems", "maxItems", "uniqueItems", "contains",
	"maxProperties", "minProperties", "required", "properties", "patternProperties",
	"additionalProperties", "dependencies", "propertyNames",
	"not", "allOf", "anyOf", "oneOf", "if",
}

func (c *Compiler) compileNode(uri string, node any, resolver *Resolver, compiled map[string]Validator) (Validator, error) {
	switch v := node.(type) {
	case bool:
		if v {
			return alwaysValid, nil
		}
		return alwaysInvalid, nil
	case map[string]any:
		if ref, ok := v["$ref"].(string); ok {
			scope := stripFragment(uri)
			target, _, err := resolver.Resolve(scope, ref)
			if err != nil {
				return nil, &SchemaCompilationError{URI: uri, Err: err}
			}
			if _, done := compiled[target]; !done {
				resolver.Enqueue(target)
			}
			return indirect(compiled, target), nil
		}

		ctx := &buildContext{baseURI: uri, resolver: resolver, compiler: c, compiled: compiled}
		var validators []Validator
		for _, keyword := range keywordOrder {
			if _, present := v[keyword]; !present {
				continue
			}
			builder, ok := registry[keyword]
			if !ok {
				continue
			}
			validator, err := builder(v, ctx)
			if err != nil {
				return nil, &SchemaCompilationError{URI: uri, Err: err}
			}
			if validator != nil {
				validators = append(validators, validator)
			}
		}
		return conjunction(validators), nil
	default:
		return nil, &SchemaCompilationError{URI: uri, Err: ErrSchemaMalformed}
	}
}

// child compiles a subschema found under the current node (a properties
// entry, an items schema, an allOf member, and so on), handling $ref the
// same indirect way compileNode does at the top level so a cycle reached
// through a nested keyword is just as safe as one reached directly.
func (ctx *buildContext) child(suffix string, node any) (Validator, error) {
	docURI, frag := splitFragment(ctx.baseURI)
	childURI := docURI + "#" + frag + suffix

	if obj, ok := node.(map[string]any); ok {
		if ref, ok := obj["$ref"].(string); ok {
			scope := stripFragment(ctx.baseURI)
			target, _, err := ctx.resolver.Resolve(scope, ref)
			if err != nil {
				return nil, err
			}
			if _, done := ctx.compiled[target]; !done {
				ctx.resolver.Enqueue(target)
			}
			return indirect(ctx.compiled, target), nil
		}
	}

	v, err := ctx.compiler.compileNode(childURI, node, ctx.resolver, ctx.compiled)
	if err != nil {
		return nil, err
	}
	ctx.compiled[childURI] = v
	return v, nil
}

func indirect(compiled map[string]Validator, target string) Validator {
	return func(value any, path *Path) *ValidationError {
		v, ok := compiled[target]
		if !ok || v == nil {
			return nil
		}
		return v(value, path)
	}
}

func alwaysValid(_ any, _ *Path) *ValidationError { return nil }

func alwaysInvalid(_ any, path *Path) *ValidationError {
	return NewValidationError(path.Tokens(), "false", "no instance is valid against a `false` schema", nil)
}

// warnUnknownFormat logs a missing format checker once per name, the way an
// implementation that treats unrecognized formats as a no-op should still
// make their absence visible.
func (c *Compiler) warnUnknownFormat(name string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.warnedFormats[name] {
		return
	}
	c.warnedFormats[name] = true
	log.Printf("jsonschema: unsupported format %q will not be checked", name)
}
