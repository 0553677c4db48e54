package jsonschema

import "errors"

// === Compile-time errors ===
var (
	// ErrSchemaMalformed is returned when a schema node is neither a boolean
	// nor an object.
	ErrSchemaMalformed = errors.New("schema is neither a boolean nor an object")

	// ErrUnresolvedReference is returned when a $ref target cannot be located.
	ErrUnresolvedReference = errors.New("unresolved reference")

	// ErrUnsupportedScheme is returned when a $ref's URI scheme has no
	// registered handler.
	ErrUnsupportedScheme = errors.New("unsupported reference scheme")

	// ErrHandlerFailure wraps any error a registered remote Handler returns
	// while fetching a schema document, so a caller can detect the
	// condition with errors.Is(err, ErrHandlerFailure) regardless of what
	// the handler itself returned.
	ErrHandlerFailure = errors.New("remote schema handler failed")

	// ErrJSONPointerSegmentNotFound is returned when a JSON Pointer fragment
	// cannot be walked to completion against the target document.
	ErrJSONPointerSegmentNotFound = errors.New("json pointer segment not found")

	// ErrInvalidSchemaType is returned when the "type" keyword's value is
	// neither a string nor an array of strings.
	ErrInvalidSchemaType = errors.New("invalid schema type")

	// ErrInvalidStatusCode is returned when a remote schema fetch returns a
	// non-200 HTTP status.
	ErrInvalidStatusCode = errors.New("invalid http status code")
)

// === JSON decode errors ===
var (
	// ErrJSONUnmarshal is returned when schema bytes, or a remote schema
	// document fetched as JSON, cannot be decoded.
	ErrJSONUnmarshal = errors.New("json unmarshal failed")

	// ErrYAMLUnmarshal is returned when a remote schema document fetched as
	// YAML cannot be decoded.
	ErrYAMLUnmarshal = errors.New("yaml unmarshal failed")
)

// SchemaCompilationError wraps a failure encountered while compiling a
// schema, naming the absolute URI of the subschema being compiled when the
// failure occurred.
type SchemaCompilationError struct {
	URI string
	Err error
}

func (e *SchemaCompilationError) Error() string {
	if e.URI == "" {
		return "schema compilation failed: " + e.Err.Error()
	}
	return "schema compilation failed at " + e.URI + ": " + e.Err.Error()
}

func (e *SchemaCompilationError) Unwrap() error {
	return e.Err
}
