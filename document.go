package jsonschema

// defaultCompiler is the Compiler behind the package-level Compile,
// CompileString, and MustCompile helpers, so a caller that has no need for
// custom formats or handlers can skip constructing a Compiler directly.
var defaultCompiler = NewCompiler()

// Compile parses and compiles a Draft-07 schema document using the default
// compiler. Use NewCompiler when custom formats, handlers, or a default
// base URI are needed.
func Compile(schemaJSON []byte) (*Schema, error) {
	return defaultCompiler.Compile(schemaJSON)
}

// CompileString is Compile for a schema given as a string.
func CompileString(schemaJSON string) (*Schema, error) {
	return defaultCompiler.Compile([]byte(schemaJSON))
}

// MustCompile is Compile but panics on error, for package-level schema
// variables initialized from a literal known to be valid at compile time.
func MustCompile(schemaJSON string) *Schema {
	s, err := CompileString(schemaJSON)
	if err != nil {
		panic(err)
	}
	return s
}

// RegisterFormat registers a custom format checker on the default compiler.
func RegisterFormat(name string, fn FormatFunc) {
	defaultCompiler.RegisterFormat(name, fn)
}

// RegisterHandler registers a $ref scheme handler on the default compiler.
func RegisterHandler(scheme string, h Handler) {
	defaultCompiler.RegisterHandler(scheme, h)
}
