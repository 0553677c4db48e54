package jsonschema

import (
	"fmt"
	"strings"

	"github.com/kaptinlin/go-i18n"
)

// ValidationError reports a single keyword failure at a single instance
// location. Unlike the hierarchical result some JSON Schema implementations
// build, a validator stops at the first failure along its branch and
// returns one flat error rather than a tree: allOf returns its first failing
// subschema's error, anyOf joins every subschema's message into its own
// Message, and oneOf reports how many subschemas matched.
type ValidationError struct {
	// Path is the instance location, as a sequence of object keys and
	// array indices (not yet rendered to a JSON Pointer string).
	Path []string

	// Keyword is the failing schema keyword, e.g. "required" or "minimum".
	Keyword string

	// Message is the default English message, with parameters already
	// substituted in.
	Message string

	// Params carries the raw values used to build Message, keyed by
	// placeholder name, so a localizer can rebuild the sentence in another
	// language.
	Params map[string]any
}

// NewValidationError builds a ValidationError, substituting Params into
// template using {placeholder} syntax.
func NewValidationError(path []string, keyword, template string, params map[string]any) *ValidationError {
	return &ValidationError{
		Path:    append([]string(nil), path...),
		Keyword: keyword,
		Message: renderTemplate(template, params),
		Params:  params,
	}
}

func (e *ValidationError) Error() string {
	if e == nil {
		return ""
	}
	loc := (&Path{tokens: e.Path}).String()
	if loc == "" {
		loc = "(root)"
	}
	return loc + ": " + e.Message
}

// Localize renders the error's message in the localizer's language, falling
// back to the default English Message if no translation is registered for
// Keyword.
func (e *ValidationError) Localize(localizer *i18n.Localizer) string {
	if e == nil {
		return ""
	}
	if localizer == nil {
		return e.Error()
	}
	msg := localizer.Get(e.Keyword, i18n.Vars(e.Params))
	if msg == "" {
		return e.Message
	}
	return msg
}

// renderTemplate substitutes {name} placeholders in template with their
// string form from params. Unknown placeholders are left verbatim.
func renderTemplate(template string, params map[string]any) string {
	if len(params) == 0 || !strings.Contains(template, "{") {
		return template
	}
	var b strings.Builder
	i := 0
	for i < len(template) {
		open := strings.IndexByte(template[i:], '{')
		if open < 0 {
			b.WriteString(template[i:])
			break
		}
		open += i
		close := strings.IndexByte(template[open:], '}')
		if close < 0 {
			b.WriteString(template[i:])
			break
		}
		close += open
		b.WriteString(template[i:open])
		key := template[open+1 : close]
		if v, ok := params[key]; ok {
			b.WriteString(toMessageString(v))
		} else {
			b.WriteString(template[open : close+1])
		}
		i = close + 1
	}
	return b.String()
}

func toMessageString(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case *Rat:
		return FormatRat(x)
	case []string:
		return strings.Join(x, ", ")
	default:
		return fmt.Sprint(x)
	}
}
