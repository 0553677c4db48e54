package jsonschema

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/kaptinlin/jsonpointer"
)

// Handler fetches and decodes a remote schema document identified by an
// absolute URI with a scheme the caller does not serve from its own
// registry (commonly "http"/"https", or a custom scheme an embedding
// application wires up). It is the pluggable seam the specification keeps
// out of this package's own scope: Compiler.RegisterHandler lets a caller
// supply one per scheme.
type Handler func(uri string) (any, error)

// Resolver tracks every schema document known to a compilation, indexed by
// absolute URI (and by URI#anchor for plain-name $anchor/$id fragments), and
// drives the work queue that lets compileOne resolve $ref cycles without
// unbounded recursion: a $ref to a URI not yet compiled enqueues that URI
// and returns an indirect node pointing at the eventual result.
type Resolver struct {
	handlers map[string]Handler

	// registry maps an absolute URI (schema root, $id value, or $id#anchor)
	// to the raw schema node (bool or map[string]any) found there.
	registry map[string]any

	// docs caches whole documents fetched via a Handler, keyed by the
	// document's own absolute URI (without fragment), so a schema with
	// several $refs into the same remote document fetches it once.
	docs map[string]any

	queue  []string
	queued map[string]bool
}

// NewResolver creates a Resolver seeded with nothing; call Register to add
// the root document before compilation begins.
func NewResolver(handlers map[string]Handler) *Resolver {
	return &Resolver{
		handlers: handlers,
		registry: make(map[string]any),
		docs:     make(map[string]any),
		queued:   make(map[string]bool),
	}
}

// Register walks a schema document (a boolean or a JSON object, decoded to
// map[string]any) starting at baseURI, recording every $id and $anchor it
// finds so that later $ref lookups resolve without re-walking the tree.
// baseURI becomes the document's own entry in the registry too.
func (r *Resolver) Register(baseURI string, node any) {
	r.registry[baseURI] = node
	r.walk(baseURI, node)
}

func (r *Resolver) walk(scopeURI string, node any) {
	obj, ok := node.(map[string]any)
	if !ok {
		return
	}

	if id, ok := obj["$id"].(string); ok && id != "" {
		resolved := resolveURIReference(scopeURI, id)
		doc, frag := splitFragment(resolved)
		if frag != "" && !strings.HasPrefix(frag, "/") {
			r.registry[doc+"#"+frag] = node
		}
		scopeURI = doc
		if _, exists := r.registry[scopeURI]; !exists {
			r.registry[scopeURI] = node
		}
	}
	if anchor, ok := obj["$anchor"].(string); ok && anchor != "" {
		r.registry[scopeURI+"#"+anchor] = node
	}

	for key, child := range obj {
		switch key {
		case "enum", "const":
			continue
		case "properties", "patternProperties", "definitions", "$defs", "dependencies":
			if childMap, ok := child.(map[string]any); ok {
				for _, sub := range childMap {
					r.walk(scopeURI, sub)
				}
			}
			continue
		case "items", "additionalItems":
			// "items" is either a single schema or (Draft-07 tuple form) a
			// list of schemas; "additionalItems" is always a single schema.
			if list, ok := child.([]any); ok {
				for _, sub := range list {
					r.walk(scopeURI, sub)
				}
			} else {
				r.walk(scopeURI, child)
			}
			continue
		case "additionalProperties", "contains", "propertyNames", "not", "if", "then", "else":
			r.walk(scopeURI, child)
			continue
		case "allOf", "anyOf", "oneOf":
			if list, ok := child.([]any); ok {
				for _, sub := range list {
					r.walk(scopeURI, sub)
				}
			}
			continue
		}
	}
}

// Enqueue adds uri to the compilation work queue unless it has already been
// queued, returning whether it was newly added.
func (r *Resolver) Enqueue(uri string) bool {
	if r.queued[uri] {
		return false
	}
	r.queued[uri] = true
	r.queue = append(r.queue, uri)
	return true
}

// Pop removes and returns the next URI from the work queue.
func (r *Resolver) Pop() (string, bool) {
	if len(r.queue) == 0 {
		return "", false
	}
	uri := r.queue[0]
	r.queue = r.queue[1:]
	return uri, true
}

// Resolve looks up the schema node named by ref relative to scopeURI,
// fetching and registering the remote document first if necessary. It
// returns the node's absolute URI (including any fragment) and the node
// itself.
func (r *Resolver) Resolve(scopeURI, ref string) (absoluteURI string, node any, err error) {
	target := resolveURIReference(scopeURI, ref)
	docURI, frag := splitFragment(target)

	if _, ok := r.registry[docURI]; !ok {
		if err := r.fetch(docURI); err != nil {
			return "", nil, err
		}
	}

	if frag == "" {
		node, ok := r.registry[docURI]
		if !ok {
			return "", nil, ErrUnresolvedReference
		}
		return docURI, node, nil
	}

	if !strings.HasPrefix(frag, "/") {
		// Plain-name fragment: a $anchor, or (legacy) an $id without a
		// leading slash.
		if node, ok := r.registry[docURI+"#"+frag]; ok {
			return docURI + "#" + frag, node, nil
		}
		return "", nil, ErrUnresolvedReference
	}

	root, ok := r.registry[docURI]
	if !ok {
		return "", nil, ErrUnresolvedReference
	}
	node, err = walkPointer(root, frag)
	if err != nil {
		return "", nil, err
	}
	return target, node, nil
}

func (r *Resolver) fetch(docURI string) error {
	if cached, ok := r.docs[docURI]; ok {
		r.registry[docURI] = cached
		r.walk(docURI, cached)
		return nil
	}

	scheme := getURLScheme(docURI)
	handler, ok := r.handlers[scheme]
	if !ok {
		return ErrUnsupportedScheme
	}
	doc, err := handler(docURI)
	if err != nil {
		return &SchemaCompilationError{URI: docURI, Err: fmt.Errorf("%w: %w", ErrHandlerFailure, err)}
	}
	r.docs[docURI] = doc
	r.registry[docURI] = doc
	r.walk(docURI, doc)
	return nil
}

// walkPointer resolves a JSON Pointer fragment (leading "/") against a
// decoded document, descending through map[string]any and []any nodes.
func walkPointer(doc any, pointer string) (any, error) {
	tokens := jsonpointer.Parse(pointer)
	cur := doc
	for _, raw := range tokens {
		tok, err := url.PathUnescape(raw)
		if err != nil {
			return nil, ErrJSONPointerSegmentNotFound
		}
		switch v := cur.(type) {
		case map[string]any:
			next, ok := v[tok]
			if !ok {
				return nil, ErrJSONPointerSegmentNotFound
			}
			cur = next
		case []any:
			idx, err := strconv.Atoi(tok)
			if err != nil || idx < 0 || idx >= len(v) {
				return nil, ErrJSONPointerSegmentNotFound
			}
			cur = v[idx]
		default:
			return nil, ErrJSONPointerSegmentNotFound
		}
	}
	return cur, nil
}

// resolveURIReference resolves ref against base the way a browser resolves
// a link: absolute refs pass through unchanged, fragment-only refs keep
// base's document and swap the fragment, and everything else resolves
// through net/url so relative paths and "../" segments behave.
func resolveURIReference(base, ref string) string {
	if ref == "" {
		return base
	}
	baseURL, err := url.Parse(base)
	if err != nil {
		return ref
	}
	refURL, err := url.Parse(ref)
	if err != nil {
		return ref
	}
	return baseURL.ResolveReference(refURL).String()
}

func splitFragment(uri string) (docURI, fragment string) {
	parts := strings.SplitN(uri, "#", 2)
	if len(parts) == 2 {
		return parts[0], parts[1]
	}
	return uri, ""
}

func stripFragment(uri string) string {
	doc, _ := splitFragment(uri)
	return doc
}

func getURLScheme(uri string) string {
	u, err := url.Parse(uri)
	if err != nil {
		return ""
	}
	return u.Scheme
}
