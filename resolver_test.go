package jsonschema

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolverEnqueueDedup(t *testing.T) {
	r := NewResolver(nil)
	assert.True(t, r.Enqueue("mem:///a"))
	assert.False(t, r.Enqueue("mem:///a"))

	uri, ok := r.Pop()
	require.True(t, ok)
	assert.Equal(t, "mem:///a", uri)

	_, ok = r.Pop()
	assert.False(t, ok)
}

func TestResolverResolveJSONPointer(t *testing.T) {
	r := NewResolver(nil)
	doc := map[string]any{
		"definitions": map[string]any{
			"positiveInt": map[string]any{"type": "integer", "minimum": float64(0)},
		},
	}
	r.Register("mem:///root", doc)

	uri, node, err := r.Resolve("mem:///root", "#/definitions/positiveInt")
	require.NoError(t, err)
	assert.Equal(t, "mem:///root#/definitions/positiveInt", uri)
	assert.Equal(t, "integer", node.(map[string]any)["type"])
}

func TestResolverResolveAnchor(t *testing.T) {
	r := NewResolver(nil)
	doc := map[string]any{
		"definitions": map[string]any{
			"positiveInt": map[string]any{"$anchor": "posInt", "type": "integer"},
		},
	}
	r.Register("mem:///root", doc)

	uri, node, err := r.Resolve("mem:///root", "#posInt")
	require.NoError(t, err)
	assert.Equal(t, "mem:///root#posInt", uri)
	assert.Equal(t, "integer", node.(map[string]any)["type"])
}

func TestResolverResolveUnknownPointerFails(t *testing.T) {
	r := NewResolver(nil)
	r.Register("mem:///root", map[string]any{"type": "string"})

	_, _, err := r.Resolve("mem:///root", "#/does/not/exist")
	assert.Error(t, err)
}

func TestResolverUnsupportedScheme(t *testing.T) {
	r := NewResolver(map[string]Handler{})
	_, _, err := r.Resolve("mem:///root", "custom://elsewhere/schema.json")
	assert.Error(t, err)
}

func TestResolverHandlerFailureIsDetectable(t *testing.T) {
	boom := errors.New("connection refused")
	r := NewResolver(map[string]Handler{
		"custom": func(uri string) (any, error) { return nil, boom },
	})

	_, _, err := r.Resolve("mem:///root", "custom://elsewhere/schema.json")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrHandlerFailure))
	assert.True(t, errors.Is(err, boom))
}
