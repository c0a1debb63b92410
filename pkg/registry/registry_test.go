// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package registry_test

import (
	"errors"
	"fmt"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/validata/jsonschema/pkg/draft201909"
	"github.com/validata/jsonschema/pkg/draft202012"
	"github.com/validata/jsonschema/pkg/registry"
	"github.com/validata/jsonschema/pkg/types"
)

func TestRegistryImmutable(t *testing.T) {
	r0 := registry.New(nil)
	require.Equal(t, 0, r0.Len())

	r1, err := r0.WithResource("https://example.com/a", []byte(`{"type": "integer"}`))
	require.NoError(t, err)

	assert.Equal(t, 0, r0.Len(), "adding a resource must not modify the receiver")
	assert.Equal(t, 1, r1.Len())

	_, ok := r0.Lookup("https://example.com/a")
	assert.False(t, ok)
	res, ok := r1.Lookup("https://example.com/a")
	require.True(t, ok)
	assert.NotNil(t, res.Schema)
}

func TestRegistryLastWriteWins(t *testing.T) {
	r := registry.New(nil)
	r, err := r.WithResource("https://example.com/a", []byte(`{"type": "integer"}`))
	require.NoError(t, err)
	r, err = r.WithResource("https://example.com/a", []byte(`{"type": "string"}`))
	require.NoError(t, err)

	require.Equal(t, 1, r.Len())
	res, ok := r.Lookup("https://example.com/a")
	require.True(t, ok)
	assert.NoError(t, res.Schema.Validate("hello"))
	assert.Error(t, res.Schema.Validate(17))
}

func TestWithResourceValueKeepsDocument(t *testing.T) {
	doc := map[string]any{
		"$schema": draft202012.SchemaID,
		"type":    "string",
	}
	r, err := registry.New(nil).WithResourceValue("https://example.com/s", doc)
	require.NoError(t, err)

	assert.Equal(t, map[string]any{
		"$schema": draft202012.SchemaID,
		"type":    "string",
	}, doc, "registering a document must not modify it")

	res, ok := r.Lookup("https://example.com/s")
	require.True(t, ok)
	assert.Equal(t, draft202012.SchemaID, res.Dialect)
}

func TestRegistryBadResource(t *testing.T) {
	r := registry.New(nil)
	_, err := r.WithResource("https://example.com/a", []byte(`{`))
	assert.Error(t, err)
}

// resolve compiles a schema document against a registry.
func resolve(t *testing.T, reg *registry.Registry, schemaJSON any) *types.Schema {
	t.Helper()
	s, err := types.SchemaFromJSON(draft202012.SchemaID, nil, schemaJSON)
	require.NoError(t, err)
	require.NoError(t, s.Resolve(&types.ResolveOpts{Loader: reg.Loader()}))
	return s
}

func TestLoaderFromRegistry(t *testing.T) {
	reg := registry.New(nil)
	reg, err := reg.WithResource("https://example.com/int", []byte(`{
		"$schema": "https://json-schema.org/draft/2020-12/schema",
		"$id": "https://example.com/int",
		"type": "integer"
	}`))
	require.NoError(t, err)

	s := resolve(t, reg, map[string]any{
		"$ref": "https://example.com/int",
	})
	assert.NoError(t, s.Validate(42))
	assert.Error(t, s.Validate("x"))
}

func TestLoaderRetrieval(t *testing.T) {
	docs := map[string][]byte{
		"https://example.com/str": []byte(`{"type": "string"}`),
	}
	var fetched []string
	reg := registry.New(&registry.Opts{
		Retrieve: func(uri string) ([]byte, error) {
			fetched = append(fetched, uri)
			data, ok := docs[uri]
			if !ok {
				return nil, fmt.Errorf("no such document %q", uri)
			}
			return data, nil
		},
	})

	s := resolve(t, reg, map[string]any{
		"$ref": "https://example.com/str",
	})
	assert.NoError(t, s.Validate("ok"))
	assert.Error(t, s.Validate(1))
	assert.Equal(t, []string{"https://example.com/str"}, fetched)
}

func TestLoaderUnresolvable(t *testing.T) {
	reg := registry.New(nil)
	loader := reg.Loader()

	u, err := url.Parse("https://example.com/missing")
	require.NoError(t, err)
	_, err = loader(draft202012.SchemaID, u)
	require.Error(t, err)

	var ue *registry.UnresolvableError
	require.True(t, errors.As(err, &ue))
	assert.Equal(t, "https://example.com/missing", ue.Ref)
	assert.Nil(t, ue.Unwrap())
}

func TestLoaderRetrieveFailureWrapped(t *testing.T) {
	fetchErr := errors.New("connection refused")
	reg := registry.New(&registry.Opts{
		Retrieve: func(uri string) ([]byte, error) {
			return nil, fetchErr
		},
	})

	u, err := url.Parse("https://example.com/a")
	require.NoError(t, err)
	_, err = reg.Loader()(draft202012.SchemaID, u)
	require.Error(t, err)

	var ue *registry.UnresolvableError
	require.True(t, errors.As(err, &ue))
	assert.ErrorIs(t, err, fetchErr, "Unwrap must expose the retrieve failure")
}

func TestResolverScopes(t *testing.T) {
	base, err := url.Parse("https://example.com/root/schema.json")
	require.NoError(t, err)
	rv := registry.NewResolver(base)

	u, err := rv.Resolve("other.json")
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/root/other.json", u.String())

	inner, err := url.Parse("https://nested.test/dir/")
	require.NoError(t, err)
	rv.PushScope(inner)
	u, err = rv.Resolve("leaf.json")
	require.NoError(t, err)
	assert.Equal(t, "https://nested.test/dir/leaf.json", u.String())

	rv.PopScope()
	u, err = rv.Resolve("other.json")
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/root/other.json", u.String())

	_, err = rv.Resolve(":bad\x00uri")
	assert.Error(t, err)
}

func TestAnchorResolution(t *testing.T) {
	s := resolve(t, registry.New(nil), map[string]any{
		"$defs": map[string]any{
			"num": map[string]any{
				"$anchor": "num",
				"type":    "number",
			},
		},
		"$ref": "#num",
	})
	assert.NoError(t, s.Validate(1.5))
	assert.Error(t, s.Validate("x"))
}

func TestDanglingPointer(t *testing.T) {
	s, err := types.SchemaFromJSON(draft202012.SchemaID, nil, map[string]any{
		"$ref": "#/$defs/missing",
	})
	require.NoError(t, err)
	assert.Error(t, s.Resolve(&types.ResolveOpts{Loader: registry.New(nil).Loader()}))
}

func TestDynamicRef(t *testing.T) {
	// A generic list whose item schema is a $dynamicAnchor, and an
	// extension that rebinds the anchor to restrict items to
	// strings. The anchor resolves outermost-first.
	reg := registry.New(nil)
	reg, err := reg.WithResource("https://example.com/list", []byte(`{
		"$schema": "https://json-schema.org/draft/2020-12/schema",
		"$id": "https://example.com/list",
		"type": "array",
		"items": {"$dynamicRef": "#items"},
		"$defs": {
			"items": {"$dynamicAnchor": "items"}
		}
	}`))
	require.NoError(t, err)

	s := resolve(t, reg, map[string]any{
		"$ref": "https://example.com/list",
		"$defs": map[string]any{
			"strings": map[string]any{
				"$dynamicAnchor": "items",
				"type":           "string",
			},
		},
	})

	// Through the extension, the anchor binds to the outer schema,
	// so non-strings fail.
	assert.NoError(t, s.Validate([]any{"a", "b"}))
	assert.Error(t, s.Validate([]any{"a", 1}))

	// The generic list alone accepts anything.
	res, ok := reg.Lookup("https://example.com/list")
	require.True(t, ok)
	assert.NoError(t, res.Schema.Validate([]any{1, "a"}))
}

func TestRecursiveRef(t *testing.T) {
	// The draft 2019-09 form: a generic tree node marked with
	// $recursiveAnchor, extended by a schema that adds a property
	// constraint. $recursiveRef: "#" rebinds to the extension.
	reg := registry.New(nil)
	reg, err := reg.WithResource("https://example.com/tree", []byte(`{
		"$schema": "https://json-schema.org/draft/2019-09/schema",
		"$id": "https://example.com/tree",
		"$recursiveAnchor": true,
		"type": "object",
		"properties": {
			"children": {
				"type": "array",
				"items": {"$recursiveRef": "#"}
			}
		}
	}`))
	require.NoError(t, err)

	s, err := types.SchemaFromJSON(draft201909.SchemaID, nil, map[string]any{
		"$schema":          draft201909.SchemaID,
		"$recursiveAnchor": true,
		"$ref":             "https://example.com/tree",
		"properties": map[string]any{
			"name": map[string]any{"type": "string"},
		},
	})
	require.NoError(t, err)
	require.NoError(t, s.Resolve(&types.ResolveOpts{Loader: reg.Loader()}))

	valid := map[string]any{
		"name": "root",
		"children": []any{
			map[string]any{"name": "leaf"},
		},
	}
	assert.NoError(t, s.Validate(valid))

	invalid := map[string]any{
		"children": []any{
			map[string]any{"name": 7},
		},
	}
	assert.Error(t, s.Validate(invalid))
}
