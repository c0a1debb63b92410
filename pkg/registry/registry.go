// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package registry maps URIs to schema documents and resolves
// references against them.
//
// A [Registry] is an immutable collection of schema resources.
// Adding a resource returns a new Registry, so registries can be
// shared between compiled validators without locking. Remote
// retrieval is strictly opt-in: a Registry without a Retrieve
// function never touches the network.
package registry

import (
	"fmt"
	"maps"
	"net/url"

	json "github.com/goccy/go-json"

	"github.com/validata/jsonschema/pkg/types"
)

// A Resource is a schema document stored in a registry.
type Resource struct {
	// Schema is the parsed document.
	Schema *types.Schema
	// Dialect is the $schema URI the document was parsed under.
	Dialect string
}

// Opts configures a new Registry.
type Opts struct {
	// Retrieve fetches the raw bytes of an absolute URI that is
	// not stored in the registry. If nil, unknown URIs are
	// unresolvable.
	Retrieve func(uri string) ([]byte, error)
}

// A Registry is an immutable mapping from URI to schema resource.
// The zero value is usable and empty.
type Registry struct {
	resources map[string]Resource
	retrieve  func(uri string) ([]byte, error)
}

// New returns an empty Registry.
func New(opts *Opts) *Registry {
	r := &Registry{}
	if opts != nil {
		r.retrieve = opts.Retrieve
	}
	return r
}

// WithResource returns a Registry that additionally maps uri to the
// schema document encoded in data. The dialect is taken from the
// document's $schema keyword, falling back to the default
// vocabulary. Storing a URI that is already present replaces the
// earlier resource; the receiver is not modified.
func (r *Registry) WithResource(uri string, data []byte) (*Registry, error) {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, fmt.Errorf("registry resource %q: %w", uri, err)
	}
	return r.WithResourceValue(uri, v)
}

// WithResourceValue is like WithResource for an already-decoded
// JSON document.
func (r *Registry) WithResourceValue(uri string, v any) (*Registry, error) {
	base, err := url.Parse(uri)
	if err != nil {
		return nil, fmt.Errorf("registry resource %q: %w", uri, err)
	}

	s, err := types.SchemaFromJSON("", base, v)
	if err != nil {
		return nil, fmt.Errorf("registry resource %q: %w", uri, err)
	}

	dialect := ""
	if pv, ok := s.LookupKeyword("$schema"); ok {
		dialect = string(pv.(types.PartString))
	}
	return r.WithSchema(uri, s, dialect), nil
}

// WithSchema returns a Registry that additionally maps uri to an
// already-built schema. Storing a URI that is already present
// replaces the earlier resource; the receiver is not modified.
func (r *Registry) WithSchema(uri string, s *types.Schema, dialect string) *Registry {
	resources := make(map[string]Resource, len(r.resources)+1)
	maps.Copy(resources, r.resources)
	resources[uri] = Resource{Schema: s, Dialect: dialect}
	return &Registry{
		resources: resources,
		retrieve:  r.retrieve,
	}
}

// Lookup returns the resource stored for uri.
func (r *Registry) Lookup(uri string) (Resource, bool) {
	res, ok := r.resources[uri]
	return res, ok
}

// Len returns the number of stored resources.
func (r *Registry) Len() int {
	return len(r.resources)
}

// Loader returns a schema loader function suitable for
// [types.ResolveOpts]. The loader first consults the stored
// resources and then, if the registry has a Retrieve function,
// fetches and parses the URI. Anything else is an
// [*UnresolvableError].
func (r *Registry) Loader() func(schemaID string, uri *url.URL) (*types.Schema, error) {
	return func(schemaID string, uri *url.URL) (*types.Schema, error) {
		key := uri.String()
		if res, ok := r.resources[key]; ok {
			return res.Schema, nil
		}

		if r.retrieve == nil {
			return nil, &UnresolvableError{
				Ref:    key,
				Reason: "URI not in registry and retrieval is disabled",
			}
		}

		data, err := r.retrieve(key)
		if err != nil {
			return nil, &UnresolvableError{
				Ref:    key,
				Reason: "retrieval failed",
				Err:    err,
			}
		}

		var v any
		if err := json.Unmarshal(data, &v); err != nil {
			return nil, &UnresolvableError{
				Ref:    key,
				Reason: "retrieved document is not valid JSON",
				Err:    err,
			}
		}
		return types.SchemaFromJSON(schemaID, uri, v)
	}
}
