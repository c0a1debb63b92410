// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package metaschema loads the meta-schemas embedded in the dialect
// packages, so that a $ref to a json-schema.org schema URI works
// without network access.
package metaschema

import (
	"embed"
	"fmt"
	"net/url"
	"strings"

	"github.com/validata/jsonschema/internal/schemacache"
	"github.com/validata/jsonschema/pkg/types"
)

// metaCache is a cache of the meta-schemas.
// We use a single cache since they shouldn't change.
var metaCache schemacache.ConcurrentCache

// Load checks whether uri refers to a meta-schema in metaFS,
// and loads it if it does. If uri is not a meta-schema,
// this returns nil, nil. metaFS is for the dialect named by
// schemaID, and prefix is the URI path prefix of that dialect,
// such as "/draft/2020-12/".
func Load(schemaID, prefix string, metaFS *embed.FS, uri *url.URL, ropts *types.ResolveOpts) (*types.Schema, error) {
	if uri.Scheme != "http" && uri.Scheme != "https" {
		return nil, nil
	}
	if uri.Host != "json-schema.org" {
		return nil, nil
	}
	path, ok := strings.CutPrefix(uri.Path, prefix)
	if !ok {
		return nil, nil
	}

	if s := metaCache.Load(schemaID, path); s != nil {
		return s, nil
	}

	data, err := metaFS.ReadFile("metaschema/" + path + ".json")
	if err != nil {
		return nil, fmt.Errorf("can't find meta-schema URI %q: %v", uri, err)
	}

	var s types.Schema
	if err := s.UnmarshalJSON(data); err != nil {
		return nil, fmt.Errorf("can't parse meta-schema URI %q: %v", uri, err)
	}

	return metaCache.Store(schemaID, path, &s), nil
}
