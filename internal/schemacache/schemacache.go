// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package schemacache is a simple in-process cache for schemas
// that have been parsed.
package schemacache

import (
	"sync"

	"github.com/validata/jsonschema/pkg/types"
)

// Cache is a cache that holds schemas.
// The zero value is an empty cache. Cache is not safe for
// concurrent use; see [ConcurrentCache].
type Cache struct {
	m map[cacheKey]*types.Schema
}

// cacheKey is the key type of the cache.
// We need to track both the dialect and the path, as it is
// possible, at least in the testsuite, for the same path to be
// used by different schema dialects.
type cacheKey struct {
	dialect string
	path    string
}

// Load checks the cache for a schema.
// It returns nil if the path is not cached.
func (c *Cache) Load(dialect, path string) *types.Schema {
	return c.m[cacheKey{dialect, path}]
}

// Store stores a schema in the cache.
// It returns the schema to use, which may differ
// if it has already been cached.
func (c *Cache) Store(dialect, path string, s *types.Schema) *types.Schema {
	key := cacheKey{dialect, path}
	if sc := c.m[key]; sc != nil {
		return sc
	}

	if c.m == nil {
		c.m = make(map[cacheKey]*types.Schema)
	}

	c.m[key] = s
	return s
}

// ConcurrentCache is a cache that permits concurrent access.
type ConcurrentCache struct {
	mu    sync.Mutex
	cache Cache
}

// Load checks the cache for a schema.
// It returns nil if the path is not cached.
func (cc *ConcurrentCache) Load(dialect, path string) *types.Schema {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.cache.Load(dialect, path)
}

// Store stores a schema in the cache.
// It returns the schema to use, which may differ
// if some other goroutine already cached it.
func (cc *ConcurrentCache) Store(dialect, path string, s *types.Schema) *types.Schema {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.cache.Store(dialect, path, s)
}
