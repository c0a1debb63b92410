// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package validator_test

import (
	"testing"

	"github.com/validata/jsonschema/pkg/draft201909"
	"github.com/validata/jsonschema/pkg/draft3"
	"github.com/validata/jsonschema/pkg/draft4"
)

func TestDraft3Keywords(t *testing.T) {
	tests := []struct {
		name     string
		schema   any
		instance any
		valid    bool
	}{
		{"required true satisfied", map[string]any{
			"properties": map[string]any{
				"a": map[string]any{"required": true},
			},
		}, map[string]any{"a": 1}, true},
		{"required true missing", map[string]any{
			"properties": map[string]any{
				"a": map[string]any{"required": true},
			},
		}, map[string]any{}, false},
		{"required false missing", map[string]any{
			"properties": map[string]any{
				"a": map[string]any{"required": false},
			},
		}, map[string]any{}, true},

		{"extends single", map[string]any{
			"type":    "integer",
			"extends": map[string]any{"minimum": 3.0},
		}, 2, false},
		{"extends array", map[string]any{
			"extends": []any{
				map[string]any{"minimum": 3.0},
				map[string]any{"maximum": 5.0},
			},
		}, 4, true},
		{"extends array fails", map[string]any{
			"extends": []any{
				map[string]any{"minimum": 3.0},
				map[string]any{"maximum": 5.0},
			},
		}, 6, false},

		{"disallow string", map[string]any{"disallow": "string"}, "s", false},
		{"disallow other type", map[string]any{"disallow": "string"}, 4, true},
		{"disallow union", map[string]any{"disallow": []any{"string", "number"}}, 4, false},

		{"divisibleBy", map[string]any{"divisibleBy": 3.0}, 9, true},
		{"divisibleBy fails", map[string]any{"divisibleBy": 3.0}, 10, false},

		{"type any", map[string]any{"type": "any"}, map[string]any{}, true},

		{"maximum inclusive", map[string]any{"maximum": 5.0}, 5, true},
		{"maximum exclusive", map[string]any{
			"maximum":          5.0,
			"exclusiveMaximum": true,
		}, 5, false},
		{"minimum exclusive", map[string]any{
			"minimum":          5.0,
			"exclusiveMinimum": true,
		}, 5, false},

		{"dependencies bare name", map[string]any{
			"dependencies": map[string]any{"a": "b"},
		}, map[string]any{"a": 1}, false},
		{"dependencies bare name ok", map[string]any{
			"dependencies": map[string]any{"a": "b"},
		}, map[string]any{"a": 1, "b": 2}, true},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			s := compile(t, draft3.SchemaID, test.schema)
			err := s.Validate(test.instance)
			if got := err == nil; got != test.valid {
				t.Errorf("Validate(%v) = %v, want valid %t", test.instance, err, test.valid)
			}
		})
	}
}

func TestDraft4Keywords(t *testing.T) {
	tests := []struct {
		name     string
		schema   any
		instance any
		valid    bool
	}{
		{"strict integer type", map[string]any{"type": "integer"}, 3.0, false},
		{"integer typed", map[string]any{"type": "integer"}, 3, true},
		{"exclusiveMaximum boolean", map[string]any{
			"maximum":          10.0,
			"exclusiveMaximum": true,
		}, 10, false},
		{"exclusiveMaximum absent", map[string]any{
			"maximum": 10.0,
		}, 10, true},
		{"exclusiveMinimum boolean", map[string]any{
			"minimum":          2.0,
			"exclusiveMinimum": true,
		}, 2, false},
		{"dependencies array", map[string]any{
			"dependencies": map[string]any{"a": []any{"b"}},
		}, map[string]any{"a": 1}, false},
		{"dependencies schema", map[string]any{
			"dependencies": map[string]any{"a": map[string]any{"minProperties": 2.0}},
		}, map[string]any{"a": 1}, false},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			s := compile(t, draft4.SchemaID, test.schema)
			err := s.Validate(test.instance)
			if got := err == nil; got != test.valid {
				t.Errorf("Validate(%v) = %v, want valid %t", test.instance, err, test.valid)
			}
		})
	}
}

func TestDraft201909Items(t *testing.T) {
	tests := []struct {
		name     string
		schema   any
		instance any
		valid    bool
	}{
		{"array items with unevaluatedItems", map[string]any{
			"items":            []any{map[string]any{"type": "integer"}},
			"unevaluatedItems": false,
		}, []any{1, 2}, false},
		{"additionalItems evaluates tail", map[string]any{
			"items":            []any{map[string]any{"type": "integer"}},
			"additionalItems":  map[string]any{"type": "string"},
			"unevaluatedItems": false,
		}, []any{1, "a"}, true},
		{"dependentSchemas", map[string]any{
			"dependentSchemas": map[string]any{
				"a": map[string]any{"required": []any{"b"}},
			},
		}, map[string]any{"a": 1}, false},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			s := compile(t, draft201909.SchemaID, test.schema)
			err := s.Validate(test.instance)
			if got := err == nil; got != test.valid {
				t.Errorf("Validate(%v) = %v, want valid %t", test.instance, err, test.valid)
			}
		})
	}
}
