// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package jsonpointer_test

import (
	"testing"

	"github.com/validata/jsonschema/pkg/draft202012"
	"github.com/validata/jsonschema/pkg/jsonpointer"
	"github.com/validata/jsonschema/pkg/types"
)

func TestDecode(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"plain", "plain"},
		{"a~1b", "a/b"},
		{"a~0b", "a~b"},
		{"~01", "~1"},
	}
	for _, test := range tests {
		if got := jsonpointer.Decode(test.in); got != test.want {
			t.Errorf("Decode(%q) = %q, want %q", test.in, got, test.want)
		}
		if got := jsonpointer.Encode(test.want); got != test.in {
			t.Errorf("Encode(%q) = %q, want %q", test.want, got, test.in)
		}
	}
}

func TestDeref(t *testing.T) {
	root := map[string]any{
		"a/b": map[string]any{"c": []any{1.0, 2.0}},
	}

	v, err := jsonpointer.Deref(root, "/a~1b/c/1")
	if err != nil {
		t.Fatalf("Deref: %v", err)
	}
	if v != 2.0 {
		t.Errorf("Deref = %v, want 2", v)
	}

	if _, err := jsonpointer.Deref(root, "/missing"); err == nil {
		t.Error("Deref(/missing) = nil error, want error")
	}
	if _, err := jsonpointer.Deref(root, "/a~1b/c/9"); err == nil {
		t.Error("Deref(index out of range) = nil error, want error")
	}
	if _, err := jsonpointer.Deref(root, "/a~1b/c/x"); err == nil {
		t.Error("Deref(bad index) = nil error, want error")
	}
}

func TestDerefSchema(t *testing.T) {
	schemaJSON := map[string]any{
		"$schema": draft202012.SchemaID,
		"$defs": map[string]any{
			"a/b": map[string]any{"type": "integer"},
		},
		"allOf": []any{
			map[string]any{"minimum": 3.0},
		},
		"items": map[string]any{"type": "string"},
	}
	root, err := types.SchemaFromJSON(draft202012.SchemaID, nil, schemaJSON)
	if err != nil {
		t.Fatalf("SchemaFromJSON: %v", err)
	}

	tests := []struct {
		pointer string
		valid   any
		invalid any
	}{
		{"/$defs/a~1b", 3, "x"},
		{"/allOf/0", 5, 1},
		{"/items", "s", 1},
	}
	for _, test := range tests {
		s, err := jsonpointer.DerefSchema(draft202012.SchemaID, root, test.pointer)
		if err != nil {
			t.Errorf("DerefSchema(%q): %v", test.pointer, err)
			continue
		}
		if err := s.Validate(test.valid); err != nil {
			t.Errorf("%q: Validate(%v) = %v, want nil", test.pointer, test.valid, err)
		}
		if err := s.Validate(test.invalid); err == nil {
			t.Errorf("%q: Validate(%v) = nil, want error", test.pointer, test.invalid)
		}
	}

	for _, pointer := range []string{"/$defs/missing", "/allOf/5", "/nothing"} {
		if _, err := jsonpointer.DerefSchema(draft202012.SchemaID, root, pointer); err == nil {
			t.Errorf("DerefSchema(%q) = nil error, want error", pointer)
		}
	}
}
