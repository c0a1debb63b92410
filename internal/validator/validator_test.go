// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package validator_test

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/validata/jsonschema/pkg/draft202012"
	"github.com/validata/jsonschema/pkg/draft7"
	"github.com/validata/jsonschema/pkg/format"
	"github.com/validata/jsonschema/pkg/types"
	"github.com/validata/jsonschema/pkg/validerr"
)

// compile builds and resolves a schema from a JSON value for the
// given dialect.
func compile(t *testing.T, dialect string, schemaJSON any) *types.Schema {
	t.Helper()
	if m, ok := schemaJSON.(map[string]any); ok {
		if _, ok := m["$schema"]; !ok {
			m["$schema"] = dialect
		}
	}
	s, err := types.SchemaFromJSON(dialect, nil, schemaJSON)
	if err != nil {
		t.Fatalf("SchemaFromJSON: %v", err)
	}
	if err := s.Resolve(nil); err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	return s
}

func TestKeywords(t *testing.T) {
	tests := []struct {
		name     string
		schema   any
		instance any
		valid    bool
	}{
		{"type match", map[string]any{"type": "string"}, "hello", true},
		{"type mismatch", map[string]any{"type": "string"}, 12, false},
		{"type union", map[string]any{"type": []any{"string", "null"}}, nil, true},
		{"type integer whole float", map[string]any{"type": "integer"}, 3.0, true},
		{"type integer fraction", map[string]any{"type": "integer"}, 3.5, false},
		{"type irrelevant keyword", map[string]any{"minLength": float64(3)}, 17, true},

		{"enum member", map[string]any{"enum": []any{"a", "b"}}, "b", true},
		{"enum nonmember", map[string]any{"enum": []any{"a", "b"}}, "c", false},
		{"enum cross numeric", map[string]any{"enum": []any{1.0}}, 1, true},
		{"const number", map[string]any{"const": 12.0}, 12, true},
		{"const zero not false", map[string]any{"const": 0.0}, false, false},
		{"const false not zero", map[string]any{"const": false}, 0, false},

		{"multipleOf integer", map[string]any{"multipleOf": 2.0}, 8, true},
		{"multipleOf fails", map[string]any{"multipleOf": 2.0}, 7, false},
		{"multipleOf decimal", map[string]any{"multipleOf": 0.01}, 19.99, true},
		{"multipleOf decimal fails", map[string]any{"multipleOf": 0.01}, 19.995, false},

		{"maximum ok", map[string]any{"maximum": 10.0}, 10, true},
		{"maximum fails", map[string]any{"maximum": 10.0}, 11, false},
		{"exclusiveMaximum boundary", map[string]any{"exclusiveMaximum": 10.0}, 10, false},
		{"minimum ok", map[string]any{"minimum": 1.0}, 1, true},
		{"exclusiveMinimum boundary", map[string]any{"exclusiveMinimum": 1.0}, 1, false},

		{"maxLength runes", map[string]any{"maxLength": 3.0}, "héé", true},
		{"maxLength fails", map[string]any{"maxLength": 3.0}, "heyo", false},
		{"minLength ok", map[string]any{"minLength": 2.0}, "he", true},
		{"pattern match", map[string]any{"pattern": "^a+$"}, "aaa", true},
		{"pattern partial", map[string]any{"pattern": "a+"}, "xax", true},
		{"pattern fails", map[string]any{"pattern": "^a+$"}, "ab", false},

		{"maxItems ok", map[string]any{"maxItems": 2.0}, []any{1, 2}, true},
		{"maxItems fails", map[string]any{"maxItems": 2.0}, []any{1, 2, 3}, false},
		{"minItems fails", map[string]any{"minItems": 2.0}, []any{1}, false},
		{"uniqueItems ok", map[string]any{"uniqueItems": true}, []any{1, 2}, true},
		{"uniqueItems cross numeric", map[string]any{"uniqueItems": true}, []any{1, 1.0}, false},
		{"uniqueItems bool vs zero", map[string]any{"uniqueItems": true}, []any{0, false}, true},
		{"uniqueItems deep", map[string]any{"uniqueItems": true}, []any{map[string]any{"a": 1}, map[string]any{"a": 1.0}}, false},

		{"maxProperties fails", map[string]any{"maxProperties": 1.0}, map[string]any{"a": 1, "b": 2}, false},
		{"minProperties ok", map[string]any{"minProperties": 1.0}, map[string]any{"a": 1}, true},
		{"required ok", map[string]any{"required": []any{"a"}}, map[string]any{"a": 1}, true},
		{"required missing", map[string]any{"required": []any{"a"}}, map[string]any{}, false},
		{"dependentRequired", map[string]any{"dependentRequired": map[string]any{"a": []any{"b"}}},
			map[string]any{"a": 1}, false},
		{"dependentRequired absent trigger", map[string]any{"dependentRequired": map[string]any{"a": []any{"b"}}},
			map[string]any{"c": 1}, true},

		{"properties ok", map[string]any{"properties": map[string]any{"a": map[string]any{"type": "integer"}}},
			map[string]any{"a": 3}, true},
		{"properties fails", map[string]any{"properties": map[string]any{"a": map[string]any{"type": "integer"}}},
			map[string]any{"a": "x"}, false},
		{"patternProperties", map[string]any{"patternProperties": map[string]any{"^x": map[string]any{"type": "integer"}}},
			map[string]any{"x1": "no"}, false},
		{"additionalProperties false", map[string]any{
			"properties":           map[string]any{"a": true},
			"additionalProperties": false,
		}, map[string]any{"a": 1, "b": 2}, false},
		{"additionalProperties claimed by pattern", map[string]any{
			"patternProperties":    map[string]any{"^b": true},
			"additionalProperties": false,
		}, map[string]any{"b": 2}, true},
		{"propertyNames", map[string]any{"propertyNames": map[string]any{"maxLength": 1.0}},
			map[string]any{"ab": 1}, false},

		{"prefixItems", map[string]any{"prefixItems": []any{map[string]any{"type": "integer"}}},
			[]any{"x"}, false},
		{"items after prefix", map[string]any{
			"prefixItems": []any{true},
			"items":       map[string]any{"type": "integer"},
		}, []any{"skip", 1, "bad"}, false},
		{"items schema form", map[string]any{"items": map[string]any{"type": "integer"}},
			[]any{1, 2}, true},
		{"contains ok", map[string]any{"contains": map[string]any{"type": "integer"}},
			[]any{"a", 1}, true},
		{"contains fails", map[string]any{"contains": map[string]any{"type": "integer"}},
			[]any{"a", "b"}, false},
		{"minContains", map[string]any{
			"contains":    map[string]any{"type": "integer"},
			"minContains": 2.0,
		}, []any{1, "a"}, false},
		{"maxContains", map[string]any{
			"contains":    map[string]any{"type": "integer"},
			"maxContains": 1.0,
		}, []any{1, 2}, false},
		{"minContains zero", map[string]any{
			"contains":    map[string]any{"type": "integer"},
			"minContains": 0.0,
		}, []any{"a"}, true},

		{"allOf", map[string]any{"allOf": []any{
			map[string]any{"minimum": 2.0},
			map[string]any{"maximum": 4.0},
		}}, 3, true},
		{"allOf fails", map[string]any{"allOf": []any{
			map[string]any{"minimum": 2.0},
			map[string]any{"maximum": 4.0},
		}}, 5, false},
		{"anyOf", map[string]any{"anyOf": []any{
			map[string]any{"type": "string"},
			map[string]any{"type": "number"},
		}}, 3, true},
		{"oneOf exactly one", map[string]any{"oneOf": []any{
			map[string]any{"type": "string"},
			map[string]any{"type": "number"},
		}}, 3, true},
		{"oneOf both match", map[string]any{"oneOf": []any{
			map[string]any{"type": "integer"},
			map[string]any{"minimum": 0.0},
		}}, 5, false},
		{"not", map[string]any{"not": map[string]any{"type": "string"}}, 3, true},
		{"not fails", map[string]any{"not": map[string]any{"type": "string"}}, "s", false},

		{"if then", map[string]any{
			"if":   map[string]any{"type": "string"},
			"then": map[string]any{"minLength": 2.0},
		}, "a", false},
		{"if else", map[string]any{
			"if":   map[string]any{"type": "string"},
			"else": map[string]any{"minimum": 10.0},
		}, 3, false},
		{"if no branch", map[string]any{
			"if": map[string]any{"type": "string"},
		}, 3, true},

		{"dependentSchemas", map[string]any{"dependentSchemas": map[string]any{
			"a": map[string]any{"required": []any{"b"}},
		}}, map[string]any{"a": 1}, false},

		{"unevaluatedProperties remainder", map[string]any{
			"properties":            map[string]any{"a": true},
			"unevaluatedProperties": false,
		}, map[string]any{"a": 1, "b": 2}, false},
		{"unevaluatedProperties sees allOf", map[string]any{
			"allOf":                 []any{map[string]any{"properties": map[string]any{"b": true}}},
			"properties":            map[string]any{"a": true},
			"unevaluatedProperties": false,
		}, map[string]any{"a": 1, "b": 2}, true},
		{"unevaluatedItems", map[string]any{
			"prefixItems":      []any{true},
			"unevaluatedItems": false,
		}, []any{1, 2}, false},
		{"unevaluatedItems contains", map[string]any{
			"contains":         map[string]any{"type": "integer"},
			"unevaluatedItems": false,
		}, []any{1, 2}, true},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			s := compile(t, draft202012.SchemaID, test.schema)
			err := s.Validate(test.instance)
			if got := err == nil; got != test.valid {
				t.Errorf("Validate(%v) = %v, want valid %t", test.instance, err, test.valid)
			}
		})
	}
}

func TestAnyOfContext(t *testing.T) {
	s := compile(t, draft202012.SchemaID, map[string]any{
		"anyOf": []any{
			map[string]any{"type": "string"},
			map[string]any{"type": "number"},
		},
	})
	err := s.Validate(true)
	if err == nil {
		t.Fatal("Validate(true) = nil, want error")
	}
	ves := validerr.Errors(err)
	if len(ves) != 1 {
		t.Fatalf("got %d errors, want 1", len(ves))
	}
	if got := len(ves[0].Context); got != 2 {
		t.Errorf("len(Context) = %d, want one entry per failed branch", got)
	}
}

func TestOneOfTooMany(t *testing.T) {
	s := compile(t, draft202012.SchemaID, map[string]any{
		"oneOf": []any{
			map[string]any{"type": "integer"},
			map[string]any{"minimum": 0.0},
		},
	})
	err := s.Validate(5)
	if err == nil {
		t.Fatal("Validate(5) = nil, want error")
	}
	if !strings.Contains(err.Error(), "exactly one") {
		t.Errorf("error = %q, want mention of exactly one", err)
	}
}

func TestUnevaluatedPropertiesSingleError(t *testing.T) {
	s := compile(t, draft202012.SchemaID, map[string]any{
		"properties":            map[string]any{"a": true},
		"unevaluatedProperties": false,
	})
	err := s.Validate(map[string]any{"a": 1, "b": 2})
	ves := validerr.Errors(err)
	if len(ves) != 1 {
		t.Fatalf("got %d errors, want 1: %v", len(ves), err)
	}
	if got := ves[0].InstanceLocation; got != "#/b" {
		t.Errorf("InstanceLocation = %q, want %q", got, "#/b")
	}
}

func TestMultipleFailuresCollected(t *testing.T) {
	s := compile(t, draft202012.SchemaID, map[string]any{
		"enum":     []any{[]any{9.0}},
		"maxItems": 2.0,
	})
	err := s.Validate([]any{2, 3, 4})
	if err == nil {
		t.Fatal("Validate = nil, want error")
	}
	var ves *validerr.ValidationErrors
	if !errors.As(err, &ves) {
		t.Fatalf("got %T, want *ValidationErrors", err)
	}
	if len(ves.Errs) != 2 {
		t.Fatalf("got %d errors, want 2: %v", len(ves.Errs), err)
	}
	keywords := []string{ves.Errs[0].Keyword, ves.Errs[1].Keyword}
	for _, want := range []string{"enum", "maxItems"} {
		found := false
		for _, kw := range keywords {
			if kw == want {
				found = true
			}
		}
		if !found {
			t.Errorf("keywords %v missing %q", keywords, want)
		}
	}
}

func TestRefCycleTerminates(t *testing.T) {
	s := compile(t, draft202012.SchemaID, map[string]any{
		"type": "object",
		"properties": map[string]any{
			"child": map[string]any{"$ref": "#"},
		},
	})
	inst := map[string]any{
		"child": map[string]any{
			"child": map[string]any{},
		},
	}
	if err := s.Validate(inst); err != nil {
		t.Errorf("Validate = %v, want nil", err)
	}
}

func TestRefCycleSameLocationValid(t *testing.T) {
	// The cycle never descends into the instance, so it reaches
	// its fixed point at the top level and constrains nothing.
	s := compile(t, draft202012.SchemaID, map[string]any{
		"$ref": "#/$defs/a",
		"$defs": map[string]any{
			"a": map[string]any{"$ref": "#/$defs/a"},
		},
	})
	if err := s.Validate(1); err != nil {
		t.Errorf("Validate(1) = %v, want nil", err)
	}
}

func TestRefCycleSameLocationConstrained(t *testing.T) {
	s := compile(t, draft202012.SchemaID, map[string]any{
		"$ref": "#/$defs/a",
		"$defs": map[string]any{
			"a": map[string]any{
				"$ref": "#/$defs/a",
				"type": "integer",
			},
		},
	})
	if err := s.Validate(1); err != nil {
		t.Errorf("Validate(1) = %v, want nil", err)
	}
	if err := s.Validate("x"); err == nil {
		t.Error(`Validate("x") = nil, want type error`)
	}
}

func TestRefEscapedPointer(t *testing.T) {
	s := compile(t, draft202012.SchemaID, map[string]any{
		"$defs": map[string]any{
			"a/b": map[string]any{"type": "integer"},
		},
		"$ref": "#/$defs/a~1b",
	})
	if err := s.Validate(3); err != nil {
		t.Errorf("Validate(3) = %v, want nil", err)
	}
	if err := s.Validate("x"); err == nil {
		t.Error("Validate(\"x\") = nil, want error")
	}
}

func TestDraft7Items(t *testing.T) {
	tests := []struct {
		name     string
		schema   any
		instance any
		valid    bool
	}{
		{"array form", map[string]any{
			"items": []any{map[string]any{"type": "integer"}, map[string]any{"type": "string"}},
		}, []any{1, "a"}, true},
		{"array form mismatch", map[string]any{
			"items": []any{map[string]any{"type": "integer"}},
		}, []any{"a"}, false},
		{"additionalItems", map[string]any{
			"items":           []any{true},
			"additionalItems": map[string]any{"type": "integer"},
		}, []any{"head", "tail"}, false},
		{"additionalItems ignored for schema items", map[string]any{
			"items":           map[string]any{"type": "integer"},
			"additionalItems": false,
		}, []any{1, 2, 3}, true},
		{"ref ignores siblings", map[string]any{
			"definitions": map[string]any{"num": map[string]any{"type": "number"}},
			"$ref":        "#/definitions/num",
			"type":        "string",
		}, 3, true},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			s := compile(t, draft7.SchemaID, test.schema)
			err := s.Validate(test.instance)
			if got := err == nil; got != test.valid {
				t.Errorf("Validate(%v) = %v, want valid %t", test.instance, err, test.valid)
			}
		})
	}
}

func TestFailFast(t *testing.T) {
	s := compile(t, draft202012.SchemaID, map[string]any{
		"type":      "array",
		"minItems":  5.0,
		"maxLength": 1.0,
	})
	err := s.ValidateWithOpts("long string", &types.ValidateOpts{FailFast: true})
	if err == nil {
		t.Fatal("ValidateWithOpts = nil, want error")
	}
	if ves := validerr.Errors(err); len(ves) != 1 {
		t.Errorf("got %d errors with FailFast, want 1", len(ves))
	}
}

func TestFormatAnnotationOnly(t *testing.T) {
	s := compile(t, draft202012.SchemaID, map[string]any{
		"format": "ipv4",
	})
	if err := s.Validate("not-an-ip"); err != nil {
		t.Errorf("Validate without format assertion = %v, want nil", err)
	}
	err := s.ValidateWithOpts("not-an-ip", &types.ValidateOpts{ValidateFormat: true})
	if err == nil {
		t.Error("ValidateWithOpts with ValidateFormat = nil, want error")
	}
}

func TestFormatCheckerCause(t *testing.T) {
	s := compile(t, draft202012.SchemaID, map[string]any{
		"format": "even",
	})

	fc := format.New().Register("even", func(instance any) error {
		n, ok := instance.(float64)
		if !ok {
			return nil
		}
		if int64(n)%2 != 0 {
			return fmt.Errorf("%v is odd", n)
		}
		return nil
	})
	opts := &types.ValidateOpts{ValidateFormat: true, Formats: fc}
	if err := s.ValidateWithOpts(4.0, opts); err != nil {
		t.Errorf("ValidateWithOpts(4) = %v, want nil", err)
	}

	err := s.ValidateWithOpts(3.0, opts)
	ves := validerr.Errors(err)
	if len(ves) != 1 {
		t.Fatalf("ValidateWithOpts(3) = %v, want one error", err)
	}
	// An ordinary nonconformance carries no cause.
	if ves[0].Cause != nil {
		t.Errorf("Cause = %v, want nil", ves[0].Cause)
	}

	broken := format.New().Register("even", func(any) error {
		panic("checker broke")
	})
	err = s.ValidateWithOpts(3.0, &types.ValidateOpts{ValidateFormat: true, Formats: broken})
	ves = validerr.Errors(err)
	if len(ves) != 1 {
		t.Fatalf("ValidateWithOpts with broken checker = %v, want one error", err)
	}
	var pe *format.PanicError
	if !errors.As(ves[0].Cause, &pe) {
		t.Errorf("Cause = %v, want *format.PanicError", ves[0].Cause)
	}
}
