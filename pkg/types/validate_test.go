// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package types_test

import (
	"errors"
	"testing"

	"github.com/validata/jsonschema/pkg/draft202012"
	"github.com/validata/jsonschema/pkg/types"
	"github.com/validata/jsonschema/pkg/validerr"
)

// Importing draft202012 registers the default vocabulary via init.

func singleError(t *testing.T, err error) *validerr.ValidationError {
	t.Helper()
	if err == nil {
		t.Fatal("expected validation error, got nil")
	}
	ves := validerr.Errors(err)
	if len(ves) != 1 {
		t.Fatalf("expected single ValidationError, got %T: %v", err, err)
	}
	return ves[0]
}

func TestBasicOutput_TypeUnderProperties(t *testing.T) {
	schemaJSON := map[string]any{
		"$schema": draft202012.SchemaID,
		"properties": map[string]any{
			"name": map[string]any{
				"type": "string",
			},
		},
	}

	s, err := types.SchemaFromJSON(draft202012.SchemaID, nil, schemaJSON)
	if err != nil {
		t.Fatalf("SchemaFromJSON: %v", err)
	}

	ve := singleError(t, s.Validate(map[string]any{"name": 123}))

	if ve.KeywordLocation != "#/properties/name/type" {
		t.Errorf("keywordLocation: got %q, want %q", ve.KeywordLocation, "#/properties/name/type")
	}
	if ve.InstanceLocation != "#/name" {
		t.Errorf("instanceLocation: got %q, want %q", ve.InstanceLocation, "#/name")
	}
	if ve.Keyword != "type" {
		t.Errorf("keyword: got %q, want %q", ve.Keyword, "type")
	}
	if ve.Message == "" {
		t.Error("error message should not be empty")
	}
}

func TestBasicOutput_RequiredMissing(t *testing.T) {
	schemaJSON := map[string]any{
		"$schema":  draft202012.SchemaID,
		"required": []any{"name"},
	}

	s, err := types.SchemaFromJSON(draft202012.SchemaID, nil, schemaJSON)
	if err != nil {
		t.Fatalf("SchemaFromJSON: %v", err)
	}

	ve := singleError(t, s.Validate(map[string]any{}))

	if ve.KeywordLocation != "#/required/0" {
		t.Errorf("keywordLocation: got %q, want %q", ve.KeywordLocation, "#/required/0")
	}
	if ve.InstanceLocation != "#" {
		t.Errorf("instanceLocation: got %q, want %q", ve.InstanceLocation, "#")
	}
}

func TestBoolSchemas(t *testing.T) {
	instances := []any{nil, false, 0, "", map[string]any{}, []any{1, 2}}

	s, err := types.SchemaFromJSON(draft202012.SchemaID, nil, true)
	if err != nil {
		t.Fatalf("SchemaFromJSON(true): %v", err)
	}
	for _, inst := range instances {
		if err := s.Validate(inst); err != nil {
			t.Errorf("true schema: Validate(%v) = %v, want nil", inst, err)
		}
	}

	s, err = types.SchemaFromJSON(draft202012.SchemaID, nil, false)
	if err != nil {
		t.Fatalf("SchemaFromJSON(false): %v", err)
	}
	for _, inst := range instances {
		if err := s.Validate(inst); err == nil {
			t.Errorf("false schema: Validate(%v) = nil, want error", inst)
		}
	}
}

type person struct {
	Name string `json:"name"`
	Age  int    `json:"age,omitempty"`
}

func TestStructInstance(t *testing.T) {
	schemaJSON := map[string]any{
		"$schema": draft202012.SchemaID,
		"type":    "object",
		"properties": map[string]any{
			"name": map[string]any{"type": "string"},
			"age":  map[string]any{"maximum": 150.0},
		},
	}
	s, err := types.SchemaFromJSON(draft202012.SchemaID, nil, schemaJSON)
	if err != nil {
		t.Fatalf("SchemaFromJSON: %v", err)
	}

	if err := s.Validate(person{Name: "Ada", Age: 36}); err != nil {
		t.Errorf("Validate(valid person) = %v, want nil", err)
	}
	if err := s.Validate(&person{Name: "Ada", Age: 36}); err != nil {
		t.Errorf("Validate(pointer to person) = %v, want nil", err)
	}

	err = s.Validate(person{Name: "Ada", Age: 200})
	ve := singleError(t, err)
	if ve.InstanceLocation != "#/age" {
		t.Errorf("instanceLocation: got %q, want %q", ve.InstanceLocation, "#/age")
	}
}

func TestApplyDefaults(t *testing.T) {
	schemaJSON := map[string]any{
		"$schema": draft202012.SchemaID,
		"properties": map[string]any{
			"count": map[string]any{
				"type":    "number",
				"default": 5.0,
			},
		},
	}
	s, err := types.SchemaFromJSON(draft202012.SchemaID, nil, schemaJSON)
	if err != nil {
		t.Fatalf("SchemaFromJSON: %v", err)
	}

	inst := map[string]any{}
	if err := s.ValidateWithOpts(inst, &types.ValidateOpts{ApplyDefaults: true}); err != nil {
		t.Fatalf("ValidateWithOpts: %v", err)
	}
	if got, want := inst["count"], 5.0; got != want {
		t.Errorf("count after defaults: got %v, want %v", got, want)
	}

	// Without the option the instance stays untouched.
	inst = map[string]any{}
	if err := s.Validate(inst); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if _, ok := inst["count"]; ok {
		t.Error("count was set without ApplyDefaults")
	}
}

func TestSchemaFromJSONKeepsDocument(t *testing.T) {
	doc := map[string]any{
		"$schema": draft202012.SchemaID,
		"type":    "integer",
	}
	if _, err := types.SchemaFromJSON("", nil, doc); err != nil {
		t.Fatalf("SchemaFromJSON: %v", err)
	}
	if got, want := len(doc), 2; got != want {
		t.Errorf("document has %d keys after building, want %d", got, want)
	}
	if _, ok := doc["$schema"]; !ok {
		t.Error(`document lost its "$schema" entry`)
	}
}

func TestRecursionLimit(t *testing.T) {
	schemaJSON := map[string]any{
		"$schema": draft202012.SchemaID,
		"properties": map[string]any{
			"child": map[string]any{"$ref": "#"},
		},
	}
	s, err := types.SchemaFromJSON(draft202012.SchemaID, nil, schemaJSON)
	if err != nil {
		t.Fatalf("SchemaFromJSON: %v", err)
	}
	if err := s.Resolve(nil); err != nil {
		t.Fatalf("Resolve: %v", err)
	}

	inst := map[string]any{}
	for range 2000 {
		inst = map[string]any{"child": inst}
	}

	err = s.Validate(inst)
	if !errors.Is(err, types.ErrTooDeep) {
		t.Errorf("Validate(deep instance) = %v, want ErrTooDeep", err)
	}
}

func TestValidateTrueKeyword(t *testing.T) {
	// Unrecognized keywords are kept but never fail.
	schemaJSON := map[string]any{
		"$schema":        draft202012.SchemaID,
		"x-custom":       map[string]any{"whatever": 1},
		"minimum":        3.0,
		"x-other-custom": []any{1, 2},
	}
	s, err := types.SchemaFromJSON(draft202012.SchemaID, nil, schemaJSON)
	if err != nil {
		t.Fatalf("SchemaFromJSON: %v", err)
	}
	if err := s.Validate(4); err != nil {
		t.Errorf("Validate(4) = %v, want nil", err)
	}
	if err := s.Validate(2); err == nil {
		t.Error("Validate(2) = nil, want error from minimum")
	}
}
