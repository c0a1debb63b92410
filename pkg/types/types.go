// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package types defines the JSON schema data model.
// Most programs do not need to use this package directly;
// they should use the top-level jsonschema package instead.
//
// This package is used with a specific set of JSON schema dialects,
// which must be imported separately. For example, to use the current
// dialect, a program should also
//
//	import _ "github.com/validata/jsonschema/pkg/draft202012"
package types

import (
	"fmt"
	"iter"
	"maps"
	"slices"
	"strings"
)

// Schema is a JSON schema.
// A JSON schema determines whether an instance is valid or not.
// Do not create values of this type directly.
// Instead, unmarshal from JSON or use [SchemaFromJSON].
//
// If you have an existing Schema, you can edit the Parts list,
// but you must call [Schema.Finalize] afterward.
// You can't add keywords that refer to other parts of the schema
// by name, such as $ref.
type Schema struct {
	// The different elements of this Schema.
	Parts []Part
}

// Part is one part of a JSON schema.
// This is a keyword, such as "$id" or "properties",
// along with the value associated with that keyword in the schema.
type Part struct {
	Keyword *Keyword
	Value   PartValue
}

// Keyword is a schema keyword.
type Keyword struct {
	// Name is the keyword, such as allOf, anyOf, and so forth.
	Name string

	// ArgType is the type of argument expected.
	ArgType ArgType

	// Validate is a function that checks whether the instance matches
	// the keyword. arg is the value from the schema, which is [Part.Value].
	// instance is the object to validate.
	//
	// The function returns an error if any.
	// A failure to validate will be type [*validerr.ValidationError]
	// or type [*validerr.ValidationErrors].
	// Any other error type indicates a problem with the schema itself,
	// not the instance.
	Validate func(arg PartValue, instance any, state *ValidationState) error

	// Generated is true if this keyword is not represented in JSON,
	// but is added to record additional information, such as the
	// target of a resolved $ref. If this is true the keyword is
	// ignored by anything that treats the Schema as a JSON object.
	Generated bool
}

// Equal reports whether two keywords are equal.
// This is for the benefit of comparison packages
// that won't compare the Validate function values.
func (k1 Keyword) Equal(k2 Keyword) bool {
	return k1.Name == k2.Name && k1.ArgType == k2.ArgType && k1.Generated == k2.Generated
}

// ArgType describes the argument type a keyword expects.
type ArgType int

const (
	ArgTypeBool ArgType = iota
	ArgTypeString
	ArgTypeStrings
	ArgTypeStringOrStrings
	ArgTypeInt
	ArgTypeFloat
	ArgTypeSchema
	ArgTypeSchemas
	ArgTypeMapSchema
	ArgTypeSchemaOrSchemas
	ArgTypeMapArrayOrSchema
	ArgTypeAny
)

// PartValue is the value of a JSON schema element.
// This is accessed via a type switch.
// The possible types are
//   - [PartBool]
//   - [PartString]
//   - [PartStrings]
//   - [PartStringOrStrings]
//   - [PartInt]
//   - [PartFloat]
//   - [PartSchema]
//   - [PartSchemas]
//   - [PartMapSchema]
//   - [PartSchemaOrSchemas]
//   - [PartMapArrayOrSchema]
//   - [PartAny]
type PartValue interface {
	partValue() // restrict to types defined in this package
}

// PartBool is a schema part value that is a bool.
// As the value of the synthetic $bool keyword it represents the
// boolean schemas: true matches every value, false matches none.
type PartBool bool

// PartString is a schema part value that is a string.
// For example, the schema keyword "pattern" has a string
// value that must be a regexp that must match the instance value.
type PartString string

// PartStrings is a schema part value that is a list of strings.
// For example, the schema keyword "required" takes a list of strings
// where each string is a property that the instance is required to have.
type PartStrings []string

// PartStringOrStrings is a schema part that is either a single string
// or a list of strings. This is basically just for the "type" keyword,
// which takes either a single type string or an array of type strings.
// If Strings is not nil, the String field must be the empty string.
type PartStringOrStrings struct {
	String  string
	Strings []string
}

// PartInt is a schema part value that is an integer.
// For example, the schema keyword "minLength" specifies
// the minimum length of a string.
type PartInt int64

// PartFloat is a schema part value that is a floating-point number.
// For example, the schema keyword "maximum" specifies the maximum
// value of a number.
type PartFloat float64

// PartSchema is a schema part value that is a reference to a schema.
// For example, the schema keyword "not" refers to a schema;
// the instance matches if it does not match that schema.
type PartSchema struct {
	S *Schema
}

// PartSchemas is a schema part value that is a list of schemas.
// For example, the schema keyword "allOf" matches an instance
// if the instance matches each schema in the list.
type PartSchemas []*Schema

// PartMapSchema is a schema part value that is a map from strings to
// schemas. For example, the schema keyword "properties" has a mapping
// from field names to schemas, and matches an instance if the
// corresponding instance fields match the schemas.
type PartMapSchema map[string]*Schema

// PartSchemaOrSchemas is either a single schema (like [PartSchema])
// or a list of schemas (like [PartSchemas]). For example,
// the pre-2020 keyword "items" takes either a single schema
// or a list of schemas. Exactly one of the fields will be nil.
type PartSchemaOrSchemas struct {
	Schema  *Schema
	Schemas []*Schema
}

// PartMapArrayOrSchema is a map from strings to elements,
// where each element is either an array of strings or a schema.
// This is used for the "dependencies" keyword.
type PartMapArrayOrSchema map[string]ArrayOrSchema

// ArrayOrSchema is the element type of the PartMapArrayOrSchema map.
// Exactly one of the fields will be nil.
type ArrayOrSchema struct {
	Array  []string // a zero-length slice is []string{}, not nil
	Schema *Schema
}

// PartAny is a schema part value that is an arbitrary type.
// For example, the schema keyword "enum" expects an array,
// and matches an instance if the instance is equal to one of the
// elements in the array.
type PartAny struct {
	V any
}

func (PartBool) partValue()             {}
func (PartString) partValue()           {}
func (PartStrings) partValue()          {}
func (PartStringOrStrings) partValue()  {}
func (PartInt) partValue()              {}
func (PartFloat) partValue()            {}
func (PartSchema) partValue()           {}
func (PartSchemas) partValue()          {}
func (PartMapSchema) partValue()        {}
func (PartSchemaOrSchemas) partValue()  {}
func (PartMapArrayOrSchema) partValue() {}
func (PartAny) partValue()              {}

// sortedKeys returns the keys of m in sorted order.
// Map iteration during validation and marshaling goes through this
// so that results are deterministic.
func sortedKeys[M ~map[string]V, V any](m M) []string {
	return slices.Sorted(maps.Keys(m))
}

// Clone returns a copy of a Schema.
func (s *Schema) Clone() *Schema {
	return &Schema{Parts: slices.Clone(s.Parts)}
}

// String returns a somewhat readable representation of a Schema.
// The format differs from JSON output, and also includes internal
// information not stored in JSON.
func (s *Schema) String() string {
	var sb strings.Builder
	sb.WriteString("Schema{")
	for i, part := range s.Parts {
		if i > 0 {
			sb.WriteString(", ")
		}
		val := part.Value
		if part.Keyword.Generated {
			// Don't try to print schemas of generated keywords.
			// They can cause infinite recursion.
			switch part.Keyword.ArgType {
			case ArgTypeBool, ArgTypeString, ArgTypeStrings, ArgTypeInt, ArgTypeFloat:
			default:
				val = PartString("<not printed>")
			}
		}
		fmt.Fprintf(&sb, "{%s %v}", part.Keyword.Name, val)
	}
	sb.WriteByte('}')
	return sb.String()
}

// LookupKeyword returns the value associated with a keyword in the schema.
// The bool result reports whether the keyword is present at all.
func (s *Schema) LookupKeyword(keyword string) (PartValue, bool) {
	for _, part := range s.Parts {
		if !part.Keyword.Generated && part.Keyword.Name == keyword {
			return part.Value, true
		}
	}
	return nil, false
}

// Finalize sorts the schema keywords into the order required for
// validation. Keywords that consume the notes of other keywords,
// such as "unevaluatedProperties", must sort after the keywords that
// record those notes. Normally there is no need to call this
// explicitly; it is called by the JSON unmarshaler.
func (s *Schema) Finalize(v *Vocabulary) {
	slices.SortStableFunc(s.Parts, func(a, b Part) int {
		return v.Cmp(a.Keyword.Name, b.Keyword.Name)
	})
}

// IsBoolSchema reports whether the schema is a boolean schema,
// and reports whether it is the "true" schema.
func (s *Schema) IsBoolSchema() (isBoolSchema, isTrueSchema bool) {
	isBoolSchema = false
	for _, part := range s.Parts {
		if part.Keyword == &SchemaKeyword || part.Keyword.Generated {
			continue
		}
		if part.Keyword != &BoolKeyword {
			return false, false
		}
		isBoolSchema = true
		isTrueSchema = bool(part.Value.(PartBool))
	}
	return isBoolSchema, isTrueSchema
}

// Children returns an iterator over the immediate subschemas.
// The first iterator value is the name of the subschema as used in a
// JSON pointer, the second is the subschema itself.
func (s *Schema) Children() iter.Seq2[string, *Schema] {
	return func(yield func(string, *Schema) bool) {
		for _, part := range s.Parts {
			if part.Keyword.Generated {
				continue
			}

			switch part.Keyword.ArgType {
			case ArgTypeSchema:
				if !yield(part.Keyword.Name, part.Value.(PartSchema).S) {
					return
				}

			case ArgTypeSchemas:
				for i, sub := range part.Value.(PartSchemas) {
					name := fmt.Sprintf("%s/%d", part.Keyword.Name, i)
					if !yield(name, sub) {
						return
					}
				}

			case ArgTypeMapSchema:
				m := part.Value.(PartMapSchema)
				// Sort for determinism.
				for _, k := range slices.Sorted(maps.Keys(m)) {
					if !yield(part.Keyword.Name+"/"+k, m[k]) {
						return
					}
				}

			case ArgTypeSchemaOrSchemas:
				pv := part.Value.(PartSchemaOrSchemas)
				if pv.Schema != nil {
					if !yield(part.Keyword.Name, pv.Schema) {
						return
					}
				} else {
					for i, sub := range pv.Schemas {
						name := fmt.Sprintf("%s/%d", part.Keyword.Name, i)
						if !yield(name, sub) {
							return
						}
					}
				}

			case ArgTypeMapArrayOrSchema:
				m := part.Value.(PartMapArrayOrSchema)
				// Sort for determinism.
				for _, k := range slices.Sorted(maps.Keys(m)) {
					if m[k].Schema == nil {
						continue
					}
					if !yield(part.Keyword.Name+"/"+k, m[k].Schema) {
						return
					}
				}
			}
		}
	}
}
