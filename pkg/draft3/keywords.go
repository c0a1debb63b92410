// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package draft3

import (
	"cmp"

	"github.com/validata/jsonschema/internal/validator"
	"github.com/validata/jsonschema/pkg/types"
)

// keywordList is every keyword this dialect knows. Draft 3 differs
// from everything after it: required is a boolean inside a property
// subschema, extends and disallow substitute for allOf and not,
// divisibleBy is the name of multipleOf, and dependencies accepts a
// bare property name.
var keywordList = []*types.Keyword{
	// Core.
	validator.Annotation("id", types.ArgTypeString),
	validator.Keyword("$ref", types.ArgTypeString, validator.ValidateRef),

	// Applicators.
	validator.Keyword("extends", types.ArgTypeSchemaOrSchemas, validator.ValidateExtends),
	validator.Keyword("dependencies", types.ArgTypeMapArrayOrSchema, validator.ValidateDependencies),
	validator.Keyword("items", types.ArgTypeSchemaOrSchemas, validator.ValidatePre2020Items),
	validator.Keyword("additionalItems", types.ArgTypeSchema, validator.ValidatePre2020AdditionalItems),
	validator.Keyword("properties", types.ArgTypeMapSchema, validator.ValidateDraft3Properties),
	validator.Keyword("patternProperties", types.ArgTypeMapSchema, validator.ValidatePatternProperties),
	validator.Keyword("additionalProperties", types.ArgTypeSchema, validator.ValidateAdditionalProperties),

	// Validation.
	validator.Keyword("type", types.ArgTypeStringOrStrings, validator.ValidateType),
	validator.Keyword("disallow", types.ArgTypeStringOrStrings, validator.ValidateDisallow),
	validator.Keyword("enum", types.ArgTypeAny, validator.ValidateEnum),
	validator.Keyword("divisibleBy", types.ArgTypeFloat, validator.ValidateDivisibleBy),
	validator.Keyword("maximum", types.ArgTypeFloat, validator.ValidateBoundedMaximum),
	validator.Annotation("exclusiveMaximum", types.ArgTypeBool),
	validator.Keyword("minimum", types.ArgTypeFloat, validator.ValidateBoundedMinimum),
	validator.Annotation("exclusiveMinimum", types.ArgTypeBool),
	validator.Keyword("maxLength", types.ArgTypeInt, validator.ValidateMaxLength),
	validator.Keyword("minLength", types.ArgTypeInt, validator.ValidateMinLength),
	validator.Keyword("pattern", types.ArgTypeString, validator.ValidatePattern),
	validator.Keyword("maxItems", types.ArgTypeInt, validator.ValidateMaxItems),
	validator.Keyword("minItems", types.ArgTypeInt, validator.ValidateMinItems),
	validator.Keyword("uniqueItems", types.ArgTypeBool, validator.ValidateUniqueItems),
	validator.Annotation("required", types.ArgTypeBool),
	validator.Keyword("format", types.ArgTypeString, validator.ValidateFormat),

	// Meta-data.
	validator.Annotation("title", types.ArgTypeString),
	validator.Annotation("description", types.ArgTypeString),
	validator.Keyword("default", types.ArgTypeAny, validator.ValidateDefault),
}

var keywordMap = func() map[string]*types.Keyword {
	m := make(map[string]*types.Keyword, len(keywordList))
	for _, kw := range keywordList {
		m[kw.Name] = kw
	}
	return m
}()

// keywordRank assigns each keyword its evaluation position within a
// schema object. See the draft202012 table for the ordering
// constraints.
var keywordRank = map[string]int{
	"$schema": 0,
	"id":      1,

	"$ref": 10,

	"extends":      20,
	"dependencies": 23,

	"properties":           60,
	"patternProperties":    61,
	"additionalProperties": 62,

	"items":           60,
	"additionalItems": 61,
}

const defaultRank = 50

func rank(name string) int {
	if r, ok := keywordRank[name]; ok {
		return r
	}
	return defaultRank
}

// keywordCmp is the sorting function for schema keywords.
func keywordCmp(a, b string) int {
	return cmp.Compare(rank(a), rank(b))
}
