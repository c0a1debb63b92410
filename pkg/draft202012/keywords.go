// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package draft202012

import (
	"cmp"

	"github.com/validata/jsonschema/internal/validator"
	"github.com/validata/jsonschema/pkg/types"
)

// keywordList is every keyword this dialect knows.
var keywordList = []*types.Keyword{
	// Core.
	validator.Annotation("$id", types.ArgTypeString),
	validator.Keyword("$ref", types.ArgTypeString, validator.ValidateRef),
	validator.Keyword("$dynamicRef", types.ArgTypeString, validator.ValidateDynamicRef),
	validator.Annotation("$anchor", types.ArgTypeString),
	validator.Annotation("$dynamicAnchor", types.ArgTypeString),
	validator.Annotation("$vocabulary", types.ArgTypeAny),
	validator.Annotation("$comment", types.ArgTypeString),
	validator.Annotation("$defs", types.ArgTypeMapSchema),
	validator.Annotation("definitions", types.ArgTypeMapSchema),

	// Applicators.
	validator.Keyword("allOf", types.ArgTypeSchemas, validator.ValidateAllOf),
	validator.Keyword("anyOf", types.ArgTypeSchemas, validator.ValidateAnyOf),
	validator.Keyword("oneOf", types.ArgTypeSchemas, validator.ValidateOneOf),
	validator.Keyword("not", types.ArgTypeSchema, validator.ValidateNot),
	validator.Keyword("if", types.ArgTypeSchema, validator.ValidateIf),
	validator.Keyword("then", types.ArgTypeSchema, validator.ValidateThen),
	validator.Keyword("else", types.ArgTypeSchema, validator.ValidateElse),
	validator.Keyword("dependentSchemas", types.ArgTypeMapSchema, validator.ValidateDependentSchemas),
	validator.Keyword("dependencies", types.ArgTypeMapArrayOrSchema, validator.ValidateDependencies),
	validator.Keyword("prefixItems", types.ArgTypeSchemas, validator.ValidatePrefixItems),
	validator.Keyword("items", types.ArgTypeSchema, validator.ValidateItems),
	validator.Keyword("contains", types.ArgTypeSchema, validator.ValidateContains),
	validator.Keyword("properties", types.ArgTypeMapSchema, validator.ValidateProperties),
	validator.Keyword("patternProperties", types.ArgTypeMapSchema, validator.ValidatePatternProperties),
	validator.Keyword("additionalProperties", types.ArgTypeSchema, validator.ValidateAdditionalProperties),
	validator.Keyword("propertyNames", types.ArgTypeSchema, validator.ValidatePropertyNames),

	// Unevaluated locations.
	validator.Keyword("unevaluatedItems", types.ArgTypeSchema, validator.ValidateUnevaluatedItems),
	validator.Keyword("unevaluatedProperties", types.ArgTypeSchema, validator.ValidateUnevaluatedProperties),

	// Validation.
	validator.Keyword("type", types.ArgTypeStringOrStrings, validator.ValidateType),
	validator.Keyword("enum", types.ArgTypeAny, validator.ValidateEnum),
	validator.Keyword("const", types.ArgTypeAny, validator.ValidateConst),
	validator.Keyword("multipleOf", types.ArgTypeFloat, validator.ValidateMultipleOf),
	validator.Keyword("maximum", types.ArgTypeFloat, validator.ValidateMaximum),
	validator.Keyword("exclusiveMaximum", types.ArgTypeFloat, validator.ValidateExclusiveMaximum),
	validator.Keyword("minimum", types.ArgTypeFloat, validator.ValidateMinimum),
	validator.Keyword("exclusiveMinimum", types.ArgTypeFloat, validator.ValidateExclusiveMinimum),
	validator.Keyword("maxLength", types.ArgTypeInt, validator.ValidateMaxLength),
	validator.Keyword("minLength", types.ArgTypeInt, validator.ValidateMinLength),
	validator.Keyword("pattern", types.ArgTypeString, validator.ValidatePattern),
	validator.Keyword("maxItems", types.ArgTypeInt, validator.ValidateMaxItems),
	validator.Keyword("minItems", types.ArgTypeInt, validator.ValidateMinItems),
	validator.Keyword("uniqueItems", types.ArgTypeBool, validator.ValidateUniqueItems),
	validator.Keyword("maxContains", types.ArgTypeInt, validator.ValidateMaxContains),
	validator.Keyword("minContains", types.ArgTypeInt, validator.ValidateMinContains),
	validator.Keyword("maxProperties", types.ArgTypeInt, validator.ValidateMaxProperties),
	validator.Keyword("minProperties", types.ArgTypeInt, validator.ValidateMinProperties),
	validator.Keyword("required", types.ArgTypeStrings, validator.ValidateRequired),
	validator.Keyword("dependentRequired", types.ArgTypeAny, validator.ValidateDependentRequired),

	// Format and content.
	validator.Keyword("format", types.ArgTypeString, validator.ValidateFormat),
	validator.Annotation("contentEncoding", types.ArgTypeString),
	validator.Annotation("contentMediaType", types.ArgTypeString),
	validator.Annotation("contentSchema", types.ArgTypeSchema),

	// Meta-data.
	validator.Annotation("title", types.ArgTypeString),
	validator.Annotation("description", types.ArgTypeString),
	validator.Keyword("default", types.ArgTypeAny, validator.ValidateDefault),
	validator.Annotation("deprecated", types.ArgTypeBool),
	validator.Annotation("readOnly", types.ArgTypeBool),
	validator.Annotation("writeOnly", types.ArgTypeBool),
	validator.Annotation("examples", types.ArgTypeAny),
}

var keywordMap = func() map[string]*types.Keyword {
	m := make(map[string]*types.Keyword, len(keywordList))
	for _, kw := range keywordList {
		m[kw.Name] = kw
	}
	return m
}()

// keywordRank assigns each keyword its evaluation position within a
// schema object. Identity keywords come first so reference
// resolution sees the base URI before any anchors. References and
// the other in-place applicators run before the keywords that read
// their notes: additionalProperties follows properties and
// patternProperties, maxContains and minContains follow contains,
// and the unevaluated keywords run after everything else.
// Keywords not listed here rank as defaultRank.
var keywordRank = map[string]int{
	"$schema":        0,
	"$id":            1,
	"$anchor":        2,
	"$dynamicAnchor": 2,
	"$vocabulary":    3,
	"$comment":       3,
	"$defs":          4,
	"definitions":    4,

	"$ref":        10,
	"$dynamicRef": 10,

	"allOf":            20,
	"anyOf":            20,
	"oneOf":            20,
	"not":              20,
	"if":               21,
	"then":             22,
	"else":             22,
	"dependentSchemas": 23,
	"dependencies":     23,

	"properties":           60,
	"patternProperties":    61,
	"additionalProperties": 62,

	"prefixItems": 60,
	"items":       61,
	"contains":    62,
	"maxContains": 63,
	"minContains": 63,

	"unevaluatedItems":      90,
	"unevaluatedProperties": 91,
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
