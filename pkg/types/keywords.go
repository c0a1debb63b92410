// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package types

import (
	"github.com/validata/jsonschema/pkg/validerr"
)

// SchemaKeyword is a keyword to hold the schema version.
var SchemaKeyword = Keyword{
	Name:     "$schema",
	ArgType:  ArgTypeString,
	Validate: ValidateTrue,
}

// BoolKeyword is not a real keyword, but is used to represent the
// special schema values "true" and "false".
var BoolKeyword = Keyword{
	Name:     "$bool",
	ArgType:  ArgTypeBool,
	Validate: validateBool,
}

// ResolvedRefKeyword is a special Keyword used to record what a
// $ref keyword refers to in a schema. It is added by reference
// resolution and never appears in the JSON form.
var ResolvedRefKeyword = Keyword{
	Name:      "$$resolvedRef",
	ArgType:   ArgTypeSchema,
	Validate:  ValidateTrue,
	Generated: true,
}

// ResolvedDynamicRefKeyword is a special Keyword used to record
// what a $dynamicRef or $recursiveRef refers to in a schema when
// the reference could be resolved statically.
var ResolvedDynamicRefKeyword = Keyword{
	Name:      "$$resolvedDynamicRef",
	ArgType:   ArgTypeSchema,
	Validate:  ValidateTrue,
	Generated: true,
}

// DetachedDynamicRefKeyword is a special Keyword used to record
// what a dynamic reference refers to if no matching dynamic anchor
// is in scope during evaluation. We need this fallback for a
// reference to a subschema that skips over the resource that
// records the dynamic anchor.
var DetachedDynamicRefKeyword = Keyword{
	Name:      "$$detachedDynamicRef",
	ArgType:   ArgTypeSchema,
	Validate:  ValidateTrue,
	Generated: true,
}

// DynamicAnchor is the value stored with RecordDynamicAnchorKeyword
// and ClearDynamicAnchorKeyword, wrapped in a [PartAny].
// For a $recursiveAnchor the Anchor field is the empty string.
type DynamicAnchor struct {
	Anchor string
	Schema *Schema
}

// RecordDynamicAnchorKeyword is a special Keyword that records a
// dynamic anchor while the schema that declares it is being
// evaluated. Resolution adds it as the first part of the schema.
var RecordDynamicAnchorKeyword = Keyword{
	Name:      "$$recordDynamicAnchor",
	ArgType:   ArgTypeAny,
	Validate:  validateRecordDynamicAnchor,
	Generated: true,
}

// ClearDynamicAnchorKeyword is a special Keyword that removes a
// dynamic anchor recorded by RecordDynamicAnchorKeyword.
// Resolution adds it as the last part of the schema.
var ClearDynamicAnchorKeyword = Keyword{
	Name:      "$$clearDynamicAnchor",
	ArgType:   ArgTypeAny,
	Validate:  validateClearDynamicAnchor,
	Generated: true,
}

// ValidateTrue is a validator function that always succeeds.
// It is the Validate function of annotation-only keywords.
func ValidateTrue(PartValue, any, *ValidationState) error {
	return nil
}

// validateBool handles the special $bool keyword,
// which does not actually appear in schema definitions.
func validateBool(arg PartValue, instance any, state *ValidationState) error {
	if !arg.(PartBool) {
		return &validerr.ValidationError{
			Message: "false schema never matches",
		}
	}
	return nil
}

// validateRecordDynamicAnchor records a dynamic anchor during
// validation, so that a dynamic reference can see it. An anchor of
// the same name recorded by an enclosing schema resource wins;
// dynamic anchors use a top-down scope.
func validateRecordDynamicAnchor(arg PartValue, instance any, state *ValidationState) error {
	da := arg.(PartAny).V.(*DynamicAnchor)
	state.RecordDynamicAnchor(da)
	return nil
}

// validateClearDynamicAnchor removes a dynamic anchor recorded by
// validateRecordDynamicAnchor, so that the anchor is only visible
// while the resource that declares it is being evaluated.
func validateClearDynamicAnchor(arg PartValue, instance any, state *ValidationState) error {
	state.ClearDynamicAnchor(arg.(PartAny).V.(*DynamicAnchor))
	return nil
}
