// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package validator

import (
	"fmt"
	"strconv"

	"github.com/validata/jsonschema/pkg/types"
	"github.com/validata/jsonschema/pkg/validerr"
)

// This file implements the keywords that only exist in drafts 3
// and 4: extends, disallow, divisibleBy, the boolean forms of
// exclusiveMaximum and exclusiveMinimum, and the draft 3 spelling
// of required as a boolean inside a property subschema.

// ValidateExtends implements the draft 3 extends keyword, which
// applies one schema or a list of schemas on top of the current one.
func ValidateExtends(arg types.PartSchemaOrSchemas, instance any, state *types.ValidationState) error {
	subState, err := state.Child()
	if err != nil {
		return err
	}

	if arg.Schema != nil {
		if err := arg.Schema.ValidateInPlaceSchema(instance, subState); err != nil {
			if !validerr.IsValidationError(err) {
				return err
			}
			var topErr error
			validerr.AddError(&topErr, err)
			return topErr
		}
		return nil
	}

	var topErr error
	for i, s := range arg.Schemas {
		if err := s.ValidateInPlaceSchema(instance, subState); err != nil {
			if !validerr.IsValidationError(err) {
				return err
			}
			validerr.AddError(&topErr, err, strconv.Itoa(i))
		}
		subState.Notes.Clear()
	}
	return topErr
}

// ValidateDisallow implements the draft 3 disallow keyword,
// the negation of type.
func ValidateDisallow(arg types.PartStringOrStrings, instance any, state *types.ValidationState) error {
	err := ValidateType(arg, instance, state)
	if err == nil {
		return &validerr.ValidationError{
			Message: fmt.Sprintf("instance has disallowed type %q", state.TypeChecker().Describe(instance)),
		}
	}
	if !validerr.IsValidationError(err) {
		return err
	}
	return nil
}

// ValidateDivisibleBy implements the draft 3 divisibleBy keyword,
// renamed multipleOf in draft 4.
func ValidateDivisibleBy(arg types.PartFloat, instance any, state *types.ValidationState) error {
	return ValidateMultipleOf(arg, instance, state)
}

// exclusiveBound reports whether the schema carries a boolean
// keyword, such as the draft 4 exclusiveMaximum, with value true.
func exclusiveBound(s *types.Schema, keyword string) bool {
	pv, ok := s.LookupKeyword(keyword)
	if !ok {
		return false
	}
	b, ok := pv.(types.PartBool)
	return ok && bool(b)
}

// ValidateBoundedMaximum implements maximum for drafts 3 and 4,
// where a sibling boolean exclusiveMaximum tightens the bound.
func ValidateBoundedMaximum(arg types.PartFloat, instance any, state *types.ValidationState) error {
	f, ok := instanceNumber(instance)
	if !ok {
		return nil
	}
	if exclusiveBound(state.Schema, "exclusiveMaximum") {
		if f >= float64(arg) {
			return &validerr.ValidationError{
				Message: fmt.Sprintf("%v is not smaller than the exclusive maximum %v", f, float64(arg)),
			}
		}
		return nil
	}
	if f > float64(arg) {
		return &validerr.ValidationError{
			Message: fmt.Sprintf("%v is larger than the maximum %v", f, float64(arg)),
		}
	}
	return nil
}

// ValidateBoundedMinimum implements minimum for drafts 3 and 4,
// where a sibling boolean exclusiveMinimum tightens the bound.
func ValidateBoundedMinimum(arg types.PartFloat, instance any, state *types.ValidationState) error {
	f, ok := instanceNumber(instance)
	if !ok {
		return nil
	}
	if exclusiveBound(state.Schema, "exclusiveMinimum") {
		if f <= float64(arg) {
			return &validerr.ValidationError{
				Message: fmt.Sprintf("%v is not larger than the exclusive minimum %v", f, float64(arg)),
			}
		}
		return nil
	}
	if f < float64(arg) {
		return &validerr.ValidationError{
			Message: fmt.Sprintf("%v is smaller than the minimum %v", f, float64(arg)),
		}
	}
	return nil
}

// ValidateDraft3Properties implements properties for draft 3,
// where a property subschema may carry "required": true and the
// enclosing object must then have the property. The subschema's own
// required part validates nothing where it sits; enforcement
// happens here, at the object that owns the property.
func ValidateDraft3Properties(arg types.PartMapSchema, instance any, state *types.ValidationState) error {
	var topErr error
	if names, isObject := instanceFieldNames(instance); isObject {
		for _, name := range sortedKeys(arg) {
			if !exclusiveBound(arg[name], "required") {
				continue
			}
			if _, found := names[name]; !found {
				ve := &validerr.ValidationError{
					Message: fmt.Sprintf("missing required property %q", name),
				}
				validerr.AddError(&topErr, ve, name, "required")
			}
		}
	}

	if err := ValidateProperties(arg, instance, state); err != nil {
		if !validerr.IsValidationError(err) {
			return err
		}
		validerr.AddError(&topErr, err)
	}
	return topErr
}
