// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package validator

import (
	"fmt"
	"strings"

	"github.com/validata/jsonschema/pkg/types"
)

// generatedSchema returns the schema stored in a generated part,
// such as the resolved target of a reference.
func generatedSchema(s *types.Schema, kw *types.Keyword) (*types.Schema, bool) {
	for _, part := range s.Parts {
		if part.Keyword == kw {
			return part.Value.(types.PartSchema).S, true
		}
	}
	return nil, false
}

// ValidateRef implements the $ref keyword. Reference resolution has
// already recorded the target schema in a generated part; evaluation
// applies the target in place, so annotations it records are visible
// to sibling keywords such as unevaluatedProperties.
func ValidateRef(arg types.PartString, instance any, state *types.ValidationState) error {
	target, ok := generatedSchema(state.Schema, &types.ResolvedRefKeyword)
	if !ok {
		return fmt.Errorf("reference %q has not been resolved", arg)
	}
	return target.ValidateInPlaceSchema(instance, state)
}

// ValidateDynamicRef implements the $dynamicRef keyword.
//
// When resolution could prove that the reference never re-targets,
// for example because its fragment is a JSON pointer or because the
// target anchor is not a $dynamicAnchor, it stored a plain resolved
// target and this behaves exactly like $ref. Otherwise the anchor of
// the outermost schema resource evaluated so far wins, falling back
// to the statically resolved target when no resource on the current
// evaluation path declared the anchor.
func ValidateDynamicRef(arg types.PartString, instance any, state *types.ValidationState) error {
	if target, ok := generatedSchema(state.Schema, &types.ResolvedDynamicRefKeyword); ok {
		return target.ValidateInPlaceSchema(instance, state)
	}

	fallback, ok := generatedSchema(state.Schema, &types.DetachedDynamicRefKeyword)
	if !ok {
		return fmt.Errorf("dynamic reference %q has not been resolved", arg)
	}

	_, frag, _ := strings.Cut(string(arg), "#")
	if target := state.LookupDynamicAnchor(frag); target != nil {
		return target.ValidateInPlaceSchema(instance, state)
	}
	return fallback.ValidateInPlaceSchema(instance, state)
}

// ValidateRecursiveRef implements the $recursiveRef keyword of
// draft 2019-09. The reference is always "#"; whether it re-targets
// dynamically depends on $recursiveAnchor, which resolution records
// as a dynamic anchor under the empty name.
func ValidateRecursiveRef(arg types.PartString, instance any, state *types.ValidationState) error {
	if target, ok := generatedSchema(state.Schema, &types.ResolvedDynamicRefKeyword); ok {
		return target.ValidateInPlaceSchema(instance, state)
	}

	fallback, ok := generatedSchema(state.Schema, &types.DetachedDynamicRefKeyword)
	if !ok {
		return fmt.Errorf("recursive reference %q has not been resolved", arg)
	}

	if target := state.LookupDynamicAnchor(""); target != nil {
		return target.ValidateInPlaceSchema(instance, state)
	}
	return fallback.ValidateInPlaceSchema(instance, state)
}
