// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package validator

import (
	"reflect"
	"strconv"

	"github.com/validata/jsonschema/pkg/notes"
	"github.com/validata/jsonschema/pkg/types"
	"github.com/validata/jsonschema/pkg/validerr"
)

// itemsNote is the type of the note recorded for the pre-2020 items
// keyword. We need to track how much of the array the keyword
// covered and the schema, as items only affects additionalItems in
// the same schema object.
type itemsNote struct {
	all    bool
	idx    int
	schema *types.Schema
}

// ValidatePre2020Items implements the items keyword of drafts 3
// through 2019-09, which takes either a single schema applied to
// every element or an array of schemas applied positionally.
// Draft 2020-12 split the two forms into items and prefixItems.
func ValidatePre2020Items(arg types.PartSchemaOrSchemas, instance any, state *types.ValidationState) error {
	note := itemsNote{
		schema: state.Schema,
	}

	var topErr error
	check := func(i int, s *types.Schema, val any) error {
		state.PushInstanceToken(strconv.Itoa(i))
		err := s.ValidateSubSchema(val, state)
		state.PopInstanceToken()
		if err != nil {
			if !validerr.IsValidationError(err) {
				return err
			}
			if arg.Schema != nil {
				validerr.AddError(&topErr, err)
			} else {
				validerr.AddError(&topErr, err, strconv.Itoa(i))
			}
		}
		return nil
	}

	if arg.Schema != nil {
		a, ok := instanceItems(instance)
		if !ok {
			return nil
		}
		for i, e := range a {
			if err := check(i, arg.Schema, e); err != nil {
				return err
			}
		}
		note.all = true
	} else {
		applyDefaults := state.Opts != nil && state.Opts.ApplyDefaults

		if a, ok := instance.([]any); ok {
			// Skip reflection in the common case of a JSON array.
			for i, s := range arg.Schemas {
				if i >= len(a) {
					note.all = true
					break
				}

				val := a[i]
				if applyDefaults && reflect.ValueOf(val).IsZero() {
					if pv, hasDefault := s.LookupKeyword("default"); hasDefault {
						val = pv.(types.PartAny).V
						a[i] = val
					}
				}

				if err := check(i, s, val); err != nil {
					return err
				}
			}
		} else {
			v := reflect.ValueOf(instance)
			if v.Kind() != reflect.Slice && v.Kind() != reflect.Array {
				return nil
			}

			ln := v.Len()
			for i, s := range arg.Schemas {
				if i >= ln {
					note.all = true
					break
				}

				indexVal := v.Index(i)
				val := indexVal.Interface()
				if applyDefaults && indexVal.IsZero() {
					if pv, hasDefault := s.LookupKeyword("default"); hasDefault {
						defVal := pv.(types.PartAny).V
						if err := setDefault(indexVal, defVal); err != nil {
							return err
						}
						val = defVal
					}
				}

				if err := check(i, s, val); err != nil {
					return err
				}
			}
		}

		if !note.all {
			note.idx = len(arg.Schemas)
		}
	}

	notes.AppendNote(&state.Notes, "items", note)
	return topErr
}

// validateItemsFrom applies a schema to the elements of an array
// instance starting at idx, and reports whether the instance is an
// array at all.
func validateItemsFrom(s *types.Schema, instance any, state *types.ValidationState, idx int) (bool, error) {
	a, ok := instanceItems(instance)
	if !ok {
		return false, nil
	}

	var topErr error
	for ; idx < len(a); idx++ {
		state.PushInstanceToken(strconv.Itoa(idx))
		err := s.ValidateSubSchema(a[idx], state)
		state.PopInstanceToken()
		if err != nil {
			if !validerr.IsValidationError(err) {
				return true, err
			}
			validerr.AddError(&topErr, err)
			if state.FailFast() {
				break
			}
		}
	}
	return true, topErr
}

// ValidatePre2020AdditionalItems implements the additionalItems
// keyword of drafts 3 through 2019-09. It only applies when a
// sibling items keyword in array form left a tail uncovered.
func ValidatePre2020AdditionalItems(arg types.PartSchema, instance any, state *types.ValidationState) error {
	found := false
	idx := 0
	if ns, ok := state.Notes.Get("items"); ok {
		for _, note := range ns.([]itemsNote) {
			if note.schema == state.Schema {
				if note.all {
					return nil
				}
				idx = max(idx, note.idx)
				found = true
			}
		}
	}
	if !found {
		return nil
	}

	isArray, err := validateItemsFrom(arg.S, instance, state, idx)
	if err != nil {
		return err
	}
	if !isArray {
		return nil
	}

	notes.AppendNote(&state.Notes, "items", itemsNote{
		schema: state.Schema,
		all:    true,
	})
	return nil
}

// ValidatePre2020UnevaluatedItems implements the unevaluatedItems
// keyword of draft 2019-09, which reads the notes of the pre-2020
// items keyword rather than prefixItems.
func ValidatePre2020UnevaluatedItems(arg types.PartSchema, instance any, state *types.ValidationState) error {
	idx := 0
	if ns, ok := state.Notes.Get("items"); ok {
		for _, note := range ns.([]itemsNote) {
			if note.all {
				return nil
			}
			idx = max(idx, note.idx)
		}
	}

	if _, err := validateItemsFrom(arg.S, instance, state, idx); err != nil {
		return err
	}

	notes.AppendNote(&state.Notes, "items", itemsNote{
		schema: state.Schema,
		all:    true,
	})
	return nil
}
