// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package validator implements the standard JSON schema keywords.
// The dialect packages assemble these functions into vocabularies.
//
// A keyword function reports an instance failure as a
// [*validerr.ValidationError] or [*validerr.ValidationErrors];
// any other error type means the schema itself is broken and aborts
// evaluation. Schema path tokens added here are relative to the
// keyword; the evaluation loop prefixes the keyword name itself.
package validator

import (
	"errors"
	"fmt"
	"maps"
	"math"
	"reflect"
	"regexp"
	"slices"
	"strconv"
	"sync"
	"unicode/utf8"

	"github.com/validata/jsonschema/pkg/format"
	"github.com/validata/jsonschema/pkg/notes"
	"github.com/validata/jsonschema/pkg/types"
	"github.com/validata/jsonschema/pkg/validerr"
)

// Adapt converts a keyword function with a concrete argument type
// into the form stored in a [types.Keyword]. The schema parser
// guarantees the argument type, so a mismatch means the keyword was
// registered with the wrong [types.ArgType].
func Adapt[A types.PartValue](fn func(A, any, *types.ValidationState) error) func(types.PartValue, any, *types.ValidationState) error {
	return func(arg types.PartValue, instance any, state *types.ValidationState) error {
		a, ok := arg.(A)
		if !ok {
			switch v := arg.(type) {
			case types.PartInt:
				a, ok = types.PartValue(types.PartFloat(v)).(A)
			case types.PartFloat:
				if math.Trunc(float64(v)) == float64(v) {
					a, ok = types.PartValue(types.PartInt(v)).(A)
				}
			}
			if !ok {
				return fmt.Errorf("keyword argument has type %T", arg)
			}
		}
		return fn(a, instance, state)
	}
}

// ToInt converts arg into a types.PartInt.
func ToInt(arg types.PartValue) (types.PartInt, error) {
	switch v := arg.(type) {
	case types.PartInt:
		return v, nil
	case types.PartFloat:
		iv := math.Trunc(float64(v))
		if iv != float64(v) {
			return 0, fmt.Errorf("got float %v, expect int", arg)
		}
		return types.PartInt(int64(iv)), nil
	default:
		return 0, fmt.Errorf("got %T, expect int", arg)
	}
}

// ToFloat converts arg into a types.PartFloat.
func ToFloat(arg types.PartValue) (types.PartFloat, error) {
	switch v := arg.(type) {
	case types.PartInt:
		return types.PartFloat(v), nil
	case types.PartFloat:
		return v, nil
	default:
		return 0, fmt.Errorf("got %T, expect float", arg)
	}
}

// sortedKeys returns the keys of m in sorted order. Ranging over a
// map directly would make error lists and note order nondeterministic.
func sortedKeys[M ~map[string]V, V any](m M) []string {
	return slices.Sorted(maps.Keys(m))
}

// branchContext turns a branch failure into context entries whose
// schema paths are relative to the applicator keyword.
func branchContext(err error, branch int) []*validerr.ValidationError {
	ves := validerr.Errors(err)
	for _, ve := range ves {
		ve.PrefixSchemaPath(strconv.Itoa(branch))
	}
	return ves
}

// ValidateAllOf implements the allOf keyword.
func ValidateAllOf(arg types.PartSchemas, instance any, state *types.ValidationState) error {
	subState, err := state.Child()
	if err != nil {
		return err
	}

	var keepNotes []notes.Notes
	var topErr error
	for i, s := range arg {
		if err := s.ValidateInPlaceSchema(instance, subState); err != nil {
			if !validerr.IsValidationError(err) {
				return err
			}
			validerr.AddError(&topErr, err, strconv.Itoa(i))
			if state.FailFast() {
				return topErr
			}
		} else if !subState.Notes.IsEmpty() {
			keepNotes = append(keepNotes, subState.Notes)
		}
		subState.Notes.Clear()
	}

	if topErr == nil {
		state.Notes.AddNotes(keepNotes...)
	}
	return topErr
}

// ValidateAnyOf implements the anyOf keyword.
// Even after one subschema matches, the rest are still evaluated:
// every matching branch may record notes that the unevaluated
// keywords need to see.
func ValidateAnyOf(arg types.PartSchemas, instance any, state *types.ValidationState) error {
	subState, err := state.Child()
	if err != nil {
		return err
	}

	var keepNotes []notes.Notes
	var ctx []*validerr.ValidationError
	matched := false
	for i, s := range arg {
		err := s.ValidateInPlaceSchema(instance, subState)
		switch {
		case err == nil:
			matched = true
			if !subState.Notes.IsEmpty() {
				keepNotes = append(keepNotes, subState.Notes)
			}
		case !validerr.IsValidationError(err):
			return err
		default:
			ctx = append(ctx, branchContext(err, i)...)
		}
		subState.Notes.Clear()
	}

	if !matched {
		return &validerr.ValidationError{
			Message: fmt.Sprintf("does not satisfy any of the %d subschemas", len(arg)),
			Context: ctx,
		}
	}
	state.Notes.AddNotes(keepNotes...)
	return nil
}

// ValidateOneOf implements the oneOf keyword.
func ValidateOneOf(arg types.PartSchemas, instance any, state *types.ValidationState) error {
	subState, err := state.Child()
	if err != nil {
		return err
	}

	var keepNotes notes.Notes
	var ctx []*validerr.ValidationError
	var matched []int
	for i, s := range arg {
		err := s.ValidateInPlaceSchema(instance, subState)
		switch {
		case err == nil:
			matched = append(matched, i)
			keepNotes = subState.Notes
		case !validerr.IsValidationError(err):
			return err
		default:
			ctx = append(ctx, branchContext(err, i)...)
		}
		subState.Notes.Clear()
	}

	switch len(matched) {
	case 1:
		state.Notes.AddNotes(keepNotes)
		return nil
	case 0:
		return &validerr.ValidationError{
			Message: fmt.Sprintf("does not satisfy any of the %d subschemas, want exactly one", len(arg)),
			Context: ctx,
		}
	default:
		return &validerr.ValidationError{
			Message: fmt.Sprintf("satisfies subschemas %v, want exactly one", matched),
		}
	}
}

// ValidateNot implements the not keyword.
// A failed subschema contributes no notes: what the inner schema
// evaluated does not count as evaluated out here.
func ValidateNot(arg types.PartSchema, instance any, state *types.ValidationState) error {
	subState, err := state.Child()
	if err != nil {
		return err
	}

	err = arg.S.ValidateInPlaceSchema(instance, subState)
	if err == nil {
		return &validerr.ValidationError{
			Message: `instance matched the "not" schema`,
		}
	}
	if !validerr.IsValidationError(err) {
		return err
	}
	return nil
}

// ValidateIf implements the if keyword.
// This is always valid, but records a note for the "then" and "else" keywords.
func ValidateIf(arg types.PartSchema, instance any, state *types.ValidationState) error {
	subState, err := state.Child()
	if err != nil {
		return err
	}

	ok := false
	if err := arg.S.ValidateInPlaceSchema(instance, subState); err != nil {
		if !validerr.IsValidationError(err) {
			return err
		}
	} else {
		ok = true
		state.Notes.AddNotes(subState.Notes)
	}
	state.Notes.Set("if", ok)
	return nil
}

// ValidateThen implements the then keyword.
func ValidateThen(arg types.PartSchema, instance any, state *types.ValidationState) error {
	v, ok := state.Notes.Get("if")
	if !ok || !v.(bool) {
		return nil
	}

	subState, err := state.Child()
	if err != nil {
		return err
	}

	err = arg.S.ValidateInPlaceSchema(instance, subState)
	if err == nil {
		state.Notes.AddNotes(subState.Notes)
	}
	return err
}

// ValidateElse implements the else keyword.
func ValidateElse(arg types.PartSchema, instance any, state *types.ValidationState) error {
	v, ok := state.Notes.Get("if")
	if !ok || v.(bool) {
		return nil
	}

	subState, err := state.Child()
	if err != nil {
		return err
	}

	err = arg.S.ValidateInPlaceSchema(instance, subState)
	if err == nil {
		state.Notes.AddNotes(subState.Notes)
	}
	return err
}

// ValidateDependentSchemas implements the dependentSchemas keyword.
func ValidateDependentSchemas(arg types.PartMapSchema, instance any, state *types.ValidationState) error {
	subState, err := state.Child()
	if err != nil {
		return err
	}

	var keepNotes []notes.Notes
	var topErr error
	for _, name := range sortedKeys(arg) {
		if _, _, ok := instanceField(name, instance); !ok {
			continue
		}
		if err := arg[name].ValidateInPlaceSchema(instance, subState); err != nil {
			if !validerr.IsValidationError(err) {
				return err
			}
			validerr.AddError(&topErr, err, name)
		} else if !subState.Notes.IsEmpty() {
			keepNotes = append(keepNotes, subState.Notes)
		}
		subState.Notes.Clear()
	}

	if topErr == nil {
		state.Notes.AddNotes(keepNotes...)
	}
	return topErr
}

// prefixItemsNote is the type of the note recorded for prefixItems.
// We need to track both the length of the array and the schema,
// as prefixItems only affects items in the same schema object.
type prefixItemsNote struct {
	idx    int
	schema *types.Schema
}

// ValidatePrefixItems implements the prefixItems keyword.
func ValidatePrefixItems(arg types.PartSchemas, instance any, state *types.ValidationState) error {
	note := prefixItemsNote{
		idx:    len(arg),
		schema: state.Schema,
	}
	notes.AppendNote(&state.Notes, "prefixItems", note)

	applyDefaults := state.Opts != nil && state.Opts.ApplyDefaults

	var topErr error
	check := func(i int, s *types.Schema, val any) error {
		state.PushInstanceToken(strconv.Itoa(i))
		err := s.ValidateSubSchema(val, state)
		state.PopInstanceToken()
		if err != nil {
			if !validerr.IsValidationError(err) {
				return err
			}
			validerr.AddError(&topErr, err, strconv.Itoa(i))
		}
		return nil
	}

	if a, ok := instance.([]any); ok {
		// Skip reflection in the common case of a JSON array.
		for i, s := range arg {
			if i >= len(a) {
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
		for i, s := range arg {
			if i >= ln {
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

	return topErr
}

// instanceItems returns the elements of an array instance,
// and reports whether the instance is an array at all.
func instanceItems(instance any) ([]any, bool) {
	if a, ok := instance.([]any); ok {
		return a, true
	}
	v := reflect.ValueOf(instance)
	if v.Kind() != reflect.Slice && v.Kind() != reflect.Array {
		return nil, false
	}
	a := make([]any, v.Len())
	for i := range a {
		a[i] = v.Index(i).Interface()
	}
	return a, true
}

// ValidateItems implements the draft 2020-12 items keyword,
// which applies a single schema to the elements that prefixItems
// did not cover.
func ValidateItems(arg types.PartSchema, instance any, state *types.ValidationState) error {
	idx := 0
	if pins, ok := state.Notes.Get("prefixItems"); ok {
		for _, pin := range pins.([]prefixItemsNote) {
			if pin.schema == state.Schema {
				idx = pin.idx
				break
			}
		}
	}

	a, ok := instanceItems(instance)
	if !ok {
		return nil
	}

	if idx < len(a) {
		state.Notes.Set("items", true)
	}

	var topErr error
	for ; idx < len(a); idx++ {
		state.PushInstanceToken(strconv.Itoa(idx))
		err := arg.S.ValidateSubSchema(a[idx], state)
		state.PopInstanceToken()
		if err != nil {
			if !validerr.IsValidationError(err) {
				return err
			}
			validerr.AddError(&topErr, err)
			if state.FailFast() {
				break
			}
		}
	}
	return topErr
}

// ValidateContains implements the contains keyword.
func ValidateContains(arg types.PartSchema, instance any, state *types.ValidationState) error {
	// If there is a minContains keyword in the schema with value 0,
	// then "contains" is always valid.
	hasMinContainsZero := false
	if pv, ok := state.Schema.LookupKeyword("minContains"); ok {
		if n, ok := pv.(types.PartInt); ok && n == 0 {
			hasMinContainsZero = true
		}
	}

	a, ok := instanceItems(instance)
	if !ok {
		return nil
	}

	var matched []int
	for i, e := range a {
		if err := arg.S.ValidateSubSchema(e, state); err == nil {
			matched = append(matched, i)
		}
	}

	if len(matched) == 0 && !hasMinContainsZero {
		return &validerr.ValidationError{
			Message: `no array element matches the "contains" schema`,
		}
	}

	notes.AppendNote(&state.Notes, "contains", matched...)
	return nil
}

// propertiesNote is the type of the note recorded for properties.
// We need to track the field and the schema,
// as additionalProperties looks for properties in the same schema object.
type propertiesNote struct {
	field  string
	schema *types.Schema
}

// claimProperty records that a keyword of this schema object has
// evaluated the named instance field.
func claimProperty(state *types.ValidationState, keyword, field string) {
	notes.AppendNote(&state.Notes, keyword, propertiesNote{
		field:  field,
		schema: state.Schema,
	})
}

// ValidateProperties implements the properties keyword.
func ValidateProperties(arg types.PartMapSchema, instance any, state *types.ValidationState) error {
	applyDefaults := state.Opts != nil && state.Opts.ApplyDefaults

	var required types.PartStrings
	if pv, ok := state.Schema.LookupKeyword("required"); ok {
		required, _ = pv.(types.PartStrings)
	}

	m, isMap := instance.(map[string]any)
	pm, isPtrToMap := instance.(*map[string]any)

	var topErr error
	for _, name := range sortedKeys(arg) {
		s := arg[name]

		var defaultVal any
		hasDefault := false
		if applyDefaults && !slices.Contains(required, name) {
			var pv types.PartValue
			pv, hasDefault = s.LookupKeyword("default")
			if hasDefault {
				defaultVal = pv.(types.PartAny).V
			}
		}

		f, jsonName, ok := instanceField(name, instance)
		if !ok {
			// This field does not appear in the instance.

			// If we are applying defaults, and this is a map,
			// add an entry to the map.
			if hasDefault {
				if isMap {
					m[jsonName] = defaultVal
				} else if isPtrToMap {
					(*pm)[jsonName] = defaultVal
				}
				claimProperty(state, "properties", jsonName)
			}
			continue
		}

		if hasDefault {
			var set bool
			if isMap {
				_, have := m[jsonName]
				set = !have
			} else if isPtrToMap {
				_, have := (*pm)[jsonName]
				set = !have
			} else {
				set = reflect.ValueOf(f).IsZero()
			}
			if set {
				if err := setField(instance, jsonName, defaultVal); err != nil {
					return err
				}
				f = defaultVal
			}
		}

		state.PushInstanceToken(jsonName)
		err := s.ValidateSubSchema(f, state)
		state.PopInstanceToken()
		if err != nil {
			if !validerr.IsValidationError(err) {
				return err
			}
			validerr.AddError(&topErr, err, name)
			if state.FailFast() {
				return topErr
			}
		}

		claimProperty(state, "properties", jsonName)
	}
	return topErr
}

// regexpCache caches compiled keyword regexps across validations.
var regexpCache sync.Map // map[string]*regexp.Regexp

// compileRegexp is regexp.Compile with a cache. Schemas apply the
// same patterns to every instance, so compiling per validation
// would dominate the cost of the pattern keywords.
func compileRegexp(pattern string) (*regexp.Regexp, error) {
	if re, ok := regexpCache.Load(pattern); ok {
		return re.(*regexp.Regexp), nil
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, err
	}
	actual, _ := regexpCache.LoadOrStore(pattern, re)
	return actual.(*regexp.Regexp), nil
}

// ValidatePatternProperties implements the patternProperties keyword.
func ValidatePatternProperties(arg types.PartMapSchema, instance any, state *types.ValidationState) error {
	names, ok := instanceFieldNames(instance)
	if !ok {
		return nil
	}

	var topErr error
	for _, pattern := range sortedKeys(arg) {
		re, err := compileRegexp(pattern)
		if err != nil {
			return fmt.Errorf(`"patternProperties" regexp %q failed: %v`, pattern, err)
		}

		for _, name := range sortedKeys(names) {
			if !re.MatchString(name) {
				continue
			}
			vf, jsonName, ok := instanceField(name, instance)
			if !ok {
				continue
			}

			state.PushInstanceToken(jsonName)
			err := arg[pattern].ValidateSubSchema(vf, state)
			state.PopInstanceToken()
			if err != nil {
				if !validerr.IsValidationError(err) {
					return err
				}
				validerr.AddError(&topErr, err, pattern)
			}

			claimProperty(state, "patternProperties", jsonName)
		}
	}
	return topErr
}

// claimedProperties collects the instance fields that the given
// keywords of this schema object have already evaluated.
func claimedProperties(state *types.ValidationState, keywords ...string) map[string]bool {
	found := make(map[string]bool)
	for _, key := range keywords {
		ns, ok := state.Notes.Get(key)
		if !ok {
			continue
		}
		for _, note := range ns.([]propertiesNote) {
			if note.schema == state.Schema {
				found[note.field] = true
			}
		}
	}
	return found
}

// ValidateAdditionalProperties implements the additionalProperties keyword.
func ValidateAdditionalProperties(arg types.PartSchema, instance any, state *types.ValidationState) error {
	names, ok := instanceFieldNames(instance)
	if !ok {
		return nil
	}

	found := claimedProperties(state, "properties", "patternProperties")

	var topErr error
	for _, name := range sortedKeys(names) {
		if found[name] {
			continue
		}
		if vf, _, ok := instanceField(name, instance); ok {
			state.PushInstanceToken(name)
			err := arg.S.ValidateSubSchema(vf, state)
			state.PopInstanceToken()
			if err != nil {
				if !validerr.IsValidationError(err) {
					return err
				}
				validerr.AddError(&topErr, err, name)
			}
		}
		claimProperty(state, "additionalProperties", name)
	}
	return topErr
}

// ValidatePropertyNames implements the propertyNames keyword.
func ValidatePropertyNames(arg types.PartSchema, instance any, state *types.ValidationState) error {
	names, ok := instanceFieldNames(instance)
	if !ok {
		return nil
	}
	var topErr error
	for _, name := range sortedKeys(names) {
		if err := arg.S.ValidateSubSchema(name, state); err != nil {
			if !validerr.IsValidationError(err) {
				return err
			}
			validerr.AddError(&topErr, err, name)
		}
	}
	return topErr
}

// ValidateUnevaluatedItems implements the unevaluatedItems keyword.
// The keyword ordering guarantees this runs after every keyword that
// can evaluate items, including in-place applicators such as $ref
// and allOf, whose notes have been merged by then.
func ValidateUnevaluatedItems(arg types.PartSchema, instance any, state *types.ValidationState) error {
	if b, ok := state.Notes.Get("items"); ok && b.(bool) {
		return nil
	}
	if b, ok := state.Notes.Get("unevaluatedItems"); ok && b.(bool) {
		return nil
	}

	idx := 0
	if pins, ok := state.Notes.Get("prefixItems"); ok {
		for _, pin := range pins.([]prefixItemsNote) {
			idx = max(idx, pin.idx)
		}
	}
	var contains []int
	if c, ok := state.Notes.Get("contains"); ok {
		contains = c.([]int)
	}

	a, ok := instanceItems(instance)
	if !ok {
		return nil
	}

	if idx < len(a) {
		state.Notes.Set("unevaluatedItems", true)
	}

	var topErr error
	for ; idx < len(a); idx++ {
		if slices.Contains(contains, idx) {
			continue
		}
		state.PushInstanceToken(strconv.Itoa(idx))
		err := arg.S.ValidateSubSchema(a[idx], state)
		state.PopInstanceToken()
		if err != nil {
			if !validerr.IsValidationError(err) {
				return err
			}
			validerr.AddError(&topErr, err)
			if state.FailFast() {
				break
			}
		}
	}
	return topErr
}

// ValidateUnevaluatedProperties implements the unevaluatedProperties keyword.
func ValidateUnevaluatedProperties(arg types.PartSchema, instance any, state *types.ValidationState) error {
	// Collect all the names seen by the properties or
	// patternProperties or additionalProperties keywords.
	// Unlike additionalProperties, claims made by other schema
	// objects count too: they were merged into our notes when the
	// in-place applicator that ran them succeeded.
	found := make(map[string]bool)
	for _, key := range []string{"properties", "patternProperties", "additionalProperties", "unevaluatedProperties"} {
		if ns, ok := state.Notes.Get(key); ok {
			for _, note := range ns.([]propertiesNote) {
				found[note.field] = true
			}
		}
	}

	names, ok := instanceFieldNames(instance)
	if !ok {
		return nil
	}

	var topErr error
	for _, name := range sortedKeys(names) {
		if found[name] {
			continue
		}
		if vf, _, ok := instanceField(name, instance); ok {
			state.PushInstanceToken(name)
			err := arg.S.ValidateSubSchema(vf, state)
			state.PopInstanceToken()
			if err != nil {
				if !validerr.IsValidationError(err) {
					return err
				}
				validerr.AddError(&topErr, err, name)
			}
		}
		claimProperty(state, "unevaluatedProperties", name)
	}
	return topErr
}

// ValidateType implements the type keyword. The meaning of each
// type name comes from the dialect's type checker, which options
// may override.
func ValidateType(arg types.PartStringOrStrings, instance any, state *types.ValidationState) error {
	tc := state.TypeChecker()

	if arg.Strings == nil {
		ok, err := tc.IsType(instance, arg.String)
		if err != nil {
			return err
		}
		if !ok {
			return &validerr.ValidationError{
				Message: fmt.Sprintf("instance has type %q, want %q", tc.Describe(instance), arg.String),
			}
		}
		return nil
	}

	for _, name := range arg.Strings {
		ok, err := tc.IsType(instance, name)
		if err != nil {
			return err
		}
		if ok {
			return nil
		}
	}
	return &validerr.ValidationError{
		Message: fmt.Sprintf("instance has type %q, want one of %v", tc.Describe(instance), arg.Strings),
	}
}

// ValidateEnum implements the enum keyword.
func ValidateEnum(arg types.PartAny, instance any, state *types.ValidationState) error {
	s, ok := arg.V.([]any)
	if !ok {
		return fmt.Errorf(`"enum" argument is %T, must be []any`, arg.V)
	}
	for _, e := range s {
		if Equal(instance, e) {
			return nil
		}
	}
	return &validerr.ValidationError{
		Message: fmt.Sprintf("%s is not one of the enumerated values", describeValue(instance)),
	}
}

// ValidateConst implements the const keyword.
func ValidateConst(arg types.PartAny, instance any, state *types.ValidationState) error {
	if !Equal(instance, arg.V) {
		return &validerr.ValidationError{
			Message: fmt.Sprintf("got %s, want the constant %s", describeValue(instance), describeValue(arg.V)),
		}
	}
	return nil
}

// instanceNumber returns instance as a floating-point number,
// and reports whether instance is a number at all.
// Booleans are not numbers, and neither are numeric strings.
func instanceNumber(instance any) (float64, bool) {
	if instance == nil {
		return 0, false
	}
	if _, ok := instance.(bool); ok {
		return 0, false
	}
	v := reflect.ValueOf(instance)
	switch {
	case v.CanInt():
		return float64(v.Int()), true
	case v.CanUint():
		return float64(v.Uint()), true
	case v.CanFloat():
		return v.Float(), true
	default:
		return 0, false
	}
}

// ValidateMultipleOf implements the multipleOf keyword.
func ValidateMultipleOf(arg types.PartFloat, instance any, state *types.ValidationState) error {
	f, ok := instanceNumber(instance)
	if !ok {
		return nil
	}
	if float64(arg) == 0 {
		return fmt.Errorf(`"multipleOf" argument must not be zero`)
	}
	if !isMultiple(f, float64(arg)) {
		return &validerr.ValidationError{
			Message: fmt.Sprintf("%v is not a multiple of %v", f, float64(arg)),
		}
	}
	return nil
}

// ValidateMaximum implements the maximum keyword.
func ValidateMaximum(arg types.PartFloat, instance any, state *types.ValidationState) error {
	f, ok := instanceNumber(instance)
	if !ok {
		return nil
	}
	if f > float64(arg) {
		return &validerr.ValidationError{
			Message: fmt.Sprintf("%v is larger than the maximum %v", f, float64(arg)),
		}
	}
	return nil
}

// ValidateExclusiveMaximum implements the exclusiveMaximum keyword
// of draft 6 and later, where the argument is a number.
func ValidateExclusiveMaximum(arg types.PartFloat, instance any, state *types.ValidationState) error {
	f, ok := instanceNumber(instance)
	if !ok {
		return nil
	}
	if f >= float64(arg) {
		return &validerr.ValidationError{
			Message: fmt.Sprintf("%v is not smaller than the exclusive maximum %v", f, float64(arg)),
		}
	}
	return nil
}

// ValidateMinimum implements the minimum keyword.
func ValidateMinimum(arg types.PartFloat, instance any, state *types.ValidationState) error {
	f, ok := instanceNumber(instance)
	if !ok {
		return nil
	}
	if f < float64(arg) {
		return &validerr.ValidationError{
			Message: fmt.Sprintf("%v is smaller than the minimum %v", f, float64(arg)),
		}
	}
	return nil
}

// ValidateExclusiveMinimum implements the exclusiveMinimum keyword
// of draft 6 and later, where the argument is a number.
func ValidateExclusiveMinimum(arg types.PartFloat, instance any, state *types.ValidationState) error {
	f, ok := instanceNumber(instance)
	if !ok {
		return nil
	}
	if f <= float64(arg) {
		return &validerr.ValidationError{
			Message: fmt.Sprintf("%v is not larger than the exclusive minimum %v", f, float64(arg)),
		}
	}
	return nil
}

// ValidateMaxLength implements the maxLength keyword.
// Lengths count Unicode code points, not bytes.
func ValidateMaxLength(arg types.PartInt, instance any, state *types.ValidationState) error {
	if arg < 0 {
		return fmt.Errorf(`"maxLength" argument is %d, must be non-negative`, arg)
	}
	if s, ok := instance.(string); ok {
		if n := utf8.RuneCountInString(s); types.PartInt(n) > arg {
			return &validerr.ValidationError{
				Message: fmt.Sprintf("string length %d is longer than the limit %d", n, arg),
			}
		}
	}
	return nil
}

// ValidateMinLength implements the minLength keyword.
func ValidateMinLength(arg types.PartInt, instance any, state *types.ValidationState) error {
	if arg < 0 {
		return fmt.Errorf(`"minLength" argument is %d, must be non-negative`, arg)
	}
	if s, ok := instance.(string); ok {
		if n := utf8.RuneCountInString(s); types.PartInt(n) < arg {
			return &validerr.ValidationError{
				Message: fmt.Sprintf("string length %d is shorter than the limit %d", n, arg),
			}
		}
	}
	return nil
}

// ValidatePattern implements the pattern keyword.
func ValidatePattern(arg types.PartString, instance any, state *types.ValidationState) error {
	s, ok := instance.(string)
	if !ok {
		return nil
	}

	re, err := compileRegexp(string(arg))
	if err != nil {
		return fmt.Errorf(`"pattern" regexp %q failed: %v`, arg, err)
	}

	if !re.MatchString(s) {
		return &validerr.ValidationError{
			Message: fmt.Sprintf("%q does not match the pattern %q", s, arg),
		}
	}
	return nil
}

// ValidateMaxItems implements the maxItems keyword.
func ValidateMaxItems(arg types.PartInt, instance any, state *types.ValidationState) error {
	a, ok := instanceItems(instance)
	if !ok {
		return nil
	}
	if types.PartInt(len(a)) > arg {
		return &validerr.ValidationError{
			Message: fmt.Sprintf("array length %d is longer than the limit %d", len(a), arg),
		}
	}
	return nil
}

// ValidateMinItems implements the minItems keyword.
func ValidateMinItems(arg types.PartInt, instance any, state *types.ValidationState) error {
	a, ok := instanceItems(instance)
	if !ok {
		return nil
	}
	if types.PartInt(len(a)) < arg {
		return &validerr.ValidationError{
			Message: fmt.Sprintf("array length %d is shorter than the limit %d", len(a), arg),
		}
	}
	return nil
}

// ValidateUniqueItems implements the uniqueItems keyword.
func ValidateUniqueItems(arg types.PartBool, instance any, state *types.ValidationState) error {
	if !arg {
		return nil
	}

	a, ok := instanceItems(instance)
	if !ok {
		return nil
	}

	seen := make(map[string]int, len(a))
	for i, e := range a {
		key, err := fingerprint(e)
		if err != nil {
			return fmt.Errorf(`"uniqueItems" cannot compare element %d: %v`, i, err)
		}
		if j, dup := seen[key]; dup {
			return &validerr.ValidationError{
				Message: fmt.Sprintf("items %d and %d are equal", j, i),
			}
		}
		seen[key] = i
	}
	return nil
}

// ValidateMaxContains implements the maxContains keyword.
func ValidateMaxContains(arg types.PartInt, instance any, state *types.ValidationState) error {
	if matched, ok := state.Notes.Get("contains"); ok {
		if n := len(matched.([]int)); types.PartInt(n) > arg {
			return &validerr.ValidationError{
				Message: fmt.Sprintf(`%d elements match the "contains" schema, want at most %d`, n, arg),
			}
		}
	}
	return nil
}

// ValidateMinContains implements the minContains keyword.
func ValidateMinContains(arg types.PartInt, instance any, state *types.ValidationState) error {
	if matched, ok := state.Notes.Get("contains"); ok {
		if n := len(matched.([]int)); types.PartInt(n) < arg {
			return &validerr.ValidationError{
				Message: fmt.Sprintf(`%d elements match the "contains" schema, want at least %d`, n, arg),
			}
		}
	}
	return nil
}

// ValidateMaxProperties implements the maxProperties keyword.
func ValidateMaxProperties(arg types.PartInt, instance any, state *types.ValidationState) error {
	names, ok := instanceFieldNames(instance)
	if !ok {
		return nil
	}
	if n := len(names); types.PartInt(n) > arg {
		return &validerr.ValidationError{
			Message: fmt.Sprintf("object has %d properties, want at most %d", n, arg),
		}
	}
	return nil
}

// ValidateMinProperties implements the minProperties keyword.
func ValidateMinProperties(arg types.PartInt, instance any, state *types.ValidationState) error {
	names, ok := instanceFieldNames(instance)
	if !ok {
		return nil
	}
	if n := len(names); types.PartInt(n) < arg {
		return &validerr.ValidationError{
			Message: fmt.Sprintf("object has %d properties, want at least %d", n, arg),
		}
	}
	return nil
}

// ValidateRequired implements the required keyword.
func ValidateRequired(arg types.PartStrings, instance any, state *types.ValidationState) error {
	names, ok := instanceFieldNames(instance)
	if !ok {
		return nil
	}

	var topErr error
	for i, name := range arg {
		if _, found := names[name]; !found {
			ve := &validerr.ValidationError{
				Message: fmt.Sprintf("missing required property %q", name),
			}
			validerr.AddError(&topErr, ve, strconv.Itoa(i))
			if state.FailFast() {
				break
			}
		}
	}
	return topErr
}

// ValidateDependentRequired implements the dependentRequired keyword.
func ValidateDependentRequired(arg types.PartAny, instance any, state *types.ValidationState) error {
	m, ok := arg.V.(map[string]any)
	if !ok {
		return fmt.Errorf(`"dependentRequired" argument type %T, want map[string]any`, arg.V)
	}

	names, ok := instanceFieldNames(instance)
	if !ok {
		return nil
	}

	var topErr error
	for _, k := range sortedKeys(m) {
		if _, found := names[k]; !found {
			continue
		}

		ns, ok := m[k].([]any)
		if !ok {
			return fmt.Errorf(`"dependentRequired" element %q type %T, want []any`, k, m[k])
		}

		for _, e := range ns {
			n, ok := e.(string)
			if !ok {
				return fmt.Errorf(`"dependentRequired" element %q element type %T, want string`, k, e)
			}
			if _, found := names[n]; !found {
				ve := &validerr.ValidationError{
					Message: fmt.Sprintf("property %q requires property %q", k, n),
				}
				validerr.AddError(&topErr, ve, k)
			}
		}
	}
	return topErr
}

// ValidateFormat implements the format keyword.
// By default formats are annotations only; when format validation
// is enabled the configured format checker decides.
func ValidateFormat(arg types.PartString, instance any, state *types.ValidationState) error {
	fc := state.FormatChecker()
	if fc == nil {
		return nil
	}
	if err := fc.Check(string(arg), instance); err != nil {
		// Cause is reserved for the checking function itself
		// failing; ordinary nonconformance is just a message.
		var pe *format.PanicError
		if errors.As(err, &pe) {
			return &validerr.ValidationError{
				Message: fmt.Sprintf("value cannot be checked against format %q", arg),
				Cause:   err,
			}
		}
		return &validerr.ValidationError{
			Message: err.Error(),
		}
	}
	return nil
}

// ValidateDefault implements the default keyword.
func ValidateDefault(arg types.PartAny, instance any, state *types.ValidationState) error {
	// This supplies a default value, but it always validates.
	return nil
}

// ValidateDependencies implements the dependencies keyword of
// drafts 3 through 7, whose values mix property lists and schemas.
// Later drafts split it into dependentRequired and dependentSchemas.
func ValidateDependencies(arg types.PartMapArrayOrSchema, instance any, state *types.ValidationState) error {
	names, ok := instanceFieldNames(instance)
	if !ok {
		return nil
	}

	subState, err := state.Child()
	if err != nil {
		return err
	}

	var keepNotes []notes.Notes
	var topErr error
	for _, name := range sortedKeys(arg) {
		if _, found := names[name]; !found {
			continue
		}

		as := arg[name]
		if as.Schema != nil {
			if err := as.Schema.ValidateInPlaceSchema(instance, subState); err != nil {
				if !validerr.IsValidationError(err) {
					return err
				}
				validerr.AddError(&topErr, err, name)
			} else if !subState.Notes.IsEmpty() {
				keepNotes = append(keepNotes, subState.Notes)
			}
			subState.Notes.Clear()
		} else {
			for _, n := range as.Array {
				if _, found := names[n]; !found {
					ve := &validerr.ValidationError{
						Message: fmt.Sprintf("property %q requires property %q", name, n),
					}
					validerr.AddError(&topErr, ve, name)
				}
			}
		}
	}

	if topErr == nil {
		state.Notes.AddNotes(keepNotes...)
	}
	return topErr
}
