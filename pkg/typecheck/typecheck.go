// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package typecheck maps JSON schema primitive type names to
// predicates over instance values.
//
// Each dialect carries a default TypeChecker; programs can derive
// customized checkers with [TypeChecker.Redefine] without affecting
// validators already built, since every derivation is a copy.
package typecheck

import (
	"fmt"
	"math"
	"reflect"
)

// Predicate reports whether an instance is of some type.
// The checker is passed so that a predicate can be defined in terms
// of other type checks.
type Predicate func(tc *TypeChecker, instance any) bool

// TypeChecker maps type names, such as "integer", to predicates.
// A TypeChecker is immutable; Redefine and Remove return copies.
// The zero value knows no types and rejects every check.
type TypeChecker struct {
	m map[string]Predicate
}

// New returns a TypeChecker knowing the given types.
func New(preds map[string]Predicate) *TypeChecker {
	tc := &TypeChecker{m: make(map[string]Predicate, len(preds))}
	for name, p := range preds {
		tc.m[name] = p
	}
	return tc
}

// clone returns a copy of tc with room for n more entries.
func (tc *TypeChecker) clone(n int) *TypeChecker {
	c := &TypeChecker{m: make(map[string]Predicate, len(tc.m)+n)}
	for name, p := range tc.m {
		c.m[name] = p
	}
	return c
}

// Redefine returns a copy of tc in which name checks with pred.
// The receiver is unchanged.
func (tc *TypeChecker) Redefine(name string, pred Predicate) *TypeChecker {
	return tc.RedefineMany(map[string]Predicate{name: pred})
}

// RedefineMany is Redefine for several types at once.
func (tc *TypeChecker) RedefineMany(preds map[string]Predicate) *TypeChecker {
	c := tc.clone(len(preds))
	for name, p := range preds {
		c.m[name] = p
	}
	return c
}

// Remove returns a copy of tc that no longer knows the given types.
func (tc *TypeChecker) Remove(names ...string) *TypeChecker {
	c := tc.clone(0)
	for _, name := range names {
		delete(c.m, name)
	}
	return c
}

// UnknownTypeError reports a type name the checker does not know.
type UnknownTypeError struct {
	Type string
}

func (e *UnknownTypeError) Error() string {
	return fmt.Sprintf("unknown instance type %q", e.Type)
}

// IsType reports whether instance is of the named type.
// It returns an *UnknownTypeError for a type name tc does not know.
func (tc *TypeChecker) IsType(instance any, name string) (bool, error) {
	pred, ok := tc.m[name]
	if !ok {
		return false, &UnknownTypeError{Type: name}
	}
	return pred(tc, instance), nil
}

// Describe returns the most specific known type name matching
// instance, for use in error messages.
func (tc *TypeChecker) Describe(instance any) string {
	if instance == nil {
		return "null"
	}
	switch reflect.Indirect(reflect.ValueOf(instance)).Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return "integer"
	case reflect.Float32, reflect.Float64:
		f := reflect.ValueOf(instance).Float()
		if math.Trunc(f) == f && !math.IsInf(f, 0) {
			return "integer"
		}
		return "number"
	case reflect.Bool:
		return "boolean"
	case reflect.Struct, reflect.Map:
		return "object"
	case reflect.Slice, reflect.Array:
		return "array"
	case reflect.String:
		return "string"
	default:
		return fmt.Sprintf("%T", instance)
	}
}

// IsNull reports whether instance is JSON null.
func IsNull(tc *TypeChecker, instance any) bool {
	return instance == nil
}

// IsBoolean reports whether instance is a JSON boolean.
// It is false for 0 and 1; JSON does not conflate them.
func IsBoolean(tc *TypeChecker, instance any) bool {
	_, ok := instance.(bool)
	return ok
}

// IsString reports whether instance is a JSON string.
func IsString(tc *TypeChecker, instance any) bool {
	_, ok := instance.(string)
	return ok
}

// IsNumber reports whether instance is a JSON number.
// Booleans are not numbers.
func IsNumber(tc *TypeChecker, instance any) bool {
	if instance == nil {
		return false
	}
	if _, ok := instance.(bool); ok {
		return false
	}
	switch reflect.TypeOf(instance).Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64:
		return true
	}
	return false
}

// IsInteger reports whether instance is an integer, accepting
// floating-point values with a zero fractional part, as drafts 6
// and later require: 1.0 is an integer.
func IsInteger(tc *TypeChecker, instance any) bool {
	if instance == nil {
		return false
	}
	if _, ok := instance.(bool); ok {
		return false
	}
	v := reflect.ValueOf(instance)
	if v.CanInt() || v.CanUint() {
		return true
	}
	if v.CanFloat() {
		f := v.Float()
		return math.Trunc(f) == f && !math.IsInf(f, 0)
	}
	return false
}

// IsStrictInteger is IsInteger under draft 3 and 4 rules:
// a floating-point value is never an integer, even 1.0.
func IsStrictInteger(tc *TypeChecker, instance any) bool {
	if instance == nil {
		return false
	}
	if _, ok := instance.(bool); ok {
		return false
	}
	v := reflect.ValueOf(instance)
	return v.CanInt() || v.CanUint()
}

// IsObject reports whether instance is a JSON object.
// Go structs and pointers to structs count as objects.
func IsObject(tc *TypeChecker, instance any) bool {
	if _, ok := instance.(map[string]any); ok {
		return true
	}
	if _, ok := instance.(*map[string]any); ok {
		return true
	}
	if instance == nil {
		return false
	}
	typ := reflect.TypeOf(instance)
	if typ.Kind() == reflect.Pointer {
		typ = typ.Elem()
	}
	return typ.Kind() == reflect.Struct
}

// IsArray reports whether instance is a JSON array.
func IsArray(tc *TypeChecker, instance any) bool {
	typ := reflect.TypeOf(instance)
	return typ != nil && (typ.Kind() == reflect.Array || typ.Kind() == reflect.Slice)
}

// IsAny accepts every instance. Draft 3 names this type "any".
func IsAny(tc *TypeChecker, instance any) bool {
	return true
}

// Draft6 returns the default checker for drafts 6, 7, 2019-09
// and 2020-12.
func Draft6() *TypeChecker {
	return New(map[string]Predicate{
		"null":    IsNull,
		"boolean": IsBoolean,
		"string":  IsString,
		"number":  IsNumber,
		"integer": IsInteger,
		"object":  IsObject,
		"array":   IsArray,
	})
}

// Draft4 returns the default checker for draft 4, which uses the
// strict integer rule.
func Draft4() *TypeChecker {
	return Draft6().Redefine("integer", IsStrictInteger)
}

// Draft3 returns the default checker for draft 3, which adds the
// "any" type.
func Draft3() *TypeChecker {
	return Draft4().Redefine("any", IsAny)
}
