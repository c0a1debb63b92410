// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package notes defines the annotation set passed between keywords
// during schema validation. A keyword that claims instance properties
// or items records that fact as a note, and keywords evaluated later
// in the same schema object, such as "unevaluatedProperties" and
// "unevaluatedItems", read the notes to find the unclaimed remainder.
//
// Only notes of successfully validated subschemas may be merged
// upward; a failed branch of "anyOf", the inner schema of "not",
// or an "if" with no "then"/"else" to act on must not contribute.
// The keyword functions enforce that; this package only stores.
package notes

import (
	"fmt"
	"reflect"
)

// Notes is a set of notes. Each note has a name and a value.
// The name is normally the name of a JSON schema keyword.
// The value may be anything; in practice it is a bool, an int,
// or a slice of claim records.
//
// The zero value of Notes is directly usable.
// Notes may not be used concurrently by multiple goroutines.
type Notes struct {
	m map[string]any
}

// Set adds a note. An existing note with the same name is replaced.
func (n *Notes) Set(name string, val any) {
	if n.m == nil {
		n.m = make(map[string]any)
	}
	n.m[name] = val
}

// Get retrieves a note, reporting whether it exists.
func (n *Notes) Get(name string) (val any, ok bool) {
	val, ok = n.m[name]
	return val, ok
}

// AppendNote appends values to a note.
// This is a function, not a method, so that it can be generic.
// Any existing note under the name must have type []E;
// AppendNote panics if it does not.
func AppendNote[E any](n *Notes, name string, val ...E) {
	if n.m == nil {
		n.m = make(map[string]any)
	}
	var s []E
	if old := n.m[name]; old != nil {
		var ok bool
		s, ok = old.([]E)
		if !ok {
			panic(fmt.Sprintf("for note %s attempt to append value of type %T to value of type %T", name, val, old))
		}
	}
	n.m[name] = append(s, val...)
}

// AddNotes merges the notes in ns into n.
// Scalar values in added notes replace those in n.
// Slices in added notes are appended to slices in n;
// if the element types differ, or if the value in n is not a slice,
// AddNotes panics. Names in n not present in ns are unchanged.
func (n *Notes) AddNotes(ns ...Notes) {
	for _, n2 := range ns {
		for k2, v2 := range n2.m {
			v1, ok1 := n.Get(k2)
			if !ok1 || reflect.TypeOf(v2).Kind() != reflect.Slice {
				n.Set(k2, v2)
			} else {
				n.Set(k2, reflect.AppendSlice(reflect.ValueOf(v1), reflect.ValueOf(v2)).Interface())
			}
		}
	}
}

// Clear removes all current notes.
func (n *Notes) Clear() {
	n.m = nil
}

// IsEmpty reports whether there are no notes.
func (n *Notes) IsEmpty() bool {
	return len(n.m) == 0
}

// String returns a printable Notes.
func (n Notes) String() string {
	return fmt.Sprint(n.m)
}
