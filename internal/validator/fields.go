// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package validator

import (
	"fmt"
	"reflect"
	"slices"
	"strings"
	"sync"
	"unicode"
)

// A fieldSet holds the property names of an object instance.
// For struct instances the values describe the backing fields;
// for map instances the values are nil and only the keys matter.
type fieldSet map[string]*structField

// A structField describes one JSON-visible field of a Go struct.
type structField struct {
	name   string // property name, from the json tag when present
	tagged bool
	depth  int   // embedding depth below the root struct
	index  []int // FieldByIndex path from the root struct
}

// instanceField looks up a property on an object instance, which may
// be a map[string]any, a struct, or a pointer to either. It returns
// the property value, the property name, and whether the property
// exists. Struct fields match by exact name only; property names are
// case sensitive.
func instanceField(name string, instance any) (any, string, bool) {
	if instance == nil {
		return nil, "", false
	}

	v := reflect.Indirect(reflect.ValueOf(instance))
	if !v.IsValid() {
		return nil, "", false
	}

	if m, ok := v.Interface().(map[string]any); ok {
		v, ok := m[name]
		return v, name, ok
	}

	if v.Kind() != reflect.Struct {
		return nil, "", false
	}
	f := cachedStructFields(v.Type())[name]
	if f == nil {
		return nil, "", false
	}
	vf, err := v.FieldByIndexErr(f.index)
	if err != nil {
		// A nil embedded pointer on the path to the field.
		return nil, "", false
	}
	return vf.Interface(), f.name, true
}

// instanceFieldNames enumerates the properties of an object instance
// and reports whether the instance is an object at all.
func instanceFieldNames(instance any) (fieldSet, bool) {
	if instance == nil {
		return nil, false
	}

	v := reflect.Indirect(reflect.ValueOf(instance))
	if !v.IsValid() {
		return nil, false
	}

	if m, ok := v.Interface().(map[string]any); ok {
		set := make(fieldSet, len(m))
		for k := range m {
			set[k] = nil
		}
		return set, true
	}

	if v.Kind() != reflect.Struct {
		return nil, false
	}
	return cachedStructFields(v.Type()), true
}

// setField stores val under a property of instance. The property is
// known to exist; instanceField found it first.
func setField(instance any, name string, val any) error {
	v := reflect.Indirect(reflect.ValueOf(instance))

	if m, ok := v.Interface().(map[string]any); ok {
		m[name] = val
		return nil
	}

	f := cachedStructFields(v.Type())[name]
	if f == nil {
		return fmt.Errorf("no field for property %q in %s", name, v.Type())
	}
	return setDefault(v.FieldByIndex(f.index), val)
}

var structFieldCache sync.Map // reflect.Type -> fieldSet

func cachedStructFields(t reflect.Type) fieldSet {
	if set, ok := structFieldCache.Load(t); ok {
		return set.(fieldSet)
	}
	set, _ := structFieldCache.LoadOrStore(t, structFieldsOf(t))
	return set.(fieldSet)
}

// structFieldsOf computes the JSON-visible fields of a struct type,
// following the encoding/json visibility rules: a json:"-" tag hides
// a field, untagged embedded structs promote their fields, and name
// collisions are settled by dominantField.
func structFieldsOf(t reflect.Type) fieldSet {
	type embedded struct {
		typ   reflect.Type
		index []int
		depth int
	}

	byName := map[string][]*structField{}
	queue := []embedded{{typ: t}}
	// Scan a type at most twice so that a type embedded twice at one
	// level still produces the colliding fields dominantField needs,
	// while cyclic pointer embedding terminates.
	seen := map[reflect.Type]int{}

	for len(queue) > 0 {
		e := queue[0]
		queue = queue[1:]
		if seen[e.typ] >= 2 {
			continue
		}
		seen[e.typ]++

		for i := range e.typ.NumField() {
			sf := e.typ.Field(i)
			ft := sf.Type
			if ft.Kind() == reflect.Pointer {
				ft = ft.Elem()
			}
			if sf.Anonymous {
				if !sf.IsExported() && ft.Kind() != reflect.Struct {
					continue
				}
			} else if !sf.IsExported() {
				continue
			}

			tag := sf.Tag.Get("json")
			if tag == "-" {
				continue
			}
			name, _, _ := strings.Cut(tag, ",")
			if !validTagName(name) {
				name = ""
			}
			index := append(slices.Clip(e.index), i)

			// An unexported embedded struct cannot be read as a
			// value itself; only its promoted fields are visible.
			if sf.Anonymous && ft.Kind() == reflect.Struct && (name == "" || !sf.IsExported()) {
				queue = append(queue, embedded{typ: ft, index: index, depth: e.depth + 1})
				continue
			}

			tagged := name != ""
			if name == "" {
				name = sf.Name
			}
			byName[name] = append(byName[name], &structField{
				name:   name,
				tagged: tagged,
				depth:  e.depth,
				index:  index,
			})
		}
	}

	set := make(fieldSet, len(byName))
	for name, candidates := range byName {
		if f, ok := dominantField(candidates); ok {
			set[name] = f
		}
	}
	return set
}

// dominantField settles a name collision between promoted fields:
// a shallower field beats a deeper one, a tagged field beats an
// untagged one at the same depth, and any remaining tie hides the
// name entirely, as Go's embedding rules require.
func dominantField(candidates []*structField) (*structField, bool) {
	best := candidates[0]
	for _, c := range candidates[1:] {
		if c.depth < best.depth || (c.depth == best.depth && c.tagged && !best.tagged) {
			best = c
		}
	}
	n := 0
	for _, c := range candidates {
		if c.depth == best.depth && c.tagged == best.tagged {
			n++
		}
	}
	return best, n == 1
}

// validTagName reports whether s may serve as a json tag name,
// using the character set encoding/json accepts.
func validTagName(s string) bool {
	if s == "" {
		return false
	}
	for _, c := range s {
		switch {
		case strings.ContainsRune("!#$%&()*+-./:;<=>?@[]^_{|}~ ", c):
		case !unicode.IsLetter(c) && !unicode.IsDigit(c):
			return false
		}
	}
	return true
}
