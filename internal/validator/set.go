// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package validator

import (
	"fmt"
	"reflect"
)

// setDefault assigns a schema default to a struct field.
// The default comes from a decoded schema document, so numbers
// arrive as float64 and need converting to the field's type.
func setDefault(to reflect.Value, from any) error {
	if !to.CanSet() {
		return fmt.Errorf("default target of type %s is not settable", to.Type())
	}
	fromV := reflect.ValueOf(from)
	if !fromV.IsValid() {
		// A null default zeroes the field.
		to.Set(reflect.Zero(to.Type()))
		return nil
	}
	if !fromV.CanConvert(to.Type()) {
		return fmt.Errorf("cannot apply default %v (%T) to field of type %s", from, from, to.Type())
	}
	to.Set(fromV.Convert(to.Type()))
	return nil
}
