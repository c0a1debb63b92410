// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package notes

import (
	"reflect"
	"testing"
)

func checkGet(t *testing.T, n *Notes, key string, want any) {
	t.Helper()
	if got, ok := n.Get(key); !ok {
		if want != nil {
			t.Errorf("n.Get(%q) = %v, %t, want %v, true", key, got, ok, want)
		}
	} else if want == nil {
		t.Errorf("n.Get(%q) = %v, %t, want false", key, got, ok)
	} else if !reflect.DeepEqual(got, want) {
		t.Errorf("n.Get(%q) = %v, %t, want %v, true", key, got, ok, want)
	}
}

func TestNotes(t *testing.T) {
	var n Notes
	checkGet(t, &n, "properties", nil)
	if !n.IsEmpty() {
		t.Error("n.IsEmpty() == false, want true")
	}
	n.Set("if", true)
	checkGet(t, &n, "if", true)
	if n.IsEmpty() {
		t.Error("n.IsEmpty() == true, want false")
	}

	AppendNote(&n, "contains", 0)
	AppendNote(&n, "contains", 2, 3)
	checkGet(t, &n, "contains", []int{0, 2, 3})
}

func TestAddNotes(t *testing.T) {
	var n Notes
	n.Set("if", false)
	n.Set("items", true)
	AppendNote(&n, "contains", 1)

	var n2 Notes
	n2.Set("if", true)
	AppendNote(&n2, "contains", 2, 10)

	var n3 Notes
	AppendNote(&n3, "contains", 3)

	n.AddNotes(n2, n3)

	checkGet(t, &n, "missing", nil)
	checkGet(t, &n, "if", true)
	checkGet(t, &n, "items", true)
	checkGet(t, &n, "contains", []int{1, 2, 10, 3})
}

func TestClear(t *testing.T) {
	var n Notes
	n.Set("items", true)
	n.Clear()
	checkGet(t, &n, "items", nil)
	if !n.IsEmpty() {
		t.Error("n.IsEmpty() == false, want true")
	}
}
