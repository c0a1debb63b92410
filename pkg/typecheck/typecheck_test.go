// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package typecheck

import "testing"

func checkType(t *testing.T, tc *TypeChecker, instance any, name string, want bool) {
	t.Helper()
	got, err := tc.IsType(instance, name)
	if err != nil {
		t.Errorf("IsType(%v, %q): %v", instance, name, err)
		return
	}
	if got != want {
		t.Errorf("IsType(%v, %q) = %t, want %t", instance, name, got, want)
	}
}

func TestDraft6(t *testing.T) {
	tc := Draft6()

	checkType(t, tc, nil, "null", true)
	checkType(t, tc, false, "boolean", true)
	checkType(t, tc, false, "number", false)
	checkType(t, tc, "s", "string", true)
	checkType(t, tc, 1.5, "number", true)
	checkType(t, tc, 3, "integer", true)
	checkType(t, tc, 3.0, "integer", true)
	checkType(t, tc, 3.5, "integer", false)
	checkType(t, tc, map[string]any{}, "object", true)
	checkType(t, tc, []any{}, "array", true)
	checkType(t, tc, struct{}{}, "object", true)
	checkType(t, tc, &struct{}{}, "object", true)

	if _, err := tc.IsType(1, "no-such-type"); err == nil {
		t.Error("IsType with unknown type name should fail")
	}
}

func TestDraft4StrictInteger(t *testing.T) {
	tc := Draft4()

	// Draft 4 requires integers to be integer-typed, so a whole
	// float is not an integer.
	checkType(t, tc, 3, "integer", true)
	checkType(t, tc, 3.0, "integer", false)
}

func TestDraft3Any(t *testing.T) {
	tc := Draft3()

	for _, inst := range []any{nil, true, 1, "s", []any{}, map[string]any{}} {
		checkType(t, tc, inst, "any", true)
	}
}

func TestRedefine(t *testing.T) {
	base := Draft6()
	custom := base.Redefine("even", func(tc *TypeChecker, instance any) bool {
		n, ok := instance.(int)
		return ok && n%2 == 0
	})

	checkType(t, custom, 4, "even", true)
	checkType(t, custom, 3, "even", false)
	if _, err := base.IsType(4, "even"); err == nil {
		t.Error("Redefine must not modify the receiver")
	}

	removed := custom.Remove("even")
	if _, err := removed.IsType(4, "even"); err == nil {
		t.Error("Remove must drop the type")
	}
	checkType(t, custom, 4, "even", true)
}

func TestDescribe(t *testing.T) {
	tc := Draft6()

	tests := []struct {
		instance any
		want     string
	}{
		{nil, "null"},
		{true, "boolean"},
		{"s", "string"},
		{3, "integer"},
		{3.5, "number"},
		{map[string]any{}, "object"},
		{[]any{}, "array"},
	}
	for _, test := range tests {
		if got := tc.Describe(test.instance); got != test.want {
			t.Errorf("Describe(%v) = %q, want %q", test.instance, got, test.want)
		}
	}
}
