// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package validator

import "testing"

func TestEqual(t *testing.T) {
	tests := []struct {
		a, b any
		want bool
	}{
		{nil, nil, true},
		{nil, false, false},
		{true, true, true},
		{true, 1, false},
		{false, 0, false},
		{false, 0.0, false},
		{1, 1.0, true},
		{1, int64(1), true},
		{2.5, 2.5, true},
		{1, 2, false},
		{"a", "a", true},
		{"a", "b", false},
		{"1", 1, false},
		{[]any{1, 2}, []any{1.0, 2.0}, true},
		{[]any{1, 2}, []any{2, 1}, false},
		{[]any{1}, []any{1, 1}, false},
		{map[string]any{"a": 1}, map[string]any{"a": 1.0}, true},
		{map[string]any{"a": 1}, map[string]any{"a": 2}, false},
		{map[string]any{"a": 1}, map[string]any{"b": 1}, false},
		{map[string]any{"a": 1, "b": 2}, map[string]any{"a": 1}, false},
		{
			map[string]any{"a": []any{map[string]any{"x": 0}}},
			map[string]any{"a": []any{map[string]any{"x": 0.0}}},
			true,
		},
	}

	for _, test := range tests {
		if got := Equal(test.a, test.b); got != test.want {
			t.Errorf("Equal(%v, %v) = %t, want %t", test.a, test.b, got, test.want)
		}
	}
}

func TestIsMultiple(t *testing.T) {
	tests := []struct {
		value, div float64
		want       bool
	}{
		{8, 2, true},
		{7, 2, false},
		{19.99, 0.01, true},
		{19.995, 0.01, false},
		{0, 3, true},
		{-6, 3, true},
		{4.5, 1.5, true},
	}

	for _, test := range tests {
		if got := isMultiple(test.value, test.div); got != test.want {
			t.Errorf("isMultiple(%v, %v) = %t, want %t", test.value, test.div, got, test.want)
		}
	}
}
