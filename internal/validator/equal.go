// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package validator

import (
	"fmt"
	"math"
	"math/big"
	"reflect"
	"strconv"

	"github.com/goccy/go-json"
)

// Equal reports whether two instance values are equal under JSON
// rules. Numbers compare by value regardless of their Go type, so 1
// equals 1.0, while booleans are a type of their own: false never
// equals 0, and true never equals 1.
//
// TODO: compare a struct instance against a map[string]any value,
// so that enum and const work on Go struct instances.
func Equal(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}

	if ab, ok := a.(bool); ok {
		bb, ok := b.(bool)
		return ok && ab == bb
	}
	if _, ok := b.(bool); ok {
		return false
	}

	if af, ok := instanceNumber(a); ok {
		bf, ok := instanceNumber(b)
		return ok && af == bf
	}

	if as, ok := a.(string); ok {
		bs, ok := b.(string)
		return ok && as == bs
	}

	switch av := a.(type) {
	case []any:
		bv, ok := b.([]any)
		if !ok || len(av) != len(bv) {
			return false
		}
		for i := range av {
			if !Equal(av[i], bv[i]) {
				return false
			}
		}
		return true
	case map[string]any:
		bv, ok := b.(map[string]any)
		if !ok || len(av) != len(bv) {
			return false
		}
		for k, v := range av {
			v2, ok := bv[k]
			if !ok || !Equal(v, v2) {
				return false
			}
		}
		return true
	}

	return reflect.DeepEqual(a, b)
}

// fingerprint returns a canonical encoding of a JSON value, equal
// for values that [Equal] considers equal. All numeric types map to
// the same encoding, so 1 and 1.0 collide as JSON requires, while
// booleans keep their own spelling.
func fingerprint(v any) (string, error) {
	b, err := json.Marshal(canonicalize(v))
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// canonicalize rewrites every number in a JSON value as a float64.
// Map keys stay as they are; the JSON encoder sorts them.
func canonicalize(v any) any {
	switch v := v.(type) {
	case nil, bool, string, float64:
		return v
	case map[string]any:
		m := make(map[string]any, len(v))
		for k, e := range v {
			m[k] = canonicalize(e)
		}
		return m
	case []any:
		a := make([]any, len(v))
		for i, e := range v {
			a[i] = canonicalize(e)
		}
		return a
	}

	rv := reflect.ValueOf(v)
	switch {
	case rv.CanInt():
		return float64(rv.Int())
	case rv.CanUint():
		return float64(rv.Uint())
	case rv.CanFloat():
		return rv.Float()
	}
	return v
}

// describeValue renders an instance value for an error message.
func describeValue(v any) string {
	b, err := json.Marshal(v)
	if err != nil || len(b) > 60 {
		return fmt.Sprintf("%.60v", v)
	}
	return string(b)
}

// isMultiple reports whether x is an integer multiple of y.
// Plain float64 division misreports decimal fractions: 19.99/0.01
// is 1998.9999999999998 in binary floating point. On a fractional
// quotient we retry with exact rationals built from the shortest
// decimal form of each operand, which recovers the decimal the
// schema author wrote.
func isMultiple(x, y float64) bool {
	quo := x / y
	if math.IsInf(quo, 0) || math.IsNaN(quo) {
		return false
	}
	if quo == math.Trunc(quo) {
		return true
	}

	rx, okx := decimalRat(x)
	ry, oky := decimalRat(y)
	if !okx || !oky {
		return false
	}
	return new(big.Rat).Quo(rx, ry).IsInt()
}

// decimalRat returns the shortest decimal representation of f as an
// exact rational.
func decimalRat(f float64) (*big.Rat, bool) {
	return new(big.Rat).SetString(strconv.FormatFloat(f, 'g', -1, 64))
}
