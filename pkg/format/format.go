// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package format implements checkers for the format keyword.
//
// A Checker maps format names to checking functions. Validation
// options carry a Checker; format names the Checker does not know
// are accepted without inspection, as the JSON schema specifications
// require.
package format

import (
	"fmt"
	"maps"
	"slices"
	"sync"
)

// A Func checks a single instance value against a format.
// Functions are expected to accept instances of the wrong type,
// so a Func for a string format returns nil for non-string input.
type Func func(instance any) error

// A Checker maps format names to checking functions.
// Checkers are immutable. Register and Remove return derived
// checkers and leave the receiver untouched, so a Checker may be
// shared between goroutines without locking.
type Checker struct {
	funcs map[string]Func
}

// New returns a Checker that knows no formats.
func New() *Checker {
	return &Checker{}
}

// Default returns the Checker for the formats defined by the JSON
// schema specifications. The same Checker is returned on every call.
var Default = sync.OnceValue(func() *Checker {
	return New().RegisterMany(map[string]Func{
		"date":                  stringFunc(isValidDate, "date"),
		"date-time":             stringFunc(isValidDateTime, "date-time"),
		"duration":              stringFunc(isValidDuration, "duration"),
		"email":                 stringFunc(func(s string) bool { return isValidEmail(s, false) }, "email address"),
		"hostname":              stringFunc(func(s string) bool { return isValidHostname(s, false) }, "hostname"),
		"idn-email":             stringFunc(func(s string) bool { return isValidEmail(s, true) }, "internationalized email address"),
		"idn-hostname":          stringFunc(func(s string) bool { return isValidHostname(s, true) }, "internationalized hostname"),
		"ipv4":                  stringFunc(isValidIPv4, "IPv4 address"),
		"ipv6":                  stringFunc(isValidIPv6, "IPv6 address"),
		"iri":                   stringFunc(func(s string) bool { return isValidURI(s, isIRI, false) }, "IRI"),
		"iri-reference":         stringFunc(func(s string) bool { return isValidURI(s, isIRI, true) }, "IRI reference"),
		"json-pointer":          stringFunc(isValidJSONPointer, "JSON pointer"),
		"regex":                 checkRegex,
		"relative-json-pointer": stringFunc(isValidRelativeJSONPointer, "relative JSON pointer"),
		"time":                  stringFunc(isValidTime, "time"),
		"uri":                   stringFunc(func(s string) bool { return isValidURI(s, isURI, false) }, "URI"),
		"uri-reference":         stringFunc(func(s string) bool { return isValidURI(s, isURI, true) }, "URI reference"),
		"uuid":                  stringFunc(isValidUUID, "UUID"),
	})
})

// Register returns a Checker that additionally checks the named
// format with fn. An existing function for the name is replaced.
func (c *Checker) Register(name string, fn Func) *Checker {
	funcs := make(map[string]Func, len(c.funcs)+1)
	maps.Copy(funcs, c.funcs)
	funcs[name] = fn
	return &Checker{funcs: funcs}
}

// RegisterMany returns a Checker that additionally checks every
// format in funcs.
func (c *Checker) RegisterMany(funcs map[string]Func) *Checker {
	merged := make(map[string]Func, len(c.funcs)+len(funcs))
	maps.Copy(merged, c.funcs)
	maps.Copy(merged, funcs)
	return &Checker{funcs: merged}
}

// Remove returns a Checker without the named formats.
// The removed formats will be accepted without inspection.
func (c *Checker) Remove(names ...string) *Checker {
	funcs := maps.Clone(c.funcs)
	for _, name := range names {
		delete(funcs, name)
	}
	return &Checker{funcs: funcs}
}

// Knows reports whether the checker has a function for the named format.
func (c *Checker) Knows(name string) bool {
	return c != nil && c.funcs[name] != nil
}

// Formats returns the names of the known formats in sorted order.
func (c *Checker) Formats() []string {
	if c == nil {
		return nil
	}
	return slices.Sorted(maps.Keys(c.funcs))
}

// A PanicError reports a checking function that panicked. It means
// the function itself failed, not that the value failed the format,
// and validation attaches it as the cause of the format error.
type PanicError struct {
	// Format is the format whose function panicked.
	Format string
	// Value is the recovered panic value.
	Value any
}

// Error implements the error interface.
func (e *PanicError) Error() string {
	return fmt.Sprintf("format %q check panicked: %v", e.Format, e.Value)
}

// Check checks instance against the named format. Unknown format
// names are accepted. A panic in a registered function is reported
// as a [*PanicError] rather than unwinding through validation.
func (c *Checker) Check(name string, instance any) (err error) {
	if c == nil {
		return nil
	}
	fn, ok := c.funcs[name]
	if !ok {
		return nil
	}
	defer func() {
		if r := recover(); r != nil {
			err = &PanicError{Format: name, Value: r}
		}
	}()
	return fn(instance)
}

// stringFunc adapts a string predicate to a Func.
// Non-string instances are accepted.
func stringFunc(valid func(string) bool, what string) Func {
	return func(instance any) error {
		s, ok := instance.(string)
		if !ok {
			return nil
		}
		if !valid(s) {
			return fmt.Errorf("%q is not a valid %s", s, what)
		}
		return nil
	}
}
