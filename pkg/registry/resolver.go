// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package registry

import (
	"fmt"
	"net/url"
)

// UnresolvableError is returned when a reference cannot be resolved
// to a schema: the URI is unknown, a JSON pointer fragment dangles,
// or a plain-name fragment matches no anchor.
type UnresolvableError struct {
	// Ref is the reference that failed to resolve.
	Ref string
	// Reason says why.
	Reason string
	// Err is the underlying retrieval or parse error, if any.
	Err error
}

// Error implements the error interface.
func (e *UnresolvableError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("unresolvable reference %q: %s: %v", e.Ref, e.Reason, e.Err)
	}
	return fmt.Sprintf("unresolvable reference %q: %s", e.Ref, e.Reason)
}

// Unwrap returns the underlying error, if any.
func (e *UnresolvableError) Unwrap() error {
	return e.Err
}

// A Resolver tracks the stack of base URIs in effect while walking
// a schema document. Entering a subschema that declares an $id
// pushes a scope; leaving it pops. References resolve against the
// innermost scope per RFC 3986 section 5.
type Resolver struct {
	stack []*url.URL
}

// NewResolver returns a Resolver whose outermost scope is base.
// A nil base means references must be fragments or absolute URIs.
func NewResolver(base *url.URL) *Resolver {
	rv := &Resolver{}
	if base != nil {
		rv.stack = append(rv.stack, base)
	}
	return rv
}

// PushScope makes u the innermost base URI. The caller should
// arrange to call PopScope when leaving the subschema, typically
// with defer so that error returns unwind the stack correctly.
func (rv *Resolver) PushScope(u *url.URL) {
	rv.stack = append(rv.stack, u)
}

// PopScope removes the innermost base URI.
func (rv *Resolver) PopScope() {
	if n := len(rv.stack); n > 0 {
		rv.stack = rv.stack[:n-1]
	}
}

// Base returns the innermost base URI, or nil if no scope is open.
func (rv *Resolver) Base() *url.URL {
	if n := len(rv.stack); n > 0 {
		return rv.stack[n-1]
	}
	return nil
}

// Resolve joins ref against the innermost base URI.
func (rv *Resolver) Resolve(ref string) (*url.URL, error) {
	refURI, err := url.Parse(ref)
	if err != nil {
		return nil, &UnresolvableError{
			Ref:    ref,
			Reason: "not a valid URI reference",
			Err:    err,
		}
	}
	if base := rv.Base(); base != nil {
		refURI = base.ResolveReference(refURI)
	}
	return refURI, nil
}
