// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package validerr

// Tree is a read-only index over a flat list of validation errors,
// grouped by instance path. Looking up whether a sub-instance had
// errors, and for which keywords, costs one map access per path token.
type Tree struct {
	errors   map[string]*ValidationError
	children map[string]*Tree
	total    int
}

// NewTree builds a Tree from a flat list of errors.
// Each error is filed under its InstancePath; errors at the same
// location are keyed by keyword, last one winning.
func NewTree(errs []*ValidationError) *Tree {
	t := &Tree{}
	for _, ve := range errs {
		t.insert(ve.InstancePath, ve)
	}
	return t
}

// TreeFromError builds a Tree from a validation error returned by a
// Validate call. A nil or non-validation error yields an empty tree.
func TreeFromError(err error) *Tree {
	return NewTree(Errors(err))
}

func (t *Tree) insert(path []string, ve *ValidationError) {
	t.total++
	if len(path) == 0 {
		if t.errors == nil {
			t.errors = make(map[string]*ValidationError)
		}
		t.errors[ve.Keyword] = ve
		return
	}
	if t.children == nil {
		t.children = make(map[string]*Tree)
	}
	child := t.children[path[0]]
	if child == nil {
		child = &Tree{}
		t.children[path[0]] = child
	}
	child.insert(path[1:], ve)
}

// Child returns the subtree for one instance token, such as a property
// name or a decimal array index. It returns an empty tree, not nil,
// when no errors were recorded below the token.
func (t *Tree) Child(tok string) *Tree {
	if t == nil {
		return &Tree{}
	}
	if c := t.children[tok]; c != nil {
		return c
	}
	return &Tree{}
}

// Descend returns the subtree at an instance path.
func (t *Tree) Descend(path ...string) *Tree {
	for _, tok := range path {
		t = t.Child(tok)
	}
	return t
}

// Contains reports whether any error was recorded at or below
// the given instance path.
func (t *Tree) Contains(path ...string) bool {
	return t.Descend(path...).Len() > 0
}

// Errors returns the errors recorded exactly at this node,
// keyed by keyword name. The map must not be modified.
func (t *Tree) Errors() map[string]*ValidationError {
	if t == nil {
		return nil
	}
	return t.errors
}

// Len returns the total number of errors at or below this node.
func (t *Tree) Len() int {
	if t == nil {
		return 0
	}
	return t.total
}
