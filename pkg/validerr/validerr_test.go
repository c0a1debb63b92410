// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package validerr

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPointer(t *testing.T) {
	tests := []struct {
		toks []string
		want string
	}{
		{nil, "#"},
		{[]string{"a"}, "#/a"},
		{[]string{"a", "0", "b"}, "#/a/0/b"},
		{[]string{"a/b"}, "#/a~1b"},
		{[]string{"a~b"}, "#/a~0b"},
		{[]string{"~/"}, "#/~0~1"},
	}
	for _, test := range tests {
		assert.Equal(t, test.want, Pointer(test.toks))
	}
}

func TestEscapeRoundTrip(t *testing.T) {
	for _, tok := range []string{"plain", "a/b", "a~b", "~1", "~0", ""} {
		assert.Equal(t, tok, UnescapeToken(EscapeToken(tok)))
	}
}

func TestAddErrorPrefixes(t *testing.T) {
	var err error
	AddError(&err, &ValidationError{Message: "bad", SchemaPath: []string{"type"}}, "properties", "a")

	ves := Errors(err)
	require.Len(t, ves, 1)
	assert.Equal(t, "#/properties/a/type", ves[0].KeywordLocation)
}

func TestAddErrorAccumulates(t *testing.T) {
	var err error
	AddError(&err, &ValidationError{Message: "one"})
	AddError(&err, &ValidationError{Message: "two"})

	var ves *ValidationErrors
	require.True(t, errors.As(err, &ves))
	assert.Len(t, ves.Errs, 2)
}

func TestAddErrorNonValidationWins(t *testing.T) {
	var err error
	AddError(&err, &ValidationError{Message: "soft"})
	broken := errors.New("broken schema")
	AddError(&err, broken)

	assert.ErrorIs(t, err, broken)
	assert.False(t, IsValidationError(err))
}

func TestTree(t *testing.T) {
	errs := []*ValidationError{
		{Message: "m1", Keyword: "type", InstancePath: []string{"a", "b"}},
		{Message: "m2", Keyword: "minimum", InstancePath: []string{"a", "b"}},
		{Message: "m3", Keyword: "required", InstancePath: nil},
		{Message: "m4", Keyword: "type", InstancePath: []string{"a", "c"}},
	}
	tree := NewTree(errs)

	assert.Equal(t, 4, tree.Len())
	assert.Equal(t, 3, tree.Child("a").Len())
	assert.Equal(t, 2, tree.Descend("a", "b").Len())
	assert.True(t, tree.Contains("a", "c"))
	assert.False(t, tree.Contains("a", "z"))
	assert.Equal(t, 0, tree.Descend("a", "z").Len())

	at := tree.Descend("a", "b").Errors()
	require.Len(t, at, 2)
	assert.Equal(t, "m1", at["type"].Message)
	assert.Equal(t, "m2", at["minimum"].Message)

	root := tree.Errors()
	require.Len(t, root, 1)
	assert.Equal(t, "m3", root["required"].Message)
}

func TestTreeFromError(t *testing.T) {
	assert.Equal(t, 0, TreeFromError(nil).Len())
	assert.Equal(t, 0, TreeFromError(errors.New("not validation")).Len())

	err := error(&ValidationError{Keyword: "type", InstancePath: []string{"x"}})
	tree := TreeFromError(err)
	assert.Equal(t, 1, tree.Len())
	assert.True(t, tree.Contains("x"))
}

func TestBestMatch(t *testing.T) {
	assert.Nil(t, BestMatch(nil, nil))

	shallow := &ValidationError{Message: "shallow", Keyword: "type"}
	deep := &ValidationError{Message: "deep", Keyword: "type", InstancePath: []string{"a", "b"}}
	weak := &ValidationError{Message: "weak", Keyword: "anyOf", InstancePath: []string{"a", "b"}}

	assert.Same(t, deep, BestMatch([]*ValidationError{shallow, deep}, nil),
		"deeper instance paths rank higher")
	assert.Same(t, deep, BestMatch([]*ValidationError{weak, deep}, nil),
		"weak keywords rank lower at equal depth")
}

func TestBestMatchDescendsContext(t *testing.T) {
	branch1 := &ValidationError{Message: "b1", Keyword: "type", InstancePath: []string{"x"}}
	branch2 := &ValidationError{Message: "b2", Keyword: "type"}
	top := &ValidationError{
		Message: "top",
		Keyword: "anyOf",
		Context: []*ValidationError{branch1, branch2},
	}

	// The least relevant branch failure is the best match: the
	// branch with the shallowest failure was closest to matching.
	got := BestMatch([]*ValidationError{top}, nil)
	assert.Same(t, branch2, got)
}

func TestBestMatchError(t *testing.T) {
	assert.Nil(t, BestMatchError(nil, nil))

	ve := &ValidationError{Message: "only", Keyword: "type"}
	assert.Same(t, ve, BestMatchError(error(ve), nil))
}
