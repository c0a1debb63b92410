// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package validator

import (
	"github.com/validata/jsonschema/pkg/types"
)

// Keyword returns the definition of a keyword validated by fn.
// The dialect packages use this to build their keyword tables.
func Keyword[A types.PartValue](name string, at types.ArgType, fn func(A, any, *types.ValidationState) error) *types.Keyword {
	return &types.Keyword{
		Name:     name,
		ArgType:  at,
		Validate: Adapt(fn),
	}
}

// Annotation returns the definition of a keyword that records
// information but always validates.
func Annotation(name string, at types.ArgType) *types.Keyword {
	return &types.Keyword{
		Name:     name,
		ArgType:  at,
		Validate: types.ValidateTrue,
	}
}
