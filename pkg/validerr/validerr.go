// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package validerr defines the errors returned by a failure to validate.
//
// A single failed keyword application is a [ValidationError]; a validation
// run that finds several failures returns a [ValidationErrors]. Both
// implement the error interface. Errors carry JSON Pointer locations into
// both the schema and the instance, optional nested branch failures
// (Context, used by "anyOf" and "oneOf"), and an optional underlying
// Cause (for example a format checker that itself failed).
package validerr

import (
	"errors"
	"fmt"
	"strings"
)

// ValidationError is returned by a keyword validation function
// when an instance fails validation.
type ValidationError struct {
	// Message is the human-readable one-line description.
	Message string `json:"error"`

	// Keyword is the name of the keyword that failed, such as "type".
	Keyword string `json:"keyword,omitempty"`

	// Value is the keyword's value in the schema, when known.
	Value any `json:"-"`

	// Instance is the instance subtree that failed, when known.
	Instance any `json:"-"`

	// SchemaPath holds the JSON Pointer tokens from the schema root
	// to the failed keyword. Tokens are unescaped.
	SchemaPath []string `json:"-"`

	// InstancePath holds the JSON Pointer tokens from the instance
	// root to the failing value. Tokens are unescaped.
	InstancePath []string `json:"-"`

	// KeywordLocation and InstanceLocation are the pointer forms of
	// the two paths, per the JSON Schema basic output format.
	KeywordLocation  string `json:"keywordLocation"`
	InstanceLocation string `json:"instanceLocation"`

	// Context holds the failures of subschema branches that led to
	// this error, such as the per-branch failures of "anyOf".
	// Paths of context errors are relative to this error.
	Context []*ValidationError `json:"context,omitempty"`

	// Cause is a non-validation error that triggered this failure,
	// such as a panicking format checker. Usually nil.
	Cause error `json:"-"`
}

// Error returns the error message that a user should see.
// This implements the error interface.
func (ve *ValidationError) Error() string {
	kl := ve.KeywordLocation
	if kl == "" {
		kl = "#"
	}
	return fmt.Sprintf("%s: %s", kl, ve.Message)
}

// Unwrap returns the underlying cause, if any.
func (ve *ValidationError) Unwrap() error {
	return ve.Cause
}

// PrefixSchemaPath prepends tokens to the error's schema path and
// recomputes KeywordLocation. Context errors keep their relative paths.
func (ve *ValidationError) PrefixSchemaPath(toks ...string) {
	if len(toks) == 0 {
		return
	}
	ve.SchemaPath = append(append([]string(nil), toks...), ve.SchemaPath...)
	ve.KeywordLocation = Pointer(ve.SchemaPath)
}

// SetInstancePath records the instance path on the error unless a
// deeper location was already set, and recomputes InstanceLocation.
func (ve *ValidationError) SetInstancePath(toks []string) {
	if len(ve.InstancePath) > 0 {
		return
	}
	if ve.InstanceLocation != "" && ve.InstanceLocation != "#" {
		return
	}
	ve.InstancePath = append([]string(nil), toks...)
	ve.InstanceLocation = Pointer(ve.InstancePath)
}

// Pointer renders a token path as a JSON Pointer string starting
// with '#', escaping tokens per RFC 6901.
func Pointer(toks []string) string {
	if len(toks) == 0 {
		return "#"
	}
	var sb strings.Builder
	sb.WriteByte('#')
	for _, t := range toks {
		sb.WriteByte('/')
		sb.WriteString(EscapeToken(t))
	}
	return sb.String()
}

// EscapeToken escapes a single JSON Pointer reference token:
// '~' becomes "~0" and '/' becomes "~1".
func EscapeToken(tok string) string {
	tok = strings.ReplaceAll(tok, "~", "~0")
	return strings.ReplaceAll(tok, "/", "~1")
}

// UnescapeToken reverses EscapeToken.
func UnescapeToken(tok string) string {
	tok = strings.ReplaceAll(tok, "~1", "/")
	return strings.ReplaceAll(tok, "~0", "~")
}

// ValidationErrors is a collection of ValidationError values.
type ValidationErrors struct {
	Errs []*ValidationError
}

// Error returns the error message that a user should see.
// This implements the error interface.
func (ves *ValidationErrors) Error() string {
	if len(ves.Errs) == 1 {
		return ves.Errs[0].Error()
	}
	errs := make([]error, len(ves.Errs))
	for i, ve := range ves.Errs {
		errs[i] = ve
	}
	return errors.Join(errs...).Error()
}

// IsValidationError reports whether err is a validation error.
func IsValidationError(err error) bool {
	switch err.(type) {
	case *ValidationError, *ValidationErrors:
		return true
	}
	return false
}

// Errors returns the flat list of validation errors held by err,
// or nil if err is not a validation error.
func Errors(err error) []*ValidationError {
	switch e := err.(type) {
	case *ValidationError:
		return []*ValidationError{e}
	case *ValidationErrors:
		return e.Errs
	}
	return nil
}

// AddError adds an error, which may be a validation error,
// to another error. The toks, if any, are prepended to the schema
// path of validation errors, so that a keyword function can report
// failures relative to itself and callers add their own prefix.
//
// A non-validation error replaces any collected validation errors:
// a broken schema is fatal, a nonconforming instance is not.
func AddError(perr *error, err error, toks ...string) {
	if err == nil {
		return
	}

	switch e := err.(type) {
	case *ValidationError:
		e.PrefixSchemaPath(toks...)
		AddValidationError(perr, e)
	case *ValidationErrors:
		for _, ve := range e.Errs {
			ve.PrefixSchemaPath(toks...)
			AddValidationError(perr, ve)
		}
	default:
		// The new error is not a validation error.
		switch pe := (*perr).(type) {
		case nil:
			*perr = err
		case *ValidationError, *ValidationErrors:
			// Replace a validation error with a non-validation error.
			*perr = err
		default:
			if unwrap, ok := pe.(interface{ Unwrap() []error }); ok && len(unwrap.Unwrap()) > 0 {
				*perr = errors.Join(append(unwrap.Unwrap(), err)...)
			} else {
				*perr = errors.Join(*perr, err)
			}
		}
	}
}

// AddValidationError adds a [ValidationError] to an existing error.
// The provided ve should already have its fields populated.
func AddValidationError(perr *error, ve *ValidationError) {
	if ve.KeywordLocation == "" {
		ve.KeywordLocation = Pointer(ve.SchemaPath)
	}
	if ve.InstanceLocation == "" {
		ve.InstanceLocation = Pointer(ve.InstancePath)
	}

	if *perr == nil {
		*perr = ve
	} else if one, ok := (*perr).(*ValidationError); ok {
		*perr = &ValidationErrors{
			Errs: []*ValidationError{one, ve},
		}
	} else if ves, ok := (*perr).(*ValidationErrors); ok {
		ves.Errs = append(ves.Errs, ve)
	}
	// Don't disturb an existing error that is not a validation error.
}
