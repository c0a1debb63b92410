// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package types

import (
	"errors"
	"slices"

	"github.com/validata/jsonschema/pkg/format"
	"github.com/validata/jsonschema/pkg/notes"
	"github.com/validata/jsonschema/pkg/typecheck"
	"github.com/validata/jsonschema/pkg/validerr"
)

// ErrTooDeep is returned when schema evaluation recurses too deeply.
// A cyclic schema applied to a cyclic or very deep instance can
// otherwise recurse forever.
var ErrTooDeep = errors.New("recursion while validating schema too deep")

// maxDepth is the evaluation depth at which [ErrTooDeep] is reported.
const maxDepth = 1000

// Validate reports whether instance satisfies schema.
// If it does, this will return nil.
// If it does not, this will return an error with type either
// [*validerr.ValidationError] or [*validerr.ValidationErrors].
// A non-nil error with a different type indicates some error
// during validation processing.
//
// An instance may be an object read from JSON,
// with a Go type like map[string]any or []any.
// An instance may also be a Go struct or a pointer to a Go struct;
// in this case json tags on fields are used when matching field names.
//
// The format keyword is an annotation here and always matches.
// Use [Schema.ValidateWithOpts] with ValidateFormat to assert formats.
func (s *Schema) Validate(instance any) error {
	return s.ValidateWithOpts(instance, nil)
}

// ValidateOpts describes validation options.
// These are uncommon so we use a separate method for them.
type ValidateOpts struct {
	// Whether to modify the instance being validated by setting defaults.
	// If this is true, then defaults are applied when:
	//   - a "properties" keyword is applied to a map or a struct
	//   - a "prefixItems" keyword is applied to a slice or array
	//   - an "items" keyword with an array argument (pre draft2020-12)
	//     is applied to a slice or array.
	// In these cases, if the subschema has a "default" keyword,
	// and the value in question is the zero value of its type
	// (or, in the case of a map, is missing), then the instance
	// is modified to be set to the default.
	// Defaults are ignored for required properties,
	// as the user must supply them.
	//
	// This operation may panic if the instance can't be modified.
	//
	// The modification is made before validation;
	// if the default value is not permitted by the rest of
	// the schema, validation may fail.
	ApplyDefaults bool

	// Whether to validate the format keyword.
	// By default the format keyword always matches.
	ValidateFormat bool

	// Formats is the format checker to use when ValidateFormat
	// is set. If nil, [format.Default] is used.
	Formats *format.Checker

	// Types overrides the type checker of the schema dialect.
	// This can be used to redefine what the "type" keyword accepts.
	Types *typecheck.TypeChecker

	// FailFast stops evaluation of a schema at its first failed
	// keyword. The returned error then describes one failure
	// rather than all of them. This is for callers that only need
	// a valid/invalid answer.
	FailFast bool
}

// ValidateWithOpts is like Validate but supports options.
func (s *Schema) ValidateWithOpts(instance any, opts *ValidateOpts) error {
	state := &ValidationState{
		Root:  s,
		Vocab: s.vocabulary(),
		Opts:  opts,
	}
	state.RootState = state
	return s.ValidateSubSchema(instance, state)
}

// vocabulary returns the vocabulary recorded in the schema's
// $schema part, falling back to the default vocabulary.
func (s *Schema) vocabulary() *Vocabulary {
	for _, part := range s.Parts {
		if part.Keyword == &SchemaKeyword {
			if v := LookupVocabulary(string(part.Value.(PartString))); v != nil {
				return v
			}
		}
	}
	return DefaultVocabulary()
}

// ValidationState is state we maintain while validating a schema.
// This is exported for use by additional schema implementations.
// It is not expected to be used by code that just wants to validate
// a schema.
type ValidationState struct {
	// The root of the Schema being validated.
	Root *Schema
	// The ValidationState attached to the root Schema,
	// for global information.
	RootState *ValidationState
	// The Schema being validated.
	Schema *Schema
	// The index in Schema.Parts of the keyword currently being validated.
	Index int
	// The vocabulary of the root schema.
	Vocab *Vocabulary
	// Notes created during validation.
	Notes notes.Notes
	// Depth of tree when validating. Used to avoid infinite recursion.
	Depth int
	// Validation options. Nil for the defaults.
	Opts *ValidateOpts

	// InstancePath holds the JSON Pointer tokens to the current
	// location within the instance being validated.
	InstancePath []string

	// dynamicAnchors maps anchor names in scope to their schemas.
	// Only used on the root state. $recursiveAnchor is stored
	// under the empty name.
	dynamicAnchors map[string]*Schema

	// inPlace tracks the schema applications currently on the
	// evaluation stack, keyed by schema identity and instance
	// location. Only used on the root state.
	inPlace map[inPlaceKey]bool
}

// inPlaceKey identifies one in-place schema application.
type inPlaceKey struct {
	schema *Schema
	where  string
}

// Child returns a new ValidationState that is a child of vs.
// This can be used to validate a subschema without changing
// the notes stored in vs.
func (vs *ValidationState) Child() (*ValidationState, error) {
	if vs.Depth > maxDepth {
		return nil, ErrTooDeep
	}

	return &ValidationState{
		Root:         vs.Root,
		RootState:    vs.RootState,
		Schema:       vs.Schema,
		Index:        vs.Index,
		Vocab:        vs.Vocab,
		Depth:        vs.Depth + 1,
		Opts:         vs.Opts,
		InstancePath: slices.Clone(vs.InstancePath),
	}, nil
}

// PushInstanceToken appends a token to the instance path.
func (vs *ValidationState) PushInstanceToken(tok string) {
	vs.InstancePath = append(vs.InstancePath, tok)
}

// PopInstanceToken removes the last token from the instance path.
func (vs *ValidationState) PopInstanceToken() {
	if n := len(vs.InstancePath); n > 0 {
		vs.InstancePath = vs.InstancePath[:n-1]
	}
}

// InstancePointer returns the current instance location as a JSON
// Pointer string starting with '#'.
func (vs *ValidationState) InstancePointer() string {
	return validerr.Pointer(vs.InstancePath)
}

// RecordDynamicAnchor brings a dynamic anchor into scope.
// An anchor of the same name recorded by an enclosing schema
// resource stays in place; dynamic anchors resolve outermost-first.
func (vs *ValidationState) RecordDynamicAnchor(da *DynamicAnchor) {
	root := vs.RootState
	if root.dynamicAnchors == nil {
		root.dynamicAnchors = make(map[string]*Schema)
	}
	if _, ok := root.dynamicAnchors[da.Anchor]; ok {
		return
	}
	root.dynamicAnchors[da.Anchor] = da.Schema
}

// ClearDynamicAnchor takes a dynamic anchor out of scope,
// unless an enclosing resource recorded it first.
func (vs *ValidationState) ClearDynamicAnchor(da *DynamicAnchor) {
	root := vs.RootState
	if root.dynamicAnchors[da.Anchor] == da.Schema {
		delete(root.dynamicAnchors, da.Anchor)
	}
}

// LookupDynamicAnchor returns the schema for a dynamic anchor in
// scope, or nil.
func (vs *ValidationState) LookupDynamicAnchor(anchor string) *Schema {
	return vs.RootState.dynamicAnchors[anchor]
}

// TypeChecker returns the type checker to use for the "type" keyword.
func (vs *ValidationState) TypeChecker() *typecheck.TypeChecker {
	if vs.Opts != nil && vs.Opts.Types != nil {
		return vs.Opts.Types
	}
	if vs.Vocab != nil && vs.Vocab.Types != nil {
		return vs.Vocab.Types
	}
	return typecheck.Draft6()
}

// FormatChecker returns the format checker to use for the "format"
// keyword, or nil if formats are not being validated.
func (vs *ValidationState) FormatChecker() *format.Checker {
	if vs.Opts == nil || !vs.Opts.ValidateFormat {
		return nil
	}
	if vs.Opts.Formats != nil {
		return vs.Opts.Formats
	}
	return format.Default()
}

// FailFast reports whether evaluation should stop at the first
// failed keyword.
func (vs *ValidationState) FailFast() bool {
	return vs.Opts != nil && vs.Opts.FailFast
}

// ValidateSubSchema reports whether instance satisfies schema,
// where schema is a sub-schema of some larger validation request.
// This is like Validate but also accepts the current validation state.
func (s *Schema) ValidateSubSchema(instance any, state *ValidationState) error {
	subState, err := state.Child()
	if err != nil {
		return err
	}
	subState.Schema = s
	return s.validateParts(instance, subState)
}

// ValidateInPlaceSchema reports whether instance satisfies schema,
// where schema is a subschema that is evaluated in the same
// context as the referring schema. This is how references are
// evaluated: annotations the target records are visible to the
// keywords of the referrer.
func (s *Schema) ValidateInPlaceSchema(instance any, state *ValidationState) error {
	// A reference cycle that does not descend into the instance
	// reapplies the same schema at the same instance location.
	// The outcome of the inner application is the outcome of the
	// outer one still in progress, so the inner one is satisfied
	// at the fixed point. ErrTooDeep remains for recursion that
	// keeps descending.
	root := state.RootState
	key := inPlaceKey{s, state.InstancePointer()}
	if root.inPlace[key] {
		return nil
	}

	subState, err := state.Child()
	if err != nil {
		return err
	}
	subState.Schema = s

	if root.inPlace == nil {
		root.inPlace = make(map[inPlaceKey]bool)
	}
	root.inPlace[key] = true
	defer delete(root.inPlace, key)

	topErr := s.validateParts(instance, subState)
	if topErr == nil {
		state.Notes.AddNotes(subState.Notes)
	}
	return topErr
}

// validateParts applies every keyword of s to instance.
// Validation errors accumulate; any other error aborts evaluation,
// as it indicates a problem with the schema rather than the instance.
func (s *Schema) validateParts(instance any, subState *ValidationState) error {
	var topErr error
	for i, p := range s.Parts {
		if p.Keyword.Validate == nil {
			continue
		}
		subState.Index = i
		err := p.Keyword.Validate(p.Value, instance, subState)
		if err == nil {
			continue
		}
		if !validerr.IsValidationError(err) {
			return err
		}
		stampErrors(err, p, instance, subState)
		validerr.AddError(&topErr, err, p.Keyword.Name)
		if subState.FailFast() {
			break
		}
	}
	return topErr
}

// stampErrors fills in the source keyword and the instance location
// of validation errors that don't have them yet. Errors bubbling up
// from subschemas were stamped at a deeper level and keep what they
// have.
func stampErrors(err error, p Part, instance any, state *ValidationState) {
	for _, ve := range validerr.Errors(err) {
		if ve.Keyword == "" {
			ve.Keyword = p.Keyword.Name
			ve.Value = JSONValue(p.Value)
			ve.Instance = instance
		}
		ve.SetInstancePath(state.InstancePath)
	}
}

// JSONValue returns the plain Go value held by a PartValue.
// Schema-valued parts are returned as *Schema or []*Schema.
func JSONValue(pv PartValue) any {
	switch v := pv.(type) {
	case PartBool:
		return bool(v)
	case PartString:
		return string(v)
	case PartStrings:
		return []string(v)
	case PartStringOrStrings:
		if v.Strings != nil {
			return v.Strings
		}
		return v.String
	case PartInt:
		return int64(v)
	case PartFloat:
		return float64(v)
	case PartSchema:
		return v.S
	case PartSchemas:
		return []*Schema(v)
	case PartMapSchema:
		return map[string]*Schema(v)
	case PartSchemaOrSchemas:
		if v.Schema != nil {
			return v.Schema
		}
		return v.Schemas
	case PartMapArrayOrSchema:
		return map[string]ArrayOrSchema(v)
	case PartAny:
		return v.V
	}
	return nil
}
