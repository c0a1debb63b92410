// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package jsonschema compiles JSON schema documents into validators.
//
// This is the main entry point of the module. [Compile] parses a
// schema document, binds it to a dialect, resolves its references,
// and returns a [Validator]. The individual dialect packages are
// imported here so that compiling a schema written against any
// supported draft works without further setup.
package jsonschema

import (
	"fmt"
	"iter"
	"net/url"

	motmedelErrors "github.com/Motmedel/utils_go/pkg/errors"
	json "github.com/goccy/go-json"

	_ "github.com/validata/jsonschema/pkg/draft201909"
	_ "github.com/validata/jsonschema/pkg/draft202012"
	_ "github.com/validata/jsonschema/pkg/draft3"
	_ "github.com/validata/jsonschema/pkg/draft4"
	_ "github.com/validata/jsonschema/pkg/draft6"
	_ "github.com/validata/jsonschema/pkg/draft7"
	"github.com/validata/jsonschema/pkg/registry"
	"github.com/validata/jsonschema/pkg/types"
	"github.com/validata/jsonschema/pkg/validerr"
)

// UnknownDialectError is returned when a schema document names a
// $schema URI that no registered dialect claims and no override or
// default applies.
type UnknownDialectError struct {
	// Dialect is the unrecognized $schema URI.
	Dialect string
}

// Error implements the error interface.
func (e *UnknownDialectError) Error() string {
	return fmt.Sprintf("unknown JSON schema dialect %q", e.Dialect)
}

// SchemaError is returned by [CheckSchema] when a schema document
// does not conform to its dialect's meta-schema.
type SchemaError struct {
	// Dialect is the $schema URI the document was checked against.
	Dialect string
	// Err holds the validation errors from the meta-schema.
	Err error
}

// Error implements the error interface.
func (e *SchemaError) Error() string {
	return fmt.Sprintf("schema does not conform to dialect %q: %v", e.Dialect, e.Err)
}

// Unwrap returns the underlying validation error.
func (e *SchemaError) Unwrap() error {
	return e.Err
}

// CompileOpts configures schema compilation. The zero value infers
// the dialect from the document and resolves references against an
// empty registry.
type CompileOpts struct {
	// Dialect is a $schema URI that overrides whatever the
	// document declares.
	Dialect string

	// Registry supplies schema documents for references to other
	// URIs. If nil, only references within the document and to
	// the embedded meta-schemas resolve.
	Registry *registry.Registry

	// URI is the base URI of the document, used to resolve
	// relative references when the document has no $id.
	URI string
}

// A Validator is a compiled schema ready to validate instances.
// It is safe for concurrent use.
type Validator struct {
	schema  *types.Schema
	dialect string
}

// Compile parses the schema document in data and returns a
// Validator for it.
func Compile(data []byte, opts *CompileOpts) (*Validator, error) {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, motmedelErrors.NewWithTrace(fmt.Errorf("json unmarshal: %w", err))
	}
	return CompileValue(v, opts)
}

// CompileValue is like [Compile] for a document that has already
// been decoded from JSON. The document value is not modified.
func CompileValue(v any, opts *CompileOpts) (*Validator, error) {
	if opts == nil {
		opts = &CompileOpts{}
	}

	dialect := opts.Dialect
	if m, ok := v.(map[string]any); ok {
		declared, _ := m["$schema"].(string)
		if dialect == "" {
			dialect = declared
		}
		if opts.Dialect != "" {
			// A Dialect override wins over the document's
			// declaration. Rewrite $schema on a copy; the
			// document is the caller's.
			mc := make(map[string]any, len(m)+1)
			for k, val := range m {
				mc[k] = val
			}
			mc["$schema"] = opts.Dialect
			v = mc
		}
	}
	if dialect != "" && types.LookupVocabulary(dialect) == nil {
		return nil, &UnknownDialectError{Dialect: dialect}
	}

	var base *url.URL
	if opts.URI != "" {
		u, err := url.Parse(opts.URI)
		if err != nil {
			return nil, motmedelErrors.NewWithTrace(fmt.Errorf("parse base URI %q: %w", opts.URI, err))
		}
		base = u
	}

	s, err := types.SchemaFromJSON(dialect, base, v)
	if err != nil {
		return nil, motmedelErrors.NewWithTrace(fmt.Errorf("build schema: %w", err))
	}

	reg := opts.Registry
	if reg == nil {
		reg = registry.New(nil)
	}
	ropts := &types.ResolveOpts{
		URI:    base,
		Loader: reg.Loader(),
	}
	if err := s.Resolve(ropts); err != nil {
		return nil, motmedelErrors.NewWithTrace(fmt.Errorf("resolve schema: %w", err))
	}

	if dialect == "" {
		if pv, ok := s.LookupKeyword("$schema"); ok {
			dialect = string(pv.(types.PartString))
		}
	}
	return &Validator{schema: s, dialect: dialect}, nil
}

// Schema returns the compiled schema.
func (v *Validator) Schema() *types.Schema {
	return v.schema
}

// Dialect returns the $schema URI the validator was compiled under.
func (v *Validator) Dialect() string {
	return v.dialect
}

// Validate checks instance against the schema. It returns nil if
// the instance is valid, and otherwise an error containing one
// [*validerr.ValidationError] per failure.
//
// Format failures are advisory and do not fail validation here;
// enable ValidateFormat through [Validator.ValidateWithOpts] to
// assert them.
func (v *Validator) Validate(instance any) error {
	return v.schema.Validate(instance)
}

// ValidateWithOpts is like Validate but supports options.
func (v *Validator) ValidateWithOpts(instance any, opts *types.ValidateOpts) error {
	return v.schema.ValidateWithOpts(instance, opts)
}

// IsValid reports whether instance is valid. It stops at the first
// failure, so it is cheaper than Validate for invalid instances.
func (v *Validator) IsValid(instance any) bool {
	err := v.schema.ValidateWithOpts(instance, &types.ValidateOpts{
		FailFast: true,
	})
	return err == nil
}

// IterErrors validates instance and yields every validation error
// depth-first, including the branch failures recorded in Context.
// A valid instance yields nothing. The sequence is finite and may
// be ranged over again; validation runs once per iteration, up
// front, so breaking early saves no work. Callers that only need
// a yes/no answer should use [Validator.IsValid], which stops at
// the first failure.
func (v *Validator) IterErrors(instance any) iter.Seq[*validerr.ValidationError] {
	return func(yield func(*validerr.ValidationError) bool) {
		err := v.schema.Validate(instance)
		if err == nil {
			return
		}
		for _, ve := range validerr.Errors(err) {
			if !yieldDeep(ve, yield) {
				return
			}
		}
	}
}

func yieldDeep(ve *validerr.ValidationError, yield func(*validerr.ValidationError) bool) bool {
	if !yield(ve) {
		return false
	}
	for _, sub := range ve.Context {
		if !yieldDeep(sub, yield) {
			return false
		}
	}
	return true
}

// CheckSchema validates the schema document in data against the
// meta-schema of the given dialect. An empty dialect uses the
// document's $schema, falling back to the default dialect. The
// document is not modified. Nonconformance is reported as a
// [*SchemaError].
func CheckSchema(data []byte, dialect string) error {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return motmedelErrors.NewWithTrace(fmt.Errorf("json unmarshal: %w", err))
	}

	if dialect == "" {
		if m, ok := v.(map[string]any); ok {
			dialect, _ = m["$schema"].(string)
		}
	}
	var vocab *types.Vocabulary
	if dialect == "" {
		vocab = types.DefaultVocabulary()
		if vocab == nil {
			return &UnknownDialectError{Dialect: ""}
		}
		dialect = vocab.Schema
	} else {
		vocab = types.LookupVocabulary(dialect)
		if vocab == nil {
			return &UnknownDialectError{Dialect: dialect}
		}
	}

	metaURI, err := url.Parse(vocab.Schema)
	if err != nil {
		return motmedelErrors.NewWithTrace(fmt.Errorf("parse meta-schema URI %q: %w", vocab.Schema, err))
	}
	meta, err := vocab.Meta(metaURI, nil)
	if err != nil {
		return motmedelErrors.NewWithTrace(fmt.Errorf("load meta-schema: %w", err))
	}
	if meta == nil {
		return motmedelErrors.NewWithTrace(fmt.Errorf("no meta-schema for dialect %q", dialect))
	}

	if err := meta.Validate(v); err != nil {
		if validerr.IsValidationError(err) {
			return &SchemaError{Dialect: dialect, Err: err}
		}
		return motmedelErrors.NewWithTrace(fmt.Errorf("meta-schema validation: %w", err))
	}
	return nil
}
