// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package types

import (
	"bytes"
	"errors"
	"fmt"
	"math"
	"net/url"

	json "github.com/goccy/go-json"
)

// MarshalJSON marshals a [Schema] into JSON format.
// This implements [encoding/json.Marshaler].
// Generated keywords are omitted, so a resolved schema round-trips
// to the JSON it was built from, modulo keyword order.
func (s *Schema) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	if err := s.marshalSchema(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// marshalSchema marshals a [Schema] into JSON format,
// storing the results in buf.
func (s *Schema) marshalSchema(buf *bytes.Buffer) error {
	if isBoolSchema, isTrueSchema := s.IsBoolSchema(); isBoolSchema {
		if isTrueSchema {
			buf.WriteString("true")
		} else {
			buf.WriteString("false")
		}
		return nil
	}

	buf.WriteByte('{')

	first := true
	for _, part := range s.Parts {
		if part.Keyword.Generated {
			continue
		}

		if first {
			first = false
		} else {
			buf.WriteByte(',')
		}

		fmt.Fprintf(buf, "%s:", encodeString(part.Keyword.Name))

		switch v := part.Value.(type) {
		case PartBool:
			fmt.Fprintf(buf, "%t", v)
		case PartString:
			buf.Write(encodeString(string(v)))
		case PartStrings:
			if err := marshalStrings(buf, v); err != nil {
				return err
			}
		case PartStringOrStrings:
			if v.Strings == nil {
				buf.Write(encodeString(v.String))
			} else if err := marshalStrings(buf, v.Strings); err != nil {
				return err
			}
		case PartInt:
			fmt.Fprintf(buf, "%d", v)
		case PartFloat:
			if PartFloat(int64(v)) == v {
				fmt.Fprintf(buf, "%d", int64(v))
			} else if PartFloat(uint64(v)) == v {
				fmt.Fprintf(buf, "%d", uint64(v))
			} else {
				fmt.Fprintf(buf, "%g", v)
			}
		case PartSchema:
			if err := v.S.marshalSchema(buf); err != nil {
				return err
			}
		case PartSchemas:
			buf.WriteByte('[')
			for i, sub := range v {
				if i > 0 {
					buf.WriteByte(',')
				}
				if err := sub.marshalSchema(buf); err != nil {
					return err
				}
			}
			buf.WriteByte(']')
		case PartMapSchema:
			buf.WriteByte('{')
			first := true
			// Sorted for predictable results.
			for _, name := range sortedKeys(v) {
				if !first {
					buf.WriteByte(',')
				}
				first = false
				fmt.Fprintf(buf, "%s:", encodeString(name))
				if err := v[name].marshalSchema(buf); err != nil {
					return err
				}
			}
			buf.WriteByte('}')
		case PartSchemaOrSchemas:
			if v.Schema != nil {
				if err := v.Schema.marshalSchema(buf); err != nil {
					return err
				}
			} else {
				buf.WriteByte('[')
				for i, sub := range v.Schemas {
					if i > 0 {
						buf.WriteByte(',')
					}
					if err := sub.marshalSchema(buf); err != nil {
						return err
					}
				}
				buf.WriteByte(']')
			}
		case PartMapArrayOrSchema:
			buf.WriteByte('{')
			first := true
			// Sorted for predictable results.
			for _, name := range sortedKeys(v) {
				if !first {
					buf.WriteByte(',')
				}
				first = false
				fmt.Fprintf(buf, "%s:", encodeString(name))
				as := v[name]
				if as.Schema != nil {
					if err := as.Schema.marshalSchema(buf); err != nil {
						return err
					}
				} else if err := marshalStrings(buf, as.Array); err != nil {
					return err
				}
			}
			buf.WriteByte('}')
		case PartAny:
			data, err := json.Marshal(v.V)
			if err != nil {
				return err
			}
			buf.Write(data)
		default:
			return fmt.Errorf("schema marshal: unexpected type %T", part.Value)
		}
	}

	buf.WriteByte('}')

	return nil
}

// marshalStrings writes a JSON array of strings to buf.
func marshalStrings(buf *bytes.Buffer, strs []string) error {
	buf.WriteByte('[')
	for i, s := range strs {
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.Write(encodeString(s))
	}
	buf.WriteByte(']')
	return nil
}

// encodeString returns the JSON encoding of s.
func encodeString(s string) []byte {
	data, err := json.Marshal(s)
	if err != nil {
		panic(fmt.Sprintf("json.Marshal failed, which should be impossible: %v", err))
	}
	return data
}

// UnmarshalJSON decodes the JSON representation of a [Schema]
// and resolves references. The dialect is taken from the $schema
// keyword, falling back to the default vocabulary.
func (s *Schema) UnmarshalJSON(data []byte) error {
	s.Parts = s.Parts[:0:0]

	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}

	vocabulary, err := s.buildTopFromJSON("", nil, v)
	if err != nil {
		return err
	}

	ropts := &ResolveOpts{
		Vocabulary: vocabulary,
		Loader:     loader,
	}
	return s.Resolve(ropts)
}

// buildTopFromJSON builds a [Schema] from JSON parsed into the
// empty interface value v. This assumes that this is the root schema.
func (s *Schema) buildTopFromJSON(schemaID string, uri *url.URL, v any) (*Vocabulary, error) {
	var version string
	if m, ok := v.(map[string]any); ok {
		if schemaVal, ok := m["$schema"]; ok {
			version, ok = schemaVal.(string)
			if !ok {
				return nil, errors.New("$schema does not have a string value")
			}
			s.Parts = append(s.Parts, Part{
				&SchemaKeyword,
				PartString(version),
			})
			// $schema is recorded above rather than built as an
			// ordinary keyword. The map is the caller's, so leave
			// it intact and build from a copy without the key.
			mc := make(map[string]any, len(m))
			for k, val := range m {
				if k != "$schema" {
					mc[k] = val
				}
			}
			m = mc
		}
		v = m
	}

	if version == "" && schemaID != "" {
		version = schemaID
	}

	var vocabulary *Vocabulary
	if version == "" {
		vocabulary = DefaultVocabulary()
		if vocabulary == nil {
			return nil, errors.New("JSON schema dialect not specified and there is no default")
		}
		s.Parts = append(s.Parts, Part{
			&SchemaKeyword,
			PartString(vocabulary.Schema),
		})
	} else {
		vocabulary = LookupVocabulary(version)
		if vocabulary == nil {
			return nil, fmt.Errorf("JSON schema dialect %q not recognized", version)
		}
	}

	err := s.buildFromJSON(v, vocabulary)
	return vocabulary, err
}

// SchemaFromJSON builds a [Schema] from a JSON value that has
// already been parsed. This could be used as something like
//
//	var v any
//	if err := json.Unmarshal(data, &v); err != nil { ... }
//	s, err := types.SchemaFromJSON(schemaID, uri, v)
//
// This can be useful in cases where it's not clear whether the
// JSON encoding contains a schema or not.
//
// The optional schemaID argument is something like [draft202012.SchemaID].
// The optional uri is where the schema was loaded from.
//
// It is normally necessary to call Resolve on the result.
func SchemaFromJSON(schemaID string, uri *url.URL, v any) (*Schema, error) {
	var s Schema
	if _, err := s.buildTopFromJSON(schemaID, uri, v); err != nil {
		return nil, err
	}
	return &s, nil
}

// buildFromJSON builds a [Schema] from JSON parsed into the
// empty interface value v.
func (s *Schema) buildFromJSON(v any, vocabulary *Vocabulary) error {
	switch v := v.(type) {
	case bool:
		s.Parts = append(s.Parts, Part{
			&BoolKeyword,
			PartBool(v),
		})

	case map[string]any:
		// Sorted so that schema construction is deterministic.
		for _, keyword := range sortedKeys(v) {
			if err := s.addKeywordFromJSON(keyword, v[keyword], vocabulary); err != nil {
				return err
			}
		}
		s.Finalize(vocabulary)

	default:
		return fmt.Errorf("unexpected type %T while JSON decoding schema", v)
	}
	return nil
}

// addKeywordFromJSON adds a [Schema] keyword and value parsed from JSON.
func (s *Schema) addKeywordFromJSON(keyword string, val any, vocabulary *Vocabulary) error {
	if len(keyword) == 0 {
		return errors.New("empty JSON keyword")
	}

	sk, ok := vocabulary.Keywords[keyword]
	if !ok {
		// Unrecognized keywords are ignored.
		// They do not affect the validation result.
		s.Parts = append(s.Parts, Part{
			Keyword: &Keyword{
				Name:     keyword,
				ArgType:  ArgTypeAny,
				Validate: ValidateTrue,
			},
			Value: PartAny{val},
		})
		return nil
	}

	var spv PartValue
	switch sk.ArgType {
	case ArgTypeBool:
		b, ok := val.(bool)
		if !ok {
			return fmt.Errorf("%q argument is type %T, want bool", keyword, val)
		}
		spv = PartBool(b)
	case ArgTypeString:
		str, ok := val.(string)
		if !ok {
			return fmt.Errorf("%q argument is type %T, want string", keyword, val)
		}
		spv = PartString(str)
	case ArgTypeStrings:
		strs, err := stringsFromJSON(keyword, val)
		if err != nil {
			return err
		}
		spv = PartStrings(strs)
	case ArgTypeStringOrStrings:
		if str, ok := val.(string); ok {
			spv = PartStringOrStrings{String: str}
		} else {
			strs, err := stringsFromJSON(keyword, val)
			if err != nil {
				return err
			}
			spv = PartStringOrStrings{Strings: strs}
		}
	case ArgTypeInt:
		f, ok := val.(float64)
		if !ok {
			return fmt.Errorf("%q argument is type %T, want integer", keyword, val)
		}
		if f != math.Trunc(f) {
			return fmt.Errorf("%q argument is non-integer, want integer", keyword)
		}
		spv = PartInt(f)
	case ArgTypeFloat:
		f, ok := val.(float64)
		if !ok {
			return fmt.Errorf("%q argument is type %T, want number", keyword, val)
		}
		spv = PartFloat(f)
	case ArgTypeSchema:
		var sub Schema
		if err := sub.buildFromJSON(val, vocabulary); err != nil {
			return err
		}
		spv = PartSchema{&sub}
	case ArgTypeSchemas:
		as, ok := val.([]any)
		if !ok {
			return fmt.Errorf("%q argument is type %T, want array", keyword, val)
		}
		schemas := make([]*Schema, 0, len(as))
		for _, a := range as {
			var sub Schema
			if err := sub.buildFromJSON(a, vocabulary); err != nil {
				return err
			}
			schemas = append(schemas, &sub)
		}
		spv = PartSchemas(schemas)
	case ArgTypeMapSchema:
		jm, ok := val.(map[string]any)
		if !ok {
			return fmt.Errorf("%q argument is type %T, want object", keyword, val)
		}
		nm := make(map[string]*Schema, len(jm))
		for k, v := range jm {
			var sub Schema
			if err := sub.buildFromJSON(v, vocabulary); err != nil {
				return err
			}
			nm[k] = &sub
		}
		spv = PartMapSchema(nm)
	case ArgTypeSchemaOrSchemas:
		var (
			schema  *Schema
			schemas []*Schema
		)
		if as, ok := val.([]any); ok {
			schemas = make([]*Schema, 0, len(as))
			for _, a := range as {
				var sub Schema
				if err := sub.buildFromJSON(a, vocabulary); err != nil {
					return err
				}
				schemas = append(schemas, &sub)
			}
		} else {
			var sub Schema
			if err := sub.buildFromJSON(val, vocabulary); err != nil {
				return err
			}
			schema = &sub
		}
		spv = PartSchemaOrSchemas{
			Schema:  schema,
			Schemas: schemas,
		}
	case ArgTypeMapArrayOrSchema:
		jm, ok := val.(map[string]any)
		if !ok {
			return fmt.Errorf("%q argument is type %T, want object", keyword, val)
		}
		nm := make(map[string]ArrayOrSchema, len(jm))
		for k, v := range jm {
			var as ArrayOrSchema
			switch v := v.(type) {
			case string:
				// Draft 3 permits a bare property name.
				as.Array = []string{v}
			case bool, map[string]any:
				var sub Schema
				if err := sub.buildFromJSON(v, vocabulary); err != nil {
					return err
				}
				as.Schema = &sub
			case []any:
				strs := make([]string, 0, len(v))
				for i, v := range v {
					str, ok := v.(string)
					if !ok {
						return fmt.Errorf("%q argument item %s:%d is %T, want string", keyword, k, i, v)
					}
					strs = append(strs, str)
				}
				as.Array = strs
			default:
				return fmt.Errorf("%q argument item %s is %T, want schema or array of strings", keyword, k, v)
			}
			nm[k] = as
		}
		spv = PartMapArrayOrSchema(nm)
	case ArgTypeAny:
		spv = PartAny{val}
	default:
		panic("can't happen")
	}

	s.Parts = append(s.Parts, Part{
		Keyword: sk,
		Value:   spv,
	})
	return nil
}

// stringsFromJSON converts a decoded JSON array of strings.
func stringsFromJSON(keyword string, val any) ([]string, error) {
	vals, ok := val.([]any)
	if !ok {
		return nil, fmt.Errorf("%q argument is type %T, want array of string", keyword, val)
	}
	strs := make([]string, 0, len(vals))
	for i, v := range vals {
		s, ok := v.(string)
		if !ok {
			return nil, fmt.Errorf("%q argument item %d is %T, want string", keyword, i, v)
		}
		strs = append(strs, s)
	}
	return strs, nil
}

// Resolve resolves references across a schema and its subschemas.
// Normally there is no need to call this explicitly.
// It will be called automatically by the JSON unmarshaler.
func (s *Schema) Resolve(opts *ResolveOpts) error {
	var v *Vocabulary
	if opts != nil {
		v = opts.Vocabulary
	}

	if v == nil {
		for _, part := range s.Parts {
			if part.Keyword == &SchemaKeyword {
				v = LookupVocabulary(string(part.Value.(PartString)))
				if v == nil {
					return fmt.Errorf("no registered vocabulary for schema %q when resolving", part.Value.(PartString))
				}
				break
			}
		}
		if v == nil {
			v = DefaultVocabulary()
		}
		if v == nil {
			return errors.New("unknown schema vocabulary when resolving")
		}
	}

	if opts == nil {
		opts = &ResolveOpts{
			Vocabulary: v,
			Loader:     loader,
		}
	}

	return v.Resolve(s, opts)
}

// ResolveOpts is options to use when resolving the schema.
// These are all optional.
type ResolveOpts struct {
	// The vocabulary to use.
	// This overrides anything recorded with the schema.
	Vocabulary *Vocabulary

	// URI of root of schema.
	// This is overridden by a $id keyword, if present.
	URI *url.URL

	// Load a remote reference, specifying the default schema.
	// This will be resolved by the resolver of the schema that
	// references it; no need for Loader to call (*Schema).Resolve.
	Loader func(schemaID string, uri *url.URL) (*Schema, error)
}

// SetLoader sets a function to call when resolving a $ref
// to an external schema. This is a global property,
// as there is no way to pass the desired value into the JSON decoder.
// Callers should use appropriate locking.
//
// Note that when unmarshaling user-written schemas,
// the loader function can be called with arbitrary URIs.
// It's probably unwise to simply call [net/http.Get] in all cases.
//
// To fully support JSON schema cross references, the loader should call
// [SchemaFromJSON]. The caller will handle calling [Schema.Resolve].
//
// This returns the old loader function.
// The default loader function is nil, which will produce an
// error for a $ref to an external schema.
func SetLoader(fn func(schemaID string, uri *url.URL) (*Schema, error)) func(string, *url.URL) (*Schema, error) {
	ret := loader
	loader = fn
	return ret
}

// loader is the default loader function.
var loader func(schemaID string, uri *url.URL) (*Schema, error)
