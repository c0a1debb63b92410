// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package jsonpointer implements JSON pointers for the jsonschema
// package. This is not a fully general package.
package jsonpointer

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/validata/jsonschema/pkg/types"
)

// DerefSchema takes a JSON pointer and a root schema and returns
// the schema to which the pointer refers.
// The schemaID parameter is the default schema ID, used when the
// pointer lands inside an unrecognized keyword and a schema has to
// be built from the raw value.
func DerefSchema(schemaID string, root *types.Schema, pointer string) (*types.Schema, error) {
	s := root
	pointer = strings.TrimPrefix(pointer, "/")
	if pointer == "" {
		return s, nil
	}
	toks := strings.Split(pointer, "/")
	for i := 0; i < len(toks); i++ {
		tok := Decode(toks[i])
		found := false
		for _, part := range s.Parts {
			if part.Keyword.Generated {
				continue
			}
			if part.Keyword.Name != tok {
				continue
			}
			found = true

			switch part.Keyword.ArgType {
			case types.ArgTypeSchema:
				s = part.Value.(types.PartSchema).S

			case types.ArgTypeSchemas:
				schemas := part.Value.(types.PartSchemas)
				idx, err := index(pointer, toks, &i)
				if err != nil {
					return nil, err
				}
				if idx < 0 || idx >= len(schemas) {
					return nil, fmt.Errorf("when dereferencing pointer %q array index %d out of range (length %d)", pointer, idx, len(schemas))
				}
				s = schemas[idx]

			case types.ArgTypeMapSchema:
				i++
				if i >= len(toks) {
					return nil, fmt.Errorf("when dereferencing pointer %q expected map key after %q", pointer, tok)
				}
				tok = Decode(toks[i])
				ms, ok := part.Value.(types.PartMapSchema)[tok]
				if !ok {
					return nil, fmt.Errorf("when dereferencing pointer %q map key %q not present", pointer, tok)
				}
				s = ms

			case types.ArgTypeSchemaOrSchemas:
				pv := part.Value.(types.PartSchemaOrSchemas)
				if pv.Schema != nil {
					s = pv.Schema
				} else {
					idx, err := index(pointer, toks, &i)
					if err != nil {
						return nil, err
					}
					if idx < 0 || idx >= len(pv.Schemas) {
						return nil, fmt.Errorf("when dereferencing pointer %q array index %d out of range (length %d)", pointer, idx, len(pv.Schemas))
					}
					s = pv.Schemas[idx]
				}

			case types.ArgTypeMapArrayOrSchema:
				i++
				if i >= len(toks) {
					return nil, fmt.Errorf("when dereferencing pointer %q expected map key after %q", pointer, tok)
				}
				tok = Decode(toks[i])
				mv, ok := part.Value.(types.PartMapArrayOrSchema)[tok]
				if !ok {
					return nil, fmt.Errorf("when dereferencing pointer %q map key %q not present", pointer, tok)
				}
				if mv.Schema == nil {
					return nil, fmt.Errorf("when dereferencing pointer %q map key %q is not a schema", pointer, tok)
				}
				s = mv.Schema

			case types.ArgTypeAny:
				// The pointer runs through a keyword the dialect
				// doesn't recognize, so the value was kept raw.
				pv := part.Value.(types.PartAny).V
			resolveLoop:
				for {
					switch v := pv.(type) {
					case bool, map[string]any:
						var err error
						s, err = types.SchemaFromJSON(schemaID, nil, v)
						if err != nil {
							return nil, fmt.Errorf("when dereferencing pointer %q failed to resolve unrecognized schema: %v", pointer, err)
						}
						break resolveLoop

					case []any:
						idx, err := index(pointer, toks, &i)
						if err != nil {
							return nil, err
						}
						if idx < 0 || idx >= len(v) {
							return nil, fmt.Errorf("when dereferencing pointer %q array index %d out of range (length %d)", pointer, idx, len(v))
						}
						pv = v[idx]

					default:
						return nil, fmt.Errorf("when dereferencing pointer %q unexpected type %T", pointer, v)
					}
				}

			default:
				return nil, fmt.Errorf("when dereferencing pointer %q keyword %q does not contain schemas", pointer, tok)
			}

			break
		}

		if !found {
			return nil, fmt.Errorf("when dereferencing pointer %q keyword %q not present", pointer, tok)
		}
	}

	return s, nil
}

// index consumes the next pointer token as an array index.
func index(pointer string, toks []string, i *int) (int, error) {
	*i++
	if *i >= len(toks) {
		return 0, fmt.Errorf("when dereferencing pointer %q expected array index after %q", pointer, toks[*i-1])
	}
	tok := Decode(toks[*i])
	idx, err := strconv.Atoi(tok)
	if err != nil {
		return 0, fmt.Errorf("when dereferencing pointer %q got token %q, expected array index", pointer, tok)
	}
	return idx, nil
}

// Deref takes a JSON pointer and a decoded JSON value and returns
// the value to which the pointer refers.
func Deref(root any, pointer string) (any, error) {
	if pointer == "" {
		return root, nil
	}
	v := root
	for _, rawTok := range strings.Split(strings.TrimPrefix(pointer, "/"), "/") {
		tok := Decode(rawTok)
		switch cur := v.(type) {
		case map[string]any:
			elem, ok := cur[tok]
			if !ok {
				return nil, fmt.Errorf("when dereferencing pointer %q key %q not present", pointer, tok)
			}
			v = elem
		case []any:
			idx, err := strconv.Atoi(tok)
			if err != nil {
				return nil, fmt.Errorf("when dereferencing pointer %q got token %q, expected array index", pointer, tok)
			}
			if idx < 0 || idx >= len(cur) {
				return nil, fmt.Errorf("when dereferencing pointer %q array index %d out of range (length %d)", pointer, idx, len(cur))
			}
			v = cur[idx]
		default:
			return nil, fmt.Errorf("when dereferencing pointer %q unexpected type %T", pointer, cur)
		}
	}
	return v, nil
}

// Decode unmangles a token in a JSON pointer.
func Decode(tok string) string {
	tok = strings.ReplaceAll(tok, "~1", "/")
	return strings.ReplaceAll(tok, "~0", "~")
}

// Encode mangles a token for use in a JSON pointer.
func Encode(tok string) string {
	tok = strings.ReplaceAll(tok, "~", "~0")
	return strings.ReplaceAll(tok, "/", "~1")
}
