// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package draft3 defines the keywords used by
// JSON schema draft 3.
package draft3

import (
	"github.com/validata/jsonschema/pkg/registry"
	"github.com/validata/jsonschema/pkg/typecheck"
	"github.com/validata/jsonschema/pkg/types"
)

// SchemaID is the URI that identifies this dialect.
const SchemaID = "http://json-schema.org/draft-03/schema"

var policy = &registry.Policy{
	SchemaID:           SchemaID,
	IDKeyword:          "id",
	IDAllowsFragment:   true,
	RefIgnoresSiblings: true,
	Meta:               checkMetaSchema,
}

var Vocabulary = &types.Vocabulary{
	Name:     "draft3",
	Schema:   SchemaID,
	Keywords: keywordMap,
	Cmp:      keywordCmp,
	Resolve:  policy.ResolveSchema,
	Types:    typecheck.Draft3(),
	Meta:     checkMetaSchema,
}

func init() {
	types.RegisterVocabulary(Vocabulary, false)
}
