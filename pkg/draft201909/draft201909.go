// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package draft201909 defines the keywords used by
// JSON schema version 2019-09.
package draft201909

import (
	"github.com/validata/jsonschema/pkg/registry"
	"github.com/validata/jsonschema/pkg/typecheck"
	"github.com/validata/jsonschema/pkg/types"
)

// SchemaID is the URI that identifies this dialect.
const SchemaID = "https://json-schema.org/draft/2019-09/schema"

var policy = &registry.Policy{
	SchemaID:        SchemaID,
	IDKeyword:       "$id",
	AnchorKeyword:   "$anchor",
	RecursiveAnchor: true,
	Meta:            checkMetaSchema,
}

var Vocabulary = &types.Vocabulary{
	Name:     "draft2019-09",
	Schema:   SchemaID,
	Keywords: keywordMap,
	Cmp:      keywordCmp,
	Resolve:  policy.ResolveSchema,
	Types:    typecheck.Draft6(),
	Meta:     checkMetaSchema,
}

func init() {
	types.RegisterVocabulary(Vocabulary, false)
}
