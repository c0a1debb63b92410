// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package draft201909

import (
	"embed"
	"net/url"

	"github.com/validata/jsonschema/internal/metaschema"
	"github.com/validata/jsonschema/pkg/types"
)

//go:embed metaschema/*.json metaschema/meta/*.json
var metaFS embed.FS

// checkMetaSchema checks whether uri refers to the meta-schema,
// and loads the schema if it does. If uri is not the meta-schema,
// this returns nil, nil.
func checkMetaSchema(uri *url.URL, ropts *types.ResolveOpts) (*types.Schema, error) {
	return metaschema.Load(SchemaID, "/draft/2019-09/", &metaFS, uri, ropts)
}
