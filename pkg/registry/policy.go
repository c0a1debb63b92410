// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package registry

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/validata/jsonschema/internal/schemacache"
	"github.com/validata/jsonschema/pkg/jsonpointer"
	"github.com/validata/jsonschema/pkg/types"
)

// A Policy describes how a schema dialect declares identifiers,
// anchors and references. The dialect packages each build one
// Policy and use [Policy.ResolveSchema] as their vocabulary's
// Resolve function, so reference resolution is implemented once.
type Policy struct {
	// SchemaID is the dialect's $schema URI.
	SchemaID string

	// IDKeyword declares the base URI of a schema resource:
	// "$id", or "id" before draft 6.
	IDKeyword string

	// IDAllowsFragment permits a plain-name fragment in the ID
	// keyword, registering it as an anchor. Draft 4 and earlier.
	IDAllowsFragment bool

	// AnchorKeyword is "$anchor", or empty for dialects without it.
	AnchorKeyword string

	// DynamicAnchorKeyword is "$dynamicAnchor", or empty.
	DynamicAnchorKeyword string

	// RecursiveAnchor enables the draft 2019-09 pair
	// $recursiveAnchor / $recursiveRef. A recursive anchor is
	// stored as a dynamic anchor with an empty name.
	RecursiveAnchor bool

	// DynamicRefKeyword is "$dynamicRef", or empty.
	DynamicRefKeyword string

	// RefIgnoresSiblings disables every keyword next to a $ref,
	// as drafts up to 7 require.
	RefIgnoresSiblings bool

	// Meta checks whether a URI refers to one of the dialect's
	// embedded meta-schemas and loads it if it does.
	Meta func(uri *url.URL, opts *types.ResolveOpts) (*types.Schema, error)
}

// resolveState holds state during a ResolveSchema pass.
type resolveState struct {
	policy *Policy
	ropts  *types.ResolveOpts
	root   *types.Schema

	// schemas records, for every schema bearing a reference
	// keyword, the base URI in effect where the schema appeared.
	schemas map[*types.Schema]*url.URL
	// uris maps declared resource URIs to their schemas.
	uris map[string]*types.Schema
	// anchors maps anchor keys (see anchorKey) to their targets.
	anchors map[string]anchorData
	// cache holds externally loaded schemas for this pass.
	cache schemacache.Cache
}

// anchorData is information we keep for an anchor.
type anchorData struct {
	schema  *types.Schema
	dynamic bool // true for $dynamicAnchor and $recursiveAnchor
}

// subInfo holds information we pass down to subschemas.
type subInfo struct {
	base *url.URL // innermost base URI
	name []string // schema location, for messages
}

// Name returns the location of the current subschema.
func (si subInfo) Name() string {
	return "/" + strings.Join(si.name, "/")
}

// anchorKey builds the lookup key for an anchor: the base URI
// without its fragment, then '#', then the anchor name.
func anchorKey(u *url.URL, anchor string) string {
	noFrag := *u
	noFrag.Fragment = ""
	return noFrag.String() + "#" + anchor
}

// ResolveSchema resolves $ref and friends across a schema and its
// subschemas, per the dialect the policy describes. It is used as
// the Resolve field of a [types.Vocabulary].
func (p *Policy) ResolveSchema(schema *types.Schema, ropts *types.ResolveOpts) error {
	state := &resolveState{
		policy: p,
		ropts:  ropts,
		root:   schema,
	}
	var uri *url.URL
	if ropts != nil {
		uri = ropts.URI
	}
	return resolveRoot(uri, schema, state)
}

// resolveRoot resolves a schema document that may have a known URI.
func resolveRoot(uri *url.URL, schema *types.Schema, state *resolveState) error {
	subData := subInfo{base: uri}
	if err := resolveIDs(schema, schema, state, subData); err != nil {
		return err
	}
	if err := resolveRefs(schema, state, subData); err != nil {
		return err
	}
	if state.policy.RefIgnoresSiblings {
		disableRefSiblings(schema)
	}
	return nil
}

// resolveIDs finds the IDs and anchors in a schema.
// The base argument is the schema resource the subschema belongs to;
// dynamic anchor bookkeeping parts are attached to it.
func resolveIDs(subSchema, base *types.Schema, state *resolveState, subData subInfo) error {
	if subSchema == nil {
		return nil
	}

	p := state.policy

	var dynamicAnchor string
	sawDynamic := false
	for _, part := range subSchema.Parts {
		var err error
		switch part.Keyword.Name {
		case p.IDKeyword:
			subData, err = resolveID(subSchema, part.Value, state, subData)
			base = subSchema

		case p.AnchorKeyword:
			if p.AnchorKeyword == "" {
				continue
			}
			err = registerAnchor(subSchema, false, string(part.Value.(types.PartString)), state, subData)

		case p.DynamicAnchorKeyword:
			if p.DynamicAnchorKeyword == "" {
				continue
			}
			if sawDynamic {
				return fmt.Errorf("%s: more than one dynamic anchor", subData.Name())
			}
			sawDynamic = true
			dynamicAnchor = string(part.Value.(types.PartString))
			err = registerAnchor(subSchema, true, dynamicAnchor, state, subData)

		case "$recursiveAnchor":
			if !p.RecursiveAnchor || !bool(part.Value.(types.PartBool)) {
				continue
			}
			if sawDynamic {
				return fmt.Errorf("%s: more than one dynamic anchor", subData.Name())
			}
			sawDynamic = true
			err = registerAnchor(subSchema, true, "", state, subData)

		case "$ref", p.DynamicRefKeyword, "$recursiveRef":
			if part.Keyword.Name == "$recursiveRef" && !p.RecursiveAnchor {
				continue
			}
			// We need the base URI when resolving references.
			if state.schemas == nil {
				state.schemas = make(map[*types.Schema]*url.URL)
			}
			state.schemas[subSchema] = subData.base
		}
		if err != nil {
			return err
		}
	}

	if sawDynamic {
		attachDynamicAnchor(base, subSchema, dynamicAnchor)
	}

	for name, subsub := range subSchema.Children() {
		subsubData := subInfo{
			base: subData.base,
			name: append(subData.name, name),
		}
		if err := resolveIDs(subsub, base, state, subsubData); err != nil {
			return err
		}
	}

	return nil
}

// attachDynamicAnchor adds special keywords to set and clear a
// dynamic anchor during validation. The keywords are added to the
// schema resource root, but only if the root doesn't already have
// a dynamic anchor. This implements the dynamic scoping that
// resolves to the outermost anchor.
func attachDynamicAnchor(base, target *types.Schema, anchor string) {
	for _, part := range base.Parts {
		if part.Keyword == &types.RecordDynamicAnchorKeyword {
			return
		}
	}

	val := &types.DynamicAnchor{
		Anchor: anchor,
		Schema: target,
	}
	record := types.Part{
		Keyword: &types.RecordDynamicAnchorKeyword,
		Value:   types.PartAny{V: val},
	}
	base.Parts = append([]types.Part{record}, base.Parts...)
	base.Parts = append(base.Parts, types.Part{
		Keyword: &types.ClearDynamicAnchorKeyword,
		Value:   types.PartAny{V: val},
	})
}

// resolveID handles the ID keyword when searching for anchors.
func resolveID(subSchema *types.Schema, value types.PartValue, state *resolveState, subData subInfo) (subInfo, error) {
	arg := string(value.(types.PartString))
	uri, err := url.Parse(arg)
	if err != nil {
		return subInfo{}, fmt.Errorf("%s: failed to parse %q as an ID: %v", subData.Name(), arg, err)
	}

	if uri.Fragment != "" {
		if !state.policy.IDAllowsFragment {
			return subInfo{}, fmt.Errorf("%s: ID %q contains non-empty fragment", subData.Name(), arg)
		}
		// A pre-draft-6 ID of the form "#name" declares an anchor.
		frag := uri.Fragment
		noFrag := *uri
		noFrag.Fragment = ""
		if noFrag.String() == "" {
			if err := registerAnchor(subSchema, false, frag, state, subData); err != nil {
				return subInfo{}, err
			}
			return subData, nil
		}
		uri = &noFrag
	}

	rv := NewResolver(subData.base)
	newURI, err := rv.Resolve(uri.String())
	if err != nil {
		return subInfo{}, err
	}

	if state.uris == nil {
		state.uris = make(map[string]*types.Schema)
	}
	state.uris[newURI.String()] = subSchema

	return subInfo{
		base: newURI,
		name: subData.name,
	}, nil
}

// registerAnchor records an anchor target.
func registerAnchor(subSchema *types.Schema, dynamic bool, anchor string, state *resolveState, subData subInfo) error {
	if state.anchors == nil {
		state.anchors = make(map[string]anchorData)
	}

	base := subData.base
	if base == nil {
		base = &url.URL{}
	}
	key := anchorKey(base, anchor)

	if _, ok := state.anchors[key]; ok {
		return fmt.Errorf("%s: duplicate anchor %q", subData.Name(), key)
	}
	state.anchors[key] = anchorData{
		schema:  subSchema,
		dynamic: dynamic,
	}
	return nil
}

// resolveRefs resolves all reference keywords in the schema.
func resolveRefs(subSchema *types.Schema, state *resolveState, subData subInfo) error {
	if subSchema == nil {
		return nil
	}

	p := state.policy

	sawRef, sawDynamicRef := false, false
	for _, part := range subSchema.Parts {
		var err error
		switch part.Keyword.Name {
		case "$ref":
			if sawRef {
				return fmt.Errorf("%s: more than one $ref", subData.Name())
			}
			sawRef = true
			err = resolveRef(subSchema, false, string(part.Value.(types.PartString)), state, subData)

		case p.DynamicRefKeyword:
			if p.DynamicRefKeyword == "" {
				continue
			}
			if sawDynamicRef {
				return fmt.Errorf("%s: more than one dynamic reference", subData.Name())
			}
			sawDynamicRef = true
			err = resolveRef(subSchema, true, string(part.Value.(types.PartString)), state, subData)

		case "$recursiveRef":
			if !p.RecursiveAnchor {
				continue
			}
			if sawDynamicRef {
				return fmt.Errorf("%s: more than one dynamic reference", subData.Name())
			}
			sawDynamicRef = true
			err = resolveRecursiveRef(subSchema, string(part.Value.(types.PartString)), state, subData)
		}
		if err != nil {
			return err
		}
	}

	for name, subsub := range subSchema.Children() {
		subsubData := subInfo{
			name: append(subData.name, name),
		}
		if err := resolveRefs(subsub, state, subsubData); err != nil {
			return err
		}
	}

	return nil
}

// addResolvedRef records a resolved reference using a generated
// keyword. A schema document shared through a registry may be
// resolved more than once; the first resolution wins.
func addResolvedRef(subSchema, refSchema *types.Schema, dynamic, detached bool) {
	resolvedKey := &types.ResolvedRefKeyword
	if dynamic {
		resolvedKey = &types.ResolvedDynamicRefKeyword
	}
	if detached {
		// This is a backup for a dynamic reference to a dynamic
		// anchor, to be used if evaluation skips over the schema
		// resource that records the anchor.
		resolvedKey = &types.DetachedDynamicRefKeyword
	}

	for _, part := range subSchema.Parts {
		if part.Keyword == resolvedKey {
			return
		}
	}

	subSchema.Parts = append(subSchema.Parts, types.Part{
		Keyword: resolvedKey,
		Value:   types.PartSchema{S: refSchema},
	})
}

// resolveRef resolves a $ref or $dynamicRef in the schema.
func resolveRef(subSchema *types.Schema, dynamic bool, ref string, state *resolveState, subData subInfo) error {
	base, ok := state.schemas[subSchema]
	if !ok {
		// Should have been handled in resolveIDs.
		panic("resolveIDs did not record schema base URI")
	}

	refURI, err := NewResolver(base).Resolve(ref)
	if err != nil {
		return err
	}

	frag := refURI.Fragment

	// A $dynamicRef with a JSON pointer is not really dynamic.
	dynamicFrag := dynamic
	if dynamic && (frag == "" || strings.HasPrefix(frag, "/")) {
		dynamicFrag = false
	}

	key := anchorKey(refURI, frag)
	if ad, ok := state.anchors[key]; ok && frag != "" {
		addResolvedRef(subSchema, ad.schema, dynamic, dynamicFrag && ad.dynamic)
		return nil
	}

	refSchema, err := resolveURI(refURI, state, subData)
	if err != nil {
		return err
	}

	// Loading and resolving the schema may have resolved the
	// reference. The schema was loaded without any fragment,
	// but refURI may include a fragment.
	if ad, ok := state.anchors[key]; ok && frag != "" {
		addResolvedRef(subSchema, ad.schema, dynamic, dynamicFrag && ad.dynamic)
		return nil
	}

	// Otherwise, if there is a fragment, we expect it to be a
	// JSON pointer. A reference to an anchor should have been
	// resolved by looking in state.anchors.

	if frag != "" {
		if !strings.HasPrefix(frag, "/") {
			return &UnresolvableError{
				Ref:    ref,
				Reason: fmt.Sprintf("%s: no anchor matches fragment %q in %q", subData.Name(), frag, refURI),
			}
		}

		if refSchema, err = jsonpointer.DerefSchema(state.policy.SchemaID, refSchema, frag); err != nil {
			return &UnresolvableError{
				Ref:    ref,
				Reason: fmt.Sprintf("%s: JSON pointer %q does not resolve in %q", subData.Name(), frag, refURI),
				Err:    err,
			}
		}
	}

	addResolvedRef(subSchema, refSchema, dynamic, false)
	return nil
}

// resolveRecursiveRef resolves a draft 2019-09 $recursiveRef.
// The static target is the enclosing schema resource. If that
// resource declares $recursiveAnchor the reference is dynamic:
// at validation time the outermost recursive anchor in scope wins.
func resolveRecursiveRef(subSchema *types.Schema, ref string, state *resolveState, subData subInfo) error {
	if ref != "#" {
		return &UnresolvableError{
			Ref:    ref,
			Reason: fmt.Sprintf(`%s: $recursiveRef must be "#"`, subData.Name()),
		}
	}

	base, ok := state.schemas[subSchema]
	if !ok {
		panic("resolveIDs did not record schema base URI")
	}

	target := state.root
	if base != nil {
		if s, ok := state.uris[base.String()]; ok {
			target = s
		}
	}

	dynamic := false
	if base == nil {
		base = &url.URL{}
	}
	if ad, ok := state.anchors[anchorKey(base, "")]; ok && ad.dynamic {
		dynamic = true
	} else if _, ok := state.anchors[anchorKey(&url.URL{}, "")]; ok {
		// The root resource declares a recursive anchor.
		dynamic = true
	}

	addResolvedRef(subSchema, target, true, dynamic)
	return nil
}

// resolveURI returns the schema for a URI.
func resolveURI(refURI *url.URL, state *resolveState, subData subInfo) (*types.Schema, error) {
	// The URI, ignoring the fragment, is either the empty string,
	// meaning the root, or a reference to some declared ID
	// elsewhere in the schema tree, or a URI to be loaded
	// externally.

	noFragURIBase := *refURI
	noFragURIBase.Fragment = ""
	noFragURI := &noFragURIBase
	noFragStr := noFragURI.String()

	// An empty URI means the schema root.
	if noFragStr == "" {
		return state.root, nil
	}

	// Check for a reference to a known schema ID.
	if refSchema, ok := state.uris[noFragStr]; ok {
		return refSchema, nil
	}

	// The URI refers to something elsewhere.
	if !noFragURI.IsAbs() {
		return nil, &UnresolvableError{
			Ref:    refURI.String(),
			Reason: fmt.Sprintf("%s: relative URI with no matching resource", subData.Name()),
		}
	}

	// Check for a reference to the meta-schema.
	if state.policy.Meta != nil {
		refSchema, err := state.policy.Meta(noFragURI, state.ropts)
		if err != nil {
			return nil, err
		}
		if refSchema != nil {
			return refSchema, nil
		}
	}

	// We need to load the schema from a remote source.
	if state.ropts == nil || state.ropts.Loader == nil {
		return nil, &UnresolvableError{
			Ref:    refURI.String(),
			Reason: fmt.Sprintf("%s: remote loading not permitted", subData.Name()),
		}
	}

	// Check the cache.
	if refSchema := state.cache.Load(state.policy.SchemaID, noFragStr); refSchema != nil {
		return refSchema, nil
	}

	// Load the schema remotely.
	refSchema, err := state.ropts.Loader(state.policy.SchemaID, noFragURI)
	if err != nil {
		return nil, err
	}
	if refSchema == nil {
		return nil, &UnresolvableError{
			Ref:    refURI.String(),
			Reason: fmt.Sprintf("%s: loader returned no schema and no error", subData.Name()),
		}
	}

	// Cache the schema. We must do this before resolving it,
	// as resolving the schema may try to load it again.
	state.cache.Store(state.policy.SchemaID, noFragStr, refSchema)

	// Resolve the loaded schema in the current resolution state.
	if err := resolveRoot(noFragURI, refSchema, state); err != nil {
		return nil, fmt.Errorf("%s: resolving schema at URI %q failed: %w", subData.Name(), noFragURI, err)
	}

	return refSchema, nil
}

// disableRefSiblings neutralizes the keywords next to a $ref for
// dialects where a $ref replaces the whole schema object. The parts
// stay in place so that the schema still marshals to the JSON it
// came from, but their Validate functions are dropped.
func disableRefSiblings(s *types.Schema) {
	if s == nil {
		return
	}

	for _, sub := range s.Children() {
		disableRefSiblings(sub)
	}

	hasRef := false
	for _, part := range s.Parts {
		if part.Keyword.Name == "$ref" && !part.Keyword.Generated {
			hasRef = true
			break
		}
	}
	if !hasRef {
		return
	}

	for i, part := range s.Parts {
		kw := part.Keyword
		if kw.Generated || kw.Name == "$ref" || kw == &types.SchemaKeyword {
			continue
		}
		s.Parts[i].Keyword = &types.Keyword{
			Name:    kw.Name,
			ArgType: kw.ArgType,
		}
	}
}
