// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package validerr

import "slices"

// DefaultWeakKeywords are the keywords whose errors usually wrap the
// real problem rather than being it. An "anyOf" failure, for example,
// is less informative than the "type" failure inside one of its
// branches.
var DefaultWeakKeywords = []string{"anyOf", "oneOf"}

// ByRelevance returns a comparison function for ranking validation
// errors. An error ranks higher when its instance path is deeper,
// then when its keyword is not in weak, then when its keyword is in
// strong. The ranking is a convenience heuristic, not a contract.
func ByRelevance(weak, strong []string) func(a, b *ValidationError) int {
	return func(a, b *ValidationError) int {
		if d := len(a.InstancePath) - len(b.InstancePath); d != 0 {
			return d
		}
		aw, bw := slices.Contains(weak, a.Keyword), slices.Contains(weak, b.Keyword)
		if aw != bw {
			if aw {
				return -1
			}
			return 1
		}
		as, bs := slices.Contains(strong, a.Keyword), slices.Contains(strong, b.Keyword)
		if as != bs {
			if as {
				return 1
			}
			return -1
		}
		return 0
	}
}

// Relevance is ByRelevance with the default weak and strong sets.
var Relevance = ByRelevance(DefaultWeakKeywords, nil)

// BestMatch picks the single most relevant error from errs using cmp,
// which may be nil for [Relevance]. Among the top-ranked errors it then
// descends into Context, picking the least relevant child at each
// level: the child that is hardest to satisfy is usually the branch
// the instance was closest to matching. Ties keep the earlier error
// in iteration order. BestMatch returns nil when errs is empty.
func BestMatch(errs []*ValidationError, cmp func(a, b *ValidationError) int) *ValidationError {
	if len(errs) == 0 {
		return nil
	}
	if cmp == nil {
		cmp = Relevance
	}

	best := errs[0]
	for _, ve := range errs[1:] {
		if cmp(ve, best) > 0 {
			best = ve
		}
	}

	for len(best.Context) > 0 {
		next := best.Context[0]
		for _, ve := range best.Context[1:] {
			if cmp(ve, next) < 0 {
				next = ve
			}
		}
		best = next
	}
	return best
}

// BestMatchError is BestMatch applied to the error value returned by
// a Validate call. It returns nil for a nil or non-validation error.
func BestMatchError(err error, cmp func(a, b *ValidationError) int) *ValidationError {
	return BestMatch(Errors(err), cmp)
}
