// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package format

import (
	"net/netip"
	"net/url"
	"strings"
)

// uriOrIRI selects between the ASCII and internationalized variants.
type uriOrIRI int

const (
	isURI uriOrIRI = iota + 1
	isIRI
)

// isValidURI reports whether s is a valid URI or IRI.
// If ref is true, relative references are also permitted.
func isValidURI(s string, ui uriOrIRI, ref bool) bool {
	if ref && strings.HasPrefix(s, `\\`) {
		// Reject UNC paths. They would otherwise parse as
		// relative references.
		return false
	}

	uri, err := url.Parse(s)
	if err != nil {
		return false
	}
	if !ref && !uri.IsAbs() {
		return false
	}
	return checkURI(uri, ui)
}

// checkURI applies checks beyond what url.Parse enforces.
func checkURI(uri *url.URL, ui uriOrIRI) bool {
	// An IPv6 address must be in square brackets;
	// otherwise the colons can confuse the parse.
	if addr, err := netip.ParseAddr(uri.Host); err == nil && addr.Is6() {
		return false
	}

	// Backslashes are not valid in fragments.
	if strings.Contains(uri.Fragment, `\`) {
		return false
	}

	if ui == isIRI {
		return true
	}

	// A URI path is restricted to unreserved and a few reserved
	// characters. url.Parse is more forgiving than RFC3986.
	for i := range uri.RawPath {
		c := uri.RawPath[i]
		if ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z') || ('0' <= c && c <= '9') {
			continue
		}
		switch c {
		case '-', '_', '.', '~', '@', '&', '=', '+', '$', '/', ';', ',', '(', ')', '#':
			continue
		default:
			return false
		}
	}

	return true
}
