// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package format

import (
	"net/mail"
	"strings"
)

// isValidEmail reports whether s is an RFC 5321 mailbox. With idn
// set it also accepts the RFC 6531 internationalized form. Parsing
// is delegated to net/mail rather than hand-built from the grammar.
func isValidEmail(s string, idn bool) bool {
	// net/mail does not understand the "[IPv6:...]" literal form,
	// so strip the tag and let it see a plain bracketed literal.
	s = strings.Replace(s, "[IPv6:", "[", 1)

	addr, err := mail.ParseAddress(s)
	if err != nil || addr.Name != "" {
		return false
	}
	if idn {
		return true
	}

	// The plain email format is ASCII only; non-ASCII domains
	// belong to idn-email. The local part may itself contain an
	// @ inside quotes, so split at the last one.
	i := strings.LastIndexByte(addr.Address, '@')
	if i < 0 || i+1 == len(addr.Address) {
		return true
	}
	domain := addr.Address[i+1:]
	return domain[0] == '[' || isASCIIDomain(domain)
}

// isASCIIDomain reports whether s contains only the letters, digits,
// dots and hyphens of a non-internationalized domain name.
func isASCIIDomain(s string) bool {
	for i := range len(s) {
		switch c := s[i]; {
		case c >= 'A' && c <= 'Z':
		case c >= 'a' && c <= 'z':
		case c >= '0' && c <= '9':
		case c == '.' || c == '-':
		default:
			return false
		}
	}
	return true
}
