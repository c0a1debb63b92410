// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package format

import (
	"net/netip"
	"strings"
	"sync"
	"unicode"

	"golang.org/x/net/idna"
)

// hostnameProfile returns the IDNA profile used for both plain and
// internationalized hostnames. Registration validation applies the
// stricter checks the testsuites expect.
var hostnameProfile = sync.OnceValue(func() *idna.Profile {
	return idna.New(idna.ValidateForRegistration())
})

// isValidHostname reports whether s is a valid hostname.
// If idn is true, this permits internationalized hostnames.
func isValidHostname(s string, idn bool) bool {
	if _, err := netip.ParseAddr(s); err == nil {
		// An IP address is an acceptable host.
		return true
	}

	// Underscores are permitted by idna but not by RFC1123 hostnames.
	if strings.Contains(s, "_") {
		return false
	}

	if !idn {
		for i := range len(s) {
			if s[i]&0x80 != 0 {
				return false
			}
		}
	} else {
		// Permit all label separators (RFC3490 section 3.1).
		s = strings.ReplaceAll(s, "。", ".")
		s = strings.ReplaceAll(s, "．", ".")
		s = strings.ReplaceAll(s, "｡", ".")

		if !checkContextualRunes(s) {
			return false
		}
	}

	_, err := hostnameProfile().ToASCII(s)
	return err == nil
}

// checkContextualRunes applies the RFC5892 contextual rules that the
// idna package doesn't check.
func checkContextualRunes(s string) bool {
	var last, nextMustBe rune
	var nextMustBeGreek bool
	for _, c := range s {
		if nextMustBe != 0 && nextMustBe != c {
			return false
		}
		nextMustBe = 0

		if nextMustBeGreek {
			if !unicode.Is(unicode.Greek, c) {
				return false
			}
		}
		nextMustBeGreek = false

		switch c {
		case 'ـ', 'ߺ', '〮', '〯',
			'〱', '〲', '〳', '〴',
			'〵', '〻':
			// Disallowed rune.
			return false

		case '·':
			// Middle dot only between two l's.
			if last != 'l' {
				return false
			}
			nextMustBe = 'l'

		case '͵':
			// Greek numeral sign must precede Greek.
			nextMustBeGreek = true

		case '׳', '״':
			// Hebrew punctuation must follow Hebrew.
			if !unicode.Is(unicode.Hebrew, last) {
				return false
			}

		case '・':
			// Katakana middle dot needs some Japanese in the label.
			found := false
			for _, c := range s {
				if unicode.Is(unicode.Hiragana, c) || unicode.Is(unicode.Katakana, c) || unicode.Is(unicode.Han, c) {
					found = true
					break
				}
			}
			if !found {
				return false
			}
		}

		last = c
	}
	return nextMustBe == 0 && !nextMustBeGreek
}
