// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package format

import "github.com/google/uuid"

// isValidUUID reports whether s is a canonical RFC4122 UUID.
// uuid.Parse also accepts urn: prefixes, braces and undashed forms,
// none of which the uuid format permits, so the shape is checked first.
func isValidUUID(s string) bool {
	if len(s) != 36 || s[8] != '-' || s[13] != '-' || s[18] != '-' || s[23] != '-' {
		return false
	}
	_, err := uuid.Parse(s)
	return err == nil
}
