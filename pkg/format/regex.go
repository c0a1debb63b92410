// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package format

import (
	"fmt"
	"regexp/syntax"
)

// checkRegex requires a valid regexp. Patterns are interpreted in
// the Perl-compatible flavor that regexp compiles, so some ECMA-262
// constructs are rejected.
func checkRegex(instance any) error {
	s, ok := instance.(string)
	if !ok {
		return nil
	}
	if _, err := syntax.Parse(s, syntax.Perl); err != nil {
		return fmt.Errorf("%q is not a valid regexp (note that only Go style regexps are supported)", s)
	}
	return nil
}
