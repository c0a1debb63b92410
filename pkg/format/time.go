// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package format

import (
	"strings"
	"time"
)

// isValidDateTime reports whether s is an RFC 3339 date-time,
// a full-date and a full-time joined by "T".
func isValidDateTime(s string) bool {
	if len(s) < 11 || (s[10] != 'T' && s[10] != 't') {
		return false
	}
	return isValidDate(s[:10]) && isValidTime(s[11:])
}

// fixedDigits parses exactly n leading digits of s.
func fixedDigits(s string, n int) (int, bool) {
	if len(s) < n {
		return 0, false
	}
	v := 0
	for i := range n {
		c := s[i]
		if c < '0' || c > '9' {
			return 0, false
		}
		v = v*10 + int(c-'0')
	}
	return v, true
}

// isValidDate reports whether s is an RFC 3339 full-date, YYYY-MM-DD
// with a day that exists in the given month and year.
func isValidDate(s string) bool {
	if len(s) != 10 || s[4] != '-' || s[7] != '-' {
		return false
	}
	year, okY := fixedDigits(s, 4)
	month, okM := fixedDigits(s[5:], 2)
	day, okD := fixedDigits(s[8:], 2)
	if !okY || !okM || !okD {
		return false
	}
	if month < 1 || month > 12 || day < 1 {
		return false
	}
	return day <= daysIn(year, time.Month(month))
}

// daysIn returns the number of days in a month. The zeroth day of
// the following month normalizes to the last day of m.
func daysIn(year int, m time.Month) int {
	return time.Date(year, m+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// isValidTime reports whether s is an RFC 3339 full-time,
// HH:MM:SS with an optional fraction and a mandatory offset.
// A 60th second is accepted only where it lands on 23:59:60 UTC.
func isValidTime(s string) bool {
	if len(s) < 9 || s[2] != ':' || s[5] != ':' {
		return false
	}
	hour, okH := fixedDigits(s, 2)
	minute, okM := fixedDigits(s[3:], 2)
	second, okS := fixedDigits(s[6:], 2)
	if !okH || !okM || !okS {
		return false
	}
	if hour > 23 || minute > 59 || second > 60 {
		return false
	}

	rest := s[8:]
	if strings.HasPrefix(rest, ".") {
		n := 0
		for n+1 < len(rest) && rest[n+1] >= '0' && rest[n+1] <= '9' {
			n++
		}
		if n == 0 {
			return false
		}
		rest = rest[1+n:]
	}

	// offset, in signed minutes east of UTC
	var offset int
	switch {
	case rest == "Z" || rest == "z":
		offset = 0
	case len(rest) == 6 && (rest[0] == '+' || rest[0] == '-') && rest[3] == ':':
		oh, okH := fixedDigits(rest[1:], 2)
		om, okM := fixedDigits(rest[4:], 2)
		if !okH || !okM || oh > 23 || om > 59 {
			return false
		}
		offset = oh*60 + om
		if rest[0] == '-' {
			offset = -offset
		}
	default:
		return false
	}

	if second == 60 {
		utc := hour*60 + minute - offset
		utc = ((utc % 1440) + 1440) % 1440
		return utc == 23*60+59
	}
	return true
}

// durationUnits consumes leading 1*DIGIT unit pairs of s, where the
// units must form a contiguous run within order ("YMD" or "HMS"):
// a year may be followed by months but not jump straight to days.
// It returns the unconsumed tail and the number of pairs consumed.
func durationUnits(s, order string) (string, int, bool) {
	pairs := 0
	next := 0
	for len(s) > 0 && s[0] >= '0' && s[0] <= '9' {
		n := 1
		for n < len(s) && s[n] >= '0' && s[n] <= '9' {
			n++
		}
		if n == len(s) {
			return s, pairs, false
		}
		u := s[n]
		if u >= 'a' && u <= 'z' {
			u -= 'a' - 'A'
		}
		i := strings.IndexByte(order, u)
		if i < 0 || (pairs > 0 && i != next) {
			return s, pairs, false
		}
		next = i + 1
		s = s[n+1:]
		pairs++
	}
	return s, pairs, true
}

// durationTime parses the part after "T": hours, minutes and seconds
// in order, at least one of them, nothing trailing.
func durationTime(s string) bool {
	rest, pairs, ok := durationUnits(s, "HMS")
	return ok && pairs > 0 && rest == ""
}

// isValidDuration reports whether s is an RFC 3339 duration.
func isValidDuration(s string) bool {
	if len(s) < 3 || (s[0] != 'P' && s[0] != 'p') {
		return false
	}
	s = s[1:]

	if s[0] == 'T' || s[0] == 't' {
		return durationTime(s[1:])
	}

	// dur-week: digits followed by "W", optionally with a time part
	n := 0
	for n < len(s) && s[n] >= '0' && s[n] <= '9' {
		n++
	}
	if n > 0 && n < len(s) && (s[n] == 'W' || s[n] == 'w') {
		rest := s[n+1:]
		if rest == "" {
			return true
		}
		if rest[0] != 'T' && rest[0] != 't' {
			return false
		}
		return durationTime(rest[1:])
	}

	rest, pairs, ok := durationUnits(s, "YMD")
	if !ok || pairs == 0 {
		return false
	}
	if rest == "" {
		return true
	}
	if rest[0] != 'T' && rest[0] != 't' {
		return false
	}
	return durationTime(rest[1:])
}
