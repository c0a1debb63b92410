// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package format

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckerDefault(t *testing.T) {
	c := Default()

	tests := []struct {
		format   string
		instance any
		valid    bool
	}{
		{"date", "2024-02-29", true},
		{"date", "2023-02-29", false},
		{"date", "2024-13-01", false},
		{"date", 17, true},
		{"date-time", "2024-02-29T23:59:60Z", true},
		{"date-time", "2024-02-29T12:00:60Z", false},
		{"date-time", "2024-02-29t08:30:06.283185z", true},
		{"time", "08:30:06+02:00", true},
		{"time", "08:30:06", false},
		{"duration", "P1DT12H", true},
		{"duration", "PT", false},
		{"email", "joe.bloggs@example.com", true},
		{"email", "joe bloggs@example.com", false},
		{"idn-email", "실례@실례.테스트", true},
		{"hostname", "www.example.com", true},
		{"hostname", "-a-host-name-that-starts-with--", false},
		{"idn-hostname", "실례.테스트", true},
		{"ipv4", "192.168.0.1", true},
		{"ipv4", "256.0.0.1", false},
		{"ipv6", "::1", true},
		{"ipv6", "192.168.0.1", false},
		{"uri", "https://example.com/path?q=1", true},
		{"uri", "/relative/path", false},
		{"uri-reference", "/relative/path", true},
		{"iri", "https://ƒøø.ßår/baz", true},
		{"json-pointer", "/a/~0b", true},
		{"json-pointer", "/a/~2b", false},
		{"relative-json-pointer", "1/a", true},
		{"relative-json-pointer", "/a", false},
		{"regex", "a+b*", true},
		{"regex", "(unclosed", false},
		{"uuid", "c7f1c840-37b7-42a2-98b8-f2ea96c06f2a", true},
		{"uuid", "{c7f1c840-37b7-42a2-98b8-f2ea96c06f2a}", false},
		{"uuid", "c7f1c84037b742a298b8f2ea96c06f2a", false},
	}
	for _, test := range tests {
		err := c.Check(test.format, test.instance)
		if test.valid {
			assert.NoError(t, err, "%s %v", test.format, test.instance)
		} else {
			assert.Error(t, err, "%s %v", test.format, test.instance)
		}
	}
}

func TestCheckerUnknownFormat(t *testing.T) {
	assert.NoError(t, Default().Check("no-such-format", "anything"))
	assert.NoError(t, New().Check("date", "not a date"))
}

func TestCheckerRegister(t *testing.T) {
	base := New()
	even := base.Register("even-length", stringFunc(func(s string) bool {
		return len(s)%2 == 0
	}, "even-length string"))

	require.True(t, even.Knows("even-length"))
	assert.False(t, base.Knows("even-length"), "Register must not modify the receiver")

	assert.NoError(t, even.Check("even-length", "ab"))
	assert.Error(t, even.Check("even-length", "abc"))

	removed := even.Remove("even-length")
	assert.NoError(t, removed.Check("even-length", "abc"))
	assert.True(t, even.Knows("even-length"), "Remove must not modify the receiver")
}

func TestCheckerFormats(t *testing.T) {
	c := New().
		Register("b-format", func(any) error { return nil }).
		Register("a-format", func(any) error { return nil })
	assert.Equal(t, []string{"a-format", "b-format"}, c.Formats())
}

func TestCheckerPanicRecovery(t *testing.T) {
	c := New().Register("explosive", func(any) error {
		panic("boom")
	})
	err := c.Check("explosive", "x")
	require.Error(t, err)
	var pe *PanicError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, "explosive", pe.Format)
	assert.Contains(t, err.Error(), "boom")
}

func TestCheckerNil(t *testing.T) {
	var c *Checker
	assert.NoError(t, c.Check("date", "bogus"))
	assert.False(t, c.Knows("date"))
	assert.Nil(t, c.Formats())
}

func TestCheckerErrorValue(t *testing.T) {
	sentinel := errors.New("custom failure")
	c := New().Register("custom", func(any) error { return sentinel })
	assert.ErrorIs(t, c.Check("custom", "x"), sentinel)
}
