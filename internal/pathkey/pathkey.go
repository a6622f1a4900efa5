// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

// Package pathkey provides the slash-separated path keys used to address
// entries of the virtual tree. Keys are independent of the host OS
// separator; a leading "/" marks a key relative to the tree root.
package pathkey

import (
	"strings"
)

const Separator = "/"

// Normalize returns the canonical form of p.
//
// Backslashes are treated as separators, empty and "." segments are
// dropped, ".." removes the preceding segment and a trailing separator
// is trimmed. Normalize(Normalize(p)) == Normalize(p) for any p.
func Normalize(p string) string {
	p = strings.ReplaceAll(p, `\`, Separator)
	abs := strings.HasPrefix(p, Separator)

	segs := make([]string, 0)
	for _, seg := range strings.Split(p, Separator) {
		switch seg {
		case "", ".":
			continue
		case "..":
			if len(segs) > 0 && segs[len(segs)-1] != ".." {
				segs = segs[:len(segs)-1]
				continue
			}
			if abs {
				// nothing above the root
				continue
			}
		}
		segs = append(segs, seg)
	}

	joined := strings.Join(segs, Separator)
	if abs {
		return Separator + joined
	}
	return joined
}

// Split returns the segments of the normalized path.
func Split(p string) []string {
	n := strings.TrimPrefix(Normalize(p), Separator)
	if n == "" {
		return []string{}
	}
	return strings.Split(n, Separator)
}

func Join(segs ...string) string {
	return Normalize(strings.Join(segs, Separator))
}

func IsAbs(p string) bool {
	return strings.HasPrefix(Normalize(p), Separator)
}

// Dir returns all but the last segment of p.
func Dir(p string) string {
	n := Normalize(p)
	i := strings.LastIndex(n, Separator)
	switch {
	case i < 0:
		return ""
	case i == 0:
		return Separator
	}
	return n[:i]
}

// Base returns the last segment of p, or an empty string
// when p has no segments.
func Base(p string) string {
	segs := Split(p)
	if len(segs) == 0 {
		return ""
	}
	return segs[len(segs)-1]
}

// Ext returns the extension of the last segment including the dot.
// Leading dots of hidden files are not treated as an extension.
func Ext(p string) string {
	base := Base(p)
	i := strings.LastIndex(base, ".")
	if i <= 0 {
		return ""
	}
	return base[i:]
}

// Equals reports whether both paths normalize to the same key.
func Equals(a, b string) bool {
	return Normalize(a) == Normalize(b)
}
