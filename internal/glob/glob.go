// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

// Package glob matches slash-separated path keys against glob patterns.
//
// Supported tokens are "**" (any number of segments), "*" (anything
// within one segment) and "?" (one character within a segment).
// A pattern starting with "/" is anchored at the root, any other pattern
// may match from the start of a path or from any segment boundary.
package glob

import (
	"regexp"
	"sort"
	"strings"
)

// Compile turns pattern into a regular expression matching path keys.
func Compile(pattern string) (*regexp.Regexp, error) {
	pattern = strings.TrimPrefix(pattern, "./")

	var b strings.Builder
	if strings.HasPrefix(pattern, "/") {
		b.WriteString("^/")
		pattern = strings.TrimLeft(pattern, "/")
	} else {
		b.WriteString("(?:^|/)")
	}

	var literal strings.Builder
	flush := func() {
		b.WriteString(regexp.QuoteMeta(literal.String()))
		literal.Reset()
	}

	for i := 0; i < len(pattern); i++ {
		c := pattern[i]
		switch {
		case c == '*' && strings.HasPrefix(pattern[i:], "**/"):
			flush()
			b.WriteString("(?:.*/)?")
			i += 2
		case c == '*' && strings.HasPrefix(pattern[i:], "**"):
			flush()
			b.WriteString(".*")
			i++
		case c == '*':
			flush()
			b.WriteString("[^/]*")
		case c == '?':
			flush()
			b.WriteString("[^/]")
		default:
			literal.WriteByte(c)
		}
	}
	flush()
	b.WriteString("$")

	return regexp.Compile(b.String())
}

// Match returns the paths matching pattern, without duplicates,
// shortest first. Paths of equal length are ordered lexically.
func Match(pattern string, paths []string) ([]string, error) {
	re, err := Compile(pattern)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{}, 0)
	matches := make([]string, 0)
	for _, p := range paths {
		if _, ok := seen[p]; ok {
			continue
		}
		if re.MatchString(p) {
			seen[p] = struct{}{}
			matches = append(matches, p)
		}
	}

	sort.Slice(matches, func(i, j int) bool {
		if len(matches[i]) != len(matches[j]) {
			return len(matches[i]) < len(matches[j])
		}
		return matches[i] < matches[j]
	})

	return matches, nil
}
