// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

package syntax

import (
	"strings"
)

// NewString returns a synthesized double-quoted string literal.
func NewString(value string) *StringLit {
	return NewQuotedString(value, '"')
}

func NewQuotedString(value string, quote byte) *StringLit {
	if quote != '\'' {
		quote = '"'
	}
	return &StringLit{
		Value: escape(value, quote),
		Quote: quote,
	}
}

// NewProperty returns a synthesized object member. Keys which are
// not valid identifiers are quoted.
func NewProperty(key string, value Node) *Property {
	if isIdentifier(key) {
		return &Property{Key: key, Value: value}
	}
	return &Property{
		Key:      escape(key, '"'),
		KeyQuote: '"',
		Value:    value,
	}
}

func NewIdent(name string) *Ident {
	return &Ident{Name: name}
}

func NewNumber(text string) *NumberLit {
	return &NumberLit{Text: text}
}

func NewRaw(text string) *RawExpr {
	return &RawExpr{Text: text}
}

func escape(s string, quote byte) string {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch c {
		case '\\', quote:
			b.WriteByte('\\')
			b.WriteByte(c)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}

func unescape(s string) string {
	if !strings.Contains(s, `\`) {
		return s
	}

	var b strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c != '\\' || i+1 == len(s) {
			b.WriteByte(c)
			continue
		}
		i++
		switch s[i] {
		case 'n':
			b.WriteByte('\n')
		case 'r':
			b.WriteByte('\r')
		case 't':
			b.WriteByte('\t')
		default:
			b.WriteByte(s[i])
		}
	}
	return b.String()
}

// requote converts the escaped body of a string literal from one quote
// character to another, leaving unrelated escape sequences intact
func requote(raw string, from, to byte) string {
	if from == to {
		return raw
	}

	var b strings.Builder
	for i := 0; i < len(raw); i++ {
		c := raw[i]
		switch {
		case c == '\\' && i+1 < len(raw):
			i++
			if raw[i] == from {
				b.WriteByte(from)
				continue
			}
			b.WriteByte('\\')
			b.WriteByte(raw[i])
		case c == to:
			b.WriteByte('\\')
			b.WriteByte(to)
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}

func isIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		if i == 0 && !isIdentStart(r) {
			return false
		}
		if i > 0 && !isIdentPart(r) {
			return false
		}
	}
	return true
}
