// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

package syntax

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/hashicorp/hcl/v2"
)

type tokenType int

const (
	tokEOF tokenType = iota
	tokIdent
	tokString
	tokTemplate
	tokNumber
	tokPunct
)

type token struct {
	typ  tokenType
	text string

	start, end hcl.Pos

	// nlBefore is set when a line break separates the token
	// from the previous one
	nlBefore bool
	// blankBefore is set when an empty line separates the token
	// (or its leading comments) from the previous token
	blankBefore bool

	leading  []string
	trailing []string
}

func (t token) is(typ tokenType, text string) bool {
	return t.typ == typ && t.text == text
}

func (t token) isPunct(text string) bool {
	return t.is(tokPunct, text)
}

// punctuators longest first
var punctuators = []string{
	">>>=", "...", "===", "!==", "**=", "<<=", ">>=", ">>>", "&&=", "||=", "??=",
	"=>", "==", "!=", "<=", ">=", "&&", "||", "??", "?.", "++", "--", "+=", "-=",
	"*=", "/=", "%=", "&=", "|=", "^=", "**", "<<", ">>",
}

type lexer struct {
	filename string
	src      []byte
	pos      hcl.Pos
	diags    hcl.Diagnostics
}

func lex(filename string, src []byte) ([]token, hcl.Diagnostics) {
	l := &lexer{
		filename: filename,
		src:      src,
		pos:      hcl.InitialPos,
	}

	toks := make([]token, 0)
	for {
		// comments on the same line as the previous token trail it
		if len(toks) > 0 {
			toks[len(toks)-1].trailing = l.skipTrailing()
		}

		leading, nl, blank := l.skipSpace()
		tok := l.next()
		tok.leading = leading
		tok.nlBefore = nl || len(toks) == 0
		tok.blankBefore = blank && len(toks) > 0
		toks = append(toks, tok)

		if tok.typ == tokEOF {
			return toks, l.diags
		}
	}
}

func (l *lexer) peek(offset int) byte {
	i := l.pos.Byte + offset
	if i >= len(l.src) {
		return 0
	}
	return l.src[i]
}

func (l *lexer) eof() bool {
	return l.pos.Byte >= len(l.src)
}

// advance moves forward by n bytes, keeping line and column current
func (l *lexer) advance(n int) {
	for n > 0 && !l.eof() {
		r, size := utf8.DecodeRune(l.src[l.pos.Byte:])
		l.pos.Byte += size
		n -= size
		if r == '\n' {
			l.pos.Line++
			l.pos.Column = 1
			continue
		}
		l.pos.Column++
	}
}

// skipTrailing consumes blanks and comments up to the end of the current
// line. A block comment spanning lines is left for skipSpace.
func (l *lexer) skipTrailing() []string {
	var comments []string
	for !l.eof() {
		c := l.peek(0)
		switch {
		case c == ' ' || c == '\t' || c == '\r':
			l.advance(1)
		case c == '/' && l.peek(1) == '/':
			comments = append(comments, l.lineComment())
			return comments
		case c == '/' && l.peek(1) == '*':
			end := strings.Index(string(l.src[l.pos.Byte+2:]), "*/")
			if end < 0 || strings.Contains(string(l.src[l.pos.Byte:l.pos.Byte+2+end]), "\n") {
				return comments
			}
			comments = append(comments, l.blockComment())
		default:
			return comments
		}
	}
	return comments
}

func (l *lexer) skipSpace() (comments []string, nl bool, blank bool) {
	lineHasContent := true
	for !l.eof() {
		c := l.peek(0)
		switch {
		case c == '\n':
			if nl && !lineHasContent {
				blank = true
			}
			nl = true
			lineHasContent = false
			l.advance(1)
		case c == ' ' || c == '\t' || c == '\r' || c == '\f' || c == '\v':
			l.advance(1)
		case c == '/' && l.peek(1) == '/':
			lineHasContent = true
			comments = append(comments, l.lineComment())
		case c == '/' && l.peek(1) == '*':
			lineHasContent = true
			comments = append(comments, l.blockComment())
		default:
			r, _ := utf8.DecodeRune(l.src[l.pos.Byte:])
			if r == '\uFEFF' {
				l.advance(utf8.RuneLen(r))
				continue
			}
			return comments, nl, blank
		}
	}
	return comments, nl, blank
}

func (l *lexer) lineComment() string {
	start := l.pos.Byte
	for !l.eof() && l.peek(0) != '\n' {
		l.advance(1)
	}
	return strings.TrimRight(string(l.src[start:l.pos.Byte]), " \t\r")
}

func (l *lexer) blockComment() string {
	startPos := l.pos
	end := strings.Index(string(l.src[l.pos.Byte+2:]), "*/")
	if end < 0 {
		l.advance(len(l.src) - l.pos.Byte)
		l.diags = append(l.diags, &hcl.Diagnostic{
			Severity: hcl.DiagError,
			Summary:  "Unterminated comment",
			Detail:   "A block comment is missing its closing \"*/\".",
			Subject:  l.rangeFrom(startPos).Ptr(),
		})
		return string(l.src[startPos.Byte:])
	}
	l.advance(end + 4)
	return string(l.src[startPos.Byte:l.pos.Byte])
}

func (l *lexer) rangeFrom(start hcl.Pos) hcl.Range {
	return hcl.Range{
		Filename: l.filename,
		Start:    start,
		End:      l.pos,
	}
}

func (l *lexer) next() token {
	start := l.pos
	if l.eof() {
		return token{typ: tokEOF, start: start, end: start}
	}

	c := l.peek(0)
	r, size := utf8.DecodeRune(l.src[l.pos.Byte:])
	var typ tokenType

	switch {
	case c == '"' || c == '\'':
		typ = tokString
		l.quoted(c)
	case c == '`':
		typ = tokTemplate
		l.template()
	case isDigit(c) || (c == '.' && isDigit(l.peek(1))):
		typ = tokNumber
		for !l.eof() && (isIdentPart(rune(l.peek(0))) || l.peek(0) == '.') {
			l.advance(1)
		}
	case isIdentStart(r):
		typ = tokIdent
		l.advance(size)
		for !l.eof() {
			r, size := utf8.DecodeRune(l.src[l.pos.Byte:])
			if !isIdentPart(r) {
				break
			}
			l.advance(size)
		}
	default:
		typ = tokPunct
		n := 1
		for _, p := range punctuators {
			if strings.HasPrefix(string(l.src[l.pos.Byte:]), p) {
				n = len(p)
				break
			}
		}
		l.advance(n)
	}

	return token{
		typ:   typ,
		text:  string(l.src[start.Byte:l.pos.Byte]),
		start: start,
		end:   l.pos,
	}
}

func (l *lexer) quoted(q byte) {
	start := l.pos
	l.advance(1)
	for !l.eof() {
		c := l.peek(0)
		switch c {
		case '\\':
			l.advance(2)
			continue
		case '\n':
			l.unterminated(start, "string literal")
			return
		case q:
			l.advance(1)
			return
		}
		l.advance(1)
	}
	l.unterminated(start, "string literal")
}

func (l *lexer) template() {
	start := l.pos
	l.advance(1)
	depth := 0
	for !l.eof() {
		c := l.peek(0)
		switch {
		case c == '\\':
			l.advance(2)
			continue
		case c == '$' && l.peek(1) == '{':
			depth++
			l.advance(2)
			continue
		case c == '}' && depth > 0:
			depth--
		case c == '`' && depth == 0:
			l.advance(1)
			return
		}
		l.advance(1)
	}
	l.unterminated(start, "template literal")
}

func (l *lexer) unterminated(start hcl.Pos, what string) {
	l.diags = append(l.diags, &hcl.Diagnostic{
		Severity: hcl.DiagError,
		Summary:  "Unterminated " + what,
		Detail:   "The " + what + " is missing its closing quote.",
		Subject:  l.rangeFrom(start).Ptr(),
	})
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isIdentStart(r rune) bool {
	return r == '_' || r == '$' || r == '#' || unicode.IsLetter(r)
}

func isIdentPart(r rune) bool {
	return r == '_' || r == '$' || unicode.IsLetter(r) || unicode.IsDigit(r)
}
