// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

package syntax

import (
	"strings"

	"github.com/hashicorp/hcl/v2"
)

//go:generate mockery --name Parser --structname Parser --filename parser.go --outpkg mock --output ./mock

// Parser turns source text into a File.
type Parser interface {
	Parse(filename string, src []byte) (*File, error)
}

type sourceParser struct{}

// NewParser returns a parser for ES module sources (JavaScript and
// TypeScript). Imports, single-binding declarations, default exports and
// object, array, call and member expressions are parsed into nodes.
// Anything else is kept verbatim as RawStmt or RawExpr, so printing
// an unedited file reproduces its statements.
//
// Lexical errors are returned as hcl.Diagnostics along with the
// best-effort File.
func NewParser() Parser {
	return &sourceParser{}
}

func (sp *sourceParser) Parse(filename string, src []byte) (*File, error) {
	toks, diags := lex(filename, src)
	p := &parser{
		filename: filename,
		src:      src,
		toks:     toks,
	}

	f := p.parseFile()
	if diags.HasErrors() {
		return f, diags
	}
	return f, nil
}

// tokens after which a line break does not end a statement
var continuesAfter = map[string]bool{
	"=": true, ",": true, ".": true, "?.": true, "(": true, "[": true, "{": true,
	"+": true, "-": true, "*": true, "/": true, "%": true, "**": true,
	"&&": true, "||": true, "??": true, "?": true, ":": true, "=>": true,
	"==": true, "===": true, "!=": true, "!==": true, "<": true, ">": true,
	"<=": true, ">=": true, "|": true, "&": true, "^": true, "!": true, "~": true,
	"+=": true, "-=": true, "*=": true, "/=": true, "...": true,
	"<<": true, ">>": true, ">>>": true,
}

// tokens before which a line break does not end a statement
var continuesBefore = map[string]bool{
	".": true, "?.": true, "=>": true, "=": true, ",": true, "?": true, ":": true,
	"&&": true, "||": true, "??": true, "+": true, "-": true, "*": true, "/": true,
	"%": true, "==": true, "===": true, "!=": true, "!==": true, "<": true,
	">": true, "<=": true, ">=": true, "|": true, "&": true, "^": true,
}

var continuesAfterKeyword = map[string]bool{
	"extends": true, "implements": true, "new": true, "typeof": true,
	"instanceof": true, "in": true, "as": true, "satisfies": true,
}

var continuesBeforeKeyword = map[string]bool{
	"else": true, "catch": true, "finally": true, "as": true, "satisfies": true,
	"extends": true, "implements": true, "instanceof": true, "in": true,
}

// statements starting with these are kept verbatim
var statementKeywords = map[string]bool{
	"function": true, "class": true, "if": true, "for": true, "while": true,
	"do": true, "switch": true, "try": true, "throw": true, "return": true,
	"interface": true, "type": true, "enum": true, "declare": true,
	"namespace": true, "abstract": true, "async": true, "break": true,
	"continue": true, "debugger": true, "with": true,
}

// identifiers which never start a simple operand
var operandKeywords = map[string]bool{
	"function": true, "class": true, "new": true, "typeof": true, "void": true,
	"delete": true, "await": true, "async": true, "yield": true,
	"export": true, "import": true,
}

type parser struct {
	filename string
	src      []byte
	toks     []token
	pos      int

	// depth counts brackets opened by structured parsing,
	// line breaks only end expressions at depth 0
	depth int
}

func (p *parser) cur() token {
	return p.peekTok(0)
}

func (p *parser) peekTok(n int) token {
	i := p.pos + n
	if i >= len(p.toks) {
		return p.toks[len(p.toks)-1]
	}
	return p.toks[i]
}

func (p *parser) text(start, end int) string {
	if end <= start {
		return ""
	}
	return string(p.src[p.toks[start].start.Byte:p.toks[end-1].end.Byte])
}

func (p *parser) rangeBetween(start, end int) hcl.Range {
	rng := hcl.Range{
		Filename: p.filename,
		Start:    p.toks[start].start,
		End:      p.toks[start].start,
	}
	if end > start {
		rng.End = p.toks[end-1].end
	}
	return rng
}

func (p *parser) trailingOf(i int) string {
	if i < 0 {
		return ""
	}
	return strings.Join(p.toks[i].trailing, " ")
}

func isOpen(t token) bool {
	return t.typ == tokPunct && (t.text == "(" || t.text == "[" || t.text == "{")
}

func isClose(t token) bool {
	return t.typ == tokPunct && (t.text == ")" || t.text == "]" || t.text == "}")
}

// breaksBefore reports whether a statement ends right before toks[i]
func (p *parser) breaksBefore(i int) bool {
	t := p.toks[i]
	if t.typ == tokEOF {
		return true
	}
	if i == 0 || !t.nlBefore {
		return false
	}

	prev := p.toks[i-1]
	switch {
	case prev.typ == tokPunct && continuesAfter[prev.text]:
		return false
	case prev.typ == tokIdent && continuesAfterKeyword[prev.text]:
		return false
	case t.typ == tokPunct && continuesBefore[t.text]:
		return false
	case t.typ == tokIdent && continuesBeforeKeyword[t.text]:
		return false
	}
	return true
}

func (p *parser) parseFile() *File {
	f := &File{
		Stmts: make([]Node, 0),
	}

	for {
		t := p.cur()
		if t.typ == tokEOF {
			f.TrailingComments = t.leading
			f.SrcRange = hcl.Range{
				Filename: p.filename,
				Start:    hcl.InitialPos,
				End:      t.end,
			}
			return f
		}
		if t.isPunct(";") {
			p.pos++
			continue
		}

		f.Stmts = append(f.Stmts, p.parseStatement())
	}
}

func (p *parser) parseStatement() Node {
	start := p.pos
	t := p.cur()
	trivia := Trivia{
		Comments:    t.leading,
		BlankBefore: t.blankBefore,
	}

	var stmt Node
	ok := false

	switch {
	case t.is(tokIdent, "import"):
		stmt, ok = p.parseImport(trivia)
	case t.is(tokIdent, "export") && p.peekTok(1).is(tokIdent, "default"):
		stmt, ok = p.parseExportDefault(trivia)
	case t.is(tokIdent, "export") && isDeclKeyword(p.peekTok(1)):
		stmt, ok = p.parseVarDecl(trivia, true)
	case isDeclKeyword(t):
		stmt, ok = p.parseVarDecl(trivia, false)
	case t.typ == tokIdent && statementKeywords[t.text]:
	default:
		stmt, ok = p.parseExprStmt(trivia)
	}

	if ok {
		return stmt
	}

	p.pos = start
	p.depth = 0
	end := p.captureRawStmt(start)
	p.pos = end
	trivia.TrailingComment = p.trailingOf(end - 1)
	return &RawStmt{
		Trivia:   trivia,
		Text:     p.text(start, end),
		SrcRange: p.rangeBetween(start, end),
	}
}

func isDeclKeyword(t token) bool {
	return t.typ == tokIdent && (t.text == "const" || t.text == "let" || t.text == "var")
}

// endStatement consumes an optional semicolon and reports whether
// the statement ends there, along with its trailing comment
func (p *parser) endStatement() (string, bool) {
	if p.cur().isPunct(";") {
		p.pos++
	} else if !p.breaksBefore(p.pos) {
		return "", false
	}
	return p.trailingOf(p.pos - 1), true
}

func (p *parser) captureRawStmt(start int) int {
	depth := 0
	i := start
	for {
		t := p.toks[i]
		if t.typ == tokEOF {
			return i
		}
		if i > start && depth == 0 && p.breaksBefore(i) {
			return i
		}
		switch {
		case isOpen(t):
			depth++
		case isClose(t) && depth > 0:
			depth--
		}
		i++
		if depth == 0 && t.isPunct(";") {
			return i
		}
	}
}

func (p *parser) captureRawExpr(start int) int {
	depth := 0
	i := start
	for {
		t := p.toks[i]
		if t.typ == tokEOF {
			return i
		}
		if depth == 0 {
			if t.isPunct(",") || t.isPunct(";") || isClose(t) {
				return i
			}
			if i > start && p.depth == 0 && p.breaksBefore(i) {
				return i
			}
		}
		switch {
		case isOpen(t):
			depth++
		case isClose(t):
			depth--
		}
		i++
	}
}

func (p *parser) parseImport(trivia Trivia) (Node, bool) {
	start := p.pos
	next := p.peekTok(1)
	if next.isPunct("(") || next.isPunct(".") {
		// dynamic import or import.meta
		return nil, false
	}
	p.pos++

	decl := &ImportDecl{Trivia: trivia}

	if t := p.cur(); t.is(tokIdent, "type") {
		next := p.peekTok(1)
		if !next.is(tokIdent, "from") && !next.isPunct(",") && !next.isPunct("=") {
			decl.TypeOnly = true
			p.pos++
		}
	}

	var ok bool
	switch {
	case p.cur().typ == tokString:
		decl.Module, ok = p.stringLit()
	case p.cur().typ == tokIdent && p.peekTok(1).isPunct("="):
		ok = p.parseImportEquals(decl)
	default:
		ok = p.parseImportClause(decl)
	}
	if !ok {
		return nil, false
	}

	trailing, ok := p.endStatement()
	if !ok {
		return nil, false
	}
	decl.TrailingComment = trailing
	decl.SrcRange = p.rangeBetween(start, p.pos)

	return decl, true
}

// parseImportClause parses the bindings of an import up to
// and including the module name
func (p *parser) parseImportClause(decl *ImportDecl) bool {
	t := p.cur()
	if t.typ == tokIdent && !t.is(tokIdent, "from") {
		decl.Default = t.text
		p.pos++
		if p.cur().isPunct(",") {
			p.pos++
		}
	}

	switch {
	case p.cur().isPunct("*"):
		if !p.peekTok(1).is(tokIdent, "as") || p.peekTok(2).typ != tokIdent {
			return false
		}
		decl.Namespace = p.peekTok(2).text
		p.pos += 3
	case p.cur().isPunct("{"):
		if !p.parseImportSpecifiers(decl) {
			return false
		}
		decl.Braces = true
	}

	if !p.cur().is(tokIdent, "from") {
		return false
	}
	p.pos++

	module, ok := p.stringLit()
	if !ok {
		return false
	}
	decl.Module = module
	return true
}

// parseImportEquals parses name = require("module")
func (p *parser) parseImportEquals(decl *ImportDecl) bool {
	if !p.peekTok(2).is(tokIdent, "require") || !p.peekTok(3).isPunct("(") {
		return false
	}
	decl.Default = p.cur().text
	p.pos += 4

	module, ok := p.stringLit()
	if !ok || !p.cur().isPunct(")") {
		return false
	}
	p.pos++

	decl.Equals = true
	decl.Module = module
	return true
}

func (p *parser) parseImportSpecifiers(decl *ImportDecl) bool {
	p.pos++ // {
	specs := make([]*ImportSpecifier, 0)
	for {
		t := p.cur()
		if t.isPunct("}") {
			decl.InnerComments = t.leading
			decl.Specifiers = specs
			p.pos++
			return true
		}
		if t.typ != tokIdent {
			return false
		}

		start := p.pos
		spec := &ImportSpecifier{
			Comments: t.leading,
		}
		if next := p.peekTok(1); t.text == "type" && next.typ == tokIdent && next.text != "as" {
			spec.TypeOnly = true
			p.pos++
		}
		spec.Name = p.cur().text
		p.pos++
		if p.cur().is(tokIdent, "as") {
			if p.peekTok(1).typ != tokIdent {
				return false
			}
			spec.Alias = p.peekTok(1).text
			p.pos += 2
		}
		spec.SrcRange = p.rangeBetween(start, p.pos)

		switch {
		case p.cur().isPunct(","):
			p.pos++
		case p.cur().isPunct("}"):
		default:
			return false
		}
		spec.TrailingComment = p.trailingOf(p.pos - 1)
		specs = append(specs, spec)
	}
}

func (p *parser) stringLit() (*StringLit, bool) {
	t := p.cur()
	if t.typ != tokString || len(t.text) < 2 || t.text[len(t.text)-1] != t.text[0] {
		return nil, false
	}
	p.pos++
	return &StringLit{
		Value:    t.text[1 : len(t.text)-1],
		Quote:    t.text[0],
		SrcRange: p.rangeBetween(p.pos-1, p.pos),
	}, true
}

func (p *parser) parseVarDecl(trivia Trivia, export bool) (Node, bool) {
	start := p.pos
	if export {
		p.pos++
	}
	decl := &VarDecl{
		Trivia:  trivia,
		Export:  export,
		Keyword: p.cur().text,
	}
	p.pos++

	name := p.cur()
	if name.typ != tokIdent {
		return nil, false
	}
	decl.Name = name.text
	p.pos++

	if p.cur().isPunct(":") {
		p.pos++
		typeStart := p.pos
		depth := 0
		for {
			t := p.cur()
			if t.typ == tokEOF {
				return nil, false
			}
			if depth == 0 && (t.isPunct("=") || t.isPunct(";") || (p.pos > typeStart && p.breaksBefore(p.pos))) {
				break
			}
			switch {
			case isOpen(t) || t.isPunct("<"):
				depth++
			case isClose(t) || t.isPunct(">"):
				depth--
			case t.isPunct(">>"):
				depth -= 2
			case t.isPunct(">>>"):
				depth -= 3
			}
			p.pos++
		}
		if p.pos == typeStart {
			return nil, false
		}
		decl.Type = p.text(typeStart, p.pos)
	}

	if p.cur().isPunct("=") {
		p.pos++
		init, ok := p.parseExpr()
		if !ok {
			return nil, false
		}
		decl.Init = init
	}

	trailing, ok := p.endStatement()
	if !ok {
		return nil, false
	}
	decl.TrailingComment = trailing
	decl.SrcRange = p.rangeBetween(start, p.pos)

	return decl, true
}

func (p *parser) parseExportDefault(trivia Trivia) (Node, bool) {
	start := p.pos
	p.pos += 2

	value, ok := p.parseExpr()
	if !ok {
		return nil, false
	}
	if _, raw := value.(*RawExpr); raw {
		return nil, false
	}

	trailing, ok := p.endStatement()
	if !ok {
		return nil, false
	}
	trivia.TrailingComment = trailing

	return &ExportDefault{
		Trivia:   trivia,
		Value:    value,
		SrcRange: p.rangeBetween(start, p.pos),
	}, true
}

func (p *parser) parseExprStmt(trivia Trivia) (Node, bool) {
	start := p.pos

	x, ok := p.parseExpr()
	if !ok {
		return nil, false
	}
	if _, raw := x.(*RawExpr); raw {
		return nil, false
	}

	trailing, ok := p.endStatement()
	if !ok {
		return nil, false
	}
	trivia.TrailingComment = trailing

	return &ExprStmt{
		Trivia:   trivia,
		X:        x,
		SrcRange: p.rangeBetween(start, p.pos),
	}, true
}

// parseExpr parses a structured operand or, failing that,
// captures the expression verbatim
func (p *parser) parseExpr() (Node, bool) {
	start := p.pos
	depth := p.depth

	n, ok := p.parseOperand()
	if ok && p.atExprEnd() {
		return n, true
	}

	p.pos = start
	p.depth = depth
	end := p.captureRawExpr(start)
	if end == start {
		return nil, false
	}
	p.pos = end

	return &RawExpr{
		Text:     p.text(start, end),
		SrcRange: p.rangeBetween(start, end),
	}, true
}

func (p *parser) atExprEnd() bool {
	t := p.cur()
	if t.typ == tokEOF {
		return true
	}
	if t.isPunct(",") || t.isPunct(";") || isClose(t) {
		return true
	}
	return p.depth == 0 && p.breaksBefore(p.pos)
}

func (p *parser) parseOperand() (Node, bool) {
	start := p.pos
	t := p.cur()

	var n Node
	switch {
	case t.isPunct("{"):
		obj, ok := p.parseObject()
		if !ok {
			return nil, false
		}
		n = obj
	case t.isPunct("["):
		elems, ok := p.parseList("[", "]")
		if !ok {
			return nil, false
		}
		n = &ArrayLit{
			Elems:    elems,
			SrcRange: p.rangeBetween(start, p.pos),
		}
	case t.typ == tokString:
		s, ok := p.stringLit()
		if !ok {
			return nil, false
		}
		n = s
	case t.typ == tokNumber:
		p.pos++
		n = &NumberLit{
			Text:     t.text,
			SrcRange: p.rangeBetween(start, p.pos),
		}
	case t.typ == tokTemplate:
		p.pos++
		n = &RawExpr{
			Text:     t.text,
			SrcRange: p.rangeBetween(start, p.pos),
		}
	case t.typ == tokIdent && !operandKeywords[t.text]:
		p.pos++
		n = &Ident{
			Name:     t.text,
			SrcRange: p.rangeBetween(start, p.pos),
		}
	default:
		return nil, false
	}

	for {
		switch {
		case p.cur().isPunct(".") && p.peekTok(1).typ == tokIdent:
			name := p.peekTok(1).text
			p.pos += 2
			n = &MemberExpr{
				X:        n,
				Name:     name,
				SrcRange: p.rangeBetween(start, p.pos),
			}
		case p.cur().isPunct("(") && !p.cur().nlBefore:
			args, ok := p.parseList("(", ")")
			if !ok {
				return nil, false
			}
			n = &CallExpr{
				Callee:   n,
				Args:     args,
				SrcRange: p.rangeBetween(start, p.pos),
			}
		default:
			return n, true
		}
	}
}

func (p *parser) parseList(open, close string) ([]Node, bool) {
	if !p.cur().isPunct(open) {
		return nil, false
	}
	p.pos++
	p.depth++
	defer func() { p.depth-- }()

	elems := make([]Node, 0)
	for {
		if p.cur().isPunct(close) {
			p.pos++
			return elems, true
		}
		if p.cur().typ == tokEOF {
			return nil, false
		}

		elem, ok := p.parseExpr()
		if !ok {
			return nil, false
		}
		elems = append(elems, elem)

		switch {
		case p.cur().isPunct(","):
			p.pos++
		case p.cur().isPunct(close):
		default:
			return nil, false
		}
	}
}

func (p *parser) parseObject() (*ObjectLit, bool) {
	start := p.pos
	p.pos++
	p.depth++
	defer func() { p.depth-- }()

	obj := &ObjectLit{
		Props: make([]*Property, 0),
	}
	for {
		t := p.cur()
		if t.isPunct("}") {
			obj.InnerComments = t.leading
			p.pos++
			obj.SrcRange = p.rangeBetween(start, p.pos)
			return obj, true
		}
		if t.typ == tokEOF {
			return nil, false
		}

		prop, ok := p.parseProperty()
		if !ok {
			return nil, false
		}

		switch {
		case p.cur().isPunct(","):
			p.pos++
		case p.cur().isPunct("}"):
		default:
			return nil, false
		}
		prop.TrailingComment = p.trailingOf(p.pos - 1)
		obj.Props = append(obj.Props, prop)
	}
}

func (p *parser) parseProperty() (*Property, bool) {
	start := p.pos
	t := p.cur()
	next := p.peekTok(1)
	prop := &Property{
		Comments: t.leading,
	}

	switch {
	case (t.typ == tokIdent || t.typ == tokNumber) && next.isPunct(":"):
		prop.Key = t.text
		p.pos += 2
	case t.typ == tokString && next.isPunct(":"):
		key, ok := p.stringLit()
		if !ok {
			return nil, false
		}
		prop.Key = key.Value
		prop.KeyQuote = key.Quote
		p.pos++
	case t.typ == tokIdent && (next.isPunct(",") || next.isPunct("}")):
		p.pos++
		prop.Key = t.text
		prop.Shorthand = true
		prop.Value = &Ident{
			Name:     t.text,
			SrcRange: p.rangeBetween(start, p.pos),
		}
	default:
		// spread elements, methods, computed keys
		end := p.captureRawExpr(start)
		if end == start {
			return nil, false
		}
		p.pos = end
		prop.Value = &RawExpr{
			Text:     p.text(start, end),
			SrcRange: p.rangeBetween(start, end),
		}
	}

	if prop.Value == nil {
		value, ok := p.parseExpr()
		if !ok {
			return nil, false
		}
		prop.Value = value
	}
	prop.SrcRange = p.rangeBetween(start, p.pos)

	return prop, true
}
