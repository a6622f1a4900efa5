// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

package syntax

import (
	"fmt"
	"strings"
)

//go:generate mockery --name Printer --structname Printer --filename printer.go --outpkg mock --output ./mock

// Printer turns a File back into source text.
type Printer interface {
	Print(f *File) ([]byte, error)
}

type QuoteStyle byte

const (
	QuotePreserve QuoteStyle = 0
	QuoteSingle   QuoteStyle = '\''
	QuoteDouble   QuoteStyle = '"'
)

type PrintConfig struct {
	Indent         string
	Quote          QuoteStyle
	Semicolons     bool
	TrailingCommas bool
	FinalNewline   bool
}

func DefaultPrintConfig() PrintConfig {
	return PrintConfig{
		Indent:         "  ",
		Quote:          QuotePreserve,
		Semicolons:     true,
		TrailingCommas: true,
		FinalNewline:   true,
	}
}

type sourcePrinter struct {
	cfg PrintConfig
}

// NewPrinter returns a printer producing canonical layout: one statement
// per line, object literals spread over multiple lines and arrays of
// plain values kept inline. Verbatim nodes are printed as they are.
func NewPrinter(cfg PrintConfig) Printer {
	return &sourcePrinter{cfg: cfg}
}

func (sp *sourcePrinter) Print(f *File) ([]byte, error) {
	if f == nil {
		return nil, fmt.Errorf("no file to print")
	}

	w := &printWriter{cfg: sp.cfg}
	for i, stmt := range f.Stmts {
		if err := w.stmt(i, stmt); err != nil {
			return nil, err
		}
	}
	for _, c := range f.TrailingComments {
		w.WriteString(c)
		w.WriteString("\n")
	}

	out := w.String()
	if !sp.cfg.FinalNewline {
		out = strings.TrimRight(out, "\n")
	}
	return []byte(out), nil
}

type printWriter struct {
	strings.Builder
	cfg PrintConfig
}

func (w *printWriter) indent(level int) string {
	return strings.Repeat(w.cfg.Indent, level)
}

func (w *printWriter) semicolon() string {
	if w.cfg.Semicolons {
		return ";"
	}
	return ""
}

func (w *printWriter) trivia(i int, t Trivia) {
	if i > 0 && t.BlankBefore {
		w.WriteString("\n")
	}
	for _, c := range t.Comments {
		w.WriteString(c)
		w.WriteString("\n")
	}
}

func (w *printWriter) endLine(t Trivia) {
	if t.TrailingComment != "" {
		w.WriteString(" ")
		w.WriteString(t.TrailingComment)
	}
	w.WriteString("\n")
}

func (w *printWriter) stmt(i int, stmt Node) error {
	switch s := stmt.(type) {
	case *ImportDecl:
		w.trivia(i, s.Trivia)
		w.WriteString(w.importDecl(s))
		w.WriteString(w.semicolon())
		w.endLine(s.Trivia)
	case *VarDecl:
		w.trivia(i, s.Trivia)
		if s.Export {
			w.WriteString("export ")
		}
		w.WriteString(s.Keyword)
		w.WriteString(" ")
		w.WriteString(s.Name)
		if s.Type != "" {
			w.WriteString(": ")
			w.WriteString(s.Type)
		}
		if s.Init != nil {
			w.WriteString(" = ")
			w.WriteString(w.expr(s.Init, 0))
		}
		w.WriteString(w.semicolon())
		w.endLine(s.Trivia)
	case *ExportDefault:
		w.trivia(i, s.Trivia)
		w.WriteString("export default ")
		w.WriteString(w.expr(s.Value, 0))
		w.WriteString(w.semicolon())
		w.endLine(s.Trivia)
	case *ExprStmt:
		w.trivia(i, s.Trivia)
		w.WriteString(w.expr(s.X, 0))
		w.WriteString(w.semicolon())
		w.endLine(s.Trivia)
	case *RawStmt:
		w.trivia(i, s.Trivia)
		w.WriteString(s.Text)
		w.endLine(s.Trivia)
	default:
		return fmt.Errorf("unexpected statement: %s", stmt.Kind())
	}
	return nil
}

func (w *printWriter) importDecl(d *ImportDecl) string {
	var b strings.Builder
	b.WriteString("import ")
	if d.TypeOnly {
		b.WriteString("type ")
	}

	if d.Equals {
		b.WriteString(d.Default)
		b.WriteString(" = require(")
		b.WriteString(w.str(d.Module))
		b.WriteString(")")
		return b.String()
	}

	parts := make([]string, 0, 2)
	if d.Default != "" {
		parts = append(parts, d.Default)
	}
	if d.Namespace != "" {
		parts = append(parts, "* as "+d.Namespace)
	}
	if d.Braces || len(d.Specifiers) > 0 {
		parts = append(parts, w.importSpecifiers(d))
	}

	if len(parts) > 0 {
		b.WriteString(strings.Join(parts, ", "))
		b.WriteString(" from ")
	}
	b.WriteString(w.str(d.Module))

	return b.String()
}

// importSpecifiers prints the named import list on one line,
// unless comments inside it require one line per specifier.
func (w *printWriter) importSpecifiers(d *ImportDecl) string {
	specs := make([]string, len(d.Specifiers))
	multiline := len(d.InnerComments) > 0
	for i, s := range d.Specifiers {
		specs[i] = s.Name
		if s.TypeOnly {
			specs[i] = "type " + specs[i]
		}
		if s.Alias != "" {
			specs[i] += " as " + s.Alias
		}
		if len(s.Comments) > 0 || s.TrailingComment != "" {
			multiline = true
		}
	}

	if !multiline {
		if len(specs) == 0 {
			return "{}"
		}
		return "{ " + strings.Join(specs, ", ") + " }"
	}

	var b strings.Builder
	b.WriteString("{\n")
	inner := w.indent(1)
	for i, s := range d.Specifiers {
		for _, c := range s.Comments {
			b.WriteString(inner + c + "\n")
		}
		b.WriteString(inner)
		b.WriteString(specs[i])
		if i < len(specs)-1 || w.cfg.TrailingCommas {
			b.WriteString(",")
		}
		if s.TrailingComment != "" {
			b.WriteString(" " + s.TrailingComment)
		}
		b.WriteString("\n")
	}
	for _, c := range d.InnerComments {
		b.WriteString(inner + c + "\n")
	}
	b.WriteString("}")
	return b.String()
}

func (w *printWriter) str(s *StringLit) string {
	if s == nil {
		return `""`
	}
	q := s.Quote
	value := s.Value
	if w.cfg.Quote != QuotePreserve && byte(w.cfg.Quote) != q {
		value = requote(value, q, byte(w.cfg.Quote))
		q = byte(w.cfg.Quote)
	}
	if q == 0 {
		q = '"'
	}
	return string(q) + value + string(q)
}

func (w *printWriter) expr(n Node, level int) string {
	switch e := n.(type) {
	case *ObjectLit:
		return w.object(e, level)
	case *ArrayLit:
		return w.array(e, level)
	case *Ident:
		return e.Name
	case *StringLit:
		return w.str(e)
	case *NumberLit:
		return e.Text
	case *RawExpr:
		return e.Text
	case *MemberExpr:
		return w.expr(e.X, level) + "." + e.Name
	case *CallExpr:
		args := make([]string, len(e.Args))
		for i, a := range e.Args {
			args[i] = w.expr(a, level)
		}
		return w.expr(e.Callee, level) + "(" + strings.Join(args, ", ") + ")"
	case *Property:
		return w.property(e, level)
	case nil:
		return ""
	}
	return ""
}

func (w *printWriter) property(p *Property, level int) string {
	switch {
	case p.Key == "":
		return w.expr(p.Value, level)
	case p.Shorthand:
		return p.Key
	}

	key := p.Key
	if p.KeyQuote != 0 {
		key = w.str(&StringLit{Value: p.Key, Quote: p.KeyQuote})
	}
	return key + ": " + w.expr(p.Value, level)
}

func (w *printWriter) object(o *ObjectLit, level int) string {
	if len(o.Props) == 0 && len(o.InnerComments) == 0 {
		return "{}"
	}

	var b strings.Builder
	b.WriteString("{\n")
	inner := w.indent(level + 1)
	for i, p := range o.Props {
		for _, c := range p.Comments {
			b.WriteString(inner + c + "\n")
		}
		b.WriteString(inner)
		b.WriteString(w.property(p, level+1))
		if i < len(o.Props)-1 || w.cfg.TrailingCommas {
			b.WriteString(",")
		}
		if p.TrailingComment != "" {
			b.WriteString(" " + p.TrailingComment)
		}
		b.WriteString("\n")
	}
	for _, c := range o.InnerComments {
		b.WriteString(inner + c + "\n")
	}
	b.WriteString(w.indent(level))
	b.WriteString("}")
	return b.String()
}

func (w *printWriter) array(a *ArrayLit, level int) string {
	if len(a.Elems) == 0 {
		return "[]"
	}

	elems := make([]string, len(a.Elems))
	inline := true
	for i, e := range a.Elems {
		elems[i] = w.expr(e, level+1)
		if !isInlineValue(e) || strings.Contains(elems[i], "\n") {
			inline = false
		}
	}
	if inline {
		return "[" + strings.Join(elems, ", ") + "]"
	}

	var b strings.Builder
	b.WriteString("[\n")
	inner := w.indent(level + 1)
	for i, e := range elems {
		b.WriteString(inner)
		b.WriteString(e)
		if i < len(elems)-1 || w.cfg.TrailingCommas {
			b.WriteString(",")
		}
		b.WriteString("\n")
	}
	b.WriteString(w.indent(level))
	b.WriteString("]")
	return b.String()
}

func isInlineValue(n Node) bool {
	switch n.(type) {
	case *Ident, *StringLit, *NumberLit, *MemberExpr, *CallExpr, *RawExpr:
		return true
	}
	return false
}
