// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

package syntax

import (
	"github.com/hashicorp/hcl/v2"
)

// Node is a single node of a parsed source file.
//
// Nodes are treated as immutable once parsed; edits produce new nodes
// via Rewrite. A node created outside of the parser has a zero range,
// see IsSynthesized.
type Node interface {
	Kind() Kind
	Range() hcl.Range
	Children() []Node

	// withChildren returns a copy of the node with its children
	// replaced, in the order returned by Children
	withChildren(children []Node) Node
}

// IsSynthesized reports whether n carries no source position,
// i.e. it was created by an edit rather than by parsing.
func IsSynthesized(n Node) bool {
	return rangeIsNil(n.Range())
}

func rangeIsNil(rng hcl.Range) bool {
	return rng.Start.Line == 0 && rng.End.Line == 0
}

// Trivia holds the formatting-relevant surroundings of a statement.
type Trivia struct {
	// Comments preceding the statement, verbatim
	Comments []string
	// TrailingComment follows the statement on the same line
	TrailingComment string
	// BlankBefore is set when the statement was separated
	// from the previous one by an empty line
	BlankBefore bool
}

type File struct {
	Stmts            []Node
	TrailingComments []string
	SrcRange         hcl.Range
}

func (f *File) Kind() Kind       { return KindFile }
func (f *File) Range() hcl.Range { return f.SrcRange }
func (f *File) Children() []Node { return f.Stmts }
func (f *File) withChildren(children []Node) Node {
	nf := *f
	nf.Stmts = children
	return &nf
}

// Imports returns the import declarations of the file in source order.
func (f *File) Imports() []*ImportDecl {
	decls := make([]*ImportDecl, 0)
	for _, stmt := range f.Stmts {
		if decl, ok := stmt.(*ImportDecl); ok {
			decls = append(decls, decl)
		}
	}
	return decls
}

// ImportDecl represents
//
//	import Default, * as Namespace from "module"
//	import Default, { a, b as c } from "module"
//	import type { T } from "module"
//	import Default = require("module")
//	import "module"
type ImportDecl struct {
	Trivia
	Default    string
	Namespace  string
	Specifiers []*ImportSpecifier
	// Braces is set when the declaration has a named import list,
	// which may be empty
	Braces bool
	// InnerComments precede the closing brace of the named import list
	InnerComments []string
	// TypeOnly marks "import type" declarations
	TypeOnly bool
	// Equals marks "import Default = require(Module)"
	Equals   bool
	Module   *StringLit
	SrcRange hcl.Range
}

func (d *ImportDecl) Kind() Kind       { return KindImportDecl }
func (d *ImportDecl) Range() hcl.Range { return d.SrcRange }
func (d *ImportDecl) Children() []Node {
	children := make([]Node, 0, len(d.Specifiers)+1)
	for _, s := range d.Specifiers {
		children = append(children, s)
	}
	return append(children, d.Module)
}
func (d *ImportDecl) withChildren(children []Node) Node {
	nd := *d
	nd.Specifiers = make([]*ImportSpecifier, 0, len(d.Specifiers))
	for i, orig := range d.Specifiers {
		if s, ok := children[i].(*ImportSpecifier); ok {
			nd.Specifiers = append(nd.Specifiers, s)
			continue
		}
		nd.Specifiers = append(nd.Specifiers, orig)
	}
	if m, ok := children[len(children)-1].(*StringLit); ok {
		nd.Module = m
	}
	return &nd
}

// ModuleName returns the unquoted module path.
func (d *ImportDecl) ModuleName() string {
	if d.Module == nil {
		return ""
	}
	return d.Module.Unquoted()
}

type ImportSpecifier struct {
	Comments        []string
	TrailingComment string

	Name  string
	Alias string
	// TypeOnly marks "{ type Name }" specifiers
	TypeOnly bool
	SrcRange hcl.Range
}

func (s *ImportSpecifier) Kind() Kind                 { return KindImportSpecifier }
func (s *ImportSpecifier) Range() hcl.Range           { return s.SrcRange }
func (s *ImportSpecifier) Children() []Node           { return nil }
func (s *ImportSpecifier) withChildren(_ []Node) Node { return s }

// LocalName returns the name the specifier binds in the file.
func (s *ImportSpecifier) LocalName() string {
	if s.Alias != "" {
		return s.Alias
	}
	return s.Name
}

// VarDecl is a single-binding declaration such as
// export const name: Type = init
type VarDecl struct {
	Trivia
	Export  bool
	Keyword string
	Name    string
	// Type holds a type annotation verbatim, if any
	Type     string
	Init     Node
	SrcRange hcl.Range
}

func (d *VarDecl) Kind() Kind       { return KindVarDecl }
func (d *VarDecl) Range() hcl.Range { return d.SrcRange }
func (d *VarDecl) Children() []Node {
	if d.Init == nil {
		return nil
	}
	return []Node{d.Init}
}
func (d *VarDecl) withChildren(children []Node) Node {
	nd := *d
	if len(children) > 0 {
		nd.Init = children[0]
	}
	return &nd
}

type ExportDefault struct {
	Trivia
	Value    Node
	SrcRange hcl.Range
}

func (d *ExportDefault) Kind() Kind       { return KindExportDefault }
func (d *ExportDefault) Range() hcl.Range { return d.SrcRange }
func (d *ExportDefault) Children() []Node { return []Node{d.Value} }
func (d *ExportDefault) withChildren(children []Node) Node {
	nd := *d
	nd.Value = children[0]
	return &nd
}

type ExprStmt struct {
	Trivia
	X        Node
	SrcRange hcl.Range
}

func (s *ExprStmt) Kind() Kind       { return KindExprStmt }
func (s *ExprStmt) Range() hcl.Range { return s.SrcRange }
func (s *ExprStmt) Children() []Node { return []Node{s.X} }
func (s *ExprStmt) withChildren(children []Node) Node {
	ns := *s
	ns.X = children[0]
	return &ns
}

// RawStmt is a statement kept verbatim, including its terminator.
type RawStmt struct {
	Trivia
	Text     string
	SrcRange hcl.Range
}

func (s *RawStmt) Kind() Kind                 { return KindRawStmt }
func (s *RawStmt) Range() hcl.Range           { return s.SrcRange }
func (s *RawStmt) Children() []Node           { return nil }
func (s *RawStmt) withChildren(_ []Node) Node { return s }

type ObjectLit struct {
	Props []*Property
	// InnerComments precede the closing brace
	InnerComments []string
	SrcRange      hcl.Range
}

func (o *ObjectLit) Kind() Kind       { return KindObjectLit }
func (o *ObjectLit) Range() hcl.Range { return o.SrcRange }
func (o *ObjectLit) Children() []Node {
	children := make([]Node, len(o.Props))
	for i, p := range o.Props {
		children[i] = p
	}
	return children
}
func (o *ObjectLit) withChildren(children []Node) Node {
	no := *o
	no.Props = make([]*Property, len(o.Props))
	for i, orig := range o.Props {
		if p, ok := children[i].(*Property); ok {
			no.Props[i] = p
			continue
		}
		no.Props[i] = orig
	}
	return &no
}

// Property is a member of an object literal.
//
// A property with an empty Key is kept verbatim through its Value
// (spread elements, methods, computed keys).
type Property struct {
	Comments        []string
	TrailingComment string

	Key      string
	KeyQuote byte
	Value    Node
	// Shorthand is set for { name } members; Value is then
	// an identifier of the same name
	Shorthand bool
	SrcRange  hcl.Range
}

func (p *Property) Kind() Kind       { return KindProperty }
func (p *Property) Range() hcl.Range { return p.SrcRange }
func (p *Property) Children() []Node {
	if p.Value == nil {
		return nil
	}
	return []Node{p.Value}
}
func (p *Property) withChildren(children []Node) Node {
	np := *p
	if len(children) > 0 {
		np.Value = children[0]
	}
	return &np
}

type ArrayLit struct {
	Elems    []Node
	SrcRange hcl.Range
}

func (a *ArrayLit) Kind() Kind       { return KindArrayLit }
func (a *ArrayLit) Range() hcl.Range { return a.SrcRange }
func (a *ArrayLit) Children() []Node { return a.Elems }
func (a *ArrayLit) withChildren(children []Node) Node {
	na := *a
	na.Elems = children
	return &na
}

type Ident struct {
	Name     string
	SrcRange hcl.Range
}

func (i *Ident) Kind() Kind                 { return KindIdent }
func (i *Ident) Range() hcl.Range           { return i.SrcRange }
func (i *Ident) Children() []Node           { return nil }
func (i *Ident) withChildren(_ []Node) Node { return i }

// StringLit is a quoted string. Value holds the text between
// the quotes with escape sequences left intact.
type StringLit struct {
	Value    string
	Quote    byte
	SrcRange hcl.Range
}

func (s *StringLit) Kind() Kind                 { return KindStringLit }
func (s *StringLit) Range() hcl.Range           { return s.SrcRange }
func (s *StringLit) Children() []Node           { return nil }
func (s *StringLit) withChildren(_ []Node) Node { return s }

func (s *StringLit) Unquoted() string {
	return unescape(s.Value)
}

type NumberLit struct {
	Text     string
	SrcRange hcl.Range
}

func (n *NumberLit) Kind() Kind                 { return KindNumberLit }
func (n *NumberLit) Range() hcl.Range           { return n.SrcRange }
func (n *NumberLit) Children() []Node           { return nil }
func (n *NumberLit) withChildren(_ []Node) Node { return n }

type CallExpr struct {
	Callee   Node
	Args     []Node
	SrcRange hcl.Range
}

func (c *CallExpr) Kind() Kind       { return KindCallExpr }
func (c *CallExpr) Range() hcl.Range { return c.SrcRange }
func (c *CallExpr) Children() []Node {
	return append([]Node{c.Callee}, c.Args...)
}
func (c *CallExpr) withChildren(children []Node) Node {
	nc := *c
	nc.Callee = children[0]
	nc.Args = children[1:]
	return &nc
}

type MemberExpr struct {
	X        Node
	Name     string
	SrcRange hcl.Range
}

func (m *MemberExpr) Kind() Kind       { return KindMemberExpr }
func (m *MemberExpr) Range() hcl.Range { return m.SrcRange }
func (m *MemberExpr) Children() []Node { return []Node{m.X} }
func (m *MemberExpr) withChildren(children []Node) Node {
	nm := *m
	nm.X = children[0]
	return &nm
}

// RawExpr is an expression kept verbatim.
type RawExpr struct {
	Text     string
	SrcRange hcl.Range
}

func (r *RawExpr) Kind() Kind                 { return KindRawExpr }
func (r *RawExpr) Range() hcl.Range           { return r.SrcRange }
func (r *RawExpr) Children() []Node           { return nil }
func (r *RawExpr) withChildren(_ []Node) Node { return r }

// CalleeName returns the dotted name of an identifier or member chain,
// or an empty string for any other node.
func CalleeName(n Node) string {
	switch v := n.(type) {
	case *Ident:
		return v.Name
	case *MemberExpr:
		x := CalleeName(v.X)
		if x == "" {
			return ""
		}
		return x + "." + v.Name
	}
	return ""
}
