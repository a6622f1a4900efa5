// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

package editor

import (
	"errors"
	"strings"

	"github.com/hashicorp/stagefs/internal/syntax"
)

type ImportIdentifier struct {
	Name  string
	Alias string
}

// ImportRecord describes a single name bound by an import declaration.
// Namespace imports are recorded with Name "*".
type ImportRecord struct {
	Name   string
	Module string
	Alias  string
	// TypeOnly is set for names imported with "import type"
	TypeOnly bool
}

func (e *Editor) ImportRecords() []ImportRecord {
	return importRecords(e.file.Imports())
}

// AddImportDeclaration makes ids available from module. Identifiers
// already satisfied by existing declarations are skipped, the rest is
// added to an existing declaration of module or to a new declaration
// placed after the last import.
//
// A default import uses the first identifier only, without alias.
//
// The editor is flushed after a change.
func (e *Editor) AddImportDeclaration(ids []ImportIdentifier, module string, isDefault bool) error {
	if module == "" {
		return errors.New("module must be provided")
	}
	for _, id := range ids {
		if id.Name == "" {
			return errors.New("identifier name must be provided")
		}
	}

	add := planImports(e.ImportRecords(), ids, module, isDefault)
	if len(add) == 0 {
		e.logger.Printf("EDITOR: imports from %q already satisfied in %s", module, e.filename)
		return nil
	}

	f := *e.file
	f.Stmts = mergeImports(e.file.Stmts, add, module, isDefault)
	e.file = &f
	e.changed = true
	e.logger.Printf("EDITOR: adding %d import(s) from %q to %s", len(add), module, e.filename)

	return e.Flush()
}

func importRecords(decls []*syntax.ImportDecl) []ImportRecord {
	records := make([]ImportRecord, 0)
	for _, decl := range decls {
		module := decl.ModuleName()
		if decl.Default != "" {
			records = append(records, ImportRecord{Name: decl.Default, Module: module, TypeOnly: decl.TypeOnly})
		}
		if decl.Namespace != "" {
			records = append(records, ImportRecord{Name: "*", Module: module, Alias: decl.Namespace, TypeOnly: decl.TypeOnly})
		}
		for _, s := range decl.Specifiers {
			records = append(records, ImportRecord{
				Name:     s.Name,
				Module:   module,
				Alias:    s.Alias,
				TypeOnly: decl.TypeOnly || s.TypeOnly,
			})
		}
	}
	return records
}

// planImports returns the identifiers of ids which still need
// to be imported from module.
//
// An identifier is skipped when its alias is already bound by another
// import, or when it is imported from module under its own name.
// Plain names imported from other modules do not prevent an import,
// neither do type-only imports from module.
func planImports(records []ImportRecord, ids []ImportIdentifier, module string, isDefault bool) []ImportIdentifier {
	if isDefault {
		if len(ids) == 0 {
			return nil
		}
		ids = []ImportIdentifier{{Name: ids[0].Name}}
	}

	aliases := make(map[string]bool)
	imported := make(map[ImportIdentifier]bool)
	for _, r := range records {
		if r.Alias != "" {
			aliases[r.Alias] = true
		}
		if r.Module == module && !r.TypeOnly {
			imported[ImportIdentifier{Name: r.Name, Alias: r.Alias}] = true
		}
	}

	add := make([]ImportIdentifier, 0, len(ids))
	for _, id := range ids {
		if id.Alias != "" && aliases[id.Alias] {
			continue
		}
		if imported[id] {
			continue
		}
		add = append(add, id)

		imported[id] = true
		if id.Alias != "" {
			aliases[id.Alias] = true
		}
	}
	return add
}

// mergeImports returns a new statement list with add imported
// from module. The given statements are not modified.
// Type-only, require and namespace imports are never extended.
func mergeImports(stmts []syntax.Node, add []ImportIdentifier, module string, isDefault bool) []syntax.Node {
	out := make([]syntax.Node, len(stmts), len(stmts)+1)
	copy(out, stmts)

	lastImport := -1
	var quote byte
	for i, stmt := range stmts {
		if isRawImport(stmt) {
			lastImport = i
			continue
		}
		decl, ok := stmt.(*syntax.ImportDecl)
		if !ok {
			continue
		}
		lastImport = i
		if decl.Module != nil {
			quote = decl.Module.Quote
		}

		if decl.ModuleName() != module || decl.Namespace != "" || decl.TypeOnly || decl.Equals {
			continue
		}
		if isDefault && decl.Default != "" {
			continue
		}

		out[i] = extendImport(decl, add, isDefault)
		return out
	}

	decl := &syntax.ImportDecl{
		Module: syntax.NewQuotedString(module, quote),
	}
	decl = extendImport(decl, add, isDefault)

	idx := lastImport + 1
	out = append(out, nil)
	copy(out[idx+1:], out[idx:])
	out[idx] = decl
	return out
}

// isRawImport reports whether stmt is an import the parser
// kept verbatim, such as import Alias = Namespace.Name
func isRawImport(stmt syntax.Node) bool {
	raw, ok := stmt.(*syntax.RawStmt)
	if !ok || !strings.HasPrefix(raw.Text, "import") {
		return false
	}
	rest := strings.TrimPrefix(raw.Text, "import")
	return rest != "" && (rest[0] == ' ' || rest[0] == '\t' || rest[0] == '{')
}

func extendImport(decl *syntax.ImportDecl, add []ImportIdentifier, isDefault bool) *syntax.ImportDecl {
	nd := *decl
	if isDefault {
		nd.Default = add[0].Name
		return &nd
	}

	nd.Braces = true
	nd.Specifiers = make([]*syntax.ImportSpecifier, 0, len(decl.Specifiers)+len(add))
	nd.Specifiers = append(nd.Specifiers, decl.Specifiers...)
	for _, id := range add {
		nd.Specifiers = append(nd.Specifiers, &syntax.ImportSpecifier{
			Name:  id.Name,
			Alias: id.Alias,
		})
	}
	return &nd
}
