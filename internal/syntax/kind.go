// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

package syntax

//go:generate go run golang.org/x/tools/cmd/stringer -type=Kind -output=kind_string.go
type Kind uint

const (
	KindFile Kind = iota
	KindImportDecl
	KindImportSpecifier
	KindVarDecl
	KindExportDefault
	KindExprStmt
	KindRawStmt
	KindObjectLit
	KindProperty
	KindArrayLit
	KindIdent
	KindStringLit
	KindNumberLit
	KindCallExpr
	KindMemberExpr
	KindRawExpr
)
