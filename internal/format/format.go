// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

// Package format computes the edits needed to bring a source file
// in line with resolved formatting options.
package format

import (
	"strings"

	"github.com/hashicorp/stagefs/internal/document"
	"github.com/hashicorp/stagefs/internal/settings"
	"github.com/hashicorp/stagefs/internal/syntax"
)

// PrinterFunc builds a printer for the given configuration.
type PrinterFunc func(cfg syntax.PrintConfig) syntax.Printer

func PrintConfig(opts *settings.Options) syntax.PrintConfig {
	cfg := syntax.DefaultPrintConfig()
	if opts == nil {
		return cfg
	}

	if opts.UseTabs {
		cfg.Indent = "\t"
	} else {
		cfg.Indent = strings.Repeat(" ", opts.IndentSize)
	}

	switch opts.QuoteStyle {
	case settings.QuoteSingle:
		cfg.Quote = syntax.QuoteSingle
	case settings.QuoteDouble:
		cfg.Quote = syntax.QuoteDouble
	default:
		cfg.Quote = syntax.QuotePreserve
	}

	cfg.Semicolons = opts.Semicolons
	cfg.TrailingCommas = opts.TrailingCommas
	cfg.FinalNewline = opts.InsertFinalNewline

	return cfg
}

// Edits prints file using opts and returns the edits turning
// original into the printed text. A nil newPrinter means
// syntax.NewPrinter.
func Edits(filename string, original []byte, file *syntax.File, opts *settings.Options, newPrinter PrinterFunc) (document.Changes, error) {
	if newPrinter == nil {
		newPrinter = syntax.NewPrinter
	}

	formatted, err := newPrinter(PrintConfig(opts)).Print(file)
	if err != nil {
		return nil, err
	}

	return Diff(filename, original, formatted), nil
}
