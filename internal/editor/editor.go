// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

// Package editor applies structural edits to a single source file.
//
// Edits rebuild the tree with synthesized nodes which carry no source
// position. Flush prints the tree and parses it again, so that nodes
// added by earlier edits become regular source nodes. Edits depending
// on nodes added by a previous edit need a Flush in between, unless
// AutoFlush is set.
package editor

import (
	"fmt"
	"io/ioutil"
	"log"

	"github.com/hashicorp/stagefs/internal/syntax"
)

type Editor struct {
	// AutoFlush flushes after every edit which changed the tree
	AutoFlush bool

	filename string
	parser   syntax.Parser
	printer  syntax.Printer
	file     *syntax.File
	logger   *log.Logger

	changed bool
}

var defaultLogger = log.New(ioutil.Discard, "", 0)

func NewEditor(filename string, src []byte, parser syntax.Parser, printer syntax.Printer) (*Editor, error) {
	f, err := parser.Parse(filename, src)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %q: %w", filename, err)
	}

	return &Editor{
		filename: filename,
		parser:   parser,
		printer:  printer,
		file:     f,
		logger:   defaultLogger,
	}, nil
}

func (e *Editor) SetLogger(logger *log.Logger) {
	e.logger = logger
}

// File returns the current tree. It must not be modified.
func (e *Editor) File() *syntax.File {
	return e.file
}

// Changed reports whether any edit changed the tree
// since the editor was created.
func (e *Editor) Changed() bool {
	return e.changed
}

func (e *Editor) Text() ([]byte, error) {
	return e.printer.Print(e.file)
}

// Flush replaces the tree with a fresh parse of its printed text.
// The tree is left untouched on error.
func (e *Editor) Flush() error {
	text, err := e.printer.Print(e.file)
	if err != nil {
		return fmt.Errorf("failed to print %q: %w", e.filename, err)
	}

	f, err := e.parser.Parse(e.filename, text)
	if err != nil {
		return fmt.Errorf("failed to parse printed %q: %w", e.filename, err)
	}

	e.file = f
	return nil
}

// AddMember appends key: value to every object literal matching cond
// which does not hold key yet. It returns the number of literals changed.
func (e *Editor) AddMember(cond syntax.VisitCondition, key string, value syntax.Node) (int, error) {
	return e.edit(syntax.KindObjectLit, cond, func(n syntax.Node) syntax.Node {
		obj := n.(*syntax.ObjectLit)
		if memberIndex(obj, key) >= 0 {
			return nil
		}

		no := *obj
		no.Props = append(obj.Props[:len(obj.Props):len(obj.Props)], syntax.NewProperty(key, value))
		return &no
	})
}

// UpdateMember replaces the value of the first member keyed key
// in every object literal matching cond. Literals without such member
// are left alone, as are members added since the last Flush.
func (e *Editor) UpdateMember(cond syntax.VisitCondition, key string, value syntax.Node) (int, error) {
	return e.edit(syntax.KindObjectLit, cond, func(n syntax.Node) syntax.Node {
		obj := n.(*syntax.ObjectLit)
		idx := memberIndex(obj, key)
		if idx < 0 {
			return nil
		}
		if syntax.IsSynthesized(obj.Props[idx]) {
			e.logger.Printf("EDITOR: skipping unflushed member %q in %s", key, e.filename)
			return nil
		}

		prop := *obj.Props[idx]
		prop.Value = value
		prop.Shorthand = false

		no := *obj
		no.Props = make([]*syntax.Property, len(obj.Props))
		copy(no.Props, obj.Props)
		no.Props[idx] = &prop
		return &no
	})
}

// AddElement appends elem to every array literal matching cond,
// or inserts it in front of the existing elements if prepend is set.
func (e *Editor) AddElement(cond syntax.VisitCondition, elem syntax.Node, prepend bool) (int, error) {
	return e.edit(syntax.KindArrayLit, cond, func(n syntax.Node) syntax.Node {
		arr := n.(*syntax.ArrayLit)

		na := *arr
		na.Elems = make([]syntax.Node, 0, len(arr.Elems)+1)
		if prepend {
			na.Elems = append(na.Elems, elem)
			na.Elems = append(na.Elems, arr.Elems...)
		} else {
			na.Elems = append(na.Elems, arr.Elems...)
			na.Elems = append(na.Elems, elem)
		}
		return &na
	})
}

func (e *Editor) edit(kind syntax.Kind, cond syntax.VisitCondition, update func(syntax.Node) syntax.Node) (int, error) {
	if cond == nil {
		cond = syntax.Any()
	}

	count := 0
	out := syntax.Rewrite(e.file, func(n syntax.Node, ancestors []syntax.Node) syntax.Node {
		if n.Kind() != kind || !cond(n, ancestors) {
			return nil
		}
		r := update(n)
		if r != nil {
			count++
		}
		return r
	})

	if count == 0 {
		return 0, nil
	}

	e.file = out.(*syntax.File)
	e.changed = true
	e.logger.Printf("EDITOR: edited %d %s node(s) in %s", count, kind, e.filename)

	if e.AutoFlush {
		if err := e.Flush(); err != nil {
			return count, err
		}
	}
	return count, nil
}

func memberIndex(obj *syntax.ObjectLit, key string) int {
	for i, p := range obj.Props {
		if p.Key != "" && p.Key == key {
			return i
		}
	}
	return -1
}
