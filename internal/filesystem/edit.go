// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

package filesystem

import (
	"bytes"
	"fmt"

	"github.com/hashicorp/stagefs/internal/document"
	"github.com/hashicorp/stagefs/internal/editor"
	"github.com/hashicorp/stagefs/internal/format"
	"github.com/hashicorp/stagefs/internal/settings"
	"github.com/hashicorp/stagefs/internal/syntax"
)

// Parse parses the current content of the file at path.
// The result is not cached.
func (fs *Filesystem) Parse(path string) (*syntax.File, error) {
	f := fs.tree.FindFile(path)
	if f == nil {
		return nil, &FileNotFoundError{Path: path}
	}
	return fs.parser.Parse(f.Path(), f.content)
}

// Settings resolves formatting options from the defaults,
// the project config file in the tree root and overrides.
func (fs *Filesystem) Settings(overrides *settings.Layer) (*settings.Options, error) {
	layers := make([]*settings.Layer, 0, 2)

	if cfg := fs.tree.FindFile(settings.ProjectConfigFile); cfg != nil {
		raw, err := settings.ParseProjectConfig(cfg.Path(), cfg.content)
		if err != nil {
			return nil, err
		}
		decoded, err := settings.DecodeOptions(raw)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", cfg.Path(), err)
		}
		if len(decoded.UnusedKeys) > 0 {
			fs.logger.Printf("FS: unknown keys in %s: %q", cfg.Path(), decoded.UnusedKeys)
		}
		layers = append(layers, decoded.Layer)
	}

	layers = append(layers, overrides)
	return settings.Resolve(layers...)
}

// Format rewrites the file at path according to the resolved settings.
// It reports whether the content changed.
func (fs *Filesystem) Format(path string, overrides *settings.Layer) (bool, error) {
	f := fs.tree.FindFile(path)
	if f == nil {
		return false, &FileNotFoundError{Path: path}
	}

	opts, err := fs.Settings(overrides)
	if err != nil {
		return false, err
	}

	parsed, err := fs.parser.Parse(f.Path(), f.content)
	if err != nil {
		return false, err
	}

	changes, err := format.Edits(f.Path(), f.content, parsed, opts, fs.newPrinter)
	if err != nil {
		return false, err
	}
	if len(changes) == 0 {
		return false, nil
	}

	out, err := document.ApplyChanges(f.content, changes)
	if err != nil {
		return false, err
	}
	if bytes.Equal(out, f.content) {
		return false, nil
	}

	fs.logger.Printf("FS: formatted %s with %d edits", f.Path(), len(changes))
	return true, fs.WriteFile(f.Path(), string(out))
}

// Edit opens an editor on the file at path, printing with
// the resolved settings, and writes its text back after fn
// returns without error. The file is left untouched when
// fn made no edit.
func (fs *Filesystem) Edit(path string, fn func(e *editor.Editor) error) error {
	f := fs.tree.FindFile(path)
	if f == nil {
		return &FileNotFoundError{Path: path}
	}

	opts, err := fs.Settings(nil)
	if err != nil {
		return err
	}

	e, err := editor.NewEditor(f.Path(), f.content, fs.parser, fs.newPrinter(format.PrintConfig(opts)))
	if err != nil {
		return err
	}
	e.SetLogger(fs.logger)

	if err := fn(e); err != nil {
		return err
	}
	if !e.Changed() {
		return nil
	}

	text, err := e.Text()
	if err != nil {
		return err
	}
	if bytes.Equal(text, f.content) {
		return nil
	}
	return fs.WriteFile(f.Path(), string(text))
}
