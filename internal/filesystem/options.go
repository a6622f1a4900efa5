// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

package filesystem

import (
	"fmt"

	"github.com/bmatcuk/doublestar/v4"
)

type Options struct {
	// IgnoreDirectoryNames are skipped by name at any depth
	// when importing the backing root
	IgnoreDirectoryNames []string

	// IgnorePatterns are doublestar patterns matched against
	// slash-separated paths relative to the backing root
	IgnorePatterns []string

	// Extensions lists the file extensions, including the dot,
	// which take part in Files and Glob
	Extensions []string
}

func DefaultOptions() *Options {
	return &Options{
		IgnoreDirectoryNames: []string{".git", "node_modules"},
		Extensions:           []string{".ts", ".tsx", ".js", ".jsx", ".mjs", ".cjs", ".json"},
	}
}

func (o *Options) Validate() error {
	for _, p := range o.IgnorePatterns {
		if !doublestar.ValidatePattern(p) {
			return fmt.Errorf("invalid ignore pattern: %q", p)
		}
	}
	return nil
}

func (o *Options) isIgnoredDir(name string) bool {
	for _, n := range o.IgnoreDirectoryNames {
		if n == name {
			return true
		}
	}
	return false
}

func (o *Options) isIgnored(relPath string) bool {
	for _, p := range o.IgnorePatterns {
		if ok, _ := doublestar.Match(p, relPath); ok {
			return true
		}
	}
	return false
}

func (o *Options) hasExtension(ext string) bool {
	for _, e := range o.Extensions {
		if e == ext {
			return true
		}
	}
	return false
}
