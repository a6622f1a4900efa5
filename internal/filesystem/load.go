// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

package filesystem

import (
	"os"
	"path/filepath"

	"github.com/spf13/afero"
)

// load replaces the tree with the content of the backing root
func (fs *Filesystem) load() error {
	tree := newRootDirectory()

	if fs.backing == nil {
		fs.tree = tree
		return nil
	}

	exists, err := afero.DirExists(fs.backing, fs.root)
	if err != nil {
		return err
	}
	if !exists {
		fs.logger.Printf("FS: backing root %q does not exist, starting empty", fs.root)
		fs.tree = tree
		return nil
	}

	files := 0
	err = afero.Walk(fs.backing, fs.root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		rel, err := filepath.Rel(fs.root, path)
		if err != nil {
			return err
		}
		if rel == "." {
			return nil
		}
		rel = filepath.ToSlash(rel)

		if info.IsDir() {
			if fs.opts.isIgnoredDir(info.Name()) || fs.opts.isIgnored(rel) {
				fs.logger.Printf("FS: skipping ignored directory %s", rel)
				return filepath.SkipDir
			}
			tree.AddSubDirectory(rel)
			return nil
		}

		if !info.Mode().IsRegular() || fs.opts.isIgnored(rel) {
			return nil
		}

		content, err := afero.ReadFile(fs.backing, path)
		if err != nil {
			return err
		}
		if _, err := tree.AddFile(rel, content); err != nil {
			return err
		}
		files++
		return nil
	})
	if err != nil {
		return err
	}

	fs.logger.Printf("FS: imported %d files from %s", files, fs.root)
	fs.tree = tree
	return nil
}
