// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

package filesystem

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/hashicorp/go-multierror"
	"github.com/hashicorp/go-uuid"
	"github.com/hashicorp/stagefs/internal/pathkey"
	"github.com/hashicorp/stagefs/internal/state"
	"github.com/spf13/afero"
)

const (
	defaultDirMode  os.FileMode = 0o755
	defaultFileMode os.FileMode = 0o644
)

// Finalize replays pending changes against the backing root.
// Pending changes are kept when any of them fails.
func (fs *Filesystem) Finalize() error {
	if fs.backing == nil {
		return ErrNoBackingStore
	}

	changes, err := fs.state.Changes.List()
	if err != nil {
		return err
	}

	var result *multierror.Error
	for _, ch := range changes {
		if err := fs.replay(ch); err != nil {
			result = multierror.Append(result, fmt.Errorf("%s %s: %w", ch.State, ch.Path, err))
		}
	}
	if err := result.ErrorOrNil(); err != nil {
		return &CommitError{Root: fs.root, Err: err}
	}

	fs.logger.Printf("FS: committed %d changes to %s", len(changes), fs.root)
	return fs.state.Changes.Clear()
}

func (fs *Filesystem) replay(ch *state.Change) error {
	target := fs.backingPath(ch.Path)

	switch ch.State {
	case state.ChangeNew, state.ChangeModified:
		if ch.IsDir {
			return fs.backing.MkdirAll(target, defaultDirMode)
		}
		f := fs.tree.FindFile(ch.Path)
		if f == nil {
			// removed along with its directory
			fs.logger.Printf("FS: %s no longer exists, skipping", ch.Path)
			return nil
		}
		return writeFileAtomic(fs.backing, target, f.content)

	case state.ChangeDeleted:
		exists, err := afero.Exists(fs.backing, target)
		if err != nil {
			return err
		}
		if !exists {
			return nil
		}
		if ch.IsDir {
			return fs.backing.RemoveAll(target)
		}
		return fs.backing.Remove(target)
	}

	return fmt.Errorf("unknown change state: %s", ch.State)
}

// writeFileAtomic writes data next to path and renames it into place.
func writeFileAtomic(afs afero.Fs, path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := afs.MkdirAll(dir, defaultDirMode); err != nil {
		return err
	}

	mode := defaultFileMode
	if fi, err := afs.Stat(path); err == nil {
		mode = fi.Mode().Perm()
	}

	id, err := uuid.GenerateUUID()
	if err != nil {
		return err
	}
	tmp := filepath.Join(dir, fmt.Sprintf(".%s.%s.tmp", filepath.Base(path), id))

	if err := afero.WriteFile(afs, tmp, data, mode); err != nil {
		afs.Remove(tmp)
		return err
	}
	if err := afs.Rename(tmp, path); err != nil {
		afs.Remove(tmp)
		return err
	}
	return nil
}

// FinalizeTo writes the whole tree below dest, regardless of
// pending changes. An in-memory filesystem writes to the OS filesystem.
func (fs *Filesystem) FinalizeTo(dest string) error {
	dst := fs.backing
	if dst == nil {
		dst = afero.NewOsFs()
	}
	return fs.Dump(dst, dest)
}

// Dump mirrors every directory and file of the tree below root on dst.
func (fs *Filesystem) Dump(dst afero.Fs, root string) error {
	var result *multierror.Error

	err := fs.tree.Walk(func(d *Directory) error {
		dirPath := filepath.Join(root, filepath.FromSlash(relPath(d.Path())))
		if err := dst.MkdirAll(dirPath, defaultDirMode); err != nil {
			result = multierror.Append(result, err)
			return nil
		}
		for _, f := range d.files {
			target := filepath.Join(dirPath, f.name)
			if err := writeFileAtomic(dst, target, f.content); err != nil {
				result = multierror.Append(result, fmt.Errorf("%s: %w", f.Path(), err))
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	if err := result.ErrorOrNil(); err != nil {
		return &CommitError{Root: root, Err: err}
	}
	fs.logger.Printf("FS: dumped tree to %s", root)
	return nil
}

func relPath(p string) string {
	rel := pathkey.Normalize(p)
	if len(rel) > 0 && rel[0] == '/' {
		return rel[1:]
	}
	return rel
}
