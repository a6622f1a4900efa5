// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

package filesystem

import (
	"io/ioutil"
	"log"
	"path/filepath"
	"sort"
	"strings"

	"github.com/hashicorp/stagefs/internal/format"
	"github.com/hashicorp/stagefs/internal/glob"
	"github.com/hashicorp/stagefs/internal/state"
	"github.com/hashicorp/stagefs/internal/syntax"
	"github.com/spf13/afero"
)

// Filesystem stages a tree of files in memory. Every mutation
// is recorded in the change ledger which Finalize replays
// against the backing root.
//
// Filesystem is not safe for concurrent use.
type Filesystem struct {
	backing afero.Fs
	root    string
	opts    *Options

	tree  *Directory
	state *state.StateStore

	parser     syntax.Parser
	newPrinter format.PrinterFunc

	logger *log.Logger
}

var defaultLogger = log.New(ioutil.Discard, "", 0)

// NewFilesystem imports root of backing into a new virtual tree.
// A nil backing yields an empty in-memory filesystem, as does
// a root which does not exist.
func NewFilesystem(backing afero.Fs, root string, opts *Options) (*Filesystem, error) {
	if opts == nil {
		opts = DefaultOptions()
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	ss, err := state.NewStateStore()
	if err != nil {
		return nil, err
	}

	if backing != nil {
		root = filepath.Clean(root)
	}

	fs := &Filesystem{
		backing:    backing,
		root:       root,
		opts:       opts,
		state:      ss,
		parser:     syntax.NewParser(),
		newPrinter: syntax.NewPrinter,
		logger:     defaultLogger,
	}

	if err := fs.load(); err != nil {
		return nil, err
	}

	return fs, nil
}

func (fs *Filesystem) SetLogger(logger *log.Logger) {
	fs.logger = logger
	fs.state.SetLogger(logger)
}

func (fs *Filesystem) SetParser(p syntax.Parser) {
	fs.parser = p
}

func (fs *Filesystem) SetPrinter(newPrinter format.PrinterFunc) {
	fs.newPrinter = newPrinter
}

func (fs *Filesystem) Root() *Directory {
	return fs.tree
}

// BackingRoot returns the imported root, or an empty string
// for an in-memory filesystem.
func (fs *Filesystem) BackingRoot() string {
	if fs.backing == nil {
		return ""
	}
	return fs.root
}

func (fs *Filesystem) record(path string, cs state.ChangeState, isDir bool) error {
	return fs.state.Changes.Record(path, cs, isDir)
}

func (fs *Filesystem) recordDirs(dirs []*Directory) error {
	for _, d := range dirs {
		if err := fs.record(d.Path(), state.ChangeNew, true); err != nil {
			return err
		}
	}
	return nil
}

// CreateFile stores content at path, replacing the content
// of an existing file.
func (fs *Filesystem) CreateFile(path, content string) (*File, error) {
	f, existed, created, err := fs.tree.addFile(path, []byte(content))
	if err != nil {
		return nil, err
	}

	if err := fs.recordDirs(created); err != nil {
		return nil, err
	}

	cs := state.ChangeNew
	if existed {
		cs = state.ChangeModified
	}
	if err := fs.record(f.Path(), cs, false); err != nil {
		return nil, err
	}

	return f, nil
}

func (fs *Filesystem) WriteFile(path, content string) error {
	_, err := fs.CreateFile(path, content)
	return err
}

func (fs *Filesystem) ReadFile(path string) (string, bool) {
	f := fs.tree.FindFile(path)
	if f == nil {
		return "", false
	}
	return f.Content(), true
}

func (fs *Filesystem) DeleteFile(path string) (bool, error) {
	f := fs.tree.FindFile(path)
	if f == nil {
		return false, nil
	}

	p := f.Path()
	fs.tree.RemoveFile(p)
	return true, fs.record(p, state.ChangeDeleted, false)
}

func (fs *Filesystem) FileExists(path string) bool {
	return fs.tree.FindFile(path) != nil
}

func (fs *Filesystem) DirectoryExists(path string) bool {
	return fs.tree.FindSubDirectory(path) != nil
}

func (fs *Filesystem) FindFile(path string) *File {
	return fs.tree.FindFile(path)
}

func (fs *Filesystem) FindDirectory(path string) *Directory {
	return fs.tree.FindSubDirectory(path)
}

func (fs *Filesystem) AddDirectory(path string) (*Directory, error) {
	dir, created, err := fs.tree.addSubDirectory(path)
	if err != nil {
		return nil, err
	}
	return dir, fs.recordDirs(created)
}

// RemoveDirectory removes the directory at path. A non-empty directory
// is only removed with force, in which case all of its descendants
// are recorded as deleted.
func (fs *Filesystem) RemoveDirectory(path string, force bool) (bool, error) {
	dir := fs.tree.FindSubDirectory(path)
	if dir == nil || dir == fs.tree {
		return false, nil
	}
	if !dir.IsEmpty() && !force {
		return false, nil
	}

	type removed struct {
		path  string
		isDir bool
	}
	entries := make([]removed, 0)
	dir.Walk(func(d *Directory) error {
		entries = append(entries, removed{d.Path(), true})
		for _, f := range d.files {
			entries = append(entries, removed{f.Path(), false})
		}
		return nil
	})

	if !fs.tree.RemoveSubDirectory(dir.Path(), force) {
		return false, nil
	}

	for _, e := range entries {
		if err := fs.record(e.path, state.ChangeDeleted, e.isDir); err != nil {
			return true, err
		}
	}
	return true, nil
}

// MoveFile moves the file at src into targetDir, creating it when
// missing. It returns nil when src does not exist, targetDir is empty,
// newName is not a plain file name or names a directory.
func (fs *Filesystem) MoveFile(src, targetDir, newName string) (*File, error) {
	f := fs.tree.FindFile(src)
	if f == nil || strings.TrimSpace(targetDir) == "" || !validLeafName(newName) {
		return nil, nil
	}

	target, created, err := fs.tree.addSubDirectory(targetDir)
	if err != nil {
		return nil, err
	}
	if err := fs.recordDirs(created); err != nil {
		return nil, err
	}

	oldPath := f.Path()
	moved := fs.tree.MoveFile(f, target, newName)
	if moved == nil {
		return nil, nil
	}
	if moved.Path() == oldPath {
		return moved, nil
	}

	fs.logger.Printf("FS: moved %s to %s", oldPath, moved.Path())
	if err := fs.record(oldPath, state.ChangeDeleted, false); err != nil {
		return nil, err
	}
	if err := fs.record(moved.Path(), state.ChangeNew, false); err != nil {
		return nil, err
	}
	return moved, nil
}

// CopyFile copies the file at src into targetDir, creating it when
// missing. It returns nil when src does not exist, targetDir is empty
// or newName is not a plain file name.
func (fs *Filesystem) CopyFile(src, targetDir, newName string) (*File, error) {
	f := fs.tree.FindFile(src)
	if f == nil || strings.TrimSpace(targetDir) == "" || !validLeafName(newName) {
		return nil, nil
	}

	target, created, err := fs.tree.addSubDirectory(targetDir)
	if err != nil {
		return nil, err
	}
	if err := fs.recordDirs(created); err != nil {
		return nil, err
	}

	copied := fs.tree.CopyFile(f, target, newName)
	fs.logger.Printf("FS: copied %s to %s", f.Path(), copied.Path())

	if err := fs.record(copied.Path(), state.ChangeNew, false); err != nil {
		return nil, err
	}
	return copied, nil
}

func (fs *Filesystem) FindFiles(name string) []*File {
	return fs.tree.FindFiles(name)
}

// Files returns the content of every file with an allowed
// extension, keyed by path.
func (fs *Filesystem) Files() map[string]string {
	files := make(map[string]string)
	fs.tree.Walk(func(d *Directory) error {
		for _, f := range d.files {
			if fs.opts.hasExtension(f.Ext()) {
				files[f.Path()] = f.Content()
			}
		}
		return nil
	})
	return files
}

// Glob returns the paths of Files matching pattern,
// shortest first.
func (fs *Filesystem) Glob(pattern string) ([]string, error) {
	files := fs.Files()
	paths := make([]string, 0, len(files))
	for p := range files {
		paths = append(paths, p)
	}
	sort.Strings(paths)

	return glob.Match(pattern, paths)
}

// Changes returns the pending changes in replay order.
func (fs *Filesystem) Changes() ([]*state.Change, error) {
	return fs.state.Changes.List()
}

// Clear drops pending changes and imports the backing root again,
// discarding all changes made in memory.
func (fs *Filesystem) Clear() error {
	if err := fs.state.Changes.Clear(); err != nil {
		return err
	}
	return fs.load()
}

func (fs *Filesystem) backingPath(path string) string {
	return filepath.Join(fs.root, filepath.FromSlash(relPath(path)))
}
