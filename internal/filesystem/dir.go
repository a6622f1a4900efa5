// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

package filesystem

import (
	"strconv"
	"strings"

	"github.com/hashicorp/stagefs/internal/pathkey"
)

// Directory is a node of the virtual tree. Children are kept
// in insertion order.
type Directory struct {
	name   string
	parent *Directory
	dirs   []*Directory
	files  []*File
}

func newRootDirectory() *Directory {
	return &Directory{}
}

func (d *Directory) Name() string {
	return d.name
}

// Parent returns nil for the root.
func (d *Directory) Parent() *Directory {
	return d.parent
}

// Path is derived from the parent chain, the root being "/".
func (d *Directory) Path() string {
	if d.parent == nil {
		return pathkey.Separator
	}
	return pathkey.Join(d.parent.Path(), d.name)
}

func (d *Directory) Dirs() []*Directory {
	dirs := make([]*Directory, len(d.dirs))
	copy(dirs, d.dirs)
	return dirs
}

func (d *Directory) Files() []*File {
	files := make([]*File, len(d.files))
	copy(files, d.files)
	return files
}

func (d *Directory) IsEmpty() bool {
	return len(d.dirs) == 0 && len(d.files) == 0
}

func (d *Directory) dir(name string) *Directory {
	for _, sub := range d.dirs {
		if sub.name == name {
			return sub
		}
	}
	return nil
}

func (d *Directory) file(name string) *File {
	for _, f := range d.files {
		if f.name == name {
			return f
		}
	}
	return nil
}

// segments resolves path below the receiving directory, leading ".."
// segments cannot leave it.
func segments(path string) []string {
	return pathkey.Split(pathkey.Join(pathkey.Separator, path))
}

// FindSubDirectory resolves path relative to d, absolute paths
// included. An empty path resolves to d itself.
func (d *Directory) FindSubDirectory(path string) *Directory {
	current := d
	for _, seg := range segments(path) {
		current = current.dir(seg)
		if current == nil {
			return nil
		}
	}
	return current
}

func (d *Directory) FindFile(path string) *File {
	dir := d.FindSubDirectory(pathkey.Dir(path))
	if dir == nil {
		return nil
	}
	name := pathkey.Base(path)
	if name == "" {
		return nil
	}
	return dir.file(name)
}

// AddSubDirectory returns the directory at path, creating
// any missing segments. It returns nil when a file occupies
// one of the segments.
func (d *Directory) AddSubDirectory(path string) *Directory {
	dir, _, err := d.addSubDirectory(path)
	if err != nil {
		return nil
	}
	return dir
}

// addSubDirectory also returns the directories it created, outermost first.
// Nothing is created when a segment is taken by a file.
func (d *Directory) addSubDirectory(path string) (*Directory, []*Directory, error) {
	created := make([]*Directory, 0)
	current := d
	for _, seg := range segments(path) {
		next := current.dir(seg)
		if next == nil {
			// segments below a new directory cannot conflict
			if f := current.file(seg); f != nil {
				return nil, created, &EntryConflictError{Path: f.Path()}
			}
			next = &Directory{name: seg, parent: current}
			current.dirs = append(current.dirs, next)
			created = append(created, next)
		}
		current = next
	}
	return current, created, nil
}

// AddFile stores content at path, creating parent directories as needed.
// An existing file at path keeps its identity and gets the new content.
func (d *Directory) AddFile(path string, content []byte) (*File, error) {
	f, _, _, err := d.addFile(path, content)
	return f, err
}

func (d *Directory) addFile(path string, content []byte) (f *File, existed bool, created []*Directory, err error) {
	name := pathkey.Base(path)
	if name == "" {
		return nil, false, nil, ErrNameRequired
	}

	dir, created, err := d.addSubDirectory(pathkey.Dir(path))
	if err != nil {
		return nil, false, nil, err
	}
	if sub := dir.dir(name); sub != nil {
		return nil, false, created, &EntryConflictError{Path: sub.Path()}
	}
	if f := dir.file(name); f != nil {
		f.setContent(content)
		return f, true, created, nil
	}

	f = &File{name: name, dir: dir}
	f.setContent(content)
	dir.files = append(dir.files, f)
	return f, false, created, nil
}

// RemoveSubDirectory detaches the directory at path. A non-empty
// directory is only removed with force. The receiver itself
// cannot be removed.
func (d *Directory) RemoveSubDirectory(path string, force bool) bool {
	target := d.FindSubDirectory(path)
	if target == nil || target == d {
		return false
	}
	if !target.IsEmpty() && !force {
		return false
	}

	target.parent.detachDir(target)
	return true
}

func (d *Directory) RemoveFile(path string) bool {
	f := d.FindFile(path)
	if f == nil {
		return false
	}
	f.dir.detachFile(f)
	return true
}

func (d *Directory) detachDir(sub *Directory) {
	for i, s := range d.dirs {
		if s == sub {
			d.dirs = append(d.dirs[:i], d.dirs[i+1:]...)
			sub.parent = nil
			return
		}
	}
}

func (d *Directory) detachFile(f *File) {
	for i, cf := range d.files {
		if cf == f {
			d.files = append(d.files[:i], d.files[i+1:]...)
			return
		}
	}
}

// MoveFile moves f into target under newName, or under its current
// name if newName is empty. A file already present under the resulting
// name is replaced. It returns nil when newName is not a plain file name
// or names a directory in target.
func (d *Directory) MoveFile(f *File, target *Directory, newName string) *File {
	if f == nil || target == nil || !validLeafName(newName) {
		return nil
	}

	name := newName
	if name == "" {
		name = f.name
	}
	if target == f.dir && name == f.name {
		return f
	}
	if target.dir(name) != nil {
		return nil
	}

	if existing := target.file(name); existing != nil {
		target.detachFile(existing)
	}

	f.dir.detachFile(f)
	f.name = name
	f.dir = target
	target.files = append(target.files, f)

	return f
}

// CopyFile copies f into target under newName, or under the name of f
// if newName is empty. Existing files are never replaced, colliding
// names are disambiguated as name(1).ext, name(2).ext and so on.
// It returns nil when newName is not a plain file name.
func (d *Directory) CopyFile(f *File, target *Directory, newName string) *File {
	if f == nil || target == nil || !validLeafName(newName) {
		return nil
	}

	name := newName
	if name == "" {
		name = f.name
	}
	name = target.uniqueFileName(name)

	nf := &File{name: name, dir: target}
	nf.setContent(f.content)
	target.files = append(target.files, nf)

	return nf
}

// validLeafName reports whether name is empty or a single path segment.
func validLeafName(name string) bool {
	return name == "" || pathkey.Base(name) == name
}

func (d *Directory) isFree(name string) bool {
	return d.file(name) == nil && d.dir(name) == nil
}

func (d *Directory) uniqueFileName(name string) string {
	if d.isFree(name) {
		return name
	}

	ext := pathkey.Ext(name)
	stem := trimCounter(strings.TrimSuffix(name, ext))
	for n := 1; ; n++ {
		candidate := stem + "(" + strconv.Itoa(n) + ")" + ext
		if d.isFree(candidate) {
			return candidate
		}
	}
}

// trimCounter strips a trailing "(n)"
func trimCounter(stem string) string {
	if !strings.HasSuffix(stem, ")") {
		return stem
	}
	open := strings.LastIndexByte(stem, '(')
	if open < 0 {
		return stem
	}
	digits := stem[open+1 : len(stem)-1]
	if digits == "" {
		return stem
	}
	for _, r := range digits {
		if r < '0' || r > '9' {
			return stem
		}
	}
	return stem[:open]
}

// FindFiles returns all files named name in the subtree of d,
// in pre-order.
func (d *Directory) FindFiles(name string) []*File {
	found := make([]*File, 0)
	d.Walk(func(dir *Directory) error {
		if f := dir.file(name); f != nil {
			found = append(found, f)
		}
		return nil
	})
	return found
}

type WalkFunc func(dir *Directory) error

// Walk calls fn for d and every directory below it in pre-order,
// stopping at the first error.
func (d *Directory) Walk(fn WalkFunc) error {
	if err := fn(d); err != nil {
		return err
	}
	for _, sub := range d.Dirs() {
		if err := sub.Walk(fn); err != nil {
			return err
		}
	}
	return nil
}
