// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

package filesystem

import (
	"github.com/hashicorp/stagefs/internal/pathkey"
)

type File struct {
	name    string
	content []byte
	dir     *Directory
}

func (f *File) Name() string {
	return f.name
}

// Ext returns the extension including the dot.
func (f *File) Ext() string {
	return pathkey.Ext(f.name)
}

func (f *File) Dir() *Directory {
	return f.dir
}

// Path is derived from the current parent chain and therefore
// follows moves.
func (f *File) Path() string {
	return pathkey.Join(f.dir.Path(), f.name)
}

func (f *File) Content() string {
	return string(f.content)
}

// Bytes returns a copy of the content.
func (f *File) Bytes() []byte {
	b := make([]byte, len(f.content))
	copy(b, f.content)
	return b
}

func (f *File) setContent(content []byte) {
	f.content = make([]byte, len(content))
	copy(f.content, content)
}
