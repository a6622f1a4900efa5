// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

package filesystem

import (
	"errors"
	"fmt"
)

var (
	ErrNameRequired   = errors.New("file name must be provided")
	ErrNoBackingStore = errors.New("filesystem has no backing store")
)

type FileNotFoundError struct {
	Path string
}

func (e *FileNotFoundError) Error() string {
	return fmt.Sprintf("%s: file not found", e.Path)
}

func (e *FileNotFoundError) Is(err error) bool {
	_, ok := err.(*FileNotFoundError)
	return ok
}

func IsFileNotFound(err error) bool {
	return errors.Is(err, &FileNotFoundError{})
}

// EntryConflictError is returned when a file is to be created where
// a directory of the same name exists, or the other way around.
type EntryConflictError struct {
	Path string
}

func (e *EntryConflictError) Error() string {
	return fmt.Sprintf("%s: already exists as another kind of entry", e.Path)
}

func (e *EntryConflictError) Is(err error) bool {
	_, ok := err.(*EntryConflictError)
	return ok
}

func IsEntryConflict(err error) bool {
	return errors.Is(err, &EntryConflictError{})
}

// CommitError is returned when changes could not be written
// to the backing store under Root.
type CommitError struct {
	Root string
	Err  error
}

func (e *CommitError) Error() string {
	return fmt.Sprintf("failed to commit changes to %q: %s", e.Root, e.Err)
}

func (e *CommitError) Unwrap() error {
	return e.Err
}
