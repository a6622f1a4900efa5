// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

package state

import (
	"log"
	"sync"

	"github.com/hashicorp/go-memdb"
)

//go:generate go run golang.org/x/tools/cmd/stringer -type=ChangeState -output=change_state_string.go
type ChangeState uint

const (
	ChangeNew ChangeState = iota
	ChangeModified
	ChangeDeleted
)

// Change is the most recent lifecycle event recorded for a path
// since the last commit.
type Change struct {
	Path  string
	State ChangeState
	IsDir bool

	// Seq orders changes by the time they were last recorded
	Seq uint64
}

func (c *Change) Copy() *Change {
	if c == nil {
		return nil
	}
	return &Change{
		Path:  c.Path,
		State: c.State,
		IsDir: c.IsDir,
		Seq:   c.Seq,
	}
}

// ChangeStore is the pending-change ledger. Each path holds at most
// one entry and recording a path again replaces the previous entry.
type ChangeStore struct {
	db        *memdb.MemDB
	tableName string
	logger    *log.Logger

	seqMu   sync.Mutex
	lastSeq uint64
}

func (s *ChangeStore) nextSeq() uint64 {
	s.seqMu.Lock()
	defer s.seqMu.Unlock()
	s.lastSeq++
	return s.lastSeq
}

// Record stores state as the latest event for path.
func (s *ChangeStore) Record(path string, state ChangeState, isDir bool) error {
	txn := s.db.Txn(true)
	defer txn.Abort()

	ch := &Change{
		Path:  path,
		State: state,
		IsDir: isDir,
		Seq:   s.nextSeq(),
	}

	obj, err := txn.First(s.tableName, "id", path)
	if err != nil {
		return err
	}
	if obj != nil {
		prev := obj.(*Change)
		s.logger.Printf("CHANGES: replacing %s (%s) with %s", path, prev.State, state)
		// the seq index is unique, so the old row must go first
		err = txn.Delete(s.tableName, prev)
		if err != nil {
			return err
		}
	} else {
		s.logger.Printf("CHANGES: recording %s as %s", path, state)
	}

	err = txn.Insert(s.tableName, ch)
	if err != nil {
		return err
	}

	txn.Commit()
	return nil
}

func (s *ChangeStore) Get(path string) (*Change, error) {
	txn := s.db.Txn(false)

	obj, err := txn.First(s.tableName, "id", path)
	if err != nil {
		return nil, err
	}
	if obj == nil {
		return nil, &ChangeNotFoundError{Path: path}
	}

	return obj.(*Change).Copy(), nil
}

// List returns all recorded changes in the order they were last recorded.
func (s *ChangeStore) List() ([]*Change, error) {
	txn := s.db.Txn(false)

	it, err := txn.Get(s.tableName, "seq")
	if err != nil {
		return nil, err
	}

	changes := make([]*Change, 0)
	for item := it.Next(); item != nil; item = it.Next() {
		changes = append(changes, item.(*Change).Copy())
	}

	return changes, nil
}

func (s *ChangeStore) Len() (int, error) {
	changes, err := s.List()
	if err != nil {
		return 0, err
	}
	return len(changes), nil
}

// Clear removes every recorded change.
func (s *ChangeStore) Clear() error {
	txn := s.db.Txn(true)
	defer txn.Abort()

	n, err := txn.DeleteAll(s.tableName, "id")
	if err != nil {
		return err
	}
	s.logger.Printf("CHANGES: cleared %d entries", n)

	txn.Commit()
	return nil
}
