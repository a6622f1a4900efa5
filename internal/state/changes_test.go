// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

package state

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

var ignoreSeq = cmpopts.IgnoreFields(Change{}, "Seq")

func TestChangeStore_Record_lastWriteWins(t *testing.T) {
	s, err := NewStateStore()
	if err != nil {
		t.Fatal(err)
	}

	err = s.Changes.Record("/src/a.ts", ChangeNew, false)
	if err != nil {
		t.Fatal(err)
	}
	err = s.Changes.Record("/src/b.ts", ChangeModified, false)
	if err != nil {
		t.Fatal(err)
	}
	err = s.Changes.Record("/src/a.ts", ChangeDeleted, false)
	if err != nil {
		t.Fatal(err)
	}

	changes, err := s.Changes.List()
	if err != nil {
		t.Fatal(err)
	}

	expectedChanges := []*Change{
		{Path: "/src/b.ts", State: ChangeModified},
		{Path: "/src/a.ts", State: ChangeDeleted},
	}
	if diff := cmp.Diff(expectedChanges, changes, ignoreSeq); diff != "" {
		t.Fatalf("unexpected changes: %s", diff)
	}
}

func TestChangeStore_Record_multiplePerState(t *testing.T) {
	s, err := NewStateStore()
	if err != nil {
		t.Fatal(err)
	}

	paths := []string{"/a.ts", "/b.ts", "/c.ts"}
	for _, p := range paths {
		err := s.Changes.Record(p, ChangeNew, false)
		if err != nil {
			t.Fatal(err)
		}
	}

	n, err := s.Changes.Len()
	if err != nil {
		t.Fatal(err)
	}
	if n != len(paths) {
		t.Fatalf("expected %d changes, given %d", len(paths), n)
	}
}

func TestChangeStore_Get(t *testing.T) {
	s, err := NewStateStore()
	if err != nil {
		t.Fatal(err)
	}

	_, err = s.Changes.Get("/missing")
	if err == nil {
		t.Fatal("expected error for missing change")
	}
	if !errors.Is(err, &ChangeNotFoundError{}) {
		t.Fatalf("unexpected error: %#v", err)
	}
	if !IsChangeNotFound(err) {
		t.Fatalf("expected %#v to be reported as not found", err)
	}

	err = s.Changes.Record("/lib", ChangeNew, true)
	if err != nil {
		t.Fatal(err)
	}
	ch, err := s.Changes.Get("/lib")
	if err != nil {
		t.Fatal(err)
	}
	expectedChange := &Change{Path: "/lib", State: ChangeNew, IsDir: true}
	if diff := cmp.Diff(expectedChange, ch, ignoreSeq); diff != "" {
		t.Fatalf("unexpected change: %s", diff)
	}
}

func TestChangeStore_Clear(t *testing.T) {
	s, err := NewStateStore()
	if err != nil {
		t.Fatal(err)
	}

	for _, p := range []string{"/a.ts", "/b.ts"} {
		err := s.Changes.Record(p, ChangeModified, false)
		if err != nil {
			t.Fatal(err)
		}
	}

	err = s.Changes.Clear()
	if err != nil {
		t.Fatal(err)
	}

	changes, err := s.Changes.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(changes) != 0 {
		t.Fatalf("expected no changes after clear, given %d", len(changes))
	}

	// recording after clear keeps working
	err = s.Changes.Record("/a.ts", ChangeNew, false)
	if err != nil {
		t.Fatal(err)
	}
}

func TestChangeState_String(t *testing.T) {
	if ChangeDeleted.String() != "ChangeDeleted" {
		t.Fatalf("unexpected name: %q", ChangeDeleted.String())
	}
}
