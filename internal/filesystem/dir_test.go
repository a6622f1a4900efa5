// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

package filesystem

import (
	"errors"
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func filePaths(files []*File) []string {
	paths := make([]string, len(files))
	for i, f := range files {
		paths[i] = f.Path()
	}
	return paths
}

func dirNames(dirs []*Directory) []string {
	names := make([]string, len(dirs))
	for i, d := range dirs {
		names[i] = d.Name()
	}
	return names
}

func TestDirectory_AddFile(t *testing.T) {
	root := newRootDirectory()

	f, err := root.AddFile("a/b/c.ts", []byte("content"))
	if err != nil {
		t.Fatal(err)
	}
	if f.Path() != "/a/b/c.ts" {
		t.Fatalf("unexpected path: %q", f.Path())
	}
	if f.Ext() != ".ts" {
		t.Fatalf("unexpected extension: %q", f.Ext())
	}

	for _, p := range []string{"a", "a/b", "/a/b"} {
		if root.FindSubDirectory(p) == nil {
			t.Fatalf("expected directory %q to exist", p)
		}
	}

	_, err = root.AddFile("/a/b/d.ts", []byte{})
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"a"}, dirNames(root.Dirs())); diff != "" {
		t.Fatalf("directories mismatch: %s", diff)
	}
	if diff := cmp.Diff([]string{"b"}, dirNames(root.FindSubDirectory("a").Dirs())); diff != "" {
		t.Fatalf("directories mismatch: %s", diff)
	}
}

func TestDirectory_AddFile_overwrite(t *testing.T) {
	root := newRootDirectory()

	f1, err := root.AddFile("a.ts", []byte("one"))
	if err != nil {
		t.Fatal(err)
	}
	f2, err := root.AddFile("./a.ts", []byte("two"))
	if err != nil {
		t.Fatal(err)
	}

	if f1 != f2 {
		t.Fatal("expected file identity to be kept")
	}
	if f1.Content() != "two" {
		t.Fatalf("unexpected content: %q", f1.Content())
	}
	if len(root.Files()) != 1 {
		t.Fatalf("expected 1 file, %d given", len(root.Files()))
	}
}

func TestDirectory_AddFile_nameRequired(t *testing.T) {
	root := newRootDirectory()

	for _, p := range []string{"", "/", "a/..", "."} {
		_, err := root.AddFile(p, []byte{})
		if !errors.Is(err, ErrNameRequired) {
			t.Fatalf("%q: expected ErrNameRequired, given: %v", p, err)
		}
	}
}

func TestDirectory_AddSubDirectory_idempotent(t *testing.T) {
	root := newRootDirectory()

	d1 := root.AddSubDirectory("x/y")
	d2 := root.AddSubDirectory("/x/y/")
	if d1 != d2 {
		t.Fatal("expected existing directory to be returned")
	}

	_, created, err := root.addSubDirectory("x/y/z")
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"z"}, dirNames(created)); diff != "" {
		t.Fatalf("created directories mismatch: %s", diff)
	}
}

func TestDirectory_FindSubDirectory(t *testing.T) {
	root := newRootDirectory()
	sub := root.AddSubDirectory("a/b")

	testCases := []struct {
		path     string
		expected *Directory
	}{
		{"", root},
		{"/", root},
		{"a/b", sub},
		{"/a/b", sub},
		{"a/x/../b", sub},
		{"../a/b", sub},
		{"a/c", nil},
		{"a/b/c", nil},
	}

	for _, tc := range testCases {
		given := root.FindSubDirectory(tc.path)
		if given != tc.expected {
			t.Fatalf("%q: unexpected directory %v", tc.path, given)
		}
	}

	if sub.FindSubDirectory("") != sub {
		t.Fatal("expected empty path to resolve to the receiver")
	}
}

func TestDirectory_RemoveSubDirectory(t *testing.T) {
	testCases := []struct {
		name     string
		path     string
		force    bool
		expected bool
	}{
		{"empty", "empty", false, true},
		{"non-empty without force", "full", false, false},
		{"non-empty with force", "full", true, true},
		{"missing", "missing", true, false},
		{"receiver", "", true, false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			root := newRootDirectory()
			root.AddSubDirectory("empty")
			_, err := root.AddFile("full/nested/a.ts", []byte{})
			if err != nil {
				t.Fatal(err)
			}

			given := root.RemoveSubDirectory(tc.path, tc.force)
			if given != tc.expected {
				t.Fatalf("expected %t, given %t", tc.expected, given)
			}
			if tc.expected && root.FindSubDirectory(tc.path) != nil {
				t.Fatalf("expected %q to be removed", tc.path)
			}
		})
	}
}

func TestDirectory_RemoveFile(t *testing.T) {
	root := newRootDirectory()
	_, err := root.AddFile("a/b.ts", []byte{})
	if err != nil {
		t.Fatal(err)
	}

	if !root.RemoveFile("a/b.ts") {
		t.Fatal("expected file to be removed")
	}
	if root.RemoveFile("a/b.ts") {
		t.Fatal("expected second removal to fail")
	}
	if root.FindSubDirectory("a") == nil {
		t.Fatal("expected parent directory to be kept")
	}
}

func TestDirectory_CopyFile(t *testing.T) {
	root := newRootDirectory()
	src, err := root.AddFile("app/test.ts", []byte("content"))
	if err != nil {
		t.Fatal(err)
	}
	app := root.FindSubDirectory("app")

	for i := 1; i <= 3; i++ {
		c := root.CopyFile(src, app, "")
		expected := fmt.Sprintf("test(%d).ts", i)
		if c.Name() != expected {
			t.Fatalf("expected %q, given %q", expected, c.Name())
		}
		if c.Content() != "content" {
			t.Fatalf("unexpected content: %q", c.Content())
		}
	}

	c := root.CopyFile(root.FindFile("app/test(2).ts"), app, "")
	if c.Name() != "test(4).ts" {
		t.Fatalf("expected counter to be replaced, given %q", c.Name())
	}

	c = root.CopyFile(src, app, "test(1).ts")
	if c.Name() != "test(5).ts" {
		t.Fatalf("expected explicit name to be disambiguated, given %q", c.Name())
	}

	other := root.AddSubDirectory("other")
	c = root.CopyFile(src, other, "")
	if c.Path() != "/other/test.ts" {
		t.Fatalf("unexpected path: %q", c.Path())
	}
	if root.FindFile("app/test.ts") != src {
		t.Fatal("expected source to be retained")
	}

	if root.CopyFile(src, nil, "") != nil {
		t.Fatal("expected nil target to yield nil")
	}
}

func TestDirectory_MoveFile(t *testing.T) {
	root := newRootDirectory()
	src, err := root.AddFile("a/test.ts", []byte("new"))
	if err != nil {
		t.Fatal(err)
	}
	_, err = root.AddFile("b/test.ts", []byte("old"))
	if err != nil {
		t.Fatal(err)
	}

	if root.MoveFile(src, src.Dir(), "") != src {
		t.Fatal("expected move into own directory to return the file")
	}

	moved := root.MoveFile(src, root.FindSubDirectory("b"), "")
	if moved != src {
		t.Fatal("expected file identity to be kept")
	}
	if moved.Path() != "/b/test.ts" {
		t.Fatalf("unexpected path: %q", moved.Path())
	}
	if root.FindFile("a/test.ts") != nil {
		t.Fatal("expected source to be removed")
	}

	b := root.FindSubDirectory("b")
	if len(b.Files()) != 1 {
		t.Fatalf("expected destination to be replaced, %d files given", len(b.Files()))
	}
	if root.FindFile("b/test.ts").Content() != "new" {
		t.Fatal("expected moved content to win")
	}

	renamed := root.MoveFile(moved, b, "renamed.ts")
	if diff := cmp.Diff([]string{"/b/renamed.ts"}, filePaths(b.Files())); diff != "" {
		t.Fatalf("files mismatch: %s", diff)
	}
	if renamed.Path() != "/b/renamed.ts" {
		t.Fatalf("unexpected path: %q", renamed.Path())
	}
}

func TestDirectory_FindFiles(t *testing.T) {
	root := newRootDirectory()
	for _, p := range []string{
		"z/index.ts",
		"index.ts",
		"a/b/index.ts",
		"a/index.ts",
		"a/other.ts",
	} {
		if _, err := root.AddFile(p, []byte{}); err != nil {
			t.Fatal(err)
		}
	}

	expected := []string{
		"/index.ts",
		"/z/index.ts",
		"/a/index.ts",
		"/a/b/index.ts",
	}
	if diff := cmp.Diff(expected, filePaths(root.FindFiles("index.ts"))); diff != "" {
		t.Fatalf("files mismatch: %s", diff)
	}
}

func TestTrimCounter(t *testing.T) {
	testCases := []struct {
		stem     string
		expected string
	}{
		{"test", "test"},
		{"test(1)", "test"},
		{"test(12)", "test"},
		{"test()", "test()"},
		{"test(a)", "test(a)"},
		{"test)", "test)"},
		{"(3)", ""},
		{"test(+1)", "test(+1)"},
		{"test(-1)", "test(-1)"},
		{"test(1a)", "test(1a)"},
	}

	for _, tc := range testCases {
		given := trimCounter(tc.stem)
		if given != tc.expected {
			t.Fatalf("%q: expected %q, given %q", tc.stem, tc.expected, given)
		}
	}
}

func TestDirectory_MoveCopy_invalidName(t *testing.T) {
	root := newRootDirectory()
	f, err := root.AddFile("a/test.ts", []byte("a"))
	if err != nil {
		t.Fatal(err)
	}
	target := root.AddSubDirectory("b")

	for _, name := range []string{"sub/test.ts", "../test.ts", "..", ".", "sub\\test.ts"} {
		if moved := root.MoveFile(f, target, name); moved != nil {
			t.Fatalf("%q: expected nil move result, given %q", name, moved.Path())
		}
		if copied := root.CopyFile(f, target, name); copied != nil {
			t.Fatalf("%q: expected nil copy result, given %q", name, copied.Path())
		}
	}

	if f.Path() != "/a/test.ts" {
		t.Fatalf("expected file to stay in place, given %q", f.Path())
	}
	if !target.IsEmpty() {
		t.Fatal("expected target to stay empty")
	}
}

func TestDirectory_entryConflict(t *testing.T) {
	root := newRootDirectory()
	sub := root.AddSubDirectory("a")
	f, err := root.AddFile("b", []byte("b"))
	if err != nil {
		t.Fatal(err)
	}

	_, err = root.AddFile("a", []byte("file"))
	if !IsEntryConflict(err) {
		t.Fatalf("expected entry conflict, given: %v", err)
	}
	_, err = root.AddFile("b/c.ts", []byte("file"))
	if !IsEntryConflict(err) {
		t.Fatalf("expected entry conflict, given: %v", err)
	}
	if d := root.AddSubDirectory("b/c"); d != nil {
		t.Fatalf("expected nil directory, given %q", d.Path())
	}

	if moved := root.MoveFile(f, root, "a"); moved != nil {
		t.Fatalf("expected nil move onto a directory, given %q", moved.Path())
	}
	copied := root.CopyFile(f, root, "a")
	if copied == nil || copied.Name() != "a(1)" {
		t.Fatalf("expected copy to avoid the directory name, given %v", copied)
	}

	expectedDirs := []string{"a"}
	if diff := cmp.Diff(expectedDirs, dirNames(root.Dirs())); diff != "" {
		t.Fatalf("directories mismatch: %s", diff)
	}
	if !sub.IsEmpty() {
		t.Fatal("expected directory a to stay empty")
	}
}
