// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

package filesystem

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/hashicorp/stagefs/internal/state"
	"github.com/spf13/afero"
)

var ignoreSeq = cmpopts.IgnoreFields(state.Change{}, "Seq")

func newInMemory(t *testing.T) *Filesystem {
	fs, err := NewFilesystem(nil, "", nil)
	if err != nil {
		t.Fatal(err)
	}
	return fs
}

func newMemBacked(t *testing.T, files map[string]string) (*Filesystem, afero.Fs) {
	mem := afero.NewMemMapFs()
	if err := mem.MkdirAll("/project", 0o755); err != nil {
		t.Fatal(err)
	}
	for p, content := range files {
		if err := afero.WriteFile(mem, p, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	fs, err := NewFilesystem(mem, "/project", nil)
	if err != nil {
		t.Fatal(err)
	}
	return fs, mem
}

func assertChanges(t *testing.T, fs *Filesystem, expected []*state.Change) {
	t.Helper()
	changes, err := fs.Changes()
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(expected, changes, ignoreSeq); diff != "" {
		t.Fatalf("changes mismatch: %s", diff)
	}
}

func TestFilesystem_CreateFile(t *testing.T) {
	fs := newInMemory(t)

	_, err := fs.CreateFile("a/b/c.ts", "one")
	if err != nil {
		t.Fatal(err)
	}
	for _, p := range []string{"a", "a/b"} {
		if !fs.DirectoryExists(p) {
			t.Fatalf("expected directory %q to exist", p)
		}
	}
	if !fs.FileExists("a/b/c.ts") {
		t.Fatal("expected file to exist")
	}

	_, err = fs.CreateFile("a/b/c.ts", "two")
	if err != nil {
		t.Fatal(err)
	}
	content, ok := fs.ReadFile("/a/b/c.ts")
	if !ok || content != "two" {
		t.Fatalf("unexpected content: %q", content)
	}

	assertChanges(t, fs, []*state.Change{
		{Path: "/a", State: state.ChangeNew, IsDir: true},
		{Path: "/a/b", State: state.ChangeNew, IsDir: true},
		{Path: "/a/b/c.ts", State: state.ChangeModified},
	})

	_, err = fs.CreateFile("a/b/", "x")
	if !errors.Is(err, ErrNameRequired) {
		t.Fatalf("expected ErrNameRequired, given: %v", err)
	}
}

func TestFilesystem_ReadFile_notFound(t *testing.T) {
	fs := newInMemory(t)

	content, ok := fs.ReadFile("missing.ts")
	if ok || content != "" {
		t.Fatalf("expected missing file, given %q", content)
	}
	if fs.FindFile("missing.ts") != nil {
		t.Fatal("expected nil file")
	}
	if fs.FindDirectory("missing") != nil {
		t.Fatal("expected nil directory")
	}
}

func TestFilesystem_DeleteFile(t *testing.T) {
	fs := newInMemory(t)

	ok, err := fs.DeleteFile("missing.ts")
	if err != nil {
		t.Fatal(err)
	}
	if ok {
		t.Fatal("expected deletion of missing file to fail")
	}

	if err := fs.WriteFile("a.ts", ""); err != nil {
		t.Fatal(err)
	}
	ok, err = fs.DeleteFile("a.ts")
	if err != nil {
		t.Fatal(err)
	}
	if !ok {
		t.Fatal("expected file to be deleted")
	}

	assertChanges(t, fs, []*state.Change{
		{Path: "/a.ts", State: state.ChangeDeleted},
	})
}

func TestFilesystem_RemoveDirectory(t *testing.T) {
	fs := newInMemory(t)
	if err := fs.WriteFile("src/app/a.ts", ""); err != nil {
		t.Fatal(err)
	}
	if err := fs.state.Changes.Clear(); err != nil {
		t.Fatal(err)
	}

	ok, err := fs.RemoveDirectory("src", false)
	if err != nil {
		t.Fatal(err)
	}
	if ok {
		t.Fatal("expected non-empty directory to be kept")
	}
	assertChanges(t, fs, []*state.Change{})

	ok, err = fs.RemoveDirectory("src", true)
	if err != nil {
		t.Fatal(err)
	}
	if !ok {
		t.Fatal("expected directory to be removed")
	}
	if fs.DirectoryExists("src") {
		t.Fatal("expected directory to be gone")
	}

	assertChanges(t, fs, []*state.Change{
		{Path: "/src", State: state.ChangeDeleted, IsDir: true},
		{Path: "/src/app", State: state.ChangeDeleted, IsDir: true},
		{Path: "/src/app/a.ts", State: state.ChangeDeleted},
	})
}

func TestFilesystem_AddDirectory(t *testing.T) {
	fs := newInMemory(t)

	d1, err := fs.AddDirectory("a/b")
	if err != nil {
		t.Fatal(err)
	}
	d2, err := fs.AddDirectory("a/b")
	if err != nil {
		t.Fatal(err)
	}
	if d1 != d2 {
		t.Fatal("expected existing directory to be returned")
	}

	assertChanges(t, fs, []*state.Change{
		{Path: "/a", State: state.ChangeNew, IsDir: true},
		{Path: "/a/b", State: state.ChangeNew, IsDir: true},
	})
}

func TestFilesystem_MoveFile(t *testing.T) {
	fs := newInMemory(t)
	if err := fs.WriteFile("a/test.ts", "moved"); err != nil {
		t.Fatal(err)
	}
	if err := fs.WriteFile("b/test.ts", "existing"); err != nil {
		t.Fatal(err)
	}
	if err := fs.state.Changes.Clear(); err != nil {
		t.Fatal(err)
	}

	f, err := fs.MoveFile("a/test.ts", "b", "")
	if err != nil {
		t.Fatal(err)
	}
	if f.Path() != "/b/test.ts" {
		t.Fatalf("unexpected path: %q", f.Path())
	}
	content, _ := fs.ReadFile("b/test.ts")
	if content != "moved" {
		t.Fatalf("expected moved content to win, given %q", content)
	}

	assertChanges(t, fs, []*state.Change{
		{Path: "/a/test.ts", State: state.ChangeDeleted},
		{Path: "/b/test.ts", State: state.ChangeNew},
	})

	f, err = fs.MoveFile("b/test.ts", "/b", "")
	if err != nil {
		t.Fatal(err)
	}
	if f == nil || f.Path() != "/b/test.ts" {
		t.Fatal("expected move into own directory to return the file")
	}

	f, err = fs.MoveFile("b/test.ts", "c/d", "renamed.ts")
	if err != nil {
		t.Fatal(err)
	}
	if f.Path() != "/c/d/renamed.ts" {
		t.Fatalf("unexpected path: %q", f.Path())
	}
}

func TestFilesystem_MoveCopy_invalid(t *testing.T) {
	fs := newInMemory(t)
	if err := fs.WriteFile("a.ts", ""); err != nil {
		t.Fatal(err)
	}
	if err := fs.state.Changes.Clear(); err != nil {
		t.Fatal(err)
	}

	testCases := []struct {
		name      string
		src       string
		targetDir string
		newName   string
	}{
		{"missing source", "missing.ts", "b", ""},
		{"empty target", "a.ts", "", ""},
		{"blank target", "a.ts", "  ", ""},
		{"nested name", "a.ts", "b", "sub/renamed.ts"},
		{"backslash name", "a.ts", "b", "sub\\renamed.ts"},
		{"parent name", "a.ts", "b", ".."},
		{"dot name", "a.ts", "b", "."},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			f, err := fs.MoveFile(tc.src, tc.targetDir, tc.newName)
			if err != nil {
				t.Fatal(err)
			}
			if f != nil {
				t.Fatalf("expected nil move result, given %q", f.Path())
			}

			f, err = fs.CopyFile(tc.src, tc.targetDir, tc.newName)
			if err != nil {
				t.Fatal(err)
			}
			if f != nil {
				t.Fatalf("expected nil copy result, given %q", f.Path())
			}

			if fs.DirectoryExists("b") {
				t.Fatal("expected target directory not to be created")
			}
			assertChanges(t, fs, []*state.Change{})
		})
	}
}

func TestFilesystem_MoveFile_invalidNameKeepsSource(t *testing.T) {
	fs, mem := newMemBacked(t, map[string]string{
		"/project/keep.ts": "keep",
	})

	f, err := fs.MoveFile("keep.ts", "b", "sub/renamed.ts")
	if err != nil {
		t.Fatal(err)
	}
	if f != nil {
		t.Fatalf("expected nil move result, given %q", f.Path())
	}
	if err := fs.Finalize(); err != nil {
		t.Fatal(err)
	}

	b, err := afero.ReadFile(mem, "/project/keep.ts")
	if err != nil {
		t.Fatal(err)
	}
	if string(b) != "keep" {
		t.Fatalf("unexpected content: %q", string(b))
	}
}

func TestFilesystem_entryConflict(t *testing.T) {
	fs := newInMemory(t)
	if _, err := fs.AddDirectory("a"); err != nil {
		t.Fatal(err)
	}
	if err := fs.WriteFile("b.ts", "b"); err != nil {
		t.Fatal(err)
	}
	if err := fs.state.Changes.Clear(); err != nil {
		t.Fatal(err)
	}

	_, err := fs.CreateFile("a", "content")
	if !IsEntryConflict(err) {
		t.Fatalf("expected entry conflict for file over directory, given: %v", err)
	}
	_, err = fs.CreateFile("b.ts/c.ts", "content")
	if !IsEntryConflict(err) {
		t.Fatalf("expected entry conflict for directory over file, given: %v", err)
	}
	_, err = fs.AddDirectory("b.ts/c")
	if !IsEntryConflict(err) {
		t.Fatalf("expected entry conflict for directory over file, given: %v", err)
	}
	_, err = fs.CopyFile("b.ts", "b.ts/x", "")
	if !IsEntryConflict(err) {
		t.Fatalf("expected entry conflict for copy target, given: %v", err)
	}

	f, err := fs.MoveFile("b.ts", "/", "a")
	if err != nil {
		t.Fatal(err)
	}
	if f != nil {
		t.Fatalf("expected nil move onto a directory, given %q", f.Path())
	}

	if !fs.DirectoryExists("a") || fs.FileExists("a") {
		t.Fatal("expected a to stay a directory")
	}
	if !fs.FileExists("b.ts") || fs.DirectoryExists("b.ts") {
		t.Fatal("expected b.ts to stay a file")
	}
	assertChanges(t, fs, []*state.Change{})
}

func TestFilesystem_CopyFile(t *testing.T) {
	fs := newInMemory(t)
	if err := fs.WriteFile("app/test.ts", "content"); err != nil {
		t.Fatal(err)
	}
	if err := fs.state.Changes.Clear(); err != nil {
		t.Fatal(err)
	}

	for _, expected := range []string{"/app/test(1).ts", "/app/test(2).ts"} {
		f, err := fs.CopyFile("app/test.ts", "app", "")
		if err != nil {
			t.Fatal(err)
		}
		if f.Path() != expected {
			t.Fatalf("expected %q, given %q", expected, f.Path())
		}
	}

	content, _ := fs.ReadFile("app/test.ts")
	if content != "content" {
		t.Fatalf("expected source to be retained, given %q", content)
	}

	assertChanges(t, fs, []*state.Change{
		{Path: "/app/test(1).ts", State: state.ChangeNew},
		{Path: "/app/test(2).ts", State: state.ChangeNew},
	})
}

func TestFilesystem_Glob(t *testing.T) {
	fs := newInMemory(t)
	for _, p := range []string{
		"src/app/testing/nested-test.ts",
		"src/app/testing/test.ts",
		"src/app/test.ts",
		"src/app/test.md",
		"lib/test.ts",
	} {
		if err := fs.WriteFile(p, ""); err != nil {
			t.Fatal(err)
		}
	}

	paths, err := fs.Glob("src/**/*.ts")
	if err != nil {
		t.Fatal(err)
	}
	expected := []string{
		"/src/app/test.ts",
		"/src/app/testing/test.ts",
		"/src/app/testing/nested-test.ts",
	}
	if diff := cmp.Diff(expected, paths); diff != "" {
		t.Fatalf("glob mismatch: %s", diff)
	}

	paths, err = fs.Glob("**/test.*")
	if err != nil {
		t.Fatal(err)
	}
	expected = []string{
		"/lib/test.ts",
		"/src/app/test.ts",
		"/src/app/testing/test.ts",
	}
	if diff := cmp.Diff(expected, paths); diff != "" {
		t.Fatalf("glob mismatch: %s", diff)
	}
}

func TestFilesystem_Files(t *testing.T) {
	fs := newInMemory(t)
	for p, content := range map[string]string{
		"index.ts":      "ts",
		"package.json":  "{}",
		"README.md":     "# readme",
		".stagefmt.hcl": "",
	} {
		if err := fs.WriteFile(p, content); err != nil {
			t.Fatal(err)
		}
	}

	expected := map[string]string{
		"/index.ts":     "ts",
		"/package.json": "{}",
	}
	if diff := cmp.Diff(expected, fs.Files()); diff != "" {
		t.Fatalf("files mismatch: %s", diff)
	}
}

func TestFilesystem_FindFiles(t *testing.T) {
	fs := newInMemory(t)
	for _, p := range []string{"b/index.ts", "index.ts", "a/index.ts"} {
		if err := fs.WriteFile(p, ""); err != nil {
			t.Fatal(err)
		}
	}

	expected := []string{"/index.ts", "/b/index.ts", "/a/index.ts"}
	if diff := cmp.Diff(expected, filePaths(fs.FindFiles("index.ts"))); diff != "" {
		t.Fatalf("files mismatch: %s", diff)
	}
}

func TestNewFilesystem_invalidOptions(t *testing.T) {
	_, err := NewFilesystem(nil, "", &Options{IgnorePatterns: []string{"[a-"}})
	if err == nil {
		t.Fatal("expected invalid pattern to fail")
	}
}

func TestNewFilesystem_missingRoot(t *testing.T) {
	fs, err := NewFilesystem(afero.NewMemMapFs(), "/missing", nil)
	if err != nil {
		t.Fatal(err)
	}
	if !fs.Root().IsEmpty() {
		t.Fatal("expected empty tree")
	}
}
