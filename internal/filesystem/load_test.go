// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

package filesystem

import (
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/otiai10/copy"
	"github.com/spf13/afero"
)

func copyFixture(t *testing.T, name string) string {
	dir := t.TempDir()
	if err := copy.Copy(filepath.Join("testdata", name), dir); err != nil {
		t.Fatal(err)
	}
	return dir
}

func newFixtureFilesystem(t *testing.T) (*Filesystem, string) {
	dir := copyFixture(t, "project")

	opts := DefaultOptions()
	opts.IgnorePatterns = []string{"dist", "**/*.md"}

	fs, err := NewFilesystem(afero.NewOsFs(), dir, opts)
	if err != nil {
		t.Fatal(err)
	}
	return fs, dir
}

func TestNewFilesystem_import(t *testing.T) {
	fs, _ := newFixtureFilesystem(t)

	paths := make([]string, 0)
	for p := range fs.Files() {
		paths = append(paths, p)
	}
	sort.Strings(paths)

	expected := []string{
		"/src/app/test.ts",
		"/src/app/testing/nested-test.ts",
		"/src/app/testing/test.ts",
	}
	if diff := cmp.Diff(expected, paths); diff != "" {
		t.Fatalf("imported files mismatch: %s", diff)
	}

	if !fs.FileExists(".stagefmt.hcl") {
		t.Fatal("expected project config to be imported")
	}
	for _, p := range []string{"node_modules", "dist"} {
		if fs.DirectoryExists(p) {
			t.Fatalf("expected %q to be ignored", p)
		}
	}
	if fs.FileExists("README.md") {
		t.Fatal("expected README.md to be ignored")
	}

	changes, err := fs.Changes()
	if err != nil {
		t.Fatal(err)
	}
	if len(changes) != 0 {
		t.Fatalf("expected import not to record changes, %d given", len(changes))
	}
}

func TestFilesystem_Finalize_os(t *testing.T) {
	fs, dir := newFixtureFilesystem(t)

	if err := fs.WriteFile("src/app/test.ts", "export const routes = [];\n"); err != nil {
		t.Fatal(err)
	}
	if _, err := fs.CopyFile("src/app/test.ts", "src/app", ""); err != nil {
		t.Fatal(err)
	}
	if _, err := fs.DeleteFile("src/app/testing/nested-test.ts"); err != nil {
		t.Fatal(err)
	}

	if err := fs.Finalize(); err != nil {
		t.Fatal(err)
	}

	for _, name := range []string{"test.ts", "test(1).ts"} {
		b, err := os.ReadFile(filepath.Join(dir, "src", "app", name))
		if err != nil {
			t.Fatal(err)
		}
		if string(b) != "export const routes = [];\n" {
			t.Fatalf("%s: unexpected content %q", name, b)
		}
	}

	_, err := os.Stat(filepath.Join(dir, "src", "app", "testing", "nested-test.ts"))
	if !os.IsNotExist(err) {
		t.Fatalf("expected deleted file to be absent, given: %v", err)
	}

	// ignored entries stay untouched
	if _, err := os.Stat(filepath.Join(dir, "node_modules", "lib", "index.js")); err != nil {
		t.Fatal(err)
	}
}

func TestFilesystem_FinalizeTo(t *testing.T) {
	fs, _ := newFixtureFilesystem(t)
	dest := filepath.Join(t.TempDir(), "snapshot")

	if err := fs.WriteFile("src/app/extra.ts", "extra"); err != nil {
		t.Fatal(err)
	}
	if err := fs.FinalizeTo(dest); err != nil {
		t.Fatal(err)
	}

	for _, p := range []string{
		".stagefmt.hcl",
		"src/app/test.ts",
		"src/app/extra.ts",
		"src/app/testing/test.ts",
	} {
		if _, err := os.Stat(filepath.Join(dest, filepath.FromSlash(p))); err != nil {
			t.Fatal(err)
		}
	}
	if _, err := os.Stat(filepath.Join(dest, "node_modules")); !os.IsNotExist(err) {
		t.Fatalf("expected ignored directory not to be dumped, given: %v", err)
	}
}

func TestFilesystem_Format_projectConfig(t *testing.T) {
	fs, _ := newFixtureFilesystem(t)

	changed, err := fs.Format("src/app/test.ts", nil)
	if err != nil {
		t.Fatal(err)
	}
	if changed {
		content, _ := fs.ReadFile("src/app/test.ts")
		t.Fatalf("expected formatted file to stay unchanged, given %q", content)
	}
}
