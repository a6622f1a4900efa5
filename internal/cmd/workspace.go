// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"flag"
	"fmt"
	"io"
	"io/ioutil"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/hashicorp/stagefs/internal/filesystem"
	"github.com/hashicorp/stagefs/internal/logging"
	"github.com/mitchellh/go-homedir"
	"github.com/spf13/afero"
)

// workspaceFlags are shared by every command operating
// on a directory tree.
type workspaceFlags struct {
	root    string
	verbose bool
	logFile string

	// backing is replaced in tests
	backing afero.Fs
}

func (w *workspaceFlags) register(fs *flag.FlagSet) {
	fs.StringVar(&w.root, "root", ".", "root directory of the tree to stage")
	fs.BoolVar(&w.verbose, "verbose", false, "whether to enable verbose output")
	fs.StringVar(&w.logFile, "log-file", "", "absolute path to a file to log into")
}

// logger returns the logger selected by flags and a function
// releasing any file it holds.
func (w *workspaceFlags) logger() (*log.Logger, func(), error) {
	if w.logFile != "" {
		fl, err := logging.NewFileLogger(w.logFile)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to setup logging: %w", err)
		}
		return fl.Logger(), func() { fl.Close() }, nil
	}

	var logDestination io.Writer
	if w.verbose {
		logDestination = os.Stderr
	} else {
		logDestination = ioutil.Discard
	}
	return logging.NewLogger(logDestination), func() {}, nil
}

func (w *workspaceFlags) rootPath() (string, error) {
	root, err := homedir.Expand(w.root)
	if err != nil {
		return "", err
	}
	if w.backing != nil {
		return root, nil
	}
	return filepath.Abs(root)
}

// open imports the root directory into a new filesystem.
func (w *workspaceFlags) open(logger *log.Logger) (*filesystem.Filesystem, error) {
	root, err := w.rootPath()
	if err != nil {
		return nil, err
	}

	backing := w.backing
	if backing == nil {
		fi, err := os.Stat(root)
		if err != nil {
			return nil, err
		}
		if !fi.IsDir() {
			return nil, fmt.Errorf("expected %s to be a directory", root)
		}
		backing = afero.NewOsFs()
	}

	fs, err := filesystem.NewFilesystem(backing, root, filesystem.DefaultOptions())
	if err != nil {
		return nil, err
	}
	fs.SetLogger(logger)
	return fs, nil
}

// treePath turns a command-line path into a path in the tree.
// Absolute paths below root are made relative to it.
func (w *workspaceFlags) treePath(root, path string) string {
	if filepath.IsAbs(path) {
		if rel, err := filepath.Rel(root, path); err == nil && !strings.HasPrefix(rel, "..") {
			path = rel
		}
	}
	return filepath.ToSlash(path)
}

// stringSlice collects a repeated flag.
type stringSlice []string

func (s *stringSlice) String() string {
	return strings.Join(*s, ",")
}

func (s *stringSlice) Set(value string) error {
	*s = append(*s, value)
	return nil
}

func countFiles(root *filesystem.Directory) int {
	n := 0
	root.Walk(func(d *filesystem.Directory) error {
		n += len(d.Files())
		return nil
	})
	return n
}
