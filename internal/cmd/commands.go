// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"flag"
	"fmt"
	"io/ioutil"
	"strings"

	"github.com/mitchellh/cli"
)

// anyArgs disables the upper bound of argRange
const anyArgs = -1

// argRange is the number of positional arguments a command accepts.
type argRange struct {
	min, max int
}

func (r argRange) check(args []string) error {
	switch {
	case r.min == r.max && len(args) != r.min:
		return fmt.Errorf("expected exactly %d argument(s) (%d given): %q",
			r.min, len(args), args)
	case len(args) < r.min:
		return fmt.Errorf("expected at least %d argument(s) (%d given): %q",
			r.min, len(args), args)
	case r.max != anyArgs && len(args) > r.max:
		return fmt.Errorf("expected at most %d argument(s) (%d given): %q",
			r.max, len(args), args)
	}
	return nil
}

// commandFlagSet returns a flag set which reports errors
// through the command instead of printing them.
func commandFlagSet(cmdName string, ui cli.Ui, help func() string) *flag.FlagSet {
	f := flag.NewFlagSet(cmdName, flag.ContinueOnError)
	f.SetOutput(ioutil.Discard)
	f.Usage = func() { ui.Error(help()) }
	return f
}

// parseArgs parses flags and checks the positional arguments left.
// Errors are reported to ui, in which case false is returned.
func parseArgs(ui cli.Ui, fs *flag.FlagSet, args []string, want argRange) bool {
	if err := fs.Parse(args); err != nil {
		ui.Error(fmt.Sprintf("Error parsing command-line flags: %s", err))
		return false
	}
	if err := want.check(fs.Args()); err != nil {
		ui.Error(err.Error())
		return false
	}
	return true
}

// commandHelp renders the help of a command. details may be empty,
// otherwise each of its lines is indented under the synopsis.
func commandHelp(usage, synopsis, details string, fs *flag.FlagSet) string {
	buf := &strings.Builder{}
	fmt.Fprintf(buf, "Usage: stagefs %s\n\n%s\n\n", usage, synopsis)

	if details != "" {
		for _, line := range strings.Split(strings.TrimSpace(details), "\n") {
			if line != "" {
				buf.WriteString("  ")
				buf.WriteString(line)
			}
			buf.WriteString("\n")
		}
		buf.WriteString("\n")
	}

	buf.WriteString("Options:\n\n")
	w := fs.Output()
	defer fs.SetOutput(w)
	fs.SetOutput(buf)
	fs.PrintDefaults()

	return strings.TrimSpace(buf.String())
}
