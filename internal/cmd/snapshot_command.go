// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"flag"
	"fmt"

	"github.com/mitchellh/cli"
	"github.com/mitchellh/go-homedir"
)

type SnapshotCommand struct {
	Ui cli.Ui

	workspaceFlags
}

func (c *SnapshotCommand) flags() *flag.FlagSet {
	fs := commandFlagSet("snapshot", c.Ui, c.Help)
	c.register(fs)
	return fs
}

func (c *SnapshotCommand) Run(args []string) int {
	f := c.flags()
	if !parseArgs(c.Ui, f, args, argRange{1, 1}) {
		return 1
	}

	dest, err := homedir.Expand(f.Arg(0))
	if err != nil {
		c.Ui.Error(err.Error())
		return 1
	}

	logger, closeLog, err := c.logger()
	if err != nil {
		c.Ui.Error(err.Error())
		return 1
	}
	defer closeLog()

	fs, err := c.open(logger)
	if err != nil {
		c.Ui.Error(err.Error())
		return 1
	}

	if err := fs.FinalizeTo(dest); err != nil {
		c.Ui.Error(err.Error())
		return 1
	}

	c.Ui.Info(fmt.Sprintf("%d files written to %s", countFiles(fs.Root()), dest))
	return 0
}

func (c *SnapshotCommand) Help() string {
	return commandHelp("snapshot [options] DEST", c.Synopsis(), `
DEST is created when missing. Files ignored on import are not copied.
`, c.flags())
}

func (c *SnapshotCommand) Synopsis() string {
	return "Copies the imported tree into another directory"
}
