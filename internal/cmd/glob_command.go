// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"flag"

	"github.com/mitchellh/cli"
)

type GlobCommand struct {
	Ui cli.Ui

	workspaceFlags
}

func (c *GlobCommand) flags() *flag.FlagSet {
	fs := commandFlagSet("glob", c.Ui, c.Help)
	c.register(fs)
	return fs
}

func (c *GlobCommand) Run(args []string) int {
	f := c.flags()
	if !parseArgs(c.Ui, f, args, argRange{1, 1}) {
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

	paths, err := fs.Glob(f.Arg(0))
	if err != nil {
		c.Ui.Error(err.Error())
		return 1
	}

	for _, p := range paths {
		c.Ui.Output(p)
	}
	return 0
}

func (c *GlobCommand) Help() string {
	return commandHelp("glob [options] PATTERN", c.Synopsis(), `
PATTERN supports * (within a path segment), ? (a single character)
and ** (any number of segments). Paths are listed shortest first.
`, c.flags())
}

func (c *GlobCommand) Synopsis() string {
	return "Lists source files matching a glob pattern"
}
