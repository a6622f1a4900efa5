// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"flag"
	"fmt"
	"strings"

	"github.com/hashicorp/stagefs/internal/editor"
	"github.com/mitchellh/cli"
)

type AddImportCommand struct {
	Ui cli.Ui

	workspaceFlags
	isDefault bool
	dryRun    bool
}

func (c *AddImportCommand) flags() *flag.FlagSet {
	fs := commandFlagSet("add-import", c.Ui, c.Help)
	c.register(fs)
	fs.BoolVar(&c.isDefault, "default", false, "import NAME as the default export of MODULE")
	fs.BoolVar(&c.dryRun, "dry-run", false, "print the edited file instead of writing it")
	return fs
}

func (c *AddImportCommand) Run(args []string) int {
	f := c.flags()
	if !parseArgs(c.Ui, f, args, argRange{3, anyArgs}) {
		return 1
	}

	ids, err := parseImportIdentifiers(f.Args()[2:])
	if err != nil {
		c.Ui.Error(err.Error())
		return 1
	}
	module := f.Arg(1)

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

	path := c.treePath(fs.BackingRoot(), f.Arg(0))
	err = fs.Edit(path, func(e *editor.Editor) error {
		return e.AddImportDeclaration(ids, module, c.isDefault)
	})
	if err != nil {
		c.Ui.Error(err.Error())
		return 1
	}

	if c.dryRun {
		content, _ := fs.ReadFile(path)
		c.Ui.Output(strings.TrimSuffix(content, "\n"))
		return 0
	}

	changes, err := fs.Changes()
	if err != nil {
		c.Ui.Error(err.Error())
		return 1
	}
	if len(changes) == 0 {
		c.Ui.Info(fmt.Sprintf("%s already imports the requested names", path))
		return 0
	}

	if err := fs.Finalize(); err != nil {
		c.Ui.Error(err.Error())
		return 1
	}
	c.Ui.Info(fmt.Sprintf("updated imports in %s", path))
	return 0
}

// parseImportIdentifiers parses NAME or NAME:ALIAS arguments.
func parseImportIdentifiers(args []string) ([]editor.ImportIdentifier, error) {
	ids := make([]editor.ImportIdentifier, 0, len(args))
	for _, arg := range args {
		name, alias, _ := strings.Cut(arg, ":")
		if name == "" {
			return nil, fmt.Errorf("invalid identifier %q: name required", arg)
		}
		ids = append(ids, editor.ImportIdentifier{Name: name, Alias: alias})
	}
	return ids, nil
}

func (c *AddImportCommand) Help() string {
	return commandHelp("add-import [options] FILE MODULE NAME[:ALIAS]...", c.Synopsis(), `
Names already imported from MODULE, and aliases already in use,
are left alone. FILE is relative to the root directory.
`, c.flags())
}

func (c *AddImportCommand) Synopsis() string {
	return "Adds names to the imports of a source file"
}
