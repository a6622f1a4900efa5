// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"flag"
	"fmt"
	"strings"

	"github.com/hashicorp/go-multierror"
	"github.com/hashicorp/stagefs/internal/settings"
	"github.com/mitchellh/cli"
)

type FmtCommand struct {
	Ui cli.Ui

	workspaceFlags
	check     bool
	overrides stringSlice
}

func (c *FmtCommand) flags() *flag.FlagSet {
	fs := commandFlagSet("fmt", c.Ui, c.Help)
	c.register(fs)
	fs.BoolVar(&c.check, "check", false, "list files which are not formatted and exit non-zero, without writing")
	fs.Var(&c.overrides, "set", "override a formatting option as key=value (repeatable)")
	return fs
}

func (c *FmtCommand) Run(args []string) int {
	f := c.flags()
	if !parseArgs(c.Ui, f, args, argRange{1, anyArgs}) {
		return 1
	}

	layer, err := c.overrideLayer()
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

	var result *multierror.Error
	changed := 0
	for _, arg := range f.Args() {
		path := c.treePath(fs.BackingRoot(), arg)
		ok, err := fs.Format(path, layer)
		if err != nil {
			result = multierror.Append(result, fmt.Errorf("%s: %w", path, err))
			continue
		}
		if ok {
			changed++
			c.Ui.Output(path)
		}
	}

	if err := result.ErrorOrNil(); err != nil {
		c.Ui.Error(err.Error())
		return 1
	}

	if c.check {
		if changed > 0 {
			return 3
		}
		return 0
	}

	if err := fs.Finalize(); err != nil {
		c.Ui.Error(err.Error())
		return 1
	}
	return 0
}

// overrideLayer decodes the -set flags into a settings layer.
func (c *FmtCommand) overrideLayer() (*settings.Layer, error) {
	if len(c.overrides) == 0 {
		return nil, nil
	}

	raw := make(map[string]interface{}, len(c.overrides))
	for _, kv := range c.overrides {
		key, value, err := settings.ParseOverride(kv)
		if err != nil {
			return nil, err
		}
		raw[key] = value
	}

	decoded, err := settings.DecodeOptions(raw)
	if err != nil {
		return nil, err
	}
	if len(decoded.UnusedKeys) > 0 {
		return nil, fmt.Errorf("unknown formatting options: %s",
			strings.Join(decoded.UnusedKeys, ", "))
	}
	return decoded.Layer, nil
}

func (c *FmtCommand) Help() string {
	return commandHelp("fmt [options] FILE...", c.Synopsis(), `
Options are read from `+settings.ProjectConfigFile+` in the root directory
and can be overridden with -set, e.g. -set indent_size=4.
Formatted files are listed. With -check, the exit status
is 3 when any file would change.
`, c.flags())
}

func (c *FmtCommand) Synopsis() string {
	return "Rewrites source files in canonical format"
}
