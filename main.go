// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

package main

import (
	"os"
	"runtime"

	"github.com/hashicorp/stagefs/internal/cmd"
	"github.com/mitchellh/cli"
)

func main() {
	c := &cli.CLI{
		Name:    "stagefs",
		Version: VersionString(),
		Args:    os.Args[1:],
	}

	ui := &cli.ColoredUi{
		ErrorColor: cli.UiColorRed,
		WarnColor:  cli.UiColorYellow,
		Ui: &cli.BasicUi{
			Writer:      os.Stdout,
			Reader:      os.Stdin,
			ErrorWriter: os.Stderr,
		},
	}

	c.Commands = map[string]cli.CommandFactory{
		"glob": func() (cli.Command, error) {
			return &cmd.GlobCommand{
				Ui: ui,
			}, nil
		},
		"add-import": func() (cli.Command, error) {
			return &cmd.AddImportCommand{
				Ui: ui,
			}, nil
		},
		"fmt": func() (cli.Command, error) {
			return &cmd.FmtCommand{
				Ui: ui,
			}, nil
		},
		"snapshot": func() (cli.Command, error) {
			return &cmd.SnapshotCommand{
				Ui: ui,
			}, nil
		},
		"version": func() (cli.Command, error) {
			return &cmd.VersionCommand{
				Ui:      ui,
				Version: VersionString(),
				BuildInfo: &cmd.BuildInfo{
					GoVersion: runtime.Version()[2:],
					GoOS:      runtime.GOOS,
					GoArch:    runtime.GOARCH,
				},
			}, nil
		},
	}

	exitStatus, err := c.Run()
	if err != nil {
		ui.Error("Error: " + err.Error())
	}

	os.Exit(exitStatus)
}
