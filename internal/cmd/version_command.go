// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"encoding/json"
	"flag"
	"fmt"
	"strings"

	"github.com/hashicorp/stagefs/internal/filesystem"
	"github.com/hashicorp/stagefs/internal/settings"
	"github.com/mitchellh/cli"
)

// VersionOutput is printed by "stagefs version -json". Besides the
// build it describes what a default import picks up from a tree.
type VersionOutput struct {
	Name    string `json:"name"`
	Version string `json:"version"`

	ProjectConfigFile string   `json:"project_config_file"`
	Extensions        []string `json:"extensions"`
	IgnoredDirs       []string `json:"ignored_directories"`

	BuildGoVersion string `json:"go_version,omitempty"`
	BuildGoOS      string `json:"go_os,omitempty"`
	BuildGoArch    string `json:"go_arch,omitempty"`
}

type VersionCommand struct {
	Ui        cli.Ui
	Version   string
	BuildInfo *BuildInfo

	jsonOutput bool
}

type BuildInfo struct {
	GoVersion string
	GoOS      string
	GoArch    string
}

func (b *BuildInfo) String() string {
	if b == nil || b.GoVersion == "" || b.GoOS == "" || b.GoArch == "" {
		return ""
	}
	return fmt.Sprintf("go%s %s/%s", b.GoVersion, b.GoOS, b.GoArch)
}

func (c *VersionCommand) flags() *flag.FlagSet {
	fs := commandFlagSet("version", c.Ui, c.Help)
	fs.BoolVar(&c.jsonOutput, "json", false, "output the version and import defaults as a JSON object")
	return fs
}

func (c *VersionCommand) output() VersionOutput {
	opts := filesystem.DefaultOptions()
	out := VersionOutput{
		Name:              "stagefs",
		Version:           c.Version,
		ProjectConfigFile: settings.ProjectConfigFile,
		Extensions:        opts.Extensions,
		IgnoredDirs:       opts.IgnoreDirectoryNames,
	}
	if c.BuildInfo != nil {
		out.BuildGoVersion = c.BuildInfo.GoVersion
		out.BuildGoOS = c.BuildInfo.GoOS
		out.BuildGoArch = c.BuildInfo.GoArch
	}
	return out
}

func (c *VersionCommand) Run(args []string) int {
	f := c.flags()
	if !parseArgs(c.Ui, f, args, argRange{0, 0}) {
		return 1
	}

	if c.jsonOutput {
		b, err := json.MarshalIndent(c.output(), "", "  ")
		if err != nil {
			c.Ui.Error(fmt.Sprintf("Error marshalling JSON: %s", err))
			return 1
		}
		c.Ui.Output(string(b))
		return 0
	}

	lines := []string{"stagefs v" + strings.TrimPrefix(c.Version, "v")}
	if build := c.BuildInfo.String(); build != "" {
		lines = append(lines, build)
	}
	c.Ui.Output(strings.Join(lines, "\n"))
	return 0
}

func (c *VersionCommand) Help() string {
	return commandHelp("version [-json]", c.Synopsis(), `
The JSON object also lists the file extensions and directory
names a tree import uses by default.
`, c.flags())
}

func (c *VersionCommand) Synopsis() string {
	return "Displays the version of stagefs"
}
