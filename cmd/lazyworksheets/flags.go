// Package main provides CLI flag definitions for lazyworksheets.
package main

import (
	"fmt"

	urfavecli "github.com/urfave/cli/v2"

	"github.com/codalab/lazyworksheets/internal/completion"
)

// globalFlags returns all global flags for the application.
// Note: --version is provided automatically by urfave/cli via App.Version
func globalFlags() []urfavecli.Flag {
	return []urfavecli.Flag{
		&urfavecli.StringFlag{
			Name:    "server",
			Aliases: []string{"s"},
			Usage:   "Worksheet server base URL",
		},
		&urfavecli.StringFlag{
			Name:  "api-token",
			Usage: "Bearer token sent with every request",
		},
		&urfavecli.StringFlag{
			Name:  "user-id",
			Usage: "Current user id, enables \"my worksheets only\"",
		},
		&urfavecli.BoolFlag{
			Name:  "authenticated",
			Usage: "Treat the user as signed in",
		},
		&urfavecli.BoolFlag{
			Name:  "mine",
			Usage: "Start with \"my worksheets only\" enabled",
		},
		&urfavecli.StringFlag{
			Name:  "debug-log",
			Usage: "Path to debug log file",
		},
		&urfavecli.StringFlag{
			Name:    "theme",
			Aliases: []string{"t"},
			Usage:   "Override the UI theme",
		},
		&urfavecli.BoolFlag{
			Name:  "search-auto-select",
			Usage: "Start with the search field focused",
		},
		&urfavecli.StringFlag{
			Name:  "config-file",
			Usage: "Path to configuration file",
		},
		&urfavecli.StringSliceFlag{
			Name:    "config",
			Aliases: []string{"C"},
			Usage:   "Override config values (repeatable): --config=lw.key=value",
		},
	}
}

// completeGlobalFlags provides basic completion for global flags.
func completeGlobalFlags(c *urfavecli.Context) {
	if c.NArg() > 0 {
		return
	}
	for _, cmd := range c.App.Commands {
		_, _ = fmt.Fprintln(c.App.Writer, cmd.Name)
	}
	for _, f := range completion.GetFlags() {
		_, _ = fmt.Fprintln(c.App.Writer, "--"+f.Name)
	}
}
