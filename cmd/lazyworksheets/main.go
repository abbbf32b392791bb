// Package main is the entry point for the lazyworksheets application.
package main

import (
	"fmt"
	"os"

	urfavecli "github.com/urfave/cli/v2"

	"github.com/codalab/lazyworksheets/internal/app"
	"github.com/codalab/lazyworksheets/internal/buildinfo"
	"github.com/codalab/lazyworksheets/internal/log"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
	builtBy = "unknown"
)

var runTUIFunc = app.Run

func main() {
	buildinfo.Set(version, commit, date, builtBy)
	buildinfo.Enrich()

	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}

func newApp() *urfavecli.App {
	urfavecli.VersionPrinter = func(c *urfavecli.Context) {
		_, _ = fmt.Fprintln(c.App.Writer, buildinfo.Summary())
	}

	return &urfavecli.App{
		Name:                 buildinfo.Name,
		Usage:                "A TUI to browse and delete worksheets",
		Version:              buildinfo.Version(),
		EnableBashCompletion: true,

		Flags: globalFlags(),

		Commands: []*urfavecli.Command{
			listCommand(),
			deleteCommand(),
			openCommand(),
			completionCommand(),
		},

		Action: runTUI,

		After: func(*urfavecli.Context) error {
			return log.Close()
		},

		BashComplete: completeGlobalFlags,
	}
}

// runTUI is the default action that launches the TUI when no subcommand is given.
func runTUI(c *urfavecli.Context) error {
	cfg, err := loadCLIConfigFunc(c)
	if err != nil {
		_ = log.Close()
		return err
	}

	log.Printf("starting %s against %s", buildinfo.UserAgent(), cfg.ServerURL)
	err = runTUIFunc(cfg, newServiceFunc(cfg), cfg.Identity())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error running app: %v\n", err)
	}

	if closeErr := log.Close(); closeErr != nil {
		fmt.Fprintf(os.Stderr, "Error closing debug log: %v\n", closeErr)
	}
	return err
}
