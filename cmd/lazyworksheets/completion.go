package main

import (
	"fmt"
	"strings"

	urfavecli "github.com/urfave/cli/v2"

	"github.com/codalab/lazyworksheets/internal/completion"
)

// completionCommand returns the completion subcommand definition.
func completionCommand() *urfavecli.Command {
	return &urfavecli.Command{
		Name:      "completion",
		Usage:     "Generate shell completion scripts",
		ArgsUsage: "<" + strings.Join(completion.Shells(), "|") + ">",
		Flags: []urfavecli.Flag{
			&urfavecli.StringFlag{
				Name:  "shell",
				Usage: "Target shell, instead of the positional argument",
			},
		},
		Action: handleCompletion,
	}
}

// handleCompletion handles the completion subcommand.
func handleCompletion(c *urfavecli.Context) error {
	shell := c.String("shell")
	if shell == "" {
		shell = c.Args().First()
	}
	if shell == "" {
		return fmt.Errorf("usage: %s completion <%s>", c.App.Name, strings.Join(completion.Shells(), "|"))
	}

	script, err := completion.Script(shell, c.App.Name)
	if err != nil {
		return err
	}
	_, err = fmt.Fprint(c.App.Writer, script)
	return err
}
