// Package main provides CLI command definitions for lazyworksheets.
package main

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"strings"

	urfavecli "github.com/urfave/cli/v2"
	"golang.org/x/term"

	"github.com/codalab/lazyworksheets/internal/api"
	"github.com/codalab/lazyworksheets/internal/cli"
	"github.com/codalab/lazyworksheets/internal/config"
	"github.com/codalab/lazyworksheets/internal/log"
	"github.com/codalab/lazyworksheets/internal/models"
	"github.com/codalab/lazyworksheets/internal/utils"
)

var (
	loadCLIConfigFunc = loadCLIConfig
	newServiceFunc    = func(cfg *config.AppConfig) api.Service { return api.NewClient(cfg) }
	newConfirmerFunc  = cli.NewStdioPromptConfirmer
	newSelectorFunc   = func() cli.WorksheetSelector { return cli.NewSelector(os.Stdin, os.Stderr) }
	openBrowserFunc   = openBrowser
	stdinIsTerminal   = func() bool { return term.IsTerminal(int(os.Stdin.Fd())) }
)

// loadCLIConfig builds the effective configuration: config file, then
// environment, then flags and --config overrides (highest precedence).
func loadCLIConfig(c *urfavecli.Context) (*config.AppConfig, error) {
	debugLog := c.String("debug-log")
	if debugLog != "" {
		debugLog = setDebugLog(c, debugLog)
	}

	cfg, err := config.LoadConfig(c.String("config-file"))
	if err != nil {
		fmt.Fprintf(c.App.ErrWriter, "Error loading config: %v\n", err)
	}

	// If debug log wasn't set via flag, check if it's in the config
	switch {
	case debugLog != "":
		cfg.DebugLog = debugLog
	case cfg.DebugLog != "":
		cfg.DebugLog = setDebugLog(c, cfg.DebugLog)
	default:
		// No debug log configured, discard any buffered logs
		_ = log.SetFile("")
	}

	if err := applyFlagOverrides(cfg, c); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setDebugLog(c *urfavecli.Context, path string) string {
	if expanded, err := utils.ExpandPath(path); err == nil {
		path = expanded
	}
	if err := log.SetFile(path); err != nil {
		fmt.Fprintf(c.App.ErrWriter, "Error opening debug log file %q: %v\n", path, err)
	}
	return path
}

func applyFlagOverrides(cfg *config.AppConfig, c *urfavecli.Context) error {
	if server := strings.TrimSpace(c.String("server")); server != "" {
		cfg.ServerURL = server
	}
	if token := strings.TrimSpace(c.String("api-token")); token != "" {
		cfg.APIToken = token
	}
	if userID := strings.TrimSpace(c.String("user-id")); userID != "" {
		cfg.UserID = models.ID(userID)
	}
	if c.Bool("authenticated") {
		cfg.Authenticated = true
	}
	if c.Bool("mine") {
		cfg.MineOnly = true
	}
	if c.Bool("search-auto-select") {
		cfg.SearchAutoSelect = true
	}

	if err := applyThemeConfig(cfg, c.String("theme")); err != nil {
		return err
	}

	if overrides := c.StringSlice("config"); len(overrides) > 0 {
		if err := cfg.ApplyCLIOverrides(overrides); err != nil {
			return fmt.Errorf("error applying config overrides: %w", err)
		}
		cfg.CLIOverrides = overrides
	}
	return nil
}

// applyThemeConfig applies theme configuration from command line flag.
func applyThemeConfig(cfg *config.AppConfig, themeName string) error {
	if themeName == "" {
		return nil
	}

	normalized := config.NormalizeThemeName(themeName)
	if normalized == "" {
		return fmt.Errorf("unknown theme %q", themeName)
	}
	cfg.Theme = normalized
	cfg.ThemeFlag = normalized
	return nil
}

func listCommand() *urfavecli.Command {
	return &urfavecli.Command{
		Name:    "list",
		Aliases: []string{"ls"},
		Usage:   "List worksheets",
		Flags: []urfavecli.Flag{
			&urfavecli.BoolFlag{
				Name:  "json",
				Usage: "Output as JSON",
			},
			&urfavecli.BoolFlag{
				Name:    "pristine",
				Aliases: []string{"p"},
				Usage:   "Output UUIDs only, one per line (for scripting)",
			},
			&urfavecli.StringFlag{
				Name:    "filter",
				Aliases: []string{"f"},
				Usage:   "Only worksheets whose name contains this text",
			},
		},
		Action: handleList,
	}
}

func handleList(c *urfavecli.Context) error {
	cfg, err := loadCLIConfigFunc(c)
	if err != nil {
		return err
	}

	opts := cli.ListOptions{
		Filter:   c.String("filter"),
		MineOnly: cfg.MineOnly,
		JSON:     c.Bool("json"),
		Pristine: c.Bool("pristine"),
	}
	return cli.List(c.Context, newServiceFunc(cfg), cfg, cfg.Identity(), opts, c.App.Writer)
}

func deleteCommand() *urfavecli.Command {
	return &urfavecli.Command{
		Name:      "delete",
		Aliases:   []string{"rm"},
		Usage:     "Delete worksheets by UUID, UUID prefix or name",
		ArgsUsage: "<worksheet>...",
		Flags: []urfavecli.Flag{
			&urfavecli.BoolFlag{
				Name:    "yes",
				Aliases: []string{"y"},
				Usage:   "Do not ask for confirmation",
			},
		},
		Action: handleDelete,
	}
}

func handleDelete(c *urfavecli.Context) error {
	if c.NArg() == 0 {
		return fmt.Errorf("usage: %s delete <worksheet>... [--yes]", c.App.Name)
	}

	cfg, err := loadCLIConfigFunc(c)
	if err != nil {
		return err
	}

	var confirm cli.Confirmer
	if !c.Bool("yes") {
		if !stdinIsTerminal() {
			return errors.New("refusing to delete without confirmation: stdin is not a terminal (use --yes)")
		}
		confirm = newConfirmerFunc()
	}

	return cli.Delete(c.Context, newServiceFunc(cfg), cfg, c.Args().Slice(), confirm, c.App.Writer)
}

func openCommand() *urfavecli.Command {
	return &urfavecli.Command{
		Name:      "open",
		Usage:     "Open a worksheet in the browser, picking one interactively when no argument is given",
		ArgsUsage: "[worksheet]",
		Flags: []urfavecli.Flag{
			&urfavecli.BoolFlag{
				Name:  "print",
				Usage: "Print the URL without opening it",
			},
		},
		Action: handleOpen,
	}
}

func handleOpen(c *urfavecli.Context) error {
	if c.NArg() > 1 {
		return fmt.Errorf("usage: %s open [worksheet]", c.App.Name)
	}

	cfg, err := loadCLIConfigFunc(c)
	if err != nil {
		return err
	}

	var open func(string) error
	if !c.Bool("print") {
		open = openBrowserFunc
	}
	return cli.Open(c.Context, newServiceFunc(cfg), cfg, c.Args().First(), newSelectorFunc(), open, c.App.Writer)
}

// openBrowser hands url to the platform opener and returns once it started.
func openBrowser(url string) error {
	name, args := utils.BrowserCommand(runtime.GOOS, url)
	cmd := exec.Command(name, args...) // #nosec G204
	if err := cmd.Start(); err != nil {
		return err
	}
	return cmd.Process.Release()
}
