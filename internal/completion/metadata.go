// Package completion holds the flag metadata shell completion is generated from.
package completion

import (
	"strings"

	"github.com/codalab/lazyworksheets/internal/config"
	"github.com/codalab/lazyworksheets/internal/theme"
)

// FlagInfo contains metadata about a command-line flag for completion generation.
type FlagInfo struct {
	Name        string   // Flag name without dashes
	Short       string   // Single letter alias, if any
	Description string   // Human-readable description
	HasValue    bool     // true for string flags, false for bool flags
	ValueHint   string   // Hint for value type (e.g., "URL", "PATH", "NAME")
	Values      []string // Enumerated values for completion (e.g., theme names)
}

// CommandInfo describes a subcommand.
type CommandInfo struct {
	Name        string
	Description string
	Flags       []FlagInfo
}

// GetFlags returns metadata for all global lazyworksheets flags.
// This is the single source of truth for shell completion generation.
func GetFlags() []FlagInfo {
	return []FlagInfo{
		{Name: "server", Short: "s", Description: "Worksheet server base URL", HasValue: true, ValueHint: "URL"},
		{Name: "api-token", Description: "Bearer token sent with every request", HasValue: true, ValueHint: "TOKEN"},
		{Name: "user-id", Description: "Current user id for \"my worksheets only\"", HasValue: true, ValueHint: "ID"},
		{Name: "authenticated", Description: "Treat the user as signed in"},
		{Name: "mine", Description: "Start with \"my worksheets only\" enabled"},
		{Name: "debug-log", Description: "Path to debug log file", HasValue: true, ValueHint: "PATH"},
		{Name: "theme", Short: "t", Description: "Override UI theme", HasValue: true, ValueHint: "NAME", Values: theme.AvailableThemes()},
		{Name: "search-auto-select", Description: "Start with the search field focused"},
		{Name: "config-file", Description: "Path to configuration file", HasValue: true, ValueHint: "FILE"},
		{Name: "config", Short: "C", Description: "Override config values (lw.key=value)", HasValue: true, ValueHint: "KEY=VALUE", Values: ConfigKeyCompletions("")},
		{Name: "version", Short: "v", Description: "Print version information"},
	}
}

// GetCommands returns the subcommands and their own flags.
func GetCommands() []CommandInfo {
	return []CommandInfo{
		{Name: "list", Description: "List worksheets", Flags: []FlagInfo{
			{Name: "json", Description: "Output as JSON"},
			{Name: "pristine", Short: "p", Description: "Output UUIDs only"},
			{Name: "filter", Short: "f", Description: "Only names containing this text", HasValue: true, ValueHint: "TEXT"},
		}},
		{Name: "delete", Description: "Delete worksheets", Flags: []FlagInfo{
			{Name: "yes", Short: "y", Description: "Do not ask for confirmation"},
		}},
		{Name: "open", Description: "Open a worksheet in the browser", Flags: []FlagInfo{
			{Name: "print", Description: "Print the URL without opening it"},
		}},
		{Name: "completion", Description: "Generate shell completion scripts", Flags: []FlagInfo{
			{Name: "shell", Description: "Target shell", HasValue: true, ValueHint: "SHELL", Values: Shells()},
		}},
	}
}

// Shells lists the supported completion targets.
func Shells() []string {
	return []string{"bash", "zsh", "fish"}
}

// ConfigKeyCompletions returns "lw.key=" suggestions matching prefix.
func ConfigKeyCompletions(prefix string) []string {
	var matches []string
	for _, key := range config.KnownKeys() {
		if prefix == "" || strings.HasPrefix(key, prefix) {
			matches = append(matches, "lw."+key+"=")
		}
	}
	return matches
}
