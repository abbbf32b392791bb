// Package buildinfo holds the build metadata of the lazyworksheets binary.
// The linker injects values into cmd/lazyworksheets/main.go, which forwards
// them here with Set so the API client can advertise them.
package buildinfo

import (
	"fmt"
	"runtime/debug"
)

// Name is the program name used in the user agent and version output.
const Name = "lazyworksheets"

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
	builtBy = "unknown"
)

// Set stores the build metadata received from linker-injected variables.
func Set(v, c, d, b string) {
	version = v
	commit = c
	date = d
	builtBy = b
}

// Version returns the build version string.
func Version() string { return version }

// Commit returns the build commit hash.
func Commit() string { return commit }

// Date returns the build date string.
func Date() string { return date }

// BuiltBy returns the build agent string.
func BuiltBy() string { return builtBy }

// UserAgent is sent with every API request.
func UserAgent() string {
	return fmt.Sprintf("%s/%s", Name, version)
}

// Summary renders the multi-line version report.
func Summary() string {
	return fmt.Sprintf("%s version %s\ncommit: %s\nbuilt at: %s\nbuilt by: %s", Name, version, commit, date, builtBy)
}

// Enrich fills missing metadata from runtime/debug.ReadBuildInfo: the VCS
// revision replaces a "none" commit and the Go version an "unknown" builder.
func Enrich() {
	if commit != "none" && builtBy != "unknown" {
		return
	}

	info, ok := debug.ReadBuildInfo()
	if !ok {
		return
	}

	if commit == "none" {
		for _, setting := range info.Settings {
			if setting.Key == "vcs.revision" {
				commit = setting.Value
			}
		}
	}

	if builtBy == "unknown" {
		builtBy = info.GoVersion
	}
}
