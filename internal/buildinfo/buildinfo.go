// Package buildinfo holds the lazytodo build metadata. The linker injects
// values into cmd/lazytodo; main calls Set to forward them here.
package buildinfo

import (
	"fmt"
	"runtime/debug"
)

const (
	defaultVersion = "dev"
	defaultCommit  = "none"
	unknown        = "unknown"
	shortCommitLen = 7
)

var (
	version = defaultVersion
	commit  = defaultCommit
	date    = unknown
	builtBy = unknown
)

// Info is a snapshot of the build metadata.
type Info struct {
	Version string
	Commit  string
	Date    string
	BuiltBy string
}

// Set stores the build metadata received from linker-injected variables.
// Empty values keep the defaults.
func Set(v, c, d, b string) {
	version = orDefault(v, defaultVersion)
	commit = orDefault(c, defaultCommit)
	date = orDefault(d, unknown)
	builtBy = orDefault(b, unknown)
}

// Version returns the build version string.
func Version() string { return version }

// Commit returns the build commit hash.
func Commit() string { return commit }

// Date returns the build date string.
func Date() string { return date }

// BuiltBy returns the build agent string.
func BuiltBy() string { return builtBy }

// Get returns the current metadata.
func Get() Info {
	return Info{Version: version, Commit: commit, Date: date, BuiltBy: builtBy}
}

// ShortCommit returns the abbreviated commit hash.
func (i Info) ShortCommit() string {
	if len(i.Commit) > shortCommitLen {
		return i.Commit[:shortCommitLen]
	}
	return i.Commit
}

// Summary is the one-line version string printed by --version.
func (i Info) Summary() string {
	return fmt.Sprintf("lazytodo %s (commit %s, built %s by %s)", i.Version, i.ShortCommit(), i.Date, i.BuiltBy)
}

// Enrich fills commit and builtBy from runtime/debug.ReadBuildInfo when
// the linker did not set them.
func Enrich() {
	if commit != defaultCommit && builtBy != unknown {
		return
	}

	info, ok := debug.ReadBuildInfo()
	if !ok {
		return
	}

	if commit == defaultCommit {
		for _, setting := range info.Settings {
			if setting.Key == "vcs.revision" {
				commit = setting.Value
			}
		}
	}

	if builtBy == unknown {
		builtBy = info.GoVersion
	}
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
