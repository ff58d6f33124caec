// Package bootstrap wires the lazytodo command line.
package bootstrap

import (
	"strings"

	urfavecli "github.com/urfave/cli/v3"

	"github.com/chmouel/lazytodo/internal/theme"
)

// globalFlags returns all global flags for the application.
// Note: --version is provided automatically by urfave/cli via Command.Version
func globalFlags() []urfavecli.Flag {
	return []urfavecli.Flag{
		&urfavecli.StringFlag{
			Name:  "config-file",
			Usage: "Path to configuration file",
		},
		&urfavecli.StringSliceFlag{
			Name:    "config",
			Aliases: []string{"C"},
			Usage:   "Override config values (repeatable): --config=lt.key=value",
		},
		&urfavecli.StringFlag{
			Name:  "debug-log",
			Usage: "Path to debug log file",
		},
		&urfavecli.StringFlag{
			Name:  "command",
			Usage: "todo_md executable to run",
		},
		&urfavecli.StringFlag{
			Name:  "open-action",
			Usage: "How files are opened: edit, pager, view or print",
		},
		&urfavecli.StringFlag{
			Name:    "theme",
			Aliases: []string{"t"},
			Usage:   "Override the UI theme (" + strings.Join(theme.AvailableThemes(), ", ") + ")",
		},
		&urfavecli.StringFlag{
			Name:    "working-dir",
			Aliases: []string{"d"},
			Usage:   "Directory todo_md runs in",
		},
		&urfavecli.BoolFlag{
			Name:  "auto-refresh",
			Usage: "Watch the todo file and refresh the status when it changes",
		},
		&urfavecli.BoolFlag{
			Name:  "no-notify",
			Usage: "Do not print informational messages",
		},
	}
}
