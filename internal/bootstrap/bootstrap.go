package bootstrap

import (
	"context"
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	urfavecli "github.com/urfave/cli/v3"
	"golang.org/x/term"

	"github.com/chmouel/lazytodo/internal/app"
	"github.com/chmouel/lazytodo/internal/buildinfo"
	"github.com/chmouel/lazytodo/internal/cli"
	"github.com/chmouel/lazytodo/internal/config"
	"github.com/chmouel/lazytodo/internal/log"
)

var (
	isTerminal = func() bool { return term.IsTerminal(int(os.Stdout.Fd())) } //nolint:gosec // fd fits in int
	runTUIFunc = runTUI
)

func init() {
	urfavecli.VersionPrinter = func(cmd *urfavecli.Command) {
		fmt.Fprintln(cmd.Root().Writer, buildinfo.Get().Summary())
	}
}

// NewCommand builds the lazytodo root command.
func NewCommand(stdout, stderr io.Writer) *urfavecli.Command {
	return &urfavecli.Command{
		Name:                  "lazytodo",
		Usage:                 "A TUI for the todo_md command",
		Version:               buildinfo.Version(),
		EnableShellCompletion: true,
		Writer:                stdout,
		ErrWriter:             stderr,
		Flags:                 globalFlags(),
		Commands:              subcommands(),
		Action: func(ctx context.Context, cmd *urfavecli.Command) error {
			if cmd.Args().Present() {
				return fmt.Errorf("unknown command %q", cmd.Args().First())
			}
			cfg, err := loadCLIConfig(cmd)
			if err != nil {
				return err
			}
			defer func() { _ = log.Close() }()
			// without a terminal there is nothing to draw on, print the report instead
			if !isTerminal() {
				return runHeadlessWith(ctx, cmd.Root().Writer, cmd.Root().ErrWriter, cfg, cli.Report)
			}
			return runTUIFunc(ctx, cfg)
		},
	}
}

// Run executes lazytodo with args and returns the process exit code.
func Run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	buildinfo.Enrich()
	err := NewCommand(stdout, stderr).Run(ctx, args)
	switch {
	case err == nil:
		return 0
	case cli.Reported(err):
		return 1
	default:
		fmt.Fprintf(stderr, "%v\n", err)
		return 1
	}
}

func runTUI(ctx context.Context, cfg *config.AppConfig) error {
	model := app.NewModel(cfg)
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running app: %w", err)
	}
	return nil
}
