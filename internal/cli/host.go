// Package cli is the headless lazytodo host used by scripted subcommands.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fatih/color"

	"github.com/chmouel/lazytodo/internal/config"
	"github.com/chmouel/lazytodo/internal/editor"
	"github.com/chmouel/lazytodo/internal/log"
)

// Host implements editor.Host on plain stdout and stderr.
type Host struct {
	Out   io.Writer
	Err   io.Writer
	Stdin io.Reader

	cfg           *config.AppConfig
	ctx           context.Context
	commandRunner editor.CommandRunner

	red    func(a ...any) string
	yellow func(a ...any) string
	cyan   func(a ...any) string
}

// NewHost creates a headless host writing to out and errOut.
func NewHost(cfg *config.AppConfig, out, errOut io.Writer) *Host {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	return &Host{
		Out:           out,
		Err:           errOut,
		Stdin:         os.Stdin,
		cfg:           cfg,
		ctx:           context.Background(),
		commandRunner: exec.CommandContext,
		red:           color.New(color.FgRed, color.Bold).SprintFunc(),
		yellow:        color.New(color.FgYellow).SprintFunc(),
		cyan:          color.New(color.FgCyan).SprintFunc(),
	}
}

// Notify prints info messages to Out and warnings and errors to Err.
func (h *Host) Notify(message string, level editor.Level) {
	log.Printf("notify %s: %s", level, message)
	switch level {
	case editor.LevelDebug:
	case editor.LevelInfo:
		fmt.Fprintln(h.Out, message)
	case editor.LevelWarn:
		fmt.Fprintf(h.Err, "%s %s\n", h.yellow("warning:"), message)
	default:
		fmt.Fprintf(h.Err, "%s %s\n", h.red("error:"), message)
	}
}

// ShowScratch prints lines to Out.
func (h *Host) ShowScratch(_ string, lines []string) {
	for _, line := range lines {
		fmt.Fprintln(h.Out, line)
	}
}

// OpenFile runs the editor or pager attached to the terminal, prints the
// file for view, or prints the path for print.
func (h *Host) OpenFile(path string) tea.Cmd {
	switch h.cfg.OpenAction {
	case config.OpenActionView:
		lines, err := editor.ViewLines(path)
		if err == nil {
			fmt.Fprintf(h.Out, "%s\n", h.cyan("==> "+path))
			h.ShowScratch(path, lines)
		}
		return opened(path, err)
	case config.OpenActionPrint:
		fmt.Fprintln(h.Out, path)
		return opened(path, nil)
	case config.OpenActionPager:
		return h.attach(h.cfg.PagerCommand(), path)
	default:
		return h.attach(h.cfg.EditorCommand(), path)
	}
}

func (h *Host) attach(command, path string) tea.Cmd {
	c, err := editor.ExternalCommand(h.ctx, h.commandRunner, command, path, h.cfg.WorkingDir)
	if err != nil {
		return opened(path, fmt.Errorf("%w for %s", err, h.cfg.OpenAction))
	}
	c.Stdin = h.Stdin
	c.Stdout = h.Out
	c.Stderr = h.Err
	return func() tea.Msg {
		log.Debugf("open %s with %q", path, command)
		return editor.FileOpenedMsg{Path: path, Err: c.Run()}
	}
}

func opened(path string, err error) tea.Cmd {
	return func() tea.Msg {
		return editor.FileOpenedMsg{Path: path, Err: err}
	}
}

