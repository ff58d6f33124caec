package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/chmouel/lazytodo/internal/config"
	"github.com/chmouel/lazytodo/internal/editor"
	"github.com/chmouel/lazytodo/internal/invoke"
	"github.com/chmouel/lazytodo/internal/todo"
)

// Operation starts one façade operation.
type Operation func(*todo.Client) tea.Cmd

// Operations run by the lazytodo subcommands.
var (
	Where  Operation = (*todo.Client).Refresh
	Report Operation = (*todo.Client).Report
	Sync   Operation = (*todo.Client).Sync
	Open   Operation = (*todo.Client).OpenTodo
	Repo   Operation = (*todo.Client).OpenRepo
	Help   Operation = (*todo.Client).Help
)

// Setup returns the setup operation for remote.
func Setup(remote string) Operation {
	return func(c *todo.Client) tea.Cmd { return c.Setup(remote) }
}

// Run executes op inside a headless Bubble Tea program and returns the
// operation's error. Failures have already been printed by the host.
func Run(ctx context.Context, cfg *config.AppConfig, host *Host, op Operation) error {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	inv := invoke.New(ctx)
	inv.SetDir(cfg.WorkingDir)
	return run(ctx, todo.NewClient(cfg, inv, host), host, op)
}

func run(ctx context.Context, client *todo.Client, host *Host, op Operation) error {
	r := &runner{client: client, host: host, op: op}
	p := tea.NewProgram(r,
		tea.WithContext(ctx),
		tea.WithInput(nil),
		tea.WithOutput(io.Discard),
		tea.WithoutRenderer(),
	)
	final, err := p.Run()
	if err != nil {
		return fmt.Errorf("headless run: %w", err)
	}
	return final.(*runner).result()
}

// Reported reports whether err was already shown to the user by the host.
func Reported(err error) bool {
	return errors.Is(err, todo.ErrCommandFailed) || errors.Is(err, todo.ErrMissingPath)
}

// runner is the model of the headless program. It quits on the first
// FinishedMsg.
type runner struct {
	client *todo.Client
	host   *Host
	op     Operation

	err     error
	openErr error
}

func (r *runner) Init() tea.Cmd {
	if r.op == nil {
		return tea.Quit
	}
	return r.op(r.client)
}

func (r *runner) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if cmd, ok := invoke.Handle(msg); ok {
		return r, cmd
	}
	switch msg := msg.(type) {
	case todo.StatusMsg:
		if msg.Status != nil {
			fmt.Fprint(r.host.Out, msg.Status.Render())
		}
	case editor.FileOpenedMsg:
		if msg.Err != nil {
			r.openErr = fmt.Errorf("open %s: %w", msg.Path, msg.Err)
		}
	case todo.FinishedMsg:
		r.err = msg.Err
		return r, tea.Quit
	}
	return r, nil
}

func (r *runner) View() string { return "" }

func (r *runner) result() error {
	if r.err != nil {
		return r.err
	}
	return r.openErr
}
