package editor

import (
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/chmouel/lazytodo/internal/config"
)

// Todo command names.
const (
	CmdTodoOpen  = "TodoOpen"
	CmdTodoRepo  = "TodoRepo"
	CmdTodoSync  = "TodoSync"
	CmdTodoWhere = "TodoWhere"
	CmdTodoSetup = "TodoSetup"
	CmdTodoHelp  = "TodoHelp"
)

// TodoActions is the set of operations the todo commands dispatch to.
type TodoActions interface {
	OpenTodo() tea.Cmd
	OpenRepo() tea.Cmd
	Sync() tea.Cmd
	Report() tea.Cmd
	Setup(remote string) tea.Cmd
	Help() tea.Cmd
}

// RegisterTodoCommands registers the Todo* commands on reg.
func RegisterTodoCommands(reg *Registry, actions TodoActions) error {
	noArg := func(fn func() tea.Cmd) func(string) tea.Cmd {
		return func(string) tea.Cmd { return fn() }
	}
	return reg.Register(
		Command{Name: CmdTodoOpen, Description: "Open the todo file", Handler: noArg(actions.OpenTodo)},
		Command{Name: CmdTodoRepo, Description: "Open the todo config", Handler: noArg(actions.OpenRepo)},
		Command{Name: CmdTodoSync, Description: "Sync todos with the remote", Handler: noArg(actions.Sync)},
		Command{Name: CmdTodoWhere, Description: "Show todo_md status", Handler: noArg(actions.Report)},
		Command{Name: CmdTodoSetup, Description: "Set up the todo repository [remote]", Args: 1, Handler: actions.Setup},
		Command{Name: CmdTodoHelp, Description: "Show todo_md help", Handler: noArg(actions.Help)},
	)
}

// BindTodoKeys binds the configured keys to the todo commands. Nothing is
// bound when keymaps are disabled; an empty sequence skips that command.
// A binding that fails is reported and the others are still bound.
func BindTodoKeys(km *Keymap, keys config.Keymaps) error {
	if !keys.Enabled {
		return nil
	}
	var errs []error
	for _, b := range []Binding{
		{Sequence: keys.Open, Command: CmdTodoOpen},
		{Sequence: keys.Sync, Command: CmdTodoSync},
		{Sequence: keys.Where, Command: CmdTodoWhere},
		{Sequence: keys.Repo, Command: CmdTodoRepo},
	} {
		if b.Sequence == "" {
			continue
		}
		if err := km.Bind(b.Sequence, b.Command); err != nil {
			errs = append(errs, fmt.Errorf("keymaps: %w", err))
		}
	}
	return errors.Join(errs...)
}
