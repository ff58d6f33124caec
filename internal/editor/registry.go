package editor

import (
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// Errors returned by Registry.
var (
	ErrUnknownCommand = errors.New("unknown command")
	ErrTooManyArgs    = errors.New("command takes no argument")
)

// Command is a named editor command. Args is 0 or 1; the argument of a
// one-argument command is optional and arrives as "" when omitted.
type Command struct {
	Name        string
	Description string
	Args        int
	Handler     func(arg string) tea.Cmd
}

// Registry stores editor commands in registration order.
type Registry struct {
	commands []Command
	byName   map[string]Command
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{byName: make(map[string]Command)}
}

// Register adds commands. Names must be unique, non-empty and free of
// whitespace.
func (r *Registry) Register(commands ...Command) error {
	for _, cmd := range commands {
		if cmd.Name == "" || strings.ContainsAny(cmd.Name, " \t\n") {
			return fmt.Errorf("invalid command name %q", cmd.Name)
		}
		if cmd.Args < 0 || cmd.Args > 1 {
			return fmt.Errorf("command %s: unsupported argument count %d", cmd.Name, cmd.Args)
		}
		if cmd.Handler == nil {
			return fmt.Errorf("command %s: missing handler", cmd.Name)
		}
		if _, exists := r.byName[cmd.Name]; exists {
			return fmt.Errorf("command %s already registered", cmd.Name)
		}
		r.commands = append(r.commands, cmd)
		r.byName[cmd.Name] = cmd
	}
	return nil
}

// Commands returns the registered commands in order.
func (r *Registry) Commands() []Command {
	return append([]Command(nil), r.commands...)
}

// Execute runs the named command with arg.
func (r *Registry) Execute(name, arg string) (tea.Cmd, error) {
	cmd, ok := r.byName[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownCommand, name)
	}
	arg = strings.TrimSpace(arg)
	if cmd.Args == 0 && arg != "" {
		return nil, fmt.Errorf("%w: %s", ErrTooManyArgs, name)
	}
	return cmd.Handler(arg), nil
}

// ExecuteLine parses "Name [arg]" and runs it.
func (r *Registry) ExecuteLine(line string) (tea.Cmd, error) {
	name, arg := ParseCommandLine(line)
	if name == "" {
		return nil, nil
	}
	return r.Execute(name, arg)
}

// ParseCommandLine splits a command line into the command name and the
// rest of the line. A leading ':' is dropped.
func ParseCommandLine(line string) (string, string) {
	line = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(line), ":"))
	if line == "" {
		return "", ""
	}
	name, rest, _ := strings.Cut(line, " ")
	return name, strings.TrimSpace(rest)
}
