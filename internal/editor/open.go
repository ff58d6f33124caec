package editor

import (
	"context"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// ErrNoCommand is returned when no editor or pager command is configured.
var ErrNoCommand = errors.New("no command configured")

// CommandRunner builds commands; exec.CommandContext outside tests.
type CommandRunner func(ctx context.Context, name string, args ...string) *exec.Cmd

// ExternalCommand returns the sh invocation running command on path in
// dir. The command string may carry its own arguments.
func ExternalCommand(ctx context.Context, run CommandRunner, command, path, dir string) (*exec.Cmd, error) {
	command = strings.TrimSpace(command)
	if command == "" {
		return nil, ErrNoCommand
	}
	// #nosec G204 -- command is constructed from user config and the todo_md path
	c := run(ctx, "sh", "-c", command+" "+ShellQuote(path))
	c.Dir = dir
	if commandIsLess(command) {
		c.Env = append(os.Environ(), "LESSHISTFILE=-")
	}
	return c, nil
}

// ShellQuote single-quotes input for sh.
func ShellQuote(input string) string {
	if input == "" {
		return "''"
	}
	return "'" + strings.ReplaceAll(input, "'", "'\"'\"'") + "'"
}

// commandIsLess reports whether the first word of command, after any
// VAR=value assignments, is less.
func commandIsLess(command string) bool {
	for field := range strings.FieldsSeq(command) {
		if strings.Contains(field, "=") && !strings.HasPrefix(field, "-") && !strings.Contains(field, "/") {
			continue
		}
		return filepath.Base(field) == "less"
	}
	return false
}
