// Package invoke runs the todo CLI without blocking the Bubble Tea loop.
//
// Invoke returns a tea.Cmd; Bubble Tea runs it on its own goroutine, where
// the process is spawned and waited on. The command yields a CompletedMsg
// and the host's Update calls Deliver on it, so completion callbacks always
// run on the Update loop, one at a time.
package invoke

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/chmouel/lazytodo/internal/log"
)

// ExitSpawnFailure is the exit code reported when the process could not
// be started at all.
const ExitSpawnFailure = -1

// LookupPath finds executables in PATH. Tests replace it to avoid
// depending on installed binaries.
var LookupPath = exec.LookPath

// CommandRunner builds the *exec.Cmd for an invocation.
type CommandRunner func(ctx context.Context, name string, args ...string) *exec.Cmd

// Result is the outcome of one invocation. A non-zero ExitCode is data,
// not an error.
type Result struct {
	ExitCode int
	Stdout   string
	Stderr   string
}

// OK reports whether the process exited with status 0.
func (r Result) OK() bool {
	return r.ExitCode == 0
}

// Callback receives the Result on the Update loop. The returned command,
// if any, is handed back to Bubble Tea.
type Callback func(Result) tea.Cmd

// CompletedMsg carries a finished invocation back to the Update loop.
type CompletedMsg struct {
	ID     uint64
	Result Result
	c      *completion
}

// Deliver runs the invocation's callback. Only the first call for a given
// invocation does anything.
func (m CompletedMsg) Deliver() tea.Cmd {
	if m.c == nil {
		return nil
	}
	return m.c.fire(m.Result)
}

type completion struct {
	id       uint64
	once     sync.Once
	callback Callback
	inFlight *atomic.Int64
}

func (c *completion) fire(res Result) tea.Cmd {
	var cmd tea.Cmd
	fired := false
	c.once.Do(func() {
		fired = true
		if c.inFlight != nil {
			c.inFlight.Add(-1)
		}
		if c.callback != nil {
			cmd = c.callback(res)
		}
	})
	if !fired {
		log.Debugf("invocation %d already delivered, ignoring", c.id)
	}
	return cmd
}

// Handle delivers msg if it is a CompletedMsg.
func Handle(msg tea.Msg) (tea.Cmd, bool) {
	done, ok := msg.(CompletedMsg)
	if !ok {
		return nil, false
	}
	return done.Deliver(), true
}

// Invoker spawns external commands asynchronously.
type Invoker struct {
	ctx      context.Context
	runner   CommandRunner
	dir      string
	seq      atomic.Uint64
	inFlight atomic.Int64
}

// New creates an Invoker. Processes are never cancelled through ctx: once
// started they run to completion.
func New(ctx context.Context) *Invoker {
	if ctx == nil {
		ctx = context.Background()
	}
	return &Invoker{
		ctx:    context.WithoutCancel(ctx),
		runner: exec.CommandContext,
	}
}

// SetCommandRunner replaces the function used to build commands. A nil
// runner makes every invocation fail synchronously.
func (i *Invoker) SetCommandRunner(runner CommandRunner) {
	i.runner = runner
}

// SetDir sets the working directory for spawned processes. Empty means the
// current directory.
func (i *Invoker) SetDir(dir string) {
	i.dir = strings.TrimSpace(dir)
}

// InFlight returns the number of invocations whose callback has not run yet.
func (i *Invoker) InFlight() int {
	return int(i.inFlight.Load())
}

// Invoke runs name with args and arranges for onComplete to be called once
// with the Result. When the command cannot be spawned, onComplete runs
// before Invoke returns and its command is returned instead.
func (i *Invoker) Invoke(name string, args []string, onComplete Callback) tea.Cmd {
	id := i.seq.Add(1)
	argv := append([]string(nil), args...)
	command := describe(name, argv)

	i.inFlight.Add(1)
	c := &completion{id: id, callback: onComplete, inFlight: &i.inFlight}

	if err := i.checkSpawn(name); err != nil {
		log.Errorf("invocation %d: %s: %v", id, command, err)
		return c.fire(spawnFailure(name, err))
	}

	log.Debugf("invocation %d: run %s (cwd=%s)", id, command, i.dirLabel())
	return func() tea.Msg {
		res := i.run(name, argv)
		log.Debugf("invocation %d: %s exited %d", id, command, res.ExitCode)
		return CompletedMsg{ID: id, Result: res, c: c}
	}
}

func (i *Invoker) checkSpawn(name string) error {
	if i.runner == nil {
		return errors.New("no process runner available")
	}
	if strings.TrimSpace(name) == "" {
		return errors.New("empty command name")
	}
	if _, err := LookupPath(i.resolve(name)); err != nil {
		return err
	}
	return nil
}

// resolve returns the path exec will start: a relative path with a
// directory part is taken from the working directory, like cmd.Dir does.
func (i *Invoker) resolve(name string) string {
	if i.dir == "" || filepath.IsAbs(name) || !strings.ContainsRune(name, filepath.Separator) {
		return name
	}
	return filepath.Join(i.dir, name)
}

func (i *Invoker) run(name string, args []string) Result {
	// #nosec G204 -- the command name comes from local config and args from fixed subcommands
	cmd := i.runner(i.ctx, name, args...)
	if i.dir != "" {
		cmd.Dir = i.dir
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	res := Result{
		Stdout: text(stdout.Bytes()),
		Stderr: text(stderr.Bytes()),
	}
	if err == nil {
		return res
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		// -1 when the process was killed by a signal
		res.ExitCode = exitErr.ExitCode()
		return res
	}

	res.ExitCode = ExitSpawnFailure
	if res.Stderr != "" {
		res.Stderr += "\n"
	}
	res.Stderr += fmt.Sprintf("failed to run %s: %v", name, err)
	return res
}

func spawnFailure(name string, err error) Result {
	return Result{
		ExitCode: ExitSpawnFailure,
		Stderr:   fmt.Sprintf("cannot start %q: %v", name, err),
	}
}

func text(b []byte) string {
	return strings.ToValidUTF8(string(b), "�")
}

func describe(name string, args []string) string {
	if len(args) == 0 {
		return name
	}
	return name + " " + strings.Join(args, " ")
}

func (i *Invoker) dirLabel() string {
	if i.dir == "" {
		return "."
	}
	return i.dir
}
