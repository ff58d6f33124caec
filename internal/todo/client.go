// Package todo exposes the todo_md operations used by lazytodo hosts.
//
// Every operation returns a tea.Cmd that starts the todo_md process. Its
// completion is handled on the host's Update loop and always ends with a
// FinishedMsg, so a headless host knows when to exit.
package todo

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/chmouel/lazytodo/internal/config"
	"github.com/chmouel/lazytodo/internal/editor"
	"github.com/chmouel/lazytodo/internal/invoke"
	"github.com/chmouel/lazytodo/internal/log"
	"github.com/chmouel/lazytodo/internal/report"
	"github.com/chmouel/lazytodo/internal/status"
)

// Operation names a façade operation.
type Operation string

// Operations.
const (
	OpWhere    Operation = "where"
	OpOpenTodo Operation = "open"
	OpOpenRepo Operation = "repo"
	OpSync     Operation = "sync"
	OpSetup    Operation = "setup"
	OpReport   Operation = "report"
	OpHelp     Operation = "help"
)

// Sentinel errors carried by FinishedMsg.Err.
var (
	ErrCommandFailed = errors.New("todo_md command failed")
	ErrMissingPath   = errors.New("missing path")
)

const (
	unknownError        = "unknown error"
	defaultSyncMessage  = "sync complete"
	defaultSetupMessage = "setup complete"
	helpTitle           = "todo_md help"
)

// FinishedMsg is the last message of every operation. Sync is set when a
// successful sync printed a summary line.
type FinishedMsg struct {
	Op   Operation
	Err  error
	Sync *status.SyncSummary
}

// StatusMsg carries the result of a status refresh.
type StatusMsg struct {
	Status *status.Status
	Result invoke.Result
}

// Invoker starts todo_md processes.
type Invoker interface {
	Invoke(name string, args []string, onComplete invoke.Callback) tea.Cmd
}

// StatusCallback receives the parsed status of a where query, or nil
// when the query failed.
type StatusCallback func(*status.Status, invoke.Result) tea.Cmd

// Client runs todo_md operations and reports their outcome to the host.
type Client struct {
	cfg  *config.AppConfig
	inv  Invoker
	host editor.Host
}

// NewClient creates a Client. A nil cfg uses the defaults.
func NewClient(cfg *config.AppConfig, inv Invoker, host editor.Host) *Client {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	return &Client{cfg: cfg, inv: inv, host: host}
}

// Where queries todo_md for its resolved paths and passes the parsed
// status to cb. On failure the error is reported and cb gets nil.
func (c *Client) Where(cb StatusCallback) tea.Cmd {
	return c.invoke(OpWhere, []string{"where"}, func(res invoke.Result) tea.Cmd {
		if !res.OK() {
			c.notifyError(ErrorText(res))
			return cb(nil, res)
		}
		st := status.Parse(res.Stdout)
		log.Debugf("todo_md where: %d keys", st.Len())
		return cb(st, res)
	})
}

// Refresh runs Where and emits a StatusMsg followed by a FinishedMsg.
func (c *Client) Refresh() tea.Cmd {
	return c.Where(func(st *status.Status, res invoke.Result) tea.Cmd {
		msg := StatusMsg{Status: st, Result: res}
		return tea.Sequence(
			func() tea.Msg { return msg },
			finished(OpWhere, statusError(st, res)),
		)
	})
}

// OpenTodo opens the todo file reported by todo_md.
func (c *Client) OpenTodo() tea.Cmd {
	return c.openPath(OpOpenTodo, status.KeyTodo)
}

// OpenRepo opens the todo_md config directory.
func (c *Client) OpenRepo() tea.Cmd {
	return c.openPath(OpOpenRepo, status.KeyConfig)
}

func (c *Client) openPath(op Operation, key string) tea.Cmd {
	return c.Where(func(st *status.Status, res invoke.Result) tea.Cmd {
		if st == nil {
			return finished(op, statusError(st, res))
		}
		path, ok := st.Get(key)
		if !ok {
			c.notifyError("missing " + key + " path")
			return finished(op, fmt.Errorf("%w: %s", ErrMissingPath, key))
		}
		log.Debugf("opening %s: %s", key, path)
		return then(c.host.OpenFile(path), op)
	})
}

// Sync pulls, commits and pushes the todo repository.
func (c *Client) Sync() tea.Cmd {
	return c.invoke(OpSync, []string{"sync"}, func(res invoke.Result) tea.Cmd {
		if !res.OK() {
			c.notifyError(ErrorText(res))
			return finished(OpSync, commandError(OpSync, res))
		}
		out := strings.TrimRightFunc(res.Stdout, unicode.IsSpace)
		summary, ok := status.ParseSyncSummary(out)
		if out == "" {
			out = defaultSyncMessage
		}
		c.notifyInfo(out)
		if !ok {
			return finished(OpSync, nil)
		}
		log.Debugf("sync: committed=%t changes=%d lines=%q", summary.Committed, summary.Changes(), summary.LineSummary)
		return func() tea.Msg { return FinishedMsg{Op: OpSync, Sync: &summary} }
	})
}

// Setup initialises the todo repository, optionally with a remote URL.
func (c *Client) Setup(remote string) tea.Cmd {
	args := []string{"setup"}
	if remote = strings.TrimSpace(remote); remote != "" {
		args = append(args, remote)
	}
	return c.invoke(OpSetup, args, func(res invoke.Result) tea.Cmd {
		if !res.OK() {
			c.notifyError(ErrorText(res))
			return finished(OpSetup, commandError(OpSetup, res))
		}
		out := strings.TrimRightFunc(res.Stdout, unicode.IsSpace)
		if out == "" {
			out = defaultSetupMessage
		}
		c.notifyInfo(out)
		return finished(OpSetup, nil)
	})
}

// Report shows the status report in a scratch view.
func (c *Client) Report() tea.Cmd {
	return c.Where(func(st *status.Status, res invoke.Result) tea.Cmd {
		report.Show(c.host, st, res)
		return finished(OpReport, statusError(st, res))
	})
}

// Help shows the todo_md command summary in a scratch view.
func (c *Client) Help() tea.Cmd {
	return c.invoke(OpHelp, []string{"help"}, func(res invoke.Result) tea.Cmd {
		if !res.OK() {
			c.notifyError(ErrorText(res))
			return finished(OpHelp, commandError(OpHelp, res))
		}
		out := strings.TrimSpace(res.Stdout)
		var lines []string
		if out != "" {
			lines = strings.Split(out, "\n")
		}
		c.host.ShowScratch(helpTitle, lines)
		return finished(OpHelp, nil)
	})
}

func (c *Client) invoke(op Operation, args []string, cb invoke.Callback) tea.Cmd {
	log.Debugf("todo %s: %s %s", op, c.cfg.CommandName, strings.Join(args, " "))
	return c.inv.Invoke(c.cfg.CommandName, args, cb)
}

func (c *Client) notifyError(msg string) {
	log.Errorf("%s", msg)
	c.host.Notify(msg, editor.LevelError)
}

func (c *Client) notifyInfo(msg string) {
	if !c.cfg.NotifyEnabled {
		return
	}
	c.host.Notify(msg, editor.LevelInfo)
}

// ErrorText picks the user-facing text of a failed invocation: stderr,
// then stdout, then a generic message.
func ErrorText(res invoke.Result) string {
	if text := strings.TrimSpace(res.Stderr); text != "" {
		return text
	}
	if text := strings.TrimSpace(res.Stdout); text != "" {
		return text
	}
	return unknownError
}

func commandError(op Operation, res invoke.Result) error {
	return fmt.Errorf("%w: %s exited %d: %s", ErrCommandFailed, op, res.ExitCode, ErrorText(res))
}

func statusError(st *status.Status, res invoke.Result) error {
	if st != nil {
		return nil
	}
	return commandError(OpWhere, res)
}

func finished(op Operation, err error) tea.Cmd {
	return func() tea.Msg { return FinishedMsg{Op: op, Err: err} }
}

// then runs cmd before finishing op.
func then(cmd tea.Cmd, op Operation) tea.Cmd {
	if cmd == nil {
		return finished(op, nil)
	}
	return tea.Sequence(cmd, finished(op, nil))
}
