// Package app is the interactive lazytodo host: a Bubble Tea model that
// registers the todo commands, resolves keybindings and shows results.
package app

import (
	"context"
	"fmt"
	"os/exec"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/chmouel/lazytodo/internal/app/screen"
	"github.com/chmouel/lazytodo/internal/app/services"
	"github.com/chmouel/lazytodo/internal/config"
	"github.com/chmouel/lazytodo/internal/editor"
	"github.com/chmouel/lazytodo/internal/invoke"
	"github.com/chmouel/lazytodo/internal/log"
	"github.com/chmouel/lazytodo/internal/status"
	"github.com/chmouel/lazytodo/internal/theme"
	"github.com/chmouel/lazytodo/internal/todo"
)

const (
	maxNotifications = 100
	maxHistory       = 50

	keyQuit        = "q"
	keyCtrlC       = "ctrl+c"
	keyEsc         = "esc"
	keyCommandLine = ":"
	keyHelp        = "?"

	cmdRefresh = "Refresh"
	cmdHelp    = "Help"
	cmdQuit    = "Quit"
)

// Model is the Bubble Tea model of the interactive host. It implements
// editor.Host.
type Model struct {
	ctx    context.Context
	config *config.AppConfig
	theme  *theme.Theme

	invoker  *invoke.Invoker
	client   *todo.Client
	registry *editor.Registry
	keymap   *editor.Keymap
	screens  *screen.Manager
	spinner  spinner.Model
	watch    *services.TodoWatchService

	status        *status.Status
	statusErr     string
	loaded        bool
	notifications []notification
	history       []string
	historyPath   string

	width    int
	height   int
	quitting bool

	commandRunner editor.CommandRunner
	execProcess   func(*exec.Cmd, tea.ExecCallback) tea.Cmd
}

// NewModel builds the interactive host from cfg. Invalid keybindings are
// reported as notifications rather than failing startup.
func NewModel(cfg *config.AppConfig) *Model {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	ctx := context.Background()
	thm := theme.GetTheme(cfg.Theme)

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(thm.Accent)

	m := &Model{
		ctx:           ctx,
		config:        cfg,
		theme:         thm,
		invoker:       invoke.New(ctx),
		registry:      editor.NewRegistry(),
		keymap:        editor.NewKeymap(),
		screens:       screen.NewManager(),
		spinner:       sp,
		commandRunner: exec.CommandContext,
		execProcess:   tea.ExecProcess,
	}
	m.invoker.SetDir(cfg.WorkingDir)
	m.client = todo.NewClient(cfg, m.invoker, m)
	m.loadHistory(services.CommandHistoryPath())

	if err := editor.RegisterTodoCommands(m.registry, m.client); err != nil {
		m.Notify(err.Error(), editor.LevelError)
	}
	if err := m.registry.Register(
		editor.Command{Name: cmdRefresh, Description: "Re-read todo_md status", Handler: func(string) tea.Cmd { return m.client.Refresh() }},
		editor.Command{Name: cmdHelp, Description: "Show keys and commands", Handler: func(string) tea.Cmd { m.showHelp(); return nil }},
		editor.Command{Name: cmdQuit, Description: "Quit lazytodo", Handler: func(string) tea.Cmd { return m.quit() }},
	); err != nil {
		m.Notify(err.Error(), editor.LevelError)
	}
	m.keymap.Reserve(keyQuit, keyCtrlC, keyEsc, keyCommandLine, keyHelp)
	if err := editor.BindTodoKeys(m.keymap, cfg.Keymaps); err != nil {
		m.Notify(err.Error(), editor.LevelError)
	}
	return m
}

// Init starts the spinner and the first status query.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.client.Refresh())
}

// Update handles messages on the controlling loop.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if cmd, ok := invoke.Handle(msg); ok {
		return m, cmd
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.screens.Resize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		return m, m.handleKey(msg)

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case todo.StatusMsg:
		return m, m.handleStatus(msg)

	case todo.FinishedMsg:
		return m, m.handleFinished(msg)

	case editor.FileOpenedMsg:
		if msg.Err != nil {
			m.Notify(fmt.Sprintf("open %s: %v", msg.Path, msg.Err), editor.LevelError)
		}
		return m, nil

	case todoFileChangedMsg:
		return m, m.handleTodoFileChanged()

	case errMsg:
		if msg.err != nil {
			m.Notify(msg.err.Error(), editor.LevelError)
		}
		return m, nil
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	key := msg.String()

	if current := m.screens.Current(); current != nil {
		next, cmd := current.Update(msg)
		if next == nil {
			m.screens.Remove(current)
		} else if next != current {
			m.screens.Replace(current, next)
		}
		return cmd
	}

	if key == keyCtrlC {
		return m.quit()
	}
	if m.keymap.Pending() != "" && key == keyEsc {
		m.keymap.Reset()
		return nil
	}
	if m.keymap.Pending() == "" {
		switch key {
		case keyQuit:
			return m.quit()
		case keyCommandLine:
			m.openCommandLine()
			return nil
		case keyHelp:
			m.showHelp()
			return nil
		}
	}

	command, state := m.keymap.Feed(key)
	if state != editor.FeedMatched {
		return nil
	}
	return m.execute(command, "")
}

func (m *Model) execute(name, arg string) tea.Cmd {
	cmd, err := m.registry.Execute(name, arg)
	if err != nil {
		m.Notify(err.Error(), editor.LevelError)
		return nil
	}
	return cmd
}

func (m *Model) openCommandLine() {
	names := make([]string, 0, len(m.registry.Commands()))
	for _, c := range m.registry.Commands() {
		names = append(names, c.Name)
	}
	prompt := screen.NewCommandLineScreen(names, m.history, m.width, m.theme)
	prompt.OnSubmit = m.runCommandLine
	m.screens.Push(prompt)
}

func (m *Model) runCommandLine(line string) tea.Cmd {
	m.remember(line)
	name, arg := editor.ParseCommandLine(line)
	if name == "" {
		return nil
	}
	return m.execute(name, arg)
}

func (m *Model) remember(line string) {
	if len(m.history) > 0 && m.history[0] == line {
		return
	}
	m.history = append([]string{line}, m.history...)
	if len(m.history) > maxHistory {
		m.history = m.history[:maxHistory]
	}
	if err := services.SaveCommandHistory(m.historyPath, m.history); err != nil {
		log.Warnf("save command history: %v", err)
	}
}

func (m *Model) loadHistory(path string) {
	m.historyPath = path
	history, err := services.LoadCommandHistory(path)
	if err != nil {
		m.Notify("command history: "+err.Error(), editor.LevelWarn)
	}
	if len(history) > maxHistory {
		history = history[:maxHistory]
	}
	m.history = history
}

func (m *Model) handleStatus(msg todo.StatusMsg) tea.Cmd {
	m.loaded = true
	if msg.Status == nil {
		m.statusErr = todo.ErrorText(msg.Result)
		return nil
	}
	m.status = msg.Status
	m.statusErr = ""
	return m.startTodoWatcher()
}

func (m *Model) handleFinished(msg todo.FinishedMsg) tea.Cmd {
	if msg.Err != nil {
		log.Debugf("%s finished: %v", msg.Op, msg.Err)
		return nil
	}
	log.Debugf("%s finished", msg.Op)
	switch msg.Op {
	case todo.OpSync:
		if msg.Sync != nil && !msg.Sync.Committed {
			log.Debugf("sync: nothing committed, status kept")
			return nil
		}
		return m.client.Refresh()
	case todo.OpSetup:
		return m.client.Refresh()
	}
	return nil
}

func (m *Model) quit() tea.Cmd {
	m.quitting = true
	m.stopTodoWatcher()
	return tea.Quit
}
