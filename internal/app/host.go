package app

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/chmouel/lazytodo/internal/app/screen"
	"github.com/chmouel/lazytodo/internal/config"
	"github.com/chmouel/lazytodo/internal/editor"
	"github.com/chmouel/lazytodo/internal/log"
)

const helpTitle = "lazytodo help"

// Notify appends message to the notification log. Debug messages only go
// to the debug log.
func (m *Model) Notify(message string, level editor.Level) {
	log.Printf("notify %s: %s", level, message)
	if level == editor.LevelDebug {
		return
	}
	m.notifications = append(m.notifications, notification{
		at:      time.Now(),
		level:   level,
		message: message,
	})
	if extra := len(m.notifications) - maxNotifications; extra > 0 {
		m.notifications = append([]notification(nil), m.notifications[extra:]...)
	}
}

// ShowScratch pushes a read-only scratch view.
func (m *Model) ShowScratch(title string, lines []string) {
	m.screens.Push(screen.NewScratchScreen(title, lines, m.width, m.height, m.theme))
}

// OpenFile opens path according to open_action.
func (m *Model) OpenFile(path string) tea.Cmd {
	switch m.config.OpenAction {
	case config.OpenActionPager:
		return m.openExternal(m.config.PagerCommand(), path)
	case config.OpenActionView:
		return m.viewFile(path)
	case config.OpenActionPrint:
		m.Notify(path, editor.LevelInfo)
		return fileOpened(path, nil)
	default:
		return m.openExternal(m.config.EditorCommand(), path)
	}
}

func (m *Model) openExternal(command, path string) tea.Cmd {
	c, err := editor.ExternalCommand(m.ctx, m.commandRunner, command, path, m.config.WorkingDir)
	if err != nil {
		return fileOpened(path, fmt.Errorf("%w for %s", err, m.config.OpenAction))
	}
	log.Debugf("open %s with %q", path, command)
	return m.execProcess(c, func(err error) tea.Msg {
		return editor.FileOpenedMsg{Path: path, Err: err}
	})
}

func (m *Model) viewFile(path string) tea.Cmd {
	lines, err := editor.ViewLines(path)
	if err != nil {
		return fileOpened(path, err)
	}
	m.ShowScratch(path, lines)
	return fileOpened(path, nil)
}

func (m *Model) showHelp() {
	lines := []string{"Keys:"}
	for _, b := range m.keymap.Bindings() {
		lines = append(lines, fmt.Sprintf("  %-12s %s", b.Sequence, b.Command))
	}
	lines = append(lines,
		fmt.Sprintf("  %-12s %s", keyCommandLine, "command line"),
		fmt.Sprintf("  %-12s %s", keyHelp, "this help"),
		fmt.Sprintf("  %-12s %s", keyQuit, "quit"),
		"",
		"Commands:",
	)
	for _, c := range m.registry.Commands() {
		name := c.Name
		if c.Args > 0 {
			name += " [arg]"
		}
		lines = append(lines, fmt.Sprintf("  %-18s %s", name, c.Description))
	}
	m.ShowScratch(helpTitle, lines)
}

func fileOpened(path string, err error) tea.Cmd {
	return func() tea.Msg {
		return editor.FileOpenedMsg{Path: path, Err: err}
	}
}

