// Package editor defines what lazytodo needs from the editor hosting it:
// notifications, opening files, scratch views, commands and keybindings.
package editor

import tea "github.com/charmbracelet/bubbletea"

// Level is a notification severity.
type Level int

// Notification levels.
const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

// String returns the lowercase level name.
func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "debug"
	case LevelInfo:
		return "info"
	case LevelWarn:
		return "warn"
	case LevelError:
		return "error"
	default:
		return "unknown"
	}
}

// Host is the editor side of the integration. Its methods are only called
// from the Bubble Tea Update loop, so implementations may touch UI state
// without locking.
type Host interface {
	// Notify shows a message to the user.
	Notify(message string, level Level)
	// OpenFile opens path with the configured open action. The returned
	// command, when not nil, eventually yields a FileOpenedMsg.
	OpenFile(path string) tea.Cmd
	// ShowScratch displays read-only lines in a disposable view.
	ShowScratch(title string, lines []string)
}

// FileOpenedMsg reports that an OpenFile action finished.
type FileOpenedMsg struct {
	Path string
	Err  error
}
