// Package screen provides the stacked overlays of the lazytodo TUI.
package screen

import (
	tea "github.com/charmbracelet/bubbletea"
)

// Screen is an overlay that handles keys and renders itself.
type Screen interface {
	// Update processes a key message. Returning a nil Screen closes it.
	Update(msg tea.KeyMsg) (Screen, tea.Cmd)

	// View renders the screen's content.
	View() string

	// Type returns the screen's type identifier.
	Type() Type
}

// Resizable screens follow terminal size changes.
type Resizable interface {
	Resize(width, height int)
}

// Type identifies the kind of screen being displayed.
type Type int

// Screen type constants.
const (
	TypeNone Type = iota
	TypeScratch
	TypeCommandLine
)

// String returns a human-readable name for the screen type.
func (t Type) String() string {
	switch t {
	case TypeNone:
		return "none"
	case TypeScratch:
		return "scratch"
	case TypeCommandLine:
		return "command-line"
	default:
		return "unknown"
	}
}
