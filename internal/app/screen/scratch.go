package screen

import (
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wrap"

	"github.com/chmouel/lazytodo/internal/theme"
)

// ScratchScreen is a read-only, disposable view of text lines. Closing it
// discards its content.
type ScratchScreen struct {
	Title    string
	Lines    []string
	Viewport viewport.Model
	Width    int
	Height   int
	Thm      *theme.Theme
}

// NewScratchScreen creates a scratch view sized for the terminal.
func NewScratchScreen(title string, lines []string, maxWidth, maxHeight int, thm *theme.Theme) *ScratchScreen {
	s := &ScratchScreen{
		Title: title,
		Lines: append([]string(nil), lines...),
		Thm:   thm,
	}
	s.Resize(maxWidth, maxHeight)
	return s
}

// Type returns the screen type.
func (s *ScratchScreen) Type() Type {
	return TypeScratch
}

// Content returns the unwrapped text of the view.
func (s *ScratchScreen) Content() string {
	return strings.Join(s.Lines, "\n")
}

// Resize fits the view to the terminal.
func (s *ScratchScreen) Resize(maxWidth, maxHeight int) {
	s.Width = 96
	s.Height = 30
	if maxWidth > 0 {
		s.Width = clampInt(maxWidth-4, 24, 140)
	}
	if maxHeight > 0 {
		s.Height = clampInt(maxHeight-4, 8, 60)
	}
	s.Viewport.Width = maxInt(1, s.Width-4)
	s.Viewport.Height = maxInt(3, s.Height-4)
	s.setViewportContent()
}

// Update handles scrolling and closing.
func (s *ScratchScreen) Update(msg tea.KeyMsg) (Screen, tea.Cmd) {
	switch msg.String() {
	case keyQ, keyEsc, keyEscRaw, keyCtrlC:
		return nil, nil
	case "j", keyDown:
		s.Viewport.ScrollDown(1)
		return s, nil
	case "k", keyUp:
		s.Viewport.ScrollUp(1)
		return s, nil
	case keyCtrlD, keySpace, keyPageDown:
		s.Viewport.HalfPageDown()
		return s, nil
	case keyCtrlU, keyPageUp:
		s.Viewport.HalfPageUp()
		return s, nil
	case "g":
		s.Viewport.GotoTop()
		return s, nil
	case "G":
		s.Viewport.GotoBottom()
		return s, nil
	}

	var cmd tea.Cmd
	s.Viewport, cmd = s.Viewport.Update(msg)
	return s, cmd
}

// View renders the scratch box.
func (s *ScratchScreen) View() string {
	titleStyle := lipgloss.NewStyle().
		Foreground(s.Thm.Accent).
		Bold(true).
		Width(s.Width - 4).
		Align(lipgloss.Center)

	footerStyle := lipgloss.NewStyle().
		Foreground(s.Thm.MutedFg).
		Width(s.Width - 4).
		Align(lipgloss.Center)

	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(s.Thm.Accent).
		Padding(0, 1).
		Width(s.Width).
		Height(s.Height)

	return boxStyle.Render(lipgloss.JoinVertical(
		lipgloss.Left,
		titleStyle.Render(s.Title),
		s.Viewport.View(),
		footerStyle.Render("q close • j/k scroll • Ctrl+D/U half page • g/G top/bottom"),
	))
}

func (s *ScratchScreen) setViewportContent() {
	if s.Viewport.Width <= 0 {
		return
	}
	content := s.Content()
	if strings.TrimSpace(content) == "" {
		content = "  "
	}
	s.Viewport.SetContent(wrap.String(content, s.Viewport.Width))
}
