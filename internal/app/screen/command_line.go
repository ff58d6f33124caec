package screen

import (
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/chmouel/lazytodo/internal/theme"
)

// CommandLineScreen is the ':' prompt. It completes command names with Tab
// and browses previous lines with Up/Down.
type CommandLineScreen struct {
	Input    textinput.Model
	Commands []string
	Thm      *theme.Theme
	Width    int

	OnSubmit func(line string) tea.Cmd

	// History holds previous lines, newest first.
	History       []string
	HistoryIndex  int // -1 = not browsing
	OriginalInput string
}

// NewCommandLineScreen creates a focused command prompt.
func NewCommandLineScreen(commands, history []string, width int, thm *theme.Theme) *CommandLineScreen {
	ti := textinput.New()
	ti.Prompt = ":"
	ti.Focus()
	ti.CharLimit = 512
	ti.PromptStyle = lipgloss.NewStyle().Foreground(thm.Accent).Bold(true)
	ti.TextStyle = lipgloss.NewStyle().Foreground(thm.TextFg)

	names := append([]string(nil), commands...)
	sort.Strings(names)

	s := &CommandLineScreen{
		Input:        ti,
		Commands:     names,
		Thm:          thm,
		History:      history,
		HistoryIndex: -1,
	}
	s.Resize(width, 0)
	return s
}

// Type returns the screen type.
func (s *CommandLineScreen) Type() Type {
	return TypeCommandLine
}

// Resize fits the prompt to the terminal width.
func (s *CommandLineScreen) Resize(width, _ int) {
	s.Width = width
	if width > 0 {
		s.Input.Width = maxInt(1, width-2)
	}
}

// Update edits the line, submitting on Enter and closing on Esc.
func (s *CommandLineScreen) Update(msg tea.KeyMsg) (Screen, tea.Cmd) {
	switch msg.String() {
	case keyEnter:
		line := strings.TrimSpace(s.Input.Value())
		if line == "" || s.OnSubmit == nil {
			return nil, nil
		}
		return nil, s.OnSubmit(line)

	case keyEsc, keyEscRaw, keyCtrlC:
		return nil, nil

	case keyTab:
		s.complete()
		return s, nil

	case keyUp, keyCtrlP:
		if len(s.History) > 0 {
			if s.HistoryIndex == -1 {
				s.OriginalInput = s.Input.Value()
				s.HistoryIndex = 0
			} else if s.HistoryIndex < len(s.History)-1 {
				s.HistoryIndex++
			}
			s.Input.SetValue(s.History[s.HistoryIndex])
			s.Input.CursorEnd()
		}
		return s, nil

	case keyDown, keyCtrlN:
		switch {
		case s.HistoryIndex > 0:
			s.HistoryIndex--
			s.Input.SetValue(s.History[s.HistoryIndex])
		case s.HistoryIndex == 0:
			s.HistoryIndex = -1
			s.Input.SetValue(s.OriginalInput)
		}
		s.Input.CursorEnd()
		return s, nil
	}

	if msg.Type == tea.KeyBackspace && s.Input.Value() == "" {
		return nil, nil
	}
	if msg.Type == tea.KeyRunes || msg.Type == tea.KeyBackspace || msg.Type == tea.KeyDelete {
		s.HistoryIndex = -1
	}

	var cmd tea.Cmd
	s.Input, cmd = s.Input.Update(msg)
	return s, cmd
}

// complete extends the command name to the longest common prefix of the
// matching commands.
func (s *CommandLineScreen) complete() {
	value := s.Input.Value()
	if strings.Contains(value, " ") {
		return
	}
	var matches []string
	for _, name := range s.Commands {
		if strings.HasPrefix(strings.ToLower(name), strings.ToLower(value)) {
			matches = append(matches, name)
		}
	}
	if len(matches) == 0 {
		return
	}
	completed := matches[0]
	for _, m := range matches[1:] {
		completed = commonPrefix(completed, m)
	}
	if len(matches) == 1 {
		completed += " "
	}
	if len(completed) >= len(value) {
		s.Input.SetValue(completed)
		s.Input.CursorEnd()
	}
}

func commonPrefix(a, b string) string {
	n := min(len(a), len(b))
	for i := 0; i < n; i++ {
		if a[i] != b[i] {
			return a[:i]
		}
	}
	return a[:n]
}

// View renders the prompt line.
func (s *CommandLineScreen) View() string {
	style := lipgloss.NewStyle().Foreground(s.Thm.TextFg)
	if s.Width > 0 {
		style = style.Width(s.Width)
	}
	return style.Render(s.Input.View())
}
