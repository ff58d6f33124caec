package app

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wrap"

	"github.com/chmouel/lazytodo/internal/app/screen"
	"github.com/chmouel/lazytodo/internal/buildinfo"
	"github.com/chmouel/lazytodo/internal/editor"
	"github.com/chmouel/lazytodo/internal/status"
)

const (
	defaultWidth  = 80
	defaultHeight = 24
)

// View renders the model.
func (m *Model) View() string {
	if m.quitting {
		return ""
	}
	width, height := m.size()

	header := m.renderHeader(width)
	footer := m.renderFooter(width)
	bodyHeight := max(1, height-lipgloss.Height(header)-lipgloss.Height(footer))

	var body string
	if current := m.screens.Current(); current != nil && current.Type() == screen.TypeScratch {
		body = lipgloss.Place(width, bodyHeight, lipgloss.Center, lipgloss.Center, current.View())
	} else {
		body = m.renderBody(width, bodyHeight)
	}
	return lipgloss.JoinVertical(lipgloss.Left, header, body, footer)
}

func (m *Model) size() (int, int) {
	width, height := m.width, m.height
	if width <= 0 {
		width = defaultWidth
	}
	if height <= 0 {
		height = defaultHeight
	}
	return width, height
}

func (m *Model) renderHeader(width int) string {
	headerStyle := lipgloss.NewStyle().
		Background(m.theme.Accent).
		Foreground(m.theme.AccentFg).
		Bold(true).
		Width(width).
		Padding(0, 2).
		Align(lipgloss.Center)

	content := "lazytodo"
	if v := buildinfo.Version(); v != "" {
		content += " " + v
	}
	if branch, ok := m.status.Get(status.KeyBranch); ok {
		content = fmt.Sprintf("%s  •  %s", content, branch)
	}
	return headerStyle.Render(content)
}

func (m *Model) renderBody(width, height int) string {
	panel := m.renderStatusPanel(width)
	logHeight := max(1, height-lipgloss.Height(panel))
	return lipgloss.JoinVertical(lipgloss.Left, panel, m.renderNotifications(width, logHeight))
}

func (m *Model) renderStatusPanel(width int) string {
	keyStyle := lipgloss.NewStyle().Foreground(m.theme.Accent).Bold(true)
	valueStyle := lipgloss.NewStyle().Foreground(m.theme.TextFg)
	missingStyle := lipgloss.NewStyle().Foreground(m.theme.MutedFg).Italic(true)
	errorStyle := lipgloss.NewStyle().Foreground(m.theme.ErrorFg)

	var lines []string
	switch {
	case !m.loaded:
		lines = append(lines, missingStyle.Render("loading todo_md status…"))
	case m.status == nil && m.statusErr != "":
		lines = append(lines, errorStyle.Render(m.statusErr))
	default:
		known := map[string]bool{}
		for _, key := range status.KnownKeys() {
			known[key] = true
			value, ok := m.status.Get(key)
			rendered := valueStyle.Render(value)
			if !ok {
				rendered = missingStyle.Render("<missing>")
			}
			lines = append(lines, fmt.Sprintf("%s %s", keyStyle.Render(fmt.Sprintf("%-7s", key+":")), rendered))
		}
		for _, key := range m.status.Keys() {
			if known[key] {
				continue
			}
			lines = append(lines, fmt.Sprintf("%s %s", keyStyle.Render(key+":"), valueStyle.Render(m.status.Value(key))))
		}
		if m.statusErr != "" {
			lines = append(lines, errorStyle.Render("last refresh failed: "+m.statusErr))
		}
	}

	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(m.theme.Border).
		Padding(0, 1).
		Width(max(1, width-2))
	title := lipgloss.NewStyle().Foreground(m.theme.MutedFg).Render("todo_md status")
	return boxStyle.Render(title + "\n" + strings.Join(lines, "\n"))
}

func (m *Model) renderNotifications(width, height int) string {
	timeStyle := lipgloss.NewStyle().Foreground(m.theme.MutedFg)
	var rendered []string
	for _, n := range m.notifications {
		prefix := timeStyle.Render(n.at.Format("15:04:05")) + " " + m.levelStyle(n.level).Render(fmt.Sprintf("%-5s", n.level))
		body := wrap.String(n.message, max(10, width-16))
		for i, line := range strings.Split(body, "\n") {
			if i == 0 {
				rendered = append(rendered, prefix+" "+line)
				continue
			}
			rendered = append(rendered, strings.Repeat(" ", 15)+line)
		}
	}
	if len(rendered) > height {
		rendered = rendered[len(rendered)-height:]
	}
	return lipgloss.NewStyle().Width(width).Height(height).Render(strings.Join(rendered, "\n"))
}

func (m *Model) levelStyle(level editor.Level) lipgloss.Style {
	style := lipgloss.NewStyle().Bold(true)
	switch level {
	case editor.LevelError:
		return style.Foreground(m.theme.ErrorFg)
	case editor.LevelWarn:
		return style.Foreground(m.theme.WarnFg)
	case editor.LevelInfo:
		return style.Foreground(m.theme.InfoFg)
	default:
		return style.Foreground(m.theme.MutedFg)
	}
}

func (m *Model) renderFooter(width int) string {
	if current := m.screens.Current(); current != nil && current.Type() == screen.TypeCommandLine {
		return current.View()
	}

	footerStyle := lipgloss.NewStyle().
		Foreground(m.theme.TextFg).
		Padding(0, 1).
		Width(width)

	var hints []string
	if n := m.invoker.InFlight(); n > 0 {
		hints = append(hints, fmt.Sprintf("%s running %d", m.spinner.View(), n))
	}
	if pending := m.keymap.Pending(); pending != "" {
		hints = append(hints, m.renderKeyHint(pending, "…"))
	}
	for _, b := range m.keymap.Bindings() {
		hints = append(hints, m.renderKeyHint(b.Sequence, strings.TrimPrefix(b.Command, "Todo")))
	}
	hints = append(hints,
		m.renderKeyHint(keyCommandLine, "Command"),
		m.renderKeyHint(keyHelp, "Help"),
		m.renderKeyHint(keyQuit, "Quit"),
	)
	return footerStyle.Render(strings.Join(hints, "  "))
}

func (m *Model) renderKeyHint(key, label string) string {
	keyStyle := lipgloss.NewStyle().
		Foreground(m.theme.AccentFg).
		Background(m.theme.Accent).
		Bold(true).
		Padding(0, 1)
	labelStyle := lipgloss.NewStyle().Foreground(m.theme.Accent)
	return fmt.Sprintf("%s %s", keyStyle.Render(key), labelStyle.Render(label))
}
