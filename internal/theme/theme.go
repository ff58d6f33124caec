// Package theme holds the colour palettes used by the TUI.
package theme

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Theme defines the colours used by the interactive host.
type Theme struct {
	Accent    lipgloss.Color
	AccentFg  lipgloss.Color // text drawn on Accent
	Border    lipgloss.Color
	MutedFg   lipgloss.Color
	TextFg    lipgloss.Color
	SuccessFg lipgloss.Color
	WarnFg    lipgloss.Color
	ErrorFg   lipgloss.Color
	InfoFg    lipgloss.Color
}

// Theme names.
const (
	DraculaName      = "dracula"
	DraculaLightName = "dracula-light"
	NordName         = "nord"
	GruvboxDarkName  = "gruvbox-dark"
	GruvboxLightName = "gruvbox-light"
)

// Dracula is the default dark palette.
func Dracula() *Theme {
	return &Theme{
		Accent:    lipgloss.Color("#BD93F9"),
		AccentFg:  lipgloss.Color("#282A36"),
		Border:    lipgloss.Color("#6272A4"),
		MutedFg:   lipgloss.Color("#6272A4"),
		TextFg:    lipgloss.Color("#F8F8F2"),
		SuccessFg: lipgloss.Color("#50FA7B"),
		WarnFg:    lipgloss.Color("#FFB86C"),
		ErrorFg:   lipgloss.Color("#FF5555"),
		InfoFg:    lipgloss.Color("#8BE9FD"),
	}
}

// DraculaLight adapts Dracula for light terminals.
func DraculaLight() *Theme {
	return &Theme{
		Accent:    lipgloss.Color("#c6dbe5"),
		AccentFg:  lipgloss.Color("#24292F"),
		Border:    lipgloss.Color("#D0D7DE"),
		MutedFg:   lipgloss.Color("#6E7781"),
		TextFg:    lipgloss.Color("#24292F"),
		SuccessFg: lipgloss.Color("#059669"),
		WarnFg:    lipgloss.Color("#D97706"),
		ErrorFg:   lipgloss.Color("#DC2626"),
		InfoFg:    lipgloss.Color("#0891B2"),
	}
}

// Nord is the arctic dark palette.
func Nord() *Theme {
	return &Theme{
		Accent:    lipgloss.Color("#88C0D0"),
		AccentFg:  lipgloss.Color("#2E3440"),
		Border:    lipgloss.Color("#4C566A"),
		MutedFg:   lipgloss.Color("#7B88A1"),
		TextFg:    lipgloss.Color("#ECEFF4"),
		SuccessFg: lipgloss.Color("#A3BE8C"),
		WarnFg:    lipgloss.Color("#EBCB8B"),
		ErrorFg:   lipgloss.Color("#BF616A"),
		InfoFg:    lipgloss.Color("#81A1C1"),
	}
}

// GruvboxDark is the retro dark palette.
func GruvboxDark() *Theme {
	return &Theme{
		Accent:    lipgloss.Color("#FABD2F"),
		AccentFg:  lipgloss.Color("#282828"),
		Border:    lipgloss.Color("#665C54"),
		MutedFg:   lipgloss.Color("#928374"),
		TextFg:    lipgloss.Color("#EBDBB2"),
		SuccessFg: lipgloss.Color("#B8BB26"),
		WarnFg:    lipgloss.Color("#FE8019"),
		ErrorFg:   lipgloss.Color("#FB4934"),
		InfoFg:    lipgloss.Color("#83A598"),
	}
}

// GruvboxLight is the retro light palette.
func GruvboxLight() *Theme {
	return &Theme{
		Accent:    lipgloss.Color("#B57614"),
		AccentFg:  lipgloss.Color("#FBF1C7"),
		Border:    lipgloss.Color("#BDAE93"),
		MutedFg:   lipgloss.Color("#7C6F64"),
		TextFg:    lipgloss.Color("#3C3836"),
		SuccessFg: lipgloss.Color("#79740E"),
		WarnFg:    lipgloss.Color("#AF3A03"),
		ErrorFg:   lipgloss.Color("#9D0006"),
		InfoFg:    lipgloss.Color("#076678"),
	}
}

// GetTheme returns a theme by name, or Dracula if not found.
func GetTheme(name string) *Theme {
	switch name {
	case DraculaLightName:
		return DraculaLight()
	case NordName:
		return Nord()
	case GruvboxDarkName:
		return GruvboxDark()
	case GruvboxLightName:
		return GruvboxLight()
	default:
		return Dracula()
	}
}

// AvailableThemes returns the supported theme names.
func AvailableThemes() []string {
	return []string{
		DraculaName,
		DraculaLightName,
		NordName,
		GruvboxDarkName,
		GruvboxLightName,
	}
}

// Normalize returns the canonical theme name, or "" if it is unknown.
func Normalize(name string) string {
	switch n := strings.ToLower(strings.TrimSpace(name)); n {
	case DraculaName, DraculaLightName, NordName, GruvboxDarkName, GruvboxLightName:
		return n
	default:
		return ""
	}
}
