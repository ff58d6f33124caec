package screen

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/chmouel/lazytodo/internal/theme"
)

func typeText(s Screen, text string) Screen {
	for _, r := range text {
		s, _ = s.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return s
}

func TestCommandLineSubmit(t *testing.T) {
	s := NewCommandLineScreen([]string{"TodoSync"}, nil, 80, theme.Dracula())
	var got string
	s.OnSubmit = func(line string) tea.Cmd {
		got = line
		return nil
	}

	next := typeText(s, " TodoSetup origin ")
	next, _ = next.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if next != nil {
		t.Fatal("expected enter to close the command line")
	}
	if got != "TodoSetup origin" {
		t.Fatalf("expected trimmed line, got %q", got)
	}
}

func TestCommandLineEmptySubmitCloses(t *testing.T) {
	s := NewCommandLineScreen(nil, nil, 80, theme.Dracula())
	called := false
	s.OnSubmit = func(string) tea.Cmd {
		called = true
		return nil
	}
	next, _ := s.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if next != nil || called {
		t.Fatal("empty line should close without submitting")
	}
}

func TestCommandLineEscapeAndBackspaceClose(t *testing.T) {
	s := NewCommandLineScreen(nil, nil, 80, theme.Dracula())
	if next, _ := s.Update(tea.KeyMsg{Type: tea.KeyEsc}); next != nil {
		t.Fatal("esc should close")
	}

	s = NewCommandLineScreen(nil, nil, 80, theme.Dracula())
	if next, _ := s.Update(tea.KeyMsg{Type: tea.KeyBackspace}); next != nil {
		t.Fatal("backspace on an empty line should close")
	}
}

func TestCommandLineCompletion(t *testing.T) {
	commands := []string{"TodoSync", "TodoSetup", "TodoOpen", "Quit"}

	tests := []struct {
		typed string
		want  string
	}{
		{typed: "q", want: "Quit "},
		{typed: "TodoS", want: "TodoS"},
		{typed: "TodoSy", want: "TodoSync "},
		{typed: "todo", want: "Todo"},
		{typed: "zzz", want: "zzz"},
		{typed: "TodoSetup or", want: "TodoSetup or"},
	}
	for _, tt := range tests {
		s := NewCommandLineScreen(commands, nil, 80, theme.Dracula())
		next := typeText(s, tt.typed)
		next, _ = next.Update(tea.KeyMsg{Type: tea.KeyTab})
		if got := next.(*CommandLineScreen).Input.Value(); got != tt.want {
			t.Errorf("completing %q: got %q, want %q", tt.typed, got, tt.want)
		}
	}
}

func TestCommandLineHistory(t *testing.T) {
	s := NewCommandLineScreen(nil, []string{"TodoSync", "TodoOpen"}, 80, theme.Dracula())
	var next Screen = s
	next = typeText(next, "Tod")

	next, _ = next.Update(tea.KeyMsg{Type: tea.KeyUp})
	if got := s.Input.Value(); got != "TodoSync" {
		t.Fatalf("expected newest history entry, got %q", got)
	}
	next, _ = next.Update(tea.KeyMsg{Type: tea.KeyUp})
	if got := s.Input.Value(); got != "TodoOpen" {
		t.Fatalf("expected older history entry, got %q", got)
	}
	next, _ = next.Update(tea.KeyMsg{Type: tea.KeyUp})
	if got := s.Input.Value(); got != "TodoOpen" {
		t.Fatalf("expected to stay on oldest entry, got %q", got)
	}
	next, _ = next.Update(tea.KeyMsg{Type: tea.KeyDown})
	next, _ = next.Update(tea.KeyMsg{Type: tea.KeyDown})
	if got := s.Input.Value(); got != "Tod" {
		t.Fatalf("expected original input restored, got %q", got)
	}
	if next == nil {
		t.Fatal("history navigation should keep the prompt open")
	}
}

func TestCommonPrefix(t *testing.T) {
	if got := commonPrefix("TodoSync", "TodoSetup"); got != "TodoS" {
		t.Fatalf("got %q", got)
	}
	if got := commonPrefix("abc", "ab"); got != "ab" {
		t.Fatalf("got %q", got)
	}
}
