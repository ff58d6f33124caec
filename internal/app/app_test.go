package app

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chmouel/lazytodo/internal/app/screen"
	"github.com/chmouel/lazytodo/internal/config"
	"github.com/chmouel/lazytodo/internal/editor"
	"github.com/chmouel/lazytodo/internal/status"
)

func TestNewModelRegistersCommandsAndKeys(t *testing.T) {
	m := NewModel(nil)

	names := []string{}
	for _, c := range m.registry.Commands() {
		names = append(names, c.Name)
	}
	assert.ElementsMatch(t, []string{"TodoOpen", "TodoRepo", "TodoSync", "TodoWhere", "TodoSetup", "TodoHelp", "Refresh", "Help", "Quit"}, names)
	assert.Len(t, m.keymap.Bindings(), 4)
	assert.Empty(t, m.notifications)
}

func TestNewModelReportsBadKeymaps(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Keymaps.Open = "ctrl+t"
	cfg.Keymaps.Sync = "ctrl+t s"

	m := NewModel(cfg)
	errs := notes(m, editor.LevelError)
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0], "keymaps")
}

func TestNewModelRejectsReservedKeys(t *testing.T) {
	for _, key := range []string{"q", ":", "?", "esc", "ctrl+c"} {
		t.Run(key, func(t *testing.T) {
			cfg := config.DefaultConfig()
			cfg.Keymaps.Sync = key

			m := NewModel(cfg)
			errs := notes(m, editor.LevelError)
			require.Len(t, errs, 1)
			assert.Contains(t, errs[0], "reserved key")
			assert.Len(t, m.keymap.Bindings(), 3)
			for _, b := range m.keymap.Bindings() {
				assert.NotEqual(t, editor.CmdTodoSync, b.Command)
			}
		})
	}
}

func TestReservedQuitKeyStillQuits(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Keymaps.Sync = "q"
	m := NewModel(cfg)

	_, cmd := m.Update(keyMsg("q"))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.QuitMsg{}, cmd())
	assert.True(t, m.quitting)
}

func TestRefreshPopulatesStatusPanel(t *testing.T) {
	f := newFakeTodo(t, "")
	m, _ := newTestModel(t, f, nil)

	pump(t, m, m.client.Refresh())

	require.True(t, m.loaded)
	assert.Equal(t, f.TodoPath, m.status.Value(status.KeyTodo))
	view := m.View()
	assert.Contains(t, view, "todo_md status")
	assert.Contains(t, view, "main")
	assert.Contains(t, view, "<missing>")
	assert.Equal(t, 0, m.invoker.InFlight())
}

func TestRefreshFailureShowsError(t *testing.T) {
	f := newFakeTodo(t, `where) echo "config missing" >&2; exit 2 ;;`)
	m, _ := newTestModel(t, f, nil)

	pump(t, m, m.client.Refresh())

	assert.Nil(t, m.status)
	assert.Equal(t, "config missing", m.statusErr)
	assert.Equal(t, []string{"config missing"}, notes(m, editor.LevelError))
	assert.Contains(t, m.View(), "config missing")
}

func TestOpenKeyRunsEditor(t *testing.T) {
	f := newFakeTodo(t, "")
	opened := filepath.Join(f.Dir, "opened.log")
	m, rec := newTestModel(t, f, func(cfg *config.AppConfig) {
		cfg.Editor = "echo >> " + editor.ShellQuote(opened)
	})

	press(t, m, "o")

	require.Len(t, rec.commands, 1)
	assert.Equal(t, "sh", rec.commands[0][0])
	data, err := os.ReadFile(opened)
	require.NoError(t, err)
	assert.Equal(t, f.TodoPath, strings.TrimSpace(string(data)))
	assert.Empty(t, notes(m, editor.LevelError))
}

func TestOpenEditorFailureNotifies(t *testing.T) {
	f := newFakeTodo(t, "")
	m, _ := newTestModel(t, f, func(cfg *config.AppConfig) {
		cfg.Editor = "exit 3;"
	})

	press(t, m, "o")

	errs := notes(m, editor.LevelError)
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0], "open "+f.TodoPath)
}

func TestRepoKeyUsesConfigPath(t *testing.T) {
	f := newFakeTodo(t, "")
	m, _ := newTestModel(t, f, func(cfg *config.AppConfig) {
		cfg.OpenAction = config.OpenActionPrint
	})

	press(t, m, "r")

	assert.Equal(t, []string{f.Dir}, notes(m, editor.LevelInfo))
}

func TestOpenActionView(t *testing.T) {
	f := newFakeTodo(t, "")
	m, rec := newTestModel(t, f, func(cfg *config.AppConfig) {
		cfg.OpenAction = config.OpenActionView
	})

	press(t, m, "o")

	assert.Empty(t, rec.commands)
	scratch, ok := m.screens.Current().(*screen.ScratchScreen)
	require.True(t, ok)
	assert.Equal(t, f.TodoPath, scratch.Title)
	assert.Equal(t, []string{"# Todo", "- [ ] write tests"}, scratch.Lines)
}

func TestOpenActionPager(t *testing.T) {
	f := newFakeTodo(t, "")
	m, rec := newTestModel(t, f, func(cfg *config.AppConfig) {
		cfg.OpenAction = config.OpenActionPager
		cfg.Pager = "cat >/dev/null"
	})

	press(t, m, "o")

	require.Len(t, rec.commands, 1)
	assert.Contains(t, rec.commands[0][2], "cat >/dev/null '"+f.TodoPath+"'")
}

func TestOpenMissingTodoPathAborts(t *testing.T) {
	f := newFakeTodo(t, `where) echo "config: /cfg"; exit 0 ;;`)
	m, rec := newTestModel(t, f, nil)

	press(t, m, "o")

	assert.Empty(t, rec.commands)
	assert.Equal(t, []string{"missing todo path"}, notes(m, editor.LevelError))
}

func TestSyncSuccessNotifiesAndRefreshes(t *testing.T) {
	f := newFakeTodo(t, `sync) echo "sync committed | added 1 updated 0 deleted 0 completed 0 | +1 -0"; echo ;;`)
	m, _ := newTestModel(t, f, nil)

	press(t, m, "s")

	assert.Equal(t, []string{"sync committed | added 1 updated 0 deleted 0 completed 0 | +1 -0"}, notes(m, editor.LevelInfo))
	assert.Equal(t, []string{"sync", "where"}, f.calls(t))
	assert.True(t, m.loaded)
}

func TestSyncWithoutCommitKeepsStatus(t *testing.T) {
	f := newFakeTodo(t, `sync) echo "sync no local todo changes | added 0 updated 0 deleted 0 completed 0 | no line changes" ;;`)
	m, _ := newTestModel(t, f, nil)

	press(t, m, "s")

	assert.Equal(t, []string{"sync no local todo changes | added 0 updated 0 deleted 0 completed 0 | no line changes"}, notes(m, editor.LevelInfo))
	assert.Equal(t, []string{"sync"}, f.calls(t))
}

func TestSyncNotifyDisabled(t *testing.T) {
	f := newFakeTodo(t, "")
	m, _ := newTestModel(t, f, func(cfg *config.AppConfig) {
		cfg.NotifyEnabled = false
	})

	press(t, m, "s")

	assert.Empty(t, m.notifications)
}

func TestSyncFailureNotifiesBoom(t *testing.T) {
	f := newFakeTodo(t, `sync) echo boom >&2; exit 1 ;;`)
	m, _ := newTestModel(t, f, nil)

	press(t, m, "s")

	assert.Equal(t, []string{"boom"}, notes(m, editor.LevelError))
	assert.Equal(t, []string{"sync"}, f.calls(t))
}

func TestWhereKeyShowsReport(t *testing.T) {
	f := newFakeTodo(t, "")
	m, _ := newTestModel(t, f, nil)

	press(t, m, "w")

	scratch, ok := m.screens.Current().(*screen.ScratchScreen)
	require.True(t, ok)
	assert.Equal(t, "todo_md status", scratch.Title)
	assert.Contains(t, scratch.Lines, "remote: <missing>")
	assert.Contains(t, scratch.Lines, "github token: set")
	assert.Contains(t, m.View(), "todo_md status")

	press(t, m, "q")
	assert.False(t, m.screens.IsActive())
	assert.False(t, m.quitting, "q inside a scratch view only closes it")
}

func TestCommandLineSetupWithRemote(t *testing.T) {
	f := newFakeTodo(t, `setup) echo "setup complete at /cfg" ;;`)
	m, _ := newTestModel(t, f, nil)

	openPrompt(t, m)
	require.Equal(t, screen.TypeCommandLine, m.screens.Type())
	assert.Contains(t, m.View(), ":")

	typeLine(t, m, "TodoSetup git@github.com:me/todos.git")
	press(t, m, "enter")

	assert.False(t, m.screens.IsActive())
	assert.Equal(t, []string{"setup git@github.com:me/todos.git", "where"}, f.calls(t))
	assert.Equal(t, []string{"setup complete at /cfg"}, notes(m, editor.LevelInfo))
	assert.Equal(t, []string{"TodoSetup git@github.com:me/todos.git"}, m.history)
}

func TestCommandLineUnknownCommand(t *testing.T) {
	f := newFakeTodo(t, "")
	m, _ := newTestModel(t, f, nil)

	openPrompt(t, m)
	typeLine(t, m, "Nope")
	press(t, m, "enter")

	errs := notes(m, editor.LevelError)
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0], "unknown command: Nope")
	assert.Nil(t, f.calls(t))
}

func TestCommandLineHelpCommandStaysOpen(t *testing.T) {
	m, _ := newTestModel(t, newFakeTodo(t, ""), nil)

	openPrompt(t, m)
	typeLine(t, m, "Help")
	press(t, m, "enter")

	require.Equal(t, screen.TypeScratch, m.screens.Type())
	assert.Equal(t, 0, m.screens.StackDepth())
}

func TestHelpKeyListsCommandsAndKeys(t *testing.T) {
	m, _ := newTestModel(t, newFakeTodo(t, ""), nil)

	press(t, m, "?")

	scratch, ok := m.screens.Current().(*screen.ScratchScreen)
	require.True(t, ok)
	assert.Equal(t, helpTitle, scratch.Title)
	content := scratch.Content()
	assert.Contains(t, content, "TodoSetup [arg]")
	assert.Contains(t, content, "TodoWhere")
	assert.Contains(t, content, "command line")
}

func TestKeymapsDisabled(t *testing.T) {
	f := newFakeTodo(t, "")
	m, _ := newTestModel(t, f, func(cfg *config.AppConfig) {
		cfg.Keymaps.Enabled = false
	})

	press(t, m, "o", "s", "w", "r")

	assert.Nil(t, f.calls(t))
	assert.Empty(t, m.notifications)
}

func TestKeySequenceBinding(t *testing.T) {
	f := newFakeTodo(t, "")
	m, _ := newTestModel(t, f, func(cfg *config.AppConfig) {
		cfg.Keymaps.Sync = "ctrl+t s"
	})

	press(t, m, "ctrl+t")
	assert.Equal(t, "ctrl+t", m.keymap.Pending())
	assert.Contains(t, m.View(), "ctrl+t")

	press(t, m, "s")
	assert.Equal(t, []string{"sync", "where"}, f.calls(t))

	press(t, m, "ctrl+t", "esc")
	assert.Empty(t, m.keymap.Pending())
}

func TestQuitKeys(t *testing.T) {
	for _, key := range []string{"q", "ctrl+c"} {
		m := NewModel(nil)
		_, cmd := m.Update(keyMsg(key))
		require.NotNil(t, cmd)
		assert.Equal(t, tea.QuitMsg{}, cmd())
		assert.True(t, m.quitting)
		assert.Empty(t, m.View())
	}
}

func TestErrMsgNotifies(t *testing.T) {
	m := NewModel(nil)
	m.Update(errMsg{err: os.ErrPermission})
	assert.Equal(t, []string{os.ErrPermission.Error()}, notes(m, editor.LevelError))
}

func TestWindowSizeResizesScreens(t *testing.T) {
	m := NewModel(nil)
	m.ShowScratch("t", []string{"a"})

	m.Update(tea.WindowSizeMsg{Width: 60, Height: 20})

	scratch := m.screens.Current().(*screen.ScratchScreen)
	assert.Equal(t, 56, scratch.Width)
	assert.Equal(t, 60, m.width)
}

func TestCommandHistoryPersists(t *testing.T) {
	f := newFakeTodo(t, `sync) ;;`)
	m, _ := newTestModel(t, f, nil)
	path := m.historyPath

	openPrompt(t, m)
	typeLine(t, m, "TodoSync")
	press(t, m, "enter")

	next := NewModel(nil)
	next.loadHistory(path)
	assert.Equal(t, []string{"TodoSync"}, next.history)
}

func TestCommandHistoryCorruptFileWarns(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.json")
	require.NoError(t, os.WriteFile(path, []byte("nope"), 0o600))

	m := NewModel(nil)
	m.loadHistory(path)
	assert.Empty(t, m.history)
	warns := notes(m, editor.LevelWarn)
	require.Len(t, warns, 1)
	assert.Contains(t, warns[0], "command history")
}
