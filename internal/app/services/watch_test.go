package services

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func waitSignal(t *testing.T, events <-chan struct{}, timeout time.Duration) bool {
	t.Helper()
	select {
	case <-events:
		return true
	case <-time.After(timeout):
		return false
	}
}

func TestTodoWatchSignalsOnTodoWrite(t *testing.T) {
	dir := t.TempDir()
	todoPath := filepath.Join(dir, "todo.md")
	require.NoError(t, os.WriteFile(todoPath, []byte("- [ ] one\n"), 0o600))

	w := NewTodoWatchService(t.Logf)
	started, err := w.Start(todoPath)
	require.NoError(t, err)
	require.True(t, started)
	t.Cleanup(w.Stop)

	events := w.NextEvent()
	require.NotNil(t, events)
	assert.Nil(t, w.NextEvent(), "a second waiter must not get the channel")

	require.NoError(t, os.WriteFile(todoPath, []byte("- [x] one\n"), 0o600))
	assert.True(t, waitSignal(t, events, 2*time.Second))

	w.ResetWaiting()
	assert.NotNil(t, w.NextEvent())
}

func TestTodoWatchIgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	todoPath := filepath.Join(dir, "todo.md")
	require.NoError(t, os.WriteFile(todoPath, nil, 0o600))

	w := NewTodoWatchService(nil)
	_, err := w.Start(todoPath)
	require.NoError(t, err)
	t.Cleanup(w.Stop)

	events := w.NextEvent()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.md"), []byte("x"), 0o600))
	assert.False(t, waitSignal(t, events, 300*time.Millisecond))
}

func TestTodoWatchSeesRenameSaves(t *testing.T) {
	dir := t.TempDir()
	todoPath := filepath.Join(dir, "todo.md")
	require.NoError(t, os.WriteFile(todoPath, nil, 0o600))

	w := NewTodoWatchService(nil)
	_, err := w.Start(todoPath)
	require.NoError(t, err)
	t.Cleanup(w.Stop)
	events := w.NextEvent()

	tmp := filepath.Join(dir, ".todo.md.swp")
	require.NoError(t, os.WriteFile(tmp, []byte("- [ ] two\n"), 0o600))
	require.NoError(t, os.Rename(tmp, todoPath))
	assert.True(t, waitSignal(t, events, 2*time.Second))
}

func TestTodoWatchStartSamePathIsNoop(t *testing.T) {
	dir := t.TempDir()
	todoPath := filepath.Join(dir, "todo.md")

	w := NewTodoWatchService(nil)
	started, err := w.Start(todoPath)
	require.NoError(t, err)
	require.True(t, started)
	t.Cleanup(w.Stop)

	started, err = w.Start(todoPath + "/")
	require.NoError(t, err)
	assert.False(t, started)

	other := filepath.Join(t.TempDir(), "todo.md")
	started, err = w.Start(other)
	require.NoError(t, err)
	assert.True(t, started)
	assert.Equal(t, other, w.Path)
}

func TestTodoWatchStartErrors(t *testing.T) {
	w := NewTodoWatchService(nil)
	_, err := w.Start("")
	require.Error(t, err)

	_, err = w.Start(filepath.Join(t.TempDir(), "missing", "todo.md"))
	require.Error(t, err)
	assert.False(t, w.Started)
	assert.Nil(t, w.NextEvent())
}

func TestTodoWatchStopIsIdempotent(t *testing.T) {
	w := NewTodoWatchService(nil)
	w.Stop()

	_, err := w.Start(filepath.Join(t.TempDir(), "todo.md"))
	require.NoError(t, err)
	w.Stop()
	w.Stop()
	assert.False(t, w.Started)
}

func TestTodoWatchShouldRefreshDebounce(t *testing.T) {
	w := NewTodoWatchService(nil)
	now := time.Now()

	assert.True(t, w.ShouldRefresh(now))
	assert.False(t, w.ShouldRefresh(now.Add(100*time.Millisecond)))
	assert.True(t, w.ShouldRefresh(now.Add(TodoWatchDebounce+time.Millisecond)))
}

func TestTodoWatchMatches(t *testing.T) {
	assert.True(t, matches("/a/todo.md", "/a/todo.md"))
	assert.True(t, matches("/a/todo.md", "/a/./todo.md"))
	assert.False(t, matches("/a/todo.md", "/a/todo.md.swp"))
	assert.False(t, matches("/a/todo.md", ""))
	assert.False(t, matches("", "/a/todo.md"))
}
