package app

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/chmouel/lazytodo/internal/app/services"
	"github.com/chmouel/lazytodo/internal/log"
	"github.com/chmouel/lazytodo/internal/status"
)

// startTodoWatcher watches the todo file from the last status when
// auto_refresh is enabled.
func (m *Model) startTodoWatcher() tea.Cmd {
	if m.config == nil || !m.config.AutoRefresh {
		return nil
	}
	path, ok := m.status.Get(status.KeyTodo)
	if !ok {
		return nil
	}
	if m.watch == nil {
		m.watch = services.NewTodoWatchService(log.Debugf)
	}
	started, err := m.watch.Start(path)
	if err != nil {
		return func() tea.Msg {
			return errMsg{err: err}
		}
	}
	if !started {
		return nil
	}
	return m.waitForTodoFileEvent()
}

func (m *Model) stopTodoWatcher() {
	if m.watch == nil || !m.watch.Started {
		return
	}
	m.watch.Stop()
}

func (m *Model) waitForTodoFileEvent() tea.Cmd {
	if m.watch == nil {
		return nil
	}
	events := m.watch.NextEvent()
	if events == nil {
		return nil
	}
	done := m.watch.Done
	return func() tea.Msg {
		select {
		case <-events:
			return todoFileChangedMsg{}
		case <-done:
			return nil
		}
	}
}

func (m *Model) handleTodoFileChanged() tea.Cmd {
	if m.watch == nil {
		return nil
	}
	m.watch.ResetWaiting()
	next := m.waitForTodoFileEvent()
	if !m.watch.ShouldRefresh(time.Now()) {
		return next
	}
	log.Debugf("todo file changed, refreshing status")
	return tea.Batch(next, m.client.Refresh())
}
