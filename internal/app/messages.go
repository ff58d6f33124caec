package app

import (
	"time"

	"github.com/chmouel/lazytodo/internal/editor"
)

type (
	errMsg struct{ err error }

	// todoFileChangedMsg is sent by the watcher when the todo file changes.
	todoFileChangedMsg struct{}

	// notification is one entry of the notification log.
	notification struct {
		at      time.Time
		level   editor.Level
		message string
	}
)
