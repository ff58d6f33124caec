// Package report renders a todo_md status into a read-only report.
package report

import (
	"strings"

	"github.com/chmouel/lazytodo/internal/editor"
	"github.com/chmouel/lazytodo/internal/invoke"
	"github.com/chmouel/lazytodo/internal/status"
)

// Title is the first line of every report and the scratch view title.
const Title = "todo_md status"

const missing = "<missing>"

// Render builds the report lines: the title, one line per known key, a
// blank separator, a "raw:" marker and the trimmed raw stdout.
func Render(st *status.Status, raw invoke.Result) []string {
	keys := status.KnownKeys()
	lines := make([]string, 0, len(keys)+3)
	lines = append(lines, Title)
	for _, key := range keys {
		value, ok := st.Get(key)
		if !ok {
			value = missing
		}
		lines = append(lines, key+": "+value)
	}
	lines = append(lines, "", "raw:")
	if out := strings.TrimSpace(raw.Stdout); out != "" {
		for _, line := range strings.Split(out, "\n") {
			lines = append(lines, strings.TrimSuffix(line, "\r"))
		}
	}
	return lines
}

// Show opens a scratch view with the report. A nil status means the query
// already failed and was reported, so nothing is shown.
func Show(host editor.Host, st *status.Status, raw invoke.Result) {
	if st == nil || host == nil {
		return
	}
	host.ShowScratch(Title, Render(st, raw))
}
