package status

import (
	"strconv"
	"strings"
)

// SyncSummary is the one-line report printed by `todo_md sync`:
//
//	sync committed | added 1 updated 0 deleted 0 completed 2 | +3 -1
type SyncSummary struct {
	Committed   bool
	Added       int
	Updated     int
	Deleted     int
	Completed   int
	LineSummary string
}

// Changes returns the total number of todo changes in the summary.
func (s SyncSummary) Changes() int {
	return s.Added + s.Updated + s.Deleted + s.Completed
}

// ParseSyncSummary finds the first summary line in stdout. Per-change
// lines ("- Added: <id>") and anything else are skipped.
func ParseSyncSummary(stdout string) (SyncSummary, bool) {
	for _, line := range strings.Split(stdout, "\n") {
		line = strings.TrimSpace(line)
		if !strings.HasPrefix(line, "sync ") {
			continue
		}
		if summary, ok := parseSyncLine(line); ok {
			return summary, true
		}
	}
	return SyncSummary{}, false
}

func parseSyncLine(line string) (SyncSummary, bool) {
	parts := strings.SplitN(line, " | ", 3)
	if len(parts) < 2 {
		return SyncSummary{}, false
	}

	var summary SyncSummary
	switch strings.TrimSpace(strings.TrimPrefix(parts[0], "sync ")) {
	case "committed":
		summary.Committed = true
	case "no local todo changes":
		summary.Committed = false
	default:
		return SyncSummary{}, false
	}

	counts := strings.Fields(parts[1])
	if len(counts)%2 != 0 {
		return SyncSummary{}, false
	}
	for i := 0; i < len(counts); i += 2 {
		n, err := strconv.Atoi(counts[i+1])
		if err != nil {
			return SyncSummary{}, false
		}
		switch counts[i] {
		case "added":
			summary.Added = n
		case "updated":
			summary.Updated = n
		case "deleted":
			summary.Deleted = n
		case "completed":
			summary.Completed = n
		}
	}

	if len(parts) == 3 {
		summary.LineSummary = strings.TrimSpace(parts[2])
	}
	return summary, true
}
