package editor

import (
	"fmt"
	"os"
	"sort"
	"strings"
)

// maxViewBytes caps how much of a file a scratch view loads.
const maxViewBytes = 1 << 20

// ViewLines returns what a read-only view of path shows: the file's lines,
// or the sorted entries of a directory with a trailing "/" on
// subdirectories.
func ViewLines(path string) ([]string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		entries, err := os.ReadDir(path)
		if err != nil {
			return nil, err
		}
		lines := make([]string, 0, len(entries))
		for _, entry := range entries {
			name := entry.Name()
			if entry.IsDir() {
				name += "/"
			}
			lines = append(lines, name)
		}
		sort.Strings(lines)
		return lines, nil
	}
	if info.Size() > maxViewBytes {
		return nil, fmt.Errorf("%s is too large to view (%d bytes)", path, info.Size())
	}
	// #nosec G304 -- path comes from todo_md where output
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	content := strings.TrimRight(strings.ReplaceAll(string(data), "\r\n", "\n"), "\n")
	if content == "" {
		return []string{}, nil
	}
	return strings.Split(content, "\n"), nil
}
