package services

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

const (
	// CommandHistoryFilename is the command line history file name.
	CommandHistoryFilename = "command_history.json"

	historyDirName   = "lazytodo"
	defaultDirPerms  = 0o750
	defaultFilePerms = 0o600
)

// CommandHistoryPath returns the history file under the user cache
// directory, or "" when there is none.
func CommandHistoryPath() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, historyDirName, CommandHistoryFilename)
}

// LoadCommandHistory loads command history from file. A missing file is
// an empty history.
func LoadCommandHistory(historyPath string) ([]string, error) {
	if historyPath == "" {
		return []string{}, nil
	}
	// #nosec G304 -- historyPath is the cache directory plus a constant filename
	data, err := os.ReadFile(historyPath)
	if err != nil {
		if os.IsNotExist(err) {
			return []string{}, nil
		}
		return []string{}, err
	}

	var payload struct {
		Commands []string `json:"commands"`
	}
	if err := json.Unmarshal(data, &payload); err != nil {
		return []string{}, fmt.Errorf("parse %s: %w", historyPath, err)
	}
	if payload.Commands == nil {
		return []string{}, nil
	}
	return payload.Commands, nil
}

// SaveCommandHistory saves command history to file.
func SaveCommandHistory(historyPath string, commands []string) error {
	if historyPath == "" {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(historyPath), defaultDirPerms); err != nil {
		return err
	}

	historyData := struct {
		Commands []string `json:"commands"`
	}{
		Commands: commands,
	}
	data, err := json.Marshal(historyData)
	if err != nil {
		return err
	}
	return os.WriteFile(historyPath, data, defaultFilePerms)
}
