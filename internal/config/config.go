// Package config loads lazytodo settings from YAML or TOML and merges them
// over the defaults.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/chmouel/lazytodo/internal/log"
	"github.com/chmouel/lazytodo/internal/theme"
	"gopkg.in/yaml.v3"
)

// Ways of opening a file returned by `todo_md where`.
const (
	OpenActionEdit  = "edit"
	OpenActionPager = "pager"
	OpenActionView  = "view"
	OpenActionPrint = "print"
)

const (
	defaultCommandName = "todo_md"
	appDirName         = "lazytodo"
)

// Keymaps holds the key sequences bound to the todo commands. A sequence
// is one or more Bubble Tea key names separated by spaces ("ctrl+t o").
type Keymaps struct {
	Enabled bool   `yaml:"enabled" toml:"enabled"`
	Open    string `yaml:"open" toml:"open"`
	Sync    string `yaml:"sync" toml:"sync"`
	Where   string `yaml:"where" toml:"where"`
	Repo    string `yaml:"repo" toml:"repo"`
}

// AppConfig defines the lazytodo configuration options.
type AppConfig struct {
	CommandName   string  `yaml:"command_name" toml:"command_name"`
	NotifyEnabled bool    `yaml:"notify" toml:"notify"`
	OpenAction    string  `yaml:"open_action" toml:"open_action"` // edit, pager, view or print
	Keymaps       Keymaps `yaml:"keymaps" toml:"keymaps"`
	Editor        string  `yaml:"editor" toml:"editor"`
	Pager         string  `yaml:"pager" toml:"pager"`
	Theme         string  `yaml:"theme" toml:"theme"`
	DebugLog      string  `yaml:"debug_log" toml:"debug_log"`
	AutoRefresh   bool    `yaml:"auto_refresh" toml:"auto_refresh"` // watch the todo file and re-run where
	WorkingDir    string  `yaml:"working_dir" toml:"working_dir"`
}

// DefaultConfig returns the default configuration values.
func DefaultConfig() *AppConfig {
	return &AppConfig{
		CommandName:   defaultCommandName,
		NotifyEnabled: true,
		OpenAction:    OpenActionEdit,
		Keymaps: Keymaps{
			Enabled: true,
			Open:    "o",
			Sync:    "s",
			Where:   "w",
			Repo:    "r",
		},
		Theme: theme.DraculaName,
	}
}

// Merge returns a copy of base with the keys present in data applied on
// top. Nested tables override key by key, so a user setting
// `keymaps.open` keeps the default sync, where and repo bindings. base is
// not modified.
func Merge(base *AppConfig, data map[string]any) *AppConfig {
	if base == nil {
		base = DefaultConfig()
	}
	cfg := *base

	for key, value := range data {
		switch key {
		case "command_name":
			if name := stringValue(value); name != "" {
				cfg.CommandName = name
			}
		case "notify":
			cfg.NotifyEnabled = coerceBool(value, cfg.NotifyEnabled)
		case "open_action":
			if action := NormalizeOpenAction(stringValue(value)); action != "" {
				cfg.OpenAction = action
			}
		case "keymaps":
			cfg.Keymaps = mergeKeymaps(cfg.Keymaps, value)
		case "editor":
			cfg.Editor = stringValue(value)
		case "pager":
			cfg.Pager = stringValue(value)
		case "theme":
			if name := theme.Normalize(stringValue(value)); name != "" {
				cfg.Theme = name
			}
		case "debug_log":
			cfg.DebugLog = stringValue(value)
		case "auto_refresh":
			cfg.AutoRefresh = coerceBool(value, cfg.AutoRefresh)
		case "working_dir":
			cfg.WorkingDir = stringValue(value)
		default:
			log.Debugf("config: ignoring unknown key %q", key)
		}
	}

	return &cfg
}

func mergeKeymaps(base Keymaps, value any) Keymaps {
	km := base
	switch v := value.(type) {
	case bool, string:
		// `keymaps: false` toggles the whole set
		km.Enabled = coerceBool(v, km.Enabled)
	case map[string]any:
		for key, raw := range v {
			switch key {
			case "enabled":
				km.Enabled = coerceBool(raw, km.Enabled)
			case "open":
				km.Open = stringValue(raw)
			case "sync":
				km.Sync = stringValue(raw)
			case "where":
				km.Where = stringValue(raw)
			case "repo":
				km.Repo = stringValue(raw)
			default:
				log.Debugf("config: ignoring unknown keymap %q", key)
			}
		}
	}
	return km
}

func parseConfig(data map[string]any) *AppConfig {
	return Merge(DefaultConfig(), data)
}

// NormalizeOpenAction returns the canonical open action, or "" if unknown.
func NormalizeOpenAction(action string) string {
	action = strings.ToLower(strings.TrimSpace(action))
	switch action {
	case OpenActionEdit, OpenActionPager, OpenActionView, OpenActionPrint:
		return action
	default:
		return ""
	}
}

func stringValue(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(v)
	default:
		return strings.TrimSpace(fmt.Sprintf("%v", v))
	}
}

func coerceBool(value any, defaultVal bool) bool {
	if value == nil {
		return defaultVal
	}

	switch v := value.(type) {
	case bool:
		return v
	case int:
		return v != 0
	case int64:
		return v != 0
	case string:
		text := strings.ToLower(strings.TrimSpace(v))
		switch text {
		case "1", "true", "yes", "y", "on":
			return true
		case "0", "false", "no", "n", "off":
			return false
		}
	}
	return defaultVal
}

// EditorCommand returns the configured editor, then $VISUAL, $EDITOR and vi.
func (c *AppConfig) EditorCommand() string {
	for _, candidate := range []string{c.Editor, os.Getenv("VISUAL"), os.Getenv("EDITOR")} {
		if s := strings.TrimSpace(candidate); s != "" {
			return s
		}
	}
	return "vi"
}

// PagerCommand returns the configured pager, then $PAGER and less.
func (c *AppConfig) PagerCommand() string {
	for _, candidate := range []string{c.Pager, os.Getenv("PAGER")} {
		if s := strings.TrimSpace(candidate); s != "" {
			return s
		}
	}
	return "less"
}

// Dump renders the effective configuration as YAML.
func (c *AppConfig) Dump() (string, error) {
	out, err := yaml.Marshal(c)
	if err != nil {
		return "", fmt.Errorf("encode config: %w", err)
	}
	return string(out), nil
}

func getConfigDir() string {
	if xdgConfigHome := os.Getenv("XDG_CONFIG_HOME"); xdgConfigHome != "" {
		return xdgConfigHome
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config")
}

// ConfigDir returns the directory holding lazytodo's config files.
func ConfigDir() string {
	return filepath.Clean(filepath.Join(getConfigDir(), appDirName))
}

// LoadConfig reads the configuration file and merges it over the
// defaults. Without configPath the first of config.yaml, config.yml and
// config.toml found in ConfigDir is used. On error the defaults are
// returned along with the error.
func LoadConfig(configPath string) (*AppConfig, error) {
	configBase := ConfigDir()

	var paths []string
	if configPath != "" {
		expanded, err := expandPath(configPath)
		if err != nil {
			return DefaultConfig(), err
		}
		absPath, err := filepath.Abs(expanded)
		if err != nil {
			return DefaultConfig(), err
		}
		if !isPathWithin(configBase, absPath) {
			return DefaultConfig(), fmt.Errorf("config path must reside inside %s", configBase)
		}
		paths = []string{absPath}
	} else {
		paths = []string{
			filepath.Join(configBase, "config.yaml"),
			filepath.Join(configBase, "config.yml"),
			filepath.Join(configBase, "config.toml"),
		}
	}

	for _, path := range paths {
		if _, err := os.Stat(path); os.IsNotExist(err) {
			continue
		}

		// #nosec G304 -- path is constrained to the config directory after validation
		data, err := os.ReadFile(path)
		if err != nil {
			return DefaultConfig(), fmt.Errorf("read %s: %w", path, err)
		}

		raw, err := decode(path, data)
		if err != nil {
			return DefaultConfig(), fmt.Errorf("parse %s: %w", path, err)
		}
		log.Debugf("config: loaded %s", path)
		return parseConfig(raw), nil
	}

	if configPath != "" {
		return DefaultConfig(), fmt.Errorf("config file %s not found", paths[0])
	}
	return DefaultConfig(), nil
}

func decode(path string, data []byte) (map[string]any, error) {
	raw := map[string]any{}
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		if err := toml.Unmarshal(data, &raw); err != nil {
			return nil, err
		}
		return raw, nil
	}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	return raw, nil
}

// ExpandPath expands a leading ~ and environment variables.
func ExpandPath(path string) (string, error) {
	return expandPath(path)
}

func expandPath(path string) (string, error) {
	if strings.HasPrefix(path, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		path = filepath.Join(home, path[1:])
	}
	return os.ExpandEnv(path), nil
}

func isPathWithin(base, target string) bool {
	base = filepath.Clean(base)
	target = filepath.Clean(target)

	rel, err := filepath.Rel(base, target)
	if err != nil {
		return false
	}
	if rel == "." {
		return true
	}
	if rel == ".." || strings.HasPrefix(rel, ".."+string(os.PathSeparator)) {
		return false
	}
	return true
}
