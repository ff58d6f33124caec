package config

import (
	"fmt"
	"strings"
)

const overridePrefix = "lt."

// parseCLIConfigOverrides turns --config=lt.key=value arguments into the
// nested map Merge expects. Dotted keys nest: lt.keymaps.open=x becomes
// {"keymaps": {"open": "x"}}. A repeated key keeps the last value.
func parseCLIConfigOverrides(overrides []string) (map[string]any, error) {
	result := make(map[string]any)

	for _, override := range overrides {
		parts := strings.SplitN(override, "=", 2)
		if len(parts) != 2 {
			return nil, fmt.Errorf("invalid config override: %q, expected format: lt.key=value (note: use = not space)", override)
		}

		fullKey := strings.TrimSpace(parts[0])
		value := parts[1]

		if !strings.HasPrefix(fullKey, overridePrefix) {
			return nil, fmt.Errorf("config override key must start with %q: %q", overridePrefix, fullKey)
		}

		path := strings.Split(strings.TrimPrefix(fullKey, overridePrefix), ".")
		for _, segment := range path {
			if segment == "" {
				return nil, fmt.Errorf("empty config key in override: %q", override)
			}
		}

		if err := setPath(result, path, value); err != nil {
			return nil, fmt.Errorf("config override %q: %w", override, err)
		}
	}

	return result, nil
}

func setPath(dst map[string]any, path []string, value string) error {
	node := dst
	for _, segment := range path[:len(path)-1] {
		next, exists := node[segment]
		if !exists {
			child := make(map[string]any)
			node[segment] = child
			node = child
			continue
		}
		child, ok := next.(map[string]any)
		if !ok {
			return fmt.Errorf("%q is already set to a value", segment)
		}
		node = child
	}

	leaf := path[len(path)-1]
	if _, isTable := node[leaf].(map[string]any); isTable {
		return fmt.Errorf("%q is a table", leaf)
	}
	node[leaf] = value
	return nil
}

// ApplyCLIOverrides merges --config overrides into c in place. They take
// precedence over the config file.
func (c *AppConfig) ApplyCLIOverrides(overrides []string) error {
	if len(overrides) == 0 {
		return nil
	}
	data, err := parseCLIConfigOverrides(overrides)
	if err != nil {
		return err
	}
	*c = *Merge(c, data)
	return nil
}
