// Package status parses the line-oriented `key: value` output of todo_md.
package status

import (
	"sort"
	"strings"
)

// Keys printed by `todo_md where`. The set is an allow-list for display
// only; Parse keeps any well-formed key.
const (
	KeyConfig = "config"
	KeyTodo   = "todo"
	KeyEnv    = "env"
	KeyBranch = "branch"
	KeyRemote = "remote"
)

// KnownKeys returns the display order of the keys todo_md is known to print.
func KnownKeys() []string {
	return []string{KeyConfig, KeyTodo, KeyEnv, KeyBranch, KeyRemote}
}

// Status is a read-only key/value view over one `where` output.
// The zero value is an empty status.
type Status struct {
	fields map[string]string
}

// Parse scans stdout line by line and keeps every `key: value` line.
// Lines that do not match are dropped; when a key repeats the last value
// wins. Parse never fails and never returns nil.
func Parse(stdout string) *Status {
	fields := make(map[string]string)
	for _, line := range strings.Split(stdout, "\n") {
		key, value, ok := parseLine(strings.TrimSuffix(line, "\r"))
		if !ok {
			continue
		}
		fields[key] = value
	}
	return &Status{fields: fields}
}

// parseLine applies the single matching rule: one or more [a-z_], a colon,
// optional whitespace, then a non-empty remainder.
func parseLine(line string) (string, string, bool) {
	i := 0
	for i < len(line) && isKeyByte(line[i]) {
		i++
	}
	if i == 0 || i >= len(line) || line[i] != ':' {
		return "", "", false
	}
	value := strings.TrimLeft(line[i+1:], " \t\v\f\r")
	if value == "" {
		return "", "", false
	}
	return line[:i], value, true
}

func isKeyByte(b byte) bool {
	return (b >= 'a' && b <= 'z') || b == '_'
}

// Get returns the value for key.
func (s *Status) Get(key string) (string, bool) {
	if s == nil {
		return "", false
	}
	v, ok := s.fields[key]
	return v, ok
}

// Value returns the value for key or an empty string.
func (s *Status) Value(key string) string {
	v, _ := s.Get(key)
	return v
}

// Len returns the number of parsed keys.
func (s *Status) Len() int {
	if s == nil {
		return 0
	}
	return len(s.fields)
}

// Keys returns the parsed keys in sorted order.
func (s *Status) Keys() []string {
	if s == nil {
		return nil
	}
	keys := make([]string, 0, len(s.fields))
	for k := range s.fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Fields returns a copy of the parsed mapping. Callers that need derived
// data build it from the copy; the Status itself stays untouched.
func (s *Status) Fields() map[string]string {
	out := make(map[string]string, s.Len())
	if s == nil {
		return out
	}
	for k, v := range s.fields {
		out[k] = v
	}
	return out
}

// Render writes the canonical form, one `key: value` line per key in
// sorted order. Parse(Render()) yields the same mapping.
func (s *Status) Render() string {
	var b strings.Builder
	for _, k := range s.Keys() {
		b.WriteString(k)
		b.WriteString(": ")
		b.WriteString(s.fields[k])
		b.WriteByte('\n')
	}
	return b.String()
}
