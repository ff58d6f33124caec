package editor

import (
	"fmt"
	"sort"
	"strings"
)

// FeedState is the result of feeding one key to a Keymap.
type FeedState int

// Feed results.
const (
	FeedNone FeedState = iota
	FeedPending
	FeedMatched
)

// Binding maps a key sequence to a command name.
type Binding struct {
	Sequence string
	Command  string
}

// Keymap resolves key sequences such as "o" or "ctrl+t s" to commands.
// Keys are Bubble Tea key names; a sequence separates keys with spaces.
type Keymap struct {
	bindings map[string]string
	prefixes map[string]int
	reserved map[string]bool
	pending  []string
}

// NewKeymap creates an empty keymap.
func NewKeymap() *Keymap {
	return &Keymap{
		bindings: make(map[string]string),
		prefixes: make(map[string]int),
		reserved: make(map[string]bool),
	}
}

// Reserve marks keys the host handles itself. No sequence may start
// with a reserved key.
func (k *Keymap) Reserve(keys ...string) {
	for _, key := range keys {
		k.reserved[key] = true
	}
}

// Bind maps sequence to command. A sequence may not be bound twice and
// may not be a prefix of another bound sequence.
func (k *Keymap) Bind(sequence, command string) error {
	keys := strings.Fields(sequence)
	if len(keys) == 0 {
		return fmt.Errorf("empty key sequence for %s", command)
	}
	if command == "" {
		return fmt.Errorf("key sequence %q has no command", sequence)
	}
	seq := strings.Join(keys, " ")

	if k.reserved[keys[0]] {
		return fmt.Errorf("key sequence %q for %s uses reserved key %q", seq, command, keys[0])
	}
	if existing, ok := k.bindings[seq]; ok {
		return fmt.Errorf("key sequence %q already bound to %s", seq, existing)
	}
	if k.prefixes[seq] > 0 {
		return fmt.Errorf("key sequence %q is a prefix of another binding", seq)
	}
	for i := 1; i < len(keys); i++ {
		prefix := strings.Join(keys[:i], " ")
		if existing, ok := k.bindings[prefix]; ok {
			return fmt.Errorf("key sequence %q is shadowed by %q (%s)", seq, prefix, existing)
		}
	}

	k.bindings[seq] = command
	for i := 1; i < len(keys); i++ {
		k.prefixes[strings.Join(keys[:i], " ")]++
	}
	return nil
}

// Feed consumes one key. A completed sequence returns its command with
// FeedMatched; a partial one returns FeedPending. A key that breaks a
// pending sequence is retried on its own.
func (k *Keymap) Feed(key string) (string, FeedState) {
	if len(k.pending) > 0 {
		seq := strings.Join(append(append([]string(nil), k.pending...), key), " ")
		if cmd, ok := k.bindings[seq]; ok {
			k.pending = nil
			return cmd, FeedMatched
		}
		if k.prefixes[seq] > 0 {
			k.pending = append(k.pending, key)
			return "", FeedPending
		}
		k.pending = nil
	}

	if cmd, ok := k.bindings[key]; ok {
		return cmd, FeedMatched
	}
	if k.prefixes[key] > 0 {
		k.pending = []string{key}
		return "", FeedPending
	}
	return "", FeedNone
}

// Pending returns the keys typed so far of an unfinished sequence.
func (k *Keymap) Pending() string {
	return strings.Join(k.pending, " ")
}

// Reset drops any pending keys.
func (k *Keymap) Reset() {
	k.pending = nil
}

// Bindings returns all bindings sorted by sequence.
func (k *Keymap) Bindings() []Binding {
	out := make([]Binding, 0, len(k.bindings))
	for seq, cmd := range k.bindings {
		out = append(out, Binding{Sequence: seq, Command: cmd})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Sequence < out[j].Sequence })
	return out
}
