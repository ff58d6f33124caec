package editor

import (
	"context"
	"os/exec"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExternalCommand(t *testing.T) {
	c, err := ExternalCommand(context.Background(), exec.CommandContext, " nvim -R ", "/a b/todo.md", "/work")
	require.NoError(t, err)
	assert.Equal(t, []string{"sh", "-c", "nvim -R '/a b/todo.md'"}, c.Args)
	assert.Equal(t, "/work", c.Dir)
	assert.Nil(t, c.Env)
}

func TestExternalCommandEmpty(t *testing.T) {
	_, err := ExternalCommand(context.Background(), exec.CommandContext, "  ", "/tmp/todo.md", "")
	assert.ErrorIs(t, err, ErrNoCommand)
}

func TestExternalCommandLessDisablesHistory(t *testing.T) {
	c, err := ExternalCommand(context.Background(), exec.CommandContext, "LESS=-R /usr/bin/less", "/tmp/todo.md", "")
	require.NoError(t, err)
	assert.True(t, slices.Contains(c.Env, "LESSHISTFILE=-"))
}

func TestCommandIsLess(t *testing.T) {
	tests := []struct {
		command string
		want    bool
	}{
		{"less", true},
		{"less -R", true},
		{"/usr/bin/less", true},
		{"LESS=-R less", true},
		{"more", false},
		{"bat --paging=always", false},
		{"", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, commandIsLess(tt.command), tt.command)
	}
}

func TestShellQuote(t *testing.T) {
	assert.Equal(t, "''", ShellQuote(""))
	assert.Equal(t, "'/a b/todo.md'", ShellQuote("/a b/todo.md"))
	assert.Equal(t, `'it'"'"'s'`, ShellQuote("it's"))
}
