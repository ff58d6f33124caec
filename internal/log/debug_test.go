package log

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resetDebugLogger(t *testing.T) func() {
	t.Helper()

	globalDebugLogger.mu.Lock()
	prevFile := globalDebugLogger.file
	prevBuffer := append([]byte(nil), globalDebugLogger.buffer...)
	prevDiscard := globalDebugLogger.discard
	prevDropped := globalDebugLogger.dropped
	globalDebugLogger.file = nil
	globalDebugLogger.buffer = nil
	globalDebugLogger.discard = false
	globalDebugLogger.dropped = 0
	globalDebugLogger.mu.Unlock()

	return func() {
		globalDebugLogger.mu.Lock()
		if globalDebugLogger.file != nil {
			_ = globalDebugLogger.file.Close()
		}
		globalDebugLogger.file = prevFile
		globalDebugLogger.buffer = prevBuffer
		globalDebugLogger.discard = prevDiscard
		globalDebugLogger.dropped = prevDropped
		globalDebugLogger.mu.Unlock()
	}
}

func TestBufferedMessagesFlushToFile(t *testing.T) {
	t.Cleanup(resetDebugLogger(t))

	Debugf("spawn %s", "todo_md where")
	Errorf("exit %d", 1)

	logPath := filepath.Join(t.TempDir(), "debug.log")
	require.NoError(t, SetFile(logPath))
	Println("after flush")
	require.NoError(t, Close())

	// #nosec G304 - test file in t.TempDir()
	data, err := os.ReadFile(logPath)
	require.NoError(t, err)
	content := string(data)

	assert.Contains(t, content, "debug: spawn todo_md where")
	assert.Contains(t, content, "error: exit 1")
	assert.NotContains(t, content, "early log dropped")
	assert.Contains(t, content, "after flush")
	assert.Less(t, strings.Index(content, "spawn"), strings.Index(content, "after flush"))
}

func TestEmptyPathDiscards(t *testing.T) {
	t.Cleanup(resetDebugLogger(t))

	Printf("buffered")
	require.NoError(t, SetFile(""))
	Printf("dropped")

	globalDebugLogger.mu.Lock()
	defer globalDebugLogger.mu.Unlock()
	assert.True(t, globalDebugLogger.discard)
	assert.Empty(t, globalDebugLogger.buffer)
}

func TestSetFileFailureDiscardsLogs(t *testing.T) {
	t.Cleanup(resetDebugLogger(t))

	missingDir := filepath.Join(t.TempDir(), "missing", "nested")
	logPath := filepath.Join(missingDir, "debug.log")
	require.Error(t, SetFile(logPath))

	Printf("should be discarded")

	globalDebugLogger.mu.Lock()
	defer globalDebugLogger.mu.Unlock()
	assert.True(t, globalDebugLogger.discard)
	assert.Empty(t, globalDebugLogger.buffer)
}

func TestCloseWithoutFile(t *testing.T) {
	t.Cleanup(resetDebugLogger(t))
	assert.NoError(t, Close())
}

func TestBufferIsBounded(t *testing.T) {
	t.Cleanup(resetDebugLogger(t))

	line := strings.Repeat("x", 1000)
	for i := 0; i < maxBuffered/1000+50; i++ {
		Warnf("%d %s", i, line)
	}

	globalDebugLogger.mu.Lock()
	assert.LessOrEqual(t, len(globalDebugLogger.buffer), maxBuffered)
	assert.Positive(t, globalDebugLogger.dropped)
	assert.Equal(t, byte('\n'), globalDebugLogger.buffer[len(globalDebugLogger.buffer)-1])
	globalDebugLogger.mu.Unlock()

	logPath := filepath.Join(t.TempDir(), "debug.log")
	require.NoError(t, SetFile(logPath))
	require.NoError(t, Close())

	// #nosec G304 - test file in t.TempDir()
	data, err := os.ReadFile(logPath)
	require.NoError(t, err)
	first, _, _ := strings.Cut(string(data), "\n")
	assert.Contains(t, first, "bytes of early log dropped")
	assert.Contains(t, string(data), "warn: ")
	assert.NotContains(t, string(data), "warn: 0 x")
}
