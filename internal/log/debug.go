// Package log is the lazytodo debug log. Messages are buffered until a
// destination is chosen, then flushed to a file or dropped.
package log

import (
	"bytes"
	"fmt"
	"log"
	"os"
	"sync"
)

// maxBuffered bounds what is kept before SetFile is called. Older lines
// are dropped first.
const maxBuffered = 256 << 10

// DebugLogger buffers log output until SetFile picks a destination.
// It implements io.Writer so it can back a standard log.Logger.
type DebugLogger struct {
	mu      sync.Mutex
	file    *os.File
	buffer  []byte
	dropped int
	discard bool
}

var (
	globalDebugLogger = &DebugLogger{}
	stdLogger         = log.New(globalDebugLogger, "", log.LstdFlags|log.Lmicroseconds)
)

// Write implements io.Writer.
func (l *DebugLogger) Write(p []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	switch {
	case l.discard:
		return len(p), nil
	case l.file != nil:
		n, err := l.file.Write(p)
		_ = l.file.Sync()
		return n, err
	}

	l.buffer = append(l.buffer, p...)
	if over := len(l.buffer) - maxBuffered; over > 0 {
		cut := over
		if i := bytes.IndexByte(l.buffer[over:], '\n'); i >= 0 {
			cut = over + i + 1
		}
		l.dropped += cut
		l.buffer = append([]byte(nil), l.buffer[cut:]...)
	}
	return len(p), nil
}

// reset drops the buffer and closes any open file. Callers hold mu.
func (l *DebugLogger) reset() {
	if l.file != nil {
		_ = l.file.Close()
		l.file = nil
	}
	l.buffer = nil
	l.dropped = 0
}

// SetFile directs the log to path, creating it if needed, and flushes
// anything buffered so far. An empty path drops the buffer and all
// future messages.
func SetFile(path string) error {
	l := globalDebugLogger
	l.mu.Lock()
	defer l.mu.Unlock()

	if path == "" {
		l.reset()
		l.discard = true
		return nil
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600) //nolint:gosec
	if err != nil {
		l.reset()
		l.discard = true
		return err
	}

	if l.file != nil {
		_ = l.file.Close()
	}
	l.file = f
	l.discard = false

	if l.dropped > 0 {
		_, _ = fmt.Fprintf(f, "[%d bytes of early log dropped]\n", l.dropped)
	}
	if len(l.buffer) > 0 {
		_, _ = f.Write(l.buffer)
	}
	_ = f.Sync()
	l.buffer = nil
	l.dropped = 0
	return nil
}

// Printf writes a formatted message.
func Printf(format string, args ...any) {
	stdLogger.Printf(format, args...)
}

// Println writes a message.
func Println(v ...any) {
	stdLogger.Println(v...)
}

// Debugf writes a message tagged as debug.
func Debugf(format string, args ...any) {
	stdLogger.Printf("debug: "+format, args...)
}

// Warnf writes a message tagged as warn.
func Warnf(format string, args ...any) {
	stdLogger.Printf("warn: "+format, args...)
}

// Errorf writes a message tagged as error.
func Errorf(format string, args ...any) {
	stdLogger.Printf("error: "+format, args...)
}

// Close closes the log file if one is open.
func Close() error {
	l := globalDebugLogger
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.file == nil {
		return nil
	}
	err := l.file.Close()
	l.file = nil
	return err
}
