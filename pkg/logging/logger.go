package logging

import (
	"bytes"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
)

// Logger is a wrapper around the log.Logger from the charmbracelet/log package.
// Buffer is set only for test loggers.
type Logger struct {
	*log.Logger
	Buffer *bytes.Buffer
}

// New creates a logger writing to stderr. Debug mode reports callers and
// timestamps and lowers the level to debug.
func New(debug bool) *Logger {
	return NewWithWriter(os.Stderr, debug)
}

// NewWithWriter creates a logger writing to w.
func NewWithWriter(w io.Writer, debug bool) *Logger {
	if !debug {
		base := log.New(w)
		base.SetLevel(log.InfoLevel)
		return &Logger{Logger: base}
	}

	base := log.NewWithOptions(w, log.Options{
		ReportCaller:    true,
		ReportTimestamp: true,
		Prefix:          "autotestify",
	})
	base.SetLevel(log.DebugLevel)
	return &Logger{Logger: base}
}

// NewTestLogger returns a debug-level logger that records into a buffer.
func NewTestLogger() *Logger {
	buf := new(bytes.Buffer)
	base := log.New(buf)
	base.SetLevel(log.DebugLevel)
	return &Logger{Logger: base, Buffer: buf}
}

// GetOutput returns everything a test logger has recorded.
func (l *Logger) GetOutput() string {
	if l.Buffer == nil {
		return ""
	}
	return l.Buffer.String()
}

// With returns a child logger carrying keyvals. Test loggers share their buffer.
func (l *Logger) With(keyvals ...interface{}) *Logger {
	return &Logger{Logger: l.Logger.With(keyvals...), Buffer: l.Buffer}
}

// BaseLogger returns the underlying *log.Logger.
func (l *Logger) BaseLogger() *log.Logger {
	return l.Logger
}

// TimeOperation runs fn and logs its duration at debug level.
func (l *Logger) TimeOperation(operation string, fn func() error) error {
	start := time.Now()
	err := fn()
	if err != nil {
		l.Debug("operation failed", "operation", operation, "duration", time.Since(start), "error", err)
		return err
	}
	l.Debug("operation completed", "operation", operation, "duration", time.Since(start))
	return nil
}
