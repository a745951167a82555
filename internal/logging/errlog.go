package logging

import (
	"fmt"
	"log/slog"
	"os"
	"sync"
)

// DefaultErrorLogFile is the error log written next to the working directory
// of the server process.
const DefaultErrorLogFile = "server_err.log"

// ErrorLog appends messages to a shared log file. The file is opened for
// each write and closed straight after, so several processes or goroutines
// may append to it.
type ErrorLog struct {
	path string

	mu sync.Mutex

	// exit terminates the process in Fatal. Replaced in tests.
	exit func(code int)
}

// NewErrorLog returns an ErrorLog appending to path, or to
// DefaultErrorLogFile when path is empty.
func NewErrorLog(path string) *ErrorLog {
	if path == "" {
		path = DefaultErrorLogFile
	}
	return &ErrorLog{path: path, exit: os.Exit}
}

// Path returns the log file path.
func (l *ErrorLog) Path() string { return l.path }

// Error records msg. If the log itself cannot be written the process is
// terminated, as with Fatal.
func (l *ErrorLog) Error(msg string) {
	slog.Error(msg)
	if err := l.append(msg); err != nil {
		fmt.Fprintf(os.Stderr, "error log %s: %v\n", l.path, err)
		l.exit(1)
	}
}

// Fatal records msg and exits with status 1. It is meant for broken
// invariants where restarting the process is the only sane recovery, never
// for expected conditions such as an empty clipboard.
func (l *ErrorLog) Fatal(msg string) {
	slog.Error("fatal: " + msg)
	if err := l.append(msg); err != nil {
		fmt.Fprintf(os.Stderr, "error log %s: %v\n", l.path, err)
	}
	l.exit(1)
}

func (l *ErrorLog) append(msg string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	f, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o666)
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintln(f, msg); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	shareLogFile(l.path)
	return nil
}
