// Package logger provides operator-facing logging for the joblistings CLI.
// Warnings and errors are always written so skipped lines and failed loads
// are visible. Debug and info messages are written only in verbose mode.
package logger

import (
	"fmt"
	"io"
	"os"
	"sync"
)

var (
	mu      sync.RWMutex
	verbose bool
	runID   string
	output  io.Writer = os.Stderr
)

// SetVerbose enables or disables verbose logging.
func SetVerbose(v bool) {
	mu.Lock()
	defer mu.Unlock()
	verbose = v
}

// IsVerbose returns true if verbose mode is enabled.
func IsVerbose() bool {
	mu.RLock()
	defer mu.RUnlock()
	return verbose
}

// SetOutput sets the output writer for logs.
// Defaults to os.Stderr. Useful for testing.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	output = w
}

// SetRunID tags subsequent lines with a pipeline run identifier.
// An empty id removes the tag.
func SetRunID(id string) {
	mu.Lock()
	defer mu.Unlock()
	runID = id
}

// Debug prints a message if verbose mode is enabled.
func Debug(format string, args ...any) {
	write(true, "DEBUG", format, args...)
}

// Info prints an informational message if verbose mode is enabled.
func Info(format string, args ...any) {
	write(true, "INFO", format, args...)
}

// Warn prints a warning for a recovered problem such as a skipped line.
func Warn(format string, args ...any) {
	write(false, "WARN", format, args...)
}

// Error prints an error that aborted an operation.
func Error(format string, args ...any) {
	write(false, "ERROR", format, args...)
}

// Section prints a section header if verbose mode is enabled.
func Section(name string) {
	mu.Lock()
	defer mu.Unlock()
	if verbose {
		fmt.Fprintf(output, "\n=== %s ===\n", name)
	}
}

// write holds the write lock so concurrent callers never interleave output.
func write(gated bool, level, format string, args ...any) {
	mu.Lock()
	defer mu.Unlock()
	if gated && !verbose {
		return
	}
	prefix := "[" + level + "] "
	if runID != "" {
		prefix += "[run " + runID + "] "
	}
	fmt.Fprintf(output, prefix+format+"\n", args...)
}
