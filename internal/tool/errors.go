package tool

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNotFound indicates an external tool binary could not be located.
var ErrNotFound = errors.New("tool not found")

// ErrFailed indicates an external tool failed to start or exited non-zero.
// Every *Error matches it through errors.Is.
var ErrFailed = errors.New("tool failed")

// Error describes a failed invocation of an external tool.
// ExitCode is -1 when the process could not be started at all.
type Error struct {
	Tool     string
	Args     []string
	ExitCode int
	Output   string
	Err      error
}

func (e *Error) Error() string {
	var b strings.Builder
	if e.ExitCode < 0 {
		fmt.Fprintf(&b, "%s: failed to start: %v", e.Tool, e.Err)
	} else {
		fmt.Fprintf(&b, "%s: exited with status %d", e.Tool, e.ExitCode)
	}
	if tail := lastLines(e.Output, 5); tail != "" {
		b.WriteString("\nOutput:\n")
		b.WriteString(tail)
	}
	return b.String()
}

func (e *Error) Unwrap() error { return e.Err }

// Is reports ErrFailed as a match so callers need not know the concrete type.
func (e *Error) Is(target error) bool { return target == ErrFailed }

// lastLines keeps the tail of noisy tool output readable in error messages.
func lastLines(s string, n int) string {
	lines := strings.Split(strings.TrimRight(s, "\n"), "\n")
	if len(lines) > n {
		lines = lines[len(lines)-n:]
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}
