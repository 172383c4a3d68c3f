package tool

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"path/filepath"
	"sync"
)

// ---------------------------------------------------------------------------
// Executor - testable tool execution with dependency injection
// ---------------------------------------------------------------------------

// runFn runs a command and returns its combined stdout and stderr.
// dir is the working directory; empty means the current one.
type runFn func(ctx context.Context, dir, path string, args []string, progress io.Writer) (string, error)

// Executor runs external tools with injectable dependencies.
type Executor struct {
	run runFn
}

// ExecutorOption configures an Executor.
type ExecutorOption func(*Executor)

// WithRun sets a custom run function (for testing).
func WithRun(fn runFn) ExecutorOption {
	return func(e *Executor) { e.run = fn }
}

// NewExecutor creates an Executor with the given options.
func NewExecutor(opts ...ExecutorOption) *Executor {
	e := &Executor{
		run: defaultRun,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// RunOutput executes a tool and captures its combined output.
// ffmpeg writes all of its diagnostics, silencedetect included, to stderr.
// A non-zero exit is reported as *Error; the captured output is returned
// either way so callers can show it.
func (e *Executor) RunOutput(ctx context.Context, toolPath string, args []string) (string, error) {
	return e.RunIn(ctx, "", toolPath, args, nil)
}

// RunIn executes a tool in dir. When progress is non-nil, the output is
// also copied to it as the tool runs.
func (e *Executor) RunIn(ctx context.Context, dir, toolPath string, args []string, progress io.Writer) (string, error) {
	output, err := e.run(ctx, dir, toolPath, args, progress)
	if err == nil {
		return output, nil
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return output, fmt.Errorf("%s interrupted: %w", filepath.Base(toolPath), ctxErr)
	}
	return output, newError(toolPath, args, output, err)
}

// newError classifies a raw exec error into *Error.
func newError(toolPath string, args []string, output string, err error) *Error {
	code := -1
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		code = exitErr.ExitCode()
	}
	return &Error{
		Tool:     filepath.Base(toolPath),
		Args:     args,
		ExitCode: code,
		Output:   output,
		Err:      err,
	}
}

// defaultRun is the production implementation.
func defaultRun(ctx context.Context, dir, path string, args []string, progress io.Writer) (string, error) {
	// #nosec G204 -- path comes from the resolver, args are built by this program
	cmd := exec.CommandContext(ctx, path, args...)
	cmd.Dir = dir

	var out bytes.Buffer
	var w io.Writer = &out
	if progress != nil {
		w = io.MultiWriter(&out, progress)
	}
	cmd.Stdout = w
	cmd.Stderr = w

	err := cmd.Run()
	return out.String(), err
}

// ---------------------------------------------------------------------------
// Package-level functions - default executor facade
// ---------------------------------------------------------------------------

var (
	defaultExecutor     *Executor
	defaultExecutorOnce sync.Once
)

// DefaultExecutor returns the lazily-initialized production executor.
func DefaultExecutor() *Executor {
	defaultExecutorOnce.Do(func() {
		defaultExecutor = NewExecutor()
	})
	return defaultExecutor
}
