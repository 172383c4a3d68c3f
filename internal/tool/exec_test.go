package tool

// Notes:
// - Executor tests inject the run function; defaultRun tests use sh
// - VersionChecker tests use an Executor with a canned run function
// - All tests can run in parallel since there's no global state modification

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os/exec"
	"runtime"
	"strings"
	"testing"
)

// ---------------------------------------------------------------------------
// Executor.RunOutput - output capture and error classification
// ---------------------------------------------------------------------------

func TestExecutor_RunOutput(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		mockOutput string
		mockErr    error
		wantOutput string
		wantErr    bool
	}{
		{
			name:       "returns output",
			mockOutput: "[silencedetect @ 0x1] silence_start: 1.5",
			wantOutput: "[silencedetect @ 0x1] silence_start: 1.5",
		},
		{
			name:       "returns empty output",
			mockOutput: "",
			wantOutput: "",
		},
		{
			name:       "returns output alongside error",
			mockOutput: "Invalid data found when processing input",
			mockErr:    errors.New("exit status 1"),
			wantOutput: "Invalid data found when processing input",
			wantErr:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			executor := NewExecutor(
				WithRun(func(ctx context.Context, dir, path string, args []string, progress io.Writer) (string, error) {
					return tt.mockOutput, tt.mockErr
				}),
			)

			got, err := executor.RunOutput(context.Background(), "/usr/bin/ffmpeg", []string{"-i", "in.mkv"})
			if got != tt.wantOutput {
				t.Errorf("RunOutput() output = %q, want %q", got, tt.wantOutput)
			}
			if tt.wantErr {
				if !errors.Is(err, ErrFailed) {
					t.Errorf("RunOutput() error = %v, want ErrFailed", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("RunOutput() unexpected error: %v", err)
			}
		})
	}
}

func TestExecutor_RunOutput_StartFailure(t *testing.T) {
	t.Parallel()

	executor := NewExecutor(
		WithRun(func(ctx context.Context, dir, path string, args []string, progress io.Writer) (string, error) {
			return "", exec.ErrNotFound
		}),
	)

	_, err := executor.RunOutput(context.Background(), "/opt/bin/ffmpeg", []string{"-version"})

	var toolErr *Error
	if !errors.As(err, &toolErr) {
		t.Fatalf("RunOutput() error = %T, want *Error", err)
	}
	if toolErr.ExitCode != -1 {
		t.Errorf("ExitCode = %d, want -1", toolErr.ExitCode)
	}
	if toolErr.Tool != "ffmpeg" {
		t.Errorf("Tool = %q, want %q", toolErr.Tool, "ffmpeg")
	}
	if !errors.Is(err, exec.ErrNotFound) {
		t.Errorf("error should unwrap to exec.ErrNotFound, got %v", err)
	}
	if !strings.Contains(err.Error(), "failed to start") {
		t.Errorf("error message = %q, want to contain %q", err.Error(), "failed to start")
	}
}

func TestExecutor_RunOutput_ContextCanceled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	executor := NewExecutor(
		WithRun(func(ctx context.Context, dir, path string, args []string, progress io.Writer) (string, error) {
			return "", errors.New("signal: killed")
		}),
	)

	_, err := executor.RunOutput(ctx, "ffmpeg", nil)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("RunOutput() error = %v, want context.Canceled", err)
	}
	if errors.Is(err, ErrFailed) {
		t.Errorf("canceled run should not be reported as ErrFailed")
	}
}

func TestExecutor_RunIn_PassesDirAndProgress(t *testing.T) {
	t.Parallel()

	var gotDir string
	var gotProgress io.Writer
	progress := &bytes.Buffer{}

	executor := NewExecutor(
		WithRun(func(ctx context.Context, dir, path string, args []string, p io.Writer) (string, error) {
			gotDir = dir
			gotProgress = p
			return "", nil
		}),
	)

	if _, err := executor.RunIn(context.Background(), "/recordings", "melt", nil, progress); err != nil {
		t.Fatalf("RunIn() unexpected error: %v", err)
	}
	if gotDir != "/recordings" {
		t.Errorf("dir = %q, want %q", gotDir, "/recordings")
	}
	if gotProgress != progress {
		t.Errorf("progress writer was not passed through")
	}
}

// ---------------------------------------------------------------------------
// defaultRun - real process execution
// ---------------------------------------------------------------------------

func TestDefaultRun_CapturesStdoutAndStderr(t *testing.T) {
	t.Parallel()
	if runtime.GOOS == "windows" {
		t.Skip("uses sh")
	}

	var progress bytes.Buffer
	output, err := defaultRun(context.Background(), "", "sh", []string{"-c", "echo out; echo err >&2"}, &progress)
	if err != nil {
		t.Fatalf("defaultRun() unexpected error: %v", err)
	}
	for _, want := range []string{"out", "err"} {
		if !strings.Contains(output, want) {
			t.Errorf("output = %q, want containing %q", output, want)
		}
		if !strings.Contains(progress.String(), want) {
			t.Errorf("progress = %q, want containing %q", progress.String(), want)
		}
	}
}

func TestDefaultRun_WorkingDirectory(t *testing.T) {
	t.Parallel()
	if runtime.GOOS == "windows" {
		t.Skip("uses sh")
	}

	dir := t.TempDir()
	output, err := defaultRun(context.Background(), dir, "sh", []string{"-c", "pwd"}, nil)
	if err != nil {
		t.Fatalf("defaultRun() unexpected error: %v", err)
	}
	if !strings.Contains(output, dir) {
		t.Errorf("pwd output = %q, want containing %q", output, dir)
	}
}

func TestExecutor_NonZeroExit(t *testing.T) {
	t.Parallel()
	if runtime.GOOS == "windows" {
		t.Skip("uses sh")
	}

	_, err := NewExecutor().RunOutput(context.Background(), "sh", []string{"-c", "echo boom >&2; exit 3"})

	var toolErr *Error
	if !errors.As(err, &toolErr) {
		t.Fatalf("RunOutput() error = %v, want *Error", err)
	}
	if toolErr.ExitCode != 3 {
		t.Errorf("ExitCode = %d, want 3", toolErr.ExitCode)
	}
	if !strings.Contains(err.Error(), "exited with status 3") {
		t.Errorf("error = %q, want exit status in message", err.Error())
	}
	if !strings.Contains(err.Error(), "boom") {
		t.Errorf("error = %q, want tool output in message", err.Error())
	}
}

// ---------------------------------------------------------------------------
// Error - message formatting
// ---------------------------------------------------------------------------

func TestError_TruncatesOutput(t *testing.T) {
	t.Parallel()

	lines := []string{"l1", "l2", "l3", "l4", "l5", "l6", "l7"}
	err := &Error{Tool: "ffmpeg", ExitCode: 1, Output: strings.Join(lines, "\n") + "\n"}

	msg := err.Error()
	if strings.Contains(msg, "l2") {
		t.Errorf("message should keep only the last 5 lines, got %q", msg)
	}
	if !strings.Contains(msg, "l3") || !strings.Contains(msg, "l7") {
		t.Errorf("message should keep lines l3..l7, got %q", msg)
	}
}

// ---------------------------------------------------------------------------
// VersionChecker - FFmpeg version parsing
// ---------------------------------------------------------------------------

func TestVersionChecker_Check(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name          string
		versionLine   string
		wantChecked   bool
		expectWarning bool
	}{
		{name: "version 6", versionLine: "ffmpeg version 6.1.1 Copyright (c) 2000-2023", wantChecked: true},
		{name: "version 4 is the minimum", versionLine: "ffmpeg version 4.4.1 Copyright (c) 2000-2021", wantChecked: true},
		{name: "version 3 warns", versionLine: "ffmpeg version 3.4.8 Copyright (c) 2000-2020", wantChecked: true, expectWarning: true},
		{name: "n-prefixed version", versionLine: "ffmpeg version n7.0 Copyright (c) 2000-2024", wantChecked: true},
		{name: "unparseable", versionLine: "something unexpected", wantChecked: false},
		{name: "empty output", versionLine: "", wantChecked: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var stderr strings.Builder
			executor := NewExecutor(
				WithRun(func(ctx context.Context, dir, path string, args []string, progress io.Writer) (string, error) {
					return tt.versionLine, nil
				}),
			)
			checker := NewVersionChecker(
				WithVersionExecutor(executor),
				WithVersionStderr(&stderr),
			)

			got := checker.Check(context.Background(), "/usr/bin/ffmpeg")
			if got != tt.wantChecked {
				t.Errorf("Check() = %v, want %v", got, tt.wantChecked)
			}

			hasWarning := strings.Contains(stderr.String(), "Warning:")
			if hasWarning != tt.expectWarning {
				t.Errorf("warning written = %v, want %v (stderr: %q)", hasWarning, tt.expectWarning, stderr.String())
			}
		})
	}
}
