package cli

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/alnah/go-cutbot/internal/silence"
)

// ---------------------------------------------------------------------------
// syncBuffer - thread-safe bytes.Buffer for concurrent test output
// ---------------------------------------------------------------------------

type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (n int, err error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

// Compile-time check that syncBuffer implements io.Writer.
var _ io.Writer = (*syncBuffer)(nil)

// ---------------------------------------------------------------------------
// testMocks - convenience struct for grouping all mocks
// ---------------------------------------------------------------------------

type testMocks struct {
	toolResolver *mockToolResolver
	configLoader *mockConfigLoader
	detector     *mockDetector
	detectors    *mockDetectorFactory
	merger       *mockMerger
	mergers      *mockMergerFactory
}

func newTestMocks() *testMocks {
	detector := &mockDetector{}
	merger := &mockMerger{}
	return &testMocks{
		toolResolver: &mockToolResolver{},
		configLoader: &mockConfigLoader{},
		detector:     detector,
		detectors:    &mockDetectorFactory{detector: detector},
		merger:       merger,
		mergers:      &mockMergerFactory{merger: merger},
	}
}

// ---------------------------------------------------------------------------
// testEnv - creates a fully mocked Env for testing
// ---------------------------------------------------------------------------

// testEnv creates a test Env with all dependencies mocked.
// Returns the Env, the mocks for assertions, and the output buffers.
func testEnv() (*Env, *testMocks, *syncBuffer, *syncBuffer) {
	mocks := newTestMocks()
	stdout, stderr := &syncBuffer{}, &syncBuffer{}

	env := &Env{
		Stdout:          stdout,
		Stderr:          stderr,
		Getenv:          staticEnv(nil),
		Now:             fixedTime(time.Date(2026, 1, 26, 14, 30, 52, 0, time.UTC)),
		ToolResolver:    mocks.toolResolver,
		ConfigLoader:    mocks.configLoader,
		DetectorFactory: mocks.detectors,
		MergerFactory:   mocks.mergers,
	}

	return env, mocks, stdout, stderr
}

// ---------------------------------------------------------------------------
// Test helpers
// ---------------------------------------------------------------------------

// fixedTime returns a function that always returns the given time.
func fixedTime(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

// staticEnv returns a getenv function that returns values from the given map.
func staticEnv(env map[string]string) func(string) string {
	return func(key string) string {
		return env[key]
	}
}

// sampleEvents is the analysis of a 10 second recording with speech at
// 2-5s and 8-10s.
func sampleEvents() silence.Events {
	return silence.Events{
		SilenceStarts: []time.Duration{5 * time.Second},
		LoudStarts:    []time.Duration{2 * time.Second, 8 * time.Second},
		Duration:      10 * time.Second,
	}
}

// createTestMediaFile creates a temporary media file for testing.
// Returns the file path. The file is automatically cleaned up after the test.
func createTestMediaFile(t *testing.T, name string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, name)

	if err := os.WriteFile(path, []byte("fake media content"), 0644); err != nil {
		t.Fatalf("failed to create test media file: %v", err)
	}
	return path
}
