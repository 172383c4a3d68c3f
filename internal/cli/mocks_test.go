package cli

import (
	"context"
	"io"
	"sync"

	"github.com/alnah/go-cutbot/internal/concat"
	"github.com/alnah/go-cutbot/internal/config"
	"github.com/alnah/go-cutbot/internal/silence"
	"github.com/alnah/go-cutbot/internal/tool"
)

// ---------------------------------------------------------------------------
// Mock ToolResolver
// ---------------------------------------------------------------------------

type resolveCall struct {
	Tool       tool.Tool
	Configured string
}

type mockToolResolver struct {
	ResolveFunc func(ctx context.Context, t tool.Tool, configured string) (string, error)

	mu                sync.Mutex
	resolveCalls      []resolveCall
	checkVersionCalls int
}

func (m *mockToolResolver) Resolve(ctx context.Context, t tool.Tool, configured string) (string, error) {
	m.mu.Lock()
	m.resolveCalls = append(m.resolveCalls, resolveCall{Tool: t, Configured: configured})
	m.mu.Unlock()

	if m.ResolveFunc != nil {
		return m.ResolveFunc(ctx, t, configured)
	}
	return "/usr/bin/" + t.Name, nil
}

func (m *mockToolResolver) CheckVersion(context.Context, string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.checkVersionCalls++
}

func (m *mockToolResolver) ResolveCalls() []resolveCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]resolveCall(nil), m.resolveCalls...)
}

// ---------------------------------------------------------------------------
// Mock ConfigLoader
// ---------------------------------------------------------------------------

type mockConfigLoader struct {
	LoadFunc func() (config.Config, error)

	mu        sync.Mutex
	loadCalls int
}

func (m *mockConfigLoader) Load() (config.Config, error) {
	m.mu.Lock()
	m.loadCalls++
	m.mu.Unlock()

	if m.LoadFunc != nil {
		return m.LoadFunc()
	}
	return config.Defaults(), nil
}

func (m *mockConfigLoader) LoadCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.loadCalls
}

// ---------------------------------------------------------------------------
// Mock DetectorFactory + Detector
// ---------------------------------------------------------------------------

type newDetectorCall struct {
	FFmpegPath string
	Silence    silence.Thresholds
	Loud       silence.Thresholds
}

type mockDetectorFactory struct {
	NewDetectorFunc func(ffmpegPath string, silenceTh, loudTh silence.Thresholds, warn silence.WarnFunc) (Detector, error)
	detector        *mockDetector

	mu    sync.Mutex
	calls []newDetectorCall
}

func (m *mockDetectorFactory) NewDetector(ffmpegPath string, silenceTh, loudTh silence.Thresholds, warn silence.WarnFunc) (Detector, error) {
	m.mu.Lock()
	m.calls = append(m.calls, newDetectorCall{FFmpegPath: ffmpegPath, Silence: silenceTh, Loud: loudTh})
	m.mu.Unlock()

	if m.NewDetectorFunc != nil {
		return m.NewDetectorFunc(ffmpegPath, silenceTh, loudTh, warn)
	}
	if m.detector != nil {
		return m.detector, nil
	}
	return &mockDetector{}, nil
}

func (m *mockDetectorFactory) Calls() []newDetectorCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]newDetectorCall(nil), m.calls...)
}

type mockDetector struct {
	DetectFunc func(ctx context.Context, mediaPath string) (silence.Events, error)

	mu          sync.Mutex
	detectCalls []string
}

func (m *mockDetector) Detect(ctx context.Context, mediaPath string) (silence.Events, error) {
	m.mu.Lock()
	m.detectCalls = append(m.detectCalls, mediaPath)
	m.mu.Unlock()

	if m.DetectFunc != nil {
		return m.DetectFunc(ctx, mediaPath)
	}
	return sampleEvents(), nil
}

func (m *mockDetector) DetectCalls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.detectCalls...)
}

// ---------------------------------------------------------------------------
// Mock MergerFactory + Merger
// ---------------------------------------------------------------------------

type mockMergerFactory struct {
	NewMergerFunc func(meltPath string, progress io.Writer) (Merger, error)
	merger        *mockMerger

	mu        sync.Mutex
	meltPaths []string
}

func (m *mockMergerFactory) NewMerger(meltPath string, progress io.Writer) (Merger, error) {
	m.mu.Lock()
	m.meltPaths = append(m.meltPaths, meltPath)
	m.mu.Unlock()

	if m.NewMergerFunc != nil {
		return m.NewMergerFunc(meltPath, progress)
	}
	if m.merger != nil {
		return m.merger, nil
	}
	return &mockMerger{}, nil
}

func (m *mockMergerFactory) MeltPaths() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.meltPaths...)
}

type mockMerger struct {
	InputsFunc func(dir string) ([]string, error)
	MergeFunc  func(ctx context.Context, dir string, inputs []string) (concat.Result, error)

	mu          sync.Mutex
	inputsCalls int
	mergeCalls  []mergeCall
}

type mergeCall struct {
	Dir    string
	Inputs []string
}

func (m *mockMerger) Inputs(dir string) ([]string, error) {
	m.mu.Lock()
	m.inputsCalls++
	m.mu.Unlock()

	if m.InputsFunc != nil {
		return m.InputsFunc(dir)
	}
	return []string{dir + "/a.mkv", dir + "/b.mkv"}, nil
}

func (m *mockMerger) Merge(ctx context.Context, dir string, inputs []string) (concat.Result, error) {
	m.mu.Lock()
	m.mergeCalls = append(m.mergeCalls, mergeCall{Dir: dir, Inputs: inputs})
	m.mu.Unlock()

	if m.MergeFunc != nil {
		return m.MergeFunc(ctx, dir, inputs)
	}
	return concat.Result{Inputs: inputs, Output: dir + "/" + concat.OutputName}, nil
}

func (m *mockMerger) InputsCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.inputsCalls
}

func (m *mockMerger) MergeCalls() []mergeCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]mergeCall(nil), m.mergeCalls...)
}

// Compile-time interface verification.
var (
	_ ToolResolver    = (*mockToolResolver)(nil)
	_ ConfigLoader    = (*mockConfigLoader)(nil)
	_ DetectorFactory = (*mockDetectorFactory)(nil)
	_ Detector        = (*mockDetector)(nil)
	_ MergerFactory   = (*mockMergerFactory)(nil)
	_ Merger          = (*mockMerger)(nil)
)
