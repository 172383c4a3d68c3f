package cli

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/alnah/go-cutbot/internal/concat"
	"github.com/alnah/go-cutbot/internal/config"
	"github.com/alnah/go-cutbot/internal/silence"
	"github.com/alnah/go-cutbot/internal/tool"
)

// Env holds injectable dependencies for CLI commands.
// This is the central injection point for testing CLI commands in isolation.
//
// All fields have sensible defaults via DefaultEnv(). Tests can override
// specific fields using the With* options or by creating a custom Env.
//
// Env must not be nil when passed to command functions. Use DefaultEnv()
// or NewEnv() to create a valid instance.
type Env struct {
	// I/O and environment
	Stdout io.Writer
	Stderr io.Writer
	Getenv func(string) string
	Now    func() time.Time

	// Factories for domain objects
	ToolResolver    ToolResolver
	ConfigLoader    ConfigLoader
	DetectorFactory DetectorFactory
	MergerFactory   MergerFactory
}

// ToolResolver locates external tools.
type ToolResolver interface {
	Resolve(ctx context.Context, t tool.Tool, configured string) (string, error)
	CheckVersion(ctx context.Context, ffmpegPath string)
}

// ConfigLoader loads and provides access to configuration.
type ConfigLoader interface {
	Load() (config.Config, error)
}

// Detector runs the silence analysis over a media file.
type Detector interface {
	Detect(ctx context.Context, mediaPath string) (silence.Events, error)
}

// DetectorFactory creates detectors.
type DetectorFactory interface {
	NewDetector(ffmpegPath string, silenceTh, loudTh silence.Thresholds, warn silence.WarnFunc) (Detector, error)
}

// Merger concatenates the recordings of a directory.
type Merger interface {
	Inputs(dir string) ([]string, error)
	Merge(ctx context.Context, dir string, inputs []string) (concat.Result, error)
}

// MergerFactory creates mergers.
type MergerFactory interface {
	NewMerger(meltPath string, progress io.Writer) (Merger, error)
}

// EnvOption configures an Env.
type EnvOption func(*Env)

// WithStdout sets the stdout writer.
func WithStdout(w io.Writer) EnvOption {
	return func(e *Env) {
		e.Stdout = w
	}
}

// WithStderr sets the stderr writer.
func WithStderr(w io.Writer) EnvOption {
	return func(e *Env) {
		e.Stderr = w
	}
}

// WithGetenv sets the environment variable getter.
func WithGetenv(fn func(string) string) EnvOption {
	return func(e *Env) {
		e.Getenv = fn
	}
}

// WithNow sets the time provider.
func WithNow(fn func() time.Time) EnvOption {
	return func(e *Env) {
		e.Now = fn
	}
}

// WithToolResolver sets the tool resolver.
func WithToolResolver(r ToolResolver) EnvOption {
	return func(e *Env) {
		e.ToolResolver = r
	}
}

// WithConfigLoader sets the config loader.
func WithConfigLoader(l ConfigLoader) EnvOption {
	return func(e *Env) {
		e.ConfigLoader = l
	}
}

// WithDetectorFactory sets the detector factory.
func WithDetectorFactory(f DetectorFactory) EnvOption {
	return func(e *Env) {
		e.DetectorFactory = f
	}
}

// WithMergerFactory sets the merger factory.
func WithMergerFactory(f MergerFactory) EnvOption {
	return func(e *Env) {
		e.MergerFactory = f
	}
}

// DefaultEnv returns an Env with production defaults.
func DefaultEnv() *Env {
	return &Env{
		Stdout:          os.Stdout,
		Stderr:          os.Stderr,
		Getenv:          os.Getenv,
		Now:             time.Now,
		ToolResolver:    &defaultToolResolver{resolver: tool.NewResolver()},
		ConfigLoader:    &defaultConfigLoader{},
		DetectorFactory: &defaultDetectorFactory{},
		MergerFactory:   &defaultMergerFactory{},
	}
}

// NewEnv creates an Env with the given options applied to defaults.
func NewEnv(opts ...EnvOption) *Env {
	env := DefaultEnv()
	for _, opt := range opts {
		opt(env)
	}
	return env
}

// ---------------------------------------------------------------------------
// Default implementations - delegate to real packages
// ---------------------------------------------------------------------------

// defaultToolResolver implements ToolResolver using the tool package.
type defaultToolResolver struct {
	resolver *tool.Resolver
}

func (r *defaultToolResolver) Resolve(ctx context.Context, t tool.Tool, configured string) (string, error) {
	return r.resolver.Resolve(ctx, t, configured)
}

func (*defaultToolResolver) CheckVersion(ctx context.Context, ffmpegPath string) {
	tool.CheckVersion(ctx, ffmpegPath)
}

// defaultConfigLoader implements ConfigLoader using the config package.
type defaultConfigLoader struct{}

func (defaultConfigLoader) Load() (config.Config, error) {
	return config.Load()
}

// defaultDetectorFactory implements DetectorFactory using the silence package.
type defaultDetectorFactory struct{}

func (defaultDetectorFactory) NewDetector(ffmpegPath string, silenceTh, loudTh silence.Thresholds, warn silence.WarnFunc) (Detector, error) {
	d, err := silence.NewDetector(ffmpegPath,
		silence.WithSilenceThresholds(silenceTh),
		silence.WithLoudThresholds(loudTh),
		silence.WithWarnFunc(warn),
	)
	if err != nil {
		return nil, err
	}
	return d, nil
}

// defaultMergerFactory implements MergerFactory using the concat package.
type defaultMergerFactory struct{}

func (defaultMergerFactory) NewMerger(meltPath string, progress io.Writer) (Merger, error) {
	m, err := concat.NewMerger(meltPath, concat.WithProgress(progress))
	if err != nil {
		return nil, err
	}
	return m, nil
}

// Compile-time interface verification.
var (
	_ ToolResolver    = (*defaultToolResolver)(nil)
	_ ConfigLoader    = (*defaultConfigLoader)(nil)
	_ DetectorFactory = (*defaultDetectorFactory)(nil)
	_ MergerFactory   = (*defaultMergerFactory)(nil)
	_ Detector        = (*silence.Detector)(nil)
	_ Merger          = (*concat.Merger)(nil)
)
