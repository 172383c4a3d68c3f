package silence

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/alnah/go-cutbot/internal/tool"
)

// Thresholds configures one silencedetect pass.
type Thresholds struct {
	NoiseDB     float64       // Level below which audio counts as silence.
	MinDuration time.Duration // Shortest silence reported.
}

// Default thresholds. The silence pass uses a low floor and short minimum
// so it reports where speech trails off; the loud pass uses a higher floor
// and longer minimum so it only reports where speech clearly resumes.
var (
	DefaultSilenceThresholds = Thresholds{NoiseDB: -60, MinDuration: 100 * time.Millisecond}
	DefaultLoudThresholds    = Thresholds{NoiseDB: -30, MinDuration: 500 * time.Millisecond}
)

// Valid noise floor range for silencedetect, in dB.
const (
	minNoiseDB = -120.0
	maxNoiseDB = 0.0
)

// Validate reports whether th is usable by silencedetect.
func (th Thresholds) Validate() error {
	if th.NoiseDB < minNoiseDB || th.NoiseDB > maxNoiseDB {
		return fmt.Errorf("%w: noise %gdB outside [%g, %g]", ErrInvalidThreshold, th.NoiseDB, minNoiseDB, maxNoiseDB)
	}
	if th.MinDuration <= 0 {
		return fmt.Errorf("%w: minimum duration %v must be positive", ErrInvalidThreshold, th.MinDuration)
	}
	return nil
}

// filter renders th as an ffmpeg audio filter.
func (th Thresholds) filter() string {
	return fmt.Sprintf("silencedetect=noise=%sdB:d=%s",
		strconv.FormatFloat(th.NoiseDB, 'f', -1, 64),
		strconv.FormatFloat(th.MinDuration.Seconds(), 'f', -1, 64))
}

// Events holds the marks and duration read from the analysis passes.
type Events struct {
	SilenceStarts []time.Duration
	LoudStarts    []time.Duration
	Duration      time.Duration
}

// WarnFunc is a callback for warning messages during detection.
// Set to nil to suppress warnings, or provide a custom handler.
type WarnFunc func(msg string)

// defaultWarnFunc writes warnings to stderr.
func defaultWarnFunc(msg string) {
	fmt.Fprintln(os.Stderr, msg)
}

// Detector runs ffmpeg silencedetect over a media file.
type Detector struct {
	ffmpegPath string
	silence    Thresholds
	loud       Thresholds
	warn       WarnFunc

	// Injectable dependencies (defaults to OS implementations).
	cmd commandRunner
}

// DetectorOption configures a Detector.
type DetectorOption func(*Detector)

// WithSilenceThresholds sets the thresholds of the pass that finds silence starts.
func WithSilenceThresholds(th Thresholds) DetectorOption {
	return func(d *Detector) {
		d.silence = th
	}
}

// WithLoudThresholds sets the thresholds of the pass that finds loud starts.
func WithLoudThresholds(th Thresholds) DetectorOption {
	return func(d *Detector) {
		d.loud = th
	}
}

// WithCommandRunner sets the command runner for Detector.
func WithCommandRunner(r commandRunner) DetectorOption {
	return func(d *Detector) {
		d.cmd = r
	}
}

// WithWarnFunc sets a callback for warning messages.
// By default, warnings are written to stderr. Set to nil to suppress.
func WithWarnFunc(fn WarnFunc) DetectorOption {
	return func(d *Detector) {
		d.warn = fn
	}
}

// NewDetector creates a Detector with functional options.
func NewDetector(ffmpegPath string, opts ...DetectorOption) (*Detector, error) {
	if ffmpegPath == "" {
		return nil, fmt.Errorf("ffmpegPath cannot be empty: %w", tool.ErrNotFound)
	}

	d := &Detector{
		ffmpegPath: ffmpegPath,
		silence:    DefaultSilenceThresholds,
		loud:       DefaultLoudThresholds,
		warn:       defaultWarnFunc,
		cmd:        tool.DefaultExecutor(),
	}

	for _, opt := range opts {
		opt(d)
	}

	if err := d.silence.Validate(); err != nil {
		return nil, fmt.Errorf("silence pass: %w", err)
	}
	if err := d.loud.Validate(); err != nil {
		return nil, fmt.Errorf("loud pass: %w", err)
	}

	return d, nil
}

// Detect runs the silence and loud passes concurrently and joins their
// marks. The duration is read from the loud pass, or from the silence pass
// if the loud pass did not print one.
func (d *Detector) Detect(ctx context.Context, mediaPath string) (Events, error) {
	var silenceOut, loudOut string

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		out, err := d.run(ctx, mediaPath, d.silence)
		if err != nil {
			return fmt.Errorf("silence pass: %w", err)
		}
		silenceOut = out
		return nil
	})
	g.Go(func() error {
		out, err := d.run(ctx, mediaPath, d.loud)
		if err != nil {
			return fmt.Errorf("loud pass: %w", err)
		}
		loudOut = out
		return nil
	})
	if err := g.Wait(); err != nil {
		return Events{}, err
	}

	duration, err := ParseDuration(loudOut)
	if err != nil {
		duration, err = ParseDuration(silenceOut)
	}
	if err != nil {
		return Events{}, fmt.Errorf("%s: %w", mediaPath, err)
	}

	events := Events{
		SilenceStarts: ParseSilenceStarts(silenceOut),
		LoudStarts:    ParseLoudStarts(loudOut),
		Duration:      duration,
	}

	if len(events.LoudStarts) == 0 && d.warn != nil {
		d.warn("Warning: no loud marks detected, the timeline will hold the whole media as one chunk")
	}

	return events, nil
}

// run executes one silencedetect pass and returns ffmpeg's diagnostics.
func (d *Detector) run(ctx context.Context, mediaPath string, th Thresholds) (string, error) {
	args := []string{
		"-hide_banner",
		"-nostats",
		"-i", mediaPath,
		"-af", th.filter(),
		"-f", "null",
		"-",
	}
	return d.cmd.RunOutput(ctx, d.ffmpegPath, args)
}
