package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/alnah/go-cutbot/internal/config"
	"github.com/alnah/go-cutbot/internal/format"
	"github.com/alnah/go-cutbot/internal/mlt"
	"github.com/alnah/go-cutbot/internal/silence"
	"github.com/alnah/go-cutbot/internal/tool"
)

// silenceOptions holds the parsed flags of the silence command.
type silenceOptions struct {
	output     string
	force      bool
	ffmpegPath string
	verbose    bool
	thresholds thresholdOverrides
}

// SilenceCmd creates the silence command.
// The env parameter provides injectable dependencies for testing.
func SilenceCmd(env *Env) *cobra.Command {
	var opts silenceOptions
	thresholds := newThresholdFlags()

	cmd := &cobra.Command{
		Use:   "silence <media-file>",
		Short: "Cut a recording into loud and silent chunks",
		Long: `Detect where speech stops and resumes in a recording and write an MLT
timeline (Shotcut project) that splits it into loud and silent chunks.

ffmpeg's silencedetect filter runs twice over the audio track: a sensitive
pass finds where speech trails off, a coarse pass finds where it clearly
resumes. Each chunk becomes its own clip on the timeline, so silent parts
can be removed in Shotcut with a few clicks.

The timeline is written next to the media as output.mlt unless -o or the
output-name setting says otherwise. Relative -o paths are resolved against
the media's directory.`,
		Example: `  cutbot silence session.mkv
  cutbot silence session.mkv -o rough-cut.mlt --force
  cutbot silence lecture.mp4 --loud-noise -35dB --loud-duration 750ms
  cutbot silence session.mkv --ffmpeg /opt/ffmpeg/bin/ffmpeg -v`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.thresholds = thresholds.overrides(cmd.Flags())
			return runSilence(cmd.Context(), env, args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "Output file path (default: <media dir>/output.mlt)")
	cmd.Flags().BoolVarP(&opts.force, "force", "f", false, "Overwrite an existing output file")
	cmd.Flags().StringVar(&opts.ffmpegPath, "ffmpeg", "", "Path to the ffmpeg binary (default: config, FFMPEG_PATH, then PATH)")
	cmd.Flags().BoolVarP(&opts.verbose, "verbose", "v", false, "List every chunk")
	thresholds.register(cmd.Flags())

	return cmd
}

// runSilence executes the analysis pipeline.
// Validation order: media exists -> config -> thresholds -> output -> ffmpeg
func runSilence(ctx context.Context, env *Env, mediaPath string, opts silenceOptions) error {
	start := env.Now()

	// === VALIDATION (fail-fast) ===

	// 1. Media exists and is a file
	info, err := os.Stat(mediaPath)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: %s", ErrFileNotFound, mediaPath)
		}
		return fmt.Errorf("cannot access media file: %w", err)
	}
	if info.IsDir() {
		return fmt.Errorf("%w: %s is a directory", ErrNotAFile, mediaPath)
	}

	// 2. Config (tool path, thresholds, output name)
	cfg, err := env.ConfigLoader.Load()
	if err != nil {
		fmt.Fprintf(env.Stderr, "Warning: failed to load config: %v\n", err)
		cfg = config.Defaults()
	}

	// 3. Thresholds: flags override config
	silenceTh, loudTh := opts.thresholds.apply(cfg.Silence, cfg.Loud)
	if err := silenceTh.Validate(); err != nil {
		return fmt.Errorf("silence pass: %w", err)
	}
	if err := loudTh.Validate(); err != nil {
		return fmt.Errorf("loud pass: %w", err)
	}

	// 4. Output path
	outputPath := config.ResolveOutputPath(opts.output, filepath.Dir(mediaPath), cfg.OutputName)
	if err := checkOutput(outputPath, opts.force); err != nil {
		return err
	}
	warnNonMLTExtension(env.Stderr, outputPath)

	resource, err := filepath.Abs(mediaPath)
	if err != nil {
		return fmt.Errorf("cannot resolve media path: %w", err)
	}

	// === SETUP ===

	ffmpegPath, err := env.ToolResolver.Resolve(ctx, tool.FFmpeg, firstNonEmpty(opts.ffmpegPath, cfg.FFmpegPath))
	if err != nil {
		return err
	}
	env.ToolResolver.CheckVersion(ctx, ffmpegPath)

	detector, err := env.DetectorFactory.NewDetector(ffmpegPath, silenceTh, loudTh, func(msg string) {
		fmt.Fprintln(env.Stderr, msg)
	})
	if err != nil {
		return err
	}

	// === ANALYSIS ===

	fmt.Fprintf(env.Stderr, "Analyzing %s...\n", filepath.Base(mediaPath))
	events, err := detector.Detect(ctx, mediaPath)
	if err != nil {
		return err
	}
	fmt.Fprintf(env.Stderr, "  Duration %s, %d silence starts, %d loud starts\n",
		format.Duration(events.Duration), len(events.SilenceStarts), len(events.LoudStarts))

	chunks, err := silence.Segment(events.LoudStarts, events.SilenceStarts, events.Duration)
	if err != nil {
		return err
	}
	if opts.verbose {
		for _, c := range chunks {
			fmt.Fprintf(env.Stderr, "  %s\n", c)
		}
	}

	// === OUTPUT ===

	doc, err := mlt.Build(mlt.Config{
		Chunks:   chunks,
		Duration: events.Duration,
		Resource: resource,
	})
	if err != nil {
		return err
	}
	if err := mlt.WriteFile(outputPath, doc, opts.force); err != nil {
		return err
	}

	loud := 0
	for _, c := range chunks {
		if c.Loud {
			loud++
		}
	}
	fmt.Fprintf(env.Stderr, "Wrote %d chunks (%d loud) to %s in %s\n",
		len(chunks), loud, outputPath, format.DurationHuman(env.Now().Sub(start)))

	return nil
}
