package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/alnah/go-cutbot/internal/concat"
	"github.com/alnah/go-cutbot/internal/format"
	"github.com/alnah/go-cutbot/internal/tool"
)

// ConcatCmd creates the concat command.
// The env parameter provides injectable dependencies for testing.
func ConcatCmd(env *Env) *cobra.Command {
	var meltPath string

	cmd := &cobra.Command{
		Use:   "concat <directory>",
		Short: "Merge the .mkv recordings of a directory",
		Long: `Merge every .mkv recording of a directory into one MLT project with melt.

Recordings are joined oldest first, by modification time. The project is
written to <directory>/pass1.mlt, replacing any previous one, and can then
be opened in Shotcut or fed to "cutbot silence" after rendering.`,
		Example: `  cutbot concat ~/Videos/2024-05-01
  cutbot concat . --melt "/Applications/Shotcut.app/Contents/MacOS/melt"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConcat(cmd.Context(), env, args[0], meltPath)
		},
	}

	cmd.Flags().StringVar(&meltPath, "melt", "", "Path to the melt binary (default: config, MELT_PATH, then PATH)")

	return cmd
}

// runConcat executes the merge.
func runConcat(ctx context.Context, env *Env, dir, meltFlag string) error {
	start := env.Now()

	// === VALIDATION (fail-fast) ===

	info, err := os.Stat(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: %s", ErrFileNotFound, dir)
		}
		return fmt.Errorf("cannot access directory: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%w: %s", ErrNotADirectory, dir)
	}

	cfg, err := env.ConfigLoader.Load()
	if err != nil {
		fmt.Fprintf(env.Stderr, "Warning: failed to load config: %v\n", err)
	}

	// === SETUP ===

	meltPath, err := env.ToolResolver.Resolve(ctx, tool.Melt, firstNonEmpty(meltFlag, cfg.MeltPath))
	if err != nil {
		return err
	}

	merger, err := env.MergerFactory.NewMerger(meltPath, env.Stderr)
	if err != nil {
		return err
	}

	inputs, err := merger.Inputs(dir)
	if err != nil {
		return err
	}
	if len(inputs) == 0 {
		return fmt.Errorf("%s: %w", dir, concat.ErrNoInputs)
	}

	// === MERGE ===

	fmt.Fprintf(env.Stderr, "Merging %d recordings:\n", len(inputs))
	for i, in := range inputs {
		fmt.Fprintf(env.Stderr, "  %d. %s\n", i+1, filepath.Base(in))
	}

	res, err := merger.Merge(ctx, dir, inputs)
	if err != nil {
		return err
	}

	fmt.Fprintf(env.Stderr, "Wrote %s in %s\n", res.Output, format.DurationHuman(env.Now().Sub(start)))
	return nil
}
