package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/alnah/go-cutbot/internal/cli"
	"github.com/alnah/go-cutbot/internal/concat"
	"github.com/alnah/go-cutbot/internal/config"
	"github.com/alnah/go-cutbot/internal/interrupt"
	"github.com/alnah/go-cutbot/internal/mlt"
	"github.com/alnah/go-cutbot/internal/silence"
	"github.com/alnah/go-cutbot/internal/tool"
)

// Injected at build time via ldflags.
var (
	version = "dev"
	commit  = "unknown"
)

// Exit codes.
const (
	ExitOK          = 0
	ExitGeneral     = 1
	ExitUsage       = 2
	ExitSetup       = 3
	ExitValidation  = 4
	ExitToolFailure = 5
	ExitInterrupt   = interrupt.ExitInterrupt
)

func main() {
	// Load .env file if present (ignore error if missing).
	_ = godotenv.Load()

	// First Ctrl+C cancels the context, a second one exits immediately.
	handler, ctx := interrupt.NewHandler(context.Background())

	rootCmd := newRootCmd(cli.DefaultEnv())

	err := rootCmd.ExecuteContext(ctx)
	handler.Stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitCode(err))
	}
}

// newRootCmd builds the command tree around env.
func newRootCmd(env *cli.Env) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "cutbot",
		Short: "Cut silences out of screen recordings into a Shotcut timeline",
		Long: `cutbot finds where speech starts and stops in a recording with ffmpeg
and writes an MLT project that Shotcut opens as a ready-to-trim timeline.`,
		Version: fmt.Sprintf("%s (commit: %s)", version, commit),
		// Silence Cobra's default error/usage printing; we handle it ourselves.
		SilenceErrors: true,
		SilenceUsage:  true,
	}
	rootCmd.SetOut(env.Stdout)
	rootCmd.SetErr(env.Stderr)

	rootCmd.AddCommand(cli.SilenceCmd(env))
	rootCmd.AddCommand(cli.ConcatCmd(env))
	rootCmd.AddCommand(cli.ConfigCmd(env))

	return rootCmd
}

// exitCode maps errors to process exit codes.
func exitCode(err error) int {
	if err == nil {
		return ExitOK
	}

	// Check for context cancellation (interrupt).
	if errors.Is(err, context.Canceled) {
		return ExitInterrupt
	}

	// Setup errors (ExitSetup = 3).
	if errors.Is(err, tool.ErrNotFound) {
		return ExitSetup
	}

	// Validation errors (ExitValidation = 4).
	if errors.Is(err, cli.ErrFileNotFound) || errors.Is(err, cli.ErrNotAFile) ||
		errors.Is(err, cli.ErrNotADirectory) || errors.Is(err, mlt.ErrOutputExists) ||
		errors.Is(err, mlt.ErrInvalidTimeline) || errors.Is(err, silence.ErrNoDuration) ||
		errors.Is(err, silence.ErrOrdering) || errors.Is(err, silence.ErrInvalidDuration) ||
		errors.Is(err, silence.ErrInvalidThreshold) || errors.Is(err, concat.ErrNoInputs) ||
		errors.Is(err, config.ErrUnknownKey) || errors.Is(err, config.ErrInvalidKey) ||
		errors.Is(err, config.ErrInvalidValue) || errors.Is(err, config.ErrInvalidSyntax) {
		return ExitValidation
	}

	// Tool failures (ExitToolFailure = 5).
	if errors.Is(err, tool.ErrFailed) {
		return ExitToolFailure
	}

	// Usage errors (ExitUsage = 2): Cobra flag/arg parsing errors. Matched
	// last since tool output can contain the same phrases.
	if isCobraUsageError(err) {
		return ExitUsage
	}

	return ExitGeneral
}

// cobraUsageErrorPatterns contains error message substrings that indicate Cobra usage errors.
// Cobra doesn't expose typed errors, so string matching is the only reliable approach.
var cobraUsageErrorPatterns = []string{
	"required flag",             // Missing required flag
	"unknown flag",              // Flag doesn't exist
	"unknown shorthand",         // Short flag doesn't exist
	"unknown command",           // Subcommand doesn't exist
	"flag needs an argument",    // Flag provided without value
	"invalid argument",          // Invalid flag value type
	"if any flags in the group", // Mutually exclusive flag violation
	"accepts ",                  // Wrong number of arguments (e.g., "accepts 1 arg(s)")
	"requires at least",         // Too few arguments
	"requires at most",          // Too many arguments
}

// isCobraUsageError checks if an error is a Cobra usage/parsing error.
func isCobraUsageError(err error) bool {
	if err == nil {
		return false
	}
	errMsg := err.Error()
	for _, pattern := range cobraUsageErrorPatterns {
		if strings.Contains(errMsg, pattern) {
			return true
		}
	}
	return false
}
