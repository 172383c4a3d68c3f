package tool

import (
	"context"
	"fmt"
	"runtime"
	"strings"
)

// Tool describes an external executable this program drives.
type Tool struct {
	Name   string // Base name looked up on PATH.
	EnvVar string // Environment variable holding an explicit path.
}

// Known tools.
var (
	// FFmpeg runs the silencedetect analysis passes.
	FFmpeg = Tool{Name: "ffmpeg", EnvVar: "FFMPEG_PATH"}

	// Melt merges recordings into a single MLT project.
	Melt = Tool{Name: "melt", EnvVar: "MELT_PATH"}
)

// binaryExtWindows is the file extension for Windows executables.
const binaryExtWindows = ".exe"

// binaryName returns the executable name for the platform.
func (t Tool) binaryName(goos string) string {
	if goos == "windows" {
		return t.Name + binaryExtWindows
	}
	return t.Name
}

// ---------------------------------------------------------------------------
// Resolver - testable tool resolution with dependency injection
// ---------------------------------------------------------------------------

// Resolver locates external tools.
type Resolver struct {
	stat fileStatter
	env  envProvider
	goos string
}

// ResolverOption configures a Resolver.
type ResolverOption func(*Resolver)

// WithFileStatter sets the file statter implementation.
func WithFileStatter(s fileStatter) ResolverOption {
	return func(res *Resolver) { res.stat = s }
}

// WithEnvProvider sets the environment provider implementation.
func WithEnvProvider(e envProvider) ResolverOption {
	return func(res *Resolver) { res.env = e }
}

// WithPlatform sets the target OS (for testing cross-platform behavior).
func WithPlatform(goos string) ResolverOption {
	return func(res *Resolver) { res.goos = goos }
}

// NewResolver creates a Resolver with the given options.
// Uses production defaults if no options are provided.
func NewResolver(opts ...ResolverOption) *Resolver {
	r := &Resolver{
		stat: osFileStatter{},
		env:  osEnvProvider{},
		goos: runtime.GOOS,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve finds t using the following precedence:
//  1. configured (a flag or config file value; error if set but invalid)
//  2. t.EnvVar environment variable (error if set but invalid)
//  3. System PATH
func (r *Resolver) Resolve(ctx context.Context, t Tool, configured string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	if configured != "" {
		if _, err := r.stat.Stat(configured); err != nil {
			return "", fmt.Errorf("%w: %s configured as %q but binary not found",
				ErrNotFound, t.Name, configured)
		}
		return configured, nil
	}

	if envPath := r.env.Getenv(t.EnvVar); envPath != "" {
		if _, err := r.stat.Stat(envPath); err != nil {
			return "", fmt.Errorf("%w: %s is set to %q but binary not found",
				ErrNotFound, t.EnvVar, envPath)
		}
		return envPath, nil
	}

	if path, err := r.env.LookPath(t.binaryName(r.goos)); err == nil {
		return path, nil
	}

	return "", fmt.Errorf("%w: %s is not on PATH\n\n%s", ErrNotFound, t.Name, r.installInstructions(t))
}

// installInstructions returns platform-specific instructions.
func (r *Resolver) installInstructions(t Tool) string {
	var b strings.Builder
	switch r.goos {
	case "darwin":
		if t == Melt {
			b.WriteString("To install melt: brew install mlt\n")
		} else {
			b.WriteString("To install ffmpeg: brew install ffmpeg\n")
		}
	case "linux":
		fmt.Fprintf(&b, `To install %s manually:
  Ubuntu/Debian: sudo apt install %s
  Fedora:        sudo dnf install %s
  Arch:          sudo pacman -S %s
`, t.Name, t.Name, t.Name, t.Name)
	case "windows":
		// Shotcut ships both binaries next to shotcut.exe.
		fmt.Fprintf(&b, "%s.exe ships with Shotcut (C:\\Program Files\\Shotcut).\n", t.Name)
	default:
		fmt.Fprintf(&b, "Install %s with your package manager.\n", t.Name)
	}
	fmt.Fprintf(&b, "\nOr set %s to your %s binary.", t.EnvVar, t.binaryName(r.goos))
	return b.String()
}
