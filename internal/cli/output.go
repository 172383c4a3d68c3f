package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/alnah/go-cutbot/internal/mlt"
)

// warnNonMLTExtension writes a warning to w if path has an extension
// that is not .mlt. Shotcut and melt pick the loader by extension.
func warnNonMLTExtension(w io.Writer, path string) {
	ext := strings.ToLower(filepath.Ext(path))
	if ext != ".mlt" {
		if ext == "" {
			ext = "no"
		}
		_, _ = fmt.Fprintf(w, "Warning: output is an MLT document regardless of %s extension\n", ext)
	}
}

// checkOutput fails fast when path exists and force is not set, so a long
// analysis is not wasted on an output that cannot be written.
func checkOutput(path string, force bool) error {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("cannot access output path: %w", err)
	}
	if info.IsDir() {
		return fmt.Errorf("%w: %s is a directory", mlt.ErrWriteFailed, path)
	}
	if !force {
		return fmt.Errorf("%w: %s (use --force to overwrite)", mlt.ErrOutputExists, path)
	}
	return nil
}

// firstNonEmpty returns the first non-empty value.
func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
