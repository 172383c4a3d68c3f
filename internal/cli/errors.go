package cli

import "errors"

// CLI-specific sentinel errors.
// These are validation/usage errors that don't belong to domain packages.

var (
	// ErrFileNotFound indicates the specified input file or directory does not exist.
	ErrFileNotFound = errors.New("file not found")

	// ErrNotAFile indicates a directory was given where a media file is expected.
	ErrNotAFile = errors.New("not a regular file")

	// ErrNotADirectory indicates a file was given where a directory is expected.
	ErrNotADirectory = errors.New("not a directory")
)
