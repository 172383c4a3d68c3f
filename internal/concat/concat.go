// Package concat merges the recordings of a directory into one MLT
// project by running melt over them in recording order.
package concat

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"path/filepath"
	"slices"
	"strings"

	"github.com/alnah/go-cutbot/internal/tool"
)

// OutputName is the file melt writes in the input directory.
const OutputName = "pass1.mlt"

// InputExt is the extension of the recordings to merge.
const InputExt = ".mkv"

// ErrNoInputs indicates the directory holds no recordings to merge.
var ErrNoInputs = errors.New("no .mkv files to merge")

// Result describes a completed merge.
type Result struct {
	Inputs []string // Merged files, in the order given to melt.
	Output string   // Path of the written project.
}

// Merger runs melt over the recordings of a directory.
type Merger struct {
	meltPath string
	progress io.Writer

	// Injectable dependencies (defaults to OS implementations).
	files   fileLister
	remover fileRemover
	cmd     commandRunner
}

// MergerOption configures a Merger.
type MergerOption func(*Merger)

// WithProgress streams melt's output to w while it runs.
func WithProgress(w io.Writer) MergerOption {
	return func(m *Merger) {
		m.progress = w
	}
}

// WithFileLister sets the directory lister (for testing).
func WithFileLister(l fileLister) MergerOption {
	return func(m *Merger) {
		m.files = l
	}
}

// WithFileRemover sets how partial output is deleted (for testing).
func WithFileRemover(r fileRemover) MergerOption {
	return func(m *Merger) {
		m.remover = r
	}
}

// WithCommandRunner sets the command runner (for testing).
func WithCommandRunner(r commandRunner) MergerOption {
	return func(m *Merger) {
		m.cmd = r
	}
}

// NewMerger creates a Merger that invokes the melt binary at meltPath.
func NewMerger(meltPath string, opts ...MergerOption) (*Merger, error) {
	if meltPath == "" {
		return nil, fmt.Errorf("meltPath cannot be empty: %w", tool.ErrNotFound)
	}

	m := &Merger{
		meltPath: meltPath,
		files:    osFileLister{},
		remover:  osFileRemover{},
		cmd:      tool.DefaultExecutor(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m, nil
}

// Inputs returns the recordings in dir, oldest modification first.
// Files with equal modification times keep name order.
func (m *Merger) Inputs(dir string) ([]string, error) {
	infos, err := m.files.List(dir)
	if err != nil {
		return nil, fmt.Errorf("cannot list %s: %w", dir, err)
	}

	infos = slices.DeleteFunc(infos, func(fi fs.FileInfo) bool {
		return fi.IsDir() || !strings.EqualFold(filepath.Ext(fi.Name()), InputExt)
	})
	slices.SortStableFunc(infos, func(a, b fs.FileInfo) int {
		if c := a.ModTime().Compare(b.ModTime()); c != 0 {
			return c
		}
		return strings.Compare(a.Name(), b.Name())
	})

	paths := make([]string, len(infos))
	for i, fi := range infos {
		paths[i] = filepath.Join(dir, fi.Name())
	}
	return paths, nil
}

// Merge concatenates inputs, as returned by Inputs, into dir/pass1.mlt.
// melt runs with dir as its working directory and overwrites an existing
// project of the same name. A failed or canceled run leaves no project
// behind.
func (m *Merger) Merge(ctx context.Context, dir string, inputs []string) (Result, error) {
	if len(inputs) == 0 {
		return Result{}, fmt.Errorf("%s: %w", dir, ErrNoInputs)
	}

	output := filepath.Join(dir, OutputName)
	if _, err := m.cmd.RunIn(ctx, dir, m.meltPath, Args(inputs, output), m.progress); err != nil {
		if rmErr := m.remover.Remove(output); rmErr != nil && !errors.Is(rmErr, fs.ErrNotExist) {
			return Result{}, fmt.Errorf("merge %d files: %w (cleanup: %v)", len(inputs), err, rmErr)
		}
		return Result{}, fmt.Errorf("merge %d files: %w", len(inputs), err)
	}

	return Result{Inputs: inputs, Output: output}, nil
}

// Args builds the melt command line that concatenates inputs into an XML
// project at output, encoding with AAC audio and H.264 video.
func Args(inputs []string, output string) []string {
	args := make([]string, 0, len(inputs)+6)
	args = append(args, inputs...)
	return append(args,
		"-verbose",
		"-progress2",
		"-consumer", "xml:"+output,
		"acodec=aac",
		"vcodec=libx264",
	)
}
