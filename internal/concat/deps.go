package concat

import (
	"context"
	"io"
	"io/fs"
	"os"

	"github.com/alnah/go-cutbot/internal/tool"
)

// ---------------------------------------------------------------------------
// Interfaces - local to this package, following Go idiom
// ---------------------------------------------------------------------------

// fileLister lists the entries of a directory with their metadata.
type fileLister interface {
	List(dir string) ([]fs.FileInfo, error)
}

// fileRemover deletes a file.
type fileRemover interface {
	Remove(path string) error
}

// commandRunner executes an external tool in a working directory.
type commandRunner interface {
	RunIn(ctx context.Context, dir, toolPath string, args []string, progress io.Writer) (string, error)
}

// ---------------------------------------------------------------------------
// Default implementations - delegate to standard library
// ---------------------------------------------------------------------------

// Compile-time interface verification.
var (
	_ fileLister    = osFileLister{}
	_ fileRemover   = osFileRemover{}
	_ commandRunner = (*tool.Executor)(nil)
)

// osFileLister implements fileLister using os.ReadDir.
type osFileLister struct{}

func (osFileLister) List(dir string) ([]fs.FileInfo, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	infos := make([]fs.FileInfo, 0, len(entries))
	for _, e := range entries {
		info, err := e.Info()
		if err != nil {
			// Removed between ReadDir and Info.
			continue
		}
		infos = append(infos, info)
	}
	return infos, nil
}

// osFileRemover implements fileRemover using os.Remove.
type osFileRemover struct{}

func (osFileRemover) Remove(path string) error {
	return os.Remove(path)
}
