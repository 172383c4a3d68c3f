package concat

import "io/fs"

// OSFileLister exposes the default lister for testing.
func OSFileLister() interface {
	List(dir string) ([]fs.FileInfo, error)
} {
	return osFileLister{}
}
