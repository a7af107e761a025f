package vfs

import (
	"io"
	"io/fs"
	"os"
)

// OS implements FS using the operating system's file system.
type OS struct{}

// NewOS returns a disk-backed FS.
func NewOS() *OS {
	return &OS{}
}

var _ FS = (*OS)(nil)

// Open opens the file at path for reading.
func (o *OS) Open(path string) (io.ReadCloser, error) {
	return os.Open(path)
}

// Stat returns file information for path.
func (o *OS) Stat(path string) (fs.FileInfo, error) {
	return os.Stat(path)
}

// CreateTemp creates a temporary file in dir with the given name prefix.
func (o *OS) CreateTemp(dir, prefix string) (File, error) {
	return os.CreateTemp(dir, prefix)
}

// Rename atomically replaces newPath with oldPath.
func (o *OS) Rename(oldPath, newPath string) error {
	return os.Rename(oldPath, newPath)
}

// Remove deletes the file at path.
func (o *OS) Remove(path string) error {
	return os.Remove(path)
}
