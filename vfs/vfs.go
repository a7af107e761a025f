// Package vfs provides the narrow filesystem surface needed by the line
// rewrite engine: opening a source for reading, creating a temporary sibling
// file, and atomically renaming it over the original. Swapping the
// implementation enables testing the engine's failure behavior without
// touching the real disk.
package vfs

import (
	"io"
	"io/fs"
)

// File is a writable file handle as returned by FS.CreateTemp.
type File interface {
	io.Writer
	io.StringWriter

	// Name returns the full path of the file.
	Name() string

	// Sync flushes the file's content to stable storage.
	Sync() error

	// Close closes the file. The file remains on the filesystem until
	// removed or renamed.
	Close() error
}

// FS is a filesystem abstraction over the handful of operations the rewrite
// pass performs. OS is the disk-backed implementation; Mem is an in-memory
// implementation for tests.
type FS interface {
	// Open opens the file at path for reading.
	Open(path string) (io.ReadCloser, error)

	// Stat returns file information for path.
	Stat(path string) (fs.FileInfo, error)

	// CreateTemp creates a new temporary file in dir whose name begins with
	// prefix and returns it opened for writing.
	CreateTemp(dir, prefix string) (File, error)

	// Rename atomically replaces newPath with oldPath. Both paths are
	// expected to be on the same filesystem.
	Rename(oldPath, newPath string) error

	// Remove deletes the file at path.
	Remove(path string) error
}
