package vfs

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"path"
	"sort"
	"sync"
	"time"
)

// ErrNoSpace is returned by Mem writes once the configured write budget is
// exhausted. It simulates a full disk mid-pass.
var ErrNoSpace = errors.New("no space left on device")

// errClosed is returned when writing to a closed Mem file.
var errClosed = errors.New("file already closed")

// Mem implements FS entirely in memory. It is used by tests to exercise the
// rewrite engine without disk I/O and to inject write failures.
//
// Mem is safe for concurrent use.
type Mem struct {
	mu          sync.Mutex
	files       map[string]*memEntry
	tempSeq     int
	writeBudget int // bytes writable before writes fail, -1 for unlimited
}

type memEntry struct {
	content []byte
	mode    fs.FileMode
	modTime time.Time
}

// NewMem returns an empty in-memory FS with an unlimited write budget.
func NewMem() *Mem {
	return &Mem{
		files:       make(map[string]*memEntry),
		writeBudget: -1,
	}
}

var _ FS = (*Mem)(nil)

// WriteFile creates or replaces the file at filePath. Used for test setup.
func (m *Mem) WriteFile(filePath string, data []byte, mode fs.FileMode) {
	m.mu.Lock()
	defer m.mu.Unlock()

	content := make([]byte, len(data))
	copy(content, data)
	m.files[path.Clean(filePath)] = &memEntry{content: content, mode: mode, modTime: time.Now()}
}

// ReadFile returns a copy of the file's current content.
func (m *Mem) ReadFile(filePath string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	f, ok := m.files[path.Clean(filePath)]
	if !ok {
		return nil, &fs.PathError{Op: "read", Path: filePath, Err: fs.ErrNotExist}
	}
	content := make([]byte, len(f.content))
	copy(content, f.content)
	return content, nil
}

// Paths returns the sorted paths of all files currently in the FS.
// Tests use it to assert that no temporary file was left behind.
func (m *Mem) Paths() []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	paths := make([]string, 0, len(m.files))
	for p := range m.files {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

// Chmod changes the mode of the file at filePath.
func (m *Mem) Chmod(filePath string, mode fs.FileMode) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	f, ok := m.files[path.Clean(filePath)]
	if !ok {
		return &fs.PathError{Op: "chmod", Path: filePath, Err: fs.ErrNotExist}
	}
	f.mode = mode
	return nil
}

// FailWritesAfter makes all writes fail with ErrNoSpace once n more bytes
// have been written. Pass a negative n to restore the unlimited budget.
func (m *Mem) FailWritesAfter(n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.writeBudget = n
}

// Open opens the file at path for reading. The returned reader sees a
// snapshot of the content at open time.
func (m *Mem) Open(filePath string) (io.ReadCloser, error) {
	content, err := m.ReadFile(filePath)
	if err != nil {
		return nil, &fs.PathError{Op: "open", Path: filePath, Err: fs.ErrNotExist}
	}
	return io.NopCloser(bytes.NewReader(content)), nil
}

// Stat returns file information for path.
func (m *Mem) Stat(filePath string) (fs.FileInfo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	filePath = path.Clean(filePath)
	f, ok := m.files[filePath]
	if !ok {
		return nil, &fs.PathError{Op: "stat", Path: filePath, Err: fs.ErrNotExist}
	}
	return &memFileInfo{
		name:    path.Base(filePath),
		size:    int64(len(f.content)),
		mode:    f.mode,
		modTime: f.modTime,
	}, nil
}

// CreateTemp creates a new empty file in dir named with prefix and a
// sequence number, and returns it opened for writing.
func (m *Mem) CreateTemp(dir, prefix string) (File, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.tempSeq++
	name := path.Join(dir, fmt.Sprintf("%s%d", prefix, m.tempSeq))
	m.files[name] = &memEntry{mode: 0o600, modTime: time.Now()}
	return &memWriter{fs: m, name: name}, nil
}

// Rename replaces newPath with oldPath.
func (m *Mem) Rename(oldPath, newPath string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	oldPath = path.Clean(oldPath)
	f, ok := m.files[oldPath]
	if !ok {
		return &fs.PathError{Op: "rename", Path: oldPath, Err: fs.ErrNotExist}
	}
	delete(m.files, oldPath)
	m.files[path.Clean(newPath)] = f
	return nil
}

// Remove deletes the file at path.
func (m *Mem) Remove(filePath string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	filePath = path.Clean(filePath)
	if _, ok := m.files[filePath]; !ok {
		return &fs.PathError{Op: "remove", Path: filePath, Err: fs.ErrNotExist}
	}
	delete(m.files, filePath)
	return nil
}

// memWriter appends to its entry's content under the FS lock, honoring the
// write budget.
type memWriter struct {
	fs     *Mem
	name   string
	closed bool
}

func (w *memWriter) Write(p []byte) (int, error) {
	w.fs.mu.Lock()
	defer w.fs.mu.Unlock()

	if w.closed {
		return 0, &fs.PathError{Op: "write", Path: w.name, Err: errClosed}
	}
	f, ok := w.fs.files[w.name]
	if !ok {
		return 0, &fs.PathError{Op: "write", Path: w.name, Err: fs.ErrNotExist}
	}
	if w.fs.writeBudget >= 0 {
		if len(p) > w.fs.writeBudget {
			// partial write, then fail: mirrors a disk filling up
			n := w.fs.writeBudget
			f.content = append(f.content, p[:n]...)
			w.fs.writeBudget = 0
			return n, &fs.PathError{Op: "write", Path: w.name, Err: ErrNoSpace}
		}
		w.fs.writeBudget -= len(p)
	}
	f.content = append(f.content, p...)
	f.modTime = time.Now()
	return len(p), nil
}

func (w *memWriter) WriteString(s string) (int, error) {
	return w.Write([]byte(s))
}

func (w *memWriter) Name() string {
	return w.name
}

func (w *memWriter) Sync() error {
	return nil
}

func (w *memWriter) Close() error {
	w.fs.mu.Lock()
	defer w.fs.mu.Unlock()

	if w.closed {
		return &fs.PathError{Op: "close", Path: w.name, Err: errClosed}
	}
	w.closed = true
	return nil
}

type memFileInfo struct {
	name    string
	size    int64
	mode    fs.FileMode
	modTime time.Time
}

func (fi *memFileInfo) Name() string       { return fi.name }
func (fi *memFileInfo) Size() int64        { return fi.size }
func (fi *memFileInfo) Mode() fs.FileMode  { return fi.mode }
func (fi *memFileInfo) ModTime() time.Time { return fi.modTime }
func (fi *memFileInfo) IsDir() bool        { return false }
func (fi *memFileInfo) Sys() any           { return nil }
