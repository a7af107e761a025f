package linefile

import (
	"fmt"
	"io"
	"path/filepath"
	"sync"
)

// Source is the tagged variant a manager binds to: a *FileSource (mutable,
// the target of atomic rewrites) or a *StreamSource (read-once, immutable).
// A nil Source means unbound. The set of implementations is closed.
type Source interface {
	fmt.Stringer

	isSource()
}

// FileSource is a source backed by a filesystem path. Existence is checked
// once, when a manager binds it.
type FileSource struct {
	path string
}

// NewFileSource returns a source for the file at path.
func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

// Path returns the path as given.
func (s *FileSource) Path() string {
	return s.path
}

// Abs returns the absolute form of the path.
func (s *FileSource) Abs() (string, error) {
	return filepath.Abs(s.path)
}

func (s *FileSource) String() string {
	return "file:" + s.path
}

func (*FileSource) isSource() {}

// StreamSource is a source backed by an already-open reader, assumed
// positioned at the start. It can be read exactly once; managers never seek
// or reopen it. Closing the reader after use remains the caller's
// responsibility.
type StreamSource struct {
	mu       sync.Mutex
	r        io.Reader
	consumed bool
}

// NewStreamSource returns a source reading from r.
func NewStreamSource(r io.Reader) *StreamSource {
	return &StreamSource{r: r}
}

// Consumed reports whether the stream has already been read.
func (s *StreamSource) Consumed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.consumed
}

// acquire hands out the reader once; later calls return ErrStreamConsumed.
func (s *StreamSource) acquire() (io.Reader, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.consumed {
		return nil, ErrStreamConsumed
	}
	s.consumed = true
	return s.r, nil
}

func (s *StreamSource) String() string {
	return "stream"
}

func (*StreamSource) isSource() {}
