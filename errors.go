package linefile

import (
	"errors"
	"fmt"
)

var (
	// ErrUnbound is returned by operations that need a source when none is
	// bound.
	ErrUnbound = errors.New("linefile: no source bound")

	// ErrReadOnlySource is returned by mutations on a stream-backed manager:
	// there is no destination to atomically replace. The content is left
	// untouched.
	ErrReadOnlySource = errors.New("linefile: source is not writable")

	// ErrStreamConsumed is returned when a stream source is read a second
	// time. Streams are read at most once and never reopened.
	ErrStreamConsumed = errors.New("linefile: stream source already consumed")
)

// NotFoundError is the bind-time failure for a file source that does not
// exist. It unwraps to fs.ErrNotExist so callers can special-case
// "create the file" flows with errors.Is.
type NotFoundError struct {
	// Path is the file path that failed the existence check
	Path string
	// Err is the underlying stat error
	Err error
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("linefile: source %q does not exist", e.Path)
}

func (e *NotFoundError) Unwrap() error {
	return e.Err
}

// NewDiskError creates an error wrapping the underlying I/O error with the
// attempted operation and path.
func NewDiskError(err error, operation, path string) error {
	if path != "" {
		return fmt.Errorf("disk error during %s on %s: %w", operation, path, err)
	}
	return fmt.Errorf("disk error during %s: %w", operation, err)
}
