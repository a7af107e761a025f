// Package linefile manages a text file (or byte stream) as an ordered,
// zero-indexed sequence of lines.
//
// Two strategies implement the same Manager contract. StreamManager never
// holds more than one line in memory: every operation is a single pass over
// the backing file, and every mutation streams the old content through a
// temporary file that atomically replaces the original. CachedManager keeps
// the whole sequence in memory and persists on Flush (or after every
// mutation when auto-flush is enabled).
//
// Concurrent mutations of the same backing file are not supported: two
// passes racing on the temp-file-and-rename step can lose one of the edits.
package linefile

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"strings"

	"github.com/lanrat/linefile/vfs"
)

// Manager is the contract shared by the streaming and cached strategies.
// Index arguments are zero-based. Out-of-range reads and removes are
// non-fatal: Get reports absence through its bool, Remove through its bool.
// Insert and Set beyond the current length pad with empty lines so the text
// lands exactly at the requested index.
type Manager interface {
	// Load returns the full content as a slice of lines.
	Load() ([]string, error)

	// Lines returns the current line count. In streaming mode this is a
	// full pass over the source; avoid calling it in a loop.
	Lines() (int, error)

	// Get returns the line at index, or ("", false) if out of range.
	Get(index int) (string, bool)

	// Append adds text after the last line.
	Append(text string) error

	// Insert places text immediately before the line at index, shifting
	// later lines down. Past the end it pads with empty lines first.
	Insert(index int, text string) error

	// Set replaces the line at index with text. Past the end it pads with
	// empty lines first.
	Set(index int, text string) error

	// Remove deletes the line at index, shifting later lines up. It reports
	// whether a line was removed; out of range is a no-op, not an error.
	Remove(index int) (bool, error)

	// RemoveMatch deletes the first line exactly equal to text, scanning
	// from index 0. It reports whether a line was removed.
	RemoveMatch(text string) (bool, error)

	// RemoveIf drops every line satisfying pred, preserving the relative
	// order of survivors, and returns the number of lines dropped.
	RemoveIf(pred func(line string) bool) (int, error)

	// Trim drops every empty or whitespace-only line.
	Trim() error

	// Clear truncates the content to zero lines.
	Clear() error

	// Apply runs fn over every line and applies its decisions. This is the
	// primitive the named mutations are built on.
	Apply(fn EditFunc) error

	// Send writes every line to out in order, honoring ctx cancellation.
	// It does not close out.
	Send(ctx context.Context, out chan<- string) error

	// Stream returns a channel of lines and an error channel, both closed
	// when the content is exhausted or the pass fails.
	Stream(ctx context.Context) (<-chan string, <-chan error)

	// Source returns the currently bound source, nil if unbound.
	Source() Source

	// SetSource rebinds the manager, discarding any state derived from the
	// previous source. Binding a missing file returns a *NotFoundError.
	SetSource(src Source) error

	// Path returns the backing file path, or ("", false) for stream-backed
	// and unbound managers.
	Path() (string, bool)

	// Editable reports whether mutations can be persisted: a regular,
	// writable backing file.
	Editable() bool

	// ReadOnly reports whether the source cannot be written: stream-backed,
	// unbound, or a file without write permission.
	ReadOnly() bool
}

// isBlank reports whether a line is empty or whitespace-only.
func isBlank(line string) bool {
	return strings.TrimSpace(line) == ""
}

// keepAll is the identity EditFunc.
func keepAll(string, int) Decision {
	return KeepLine()
}

// openSource resolves a reader over the source's current content.
// Stream sources are read-once: the second open returns ErrStreamConsumed.
func openSource(fsys vfs.FS, src Source) (io.ReadCloser, error) {
	switch s := src.(type) {
	case nil:
		return nil, ErrUnbound
	case *FileSource:
		rc, err := fsys.Open(s.path)
		if err != nil {
			return nil, NewDiskError(err, "open", s.path)
		}
		return rc, nil
	case *StreamSource:
		r, err := s.acquire()
		if err != nil {
			return nil, err
		}
		return io.NopCloser(r), nil
	default:
		return nil, fmt.Errorf("linefile: unsupported source type %T", src)
	}
}

// validateSource performs the bind-time existence check for file sources.
func validateSource(fsys vfs.FS, src Source) error {
	f, ok := src.(*FileSource)
	if !ok {
		return nil
	}
	if _, err := fsys.Stat(f.path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return &NotFoundError{Path: f.path, Err: err}
		}
		return NewDiskError(err, "stat", f.path)
	}
	return nil
}

// mutableTarget returns the path a mutation may rewrite, or the reason the
// source cannot be mutated.
func mutableTarget(src Source) (string, error) {
	switch s := src.(type) {
	case nil:
		return "", ErrUnbound
	case *FileSource:
		return s.path, nil
	case *StreamSource:
		return "", ErrReadOnlySource
	default:
		return "", fmt.Errorf("linefile: unsupported source type %T", src)
	}
}

func newScanner(r io.Reader, cfg *Config) *bufio.Scanner {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, cfg.BufferSize), cfg.MaxLineSize)
	return scanner
}

// readLines drains rc into a slice and closes it.
func readLines(rc io.ReadCloser, cfg *Config) ([]string, error) {
	defer rc.Close()

	var lines []string
	scanner := newScanner(rc, cfg)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	return lines, scanner.Err()
}

// sendLines streams rc line by line to out and closes rc on every exit path.
func sendLines(ctx context.Context, rc io.ReadCloser, cfg *Config, out chan<- string) error {
	defer rc.Close()

	scanner := newScanner(rc, cfg)
	for scanner.Scan() {
		select {
		case out <- scanner.Text():
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return scanner.Err()
}

// streamOf wraps a manager's Send in the channel-pair shape.
func streamOf(ctx context.Context, m Manager, buffSize int) (<-chan string, <-chan error) {
	out := make(chan string, buffSize)
	errChan := make(chan error, 1)
	go func() {
		defer close(out)
		defer close(errChan)
		if err := m.Send(ctx, out); err != nil {
			errChan <- err
		}
	}()
	return out, errChan
}

// sourceReadOnly implements the ReadOnly contract for both strategies.
func sourceReadOnly(fsys vfs.FS, src Source) bool {
	f, ok := src.(*FileSource)
	if !ok {
		return true
	}
	info, err := fsys.Stat(f.path)
	if err != nil {
		return true
	}
	return info.Mode().Perm()&0o200 == 0
}

// sourceEditable implements the Editable contract for both strategies.
func sourceEditable(fsys vfs.FS, src Source) bool {
	f, ok := src.(*FileSource)
	if !ok {
		return false
	}
	info, err := fsys.Stat(f.path)
	if err != nil {
		return false
	}
	return info.Mode().IsRegular() && info.Mode().Perm()&0o200 != 0
}
