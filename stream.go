package linefile

import (
	"context"
)

// StreamManager implements Manager without holding content in memory.
// Every query is a fresh pass over the source and every mutation writes
// through to the backing file immediately via an atomic rewrite pass.
// No state is retained between calls.
//
// It is suitable for large files or when memory is limited; it trades each
// operation's cost up to O(n) for O(1) line memory.
type StreamManager struct {
	src    Source
	config Config
}

var _ Manager = (*StreamManager)(nil)

// NewStreamManager returns a streaming manager bound to src. src may be nil
// to start unbound. config may be nil to use the defaults, or set only the
// non-default values desired.
func NewStreamManager(src Source, config *Config) (*StreamManager, error) {
	m := &StreamManager{config: *mergeConfig(config)}
	if err := m.SetSource(src); err != nil {
		return nil, err
	}
	return m, nil
}

// SetSource rebinds the manager. Streaming mode keeps no cross-call state,
// so there is nothing to discard beyond the old source itself.
func (m *StreamManager) SetSource(src Source) error {
	if src != nil {
		if err := validateSource(m.config.FS, src); err != nil {
			return err
		}
	}
	m.src = src
	return nil
}

// Source returns the bound source, nil if unbound.
func (m *StreamManager) Source() Source {
	return m.src
}

// Path returns the backing file path, if the source is a file.
func (m *StreamManager) Path() (string, bool) {
	f, ok := m.src.(*FileSource)
	if !ok {
		return "", false
	}
	return f.path, true
}

// Load reads the full content into a slice. Note that this materializes the
// file in memory; prefer Send or Stream to keep memory bounded.
func (m *StreamManager) Load() ([]string, error) {
	rc, err := openSource(m.config.FS, m.src)
	if err != nil {
		return nil, err
	}
	return readLines(rc, &m.config)
}

// Lines counts the lines in the source. Cost is a full pass per call.
func (m *StreamManager) Lines() (int, error) {
	rc, err := openSource(m.config.FS, m.src)
	if err != nil {
		return 0, err
	}
	defer rc.Close()

	scanner := newScanner(rc, &m.config)
	n := 0
	for scanner.Scan() {
		n++
	}
	return n, scanner.Err()
}

// Get scans to index and returns the line there, or ("", false) when index
// is out of range or the source cannot be read.
func (m *StreamManager) Get(index int) (string, bool) {
	if index < 0 {
		return "", false
	}
	rc, err := openSource(m.config.FS, m.src)
	if err != nil {
		return "", false
	}
	defer rc.Close()

	scanner := newScanner(rc, &m.config)
	for i := 0; scanner.Scan(); i++ {
		if i == index {
			return scanner.Text(), true
		}
	}
	return "", false
}

// Append adds text after the last line.
func (m *StreamManager) Append(text string) error {
	return m.rewrite(keepAll, appendTail(text))
}

// Insert places text immediately before the line at index. If index is past
// the end, the content is padded with empty lines so text lands at index.
func (m *StreamManager) Insert(index int, text string) error {
	if index < 0 {
		return nil
	}
	return m.rewrite(func(line string, i int) Decision {
		if i == index {
			return InsertLine(text)
		}
		return KeepLine()
	}, padTo(index, text))
}

// Set replaces the line at index with text, padding with empty lines when
// index is past the end.
func (m *StreamManager) Set(index int, text string) error {
	if index < 0 {
		return nil
	}
	return m.rewrite(func(line string, i int) Decision {
		if i == index {
			return ReplaceLine(text)
		}
		return KeepLine()
	}, padTo(index, text))
}

// Remove deletes the line at index. Out of range is a no-op reported through
// the bool, not an error.
func (m *StreamManager) Remove(index int) (bool, error) {
	if index < 0 {
		return false, nil
	}
	removed := false
	err := m.rewrite(func(line string, i int) Decision {
		if i == index {
			removed = true
			return DropLine()
		}
		return KeepLine()
	}, nil)
	if err != nil {
		return false, err
	}
	return removed, nil
}

// RemoveMatch deletes the first line exactly equal to text.
func (m *StreamManager) RemoveMatch(text string) (bool, error) {
	removed := false
	err := m.rewrite(func(line string, i int) Decision {
		if !removed && line == text {
			removed = true
			return DropLine()
		}
		return KeepLine()
	}, nil)
	if err != nil {
		return false, err
	}
	return removed, nil
}

// RemoveIf drops every line satisfying pred and returns the count dropped.
func (m *StreamManager) RemoveIf(pred func(line string) bool) (int, error) {
	dropped := 0
	err := m.rewrite(func(line string, i int) Decision {
		if pred(line) {
			dropped++
			return DropLine()
		}
		return KeepLine()
	}, nil)
	if err != nil {
		return 0, err
	}
	return dropped, nil
}

// Trim drops every empty or whitespace-only line. Running it twice changes
// nothing the second time.
func (m *StreamManager) Trim() error {
	_, err := m.RemoveIf(isBlank)
	return err
}

// Clear truncates the file to zero lines, atomically.
func (m *StreamManager) Clear() error {
	return m.rewrite(func(string, int) Decision { return DropLine() }, nil)
}

// Apply runs one rewrite pass with fn as the per-line decision function.
func (m *StreamManager) Apply(fn EditFunc) error {
	return m.rewrite(fn, nil)
}

// rewrite guards the mutation against read-only sources and runs the pass.
func (m *StreamManager) rewrite(fn EditFunc, tail tailFunc) error {
	path, err := mutableTarget(m.src)
	if err != nil {
		return err
	}
	return rewritePass(m.config.FS, &m.config, path, fn, tail)
}

// Send writes every line of the source to out in order. The reader opened
// for the pass is closed on every exit path.
func (m *StreamManager) Send(ctx context.Context, out chan<- string) error {
	rc, err := openSource(m.config.FS, m.src)
	if err != nil {
		return err
	}
	return sendLines(ctx, rc, &m.config, out)
}

// Stream returns a line channel and an error channel fed by a single pass
// over the source.
func (m *StreamManager) Stream(ctx context.Context) (<-chan string, <-chan error) {
	return streamOf(ctx, m, m.config.ChanBuffSize)
}

// Editable reports whether the source is a regular, writable file.
func (m *StreamManager) Editable() bool {
	return sourceEditable(m.config.FS, m.src)
}

// ReadOnly reports whether mutations would have no destination to write:
// stream-backed, unbound, or a file without write permission.
func (m *StreamManager) ReadOnly() bool {
	return sourceReadOnly(m.config.FS, m.src)
}
