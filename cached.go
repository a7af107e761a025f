package linefile

import (
	"bufio"
	"context"
	"slices"
)

// CachedManager implements Manager with the full line sequence materialized
// in memory. Mutations edit the cache; nothing reaches the backing file
// until Flush, unless auto-flush is enabled. Queries are O(1).
//
// The cache is loaded once at bind time. Reload re-reads the backing file,
// discarding unflushed edits.
type CachedManager struct {
	content   []string
	autoFlush bool
	src       Source
	config    Config
}

var _ Manager = (*CachedManager)(nil)

// NewCachedManager returns a cached manager bound to src, with the content
// loaded. src may be nil to start unbound (the cache then acts as a plain
// in-memory line list until a source is bound). config may be nil to use
// the defaults.
func NewCachedManager(src Source, config *Config) (*CachedManager, error) {
	m := &CachedManager{config: *mergeConfig(config)}
	if err := m.SetSource(src); err != nil {
		return nil, err
	}
	return m, nil
}

// SetSource rebinds the manager and replaces the cache with the new
// source's content. Unflushed edits against the previous source are
// discarded.
func (m *CachedManager) SetSource(src Source) error {
	if src == nil {
		m.src = nil
		m.content = nil
		return nil
	}
	if err := validateSource(m.config.FS, src); err != nil {
		return err
	}
	m.src = src
	return m.Reload()
}

// Reload discards the cache and re-reads the source. For stream sources
// this only works once; streams are never reopened.
func (m *CachedManager) Reload() error {
	rc, err := openSource(m.config.FS, m.src)
	if err != nil {
		return err
	}
	lines, err := readLines(rc, &m.config)
	if err != nil {
		return err
	}
	m.content = lines
	return nil
}

// SetAutoFlush enables or disables flushing after every mutation.
func (m *CachedManager) SetAutoFlush(enabled bool) {
	m.autoFlush = enabled
}

// AutoFlush reports whether every mutation is flushed immediately.
func (m *CachedManager) AutoFlush() bool {
	return m.autoFlush
}

// Source returns the bound source, nil if unbound.
func (m *CachedManager) Source() Source {
	return m.src
}

// Path returns the backing file path, if the source is a file.
func (m *CachedManager) Path() (string, bool) {
	f, ok := m.src.(*FileSource)
	if !ok {
		return "", false
	}
	return f.path, true
}

// Load returns a copy of the cached content.
func (m *CachedManager) Load() ([]string, error) {
	return slices.Clone(m.content), nil
}

// Lines returns the cached line count.
func (m *CachedManager) Lines() (int, error) {
	return len(m.content), nil
}

// Get returns the cached line at index, or ("", false) if out of range.
func (m *CachedManager) Get(index int) (string, bool) {
	if index < 0 || index >= len(m.content) {
		return "", false
	}
	return m.content[index], true
}

// Append adds text after the last line.
func (m *CachedManager) Append(text string) error {
	m.content = append(m.content, text)
	return m.sync()
}

// Insert places text immediately before the line at index, padding with
// empty lines when index is past the end.
func (m *CachedManager) Insert(index int, text string) error {
	if index < 0 {
		return nil
	}
	if index >= len(m.content) {
		m.pad(index)
		m.content = append(m.content, text)
	} else {
		m.content = slices.Insert(m.content, index, text)
	}
	return m.sync()
}

// Set replaces the line at index with text, padding with empty lines when
// index is past the end.
func (m *CachedManager) Set(index int, text string) error {
	if index < 0 {
		return nil
	}
	if index >= len(m.content) {
		m.pad(index)
		m.content = append(m.content, text)
	} else {
		m.content[index] = text
	}
	return m.sync()
}

// pad grows the cache with empty lines until its length reaches index.
func (m *CachedManager) pad(index int) {
	for len(m.content) < index {
		m.content = append(m.content, "")
	}
}

// Remove deletes the line at index. Out of range is a no-op reported
// through the bool.
func (m *CachedManager) Remove(index int) (bool, error) {
	if index < 0 || index >= len(m.content) {
		return false, nil
	}
	m.content = slices.Delete(m.content, index, index+1)
	return true, m.sync()
}

// RemoveMatch deletes the first line exactly equal to text.
func (m *CachedManager) RemoveMatch(text string) (bool, error) {
	for i, line := range m.content {
		if line == text {
			m.content = slices.Delete(m.content, i, i+1)
			return true, m.sync()
		}
	}
	return false, nil
}

// RemoveIf drops every line satisfying pred and returns the count dropped.
func (m *CachedManager) RemoveIf(pred func(line string) bool) (int, error) {
	before := len(m.content)
	m.content = slices.DeleteFunc(m.content, pred)
	dropped := before - len(m.content)
	if dropped == 0 {
		return 0, nil
	}
	return dropped, m.sync()
}

// Trim drops every empty or whitespace-only line.
func (m *CachedManager) Trim() error {
	_, err := m.RemoveIf(isBlank)
	return err
}

// Clear truncates the cache to zero lines.
func (m *CachedManager) Clear() error {
	m.content = m.content[:0]
	return m.sync()
}

// Apply runs fn over the cached lines and applies its decisions, mirroring
// the streaming rewrite pass.
func (m *CachedManager) Apply(fn EditFunc) error {
	out := make([]string, 0, len(m.content))
	for i, line := range m.content {
		switch d := fn(line, i); d.Action {
		case Keep:
			out = append(out, line)
		case Replace:
			out = append(out, d.Text)
		case InsertBefore:
			out = append(out, d.Text, line)
		case Drop:
		}
	}
	m.content = out
	return m.sync()
}

// sync flushes after a mutation when auto-flush is enabled.
func (m *CachedManager) sync() error {
	if !m.autoFlush {
		return nil
	}
	return m.Flush()
}

// Flush writes the cached content to the backing file through the same
// temp-file-and-rename pass the streaming manager uses, so a crash mid-write
// never leaves a partial file.
func (m *CachedManager) Flush() error {
	path, err := mutableTarget(m.src)
	if err != nil {
		return err
	}
	content := m.content
	return atomicWrite(m.config.FS, &m.config, path, func(w *bufio.Writer) error {
		for _, line := range content {
			writeLine(w, line)
		}
		return nil
	})
}

// UpToDate reports whether the cache matches the backing file, comparing
// line by line without loading the file into memory.
func (m *CachedManager) UpToDate(ctx context.Context) (bool, error) {
	if _, err := mutableTarget(m.src); err != nil {
		return false, err
	}
	disk := &StreamManager{src: m.src, config: m.config}
	return Equal(ctx, m, disk)
}

// Send writes every cached line to out in order.
func (m *CachedManager) Send(ctx context.Context, out chan<- string) error {
	for _, line := range m.content {
		select {
		case out <- line:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return nil
}

// Stream returns a line channel and an error channel fed from the cache.
func (m *CachedManager) Stream(ctx context.Context) (<-chan string, <-chan error) {
	return streamOf(ctx, m, m.config.ChanBuffSize)
}

// Editable reports whether the source is a regular, writable file.
func (m *CachedManager) Editable() bool {
	return sourceEditable(m.config.FS, m.src)
}

// ReadOnly reports whether Flush would have no destination to write.
func (m *CachedManager) ReadOnly() bool {
	return sourceReadOnly(m.config.FS, m.src)
}
