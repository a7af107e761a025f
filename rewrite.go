package linefile

import (
	"bufio"
	"io"
	"path/filepath"

	"github.com/lanrat/linefile/vfs"
)

// tailFunc is consulted once end-of-input is reached without the pass having
// acted on any line. It receives the index the next written line would get
// and returns the lines to append.
type tailFunc func(next int) []string

// padTo returns a tail that pads with empty lines so text lands exactly at
// index.
func padTo(index int, text string) tailFunc {
	return func(next int) []string {
		lines := make([]string, 0, index-next+1)
		for i := next; i < index; i++ {
			lines = append(lines, "")
		}
		return append(lines, text)
	}
}

// appendTail returns a tail that appends text as the new last line.
func appendTail(text string) tailFunc {
	return func(int) []string {
		return []string{text}
	}
}

// rewritePass applies one edit operation to the file at path: it streams the
// current content line by line through fn into a temporary file created in
// the same directory (so the final rename is same-filesystem and atomic),
// then renames the temporary file over the original. Readers observe either
// the fully-old or fully-new file, never a partial one.
//
// Memory use is bounded to one line plus the I/O buffers regardless of file
// size. On any failure the temporary file is removed and the original is
// left untouched.
func rewritePass(fsys vfs.FS, cfg *Config, path string, fn EditFunc, tail tailFunc) error {
	in, err := fsys.Open(path)
	if err != nil {
		return NewDiskError(err, "open", path)
	}
	defer in.Close()

	return atomicWrite(fsys, cfg, path, func(w *bufio.Writer) error {
		return copyEdited(in, w, cfg, fn, tail)
	})
}

// atomicWrite writes content produced by write into a temporary sibling of
// path and renames it over path on success. Both the temporary file handle
// and the file itself are cleaned up on every failure path.
func atomicWrite(fsys vfs.FS, cfg *Config, path string, write func(w *bufio.Writer) error) error {
	tmp, err := fsys.CreateTemp(filepath.Dir(path), cfg.TempFilenamePrefix)
	if err != nil {
		return NewDiskError(err, "create temp file", path)
	}

	w := bufio.NewWriterSize(tmp, cfg.BufferSize)
	err = write(w)
	if err == nil {
		err = w.Flush()
	}
	if err == nil {
		err = tmp.Sync()
	}
	if cerr := tmp.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		_ = fsys.Remove(tmp.Name())
		return NewDiskError(err, "write", path)
	}

	if err := fsys.Rename(tmp.Name(), path); err != nil {
		_ = fsys.Remove(tmp.Name())
		return NewDiskError(err, "rename", path)
	}
	return nil
}

// copyEdited is the per-line decision loop shared by all mutations. It
// tracks whether any decision acted on a line; if none did and a tail is
// set, the tail's lines are appended after the last input line.
func copyEdited(in io.Reader, w *bufio.Writer, cfg *Config, fn EditFunc, tail tailFunc) error {
	scanner := newScanner(in, cfg)
	index := 0
	acted := false
	for scanner.Scan() {
		line := scanner.Text()
		switch d := fn(line, index); d.Action {
		case Keep:
			writeLine(w, line)
		case Replace:
			writeLine(w, d.Text)
			acted = true
		case InsertBefore:
			writeLine(w, d.Text)
			writeLine(w, line)
			acted = true
		case Drop:
			acted = true
		}
		index++
	}
	if err := scanner.Err(); err != nil {
		return err
	}
	if !acted && tail != nil {
		for _, line := range tail(index) {
			writeLine(w, line)
		}
	}
	return nil
}

// writeLine appends line and a terminator. Write errors are sticky on the
// bufio.Writer and surface at Flush.
func writeLine(w *bufio.Writer, line string) {
	_, _ = w.WriteString(line)
	_ = w.WriteByte('\n')
}
