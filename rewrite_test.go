package linefile_test

import (
	"errors"
	"reflect"
	"testing"

	"github.com/lanrat/linefile"
	"github.com/lanrat/linefile/vfs"
)

func newMemManager(t *testing.T, content string) (*vfs.Mem, *linefile.StreamManager) {
	t.Helper()
	fsys := vfs.NewMem()
	fsys.WriteFile("/data/content.txt", []byte(content), 0o644)

	config := linefile.DefaultConfig()
	config.FS = fsys
	m, err := linefile.NewStreamManager(linefile.NewFileSource("/data/content.txt"), config)
	if err != nil {
		t.Fatal(err)
	}
	return fsys, m
}

func TestRewriteOriginalUntouchedOnWriteFailure(t *testing.T) {
	const original = "a\nb\nc\n"
	fsys, m := newMemManager(t, original)

	fsys.FailWritesAfter(2)
	err := m.Set(1, "x")
	if !errors.Is(err, vfs.ErrNoSpace) {
		t.Fatalf("Set: err = %v, want ErrNoSpace in chain", err)
	}
	fsys.FailWritesAfter(-1)

	data, err := fsys.ReadFile("/data/content.txt")
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != original {
		t.Fatalf("original changed after failed pass: %q", data)
	}
}

func TestRewriteNoTempLeftBehindOnFailure(t *testing.T) {
	fsys, m := newMemManager(t, "a\nb\n")

	fsys.FailWritesAfter(0)
	if err := m.Append("c"); err == nil {
		t.Fatal("Append succeeded with a zero write budget")
	}
	fsys.FailWritesAfter(-1)

	want := []string{"/data/content.txt"}
	if got := fsys.Paths(); !reflect.DeepEqual(got, want) {
		t.Fatalf("files after failed pass: %q, want %q", got, want)
	}
}

func TestRewriteNoTempLeftBehindOnSuccess(t *testing.T) {
	fsys, m := newMemManager(t, "a\n")

	if err := m.Append("b"); err != nil {
		t.Fatalf("append: %v", err)
	}
	want := []string{"/data/content.txt"}
	if got := fsys.Paths(); !reflect.DeepEqual(got, want) {
		t.Fatalf("files after pass: %q, want %q", got, want)
	}
	data, err := fsys.ReadFile("/data/content.txt")
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "a\nb\n" {
		t.Fatalf("content = %q, want %q", data, "a\nb\n")
	}
}

func TestRewriteCachedFlushAtomic(t *testing.T) {
	const original = "a\nb\n"
	fsys := vfs.NewMem()
	fsys.WriteFile("/data/content.txt", []byte(original), 0o644)

	config := linefile.DefaultConfig()
	config.FS = fsys
	m, err := linefile.NewCachedManager(linefile.NewFileSource("/data/content.txt"), config)
	if err != nil {
		t.Fatal(err)
	}

	if err := m.Append("c"); err != nil {
		t.Fatal(err)
	}
	fsys.FailWritesAfter(1)
	if err := m.Flush(); !errors.Is(err, vfs.ErrNoSpace) {
		t.Fatalf("Flush: err = %v, want ErrNoSpace in chain", err)
	}
	fsys.FailWritesAfter(-1)

	data, err := fsys.ReadFile("/data/content.txt")
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != original {
		t.Fatalf("original changed after failed flush: %q", data)
	}

	// the cache still holds the edit; a retry lands it
	if err := m.Flush(); err != nil {
		t.Fatalf("retry flush: %v", err)
	}
	data, _ = fsys.ReadFile("/data/content.txt")
	if string(data) != "a\nb\nc\n" {
		t.Fatalf("content after retry = %q, want %q", data, "a\nb\nc\n")
	}
}

func TestRewriteEditFuncIndexes(t *testing.T) {
	fsys, m := newMemManager(t, "a\nb\nc\n")

	var indexes []int
	err := m.Apply(func(line string, index int) linefile.Decision {
		indexes = append(indexes, index)
		return linefile.KeepLine()
	})
	if err != nil {
		t.Fatal(err)
	}
	if want := []int{0, 1, 2}; !reflect.DeepEqual(indexes, want) {
		t.Fatalf("indexes = %v, want %v", indexes, want)
	}
	data, _ := fsys.ReadFile("/data/content.txt")
	if string(data) != "a\nb\nc\n" {
		t.Fatalf("keep-all pass changed content: %q", data)
	}
}
