package fstest

import (
	"bytes"
	"errors"
	"io/fs"
	"os"
	"strings"
	"testing"

	"github.com/Kanma/MPQExtractor/fs/core"
)

// testWriteFS tests write operations: Create, OpenFile, WriteFile, Mkdir, MkdirAll.
func testWriteFS(t *testing.T, filesystem core.FS, skipped func(string) bool) {
	run(t, "CreateAndWrite", skipped, func(t *testing.T) {
		data := []byte("data written through Create")

		f, err := filesystem.Create("created.txt")
		if err != nil {
			t.Fatalf("Create(%q): got error %v, want nil", "created.txt", err)
		}
		if _, err := f.Write(data); err != nil {
			_ = f.Close()
			t.Fatalf("Write(): got error %v, want nil", err)
		}
		if err := f.Close(); err != nil {
			t.Fatalf("Close(): got error %v, want nil", err)
		}

		got, err := filesystem.ReadFile("created.txt")
		if err != nil {
			t.Fatalf("ReadFile(%q): got error %v, want nil", "created.txt", err)
		}
		if !bytes.Equal(got, data) {
			t.Errorf("ReadFile(%q): got %q, want %q", "created.txt", got, data)
		}
	})

	run(t, "CreateTruncates", skipped, func(t *testing.T) {
		if err := filesystem.WriteFile("overwrite.txt", []byte("a much longer original body"), 0o644); err != nil {
			t.Fatalf("WriteFile(overwrite.txt): setup failed: %v", err)
		}
		n, err := core.WriteFrom(filesystem, "overwrite.txt", strings.NewReader("short"))
		if err != nil {
			t.Fatalf("WriteFrom(%q): got error %v, want nil", "overwrite.txt", err)
		}
		if n != 5 {
			t.Errorf("WriteFrom(%q): wrote %d bytes, want 5", "overwrite.txt", n)
		}

		got, err := filesystem.ReadFile("overwrite.txt")
		if err != nil {
			t.Fatalf("ReadFile(%q): got error %v, want nil", "overwrite.txt", err)
		}
		if string(got) != "short" {
			t.Errorf("ReadFile(%q): got %q, want %q", "overwrite.txt", got, "short")
		}
	})

	run(t, "OpenFileAppend", skipped, func(t *testing.T) {
		if err := filesystem.WriteFile("append.txt", []byte("one"), 0o644); err != nil {
			t.Fatalf("WriteFile(append.txt): setup failed: %v", err)
		}
		f, err := filesystem.OpenFile("append.txt", os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			t.Fatalf("OpenFile(%q, O_APPEND): got error %v, want nil", "append.txt", err)
		}
		if _, err := f.Write([]byte("two")); err != nil {
			_ = f.Close()
			t.Fatalf("Write(): got error %v, want nil", err)
		}
		if err := f.Close(); err != nil {
			t.Fatalf("Close(): got error %v, want nil", err)
		}

		got, err := filesystem.ReadFile("append.txt")
		if err != nil {
			t.Fatalf("ReadFile(%q): got error %v, want nil", "append.txt", err)
		}
		if string(got) != "onetwo" {
			t.Errorf("ReadFile(%q): got %q, want %q", "append.txt", got, "onetwo")
		}
	})

	run(t, "Mkdir", skipped, func(t *testing.T) {
		if err := filesystem.Mkdir("dir", 0o755); err != nil {
			t.Fatalf("Mkdir(%q): got error %v, want nil", "dir", err)
		}
		info, err := filesystem.Stat("dir")
		if err != nil {
			t.Fatalf("Stat(%q): got error %v, want nil", "dir", err)
		}
		if !info.IsDir() {
			t.Errorf("Stat(%q): IsDir() = false, want true", "dir")
		}
	})

	run(t, "MkdirExisting", skipped, func(t *testing.T) {
		if err := filesystem.MkdirAll("again", 0o755); err != nil {
			t.Fatalf("MkdirAll(again): setup failed: %v", err)
		}
		err := filesystem.Mkdir("again", 0o755)
		if !errors.Is(err, fs.ErrExist) {
			t.Errorf("Mkdir(%q): got error %v, want fs.ErrExist", "again", err)
		}
	})

	run(t, "MkdirMissingParent", skipped, func(t *testing.T) {
		err := filesystem.Mkdir("no/parent", 0o755)
		if !errors.Is(err, fs.ErrNotExist) {
			t.Errorf("Mkdir(%q): got error %v, want fs.ErrNotExist", "no/parent", err)
		}
	})

	run(t, "MkdirAll", skipped, func(t *testing.T) {
		if err := filesystem.MkdirAll("deep/nested/tree", 0o755); err != nil {
			t.Fatalf("MkdirAll(%q): got error %v, want nil", "deep/nested/tree", err)
		}
		for _, p := range []string{"deep", "deep/nested", "deep/nested/tree"} {
			info, err := filesystem.Stat(p)
			if err != nil {
				t.Errorf("Stat(%q): got error %v, want nil", p, err)
				continue
			}
			if !info.IsDir() {
				t.Errorf("Stat(%q): IsDir() = false, want true", p)
			}
		}
		// MkdirAll on an existing tree is a no-op.
		if err := filesystem.MkdirAll("deep/nested/tree", 0o755); err != nil {
			t.Errorf("MkdirAll(%q) again: got error %v, want nil", "deep/nested/tree", err)
		}
	})
}
