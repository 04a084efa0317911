package fstest

import (
	"bytes"
	"errors"
	"io"
	"io/fs"
	"testing"

	"github.com/Kanma/MPQExtractor/fs/core"
)

// testReadFS tests read-only operations: Open, Stat, ReadDir, ReadFile, Exists.
func testReadFS(t *testing.T, filesystem core.FS, skipped func(string) bool) {
	content := []byte("extracted member content")

	// Setup: a directory holding one file
	if err := filesystem.MkdirAll("out/data", 0o755); err != nil {
		t.Fatalf("MkdirAll(out/data): setup failed: %v", err)
	}
	if err := filesystem.WriteFile("out/data/member.txt", content, 0o644); err != nil {
		t.Fatalf("WriteFile(out/data/member.txt): setup failed: %v", err)
	}

	run(t, "Open", skipped, func(t *testing.T) {
		f, err := filesystem.Open("out/data/member.txt")
		if err != nil {
			t.Fatalf("Open(%q): got error %v, want nil", "out/data/member.txt", err)
		}
		defer func() { _ = f.Close() }()

		data, err := io.ReadAll(f)
		if err != nil {
			t.Fatalf("ReadAll(): got error %v, want nil", err)
		}
		if !bytes.Equal(data, content) {
			t.Errorf("Read(): got %q, want %q", data, content)
		}
	})

	run(t, "StatFile", skipped, func(t *testing.T) {
		info, err := filesystem.Stat("out/data/member.txt")
		if err != nil {
			t.Fatalf("Stat(%q): got error %v, want nil", "out/data/member.txt", err)
		}
		if info.IsDir() {
			t.Errorf("Stat(%q): IsDir() = true, want false", "out/data/member.txt")
		}
		if info.Size() != int64(len(content)) {
			t.Errorf("Stat(%q): Size() = %d, want %d", "out/data/member.txt", info.Size(), len(content))
		}
	})

	run(t, "StatDir", skipped, func(t *testing.T) {
		info, err := filesystem.Stat("out/data")
		if err != nil {
			t.Fatalf("Stat(%q): got error %v, want nil", "out/data", err)
		}
		if !info.IsDir() {
			t.Errorf("Stat(%q): IsDir() = false, want true", "out/data")
		}
	})

	run(t, "ReadDir", skipped, func(t *testing.T) {
		entries, err := filesystem.ReadDir("out/data")
		if err != nil {
			t.Fatalf("ReadDir(%q): got error %v, want nil", "out/data", err)
		}
		if len(entries) != 1 {
			t.Fatalf("ReadDir(%q): got %d entries, want 1", "out/data", len(entries))
		}
		if entries[0].Name() != "member.txt" {
			t.Errorf("ReadDir(%q): got entry name %q, want %q", "out/data", entries[0].Name(), "member.txt")
		}
		if entries[0].IsDir() {
			t.Errorf("ReadDir(%q): entry IsDir() = true, want false", "out/data")
		}
	})

	run(t, "ReadFile", skipped, func(t *testing.T) {
		data, err := filesystem.ReadFile("out/data/member.txt")
		if err != nil {
			t.Fatalf("ReadFile(%q): got error %v, want nil", "out/data/member.txt", err)
		}
		if !bytes.Equal(data, content) {
			t.Errorf("ReadFile(%q): got %q, want %q", "out/data/member.txt", data, content)
		}
	})

	run(t, "OpenNotExist", skipped, func(t *testing.T) {
		_, err := filesystem.Open("nonexistent")
		if !errors.Is(err, fs.ErrNotExist) {
			t.Errorf("Open(%q): got error %v, want fs.ErrNotExist", "nonexistent", err)
		}
	})

	run(t, "Exists", skipped, func(t *testing.T) {
		tests := []struct {
			path string
			want bool
		}{
			{"out/data/member.txt", true},
			{"out/data", true},
			{"out/missing", false},
		}
		for _, tt := range tests {
			got, err := filesystem.Exists(tt.path)
			if err != nil {
				t.Errorf("Exists(%q): got error %v, want nil", tt.path, err)
				continue
			}
			if got != tt.want {
				t.Errorf("Exists(%q): got %v, want %v", tt.path, got, tt.want)
			}
		}
	})
}
