package core_test

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/Kanma/MPQExtractor/fs/billy"
	"github.com/Kanma/MPQExtractor/fs/core"
)

// TestWriteFrom verifies the reader is copied into a new file.
func TestWriteFrom(t *testing.T) {
	fsys := billy.NewMemory()
	if err := fsys.MkdirAll("out", 0o755); err != nil {
		t.Fatalf("MkdirAll(): %v", err)
	}

	n, err := core.WriteFrom(fsys, "out/c.txt", strings.NewReader("hello"))
	if err != nil {
		t.Fatalf("WriteFrom(): got error %v, want nil", err)
	}
	if n != 5 {
		t.Errorf("WriteFrom(): wrote %d bytes, want 5", n)
	}

	data, err := fsys.ReadFile("out/c.txt")
	if err != nil {
		t.Fatalf("ReadFile(): %v", err)
	}
	if !bytes.Equal(data, []byte("hello")) {
		t.Errorf("ReadFile() = %q, want %q", data, "hello")
	}
}

// TestWriteFrom_Truncates verifies an existing file is replaced.
func TestWriteFrom_Truncates(t *testing.T) {
	fsys := billy.NewMemory()
	if err := fsys.WriteFile("c.txt", []byte("previous longer content"), 0o644); err != nil {
		t.Fatalf("WriteFile(): %v", err)
	}

	if _, err := core.WriteFrom(fsys, "c.txt", strings.NewReader("new")); err != nil {
		t.Fatalf("WriteFrom(): %v", err)
	}

	data, _ := fsys.ReadFile("c.txt")
	if string(data) != "new" {
		t.Errorf("ReadFile() = %q, want %q", data, "new")
	}
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("corrupt member") }

// TestWriteFrom_ReaderError verifies read failures are returned.
func TestWriteFrom_ReaderError(t *testing.T) {
	fsys := billy.NewMemory()

	_, err := core.WriteFrom(fsys, "c.txt", io.MultiReader(strings.NewReader("ab"), failingReader{}))
	if err == nil || err.Error() != "corrupt member" {
		t.Errorf("WriteFrom(): got error %v, want corrupt member", err)
	}
}
