package fstest

import (
	"errors"
	"io/fs"
	"testing"

	"github.com/Kanma/MPQExtractor/fs/core"
)

// testManageFS tests file management: Remove, RemoveAll, Rename.
func testManageFS(t *testing.T, filesystem core.FS, skipped func(string) bool) {
	run(t, "RemoveFile", skipped, func(t *testing.T) {
		if err := filesystem.WriteFile("remove.txt", []byte("x"), 0o644); err != nil {
			t.Fatalf("WriteFile(remove.txt): setup failed: %v", err)
		}
		if err := filesystem.Remove("remove.txt"); err != nil {
			t.Fatalf("Remove(%q): got error %v, want nil", "remove.txt", err)
		}
		if _, err := filesystem.Stat("remove.txt"); !errors.Is(err, fs.ErrNotExist) {
			t.Errorf("Stat(%q) after Remove: got error %v, want fs.ErrNotExist", "remove.txt", err)
		}
	})

	run(t, "RemoveNotExist", skipped, func(t *testing.T) {
		err := filesystem.Remove("nonexistent")
		if !errors.Is(err, fs.ErrNotExist) {
			t.Errorf("Remove(%q): got error %v, want fs.ErrNotExist", "nonexistent", err)
		}
	})

	run(t, "RemoveAll", skipped, func(t *testing.T) {
		if err := filesystem.MkdirAll("tree/a/b", 0o755); err != nil {
			t.Fatalf("MkdirAll(tree/a/b): setup failed: %v", err)
		}
		for _, p := range []string{"tree/top.txt", "tree/a/mid.txt", "tree/a/b/leaf.txt"} {
			if err := filesystem.WriteFile(p, []byte(p), 0o644); err != nil {
				t.Fatalf("WriteFile(%s): setup failed: %v", p, err)
			}
		}
		if err := filesystem.RemoveAll("tree"); err != nil {
			t.Fatalf("RemoveAll(%q): got error %v, want nil", "tree", err)
		}
		exists, err := filesystem.Exists("tree")
		if err != nil {
			t.Fatalf("Exists(%q): got error %v, want nil", "tree", err)
		}
		if exists {
			t.Errorf("Exists(%q) after RemoveAll: got true, want false", "tree")
		}
		// RemoveAll of a missing path succeeds.
		if err := filesystem.RemoveAll("tree"); err != nil {
			t.Errorf("RemoveAll(%q) again: got error %v, want nil", "tree", err)
		}
	})

	run(t, "RenameFile", skipped, func(t *testing.T) {
		if err := filesystem.WriteFile("old.txt", []byte("moved"), 0o644); err != nil {
			t.Fatalf("WriteFile(old.txt): setup failed: %v", err)
		}
		if err := filesystem.Rename("old.txt", "new.txt"); err != nil {
			t.Fatalf("Rename(%q, %q): got error %v, want nil", "old.txt", "new.txt", err)
		}
		if _, err := filesystem.Stat("old.txt"); !errors.Is(err, fs.ErrNotExist) {
			t.Errorf("Stat(%q) after Rename: got error %v, want fs.ErrNotExist", "old.txt", err)
		}
		got, err := filesystem.ReadFile("new.txt")
		if err != nil {
			t.Fatalf("ReadFile(%q): got error %v, want nil", "new.txt", err)
		}
		if string(got) != "moved" {
			t.Errorf("ReadFile(%q): got %q, want %q", "new.txt", got, "moved")
		}
	})
}
