package core

import (
	"io"
)

// WriteFrom creates (or truncates) name on dst and copies everything from r
// into it. The parent directory must already exist.
//
// The file is synced when the provider supports it. If the copy fails the
// partially written file is left in place; callers report the failure.
//
// Example:
//
//	rc, err := member.Open()
//	if err != nil {
//	    return err
//	}
//	defer rc.Close()
//	n, err := core.WriteFrom(fsys, "out/a/b/c.txt", rc)
func WriteFrom(dst FS, name string, r io.Reader) (int64, error) {
	f, err := dst.Create(name)
	if err != nil {
		return 0, err
	}

	n, err := io.Copy(f, r)
	if err != nil {
		_ = f.Close()
		return n, err
	}

	if s, ok := f.(Syncer); ok {
		if err := s.Sync(); err != nil {
			_ = f.Close()
			return n, err
		}
	}

	return n, f.Close()
}
