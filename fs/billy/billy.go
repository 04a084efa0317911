package billy

import (
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/osfs"

	"github.com/Kanma/MPQExtractor/fs/core"
)

// LocalFS wraps billy's osfs for local filesystem access.
//
// The underlying osfs is rooted at "/". Relative names are resolved against
// the working directory captured when the filesystem is created, so a
// destination such as "out" means the same thing it does on the command line.
type LocalFS struct {
	adapter
}

// MemoryFS wraps billy's memfs for in-memory filesystem access.
// Names are used as given; the tree starts empty.
type MemoryFS struct {
	adapter
}

// Option configures filesystem creation.
type Option func(*config)

type config struct {
	workingDir string
}

// WithWorkingDir sets the directory relative names are resolved against
// on a LocalFS. It has no effect on a MemoryFS.
func WithWorkingDir(dir string) Option {
	return func(c *config) {
		c.workingDir = dir
	}
}

// NewLocal creates a go-billy-backed local filesystem.
// Without WithWorkingDir, relative names resolve against the process working
// directory (or "/" if it cannot be determined).
func NewLocal(opts ...Option) *LocalFS {
	cfg := &config{}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.workingDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			wd = "/"
		}
		cfg.workingDir = wd
	}

	wd := filepath.Clean(cfg.workingDir)
	return &LocalFS{adapter{
		bfs: osfs.New("/"),
		resolve: func(name string) string {
			if !filepath.IsAbs(name) {
				name = filepath.Join(wd, name)
			}
			return normalize(name)
		},
	}}
}

// NewMemory creates a go-billy-backed in-memory filesystem.
func NewMemory(_ ...Option) *MemoryFS {
	return &MemoryFS{adapter{
		bfs:     memfs.New(),
		resolve: normalize,
	}}
}

// Type returns FSTypeLocal for local filesystem implementations.
func (lfs *LocalFS) Type() core.FSType {
	return core.FSTypeLocal
}

// Type returns FSTypeMemory for in-memory filesystem implementations.
func (mfs *MemoryFS) Type() core.FSType {
	return core.FSTypeMemory
}

// adapter implements the core.FS operations shared by both providers.
type adapter struct {
	bfs     billy.Filesystem
	resolve func(string) string
}

// Unwrap returns the underlying billy.Filesystem.
func (a *adapter) Unwrap() billy.Filesystem {
	return a.bfs
}

// normalize converts paths to use forward slashes consistently.
func normalize(path string) string {
	return filepath.ToSlash(filepath.Clean(path))
}

// dirEntry wraps fs.FileInfo to implement fs.DirEntry.
type dirEntry struct {
	info fs.FileInfo
}

func (d *dirEntry) Name() string               { return d.info.Name() }
func (d *dirEntry) IsDir() bool                { return d.info.IsDir() }
func (d *dirEntry) Type() fs.FileMode          { return d.info.Mode().Type() }
func (d *dirEntry) Info() (fs.FileInfo, error) { return d.info, nil }

// ReadFS interface implementation

// Open opens the named file for reading.
func (a *adapter) Open(name string) (fs.File, error) {
	name = a.resolve(name)
	f, err := a.bfs.Open(name)
	if err != nil {
		return nil, err
	}
	return &File{file: f, fs: a.bfs, name: name}, nil
}

// Stat returns file metadata for the named file.
func (a *adapter) Stat(name string) (fs.FileInfo, error) {
	return a.bfs.Stat(a.resolve(name))
}

// ReadDir reads the named directory and returns its entries sorted by filename.
func (a *adapter) ReadDir(name string) ([]fs.DirEntry, error) {
	// Billy's ReadDir returns []fs.FileInfo, we need to convert to []fs.DirEntry
	infos, err := a.bfs.ReadDir(a.resolve(name))
	if err != nil {
		return nil, err
	}
	entries := make([]fs.DirEntry, len(infos))
	for i, info := range infos {
		entries[i] = &dirEntry{info: info}
	}
	return entries, nil
}

// ReadFile reads the named file and returns its contents.
func (a *adapter) ReadFile(name string) ([]byte, error) {
	f, err := a.bfs.Open(a.resolve(name))
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()
	return io.ReadAll(f)
}

// Exists reports whether the named file or directory exists.
func (a *adapter) Exists(name string) (bool, error) {
	_, err := a.bfs.Stat(a.resolve(name))
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, err
}

// WriteFS interface implementation

// Create creates or truncates the named file for writing.
func (a *adapter) Create(name string) (core.File, error) {
	name = a.resolve(name)
	f, err := a.bfs.Create(name)
	if err != nil {
		return nil, err
	}
	return &File{file: f, fs: a.bfs, name: name}, nil
}

// OpenFile opens a file with the specified flags and permissions.
func (a *adapter) OpenFile(name string, flag int, perm fs.FileMode) (core.File, error) {
	name = a.resolve(name)
	f, err := a.bfs.OpenFile(name, flag, perm)
	if err != nil {
		return nil, err
	}
	return &File{file: f, fs: a.bfs, name: name}, nil
}

// WriteFile writes data to the named file, creating it if necessary.
func (a *adapter) WriteFile(name string, data []byte, perm fs.FileMode) error {
	f, err := a.bfs.OpenFile(a.resolve(name), os.O_WRONLY|os.O_CREATE|os.O_TRUNC, perm)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()
	_, err = f.Write(data)
	return err
}

// Mkdir creates a new directory with the specified name and permission bits.
// Unlike MkdirAll, this fails if the parent directory does not exist or if
// name already exists.
func (a *adapter) Mkdir(name string, perm fs.FileMode) error {
	name = a.resolve(name)
	if _, err := a.bfs.Stat(name); err == nil {
		return &fs.PathError{Op: "mkdir", Path: name, Err: fs.ErrExist}
	}
	parent := filepath.Dir(name)
	if parent != "." && parent != "/" {
		info, err := a.bfs.Stat(parent)
		if err != nil {
			return err
		}
		if !info.IsDir() {
			return &fs.PathError{Op: "mkdir", Path: name, Err: core.ErrNotDir}
		}
	}
	// MkdirAll won't create parents since we verified the parent exists
	return a.bfs.MkdirAll(name, perm)
}

// MkdirAll creates a directory named path, along with any necessary parents.
func (a *adapter) MkdirAll(path string, perm fs.FileMode) error {
	return a.bfs.MkdirAll(a.resolve(path), perm)
}

// ManageFS interface implementation

// Remove removes the named file or empty directory.
func (a *adapter) Remove(name string) error {
	return a.bfs.Remove(a.resolve(name))
}

// RemoveAll removes path and any children it contains.
func (a *adapter) RemoveAll(path string) error {
	return a.removeAll(a.resolve(path))
}

func (a *adapter) removeAll(path string) error {
	info, err := a.bfs.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil // RemoveAll returns nil if path doesn't exist
		}
		return err
	}

	if !info.IsDir() {
		return a.bfs.Remove(path)
	}

	entries, err := a.bfs.ReadDir(path)
	if err != nil {
		return err
	}
	for _, entry := range entries {
		if err := a.removeAll(normalize(filepath.Join(path, entry.Name()))); err != nil {
			return err
		}
	}

	return a.bfs.Remove(path)
}

// Rename renames (moves) oldpath to newpath.
func (a *adapter) Rename(oldpath, newpath string) error {
	return a.bfs.Rename(a.resolve(oldpath), a.resolve(newpath))
}

// Compile-time interface checks.
var (
	_ core.FS = (*LocalFS)(nil)
	_ core.FS = (*MemoryFS)(nil)
)
