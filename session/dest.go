package session

import (
	"io/fs"
	"strings"

	"github.com/Kanma/MPQExtractor/archive"
	"github.com/Kanma/MPQExtractor/errors"
	"github.com/Kanma/MPQExtractor/fs/core"
)

// dirPerm is rwxr-xr-x.
const dirPerm fs.FileMode = 0o755

// Layout controls how destination paths are built.
type Layout struct {
	// Root is the extraction root. Empty means ".".
	Root string

	// FullPath preserves the member's archive hierarchy under Root.
	FullPath bool

	// LowerCase lowercases the whole destination path.
	LowerCase bool
}

// root returns Root terminated by exactly one trailing slash.
func (l Layout) root() string {
	root := l.Root
	if root == "" {
		root = "."
	}
	if !strings.HasSuffix(root, "/") {
		root += "/"
	}
	return root
}

// DestinationPath computes where r is extracted.
//
// Flattened, the path is root + FileName. With FullPath it is root + FullPath
// with every backslash in the combined string turned into a forward slash.
func (l Layout) DestinationPath(r SearchResult) string {
	var dest string
	if l.FullPath {
		dest = strings.Join(strings.Split(l.root()+r.FullPath, archive.Separator), "/")
	} else {
		dest = l.root() + r.FileName
	}
	if l.LowerCase {
		dest = strings.ToLower(dest)
	}
	return dest
}

// ParentDirs returns the directory prefixes of dest, root to leaf: every
// prefix ending just before a slash. Empty, "." and ".." segments produce
// no entry of their own but stay part of the deeper prefixes.
func ParentDirs(dest string) []string {
	i := strings.LastIndex(dest, "/")
	if i < 0 {
		return nil
	}

	segments := strings.Split(dest[:i], "/")
	dirs := make([]string, 0, len(segments))
	prefix := ""
	for n, seg := range segments {
		if n > 0 {
			prefix += "/"
		}
		prefix += seg
		if seg == "" || seg == "." || seg == ".." {
			continue
		}
		dirs = append(dirs, prefix)
	}
	return dirs
}

// EnsureDirs creates every missing parent directory of dest, root to leaf.
// Existing directories are left alone, so repeated calls succeed.
func EnsureDirs(fsys core.FS, dest string) error {
	for _, dir := range ParentDirs(dest) {
		info, err := fsys.Stat(dir)
		if err == nil {
			if !info.IsDir() {
				return errors.WithContext(
					errors.Newf(errors.CodeExtractionFailed, "'%s' exists and is not a directory", dir),
					"dir", dir)
			}
			continue
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return err
		}
		if err := fsys.Mkdir(dir, dirPerm); err != nil && !errors.Is(err, fs.ErrExist) {
			return err
		}
	}
	return nil
}
