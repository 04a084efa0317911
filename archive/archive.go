package archive

import (
	"context"
	"errors"
	"strings"
)

// Separator is the path separator used inside archives.
const Separator = `\`

// ListFile is the name of the special member listing an archive's contents.
const ListFile = "(listfile)"

var (
	// ErrNoMatch is returned by FindFirst when no member matches the pattern.
	ErrNoMatch = errors.New("no matching member")

	// ErrMemberNotFound is returned when a member is in neither the base
	// archive nor any layered patch.
	ErrMemberNotFound = errors.New("member not found")

	// ErrClosed is returned by every Handle operation after Close.
	ErrClosed = errors.New("archive handle closed")
)

// Backend opens archives.
type Backend interface {
	// Open opens the base archive at path read-only.
	Open(ctx context.Context, path string) (Handle, error)
}

// Handle is an open base archive plus the patches layered onto it.
// A Handle is owned by a single goroutine.
type Handle interface {
	// LayerPatch opens the archive at path and stacks it on top of the
	// previously layered patches. Later patches take precedence.
	LayerPatch(ctx context.Context, path, prefix string) error

	// FindFirst returns the first member matching pattern and a cursor over
	// the remaining matches. It returns ErrNoMatch when nothing matches.
	FindFirst(ctx context.Context, pattern string) (Match, Cursor, error)

	// ExtractMember writes member to dest. With patched set, the member is
	// resolved through the patch chain; otherwise only the base archive is
	// consulted.
	ExtractMember(ctx context.Context, member, dest string, patched bool) error

	// ExtractSpecial writes a special member such as ListFile to dest.
	ExtractSpecial(ctx context.Context, name, dest string) error

	// Close releases the archive and its patches. Close is idempotent.
	Close() error
}

// Cursor iterates the matches of a search after the first.
type Cursor interface {
	// Next returns the next match, or false when the search is exhausted.
	Next() (Match, bool)

	// Close releases the cursor.
	Close() error
}

// Match is one member found by a search.
type Match struct {
	// FullPath is the backslash separated path inside the archive.
	FullPath string

	// PlainName is the final path segment.
	PlainName string
}

// NewMatch builds a Match for the member at fullPath.
func NewMatch(fullPath string) Match {
	return Match{FullPath: fullPath, PlainName: PlainName(fullPath)}
}

// PlainName returns the substring after the last backslash in name, or name
// itself when it contains none.
func PlainName(name string) string {
	if i := strings.LastIndex(name, Separator); i >= 0 {
		return name[i+1:]
	}
	return name
}

// JoinPrefix returns the name member has inside a patch layered with prefix.
func JoinPrefix(prefix, member string) string {
	prefix = strings.TrimRight(prefix, Separator)
	if prefix == "" {
		return member
	}
	return prefix + Separator + member
}
