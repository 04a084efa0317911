package container

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/mholt/archives"

	"github.com/Kanma/MPQExtractor/archive"
	"github.com/Kanma/MPQExtractor/fs/billy"
	"github.com/Kanma/MPQExtractor/fs/core"
	"github.com/Kanma/MPQExtractor/internal/logging"
)

// extractor is the part of an identified archives.Format that walks members.
type extractor interface {
	Extract(ctx context.Context, r io.Reader, handleFile archives.FileHandler) error
}

// Backend opens archives with mholt/archives.
type Backend struct {
	src    core.ReadFS
	dst    core.FS
	logger *logging.Logger
}

// Option configures a Backend.
type Option func(*Backend)

// WithFS sets the filesystem members are extracted to. It is also used to
// read archives unless WithSourceFS is given.
func WithFS(fsys core.FS) Option {
	return func(b *Backend) {
		b.dst = fsys
	}
}

// WithSourceFS sets the filesystem archives are read from.
func WithSourceFS(fsys core.ReadFS) Option {
	return func(b *Backend) {
		b.src = fsys
	}
}

// WithLogger sets the logger.
func WithLogger(logger *logging.Logger) Option {
	return func(b *Backend) {
		b.logger = logger
	}
}

// New creates a Backend. By default archives are read from and extracted to
// the local filesystem.
func New(opts ...Option) *Backend {
	b := &Backend{}
	for _, opt := range opts {
		opt(b)
	}
	if b.dst == nil {
		b.dst = billy.NewLocal()
	}
	if b.src == nil {
		b.src = b.dst
	}
	if b.logger == nil {
		b.logger = logging.NewNopLogger()
	}
	return b
}

// Open identifies and indexes the archive at path.
func (b *Backend) Open(ctx context.Context, path string) (archive.Handle, error) {
	idx, err := b.index(ctx, path)
	if err != nil {
		return nil, err
	}
	return &Handle{
		backend: b,
		chain:   archive.NewChain(path, idx),
	}, nil
}

// index lists the file members of the archive at path.
func (b *Backend) index(ctx context.Context, path string) (*archive.Index, error) {
	start := time.Now()

	var names []string
	err := b.walk(ctx, path, func(_ context.Context, f archives.FileInfo) error {
		if f.IsDir() || f.LinkTarget != "" {
			return nil
		}
		names = append(names, memberName(f.NameInArchive))
		return nil
	})
	if err != nil {
		return nil, err
	}

	idx := archive.NewIndex(names)
	b.logger.Debug(ctx, "indexed archive",
		"archive", path,
		"members", idx.Len(),
		"duration_ms", time.Since(start).Milliseconds())
	return idx, nil
}

// walk identifies the archive at path and calls fn for every entry.
func (b *Backend) walk(ctx context.Context, path string, fn archives.FileHandler) error {
	file, err := b.src.Open(path)
	if err != nil {
		return err
	}
	defer func() { _ = file.Close() }()

	format, input, err := archives.Identify(ctx, path, file)
	if err != nil {
		return fmt.Errorf("failed to identify archive format: %w", err)
	}

	ex, ok := format.(extractor)
	if !ok {
		return fmt.Errorf("format %s does not support extraction", format.Extension())
	}

	// Random access formats such as zip need the original seekable file.
	if seeker, ok := file.(io.Seeker); ok {
		if _, err := seeker.Seek(0, io.SeekStart); err != nil {
			return fmt.Errorf("failed to rewind archive: %w", err)
		}
		input = file
	}

	return ex.Extract(ctx, input, fn)
}

// extract streams the entry named name out of the archive at path into dest.
func (b *Backend) extract(ctx context.Context, path, name, dest string) error {
	var (
		found    bool
		writeErr error
	)

	err := b.walk(ctx, path, func(_ context.Context, f archives.FileInfo) error {
		if f.IsDir() || memberName(f.NameInArchive) != name {
			return nil
		}
		found = true

		rc, err := f.Open()
		if err != nil {
			writeErr = err
			return errStop
		}
		defer func() { _ = rc.Close() }()

		n, err := core.WriteFrom(b.dst, dest, rc)
		writeErr = err
		b.logger.Debug(ctx, "streamed member", "member", name, "dest", dest, "bytes", n)
		return errStop
	})

	if found {
		return writeErr
	}
	if err != nil {
		return err
	}
	return fmt.Errorf("%s: %w", name, archive.ErrMemberNotFound)
}

// errStop ends a walk once the wanted entry has been handled.
var errStop = errors.New("stop walk")

// memberName converts an entry name to archive-internal form.
func memberName(name string) string {
	name = strings.TrimPrefix(name, "./")
	name = strings.TrimLeft(name, "/")
	return strings.ReplaceAll(name, "/", archive.Separator)
}

// Handle is an open archive with its layered patches.
type Handle struct {
	mu      sync.Mutex
	backend *Backend
	chain   *archive.Chain
	closed  bool
}

// LayerPatch indexes the archive at path and stacks it on the chain.
// A patch that cannot be read is not added.
func (h *Handle) LayerPatch(ctx context.Context, path, prefix string) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return archive.ErrClosed
	}
	idx, err := h.backend.index(ctx, path)
	if err != nil {
		return err
	}
	h.chain.Push(path, prefix, idx)
	return nil
}

// FindFirst searches the members visible through the chain.
func (h *Handle) FindFirst(_ context.Context, pattern string) (archive.Match, archive.Cursor, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return archive.Match{}, nil, archive.ErrClosed
	}
	return h.chain.FindFirst(pattern)
}

// ExtractMember resolves member through the chain and writes it to dest.
func (h *Handle) ExtractMember(ctx context.Context, member, dest string, patched bool) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return archive.ErrClosed
	}
	res, err := h.chain.Resolve(member, patched)
	if err != nil {
		return fmt.Errorf("%s: %w", member, err)
	}
	return h.backend.extract(ctx, h.chain.Layer(res.Layer).Path, res.Name, dest)
}

// ExtractSpecial writes a special member to dest. A list file is
// synthesized from the base archive when the archive carries none.
func (h *Handle) ExtractSpecial(ctx context.Context, name, dest string) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return archive.ErrClosed
	}
	base := h.chain.Base()
	if stored, ok := base.Index.Lookup(name); ok {
		return h.backend.extract(ctx, base.Path, stored, dest)
	}
	if !strings.EqualFold(name, archive.ListFile) {
		return fmt.Errorf("%s: %w", name, archive.ErrMemberNotFound)
	}
	_, err := core.WriteFrom(h.backend.dst, dest, strings.NewReader(archive.SynthesizeListFile(base.Index)))
	return err
}

// Close releases the handle. It is idempotent.
func (h *Handle) Close() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.closed = true
	return nil
}

// Patches returns the layered patches, in order.
func (h *Handle) Patches() []archive.Layer {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.chain.Patches()
}

var (
	_ archive.Backend = (*Backend)(nil)
	_ archive.Handle  = (*Handle)(nil)
)
