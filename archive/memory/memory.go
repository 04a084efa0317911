// Package memory provides an in-memory archive backend.
//
// Archives are registered by path with Add and opened like files on disk.
// Extracted members are written to a core.FS, by default a fresh in-memory
// filesystem. Handles record the patches they layered and the extractions
// they performed so callers can inspect what a session did.
package memory

import (
	"bytes"
	"context"
	"fmt"
	"io/fs"
	"strings"
	"sync"

	"github.com/Kanma/MPQExtractor/archive"
	"github.com/Kanma/MPQExtractor/fs/billy"
	"github.com/Kanma/MPQExtractor/fs/core"
)

// Member is one file inside an in-memory archive.
type Member struct {
	Name string
	Data []byte
}

// File is a convenience constructor for a Member with string content.
func File(name, content string) Member {
	return Member{Name: name, Data: []byte(content)}
}

// Backend is an archive.Backend serving archives registered with Add.
type Backend struct {
	mu       sync.Mutex
	archives map[string][]Member
	fsys     core.FS
	handles  []*Handle
}

// Option configures a Backend.
type Option func(*Backend)

// WithFS sets the filesystem extracted members are written to.
func WithFS(fsys core.FS) Option {
	return func(b *Backend) {
		b.fsys = fsys
	}
}

// NewBackend creates an empty backend.
func NewBackend(opts ...Option) *Backend {
	b := &Backend{archives: make(map[string][]Member)}
	for _, opt := range opts {
		opt(b)
	}
	if b.fsys == nil {
		b.fsys = billy.NewMemory()
	}
	return b
}

// Add registers an archive at path, replacing any previous one.
func (b *Backend) Add(path string, members ...Member) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.archives[path] = members
}

// FS returns the filesystem extracted members are written to.
func (b *Backend) FS() core.FS {
	return b.fsys
}

// Handles returns every handle opened so far, oldest first.
func (b *Backend) Handles() []*Handle {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]*Handle, len(b.handles))
	copy(out, b.handles)
	return out
}

// Open opens a registered archive.
func (b *Backend) Open(_ context.Context, path string) (archive.Handle, error) {
	members, err := b.load(path)
	if err != nil {
		return nil, err
	}

	h := &Handle{
		fsys:  b.fsys,
		chain: archive.NewChain(path, members.index),
		data:  []map[string][]byte{members.data},
		load:  b.load,
	}

	b.mu.Lock()
	b.handles = append(b.handles, h)
	b.mu.Unlock()
	return h, nil
}

type loaded struct {
	index *archive.Index
	data  map[string][]byte
}

func (b *Backend) load(path string) (loaded, error) {
	b.mu.Lock()
	members, ok := b.archives[path]
	b.mu.Unlock()
	if !ok {
		return loaded{}, &fs.PathError{Op: "open", Path: path, Err: fs.ErrNotExist}
	}

	names := make([]string, 0, len(members))
	data := make(map[string][]byte, len(members))
	for _, m := range members {
		names = append(names, m.Name)
		key := strings.ToLower(m.Name)
		if _, dup := data[key]; !dup {
			data[key] = m.Data
		}
	}
	return loaded{index: archive.NewIndex(names), data: data}, nil
}

// Extraction records one ExtractMember call.
type Extraction struct {
	Member  string
	Dest    string
	Patched bool
	Err     error
}

// Handle is an open in-memory archive.
type Handle struct {
	mu          sync.Mutex
	fsys        core.FS
	chain       *archive.Chain
	data        []map[string][]byte
	load        func(string) (loaded, error)
	extractions []Extraction
	cursors     []*archive.SliceCursor
	closed      bool
}

// LayerPatch stacks the registered archive at path on top of the chain.
func (h *Handle) LayerPatch(_ context.Context, path, prefix string) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return archive.ErrClosed
	}
	patch, err := h.load(path)
	if err != nil {
		return err
	}
	h.chain.Push(path, prefix, patch.index)
	h.data = append(h.data, patch.data)
	return nil
}

// FindFirst searches the members visible through the chain.
func (h *Handle) FindFirst(_ context.Context, pattern string) (archive.Match, archive.Cursor, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return archive.Match{}, nil, archive.ErrClosed
	}
	matches, err := h.chain.Find(pattern)
	if err != nil {
		return archive.Match{}, nil, err
	}
	cursor := archive.NewSliceCursor(matches[1:])
	h.cursors = append(h.cursors, cursor)
	return matches[0], cursor, nil
}

// ExtractMember writes the resolved member to dest.
func (h *Handle) ExtractMember(_ context.Context, member, dest string, patched bool) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	err := h.extractMember(member, dest, patched)
	h.extractions = append(h.extractions, Extraction{
		Member:  member,
		Dest:    dest,
		Patched: patched,
		Err:     err,
	})
	return err
}

func (h *Handle) extractMember(member, dest string, patched bool) error {
	if h.closed {
		return archive.ErrClosed
	}
	res, err := h.chain.Resolve(member, patched)
	if err != nil {
		return fmt.Errorf("%s: %w", member, err)
	}
	data := h.data[res.Layer][strings.ToLower(res.Name)]
	_, err = core.WriteFrom(h.fsys, dest, bytes.NewReader(data))
	return err
}

// ExtractSpecial writes a special member. For archive.ListFile a real
// (listfile) member is used when present, otherwise one is synthesized from
// the base archive's member names.
func (h *Handle) ExtractSpecial(_ context.Context, name, dest string) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return archive.ErrClosed
	}
	if data, ok := h.data[0][strings.ToLower(name)]; ok {
		_, err := core.WriteFrom(h.fsys, dest, bytes.NewReader(data))
		return err
	}
	if !strings.EqualFold(name, archive.ListFile) {
		return fmt.Errorf("%s: %w", name, archive.ErrMemberNotFound)
	}
	_, err := core.WriteFrom(h.fsys, dest, strings.NewReader(archive.SynthesizeListFile(h.chain.Base().Index)))
	return err
}

// Close marks the handle closed. It is idempotent.
func (h *Handle) Close() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.closed = true
	return nil
}

// Closed reports whether Close has been called.
func (h *Handle) Closed() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.closed
}

// Layered returns the patches layered so far, in order.
func (h *Handle) Layered() []archive.Layer {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.chain.Patches()
}

// Extractions returns every ExtractMember call, in order.
func (h *Handle) Extractions() []Extraction {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]Extraction, len(h.extractions))
	copy(out, h.extractions)
	return out
}

// CursorsClosed reports whether every cursor handed out by FindFirst has
// been closed.
func (h *Handle) CursorsClosed() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, c := range h.cursors {
		if !c.Closed() {
			return false
		}
	}
	return true
}

var (
	_ archive.Backend = (*Backend)(nil)
	_ archive.Handle  = (*Handle)(nil)
)
