package memory

import (
	"context"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Kanma/MPQExtractor/archive"
)

func newTestBackend() *Backend {
	b := NewBackend()
	b.Add("base.mpq",
		File(`a\b\c.txt`, "base c"),
		File(`a\d.txt`, "base d"),
	)
	b.Add("patch.mpq",
		File(`base\a\d.txt`, "patched d"),
		File(`base\e.txt`, "patch e"),
	)
	return b
}

func TestBackend_OpenMissing(t *testing.T) {
	b := NewBackend()
	_, err := b.Open(context.Background(), "missing.mpq")
	require.ErrorIs(t, err, fs.ErrNotExist)
}

func TestHandle_ExtractMember(t *testing.T) {
	ctx := context.Background()
	b := newTestBackend()

	h, err := b.Open(ctx, "base.mpq")
	require.NoError(t, err)
	require.NoError(t, h.LayerPatch(ctx, "patch.mpq", "base"))

	tests := []struct {
		name    string
		member  string
		patched bool
		want    string
		wantErr error
	}{
		{"base member", `a\b\c.txt`, true, "base c", nil},
		{"patched member", `a\d.txt`, true, "patched d", nil},
		{"unpatched view", `a\d.txt`, false, "base d", nil},
		{"patch only", `e.txt`, true, "patch e", nil},
		{"missing", `nope.txt`, true, "", archive.ErrMemberNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := h.ExtractMember(ctx, tt.member, "out.bin", tt.patched)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			data, err := b.FS().ReadFile("out.bin")
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(data))
		})
	}

	mh := h.(*Handle)
	ex := mh.Extractions()
	require.Len(t, ex, 5)
	assert.Equal(t, `a\d.txt`, ex[1].Member)
	assert.True(t, ex[1].Patched)
	assert.False(t, ex[2].Patched)
	assert.ErrorIs(t, ex[4].Err, archive.ErrMemberNotFound)
}

func TestHandle_LayerPatch(t *testing.T) {
	ctx := context.Background()
	b := newTestBackend()

	h, err := b.Open(ctx, "base.mpq")
	require.NoError(t, err)

	require.NoError(t, h.LayerPatch(ctx, "patch.mpq", "base"))
	require.ErrorIs(t, h.LayerPatch(ctx, "missing.mpq", ""), fs.ErrNotExist)
	require.NoError(t, h.LayerPatch(ctx, "base.mpq", ""))

	layered := b.Handles()[0].Layered()
	require.Len(t, layered, 2)
	assert.Equal(t, "patch.mpq", layered[0].Path)
	assert.Equal(t, "base", layered[0].Prefix)
	assert.Equal(t, "base.mpq", layered[1].Path)
	assert.Equal(t, "", layered[1].Prefix)
}

func TestHandle_FindFirst(t *testing.T) {
	ctx := context.Background()
	b := newTestBackend()

	h, err := b.Open(ctx, "base.mpq")
	require.NoError(t, err)
	require.NoError(t, h.LayerPatch(ctx, "patch.mpq", "base"))

	first, cursor, err := h.FindFirst(ctx, "*.txt")
	require.NoError(t, err)
	got := []string{first.FullPath}
	for m, ok := cursor.Next(); ok; m, ok = cursor.Next() {
		got = append(got, m.FullPath)
	}
	assert.Equal(t, []string{`a\b\c.txt`, `a\d.txt`, "e.txt"}, got)

	mh := h.(*Handle)
	assert.False(t, mh.CursorsClosed())
	require.NoError(t, cursor.Close())
	assert.True(t, mh.CursorsClosed())

	_, _, err = h.FindFirst(ctx, "*.blp")
	require.ErrorIs(t, err, archive.ErrNoMatch)
}

func TestHandle_ExtractSpecial(t *testing.T) {
	ctx := context.Background()

	t.Run("synthesized", func(t *testing.T) {
		b := newTestBackend()
		h, err := b.Open(ctx, "base.mpq")
		require.NoError(t, err)

		require.NoError(t, h.ExtractSpecial(ctx, archive.ListFile, "list.txt"))
		data, err := b.FS().ReadFile("list.txt")
		require.NoError(t, err)
		assert.Equal(t, "a\\b\\c.txt\r\na\\d.txt\r\n", string(data))
	})

	t.Run("stored", func(t *testing.T) {
		b := NewBackend()
		b.Add("base.mpq", File(archive.ListFile, "stored listing"), File("x", "x"))
		h, err := b.Open(ctx, "base.mpq")
		require.NoError(t, err)

		require.NoError(t, h.ExtractSpecial(ctx, archive.ListFile, "list.txt"))
		data, err := b.FS().ReadFile("list.txt")
		require.NoError(t, err)
		assert.Equal(t, "stored listing", string(data))
	})

	t.Run("unknown special", func(t *testing.T) {
		b := newTestBackend()
		h, err := b.Open(ctx, "base.mpq")
		require.NoError(t, err)
		require.ErrorIs(t, h.ExtractSpecial(ctx, "(attributes)", "attr"), archive.ErrMemberNotFound)
	})
}

func TestHandle_Closed(t *testing.T) {
	ctx := context.Background()
	b := newTestBackend()

	h, err := b.Open(ctx, "base.mpq")
	require.NoError(t, err)

	require.NoError(t, h.Close())
	require.NoError(t, h.Close())
	assert.True(t, b.Handles()[0].Closed())

	assert.ErrorIs(t, h.LayerPatch(ctx, "patch.mpq", ""), archive.ErrClosed)
	_, _, err = h.FindFirst(ctx, "*")
	assert.ErrorIs(t, err, archive.ErrClosed)
	assert.ErrorIs(t, h.ExtractMember(ctx, `a\d.txt`, "x", true), archive.ErrClosed)
	assert.ErrorIs(t, h.ExtractSpecial(ctx, archive.ListFile, "x"), archive.ErrClosed)
}
