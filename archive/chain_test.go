package archive

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestChain() *Chain {
	c := NewChain("base.mpq", NewIndex([]string{
		`a\b\c.txt`,
		`a\d.txt`,
		`Interface\Logo.blp`,
	}))
	c.Push("p1.mpq", "base", NewIndex([]string{
		`base\a\d.txt`,
		`base\new\e.txt`,
		`other\ignored.txt`,
	}))
	c.Push("p2.mpq", "", NewIndex([]string{
		`A\D.TXT`,
		`z.txt`,
	}))
	return c
}

func TestNewIndex(t *testing.T) {
	idx := NewIndex([]string{`a\b.txt`, "", `dir\`, `A\B.TXT`, "c.txt"})

	assert.Equal(t, []string{`a\b.txt`, "c.txt"}, idx.Names())
	assert.Equal(t, 2, idx.Len())

	stored, ok := idx.Lookup(`A\b.TxT`)
	require.True(t, ok)
	assert.Equal(t, `a\b.txt`, stored)

	_, ok = idx.Lookup("missing")
	assert.False(t, ok)
}

func TestChain_Layers(t *testing.T) {
	c := newTestChain()

	assert.Equal(t, "base.mpq", c.Base().Path)
	patches := c.Patches()
	require.Len(t, patches, 2)
	assert.Equal(t, "p1.mpq", patches[0].Path)
	assert.Equal(t, "base", patches[0].Prefix)
	assert.Equal(t, "p2.mpq", patches[1].Path)
	assert.Equal(t, "", patches[1].Prefix)
	assert.Equal(t, "p2.mpq", c.Layer(2).Path)
}

func TestChain_Resolve(t *testing.T) {
	c := newTestChain()

	tests := []struct {
		name      string
		member    string
		patched   bool
		wantLayer int
		wantName  string
		wantErr   error
	}{
		{"base only member", `a\b\c.txt`, true, 0, `a\b\c.txt`, nil},
		{"newest patch wins", `a\d.txt`, true, 2, `A\D.TXT`, nil},
		{"unpatched view", `a\d.txt`, false, 0, `a\d.txt`, nil},
		{"prefixed patch member", `new\e.txt`, true, 1, `base\new\e.txt`, nil},
		{"patch only member unpatched", `new\e.txt`, false, 0, "", ErrMemberNotFound},
		{"outside prefix", `other\ignored.txt`, true, 0, "", ErrMemberNotFound},
		{"case insensitive", `INTERFACE\logo.BLP`, true, 0, `Interface\Logo.blp`, nil},
		{"missing", "nope.txt", true, 0, "", ErrMemberNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := c.Resolve(tt.member, tt.patched)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantLayer, res.Layer)
			assert.Equal(t, tt.wantName, res.Name)
		})
	}
}

func TestChain_Members(t *testing.T) {
	c := newTestChain()

	assert.Equal(t, []string{
		`a\b\c.txt`,
		`a\d.txt`,
		`Interface\Logo.blp`,
		`new\e.txt`,
		"z.txt",
	}, c.Members())
}

func TestChain_Find(t *testing.T) {
	c := newTestChain()

	matches, err := c.Find("*.txt")
	require.NoError(t, err)
	var names []string
	for _, m := range matches {
		names = append(names, m.FullPath)
	}
	assert.Equal(t, []string{`a\b\c.txt`, `a\d.txt`, `new\e.txt`, "z.txt"}, names)
	assert.Equal(t, "e.txt", matches[2].PlainName)

	_, err = c.Find("*.mp3")
	require.ErrorIs(t, err, ErrNoMatch)
}

func TestChain_FindFirst(t *testing.T) {
	c := newTestChain()

	first, cursor, err := c.FindFirst(`a\*`)
	require.NoError(t, err)
	assert.Equal(t, `a\b\c.txt`, first.FullPath)

	next, ok := cursor.Next()
	require.True(t, ok)
	assert.Equal(t, `a\d.txt`, next.FullPath)

	_, ok = cursor.Next()
	assert.False(t, ok)
	require.NoError(t, cursor.Close())

	_, cursor, err = c.FindFirst("nothing*")
	require.ErrorIs(t, err, ErrNoMatch)
	assert.Nil(t, cursor)
}
