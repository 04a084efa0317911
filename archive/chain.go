package archive

import (
	"strings"
)

// Index is the member listing of a single archive, in archive order.
// Lookups ignore case; when two names differ only in case the first wins.
type Index struct {
	names []string
	byKey map[string]string
}

// NewIndex builds an Index from member names. Empty names and names ending
// in a separator (directory entries) are skipped.
func NewIndex(names []string) *Index {
	idx := &Index{byKey: make(map[string]string, len(names))}
	for _, name := range names {
		if name == "" || strings.HasSuffix(name, Separator) {
			continue
		}
		key := strings.ToLower(name)
		if _, ok := idx.byKey[key]; ok {
			continue
		}
		idx.byKey[key] = name
		idx.names = append(idx.names, name)
	}
	return idx
}

// Names returns the member names in archive order.
func (i *Index) Names() []string {
	out := make([]string, len(i.names))
	copy(out, i.names)
	return out
}

// Len returns the number of members.
func (i *Index) Len() int {
	return len(i.names)
}

// Lookup returns the stored spelling of name.
func (i *Index) Lookup(name string) (string, bool) {
	stored, ok := i.byKey[strings.ToLower(name)]
	return stored, ok
}

// Layer is one archive in a Chain.
type Layer struct {
	// Path is the archive's location as given to Open or LayerPatch.
	Path string

	// Prefix namespaces the layer's members. Always empty for the base.
	Prefix string

	Index *Index
}

// Resolution identifies where a member was found.
type Resolution struct {
	// Layer is 0 for the base archive and i+1 for the i-th patch.
	Layer int

	// Name is the member's stored name inside that layer's archive.
	Name string
}

// Chain is a base archive with an ordered stack of patches on top.
type Chain struct {
	layers []Layer
}

// NewChain returns a chain holding only the base archive.
func NewChain(path string, base *Index) *Chain {
	return &Chain{layers: []Layer{{Path: path, Index: base}}}
}

// Push layers a patch on top of the chain.
func (c *Chain) Push(path, prefix string, idx *Index) {
	c.layers = append(c.layers, Layer{
		Path:   path,
		Prefix: strings.TrimRight(prefix, Separator),
		Index:  idx,
	})
}

// Base returns the base archive layer.
func (c *Chain) Base() Layer {
	return c.layers[0]
}

// Patches returns the layered patches in the order they were pushed.
func (c *Chain) Patches() []Layer {
	out := make([]Layer, len(c.layers)-1)
	copy(out, c.layers[1:])
	return out
}

// Layer returns the layer at position n as numbered by Resolution.
func (c *Chain) Layer(n int) Layer {
	return c.layers[n]
}

// Resolve finds the layer that supplies member. With patched set the patches
// are searched newest first, each under its prefix, before the base;
// otherwise only the base is consulted.
func (c *Chain) Resolve(member string, patched bool) (Resolution, error) {
	if patched {
		for n := len(c.layers) - 1; n > 0; n-- {
			l := c.layers[n]
			if name, ok := l.Index.Lookup(JoinPrefix(l.Prefix, member)); ok {
				return Resolution{Layer: n, Name: name}, nil
			}
		}
	}
	if name, ok := c.layers[0].Index.Lookup(member); ok {
		return Resolution{Layer: 0, Name: name}, nil
	}
	return Resolution{}, ErrMemberNotFound
}

// Members returns the names visible through the chain: base members in
// archive order, then members only patches provide, with each patch's prefix
// stripped. Patch members outside their prefix are not visible.
func (c *Chain) Members() []string {
	seen := make(map[string]struct{})
	var out []string

	add := func(name string) {
		key := strings.ToLower(name)
		if _, ok := seen[key]; ok {
			return
		}
		seen[key] = struct{}{}
		out = append(out, name)
	}

	for _, name := range c.layers[0].Index.names {
		add(name)
	}
	for _, l := range c.layers[1:] {
		for _, name := range l.Index.names {
			if stripped, ok := stripPrefix(l.Prefix, name); ok {
				add(stripped)
			}
		}
	}
	return out
}

// Find returns the visible members matching pattern, in Members order.
// It returns ErrNoMatch when nothing matches.
func (c *Chain) Find(pattern string) ([]Match, error) {
	m, err := CompileMatcher(pattern)
	if err != nil {
		return nil, err
	}

	var matches []Match
	for _, name := range c.Members() {
		if m.Match(name) {
			matches = append(matches, NewMatch(name))
		}
	}
	if len(matches) == 0 {
		return nil, ErrNoMatch
	}
	return matches, nil
}

// FindFirst runs Find and splits the result into the first match and a
// cursor over the rest.
func (c *Chain) FindFirst(pattern string) (Match, Cursor, error) {
	matches, err := c.Find(pattern)
	if err != nil {
		return Match{}, nil, err
	}
	return matches[0], NewSliceCursor(matches[1:]), nil
}

func stripPrefix(prefix, name string) (string, bool) {
	if prefix == "" {
		return name, true
	}
	p := prefix + Separator
	if len(name) <= len(p) || !strings.EqualFold(name[:len(p)], p) {
		return "", false
	}
	return name[len(p):], true
}

// SynthesizeListFile renders idx as a list file: one member name per line,
// CRLF terminated, in archive order.
func SynthesizeListFile(idx *Index) string {
	var b strings.Builder
	for _, name := range idx.names {
		b.WriteString(name)
		b.WriteString("\r\n")
	}
	return b.String()
}
