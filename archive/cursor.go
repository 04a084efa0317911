package archive

import "sync"

// SliceCursor is a Cursor over a precomputed list of matches.
type SliceCursor struct {
	mu      sync.Mutex
	matches []Match
	pos     int
	closed  bool
}

// NewSliceCursor returns a cursor yielding matches in order.
func NewSliceCursor(matches []Match) *SliceCursor {
	return &SliceCursor{matches: matches}
}

// Next returns the next match, or false once exhausted or closed.
func (c *SliceCursor) Next() (Match, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed || c.pos >= len(c.matches) {
		return Match{}, false
	}
	m := c.matches[c.pos]
	c.pos++
	return m, true
}

// Close releases the cursor. Subsequent calls to Next return false.
func (c *SliceCursor) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.closed = true
	c.matches = nil
	return nil
}

// Closed reports whether Close has been called.
func (c *SliceCursor) Closed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closed
}

var _ Cursor = (*SliceCursor)(nil)
