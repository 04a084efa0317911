package archive

import (
	"fmt"
	"strings"

	"github.com/gobwas/glob"
)

// Matcher reports whether a member name matches a compiled pattern.
type Matcher struct {
	pattern string
	g       glob.Glob
}

// CompileMatcher compiles a member search pattern.
//
// '*' matches any run of characters, separators included, and '?' matches
// exactly one character. Every other character is literal, so brackets and
// braces in member names need no escaping. Matching is case-insensitive.
func CompileMatcher(pattern string) (*Matcher, error) {
	var b strings.Builder
	for _, r := range strings.ToLower(pattern) {
		switch r {
		case '*', '?':
			b.WriteRune(r)
		default:
			b.WriteString(glob.QuoteMeta(string(r)))
		}
	}

	g, err := glob.Compile(b.String())
	if err != nil {
		return nil, fmt.Errorf("invalid search pattern %q: %w", pattern, err)
	}
	return &Matcher{pattern: pattern, g: g}, nil
}

// Match reports whether name matches.
func (m *Matcher) Match(name string) bool {
	return m.g.Match(strings.ToLower(name))
}

// String returns the pattern the matcher was compiled from.
func (m *Matcher) String() string {
	return m.pattern
}

// IsWildcard reports whether pattern contains a '*' or '?'.
func IsWildcard(pattern string) bool {
	return strings.ContainsAny(pattern, "*?")
}
