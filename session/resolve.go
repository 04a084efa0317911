package session

import (
	"context"
	"time"

	"github.com/Kanma/MPQExtractor/archive"
	"github.com/Kanma/MPQExtractor/errors"
	"github.com/Kanma/MPQExtractor/internal/logging"
)

// SearchResult is one member a pattern resolved to.
type SearchResult struct {
	// FileName is the final segment of FullPath.
	FileName string `yaml:"file_name"`

	// FullPath is the backslash separated member path.
	FullPath string `yaml:"full_path"`
}

// IsGlob reports whether pattern selects glob mode.
func IsGlob(pattern string) bool {
	return archive.IsWildcard(pattern)
}

// Resolve turns pattern into an ordered list of members.
//
// A pattern without '*' or '?' resolves to itself without consulting the
// archive; a missing member only surfaces when it is extracted. A wildcard
// pattern is searched in h and every match is printed as it is found. No
// match yields an empty result and a nil error.
func (s *Session) Resolve(ctx context.Context, h archive.Handle, pattern string) ([]SearchResult, error) {
	if !IsGlob(pattern) {
		return []SearchResult{{
			FileName: archive.PlainName(pattern),
			FullPath: pattern,
		}}, nil
	}

	s.printf("\nSearching for '%s'...\n", pattern)

	start := time.Now()
	results, err := s.search(ctx, h, pattern)
	logging.LogOperation(ctx, s.logger, logging.OpSearch, time.Since(start), err,
		"pattern", pattern, "matches", len(results))

	if len(results) == 0 {
		s.printf("No file found!\n")
	}
	return results, err
}

func (s *Session) search(ctx context.Context, h archive.Handle, pattern string) ([]SearchResult, error) {
	first, cursor, err := h.FindFirst(ctx, pattern)
	if errors.Is(err, archive.ErrNoMatch) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.WrapWithContext(err, errors.CodeNoMatch, "search failed",
			map[string]interface{}{"pattern": pattern})
	}
	defer func() { _ = cursor.Close() }()

	s.printf("\nFound files:\n")

	var results []SearchResult
	for m, ok := first, true; ok; m, ok = cursor.Next() {
		s.printf("  - %s\n", m.FullPath)
		results = append(results, SearchResult{FileName: m.PlainName, FullPath: m.FullPath})
	}
	return results, nil
}
