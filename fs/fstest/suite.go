// Package fstest provides a conformance test suite for core.FS providers.
//
// Extraction relies on a handful of filesystem behaviors: Mkdir must report
// fs.ErrExist for an existing directory and fs.ErrNotExist for a missing
// parent, Create must truncate, and Stat must tell files from directories.
// The suite checks those contracts so every provider can be swapped in as an
// extraction destination.
//
// Example usage:
//
//	func TestMyProvider(t *testing.T) {
//	    fstest.TestSuite(t, func() core.FS {
//	        return myprovider.New()
//	    })
//	}
package fstest

import (
	"slices"
	"testing"

	"github.com/Kanma/MPQExtractor/fs/core"
)

// TestSuite runs all conformance tests against a filesystem.
// The newFS function should return a fresh, empty filesystem for each group.
func TestSuite(t *testing.T, newFS func() core.FS) {
	TestSuiteWithSkip(t, newFS, nil)
}

// TestSuiteWithSkip runs conformance tests, skipping the named groups
// (e.g. "ManageFS") or subtests (e.g. "WriteFS/MkdirAll").
func TestSuiteWithSkip(t *testing.T, newFS func() core.FS, skip []string) {
	groups := []struct {
		name string
		run  func(*testing.T, core.FS, func(string) bool)
	}{
		{"ReadFS", testReadFS},
		{"WriteFS", testWriteFS},
		{"ManageFS", testManageFS},
	}

	for _, g := range groups {
		t.Run(g.name, func(t *testing.T) {
			if slices.Contains(skip, g.name) {
				t.Skip("Skipped by provider configuration")
			}
			g.run(t, newFS(), func(sub string) bool {
				return slices.Contains(skip, g.name+"/"+sub)
			})
		})
	}
}

// run executes a subtest unless it has been skipped.
func run(t *testing.T, name string, skipped func(string) bool, fn func(*testing.T)) {
	t.Helper()
	t.Run(name, func(t *testing.T) {
		if skipped(name) {
			t.Skip("Skipped by provider configuration")
		}
		fn(t)
	})
}
