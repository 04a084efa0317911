// Package validate provides member path validation for archive extraction.
//
// Archive member names are attacker-controlled. Before a member name is used
// to build a destination path it is checked so that it cannot
// escape the destination root.
package validate

import (
	"strings"

	"github.com/Kanma/MPQExtractor/errors"
)

// MemberPathValidator validates archive member names before they become
// destination paths. Member names use backslash separators, but forward
// slashes are treated the same way since either one becomes a directory
// boundary on disk.
type MemberPathValidator struct {
	// AllowHiddenFiles permits segments starting with a dot.
	AllowHiddenFiles bool
}

// NewMemberPathValidator creates a validator with default settings.
// Hidden files are allowed: game archives routinely carry them.
func NewMemberPathValidator() *MemberPathValidator {
	return &MemberPathValidator{AllowHiddenFiles: true}
}

// ValidateMember returns nil if name is safe to materialize under a
// destination root, or a SECURITY_VIOLATION error describing the problem.
func (v *MemberPathValidator) ValidateMember(name string) error {
	if strings.TrimSpace(name) == "" {
		return errors.New(errors.CodeSecurityViolation, "empty member path")
	}

	if isAbsolutePath(name) {
		return violation("absolute path not allowed", name)
	}

	if hasEncodedTraversal(name) {
		return violation("encoded path traversal detected", name)
	}

	for _, seg := range segments(name) {
		if seg == ".." {
			return violation("path traversal detected", name)
		}
		if !v.AllowHiddenFiles && strings.HasPrefix(seg, ".") && seg != "." {
			return violation("hidden files not allowed", name)
		}
	}

	for _, r := range name {
		if r == 0 {
			return violation("NUL byte detected in path", name)
		}
		if r < 32 || r == 127 {
			return violation("control character detected in path", name)
		}
	}

	return nil
}

// IsMemberSafe is a convenience method that returns true if name is safe.
func (v *MemberPathValidator) IsMemberSafe(name string) bool {
	return v.ValidateMember(name) == nil
}

func violation(reason, name string) error {
	return errors.WithContext(
		errors.Newf(errors.CodeSecurityViolation, "%s: %q", reason, name),
		"member", name,
	)
}

// segments splits name on both separators.
func segments(name string) []string {
	return strings.FieldsFunc(name, func(r rune) bool {
		return r == '\\' || r == '/'
	})
}

// isAbsolutePath checks for rooted, drive letter and UNC paths.
func isAbsolutePath(path string) bool {
	if strings.HasPrefix(path, "/") || strings.HasPrefix(path, "\\") {
		return true
	}
	if len(path) >= 2 && path[1] == ':' {
		drive := path[0]
		if (drive >= 'A' && drive <= 'Z') || (drive >= 'a' && drive <= 'z') {
			return true
		}
	}
	return false
}

// hasEncodedTraversal checks for URL-encoded path traversal attempts.
func hasEncodedTraversal(path string) bool {
	lowerPath := strings.ToLower(path)

	encodedVariants := []string{
		"..%2f", "..%5c",
		"%2e%2e%2f", "%2e%2e%5c",
		"%2e%2e/", "%2e%2e\\",
		"..%c0%af", "..%c1%9c",
	}

	for _, variant := range encodedVariants {
		if strings.Contains(lowerPath, variant) {
			return true
		}
	}
	return false
}
