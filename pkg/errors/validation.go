package errors

import (
	"path/filepath"
	"strings"
	"unicode"
)

// ValidateFigurePath validates a figure document path for safety.
// It rejects paths that could be used for traversal or injection when the
// path arrives from an untrusted surface (HTTP request, remote config).
//
// The validation rules are intentionally conservative:
//   - No empty paths
//   - No control characters or null bytes
//   - No parent-directory traversal
//   - Maximum length of 1024 characters
func ValidateFigurePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "figure path cannot be empty")
	}

	if len(path) > 1024 {
		return New(ErrCodeInvalidPath, "figure path too long (max 1024 characters)")
	}

	for _, r := range path {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "figure path contains invalid control characters")
		}
	}

	if strings.Contains(path, "\x00") {
		return New(ErrCodeInvalidPath, "figure path contains null bytes")
	}

	for _, part := range strings.Split(filepath.ToSlash(path), "/") {
		if part == ".." {
			return New(ErrCodeInvalidPath, "figure path contains parent-directory traversal")
		}
	}

	return nil
}

// ValidateOutputBase validates the base name used for output artifacts.
// The base must be a simple name without path separators; the output
// directory is supplied separately.
func ValidateOutputBase(base string) error {
	if base == "" {
		return New(ErrCodeInvalidPath, "output base cannot be empty")
	}

	if strings.ContainsAny(base, "/\\") {
		return New(ErrCodeInvalidPath, "output base must not contain path separators: %q", base)
	}

	if base == "." || base == ".." {
		return New(ErrCodeInvalidPath, "output base must be a file name, got %q", base)
	}

	for _, r := range base {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "output base contains invalid control characters")
		}
	}

	return nil
}
