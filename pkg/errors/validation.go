package errors

import (
	"strings"
	"unicode"
)

// ValidateDocumentName validates a layout document name for safety.
//
// The validation rules are intentionally conservative:
//   - No empty names
//   - No control characters
//   - Maximum length of 256 characters
func ValidateDocumentName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidDocument, "document name cannot be empty")
	}

	const maxNameLength = 256
	if len(name) > maxNameLength {
		return New(ErrCodeInvalidDocument, "document name too long (max %d characters)", maxNameLength)
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidDocument, "document name contains invalid characters")
		}
	}

	return nil
}

// ValidateBlockKey validates a block key used to identify text blocks in a
// layout document. Keys end up in cache keys and plan signatures, so they
// must be stable printable identifiers.
func ValidateBlockKey(key string) error {
	if key == "" {
		return New(ErrCodeInvalidDocument, "block key cannot be empty")
	}

	const maxKeyLength = 128
	if len(key) > maxKeyLength {
		return New(ErrCodeInvalidDocument, "block key too long (max %d characters)", maxKeyLength)
	}

	for _, r := range key {
		if r == '\x00' || unicode.IsControl(r) || unicode.IsSpace(r) {
			return New(ErrCodeInvalidDocument, "block key contains invalid characters: %q", key)
		}
	}

	return nil
}

// ValidateOutputPath validates a relative output path for artifacts.
// It prevents path traversal and ensures reasonable path length.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
//   - No path traversal sequences (..)
//   - No backslashes (Windows-style paths)
func ValidateOutputPath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	// Check for null bytes and control characters
	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	// Check for path traversal
	if strings.Contains(path, "..") {
		return New(ErrCodeInvalidPath, "path cannot contain path traversal sequences (..)")
	}

	// No backslashes (potential Windows path injection)
	if strings.Contains(path, "\\") {
		return New(ErrCodeInvalidPath, "path cannot contain backslashes")
	}

	return nil
}
