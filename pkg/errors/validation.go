package errors

import (
	"slices"
	"strings"
	"unicode"
)

// maxNameLength bounds graph names read from collection files.
const maxNameLength = 256

// ValidateGraphName validates the optional name of a graph in a collection.
// Empty names are allowed (graphs are then referred to by index).
//
// The validation rules are intentionally conservative:
//   - Maximum length of 256 characters
//   - No control characters or null bytes
func ValidateGraphName(name string) error {
	if len(name) > maxNameLength {
		return New(ErrCodeInvalidGraph, "graph name too long (max %d characters)", maxNameLength)
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidGraph, "graph name contains invalid control characters")
		}
	}

	return nil
}

// ValidatePath validates a user supplied file path for reading or writing.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 4096 characters
//   - No null bytes or control characters
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidInput, "path cannot be empty")
	}

	const maxPathLength = 4096
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidInput, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "path contains invalid characters")
		}
	}

	return nil
}

// ValidateChoice checks that value is one of valid, returning an error with
// the given code otherwise. Field names the option in the message.
func ValidateChoice(code Code, field, value string, valid ...string) error {
	if slices.Contains(valid, value) {
		return nil
	}
	return New(code, "invalid %s: %q (must be one of: %s)", field, value, strings.Join(valid, ", "))
}
