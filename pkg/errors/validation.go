package errors

import (
	"slices"
	"strings"
	"unicode"
)

// Formats lists the output formats the renderer produces.
var Formats = []string{"svg", "png", "pdf", "json"}

const (
	maxPathLength       = 4096
	maxIdentifierLength = 256
)

// ValidatePath checks a user-supplied file path. Absolute and relative paths
// are both accepted; empty paths, control characters and null bytes are not.
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}
	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}
	return nil
}

// ValidateRelativePath is ValidatePath for paths that must stay inside a
// base directory, such as cache entries.
func ValidateRelativePath(path string) error {
	if err := ValidatePath(path); err != nil {
		return err
	}
	if strings.HasPrefix(path, "/") {
		return New(ErrCodeInvalidPath, "path must be relative (cannot start with /)")
	}
	if strings.Contains(path, "..") {
		return New(ErrCodeInvalidPath, "path cannot contain path traversal sequences (..)")
	}
	if strings.Contains(path, "\\") {
		return New(ErrCodeInvalidPath, "path cannot contain backslashes")
	}
	return nil
}

// ValidateFormat checks an output format name (case-insensitive).
func ValidateFormat(format string) error {
	if !slices.Contains(Formats, strings.ToLower(format)) {
		return New(ErrCodeInvalidFormat, "unsupported format %q (want one of %s)", format, strings.Join(Formats, ", "))
	}
	return nil
}

// ValidateIdentifier checks a node, class or package name: non-empty,
// bounded length, no control characters.
func ValidateIdentifier(kind, name string) error {
	if strings.TrimSpace(name) == "" {
		return New(ErrCodeInvalidInput, "%s name cannot be empty", kind)
	}
	if len(name) > maxIdentifierLength {
		return New(ErrCodeInvalidInput, "%s name too long (max %d characters)", kind, maxIdentifierLength)
	}
	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "%s name %q contains control characters", kind, name)
		}
	}
	return nil
}
