package errors

import (
	"path/filepath"
	"strings"
	"unicode"
)

// MaxNameLength bounds entity names. Longer names cannot be fitted under a
// seat at the minimum font size anyway.
const MaxNameLength = 128

// ValidateEntityName validates a display name for a placed entity.
//
// Names must be non-blank after trimming, at most MaxNameLength runes and
// free of control characters (labels are drawn on a single line).
func ValidateEntityName(name string) error {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return New(ErrCodeInvalidName, "name cannot be empty")
	}
	if len([]rune(trimmed)) > MaxNameLength {
		return New(ErrCodeInvalidName, "name too long (max %d characters)", MaxNameLength)
	}
	for _, r := range trimmed {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidName, "name contains control characters")
		}
	}
	return nil
}

// ValidateAssetName validates a file name read from an asset container.
// It rejects anything that is not a plain base name so that extraction can
// never write outside the target directory.
//
// Validation rules:
//   - Name cannot be empty
//   - No null bytes or control characters
//   - No path separators (forward or backslash)
//   - No parent-directory references
func ValidateAssetName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidPath, "asset name cannot be empty")
	}
	for _, r := range name {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "asset name contains invalid characters")
		}
	}
	if strings.ContainsAny(name, `/\`) {
		return New(ErrCodeInvalidPath, "asset name cannot contain path separators: %q", name)
	}
	if name == "." || name == ".." || filepath.Base(name) != name {
		return New(ErrCodeInvalidPath, "asset name must be a plain file name: %q", name)
	}
	return nil
}
