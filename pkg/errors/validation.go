package errors

import (
	"path/filepath"
	"slices"
	"strings"
	"unicode"
)

// RecordExtensions lists the file extensions accepted for record files.
var RecordExtensions = []string{".yaml", ".yml", ".json"}

// ValidateRecordPath validates the path of a record or pair file.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 4096 characters
//   - No null bytes or control characters
//   - Extension must be one of [RecordExtensions]
func ValidateRecordPath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 4096
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	ext := strings.ToLower(filepath.Ext(path))
	if !slices.Contains(RecordExtensions, ext) {
		return New(ErrCodeInvalidFormat, "unsupported file extension %q (want one of %s)",
			ext, strings.Join(RecordExtensions, ", "))
	}

	return nil
}

// ValidateFormat checks that format is one of the allowed values.
func ValidateFormat(format string, allowed ...string) error {
	if slices.Contains(allowed, format) {
		return nil
	}
	return New(ErrCodeInvalidFormat, "unsupported format %q (want one of %s)",
		format, strings.Join(allowed, ", "))
}
