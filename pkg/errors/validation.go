package errors

import (
	"strings"
	"unicode"
)

// ValidateQuestID validates a quest identifier received from a user or a
// request path.
//
// The rules are conservative:
//   - No empty ids
//   - Maximum length of 128 characters
//   - No whitespace or control characters
//   - No path separators
func ValidateQuestID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidQuestID, "quest id cannot be empty")
	}

	if len(id) > 128 {
		return New(ErrCodeInvalidQuestID, "quest id too long (max 128 characters)")
	}

	for _, r := range id {
		if unicode.IsControl(r) || unicode.IsSpace(r) {
			return New(ErrCodeInvalidQuestID, "quest id contains invalid characters: %q", id)
		}
	}

	if strings.ContainsAny(id, "/\\") {
		return New(ErrCodeInvalidQuestID, "quest id cannot contain path separators: %q", id)
	}

	return nil
}

// ValidatePath validates a local file path supplied on the command line or
// in the config file.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 4096 characters
//   - No null bytes or control characters
func ValidatePath(path string) error {
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

	return nil
}

// ValidateFormat checks that format is one of valid.
func ValidateFormat(format string, valid []string) error {
	for _, v := range valid {
		if format == v {
			return nil
		}
	}
	return New(ErrCodeInvalidFormat, "invalid format: %q (must be one of: %s)", format, strings.Join(valid, ", "))
}
