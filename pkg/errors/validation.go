package errors

import (
	"regexp"
	"strings"
	"unicode"
)

// deckIDRegex matches valid deck library identifiers.
var deckIDRegex = regexp.MustCompile(`^[a-z0-9]([a-z0-9._-]*[a-z0-9])?$`)

// ValidateDeckID validates a deck library identifier.
// IDs are lowercase slugs used in URLs and storage keys, so the rules are
// intentionally conservative:
//   - No empty IDs
//   - Maximum length of 128 characters
//   - Lowercase letters, digits, dots, dashes and underscores only
//   - No leading or trailing separators
func ValidateDeckID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidDeckID, "deck id cannot be empty")
	}

	if len(id) > 128 {
		return New(ErrCodeInvalidDeckID, "deck id too long (max 128 characters)")
	}

	if !deckIDRegex.MatchString(id) {
		return New(ErrCodeInvalidDeckID, "deck id must be a lowercase slug: %q", id)
	}

	return nil
}

// ValidateAssetPath validates an asset path referenced from a deck.
// It prevents path traversal out of the deck's base directory.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
//   - No absolute paths (must be relative)
//   - No path traversal sequences (..)
//   - No backslashes (Windows-style paths)
func ValidateAssetPath(path string) error {
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

	// Must not be absolute path
	if strings.HasPrefix(path, "/") {
		return New(ErrCodeInvalidPath, "path must be relative (cannot start with /)")
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

// ValidateURL validates a URL string for safety.
// It ensures the URL has a safe scheme (http or https).
func ValidateURL(rawURL string) error {
	if rawURL == "" {
		return New(ErrCodeInvalidInput, "URL cannot be empty")
	}

	// Simple scheme validation without full URL parsing
	if !strings.HasPrefix(rawURL, "http://") && !strings.HasPrefix(rawURL, "https://") {
		return New(ErrCodeInvalidInput, "URL must use http or https scheme")
	}

	return nil
}
