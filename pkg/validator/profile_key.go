package validator

import (
	"strings"

	"github.com/yi-nology/envprofile/pkg/profile"
)

// SanitizeProfileKey trims whitespace and validates the profile key.
// Returns the sanitized key and a boolean indicating if it's valid.
func SanitizeProfileKey(key string) (string, bool) {
	trimmed := strings.TrimSpace(key)
	if trimmed == "" {
		return "", false
	}
	return trimmed, profile.ValidName(trimmed)
}

// SanitizeFileName accepts a published file name of the form
// "environment.<ext>" and rejects anything that could address another object.
func SanitizeFileName(name string) (string, bool) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" || strings.ContainsAny(trimmed, `/\`) || strings.HasPrefix(trimmed, ".") {
		return "", false
	}
	return trimmed, strings.HasPrefix(trimmed, "environment.")
}
