package utils

import "strings"

// NormalizeLanguage canonicalizes an editor language name for lookups.
func NormalizeLanguage(language string) string {
	return strings.ToLower(strings.TrimSpace(language))
}
