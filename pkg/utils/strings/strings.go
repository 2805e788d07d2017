// Package strings complements the standard strings package where URL
// paths are assembled.
package strings

import "strings"

// TrimPrefixAll removes prefix from s as often as it occurs.
func TrimPrefixAll(s, prefix string) string {
	if prefix == "" {
		return s
	}
	for strings.HasPrefix(s, prefix) {
		s = s[len(prefix):]
	}
	return s
}

// EnsureSuffix appends suffix to text unless it already ends with it.
func EnsureSuffix(text, suffix string) string {
	if strings.HasSuffix(text, suffix) {
		return text
	}
	return text + suffix
}
