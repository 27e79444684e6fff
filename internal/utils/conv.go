package utils

import (
	"strconv"
	"strings"
)

// StringToInt converts string to int, returns 0 if error
func StringToInt(s string) int {
	i, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return i
}

// NormalizeTag lowercases and trims a tag name so "Rust" and "rust"
// resolve to the same tag.
func NormalizeTag(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
