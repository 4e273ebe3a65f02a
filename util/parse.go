package util

import (
	"fmt"
	"strings"
)

// ParseSize parses a human-readable size string (e.g. "10MB", "512KB", "2GB")
// into bytes. Returns defaultBytes if the string cannot be parsed.
func ParseSize(s string, defaultBytes int64) int64 {
	s = strings.ToUpper(strings.TrimSpace(s))
	if s == "" {
		return defaultBytes
	}

	var multiplier int64 = 1
	switch {
	case strings.HasSuffix(s, "GB"):
		multiplier = 1024 * 1024 * 1024
		s = s[:len(s)-2]
	case strings.HasSuffix(s, "MB"):
		multiplier = 1024 * 1024
		s = s[:len(s)-2]
	case strings.HasSuffix(s, "KB"):
		multiplier = 1024
		s = s[:len(s)-2]
	}

	var val int64
	if _, err := fmt.Sscanf(s, "%d", &val); err == nil {
		return val * multiplier
	}
	return defaultBytes
}

// MaskSecret hides all but the last visibleSuffix characters of s for safe
// display in logs. Strings not longer than visibleSuffix are fully masked.
func MaskSecret(s string, visibleSuffix int) string {
	if len(s) <= visibleSuffix {
		return "****"
	}
	return "****" + s[len(s)-visibleSuffix:]
}
