package watcher

import "strings"

// matchesPattern implements the three glob shapes the bridge supports.
// Anything else never matches; richer syntax ({a,b}, ?, character ranges)
// is intentionally not implemented.
func matchesPattern(pattern, relPath string) bool {
	relPath = strings.ReplaceAll(relPath, "\\", "/")

	switch {
	case pattern == "**/*":
		return true
	case strings.HasPrefix(pattern, "**/*."):
		ext := strings.TrimPrefix(pattern, "**/*")
		return strings.HasSuffix(relPath, ext)
	case strings.HasPrefix(pattern, "*.") && !strings.ContainsAny(pattern, "/\\"):
		ext := strings.TrimPrefix(pattern, "*")
		return strings.HasSuffix(relPath, ext)
	default:
		return false
	}
}
