// Package uri converts between OS file paths and file:// URIs, the
// bidirectional conversion the LSP wire protocol requires for every
// TextDocumentIdentifier.
package uri

import (
	"net/url"
	"path/filepath"
	"runtime"
	"strings"
)

// FromPath converts a local file path to a file:// URI. Relative paths are
// resolved to absolute first.
func FromPath(path string) string {
	if strings.HasPrefix(path, "file://") {
		return path
	}

	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}

	path = filepath.ToSlash(path)

	if runtime.GOOS == "windows" {
		// file:///C:/Users/... — three slashes, drive letter unescaped.
		if len(path) >= 2 && path[1] == ':' {
			return "file:///" + path
		}
	}

	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}

	return "file://" + (&url.URL{Path: path}).EscapedPath()
}

// ToPath converts a file:// URI back to a local OS file path.
func ToPath(uri string) string {
	if !strings.HasPrefix(uri, "file://") {
		return uri
	}

	rest := strings.TrimPrefix(uri, "file://")

	if u, err := url.Parse(uri); err == nil && u.Path != "" {
		rest = u.Path
	}

	if runtime.GOOS == "windows" {
		rest = strings.TrimPrefix(rest, "/")
		rest = filepath.FromSlash(rest)
		return rest
	}

	return rest
}

// IsFileURI reports whether s already carries the file:// scheme.
func IsFileURI(s string) bool {
	return strings.HasPrefix(s, "file://")
}
