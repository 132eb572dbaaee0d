// Package watcher watches a workspace directory for file-system changes,
// filters them against exclusion rules and the language server's dynamic
// watched-file registrations, and forwards the survivors to an LSP client
// as didOpen/didChange/didChangeWatchedFiles traffic.
package watcher

import "time"

// Options configures a Watcher. Every field carries a sensible default;
// construct via DefaultOptions and override individual fields rather than
// building an Options from scratch.
type Options struct {
	// DebounceTime is the quiet period per (path, changeType) key before a
	// change is forwarded to the server.
	DebounceTime time.Duration

	// ExcludedDirs are directory basenames never traversed during the
	// initial walk or the recursive fsnotify watch.
	ExcludedDirs []string

	// ExcludedFileExtensions are never opened, regardless of size.
	ExcludedFileExtensions []string

	// LargeBinaryExtensions are media/archive extensions never opened.
	LargeBinaryExtensions []string

	// MaxFileSize is the largest file, in bytes, the watcher will open.
	MaxFileSize int64
}

// DefaultOptions returns the watcher's default configuration.
func DefaultOptions() Options {
	return Options{
		DebounceTime: 100 * time.Millisecond,
		ExcludedDirs: []string{
			"node_modules", ".git", "dist", "build", "out", "target",
			".idea", ".vscode", "__pycache__", ".pytest_cache", ".mypy_cache", "vendor",
		},
		ExcludedFileExtensions: []string{
			".pyc", ".pyo", ".class", ".o", ".obj", ".exe", ".dll", ".so", ".dylib",
		},
		LargeBinaryExtensions: []string{
			".zip", ".tar", ".gz", ".7z", ".rar", ".png", ".jpg", ".jpeg", ".gif",
			".bmp", ".ico", ".mp3", ".mp4", ".mov", ".avi", ".pdf", ".iso",
		},
		MaxFileSize: 10 * 1024 * 1024,
	}
}

func (o Options) isExcludedDir(name string) bool {
	for _, d := range o.ExcludedDirs {
		if d == name {
			return true
		}
	}
	return false
}

func (o Options) isExcludedExt(ext string) bool {
	for _, e := range o.ExcludedFileExtensions {
		if e == ext {
			return true
		}
	}
	for _, e := range o.LargeBinaryExtensions {
		if e == ext {
			return true
		}
	}
	return false
}
