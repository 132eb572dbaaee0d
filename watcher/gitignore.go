package watcher

import (
	"path/filepath"

	gitignore "github.com/sabhiram/go-gitignore"
)

// defaultIgnorePatterns apply even when the workspace has no .gitignore.
var defaultIgnorePatterns = []string{
	".git",
	"node_modules",
	".DS_Store",
	"*.swp",
	"*.swo",
	"*~",
}

// ignoreMatcher combines a parsed .gitignore with the watcher's always-on
// default exclusions.
type ignoreMatcher struct {
	gi *gitignore.GitIgnore
}

// loadIgnoreMatcher reads root/.gitignore if present. A missing or
// unreadable .gitignore is not an error: the default exclusions still
// apply.
func loadIgnoreMatcher(root string) *ignoreMatcher {
	m := &ignoreMatcher{}
	if gi, err := gitignore.CompileIgnoreFile(filepath.Join(root, ".gitignore")); err == nil {
		m.gi = gi
	}
	return m
}

// matches reports whether relPath (workspace-relative, slash-separated)
// should be excluded.
func (m *ignoreMatcher) matches(relPath string) bool {
	base := filepath.Base(relPath)
	for _, p := range defaultIgnorePatterns {
		if matched, _ := filepath.Match(p, base); matched {
			return true
		}
	}
	if m.gi != nil {
		return m.gi.MatchesPath(relPath)
	}
	return false
}
