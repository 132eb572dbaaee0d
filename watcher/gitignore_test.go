package watcher

import (
	"os"
	"path/filepath"
	"testing"
)

func TestIgnoreMatcherDefaultPatterns(t *testing.T) {
	dir := t.TempDir()
	m := loadIgnoreMatcher(dir)

	if !m.matches(".git") {
		t.Error("expected .git to be ignored by default")
	}
	if !m.matches("vendor/.DS_Store") {
		t.Error("expected .DS_Store to be ignored by default")
	}
	if m.matches("main.go") {
		t.Error("did not expect main.go to be ignored")
	}
}

func TestIgnoreMatcherReadsGitignore(t *testing.T) {
	dir := t.TempDir()
	require := func(err error) {
		if err != nil {
			t.Fatal(err)
		}
	}
	require(os.WriteFile(filepath.Join(dir, ".gitignore"), []byte("*.log\nbuild/\n"), 0o644))

	m := loadIgnoreMatcher(dir)

	if !m.matches("debug.log") {
		t.Error("expected debug.log to match *.log from .gitignore")
	}
	if m.matches("main.go") {
		t.Error("did not expect main.go to be ignored")
	}
}

func TestLoadIgnoreMatcherToleratesMissingGitignore(t *testing.T) {
	dir := t.TempDir()
	m := loadIgnoreMatcher(dir)
	if m.matches("main.go") {
		t.Error("missing .gitignore should not cause false positives")
	}
}
