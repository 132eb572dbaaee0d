package lsp

import (
	"testing"

	"rockerboo/mcp-lsp-bridge/lsptypes"

	"github.com/stretchr/testify/assert"
)

func TestOpenFileRegistryLifecycle(t *testing.T) {
	r := newOpenFileRegistry()

	assert.False(t, r.isOpen("file:///a.go"))

	r.open("file:///a.go")
	assert.True(t, r.isOpen("file:///a.go"))

	v, ok := r.bumpVersion("file:///a.go")
	assert.True(t, ok)
	assert.Equal(t, int32(2), v)

	v, ok = r.bumpVersion("file:///a.go")
	assert.True(t, ok)
	assert.Equal(t, int32(3), v)

	r.close("file:///a.go")
	assert.False(t, r.isOpen("file:///a.go"))
}

func TestOpenFileRegistryBumpVersionRequiresOpen(t *testing.T) {
	r := newOpenFileRegistry()
	_, ok := r.bumpVersion("file:///never-opened.go")
	assert.False(t, ok)
}

func TestOpenFileRegistryOpenURIs(t *testing.T) {
	r := newOpenFileRegistry()
	r.open("file:///a.go")
	r.open("file:///b.go")

	uris := r.openURIs()
	assert.ElementsMatch(t, []string{"file:///a.go", "file:///b.go"}, uris)
}

func TestDiagnosticsStoreLastWriteWins(t *testing.T) {
	d := newDiagnosticsStore()
	assert.Nil(t, d.get("file:///a.go"))

	d.set("file:///a.go", nil)
	assert.Nil(t, d.get("file:///a.go"))

	d.set("file:///a.go", []lsptypes.Diagnostic{{Message: "first"}, {Message: "second"}})
	d.set("file:///a.go", []lsptypes.Diagnostic{{Message: "last"}})
	assert.Equal(t, []lsptypes.Diagnostic{{Message: "last"}}, d.get("file:///a.go"))
}

func TestWatcherRegistryAppendOnly(t *testing.T) {
	w := newWatcherRegistry()
	w.append(WatcherRegistration{GlobPattern: "**/*.go"})
	w.append(WatcherRegistration{GlobPattern: "**/*.ts"})

	snap := w.snapshot()
	assert.Len(t, snap, 2)

	// Mutating the snapshot must not affect the registry's own backing slice.
	snap[0].GlobPattern = "mutated"
	assert.Equal(t, "**/*.go", w.snapshot()[0].GlobPattern)
}

func TestLanguageIDForPath(t *testing.T) {
	cases := map[string]string{
		"main.go":      "go",
		"index.TSX":    "typescriptreact",
		"script.py":    "python",
		"README":       "plaintext",
		"no/ext/here.": "plaintext",
	}
	for path, want := range cases {
		assert.Equal(t, want, LanguageIDForPath(path), path)
	}
}

func TestErrMissingOpenFileMessage(t *testing.T) {
	err := &ErrMissingOpenFile{URI: "file:///a.go"}
	assert.Contains(t, err.Error(), "file:///a.go")
}
