package tools

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"rockerboo/mcp-lsp-bridge/lsptypes"
	"rockerboo/mcp-lsp-bridge/uri"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderReferenceBlockHeaderAndPositions(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.go")
	lines := make([]string, 20)
	for i := range lines {
		lines[i] = "x"
	}
	require.NoError(t, os.WriteFile(path, []byte(strings.Join(lines, "\n")), 0o644))

	docURI := uri.FromPath(path)
	refs := []lsptypes.Location{
		{URI: docURI, Range: lsptypes.Range{Start: lsptypes.Position{Line: 3, Character: 1}, End: lsptypes.Position{Line: 3, Character: 4}}},
		{URI: docURI, Range: lsptypes.Range{Start: lsptypes.Position{Line: 12, Character: 0}, End: lsptypes.Position{Line: 12, Character: 3}}},
	}

	block, err := renderReferenceBlock(docURI, refs, 2)
	require.NoError(t, err)
	assert.Contains(t, block, "References in File: 2")
	assert.Contains(t, block, "L4:C2")
	assert.Contains(t, block, "L13:C1")
	assert.Contains(t, block, "\n...\n")
}
