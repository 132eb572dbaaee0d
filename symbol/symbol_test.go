package symbol

import (
	"testing"

	"rockerboo/mcp-lsp-bridge/lsptypes"

	"github.com/stretchr/testify/assert"
)

func TestFromSymbolInformation(t *testing.T) {
	si := lsptypes.SymbolInformation{
		Name: "Foo",
		Kind: lsptypes.SymbolKindMethod,
		Location: lsptypes.Location{
			URI:   "file:///a.go",
			Range: lsptypes.Range{Start: lsptypes.Position{Line: 4, Character: 1}, End: lsptypes.Position{Line: 4, Character: 4}},
		},
	}

	s := FromSymbolInformation(si)
	assert.Equal(t, "Foo", s.Name())
	assert.Equal(t, uint32(4), s.Location().Range.Start.Line)
}

func TestFromWorkspaceSymbolSynthesizesZeroRange(t *testing.T) {
	var ws lsptypes.WorkspaceSymbol
	ws.Name = "Bar"
	ws.Location.URI = "file:///b.go"
	// Location.Range left nil.

	s := FromWorkspaceSymbol(ws)
	loc := s.Location()
	assert.Equal(t, "file:///b.go", loc.URI)
	assert.Equal(t, uint32(0), loc.Range.Start.Line)
	assert.Equal(t, uint32(0), loc.Range.End.Line)
}

func TestFromWorkspaceSymbolUsesProvidedRange(t *testing.T) {
	var ws lsptypes.WorkspaceSymbol
	ws.Name = "Baz"
	ws.Location.URI = "file:///c.go"
	r := lsptypes.Range{Start: lsptypes.Position{Line: 10, Character: 2}, End: lsptypes.Position{Line: 10, Character: 5}}
	ws.Location.Range = &r

	s := FromWorkspaceSymbol(ws)
	assert.Equal(t, uint32(10), s.Location().Range.Start.Line)
}
