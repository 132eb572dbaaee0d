// Package symbol provides a uniform view over the two result shapes
// workspace/symbol can return: the older SymbolInformation (always a full
// location) and the newer WorkspaceSymbol (sometimes URI-only).
package symbol

import (
	"rockerboo/mcp-lsp-bridge/lsptypes"
)

// Symbol is the uniform view tools operate on.
type Symbol interface {
	Name() string
	Kind() lsptypes.SymbolKind
	ContainerName() string
	Location() lsptypes.Location
}

// FromSymbolInformation wraps the older workspace/symbol shape.
func FromSymbolInformation(s lsptypes.SymbolInformation) Symbol {
	return symbolInformation{s}
}

// FromWorkspaceSymbol wraps the newer workspace/symbol shape, synthesizing
// a zero-length range at line 0 when the server omitted one.
func FromWorkspaceSymbol(s lsptypes.WorkspaceSymbol) Symbol {
	return workspaceSymbol{s}
}

type symbolInformation struct {
	s lsptypes.SymbolInformation
}

func (w symbolInformation) Name() string                  { return w.s.Name }
func (w symbolInformation) Kind() lsptypes.SymbolKind      { return w.s.Kind }
func (w symbolInformation) ContainerName() string          { return w.s.ContainerName }
func (w symbolInformation) Location() lsptypes.Location     { return w.s.Location }

type workspaceSymbol struct {
	s lsptypes.WorkspaceSymbol
}

func (w workspaceSymbol) Name() string             { return w.s.Name }
func (w workspaceSymbol) Kind() lsptypes.SymbolKind { return w.s.Kind }
func (w workspaceSymbol) ContainerName() string     { return w.s.ContainerName }

func (w workspaceSymbol) Location() lsptypes.Location {
	if w.s.Location.Range != nil {
		return lsptypes.Location{URI: w.s.Location.URI, Range: *w.s.Location.Range}
	}
	return lsptypes.Location{
		URI: w.s.Location.URI,
		Range: lsptypes.Range{
			Start: lsptypes.Position{Line: 0, Character: 0},
			End:   lsptypes.Position{Line: 0, Character: 0},
		},
	}
}
