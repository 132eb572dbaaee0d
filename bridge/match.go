package bridge

import (
	"strings"

	"rockerboo/mcp-lsp-bridge/lsptypes"
)

// DefinitionMatches implements the definition tool's match policy: exact
// equality, with a qualified-method-name exception when query has no dot
// and the candidate is a method.
func DefinitionMatches(query string, kind lsptypes.SymbolKind, name string) bool {
	if strings.Contains(query, ".") {
		return name == query
	}
	if kind == lsptypes.SymbolKindMethod {
		if name == query {
			return true
		}
		return strings.HasSuffix(name, "::"+query) || strings.HasSuffix(name, "."+query)
	}
	return name == query
}

// ReferenceMatches implements the references tool's more permissive match
// policy: a dotted query accepts either the full qualified name or its own
// last segment.
func ReferenceMatches(query, name string) bool {
	if strings.Contains(query, ".") {
		if name == query {
			return true
		}
		parts := strings.Split(query, ".")
		return name == parts[len(parts)-1]
	}
	return name == query
}
