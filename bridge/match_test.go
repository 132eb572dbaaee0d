package bridge

import (
	"testing"

	"rockerboo/mcp-lsp-bridge/lsptypes"

	"github.com/stretchr/testify/assert"
)

func TestDefinitionMatchesDottedQueryRequiresExactEquality(t *testing.T) {
	assert.True(t, DefinitionMatches("pkg.Foo", lsptypes.SymbolKindMethod, "pkg.Foo"))
	assert.False(t, DefinitionMatches("pkg.Foo", lsptypes.SymbolKindMethod, "Foo"))
}

func TestDefinitionMatchesMethodQualifiedNames(t *testing.T) {
	assert.True(t, DefinitionMatches("Foo", lsptypes.SymbolKindMethod, "Foo"))
	assert.True(t, DefinitionMatches("Foo", lsptypes.SymbolKindMethod, "Bar::Foo"))
	assert.True(t, DefinitionMatches("Foo", lsptypes.SymbolKindMethod, "Bar.Foo"))
	assert.False(t, DefinitionMatches("Foo", lsptypes.SymbolKindMethod, "FooBar"))
}

func TestDefinitionMatchesNonMethodRequiresExactEquality(t *testing.T) {
	assert.True(t, DefinitionMatches("Foo", 0, "Foo"))
	assert.False(t, DefinitionMatches("Foo", 0, "Bar.Foo"))
}

func TestReferenceMatchesDottedQueryAcceptsLastSegment(t *testing.T) {
	assert.True(t, ReferenceMatches("pkg.Foo", "pkg.Foo"))
	assert.True(t, ReferenceMatches("pkg.Foo", "Foo"))
	assert.False(t, ReferenceMatches("pkg.Foo", "Bar"))
}

func TestReferenceMatchesUndottedRequiresEquality(t *testing.T) {
	assert.True(t, ReferenceMatches("Foo", "Foo"))
	assert.False(t, ReferenceMatches("Foo", "pkg.Foo"))
}
