package tools

import (
	"os"
	"testing"

	"rockerboo/mcp-lsp-bridge/lsptypes"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContextLinesFromEnvDefaultsWhenUnset(t *testing.T) {
	require.NoError(t, os.Unsetenv("LSP_CONTEXT_LINES"))
	assert.Equal(t, defaultContextLines, contextLinesFromEnv())
}

func TestContextLinesFromEnvParsesOverride(t *testing.T) {
	t.Setenv("LSP_CONTEXT_LINES", "3")
	assert.Equal(t, 3, contextLinesFromEnv())
}

func TestContextLinesFromEnvFallsBackOnGarbage(t *testing.T) {
	t.Setenv("LSP_CONTEXT_LINES", "not-a-number")
	assert.Equal(t, defaultContextLines, contextLinesFromEnv())
}

func TestFormatDiagnosticIncludesSourceAndCode(t *testing.T) {
	d := lsptypes.Diagnostic{
		Range:    lsptypes.Range{Start: lsptypes.Position{Line: 4, Character: 2}, End: lsptypes.Position{Line: 4, Character: 10}},
		Severity: lsptypes.SeverityWarning,
		Source:   "vet",
		Code:     "unused",
		Message:  "declared and not used",
	}
	lines := []string{"a", "b", "c", "d", "e", "f", "g"}

	out := formatDiagnostic(1, d, lines, 1, true)
	assert.Contains(t, out, "[Warning] L5:C3")
	assert.Contains(t, out, "declared and not used")
	assert.Contains(t, out, "Source: vet")
	assert.Contains(t, out, "Code: unused")
}

func TestFormatDiagnosticDefaultsSeverityToError(t *testing.T) {
	d := lsptypes.Diagnostic{
		Range:   lsptypes.Range{Start: lsptypes.Position{Line: 0, Character: 0}, End: lsptypes.Position{Line: 0, Character: 1}},
		Message: "boom",
	}
	out := formatDiagnostic(1, d, []string{"x"}, 0, true)
	assert.Contains(t, out, "[Error]")
}
