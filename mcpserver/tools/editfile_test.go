package tools

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildLineRangeEditReplacesWholeLines(t *testing.T) {
	lines := []string{"a", "b", "c", "d"}
	edit, removed := buildLineRangeEdit(lines, 2, 3, "replacement")
	assert.Equal(t, 2, removed)
	assert.Equal(t, uint32(1), edit.Range.Start.Line)
	assert.Equal(t, uint32(0), edit.Range.Start.Character)
	assert.Equal(t, uint32(2), edit.Range.End.Line)
	assert.Equal(t, uint32(1), edit.Range.End.Character)
	assert.Equal(t, "replacement", edit.NewText)
}

func TestBuildLineRangeEditClampsEndLine(t *testing.T) {
	lines := []string{"a", "b"}
	edit, removed := buildLineRangeEdit(lines, 1, 10, "x")
	assert.Equal(t, 2, removed)
	assert.Equal(t, uint32(1), edit.Range.End.Line)
}

func TestBuildLineRangeEditAppendPastEOF(t *testing.T) {
	lines := []string{"a", "b"}
	edit, removed := buildLineRangeEdit(lines, 5, 5, "new line")
	assert.Equal(t, 0, removed)
	assert.Equal(t, uint32(1), edit.Range.Start.Line)
	assert.Equal(t, edit.Range.Start, edit.Range.End)
	assert.Equal(t, "\nnew line", edit.NewText)
}

func TestIntFieldHandlesFloatAndInt(t *testing.T) {
	assert.Equal(t, 5, intField(map[string]any{"x": float64(5)}, "x"))
	assert.Equal(t, 7, intField(map[string]any{"x": 7}, "x"))
	assert.Equal(t, 0, intField(map[string]any{}, "x"))
}
