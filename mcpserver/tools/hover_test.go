package tools

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatHoverContentsPlainString(t *testing.T) {
	assert.Equal(t, "a documented function", formatHoverContents("a documented function"))
}

func TestFormatHoverContentsMarkupContent(t *testing.T) {
	got := formatHoverContents(map[string]any{"kind": "markdown", "value": "**bold**"})
	assert.Equal(t, "**bold**", got)
}

func TestFormatHoverContentsMarkedStringArray(t *testing.T) {
	got := formatHoverContents([]any{
		map[string]any{"language": "go", "value": "func Foo()"},
		"plain trailer",
	})
	assert.Equal(t, "```go\nfunc Foo()\n```\n---\nplain trailer", got)
}
