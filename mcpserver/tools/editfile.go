package tools

import (
	"context"
	"fmt"
	"os"
	"strings"

	"rockerboo/mcp-lsp-bridge/bridge"
	"rockerboo/mcp-lsp-bridge/lsptypes"
	"rockerboo/mcp-lsp-bridge/uri"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// RegisterEditFileTool registers the edit_file tool.
func RegisterEditFileTool(mcpServer *server.MCPServer, b *bridge.Bridge) {
	mcpServer.AddTool(mcp.NewTool("edit_file",
		mcp.WithDescription("Apply a list of 1-indexed, inclusive line-range replacements to a file"),
		mcp.WithString("filePath", mcp.Required(), mcp.Description("Path to the file, relative to the workspace")),
		mcp.WithArray("edits", mcp.Required(), mcp.Description("List of {startLine, endLine, newText} entries"),
			mcp.Items(map[string]any{
				"type": "object",
				"properties": map[string]any{
					"startLine": map[string]any{"type": "integer"},
					"endLine":   map[string]any{"type": "integer"},
					"newText":   map[string]any{"type": "string"},
				},
				"required": []string{"startLine", "endLine", "newText"},
			}),
		),
	), func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		filePath, err := request.RequireString("filePath")
		if err != nil {
			log.Error("edit_file: filePath parsing failed", err)
			return mcp.NewToolResultError(err.Error()), nil
		}

		rawEdits, ok := request.GetArguments()["edits"].([]any)
		if !ok || len(rawEdits) == 0 {
			return mcp.NewToolResultError("edits must be a non-empty array"), nil
		}

		abs, err := b.OpenFile(ctx, filePath)
		if err != nil {
			log.Error("edit_file: open failed", err)
			return mcp.NewToolResultError(err.Error()), nil
		}

		data, err := os.ReadFile(abs)
		if err != nil {
			log.Error("edit_file: read failed", err)
			return mcp.NewToolResultError(err.Error()), nil
		}
		lines := strings.Split(string(data), "\n")

		textEdits := make([]lsptypes.TextEdit, 0, len(rawEdits))
		var linesRemoved, linesAdded int

		for i, raw := range rawEdits {
			entry, ok := raw.(map[string]any)
			if !ok {
				return mcp.NewToolResultError(fmt.Sprintf("edits[%d] is not an object", i)), nil
			}

			startLine := intField(entry, "startLine")
			endLine := intField(entry, "endLine")
			newText, _ := entry["newText"].(string)

			if startLine < 1 {
				return mcp.NewToolResultError(fmt.Sprintf("edits[%d].startLine must be >= 1", i)), nil
			}

			edit, removed := buildLineRangeEdit(lines, startLine, endLine, newText)
			textEdits = append(textEdits, edit)
			linesRemoved += removed
			linesAdded += len(strings.Split(newText, "\n"))
		}

		wsEdit := &lsptypes.WorkspaceEdit{
			Changes: map[string][]lsptypes.TextEdit{
				uri.FromPath(abs): textEdits,
			},
		}

		if _, err := applyWorkspaceEdit(wsEdit); err != nil {
			log.Error("edit_file: applying edits failed", err)
			return mcp.NewToolResultError(fmt.Sprintf("failed to apply edits: %v", err)), nil
		}

		summary := fmt.Sprintf("Applied %d edit(s) to %s\nLines removed: %d\nLines added: %d",
			len(textEdits), filePath, linesRemoved, linesAdded)
		return mcp.NewToolResultText(summary), nil
	})
}

// buildLineRangeEdit converts a 1-indexed inclusive {startLine, endLine}
// entry to an LSP-style TextEdit against lines' current contents. When
// startLine is past end-of-file the edit becomes a zero-width insertion at
// the very end of the last line, with a newline prepended to newText so the
// text is appended as a new line.
func buildLineRangeEdit(lines []string, startLine, endLine int, newText string) (lsptypes.TextEdit, int) {
	total := len(lines)

	if startLine > total {
		last := total - 1
		pos := lsptypes.Position{Line: uint32(last), Character: uint32(len(lines[last]))}
		return lsptypes.TextEdit{
			Range:   lsptypes.Range{Start: pos, End: pos},
			NewText: "\n" + newText,
		}, 0
	}

	endClamped := endLine
	if endClamped > total {
		endClamped = total
	}
	if endClamped < startLine {
		endClamped = startLine
	}

	endIdx := endClamped - 1
	textEdit := lsptypes.TextEdit{
		Range: lsptypes.Range{
			Start: lsptypes.Position{Line: uint32(startLine - 1), Character: 0},
			End:   lsptypes.Position{Line: uint32(endIdx), Character: uint32(len(lines[endIdx]))},
		},
		NewText: newText,
	}
	return textEdit, endClamped - startLine + 1
}

func intField(m map[string]any, key string) int {
	switch v := m[key].(type) {
	case float64:
		return int(v)
	case int:
		return v
	default:
		return 0
	}
}
