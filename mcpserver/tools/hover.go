package tools

import (
	"context"
	"fmt"
	"strings"

	"rockerboo/mcp-lsp-bridge/bridge"
	"rockerboo/mcp-lsp-bridge/lsptypes"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// RegisterHoverTool registers the hover tool.
func RegisterHoverTool(mcpServer *server.MCPServer, b *bridge.Bridge) {
	mcpServer.AddTool(mcp.NewTool("hover",
		mcp.WithDescription("Get hover information (type/docs) for a symbol at a position"),
		mcp.WithString("filePath", mcp.Required(), mcp.Description("Path to the file, relative to the workspace")),
		mcp.WithNumber("line", mcp.Required(), mcp.Description("1-indexed line number")),
		mcp.WithNumber("column", mcp.Required(), mcp.Description("1-indexed column number")),
	), func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		filePath, err := request.RequireString("filePath")
		if err != nil {
			log.Error("hover: filePath parsing failed", err)
			return mcp.NewToolResultError(err.Error()), nil
		}
		line, err := request.RequireInt("line")
		if err != nil {
			log.Error("hover: line parsing failed", err)
			return mcp.NewToolResultError(err.Error()), nil
		}
		column, err := request.RequireInt("column")
		if err != nil {
			log.Error("hover: column parsing failed", err)
			return mcp.NewToolResultError(err.Error()), nil
		}

		abs, err := b.OpenFile(ctx, filePath)
		if err != nil {
			log.Error("hover: open failed", err)
			return mcp.NewToolResultError(err.Error()), nil
		}

		pos := lsptypes.Position{Line: uint32(line - 1), Character: uint32(column - 1)}
		result, err := b.Client().Hover(ctx, abs, pos)
		if err != nil {
			log.Error("hover: textDocument/hover failed", err)
			return mcp.NewToolResultError(fmt.Sprintf("hover request failed: %v", err)), nil
		}

		header := fmt.Sprintf("Hover information for %s:%d:%d", filePath, line, column)
		if result == nil {
			return mcp.NewToolResultText(header + "\nNo hover information available"), nil
		}

		return mcp.NewToolResultText(header + "\n" + formatHoverContents(result.Contents)), nil
	})
}

// formatHoverContents renders the three wire shapes textDocument/hover's
// "contents" field can take once decoded through encoding/json: a plain
// string, a MarkupContent object ({kind, value}), or an array of either
// plain strings or {language, value} MarkedString objects.
func formatHoverContents(contents any) string {
	switch v := contents.(type) {
	case string:
		return v
	case map[string]any:
		return formatHoverObject(v)
	case []any:
		parts := make([]string, 0, len(v))
		for _, item := range v {
			switch iv := item.(type) {
			case string:
				parts = append(parts, iv)
			case map[string]any:
				parts = append(parts, formatHoverObject(iv))
			default:
				parts = append(parts, fmt.Sprintf("%v", iv))
			}
		}
		return strings.Join(parts, "\n---\n")
	default:
		return fmt.Sprintf("%v", v)
	}
}

func formatHoverObject(v map[string]any) string {
	if value, ok := v["value"].(string); ok {
		if lang, ok := v["language"].(string); ok && lang != "" {
			return fmt.Sprintf("```%s\n%s\n```", lang, value)
		}
		return value
	}
	return fmt.Sprintf("%v", v)
}
