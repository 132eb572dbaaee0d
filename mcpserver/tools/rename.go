package tools

import (
	"context"
	"fmt"

	"rockerboo/mcp-lsp-bridge/bridge"
	"rockerboo/mcp-lsp-bridge/lsptypes"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// RegisterRenameSymbolTool registers the rename_symbol tool.
func RegisterRenameSymbolTool(mcpServer *server.MCPServer, b *bridge.Bridge) {
	mcpServer.AddTool(mcp.NewTool("rename_symbol",
		mcp.WithDescription("Rename the symbol at a position and apply the resulting edits"),
		mcp.WithString("filePath", mcp.Required(), mcp.Description("Path to the file, relative to the workspace")),
		mcp.WithNumber("line", mcp.Required(), mcp.Description("1-indexed line number")),
		mcp.WithNumber("column", mcp.Required(), mcp.Description("1-indexed column number")),
		mcp.WithString("newName", mcp.Required(), mcp.Description("New name for the symbol")),
	), func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		filePath, err := request.RequireString("filePath")
		if err != nil {
			log.Error("rename_symbol: filePath parsing failed", err)
			return mcp.NewToolResultError(err.Error()), nil
		}
		line, err := request.RequireInt("line")
		if err != nil {
			log.Error("rename_symbol: line parsing failed", err)
			return mcp.NewToolResultError(err.Error()), nil
		}
		column, err := request.RequireInt("column")
		if err != nil {
			log.Error("rename_symbol: column parsing failed", err)
			return mcp.NewToolResultError(err.Error()), nil
		}
		newName, err := request.RequireString("newName")
		if err != nil {
			log.Error("rename_symbol: newName parsing failed", err)
			return mcp.NewToolResultError(err.Error()), nil
		}

		abs, err := b.OpenFile(ctx, filePath)
		if err != nil {
			log.Error("rename_symbol: open failed", err)
			return mcp.NewToolResultError(err.Error()), nil
		}

		pos := lsptypes.Position{Line: uint32(line - 1), Character: uint32(column - 1)}
		edit, err := b.Client().Rename(ctx, abs, pos, newName)
		if err != nil {
			log.Error("rename_symbol: textDocument/rename failed", err)
			return mcp.NewToolResultError(fmt.Sprintf("rename request failed: %v", err)), nil
		}

		summary, err := applyWorkspaceEdit(edit)
		if err != nil {
			log.Error("rename_symbol: applying edit failed", err)
			return mcp.NewToolResultError(fmt.Sprintf("failed to apply rename: %v", err)), nil
		}

		return mcp.NewToolResultText(formatEditSummary(fmt.Sprintf("Renamed to %q", newName), summary)), nil
	})
}
