package mcpserver

import (
	"rockerboo/mcp-lsp-bridge/bridge"
	"rockerboo/mcp-lsp-bridge/mcpserver/tools"

	"github.com/mark3labs/mcp-go/server"
)

// RegisterAllTools registers every MCP tool the bridge exposes.
func RegisterAllTools(mcpServer *server.MCPServer, b *bridge.Bridge) {
	tools.RegisterDefinitionTool(mcpServer, b)
	tools.RegisterReferencesTool(mcpServer, b)
	tools.RegisterHoverTool(mcpServer, b)
	tools.RegisterDiagnosticsTool(mcpServer, b)
	tools.RegisterRenameSymbolTool(mcpServer, b)
	tools.RegisterEditFileTool(mcpServer, b)
}
