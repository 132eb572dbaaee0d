// Package mcpserver wires the bridge's tool handlers into an MCP server
// instance, including request/response logging hooks and default-session
// bookkeeping for transports that never explicitly create one.
package mcpserver

import (
	"context"

	"rockerboo/mcp-lsp-bridge/bridge"
	"rockerboo/mcp-lsp-bridge/logger"

	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

var log = logger.Component("mcpserver")

// SetupMCPServer builds the MCP server, registers every tool against b,
// and installs a default session so clients that skip explicit session
// negotiation still get one.
func SetupMCPServer(b *bridge.Bridge) *server.MCPServer {
	hooks := &server.Hooks{}

	hooks.AddBeforeAny(func(ctx context.Context, id any, method mcp.MCPMethod, message any) {
		log.Debug("beforeAny", method, id)
	})
	hooks.AddOnSuccess(func(ctx context.Context, id any, method mcp.MCPMethod, message any, result any) {
		log.Debug("onSuccess", method, id)
	})
	hooks.AddOnError(func(ctx context.Context, id any, method mcp.MCPMethod, message any, err error) {
		log.Error("onError", method, id, err)
	})
	hooks.AddBeforeCallTool(func(ctx context.Context, id any, message *mcp.CallToolRequest) {
		log.Debug("beforeCallTool", id, message.Params.Name)
	})
	hooks.AddAfterCallTool(func(ctx context.Context, id any, message *mcp.CallToolRequest, result *mcp.CallToolResult) {
		log.Debug("afterCallTool", id, message.Params.Name)
	})

	mcpServer := server.NewMCPServer(
		"mcp-lsp-bridge",
		"1.0.0",
		server.WithToolCapabilities(false),
		server.WithLogging(),
		server.WithHooks(hooks),
		server.WithInstructions(`This server bridges a single Language Server Protocol server into tools callable over MCP.

It keeps one language-server child process alive for the lifetime of the connection and a file-system watcher that mirrors workspace changes back to it. Tools operate on workspace-relative paths and symbol names:

- definition: locate a symbol by name and render its expanded source block.
- references: locate every reference to a symbol, grouped by file with surrounding context.
- hover: show type/documentation information at a specific position.
- diagnostics: list errors and warnings the language server has published for a file.
- rename_symbol: rename a symbol at a position and apply the resulting edits across every affected file.
- edit_file: apply a list of line-range replacements to a file.

Every path argument must resolve inside the workspace directory the bridge was started against.`),
	)

	RegisterAllTools(mcpServer, b)

	setupDefaultSession(mcpServer)

	return mcpServer
}

func setupDefaultSession(mcpServer *server.MCPServer) {
	defaultSession := NewLSPBridgeSession(uuid.NewString())

	if err := mcpServer.RegisterSession(context.Background(), defaultSession); err != nil {
		log.Error("failed to register default session", err)
		return
	}
	log.Info("default session registered")
}
