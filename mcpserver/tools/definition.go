package tools

import (
	"context"
	"fmt"
	"os"
	"strings"

	"rockerboo/mcp-lsp-bridge/bridge"
	"rockerboo/mcp-lsp-bridge/logger"
	"rockerboo/mcp-lsp-bridge/symbol"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

var log = logger.Component("tools")

// RegisterDefinitionTool registers the definition tool.
func RegisterDefinitionTool(mcpServer *server.MCPServer, b *bridge.Bridge) {
	mcpServer.AddTool(mcp.NewTool("definition",
		mcp.WithDescription("Find the definition of a symbol by name and render its source"),
		mcp.WithString("symbolName", mcp.Required(), mcp.Description("Name of the symbol to look up")),
	), func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		name, err := request.RequireString("symbolName")
		if err != nil {
			log.Error("definition: symbolName parsing failed", err)
			return mcp.NewToolResultError(err.Error()), nil
		}

		results, err := b.Client().WorkspaceSymbol(ctx, name)
		if err != nil {
			log.Error("definition: workspace/symbol failed", err)
			return mcp.NewToolResultError(fmt.Sprintf("workspace/symbol failed: %v", err)), nil
		}

		var blocks []string
		for _, ws := range results {
			s := symbol.FromWorkspaceSymbol(ws)
			if !bridge.DefinitionMatches(name, s.Kind(), s.Name()) {
				continue
			}

			block, err := renderDefinitionBlock(ctx, b, s)
			if err != nil {
				log.Warn(fmt.Sprintf("definition: rendering %s failed: %v", s.Name(), err))
				continue
			}
			blocks = append(blocks, block)
		}

		if len(blocks) == 0 {
			return mcp.NewToolResultText(fmt.Sprintf("%s not found", name)), nil
		}

		return mcp.NewToolResultText(strings.Join(blocks, "\n\n")), nil
	})
}

func renderDefinitionBlock(ctx context.Context, b *bridge.Bridge, s symbol.Symbol) (string, error) {
	loc := s.Location()
	path := resolveLocationPath(loc.URI)

	abs, err := b.OpenFile(ctx, path)
	if err != nil {
		return "", fmt.Errorf("open %s: %w", path, err)
	}

	data, err := os.ReadFile(abs)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", abs, err)
	}
	lines := strings.Split(string(data), "\n")

	startLine, endLine := bridge.ExpandDefinitionRange(lines, int(loc.Range.Start.Line), int(loc.Range.End.Line))

	var b2 strings.Builder
	b2.WriteString(fmt.Sprintf("=== DEFINITION: %s ===\n", s.Name()))
	b2.WriteString(fmt.Sprintf("Symbol: %s\n", s.Name()))
	b2.WriteString(fmt.Sprintf("File: %s\n", abs))
	if kind := symbolKindToString(s.Kind()); kind != "" {
		b2.WriteString(fmt.Sprintf("Kind: %s\n", kind))
	}
	if s.ContainerName() != "" {
		b2.WriteString(fmt.Sprintf("Container Name: %s\n", s.ContainerName()))
	}
	b2.WriteString(fmt.Sprintf("Range: L%d:C%d - L%d:C%d\n",
		loc.Range.Start.Line+1, loc.Range.Start.Character+1,
		loc.Range.End.Line+1, loc.Range.End.Character+1))
	b2.WriteString("\n")
	b2.WriteString(bridge.RenderGutterBlock(lines, startLine, endLine))

	return b2.String(), nil
}
