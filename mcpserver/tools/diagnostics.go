package tools

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"rockerboo/mcp-lsp-bridge/bridge"
	"rockerboo/mcp-lsp-bridge/lsptypes"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// diagnosticsGracePeriod is how long the tool waits after opening the file
// for the server to push diagnostics before reading the Diagnostics Store.
const diagnosticsGracePeriod = 500 * time.Millisecond

// RegisterDiagnosticsTool registers the diagnostics tool.
func RegisterDiagnosticsTool(mcpServer *server.MCPServer, b *bridge.Bridge) {
	mcpServer.AddTool(mcp.NewTool("diagnostics",
		mcp.WithDescription("Get diagnostics (errors, warnings) the language server has published for a file"),
		mcp.WithString("filePath", mcp.Required(), mcp.Description("Path to the file, relative to the workspace")),
		mcp.WithNumber("contextLines", mcp.Description("Lines of context around each diagnostic (default 5)")),
		mcp.WithBoolean("showLineNumbers", mcp.Description("Include a line-number gutter in context (default true)")),
	), func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		filePath, err := request.RequireString("filePath")
		if err != nil {
			log.Error("diagnostics: filePath parsing failed", err)
			return mcp.NewToolResultError(err.Error()), nil
		}

		contextLines := request.GetInt("contextLines", defaultContextLines)
		showLineNumbers := request.GetBool("showLineNumbers", true)

		abs, err := b.OpenFile(ctx, filePath)
		if err != nil {
			log.Error("diagnostics: open failed", err)
			return mcp.NewToolResultError(err.Error()), nil
		}

		select {
		case <-time.After(diagnosticsGracePeriod):
		case <-ctx.Done():
			return mcp.NewToolResultError(ctx.Err().Error()), nil
		}

		diags := b.Client().Diagnostics(abs)
		if len(diags) == 0 {
			return mcp.NewToolResultText(fmt.Sprintf("No diagnostics for %s", filePath)), nil
		}

		data, err := os.ReadFile(abs)
		if err != nil {
			log.Error("diagnostics: read failed", err)
			return mcp.NewToolResultError(err.Error()), nil
		}
		lines := strings.Split(string(data), "\n")

		var out strings.Builder
		out.WriteString(fmt.Sprintf("Diagnostics for %s (%d):\n\n", filePath, len(diags)))
		for i, d := range diags {
			out.WriteString(formatDiagnostic(i+1, d, lines, contextLines, showLineNumbers))
			out.WriteString("\n")
		}

		return mcp.NewToolResultText(out.String()), nil
	})
}

func formatDiagnostic(index int, d lsptypes.Diagnostic, lines []string, contextLines int, showLineNumbers bool) string {
	var out strings.Builder

	severity := d.Severity
	if severity == 0 {
		severity = lsptypes.SeverityError
	}

	out.WriteString(fmt.Sprintf("%d. [%s] L%d:C%d: %s\n", index, severity, d.Range.Start.Line+1, d.Range.Start.Character+1, d.Message))
	if d.Source != "" {
		out.WriteString(fmt.Sprintf("   Source: %s\n", d.Source))
	}
	if d.Code != nil {
		out.WriteString(fmt.Sprintf("   Code: %v\n", d.Code))
	}

	contextSet := bridge.ContextLineSet(int(d.Range.Start.Line), int(d.Range.End.Line), contextLines, len(lines))
	if len(contextSet) > 0 {
		ranges := bridge.CollapseRanges(contextSet)
		if showLineNumbers {
			out.WriteString(bridge.RenderContextRanges(lines, ranges))
		} else {
			for _, r := range ranges {
				for ln := r.Start; ln <= r.End && ln < len(lines); ln++ {
					out.WriteString(lines[ln])
					out.WriteString("\n")
				}
			}
		}
		out.WriteString("\n")
	}

	return out.String()
}
