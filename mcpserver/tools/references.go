package tools

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"rockerboo/mcp-lsp-bridge/bridge"
	"rockerboo/mcp-lsp-bridge/lsptypes"
	"rockerboo/mcp-lsp-bridge/symbol"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

const defaultContextLines = 5

func contextLinesFromEnv() int {
	v := os.Getenv("LSP_CONTEXT_LINES")
	if v == "" {
		return defaultContextLines
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return defaultContextLines
	}
	return n
}

// RegisterReferencesTool registers the references tool.
func RegisterReferencesTool(mcpServer *server.MCPServer, b *bridge.Bridge) {
	mcpServer.AddTool(mcp.NewTool("references",
		mcp.WithDescription("Find every reference to a symbol by name, grouped by file"),
		mcp.WithString("symbolName", mcp.Required(), mcp.Description("Name of the symbol to look up")),
	), func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		name, err := request.RequireString("symbolName")
		if err != nil {
			log.Error("references: symbolName parsing failed", err)
			return mcp.NewToolResultError(err.Error()), nil
		}

		results, err := b.Client().WorkspaceSymbol(ctx, name)
		if err != nil {
			log.Error("references: workspace/symbol failed", err)
			return mcp.NewToolResultError(fmt.Sprintf("workspace/symbol failed: %v", err)), nil
		}

		byURI := map[string][]lsptypes.Location{}
		for _, ws := range results {
			s := symbol.FromWorkspaceSymbol(ws)
			if !bridge.ReferenceMatches(name, s.Name()) {
				continue
			}

			loc := s.Location()
			path := resolveLocationPath(loc.URI)
			if _, err := b.OpenFile(ctx, path); err != nil {
				log.Warn(fmt.Sprintf("references: open %s failed: %v", path, err))
				continue
			}

			refs, err := b.Client().References(ctx, path, loc.Range.Start, false)
			if err != nil {
				log.Warn(fmt.Sprintf("references: textDocument/references for %s failed: %v", s.Name(), err))
				continue
			}
			for _, ref := range refs {
				byURI[ref.URI] = append(byURI[ref.URI], ref)
			}
		}

		if len(byURI) == 0 {
			return mcp.NewToolResultText(fmt.Sprintf("no references found for %s", name)), nil
		}

		uris := make([]string, 0, len(byURI))
		for u := range byURI {
			uris = append(uris, u)
		}
		sort.Strings(uris)

		contextLines := contextLinesFromEnv()

		var blocks []string
		for _, u := range uris {
			block, err := renderReferenceBlock(u, byURI[u], contextLines)
			if err != nil {
				log.Warn(fmt.Sprintf("references: rendering %s failed: %v", u, err))
				continue
			}
			blocks = append(blocks, block)
		}

		return mcp.NewToolResultText(strings.Join(blocks, "\n\n")), nil
	})
}

func renderReferenceBlock(docURI string, refs []lsptypes.Location, contextLines int) (string, error) {
	path := resolveLocationPath(docURI)

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}
	lines := strings.Split(string(data), "\n")

	sort.Slice(refs, func(i, j int) bool {
		if refs[i].Range.Start.Line != refs[j].Range.Start.Line {
			return refs[i].Range.Start.Line < refs[j].Range.Start.Line
		}
		return refs[i].Range.Start.Character < refs[j].Range.Start.Character
	})

	var lineSet []int
	var positions []string
	for _, ref := range refs {
		lineSet = append(lineSet, bridge.ContextLineSet(
			int(ref.Range.Start.Line), int(ref.Range.End.Line), contextLines, len(lines))...)
		positions = append(positions, fmt.Sprintf("L%d:C%d", ref.Range.Start.Line+1, ref.Range.Start.Character+1))
	}

	ranges := bridge.CollapseRanges(lineSet)

	var out strings.Builder
	out.WriteString(fmt.Sprintf("File: %s\n", path))
	out.WriteString(fmt.Sprintf("References in File: %d\n", len(refs)))
	out.WriteString(fmt.Sprintf("At: %s\n\n", strings.Join(positions, ", ")))
	out.WriteString(bridge.RenderContextRanges(lines, ranges))

	return out.String(), nil
}
