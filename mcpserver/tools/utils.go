// Package tools implements the MCP tool handlers the bridge exposes:
// definition, references, hover, diagnostics, rename_symbol, and edit_file.
package tools

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"rockerboo/mcp-lsp-bridge/lsptypes"
	"rockerboo/mcp-lsp-bridge/uri"
)

// resolveLocationPath converts a server-reported file:// URI to an OS
// path. The bridge still confines it to the workspace when opening it.
func resolveLocationPath(docURI string) string {
	return uri.ToPath(docURI)
}

// symbolKindToString converts a SymbolKind to a human-readable string for
// the definition tool's location block.
func symbolKindToString(kind lsptypes.SymbolKind) string {
	switch kind {
	case 1:
		return "file"
	case 2:
		return "module"
	case 3:
		return "namespace"
	case 4:
		return "package"
	case 5:
		return "class"
	case lsptypes.SymbolKindMethod:
		return "method"
	case 7:
		return "property"
	case 8:
		return "field"
	case 9:
		return "constructor"
	case 10:
		return "enum"
	case 11:
		return "interface"
	case 12:
		return "function"
	case 13:
		return "variable"
	case 14:
		return "constant"
	case 23:
		return "struct"
	default:
		return fmt.Sprintf("unknown(%d)", kind)
	}
}

// editApplySummary reports how applyWorkspaceEdit changed the workspace.
type editApplySummary struct {
	FilesChanged int
	TotalEdits   int
}

// applyWorkspaceEdit applies every per-file edit list in edit.Changes
// directly to disk, since the LSP client's workspace/applyEdit request
// handler acknowledges edits without applying them. Edits within a file are applied back-to-front so that earlier
// edits' positions remain valid after later ones splice lines.
func applyWorkspaceEdit(edit *lsptypes.WorkspaceEdit) (editApplySummary, error) {
	var summary editApplySummary
	if edit == nil {
		return summary, nil
	}

	for docURI, edits := range edit.Changes {
		if len(edits) == 0 {
			continue
		}
		path := uri.ToPath(docURI)

		data, err := os.ReadFile(path)
		if err != nil {
			return summary, fmt.Errorf("read %s: %w", path, err)
		}
		lines := strings.Split(string(data), "\n")

		sorted := make([]lsptypes.TextEdit, len(edits))
		copy(sorted, edits)
		sort.Slice(sorted, func(i, j int) bool {
			a, b := sorted[i].Range.Start, sorted[j].Range.Start
			if a.Line != b.Line {
				return a.Line > b.Line
			}
			return a.Character > b.Character
		})

		for _, e := range sorted {
			lines = applyTextEdit(lines, e)
		}

		if err := os.WriteFile(path, []byte(strings.Join(lines, "\n")), 0o644); err != nil {
			return summary, fmt.Errorf("write %s: %w", path, err)
		}

		summary.FilesChanged++
		summary.TotalEdits += len(edits)
	}

	return summary, nil
}

// applyTextEdit splices one edit into lines per the rename/edit-file
// application algorithm: same line replaces a substring in place, a
// multi-line span collapses into one line built from its start and end
// fragments.
func applyTextEdit(lines []string, e lsptypes.TextEdit) []string {
	sl, sc := int(e.Range.Start.Line), int(e.Range.Start.Character)
	el, ec := int(e.Range.End.Line), int(e.Range.End.Character)

	if sl < 0 || sl >= len(lines) || el < 0 || el >= len(lines) {
		return lines
	}

	if sl == el {
		line := lines[sl]
		sc = clamp(sc, 0, len(line))
		ec = clamp(ec, sc, len(line))
		lines[sl] = line[:sc] + e.NewText + line[ec:]
		return lines
	}

	startLine := lines[sl]
	endLine := lines[el]
	sc = clamp(sc, 0, len(startLine))
	ec = clamp(ec, 0, len(endLine))

	merged := startLine[:sc] + e.NewText + endLine[ec:]

	out := make([]string, 0, len(lines)-(el-sl))
	out = append(out, lines[:sl]...)
	out = append(out, merged)
	out = append(out, lines[el+1:]...)
	return out
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// formatEditSummary renders the result of applyWorkspaceEdit as the text
// block the rename_symbol tool returns.
func formatEditSummary(header string, s editApplySummary) string {
	if s.TotalEdits == 0 {
		return header + "\nNo changes needed"
	}
	return fmt.Sprintf("%s\nFiles changed: %d\nTotal edits: %d", header, s.FilesChanged, s.TotalEdits)
}
