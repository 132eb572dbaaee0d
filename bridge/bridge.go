// Package bridge ties the LSP client, the workspace watcher, and the
// workspace root directory together, and hosts the rendering and
// range-expansion algorithms the MCP tool handlers share.
package bridge

import (
	"context"
	"fmt"
	"path/filepath"

	"rockerboo/mcp-lsp-bridge/logger"
	"rockerboo/mcp-lsp-bridge/lsp"
	"rockerboo/mcp-lsp-bridge/security"
	"rockerboo/mcp-lsp-bridge/watcher"
)

var log = logger.Component("bridge")

// Bridge is the single object every MCP tool handler depends on: it
// resolves and confines workspace-relative paths, and exposes the LSP
// client for the tool to query.
type Bridge struct {
	client       *lsp.Client
	watcher      *watcher.Watcher
	workspaceDir string
}

// New builds a Bridge over an already-connected client and an
// already-started (or not-yet-started) watcher, both scoped to
// workspaceDir.
func New(client *lsp.Client, w *watcher.Watcher, workspaceDir string) *Bridge {
	return &Bridge{client: client, watcher: w, workspaceDir: workspaceDir}
}

// Client returns the underlying LSP client.
func (b *Bridge) Client() *lsp.Client {
	return b.client
}

// WorkspaceDir returns the confined workspace root.
func (b *Bridge) WorkspaceDir() string {
	return b.workspaceDir
}

// ResolvePath validates that path stays within the workspace and returns
// its clean absolute form. A relative path is taken relative to the
// workspace root.
func (b *Bridge) ResolvePath(path string) (string, error) {
	if path != "" && !filepath.IsAbs(path) {
		path = filepath.Join(b.workspaceDir, path)
	}
	return security.ValidateWorkspacePath(path, b.workspaceDir)
}

// OpenFile resolves path and opens it with the LSP client if not already
// open.
func (b *Bridge) OpenFile(ctx context.Context, path string) (string, error) {
	abs, err := b.ResolvePath(path)
	if err != nil {
		return "", fmt.Errorf("resolve path: %w", err)
	}
	if err := b.client.DidOpen(ctx, abs); err != nil {
		return "", fmt.Errorf("open file: %w", err)
	}
	return abs, nil
}

// Shutdown runs the full shutdown protocol: LSP shutdown/exit/close, then
// stops the watcher.
func (b *Bridge) Shutdown(ctx context.Context) {
	if err := b.client.Shutdown(ctx); err != nil {
		log.Warn(fmt.Sprintf("shutdown request failed: %v", err))
	}
	if err := b.client.Exit(ctx); err != nil {
		log.Warn(fmt.Sprintf("exit notification failed: %v", err))
	}
	if err := b.client.Close(); err != nil {
		log.Warn(fmt.Sprintf("client close failed: %v", err))
	}
	if b.watcher != nil {
		b.watcher.Stop()
	}
}
