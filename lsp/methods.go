package lsp

import (
	"context"
	"fmt"
	"os"
	"time"

	"rockerboo/mcp-lsp-bridge/lsptypes"
	"rockerboo/mcp-lsp-bridge/uri"
)

const defaultRequestTimeout = 10 * time.Second

// Initialize sends the initialize request for rootDir and records the
// server's advertised capabilities.
func (c *Client) Initialize(ctx context.Context, rootDir string) (lsptypes.ServerCapabilities, error) {
	pid := int32(os.Getpid())
	rootURI := uri.FromPath(rootDir)

	params := lsptypes.InitializeParams{
		ProcessID: &pid,
		RootURI:   &rootURI,
		WorkspaceFolders: []lsptypes.WorkspaceFolder{
			{URI: rootURI, Name: rootDir},
		},
		Capabilities: lsptypes.ClientCapabilities{
			Workspace: lsptypes.WorkspaceClientCapabilities{
				Configuration: true,
				DidChangeWatchedFiles: lsptypes.DidChangeWatchedFilesClientCapabilities{
					DynamicRegistration: true,
				},
				ApplyEdit:        true,
				WorkspaceFolders: true,
			},
			TextDocument: lsptypes.TextDocumentClientCapabilities{
				Synchronization: lsptypes.TextDocumentSyncClientCapabilities{
					DynamicRegistration: true,
					DidSave:             true,
				},
				PublishDiagnostics: lsptypes.PublishDiagnosticsClientCapabilities{
					VersionSupport: true,
				},
			},
		},
	}

	var result lsptypes.InitializeResult
	if err := c.Call(ctx, "initialize", params, &result, 30*time.Second); err != nil {
		return nil, fmt.Errorf("initialize failed: %w", err)
	}

	c.SetServerCapabilities(result.Capabilities)
	return result.Capabilities, nil
}

// Initialized sends the initialized notification, completing the
// initialize handshake.
func (c *Client) Initialized(ctx context.Context) error {
	return c.Notify(ctx, "initialized", struct{}{})
}

// DidOpen opens path with the server if it is not already open, sending
// the file's current contents. It is idempotent: a second call for the
// same URI is a no-op.
func (c *Client) DidOpen(ctx context.Context, path string) error {
	docURI := uri.FromPath(path)
	if c.openFiles.isOpen(docURI) {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}

	params := lsptypes.DidOpenTextDocumentParams{
		TextDocument: lsptypes.TextDocumentItem{
			URI:        docURI,
			LanguageID: LanguageIDForPath(path),
			Version:    1,
			Text:       string(data),
		},
	}

	if err := c.Notify(ctx, "textDocument/didOpen", params); err != nil {
		return fmt.Errorf("didOpen %s: %w", path, err)
	}

	c.openFiles.open(docURI)
	return nil
}

// NotifyChange re-reads path and sends a full-text textDocument/didChange,
// bumping its registry version. Returns *ErrMissingOpenFile if path has not
// been opened.
func (c *Client) NotifyChange(ctx context.Context, path string) error {
	docURI := uri.FromPath(path)

	version, ok := c.openFiles.bumpVersion(docURI)
	if !ok {
		return &ErrMissingOpenFile{URI: docURI}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}

	params := lsptypes.DidChangeTextDocumentParams{
		TextDocument: lsptypes.VersionedTextDocumentIdentifier{
			URI:     docURI,
			Version: version,
		},
		ContentChanges: []lsptypes.TextDocumentContentChangeEvent{
			{Text: string(data)},
		},
	}

	if err := c.Notify(ctx, "textDocument/didChange", params); err != nil {
		return fmt.Errorf("didChange %s: %w", path, err)
	}
	return nil
}

// CloseFile closes path with the server. It is idempotent: closing a URI
// that was never opened, or already closed, is a no-op.
func (c *Client) CloseFile(ctx context.Context, path string) error {
	docURI := uri.FromPath(path)
	if !c.openFiles.isOpen(docURI) {
		return nil
	}

	params := lsptypes.DidCloseTextDocumentParams{
		TextDocument: lsptypes.TextDocumentIdentifier{URI: docURI},
	}

	if err := c.Notify(ctx, "textDocument/didClose", params); err != nil {
		return fmt.Errorf("didClose %s: %w", path, err)
	}

	c.openFiles.close(docURI)
	return nil
}

// CloseAllFiles closes every currently open file, best-effort: it collects
// and returns the first error encountered but keeps closing the rest.
func (c *Client) CloseAllFiles(ctx context.Context) error {
	var firstErr error
	for _, docURI := range c.openFiles.openURIs() {
		params := lsptypes.DidCloseTextDocumentParams{
			TextDocument: lsptypes.TextDocumentIdentifier{URI: docURI},
		}
		if err := c.Notify(ctx, "textDocument/didClose", params); err != nil && firstErr == nil {
			firstErr = err
		}
		c.openFiles.close(docURI)
	}
	return firstErr
}

// NotifyWatchedFileChanges forwards filesystem events the watcher observed
// to the server as a single workspace/didChangeWatchedFiles notification.
func (c *Client) NotifyWatchedFileChanges(ctx context.Context, changes []lsptypes.FileEvent) error {
	if len(changes) == 0 {
		return nil
	}
	params := lsptypes.DidChangeWatchedFilesParams{Changes: changes}
	return c.Notify(ctx, "workspace/didChangeWatchedFiles", params)
}

// IsOpen reports whether path is currently open per the Open-File Registry.
func (c *Client) IsOpen(path string) bool {
	return c.openFiles.isOpen(uri.FromPath(path))
}

// Diagnostics returns the most recently published diagnostics for path.
func (c *Client) Diagnostics(path string) []lsptypes.Diagnostic {
	return c.diagnostics.get(uri.FromPath(path))
}

// WatcherRegistrations returns a snapshot of every
// workspace/didChangeWatchedFiles registration the server has made so far.
func (c *Client) WatcherRegistrations() []WatcherRegistration {
	return c.watchers.snapshot()
}

// WorkspaceSymbol runs workspace/symbol for query. Results are decoded
// uniformly as WorkspaceSymbol: servers returning the older
// SymbolInformation shape always populate Location.Range, while servers
// returning WorkspaceSymbol may leave it nil. Callers wrap each result
// with the symbol package to get a uniform Symbol, synthesizing a
// zero-length range when Range is nil.
func (c *Client) WorkspaceSymbol(ctx context.Context, query string) ([]lsptypes.WorkspaceSymbol, error) {
	params := lsptypes.WorkspaceSymbolParams{Query: query}

	var result []lsptypes.WorkspaceSymbol
	if err := c.Call(ctx, "workspace/symbol", params, &result, defaultRequestTimeout); err != nil {
		return nil, fmt.Errorf("workspace/symbol failed: %w", err)
	}
	return result, nil
}

// Hover runs textDocument/hover at pos in path.
func (c *Client) Hover(ctx context.Context, path string, pos lsptypes.Position) (*lsptypes.Hover, error) {
	params := lsptypes.HoverParams{
		TextDocument: lsptypes.TextDocumentIdentifier{URI: uri.FromPath(path)},
		Position:     pos,
	}

	var result *lsptypes.Hover
	if err := c.Call(ctx, "textDocument/hover", params, &result, defaultRequestTimeout); err != nil {
		return nil, fmt.Errorf("textDocument/hover failed: %w", err)
	}
	return result, nil
}

// References runs textDocument/references at pos in path.
func (c *Client) References(ctx context.Context, path string, pos lsptypes.Position, includeDeclaration bool) ([]lsptypes.Location, error) {
	params := lsptypes.ReferenceParams{
		TextDocument: lsptypes.TextDocumentIdentifier{URI: uri.FromPath(path)},
		Position:     pos,
		Context:      lsptypes.ReferenceContext{IncludeDeclaration: includeDeclaration},
	}

	var result []lsptypes.Location
	if err := c.Call(ctx, "textDocument/references", params, &result, defaultRequestTimeout); err != nil {
		return nil, fmt.Errorf("textDocument/references failed: %w", err)
	}
	return result, nil
}

// Rename runs textDocument/rename at pos in path, returning the server's
// proposed WorkspaceEdit. The caller applies the edit; the server never
// does.
func (c *Client) Rename(ctx context.Context, path string, pos lsptypes.Position, newName string) (*lsptypes.WorkspaceEdit, error) {
	params := lsptypes.RenameParams{
		TextDocument: lsptypes.TextDocumentIdentifier{URI: uri.FromPath(path)},
		Position:     pos,
		NewName:      newName,
	}

	var result *lsptypes.WorkspaceEdit
	if err := c.Call(ctx, "textDocument/rename", params, &result, defaultRequestTimeout); err != nil {
		return nil, fmt.Errorf("textDocument/rename failed: %w", err)
	}
	return result, nil
}
