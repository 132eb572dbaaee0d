package lsp

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"rockerboo/mcp-lsp-bridge/lsptypes"
	"rockerboo/mcp-lsp-bridge/uri"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func writeTempFile(t *testing.T, contents string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "main.go")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func TestDidOpenIsIdempotent(t *testing.T) {
	path := writeTempFile(t, "package main\n")

	conn := new(mockConn)
	conn.On("Notify", mock.Anything, "textDocument/didOpen", mock.Anything).Return(nil).Once()

	c := newTestClient(conn)

	require.NoError(t, c.DidOpen(context.Background(), path))
	require.NoError(t, c.DidOpen(context.Background(), path))

	conn.AssertExpectations(t)
	assert.True(t, c.openFiles.isOpen(uri.FromPath(path)))
}

func TestNotifyChangeRequiresPriorDidOpen(t *testing.T) {
	path := writeTempFile(t, "package main\n")
	conn := new(mockConn)
	c := newTestClient(conn)

	err := c.NotifyChange(context.Background(), path)
	require.Error(t, err)

	var missing *ErrMissingOpenFile
	require.ErrorAs(t, err, &missing)
}

func TestNotifyChangeBumpsVersion(t *testing.T) {
	path := writeTempFile(t, "package main\n")
	conn := new(mockConn)
	conn.On("Notify", mock.Anything, "textDocument/didOpen", mock.Anything).Return(nil)
	conn.On("Notify", mock.Anything, "textDocument/didChange", mock.MatchedBy(func(p lsptypes.DidChangeTextDocumentParams) bool {
		return p.TextDocument.Version == 2
	})).Return(nil)

	c := newTestClient(conn)
	require.NoError(t, c.DidOpen(context.Background(), path))
	require.NoError(t, c.NotifyChange(context.Background(), path))

	conn.AssertExpectations(t)
}

func TestCloseFileIsIdempotent(t *testing.T) {
	path := writeTempFile(t, "package main\n")
	conn := new(mockConn)
	conn.On("Notify", mock.Anything, "textDocument/didOpen", mock.Anything).Return(nil)
	conn.On("Notify", mock.Anything, "textDocument/didClose", mock.Anything).Return(nil).Once()

	c := newTestClient(conn)
	require.NoError(t, c.DidOpen(context.Background(), path))
	require.NoError(t, c.CloseFile(context.Background(), path))
	require.NoError(t, c.CloseFile(context.Background(), path))

	conn.AssertExpectations(t)
	assert.False(t, c.openFiles.isOpen(uri.FromPath(path)))
}

func TestDiagnosticsReturnsStoredValue(t *testing.T) {
	path := writeTempFile(t, "package main\n")
	c := newTestClient(new(mockConn))

	c.diagnostics.set(uri.FromPath(path), []lsptypes.Diagnostic{{Message: "oops"}})

	got := c.Diagnostics(path)
	require.Len(t, got, 1)
	assert.Equal(t, "oops", got[0].Message)
}

func TestWorkspaceSymbolDecodesUniformly(t *testing.T) {
	conn := new(mockConn)
	c := newTestClient(conn)

	conn.On("Call", mock.Anything, "workspace/symbol", mock.Anything, mock.AnythingOfType("*[]lsptypes.WorkspaceSymbol")).
		Run(func(args mock.Arguments) {
			out := args.Get(3).(*[]lsptypes.WorkspaceSymbol)
			*out = []lsptypes.WorkspaceSymbol{{Name: "Foo"}}
		}).
		Return(nil)

	result, err := c.WorkspaceSymbol(context.Background(), "Foo")
	require.NoError(t, err)
	require.Len(t, result, 1)
	assert.Equal(t, "Foo", result[0].Name)
	assert.Nil(t, result[0].Location.Range)
}
