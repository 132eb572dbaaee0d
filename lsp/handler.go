package lsp

import (
	"context"
	"encoding/json"
	"fmt"

	"rockerboo/mcp-lsp-bridge/lsptypes"

	"github.com/sourcegraph/jsonrpc2"
)

// clientHandler implements jsonrpc2.Handler for requests and notifications
// the server sends us: published diagnostics, log/message notifications,
// and the server-initiated requests client/registerCapability,
// workspace/configuration, and workspace/applyEdit.
type clientHandler struct {
	client *Client
}

// Handle is invoked once per inbound request or notification, on the
// connection's own goroutine; it must not block for long or it would stall
// delivery of subsequent messages.
func (h *clientHandler) Handle(ctx context.Context, conn *jsonrpc2.Conn, req *jsonrpc2.Request) {
	switch req.Method {
	case "textDocument/publishDiagnostics":
		h.handlePublishDiagnostics(req)
		return

	case "window/showMessage", "window/logMessage":
		h.handleLogMessage(req)
		return

	case "client/registerCapability":
		h.handleRegisterCapability(ctx, conn, req)
		h.client.markReady()
		return

	case "workspace/configuration":
		h.handleConfiguration(conn, req)
		h.client.markReady()
		return

	case "workspace/applyEdit":
		h.handleApplyEdit(conn, req)
		return

	case "window/workDoneProgress/create":
		if req.Notif {
			return
		}
		if err := conn.Reply(ctx, req.ID, nil); err != nil {
			log.Error(fmt.Sprintf("reply error for %s: %v", req.Method, err))
		}
		return

	default:
		if req.Notif {
			log.Debug(fmt.Sprintf("unhandled notification: %s", req.Method))
			return
		}
		log.Debug(fmt.Sprintf("unhandled request: %s", req.Method))
		if err := conn.ReplyWithError(ctx, req.ID, &jsonrpc2.Error{
			Code:    jsonrpc2.CodeMethodNotFound,
			Message: fmt.Sprintf("method not found: %s", req.Method),
		}); err != nil {
			log.Error(fmt.Sprintf("reply error for %s: %v", req.Method, err))
		}
	}
}

func (h *clientHandler) handlePublishDiagnostics(req *jsonrpc2.Request) {
	var params lsptypes.PublishDiagnosticsParams
	if req.Params == nil {
		return
	}
	if err := json.Unmarshal(*req.Params, &params); err != nil {
		log.Error(fmt.Sprintf("bad publishDiagnostics params: %v", err))
		return
	}
	h.client.diagnostics.set(params.URI, params.Diagnostics)
}

func (h *clientHandler) handleLogMessage(req *jsonrpc2.Request) {
	if req.Params == nil {
		return
	}
	var raw map[string]any
	if err := json.Unmarshal(*req.Params, &raw); err != nil {
		return
	}
	log.Info(fmt.Sprintf("[server %s] %v", req.Method, raw["message"]))
}

func (h *clientHandler) handleRegisterCapability(ctx context.Context, conn *jsonrpc2.Conn, req *jsonrpc2.Request) {
	var params lsptypes.RegistrationParams
	if req.Params != nil {
		if err := json.Unmarshal(*req.Params, &params); err != nil {
			log.Error(fmt.Sprintf("bad registerCapability params: %v", err))
			h.replyError(ctx, conn, req, err)
			return
		}
	}

	var added []WatcherRegistration

	for _, reg := range params.Registrations {
		if reg.Method != "workspace/didChangeWatchedFiles" {
			continue
		}

		optsJSON, err := json.Marshal(reg.RegisterOptions)
		if err != nil {
			continue
		}
		var opts lsptypes.DidChangeWatchedFilesRegistrationOptions
		if err := json.Unmarshal(optsJSON, &opts); err != nil {
			continue
		}

		for _, w := range opts.Watchers {
			pattern, ok := globPatternString(w.GlobPattern)
			if !ok {
				continue
			}
			var kind lsptypes.WatchKind
			if w.Kind != nil {
				kind = *w.Kind
			}
			added = append(added, WatcherRegistration{GlobPattern: pattern, Kind: kind})
		}
	}

	if len(added) > 0 {
		h.client.watchers.append(added...)
		if h.client.onRegisterCapability != nil {
			h.client.onRegisterCapability(ctx, added)
		}
	}

	if !req.Notif {
		if err := conn.Reply(ctx, req.ID, nil); err != nil {
			log.Error(fmt.Sprintf("reply error for registerCapability: %v", err))
		}
	}
}

// globPatternString extracts the glob pattern from a FileSystemWatcher's
// GlobPattern value, which the LSP spec allows to be either a plain string
// or a {pattern, baseUri} RelativePattern object.
func globPatternString(raw any) (string, bool) {
	switch v := raw.(type) {
	case string:
		return v, true
	case map[string]any:
		if p, ok := v["pattern"].(string); ok {
			return p, true
		}
	}
	return "", false
}

func (h *clientHandler) handleConfiguration(conn *jsonrpc2.Conn, req *jsonrpc2.Request) {
	if req.Notif {
		return
	}

	var params lsptypes.ConfigurationParams
	if req.Params != nil {
		_ = json.Unmarshal(*req.Params, &params)
	}

	result := make([]map[string]any, len(params.Items))
	for i := range params.Items {
		result[i] = map[string]any{}
	}

	if err := conn.Reply(context.Background(), req.ID, result); err != nil {
		log.Error(fmt.Sprintf("reply error for workspace/configuration: %v", err))
	}
}

func (h *clientHandler) handleApplyEdit(conn *jsonrpc2.Conn, req *jsonrpc2.Request) {
	if req.Notif {
		return
	}
	result := lsptypes.ApplyWorkspaceEditResult{Applied: true}
	if err := conn.Reply(context.Background(), req.ID, result); err != nil {
		log.Error(fmt.Sprintf("reply error for workspace/applyEdit: %v", err))
	}
}

func (h *clientHandler) replyError(ctx context.Context, conn *jsonrpc2.Conn, req *jsonrpc2.Request, err error) {
	if req.Notif {
		return
	}
	if replyErr := conn.ReplyWithError(ctx, req.ID, &jsonrpc2.Error{
		Code:    jsonrpc2.CodeParseError,
		Message: err.Error(),
	}); replyErr != nil {
		log.Error(fmt.Sprintf("reply error for %s: %v", req.Method, replyErr))
	}
}
