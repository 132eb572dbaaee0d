// Package lsptypes defines the subset of the Language Server Protocol 3.17
// wire types the bridge needs to speak to a language server: positions,
// ranges, symbols, diagnostics, hover content, and workspace edits.
package lsptypes

// Position is a zero-indexed line/character pair. Character counts UTF-16
// code units, per the LSP spec.
type Position struct {
	Line      uint32 `json:"line"`
	Character uint32 `json:"character"`
}

// Range is a half-open [Start, End) span within a document.
type Range struct {
	Start Position `json:"start"`
	End   Position `json:"end"`
}

// Location identifies a range within a document.
type Location struct {
	URI   string `json:"uri"`
	Range Range  `json:"range"`
}

// LocationLink is definition's richer location shape, carrying both the
// link's own range and the target's range.
type LocationLink struct {
	OriginSelectionRange *Range `json:"originSelectionRange,omitempty"`
	TargetURI            string `json:"targetUri"`
	TargetRange          Range  `json:"targetRange"`
	TargetSelectionRange Range  `json:"targetSelectionRange"`
}

// SymbolKind mirrors LSP's SymbolKind enumeration; only the values the
// bridge's match policy inspects are named.
type SymbolKind int

const (
	SymbolKindMethod SymbolKind = 6
)

// SymbolInformation is the older workspace/symbol result shape: it always
// carries a full location.
type SymbolInformation struct {
	Name          string     `json:"name"`
	Kind          SymbolKind `json:"kind"`
	ContainerName string     `json:"containerName,omitempty"`
	Location      Location   `json:"location"`
}

// WorkspaceSymbol is the newer workspace/symbol result shape: location may
// be URI-only (no range), signaled by Range being nil.
type WorkspaceSymbol struct {
	Name          string     `json:"name"`
	Kind          SymbolKind `json:"kind"`
	ContainerName string     `json:"containerName,omitempty"`
	Location      struct {
		URI   string `json:"uri"`
		Range *Range `json:"range,omitempty"`
	} `json:"location"`
}

// WorkspaceSymbolParams is the request body for workspace/symbol.
type WorkspaceSymbolParams struct {
	Query string `json:"query"`
}

// TextDocumentIdentifier names a document by URI.
type TextDocumentIdentifier struct {
	URI string `json:"uri"`
}

// VersionedTextDocumentIdentifier names a document and the version the
// accompanying edit applies to.
type VersionedTextDocumentIdentifier struct {
	URI     string `json:"uri"`
	Version int32  `json:"version"`
}

// TextDocumentItem is the full document payload sent on didOpen.
type TextDocumentItem struct {
	URI        string `json:"uri"`
	LanguageID string `json:"languageId"`
	Version    int32  `json:"version"`
	Text       string `json:"text"`
}

// DidOpenTextDocumentParams is the notification body for textDocument/didOpen.
type DidOpenTextDocumentParams struct {
	TextDocument TextDocumentItem `json:"textDocument"`
}

// TextDocumentContentChangeEvent describes one change to a document's
// content. Full-document sync (no Range) is all this bridge sends.
type TextDocumentContentChangeEvent struct {
	Text string `json:"text"`
}

// DidChangeTextDocumentParams is the notification body for textDocument/didChange.
type DidChangeTextDocumentParams struct {
	TextDocument   VersionedTextDocumentIdentifier  `json:"textDocument"`
	ContentChanges []TextDocumentContentChangeEvent `json:"contentChanges"`
}

// DidCloseTextDocumentParams is the notification body for textDocument/didClose.
type DidCloseTextDocumentParams struct {
	TextDocument TextDocumentIdentifier `json:"textDocument"`
}

// FileChangeType mirrors LSP's FileChangeType enumeration.
type FileChangeType int

const (
	FileChangeCreated FileChangeType = 1
	FileChangeChanged FileChangeType = 2
	FileChangeDeleted FileChangeType = 3
)

// FileEvent is one entry of a didChangeWatchedFiles notification.
type FileEvent struct {
	URI  string         `json:"uri"`
	Type FileChangeType `json:"type"`
}

// DidChangeWatchedFilesParams is the notification body for
// workspace/didChangeWatchedFiles.
type DidChangeWatchedFilesParams struct {
	Changes []FileEvent `json:"changes"`
}

// WatchKind is a bitset of {Create=1, Change=2, Delete=4}; a zero value
// means "all three" per the LSP spec.
type WatchKind int

const (
	WatchCreate WatchKind = 1
	WatchChange WatchKind = 2
	WatchDelete WatchKind = 4
)

// FileSystemWatcher is one entry of a didChangeWatchedFiles registration.
type FileSystemWatcher struct {
	GlobPattern any        `json:"globPattern"`
	Kind        *WatchKind `json:"kind,omitempty"`
}

// DidChangeWatchedFilesRegistrationOptions carries the watchers the server
// wants notified about.
type DidChangeWatchedFilesRegistrationOptions struct {
	Watchers []FileSystemWatcher `json:"watchers"`
}

// Registration is one entry of a client/registerCapability request.
type Registration struct {
	ID              string `json:"id"`
	Method          string `json:"method"`
	RegisterOptions any    `json:"registerOptions,omitempty"`
}

// RegistrationParams is the request body for client/registerCapability.
type RegistrationParams struct {
	Registrations []Registration `json:"registrations"`
}

// ConfigurationItem is one requested configuration section.
type ConfigurationItem struct {
	ScopeURI string `json:"scopeUri,omitempty"`
	Section  string `json:"section,omitempty"`
}

// ConfigurationParams is the request body for workspace/configuration.
type ConfigurationParams struct {
	Items []ConfigurationItem `json:"items"`
}

// DiagnosticSeverity mirrors LSP's DiagnosticSeverity enumeration.
type DiagnosticSeverity int

const (
	SeverityError       DiagnosticSeverity = 1
	SeverityWarning     DiagnosticSeverity = 2
	SeverityInformation DiagnosticSeverity = 3
	SeverityHint        DiagnosticSeverity = 4
)

func (s DiagnosticSeverity) String() string {
	switch s {
	case SeverityError:
		return "Error"
	case SeverityWarning:
		return "Warning"
	case SeverityInformation:
		return "Information"
	case SeverityHint:
		return "Hint"
	default:
		return "Unknown"
	}
}

// Diagnostic is one compiler/linter message for a document.
type Diagnostic struct {
	Range    Range              `json:"range"`
	Severity DiagnosticSeverity `json:"severity,omitempty"`
	Code     any                `json:"code,omitempty"`
	Source   string             `json:"source,omitempty"`
	Message  string             `json:"message"`
}

// PublishDiagnosticsParams is the notification body for
// textDocument/publishDiagnostics.
type PublishDiagnosticsParams struct {
	URI         string       `json:"uri"`
	Version     *int32       `json:"version,omitempty"`
	Diagnostics []Diagnostic `json:"diagnostics"`
}

// HoverParams is the request body for textDocument/hover.
type HoverParams struct {
	TextDocument TextDocumentIdentifier `json:"textDocument"`
	Position     Position               `json:"position"`
}

// MarkupContent is a MarkupContent-shaped hover result ({kind, value}).
type MarkupContent struct {
	Kind  string `json:"kind"`
	Value string `json:"value"`
}

// MarkedString is the older hover result shape: either a plain string or
// {language, value}.
type MarkedString struct {
	Language string
	Value    string
	IsPlain  bool
}

// Hover is the response to textDocument/hover. Contents may unmarshal as a
// plain string, a MarkedString array, or a single MarkupContent; it is kept
// as the generic decoded JSON value so the hover tool can inspect its shape.
type Hover struct {
	Contents any    `json:"contents"`
	Range    *Range `json:"range,omitempty"`
}

// ReferenceContext controls whether the declaration itself is included.
type ReferenceContext struct {
	IncludeDeclaration bool `json:"includeDeclaration"`
}

// ReferenceParams is the request body for textDocument/references.
type ReferenceParams struct {
	TextDocument TextDocumentIdentifier `json:"textDocument"`
	Position     Position               `json:"position"`
	Context      ReferenceContext       `json:"context"`
}

// RenameParams is the request body for textDocument/rename.
type RenameParams struct {
	TextDocument TextDocumentIdentifier `json:"textDocument"`
	Position     Position               `json:"position"`
	NewName      string                 `json:"newName"`
}

// TextEdit is one replacement within a document.
type TextEdit struct {
	Range   Range  `json:"range"`
	NewText string `json:"newText"`
}

// WorkspaceEdit is a set of per-URI text edits describing a refactoring.
type WorkspaceEdit struct {
	Changes map[string][]TextEdit `json:"changes,omitempty"`
}

// ApplyWorkspaceEditParams is the request body for workspace/applyEdit.
type ApplyWorkspaceEditParams struct {
	Label *string       `json:"label,omitempty"`
	Edit  WorkspaceEdit `json:"edit"`
}

// ApplyWorkspaceEditResult is the response to workspace/applyEdit.
type ApplyWorkspaceEditResult struct {
	Applied bool `json:"applied"`
}

// WorkspaceFolder is one entry of InitializeParams.WorkspaceFolders.
type WorkspaceFolder struct {
	URI  string `json:"uri"`
	Name string `json:"name"`
}

// ClientCapabilities advertises what the bridge, as an LSP client, supports.
// Only the fields the bridge actually relies on are modeled.
type ClientCapabilities struct {
	Workspace    WorkspaceClientCapabilities    `json:"workspace"`
	TextDocument TextDocumentClientCapabilities `json:"textDocument"`
}

type WorkspaceClientCapabilities struct {
	Configuration          bool                        `json:"configuration"`
	DidChangeWatchedFiles  DidChangeWatchedFilesClientCapabilities `json:"didChangeWatchedFiles"`
	ApplyEdit              bool                        `json:"applyEdit"`
	WorkspaceFolders       bool                        `json:"workspaceFolders"`
}

type DidChangeWatchedFilesClientCapabilities struct {
	DynamicRegistration bool `json:"dynamicRegistration"`
}

type TextDocumentClientCapabilities struct {
	Synchronization TextDocumentSyncClientCapabilities `json:"synchronization"`
	PublishDiagnostics PublishDiagnosticsClientCapabilities `json:"publishDiagnostics"`
}

type TextDocumentSyncClientCapabilities struct {
	DynamicRegistration bool `json:"dynamicRegistration"`
	DidSave             bool `json:"didSave"`
}

type PublishDiagnosticsClientCapabilities struct {
	VersionSupport bool `json:"versionSupport"`
}

// InitializeParams is the request body for initialize.
type InitializeParams struct {
	ProcessID         *int32              `json:"processId"`
	RootURI           *string             `json:"rootUri"`
	WorkspaceFolders  []WorkspaceFolder   `json:"workspaceFolders"`
	Capabilities      ClientCapabilities  `json:"capabilities"`
}

// ServerCapabilities is the server's initialize-result capabilities object,
// kept as generic decoded JSON.
type ServerCapabilities map[string]any

// InitializeResult is the response to initialize.
type InitializeResult struct {
	Capabilities ServerCapabilities `json:"capabilities"`
}
