package lsp

import (
	"fmt"
	"path/filepath"
	"strings"
	"sync"

	"rockerboo/mcp-lsp-bridge/lsptypes"
)

// openFileEntry is the Open-File Registry's value: the version last
// reported to the server for a URI.
type openFileEntry struct {
	version int32
}

// openFileRegistry maps a document URI to its didOpen/didChange version.
// A URI is present iff the server has seen a didOpen not yet followed by a
// didClose; version strictly increases per URI.
type openFileRegistry struct {
	mu      sync.RWMutex
	entries map[string]*openFileEntry
}

func newOpenFileRegistry() *openFileRegistry {
	return &openFileRegistry{entries: make(map[string]*openFileEntry)}
}

func (r *openFileRegistry) isOpen(uri string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.entries[uri]
	return ok
}

func (r *openFileRegistry) open(uri string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries[uri] = &openFileEntry{version: 1}
}

// bumpVersion increments and returns the new version for uri. Returns
// (0, false) if uri is not open.
func (r *openFileRegistry) bumpVersion(uri string) (int32, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.entries[uri]
	if !ok {
		return 0, false
	}
	e.version++
	return e.version, true
}

func (r *openFileRegistry) close(uri string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.entries, uri)
}

func (r *openFileRegistry) openURIs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	uris := make([]string, 0, len(r.entries))
	for uri := range r.entries {
		uris = append(uris, uri)
	}
	return uris
}

// diagnosticsStore maps a URI to the most recent diagnostics list the
// server published for it. The server's last message is authoritative;
// lists are never merged.
type diagnosticsStore struct {
	mu    sync.RWMutex
	byURI map[string][]lsptypes.Diagnostic
}

func newDiagnosticsStore() *diagnosticsStore {
	return &diagnosticsStore{byURI: make(map[string][]lsptypes.Diagnostic)}
}

func (d *diagnosticsStore) set(uri string, diags []lsptypes.Diagnostic) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.byURI[uri] = diags
}

func (d *diagnosticsStore) get(uri string) []lsptypes.Diagnostic {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.byURI[uri]
}

// WatcherRegistration is one {globPattern, kind} entry forwarded from a
// client/registerCapability request for workspace/didChangeWatchedFiles.
type WatcherRegistration struct {
	GlobPattern string
	Kind        lsptypes.WatchKind // 0 means "all three: create, change, delete"
}

// Matches reports whether changeType is covered by this registration's kind
// mask. A zero Kind matches everything.
func (w WatcherRegistration) Matches(changeType lsptypes.WatchKind) bool {
	if w.Kind == 0 {
		return true
	}
	return w.Kind&changeType != 0
}

// watcherRegistry is the ordered, append-only list of dynamic watcher
// registrations the server has asked for. There is no deregistration.
type watcherRegistry struct {
	mu            sync.RWMutex
	registrations []WatcherRegistration
}

func newWatcherRegistry() *watcherRegistry {
	return &watcherRegistry{}
}

func (w *watcherRegistry) append(regs ...WatcherRegistration) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.registrations = append(w.registrations, regs...)
}

func (w *watcherRegistry) snapshot() []WatcherRegistration {
	w.mu.RLock()
	defer w.mu.RUnlock()
	out := make([]WatcherRegistration, len(w.registrations))
	copy(out, w.registrations)
	return out
}

// languageIDByExtension maps file extensions (lowercased, with leading dot)
// to LSP languageId strings.
var languageIDByExtension = map[string]string{
	".ts":    "typescript",
	".tsx":   "typescriptreact",
	".js":    "javascript",
	".jsx":   "javascriptreact",
	".py":    "python",
	".go":    "go",
	".rs":    "rust",
	".c":     "c",
	".cpp":   "cpp",
	".cc":    "cpp",
	".cxx":   "cpp",
	".h":     "c",
	".hpp":   "cpp",
	".java":  "java",
	".cs":    "csharp",
	".rb":    "ruby",
	".php":   "php",
	".swift": "swift",
	".kt":    "kotlin",
	".scala": "scala",
	".r":     "r",
	".sh":    "shell",
	".bash":  "shell",
	".zsh":   "shell",
	".fish":  "shell",
}

// LanguageIDForPath returns the LSP languageId for path's extension,
// falling back to "plaintext".
func LanguageIDForPath(path string) string {
	ext := strings.ToLower(filepath.Ext(path))
	if id, ok := languageIDByExtension[ext]; ok {
		return id
	}
	return "plaintext"
}

// ErrMissingOpenFile is returned when an operation that requires an open
// file (e.g. notifyChange) is attempted against a URI the registry has not
// seen a didOpen for.
type ErrMissingOpenFile struct {
	URI string
}

func (e *ErrMissingOpenFile) Error() string {
	return fmt.Sprintf("file not open: %s", e.URI)
}
