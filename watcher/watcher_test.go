package watcher

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"rockerboo/mcp-lsp-bridge/lsp"
	"rockerboo/mcp-lsp-bridge/lsptypes"
)

// fakeClient is a minimal in-memory LSPClient for watcher tests.
type fakeClient struct {
	mu            sync.Mutex
	opened        []string
	changed       []string
	watchedEvents []lsptypes.FileEvent
	open          map[string]bool
	regs          []lsp.WatcherRegistration
}

func newFakeClient(regs ...lsp.WatcherRegistration) *fakeClient {
	return &fakeClient{open: map[string]bool{}, regs: regs}
}

func (f *fakeClient) DidOpen(ctx context.Context, path string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.opened = append(f.opened, path)
	f.open[path] = true
	return nil
}

func (f *fakeClient) NotifyChange(ctx context.Context, path string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.changed = append(f.changed, path)
	return nil
}

func (f *fakeClient) NotifyWatchedFileChanges(ctx context.Context, changes []lsptypes.FileEvent) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.watchedEvents = append(f.watchedEvents, changes...)
	return nil
}

func (f *fakeClient) WatcherRegistrations() []lsp.WatcherRegistration {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.regs
}

func (f *fakeClient) IsOpen(path string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.open[path]
}

func (f *fakeClient) openedCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.opened)
}

func TestShouldSkipDirExcludesConfiguredDirs(t *testing.T) {
	root := t.TempDir()
	w, err := New(root, DefaultOptions())
	if err != nil {
		t.Fatal(err)
	}
	defer w.fsw.Close()

	if !w.shouldSkipDir(filepath.Join(root, "node_modules")) {
		t.Error("expected node_modules to be skipped")
	}
	if !w.shouldSkipDir(filepath.Join(root, ".hidden")) {
		t.Error("expected hidden directory to be skipped")
	}
	if w.shouldSkipDir(filepath.Join(root, "src")) {
		t.Error("did not expect src to be skipped")
	}
}

func TestShouldSkipFileExcludesByExtensionAndSize(t *testing.T) {
	root := t.TempDir()
	opts := DefaultOptions()
	opts.MaxFileSize = 10
	w, err := New(root, opts)
	if err != nil {
		t.Fatal(err)
	}
	defer w.fsw.Close()

	small := filepath.Join(root, "main.go")
	if err := os.WriteFile(small, []byte("ok"), 0o644); err != nil {
		t.Fatal(err)
	}
	if w.shouldSkipFile(small) {
		t.Error("did not expect small .go file to be skipped")
	}

	big := filepath.Join(root, "big.go")
	if err := os.WriteFile(big, []byte("0123456789abcdef"), 0o644); err != nil {
		t.Fatal(err)
	}
	if !w.shouldSkipFile(big) {
		t.Error("expected oversized file to be skipped")
	}

	binary := filepath.Join(root, "prog.exe")
	if err := os.WriteFile(binary, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	if !w.shouldSkipFile(binary) {
		t.Error("expected .exe to be skipped")
	}
}

func TestHandleRegisterCapabilityRunsInitialWalkOnce(t *testing.T) {
	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, "a.go"), []byte("package a"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(root, "b.txt"), []byte("not go"), 0o644); err != nil {
		t.Fatal(err)
	}

	client := newFakeClient(lsp.WatcherRegistration{GlobPattern: "**/*.go"})

	w, err := New(root, DefaultOptions())
	if err != nil {
		t.Fatal(err)
	}
	defer w.fsw.Close()
	w.Attach(client)

	ctx := context.Background()
	w.HandleRegisterCapability(ctx, []lsp.WatcherRegistration{{GlobPattern: "**/*.go"}})
	w.HandleRegisterCapability(ctx, []lsp.WatcherRegistration{{GlobPattern: "**/*.go"}})

	deadline := time.Now().Add(2 * time.Second)
	for client.openedCount() == 0 && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}

	w.wg.Wait()

	if client.openedCount() != 1 {
		t.Fatalf("expected exactly 1 file opened (a.go matches **/*.go, b.txt does not), got %d: %v", client.openedCount(), client.opened)
	}
}

func TestMatchingRegistrationKindHonorsKindMask(t *testing.T) {
	root := t.TempDir()
	w, err := New(root, DefaultOptions())
	if err != nil {
		t.Fatal(err)
	}
	defer w.fsw.Close()

	client := newFakeClient(lsp.WatcherRegistration{GlobPattern: "**/*.go", Kind: lsptypes.WatchCreate})

	if w.matchingRegistrationKind(client, "main.go", lsptypes.WatchDelete) {
		t.Error("expected delete to be excluded by a create-only registration")
	}
	if !w.matchingRegistrationKind(client, "main.go", lsptypes.WatchCreate) {
		t.Error("expected create to match a create-only registration")
	}
}
