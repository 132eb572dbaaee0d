package watcher

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"rockerboo/mcp-lsp-bridge/logger"
	"rockerboo/mcp-lsp-bridge/lsp"
	"rockerboo/mcp-lsp-bridge/lsptypes"
	"rockerboo/mcp-lsp-bridge/uri"

	"github.com/fsnotify/fsnotify"
)

var log = logger.Component("watcher")

// LSPClient is the subset of *lsp.Client the watcher depends on, so tests
// can substitute a fake rather than spawning a language server.
type LSPClient interface {
	DidOpen(ctx context.Context, path string) error
	NotifyChange(ctx context.Context, path string) error
	NotifyWatchedFileChanges(ctx context.Context, changes []lsptypes.FileEvent) error
	WatcherRegistrations() []lsp.WatcherRegistration
	IsOpen(path string) bool
}

// Watcher watches root for file-system changes and forwards them to an
// LSPClient according to its server-registered watched-file patterns.
type Watcher struct {
	root   string
	opts   Options
	ignore *ignoreMatcher

	mu     sync.Mutex
	client LSPClient

	fsw       *fsnotify.Watcher
	debouncer *debouncer

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	initialWalkOnce sync.Once
}

// New creates a Watcher for root. Call Attach before Start if the client
// was not known at construction time; Attach must complete before the
// server can send client/registerCapability, i.e. before Initialized is
// sent.
func New(root string, opts Options) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}

	return &Watcher{
		root:      root,
		opts:      opts,
		ignore:    loadIgnoreMatcher(root),
		fsw:       fsw,
		debouncer: newDebouncer(),
	}, nil
}

// Attach sets the LSP client the watcher forwards events to. Safe to call
// once, before Start.
func (w *Watcher) Attach(client LSPClient) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.client = client
}

func (w *Watcher) getClient() LSPClient {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.client
}

// Start begins the recursive file-system watch and the event-processing
// loop. It does not perform the initial walk; that happens lazily on the
// first dynamic watcher registration, per HandleRegisterCapability.
func (w *Watcher) Start(ctx context.Context) error {
	w.ctx, w.cancel = context.WithCancel(ctx)

	if err := w.addRecursive(w.root); err != nil {
		return fmt.Errorf("failed to watch %s: %w", w.root, err)
	}

	w.wg.Add(1)
	go w.processEvents()

	log.Info(fmt.Sprintf("watching %s", w.root))
	return nil
}

// Stop cancels the underlying file-system watch and lets pending debounce
// timers drain; no further events are delivered.
func (w *Watcher) Stop() {
	if w.cancel != nil {
		w.cancel()
	}
	_ = w.fsw.Close()
	w.wg.Wait()
}

func (w *Watcher) addRecursive(root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && w.shouldSkipDir(path) {
			return filepath.SkipDir
		}
		return w.fsw.Add(path)
	})
}

func (w *Watcher) shouldSkipDir(path string) bool {
	name := filepath.Base(path)
	if strings.HasPrefix(name, ".") && path != w.root {
		return true
	}
	if w.opts.isExcludedDir(name) {
		return true
	}
	if rel, err := filepath.Rel(w.root, path); err == nil {
		if w.ignore.matches(filepath.ToSlash(rel)) {
			return true
		}
	}
	return false
}

// shouldSkipFile applies the exclusion rules (hidden segment, excluded
// extension, gitignore, max size) a candidate file must pass before the
// watcher will open it.
func (w *Watcher) shouldSkipFile(path string) bool {
	rel, err := filepath.Rel(w.root, path)
	if err != nil {
		return true
	}
	rel = filepath.ToSlash(rel)

	for _, seg := range strings.Split(rel, "/") {
		if strings.HasPrefix(seg, ".") {
			return true
		}
	}

	if w.opts.isExcludedExt(strings.ToLower(filepath.Ext(path))) {
		return true
	}

	if w.ignore.matches(rel) {
		return true
	}

	info, err := os.Stat(path)
	if err != nil {
		return true
	}
	if info.Size() > w.opts.MaxFileSize {
		return true
	}

	return false
}

// HandleRegisterCapability is installed as the LSP client's
// RegisterCapabilityHook. On the first non-empty batch of registrations it
// kicks off the initial workspace walk.
func (w *Watcher) HandleRegisterCapability(ctx context.Context, regs []lsp.WatcherRegistration) {
	if len(regs) == 0 {
		return
	}
	w.initialWalkOnce.Do(func() {
		w.wg.Add(1)
		go func() {
			defer w.wg.Done()
			w.runInitialWalk(ctx)
		}()
	})
}

// runInitialWalk opens every workspace file that is not excluded and
// matches at least one server-registered pattern, yielding for ~10ms after
// every batch of 100 opens so the reader loop is never starved.
func (w *Watcher) runInitialWalk(ctx context.Context) {
	client := w.getClient()
	if client == nil {
		return
	}

	opened := 0

	_ = filepath.WalkDir(w.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if ctx.Err() != nil {
			return filepath.SkipAll
		}
		if d.IsDir() {
			if path != w.root && w.shouldSkipDir(path) {
				return filepath.SkipDir
			}
			return nil
		}
		if w.shouldSkipFile(path) {
			return nil
		}

		rel, err := filepath.Rel(w.root, path)
		if err != nil {
			return nil
		}
		rel = filepath.ToSlash(rel)

		if !w.matchesAnyRegistration(client, rel) {
			return nil
		}

		if err := client.DidOpen(ctx, path); err != nil {
			log.Warn(fmt.Sprintf("initial walk: failed to open %s: %v", path, err))
		}

		opened++
		if opened%100 == 0 {
			time.Sleep(10 * time.Millisecond)
		}

		return nil
	})

	log.Info(fmt.Sprintf("initial walk opened %d files under %s", opened, w.root))
}

func (w *Watcher) matchesAnyRegistration(client LSPClient, relPath string) bool {
	for _, reg := range client.WatcherRegistrations() {
		if matchesPattern(reg.GlobPattern, relPath) {
			return true
		}
	}
	return false
}

// matchingRegistrationKind reports whether relPath matches at least one
// registration whose kind mask includes changeType, i.e. whether the event
// should survive step 1 of the event-handling algorithm.
func (w *Watcher) matchingRegistrationKind(client LSPClient, relPath string, changeType lsptypes.WatchKind) bool {
	for _, reg := range client.WatcherRegistrations() {
		if matchesPattern(reg.GlobPattern, relPath) && reg.Matches(changeType) {
			return true
		}
	}
	return false
}

func (w *Watcher) processEvents() {
	defer w.wg.Done()
	for {
		select {
		case <-w.ctx.Done():
			return

		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			w.handleEvent(event)

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			log.Error(fmt.Sprintf("watch error: %v", err))
		}
	}
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	if event.Has(fsnotify.Create) {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			if !w.shouldSkipDir(event.Name) {
				_ = w.fsw.Add(event.Name)
			}
			return
		}
	}

	changeType, ok := classifyEvent(event)
	if !ok {
		return
	}

	if changeType != lsptypes.WatchDelete && w.shouldSkipFile(event.Name) {
		return
	}

	client := w.getClient()
	if client == nil {
		return
	}

	rel, err := filepath.Rel(w.root, event.Name)
	if err != nil {
		return
	}
	rel = filepath.ToSlash(rel)

	if !w.matchingRegistrationKind(client, rel, changeType) {
		return
	}

	docURI := uri.FromPath(event.Name)

	switch changeType {
	case lsptypes.WatchCreate:
		if err := client.DidOpen(w.ctx, event.Name); err != nil {
			log.Warn(fmt.Sprintf("failed to open %s: %v", event.Name, err))
		}

	case lsptypes.WatchChange:
		if client.IsOpen(event.Name) {
			w.debouncer.schedule("change:"+event.Name, w.opts.DebounceTime, func() {
				if err := client.NotifyChange(w.ctx, event.Name); err != nil {
					log.Warn(fmt.Sprintf("failed to notify change for %s: %v", event.Name, err))
				}
			})
			return
		}
		w.scheduleWatchedFileChange(client, event.Name, docURI, lsptypes.FileChangeChanged, changeType)

	case lsptypes.WatchDelete:
		w.scheduleWatchedFileChange(client, event.Name, docURI, lsptypes.FileChangeDeleted, changeType)
	}
}

func (w *Watcher) scheduleWatchedFileChange(client LSPClient, path, docURI string, fileChangeType lsptypes.FileChangeType, kind lsptypes.WatchKind) {
	key := fmt.Sprintf("watched:%s:%d", path, kind)
	w.debouncer.schedule(key, w.opts.DebounceTime, func() {
		changes := []lsptypes.FileEvent{{URI: docURI, Type: fileChangeType}}
		if err := client.NotifyWatchedFileChanges(w.ctx, changes); err != nil {
			log.Warn(fmt.Sprintf("failed to notify watched file change for %s: %v", path, err))
		}
	})
}

func classifyEvent(event fsnotify.Event) (lsptypes.WatchKind, bool) {
	switch {
	case event.Has(fsnotify.Create):
		return lsptypes.WatchCreate, true
	case event.Has(fsnotify.Write), event.Has(fsnotify.Chmod):
		return lsptypes.WatchChange, true
	case event.Has(fsnotify.Remove), event.Has(fsnotify.Rename):
		return lsptypes.WatchDelete, true
	default:
		return 0, false
	}
}
