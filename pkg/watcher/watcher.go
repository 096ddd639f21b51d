// Package watcher drives incremental revalidation: it watches a project
// tree, coalesces bursts of file events, and hands changed artifact files to
// a handler (typically validate-and-store-per-file).
package watcher

import (
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/agentlint/agentlint/pkg/lintignore"
	"github.com/agentlint/agentlint/pkg/rules"
)

var watchLog = log.New(os.Stderr, "[agentlint:watcher] ", log.Ltime)

// DefaultDebounce is how long the watcher waits after the last event before
// flushing a batch. Lint feedback wants to be quick; editors save in bursts.
const DefaultDebounce = 500 * time.Millisecond

// Handler receives a batch of changed artifact file paths. Removed paths
// carry removed=true so the handler can clear stored diagnostics.
type Handler interface {
	OnArtifactChanges(changes map[string]Change)
}

// HandlerFunc adapts a function to the Handler interface.
type HandlerFunc func(changes map[string]Change)

func (f HandlerFunc) OnArtifactChanges(changes map[string]Change) { f(changes) }

// Change describes what happened to one file.
type Change struct {
	Type    rules.FileType
	Removed bool
}

// Config configures a Watcher.
type Config struct {
	Root     string
	Debounce time.Duration
	// Ignore filters watched paths; nil falls back to built-in defaults.
	Ignore *lintignore.Matcher
}

// Watcher watches a project root for artifact file changes.
type Watcher struct {
	fsw      *fsnotify.Watcher
	config   Config
	handlers []Handler

	stop     chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup

	mu           sync.Mutex
	pending      map[string]Change
	debounceOnce sync.Once
	dirsWatched  int
}

// New creates a Watcher for the given root.
func New(config Config, handlers ...Handler) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if config.Debounce == 0 {
		config.Debounce = DefaultDebounce
	}
	if config.Ignore == nil {
		config.Ignore = lintignore.NewFromDefaults()
	}
	return &Watcher{
		fsw:      fsw,
		config:   config,
		handlers: handlers,
		stop:     make(chan struct{}),
		pending:  make(map[string]Change),
	}, nil
}

// AddHandler registers an additional change handler.
func (w *Watcher) AddHandler(h Handler) {
	w.handlers = append(w.handlers, h)
}

// Start registers every non-ignored directory under root and begins
// processing events.
func (w *Watcher) Start() error {
	root := w.config.Root
	if root == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return err
		}
		root = cwd
		w.config.Root = root
	}

	err := filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil || !info.IsDir() {
			return nil
		}
		if w.ignoredDir(path) {
			return filepath.SkipDir
		}
		if addErr := w.fsw.Add(path); addErr == nil {
			w.dirsWatched++
		}
		return nil
	})
	if err != nil {
		return err
	}

	w.wg.Add(1)
	go w.processEvents()

	watchLog.Printf("watching %d directories under %s (debounce: %v)", w.dirsWatched, root, w.config.Debounce)
	return nil
}

// Stop stops event processing and closes the underlying watcher.
func (w *Watcher) Stop() error {
	w.stopOnce.Do(func() { close(w.stop) })
	w.wg.Wait()
	return w.fsw.Close()
}

func (w *Watcher) ignoredDir(path string) bool {
	rel, err := filepath.Rel(w.config.Root, path)
	if err != nil {
		rel = path
	}
	return w.config.Ignore.ShouldIgnoreDir(filepath.ToSlash(rel))
}

func (w *Watcher) processEvents() {
	defer w.wg.Done()

	for {
		select {
		case <-w.stop:
			return

		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}

			// New directories get watched as they appear.
			if event.Op&fsnotify.Create != 0 {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					if !w.ignoredDir(event.Name) {
						if err := w.fsw.Add(event.Name); err == nil {
							w.dirsWatched++
						}
					}
					continue
				}
			}

			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) == 0 {
				continue
			}

			name := filepath.Base(event.Name)
			if strings.HasSuffix(name, "~") || strings.HasSuffix(name, ".swp") || strings.HasSuffix(name, ".tmp") {
				continue
			}

			// Only artifact files matter; everything else never produces
			// diagnostics.
			ft := rules.DetectFileType(event.Name)
			if ft == rules.FileTypeUnknown {
				continue
			}
			rel, err := filepath.Rel(w.config.Root, event.Name)
			if err != nil {
				rel = event.Name
			}
			if w.config.Ignore.ShouldIgnoreFile(filepath.ToSlash(rel)) {
				continue
			}

			w.queueChange(event.Name, Change{
				Type:    ft,
				Removed: event.Op&fsnotify.Remove != 0,
			})

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			watchLog.Printf("error: %v", err)
		}
	}
}

func (w *Watcher) queueChange(path string, ch Change) {
	w.mu.Lock()
	w.pending[path] = ch
	w.debounceOnce.Do(func() {
		w.wg.Add(1)
		go func() {
			defer w.wg.Done()
			select {
			case <-time.After(w.config.Debounce):
				w.flushPending()
			case <-w.stop:
			}
		}()
	})
	w.mu.Unlock()
}

func (w *Watcher) flushPending() {
	w.mu.Lock()
	pending := w.pending
	w.pending = make(map[string]Change)
	w.debounceOnce = sync.Once{}
	w.mu.Unlock()

	if len(pending) == 0 {
		return
	}

	watchLog.Printf("revalidating %d changed files", len(pending))
	for _, h := range w.handlers {
		h.OnArtifactChanges(pending)
	}
}
