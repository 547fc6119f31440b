package watcher

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/fsnotify/fsnotify"
	"github.com/openacuity/acuity/internal/logger"
)

var log = logger.ForComponent("watcher")

// Watcher observes directory roots for HTML document changes and
// publishes debounced batches to subscribers. It is the filesystem
// implementation of Notifier.
type Watcher struct {
	config      Config
	fsWatcher   *fsnotify.Watcher
	fsWatcherMu sync.Mutex
	debouncer   *Debouncer
	roots       []string

	subMu  sync.RWMutex
	subs   map[int]func([]Change)
	nextID int

	mu      sync.Mutex
	running bool
	ctx     context.Context
	cancel  context.CancelFunc
}

func New(config Config) (*Watcher, error) {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	w := &Watcher{
		config:    config,
		fsWatcher: fsWatcher,
		subs:      make(map[int]func([]Change)),
	}

	w.debouncer = NewDebouncer(config.DebounceWindow, config.MaxBatchSize, w.publish)

	return w, nil
}

// Subscribe registers fn for every flushed change batch. The returned
// cancel func unregisters it.
func (w *Watcher) Subscribe(fn func([]Change)) func() {
	w.subMu.Lock()
	id := w.nextID
	w.nextID++
	w.subs[id] = fn
	w.subMu.Unlock()

	return func() {
		w.subMu.Lock()
		delete(w.subs, id)
		w.subMu.Unlock()
	}
}

func (w *Watcher) publish(changes []Change) {
	log.Info("publishing document changes", "count", len(changes))

	w.subMu.RLock()
	fns := make([]func([]Change), 0, len(w.subs))
	for _, fn := range w.subs {
		fns = append(fns, fn)
	}
	w.subMu.RUnlock()

	for _, fn := range fns {
		fn(changes)
	}
}

func (w *Watcher) addToWatcher(path string) error {
	w.fsWatcherMu.Lock()
	defer w.fsWatcherMu.Unlock()
	return w.fsWatcher.Add(path)
}

// AddRoot watches path and all its non-ignored subdirectories.
func (w *Watcher) AddRoot(path string) error {
	log.Info("adding root to watch", "path", path)

	if err := w.addToWatcher(path); err != nil {
		return err
	}

	w.mu.Lock()
	w.roots = append(w.roots, path)
	w.mu.Unlock()

	return w.walkAndAdd(path)
}

func (w *Watcher) walkAndAdd(path string) error {
	entries, err := os.ReadDir(path)
	if err != nil {
		log.Debug("failed to read directory", "path", path, "error", err)
		return err
	}

	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		fullPath := filepath.Join(path, entry.Name())
		if w.shouldIgnore(fullPath) {
			continue
		}

		if err := w.addToWatcher(fullPath); err != nil {
			log.Debug("failed to watch directory", "path", fullPath, "error", err)
			continue
		}
		w.walkAndAdd(fullPath)
	}

	return nil
}

func (w *Watcher) Start(ctx context.Context) error {
	log.Info("starting document watcher")

	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return nil
	}

	w.running = true
	w.ctx, w.cancel = context.WithCancel(ctx)
	w.mu.Unlock()

	go w.handleEvents()

	return nil
}

func (w *Watcher) handleEvents() {
	for {
		select {
		case <-w.ctx.Done():
			return

		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}

			log.Debug("file event", "path", event.Name, "op", event.Op.String())

			// New directories need their own watch.
			if event.Has(fsnotify.Create) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					if !w.shouldIgnore(event.Name) {
						if err := w.addToWatcher(event.Name); err == nil {
							w.walkAndAdd(event.Name)
						}
					}
				}
			}

			if change := w.convertEvent(event); change != nil {
				w.debouncer.Add(*change)
			}

		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			log.Debug("watch error", "error", err)
		}
	}
}

func (w *Watcher) convertEvent(event fsnotify.Event) *Change {
	if !isDocument(event.Name) || w.shouldIgnore(event.Name) {
		return nil
	}

	var changeType ChangeType

	switch {
	case event.Has(fsnotify.Create):
		changeType = ChangeCreate
	case event.Has(fsnotify.Write):
		changeType = ChangeModify
	case event.Has(fsnotify.Remove):
		changeType = ChangeDelete
	case event.Has(fsnotify.Rename):
		changeType = ChangeRename
	default:
		return nil
	}

	return &Change{
		Path:      event.Name,
		Type:      changeType,
		Timestamp: time.Now(),
	}
}

func isDocument(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".html", ".htm":
		return true
	}
	return false
}

func (w *Watcher) shouldIgnore(path string) bool {
	basename := filepath.Base(path)

	if !w.config.WatchHidden && strings.HasPrefix(basename, ".") {
		return true
	}

	for _, pattern := range w.config.IgnorePatterns {
		if match, _ := doublestar.Match(pattern, path); match {
			return true
		}
	}

	return false
}

func (w *Watcher) Stop() error {
	log.Info("stopping document watcher")

	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		return nil
	}

	w.running = false
	w.cancel()
	w.mu.Unlock()

	w.debouncer.Stop()

	w.fsWatcherMu.Lock()
	defer w.fsWatcherMu.Unlock()
	return w.fsWatcher.Close()
}
