package backend

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/atomicstack/deploy-checklist/internal/content"
	"github.com/atomicstack/deploy-checklist/internal/logging/events"
	"github.com/fsnotify/fsnotify"
)

// Event conveys a reloaded tree or the error that prevented the reload.
type Event struct {
	Path string
	Tree content.Tree
	Err  error
}

// Loader reads and validates a content file.
type Loader func(path string) (content.Tree, error)

// Watcher reloads a content file whenever it changes on disk and publishes
// the result.
type Watcher struct {
	path     string
	debounce time.Duration
	load     Loader
	fsw      *fsnotify.Watcher

	ctx    context.Context
	cancel context.CancelFunc

	events chan Event
	wg     sync.WaitGroup
}

// NewWatcher starts watching path. Bursts of file events closer together
// than debounce trigger a single reload. The parent directory is watched so
// editors that save by renaming a temp file are picked up too.
func NewWatcher(path string, debounce time.Duration) (*Watcher, error) {
	return newWatcher(path, debounce, content.LoadFile)
}

func newWatcher(path string, debounce time.Duration, load Loader) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("watch %s: %w", path, err)
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("watch %s: %w", path, err)
	}
	if err := fsw.Add(filepath.Dir(abs)); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("watch %s: %w", path, err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	w := &Watcher{
		path:     abs,
		debounce: debounce,
		load:     load,
		fsw:      fsw,
		ctx:      ctx,
		cancel:   cancel,
		events:   make(chan Event, 4),
	}
	events.Content.Watch(abs)

	w.wg.Add(1)
	go w.run()

	go func() {
		w.wg.Wait()
		close(w.events)
	}()

	return w, nil
}

// Events returns a channel of reload events. It is closed once the watcher
// has stopped.
func (w *Watcher) Events() <-chan Event {
	return w.events
}

// Stop cancels the watcher; use Wait if a clean drain is required.
func (w *Watcher) Stop() {
	w.cancel()
}

// Wait blocks until the watch loop has exited and the events channel is
// closed.
func (w *Watcher) Wait() {
	w.wg.Wait()
}

func (w *Watcher) run() {
	defer w.wg.Done()
	defer w.fsw.Close()

	gate := newReloadGate(w.debounce)
	var timer *time.Timer
	var fire <-chan time.Time
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-w.ctx.Done():
			return
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if !w.relevant(ev) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			fire = timer.C
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			if !w.emit(Event{Path: w.path, Err: fmt.Errorf("watch %s: %w", w.path, err)}) {
				return
			}
		case <-fire:
			fire = nil
			if !gate.wait(w.ctx) {
				return
			}
			tree, err := w.load(w.path)
			if err != nil {
				events.Content.Error(w.path, err)
			} else {
				events.Content.Reload(w.path, len(tree))
			}
			if !w.emit(Event{Path: w.path, Tree: tree, Err: err}) {
				return
			}
		}
	}
}

func (w *Watcher) relevant(ev fsnotify.Event) bool {
	if filepath.Clean(ev.Name) != w.path {
		return false
	}
	return ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) || ev.Has(fsnotify.Rename)
}

func (w *Watcher) emit(evt Event) bool {
	select {
	case <-w.ctx.Done():
		return false
	case w.events <- evt:
		return true
	}
}
