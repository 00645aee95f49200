package jsonstore

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

// watchDebounce coalesces the burst of events one atomic rewrite produces.
const watchDebounce = 100 * time.Millisecond

type watcher struct {
	fsw    *fsnotify.Watcher
	cancel context.CancelFunc
	done   chan struct{}
}

// Watch reloads the store whenever another process rewrites one of the
// data files. onReload, when non-nil, runs after every successful reload.
// The watcher stops when ctx is cancelled or the store is closed.
func (s *Store) Watch(ctx context.Context, onReload func()) error {
	if s.watcher != nil {
		return fmt.Errorf("store is already watching %s", s.dir)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	if err := fsw.Add(s.dir); err != nil {
		fsw.Close()
		return fmt.Errorf("failed to watch %s: %w", s.dir, err)
	}

	runCtx, cancel := context.WithCancel(ctx)
	w := &watcher{fsw: fsw, cancel: cancel, done: make(chan struct{})}
	s.watcher = w

	go s.watchLoop(runCtx, w, onReload)
	return nil
}

func (s *Store) watchLoop(ctx context.Context, w *watcher, onReload func()) {
	defer close(w.done)
	defer w.fsw.Close()

	var timer *time.Timer
	var pending <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if !s.relevantEvent(event) {
				continue
			}
			s.logger.Debug("data file changed", "file", event.Name, "op", event.Op.String())
			if timer == nil {
				timer = time.NewTimer(watchDebounce)
			} else {
				timer.Reset(watchDebounce)
			}
			pending = timer.C

		case <-pending:
			pending = nil
			if err := s.Reload(); err != nil {
				s.logger.Error("failed to reload store", "error", err)
				continue
			}
			s.logger.Debug("store reloaded", "dir", s.dir)
			if onReload != nil {
				onReload()
			}

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			s.logger.Error("watcher error", "error", err)
		}
	}
}

// relevantEvent filters out our own temp files and unrelated paths; only
// writes and renames of the JSON collections trigger a reload.
func (s *Store) relevantEvent(event fsnotify.Event) bool {
	name := filepath.Base(event.Name)
	if strings.HasPrefix(name, tempFilePrefix) {
		return false
	}
	switch name {
	case notesFile, flashcardsFile, tasksFile:
	default:
		return false
	}
	return event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename)
}

func (w *watcher) stop() error {
	w.cancel()
	select {
	case <-w.done:
	case <-time.After(time.Second):
	}
	return nil
}
