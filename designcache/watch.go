package designcache

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/quillfeed/quillfeed/design"
)

// Watcher observes external rewrites of a project's cached design document.
// The host environment may update the persisted design directly; the session
// observes such updates, it is never pushed to. Stop must be called to
// release filesystem resources.
type Watcher struct {
	cancel context.CancelFunc
	done   chan struct{}
	once   sync.Once
}

// Stop halts the watcher and waits for the underlying goroutine to exit.
func (w *Watcher) Stop() {
	if w == nil {
		return
	}
	w.once.Do(func() {
		w.cancel()
		<-w.done
	})
}

// Watch wires fsnotify around the project's cache file and invokes onChange
// with the re-read document whenever it is rewritten externally. Events are
// debounced because editors and atomic renames fire several in a burst.
func (s *Store) Watch(ctx context.Context, projectID string, onChange func(*design.Document), onError func(error)) (*Watcher, error) {
	if onChange == nil {
		return nil, fmt.Errorf("designcache: watch requires a change callback")
	}

	watchCtx, cancel := context.WithCancel(ctx)
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		cancel()
		return nil, fmt.Errorf("designcache: watch: %w", err)
	}
	if err := watcher.Add(s.dir); err != nil {
		cancel()
		_ = watcher.Close()
		return nil, fmt.Errorf("designcache: watch %s: %w", s.dir, err)
	}

	target := filepath.Clean(s.Path(projectID))
	done := make(chan struct{})
	w := &Watcher{cancel: cancel, done: done}

	go func() {
		defer close(done)
		defer func() {
			if err := watcher.Close(); err != nil && onError != nil {
				onError(fmt.Errorf("designcache: watch close: %w", err))
			}
		}()

		const debounce = 25 * time.Millisecond
		var reloadTimer *time.Timer
		var reloadSignal <-chan time.Time
		scheduleReload := func() {
			if reloadTimer == nil {
				reloadTimer = time.NewTimer(debounce)
			} else {
				if !reloadTimer.Stop() {
					select {
					case <-reloadTimer.C:
					default:
					}
				}
				reloadTimer.Reset(debounce)
			}
			reloadSignal = reloadTimer.C
		}

		for {
			select {
			case <-watchCtx.Done():
				return
			case <-reloadSignal:
				reloadSignal = nil
				if doc, ok := s.Read(projectID); ok {
					onChange(doc)
				}
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) != target {
					continue
				}
				if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
					continue
				}
				scheduleReload()
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				if onError != nil {
					onError(fmt.Errorf("designcache: watch error: %w", err))
				}
			}
		}
	}()

	return w, nil
}
