package storage

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// watchDebounce coalesces the burst of events a single atomic save produces
// (temp-file create, write, rename) into one notification.
const watchDebounce = 250 * time.Millisecond

// Watch reports changes to the activity snapshot file until ctx is done.
// Each value on the returned channel means the snapshot was rewritten on
// disk, possibly by another process; callers reload and must not re-save in
// response, or two watching processes would feed each other forever.
func (s *Store) Watch(ctx context.Context) (<-chan struct{}, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("storage error creating watcher: %w", err)
	}
	if err := watcher.Add(s.base); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("storage error watching %s: %w", s.base, err)
	}

	changes := make(chan struct{}, 1)
	go func() {
		defer watcher.Close()
		defer close(changes)

		var debounce *time.Timer
		var debounceC <-chan time.Time
		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Base(event.Name) != activitiesFile {
					continue
				}
				if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
					continue
				}
				if debounce == nil {
					debounce = time.NewTimer(watchDebounce)
					debounceC = debounce.C
				} else {
					debounce.Reset(watchDebounce)
				}
			case <-debounceC:
				debounce = nil
				debounceC = nil
				select {
				case changes <- struct{}{}:
				default: // a reload is already pending
				}
			case _, ok := <-watcher.Errors:
				if !ok {
					return
				}
			}
		}
	}()
	return changes, nil
}
