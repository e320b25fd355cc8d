package procmock

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/zjrosen/procmock/internal/log"
)

// watchDebounce coalesces editor write bursts into one reload.
const watchDebounce = 200 * time.Millisecond

// WatchFixtures loads the fixture file and reloads it whenever it changes,
// until ctx is cancelled. Reloading replaces the configurations of patterns
// already registered from the file and adds new ones; it does not unregister
// patterns removed from the file. Intended for watch-mode test loops.
func (m *Mocker) WatchFixtures(ctx context.Context, path string) error {
	if err := m.LoadFixtures(path); err != nil {
		return err
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating fsnotify watcher: %w", err)
	}

	// Watch the directory, not the file: editors replace files on save,
	// which drops a watch registered on the file itself.
	dir := filepath.Dir(path)
	if err := fsw.Add(dir); err != nil {
		_ = fsw.Close()
		return fmt.Errorf("watching directory %s: %w", dir, err)
	}

	go m.watchLoop(ctx, fsw, path)
	return nil
}

func (m *Mocker) watchLoop(ctx context.Context, fsw *fsnotify.Watcher, path string) {
	defer func() { _ = fsw.Close() }()

	base := filepath.Base(path)
	var timer *time.Timer
	reload := make(chan struct{}, 1)

	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return

		case event, ok := <-fsw.Events:
			if !ok {
				return
			}
			if filepath.Base(event.Name) != base {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(watchDebounce, func() {
				select {
				case reload <- struct{}{}:
				default:
				}
			})

		case <-reload:
			if err := m.LoadFixtures(path); err != nil {
				log.ErrorErr(log.CatFixture, "fixture reload failed", err, "path", path)
				continue
			}
			log.Info(log.CatFixture, "fixtures reloaded", "path", path)

		case err, ok := <-fsw.Errors:
			if !ok {
				return
			}
			log.ErrorErr(log.CatFixture, "fixture watcher error", err, "path", path)
		}
	}
}
