// Package watch notifies when a local dataset file changes.
package watch

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/custodia-labs/cloudtiles/internal/core/ports/driven"
	"github.com/custodia-labs/cloudtiles/internal/logger"
)

// Ensure FileWatcher implements the interface.
var _ driven.DatasetWatcher = (*FileWatcher)(nil)

// DefaultDebounce coalesces the burst of events a single save produces.
const DefaultDebounce = 200 * time.Millisecond

// FileWatcher watches dataset files with fsnotify. The parent directory is
// watched rather than the file so that editors which save by rename are
// still seen.
type FileWatcher struct {
	Debounce time.Duration
}

// NewFileWatcher creates a watcher with the default debounce.
func NewFileWatcher() *FileWatcher {
	return &FileWatcher{Debounce: DefaultDebounce}
}

// Watch sends on the returned channel after each change to path. The
// channel is closed when ctx is done.
func (w *FileWatcher) Watch(ctx context.Context, path string) (<-chan struct{}, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolving %s: %w", path, err)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating watcher: %w", err)
	}
	if err := fsw.Add(filepath.Dir(abs)); err != nil {
		_ = fsw.Close()
		return nil, fmt.Errorf("watching %s: %w", filepath.Dir(abs), err)
	}

	out := make(chan struct{}, 1)
	go w.run(ctx, fsw, abs, out)

	logger.Debug("watching %s", abs)
	return out, nil
}

func (w *FileWatcher) run(ctx context.Context, fsw *fsnotify.Watcher, target string, out chan<- struct{}) {
	defer close(out)
	defer fsw.Close()

	debounce := w.Debounce
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	var (
		timer   *time.Timer
		timerCh <-chan time.Time
	)

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
			if !handleFsEvent(event, target) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(debounce)
			} else {
				timer.Reset(debounce)
			}
			timerCh = timer.C

		case err, ok := <-fsw.Errors:
			if !ok {
				return
			}
			logger.Warn("dataset watcher: %v", err)

		case <-timerCh:
			timerCh = nil
			select {
			case out <- struct{}{}:
			default:
				// a notification is already pending
			}
		}
	}
}

// handleFsEvent reports whether event is a content change to target.
func handleFsEvent(event fsnotify.Event, target string) bool {
	if filepath.Clean(event.Name) != target {
		return false
	}
	return event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename)
}
