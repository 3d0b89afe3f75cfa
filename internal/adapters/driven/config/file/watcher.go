package file

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"

	"github.com/custodia-labs/tubeqa/internal/core/ports/driven"
	"github.com/custodia-labs/tubeqa/internal/logger"
)

// PromptWatcher reloads a PromptStore whenever a template in its directory changes.
type PromptWatcher struct {
	store driven.PromptStore
	dir   string
}

// NewPromptWatcher creates a watcher for the given prompt directory.
func NewPromptWatcher(store driven.PromptStore, dir string) *PromptWatcher {
	return &PromptWatcher{store: store, dir: dir}
}

// Watch starts watching until ctx is cancelled. The returned channel receives
// the name of each prompt that triggered a reload and is closed when watching stops.
func (w *PromptWatcher) Watch(ctx context.Context) (<-chan string, error) {
	if err := os.MkdirAll(w.dir, 0700); err != nil {
		return nil, fmt.Errorf("create prompt directory: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	if err := watcher.Add(w.dir); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("watch %s: %w", w.dir, err)
	}

	reloads := make(chan string, 8)
	go func() {
		defer close(reloads)
		defer watcher.Close()

		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				name, changed := w.handleFsEvent(event)
				if !changed {
					continue
				}
				w.store.Reload()
				logger.Debug("prompt %q changed, reloaded templates", name)
				select {
				case reloads <- name:
				default:
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				logger.Warn("prompt watcher: %v", err)
			}
		}
	}()

	return reloads, nil
}

// handleFsEvent reports whether the event touches a prompt template and,
// if so, the prompt's name.
func (w *PromptWatcher) handleFsEvent(event fsnotify.Event) (string, bool) {
	if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) &&
		!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
		return "", false
	}

	base := filepath.Base(event.Name)
	if strings.HasPrefix(base, ".") || filepath.Ext(base) != ".txt" {
		return "", false
	}
	return strings.TrimSuffix(base, ".txt"), true
}
