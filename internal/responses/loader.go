package responses

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/titanous/json5"
)

// LoadOverrides overlays an overrides document onto the built-in tables.
// Only the sections present in the document are replaced, so a partial
// file customizes just the keywords, or just the trivia bank, and so on.
// A missing file is not an error.
func (l *Library) LoadOverrides(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("read responses file: %w", err)
	}

	var over Tables
	if err := json5.Unmarshal(data, &over); err != nil {
		return fmt.Errorf("parse responses file: %w", err)
	}

	merged := builtin()
	if len(over.Keywords) > 0 {
		merged.Keywords = over.Keywords
	}
	if len(over.Responses) > 0 {
		merged.Responses = over.Responses
	}
	if len(over.TimeOfDay) > 0 {
		merged.TimeOfDay = over.TimeOfDay
	}
	if len(over.Interactive) > 0 {
		merged.Interactive = over.Interactive
	}
	if len(over.Emotions) > 0 {
		merged.Emotions = over.Emotions
	}
	if len(over.Emojis) > 0 {
		merged.Emojis = over.Emojis
	}
	if len(over.Questions) > 0 {
		merged.Questions = over.Questions
	}
	if len(over.Luck) > 0 {
		merged.Luck = over.Luck
	}
	if len(over.Prayers) > 0 {
		merged.Prayers = over.Prayers
	}
	if len(over.Trivia) > 0 {
		merged.Trivia = over.Trivia
	}

	l.mu.Lock()
	l.tab = merged
	l.mu.Unlock()
	return nil
}

// Watch reloads the overrides document whenever it changes, until ctx is
// done. The watch is on the parent directory so editor save-via-rename
// still triggers a reload.
func (l *Library) Watch(ctx context.Context, path string) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}

	if err := watcher.Add(filepath.Dir(path)); err != nil {
		watcher.Close()
		return fmt.Errorf("watch %s: %w", filepath.Dir(path), err)
	}

	go func() {
		defer watcher.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if event.Name != path {
					continue
				}
				if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
					continue
				}
				if err := l.LoadOverrides(path); err != nil {
					slog.Warn("responses reload failed, keeping previous tables", "path", path, "error", err)
					continue
				}
				slog.Info("responses reloaded", "path", path)
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				slog.Warn("responses watcher error", "error", err)
			}
		}
	}()

	return nil
}
