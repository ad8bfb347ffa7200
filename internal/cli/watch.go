package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/aretw0/virtualide"
	"github.com/fsnotify/fsnotify"
)

// debounce collapses the burst of events editors emit on save.
const debounce = 150 * time.Millisecond

// RunWatch replays the script, then replays it again every time the file
// changes, until ctx is done. Replay errors are reported and watching goes on.
func RunWatch(ctx context.Context, opts ReplayOptions, newIDE func() *virtualide.IDE, w io.Writer, logger *slog.Logger) error {
	path, err := filepath.Abs(opts.ScriptPath)
	if err != nil {
		return err
	}
	opts.ScriptPath = path
	opts.Record = false

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to start watcher: %w", err)
	}
	defer watcher.Close()

	// Watch the directory: editors often replace the file instead of writing it.
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		return fmt.Errorf("failed to watch %s: %w", filepath.Dir(path), err)
	}
	logger.Info("Starting Watcher", "path", path)

	replay := func() {
		if _, err := Replay(ctx, opts, newIDE, nil, w, logger); err != nil {
			printSystemMessage(w, "Replay failed: %v", err)
		}
		printSystemMessage(w, "Watching %s (Ctrl+C to stop)", filepath.Base(path))
	}
	replay()

	var timer *time.Timer
	var fire <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != path || !event.Has(fsnotify.Write|fsnotify.Create) {
				continue
			}
			logger.Debug("Script changed", "op", event.Op.String())
			if timer == nil {
				timer = time.NewTimer(debounce)
			} else {
				timer.Reset(debounce)
			}
			fire = timer.C
		case <-fire:
			fire = nil
			printSystemMessage(w, "Change detected, replaying...")
			replay()
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("Watcher error", "err", err)
		}
	}
}
