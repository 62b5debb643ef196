package main

import (
	"context"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	lottie "github.com/gogpu/gg-lottie"
)

// debounce coalesces the bursts of events editors produce on save.
const debounce = 100 * time.Millisecond

// watch calls onChange after path is written, until ctx is done. The
// directory is watched so that files replaced by rename are still seen.
func watch(ctx context.Context, path string, onChange func()) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		return err
	}
	target := filepath.Clean(path)
	lottie.Logger().Info("lottie2png: watching", "path", target)

	var timer <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if event.Op&fsnotify.Write == fsnotify.Write ||
				event.Op&fsnotify.Create == fsnotify.Create ||
				event.Op&fsnotify.Rename == fsnotify.Rename {
				timer = time.After(debounce)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			lottie.Logger().Warn("lottie2png: watch error", "err", err)
		case <-timer:
			timer = nil
			onChange()
		}
	}
}
