package config

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/gorast/rt"
)

// debounce absorbs editor save bursts (truncate+write, rename-over) into a
// single reload.
const debounce = 100 * time.Millisecond

// Watch reloads path whenever it changes and invokes fn with the new
// configuration. It blocks until ctx is canceled. The parent directory is
// watched rather than the file itself so atomic rename-over saves are
// seen. Reload failures are logged and the previous configuration stays in
// effect.
func Watch(ctx context.Context, path string, fn func(Config)) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("config: watcher: %w", err)
	}
	defer w.Close()

	dir := filepath.Dir(path)
	if err := w.Add(dir); err != nil {
		return fmt.Errorf("config: watch %s: %w", dir, err)
	}

	target, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("config: resolve %s: %w", path, err)
	}

	var timer *time.Timer
	var fire <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			abs, err := filepath.Abs(ev.Name)
			if err != nil || abs != target {
				continue
			}
			if !ev.Op.Has(fsnotify.Write) && !ev.Op.Has(fsnotify.Create) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(debounce)
				fire = timer.C
			} else {
				timer.Reset(debounce)
			}

		case <-fire:
			timer = nil
			fire = nil
			cfg, err := Load(path)
			if err != nil {
				rt.Logger().Warn("config: reload failed", "path", path, "error", err)
				continue
			}
			rt.Logger().Info("config: reloaded", "path", path)
			fn(cfg)

		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			rt.Logger().Warn("config: watch error", "error", err)
		}
	}
}
