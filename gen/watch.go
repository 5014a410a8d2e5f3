package gen

import (
	"context"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// settleDelay collapses the bursts of events editors emit on save into
// a single regeneration.
const settleDelay = 200 * time.Millisecond

// Watch regenerates the target whenever the schema file at path
// changes. It generates once up front, then blocks until ctx is
// canceled or the watcher breaks. Failures after the first generation
// are logged and watching continues.
func Watch(ctx context.Context, path string, opts ...Option) error {
	if _, err := regenerate(ctx, path, opts); err != nil {
		return err
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return NewGenerationError("watch", path, "creating watcher", err)
	}
	defer w.Close()
	// Watch the directory rather than the file. Editors often save by
	// renaming a temporary file over the original, which silently drops
	// a watch placed on the file itself.
	if err := w.Add(filepath.Dir(path)); err != nil {
		return NewGenerationError("watch", path, "watching schema directory", err)
	}
	schema := filepath.Clean(path)
	settle := time.NewTimer(settleDelay)
	if !settle.Stop() {
		<-settle.C
	}
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != schema {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
				continue
			}
			settle.Reset(settleDelay)
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			slog.Error("schema watch error", "schema", path, "err", err)
		case <-settle.C:
			skipped, err := regenerate(ctx, path, opts)
			switch {
			case err != nil:
				slog.Error("regeneration failed", "schema", path, "err", err)
			case skipped:
				slog.Debug("schema unchanged", "schema", path)
			default:
				slog.Info("schema regenerated", "schema", path)
			}
		}
	}
}

func regenerate(ctx context.Context, path string, opts []Option) (skipped bool, err error) {
	s, err := Load(path)
	if err != nil {
		return false, err
	}
	g, err := NewGenerator(s, opts...)
	if err != nil {
		return false, err
	}
	return g.Run(ctx)
}
