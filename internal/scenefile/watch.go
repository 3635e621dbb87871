package scenefile

import (
	"context"
	"hash/crc32"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/Faultbox/meshview/internal/logger"
)

// Watcher reloads a scene file when its contents change. The containing
// directory is watched so editors that replace the file on save are seen.
type Watcher struct {
	path     string
	opts     Options
	fsw      *fsnotify.Watcher
	checksum uint32
	seen     bool
	log      *zap.Logger
}

// NewWatcher starts watching path. Close releases the watch.
func NewWatcher(path string, opts Options) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Wrap(err, "creating file watcher")
	}
	path = filepath.Clean(path)
	if err := fsw.Add(filepath.Dir(path)); err != nil {
		fsw.Close()
		return nil, errors.Wrapf(err, "watching %s", path)
	}
	return &Watcher{
		path: path,
		opts: opts,
		fsw:  fsw,
		log:  logger.Named("scenefile").With(zap.String("path", path)),
	}, nil
}

// Run loads the scene once and again after every change, passing each result
// to fn. A failed load, including a missing file on the first attempt, is
// reported through fn with a nil scene; watching continues. Run returns when ctx is done or the watcher is closed.
func (w *Watcher) Run(ctx context.Context, fn func(*Scene, error)) error {
	w.reload(fn)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != w.path {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			w.reload(fn)
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			w.log.Warn("watch error", zap.Error(err))
		}
	}
}

// Close stops watching.
func (w *Watcher) Close() error {
	return w.fsw.Close()
}

// reload parses the file if its checksum moved since the last load.
func (w *Watcher) reload(fn func(*Scene, error)) {
	data, err := os.ReadFile(w.path)
	if err != nil {
		// Mid-replace; the Create event that follows retries. A file that
		// was never loaded is reported so a wrong path does not wait silently.
		if os.IsNotExist(err) && w.seen {
			return
		}
		fn(nil, errors.Wrapf(err, "reading scene %s", w.path))
		return
	}
	// Truncated but not yet rewritten.
	if len(data) == 0 {
		return
	}
	if !w.changed(data) {
		return
	}

	scene, err := ParseWithOptions(data, w.opts)
	if err != nil {
		w.log.Warn("reload failed", zap.Error(err))
		fn(nil, errors.Wrapf(err, "loading scene %s", w.path))
		return
	}
	w.log.Info("scene reloaded", zap.Int("nodes", scene.Nodes), zap.Int("clips", len(scene.Clips)))
	fn(scene, nil)
}

// changed records the checksum of data and reports whether it differs from
// the previous one. The first call always reports a change.
func (w *Watcher) changed(data []byte) bool {
	sum := crc32.ChecksumIEEE(data)
	if w.seen && w.checksum == sum {
		return false
	}
	w.checksum = sum
	w.seen = true
	return true
}
