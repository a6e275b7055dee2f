package replay

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
	"github.com/tessro/reel/internal/core"
)

// DefaultDebounce coalesces the burst of events an editor save produces.
const DefaultDebounce = 100 * time.Millisecond

// ReloadFunc receives a freshly decoded replay, or the decode error.
type ReloadFunc func(seq *core.Sequence, err error)

// Watcher reloads a replay file whenever it changes on disk.
type Watcher struct {
	path     string
	debounce time.Duration
	fsw      *fsnotify.Watcher
	log      zerolog.Logger

	mu    sync.Mutex
	timer *time.Timer
}

// NewWatcher starts watching the directory that holds path. The directory is
// watched rather than the file so that editors which replace the file on
// save are still seen.
func NewWatcher(path string, debounce time.Duration, logger zerolog.Logger) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}
	if err := fsw.Add(filepath.Dir(abs)); err != nil {
		_ = fsw.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", filepath.Dir(abs), err)
	}

	return &Watcher{
		path:     abs,
		debounce: debounce,
		fsw:      fsw,
		log:      logger,
	}, nil
}

// Path returns the watched file.
func (w *Watcher) Path() string {
	return w.path
}

// Run delivers reloads to fn until ctx is cancelled or the underlying
// watch closes. fn is called from a timer goroutine.
func (w *Watcher) Run(ctx context.Context, fn ReloadFunc) {
	defer w.fsw.Close()
	defer w.stopTimer()

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			w.schedule(ctx, fn)

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.log.Warn().Err(err).Str("path", w.path).Msg("watch error")
		}
	}
}

func (w *Watcher) schedule(ctx context.Context, fn ReloadFunc) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.timer != nil {
		w.timer.Stop()
	}

	w.timer = time.AfterFunc(w.debounce, func() {
		if ctx.Err() != nil {
			return
		}
		seq, err := DecodeFile(w.path)
		w.log.Debug().Str("path", w.path).Err(err).Msg("replay changed")
		fn(seq, err)
	})
}

func (w *Watcher) stopTimer() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.timer != nil {
		w.timer.Stop()
	}
}
