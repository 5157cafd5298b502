package snapshot

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"dailycoach/internal/engine"
	"dailycoach/internal/platform/logger"
)

// DefaultDebounce collapses editor save bursts into one reload
const DefaultDebounce = 2 * time.Second

// Watcher следит за файлом снимка и перечитывает его при изменении
type Watcher struct {
	path     string
	debounce time.Duration
	log      *logger.Logger
}

// NewWatcher создаёт наблюдатель за файлом снимка
func NewWatcher(path string, debounce time.Duration, log *logger.Logger) *Watcher {
	if log == nil {
		log = logger.Nop()
	}
	return &Watcher{path: path, debounce: debounce, log: log}
}

// Watch calls onChange with the loaded snapshot once at start and after every change,
// until ctx is cancelled. Bad files are logged and skipped.
func (w *Watcher) Watch(ctx context.Context, onChange func(engine.Snapshot)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	// следим за каталогом: редакторы часто пересоздают файл при сохранении
	if err := watcher.Add(filepath.Dir(w.path)); err != nil {
		return fmt.Errorf("watch %s: %w", w.path, err)
	}
	target := filepath.Clean(w.path)

	w.reload(onChange)

	var (
		timer  *time.Timer
		timerC <-chan time.Time
	)
	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				if !timer.Stop() {
					select {
					case <-timer.C:
					default:
					}
				}
				timer.Reset(w.debounce)
			}
			timerC = timer.C
		case <-timerC:
			timerC = nil
			w.log.Info("snapshot changed", "path", w.path)
			w.reload(onChange)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			w.log.Warn("watcher error", "error", err)
		}
	}
}

func (w *Watcher) reload(onChange func(engine.Snapshot)) {
	snap, err := Load(w.path)
	if err != nil {
		w.log.Error("load snapshot", "path", w.path, "error", err)
		return
	}
	onChange(snap)
}
