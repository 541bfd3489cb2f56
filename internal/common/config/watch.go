package config

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/joho/godotenv"
)

const dotEnvDebounce = 100 * time.Millisecond

// DotEnvWatcher re-reads a dotenv file whenever it is written or recreated
// and hands the parsed values to onChange. The process environment is not
// modified.
type DotEnvWatcher struct {
	watcher  *fsnotify.Watcher
	path     string
	onChange func(map[string]string)
	onError  func(error)
}

// NewDotEnvWatcher watches the directory holding path so the file may be
// created after startup or replaced by editors.
func NewDotEnvWatcher(path string, onChange func(map[string]string), onError func(error)) (*DotEnvWatcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		watcher.Close()
		return nil, fmt.Errorf("failed to resolve %s: %w", path, err)
	}

	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", filepath.Dir(abs), err)
	}

	if onError == nil {
		onError = func(error) {}
	}

	return &DotEnvWatcher{
		watcher:  watcher,
		path:     abs,
		onChange: onChange,
		onError:  onError,
	}, nil
}

// Start blocks until ctx is done or the watcher is closed.
func (w *DotEnvWatcher) Start(ctx context.Context) {
	var (
		mu    sync.Mutex
		timer *time.Timer
	)
	defer func() {
		mu.Lock()
		if timer != nil {
			timer.Stop()
		}
		mu.Unlock()
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			mu.Lock()
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(dotEnvDebounce, w.reload)
			mu.Unlock()
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.onError(err)
		}
	}
}

func (w *DotEnvWatcher) reload() {
	values, err := godotenv.Read(w.path)
	if err != nil {
		w.onError(fmt.Errorf("failed to read %s: %w", w.path, err))
		return
	}
	w.onChange(values)
}

func (w *DotEnvWatcher) Close() error {
	return w.watcher.Close()
}
