package config

import (
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// settleDelay coalesces the burst of events an editor save produces.
const settleDelay = 100 * time.Millisecond

// Watcher reloads a config file whenever it changes on disk.
// Each successfully reloaded and validated config is sent on Configs;
// read, parse and validation failures are sent on Errors. Both channels
// are closed by Close.
type Watcher struct {
	watcher *fsnotify.Watcher
	path    string
	adjust  func(*FlappyConfig)
	Configs chan FlappyConfig
	Errors  chan error
	closeCh chan struct{}
	done    chan struct{}
	once    sync.Once
}

// WatchFlappy watches path. adjust, if not nil, is applied to every
// reloaded config before validation, so command-line overrides survive reloads.
func WatchFlappy(path string, adjust func(*FlappyConfig)) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("config: watch %s: %w", path, err)
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("config: watch %s: %w", path, err)
	}
	// Watch the directory; editors often replace the file instead of writing it
	if err := fw.Add(filepath.Dir(abs)); err != nil {
		_ = fw.Close()
		return nil, fmt.Errorf("config: watch %s: %w", path, err)
	}

	w := &Watcher{
		watcher: fw,
		path:    abs,
		adjust:  adjust,
		Configs: make(chan FlappyConfig, 1),
		Errors:  make(chan error, 1),
		closeCh: make(chan struct{}),
		done:    make(chan struct{}),
	}
	go w.run()
	return w, nil
}

// Path returns the absolute path being watched.
func (w *Watcher) Path() string {
	return w.path
}

// Close stops watching and closes Configs and Errors.
func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.closeCh)
		err = w.watcher.Close()
		<-w.done
		close(w.Configs)
		close(w.Errors)
	})
	return err
}

func (w *Watcher) run() {
	defer close(w.done)

	settle := time.NewTimer(settleDelay)
	settle.Stop()
	defer settle.Stop()

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			settle.Reset(settleDelay)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.sendError(err)
		case <-settle.C:
			w.reload()
		case <-w.closeCh:
			return
		}
	}
}

func (w *Watcher) reload() {
	cfg, err := loadFile(w.path)
	if err != nil {
		w.sendError(err)
		return
	}
	if w.adjust != nil {
		w.adjust(&cfg)
	}
	if err := cfg.Validate(); err != nil {
		w.sendError(fmt.Errorf("config %s: %w", w.path, err))
		return
	}

	// Keep only the newest config if the reader is behind
	select {
	case <-w.Configs:
	default:
	}
	w.Configs <- cfg
}

func (w *Watcher) sendError(err error) {
	select {
	case w.Errors <- err:
	default:
	}
}
