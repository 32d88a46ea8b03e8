// Package watch observes the capture download directory and publishes
// an event for each file the shell writes into it. Capture commands
// only report filenames once they finish; the watcher gives subscribers
// (the monitor TUI in particular) earlier and more reliable signal,
// including for downloads triggered outside the session.
package watch

import (
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"camshell/internal/event"
	"camshell/internal/logging"
)

// debounceWindow coalesces the create/write event bursts a single
// download produces into one notification.
const debounceWindow = 200 * time.Millisecond

// Watcher publishes a FileDownloadedEvent when a new file settles in
// the watched directory.
type Watcher struct {
	watcher *fsnotify.Watcher
	bus     *event.Bus
	logger  *logging.Logger

	stopCh   chan struct{}
	stopOnce sync.Once
}

// New creates a watcher over the given directory. Call Start to begin
// delivering events and Stop to release the inotify handle.
func New(dir string, bus *event.Bus, logger *logging.Logger) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fsw.Add(dir); err != nil {
		_ = fsw.Close()
		return nil, err
	}
	return &Watcher{
		watcher: fsw,
		bus:     bus,
		logger:  logger.With("watch_dir", dir),
		stopCh:  make(chan struct{}),
	}, nil
}

// Start begins watching in a background goroutine.
func (w *Watcher) Start() {
	go w.watchLoop()
}

// Stop stops the watcher and releases its resources. Idempotent.
func (w *Watcher) Stop() {
	w.stopOnce.Do(func() {
		close(w.stopCh)
		_ = w.watcher.Close()
	})
}

// watchLoop processes filesystem events. A download produces a create
// followed by a burst of writes, so events per path are debounced and
// published once the burst goes quiet.
func (w *Watcher) watchLoop() {
	debounce := time.NewTimer(0)
	<-debounce.C

	pending := make(map[string]struct{})

	for {
		select {
		case <-w.stopCh:
			return

		case ev, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if ev.Op&(fsnotify.Create|fsnotify.Write) == 0 {
				continue
			}
			pending[ev.Name] = struct{}{}
			debounce.Reset(debounceWindow)

		case <-debounce.C:
			for path := range pending {
				w.logger.Debug("file downloaded", "path", path)
				w.bus.Publish(event.NewFileDownloadedEvent(path))
			}
			pending = make(map[string]struct{})

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn("watch error", "error", err)
		}
	}
}
