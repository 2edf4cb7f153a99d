package replay

import (
	"os"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/rxtech-lab/replay-miner/internal/contract"
	"github.com/rxtech-lab/replay-miner/internal/logger"
	"github.com/rxtech-lab/replay-miner/pkg/errors"
	"go.uber.org/zap"
)

// Watcher signals when files appear in a contract's artifact directory. It
// watches the replay root as well, because the application creates the
// contract directory on its first download.
//
// Signals are coalesced: Wake never holds more than one pending value.
type Watcher struct {
	watcher *fsnotify.Watcher
	dir     string
	wake    chan struct{}
	done    chan struct{}
	once    sync.Once
	log     *logger.Logger
}

// Watch starts watching the artifact directory of c. The replay root must exist.
func (s *Store) Watch(c contract.Contract, log *logger.Logger) (*Watcher, error) {
	if _, err := os.Stat(s.root); err != nil {
		return nil, errors.Wrap(errors.ErrCodeWatcherFailed, "replay root is not accessible", err)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeWatcherFailed, "failed to create file watcher", err)
	}

	if err := fsw.Add(s.root); err != nil {
		fsw.Close()

		return nil, errors.Wrap(errors.ErrCodeWatcherFailed, "failed to watch replay root", err)
	}

	dir := s.ContractDir(c)
	if info, err := os.Stat(dir); err == nil && info.IsDir() {
		if err := fsw.Add(dir); err != nil {
			fsw.Close()

			return nil, errors.Wrap(errors.ErrCodeWatcherFailed, "failed to watch contract directory", err)
		}
	}

	w := &Watcher{
		watcher: fsw,
		dir:     dir,
		wake:    make(chan struct{}, 1),
		done:    make(chan struct{}),
		log:     log.Named("watcher"),
	}

	go w.loop()

	return w, nil
}

// Wake returns a channel that receives a value after files change in the
// contract directory.
func (w *Watcher) Wake() <-chan struct{} {
	return w.wake
}

// Close stops the watcher.
func (w *Watcher) Close() error {
	var err error

	w.once.Do(func() {
		close(w.done)
		err = w.watcher.Close()
	})

	return err
}

func (w *Watcher) loop() {
	for {
		select {
		case <-w.done:
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}

			w.handle(event)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}

			w.log.Debug("File watcher error", zap.Error(err))
		}
	}
}

func (w *Watcher) handle(event fsnotify.Event) {
	name := filepath.Clean(event.Name)

	if name == w.dir && event.Has(fsnotify.Create) {
		if err := w.watcher.Add(w.dir); err != nil {
			w.log.Debug("Failed to watch new contract directory",
				zap.String("dir", w.dir),
				zap.Error(err),
			)
		}

		w.notify()

		return
	}

	if filepath.Dir(name) == w.dir && (event.Has(fsnotify.Create) || event.Has(fsnotify.Write) || event.Has(fsnotify.Rename)) {
		w.notify()
	}
}

func (w *Watcher) notify() {
	select {
	case w.wake <- struct{}{}:
	default:
	}
}
