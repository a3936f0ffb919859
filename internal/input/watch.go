package input

import (
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
)

// KeymapWatcher reports changes to a keymap file.
// It only forwards notifications; the frame owner performs the reload
// on the main thread.
type KeymapWatcher struct {
	watcher *fsnotify.Watcher
	target  string
	Changed chan struct{}
	errs    chan error
	closeCh chan struct{}
	once    sync.Once
}

// NewKeymapWatcher watches the directory containing path.
// Editors often replace files instead of writing them, so the directory is
// watched rather than the file itself.
func NewKeymapWatcher(path string) (*KeymapWatcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		_ = w.Close()
		return nil, err
	}
	if err := w.Add(filepath.Dir(abs)); err != nil {
		_ = w.Close()
		return nil, err
	}

	kw := &KeymapWatcher{
		watcher: w,
		target:  abs,
		Changed: make(chan struct{}, 1),
		errs:    make(chan error, 1),
		closeCh: make(chan struct{}),
	}
	go kw.run()
	return kw, nil
}

// Poll reports whether the file changed since the last call. Never blocks.
func (kw *KeymapWatcher) Poll() bool {
	select {
	case <-kw.Changed:
		return true
	default:
		return false
	}
}

// Err returns the oldest undelivered watch error, or nil. Never blocks.
// Errors arriving while one is pending are dropped.
func (kw *KeymapWatcher) Err() error {
	select {
	case err := <-kw.errs:
		return err
	default:
		return nil
	}
}

// Close stops the watcher
func (kw *KeymapWatcher) Close() error {
	var err error
	kw.once.Do(func() {
		close(kw.closeCh)
		err = kw.watcher.Close()
	})
	return err
}

func (kw *KeymapWatcher) run() {
	for {
		select {
		case event, ok := <-kw.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if abs, err := filepath.Abs(event.Name); err != nil || abs != kw.target {
				continue
			}
			// Coalesce: one pending notification is enough, the reader
			// always sees the latest file contents
			select {
			case kw.Changed <- struct{}{}:
			default:
			}
		case err, ok := <-kw.watcher.Errors:
			if !ok {
				return
			}
			select {
			case kw.errs <- err:
			default:
			}
		case <-kw.closeCh:
			return
		}
	}
}
