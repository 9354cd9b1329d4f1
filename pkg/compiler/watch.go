package compiler

import (
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watcher recompiles a source file whenever it, or any other .th file in
// the same directory (such as a linked capsule kept beside it), changes on
// disk. Subdirectories are not watched. Editor save
// patterns (write-then-rename, double writes) are collapsed by debouncing:
// the rebuild callback fires once per quiet period, not once per event.
type Watcher struct {
	fw       *fsnotify.Watcher
	debounce time.Duration
	done     chan struct{}
}

// Watch starts watching the directory containing path and invokes rebuild
// after each debounced batch of relevant changes. Stop releases the
// underlying watcher.
func Watch(path string, debounce time.Duration, rebuild func()) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fw.Add(filepath.Dir(path)); err != nil {
		fw.Close()
		return nil, err
	}

	w := &Watcher{fw: fw, debounce: debounce, done: make(chan struct{})}
	go w.loop(rebuild)
	return w, nil
}

func (w *Watcher) loop(rebuild func()) {
	var timer *time.Timer
	var fire <-chan time.Time

	for {
		select {
		case ev, ok := <-w.fw.Events:
			if !ok {
				return
			}
			if !relevant(ev) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			fire = timer.C
		case <-fire:
			fire = nil
			rebuild()
		case _, ok := <-w.fw.Errors:
			if !ok {
				return
			}
		case <-w.done:
			return
		}
	}
}

func relevant(ev fsnotify.Event) bool {
	if filepath.Ext(ev.Name) != ".th" {
		return false
	}
	return ev.Op.Has(fsnotify.Write) || ev.Op.Has(fsnotify.Create) || ev.Op.Has(fsnotify.Rename)
}

// Stop ends the watch loop and closes the filesystem watcher.
func (w *Watcher) Stop() error {
	close(w.done)
	return w.fw.Close()
}
