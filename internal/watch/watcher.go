package watch

import (
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	serr "gotree/internal/errors"
	"gotree/internal/log"

	"github.com/fsnotify/fsnotify"
)

// Change is one filesystem event somewhere under a watched tree.
type Change struct {
	Path      string
	Op        fsnotify.Op
	Timestamp time.Time
}

// Watcher reports changes anywhere below the directories it was given.
// fsnotify only watches single directories, so every subdirectory is added
// on its own and new ones are picked up as they appear.
type Watcher struct {
	directories []string

	changes  chan Change
	stopChan chan struct{}
	done     chan struct{}

	fsWatcher *fsnotify.Watcher

	mutex   sync.RWMutex
	running bool
	closed  bool
}

// New creates a watcher with nothing watched yet.
func New() (*Watcher, error) {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, serr.Wrap(err, "failed to create fsnotify watcher")
	}

	return &Watcher{
		directories: []string{},
		changes:     make(chan Change, 64),
		fsWatcher:   fsWatcher,
	}, nil
}

// AddTree watches root and every directory beneath it. Unreadable
// subdirectories are skipped with a warning; an unusable root is an error.
func (w *Watcher) AddTree(root string) error {
	info, err := os.Stat(root)
	if err != nil {
		return serr.FromOS("cannot watch tree root", root, err)
	}
	if !info.IsDir() {
		return serr.NewFileError("tree root is not a directory", root, serr.InvalidPath, nil)
	}

	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == root {
				return err
			}
			log.LogWithFields(log.F("directory", path), log.F("error", err)).Warn("Skipping unreadable directory")
			return fs.SkipDir
		}
		if !d.IsDir() && path != root {
			return nil
		}
		return w.addDirectory(path)
	})
}

func (w *Watcher) addDirectory(dir string) error {
	if err := w.fsWatcher.Add(dir); err != nil {
		return serr.Wrapf(err, "failed to add directory %s to watcher", dir)
	}

	w.mutex.Lock()
	defer w.mutex.Unlock()
	for _, existing := range w.directories {
		if existing == dir {
			return nil
		}
	}
	w.directories = append(w.directories, dir)
	log.LogWithFields(log.F("directory", dir)).Debug("Watching directory")
	return nil
}

// Changes returns the channel that delivers change events. It is closed
// by Stop.
func (w *Watcher) Changes() <-chan Change {
	return w.changes
}

// Start begins forwarding events in a background goroutine.
func (w *Watcher) Start() error {
	w.mutex.Lock()
	if w.closed {
		w.mutex.Unlock()
		return serr.New("watcher already stopped")
	}
	if w.running {
		w.mutex.Unlock()
		return serr.New("watcher already running")
	}
	w.running = true
	w.stopChan = make(chan struct{})
	w.done = make(chan struct{})
	w.mutex.Unlock()

	go w.loop()
	log.Debug("Watcher started for %d directories", len(w.Directories()))
	return nil
}

func (w *Watcher) loop() {
	defer close(w.done)
	for {
		select {
		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}
			w.handle(event)

		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			log.LogWithFields(log.F("error", err)).Error("fsnotify watcher error")

		case <-w.stopChan:
			return
		}
	}
}

func (w *Watcher) handle(event fsnotify.Event) {
	if event.Op == fsnotify.Chmod {
		return
	}

	if event.Op.Has(fsnotify.Create) {
		// A new directory may already hold entries by the time we see it.
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			if err := w.AddTree(event.Name); err != nil {
				log.LogWithFields(log.F("directory", event.Name), log.F("error", err)).Warn("Cannot watch new directory")
			}
		}
	}

	change := Change{Path: event.Name, Op: event.Op, Timestamp: time.Now()}
	select {
	case w.changes <- change:
	default:
		// A full buffer already guarantees a pending re-render.
		log.LogWithFields(log.F("path", event.Name)).Debug("Change channel full, dropped event")
	}
}

// Stop halts the watcher, releases its watches and closes the Changes
// channel. A stopped watcher cannot be restarted.
func (w *Watcher) Stop() {
	w.mutex.Lock()
	if w.closed {
		w.mutex.Unlock()
		return
	}
	w.closed = true
	wasRunning := w.running
	w.running = false
	if wasRunning {
		close(w.stopChan)
	}
	w.mutex.Unlock()

	if wasRunning {
		<-w.done
	}
	if err := w.fsWatcher.Close(); err != nil {
		log.LogWithFields(log.F("error", err)).Error("Error closing fsnotify watcher")
	}
	close(w.changes)
	log.Debug("Watcher stopped")
}

// IsRunning returns whether the watcher is currently active
func (w *Watcher) IsRunning() bool {
	w.mutex.RLock()
	defer w.mutex.RUnlock()
	return w.running
}

// Directories returns the directories being watched
func (w *Watcher) Directories() []string {
	w.mutex.RLock()
	defer w.mutex.RUnlock()
	dirsCopy := make([]string, len(w.directories))
	copy(dirsCopy, w.directories)
	return dirsCopy
}
