package prefabs

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/cespare/xxhash/v2"
	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// Watcher reports prefab files whose contents changed. Editors often write
// a file several times per save; events that leave the bytes unchanged are
// dropped.
type Watcher struct {
	watcher *fsnotify.Watcher
	Events  chan string
	Errors  chan error
	closeCh chan struct{}
	once    sync.Once
	log     *zap.Logger
}

func NewWatcher(log *zap.Logger, dirs ...string) (*Watcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	for _, dir := range dirs {
		if err := w.Add(dir); err != nil {
			_ = w.Close()
			return nil, err
		}
	}

	if log == nil {
		log = zap.NewNop()
	}
	watcher := &Watcher{
		watcher: w,
		Events:  make(chan string, 16),
		Errors:  make(chan error, 1),
		closeCh: make(chan struct{}),
		log:     log,
	}
	go watcher.run()
	return watcher, nil
}

func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.closeCh)
		err = w.watcher.Close()
	})
	return err
}

func (w *Watcher) run() {
	defer close(w.Events)
	defer close(w.Errors)

	hashes := make(map[string]uint64)
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) == 0 {
				continue
			}
			if !IsWatchedFile(event.Name) {
				continue
			}
			if !changed(hashes, event.Name) {
				w.log.Debug("prefab unchanged", zap.String("file", event.Name))
				continue
			}
			select {
			case w.Events <- event.Name:
			case <-w.closeCh:
				return
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			select {
			case w.Errors <- err:
			default:
				w.log.Warn("prefab watcher error dropped", zap.Error(err))
			}
		case <-w.closeCh:
			return
		}
	}
}

// changed hashes the file and reports whether it differs from the last
// hash seen for that path. A file that cannot be read counts as changed.
func changed(hashes map[string]uint64, path string) bool {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			delete(hashes, path)
		}
		return true
	}
	sum := xxhash.Sum64(data)
	if prev, ok := hashes[path]; ok && prev == sum {
		return false
	}
	hashes[path] = sum
	return true
}

func IsWatchedFile(path string) bool {
	return isSpecFile(path) || isScriptFile(path) || isColliderFile(path)
}

func isSpecFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml"
}

func isScriptFile(path string) bool {
	return strings.ToLower(filepath.Ext(path)) == ".tengo"
}

func isColliderFile(path string) bool {
	return strings.ToLower(filepath.Ext(path)) == ".collider"
}

// FileKind is what a changed prefab path holds.
type FileKind uint8

const (
	FileOther FileKind = iota
	FileScene
	FileScript
	FileCollider
)

func Classify(path string) FileKind {
	switch {
	case isColliderFile(path):
		return FileCollider
	case isScriptFile(path):
		return FileScript
	case isSpecFile(path):
		return FileScene
	}
	return FileOther
}
