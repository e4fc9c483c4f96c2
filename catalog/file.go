package catalog

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/tidwall/gjson"

	"keydeck/activation"
	"keydeck/log"
)

func equalFold(a, b string) bool { return strings.EqualFold(a, b) }

// snapshot is one immutable load of the catalog document.
type snapshot struct {
	actions map[string]Action // keyed by lowercased name
	order   []string
	modes   map[string]activation.Metadata
}

// File is a catalog backed by a pre-extracted JSON document. Reload swaps the
// snapshot atomically under the lock; Watch hot-reloads on file changes.
type File struct {
	path string

	mu       sync.RWMutex
	snap     *snapshot
	onChange []func()

	watcher *fsnotify.Watcher
	done    chan struct{}
}

// Open loads the catalog document at path.
func Open(path string) (*File, error) {
	f := &File{path: path}
	if err := f.Reload(); err != nil {
		return nil, err
	}
	return f, nil
}

// Reload re-reads and re-parses the document, replacing the snapshot.
func (f *File) Reload() error {
	data, err := os.ReadFile(f.path)
	if err != nil {
		return fmt.Errorf("reading catalog: %w", err)
	}
	snap, err := parse(data)
	if err != nil {
		return fmt.Errorf("parsing catalog %s: %w", f.path, err)
	}

	f.mu.Lock()
	f.snap = snap
	callbacks := make([]func(), len(f.onChange))
	copy(callbacks, f.onChange)
	f.mu.Unlock()

	log.CatalogLoaded(f.path, len(snap.order))
	for _, fn := range callbacks {
		fn()
	}
	return nil
}

func parse(data []byte) (*snapshot, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("invalid JSON")
	}
	doc := gjson.ParseBytes(data)

	snap := &snapshot{
		actions: make(map[string]Action),
		modes:   make(map[string]activation.Metadata),
	}

	doc.Get("actions").ForEach(func(_, a gjson.Result) bool {
		act := Action{
			Name:     a.Get("name").String(),
			Group:    a.Get("group").String(),
			Keyboard: a.Get("keyboard").String(),
			Mouse:    a.Get("mouse").String(),
			Mode:     activation.Mode(a.Get("activationMode").String()),
		}
		if act.Name == "" {
			return true
		}
		key := strings.ToLower(act.Name)
		if _, dup := snap.actions[key]; !dup {
			snap.order = append(snap.order, key)
		}
		snap.actions[key] = act
		return true
	})

	doc.Get("activationModes").ForEach(func(name, m gjson.Result) bool {
		snap.modes[name.String()] = activation.Metadata{
			OnPress:                 m.Get("onPress").Bool(),
			OnRelease:               m.Get("onRelease").Bool(),
			Retriggerable:           m.Get("retriggerable").Bool(),
			MultiTapBlock:           int(m.Get("multiTapBlock").Int()),
			PressTriggerThreshold:   m.Get("pressTriggerThreshold").Float(),
			ReleaseTriggerThreshold: m.Get("releaseTriggerThreshold").Float(),
			ReleaseTriggerDelay:     m.Get("releaseTriggerDelay").Float(),
		}
		return true
	})

	return snap, nil
}

func (f *File) IsLoaded() bool {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.snap != nil
}

func (f *File) Lookup(name string) (Action, bool) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	if f.snap == nil {
		return Action{}, false
	}
	a, ok := f.snap.actions[strings.ToLower(name)]
	return a, ok
}

func (f *File) All() []Action {
	f.mu.RLock()
	defer f.mu.RUnlock()
	if f.snap == nil {
		return nil
	}
	out := make([]Action, 0, len(f.snap.order))
	for _, key := range f.snap.order {
		out = append(out, f.snap.actions[key])
	}
	return out
}

func (f *File) ActivationModes() map[string]activation.Metadata {
	f.mu.RLock()
	defer f.mu.RUnlock()
	if f.snap == nil {
		return nil
	}
	return f.snap.modes
}

// OnChange registers a callback invoked after every successful reload.
func (f *File) OnChange(fn func()) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.onChange = append(f.onChange, fn)
}

// Watch starts hot-reloading the document when it changes on disk. The
// directory is watched rather than the file so editors that replace the file
// keep triggering.
func (f *File) Watch() error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	if err := watcher.Add(filepath.Dir(f.path)); err != nil {
		watcher.Close()
		return fmt.Errorf("watch directory: %w", err)
	}
	f.watcher = watcher
	f.done = make(chan struct{})
	go f.watchLoop()
	return nil
}

func (f *File) watchLoop() {
	var debounce *time.Timer
	for {
		select {
		case <-f.done:
			return
		case event, ok := <-f.watcher.Events:
			if !ok {
				return
			}
			if filepath.Base(event.Name) != filepath.Base(f.path) {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			// Editors emit bursts of writes; reload once they settle.
			if debounce != nil {
				debounce.Stop()
			}
			debounce = time.AfterFunc(100*time.Millisecond, func() {
				if err := f.Reload(); err != nil {
					log.Warnf("catalog reload failed: %v", err)
				}
			})
		case err, ok := <-f.watcher.Errors:
			if !ok {
				return
			}
			log.Warnf("catalog watcher error: %v", err)
		}
	}
}

// Close stops the watcher, if any.
func (f *File) Close() {
	if f.watcher != nil {
		close(f.done)
		f.watcher.Close()
		f.watcher = nil
	}
}
