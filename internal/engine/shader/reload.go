package shader

import (
	"fmt"
	"path/filepath"
	"sync"
	"sync/atomic"

	"github.com/fsnotify/fsnotify"
)

// Invalidator is implemented by providers that cache sources.
type Invalidator interface {
	Invalidate(name string)
}

// Reloader rebuilds a program when its source files change on disk.
//
// The watcher goroutine only marks the program stale; the rebuild happens in
// Poll, which must be called on the context thread.
type Reloader struct {
	ctx          Context
	src          SourceProvider
	vertexName   string
	fragmentName string

	program *Program
	watcher *fsnotify.Watcher
	pending atomic.Bool
	done    chan struct{}

	mu       sync.Mutex
	watchErr error
}

// NewReloader builds the initial program and starts watching dirs for
// changes to files named vertexName or fragmentName. The initial build must
// succeed.
func NewReloader(ctx Context, src SourceProvider, vertexName, fragmentName string, dirs ...string) (*Reloader, error) {
	program, err := Load(ctx, src, vertexName, fragmentName)
	if err != nil {
		return nil, err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		program.Destroy()
		return nil, fmt.Errorf("creating watcher: %w", err)
	}
	for _, dir := range dirs {
		if err := watcher.Add(dir); err != nil {
			watcher.Close()
			program.Destroy()
			return nil, fmt.Errorf("watching %s: %w", dir, err)
		}
	}

	r := &Reloader{
		ctx:          ctx,
		src:          src,
		vertexName:   vertexName,
		fragmentName: fragmentName,
		program:      program,
		watcher:      watcher,
		done:         make(chan struct{}),
	}
	go r.watch()
	return r, nil
}

func (r *Reloader) watch() {
	defer close(r.done)
	for {
		select {
		case event, ok := <-r.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if r.watches(event.Name) {
				r.pending.Store(true)
			}
		case err, ok := <-r.watcher.Errors:
			if !ok {
				return
			}
			r.mu.Lock()
			r.watchErr = err
			r.mu.Unlock()
		}
	}
}

func (r *Reloader) watches(file string) bool {
	base := filepath.Base(file)
	return base == filepath.Base(r.vertexName) || base == filepath.Base(r.fragmentName)
}

// Program returns the current program.
func (r *Reloader) Program() *Program {
	return r.program
}

// Pending reports whether a change was seen since the last Poll.
func (r *Reloader) Pending() bool {
	return r.pending.Load()
}

// MarkStale forces the next Poll to rebuild.
func (r *Reloader) MarkStale() {
	r.pending.Store(true)
}

// Poll rebuilds the program if its sources changed. On success the old
// program is destroyed and reloaded is true. On failure the old program
// stays current and the construction error is returned.
func (r *Reloader) Poll() (reloaded bool, err error) {
	r.mu.Lock()
	watchErr := r.watchErr
	r.watchErr = nil
	r.mu.Unlock()
	if watchErr != nil {
		return false, fmt.Errorf("watcher: %w", watchErr)
	}

	if !r.pending.Swap(false) {
		return false, nil
	}

	if inv, ok := r.src.(Invalidator); ok {
		inv.Invalidate(r.vertexName)
		inv.Invalidate(r.fragmentName)
	}

	program, err := Load(r.ctx, r.src, r.vertexName, r.fragmentName)
	if err != nil {
		return false, err
	}

	r.program.Destroy()
	r.program = program
	return true, nil
}

// Close stops watching and destroys the current program.
func (r *Reloader) Close() error {
	err := r.watcher.Close()
	<-r.done
	r.program.Destroy()
	return err
}
