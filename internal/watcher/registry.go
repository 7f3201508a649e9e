// File: internal/watcher/registry.go
//
// Descriptor-to-watcher registry. The registry is the sole authority for
// "is this descriptor currently observed" and owns each watcher's callback
// for the watcher's lifetime.

package watcher

import (
	"fmt"

	"github.com/unixgram/unixgram/api"
)

// Watcher binds one live descriptor to its receive callback. At most one
// Watcher exists per descriptor at any time.
type Watcher struct {
	FD       int
	Callback api.RecvCallback
}

// Registry maps descriptors to their watchers. It is not safe for
// concurrent use: every mutation and lookup happens on the reactor's
// dispatch goroutine, so no locking is required or provided. If dispatch
// ever becomes multi-threaded this type is the single point that must grow
// synchronization.
type Registry struct {
	watchers map[int]*Watcher
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{watchers: make(map[int]*Watcher)}
}

// Register inserts a watcher for fd. Registering a descriptor that already
// has a watcher is a programming error and panics.
func (r *Registry) Register(fd int, cb api.RecvCallback) *Watcher {
	if _, ok := r.watchers[fd]; ok {
		panic(fmt.Sprintf("watcher: descriptor already registered (fd=%d)", fd))
	}
	w := &Watcher{FD: fd, Callback: cb}
	r.watchers[fd] = w
	return w
}

// Unregister removes the watcher for fd and returns it, transferring
// ownership to the caller for teardown. Unregistering a descriptor with no
// watcher is a programming error and panics.
func (r *Registry) Unregister(fd int) *Watcher {
	w, ok := r.watchers[fd]
	if !ok {
		panic(fmt.Sprintf("watcher: descriptor not registered (fd=%d)", fd))
	}
	delete(r.watchers, fd)
	// The callback must never fire again once teardown ran.
	w.Callback = nil
	return w
}

// Lookup resolves a readiness event back to its watcher. The returned
// watcher must not be mutated.
func (r *Registry) Lookup(fd int) (*Watcher, bool) {
	w, ok := r.watchers[fd]
	return w, ok
}

// Len reports the number of currently observed descriptors.
func (r *Registry) Len() int {
	return len(r.watchers)
}
