// Package fake provides hand-rolled test doubles for the library's
// interfaces with predictable, controllable behavior.
package fake

import (
	"sync"

	"github.com/unixgram/unixgram/api"
)

// Loop is a controllable api.EventLoop: it records arm/disarm traffic and
// fires readiness wake-ups only when the test says so.
type Loop struct {
	mu          sync.Mutex
	armed       map[int]func()
	ArmCalls    []int
	DisarmCalls []int
	ArmError    error // returned by the next Arm when set
}

var _ api.EventLoop = (*Loop)(nil)

// NewLoop returns an empty fake loop.
func NewLoop() *Loop {
	return &Loop{armed: make(map[int]func())}
}

// Arm implements api.EventLoop.Arm. It never invokes onReadable itself.
func (l *Loop) Arm(fd int, onReadable func()) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.ArmCalls = append(l.ArmCalls, fd)
	if l.ArmError != nil {
		err := l.ArmError
		l.ArmError = nil
		return err
	}
	l.armed[fd] = onReadable
	return nil
}

// Disarm implements api.EventLoop.Disarm.
func (l *Loop) Disarm(fd int) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.DisarmCalls = append(l.DisarmCalls, fd)
	if _, ok := l.armed[fd]; !ok {
		return api.ErrNotArmed
	}
	delete(l.armed, fd)
	return nil
}

// Fire simulates one readiness wake-up on fd, invoking the armed callback
// synchronously. It reports whether a callback was delivered; firing a
// disarmed descriptor is a no-op, mirroring the real loop dropping
// injected wake-ups for closed sockets.
func (l *Loop) Fire(fd int) bool {
	l.mu.Lock()
	cb := l.armed[fd]
	l.mu.Unlock()
	if cb == nil {
		return false
	}
	cb()
	return true
}

// Armed reports whether fd currently has readiness interest.
func (l *Loop) Armed(fd int) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	_, ok := l.armed[fd]
	return ok
}
