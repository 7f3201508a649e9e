// File: reactor/loop.go
//
// Platform-neutral loop core: callback table, injected-wakeup FIFO, and
// the poll/dispatch cycle. The OS-specific readiness wait lives behind the
// poller interface in the build-tagged backends.

package reactor

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/eapache/queue"

	"github.com/unixgram/unixgram/api"
)

// runPollIntervalMs bounds each wait inside Run so context cancellation is
// observed without an extra wake-up descriptor.
const runPollIntervalMs = 50

// poller is the OS readiness backend. wait returns ready descriptors in
// the order the OS reports them; timeoutMs < 0 blocks indefinitely.
type poller interface {
	add(fd int) error
	del(fd int) error
	wait(timeoutMs int) ([]int, error)
	close() error
}

// Loop is a read-readiness event loop. Callbacks run on the goroutine
// calling Poll or Run, one at a time, in the order events are reported;
// the loop never invokes a callback from within Arm. Panics raised by a
// callback are not recovered and propagate out of Poll.
type Loop struct {
	mu        sync.Mutex
	p         poller
	callbacks map[int]func()
	injected  *queue.Queue // fds with a pending synthetic wake-up
	closed    bool
}

var _ api.EventLoop = (*Loop)(nil)

// NewLoop opens the platform poller and returns a ready-to-use loop.
func NewLoop() (*Loop, error) {
	p, err := newPoller()
	if err != nil {
		return nil, fmt.Errorf("reactor: open poller: %w", err)
	}
	return &Loop{
		p:         p,
		callbacks: make(map[int]func()),
		injected:  queue.New(),
	}, nil
}

// Arm registers read-readiness interest for fd. onReadable is only ever
// invoked from Poll, never from here.
func (l *Loop) Arm(fd int, onReadable func()) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		return api.ErrLoopClosed
	}
	if _, ok := l.callbacks[fd]; ok {
		return fmt.Errorf("reactor: descriptor already armed (fd=%d)", fd)
	}
	if err := l.p.add(fd); err != nil {
		return fmt.Errorf("reactor: arm fd=%d: %w", fd, err)
	}
	l.callbacks[fd] = onReadable
	return nil
}

// Disarm removes all interest for fd. After Disarm returns no further
// callback invocation for fd occurs, including for wake-ups already
// injected or reported but not yet dispatched. Disarm tolerates a
// descriptor that was closed first: the kernel drops closed descriptors
// from its poll set on its own, the callback table entry is what matters.
func (l *Loop) Disarm(fd int) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, ok := l.callbacks[fd]; !ok {
		return api.ErrNotArmed
	}
	delete(l.callbacks, fd)
	if err := l.p.del(fd); err != nil {
		return fmt.Errorf("reactor: disarm fd=%d: %w", fd, err)
	}
	return nil
}

// Inject queues one synthetic readiness wake-up for fd. Injected wake-ups
// are dispatched by the next Poll, before any OS events, in injection
// order. A wake-up for a descriptor disarmed in the meantime is dropped.
func (l *Loop) Inject(fd int) {
	l.mu.Lock()
	l.injected.Add(fd)
	l.mu.Unlock()
}

// Poll dispatches pending injected wake-ups, then waits at most timeoutMs
// for OS readiness events and dispatches those. timeoutMs < 0 blocks until
// an event arrives, unless an injected wake-up was already dispatched in
// this call. Returns the number of callbacks invoked.
func (l *Loop) Poll(timeoutMs int) (int, error) {
	dispatched := 0

	for {
		l.mu.Lock()
		if l.injected.Length() == 0 {
			l.mu.Unlock()
			break
		}
		fd := l.injected.Remove().(int)
		cb := l.callbacks[fd]
		l.mu.Unlock()
		if cb == nil {
			continue
		}
		cb()
		dispatched++
	}

	// Work was already delivered; do not park the dispatch thread.
	if dispatched > 0 && timeoutMs < 0 {
		timeoutMs = 0
	}

	fds, err := l.p.wait(timeoutMs)
	if err != nil {
		return dispatched, fmt.Errorf("reactor: wait: %w", err)
	}
	for _, fd := range fds {
		l.mu.Lock()
		cb := l.callbacks[fd]
		l.mu.Unlock()
		if cb == nil {
			continue
		}
		cb()
		dispatched++
	}
	return dispatched, nil
}

// Run polls until ctx is done, waking periodically to observe
// cancellation. The caller's goroutine becomes the dispatch thread.
func (l *Loop) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		if _, err := l.Poll(runPollIntervalMs); err != nil {
			return err
		}
	}
}

// RunFor is a convenience for examples and tests: polls for the given
// duration, then returns.
func (l *Loop) RunFor(d time.Duration) error {
	ctx, cancel := context.WithTimeout(context.Background(), d)
	defer cancel()
	if err := l.Run(ctx); err != context.DeadlineExceeded {
		return err
	}
	return nil
}

// Close releases the poller. Armed descriptors are not closed; they simply
// stop being observed.
func (l *Loop) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		return nil
	}
	l.closed = true
	l.callbacks = make(map[int]func())
	return l.p.close()
}
