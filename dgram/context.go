// File: dgram/context.go
//
// The I/O context: watcher registry ownership, last-errno slot, and the
// bind/send/close operations.

package dgram

import (
	"errors"
	"fmt"

	"golang.org/x/sys/unix"

	"github.com/unixgram/unixgram/api"
	"github.com/unixgram/unixgram/internal/watcher"
)

// Context owns the descriptor→watcher registry for one event loop and holds
// the last-errno slot read by binding layers after a negative result.
//
// A Context is not safe for concurrent use; every operation, including the
// receive dispatch, runs on the loop's dispatch goroutine.
type Context struct {
	loop      api.EventLoop
	watchers  *watcher.Registry
	lastErrno unix.Errno
}

// NewContext returns a Context dispatching on loop.
func NewContext(loop api.EventLoop) *Context {
	return &Context{
		loop:     loop,
		watchers: watcher.NewRegistry(),
	}
}

// LastErrno returns the OS error code of the most recent failing operation
// on this context. The value is only meaningful immediately after a call
// returned a negative status; a later failing call overwrites it.
func (c *Context) LastErrno() unix.Errno {
	return c.lastErrno
}

// Watched reports whether fd currently has a registered watcher.
func (c *Context) Watched(fd int) bool {
	_, ok := c.watchers.Lookup(fd)
	return ok
}

// Bind binds fd to a filesystem path. Paths longer than SunPathMax are
// silently truncated, matching the sendto addressing quirk. Returns 0, or
// -1 with the errno recorded.
func (c *Context) Bind(fd int, path string) (int, error) {
	sa := &unix.SockaddrUnix{Name: truncatePath(path)}
	if err := unix.Bind(fd, sa); err != nil {
		return -1, c.setErrno(err)
	}
	return 0, nil
}

// Send transmits buf[offset:offset+length] as one datagram to the socket
// bound at path. The slice bounds are a precondition: violating them is a
// programming error and panics. The send is non-blocking; a full peer
// buffer surfaces as EAGAIN rather than blocking the dispatch thread. No
// retry, no queueing. Returns bytes sent, or -1 with the errno recorded.
func (c *Context) Send(fd int, buf []byte, offset, length int, path string) (int, error) {
	if offset < 0 || length < 0 || offset+length > len(buf) {
		panic(fmt.Sprintf("dgram: send slice out of range (offset=%d length=%d len=%d)",
			offset, length, len(buf)))
	}
	sa := &unix.SockaddrUnix{Name: truncatePath(path)}
	if err := unix.Sendto(fd, buf[offset:offset+length], 0, sa); err != nil {
		return -1, c.setErrno(err)
	}
	return length, nil
}

// Close closes fd, retrying only on EINTR, then unconditionally tears down
// the descriptor's watcher and loop registration. Teardown is not
// conditional on the close succeeding: a descriptor that failed to close
// must still stop being observed before the number can be reused. Closing
// a descriptor with no watcher is a programming error and panics.
//
// Returns 0, or -1 with the errno recorded.
func (c *Context) Close(fd int) (int, error) {
	if _, ok := c.watchers.Lookup(fd); !ok {
		panic(fmt.Sprintf("dgram: close of unwatched descriptor (fd=%d)", fd))
	}

	cerr := closeRetryingEINTR(fd)

	c.watchers.Unregister(fd)
	if err := c.loop.Disarm(fd); err != nil {
		panic(fmt.Sprintf("dgram: disarm failed during close (fd=%d): %v", fd, err))
	}

	if cerr != nil {
		return -1, c.setErrno(cerr)
	}
	return 0, nil
}

// closeRetryingEINTR issues the OS close, retrying only while the call is
// interrupted. Any other failure is returned as-is.
func closeRetryingEINTR(fd int) error {
	for {
		err := unix.Close(fd)
		if err != unix.EINTR {
			return err
		}
	}
}

// setErrno latches err into the last-errno slot and returns it as a
// unix.Errno for the per-call error channel.
func (c *Context) setErrno(err error) unix.Errno {
	var en unix.Errno
	if !errors.As(err, &en) {
		en = unix.EINVAL
	}
	c.lastErrno = en
	return en
}
