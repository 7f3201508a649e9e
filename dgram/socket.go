// File: dgram/socket.go
//
// Socket creation and watcher registration.

package dgram

import (
	"github.com/unixgram/unixgram/api"
)

// Socket creates a datagram socket in non-blocking, close-on-exec mode and
// starts observing it: the descriptor is registered with the watcher
// registry and armed for read-readiness on the event loop, bound to cb,
// before Socket returns. cb then receives exactly one result per readiness
// wake-up until Close.
//
// domain and typ are the opaque constants from the api package (AFUnix,
// SockDgram); the non-blocking and close-on-exec flags are ORed in here,
// atomically at creation where the platform supports it.
//
// On failure the errno is recorded and fd is -1; no watcher exists.
func (c *Context) Socket(domain, typ, proto int, cb api.RecvCallback) (int, error) {
	fd, err := newDgramSocket(domain, typ, proto)
	if err != nil {
		return -1, c.setErrno(err)
	}

	c.watchers.Register(fd, cb)
	if err := c.loop.Arm(fd, func() { c.onReadable(fd) }); err != nil {
		// Undo: a descriptor the loop cannot observe must not keep a
		// watcher or leak.
		c.watchers.Unregister(fd)
		closeRetryingEINTR(fd)
		return -1, c.setErrno(err)
	}
	return fd, nil
}
