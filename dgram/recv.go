// File: dgram/recv.go
//
// The receive path: one size query, one exactly-sized receive, one
// callback invocation per readiness wake-up.

package dgram

import (
	"fmt"

	"golang.org/x/sys/unix"

	"github.com/unixgram/unixgram/api"
)

// onReadable is invoked by the event loop once per readiness wake-up on fd.
// It resolves the descriptor back to its watcher, performs the receive
// sequence and delivers exactly one result to the callback, on the failure
// paths too. A wake-up for a descriptor with no watcher means the loop and
// the registry disagree, which is unrecoverable.
func (c *Context) onReadable(fd int) {
	w, ok := c.watchers.Lookup(fd)
	if !ok {
		panic(fmt.Sprintf("dgram: readiness wake-up for unwatched descriptor (fd=%d)", fd))
	}
	w.Callback(c.recvOne(fd))
}

// recvOne reads the single pending datagram on fd. The pending size is
// queried first so the payload buffer is sized exactly to the message;
// datagram sockets deliver whole messages, so pre-sizing avoids both
// truncation and over-allocation at the cost of one extra syscall. A
// failed size query aborts the sequence before the receive is attempted.
func (c *Context) recvOne(fd int) api.RecvResult {
	size, err := unix.IoctlGetInt(fd, unix.TIOCINQ)
	if err != nil {
		return api.RecvResult{Status: -1, Errno: c.setErrno(err)}
	}

	// size == 0 is legitimate: a zero-length datagram still wakes the loop.
	buf := make([]byte, size)
	n, from, err := unix.Recvfrom(fd, buf, 0)
	if err != nil {
		return api.RecvResult{Status: -1, Errno: c.setErrno(err)}
	}

	res := api.RecvResult{Status: n, Data: buf[:n]}
	if ua, ok := from.(*unix.SockaddrUnix); ok {
		res.From = ua.Name
	}
	return res
}
