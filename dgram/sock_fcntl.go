//go:build darwin

// File: dgram/sock_fcntl.go
//
// Socket creation fallback for platforms without creation-time flags: the
// descriptor is flipped to non-blocking and close-on-exec with two fcntl
// calls immediately after creation. These calls cannot legitimately fail
// on a freshly created descriptor; a failure means the process would
// continue with a blocking or leaking socket, so it aborts.

package dgram

import (
	"fmt"

	"golang.org/x/sys/unix"
)

func newDgramSocket(domain, typ, proto int) (int, error) {
	fd, err := unix.Socket(domain, typ, proto)
	if err != nil {
		return -1, err
	}
	if err := unix.SetNonblock(fd, true); err != nil {
		panic(fmt.Sprintf("dgram: O_NONBLOCK on fresh descriptor (fd=%d): %v", fd, err))
	}
	if _, err := unix.FcntlInt(uintptr(fd), unix.F_SETFD, unix.FD_CLOEXEC); err != nil {
		panic(fmt.Sprintf("dgram: FD_CLOEXEC on fresh descriptor (fd=%d): %v", fd, err))
	}
	return fd, nil
}
