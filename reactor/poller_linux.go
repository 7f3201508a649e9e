//go:build linux

// File: reactor/poller_linux.go
//
// epoll(7) readiness backend, level-triggered EPOLLIN only.

package reactor

import "golang.org/x/sys/unix"

const maxEvents = 128

type epollPoller struct {
	epfd int
}

func newPoller() (poller, error) {
	epfd, err := unix.EpollCreate1(unix.EPOLL_CLOEXEC)
	if err != nil {
		return nil, err
	}
	return &epollPoller{epfd: epfd}, nil
}

func (p *epollPoller) add(fd int) error {
	ev := unix.EpollEvent{Events: unix.EPOLLIN, Fd: int32(fd)}
	return unix.EpollCtl(p.epfd, unix.EPOLL_CTL_ADD, fd, &ev)
}

func (p *epollPoller) del(fd int) error {
	err := unix.EpollCtl(p.epfd, unix.EPOLL_CTL_DEL, fd, nil)
	if err == unix.EBADF || err == unix.ENOENT {
		// Descriptor closed first; the kernel already dropped it.
		return nil
	}
	return err
}

func (p *epollPoller) wait(timeoutMs int) ([]int, error) {
	var events [maxEvents]unix.EpollEvent
	n, err := unix.EpollWait(p.epfd, events[:], timeoutMs)
	if err != nil {
		if err == unix.EINTR {
			// Interrupted by a signal; not an event loop failure.
			return nil, nil
		}
		return nil, err
	}
	fds := make([]int, 0, n)
	for i := 0; i < n; i++ {
		fds = append(fds, int(events[i].Fd))
	}
	return fds, nil
}

func (p *epollPoller) close() error {
	return unix.Close(p.epfd)
}
