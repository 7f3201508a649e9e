//go:build darwin || dragonfly || freebsd || netbsd || openbsd

// File: reactor/poller_bsd.go
//
// kqueue(2) readiness backend, EVFILT_READ only.

package reactor

import "golang.org/x/sys/unix"

const maxEvents = 128

type kqueuePoller struct {
	kq int
}

func newPoller() (poller, error) {
	kq, err := unix.Kqueue()
	if err != nil {
		return nil, err
	}
	unix.CloseOnExec(kq)
	return &kqueuePoller{kq: kq}, nil
}

func (p *kqueuePoller) add(fd int) error {
	var ev unix.Kevent_t
	unix.SetKevent(&ev, fd, unix.EVFILT_READ, unix.EV_ADD)
	_, err := unix.Kevent(p.kq, []unix.Kevent_t{ev}, nil, nil)
	return err
}

func (p *kqueuePoller) del(fd int) error {
	var ev unix.Kevent_t
	unix.SetKevent(&ev, fd, unix.EVFILT_READ, unix.EV_DELETE)
	_, err := unix.Kevent(p.kq, []unix.Kevent_t{ev}, nil, nil)
	if err == unix.EBADF || err == unix.ENOENT {
		// Descriptor closed first; the kernel already dropped it.
		return nil
	}
	return err
}

func (p *kqueuePoller) wait(timeoutMs int) ([]int, error) {
	var events [maxEvents]unix.Kevent_t
	var ts *unix.Timespec
	if timeoutMs >= 0 {
		t := unix.NsecToTimespec(int64(timeoutMs) * 1e6)
		ts = &t
	}
	n, err := unix.Kevent(p.kq, nil, events[:], ts)
	if err != nil {
		if err == unix.EINTR {
			return nil, nil
		}
		return nil, err
	}
	fds := make([]int, 0, n)
	for i := 0; i < n; i++ {
		fds = append(fds, int(events[i].Ident))
	}
	return fds, nil
}

func (p *kqueuePoller) close() error {
	return unix.Close(p.kq)
}
