//go:build linux || dragonfly || freebsd || netbsd || openbsd

// File: dgram/sock_cloexec.go
//
// Socket creation on platforms with SOCK_NONBLOCK/SOCK_CLOEXEC: both flags
// are applied atomically in the socket call itself, leaving no window in
// which the descriptor is blocking or inheritable.

package dgram

import "golang.org/x/sys/unix"

func newDgramSocket(domain, typ, proto int) (int, error) {
	return unix.Socket(domain, typ|unix.SOCK_NONBLOCK|unix.SOCK_CLOEXEC, proto)
}
