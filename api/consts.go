// File: api/consts.go
//
// Socket constants exposed as opaque values for binding layers to pass
// back into Context.Socket.

package api

import "golang.org/x/sys/unix"

const (
	// AFUnix is the UNIX-domain address family identifier.
	AFUnix = unix.AF_UNIX

	// SockDgram is the datagram socket type identifier.
	SockDgram = unix.SOCK_DGRAM
)
