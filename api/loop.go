// File: api/loop.go
//
// Event-loop bridge contract for read-readiness dispatch.

package api

// EventLoop is the reactor boundary the datagram core talks to. The core
// arms a descriptor once, right after socket creation, and disarms it
// exactly once, during close teardown.
//
// Implementations must deliver onReadable once per readiness transition on
// fd, for read-readiness only, and never invoke it synchronously from
// within Arm. After Disarm returns, no further onReadable invocation for
// that descriptor may occur, so the descriptor number can be safely reused.
type EventLoop interface {
	// Arm registers read-readiness interest for fd.
	Arm(fd int, onReadable func()) error

	// Disarm removes all interest for fd.
	Disarm(fd int) error
}
