// File: api/result.go
//
// Receive result tuple and the caller-supplied handler type.

package api

import "golang.org/x/sys/unix"

// RecvResult is delivered to the registered callback exactly once per
// readiness wake-up, on success and failure alike.
type RecvResult struct {
	// Status is the number of bytes received, or -1 when the size query or
	// the receive itself failed.
	Status int

	// Data holds the datagram payload, sized exactly to the message.
	// Nil on failure; empty (non-nil) for a zero-length datagram.
	Data []byte

	// From is the sender's filesystem path, empty when the peer socket is
	// unbound.
	From string

	// Errno is set only when Status < 0.
	Errno unix.Errno
}

// RecvCallback handles one received datagram (or one receive failure).
// Ownership of Data transfers to the callback; the core never reuses it.
//
// A panic raised by the callback propagates out of the dispatch loop and
// takes the process down. Callbacks are trusted boundary code.
type RecvCallback func(res RecvResult)
