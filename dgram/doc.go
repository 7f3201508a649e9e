// Package dgram implements a non-blocking, event-driven layer over
// UNIX-domain datagram sockets. A Context creates sockets in
// non-blocking/close-on-exec mode, binds each descriptor to exactly one
// readiness watcher on an api.EventLoop, and delivers one received datagram
// (with sender path) to the registered callback per readiness wake-up.
//
// All Context operations run on the loop's dispatch goroutine. The package
// assumes a single reader per descriptor; it does not synchronize against
// foreign readers of the same raw descriptor.
package dgram
