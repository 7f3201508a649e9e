// Package reactor provides the single-threaded read-readiness event loop
// behind api.EventLoop: epoll on Linux, kqueue on darwin and the BSDs.
// Synthetic wake-ups can be injected for testing and are dispatched in
// arrival order ahead of OS events.
package reactor
